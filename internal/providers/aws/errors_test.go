package aws

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
)

func apiErr(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: "test"}
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"access denied", apiErr("AccessDenied"), ErrPermission},
		{"unauthorized operation", apiErr("UnauthorizedOperation"), ErrPermission},
		{"expired token", apiErr("ExpiredTokenException"), ErrAuth},
		{"bad client token", apiErr("InvalidClientTokenId"), ErrAuth},
		{"throttling", apiErr("Throttling"), ErrThrottled},
		{"request limit", apiErr("RequestLimitExceeded"), ErrThrottled},
		{"bucket policy missing", apiErr("NoSuchBucketPolicy"), ErrNotFound},
		{"encryption missing", apiErr("ServerSideEncryptionConfigurationNotFoundError"), ErrNotFound},
		{"generic not found", apiErr("ResourceNotFoundException"), ErrNotFound},
		{"validation error", apiErr("ValidationError"), ErrOther},
		{"deadline", context.DeadlineExceeded, ErrTransient},
		{"cancelled", context.Canceled, ErrTransient},
		{"plain network error", errors.New("dial tcp: connection refused"), ErrTransient},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := categorize(tc.err); got != tc.want {
				t.Errorf("categorize(%v) = %s, want %s", tc.err, got, tc.want)
			}
		})
	}
}

func TestCategorizeServerFault(t *testing.T) {
	err := &smithy.GenericAPIError{Code: "InternalError", Fault: smithy.FaultServer}
	if got := categorize(err); got != ErrTransient {
		t.Errorf("server fault categorized as %s, want %s", got, ErrTransient)
	}
}

func TestWrapErrPreservesChain(t *testing.T) {
	base := apiErr("AccessDenied")
	wrapped := wrapErr("ec2.DescribeInstances", fmt.Errorf("operation failed: %w", base))

	var ae *APIError
	if !errors.As(wrapped, &ae) {
		t.Fatalf("wrapErr did not produce an *APIError: %v", wrapped)
	}
	if ae.Op != "ec2.DescribeInstances" {
		t.Errorf("Op = %q, want ec2.DescribeInstances", ae.Op)
	}
	if ae.Category != ErrPermission {
		t.Errorf("Category = %s, want %s", ae.Category, ErrPermission)
	}

	var se smithy.APIError
	if !errors.As(wrapped, &se) {
		t.Error("underlying smithy error lost from the chain")
	}
}

func TestCategoryOfNonAPIError(t *testing.T) {
	if got := CategoryOf(errors.New("boom")); got != ErrOther {
		t.Errorf("CategoryOf(plain error) = %s, want %s", got, ErrOther)
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(wrapErr("op", apiErr("Throttling"))) {
		t.Error("throttled error should be retryable")
	}
	if !Retryable(wrapErr("op", errors.New("connection reset"))) {
		t.Error("transient error should be retryable")
	}
	if Retryable(wrapErr("op", apiErr("AccessDenied"))) {
		t.Error("permission error should not be retryable")
	}
	if Retryable(wrapErr("op", apiErr("AuthFailure"))) {
		t.Error("auth error should not be retryable")
	}
}
