package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrorCategory classifies a failed cloud call. Auditors branch on the
// category, never on raw SDK error strings.
type ErrorCategory string

const (
	ErrAuth       ErrorCategory = "AUTH"
	ErrPermission ErrorCategory = "PERMISSION"
	ErrThrottled  ErrorCategory = "THROTTLED"
	ErrNotFound   ErrorCategory = "NOT_FOUND"
	ErrTransient  ErrorCategory = "TRANSIENT"
	ErrOther      ErrorCategory = "OTHER"
)

// APIError wraps a failed CloudClient call with its category and operation.
type APIError struct {
	Op       string
	Category ErrorCategory
	Err      error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Category, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// CategoryOf extracts the category from err, or ErrOther when err is not an
// APIError.
func CategoryOf(err error) ErrorCategory {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Category
	}
	return ErrOther
}

// Retryable reports whether the error category warrants a retry.
func Retryable(err error) bool {
	switch CategoryOf(err) {
	case ErrThrottled, ErrTransient:
		return true
	}
	return false
}

// authCodes are SDK error codes that indicate broken or expired credentials.
var authCodes = map[string]struct{}{
	"AuthFailure":                {},
	"ExpiredToken":               {},
	"ExpiredTokenException":      {},
	"InvalidClientTokenId":       {},
	"SignatureDoesNotMatch":      {},
	"MissingAuthenticationToken": {},
}

// permissionCodes are SDK error codes that indicate missing IAM permission.
var permissionCodes = map[string]struct{}{
	"AccessDenied":          {},
	"AccessDeniedException": {},
	"UnauthorizedOperation": {},
	"UnauthorizedException": {},
	"OptInRequired":         {},
}

// throttleCodes are SDK error codes for rate limiting.
var throttleCodes = map[string]struct{}{
	"Throttling":                             {},
	"ThrottlingException":                    {},
	"RequestLimitExceeded":                   {},
	"TooManyRequestsException":               {},
	"ProvisionedThroughputExceededException": {},
	"SlowDown":                               {},
}

// notFoundSuffixes match the many per-service *NotFound / *NoSuchEntity codes.
var notFoundSuffixes = []string{"NotFound", "NotFoundException", "NoSuchEntity", "NoSuchBucket", "NoSuchBucketPolicy"}

// categorize maps an SDK error to an ErrorCategory. Context cancellation and
// deadline expiry count as TRANSIENT so callers can decide whether the parent
// context is still live.
func categorize(err error) ErrorCategory {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrTransient
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		// Network-level failures (DNS, connection reset) surface as plain
		// errors; treat them as transient.
		return ErrTransient
	}

	code := apiErr.ErrorCode()
	if _, ok := authCodes[code]; ok {
		return ErrAuth
	}
	if _, ok := permissionCodes[code]; ok {
		return ErrPermission
	}
	if _, ok := throttleCodes[code]; ok {
		return ErrThrottled
	}
	for _, suffix := range notFoundSuffixes {
		if strings.HasSuffix(code, suffix) {
			return ErrNotFound
		}
	}
	if code == "ServerSideEncryptionConfigurationNotFoundError" {
		return ErrNotFound
	}
	if apiErr.ErrorFault() == smithy.FaultServer {
		return ErrTransient
	}
	return ErrOther
}

// wrapErr builds an APIError for op, categorising err.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{Op: op, Category: categorize(err), Err: err}
}
