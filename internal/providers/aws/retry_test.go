package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/smithy-go"
)

func TestCallRetriesThrottled(t *testing.T) {
	attempts := 0
	got, err := call(context.Background(), "test.Op", func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", &smithy.GenericAPIError{Code: "Throttling"}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("call returned error after retries: %v", err)
	}
	if got != "ok" {
		t.Errorf("result = %q, want ok", got)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestCallDoesNotRetryPermissionErrors(t *testing.T) {
	attempts := 0
	_, err := call(context.Background(), "test.Op", func(ctx context.Context) (int, error) {
		attempts++
		return 0, &smithy.GenericAPIError{Code: "AccessDenied"}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry on PERMISSION)", attempts)
	}
	if CategoryOf(err) != ErrPermission {
		t.Errorf("category = %s, want %s", CategoryOf(err), ErrPermission)
	}
}

func TestCallExhaustsRetryBudget(t *testing.T) {
	attempts := 0
	_, err := call(context.Background(), "test.Op", func(ctx context.Context) (int, error) {
		attempts++
		return 0, &smithy.GenericAPIError{Code: "RequestLimitExceeded"}
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != maxRetries+1 {
		t.Errorf("attempts = %d, want %d", attempts, maxRetries+1)
	}
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("final error is not an *APIError: %v", err)
	}
	if ae.Category != ErrThrottled {
		t.Errorf("category = %s, want %s", ae.Category, ErrThrottled)
	}
}

func TestCallStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	_, err := call(ctx, "test.Op", func(ctx context.Context) (int, error) {
		attempts++
		cancel()
		return 0, &smithy.GenericAPIError{Code: "Throttling"}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 after parent cancellation", attempts)
	}
}

func TestCallWrapsWithOperation(t *testing.T) {
	_, err := call(context.Background(), "s3.ListBuckets", func(ctx context.Context) (int, error) {
		return 0, &smithy.GenericAPIError{Code: "AccessDenied"}
	})
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("not an *APIError: %v", err)
	}
	if ae.Op != "s3.ListBuckets" {
		t.Errorf("Op = %q, want s3.ListBuckets", ae.Op)
	}
}
