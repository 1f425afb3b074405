package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_NEW"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestMetadataStatusMapping(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:   http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeRateLimit:    http.StatusTooManyRequests,
		CodeInternal:     http.StatusInternalServerError,
		CodeDependency:   http.StatusServiceUnavailable,
	}
	for code, want := range cases {
		if got := MetadataFor(code).HTTPStatus; got != want {
			t.Fatalf("%s: expected status %d, got %d", code, want, got)
		}
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeInternal, cause, "saving record")

	if !stdErrors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to survive errors.Is")
	}
	if err.Unwrap() != cause {
		t.Fatalf("expected Unwrap to return the cause")
	}
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	typed := New(CodeConflict, "slug taken")
	wrapped := fmt.Errorf("outer: %w", typed)

	found := As(wrapped)
	if found == nil || found.Code() != CodeConflict {
		t.Fatalf("expected typed error through fmt wrapping, got %v", found)
	}

	if As(stdErrors.New("plain")) != nil {
		t.Fatalf("plain errors must not match")
	}
	if As(nil) != nil {
		t.Fatalf("nil must not match")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "validation failed").WithDetails(map[string]string{"email": "required"})
	details, ok := err.Details().(map[string]string)
	if !ok || details["email"] != "required" {
		t.Fatalf("expected details preserved, got %v", err.Details())
	}
}

func TestNilReceiverSafety(t *testing.T) {
	var err *Error
	if err.Code() != CodeInternal {
		t.Fatalf("nil error should report internal code")
	}
	if err.Message() != "" || err.Details() != nil || err.Unwrap() != nil {
		t.Fatalf("nil error accessors must be zero-valued")
	}
}
