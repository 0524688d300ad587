package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := New(CodeConfiguration, "no shipping tier configured")
	if err.Code() != CodeConfiguration {
		t.Fatalf("expected %s, got %s", CodeConfiguration, err.Code())
	}
	if err.Message() != "no shipping tier configured" {
		t.Fatalf("unexpected message %q", err.Message())
	}
	if err.Error() != "CONFIGURATION_GAP: no shipping tier configured" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "load shipping tiers")
	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Fatal("expected Unwrap to return the cause")
	}
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	inner := New(CodeValidation, "quantity must be positive")
	wrapped := fmt.Errorf("resolve line: %w", inner)
	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", typed.Code())
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("expected nil for untyped error")
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestConfigurationGapIsPublicSafe(t *testing.T) {
	meta := MetadataFor(CodeConfiguration)
	if meta.DetailsAllowed {
		t.Fatal("configuration gaps must not leak internal detail")
	}
	if meta.PublicMessage == "" {
		t.Fatal("configuration gaps need a user-facing message")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "bad input").WithDetails(map[string]string{"qty": "must be positive"})
	details, ok := err.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details type %T", err.Details())
	}
	if details["qty"] != "must be positive" {
		t.Fatalf("unexpected details %v", details)
	}
}
