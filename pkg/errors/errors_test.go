package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeConfig, http.StatusInternalServerError},
		{CodeDependency, http.StatusBadGateway},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("%s: expected %d got %d", tc.code, tc.status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Wrap(CodeInternal, cause, "save failed")

	if !errors.Is(err, cause) {
		t.Fatalf("wrapped error should unwrap to cause")
	}
	if err.Code() != CodeInternal {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	inner := New(CodeNotFound, "missing")
	outer := fmt.Errorf("handler: %w", inner)

	typed := As(outer)
	if typed == nil || typed.Code() != CodeNotFound {
		t.Fatalf("expected typed not-found, got %v", typed)
	}
}

func TestAsReturnsNilForPlainErrors(t *testing.T) {
	if typed := As(errors.New("plain")); typed != nil {
		t.Fatalf("expected nil, got %v", typed)
	}
	if typed := As(nil); typed != nil {
		t.Fatalf("expected nil for nil input")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "validation failed").WithDetails(map[string]string{"domain": "is required"})
	details, ok := err.Details().(map[string]string)
	if !ok || details["domain"] != "is required" {
		t.Fatalf("unexpected details %v", err.Details())
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := errors.New("root")
	err := Wrap(CodeDependency, cause, "upstream call")

	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected chain through cause, got %v", dump.Chain)
	}
}
