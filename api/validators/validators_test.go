package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/pharmaflow/pharmaflow-backend/pkg/errors"
)

func TestDecodeJSONBodyValidatesStruct(t *testing.T) {
	type payload struct {
		Email    string `json:"email" validate:"required,email"`
		Quantity int    `json:"quantity" validate:"required,gt=0"`
	}

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"nope","quantity":0}`))
	var dest payload
	err := DecodeJSONBody(r, &dest)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if _, ok := details["email"]; !ok {
		t.Errorf("expected email field flagged, got %v", details)
	}
	if _, ok := details["quantity"]; !ok {
		t.Errorf("expected quantity field flagged, got %v", details)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","extra":true}`))
	var dest payload
	if err := DecodeJSONBody(r, &dest); err == nil {
		t.Fatalf("expected unknown field rejection")
	}
}

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=25", nil)
	got, err := ParseQueryInt(r, "limit", 50, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}

	r = httptest.NewRequest("GET", "/", nil)
	got, err = ParseQueryInt(r, "limit", 50, 1, 100)
	if err != nil || got != 50 {
		t.Fatalf("expected default 50, got %d (%v)", got, err)
	}

	r = httptest.NewRequest("GET", "/?limit=9999", nil)
	if _, err := ParseQueryInt(r, "limit", 50, 1, 100); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestParsePathUUID(t *testing.T) {
	if _, err := ParsePathUUID("not-a-uuid", "order id"); err == nil {
		t.Fatalf("expected invalid uuid error")
	}
	id, err := ParsePathUUID(" 4b1c0a52-9f3e-4f6a-8f6d-0b2f5ce6a111 ", "order id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "4b1c0a52-9f3e-4f6a-8f6d-0b2f5ce6a111" {
		t.Fatalf("unexpected uuid %s", id)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello  ", 0); got != "hello" {
		t.Fatalf("expected trimmed string, got %q", got)
	}
	if got := SanitizeString("abcdef", 3); got != "abc" {
		t.Fatalf("expected truncation, got %q", got)
	}
}
