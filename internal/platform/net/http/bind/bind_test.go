package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "dockit/internal/platform/errors"
)

// shared payload for many tests
type payload struct {
	CustomerName string  `json:"customer_name" validate:"required,min=1"`
	Email        string  `json:"customer_email" validate:"omitempty,email"`
	HourlyRate   float64 `json:"hourly_rate_sek" validate:"omitempty,gte=0"`
}

func TestParseJSON_Success(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(
		`{"customer_name":"Anna Andersson","customer_email":"anna@example.com","hourly_rate_sek":950}`))
	got, err := ParseJSON[payload](req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CustomerName != "Anna Andersson" || got.HourlyRate != 950 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_EmptyBody_Disallow(t *testing.T) {
	req := httptest.NewRequest("POST", "/", http.NoBody)
	_, err := ParseJSON[payload](req)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_EmptyBodyTolerated_OnGet(t *testing.T) {
	req := httptest.NewRequest("GET", "/", http.NoBody)
	got, err := ParseJSON[payload](req)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if got != (payload{}) {
		t.Fatalf("expected zero value, got %+v", got)
	}
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{`))
	_, err := ParseJSON[payload](req)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_UnknownFieldRejected(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"customer_name":"Anna","surprise":1}`))
	_, err := ParseJSON[payload](req)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error code, got %v (%v)", perr.CodeOf(err), err)
	}
}

func TestParseJSON_ValidationFailure(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"customer_email":"not-an-email"}`))
	_, err := ParseJSON[payload](req)
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("expected validation error code, got %v (%v)", perr.CodeOf(err), err)
	}
	e, ok := perr.As(err)
	if !ok || e.Field() == "" {
		t.Fatalf("expected a field on the validation error, got %v", err)
	}
}

func TestParseJSON_TrailingDataRejected(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"customer_name":"Anna"}{"x":1}`))
	_, err := ParseJSON[payload](req)
	if perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("expected JSON error code, got %v (%v)", perr.CodeOf(err), err)
	}
}
