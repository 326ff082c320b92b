package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err      *Error
		expected int
	}{
		{Validation(FieldError{Field: "hours", Message: "out of range"}), http.StatusBadRequest},
		{Unauthorized("invalid credentials"), http.StatusUnauthorized},
		{Forbidden("access denied"), http.StatusForbidden},
		{NotFound("entry not found"), http.StatusNotFound},
		{InvalidTransition("can only submit draft entries", "approved"), http.StatusConflict},
		{Conflict("duplicate"), http.StatusConflict},
		{Internal(errors.New("pg down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			if got := tt.err.HTTPStatus(); got != tt.expected {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestFrom(t *testing.T) {
	t.Run("passes through typed errors", func(t *testing.T) {
		orig := NotFound("entry not found")
		if got := From(orig); got != orig {
			t.Errorf("From returned a different error: %v", got)
		}
	})

	t.Run("unwraps through fmt wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("listing entries: %w", Forbidden("access denied"))
		got := From(wrapped)
		if got.Kind != KindForbidden {
			t.Errorf("From(wrapped).Kind = %q, want %q", got.Kind, KindForbidden)
		}
	})

	t.Run("wraps unknown errors as internal", func(t *testing.T) {
		cause := errors.New("connection refused")
		got := From(cause)
		if got.Kind != KindInternal {
			t.Errorf("From(unknown).Kind = %q, want %q", got.Kind, KindInternal)
		}
		if !errors.Is(got, cause) {
			t.Error("internal error lost its cause")
		}
	})
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("approving: %w", InvalidTransition("can only review submitted entries", "draft"))
	if !IsKind(err, KindInvalidTransition) {
		t.Error("IsKind should see through wrapping")
	}
	if IsKind(err, KindNotFound) {
		t.Error("IsKind matched the wrong kind")
	}
	if IsKind(errors.New("plain"), KindInternal) {
		t.Error("IsKind matched a non-apperr error")
	}
}

func TestInvalidTransitionCarriesState(t *testing.T) {
	err := InvalidTransition("can only delete draft entries", "submitted")
	if err.CurrentState != "submitted" {
		t.Errorf("CurrentState = %q, want %q", err.CurrentState, "submitted")
	}
}
