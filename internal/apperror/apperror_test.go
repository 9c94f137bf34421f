package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusPerKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"authentication required", AuthenticationRequired(), http.StatusUnauthorized},
		{"not found", NotFound("test", 7), http.StatusNotFound},
		{"invalid filter", InvalidFilter("no filter set"), http.StatusBadRequest},
		{"validation", Validation("bad body"), http.StatusBadRequest},
		{"ownership violation", OwnershipViolation("attempt", 3), http.StatusForbidden},
		{"already completed", AlreadyCompleted(3), http.StatusConflict},
		{"internal", Internal(errors.New("pq: connection refused")), http.StatusInternalServerError},
		{"plain error", errors.New("anything"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestKindOfSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("starting attempt: %w", NotFound("test", 7))
	if KindOf(wrapped) != KindNotFound {
		t.Fatal("kind must be recoverable through fmt.Errorf wrapping")
	}
}

func TestInternalHidesTheCause(t *testing.T) {
	cause := errors.New("pq: password authentication failed for user")
	err := Internal(cause)

	if PublicMessage(err) != "internal error" {
		t.Fatalf("public message leaks detail: %q", PublicMessage(err))
	}
	if !errors.Is(err, cause) {
		t.Error("the cause must stay reachable for logging via errors.Is")
	}
}

func TestPlainErrorsAreOpaque(t *testing.T) {
	err := errors.New("dial tcp: connection refused")
	if KindOf(err) != KindInternal {
		t.Error("plain errors must generalize to the internal kind")
	}
	if PublicMessage(err) != "internal error" {
		t.Error("plain errors must not surface their message")
	}
}
