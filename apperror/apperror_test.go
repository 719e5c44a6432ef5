package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Forbidden("nope"), http.StatusForbidden},
		{Conflict("in use"), http.StatusConflict},
		{Storage("db down", errors.New("conn refused")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := Status(c.err); got != c.want {
			t.Errorf("Status(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestStatusWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NotFound("category not found"))
	if got := Status(wrapped); got != http.StatusNotFound {
		t.Fatalf("Status(wrapped) = %d, want 404", got)
	}
	if !IsKind(wrapped, KindNotFound) {
		t.Fatal("IsKind should see through wrapping")
	}
}

func TestPublicMessageHidesInternals(t *testing.T) {
	err := Storage("failed to delete category", errors.New("socket closed"))
	if msg := PublicMessage(err); msg != "internal server error" {
		t.Fatalf("storage errors must not leak details, got %q", msg)
	}

	if msg := PublicMessage(Validation("name is required")); msg != "name is required" {
		t.Fatalf("validation message should pass through, got %q", msg)
	}
}
