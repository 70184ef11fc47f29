package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "status", Message: "invalid status: \"Bogus\""}
	if !strings.Contains(err.Error(), "status") {
		t.Errorf("expected field in message, got %q", err.Error())
	}

	bare := &ValidationError{Message: "title required"}
	if bare.Error() != "title required" {
		t.Errorf("unexpected message: %q", bare.Error())
	}

	inner := errors.New("boom")
	wrapped := &ValidationError{Message: "bad", Err: inner}
	if !errors.Is(wrapped, inner) {
		t.Error("Unwrap should expose the inner error")
	}
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Kind: "requirement", ID: "REQ-missing"}
	want := "requirement REQ-missing not found"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	var nf *NotFoundError
	wrapped := fmt.Errorf("dispatch: %w", err)
	if !errors.As(wrapped, &nf) {
		t.Error("errors.As should match through wrapping")
	}
}

func TestLinkIntegrityError(t *testing.T) {
	err := &LinkIntegrityError{RequirementID: "REQ-1", CapabilityID: "CAP-missing"}
	if !strings.Contains(err.Error(), "CAP-missing") {
		t.Errorf("expected capability id in message, got %q", err.Error())
	}
}

func TestImportRowError(t *testing.T) {
	err := &ImportRowError{Row: 3, Reason: "invalid status: \"Bogus\""}
	if !strings.HasPrefix(err.Error(), "row 3:") {
		t.Errorf("expected row prefix, got %q", err.Error())
	}
}

func TestPersistenceWarning(t *testing.T) {
	inner := errors.New("disk full")
	warn := &PersistenceWarning{Operation: "save", Key: "requirements", Err: inner}
	if !strings.Contains(warn.Error(), "requirements") {
		t.Errorf("expected key in message, got %q", warn.Error())
	}
	if !errors.Is(warn, inner) {
		t.Error("Unwrap should expose the inner error")
	}
}
