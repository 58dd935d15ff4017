package reminder

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestErrorIsMatchesKind(t *testing.T) {
	cause := errors.New("disk full")
	err := &Error{Kind: KindCreationFailed, Err: cause}

	if !errors.Is(err, ErrCreationFailed) {
		t.Error("errors.Is(err, ErrCreationFailed) = false")
	}
	if errors.Is(err, ErrDeletionFailed) {
		t.Error("errors.Is(err, ErrDeletionFailed) = true")
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}

	wrapped := fmt.Errorf("timer abc: %w", err)
	if !errors.Is(wrapped, ErrCreationFailed) {
		t.Error("wrapped error lost its kind")
	}
}

func TestErrorMessage(t *testing.T) {
	if got := ErrNotFound.Error(); got != "reminder not found" {
		t.Errorf("Error() = %q", got)
	}
	err := &Error{Kind: KindAccessDenied, Err: errors.New("no permission")}
	if got := err.Error(); got != "reminders access denied: no permission" {
		t.Errorf("Error() = %q", got)
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindAccessDenied:   "ACCESS_DENIED",
		KindNoListSelected: "NO_LIST_SELECTED",
		KindCreationFailed: "CREATION_FAILED",
		KindDeletionFailed: "DELETION_FAILED",
		KindNotFound:       "NOT_FOUND",
		Kind(99):           "UNKNOWN",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestDisabled(t *testing.T) {
	var svc Service = Disabled{}

	if _, err := svc.CreateReminder(context.Background(), "x", "", time.Now()); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("CreateReminder error = %v, want ErrAccessDenied", err)
	}
	if err := svc.DeleteReminder(context.Background(), "x"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("DeleteReminder error = %v, want ErrAccessDenied", err)
	}
}
