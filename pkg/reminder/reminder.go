package reminder

import (
	"context"
	"fmt"
	"time"
)

// Service creates and deletes reminders.
type Service interface {
	// CreateReminder stores a reminder due at due and returns its identifier.
	CreateReminder(ctx context.Context, title, notes string, due time.Time) (string, error)

	// DeleteReminder removes the reminder with the given identifier.
	DeleteReminder(ctx context.Context, id string) error
}

// Kind classifies reminder failures.
type Kind uint8

const (
	// KindAccessDenied means the reminders store may not be used.
	KindAccessDenied Kind = iota + 1

	// KindNoListSelected means no usable reminder list is configured.
	KindNoListSelected

	// KindCreationFailed means the reminder could not be written.
	KindCreationFailed

	// KindDeletionFailed means the reminder could not be removed.
	KindDeletionFailed

	// KindNotFound means no reminder has the given identifier.
	KindNotFound
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindAccessDenied:
		return "ACCESS_DENIED"
	case KindNoListSelected:
		return "NO_LIST_SELECTED"
	case KindCreationFailed:
		return "CREATION_FAILED"
	case KindDeletionFailed:
		return "DELETION_FAILED"
	case KindNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// Error is a reminder failure with an optional underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

// Kind sentinels for use with errors.Is.
var (
	ErrAccessDenied   = &Error{Kind: KindAccessDenied}
	ErrNoListSelected = &Error{Kind: KindNoListSelected}
	ErrCreationFailed = &Error{Kind: KindCreationFailed}
	ErrDeletionFailed = &Error{Kind: KindDeletionFailed}
	ErrNotFound       = &Error{Kind: KindNotFound}
)

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindAccessDenied:
		msg = "reminders access denied"
	case KindNoListSelected:
		msg = "no reminder list selected"
	case KindCreationFailed:
		msg = "reminder creation failed"
	case KindDeletionFailed:
		msg = "reminder deletion failed"
	case KindNotFound:
		msg = "reminder not found"
	default:
		msg = "reminder error"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Disabled is a Service that refuses every request.
type Disabled struct{}

// CreateReminder always fails with ErrAccessDenied.
func (Disabled) CreateReminder(context.Context, string, string, time.Time) (string, error) {
	return "", ErrAccessDenied
}

// DeleteReminder always fails with ErrAccessDenied.
func (Disabled) DeleteReminder(context.Context, string) error {
	return ErrAccessDenied
}

// Compile-time interface satisfaction check.
var _ Service = Disabled{}
