package crud

import (
	"errors"
	"strings"
)

// Collection errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrDuplicateID = errors.New("duplicate entity ID")
	ErrNotBoolean  = errors.New("field is not a boolean")
)

// ErrNoSubject is reported when an edit or delete is attempted without a
// selected entity. Manager treats it as a no-op rather than returning it.
var ErrNoSubject = errors.New("no entity selected")

// DefaultErrorMessage is shown when a failure carries no message of its own.
const DefaultErrorMessage = "An unexpected error occurred"

// Message converts an error into text suitable for the UI.
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return DefaultErrorMessage
	}
	return msg
}
