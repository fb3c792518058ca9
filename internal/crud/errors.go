package crud

import (
	"errors"
	"strings"
)

// ErrMissingID is returned when a destructive action targets a transient entity.
var ErrMissingID = errors.New("entity has no id")

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}

func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// userMessager is implemented by gateway errors that carry a server-provided
// message suitable for display.
type userMessager interface {
	UserMessage() string
}

// MessageOr returns the user message carried by err, or fallback when there is none.
func MessageOr(err error, fallback string) string {
	var um userMessager
	if errors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	return fallback
}
