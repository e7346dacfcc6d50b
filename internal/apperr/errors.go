// Package apperr defines the error kinds surfaced to the user.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrCorruptRecord = errors.New("corrupt record")
	ErrUnknownKind   = errors.New("unknown task kind")
)

// UsageError is a validation failure whose message is shown to the user as is.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// Usage returns a *UsageError with the given message.
func Usage(msg string) error {
	return &UsageError{Message: msg}
}

// DateError reports date text that is not a valid YYYY-MM-DD calendar date.
type DateError struct {
	Text string
	Err  error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q: %v", e.Text, e.Err)
}

func (e *DateError) Unwrap() error {
	return e.Err
}

// IsUsage reports whether err carries a *UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// IsDate reports whether err carries a *DateError.
func IsDate(err error) bool {
	var de *DateError
	return errors.As(err, &de)
}
