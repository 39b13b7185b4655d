package upstream

import (
	"errors"
	"fmt"
)

// Sentinel errors for upstream statuses that callers branch on.
var (
	// ErrUnauthorized maps upstream 401s. Handlers turn this into a
	// login-redirect response rather than a form error.
	ErrUnauthorized = errors.New("upstream rejected the session token")
	// ErrNotFound maps upstream 404s (unknown enrollment, quiz, discount
	// code, submission).
	ErrNotFound = errors.New("upstream resource not found")
)

// Error carries an unexpected upstream failure (5xx, unrecognized shape)
// with enough detail for the generic error display.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
}
