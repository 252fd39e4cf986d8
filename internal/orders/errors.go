package orders

import (
	"errors"
	"fmt"
)

// Failure taxonomy shared by every mutating operation. Handlers map these to
// HTTP codes; callers never see a silent no-op.
var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrTransactionAborted = errors.New("transaction aborted")
	ErrExternalProvider   = errors.New("external provider error")
)

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
