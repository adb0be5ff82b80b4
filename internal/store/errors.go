package store

import "errors"

// ValidationError reports bad user input. The message is shown to the user
// verbatim; the operation that produced it leaves the store unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrProjectNotFound is returned when a status update names a project that
// does not exist.
var ErrProjectNotFound = errors.New("project not found")
