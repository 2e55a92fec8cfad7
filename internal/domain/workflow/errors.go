package workflow

import "errors"

var (
	ErrValidation        = errors.New("missing required field")
	ErrNotFound          = errors.New("leave request not found")
	ErrInvalidTransition = errors.New("invalid state for decision")
	ErrForbidden         = errors.New("forbidden")
)
