package identity

import "errors"

var (
	ErrValidation         = errors.New("missing required field")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("account not found")
)
