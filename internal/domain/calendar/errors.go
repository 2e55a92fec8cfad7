package calendar

import "errors"

var ErrValidation = errors.New("missing required field")
