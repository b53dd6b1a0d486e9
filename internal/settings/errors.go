package settings

import "errors"

// ErrInvalidInput indicates a setting that cannot be saved.
var ErrInvalidInput = errors.New("invalid contribution setting")
