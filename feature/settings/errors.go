package settings

import "errors"

// ErrInvalid marks requests rejected before reaching the store or a service.
var ErrInvalid = errors.New("invalid request")
