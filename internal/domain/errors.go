package domain

import "errors"

// ErrNotFound indicates the requested project does not exist.
var ErrNotFound = errors.New("not found")
