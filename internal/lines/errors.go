package lines

import "errors"

// Errors returned by filter construction.
var (
	// ErrEmptyPattern indicates a match filter was given an empty pattern.
	ErrEmptyPattern = errors.New("empty pattern")
)
