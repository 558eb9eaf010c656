package sz

import (
	"errors"
	"fmt"
)

// Errors returned by string operations.
var (
	// ErrAlloc indicates the allocator could not provide a buffer.
	ErrAlloc = errors.New("allocation failed")

	// ErrDecode indicates a malformed escape sequence.
	ErrDecode = errors.New("invalid escape sequence")

	// ErrOutOfRange indicates an offset or length outside the string.
	ErrOutOfRange = errors.New("offset out of range")

	// ErrNoToken indicates the string holds no further token.
	ErrNoToken = errors.New("no token")

	// ErrNotView indicates an operation that requires a view was called on a root.
	ErrNotView = errors.New("not a view")

	// ErrRetired is the panic value for use of a freed string.
	ErrRetired = errors.New("use of freed string")

	// ErrBorrowed is the panic value for freeing a string that is borrowed
	// by an operation in progress.
	ErrBorrowed = errors.New("free of borrowed string")
)

// DecodeError describes where escape decoding failed.
type DecodeError struct {
	// Offset is the byte offset of the backslash that starts the bad sequence.
	Offset int
	// Seq is the offending sequence as it appeared in the input.
	Seq string
	// Reason is a short description.
	Reason string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %s %q at offset %d", e.Reason, e.Seq, e.Offset)
}

// Unwrap returns ErrDecode.
func (e *DecodeError) Unwrap() error {
	return ErrDecode
}
