// Package sz provides managed byte strings that either own a growable buffer
// or alias memory they do not own, together with views: lightweight strings
// that describe a sub-range of another string's buffer.
//
// # Roots and Views
//
// A root owns its buffer (or, in aliasing mode, borrows the caller's memory).
// A view records an offset and a length into its parent and never owns
// memory. Views may be nested; every view ultimately traces back to exactly
// one root. Bytes of a view are always derived from the root at access time,
// so a view stays valid after the root reallocates.
//
//	s, _ := sz.OwnString("foobar")
//	v := s.ViewAtChar('b')       // "bar"
//	_ = s.Append(sz.Str("baz"))  // s == "foobarbaz", v == "barbaz"
//
// # Copy-on-Write
//
// Alias and AliasString wrap caller memory without copying. The first
// mutation copies the bytes into an owned buffer; the caller's memory is
// never written through a string.
//
// # Arguments
//
// Operations accept an Arg: a *Sz, a Str or a Bytes. Plain strings and byte
// slices are wrapped in a transient alias for the duration of the call and
// released before it returns; a *Sz argument is borrowed and left alive.
//
// # Lifetime
//
// Lifetime is explicit. Free releases a string; freeing a root frees all of
// its views. Using a freed string panics.
//
// # Thread Safety
//
// A root and its views must be used from one goroutine at a time. A Store
// may be shared: its counters are atomic.
//
// # Error Handling
//
//   - ErrAlloc: the allocator refused a buffer; the target is unchanged
//   - ErrDecode: malformed escape sequence (see DecodeError)
//   - ErrOutOfRange: invalid offset or length
//   - ErrNoToken: SplitNext found no further token
//   - ErrNotView: SplitNext called on a root
package sz
