package sz

import "bytes"

// operand returns the bytes of src for writing into dst. When src points
// into dst's buffer the bytes are copied first, since the edit moves them.
func operand(dst, src *Sz) []byte {
	b := src.bytes()
	r, _ := dst.root()
	if overlaps(r.data, b) {
		return bytes.Clone(b)
	}
	return b
}

// Append appends the bytes of src to s. On a view the bytes are inserted
// into the root at the end of the view, and the view grows to cover them.
func (s *Sz) Append(src Arg) error {
	s.check()
	a := coerce(s.store, src)
	defer release(a)

	return s.splice(s.length, 0, operand(s, a))
}

// AppendN appends at most n bytes of src to s.
func (s *Sz) AppendN(src Arg, n int) error {
	s.check()
	if n < 0 {
		return ErrOutOfRange
	}
	a := coerce(s.store, src)
	defer release(a)

	b := operand(s, a)
	if len(b) > n {
		b = b[:n]
	}
	return s.splice(s.length, 0, b)
}

// AppendByte appends a single byte to s.
func (s *Sz) AppendByte(c byte) error {
	s.check()
	return s.splice(s.length, 0, []byte{c})
}

// Copy replaces the contents of s with the bytes of src. On a root the
// views keep their offsets and are clipped to the new length; on a view the
// view's range in the root is replaced.
func (s *Sz) Copy(src Arg) error {
	s.check()
	a := coerce(s.store, src)
	defer release(a)

	b := operand(s, a)
	if s.parent != nil {
		return s.splice(0, s.length, b)
	}
	return s.apply(0, s.length, b, s, true)
}

// CopyN replaces the contents of s with exactly n bytes: the first n bytes
// of src, padded with zero bytes if src is shorter.
func (s *Sz) CopyN(src Arg, n int) error {
	s.check()
	if n < 0 {
		return ErrOutOfRange
	}
	a := coerce(s.store, src)
	defer release(a)

	b := make([]byte, n)
	copy(b, a.bytes())
	if s.parent != nil {
		return s.splice(0, s.length, b)
	}
	return s.apply(0, s.length, b, s, true)
}

// Truncate shortens s to n bytes. On a root the capacity is kept and views
// past n are clipped; on a view only the view's window shrinks. An n at or
// beyond the current length is a no-op.
func (s *Sz) Truncate(n int) error {
	s.check()
	if n < 0 {
		return ErrOutOfRange
	}
	if n >= s.length {
		return nil
	}
	if s.parent != nil {
		s.tail = false
		s.rewindow(s.offset, n)
		return nil
	}
	return s.apply(n, s.length-n, nil, s, true)
}

// Insert inserts the bytes of src into s at offset at.
func (s *Sz) Insert(src Arg, at int) error {
	s.check()
	if at < 0 || at > s.length {
		return ErrOutOfRange
	}
	a := coerce(s.store, src)
	defer release(a)

	return s.splice(at, 0, operand(s, a))
}

// Delete removes n bytes of s starting at offset at.
func (s *Sz) Delete(at, n int) error {
	s.check()
	if at < 0 || n < 0 || at+n > s.length {
		return ErrOutOfRange
	}
	if n == 0 {
		return nil
	}
	return s.splice(at, n, nil)
}

// Freeze puts the root of s into aliasing mode, so the next mutation copies
// the buffer first. Slices previously returned by Bytes keep their contents.
func (s *Sz) Freeze() {
	s.check()
	r, _ := s.root()
	r.flags |= Aliasing
}

// Unfreeze makes the root of s own its buffer, copying it if it is aliased.
func (s *Sz) Unfreeze() error {
	s.check()
	return s.materialize()
}
