package sz

import "bytes"

// ViewAt returns a view of s from offset start to the end of s, or nil if
// start is outside s. The view follows the end of s as s grows or shrinks.
func (s *Sz) ViewAt(start int) *Sz {
	s.check()
	if start < 0 || start > s.length {
		return nil
	}
	return s.register(start, s.length-start, true)
}

// Tail returns a view of s starting n bytes in. A negative n counts from
// the end; offsets beyond either end are clamped.
func (s *Sz) Tail(n int) *Sz {
	s.check()
	if n < 0 {
		n = max(s.length+n, 0)
	}
	n = min(n, s.length)
	return s.register(n, s.length-n, true)
}

// Slice returns a fixed-length view of s covering [start, end), or nil if
// the range is not inside s.
func (s *Sz) Slice(start, end int) *Sz {
	s.check()
	if start < 0 || end < start || end > s.length {
		return nil
	}
	return s.register(start, end-start, false)
}

// ViewAtChar returns a view of s starting at the first occurrence of c, or
// nil if c does not occur.
func (s *Sz) ViewAtChar(c byte) *Sz {
	s.check()
	i := bytes.IndexByte(s.bytes(), c)
	if i < 0 {
		return nil
	}
	return s.register(i, s.length-i, true)
}

// ViewAtLastChar returns a view of s starting at the last occurrence of c,
// or nil if c does not occur.
func (s *Sz) ViewAtLastChar(c byte) *Sz {
	s.check()
	i := bytes.LastIndexByte(s.bytes(), c)
	if i < 0 {
		return nil
	}
	return s.register(i, s.length-i, true)
}

// ViewAtAny returns a view of s starting at the first byte that is in set,
// or nil if there is none.
func (s *Sz) ViewAtAny(set Arg) *Sz {
	s.check()
	a := coerce(s.store, set)
	defer release(a)

	i := newByteSet(a.bytes()).index(s.bytes())
	if i < 0 {
		return nil
	}
	return s.register(i, s.length-i, true)
}

// ViewAtSubstring returns a view of s starting at the first occurrence of
// needle, or nil if needle does not occur.
func (s *Sz) ViewAtSubstring(needle Arg) *Sz {
	s.check()
	a := coerce(s.store, needle)
	defer release(a)

	i := bytes.Index(s.bytes(), a.bytes())
	if i < 0 {
		return nil
	}
	return s.register(i, s.length-i, true)
}

// ViewAfterToken returns a view of s starting just past the first run of
// delimiter bytes, or nil if s contains no delimiter.
func (s *Sz) ViewAfterToken(delims Arg) *Sz {
	s.check()
	a := coerce(s.store, delims)
	defer release(a)

	set := newByteSet(a.bytes())
	b := s.bytes()
	i := set.index(b)
	if i < 0 {
		return nil
	}
	i += set.span(b[i:])
	return s.register(i, s.length-i, true)
}

// SplitNext consumes the next token of s. Leading delimiters are skipped;
// the token is returned as a fixed-length view registered on the parent of
// s, and the window of s advances past the token and the delimiter run
// after it. When s holds no further token SplitNext returns ErrNoToken and
// leaves s unchanged.
//
// Only a view can advance its window; to tokenize a root, split a view of
// it:
//
//	rest := line.ViewAt(0)
//	for tok, err := rest.SplitNext(sz.Str(":")); err == nil; tok, err = rest.SplitNext(sz.Str(":")) {
//	    ...
//	}
func (s *Sz) SplitNext(delims Arg) (*Sz, error) {
	s.check()
	if s.parent == nil {
		return nil, ErrNotView
	}
	a := coerce(s.store, delims)
	defer release(a)

	set := newByteSet(a.bytes())
	b := s.bytes()
	lead := set.span(b)
	if lead == len(b) {
		return nil, ErrNoToken
	}
	n := set.cspan(b[lead:])
	next := lead + n
	next += set.span(b[next:])

	tok := s.parent.register(s.offset+lead, n, false)
	s.rewindow(s.offset+next, s.length-next)
	return tok, nil
}
