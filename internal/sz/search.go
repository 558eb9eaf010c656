package sz

import "bytes"

// byteSet is a membership table over all byte values.
type byteSet [256]bool

func newByteSet(b []byte) *byteSet {
	var set byteSet
	for _, c := range b {
		set[c] = true
	}
	return &set
}

// index returns the offset of the first byte of b in the set, or -1.
func (set *byteSet) index(b []byte) int {
	for i, c := range b {
		if set[c] {
			return i
		}
	}
	return -1
}

// span returns the length of the prefix of b made of bytes in the set.
func (set *byteSet) span(b []byte) int {
	for i, c := range b {
		if !set[c] {
			return i
		}
	}
	return len(b)
}

// cspan returns the length of the prefix of b made of bytes not in the set.
func (set *byteSet) cspan(b []byte) int {
	if i := set.index(b); i >= 0 {
		return i
	}
	return len(b)
}

// Len returns the length of a.
func Len(a Arg) int {
	s := coerce(storeOf(a), a)
	defer release(s)
	return s.length
}

// Data returns a copy of the bytes of a.
func Data(a Arg) []byte {
	s := coerce(storeOf(a), a)
	defer release(s)
	return bytes.Clone(s.bytes())
}

// Index returns the offset of the first c in a, or -1.
func Index(a Arg, c byte) int {
	s := coerce(storeOf(a), a)
	defer release(s)
	return bytes.IndexByte(s.bytes(), c)
}

// LastIndex returns the offset of the last c in a, or -1.
func LastIndex(a Arg, c byte) int {
	s := coerce(storeOf(a), a)
	defer release(s)
	return bytes.LastIndexByte(s.bytes(), c)
}

// IndexAny returns the offset of the first byte of a that occurs in set,
// or -1.
func IndexAny(a, set Arg) int {
	st := storeOf(a, set)
	s := coerce(st, a)
	defer release(s)
	t := coerce(st, set)
	defer release(t)
	return newByteSet(t.bytes()).index(s.bytes())
}

// IndexSubstring returns the offset of the first occurrence of needle in a,
// or -1. An empty needle matches at 0.
func IndexSubstring(a, needle Arg) int {
	st := storeOf(a, needle)
	s := coerce(st, a)
	defer release(s)
	n := coerce(st, needle)
	defer release(n)
	return bytes.Index(s.bytes(), n.bytes())
}

// Contains reports whether needle occurs in a.
func Contains(a, needle Arg) bool {
	return IndexSubstring(a, needle) >= 0
}

// Span returns the length of the prefix of a made of bytes in set.
func Span(a, set Arg) int {
	st := storeOf(a, set)
	s := coerce(st, a)
	defer release(s)
	t := coerce(st, set)
	defer release(t)
	return newByteSet(t.bytes()).span(s.bytes())
}

// CSpan returns the length of the prefix of a made of bytes not in set.
func CSpan(a, set Arg) int {
	st := storeOf(a, set)
	s := coerce(st, a)
	defer release(s)
	t := coerce(st, set)
	defer release(t)
	return newByteSet(t.bytes()).cspan(s.bytes())
}

// SpanFunc returns the length of the prefix of a whose bytes satisfy f.
func SpanFunc(a Arg, f func(byte) bool) int {
	s := coerce(storeOf(a), a)
	defer release(s)
	b := s.bytes()
	if f == nil {
		return 0
	}
	for i, c := range b {
		if !f(c) {
			return i
		}
	}
	return len(b)
}

// CSpanFunc returns the length of the prefix of a whose bytes do not
// satisfy f.
func CSpanFunc(a Arg, f func(byte) bool) int {
	s := coerce(storeOf(a), a)
	defer release(s)
	b := s.bytes()
	if f == nil {
		return len(b)
	}
	for i, c := range b {
		if f(c) {
			return i
		}
	}
	return len(b)
}
