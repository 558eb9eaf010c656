package sz

// Arg is a string-like operand: a *Sz, a Str or a Bytes.
//
// A *Sz argument is borrowed for the duration of the call and stays owned by
// the caller. Str and Bytes are wrapped in a transient alias that the
// operation frees before returning; their memory is never written.
type Arg interface {
	isArg()
}

// Str is a plain string operand.
type Str string

// Bytes is a plain byte slice operand.
type Bytes []byte

func (*Sz) isArg()   {}
func (Str) isArg()   {}
func (Bytes) isArg() {}

// storeOf returns the store of the first managed argument, or DefaultStore.
func storeOf(args ...Arg) *Store {
	for _, a := range args {
		if s, ok := a.(*Sz); ok && s != nil {
			return s.store
		}
	}
	return DefaultStore
}

// coerce normalizes a into a string for the duration of an operation.
// Every coerce must be paired with exactly one release of the result.
func coerce(st *Store, a Arg) *Sz {
	var s *Sz
	switch v := a.(type) {
	case *Sz:
		if v == nil {
			s = st.root(nil, Aliasing)
			break
		}
		v.check()
		v.depth++
		s = v
	case Str:
		s = st.root(stringBytes(string(v)), Aliasing)
	case Bytes:
		s = st.root(v[:len(v):len(v)], Aliasing)
	default:
		s = st.root(nil, Aliasing)
	}
	if t := s.store.tracer; t != nil {
		t.Coerced(s)
	}
	return s
}

// release gives back a string obtained from coerce. Borrowed strings survive;
// transient wrappers are freed.
func release(s *Sz) {
	if t := s.store.tracer; t != nil {
		t.Released(s)
	}
	if s.depth > 0 {
		s.depth--
		return
	}
	s.Free()
}
