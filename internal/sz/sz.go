package sz

// Flags describe the ownership state of a string.
type Flags uint8

const (
	// Aliasing marks a root whose buffer belongs to someone else.
	Aliasing Flags = 1 << iota
	// Retired marks a freed string.
	Retired
)

// Sz is a managed byte string: either a root that owns (or aliases) a
// buffer, or a view over a range of its parent.
//
// The zero value is not usable; create strings through a Store or the
// package-level constructors.
type Sz struct {
	store *Store
	flags Flags

	// depth counts operations currently borrowing this string.
	depth int

	length int

	// offset is relative to the parent's start; always 0 for a root.
	offset int

	// tail views end wherever their parent ends.
	tail bool

	// data is the buffer of a root: len(data) == length and cap(data) is
	// the reserved capacity. Views leave it nil and derive their bytes
	// from the root.
	data []byte

	parent *Sz
	kids   []*Sz
}

// check panics if s has been freed.
func (s *Sz) check() {
	if s.flags&Retired != 0 {
		panic(ErrRetired)
	}
}

// root returns the root of s and the absolute offset of s within it.
func (s *Sz) root() (*Sz, int) {
	r, abs := s, 0
	for r.parent != nil {
		abs += r.offset
		r = r.parent
	}
	return r, abs
}

// bytes returns the current bytes of s, capped so that appending to the
// result can never write into the shared buffer.
func (s *Sz) bytes() []byte {
	if s.parent == nil {
		return s.data[:s.length:s.length]
	}
	r, abs := s.root()
	end := abs + s.length
	return r.data[abs:end:end]
}

// Len returns the number of bytes in s.
func (s *Sz) Len() int {
	s.check()
	return s.length
}

// Bytes returns the bytes of s. The slice shares memory with the root and is
// valid until the next mutation of any string in the same tree. It must not
// be written to.
func (s *Sz) Bytes() []byte {
	s.check()
	return s.bytes()
}

// String returns a copy of the bytes of s as a string.
func (s *Sz) String() string {
	if s == nil {
		return ""
	}
	s.check()
	return string(s.bytes())
}

// Offset returns the offset of s within its parent.
func (s *Sz) Offset() int {
	s.check()
	return s.offset
}

// AbsOffset returns the offset of s within its root buffer.
func (s *Sz) AbsOffset() int {
	s.check()
	_, abs := s.root()
	return abs
}

// Parent returns the string s is a view of, or nil for a root.
func (s *Sz) Parent() *Sz {
	s.check()
	return s.parent
}

// Root returns the root of the tree s belongs to.
func (s *Sz) Root() *Sz {
	s.check()
	r, _ := s.root()
	return r
}

// IsRoot reports whether s has no parent.
func (s *Sz) IsRoot() bool {
	s.check()
	return s.parent == nil
}

// IsAliasing reports whether s is a root referencing memory it does not own.
func (s *Sz) IsAliasing() bool {
	s.check()
	return s.parent == nil && s.flags&Aliasing != 0
}

// IsTail reports whether s is a view that ends where its parent ends.
func (s *Sz) IsTail() bool {
	s.check()
	return s.tail
}

// IsRetired reports whether s has been freed. It is the only method that may
// be called on a freed string.
func (s *Sz) IsRetired() bool {
	return s.flags&Retired != 0
}

// Reserved returns the capacity of the root buffer behind s.
func (s *Sz) Reserved() int {
	s.check()
	r, _ := s.root()
	return cap(r.data)
}

// Views returns the live views registered directly on s.
func (s *Sz) Views() []*Sz {
	s.check()
	out := make([]*Sz, len(s.kids))
	copy(out, s.kids)
	return out
}

// Store returns the store that created s.
func (s *Sz) Store() *Store {
	return s.store
}

// Free releases s. Freeing a root or a view also frees every view of it.
// The shared buffer is released only with its root.
func (s *Sz) Free() {
	if s == nil {
		return
	}
	s.check()
	if s.depth > 0 {
		panic(ErrBorrowed)
	}
	if s.parent != nil {
		s.parent.unregister(s)
	}
	s.retire()
}

// retire frees s and its subtree without touching the parent's view set.
func (s *Sz) retire() {
	kids := s.kids
	s.kids = nil
	for _, k := range kids {
		k.parent = nil
		k.retire()
	}
	s.parent = nil
	s.data = nil
	s.length = 0
	s.flags |= Retired
	s.store.freed.Add(1)
}

// register adds a view of s.
func (s *Sz) register(offset, length int, tail bool) *Sz {
	v := &Sz{
		store:  s.store,
		length: length,
		offset: offset,
		tail:   tail,
		parent: s,
	}
	s.kids = append(s.kids, v)
	s.store.made.Add(1)
	return v
}

// unregister removes v from the views of s.
func (s *Sz) unregister(v *Sz) {
	for i, k := range s.kids {
		if k == v {
			last := len(s.kids) - 1
			copy(s.kids[i:], s.kids[i+1:])
			s.kids[last] = nil
			s.kids = s.kids[:last]
			return
		}
	}
}
