package sz

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// Allocator provides the buffers owned by root strings.
type Allocator interface {
	// Alloc returns a zeroed byte slice of length n.
	Alloc(n int) ([]byte, error)
}

// HeapAllocator allocates from the Go heap and never fails.
type HeapAllocator struct{}

// Alloc implements Allocator.
func (HeapAllocator) Alloc(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// LimitAllocator refuses any single buffer larger than Max bytes.
// A zero Max means no limit.
type LimitAllocator struct {
	Max   int
	Inner Allocator
}

// Alloc implements Allocator.
func (a LimitAllocator) Alloc(n int) ([]byte, error) {
	if a.Max > 0 && n > a.Max {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrAlloc, n, a.Max)
	}
	if a.Inner == nil {
		return HeapAllocator{}.Alloc(n)
	}
	return a.Inner.Alloc(n)
}

// Tracer observes the borrow protocol. Coerced is called whenever an
// operation borrows an argument, Released when it gives it back.
type Tracer interface {
	Coerced(s *Sz)
	Released(s *Sz)
}

// Stats reports how many strings a store has created and freed.
type Stats struct {
	Made  int64
	Freed int64
}

// Live returns the number of strings not yet freed.
func (s Stats) Live() int64 {
	return s.Made - s.Freed
}

// Store creates strings and carries the allocator and instrumentation they
// share. Its counters are safe for concurrent use; the strings are not.
type Store struct {
	alloc  Allocator
	tracer Tracer
	made   atomic.Int64
	freed  atomic.Int64
}

// DefaultStore is used by the package-level constructors and by operations
// whose arguments are all plain strings.
var DefaultStore = NewStore()

// NewStore creates a store.
func NewStore(opts ...Option) *Store {
	st := &Store{alloc: HeapAllocator{}}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Stats returns a snapshot of the store's counters.
func (st *Store) Stats() Stats {
	return Stats{Made: st.made.Load(), Freed: st.freed.Load()}
}

// Leaked reports whether any string created by the store is still live.
func (st *Store) Leaked() bool {
	return st.Stats().Live() != 0
}

// buffer allocates n bytes, always reporting failure as ErrAlloc.
func (st *Store) buffer(n int) ([]byte, error) {
	b, err := st.alloc.Alloc(n)
	if err != nil {
		if errors.Is(err, ErrAlloc) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrAlloc, err)
	}
	if len(b) < n {
		return nil, fmt.Errorf("%w: allocator returned %d of %d bytes", ErrAlloc, len(b), n)
	}
	return b[:n], nil
}

// root registers a new root over data.
func (st *Store) root(data []byte, flags Flags) *Sz {
	st.made.Add(1)
	return &Sz{
		store:  st,
		flags:  flags,
		length: len(data),
		data:   data,
	}
}

// Own returns a root that owns a copy of b.
func (st *Store) Own(b []byte) (*Sz, error) {
	buf, err := st.buffer(len(b))
	if err != nil {
		return nil, err
	}
	copy(buf, b)
	return st.root(buf, 0), nil
}

// OwnString returns a root that owns a copy of s.
func (st *Store) OwnString(s string) (*Sz, error) {
	return st.Own(stringBytes(s))
}

// New returns an owned root of n zero bytes.
func (st *Store) New(n int) (*Sz, error) {
	if n < 0 {
		return nil, ErrOutOfRange
	}
	buf, err := st.buffer(n)
	if err != nil {
		return nil, err
	}
	return st.root(buf, 0), nil
}

// Alias returns a root that references b without copying it. The root must
// not outlive b. The first mutation copies the bytes; b is never written.
func (st *Store) Alias(b []byte) *Sz {
	return st.root(b[:len(b):len(b)], Aliasing)
}

// AliasString returns a root that references the bytes of s without copying.
func (st *Store) AliasString(s string) *Sz {
	return st.Alias(stringBytes(s))
}

// Dup returns an independent root holding the bytes of a. An aliasing root
// is duplicated as another alias of the same memory; anything else is copied.
func (st *Store) Dup(a Arg) (*Sz, error) {
	s := coerce(st, a)
	defer release(s)

	if s.parent == nil && s.flags&Aliasing != 0 {
		return st.Alias(s.data), nil
	}
	return st.Own(s.bytes())
}

// Own returns a root in DefaultStore that owns a copy of b.
func Own(b []byte) (*Sz, error) {
	return DefaultStore.Own(b)
}

// OwnString returns a root in DefaultStore that owns a copy of s.
func OwnString(s string) (*Sz, error) {
	return DefaultStore.OwnString(s)
}

// New returns an owned root in DefaultStore of n zero bytes.
func New(n int) (*Sz, error) {
	return DefaultStore.New(n)
}

// Alias returns an aliasing root in DefaultStore over b.
func Alias(b []byte) *Sz {
	return DefaultStore.Alias(b)
}

// AliasString returns an aliasing root in DefaultStore over s.
func AliasString(s string) *Sz {
	return DefaultStore.AliasString(s)
}

// Dup duplicates a in the store of a, or DefaultStore for plain arguments.
func Dup(a Arg) (*Sz, error) {
	return storeOf(a).Dup(a)
}
