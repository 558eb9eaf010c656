package sz

// Option configures a Store during creation.
type Option func(*Store)

// WithAllocator sets the allocator used for owned buffers.
func WithAllocator(a Allocator) Option {
	return func(st *Store) {
		if a != nil {
			st.alloc = a
		}
	}
}

// WithMaxBytes limits every owned buffer to max bytes. Zero means no limit.
func WithMaxBytes(max int) Option {
	return func(st *Store) {
		if max > 0 {
			st.alloc = LimitAllocator{Max: max, Inner: st.alloc}
		}
	}
}

// WithTracer installs a tracer that observes argument borrowing.
func WithTracer(t Tracer) Option {
	return func(st *Store) {
		st.tracer = t
	}
}
