package sz

// reserve makes r an owned root with room for n bytes. An aliasing root is
// copied into a fresh buffer first. Growth doubles the capacity, falling back
// to exactly n bytes when the allocator refuses the doubled size. Nothing is
// modified if allocation fails.
func (r *Sz) reserve(n int) error {
	n = max(n, r.length)
	if r.flags&Aliasing != 0 {
		buf, err := r.store.buffer(n)
		if err != nil {
			return err
		}
		copy(buf, r.data[:r.length])
		r.data = buf[:r.length]
		r.flags &^= Aliasing
		return nil
	}
	if n <= cap(r.data) {
		return nil
	}
	want := max(n, 2*cap(r.data))
	buf, err := r.store.buffer(want)
	if err != nil && want > n {
		buf, err = r.store.buffer(n)
	}
	if err != nil {
		return err
	}
	copy(buf, r.data[:r.length])
	r.data = buf[:r.length]
	return nil
}

// materialize ensures s's root owns its buffer.
func (s *Sz) materialize() error {
	r, _ := s.root()
	return r.reserve(r.length)
}

// splice replaces del bytes at offset at of s with ins. The edit is carried
// out on the root; s is the edit target, so an insertion at either end of s
// lands inside s.
func (s *Sz) splice(at, del int, ins []byte) error {
	r, abs := s.root()
	return r.apply(abs+at, del, ins, s, false)
}

// apply performs an edit on the root r at absolute position p and
// propagates the result to every live view. With rewrite set, views keep
// their offsets and are clipped to the new length instead of being shifted
// around the edit window.
func (r *Sz) apply(p, del int, ins []byte, target *Sz, rewrite bool) error {
	old := r.length
	n := old - del + len(ins)
	if err := r.reserve(n); err != nil {
		return err
	}

	if n > old {
		r.data = r.data[:n]
	}
	copy(r.data[p+len(ins):n], r.data[p+del:old])
	copy(r.data[p:], ins)
	r.data = r.data[:n]
	r.length = n

	m := remap{
		at:      p,
		del:     del,
		ins:     len(ins),
		target:  target,
		rewrite: rewrite || (p == old && del == 0),
	}
	r.fixup(&m, 0, 0, n)
	return nil
}

// rewindow moves the window of s to [abs, abs+length) without touching the
// buffer and clamps every view of s into the new window.
func (s *Sz) rewindow(offset, length int) {
	_, oldAbs := s.root()
	newAbs := oldAbs - s.offset + offset
	s.offset = offset
	s.length = length
	s.fixup(&remap{rewrite: true}, oldAbs, newAbs, newAbs+length)
}
