package sz

// remap maps absolute positions in a root buffer from before an edit to
// after it. An edit replaces del bytes at position at with ins bytes.
type remap struct {
	at, del, ins int

	// target is the string the edit was requested on. It and its ancestors
	// keep their start at the edit point and grow to cover inserted bytes.
	target *Sz

	// rewrite keeps positions as they are; clamping clips them to the new
	// length.
	rewrite bool
}

// owns reports whether s is the edit target or one of its ancestors.
func (m *remap) owns(s *Sz) bool {
	for t := m.target; t != nil; t = t.parent {
		if t == s {
			return true
		}
	}
	return false
}

// start maps the start of a view.
func (m *remap) start(x int, owned bool) int {
	if m.rewrite || x < m.at {
		return x
	}
	x = m.deleted(x)
	if x > m.at || !owned {
		x += m.ins
	}
	return x
}

// end maps the end of a view.
func (m *remap) end(x int, owned bool) int {
	if m.rewrite {
		if owned && x == m.at {
			return x + m.ins
		}
		return x
	}
	if x < m.at {
		return x
	}
	x = m.deleted(x)
	if x > m.at || owned {
		x += m.ins
	}
	return x
}

// deleted maps a position at or after the edit point through the deletion.
func (m *remap) deleted(x int) int {
	switch {
	case x < m.at+m.del:
		return m.at
	default:
		return x - m.del
	}
}

// fixup recomputes the offset and length of every view below s. oldAbs is
// the absolute start of s before the edit; newAbs and newEnd bound s after
// it. Views are clamped inside their parent, so a view never reaches past
// the end of the root.
func (s *Sz) fixup(m *remap, oldAbs, newAbs, newEnd int) {
	for _, k := range s.kids {
		oa := oldAbs + k.offset
		ob := oa + k.length
		owned := m.owns(k)

		na := clamp(m.start(oa, owned), newAbs, newEnd)
		nb := newEnd
		if !k.tail {
			nb = clamp(m.end(ob, owned), na, newEnd)
		}

		k.fixup(m, oa, na, nb)
		k.offset = na - newAbs
		k.length = nb - na
	}
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
