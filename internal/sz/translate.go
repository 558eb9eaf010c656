package sz

// Translate replaces every byte of s that occurs in from with the byte at
// the same position in to, like tr(1). Ranges such as a-z are expanded in
// both sets, and a reversed range such as z-a counts down. Bytes whose
// position in from is beyond the end of to are left alone; when a byte
// occurs more than once in from its first position wins.
func (s *Sz) Translate(from, to Arg) error {
	s.check()
	f := coerce(s.store, from)
	defer release(f)
	t := coerce(s.store, to)
	defer release(t)

	fset := expandSet(f.bytes())
	tset := expandSet(t.bytes())

	var table [256]byte
	var mapped [256]bool
	for i, c := range fset {
		if mapped[c] {
			continue
		}
		mapped[c] = true
		if i < len(tset) {
			table[c] = tset[i]
		} else {
			table[c] = c
		}
	}

	if err := s.materialize(); err != nil {
		return err
	}
	b := s.bytes()
	for i, c := range b {
		if mapped[c] {
			b[i] = table[c]
		}
	}
	return nil
}

// expandSet expands the ranges in a translation set. A hyphen at either end
// of the set is literal.
func expandSet(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, 0, len(b))
	out = append(out, b[0])

	i := 1
	for ; i < len(b)-1; i++ {
		if b[i] != '-' {
			out = append(out, b[i])
			continue
		}
		lo, hi := int(b[i-1]), int(b[i+1])
		step := 1
		if lo > hi {
			step = -1
		}
		for j := lo + step; (step > 0 && j <= hi) || (step < 0 && j >= hi); j += step {
			out = append(out, byte(j))
		}
		i++
	}
	if i == len(b)-1 {
		out = append(out, b[i])
	}
	return out
}
