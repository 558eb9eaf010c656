package lines

import "github.com/dshills/szkit/internal/sz"

// Match is a half-open byte range of a line.
type Match struct {
	Start, End int
}

type matcher struct {
	pattern string
	fold    bool
}

func newMatcher(pattern string, opts []MatchOption) (matcher, error) {
	p, err := decodePattern(pattern)
	if err != nil {
		return matcher{}, err
	}
	if p == "" {
		return matcher{}, ErrEmptyPattern
	}
	m := matcher{pattern: p}
	for _, opt := range opts {
		opt(&m)
	}
	return m, nil
}

func (m *matcher) matches(line *sz.Sz) bool {
	if !m.fold {
		v := line.ViewAtSubstring(sz.Str(m.pattern))
		if v == nil {
			return false
		}
		v.Free()
		return true
	}
	return m.index(line.Bytes()) >= 0
}

// index returns the first match of the pattern in b, or -1.
func (m *matcher) index(b []byte) int {
	if !m.fold {
		return sz.IndexSubstring(sz.Bytes(b), sz.Str(m.pattern))
	}
	n := len(m.pattern)
	for i := 0; i+n <= len(b); i++ {
		if sz.CompareFoldN(sz.Bytes(b[i:i+n]), sz.Str(m.pattern), n) == 0 {
			return i
		}
	}
	return -1
}

// Highlight returns the non-overlapping matches of pattern in line, in
// order. The pattern is given in escaped form.
func Highlight(line *sz.Sz, pattern string, opts ...MatchOption) ([]Match, error) {
	m, err := newMatcher(pattern, opts)
	if err != nil {
		return nil, err
	}
	return m.all(line.Bytes()), nil
}

func (m *matcher) all(b []byte) []Match {
	var out []Match
	for off := 0; off < len(b); {
		i := m.index(b[off:])
		if i < 0 {
			break
		}
		start := off + i
		end := start + len(m.pattern)
		out = append(out, Match{Start: start, End: end})
		off = end
	}
	return out
}

// Fields splits line into tokens separated by runs of delims. The tokens are
// views of line and are freed with it.
func Fields(line *sz.Sz, delims sz.Arg) []*sz.Sz {
	rest := line.ViewAt(0)
	defer rest.Free()

	var out []*sz.Sz
	for {
		tok, err := rest.SplitNext(delims)
		if err != nil {
			return out
		}
		out = append(out, tok)
	}
}
