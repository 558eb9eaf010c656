package lines

import (
	"fmt"

	"github.com/dshills/szkit/internal/sz"
)

// Filter inspects a line and reports whether to keep it. A filter may
// rewrite the line in place.
type Filter interface {
	Name() string
	Apply(line *sz.Sz) (keep bool, err error)
}

// Chain applies filters in order and stops at the first that drops the
// line.
type Chain []Filter

// Apply runs the chain over line.
func (c Chain) Apply(line *sz.Sz) (bool, error) {
	for _, f := range c {
		keep, err := f.Apply(line)
		if err != nil {
			return false, fmt.Errorf("%s: %w", f.Name(), err)
		}
		if !keep {
			return false, nil
		}
	}
	return true, nil
}

// decodePattern turns an escaped pattern into its raw bytes.
func decodePattern(pattern string) (string, error) {
	d, err := sz.Decode(sz.Str(pattern))
	if err != nil {
		return "", fmt.Errorf("pattern %q: %w", pattern, err)
	}
	defer d.Free()
	return d.String(), nil
}

type includeFilter struct {
	matcher
}

// NewInclude returns a filter that keeps lines containing pattern.
func NewInclude(pattern string, opts ...MatchOption) (Filter, error) {
	m, err := newMatcher(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &includeFilter{m}, nil
}

func (f *includeFilter) Name() string { return "include" }

func (f *includeFilter) Apply(line *sz.Sz) (bool, error) {
	return f.matches(line), nil
}

type excludeFilter struct {
	matcher
}

// NewExclude returns a filter that drops lines containing pattern.
func NewExclude(pattern string, opts ...MatchOption) (Filter, error) {
	m, err := newMatcher(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &excludeFilter{m}, nil
}

func (f *excludeFilter) Name() string { return "exclude" }

func (f *excludeFilter) Apply(line *sz.Sz) (bool, error) {
	return !f.matches(line), nil
}

type translateFilter struct {
	from, to string
}

// NewTranslate returns a filter that maps bytes of from to bytes of to, in
// the manner of tr(1). Both sets may contain ranges like a-z.
func NewTranslate(from, to string) (Filter, error) {
	f, err := decodePattern(from)
	if err != nil {
		return nil, err
	}
	t, err := decodePattern(to)
	if err != nil {
		return nil, err
	}
	return &translateFilter{from: f, to: t}, nil
}

func (f *translateFilter) Name() string { return "translate" }

func (f *translateFilter) Apply(line *sz.Sz) (bool, error) {
	if err := line.Translate(sz.Str(f.from), sz.Str(f.to)); err != nil {
		return false, err
	}
	return true, nil
}

type encodeFilter struct{}

// NewEncode returns a filter that replaces each line with its escaped form.
func NewEncode() Filter {
	return encodeFilter{}
}

func (encodeFilter) Name() string { return "encode" }

func (encodeFilter) Apply(line *sz.Sz) (bool, error) {
	if err := line.Copy(sz.Str(sz.Encode(line))); err != nil {
		return false, err
	}
	return true, nil
}

type decodeFilter struct{}

// NewDecode returns a filter that replaces each line with its unescaped
// form. A malformed line is an error.
func NewDecode() Filter {
	return decodeFilter{}
}

func (decodeFilter) Name() string { return "decode" }

func (decodeFilter) Apply(line *sz.Sz) (bool, error) {
	d, err := line.Store().Decode(line)
	if err != nil {
		return false, err
	}
	defer d.Free()
	if err := line.Copy(d); err != nil {
		return false, err
	}
	return true, nil
}
