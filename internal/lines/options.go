package lines

import (
	"io"

	"github.com/dshills/szkit/internal/sz"
)

// MatchOption configures a matching filter.
type MatchOption func(*matcher)

// IgnoreCase makes matching fold ASCII letters.
func IgnoreCase(on bool) MatchOption {
	return func(m *matcher) {
		m.fold = on
	}
}

// Options configures Run.
type Options struct {
	// Delims are the bytes that end an input record. Empty means "\n".
	Delims string

	// Separator is written after every output record. Nil means "\n".
	Separator []byte

	// Store creates the line strings. Nil means sz.DefaultStore.
	Store *sz.Store

	// Emit writes a kept line. Nil writes the bytes of the line.
	Emit func(w io.Writer, line *sz.Sz) error
}

func (o *Options) defaults() {
	if o.Delims == "" {
		o.Delims = "\n"
	}
	if o.Separator == nil {
		o.Separator = []byte{'\n'}
	}
	if o.Store == nil {
		o.Store = sz.DefaultStore
	}
	if o.Emit == nil {
		o.Emit = func(w io.Writer, line *sz.Sz) error {
			_, err := sz.WriteTo(w, line)
			return err
		}
	}
}
