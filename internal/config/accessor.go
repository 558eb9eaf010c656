package config

import (
	"fmt"
	"time"

	"fortio.org/safecast"

	"github.com/dshills/szkit/internal/config/loader"
)

// accessor reads typed values from a merged settings map. The first error
// is kept and later reads become no-ops.
type accessor struct {
	data map[string]any
	err  error
}

func (a *accessor) get(path string) (any, bool) {
	if a.err != nil {
		return nil, false
	}
	return loader.GetByPath(a.data, path)
}

func (a *accessor) fail(path, expected string, val any) {
	a.err = &TypeError{Path: path, Expected: expected, Actual: fmt.Sprintf("%T", val)}
}

func (a *accessor) String(path string, dst *string) {
	val, ok := a.get(path)
	if !ok {
		return
	}
	s, ok := val.(string)
	if !ok {
		a.fail(path, "string", val)
		return
	}
	*dst = s
}

func (a *accessor) Bool(path string, dst *bool) {
	val, ok := a.get(path)
	if !ok {
		return
	}
	switch v := val.(type) {
	case bool:
		*dst = v
	case int64:
		*dst = v != 0
	case int:
		*dst = v != 0
	default:
		a.fail(path, "boolean", val)
	}
}

func (a *accessor) Int(path string, dst *int) {
	val, ok := a.get(path)
	if !ok {
		return
	}
	var (
		n   int
		err error
	)
	switch v := val.(type) {
	case int:
		n = v
	case int64:
		n, err = safecast.Conv[int](v)
	case uint64:
		n, err = safecast.Conv[int](v)
	case float64:
		n, err = safecast.Convert[int](v)
	default:
		a.fail(path, "integer", val)
		return
	}
	if err != nil {
		a.err = fmt.Errorf("%s: %w", path, err)
		return
	}
	*dst = n
}

// Duration accepts duration strings ("500ms") and integers, which are read
// as milliseconds.
func (a *accessor) Duration(path string, dst *time.Duration) {
	val, ok := a.get(path)
	if !ok {
		return
	}
	switch v := val.(type) {
	case time.Duration:
		*dst = v
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			a.err = fmt.Errorf("invalid duration string at %s: %w", path, err)
			return
		}
		*dst = d
	case int:
		*dst = time.Duration(v) * time.Millisecond
	case int64:
		*dst = time.Duration(v) * time.Millisecond
	default:
		a.fail(path, "duration", val)
	}
}
