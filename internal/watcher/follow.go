package watcher

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"time"
)

// Tail reads the bytes appended to a file since the previous read.
type Tail struct {
	path   string
	offset int64
	info   os.FileInfo
}

// NewTail returns a Tail positioned at the start of path.
func NewTail(path string) *Tail {
	return &Tail{path: path}
}

// Offset returns the number of bytes consumed so far.
func (t *Tail) Offset() int64 {
	return t.offset
}

// Next calls fn with the bytes written since the previous call. A file
// that shrank or was replaced is read again from the start. fn is not
// called when nothing new was written.
func (t *Tail) Next(fn func(r io.Reader) error) error {
	f, err := os.Open(t.path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if t.info != nil && !os.SameFile(t.info, info) || info.Size() < t.offset {
		t.offset = 0
	}
	t.info = info

	n := info.Size() - t.offset
	if n <= 0 {
		return nil
	}
	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return err
	}
	t.offset += n
	return fn(io.LimitReader(f, n))
}

// Follow calls fn with the current contents of path and then with each
// block of bytes appended to it, until ctx is done. Writes closer together
// than delay are delivered as one block. A block may end inside a record.
func Follow(ctx context.Context, path string, delay time.Duration, fn func(r io.Reader) error) error {
	inner, err := NewFSNotifyWatcher()
	if err != nil {
		return err
	}
	w := NewDebouncedWatcher(inner, delay)
	defer w.Close()

	if err := w.Watch(path); err != nil {
		return err
	}

	t := NewTail(path)
	if err := t.Next(fn); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events():
			if !ok {
				return ErrWatcherClosed
			}
			if !ev.Op.Has(OpWrite) && !ev.Op.Has(OpCreate) {
				continue
			}
			if err := t.Next(fn); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

		case err, ok := <-w.Errors():
			if !ok {
				return ErrWatcherClosed
			}
			return err
		}
	}
}
