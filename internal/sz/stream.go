package sz

import (
	"bufio"
	"errors"
	"io"
)

// ReadDelim reads from r up to the first byte that occurs in delims and
// returns the bytes before it as a new owned root. The delimiter is
// consumed but not included. With no delimiters ReadDelim reads to the end
// of input. io.EOF is returned only when nothing at all could be read.
func ReadDelim(r *bufio.Reader, delims Arg) (*Sz, error) {
	return storeOf(delims).ReadDelim(r, delims)
}

// ReadDelim reads a delimited record into a new root of the store.
func (st *Store) ReadDelim(r *bufio.Reader, delims Arg) (*Sz, error) {
	if _, err := r.Peek(1); err != nil {
		return nil, err
	}

	d := coerce(st, delims)
	defer release(d)
	set := newByteSet(d.bytes())

	s, err := st.New(0)
	if err != nil {
		return nil, err
	}
	for {
		if r.Buffered() == 0 {
			if _, err := r.Peek(1); err != nil {
				if errors.Is(err, io.EOF) {
					return s, nil
				}
				s.Free()
				return nil, err
			}
		}
		chunk, _ := r.Peek(r.Buffered())
		i := set.index(chunk)
		if i < 0 {
			i = len(chunk)
		}
		if err := s.Append(Bytes(chunk[:i])); err != nil {
			s.Free()
			return nil, err
		}
		if i < len(chunk) {
			_, _ = r.Discard(i + 1)
			return s, nil
		}
		_, _ = r.Discard(i)
	}
}

// WriteTo writes the bytes of a to w.
func WriteTo(w io.Writer, a Arg) (int64, error) {
	s := coerce(storeOf(a), a)
	defer release(s)

	n, err := w.Write(s.bytes())
	return int64(n), err
}

// CopyInto copies as many bytes of a as fit into dst and returns the number
// copied.
func CopyInto(dst []byte, a Arg) int {
	s := coerce(storeOf(a), a)
	defer release(s)

	return copy(dst, s.bytes())
}
