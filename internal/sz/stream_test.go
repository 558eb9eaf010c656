package sz

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func readAll(t *testing.T, st *Store, r *bufio.Reader, delims Arg) []string {
	t.Helper()
	var out []string
	for {
		s, err := st.ReadDelim(r, delims)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, s.String())
		s.Free()
	}
}

func TestReadDelim(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		delims Arg
		want   []string
	}{
		{"lines", "one\ntwo\nthree\n", Str("\n"), []string{"one", "two", "three"}},
		{"no final delimiter", "one\ntwo", Str("\n"), []string{"one", "two"}},
		{"any delimiter", "a,b;c", Str(",;"), []string{"a", "b", "c"}},
		{"empty records", "a,,b", Str(","), []string{"a", "", "b"}},
		{"to eof", "a\nb\n", nil, []string{"a\nb\n"}},
		{"empty delims", "a\nb", Str(""), []string{"a\nb"}},
		{"empty input", "", Str("\n"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStore()
			got := readAll(t, st, bufio.NewReader(strings.NewReader(tt.input)), tt.delims)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if st.Leaked() {
				t.Errorf("leaked: %+v", st.Stats())
			}
		})
	}
}

func TestReadDelimLongRecord(t *testing.T) {
	long := strings.Repeat("x", 10000)
	r := bufio.NewReaderSize(strings.NewReader(long+"\nshort"), 16)
	got := readAll(t, NewStore(), r, Str("\n"))
	if len(got) != 2 || got[0] != long || got[1] != "short" {
		t.Errorf("got %d records", len(got))
	}
}

func TestReadDelimError(t *testing.T) {
	boom := errors.New("boom")
	st := NewStore()
	r := bufio.NewReader(io.MultiReader(strings.NewReader("ab"), iotest.ErrReader(boom)))
	s, err := st.ReadDelim(r, Str("\n"))
	if !errors.Is(err, boom) || s != nil {
		t.Fatalf("got %v, %v; want boom", s, err)
	}
	if st.Leaked() {
		t.Errorf("leaked: %+v", st.Stats())
	}
}

func TestReadDelimAllocLimit(t *testing.T) {
	st := NewStore(WithMaxBytes(4))
	r := bufio.NewReader(strings.NewReader("toolong\n"))
	if _, err := st.ReadDelim(r, Str("\n")); !errors.Is(err, ErrAlloc) {
		t.Errorf("error = %v, want ErrAlloc", err)
	}
}

func TestReadDelimLongRecordUnderLimit(t *testing.T) {
	st := NewStore(WithMaxBytes(6000))
	long := strings.Repeat("x", 5000)
	r := bufio.NewReader(strings.NewReader(long + "\n"))
	s, err := st.ReadDelim(r, Str("\n"))
	if err != nil {
		t.Fatalf("ReadDelim: %v", err)
	}
	if s.Len() != 5000 || s.String() != long {
		t.Errorf("record length = %d, want 5000", s.Len())
	}
	s.Free()
	if st.Leaked() {
		t.Errorf("leaked: %+v", st.Stats())
	}
}

func TestWriteTo(t *testing.T) {
	s := mustOwn(t, NewStore(), "hello world")
	v := s.Slice(6, 11)
	var buf bytes.Buffer
	n, err := WriteTo(&buf, v)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 || buf.String() != "world" {
		t.Errorf("wrote %d bytes %q", n, buf.String())
	}
}

func TestCopyInto(t *testing.T) {
	dst := make([]byte, 3)
	if n := CopyInto(dst, Str("hello")); n != 3 || string(dst) != "hel" {
		t.Errorf("copied %d: %q", n, dst)
	}
	dst = make([]byte, 8)
	if n := CopyInto(dst, Str("hi")); n != 2 {
		t.Errorf("copied %d", n)
	}
}
