package sz

import (
	"bytes"
	"errors"
	"testing"
)

// FuzzEscapeRoundTrip checks that decoding an encoding yields the input.
func FuzzEscapeRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("hello"))
	f.Add([]byte("a\\b\n"))
	f.Add([]byte{0x00, 0x7f, 0x80, 0xff})

	f.Fuzz(func(t *testing.T, data []byte) {
		st := NewStore()
		enc := Encode(Bytes(data))
		for i := 0; i < len(enc); i++ {
			if enc[i] < 0x20 || enc[i] > 0x7e {
				t.Fatalf("unprintable byte %#x in encoding", enc[i])
			}
		}
		s, err := st.Decode(Str(enc))
		if err != nil {
			t.Fatalf("decode of encoding failed: %v", err)
		}
		if !bytes.Equal(s.Bytes(), data) {
			t.Errorf("round trip mismatch")
		}
		s.Free()
		if st.Leaked() {
			t.Errorf("leaked: %+v", st.Stats())
		}
	})
}

// FuzzDecode checks that arbitrary input either decodes or fails cleanly.
func FuzzDecode(f *testing.F) {
	f.Add(`\x41`)
	f.Add(`\777`)
	f.Add(`\`)
	f.Add(`plain`)

	f.Fuzz(func(t *testing.T, input string) {
		st := NewStore()
		s, err := st.Decode(Str(input))
		if err != nil {
			if s != nil || !errors.Is(err, ErrDecode) {
				t.Fatalf("bad failure: %v", err)
			}
		} else {
			if s.Len() > len(input) {
				t.Errorf("decoded %d bytes from %d", s.Len(), len(input))
			}
			s.Free()
		}
		if st.Leaked() {
			t.Errorf("leaked: %+v", st.Stats())
		}
	})
}

// FuzzInsertDelete tests that a delete undoes an insert.
func FuzzInsertDelete(f *testing.F) {
	f.Add("hello, !", 7, "world")
	f.Add("", 0, "x")
	f.Add("abc", 3, "")

	f.Fuzz(func(t *testing.T, initial string, at int, ins string) {
		at = clamp(at, 0, len(initial))
		s := mustOwn(t, NewStore(), initial)
		defer s.Free()
		before := s.Slice(0, at)
		after := s.ViewAt(at)

		if err := s.Insert(Str(ins), at); err != nil {
			t.Fatal(err)
		}
		if want := initial[:at] + ins + initial[at:]; s.String() != want {
			t.Fatalf("insert: got %q, want %q", s.String(), want)
		}
		if before.String() != initial[:at] {
			t.Errorf("view before the insertion moved: %q", before.String())
		}
		// An insertion at the very end is an append, which tail views follow.
		if at < len(initial) && after.String() != initial[at:] {
			t.Errorf("view after the insertion moved: %q", after.String())
		}

		if err := s.Delete(at, len(ins)); err != nil {
			t.Fatal(err)
		}
		if s.String() != initial {
			t.Errorf("delete: got %q, want %q", s.String(), initial)
		}
	})
}

// FuzzMultipleOperations applies a random edit sequence to a root with
// views and compares the root against a plain byte slice.
func FuzzMultipleOperations(f *testing.F) {
	f.Add("hello world", []byte{0, 1, 2, 3, 4, 5, 6, 7})
	f.Add("", []byte{4, 4, 4, 0, 0})
	f.Add("abc", []byte{})

	f.Fuzz(func(t *testing.T, initial string, ops []byte) {
		st := NewStore()
		s := mustOwn(t, st, initial)
		model := []byte(initial)

		tail := s.ViewAt(len(initial) / 2)
		mid := s.Slice(0, len(initial)/2)
		inner := tail.Slice(0, tail.Len()/2)

		for i, op := range ops {
			pos := int(op) % (len(model) + 1)
			text := []byte{'a' + op%26, 'A' + op%26}

			var err error
			switch i % 6 {
			case 0:
				err = s.Append(Bytes(text))
				model = append(model, text...)
			case 1:
				err = s.Insert(Bytes(text), pos)
				model = append(model[:pos], append(text, model[pos:]...)...)
			case 2:
				n := min(int(op)%4, len(model)-pos)
				err = s.Delete(pos, n)
				model = append(model[:pos], model[pos+n:]...)
			case 3:
				err = s.Truncate(pos)
				model = model[:pos]
			case 4:
				at := mid.AbsOffset() + mid.Len()
				err = mid.Append(Bytes(text))
				model = append(model[:at], append(text, model[at:]...)...)
			case 5:
				err = s.Translate(Str("a-m"), Str("n-z"))
				for j, c := range model {
					if c >= 'a' && c <= 'm' {
						model[j] = c + 13
					}
				}
			}
			if err != nil {
				t.Fatalf("op %d: %v", i, err)
			}
			if !bytes.Equal(s.Bytes(), model) {
				t.Fatalf("op %d: root %q, model %q", i, s.Bytes(), model)
			}
			checkTree(t, s)
			if tail.AbsOffset()+tail.Len() != s.Len() {
				t.Fatalf("op %d: tail view does not end at the root end", i)
			}
		}
		_ = inner
		s.Free()
		if st.Leaked() {
			t.Errorf("leaked: %+v", st.Stats())
		}
	})
}
