package sz

import (
	"bytes"
	"errors"
	"testing"
)

func mustOwn(t testing.TB, st *Store, s string) *Sz {
	t.Helper()
	z, err := st.OwnString(s)
	if err != nil {
		t.Fatalf("OwnString(%q): %v", s, err)
	}
	return z
}

func expectPanic(t *testing.T, want error, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic %v", want)
		}
		if err, ok := r.(error); !ok || !errors.Is(err, want) {
			t.Fatalf("panic = %v, want %v", r, want)
		}
	}()
	f()
}

func TestOwnCopies(t *testing.T) {
	st := NewStore()
	src := []byte("hello")
	s, err := st.Own(src)
	if err != nil {
		t.Fatal(err)
	}
	src[0] = 'j'
	if s.String() != "hello" {
		t.Errorf("Own should copy, got %q", s.String())
	}
	if s.IsAliasing() {
		t.Error("owned root should not be aliasing")
	}
	if !s.IsRoot() {
		t.Error("Own should return a root")
	}
	if s.Reserved() != 5 {
		t.Errorf("Reserved() = %d, want 5", s.Reserved())
	}
}

func TestNew(t *testing.T) {
	st := NewStore()
	s, err := st.New(3)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(s.Bytes(), []byte{0, 0, 0}) {
		t.Errorf("New(3) = %v, want three zero bytes", s.Bytes())
	}
	if _, err := st.New(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("New(-1) error = %v, want ErrOutOfRange", err)
	}
}

func TestAliasCopyOnWrite(t *testing.T) {
	st := NewStore()
	ext := []byte("foobar")
	s := st.Alias(ext)
	if !s.IsAliasing() {
		t.Fatal("Alias should return an aliasing root")
	}

	if err := s.Append(Str("!")); err != nil {
		t.Fatal(err)
	}
	if string(ext) != "foobar" {
		t.Errorf("external buffer modified: %q", ext)
	}
	if s.IsAliasing() {
		t.Error("root still aliasing after mutation")
	}
	if s.String() != "foobar!" {
		t.Errorf("got %q, want %q", s.String(), "foobar!")
	}
}

func TestAliasCopyOnWriteAllMutations(t *testing.T) {
	tests := []struct {
		name string
		edit func(s *Sz) error
		want string
	}{
		{"insert", func(s *Sz) error { return s.Insert(Str("X"), 1) }, "aXbcdef"},
		{"delete", func(s *Sz) error { return s.Delete(1, 2) }, "adef"},
		{"copy", func(s *Sz) error { return s.Copy(Str("zz")) }, "zz"},
		{"truncate", func(s *Sz) error { return s.Truncate(2) }, "ab"},
		{"translate", func(s *Sz) error { return s.Translate(Str("a-c"), Str("A-C")) }, "ABCdef"},
		{"append byte", func(s *Sz) error { return s.AppendByte('g') }, "abcdefg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := []byte("abcdef")
			s := NewStore().Alias(ext)
			if err := tt.edit(s); err != nil {
				t.Fatal(err)
			}
			if string(ext) != "abcdef" {
				t.Errorf("external buffer modified: %q", ext)
			}
			if s.IsAliasing() {
				t.Error("root still aliasing")
			}
			if s.String() != tt.want {
				t.Errorf("got %q, want %q", s.String(), tt.want)
			}
		})
	}
}

func TestFreezeKeepsReturnedBytes(t *testing.T) {
	st := NewStore()
	s := mustOwn(t, st, "abc")
	before := s.Bytes()
	s.Freeze()
	if !s.IsAliasing() {
		t.Fatal("Freeze should mark the root aliasing")
	}
	if err := s.Translate(Str("a"), Str("z")); err != nil {
		t.Fatal(err)
	}
	if string(before) != "abc" {
		t.Errorf("frozen bytes changed to %q", before)
	}
	if s.String() != "zbc" {
		t.Errorf("got %q, want %q", s.String(), "zbc")
	}
}

func TestUnfreeze(t *testing.T) {
	s := NewStore().AliasString("abc")
	if err := s.Unfreeze(); err != nil {
		t.Fatal(err)
	}
	if s.IsAliasing() {
		t.Error("Unfreeze should materialize the root")
	}
	if s.String() != "abc" {
		t.Errorf("got %q", s.String())
	}
}

func TestDup(t *testing.T) {
	st := NewStore()
	s := mustOwn(t, st, "hello")
	d, err := st.Dup(s)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Append(Str(" world")); err != nil {
		t.Fatal(err)
	}
	if d.String() != "hello" {
		t.Errorf("dup changed with original: %q", d.String())
	}
	if d.IsAliasing() {
		t.Error("dup of an owned root should be owned")
	}

	a := st.AliasString("alias")
	da, err := st.Dup(a)
	if err != nil {
		t.Fatal(err)
	}
	if !da.IsAliasing() {
		t.Error("dup of an aliasing root should alias")
	}

	v := s.Slice(6, 11)
	dv, err := Dup(v)
	if err != nil {
		t.Fatal(err)
	}
	if !dv.IsRoot() || dv.String() != "world" {
		t.Errorf("dup of view = %q (root %v)", dv.String(), dv.IsRoot())
	}
	if dv.Store() != st {
		t.Error("Dup of a managed string should use its store")
	}
}

func TestGrowthDoubles(t *testing.T) {
	s := mustOwn(t, NewStore(), "ab")
	if err := s.AppendByte('c'); err != nil {
		t.Fatal(err)
	}
	if s.Reserved() != 4 {
		t.Errorf("Reserved() = %d, want 4", s.Reserved())
	}
	if err := s.AppendByte('d'); err != nil {
		t.Fatal(err)
	}
	if s.Reserved() != 4 {
		t.Errorf("Reserved() = %d, want 4 after filling", s.Reserved())
	}
	if err := s.Append(Str("efghijklmnop")); err != nil {
		t.Fatal(err)
	}
	if s.Reserved() != 16 {
		t.Errorf("Reserved() = %d, want 16", s.Reserved())
	}
}

func TestGrowthFallsBackUnderLimit(t *testing.T) {
	tests := []struct {
		name     string
		max      int
		start    int
		add      int
		wantLen  int
		wantCap  int
		overflow bool
	}{
		{"doubling fits", 200, 60, 40, 100, 120, false},
		{"doubling refused", 100, 60, 40, 100, 100, true},
		{"exact fit from empty", 10, 0, 10, 10, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStore(WithMaxBytes(tt.max))
			s, err := st.New(tt.start)
			if err != nil {
				t.Fatal(err)
			}
			if err := s.Append(Bytes(make([]byte, tt.add))); err != nil {
				t.Fatalf("Append: %v", err)
			}
			if s.Len() != tt.wantLen || s.Reserved() != tt.wantCap {
				t.Errorf("Len() = %d, Reserved() = %d; want %d, %d", s.Len(), s.Reserved(), tt.wantLen, tt.wantCap)
			}
			err = s.AppendByte('x')
			if tt.overflow {
				if !errors.Is(err, ErrAlloc) {
					t.Errorf("append past limit: error = %v, want ErrAlloc", err)
				}
				if s.Len() != tt.wantLen {
					t.Errorf("Len() = %d after failed append", s.Len())
				}
			} else if err != nil {
				t.Errorf("append within capacity: %v", err)
			}
			s.Free()
			if st.Leaked() {
				t.Errorf("leaked: %+v", st.Stats())
			}
		})
	}
}

func TestAllocFailureLeavesRootUnchanged(t *testing.T) {
	st := NewStore(WithMaxBytes(8))
	s := mustOwn(t, st, "12345678")
	v := s.ViewAt(4)

	edits := map[string]func() error{
		"append": func() error { return s.Append(Str("9")) },
		"insert": func() error { return s.Insert(Str("0"), 0) },
		"copy":   func() error { return s.Copy(Str("123456789")) },
		"copyn":  func() error { return s.CopyN(Str("x"), 9) },
	}
	for name, edit := range edits {
		t.Run(name, func(t *testing.T) {
			err := edit()
			if !errors.Is(err, ErrAlloc) {
				t.Fatalf("error = %v, want ErrAlloc", err)
			}
			if s.String() != "12345678" {
				t.Errorf("root = %q after failed edit", s.String())
			}
			if v.String() != "5678" {
				t.Errorf("view = %q after failed edit", v.String())
			}
			if s.Reserved() != 8 {
				t.Errorf("Reserved() = %d after failed edit", s.Reserved())
			}
		})
	}
}

func TestAllocFailureOnAlias(t *testing.T) {
	st := NewStore(WithMaxBytes(8))
	s := st.AliasString("0123456789")
	if err := s.AppendByte('x'); !errors.Is(err, ErrAlloc) {
		t.Fatalf("error = %v, want ErrAlloc", err)
	}
	if !s.IsAliasing() {
		t.Error("failed materialize should leave the root aliasing")
	}
	if s.String() != "0123456789" {
		t.Errorf("got %q", s.String())
	}
}

type failingAllocator struct{}

var errNoMemory = errors.New("no memory")

func (failingAllocator) Alloc(int) ([]byte, error) { return nil, errNoMemory }

func TestAllocatorErrorWrapped(t *testing.T) {
	st := NewStore(WithAllocator(failingAllocator{}))
	_, err := st.OwnString("x")
	if !errors.Is(err, ErrAlloc) {
		t.Errorf("error = %v, want ErrAlloc", err)
	}
	if !errors.Is(err, errNoMemory) {
		t.Errorf("error = %v, want the allocator's cause", err)
	}
}

func TestFreeRetiresViews(t *testing.T) {
	st := NewStore()
	s := mustOwn(t, st, "hello world")
	v := s.ViewAt(6)
	w := v.ViewAt(1)

	s.Free()
	for name, z := range map[string]*Sz{"root": s, "view": v, "nested": w} {
		if !z.IsRetired() {
			t.Errorf("%s not retired", name)
		}
	}
	if st.Leaked() {
		t.Errorf("store leaked: %+v", st.Stats())
	}
	expectPanic(t, ErrRetired, func() { _ = v.Len() })
	expectPanic(t, ErrRetired, func() { _ = s.String() })
}

func TestFreeView(t *testing.T) {
	st := NewStore()
	s := mustOwn(t, st, "hello")
	v := s.ViewAt(1)
	w := v.ViewAt(1)
	v.Free()
	if len(s.Views()) != 0 {
		t.Errorf("root still has %d views", len(s.Views()))
	}
	if !w.IsRetired() {
		t.Error("view of a freed view should be retired")
	}
	if s.String() != "hello" {
		t.Errorf("root changed to %q", s.String())
	}
	s.Free()
	if st.Leaked() {
		t.Errorf("store leaked: %+v", st.Stats())
	}
}

func TestFreeBorrowedPanics(t *testing.T) {
	s := mustOwn(t, NewStore(), "x")
	s.depth = 1
	expectPanic(t, ErrBorrowed, s.Free)
	s.depth = 0
	s.Free()
}

func TestFreeNil(t *testing.T) {
	var s *Sz
	s.Free()
	if s.String() != "" {
		t.Error("nil string should render empty")
	}
}

func TestStats(t *testing.T) {
	st := NewStore()
	s := mustOwn(t, st, "a:b")
	_ = s.ViewAt(1)
	if err := s.Append(Str("c")); err != nil {
		t.Fatal(err)
	}
	got := st.Stats()
	// root, view and the transient wrapper of "c"
	if got.Made != 3 || got.Freed != 1 || got.Live() != 2 {
		t.Errorf("Stats() = %+v, live %d", got, got.Live())
	}
	s.Free()
	if st.Leaked() {
		t.Errorf("Leaked() after Free, stats %+v", st.Stats())
	}
}

func TestBytesIsCapped(t *testing.T) {
	s := mustOwn(t, NewStore(), "abcdef")
	if err := s.Truncate(3); err != nil {
		t.Fatal(err)
	}
	b := s.Bytes()
	if cap(b) != len(b) {
		t.Errorf("Bytes() cap = %d, len = %d", cap(b), len(b))
	}
	_ = append(b, 'Z')
	if err := s.Append(Str("def")); err != nil {
		t.Fatal(err)
	}
	if s.String() != "abcdef" {
		t.Errorf("got %q", s.String())
	}
}
