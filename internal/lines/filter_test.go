package lines

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/szkit/internal/sz"
)

func line(t *testing.T, s string) *sz.Sz {
	t.Helper()
	l, err := sz.OwnString(s)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(l.Free)
	return l
}

func TestIncludeExclude(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		fold    bool
		input   string
		include bool
	}{
		{"match", "err", false, "an error occurred", true},
		{"no match", "err", false, "all good", false},
		{"case sensitive", "ERR", false, "an error", false},
		{"ignore case", "ERR", true, "an error", true},
		{"ignore case miss", "xyz", true, "an error", false},
		{"escaped tab", `a\tb`, false, "a\tb", true},
		{"pattern longer than line", "abcdef", true, "abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inc, err := NewInclude(tt.pattern, IgnoreCase(tt.fold))
			if err != nil {
				t.Fatal(err)
			}
			exc, err := NewExclude(tt.pattern, IgnoreCase(tt.fold))
			if err != nil {
				t.Fatal(err)
			}
			l := line(t, tt.input)
			keep, err := inc.Apply(l)
			if err != nil || keep != tt.include {
				t.Errorf("include = %v, %v; want %v", keep, err, tt.include)
			}
			keep, err = exc.Apply(l)
			if err != nil || keep == tt.include {
				t.Errorf("exclude = %v, %v; want %v", keep, err, !tt.include)
			}
			if len(l.Views()) != 0 {
				t.Error("matching left views behind")
			}
		})
	}
}

func TestFilterConstructionErrors(t *testing.T) {
	if _, err := NewInclude(""); !errors.Is(err, ErrEmptyPattern) {
		t.Errorf("empty include pattern: %v", err)
	}
	if _, err := NewExclude(`\q`); !errors.Is(err, sz.ErrDecode) {
		t.Errorf("bad exclude pattern: %v", err)
	}
	if _, err := NewTranslate(`a`, `\`); !errors.Is(err, sz.ErrDecode) {
		t.Errorf("bad translate pattern: %v", err)
	}
}

func TestTranslateFilter(t *testing.T) {
	f, err := NewTranslate("a-z", "A-Z")
	if err != nil {
		t.Fatal(err)
	}
	l := line(t, "hello, world")
	keep, err := f.Apply(l)
	if err != nil || !keep {
		t.Fatalf("Apply = %v, %v", keep, err)
	}
	if l.String() != "HELLO, WORLD" {
		t.Errorf("got %q", l.String())
	}
}

func TestEncodeDecodeFilters(t *testing.T) {
	l := line(t, "a\tb\\")
	if _, err := NewEncode().Apply(l); err != nil {
		t.Fatal(err)
	}
	if l.String() != `a\tb\\` {
		t.Fatalf("encoded %q", l.String())
	}
	if _, err := NewDecode().Apply(l); err != nil {
		t.Fatal(err)
	}
	if l.String() != "a\tb\\" {
		t.Errorf("decoded %q", l.String())
	}

	bad := line(t, `oops\q`)
	if _, err := NewDecode().Apply(bad); !errors.Is(err, sz.ErrDecode) {
		t.Errorf("decode of bad line: %v", err)
	}
	if bad.String() != `oops\q` {
		t.Errorf("failed decode changed the line to %q", bad.String())
	}
}

func TestChain(t *testing.T) {
	inc, _ := NewInclude("keep")
	tr, _ := NewTranslate("a-z", "A-Z")
	chain := Chain{inc, tr}

	l := line(t, "keep me")
	keep, err := chain.Apply(l)
	if err != nil || !keep || l.String() != "KEEP ME" {
		t.Errorf("kept line: %v %v %q", keep, err, l.String())
	}

	l = line(t, "drop me")
	keep, err = chain.Apply(l)
	if err != nil || keep || l.String() != "drop me" {
		t.Errorf("dropped line: %v %v %q", keep, err, l.String())
	}

	bad := line(t, `x\q`)
	_, err = Chain{NewDecode()}.Apply(bad)
	if err == nil || !strings.HasPrefix(err.Error(), "decode:") {
		t.Errorf("chain error should name the filter: %v", err)
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		pattern string
		fold    bool
		want    []Match
	}{
		{"none", "abc", "x", false, nil},
		{"single", "abc", "b", false, []Match{{1, 2}}},
		{"repeated", "abab", "ab", false, []Match{{0, 2}, {2, 4}}},
		{"non overlapping", "aaa", "aa", false, []Match{{0, 2}}},
		{"folded", "Go go GO", "go", true, []Match{{0, 2}, {3, 5}, {6, 8}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Highlight(line(t, tt.input), tt.pattern, IgnoreCase(tt.fold))
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("match %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFields(t *testing.T) {
	l := line(t, "  alpha beta\tgamma  ")
	toks := Fields(l, sz.Str(" \t"))
	want := []string{"alpha", "beta", "gamma"}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens", len(toks))
	}
	for i, tok := range toks {
		if tok.String() != want[i] {
			t.Errorf("token %d = %q, want %q", i, tok.String(), want[i])
		}
		if tok.Parent() != l {
			t.Errorf("token %d is not a view of the line", i)
		}
	}
	if len(l.Views()) != len(want) {
		t.Errorf("line has %d views, want only the tokens", len(l.Views()))
	}
}
