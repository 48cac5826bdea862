package alphabet

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestNewAlphabet(t *testing.T) {
	a, err := New("ABCdef")
	if err != nil {
		t.Fatal(err)
	}
	if a.String() != "abcdef" {
		t.Fatalf("alphabet should be folded to lower case, is %q", a.String())
	}
	if a.Len() != 6 {
		t.Fatalf("expected 6 symbols, have %d", a.Len())
	}
	tests := []struct {
		r     rune
		index int
		ok    bool
	}{
		{r: 'a', index: 0, ok: true},
		{r: 'A', index: 0, ok: true},
		{r: 'F', index: 5, ok: true},
		{r: 'g', index: -1, ok: false},
		{r: ' ', index: -1, ok: false},
	}
	for _, tt := range tests {
		i, ok := a.Index(tt.r)
		if i != tt.index || ok != tt.ok {
			t.Fatalf("Index(%q) = (%d, %v), want (%d, %v)", tt.r, i, ok, tt.index, tt.ok)
		}
	}
}

func TestAlphabetNotUnique(t *testing.T) {
	for _, s := range []string{"abcdc", "ABCDEa"} {
		_, err := New(s)
		if !errors.Is(err, ErrNotUnique) {
			t.Fatalf("expected ErrNotUnique for %q, got %v", s, err)
		}
		if !strings.Contains(err.Error(), "unique") {
			t.Fatalf("error message should name uniqueness: %v", err)
		}
	}
	if _, err := New(""); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestAlphabetUmlauts(t *testing.T) {
	a := MustNew(Default + "äöüß")
	i, ok := a.Index('Ä')
	if !ok || i != 26 {
		t.Fatalf("Ä should map to 26, is %d (%v)", i, ok)
	}
	if i, _ := a.Index('ß'); i != 29 {
		t.Fatalf("ß should map to 29, is %d", i)
	}
	if ascii := MustNew(Default); ascii.lookup.numPages() != 1 {
		t.Fatalf("expected a single lookup page, have %d", ascii.lookup.numPages())
	}
}

func TestProjectAndPositions(t *testing.T) {
	a := MustNew("abc")
	bin := a.Project("A-b, c? cab!")
	want := []int{0, 1, 2, 2, 0, 1}
	if !reflect.DeepEqual(bin, want) {
		t.Fatalf("projection mismatch: got %v, want %v", bin, want)
	}
	positions := a.Positions(bin)
	wantPos := [][]int{{0, 4}, {1, 5}, {2, 3}}
	if !reflect.DeepEqual(positions, wantPos) {
		t.Fatalf("positions mismatch: got %v, want %v", positions, wantPos)
	}
	if d := a.Decode(bin); d != "abccab" {
		t.Fatalf("decode mismatch: %q", d)
	}
}

func TestSymbolReader(t *testing.T) {
	a := MustNew(Default)
	r := NewSymbolReader(a, strings.NewReader("Hi, 42 yo!"))
	var got []int
	for {
		i, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, i)
	}
	if !reflect.DeepEqual(got, []int{7, 8, 24, 14}) {
		t.Fatalf("symbol stream mismatch: %v", got)
	}
	sr := NewSliceReader([]int{3})
	if i, err := sr.Next(); i != 3 || err != nil {
		t.Fatalf("expected 3, got %d (%v)", i, err)
	}
	if _, err := sr.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}
