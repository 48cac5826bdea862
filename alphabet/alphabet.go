/*
Package alphabet provides the ordered symbol sets substitution ciphers work on.

An Alphabet is an ordered sequence of unique symbols. Symbols are compared
case-insensitively: the alphabet itself is stored in lower case, and text
projected through it may use any case. Projecting a text yields the sequence
of alphabet indices for every character which belongs to the alphabet; all
other characters are dropped.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package alphabet

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'subbreaker'
func tracer() tracing.Trace {
	return tracing.Select("subbreaker")
}

// Default is the alphabet used if clients do not specify one.
const Default = "abcdefghijklmnopqrstuvwxyz"

// ErrNotUnique is returned for alphabets containing a symbol more than once.
var ErrNotUnique = errors.New("alphabet characters must be unique")

// ErrEmpty is returned for alphabets without any symbol.
var ErrEmpty = errors.New("alphabet must not be empty")

const maxSymbols = 0xFFFE

// Alphabet is an immutable ordered set of unique, lower-case symbols.
type Alphabet struct {
	symbols []rune
	lookup  pagedMap
}

// New creates an alphabet from a string of unique symbols.
// Symbols are folded to lower case; duplicates after folding are an error.
func New(s string) (*Alphabet, error) {
	symbols := []rune(strings.ToLower(s))
	if len(symbols) == 0 {
		return nil, ErrEmpty
	}
	if len(symbols) > maxSymbols {
		return nil, fmt.Errorf("alphabet too large (%d symbols)", len(symbols))
	}
	a := &Alphabet{symbols: symbols}
	for i, r := range symbols {
		if a.lookup.slot(r) != 0 {
			return nil, fmt.Errorf("%w: %q occurs twice", ErrNotUnique, r)
		}
		slot := uint16(i + 1)
		a.lookup.set(r, slot)
		for _, variant := range []rune{unicode.ToUpper(r), unicode.ToTitle(r)} {
			if variant != r && a.lookup.slot(variant) == 0 {
				a.lookup.set(variant, slot)
			}
		}
	}
	tracer().Debugf("alphabet %q uses %d lookup pages", s, a.lookup.numPages())
	return a, nil
}

// MustNew is like New, but panics on invalid alphabets.
func MustNew(s string) *Alphabet {
	a, err := New(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// String returns the symbols in order, in lower case.
func (a *Alphabet) String() string {
	return string(a.symbols)
}

// Symbol returns the symbol at index i.
func (a *Alphabet) Symbol(i int) rune {
	return a.symbols[i]
}

// Index returns the position of r within the alphabet, ignoring case.
func (a *Alphabet) Index(r rune) (int, bool) {
	if slot := a.lookup.slot(r); slot != 0 {
		return int(slot) - 1, true
	}
	if l := unicode.ToLower(r); l != r {
		if slot := a.lookup.slot(l); slot != 0 {
			return int(slot) - 1, true
		}
	}
	return -1, false
}

// Contains is true if r is a symbol of the alphabet, ignoring case.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.Index(r)
	return ok
}

// Decode renders a sequence of alphabet indices as a string.
func (a *Alphabet) Decode(indices []int) string {
	var b strings.Builder
	for _, i := range indices {
		b.WriteRune(a.symbols[i])
	}
	return b.String()
}

// Project reduces text to the sequence of alphabet indices of all characters
// belonging to the alphabet. Other characters are dropped, i.e. the
// projection cannot be reversed.
func (a *Alphabet) Project(text string) []int {
	bin := make([]int, 0, len(text))
	for _, r := range text {
		if i, ok := a.Index(r); ok {
			bin = append(bin, i)
		}
	}
	return bin
}

// Positions lists, for every alphabet index, the positions within bin where
// it occurs. bin has to be a projection through a.
func (a *Alphabet) Positions(bin []int) [][]int {
	positions := make([][]int, len(a.symbols))
	for pos, i := range bin {
		positions[i] = append(positions[i], pos)
	}
	return positions
}
