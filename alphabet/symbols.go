package alphabet

import (
	"bufio"
	"io"
)

// SymbolReader yields alphabet indices one-by-one.
// It should return io.EOF when the stream is exhausted.
type SymbolReader interface {
	Next() (int, error)
}

// TextReader streams the projection of a text through an alphabet.
// Characters not in the alphabet are skipped.
type TextReader struct {
	alphabet *Alphabet
	reader   io.RuneReader
}

// NewSymbolReader creates a SymbolReader for a text stream.
func NewSymbolReader(a *Alphabet, r io.Reader) *TextReader {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	return &TextReader{alphabet: a, reader: rr}
}

// Next returns the index of the next character of the text which belongs to
// the alphabet. It returns io.EOF when the text is exhausted.
func (tr *TextReader) Next() (int, error) {
	for {
		r, _, err := tr.reader.ReadRune()
		if err != nil {
			return -1, err
		}
		if i, ok := tr.alphabet.Index(r); ok {
			return i, nil
		}
	}
}

// SliceReader is a SymbolReader over an already projected sequence.
type SliceReader struct {
	symbols []int
	index   int
}

// NewSliceReader creates a SymbolReader for a sequence of alphabet indices.
func NewSliceReader(symbols []int) *SliceReader {
	return &SliceReader{symbols: symbols}
}

// Next returns the next index, or io.EOF.
func (sr *SliceReader) Next() (int, error) {
	if sr.index >= len(sr.symbols) {
		return -1, io.EOF
	}
	sr.index++
	return sr.symbols[sr.index-1], nil
}
