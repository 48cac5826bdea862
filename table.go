package subbreaker

import "fmt"

// Quadgram codes pack four alphabet indices into 20 bits, 5 bits per symbol,
// the first symbol in the most significant position.
const (
	bitsPerSymbol = 5
	symbolMask    = 1<<bitsPerSymbol - 1
	codeMask      = 1<<(3*bitsPerSymbol) - 1 // keeps the three most recent symbols

	// MaxAlphabetLen is the maximum number of symbols a model's alphabet may have.
	MaxAlphabetLen = 1 << bitsPerSymbol
	// TableSize is the number of entries of a quadgram table, independent of
	// the alphabet's length.
	TableSize = 1 << (4 * bitsPerSymbol)
)

// shiftIn appends symbol to a rolling quadgram code, dropping the oldest symbol.
func shiftIn(code, symbol int) int {
	return (code&codeMask)<<bitsPerSymbol | symbol
}

// packQuadgram returns the code for four alphabet indices.
func packQuadgram(s0, s1, s2, s3 int) (int, error) {
	code := 0
	for _, s := range [4]int{s0, s1, s2, s3} {
		if s < 0 || s > symbolMask {
			return 0, fmt.Errorf("symbol index out of range (0..31): %d", s)
		}
		code = code<<bitsPerSymbol | s
	}
	return code, nil
}

// unpackQuadgram returns the four alphabet indices of a code.
func unpackQuadgram(code int) [4]int {
	var q [4]int
	for i := 3; i >= 0; i-- {
		q[i] = code & symbolMask
		code >>= bitsPerSymbol
	}
	return q
}

// scoreTable holds fixed-point quadgram scores (fitness ×10), directly indexed
// by quadgram code. It is never modified once a model is complete and is shared
// by all concurrent scorers.
type scoreTable []int32

func newScoreTable() scoreTable {
	return make(scoreTable, TableSize)
}

// sum returns the total score of all quadgrams of a sequence of alphabet
// indices. seq must have at least 3 entries.
func (t scoreTable) sum(seq []int) int64 {
	code := seq[0]<<(2*bitsPerSymbol) | seq[1]<<bitsPerSymbol | seq[2]
	var total int64
	for _, s := range seq[3:] {
		code = (code&codeMask)<<bitsPerSymbol | s
		total += int64(t[code])
	}
	return total
}

// maxEntry returns the code of the (first) maximum score and the score itself.
func (t scoreTable) maxEntry() (int, int32) {
	maxCode, maxScore := 0, t[0]
	for code, score := range t {
		if score > maxScore {
			maxCode, maxScore = code, score
		}
	}
	return maxCode, maxScore
}
