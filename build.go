package subbreaker

import (
	"fmt"
	"io"
	"math"

	"github.com/npillmayer/subbreaker/alphabet"
)

// BuildModel compiles a quadgram model from a text corpus.
//
// Only characters of the alphabet are considered (case insensitive), all
// other characters are skipped. The alphabet may have at most MaxAlphabetLen
// symbols.
//
// Scores are derived as follows:
//
//   - the occurrences of every quadgram within the corpus are counted
//   - quadgrams which do not occur are given a pseudo-count of 1/10th of the
//     least frequent quadgram, which keeps them far below any observed one
//   - the score is the logarithm of the relative frequency, shifted to make
//     the pseudo-count floor score 0
//   - scores are normalized such that the expected score of a quadgram of the
//     corpus is 100 (stored ×10 as an integer).
func BuildModel(name string, corpus io.Reader, alpha string) (*Model, error) {
	a, err := alphabet.New(alpha)
	if err != nil {
		return nil, err
	}
	return BuildModelFrom(name, a, alphabet.NewSymbolReader(a, corpus))
}

// BuildModelFrom compiles a quadgram model from a stream of alphabet indices.
// Indices delivered by reader must be valid for alphabet a.
func BuildModelFrom(name string, a *alphabet.Alphabet, reader alphabet.SymbolReader) (*Model, error) {
	if a.Len() > MaxAlphabetLen {
		return nil, fmt.Errorf("%w (alphabet has %d)", ErrAlphabetTooLarge, a.Len())
	}
	counts, err := countQuadgrams(reader)
	if err != nil {
		return nil, err
	}
	var total, minCount int64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		total += c
		if minCount == 0 || c < minCount {
			minCount = c
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: corpus contains no quadgram", ErrInsufficientInput)
	}
	sum := float64(total)
	offset := math.Log(float64(minCount) / 10 / sum)
	// Quadgrams with a pseudo-count score ln(floor/sum)-offset = 0 and add
	// nothing to norm, so only observed quadgrams need to be visited.
	raw := make([]float64, TableSize)
	norm := 0.0
	for code, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / sum
		raw[code] = math.Log(p) - offset
		norm += p * raw[code]
	}
	assert(norm > 0, "norm of quadgram scores must be positive")
	scores := newScoreTable()
	var scoreSum int64
	for code, r := range raw {
		if r == 0 {
			continue
		}
		scores[code] = int32(math.RoundToEven(r / norm * 1000))
		scoreSum += int64(scores[code])
	}
	maxCode, maxScore := scores.maxEntry()
	q := unpackQuadgram(maxCode)
	n := float64(a.Len())
	m := &Model{
		alphabet: a,
		scores:   scores,
		name:     name,
		info: Info{
			Alphabet:       a.String(),
			NbrQuadgrams:   total,
			MostFrequent:   a.Decode(q[:]),
			MaxFitness:     maxScore,
			AverageFitness: float64(scoreSum) / (n * n * n * n),
		},
	}
	tracer().Infof("quadgram model %q: %d quadgrams, most frequent %q (%.1f), random text %.2f",
		name, total, m.info.MostFrequent, m.info.MaxFitnessValue(), m.info.AverageFitnessValue())
	return m, nil
}

// countQuadgrams slides a 4-symbol window over the stream and counts every
// quadgram code.
func countQuadgrams(reader alphabet.SymbolReader) ([]int64, error) {
	counts := make([]int64, TableSize)
	code, n := 0, 0
	for {
		symbol, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		code = shiftIn(code, symbol)
		if n++; n >= 4 {
			counts[code]++
		}
	}
	if n < 3 {
		return nil, fmt.Errorf("%w: corpus has %d", ErrInsufficientInput, n)
	}
	return counts, nil
}
