package subbreaker

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/subbreaker/alphabet"
)

// Fitness calculates the fitness of a stream of alphabet indices, i.e. the
// average score of all its quadgrams.
//
// A value close to 100 means the text is probably in the language the model
// has been built from. Lower values indicate more random text, values
// significantly greater than 100 indicate (nonsense) text with too many
// frequent quadgrams.
//
// At least four symbols are required, otherwise ErrInsufficientInput is returned.
// Errors name the model.
func (m *Model) Fitness(reader alphabet.SymbolReader) (float64, error) {
	f, err := m.fitness(reader)
	if err != nil {
		return 0, fmt.Errorf("fitness of %s: %w", m.name, err)
	}
	return f, nil
}

func (m *Model) fitness(reader alphabet.SymbolReader) (float64, error) {
	code := 0
	for range 3 {
		symbol, err := reader.Next()
		if err == io.EOF {
			return 0, ErrInsufficientInput
		} else if err != nil {
			return 0, err
		}
		code = shiftIn(code, symbol)
	}
	var total int64
	count := 0
	for {
		symbol, err := reader.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return 0, err
		}
		code = shiftIn(code, symbol)
		total += int64(m.scores[code])
		count++
	}
	if count == 0 {
		return 0, ErrInsufficientInput
	}
	return float64(total) / float64(count) / 10, nil
}

// FitnessText calculates the fitness of a text. Characters not in the model's
// alphabet are ignored.
func (m *Model) FitnessText(text string) (float64, error) {
	return m.Fitness(alphabet.NewSymbolReader(m.alphabet, strings.NewReader(text)))
}

// FitnessReader calculates the fitness of a text read from r.
func (m *Model) FitnessReader(r io.Reader) (float64, error) {
	return m.Fitness(alphabet.NewSymbolReader(m.alphabet, r))
}
