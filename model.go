package subbreaker

import (
	"fmt"

	"github.com/npillmayer/subbreaker/alphabet"
)

// Model is a quadgram language model for one alphabet.
//
// A model is immutable once built or loaded. It may be shared by any number
// of concurrent scorers and breakers.
type Model struct {
	alphabet *alphabet.Alphabet
	scores   scoreTable
	info     Info
	name     string
}

// Info holds descriptive data about a model. Fitness values are stored in
// fixed-point format (×10), as they are in a Record.
type Info struct {
	Alphabet       string // alphabet of the model, lower case
	NbrQuadgrams   int64  // number of quadgrams observed in the corpus
	MostFrequent   string // the most frequent quadgram of the corpus, e.g. "tion" for English
	MaxFitness     int32  // score of MostFrequent, ×10
	AverageFitness float64
}

// MaxFitnessValue returns the fitness of the most frequent quadgram.
func (info Info) MaxFitnessValue() float64 {
	return float64(info.MaxFitness) / 10
}

// AverageFitnessValue returns the expected fitness of random text where every
// symbol of the alphabet occurs with the same probability.
func (info Info) AverageFitnessValue() float64 {
	return info.AverageFitness / 10
}

// Record is the serialization format of a model. Quadgrams holds exactly
// TableSize fixed-point scores, indexed by quadgram code.
type Record struct {
	Alphabet             string  `json:"alphabet"`
	NbrQuadgrams         int64   `json:"nbr_quadgrams"`
	MostFrequentQuadgram string  `json:"most_frequent_quadgram"`
	MaxFitness           int32   `json:"max_fitness"`
	AverageFitness       float64 `json:"average_fitness"`
	Quadgrams            []int32 `json:"quadgrams"`
}

// NewModel creates a model from a deserialized record. The model takes
// ownership of rec.Quadgrams; clients must not modify it afterwards.
func NewModel(name string, rec Record) (*Model, error) {
	a, err := alphabet.New(rec.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	if a.Len() > MaxAlphabetLen {
		return nil, ErrAlphabetTooLarge
	}
	if len(rec.Quadgrams) != TableSize {
		return nil, fmt.Errorf("%w: quadgram table has %d entries, expected %d",
			ErrInvalidModel, len(rec.Quadgrams), TableSize)
	}
	m := &Model{
		alphabet: a,
		scores:   scoreTable(rec.Quadgrams),
		name:     name,
		info: Info{
			Alphabet:       a.String(),
			NbrQuadgrams:   rec.NbrQuadgrams,
			MostFrequent:   rec.MostFrequentQuadgram,
			MaxFitness:     rec.MaxFitness,
			AverageFitness: rec.AverageFitness,
		},
	}
	tracer().Infof("loaded quadgram model %q for alphabet %q", name, a)
	return m, nil
}

// Record returns the serialization record of a model. The quadgram table is
// shared with the model and must be treated as read-only.
func (m *Model) Record() Record {
	return Record{
		Alphabet:             m.info.Alphabet,
		NbrQuadgrams:         m.info.NbrQuadgrams,
		MostFrequentQuadgram: m.info.MostFrequent,
		MaxFitness:           m.info.MaxFitness,
		AverageFitness:       m.info.AverageFitness,
		Quadgrams:            m.scores,
	}
}

// Name identifies the model, e.g. the language or the file it has been loaded from.
func (m *Model) Name() string {
	return m.name
}

// Alphabet returns the alphabet the model has been built for.
func (m *Model) Alphabet() *alphabet.Alphabet {
	return m.alphabet
}

// Info returns descriptive data about the model.
func (m *Model) Info() Info {
	return m.info
}

// Score returns the fixed-point score (×10) of the quadgram made of symbols
// s0…s3 (alphabet indices).
func (m *Model) Score(s0, s1, s2, s3 int) (int32, error) {
	code, err := packQuadgram(s0, s1, s2, s3)
	if err != nil {
		return 0, err
	}
	return m.scores[code], nil
}
