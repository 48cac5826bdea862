package quadjson

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/subbreaker"
)

// Ext is the file extension of quadgram files.
const Ext = ".json"

// ErrUnknownLanguage is returned if no quadgram file exists for a language.
var ErrUnknownLanguage = errors.New("no quadgram file for language")

func tracer() tracing.Trace {
	return tracing.Select("subbreaker")
}

// Read decodes a quadgram model from JSON:
//
//	{
//	  "alphabet": "abcdefghijklmnopqrstuvwxyz",
//	  "nbr_quadgrams": 4224127912,
//	  "most_frequent_quadgram": "tion",
//	  "max_fitness": 1611,
//	  "average_fitness": 29.1,
//	  "quadgrams": [0, 0, 113, ...]
//	}
//
// "quadgrams" must hold exactly subbreaker.TableSize fixed-point scores.
func Read(name string, r io.Reader) (*subbreaker.Model, error) {
	var rec subbreaker.Record
	if err := json.NewDecoder(bufio.NewReader(r)).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", subbreaker.ErrInvalidModel, name, err)
	}
	return subbreaker.NewModel(name, rec)
}

// Write encodes m as JSON.
func Write(w io.Writer, m *subbreaker.Model) error {
	bw := bufio.NewWriter(w)
	if err := json.NewEncoder(bw).Encode(m.Record()); err != nil {
		return err
	}
	return bw.Flush()
}

// LoadFile reads a model from a quadgram file. The model is named after the
// file, without directory and extension.
func LoadFile(path string) (*subbreaker.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Read(name, f)
}

// SaveFile writes a model to a quadgram file, replacing an existing one.
func SaveFile(path string, m *subbreaker.Model) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err = Write(f, m); err != nil {
		return err
	}
	tracer().Infof("quadgram model %q written to %s", m.Name(), path)
	return nil
}

// Languages lists the languages with a quadgram file in dir, sorted.
func Languages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var langs []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == Ext {
			langs = append(langs, strings.TrimSuffix(e.Name(), Ext))
		}
	}
	slices.Sort(langs)
	return langs, nil
}

// LoadLanguage reads the quadgram file <dir>/<lang>.json.
func LoadLanguage(dir, lang string) (*subbreaker.Model, error) {
	m, err := LoadFile(filepath.Join(dir, lang+Ext))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w %q in %s", ErrUnknownLanguage, lang, dir)
	}
	return m, err
}
