package quadjson

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/npillmayer/subbreaker"
)

func buildModel(t *testing.T, name, corpus, alpha string) *subbreaker.Model {
	t.Helper()
	m, err := subbreaker.BuildModel(name, strings.NewReader(corpus), alpha)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestWriteRead(t *testing.T) {
	m := buildModel(t, "EN", "the quick brown fox jumps over the lazy dog", "abcdefghijklmnopqrstuvwxyz")
	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"alphabet"`, `"nbr_quadgrams"`, `"most_frequent_quadgram"`,
		`"max_fitness"`, `"average_fitness"`, `"quadgrams"`} {
		if !bytes.Contains(buf.Bytes(), []byte(field)) {
			t.Errorf("JSON is missing field %s", field)
		}
	}
	clone, err := Read("clone", &buf)
	if err != nil {
		t.Fatal(err)
	}
	if clone.Info() != m.Info() {
		t.Fatalf("info differs after reading: %+v vs %+v", clone.Info(), m.Info())
	}
	if !slices.Equal(clone.Record().Quadgrams, m.Record().Quadgrams) {
		t.Fatalf("quadgram table differs after reading")
	}
	text := "over the brown dog"
	f1, _ := m.FitnessText(text)
	f2, _ := clone.FitnessText(text)
	if f1 != f2 {
		t.Errorf("fitness differs: %.2f vs %.2f", f1, f2)
	}
}

func TestReadInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"syntax", `{"alphabet": "abc", `},
		{"short table", `{"alphabet": "abc", "quadgrams": [1, 2, 3]}`},
		{"duplicate symbols", `{"alphabet": "abca", "quadgrams": []}`},
	}
	for _, tt := range tests {
		if _, err := Read(tt.name, strings.NewReader(tt.json)); !errors.Is(err, subbreaker.ErrInvalidModel) {
			t.Errorf("%s: expected ErrInvalidModel, got %v", tt.name, err)
		}
	}
}

func TestLanguageDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, lang := range []string{"EN", "DE"} {
		m := buildModel(t, lang, "a small corpus for language "+lang, "abcdefghijklmnopqrstuvwxyz")
		if err := SaveFile(filepath.Join(dir, lang+Ext), m); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not a model"), 0o644); err != nil {
		t.Fatal(err)
	}
	langs, err := Languages(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(langs, []string{"DE", "EN"}) {
		t.Fatalf("expected languages [DE EN], have %v", langs)
	}
	m, err := LoadLanguage(dir, "DE")
	if err != nil {
		t.Fatal(err)
	}
	if m.Name() != "DE" {
		t.Errorf("model should be named after its file, is %q", m.Name())
	}
	if _, err := LoadLanguage(dir, "FR"); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("expected ErrUnknownLanguage, got %v", err)
	}
}
