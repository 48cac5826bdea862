// Package config holds the settings of the subbreaker command, read from a
// YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/npillmayer/subbreaker"
	"github.com/npillmayer/subbreaker/alphabet"
)

// FileName is the default name of the configuration file.
const FileName = "subbreaker.yaml"

// Config is the content of a configuration file. Zero values in a file are
// replaced by defaults, except for Seed, where 0 selects a time based seed.
type Config struct {
	QuadgramDir string `yaml:"quadgram_dir"`
	DefaultLang string `yaml:"default_lang" validate:"required"`
	Alphabet    string `yaml:"alphabet" validate:"required,alphabet"`
	MaxTries    int    `yaml:"max_tries" validate:"min=1,max=10000"`
	Consolidate int    `yaml:"consolidate" validate:"min=1,max=30"`
	Workers     int    `yaml:"workers" validate:"min=1,max=256"`
	Seed        uint64 `yaml:"seed"`
	TraceLevel  string `yaml:"trace_level" validate:"oneof=Error Info Debug"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("alphabet", validateAlphabet)
}

// validateAlphabet checks for unique symbols and the size limit of quadgram models.
func validateAlphabet(fl validator.FieldLevel) bool {
	a, err := alphabet.New(fl.Field().String())
	return err == nil && a.Len() <= subbreaker.MaxAlphabetLen
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		QuadgramDir: "quadgrams",
		DefaultLang: "EN",
		Alphabet:    alphabet.Default,
		MaxTries:    1000,
		Consolidate: 3,
		Workers:     1,
		TraceLevel:  "Error",
	}
}

// Load reads the configuration file at path. A missing file is not an error,
// the defaults are returned instead.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	cfg.merge(file)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) merge(file Config) {
	if file.QuadgramDir != "" {
		cfg.QuadgramDir = file.QuadgramDir
	}
	if file.DefaultLang != "" {
		cfg.DefaultLang = file.DefaultLang
	}
	if file.Alphabet != "" {
		cfg.Alphabet = file.Alphabet
	}
	if file.MaxTries != 0 {
		cfg.MaxTries = file.MaxTries
	}
	if file.Consolidate != 0 {
		cfg.Consolidate = file.Consolidate
	}
	if file.Workers != 0 {
		cfg.Workers = file.Workers
	}
	if file.TraceLevel != "" {
		cfg.TraceLevel = file.TraceLevel
	}
	cfg.Seed = file.Seed
}

// Validate checks all settings against their valid ranges.
func (cfg Config) Validate() error {
	err := validate.Struct(cfg)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]error, len(verrs))
		for i, fe := range verrs {
			msgs[i] = fmt.Errorf("%s: %v does not satisfy %q", fe.Field(), fe.Value(), fe.Tag()+paramSuffix(fe.Param()))
		}
		return errors.Join(msgs...)
	}
	return err
}

func paramSuffix(param string) string {
	if param == "" {
		return ""
	}
	return "=" + param
}

// Save writes cfg to path, creating the directory if necessary.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
