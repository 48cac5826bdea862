package main

import (
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"

	"github.com/npillmayer/subbreaker"
	"github.com/npillmayer/subbreaker/internal/config"
	"github.com/npillmayer/subbreaker/quadjson"
)

// app carries the settings shared by all sub-commands.
type app struct {
	cfg         config.Config
	configPath  string
	traceLevel  string
	quadgramDir string
}

func tracer() tracing.Trace {
	return tracing.Select("subbreaker")
}

func newRootCmd() *cobra.Command {
	app := &app{}
	root := &cobra.Command{
		Use:   "subbreaker",
		Short: "A collection of tools to work with substitution ciphers",
		Long: `A collection of tools to work with substitution ciphers.

Subbreaker encodes and decodes monoalphabetic substitution ciphers and
breaks them without a known plaintext, using quadgram statistics of the
plaintext's language.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: app.setup,
	}
	root.SetFlagErrorFunc(flagError)
	root.PersistentFlags().StringVar(&app.configPath, "config", config.FileName,
		"configuration file; built-in defaults are used if it does not exist")
	root.PersistentFlags().StringVar(&app.traceLevel, "trace", "",
		"trace level: Error, Info or Debug (overrides the configuration file)")
	root.PersistentFlags().StringVar(&app.quadgramDir, "quadgram-dir", "",
		"directory containing the quadgram files <lang>.json (overrides the configuration file)")

	root.AddCommand(app.breakCmd())
	root.AddCommand(app.decodeCmd())
	root.AddCommand(app.encodeCmd())
	root.AddCommand(app.fitnessCmd())
	root.AddCommand(app.quadgramsCmd())
	root.AddCommand(app.infoCmd())
	root.AddCommand(versionCmd())
	return root
}

// setup loads the configuration and installs tracing to STDERR.
func (app *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(app.configPath)
	if err != nil {
		return err
	}
	if app.quadgramDir != "" {
		cfg.QuadgramDir = app.quadgramDir
	}
	if app.traceLevel != "" {
		switch strings.ToLower(app.traceLevel) {
		case "error", "info", "debug":
			cfg.TraceLevel = app.traceLevel
		default:
			return usageErrorf("--trace must be one of Error, Info, Debug")
		}
	}
	app.cfg = cfg
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracer().SetOutput(cmd.ErrOrStderr())
	tracer().SetTraceLevel(tracing.TraceLevelFromString(cfg.TraceLevel))
	tracer().Debugf("configuration: %+v", cfg)
	return nil
}

// modelFlags select the quadgram model of a command.
type modelFlags struct {
	lang string
	file string
}

func addModelFlags(cmd *cobra.Command, mf *modelFlags) {
	cmd.Flags().StringVar(&mf.lang, "lang", "",
		"language of the text, i.e. the name of a quadgram file (default from configuration, EN)")
	cmd.Flags().StringVar(&mf.file, "quadgrams-file", "",
		"path of a quadgram file to use instead of --lang")
}

// loadModel loads the quadgram model selected by mf and returns it together
// with the path of its file.
func (app *app) loadModel(mf *modelFlags) (*subbreaker.Model, string, error) {
	if mf.file != "" {
		m, err := quadjson.LoadFile(mf.file)
		return m, mf.file, err
	}
	lang := mf.lang
	if lang == "" {
		lang = app.cfg.DefaultLang
	}
	path := filepath.Join(app.cfg.QuadgramDir, lang+quadjson.Ext)
	m, err := quadjson.LoadLanguage(app.cfg.QuadgramDir, lang)
	if err != nil {
		if langs, lerr := quadjson.Languages(app.cfg.QuadgramDir); lerr == nil && len(langs) > 0 {
			return nil, path, usageErrorf("%w (available: %s)", err, strings.Join(langs, ", "))
		}
		return nil, path, err
	}
	return m, path, nil
}
