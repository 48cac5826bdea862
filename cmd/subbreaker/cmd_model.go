package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/npillmayer/subbreaker"
	"github.com/npillmayer/subbreaker/alphabet"
	"github.com/npillmayer/subbreaker/quadjson"
)

func (app *app) fitnessCmd() *cobra.Command {
	var model modelFlags
	var input textInput
	cmd := &cobra.Command{
		Use:   "fitness",
		Short: "Calculate the fitness of a plaintext",
		Long: `Calculate the fitness of a plaintext, i.e. how well it matches the quadgram
statistics of a language. Typical text of the language scores around 100.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := app.loadModel(&model)
			if err != nil {
				return err
			}
			r, err := input.open(cmd)
			if err != nil {
				return err
			}
			defer r.Close()
			f, err := m.FitnessReader(r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\n", f)
			return nil
		},
	}
	addModelFlags(cmd, &model)
	addTextInput(cmd, &input, "plaintext", "plaintext")
	return cmd
}

type quadgramsFlags struct {
	alphabet string
	corpus   string
	output   string
	lang     string
}

func (app *app) quadgramsCmd() *cobra.Command {
	var flags quadgramsFlags
	cmd := &cobra.Command{
		Use:   "quadgrams",
		Short: "Create a quadgram file from a text corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runQuadgrams(cmd, &flags)
		},
	}
	cmd.Flags().StringVar(&flags.alphabet, "alphabet", "",
		"characters of the alphabet, case insensitive, at most 32 (default from configuration)")
	cmd.Flags().StringVar(&flags.corpus, "corpus", "",
		"file name of the text corpus; only characters of the alphabet are considered. "+
			"If not given, the corpus is read from STDIN")
	cmd.Flags().StringVar(&flags.output, "quadgrams", "",
		"file name for the generated quadgrams (JSON). If neither --quadgrams nor --lang "+
			"is given, the quadgrams are printed to STDOUT")
	cmd.Flags().StringVar(&flags.lang, "lang", "",
		"store the quadgrams as <lang>.json in the quadgram directory")
	return cmd
}

func (app *app) runQuadgrams(cmd *cobra.Command, flags *quadgramsFlags) error {
	if flags.output != "" && flags.lang != "" {
		return usageErrorf("--quadgrams and --lang are mutually exclusive")
	}
	alpha := flags.alphabet
	if alpha == "" {
		alpha = app.cfg.Alphabet
	}
	a, err := alphabet.New(alpha)
	if err != nil {
		return &usageError{err: err}
	}
	in := textInput{file: flags.corpus, fileFlag: "corpus"}
	r, err := in.open(cmd)
	if err != nil {
		return err
	}
	defer r.Close()
	output := flags.output
	if flags.lang != "" {
		if err := os.MkdirAll(app.cfg.QuadgramDir, 0o755); err != nil {
			return err
		}
		output = filepath.Join(app.cfg.QuadgramDir, flags.lang+quadjson.Ext)
	}
	name := flags.lang
	if name == "" && output != "" {
		name = strings.TrimSuffix(filepath.Base(output), filepath.Ext(output))
	}
	m, err := subbreaker.BuildModelFrom(name, a, alphabet.NewSymbolReader(a, r))
	if err != nil {
		return err
	}
	if output == "" {
		return quadjson.Write(cmd.OutOrStdout(), m)
	}
	return quadjson.SaveFile(output, m)
}

func (app *app) infoCmd() *cobra.Command {
	var model modelFlags
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print information about a quadgram file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, path, err := app.loadModel(&model)
			if err != nil {
				return err
			}
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			printInfo(cmd.OutOrStdout(), path, m.Info())
			return nil
		},
	}
	addModelFlags(cmd, &model)
	return cmd
}

func printInfo(w io.Writer, path string, info subbreaker.Info) {
	fmt.Fprintf(w, "Quadgram file: %s\n", path)
	fmt.Fprintf(w, "Alphabet: %s\n", info.Alphabet)
	fmt.Fprintf(w, "Length of alphabet: %d\n", len([]rune(info.Alphabet)))
	fmt.Fprintf(w, "Number of quadgrams: %s\n", humanize.Comma(info.NbrQuadgrams))
	fmt.Fprintf(w, "Most frequent quadgram: %s\n", info.MostFrequent)
	fmt.Fprintf(w, "Fitness for most frequent quadgram: %.1f\n", info.MaxFitnessValue())
	fmt.Fprintf(w, "Fitness for random text: %.2f\n", info.AverageFitnessValue())
}
