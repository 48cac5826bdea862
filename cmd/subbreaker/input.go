package main

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// textInput is the input text of a command: given with --text, read from a
// file or read from STDIN.
type textInput struct {
	text     string
	file     string
	fileFlag string
}

func addTextInput(cmd *cobra.Command, in *textInput, fileFlag, what string) {
	in.fileFlag = fileFlag
	cmd.Flags().StringVar(&in.text, "text", "",
		"string containing the "+what+"; line breaks and blanks might require shell escaping")
	cmd.Flags().StringVar(&in.file, fileFlag, "",
		"name of the file containing the "+what+"; if neither --text nor --"+fileFlag+
			" is given, the text is read from STDIN")
}

// open returns a reader for the input text. The caller must close it.
func (in *textInput) open(cmd *cobra.Command) (io.ReadCloser, error) {
	hasText := cmd.Flags().Changed("text")
	if hasText && in.file != "" {
		return nil, usageErrorf("--text and --%s are mutually exclusive", in.fileFlag)
	}
	if hasText {
		return io.NopCloser(strings.NewReader(in.text)), nil
	}
	if in.file != "" {
		return os.Open(in.file)
	}
	stdin := cmd.InOrStdin()
	if f, ok := stdin.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil, usageErrorf("no input: use --text or --%s, or pipe the text into STDIN", in.fileFlag)
	}
	return io.NopCloser(stdin), nil
}

// read returns the complete input text.
func (in *textInput) read(cmd *cobra.Command) (string, error) {
	r, err := in.open(cmd)
	if err != nil {
		return "", err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	return string(data), err
}

// textOutput is an optional output file; STDOUT is used without it.
type textOutput struct {
	file string
}

func addTextOutput(cmd *cobra.Command, out *textOutput, fileFlag string) {
	cmd.Flags().StringVar(&out.file, fileFlag, "",
		"name of the file the output is written to; if not given, the output is printed to STDOUT")
}

// create returns the output writer and a function to close it.
func (out *textOutput) create(cmd *cobra.Command) (io.Writer, func() error, error) {
	if out.file == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(out.file)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
