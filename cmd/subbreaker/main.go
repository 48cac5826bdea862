/*
Subbreaker is a collection of tools to work with substitution ciphers.

Usage:

	subbreaker break     [--lang EN] [--text <string> | --ciphertext <path>]
	subbreaker decode    (--key <key> | --keyword <word>) [--text <string> | --ciphertext <path>]
	subbreaker encode    (--key <key> | --keyword <word> | --random) [--text <string> | --plaintext <path>]
	subbreaker fitness   [--lang EN] [--text <string> | --plaintext <path>]
	subbreaker quadgrams [--alphabet <string>] [--corpus <path>] [--quadgrams <path>]
	subbreaker info      [--lang EN]
	subbreaker version

Texts are read from STDIN if neither --text nor an input file is given.
Quadgram files are looked up as <quadgram-dir>/<lang>.json, where the
directory is taken from flag --quadgram-dir or from the configuration file
subbreaker.yaml.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes a command line and returns the exit code: 0 on success, 2 for
// invalid arguments, 1 for all other errors.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}
	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprint(stderr, cmd.UsageString())
		fmt.Fprintf(stderr, "%s: error: %v\n", cmd.CommandPath(), uerr.err)
		return 2
	}
	fmt.Fprintf(stderr, "%s: error: %v\n", cmd.CommandPath(), err)
	return 1
}

// usageError flags errors caused by invalid command line arguments.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func flagError(_ *cobra.Command, err error) error {
	return &usageError{err: err}
}
