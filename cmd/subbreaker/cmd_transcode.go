package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/npillmayer/subbreaker/key"
)

// keyFlags are the alternative ways to specify a key.
type keyFlags struct {
	alphabet string
	key      string
	keyword  string
	random   bool
	seed     uint64
}

func addKeyFlags(cmd *cobra.Command, kf *keyFlags, random bool) {
	cmd.Flags().StringVar(&kf.key, "key", "",
		"key containing all characters of the alphabet exactly once (case insensitive)")
	cmd.Flags().StringVar(&kf.keyword, "keyword", "",
		`keyword to build the key from: its unique characters followed by the remaining `+
			`characters of the alphabet, e.g. "ZEBRAS" leads to "zebrascdfghijklmnopqtuvwxy"`)
	cmd.Flags().StringVar(&kf.alphabet, "alphabet", "",
		"characters of the alphabet, case insensitive, at most 32 for breaking (default from configuration)")
	if random {
		cmd.Flags().BoolVar(&kf.random, "random", false,
			"use a random key, i.e. a shuffled alphabet; the key is printed to STDERR")
		cmd.Flags().Uint64Var(&kf.seed, "seed", 0, "seed for --random (default time based)")
	}
}

// resolve returns the validated key. Exactly one of the key flags must be given.
func (kf *keyFlags) resolve(cmd *cobra.Command, defaultAlphabet string) (*key.Key, error) {
	alpha := kf.alphabet
	if alpha == "" {
		alpha = defaultAlphabet
	}
	given := 0
	for _, set := range []bool{kf.key != "", kf.keyword != "", kf.random} {
		if set {
			given++
		}
	}
	if given != 1 {
		if cmd.Flags().Lookup("random") != nil {
			return nil, usageErrorf("exactly one of --key, --keyword or --random is required")
		}
		return nil, usageErrorf("exactly one of --key or --keyword is required")
	}
	var keystr string
	var err error
	switch {
	case kf.key != "":
		keystr = kf.key
	case kf.keyword != "":
		keystr, err = key.FromKeyword(kf.keyword, alpha)
	default:
		seed := kf.seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		keystr, err = key.Random(alpha, rand.New(rand.NewPCG(seed, seed>>32)))
	}
	if err == nil {
		var k *key.Key
		if k, err = key.New(keystr, alpha); err == nil {
			return k, nil
		}
	}
	if errors.Is(err, key.ErrKeyInvalid) || errors.Is(err, key.ErrAlphabetInvalid) {
		return nil, &usageError{err: err}
	}
	return nil, err
}

type transcodeFlags struct {
	keys   keyFlags
	input  textInput
	output textOutput
}

func (app *app) decodeCmd() *cobra.Command {
	var flags transcodeFlags
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a substitution cipher with a given key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.transcode(cmd, &flags, (*key.Key).Decode, (*key.Key).DecodeStream)
		},
	}
	addKeyFlags(cmd, &flags.keys, false)
	addTextInput(cmd, &flags.input, "ciphertext", "ciphertext")
	addTextOutput(cmd, &flags.output, "plaintext")
	return cmd
}

func (app *app) encodeCmd() *cobra.Command {
	var flags transcodeFlags
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a plaintext with a given key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.transcode(cmd, &flags, (*key.Key).Encode, (*key.Key).EncodeStream)
		},
	}
	addKeyFlags(cmd, &flags.keys, true)
	addTextInput(cmd, &flags.input, "plaintext", "plaintext")
	addTextOutput(cmd, &flags.output, "ciphertext")
	return cmd
}

// transcode encodes or decodes a text given with --text, or streams an input
// file (or STDIN) to the output.
func (app *app) transcode(cmd *cobra.Command, flags *transcodeFlags,
	text func(*key.Key, string) string, stream func(*key.Key, io.Reader, io.Writer) error) error {
	k, err := flags.keys.resolve(cmd, app.cfg.Alphabet)
	if err != nil {
		return err
	}
	if flags.keys.random {
		fmt.Fprintln(cmd.ErrOrStderr(), k.String())
	}
	in, err := flags.input.open(cmd)
	if err != nil {
		return err
	}
	defer in.Close()
	w, closeOutput, err := flags.output.create(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("text") {
		_, err = fmt.Fprintln(w, text(k, flags.input.text))
	} else {
		err = stream(k, in, w)
	}
	if cerr := closeOutput(); err == nil {
		err = cerr
	}
	return err
}
