package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/npillmayer/subbreaker"
)

type breakFlags struct {
	model       modelFlags
	input       textInput
	maxTries    int
	consolidate int
	workers     int
	seed        uint64
	maxRuntime  time.Duration
	metricsFile string
}

func (app *app) breakCmd() *cobra.Command {
	var flags breakFlags
	cmd := &cobra.Command{
		Use:   "break",
		Short: "Break a substitution cipher",
		Long: `Break a substitution cipher by hill climbing from random keys.

The search stops as soon as the best key found so far has been found
--consolidate times, or after --max-tries hill climbings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runBreak(cmd, &flags)
		},
	}
	addModelFlags(cmd, &flags.model)
	addTextInput(cmd, &flags.input, "ciphertext", "ciphertext")
	cmd.Flags().IntVar(&flags.maxTries, "max-tries", 0,
		"maximum number of hill climbings (1..10000, default from configuration, 1000); "+
			"if no key is consolidated before, the best key so far is reported")
	cmd.Flags().IntVar(&flags.consolidate, "consolidate", 0,
		"how often the best key must be found before it is taken as the solution "+
			"(1..30, default from configuration, 3); lower values are faster but unreliable")
	cmd.Flags().IntVar(&flags.workers, "workers", 0,
		"number of hill climbings run in parallel (default from configuration, 1)")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0,
		"seed for the random starting keys; 0 selects the seed from the configuration or the clock")
	cmd.Flags().DurationVar(&flags.maxRuntime, "max-runtime", 0,
		"abort the break attempt after this duration, e.g. 30s (default no limit)")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "",
		"write Prometheus metrics of the break attempt to this file (text format)")
	return cmd
}

func (app *app) runBreak(cmd *cobra.Command, flags *breakFlags) error {
	maxTries := intFlag(cmd, "max-tries", flags.maxTries, app.cfg.MaxTries)
	consolidate := intFlag(cmd, "consolidate", flags.consolidate, app.cfg.Consolidate)
	workers := intFlag(cmd, "workers", flags.workers, app.cfg.Workers)
	if maxTries < 1 || maxTries > subbreaker.MaxRounds {
		return usageErrorf("--max-tries must be in the range 1..%d", subbreaker.MaxRounds)
	}
	if consolidate < 1 || consolidate > subbreaker.MaxConsolidate {
		return usageErrorf("--consolidate must be in the range 1..%d", subbreaker.MaxConsolidate)
	}
	if workers < 1 {
		return usageErrorf("--workers must be at least 1")
	}
	m, _, err := app.loadModel(&flags.model)
	if err != nil {
		return err
	}
	ciphertext, err := flags.input.read(cmd)
	if err != nil {
		return err
	}
	opts := []subbreaker.Option{subbreaker.WithWorkers(workers)}
	seed := flags.seed
	if seed == 0 {
		seed = app.cfg.Seed
	}
	if seed != 0 {
		opts = append(opts, subbreaker.WithSeed(seed))
	}
	var reg *prometheus.Registry
	if flags.metricsFile != "" {
		reg = prometheus.NewRegistry()
		metrics, err := subbreaker.NewMetrics(reg)
		if err != nil {
			return err
		}
		opts = append(opts, subbreaker.WithMetrics(metrics))
	}
	ctx := cmd.Context()
	if flags.maxRuntime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.maxRuntime)
		defer cancel()
	}
	res, err := subbreaker.NewBreaker(m, opts...).Break(ctx, ciphertext, maxTries, consolidate)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("no result within --max-runtime %s", flags.maxRuntime)
	} else if err != nil {
		return err
	}
	if reg != nil {
		if err := prometheus.WriteToTextfile(flags.metricsFile, reg); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Alphabet: %s\n", res.Alphabet)
	fmt.Fprintf(out, "Key:      %s\n", res.Key)
	fmt.Fprintf(out, "Fitness: %.2f\n", res.Fitness)
	fmt.Fprintf(out, "Nbr keys tried: %s\n", humanize.Comma(res.NbrKeys))
	fmt.Fprintf(out, "Keys per second: %s\n", humanize.Comma(int64(math.Round(res.KeysPerSecond))))
	fmt.Fprintf(out, "Execution time (seconds): %.3f\n", res.Elapsed.Seconds())
	fmt.Fprintln(out, "Plaintext:")
	fmt.Fprintln(out, res.Plaintext)
	return nil
}

// intFlag returns the value of an integer flag if it is given on the
// command line, def otherwise.
func intFlag(cmd *cobra.Command, name string, value, def int) int {
	if cmd.Flags().Changed(name) {
		return value
	}
	return def
}
