package subbreaker

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/npillmayer/subbreaker/key"
)

// Limits for the parameters of Break.
const (
	MaxRounds      = 10000
	MaxConsolidate = 30
)

// Breaker breaks substitution ciphers using a quadgram model.
//
// A Breaker may be used by concurrent goroutines.
type Breaker struct {
	model   *Model
	mu      sync.Mutex // guards rng
	rng     *rand.Rand
	workers int
	metrics *Metrics
}

// Option configures a Breaker.
type Option func(*Breaker)

// WithRand sets the source of randomness. Given the same source state, break
// attempts are reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(b *Breaker) {
		b.rng = rng
	}
}

// WithSeed is a shortcut for WithRand with a PCG source.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithWorkers sets the number of hill climbing rounds run in parallel.
// The outcome of a break attempt does not depend on the number of workers.
func WithWorkers(n int) Option {
	return func(b *Breaker) {
		b.workers = max(1, n)
	}
}

// WithMetrics lets the breaker record statistics about break attempts.
func WithMetrics(m *Metrics) Option {
	return func(b *Breaker) {
		b.metrics = m
	}
}

// NewBreaker creates a breaker for model m. Without WithRand or WithSeed the
// breaker is seeded from the current time.
func NewBreaker(m *Model, opts ...Option) *Breaker {
	b := &Breaker{model: m, workers: 1}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		seed := uint64(time.Now().UnixNano())
		b.rng = rand.New(rand.NewPCG(seed, seed>>32|seed<<32))
	}
	return b
}

// Result is the outcome of breaking a cipher.
type Result struct {
	Ciphertext    string        // the original ciphertext
	Plaintext     string        // ciphertext decoded with Key
	Key           string        // best key found, in alphabet order
	Alphabet      string        // alphabet of the model
	Fitness       float64       // fitness of the plaintext
	NbrKeys       int64         // number of keys evaluated
	NbrRounds     int           // number of hill climbing rounds
	Consolidated  bool          // stopped because the best maximum recurred
	Elapsed       time.Duration // wall time of the break attempt
	KeysPerSecond float64
}

func (res *Result) String() string {
	return "key = " + res.Key
}

// round is one hill climbing run starting from a random key.
type round struct {
	index int
	key   []int
	score int64
	keys  int64
}

// Break tries to find the key for a ciphertext.
//
// Up to maxRounds (1…10000) hill climbings are started from random keys. If
// the best local maximum has been reached consolidate (1…30) times, it is
// taken as the solution and the search stops. Otherwise the best key found
// within maxRounds is returned. The first local maximum counts as reached
// once, so with consolidate 1 the search stops after the first round.
//
// Rounds are evaluated in round order, regardless of how many of them run in
// parallel, which makes the outcome reproducible for a given random source.
// If ctx is cancelled before the search completes, Break returns the
// context's error.
func (b *Breaker) Break(ctx context.Context, ciphertext string, maxRounds, consolidate int) (*Result, error) {
	if maxRounds < 1 || maxRounds > MaxRounds {
		return nil, fmt.Errorf("%w: %d", ErrRoundsOutOfRange, maxRounds)
	}
	if consolidate < 1 || consolidate > MaxConsolidate {
		return nil, fmt.Errorf("%w: %d", ErrConsolidateOutOfRange, consolidate)
	}
	start := time.Now()
	a := b.model.alphabet
	cipher := a.Project(ciphertext)
	if len(cipher) < 4 {
		return nil, fmt.Errorf("%w: %d characters from the alphabet", ErrCiphertextTooShort, len(cipher))
	}
	positions := a.Positions(cipher)
	b.mu.Lock()
	seed := b.rng.Uint64()
	b.mu.Unlock()
	tracer().Infof("breaking ciphertext of %d symbols with %d worker(s), seed %#x",
		len(cipher), b.workers, seed)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	var stop atomic.Bool
	defer context.AfterFunc(runCtx, func() { stop.Store(true) })()

	jobs := make(chan round)
	results := make(chan round)
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		defer close(jobs)
		for r := range maxRounds {
			select {
			case jobs <- round{index: r}:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})
	for range b.workers {
		g.Go(func() error {
			c := newClimber(b.model.scores, cipher, positions, &stop)
			for job := range jobs {
				job.key = randomKey(seed, job.index, a.Len())
				var ok bool
				if job.score, job.keys, ok = c.climb(job.key); !ok {
					return nil
				}
				select {
				case results <- job:
				case <-gctx.Done():
					return nil
				}
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	acc := newConsolidation(consolidate, a.Len())
	for res := range results {
		if acc.done {
			continue // drain
		}
		if acc.add(res) {
			cancel()
		}
	}
	if !acc.done && acc.rounds < maxRounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		assert(false, "hill climbing rounds lost")
	}

	k, err := key.New(a.Decode(acc.bestKey), a.String())
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	res := &Result{
		Ciphertext:   ciphertext,
		Plaintext:    k.Decode(ciphertext),
		Key:          k.String(),
		Alphabet:     a.String(),
		Fitness:      float64(acc.best) / float64(len(cipher)-3) / 10,
		NbrKeys:      acc.keys,
		NbrRounds:    acc.rounds,
		Consolidated: acc.done,
		Elapsed:      elapsed,
	}
	if secs := elapsed.Seconds(); secs > 0 {
		res.KeysPerSecond = float64(acc.keys) / secs
	}
	b.metrics.observe(res)
	tracer().Infof("best key %q after %d rounds, %d keys, fitness %.2f",
		res.Key, res.NbrRounds, res.NbrKeys, res.Fitness)
	return res, nil
}

// randomKey returns the starting key of a round: a uniformly random
// permutation, drawn by Fisher–Yates shuffling from a source derived from the
// break seed and the round index.
func randomKey(seed uint64, index, n int) []int {
	rng := rand.New(rand.NewPCG(seed, uint64(index)))
	k := identityKey(n)
	rng.Shuffle(n, func(i, j int) { k[i], k[j] = k[j], k[i] })
	return k
}

func identityKey(n int) []int {
	k := make([]int, n)
	for i := range k {
		k[i] = i
	}
	return k
}
