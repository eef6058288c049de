// Package bankroll estimates the risk of ruin by replaying an empirical
// return distribution as a random walk.
package bankroll

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/behrlich/pokercraft-core/pkg/parallel"
)

// ErrInvalidParameter is returned when simulation inputs are rejected
var ErrInvalidParameter = errors.New("invalid parameter")

type options struct {
	workers int
	seed    uint64
	seeded  bool
	logger  zerolog.Logger
}

// Option configures Simulate
type Option func(*options)

// WithWorkers sets the number of goroutines running trials.
// Zero or a negative value means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithSeed makes the simulation reproducible. Results depend only on the
// seed and the inputs, not on the worker count.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithLogger sets the logger for debug output
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Params describes one simulation
type Params struct {
	InitialCapital float64
	Returns        []float64
	MaxIterations  int
	// ProfitExitMultiplier stops a trial once capital reaches
	// InitialCapital*ProfitExitMultiplier. Values below 1 disable the exit.
	ProfitExitMultiplier float64
	Trials               int
}

// Validate checks the parameters in the order the simulator reports them
func (p Params) Validate() error {
	if !(p.InitialCapital > 0) {
		return errors.Wrap(ErrInvalidParameter, "Initial capital must be positive")
	}
	if len(p.Returns) == 0 {
		return errors.Wrap(ErrInvalidParameter, "Relative return results must not be empty")
	}
	if p.MaxIterations < 1 {
		return errors.Wrap(ErrInvalidParameter, "Max iteration must be positive")
	}

	sum := 0.0
	for _, r := range p.Returns {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return errors.Wrapf(ErrInvalidParameter, "Relative return %v is not finite", r)
		}
		sum += r
	}
	if sum < 0 {
		return errors.Wrap(ErrInvalidParameter, "Total relative returns are negative; Bankruptcy in long run is guaranteed")
	}

	if p.Trials < 1 {
		return errors.Wrap(ErrInvalidParameter, "Simulation count must be positive")
	}
	return nil
}

// exitCapital returns the capital at which a trial stops with profit
func (p Params) exitCapital() float64 {
	if p.ProfitExitMultiplier >= 1 {
		return p.InitialCapital * p.ProfitExitMultiplier
	}
	return math.Inf(1)
}

// Simulate runs trials independent random walks over returns.
func Simulate(initialCapital float64, returns []float64, maxIterations int, profitExitMultiplier float64, trials int, opts ...Option) (*Metric, error) {
	return Run(context.Background(), Params{
		InitialCapital:       initialCapital,
		Returns:              returns,
		MaxIterations:        maxIterations,
		ProfitExitMultiplier: profitExitMultiplier,
		Trials:               trials,
	}, opts...)
}

// Run is Simulate with cancellation and a parameter struct
func Run(ctx context.Context, p Params, opts ...Option) (*Metric, error) {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seeded {
		o.seed = rand.Uint64()
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	results, err := parallel.FoldReduce(ctx, p.Trials, o.workers,
		func() []Outcome { return nil },
		func(ctx context.Context, r parallel.Range) ([]Outcome, error) {
			out := make([]Outcome, 0, r.Len())
			for trial := r.Lo; trial < r.Hi; trial++ {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				rng := rand.New(rand.NewPCG(o.seed, uint64(trial)))
				out = append(out, runTrial(p, rng))
			}
			return out, nil
		},
		func(dst, src []Outcome) []Outcome { return append(dst, src...) },
	)
	if err != nil {
		return nil, err
	}

	m := &Metric{results: results}
	o.logger.Debug().
		Int("trials", p.Trials).
		Int("max_iterations", p.MaxIterations).
		Uint64("seed", o.seed).
		Float64("bankruptcy_rate", m.BankruptcyRate()).
		Dur("elapsed", time.Since(start)).
		Msg("bankroll simulated")
	return m, nil
}

// runTrial walks one bankroll until ruin, profit exit or the iteration limit
func runTrial(p Params, rng *rand.Rand) Outcome {
	exit := p.exitCapital()
	capital := p.InitialCapital
	for i := 0; i < p.MaxIterations; i++ {
		capital += p.Returns[rng.IntN(len(p.Returns))]
		if capital <= 0 {
			return Outcome{Ratio: 0, BankruptAt: i + 1}
		}
		if capital >= exit {
			return Outcome{Ratio: capital / p.InitialCapital}
		}
	}
	return Outcome{Ratio: math.Max(capital/p.InitialCapital, 0)}
}
