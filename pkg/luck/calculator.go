// Package luck scores observed all-in outcomes against their equities.
//
// Each sample is an independent trial won with probability equal to its
// equity. The z-score compares the observed total with its expectation and
// the tails come from the exact Poisson-Binomial distribution of wins.
package luck

import (
	"math"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidEquityBound is returned for an equity or outcome outside [0, 1]
	ErrInvalidEquityBound = errors.New("equity and outcome must be within [0, 1]")
	// ErrImpossibleOutcome is returned when an outcome contradicts a certain equity
	ErrImpossibleOutcome = errors.New("outcome is impossible for the given equity")
)

// Sample is one (equity, outcome) observation. Outcome is the fraction of
// the pot won, e.g. 0.5 for a two-way split.
type Sample struct {
	Equity  float64 `json:"equity" yaml:"equity"`
	Outcome float64 `json:"outcome" yaml:"outcome"`
}

// Tails holds tail probabilities of the observed win count
type Tails struct {
	Upper    float64 `json:"upper" yaml:"upper"`
	Lower    float64 `json:"lower" yaml:"lower"`
	TwoSided float64 `json:"two_sided" yaml:"two_sided"`
}

// Option configures a Calculator
type Option func(*Calculator)

// WithLogger sets the logger for debug output
func WithLogger(l zerolog.Logger) Option {
	return func(c *Calculator) { c.logger = l }
}

// Calculator accumulates samples
type Calculator struct {
	samples []Sample
	logger  zerolog.Logger
}

// NewCalculator returns an empty calculator
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func inUnit(x float64) bool { return x >= 0 && x <= 1 }

// AddResult records one sample
func (c *Calculator) AddResult(equity, outcome float64) error {
	if !inUnit(equity) {
		return errors.Wrapf(ErrInvalidEquityBound, "equity %v", equity)
	}
	if !inUnit(outcome) {
		return errors.Wrapf(ErrInvalidEquityBound, "outcome %v", outcome)
	}
	if equity == 0 && outcome > 0 {
		return errors.Wrapf(ErrImpossibleOutcome, "outcome %v with zero equity", outcome)
	}
	if equity == 1 && outcome < 1 {
		return errors.Wrapf(ErrImpossibleOutcome, "outcome %v with full equity", outcome)
	}

	c.samples = append(c.samples, Sample{Equity: equity, Outcome: outcome})
	return nil
}

// AddSamples records samples in order, stopping at the first invalid one
func (c *Calculator) AddSamples(samples []Sample) error {
	for i, s := range samples {
		if err := c.AddResult(s.Equity, s.Outcome); err != nil {
			return errors.Wrapf(err, "sample %d", i)
		}
	}
	return nil
}

// Len returns the number of samples
func (c *Calculator) Len() int { return len(c.samples) }

// Expected returns the sum of equities
func (c *Calculator) Expected() float64 {
	sum := 0.0
	for _, s := range c.samples {
		sum += s.Equity
	}
	return sum
}

// Observed returns the sum of outcomes
func (c *Calculator) Observed() float64 {
	sum := 0.0
	for _, s := range c.samples {
		sum += s.Outcome
	}
	return sum
}

// Variance returns the variance of the win count
func (c *Calculator) Variance() float64 {
	v := 0.0
	for _, s := range c.samples {
		v += s.Equity * (1 - s.Equity)
	}
	return v
}

// ZScore returns (observed - expected) / sqrt(variance). It is undefined
// without samples. With zero variance every outcome was certain, so the
// score is 0.
func (c *Calculator) ZScore() (float64, bool) {
	if len(c.samples) == 0 {
		return 0, false
	}
	variance := c.Variance()
	if variance == 0 {
		return 0, true
	}
	return (c.Observed() - c.Expected()) / math.Sqrt(variance), true
}

// Tails returns the upper, lower and two-sided tail probabilities of the
// rounded observed win count. It is undefined without samples.
func (c *Calculator) Tails() (Tails, bool) {
	if len(c.samples) == 0 {
		return Tails{}, false
	}

	probs := make([]float64, len(c.samples))
	for i, s := range c.samples {
		probs[i] = s.Equity
	}
	pmf := PoissonBinomial(probs)

	wins := int(math.Round(c.Observed()))
	var t Tails
	for k, p := range pmf {
		if k >= wins {
			t.Upper += p
		}
		if k <= wins {
			t.Lower += p
		}
	}
	t.Upper = math.Min(t.Upper, 1)
	t.Lower = math.Min(t.Lower, 1)
	t.TwoSided = math.Min(1, 2*math.Min(t.Upper, t.Lower))

	c.logger.Debug().
		Int("samples", len(c.samples)).
		Int("wins", wins).
		Float64("upper", t.Upper).
		Float64("lower", t.Lower).
		Msg("luck tails computed")
	return t, true
}
