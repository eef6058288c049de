// Package equity computes exact showdown equities by enumerating every
// completion of the board.
package equity

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/behrlich/pokercraft-core/pkg/cards"
	"github.com/behrlich/pokercraft-core/pkg/notation"
	"github.com/behrlich/pokercraft-core/pkg/parallel"
)

const boardSize = 5

var (
	ErrTooFewPlayers         = errors.New("at least two players are required")
	ErrTooManyCommunityCards = errors.New("too many community cards; should have at most 5 cards")
	ErrDuplicateCard         = errors.New("duplicate card")
	ErrPlayerIndexOutOfRange = errors.New("player index out of range")
	ErrNoGamesPlayed         = errors.New("no games played; cannot calculate equity")
)

type options struct {
	workers int
	logger  zerolog.Logger
}

// Option configures Compute
type Option func(*options)

// WithWorkers sets the number of goroutines used for enumeration.
// Zero or a negative value means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger for debug output
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Result holds showdown counts over every run-out.
// wins[i][t] counts run-outs where player i won tied with exactly t others,
// loses[i] counts run-outs player i did not win.
type Result struct {
	wins  [][]uint64
	loses []uint64
}

func newResult(players int) *Result {
	r := &Result{
		wins:  make([][]uint64, players),
		loses: make([]uint64, players),
	}
	for i := range r.wins {
		r.wins[i] = make([]uint64, players)
	}
	return r
}

// Compute enumerates every completion of board for the given hole cards.
func Compute(players []notation.Combo, board []cards.Card, opts ...Option) (*Result, error) {
	return ComputeContext(context.Background(), players, board, opts...)
}

// ComputeContext is Compute with cancellation
func ComputeContext(ctx context.Context, players []notation.Combo, board []cards.Card, opts ...Option) (*Result, error) {
	o := buildOptions(opts)

	if err := validate(players, board); err != nil {
		return nil, err
	}

	remaining := remainingDeck(players, board)
	k := boardSize - len(board)
	total := 0
	if len(remaining) >= k {
		total = combin.Binomial(len(remaining), k)
	}

	start := time.Now()
	res, err := parallel.FoldReduce(ctx, total, o.workers,
		func() *Result { return newResult(len(players)) },
		func(ctx context.Context, r parallel.Range) (*Result, error) {
			return foldRunOuts(ctx, players, board, remaining, r)
		},
		func(dst, src *Result) *Result {
			dst.add(src)
			return dst
		},
	)
	if err != nil {
		return nil, err
	}

	o.logger.Debug().
		Int("players", len(players)).
		Int("board", len(board)).
		Int("runouts", total).
		Int("workers", len(parallel.Split(total, o.workers))).
		Dur("elapsed", time.Since(start)).
		Msg("equity computed")

	return res, nil
}

func validate(players []notation.Combo, board []cards.Card) error {
	if len(players) < 2 {
		return errors.Wrapf(ErrTooFewPlayers, "got %d", len(players))
	}
	if len(board) > boardSize {
		return errors.Wrapf(ErrTooManyCommunityCards, "got %d", len(board))
	}

	var seen [cards.NumCards]bool
	check := func(c cards.Card) error {
		if seen[c.Index()] {
			return errors.Wrapf(ErrDuplicateCard, "%s", c)
		}
		seen[c.Index()] = true
		return nil
	}
	for _, p := range players {
		if err := check(p.Card1); err != nil {
			return err
		}
		if err := check(p.Card2); err != nil {
			return err
		}
	}
	for _, c := range board {
		if err := check(c); err != nil {
			return err
		}
	}
	return nil
}

// remainingDeck returns the undealt cards in deck order
func remainingDeck(players []notation.Combo, board []cards.Card) []cards.Card {
	var used [cards.NumCards]bool
	for _, p := range players {
		used[p.Card1.Index()] = true
		used[p.Card2.Index()] = true
	}
	for _, c := range board {
		used[c.Index()] = true
	}

	remaining := make([]cards.Card, 0, cards.NumCards)
	for _, c := range cards.AllCards() {
		if !used[c.Index()] {
			remaining = append(remaining, c)
		}
	}
	return remaining
}

// ctxCheckInterval is how many run-outs a worker folds between ctx checks
const ctxCheckInterval = 1 << 14

// foldRunOuts scores the run-outs with lexicographic ranks in r
func foldRunOuts(ctx context.Context, players []notation.Combo, board []cards.Card, remaining []cards.Card, r parallel.Range) (*Result, error) {
	acc := newResult(len(players))
	k := boardSize - len(board)

	// Each hand is laid out as board[0..4] followed by the two hole cards;
	// only the missing board slots change per run-out.
	hands := make([][7]cards.Card, len(players))
	for i, p := range players {
		copy(hands[i][:], board)
		hands[i][5] = p.Card1
		hands[i][6] = p.Card2
	}
	keys := make([]uint32, len(players))

	comb := make([]int, k)
	unrankCombination(r.Lo, len(remaining), comb)

	for n := r.Lo; n < r.Hi; n++ {
		if (n-r.Lo)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		best := uint32(0)
		for i := range hands {
			for j, idx := range comb {
				hands[i][len(board)+j] = remaining[idx]
			}
			keys[i] = cards.BestKey7(&hands[i])
			if keys[i] > best {
				best = keys[i]
			}
		}

		winners := 0
		for _, key := range keys {
			if key == best {
				winners++
			}
		}
		for i, key := range keys {
			if key == best {
				acc.wins[i][winners-1]++
			} else {
				acc.loses[i]++
			}
		}

		if !nextCombination(comb, len(remaining)) && n+1 < r.Hi {
			panic("equity: combination sequence exhausted early")
		}
	}

	return acc, nil
}

func (r *Result) add(other *Result) {
	for i := range r.wins {
		for t := range r.wins[i] {
			r.wins[i][t] += other.wins[i][t]
		}
		r.loses[i] += other.loses[i]
	}
}

// Merge adds the counts of other into r. Both must have the same player count.
func (r *Result) Merge(other *Result) error {
	if len(r.wins) != len(other.wins) {
		return errors.Errorf("cannot merge results for %d and %d players", len(r.wins), len(other.wins))
	}
	r.add(other)
	return nil
}

// Players returns the number of players
func (r *Result) Players() int { return len(r.wins) }

// RunOuts returns the number of enumerated run-outs
func (r *Result) RunOuts() uint64 {
	if len(r.wins) == 0 {
		return 0
	}
	var total uint64
	for _, w := range r.wins[0] {
		total += w
	}
	return total + r.loses[0]
}

func (r *Result) checkIndex(i int) error {
	if i < 0 || i >= len(r.wins) {
		return errors.Wrapf(ErrPlayerIndexOutOfRange, "index %d with %d players", i, len(r.wins))
	}
	return nil
}

// Equity returns the pot share of player i, splitting tied pots evenly
func (r *Result) Equity(i int) (float64, error) {
	if err := r.checkIndex(i); err != nil {
		return 0, err
	}

	var games uint64
	share := 0.0
	for t, count := range r.wins[i] {
		games += count
		share += float64(count) / float64(t+1)
	}
	games += r.loses[i]
	if games == 0 {
		return 0, ErrNoGamesPlayed
	}
	return share / float64(games), nil
}

// NeverLost reports whether player i won or tied every run-out
func (r *Result) NeverLost(i int) (bool, error) {
	if err := r.checkIndex(i); err != nil {
		return false, err
	}
	return r.loses[i] == 0, nil
}

// WinLosses returns a copy of player i's win histogram and loss count
func (r *Result) WinLosses(i int) ([]uint64, uint64, error) {
	if err := r.checkIndex(i); err != nil {
		return nil, 0, err
	}
	wins := make([]uint64, len(r.wins[i]))
	copy(wins, r.wins[i])
	return wins, r.loses[i], nil
}
