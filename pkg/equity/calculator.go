package equity

import (
	"context"

	"github.com/pkg/errors"

	"github.com/behrlich/pokercraft-core/pkg/cards"
	"github.com/behrlich/pokercraft-core/pkg/notation"
)

// RangeResult represents hero's outcome against a whole opponent range
type RangeResult struct {
	WinPct float64 // Share of run-outs hero wins outright
	TiePct float64 // Share of run-outs hero splits
	Equity float64 // Pot share including split pots

	Combos  int    // Opponent combos not blocked by hero or board
	RunOuts uint64 // Total run-outs across all combos
}

// Calculator computes hand equity vs opponent ranges
type Calculator struct {
	opts []Option
}

// NewCalculator creates a new equity calculator that passes opts to every Compute
func NewCalculator(opts ...Option) *Calculator {
	return &Calculator{opts: opts}
}

// CalculateEquity computes hero's equity against each combo of opponentRange
// heads-up, weighting every non-blocked combo by its run-outs.
// hero: 2 cards
// board: 0-5 cards
func (c *Calculator) CalculateEquity(ctx context.Context, hero notation.Combo, board []cards.Card, opponentRange []notation.Combo) (RangeResult, error) {
	used := makeCardSet(append([]cards.Card{hero.Card1, hero.Card2}, board...))

	var total RangeResult
	var wins, ties uint64
	share := 0.0
	for _, opp := range opponentRange {
		if used[opp.Card1] || used[opp.Card2] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return RangeResult{}, err
		}

		res, err := ComputeContext(ctx, []notation.Combo{hero, opp}, board, c.opts...)
		if err != nil {
			return RangeResult{}, errors.Wrapf(err, "versus %s", opp)
		}

		w, _, _ := res.WinLosses(0)
		wins += w[0]
		ties += w[1]
		share += float64(w[0]) + float64(w[1])/2
		total.RunOuts += res.RunOuts()
		total.Combos++
	}

	if total.RunOuts == 0 {
		return total, ErrNoGamesPlayed
	}

	n := float64(total.RunOuts)
	total.WinPct = float64(wins) / n
	total.TiePct = float64(ties) / n
	total.Equity = share / n
	return total, nil
}

// makeCardSet creates a set of cards for fast lookup
func makeCardSet(cardList []cards.Card) map[cards.Card]bool {
	set := make(map[cards.Card]bool)
	for _, c := range cardList {
		set[c] = true
	}
	return set
}
