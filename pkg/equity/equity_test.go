package equity

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/behrlich/pokercraft-core/pkg/cards"
	"github.com/behrlich/pokercraft-core/pkg/notation"
)

func combos(t testing.TB, hands ...string) []notation.Combo {
	t.Helper()
	out := make([]notation.Combo, len(hands))
	for i, h := range hands {
		c, err := notation.ParseCombo(h)
		require.NoError(t, err)
		out[i] = c
	}
	return out
}

func assertEquities(t *testing.T, res *Result, want ...float64) {
	t.Helper()
	for i, w := range want {
		got, err := res.Equity(i)
		require.NoError(t, err)
		assert.InDelta(t, w, got, 1e-4, "player %d", i)
	}
}

func TestCompute_Preflop(t *testing.T) {
	if testing.Short() {
		t.Skip("enumerates 1.7M boards")
	}

	res, err := Compute(combos(t, "AsAd", "KsKd"), nil)
	require.NoError(t, err)

	assert.Equal(t, uint64(combin.Binomial(48, 5)), res.RunOuts())
	assertEquities(t, res, 0.8236+0.0054/2, 0.1709+0.0054/2)
}

func TestCompute_Flop(t *testing.T) {
	res, err := Compute(combos(t, "AcKc", "6h7h"), cards.MustParseCards("9dTdJd"))
	require.NoError(t, err)

	assert.Equal(t, uint64(990), res.RunOuts())
	assertEquities(t, res, 0.6495+0.0566/2, 0.2939+0.0566/2)
}

func TestCompute_FlopThreeWay(t *testing.T) {
	res, err := Compute(combos(t, "AcKc", "6h7h", "TsTh"), cards.MustParseCards("9dTdJd"))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Players())
	assertEquities(t, res,
		0.1318+0.0620/3,
		0.1030+0.0620/3,
		0.7032+0.0620/3,
	)
}

func TestCompute_EquitiesSumToOne(t *testing.T) {
	res, err := Compute(combos(t, "AhQh", "JcJd", "9s8s", "2c2d"), cards.MustParseCards("Qd9h3c4s"))
	require.NoError(t, err)

	sum := 0.0
	for i := 0; i < res.Players(); i++ {
		eq, err := res.Equity(i)
		require.NoError(t, err)
		sum += eq
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestCompute_RiverSingleRunOut(t *testing.T) {
	res, err := Compute(combos(t, "AsKs", "QhQd"), cards.MustParseCards("Ah2c3d4s9h"))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), res.RunOuts())
	assertEquities(t, res, 1, 0)

	never, err := res.NeverLost(0)
	require.NoError(t, err)
	assert.True(t, never)
	never, err = res.NeverLost(1)
	require.NoError(t, err)
	assert.False(t, never)
}

func TestCompute_BoardPlays(t *testing.T) {
	res, err := Compute(combos(t, "2c3c", "4d5d", "7s8s"), cards.MustParseCards("AhKhQhJhTh"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		wins, loses, err := res.WinLosses(i)
		require.NoError(t, err)
		assert.Equal(t, []uint64{0, 0, 1}, wins)
		assert.Equal(t, uint64(0), loses)
	}
	assertEquities(t, res, 1.0/3, 1.0/3, 1.0/3)
}

func TestCompute_WorkerCountIndependent(t *testing.T) {
	players := combos(t, "AcKc", "6h7h", "TsTh")
	board := cards.MustParseCards("9dTd")

	base, err := Compute(players, board, WithWorkers(1))
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 7, 0} {
		res, err := Compute(players, board, WithWorkers(workers))
		require.NoError(t, err)
		for i := range players {
			w1, l1, _ := base.WinLosses(i)
			w2, l2, _ := res.WinLosses(i)
			assert.Equal(t, w1, w2, "workers=%d player=%d", workers, i)
			assert.Equal(t, l1, l2, "workers=%d player=%d", workers, i)
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	players := combos(t, "AcKc", "6h7h")
	board := cards.MustParseCards("9dTdJd")

	first, err := Compute(players, board)
	require.NoError(t, err)
	second, err := Compute(players, board)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		players []string
		board   string
		want    error
	}{
		{"one player", []string{"AsAd"}, "", ErrTooFewPlayers},
		{"no players", nil, "", ErrTooFewPlayers},
		{"six board cards", []string{"AsAd", "KsKd"}, "2c3c4c5c6c7c", ErrTooManyCommunityCards},
		{"shared hole card", []string{"AsAd", "AsKd"}, "", ErrDuplicateCard},
		{"hole card on board", []string{"AsAd", "KsKd"}, "Ad2c3c", ErrDuplicateCard},
		{"board repeats", []string{"AsAd", "KsKd"}, "2c2c3c", ErrDuplicateCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(combos(t, tt.players...), cards.MustParseCards(tt.board))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestResult_IndexErrors(t *testing.T) {
	res, err := Compute(combos(t, "AsKs", "QhQd"), cards.MustParseCards("Ah2c3d4s9h"))
	require.NoError(t, err)

	for _, i := range []int{-1, 2} {
		_, err = res.Equity(i)
		assert.True(t, errors.Is(err, ErrPlayerIndexOutOfRange))
		_, err = res.NeverLost(i)
		assert.True(t, errors.Is(err, ErrPlayerIndexOutOfRange))
		_, _, err = res.WinLosses(i)
		assert.True(t, errors.Is(err, ErrPlayerIndexOutOfRange))
	}
}

func TestResult_NoGamesPlayed(t *testing.T) {
	// 24 players leave four cards, too few for a board
	deck := cards.AllCards()
	players := make([]notation.Combo, 24)
	for i := range players {
		players[i] = notation.Combo{Card1: deck[2*i], Card2: deck[2*i+1]}
	}

	res, err := Compute(players, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), res.RunOuts())

	_, err = res.Equity(0)
	assert.True(t, errors.Is(err, ErrNoGamesPlayed))
}

func TestResult_Merge(t *testing.T) {
	players := combos(t, "AcKc", "6h7h")
	a, err := Compute(players, cards.MustParseCards("9dTdJd2s"))
	require.NoError(t, err)
	b, err := Compute(players, cards.MustParseCards("9dTdJd2s"))
	require.NoError(t, err)

	eqBefore, _ := a.Equity(0)
	require.NoError(t, a.Merge(b))
	assert.Equal(t, 2*b.RunOuts(), a.RunOuts())
	eqAfter, _ := a.Equity(0)
	assert.InDelta(t, eqBefore, eqAfter, 1e-12)

	three, err := Compute(combos(t, "AcKc", "6h7h", "2h2d"), cards.MustParseCards("9dTdJd"))
	require.NoError(t, err)
	assert.Error(t, a.Merge(three))
}

func TestComputeContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ComputeContext(ctx, combos(t, "AsAd", "KsKd"), nil, WithWorkers(2))
	assert.True(t, errors.Is(err, context.Canceled))
}

func BenchmarkCompute_Flop(b *testing.B) {
	players := combos(b, "AcKc", "6h7h", "TsTh")
	board := cards.MustParseCards("9dTdJd")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Compute(players, board)
	}
}
