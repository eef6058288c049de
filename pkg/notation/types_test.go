package notation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/behrlich/pokercraft-core/pkg/cards"
)

func TestGetStreet(t *testing.T) {
	tests := []struct {
		boardSize int
		want      Street
	}{
		{0, Preflop},
		{1, Preflop},
		{2, Preflop},
		{3, Flop},
		{4, Turn},
		{5, River},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetStreet(tt.boardSize), "board size %d", tt.boardSize)
	}
}

func TestStreet_String(t *testing.T) {
	assert.Equal(t, "preflop", Preflop.String())
	assert.Equal(t, "flop", Flop.String())
	assert.Equal(t, "turn", Turn.String())
	assert.Equal(t, "river", River.String())
	assert.Equal(t, "unknown", Street(9).String())
}

func TestCombo_String(t *testing.T) {
	combo := Combo{
		Card1: cards.NewCard(cards.Ace, cards.Spades),
		Card2: cards.NewCard(cards.King, cards.Diamonds),
	}
	assert.Equal(t, "AsKd", combo.String())
	assert.Equal(t, [2]cards.Card{combo.Card1, combo.Card2}, combo.Cards())
}

func TestCombo_Canonical(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"AsKd", "AsKd"},
		{"KdAs", "AsKd"},
		{"AhAs", "AsAh"},
		{"AsAh", "AsAh"},
		{"2c7d", "7d2c"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseCombo(tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, c.Canonical().String())
		})
	}
}

func TestMatchup_String(t *testing.T) {
	m, err := ParseMatchup("AsAd/KsKd|9dTdJd")
	assert.NoError(t, err)
	assert.Equal(t, "AsAd/KsKd|9dTdJd", m.String())

	m, err = ParseMatchup("AcKc/6h7h")
	assert.NoError(t, err)
	assert.Equal(t, "AcKc/6h7h|-", m.String())
}
