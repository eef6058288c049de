package notation

import (
	"strings"

	"github.com/behrlich/pokercraft-core/pkg/cards"
)

// Combo represents a specific hole card combination
type Combo struct {
	Card1 cards.Card
	Card2 cards.Card
}

// String returns the combo as a string (e.g., "AsKd")
func (c Combo) String() string {
	return c.Card1.String() + c.Card2.String()
}

// Cards returns both hole cards
func (c Combo) Cards() [2]cards.Card {
	return [2]cards.Card{c.Card1, c.Card2}
}

// Canonical returns the combo with the higher rank first.
// Pairs are ordered by suit (spades first), matching ParseRange output.
func (c Combo) Canonical() Combo {
	a, b := c.Card1, c.Card2
	if b.Rank > a.Rank || (b.Rank == a.Rank && b.Suit < a.Suit) {
		return Combo{Card1: b, Card2: a}
	}
	return c
}

// Street represents which betting round the board corresponds to
type Street uint8

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

// String returns the street name
func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// GetStreet determines the street based on board cards
func GetStreet(boardSize int) Street {
	switch boardSize {
	case 0:
		return Preflop
	case 3:
		return Flop
	case 4:
		return Turn
	case 5:
		return River
	default:
		return Preflop
	}
}

// Matchup is a set of known hands facing each other on a (possibly empty) board
type Matchup struct {
	Players []Combo
	Board   []cards.Card
	Street  Street
}

// String returns the matchup in the format accepted by ParseMatchup
func (m Matchup) String() string {
	hands := make([]string, len(m.Players))
	for i, p := range m.Players {
		hands[i] = p.String()
	}

	var board strings.Builder
	for _, c := range m.Board {
		board.WriteString(c.String())
	}
	if board.Len() == 0 {
		board.WriteString("-")
	}

	return strings.Join(hands, "/") + "|" + board.String()
}
