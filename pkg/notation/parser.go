package notation

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/behrlich/pokercraft-core/pkg/cards"
)

// ParseCombo parses exactly two concatenated card codes: "AsKd"
func ParseCombo(s string) (Combo, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return Combo{}, errors.Wrapf(ErrInvalidNotation, "combo %q must be 4 characters", s)
	}

	c1, err := cards.ParseCard(s[:2])
	if err != nil {
		return Combo{}, errors.Wrapf(err, "combo %q", s)
	}
	c2, err := cards.ParseCard(s[2:])
	if err != nil {
		return Combo{}, errors.Wrapf(err, "combo %q", s)
	}
	if c1 == c2 {
		return Combo{}, errors.Wrapf(ErrInvalidNotation, "combo %q repeats a card", s)
	}

	return Combo{Card1: c1, Card2: c2}, nil
}

// ParseMatchup parses a matchup string into its hands and board
// Format: <hand>/<hand>[/<hand>...][|<board>]
// Example: "AsAd/KsKd|9dTdJd"
// Example preflop: "AcKc/6h7h" or "AcKc/6h7h|-"
//
// Card collisions between hands and board are not checked here.
func ParseMatchup(s string) (*Matchup, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Wrap(ErrInvalidNotation, "empty matchup")
	}

	parts := strings.Split(s, "|")
	if len(parts) > 2 {
		return nil, errors.Wrapf(ErrInvalidNotation, "matchup %q: too many parts (%d)", s, len(parts))
	}

	players, err := parseHands(parts[0])
	if err != nil {
		return nil, errors.Wrap(err, "error parsing hands")
	}

	var board []cards.Card
	if len(parts) == 2 {
		board, err = parseBoard(parts[1])
		if err != nil {
			return nil, errors.Wrap(err, "error parsing board")
		}
	}

	return &Matchup{
		Players: players,
		Board:   board,
		Street:  GetStreet(len(board)),
	}, nil
}

// parseHands parses "AsAd/KsKd/..."
func parseHands(handsStr string) ([]Combo, error) {
	handsStr = strings.TrimSpace(handsStr)
	if handsStr == "" {
		return nil, errors.Wrap(ErrInvalidNotation, "no hands")
	}

	handParts := strings.Split(handsStr, "/")
	players := make([]Combo, 0, len(handParts))
	for _, h := range handParts {
		combo, err := ParseCombo(h)
		if err != nil {
			return nil, err
		}
		players = append(players, combo)
	}

	return players, nil
}

// parseBoard parses board string: "Th9h2c" (flop), "Th9h2c/Js" (turn), "Th9h2c/Js/3d" (river)
// Empty string or "-" for preflop. Partial boards of 1 or 2 cards are allowed.
func parseBoard(boardStr string) ([]cards.Card, error) {
	boardStr = strings.TrimSpace(boardStr)

	if boardStr == "" || boardStr == "-" {
		return nil, nil
	}

	boardStr = strings.ReplaceAll(boardStr, "/", "")

	if len(boardStr)%2 != 0 {
		return nil, errors.Wrapf(ErrInvalidNotation, "invalid board length %q (must be even)", boardStr)
	}

	board, err := cards.ParseCards(boardStr)
	if err != nil {
		return nil, err
	}
	if len(board) > 5 {
		return nil, errors.Wrapf(ErrInvalidNotation, "invalid board %q (at most 5 cards)", boardStr)
	}

	return board, nil
}
