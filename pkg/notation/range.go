package notation

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/behrlich/pokercraft-core/pkg/cards"
)

// ErrInvalidNotation is returned for malformed range or matchup strings
var ErrInvalidNotation = errors.New("invalid notation")

// handClass is one entry of range notation such as "AA", "AKs" or "T9o"
type handClass struct {
	high, low cards.Rank
	suited    bool
}

func (h handClass) pair() bool { return h.high == h.low }

// ParseRange parses a range string and returns all possible combos
// Examples:
//   - "AA" → 6 combos
//   - "AKs" → 4 combos, "AKo" → 12 combos
//   - "KK-JJ" → 18 combos, "AKs-ATs" → 16 combos
//   - "QQ+" → 18 combos, "ATs+" → 16 combos
//   - "AA,KK,AKs" → 16 combos
//   - "AsAd,KK" → 7 combos
//
// Combos appearing more than once in the input are returned once.
func ParseRange(rangeStr string) ([]Combo, error) {
	rangeStr = strings.TrimSpace(rangeStr)
	if rangeStr == "" {
		return nil, errors.Wrap(ErrInvalidNotation, "empty range string")
	}

	var all []Combo
	seen := make(map[Combo]bool)
	for _, part := range strings.Split(rangeStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if len(part) == 4 {
			if combo, err := ParseCombo(part); err == nil {
				combo = combo.Canonical()
				if !seen[combo] {
					seen[combo] = true
					all = append(all, combo)
				}
				continue
			}
		}

		classes, err := expandPart(part)
		if err != nil {
			return nil, errors.Wrapf(err, "range component %q", part)
		}
		for _, class := range classes {
			for _, combo := range class.combos() {
				if !seen[combo] {
					seen[combo] = true
					all = append(all, combo)
				}
			}
		}
	}

	return all, nil
}

// expandPart turns "KK-JJ" or "AKs-ATs" into its hand classes
func expandPart(part string) ([]handClass, error) {
	if base, ok := strings.CutSuffix(part, "+"); ok {
		return expandPlus(base)
	}

	bounds := strings.Split(part, "-")
	switch len(bounds) {
	case 1:
		class, err := parseHandClass(bounds[0])
		if err != nil {
			return nil, err
		}
		return []handClass{class}, nil
	case 2:
	default:
		return nil, errors.Wrap(ErrInvalidNotation, "expected format AA-KK")
	}

	start, err := parseHandClass(bounds[0])
	if err != nil {
		return nil, errors.Wrap(err, "start")
	}
	end, err := parseHandClass(bounds[1])
	if err != nil {
		return nil, errors.Wrap(err, "end")
	}
	if start.suited != end.suited || start.pair() != end.pair() {
		return nil, errors.Wrap(ErrInvalidNotation, "mismatched hand kinds")
	}

	if end.high > start.high || (end.high == start.high && end.low > start.low) {
		start, end = end, start
	}

	var classes []handClass
	if start.pair() {
		for r := start.high; r >= end.high; r-- {
			classes = append(classes, handClass{high: r, low: r})
		}
		return classes, nil
	}

	if start.high != end.high {
		return nil, errors.Wrap(ErrInvalidNotation, "first rank must match")
	}
	for r := start.low; r >= end.low; r-- {
		classes = append(classes, handClass{high: start.high, low: r, suited: start.suited})
	}
	return classes, nil
}

// expandPlus handles "TT+" (TT through AA) and "ATs+" (ATs through AKs)
func expandPlus(base string) ([]handClass, error) {
	class, err := parseHandClass(base)
	if err != nil {
		return nil, err
	}

	var classes []handClass
	if class.pair() {
		for r := cards.Ace; r >= class.high; r-- {
			classes = append(classes, handClass{high: r, low: r})
		}
		return classes, nil
	}
	for r := class.high - 1; r >= class.low; r-- {
		classes = append(classes, handClass{high: class.high, low: r, suited: class.suited})
	}
	return classes, nil
}

// parseHandClass parses "AA", "AKs" or "AKo"
func parseHandClass(hand string) (handClass, error) {
	hand = strings.TrimSpace(hand)
	if len(hand) < 2 || len(hand) > 3 {
		return handClass{}, errors.Wrapf(ErrInvalidNotation, "hand %q", hand)
	}

	high, err := cards.ParseRank(hand[0])
	if err != nil {
		return handClass{}, errors.Wrapf(ErrInvalidNotation, "hand %q: %v", hand, err)
	}
	low, err := cards.ParseRank(hand[1])
	if err != nil {
		return handClass{}, errors.Wrapf(ErrInvalidNotation, "hand %q: %v", hand, err)
	}
	if low > high {
		high, low = low, high
	}
	class := handClass{high: high, low: low}

	if len(hand) == 2 {
		if !class.pair() {
			return handClass{}, errors.Wrapf(ErrInvalidNotation, "ambiguous hand %q (use 's' or 'o')", hand)
		}
		return class, nil
	}

	if class.pair() {
		return handClass{}, errors.Wrapf(ErrInvalidNotation, "pair %q cannot be suited or offsuit", hand)
	}
	switch hand[2] {
	case 's', 'S':
		class.suited = true
	case 'o', 'O':
	default:
		return handClass{}, errors.Wrapf(ErrInvalidNotation, "invalid suited/offsuit indicator %q", string(hand[2]))
	}
	return class, nil
}

// combos generates every card combination of the class
func (h handClass) combos() []Combo {
	suits := cards.AllSuits()
	var out []Combo

	switch {
	case h.pair():
		for i := 0; i < len(suits); i++ {
			for j := i + 1; j < len(suits); j++ {
				out = append(out, Combo{
					Card1: cards.NewCard(h.high, suits[i]),
					Card2: cards.NewCard(h.low, suits[j]),
				})
			}
		}
	case h.suited:
		for _, suit := range suits {
			out = append(out, Combo{
				Card1: cards.NewCard(h.high, suit),
				Card2: cards.NewCard(h.low, suit),
			})
		}
	default:
		for _, s1 := range suits {
			for _, s2 := range suits {
				if s1 != s2 {
					out = append(out, Combo{
						Card1: cards.NewCard(h.high, s1),
						Card2: cards.NewCard(h.low, s2),
					})
				}
			}
		}
	}

	return out
}
