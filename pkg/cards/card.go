package cards

import (
	"strings"

	"github.com/pkg/errors"
)

// NumRanks and NumSuits describe the shape of a standard deck
const (
	NumRanks = 13
	NumSuits = 4
	NumCards = NumRanks * NumSuits
)

// ErrInvalidEncoding is returned when a card code cannot be parsed
var ErrInvalidEncoding = errors.New("invalid card encoding")

// Rank represents a card rank, valued by its face (Two=2 .. Ace=14)
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suit represents a card suit. Suits carry no ordering.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Card represents a single playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card from rank and suit
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// AllSuits returns the four suits
func AllSuits() [NumSuits]Suit {
	return [NumSuits]Suit{Spades, Hearts, Diamonds, Clubs}
}

// AllRanks returns the thirteen ranks from Two to Ace
func AllRanks() [NumRanks]Rank {
	var ranks [NumRanks]Rank
	for i := range ranks {
		ranks[i] = Two + Rank(i)
	}
	return ranks
}

// AllCards returns the 52 cards of a standard deck, suit by suit
func AllCards() [NumCards]Card {
	var deck [NumCards]Card
	for i := range deck {
		deck[i] = CardFromIndex(i)
	}
	return deck
}

// Index maps the card to a dense 0..51 index
func (c Card) Index() int {
	return int(c.Suit)*NumRanks + int(c.Rank-Two)
}

// CardFromIndex is the inverse of Card.Index
func CardFromIndex(i int) Card {
	return Card{Rank: Two + Rank(i%NumRanks), Suit: Suit(i / NumRanks)}
}

// IsNextInCycle reports whether a directly follows b in the cycle
// 2,3,...,K,A,2. Ace to Two is the only wraparound.
func IsNextInCycle(a, b Rank) bool {
	if b == Ace {
		return a == Two
	}
	return a == b+1
}

// ParseCard parses a card from string notation (e.g., "As", "Kh", "Td")
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, errors.Wrapf(ErrInvalidEncoding, "card %q must be 2 characters", s)
	}

	rank, err := ParseRank(s[0])
	if err != nil {
		return Card{}, errors.Wrapf(err, "card %q", s)
	}

	suit, err := ParseSuit(s[1])
	if err != nil {
		return Card{}, errors.Wrapf(err, "card %q", s)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// ParseRank converts a character to a Rank
func ParseRank(b byte) (Rank, error) {
	switch b {
	case '2':
		return Two, nil
	case '3':
		return Three, nil
	case '4':
		return Four, nil
	case '5':
		return Five, nil
	case '6':
		return Six, nil
	case '7':
		return Seven, nil
	case '8':
		return Eight, nil
	case '9':
		return Nine, nil
	case 'T', 't':
		return Ten, nil
	case 'J', 'j':
		return Jack, nil
	case 'Q', 'q':
		return Queen, nil
	case 'K', 'k':
		return King, nil
	case 'A', 'a':
		return Ace, nil
	default:
		return 0, errors.Wrapf(ErrInvalidEncoding, "invalid rank %q", string(b))
	}
}

// ParseSuit converts a character to a Suit
func ParseSuit(b byte) (Suit, error) {
	switch b {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	default:
		return 0, errors.Wrapf(ErrInvalidEncoding, "invalid suit %q", string(b))
	}
}

// String returns the card in standard notation (e.g., "As", "Kh")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// String returns the rank as a single character
func (r Rank) String() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Name returns the long English name of the rank, plural when asked
func (r Rank) Name(plural bool) string {
	names := [...]string{"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
		"Nine", "Ten", "Jack", "Queen", "King", "Ace"}
	if r < Two || r > Ace {
		return "?"
	}
	name := names[r-Two]
	if !plural {
		return name
	}
	if r == Six {
		return name + "es"
	}
	return name + "s"
}

// String returns the suit as a single character
func (s Suit) String() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// ParseCards parses multiple cards from a string (e.g., "AsKhQd")
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, errors.Wrapf(ErrInvalidEncoding, "cards string %q must have even length", s)
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, errors.Wrapf(err, "position %d", i)
		}
		cards = append(cards, card)
	}

	return cards, nil
}

// MustParseCards is ParseCards for literals known to be valid
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
