package cards

import (
	"fmt"
	"strings"
)

// Category is the class of a five-card poker hand, weakest first
type Category uint8

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// NumCategories is the number of hand categories
const NumCategories = 9

// packedSpan is 13^5, the number of distinct packed tie-break values
const packedSpan = NumRanks * NumRanks * NumRanks * NumRanks * NumRanks

// String returns a human-readable representation of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Key totally orders hands: category first, then the category-relevant
// ranks packed base 13, most significant first. Equal keys tie exactly.
type Key struct {
	Category Category
	Packed   uint32
}

// Value folds the key into one integer with the same ordering
func (k Key) Value() uint32 {
	return uint32(k.Category)*packedSpan + k.Packed
}

// Compare returns -1 if k < other, 0 if equal, 1 if k > other
func (k Key) Compare(other Key) int {
	a, b := k.Value(), other.Value()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func pack(ranks ...Rank) uint32 {
	var v uint32
	for _, r := range ranks {
		v = v*NumRanks + uint32(r-Two)
	}
	return v
}

// HandRank is the classified value of five cards. The set of
// implementations is closed: one struct per Category.
type HandRank interface {
	Category() Category
	Key() Key
	String() string
	handRank()
}

// HighCardHand holds all five cards, highest first
type HighCardHand struct {
	Cards [5]Card
}

// OnePairHand holds the pair rank and the three kickers, highest first
type OnePairHand struct {
	Pair    Rank
	Kickers [3]Card
}

// TwoPairHand holds both pair ranks and the remaining kicker
type TwoPairHand struct {
	High   Rank
	Low    Rank
	Kicker Card
}

// ThreeOfAKindHand holds the trips rank and two kickers, highest first
type ThreeOfAKindHand struct {
	Trips   Rank
	Kickers [2]Card
}

// StraightHand holds the top rank of the straight (Five for the wheel)
type StraightHand struct {
	High Rank
}

// FlushHand holds the suit and the five ranks, highest first
type FlushHand struct {
	Suit  Suit
	Ranks [5]Rank
}

// FullHouseHand holds the trips rank and the pair rank
type FullHouseHand struct {
	Trips Rank
	Pair  Rank
}

// FourOfAKindHand holds the quad rank and the kicker
type FourOfAKindHand struct {
	Quad   Rank
	Kicker Card
}

// StraightFlushHand holds the top card of the straight flush
type StraightFlushHand struct {
	High Card
}

func (HighCardHand) handRank()      {}
func (OnePairHand) handRank()       {}
func (TwoPairHand) handRank()       {}
func (ThreeOfAKindHand) handRank()  {}
func (StraightHand) handRank()      {}
func (FlushHand) handRank()         {}
func (FullHouseHand) handRank()     {}
func (FourOfAKindHand) handRank()   {}
func (StraightFlushHand) handRank() {}

func (HighCardHand) Category() Category      { return HighCard }
func (OnePairHand) Category() Category       { return OnePair }
func (TwoPairHand) Category() Category       { return TwoPair }
func (ThreeOfAKindHand) Category() Category  { return ThreeOfAKind }
func (StraightHand) Category() Category      { return Straight }
func (FlushHand) Category() Category         { return Flush }
func (FullHouseHand) Category() Category     { return FullHouse }
func (FourOfAKindHand) Category() Category   { return FourOfAKind }
func (StraightFlushHand) Category() Category { return StraightFlush }

func (h HighCardHand) Key() Key {
	c := h.Cards
	return Key{HighCard, pack(c[0].Rank, c[1].Rank, c[2].Rank, c[3].Rank, c[4].Rank)}
}

func (h OnePairHand) Key() Key {
	k := h.Kickers
	return Key{OnePair, pack(h.Pair, k[0].Rank, k[1].Rank, k[2].Rank)}
}

func (h TwoPairHand) Key() Key {
	return Key{TwoPair, pack(h.High, h.Low, h.Kicker.Rank)}
}

func (h ThreeOfAKindHand) Key() Key {
	return Key{ThreeOfAKind, pack(h.Trips, h.Kickers[0].Rank, h.Kickers[1].Rank)}
}

func (h StraightHand) Key() Key {
	return Key{Straight, pack(h.High)}
}

func (h FlushHand) Key() Key {
	r := h.Ranks
	return Key{Flush, pack(r[0], r[1], r[2], r[3], r[4])}
}

func (h FullHouseHand) Key() Key {
	return Key{FullHouse, pack(h.Trips, h.Pair)}
}

func (h FourOfAKindHand) Key() Key {
	return Key{FourOfAKind, pack(h.Quad, h.Kicker.Rank)}
}

func (h StraightFlushHand) Key() Key {
	return Key{StraightFlush, pack(h.High.Rank)}
}

func joinCards(cs []Card) string {
	var b strings.Builder
	for _, c := range cs {
		b.WriteString(c.String())
	}
	return b.String()
}

func (h HighCardHand) String() string {
	return fmt.Sprintf("High Card, %s (%s)", h.Cards[0].Rank.Name(false), joinCards(h.Cards[:]))
}

func (h OnePairHand) String() string {
	return fmt.Sprintf("One Pair, %s (%s kickers)", h.Pair.Name(true), joinCards(h.Kickers[:]))
}

func (h TwoPairHand) String() string {
	return fmt.Sprintf("Two Pair, %s and %s (%s kicker)", h.High.Name(true), h.Low.Name(true), h.Kicker)
}

func (h ThreeOfAKindHand) String() string {
	return fmt.Sprintf("Three of a Kind, %s (%s kickers)", h.Trips.Name(true), joinCards(h.Kickers[:]))
}

func (h StraightHand) String() string {
	return fmt.Sprintf("Straight, %s high", h.High.Name(false))
}

func (h FlushHand) String() string {
	return fmt.Sprintf("Flush, %s high (%s)", h.Ranks[0].Name(false), h.Suit)
}

func (h FullHouseHand) String() string {
	return fmt.Sprintf("Full House, %s full of %s", h.Trips.Name(true), h.Pair.Name(true))
}

func (h FourOfAKindHand) String() string {
	return fmt.Sprintf("Four of a Kind, %s (%s kicker)", h.Quad.Name(true), h.Kicker)
}

func (h StraightFlushHand) String() string {
	return fmt.Sprintf("Straight Flush, %s high", h.High)
}

// Compare returns -1 if a < b, 0 if they tie, 1 if a > b
func Compare(a, b HandRank) int {
	return a.Key().Compare(b.Key())
}

// evaluation is the allocation-free form of a classified hand. The
// exported HandRank values and the packed keys are both derived from it.
type evaluation struct {
	category  Category
	sorted    [5]Card // all five cards, rank descending
	primary   Rank    // straight top, quad, trips or high pair rank
	secondary Rank    // full-house pair or low pair rank
	kickers   [3]Card // unpaired cards, rank descending
	high      Card    // top card of a straight flush
}

// Evaluate classifies exactly five distinct cards
func Evaluate(cards [5]Card) HandRank {
	e := evaluate5(cards)
	switch e.category {
	case StraightFlush:
		return StraightFlushHand{High: e.high}
	case Straight:
		return StraightHand{High: e.primary}
	case Flush:
		s := e.sorted
		return FlushHand{Suit: s[0].Suit, Ranks: [5]Rank{s[0].Rank, s[1].Rank, s[2].Rank, s[3].Rank, s[4].Rank}}
	case FourOfAKind:
		return FourOfAKindHand{Quad: e.primary, Kicker: e.kickers[0]}
	case FullHouse:
		return FullHouseHand{Trips: e.primary, Pair: e.secondary}
	case ThreeOfAKind:
		return ThreeOfAKindHand{Trips: e.primary, Kickers: [2]Card{e.kickers[0], e.kickers[1]}}
	case TwoPair:
		return TwoPairHand{High: e.primary, Low: e.secondary, Kicker: e.kickers[0]}
	case OnePair:
		return OnePairHand{Pair: e.primary, Kickers: e.kickers}
	default:
		return HighCardHand{Cards: e.sorted}
	}
}

// key computes the same Key the exported HandRank would report
func (e *evaluation) key() Key {
	k := &e.kickers
	s := &e.sorted
	switch e.category {
	case StraightFlush:
		return Key{StraightFlush, pack(e.high.Rank)}
	case Straight:
		return Key{Straight, pack(e.primary)}
	case Flush, HighCard:
		return Key{e.category, pack(s[0].Rank, s[1].Rank, s[2].Rank, s[3].Rank, s[4].Rank)}
	case FourOfAKind:
		return Key{FourOfAKind, pack(e.primary, k[0].Rank)}
	case FullHouse:
		return Key{FullHouse, pack(e.primary, e.secondary)}
	case ThreeOfAKind:
		return Key{ThreeOfAKind, pack(e.primary, k[0].Rank, k[1].Rank)}
	case TwoPair:
		return Key{TwoPair, pack(e.primary, e.secondary, k[0].Rank)}
	default:
		return Key{OnePair, pack(e.primary, k[0].Rank, k[1].Rank, k[2].Rank)}
	}
}

func evaluate5(cards [5]Card) evaluation {
	var e evaluation

	// Insertion sort, rank descending
	e.sorted = cards
	s := &e.sorted
	for i := 1; i < 5; i++ {
		for j := i; j > 0 && s[j].Rank > s[j-1].Rank; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}

	isFlush := s[0].Suit == s[1].Suit && s[0].Suit == s[2].Suit &&
		s[0].Suit == s[3].Suit && s[0].Suit == s[4].Suit

	if top, ok := straightTop(s); ok {
		if isFlush {
			e.category = StraightFlush
			e.high = s[top]
		} else {
			e.category = Straight
		}
		e.primary = s[top].Rank
		return e
	}
	if isFlush {
		e.category = Flush
		return e
	}

	var counts [Ace + 1]uint8
	for _, c := range s {
		counts[c.Rank]++
	}

	var quad, trips Rank
	var pairs [2]Rank
	numPairs := 0
	for r := Ace; r >= Two; r-- {
		switch counts[r] {
		case 4:
			quad = r
		case 3:
			trips = r
		case 2:
			if numPairs == 2 {
				panic(fmt.Sprintf("cards: impossible rank frequencies in %s", joinCards(s[:])))
			}
			pairs[numPairs] = r
			numPairs++
		}
	}

	nk := 0
	for _, c := range s {
		if counts[c.Rank] == 1 {
			if nk == len(e.kickers) {
				break
			}
			e.kickers[nk] = c
			nk++
		}
	}

	switch {
	case quad != 0:
		e.category = FourOfAKind
		e.primary = quad
	case trips != 0 && numPairs == 1:
		e.category = FullHouse
		e.primary = trips
		e.secondary = pairs[0]
	case trips != 0 && numPairs == 0:
		e.category = ThreeOfAKind
		e.primary = trips
	case numPairs == 2:
		e.category = TwoPair
		e.primary = pairs[0]
		e.secondary = pairs[1]
	case numPairs == 1:
		e.category = OnePair
		e.primary = pairs[0]
	case nk == 3:
		e.category = HighCard
	default:
		panic(fmt.Sprintf("cards: impossible rank frequencies in %s", joinCards(s[:])))
	}
	return e
}

// straightTop checks the rank-descending cards for a straight, trying the
// rotation starting at index 0 and the one starting at index 1 (the wheel).
// It returns the index of the straight's top card.
func straightTop(s *[5]Card) (int, bool) {
	for start := 0; start < 2; start++ {
		ok := true
		for i := 0; i < 4; i++ {
			hi := s[(start+i)%5].Rank
			lo := s[(start+i+1)%5].Rank
			if !IsNextInCycle(hi, lo) {
				ok = false
				break
			}
		}
		if ok {
			return start, true
		}
	}
	return 0, false
}

// subsets5of7 lists the 21 ways to choose 5 of 7 positions
var subsets5of7 = func() [21][5]uint8 {
	var out [21][5]uint8
	n := 0
	for i := uint8(0); i < 7; i++ {
		for j := i + 1; j < 7; j++ {
			// i and j are the two cards left out
			k := 0
			for p := uint8(0); p < 7; p++ {
				if p != i && p != j {
					out[n][k] = p
					k++
				}
			}
			n++
		}
	}
	return out
}()

// BestKey7 returns the packed value of the best five-card hand among seven
// cards without allocating. Values compare like Key.Value.
func BestKey7(cards *[7]Card) uint32 {
	var best uint32
	var five [5]Card
	for _, idx := range subsets5of7 {
		for k, p := range idx {
			five[k] = cards[p]
		}
		e := evaluate5(five)
		if v := e.key().Value(); v > best {
			best = v
		}
	}
	return best
}

// BestOf7 returns the best five-card hand among seven cards
func BestOf7(cards [7]Card) HandRank {
	var best HandRank
	var bestValue uint32
	var five [5]Card
	for n, idx := range subsets5of7 {
		for k, p := range idx {
			five[k] = cards[p]
		}
		h := Evaluate(five)
		if v := h.Key().Value(); n == 0 || v > bestValue {
			best, bestValue = h, v
		}
	}
	return best
}
