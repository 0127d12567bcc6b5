package hands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/liarsodds/internal/deck"
	"github.com/lox/liarsodds/internal/probability"
)

// ErrInvalidCall is returned when a call names ranks or suits that do not fit
// its kind or the deck.
var ErrInvalidCall = errors.New("invalid call")

// runLength is the number of consecutive ranks in a straight.
const runLength = 5

// Call is a concrete liar's poker bid such as "full house, jacks over nines".
//
// Ranks holds, in order: the rank of a high card, pair, three or four of a
// kind; the higher then lower pair of two pair; the triple then the pair of a
// full house; the lowest rank of a straight or straight flush. Suit is used
// by flushes and straight flushes.
type Call struct {
	Kind  Kind
	Ranks []deck.Rank
	Suit  deck.Suit
}

// ParseCall builds and validates a call from command-line style strings.
func ParseCall(info deck.Info, kind Kind, ranks []string, suit string) (Call, error) {
	call := Call{Kind: kind}
	for _, s := range ranks {
		r, err := deck.ParseRank(s)
		if err != nil {
			return Call{}, fmt.Errorf("%w: %v", ErrInvalidCall, err)
		}
		call.Ranks = append(call.Ranks, r)
	}
	if suit != "" {
		s, err := deck.ParseSuit(suit)
		if err != nil {
			return Call{}, fmt.Errorf("%w: %v", ErrInvalidCall, err)
		}
		call.Suit = s
	}
	if err := call.Validate(info); err != nil {
		return Call{}, err
	}
	return call, nil
}

func (c Call) rankCount() int {
	switch c.Kind {
	case Flush:
		return 0
	case TwoPair, FullHouse:
		return 2
	default:
		return 1
	}
}

func (c Call) usesSuit() bool {
	return c.Kind == Flush || c.Kind == StraightFlush
}

// Validate checks the call against the deck it is made on.
func (c Call) Validate(info deck.Info) error {
	if !c.Kind.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(c.Kind))
	}
	if want := c.rankCount(); len(c.Ranks) != want {
		return fmt.Errorf("%w: %s needs %d rank(s), got %d", ErrInvalidCall, c.Kind, want, len(c.Ranks))
	}
	for _, r := range c.Ranks {
		if !info.HasRank(r) {
			return fmt.Errorf("%w: rank %s is not in the deck", ErrInvalidCall, r)
		}
	}
	if len(c.Ranks) == 2 && c.Ranks[0] == c.Ranks[1] {
		return fmt.Errorf("%w: %s needs two different ranks", ErrInvalidCall, c.Kind)
	}
	if c.usesSuit() && !info.HasSuit(c.Suit) {
		return fmt.Errorf("%w: suit %s is not in the deck", ErrInvalidCall, c.Suit)
	}
	if c.Kind == Straight || c.Kind == StraightFlush {
		if top := c.Ranks[0] + runLength - 1; top > deck.Ace {
			return fmt.Errorf("%w: a straight from %s runs past the ace", ErrInvalidCall, c.Ranks[0])
		}
	}
	return nil
}

func (c Call) run() []deck.Rank {
	ranks := make([]deck.Rank, runLength)
	for i := range ranks {
		ranks[i] = c.Ranks[0] + deck.Rank(i)
	}
	return ranks
}

// Matched counts the held cards that already contribute to the call, capped
// at what each requirement needs. The result lines up with Requirements.
func (c Call) Matched(held []deck.Card) []int {
	shape := c.Kind.Shape()
	switch {
	case c.Kind == Flush:
		n := 0
		for _, card := range held {
			if card.Suit == c.Suit {
				n++
			}
		}
		return []int{min(n, shape.AtLeast[0])}

	case c.Kind == Straight:
		seen := make(map[deck.Rank]bool)
		for _, card := range held {
			seen[card.Rank] = true
		}
		n := 0
		for _, r := range c.run() {
			if seen[r] {
				n++
			}
		}
		return []int{n}

	case c.Kind == StraightFlush:
		seen := make(map[deck.Card]bool)
		for _, card := range held {
			seen[card] = true
		}
		n := 0
		for _, r := range c.run() {
			if seen[deck.NewCard(c.Suit, r)] {
				n++
			}
		}
		return []int{n}
	}

	matched := make([]int, len(c.Ranks))
	for i, r := range c.Ranks {
		n := 0
		for _, card := range held {
			if card.Rank == r {
				n++
			}
		}
		matched[i] = min(n, shape.AtLeast[i])
	}
	return matched
}

// Func validates the held cards and builds the call's probability function.
func (c Call) Func(engine *probability.Engine, held []deck.Card) (probability.Func, error) {
	info := engine.Deck()
	if err := c.Validate(info); err != nil {
		return nil, err
	}
	seen := make(map[deck.Card]bool, len(held))
	for _, card := range held {
		if !info.Contains(card) {
			return nil, fmt.Errorf("%w: held card %s is not in the deck", ErrInvalidCall, card)
		}
		if seen[card] {
			return nil, fmt.Errorf("%w: held card %s appears twice", ErrInvalidCall, card)
		}
		seen[card] = true
	}
	return Func(engine, c.Kind, c.Matched(held)...)
}

// String describes the call in words, e.g. "full house, jacks over nines".
func (c Call) String() string {
	name := strings.ToLower(c.Kind.String())
	if len(c.Ranks) < c.rankCount() {
		return name
	}
	switch c.Kind {
	case HighCard:
		return fmt.Sprintf("high card %s", c.Ranks[0])
	case Pair, ThreeOfAKind, FourOfAKind:
		return fmt.Sprintf("%s of %s", name, c.Ranks[0].Name())
	case TwoPair:
		return fmt.Sprintf("two pair, %s and %s", c.Ranks[0].Name(), c.Ranks[1].Name())
	case FullHouse:
		return fmt.Sprintf("full house, %s over %s", c.Ranks[0].Name(), c.Ranks[1].Name())
	case Straight:
		return fmt.Sprintf("straight, %s to %s", c.Ranks[0], c.Ranks[0]+runLength-1)
	case Flush:
		return fmt.Sprintf("flush in %s", c.Suit)
	case StraightFlush:
		return fmt.Sprintf("straight flush in %s, %s to %s", c.Suit, c.Ranks[0], c.Ranks[0]+runLength-1)
	default:
		return name
	}
}
