// Package hands describes the liar's poker hands and turns them into
// probability functions.
package hands

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned by ParseKind for an unrecognised hand name.
var ErrUnknownKind = errors.New("unknown hand kind")

// Kind is a liar's poker hand, ordered from weakest to strongest.
type Kind int

const (
	HighCard Kind = iota
	Pair
	TwoPair
	Straight
	ThreeOfAKind
	FullHouse
	Flush
	FourOfAKind
	StraightFlush
)

var kindNames = [...]struct{ label, key string }{
	HighCard:      {"High Card", "highCard"},
	Pair:          {"Pair", "pair"},
	TwoPair:       {"Two Pair", "twoPair"},
	Straight:      {"Straight", "straight"},
	ThreeOfAKind:  {"Three of a Kind", "threeOfAKind"},
	FullHouse:     {"Full House", "fullHouse"},
	Flush:         {"Flush", "flush"},
	FourOfAKind:   {"Four of a Kind", "fourOfAKind"},
	StraightFlush: {"Straight Flush", "straightFlush"},
}

// Kinds returns every hand kind, weakest first.
func Kinds() []Kind {
	return []Kind{HighCard, Pair, TwoPair, Straight, ThreeOfAKind, FullHouse, Flush, FourOfAKind, StraightFlush}
}

func (k Kind) valid() bool {
	return k >= HighCard && k <= StraightFlush
}

// String returns the display label, e.g. "Two Pair".
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k].label
}

// Key returns the camel-case key used in exported tables, e.g. "twoPair".
func (k Kind) Key() string {
	if !k.valid() {
		return ""
	}
	return kindNames[k].key
}

// ParseKind accepts a label or key in any case, with or without separators:
// "two pair", "two-pair", "twoPair" and "TWO_PAIR" are all TwoPair.
func ParseKind(s string) (Kind, error) {
	want := normalizeKind(s)
	for _, k := range Kinds() {
		if normalizeKind(k.Key()) == want || normalizeKind(k.String()) == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func normalizeKind(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(s))
}

// Category is the kind of card grouping a hand's requirements refer to.
type Category int

const (
	RankCategory Category = iota
	SuitCategory
	UniqueCategory
)

// Shape is the set of at-least counts a hand needs, all over one category.
// For a run (straight, straight flush) every count is one and a held card
// satisfies a whole requirement, so matches are counted per requirement
// removed rather than per card.
type Shape struct {
	Category Category
	AtLeast  []int
	Run      bool
}

// Shape returns the requirements of k with nothing held.
func (k Kind) Shape() Shape {
	switch k {
	case HighCard:
		return Shape{Category: RankCategory, AtLeast: []int{1}}
	case Pair:
		return Shape{Category: RankCategory, AtLeast: []int{2}}
	case TwoPair:
		return Shape{Category: RankCategory, AtLeast: []int{2, 2}}
	case Straight:
		return Shape{Category: RankCategory, AtLeast: []int{1, 1, 1, 1, 1}, Run: true}
	case ThreeOfAKind:
		return Shape{Category: RankCategory, AtLeast: []int{3}}
	case FullHouse:
		return Shape{Category: RankCategory, AtLeast: []int{3, 2}}
	case Flush:
		return Shape{Category: SuitCategory, AtLeast: []int{5}}
	case FourOfAKind:
		return Shape{Category: RankCategory, AtLeast: []int{4}}
	case StraightFlush:
		return Shape{Category: UniqueCategory, AtLeast: []int{1, 1, 1, 1, 1}, Run: true}
	default:
		return Shape{}
	}
}

// MaxMatched returns the largest useful matched count for each entry of
// matched: the base count for most hands, the run length for runs.
func (s Shape) MaxMatched() []int {
	if s.Run {
		return []int{len(s.AtLeast)}
	}
	return append([]int(nil), s.AtLeast...)
}
