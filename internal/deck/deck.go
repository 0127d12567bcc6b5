package deck

import (
	"errors"
	"fmt"
)

// ErrInvalidDeck is returned when a deck descriptor has a non-positive size or
// a category larger than the deck.
var ErrInvalidDeck = errors.New("invalid deck")

// Info describes the shape of a deck: how many cards it holds and how many of
// them share a rank or a suit. The engine never checks that ranks × suits
// equals Size; that relationship is the caller's responsibility.
type Info struct {
	Size         int
	CardsPerRank int
	CardsPerSuit int
}

// LiarsPoker returns the 24-card liar's poker deck: nine through ace in four suits.
func LiarsPoker() Info {
	return Info{Size: 24, CardsPerRank: 4, CardsPerSuit: 6}
}

// NewInfo builds a validated deck descriptor.
func NewInfo(size, cardsPerRank, cardsPerSuit int) (Info, error) {
	info := Info{Size: size, CardsPerRank: cardsPerRank, CardsPerSuit: cardsPerSuit}
	if err := info.Validate(); err != nil {
		return Info{}, err
	}
	return info, nil
}

// Validate checks that every count is positive and no category exceeds the deck.
func (i Info) Validate() error {
	if i.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidDeck, i.Size)
	}
	if i.CardsPerRank <= 0 || i.CardsPerRank > i.Size {
		return fmt.Errorf("%w: cards per rank must be in [1, %d], got %d", ErrInvalidDeck, i.Size, i.CardsPerRank)
	}
	if i.CardsPerSuit <= 0 || i.CardsPerSuit > i.Size {
		return fmt.Errorf("%w: cards per suit must be in [1, %d], got %d", ErrInvalidDeck, i.Size, i.CardsPerSuit)
	}
	return nil
}

// RankCount returns the number of rank categories in the deck.
func (i Info) RankCount() int {
	return i.Size / i.CardsPerRank
}

// SuitCount returns the number of suit categories in the deck.
func (i Info) SuitCount() int {
	return i.Size / i.CardsPerSuit
}

// Ranks returns the ranks present in the deck, lowest first. A deck keeps its
// highest ranks, so the liar's poker deck runs from nine to ace.
func (i Info) Ranks() []Rank {
	n := i.RankCount()
	if n > int(Ace-Two)+1 {
		n = int(Ace-Two) + 1
	}
	ranks := make([]Rank, 0, n)
	for r := Ace - Rank(n) + 1; r <= Ace; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

// Suits returns the suits present in the deck.
func (i Info) Suits() []Suit {
	n := i.SuitCount()
	if n > int(Clubs)+1 {
		n = int(Clubs) + 1
	}
	suits := make([]Suit, 0, n)
	for s := Spades; s < Suit(n); s++ {
		suits = append(suits, s)
	}
	return suits
}

// HasRank reports whether r is one of the deck's ranks.
func (i Info) HasRank(r Rank) bool {
	ranks := i.Ranks()
	return len(ranks) > 0 && r >= ranks[0] && r <= Ace
}

// HasSuit reports whether s is one of the deck's suits.
func (i Info) HasSuit(s Suit) bool {
	return s >= Spades && int(s) < len(i.Suits())
}

// Contains reports whether the card belongs to this deck.
func (i Info) Contains(c Card) bool {
	return i.HasRank(c.Rank) && i.HasSuit(c.Suit)
}

// Cards lists every card of the deck, grouped by suit.
func (i Info) Cards() []Card {
	var cards []Card
	for _, suit := range i.Suits() {
		for _, rank := range i.Ranks() {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}
