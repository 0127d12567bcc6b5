package probability

import "fmt"

// Ranks builds a function for holding at least atLeast[i] cards of the i-th of
// several distinct ranks. Ranks(3, 2) is a full house.
func (e *Engine) Ranks(atLeast ...int) (Func, error) {
	reqs, err := requirementsOf(e.deck.CardsPerRank, atLeast)
	if err != nil {
		return nil, fmt.Errorf("rank requirements: %w", err)
	}
	return e.Func(reqs...), nil
}

// Suits builds a function for holding at least atLeast[i] cards of the i-th of
// several distinct suits. Suits(5) is a flush.
func (e *Engine) Suits(atLeast ...int) (Func, error) {
	reqs, err := requirementsOf(e.deck.CardsPerSuit, atLeast)
	if err != nil {
		return nil, fmt.Errorf("suit requirements: %w", err)
	}
	return e.Func(reqs...), nil
}

// UniqueCards builds a function for holding n specific cards, each of which
// appears once in the deck. UniqueCards(5) is a straight flush.
func (e *Engine) UniqueCards(n int) (Func, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: unique card count must be non-negative, got %d", ErrInvalidRequirement, n)
	}
	reqs := make([]Requirement, n)
	for i := range reqs {
		reqs[i] = Requirement{required: 1, total: 1}
	}
	return e.Func(reqs...), nil
}
