package hands

import (
	"errors"
	"fmt"

	"github.com/lox/liarsodds/internal/deck"
	"github.com/lox/liarsodds/internal/probability"
)

// ErrInvalidMatch is returned when a matched count is negative, larger than
// the hand needs, or given for a requirement the hand does not have.
var ErrInvalidMatch = errors.New("invalid matched count")

// Requirements returns the engine requirements for kind when matched[i]
// cards of the i-th category are already held. Runs take a single matched
// count and drop that many requirements. The deck size is left unchanged.
func Requirements(engine *probability.Engine, kind Kind, matched ...int) ([]probability.Requirement, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	shape := kind.Shape()
	limits := shape.MaxMatched()
	if len(matched) > len(limits) {
		return nil, fmt.Errorf("%w: %s takes at most %d matched counts, got %d",
			ErrInvalidMatch, kind, len(limits), len(matched))
	}
	for i, m := range matched {
		if m < 0 || m > limits[i] {
			return nil, fmt.Errorf("%w: %s matched count %d must be in [0, %d], got %d",
				ErrInvalidMatch, kind, i+1, limits[i], m)
		}
	}

	total := categoryTotal(engine.Deck(), shape.Category)

	if shape.Run {
		held := 0
		if len(matched) > 0 {
			held = matched[0]
		}
		reqs := make([]probability.Requirement, 0, len(shape.AtLeast)-held)
		for _, n := range shape.AtLeast[held:] {
			req, err := probability.NewRequirement(n, total)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", kind, err)
			}
			reqs = append(reqs, req)
		}
		return reqs, nil
	}

	reqs := make([]probability.Requirement, 0, len(shape.AtLeast))
	for i, n := range shape.AtLeast {
		held := 0
		if i < len(matched) {
			held = matched[i]
		}
		req, err := probability.NewRequirement(n-held, total-held)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// Func builds the probability function of kind given the matched counts.
func Func(engine *probability.Engine, kind Kind, matched ...int) (probability.Func, error) {
	reqs, err := Requirements(engine, kind, matched...)
	if err != nil {
		return nil, err
	}
	return engine.Func(reqs...), nil
}

// Canonical builds the function of kind with nothing held, through the
// engine's rank, suit and unique-card builders.
func Canonical(engine *probability.Engine, kind Kind) (probability.Func, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
	shape := kind.Shape()
	switch shape.Category {
	case SuitCategory:
		return engine.Suits(shape.AtLeast...)
	case UniqueCategory:
		return engine.UniqueCards(len(shape.AtLeast))
	default:
		return engine.Ranks(shape.AtLeast...)
	}
}

// Fits reports whether kind can be made at all from a deck of this shape:
// enough distinct categories, each holding at least the count it needs. The
// engine rejects requirements for hands that do not fit.
func Fits(info deck.Info, kind Kind) bool {
	if !kind.valid() {
		return false
	}
	shape := kind.Shape()
	if len(shape.AtLeast) > categoryCount(info, shape.Category) {
		return false
	}
	// A run spans that many consecutive ranks, whatever the category.
	if shape.Run && len(shape.AtLeast) > info.RankCount() {
		return false
	}
	total := categoryTotal(info, shape.Category)
	for _, n := range shape.AtLeast {
		if n > total {
			return false
		}
	}
	return true
}

func categoryTotal(info deck.Info, c Category) int {
	switch c {
	case SuitCategory:
		return info.CardsPerSuit
	case UniqueCategory:
		return 1
	default:
		return info.CardsPerRank
	}
}

func categoryCount(info deck.Info, c Category) int {
	switch c {
	case SuitCategory:
		return info.SuitCount()
	case UniqueCategory:
		return info.Size
	default:
		return info.RankCount()
	}
}
