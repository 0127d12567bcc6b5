package probability

import (
	"errors"
	"fmt"
)

// ErrInvalidRequirement is returned when a requirement asks for a negative
// count or for more cards than its category holds.
var ErrInvalidRequirement = errors.New("invalid requirement")

// Requirement is an "at least Required out of Total" constraint on one card
// category. Requirements combined into a single probability function must
// describe disjoint sets of cards; that is not checked.
type Requirement struct {
	required int
	total    int
}

// NewRequirement validates 0 <= required <= total.
func NewRequirement(required, total int) (Requirement, error) {
	if required < 0 || total < 0 {
		return Requirement{}, fmt.Errorf("%w: counts must be non-negative (required %d, total %d)",
			ErrInvalidRequirement, required, total)
	}
	if required > total {
		return Requirement{}, fmt.Errorf("%w: cannot require %d cards from a category of %d",
			ErrInvalidRequirement, required, total)
	}
	return Requirement{required: required, total: total}, nil
}

// Required returns the minimum number of cards needed from the category.
func (r Requirement) Required() int { return r.required }

// Total returns the number of cards in the category.
func (r Requirement) Total() int { return r.total }

func (r Requirement) String() string {
	return fmt.Sprintf("at least %d of %d", r.required, r.total)
}

// requirementsOf builds one requirement per at-least count, all sharing total.
func requirementsOf(total int, atLeast []int) ([]Requirement, error) {
	reqs := make([]Requirement, 0, len(atLeast))
	for i, n := range atLeast {
		req, err := NewRequirement(n, total)
		if err != nil {
			return nil, fmt.Errorf("requirement %d: %w", i+1, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
