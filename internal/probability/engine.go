// Package probability computes exact probabilities of drawing hands that
// satisfy a set of "at least k of n" requirements when cards are drawn
// without replacement.
//
// For requirements (r_i, n_i) over disjoint categories and a draw of m cards
// from a deck of N, the probability is
//
//	Σ_c Π_i C(n_i, c_i) · C(N − Σn_i, m − Σc_i) / C(N, m)
//
// where c ranges over every vector with r_i <= c_i <= n_i.
package probability

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/lox/liarsodds/internal/deck"
)

var (
	// ErrInvalidDrawSize is returned when a function is evaluated for a draw
	// that is negative or larger than the deck.
	ErrInvalidDrawSize = errors.New("invalid draw size")

	// ErrInvalidPrecision is returned for a negative number of digits.
	ErrInvalidPrecision = errors.New("invalid precision")
)

// Precision selects whether results are returned exactly or rounded.
type Precision struct {
	digits  int
	rounded bool
}

// Exact returns results as the float64 nearest the exact rational.
func Exact() Precision { return Precision{} }

// Digits rounds results to n decimal places.
func Digits(n int) Precision { return Precision{digits: n, rounded: true} }

// Rounded reports the number of digits and whether rounding is enabled.
func (p Precision) Rounded() (int, bool) { return p.digits, p.rounded }

func (p Precision) String() string {
	if !p.rounded {
		return "exact"
	}
	return fmt.Sprintf("%d digits", p.digits)
}

func (p Precision) apply(r *big.Rat) float64 {
	if !p.rounded {
		f, _ := r.Float64()
		return f
	}
	num := decimal.NewFromBigInt(r.Num(), 0)
	den := decimal.NewFromBigInt(r.Denom(), 0)
	f, _ := num.DivRound(den, int32(p.digits)).Float64()
	return f
}

// Func maps a draw size to the probability of the hand it was built for.
// It is safe for concurrent use.
type Func func(selected int) (float64, error)

// Curve evaluates f for every draw size in [from, to].
func (f Func) Curve(from, to int) ([]float64, error) {
	if to < from {
		return nil, nil
	}
	out := make([]float64, 0, to-from+1)
	for m := from; m <= to; m++ {
		p, err := f(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Engine binds a deck descriptor and a rounding precision. It is immutable
// and may be shared freely.
type Engine struct {
	deck      deck.Info
	precision Precision
}

// NewEngine validates the deck and precision.
func NewEngine(info deck.Info, precision Precision) (*Engine, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if precision.rounded && precision.digits < 0 {
		return nil, fmt.Errorf("%w: digits must be non-negative, got %d", ErrInvalidPrecision, precision.digits)
	}
	return &Engine{deck: info, precision: precision}, nil
}

// Deck returns the deck the engine was built for.
func (e *Engine) Deck() deck.Info { return e.deck }

// Precision returns the engine's rounding mode.
func (e *Engine) Precision() Precision { return e.precision }

// Func builds the probability function for the given requirements.
func (e *Engine) Func(reqs ...Requirement) Func {
	l := newLattice(reqs)
	return func(selected int) (float64, error) {
		r, err := e.rat(selected, l)
		if err != nil {
			return 0, err
		}
		return e.precision.apply(r), nil
	}
}

// Rat returns the unrounded probability as an exact rational.
func (e *Engine) Rat(selected int, reqs ...Requirement) (*big.Rat, error) {
	return e.rat(selected, newLattice(reqs))
}

func (e *Engine) rat(selected int, l *lattice) (*big.Rat, error) {
	if selected < 0 {
		return nil, fmt.Errorf("%w: %d is negative", ErrInvalidDrawSize, selected)
	}
	if selected > e.deck.Size {
		return nil, fmt.Errorf("%w: %d exceeds deck size %d", ErrInvalidDrawSize, selected, e.deck.Size)
	}
	num := l.favourable(e.deck.Size, selected)
	return new(big.Rat).SetFrac(num, Choose(e.deck.Size, selected)), nil
}

// lattice holds, per requirement, the number of ways to draw each feasible
// count from its category. weights[i][j] is C(total_i, required_i + j).
type lattice struct {
	required []int
	weights  [][]*big.Int
	tracked  int
}

func newLattice(reqs []Requirement) *lattice {
	l := &lattice{
		required: make([]int, len(reqs)),
		weights:  make([][]*big.Int, len(reqs)),
	}
	for i, req := range reqs {
		l.required[i] = req.required
		l.tracked += req.total
		w := make([]*big.Int, 0, req.total-req.required+1)
		for c := req.required; c <= req.total; c++ {
			w = append(w, Choose(req.total, c))
		}
		l.weights[i] = w
	}
	return l
}

// favourable counts the draws of m cards from a deck of size that satisfy
// every requirement.
func (l *lattice) favourable(size, m int) *big.Int {
	rest := size - l.tracked
	sum := new(big.Int)
	term := new(big.Int)

	l.each(func(offsets []int) {
		term.SetInt64(1)
		drawn := 0
		for i, off := range offsets {
			drawn += l.required[i] + off
			term.Mul(term, l.weights[i][off])
		}
		if drawn > m {
			return
		}
		term.Mul(term, Choose(rest, m-drawn))
		sum.Add(sum, term)
	})
	return sum
}

// each visits every point of the Cartesian product of the feasible ranges.
// With no requirements the product holds exactly one, empty, point.
func (l *lattice) each(fn func(offsets []int)) {
	if len(l.weights) == 0 {
		fn(nil)
		return
	}
	lens := make([]int, len(l.weights))
	for i, w := range l.weights {
		lens[i] = len(w)
	}
	gen := combin.NewCartesianGenerator(lens)
	offsets := make([]int, len(lens))
	for gen.Next() {
		fn(gen.Product(offsets))
	}
}
