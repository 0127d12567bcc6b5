// Package export builds the bulk probability table used by liar's poker
// clients: every hand, for every number of cards already matched by the
// caller's own hand, evaluated across a range of draw sizes.
package export

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/liarsodds/internal/deck"
	"github.com/lox/liarsodds/internal/hands"
	"github.com/lox/liarsodds/internal/probability"
)

// ErrInvalidRange is returned for a draw range outside the deck.
var ErrInvalidRange = errors.New("invalid draw range")

// Table is the exported document. Each leaf is a probability series over the
// draw range; the outer indices are matched-card counts.
type Table struct {
	HighCard      []float64     `json:"highCard" yaml:"highCard"`
	Pair          [][]float64   `json:"pair" yaml:"pair"`
	ThreeOfAKind  [][]float64   `json:"threeOfAKind" yaml:"threeOfAKind"`
	FourOfAKind   [][]float64   `json:"fourOfAKind" yaml:"fourOfAKind"`
	TwoPair       [][][]float64 `json:"twoPair" yaml:"twoPair"`
	FullHouse     [][][]float64 `json:"fullHouse" yaml:"fullHouse"`
	Straight      [][]float64   `json:"straight" yaml:"straight"`
	Flush         [][]float64   `json:"flush" yaml:"flush"`
	StraightFlush [][]float64   `json:"straightFlush" yaml:"straightFlush"`
}

// Range is an inclusive range of draw sizes.
type Range struct {
	Min int
	Max int
}

// DefaultRange covers every draw that leaves at least one card in the deck.
func DefaultRange(info deck.Info) Range {
	return Range{Min: 1, Max: info.Size - 1}
}

// Validate checks 0 <= Min <= Max <= deck size.
func (r Range) Validate(info deck.Info) error {
	if r.Min < 0 || r.Max > info.Size || r.Min > r.Max {
		return fmt.Errorf("%w: [%d, %d] must lie within [0, %d]", ErrInvalidRange, r.Min, r.Max, info.Size)
	}
	return nil
}

// Len returns the number of draw sizes in the range.
func (r Range) Len() int {
	return r.Max - r.Min + 1
}

// series is one leaf of the table waiting to be computed.
type series struct {
	kind    hands.Kind
	matched []int
	dst     *[]float64
}

// Exporter computes tables with a fixed engine.
type Exporter struct {
	engine *probability.Engine
	logger *log.Logger
	clock  quartz.Clock

	// Workers bounds the number of series computed at once. Zero means one
	// per CPU.
	Workers int
}

// NewExporter creates an exporter. The clock is only used to report timings.
func NewExporter(engine *probability.Engine, logger *log.Logger, clock quartz.Clock) *Exporter {
	return &Exporter{
		engine: engine,
		logger: logger.WithPrefix("export"),
		clock:  clock,
	}
}

// Build computes every series of the table over the draw range.
func (x *Exporter) Build(ctx context.Context, r Range) (*Table, error) {
	if err := r.Validate(x.engine.Deck()); err != nil {
		return nil, err
	}

	start := x.clock.Now()
	table, jobs := layout()

	for _, kind := range hands.Kinds() {
		if !hands.Fits(x.engine.Deck(), kind) {
			x.logger.Warn("Hand cannot be made from this deck, exporting zeros", "hand", kind.Key())
		}
	}

	workers := x.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !hands.Fits(x.engine.Deck(), job.kind) {
				*job.dst = make([]float64, r.Len())
				return nil
			}
			f, err := hands.Func(x.engine, job.kind, job.matched...)
			if err != nil {
				return fmt.Errorf("%s %v: %w", job.kind.Key(), job.matched, err)
			}
			curve, err := f.Curve(r.Min, r.Max)
			if err != nil {
				return fmt.Errorf("%s %v: %w", job.kind.Key(), job.matched, err)
			}
			*job.dst = curve
			x.logger.Debug("Computed series", "hand", job.kind.Key(), "matched", job.matched, "points", len(curve))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	x.logger.Info("Built probability table",
		"series", len(jobs),
		"draws", fmt.Sprintf("%d-%d", r.Min, r.Max),
		"precision", x.engine.Precision(),
		"took", x.clock.Now().Sub(start))

	return table, nil
}

// layout allocates the table and lists the series that fill it. Two pair and
// full house skip the combinations already completed by the held cards.
func layout() (*Table, []series) {
	t := &Table{
		Pair:          make([][]float64, 2),
		ThreeOfAKind:  make([][]float64, 3),
		FourOfAKind:   make([][]float64, 4),
		TwoPair:       make([][][]float64, 3),
		FullHouse:     make([][][]float64, 4),
		Straight:      make([][]float64, 5),
		Flush:         make([][]float64, 5),
		StraightFlush: make([][]float64, 5),
	}

	jobs := []series{{kind: hands.HighCard, matched: []int{0}, dst: &t.HighCard}}

	flat := func(kind hands.Kind, rows [][]float64) {
		for m := range rows {
			jobs = append(jobs, series{kind: kind, matched: []int{m}, dst: &rows[m]})
		}
	}
	flat(hands.Pair, t.Pair)
	flat(hands.ThreeOfAKind, t.ThreeOfAKind)
	flat(hands.FourOfAKind, t.FourOfAKind)
	flat(hands.Straight, t.Straight)
	flat(hands.Flush, t.Flush)
	flat(hands.StraightFlush, t.StraightFlush)

	for first := range t.TwoPair {
		var seconds []int
		for second := 0; second <= first; second++ {
			if second == 2 {
				continue
			}
			seconds = append(seconds, second)
		}
		t.TwoPair[first] = make([][]float64, len(seconds))
		for i, second := range seconds {
			jobs = append(jobs, series{kind: hands.TwoPair, matched: []int{first, second}, dst: &t.TwoPair[first][i]})
		}
	}

	for first := range t.FullHouse {
		var seconds []int
		for second := 0; second <= 2; second++ {
			if first == 3 && second == 2 {
				continue
			}
			seconds = append(seconds, second)
		}
		t.FullHouse[first] = make([][]float64, len(seconds))
		for i, second := range seconds {
			jobs = append(jobs, series{kind: hands.FullHouse, matched: []int{first, second}, dst: &t.FullHouse[first][i]})
		}
	}

	return t, jobs
}
