// Package chart renders the probability curves of the nine liar's poker
// hands as a terminal table with one sparkline per hand.
package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/liarsodds/internal/export"
	"github.com/lox/liarsodds/internal/hands"
	"github.com/lox/liarsodds/internal/probability"
)

// Curve is the probability of one hand across a range of draw sizes. Values
// is empty when the hand cannot be made from the deck.
type Curve struct {
	Kind   hands.Kind
	Draws  export.Range
	Values []float64
}

// At returns the probability for draw size m, or false if m is outside the curve.
func (c Curve) At(m int) (float64, bool) {
	i := m - c.Draws.Min
	if i < 0 || i >= len(c.Values) {
		return 0, false
	}
	return c.Values[i], true
}

// Curves builds the canonical curve of every hand kind, nothing held.
func Curves(engine *probability.Engine, draws export.Range) ([]Curve, error) {
	if err := draws.Validate(engine.Deck()); err != nil {
		return nil, err
	}
	curves := make([]Curve, 0, len(hands.Kinds()))
	for _, kind := range hands.Kinds() {
		if !hands.Fits(engine.Deck(), kind) {
			curves = append(curves, Curve{Kind: kind, Draws: draws})
			continue
		}
		f, err := hands.Canonical(engine, kind)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		values, err := f.Curve(draws.Min, draws.Max)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		curves = append(curves, Curve{Kind: kind, Draws: draws, Values: values})
	}
	return curves, nil
}

// Options controls rendering.
type Options struct {
	Title   string
	NoColor bool
}

var shortLabels = map[hands.Kind]string{
	hands.HighCard:      "High",
	hands.Pair:          "Pair",
	hands.TwoPair:       "2 Pair",
	hands.Straight:      "Str",
	hands.ThreeOfAKind:  "Trips",
	hands.FullHouse:     "Full",
	hands.Flush:         "Flush",
	hands.FourOfAKind:   "Quads",
	hands.StraightFlush: "S.Fl",
}

const (
	cellWidth  = 8
	drawsWidth = 6
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline maps each value in [0, 1] to a block character.
func Sparkline(values []float64) string {
	var b strings.Builder
	top := float64(len(sparks) - 1)
	for _, v := range values {
		v = math.Max(0, math.Min(1, v))
		b.WriteRune(sparks[int(math.Round(v*top))])
	}
	return b.String()
}

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	draws  lipgloss.Style
	high   lipgloss.Style
	medium lipgloss.Style
	low    lipgloss.Style
	label  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	cell := r.NewStyle().Width(cellWidth).Align(lipgloss.Right)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		header: cell.Bold(true).Foreground(lipgloss.Color("14")),
		draws:  r.NewStyle().Width(drawsWidth).Align(lipgloss.Right).Foreground(lipgloss.Color("12")),
		high:   cell.Foreground(lipgloss.Color("10")),
		medium: cell.Foreground(lipgloss.Color("11")),
		low:    cell.Foreground(lipgloss.Color("8")),
		label:  r.NewStyle().Width(16).Foreground(lipgloss.Color("14")),
	}
}

func (s styles) cell(p float64) lipgloss.Style {
	switch {
	case p >= 0.5:
		return s.high
	case p >= 0.1:
		return s.medium
	default:
		return s.low
	}
}

// Render writes one row per draw size with a column per hand, followed by a
// sparkline legend. All curves must share the same draw range.
func Render(w io.Writer, curves []Curve, opts Options) error {
	if len(curves) == 0 {
		return nil
	}

	r := lipgloss.NewRenderer(w)
	if opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	st := newStyles(r)

	var b strings.Builder
	if opts.Title != "" {
		b.WriteString(st.title.Render(opts.Title))
		b.WriteString("\n\n")
	}

	b.WriteString(st.draws.Render("cards"))
	for _, c := range curves {
		b.WriteString(st.header.Render(shortLabels[c.Kind]))
	}
	b.WriteString("\n")

	draws := curves[0].Draws
	for m := draws.Min; m <= draws.Max; m++ {
		b.WriteString(st.draws.Render(fmt.Sprintf("%d", m)))
		for _, c := range curves {
			p, ok := c.At(m)
			if !ok {
				b.WriteString(st.low.Render("-"))
				continue
			}
			b.WriteString(st.cell(p).Render(fmt.Sprintf("%.1f%%", p*100)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, c := range curves {
		b.WriteString(st.label.Render(c.Kind.String()))
		if len(c.Values) == 0 {
			b.WriteString("-")
		}
		b.WriteString(Sparkline(c.Values))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
