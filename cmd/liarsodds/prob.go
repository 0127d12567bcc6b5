package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/lox/liarsodds/internal/probability"
)

// ProbCmd evaluates requirements directly against the engine
type ProbCmd struct {
	Rank   []int `kong:"help='At least N cards of one rank, repeat for further distinct ranks'"`
	Suit   []int `kong:"help='At least N cards of one suit, repeat for further distinct suits'"`
	Unique *int  `kong:"help='At least N specific distinct cards'"`
	Cards  *int  `kong:"help='Cards on the table; prints every draw size when omitted'"`
}

func (c *ProbCmd) Run(g *Globals) error {
	return c.run(g, os.Stdout, os.Stderr)
}

func (c *ProbCmd) run(g *Globals, out, errOut io.Writer) error {
	_, logger, engine, err := g.setup(errOut)
	if err != nil {
		return err
	}

	var (
		f    probability.Func
		desc string
	)
	switch {
	case len(c.Rank) > 0 && len(c.Suit) == 0 && c.Unique == nil:
		f, err = engine.Ranks(c.Rank...)
		desc = fmt.Sprintf("ranks %v", c.Rank)
	case len(c.Suit) > 0 && len(c.Rank) == 0 && c.Unique == nil:
		f, err = engine.Suits(c.Suit...)
		desc = fmt.Sprintf("suits %v", c.Suit)
	case c.Unique != nil && len(c.Rank) == 0 && len(c.Suit) == 0:
		f, err = engine.UniqueCards(*c.Unique)
		desc = fmt.Sprintf("%d unique cards", *c.Unique)
	default:
		return errors.New("exactly one of --rank, --suit or --unique is required")
	}
	if err != nil {
		return err
	}

	logger.Debug("Evaluating requirements", "requirements", desc, "precision", engine.Precision())
	return printFunc(out, f, c.Cards, engine.Deck().Size)
}

// printFunc prints f at one draw size, or one line per draw size from 0 to
// the deck size when cards is nil.
func printFunc(w io.Writer, f probability.Func, cards *int, size int) error {
	if cards != nil {
		p, err := f(*cards)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, formatProbability(p))
		return err
	}

	values, err := f.Curve(0, size)
	if err != nil {
		return err
	}
	for m, p := range values {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", m, formatProbability(p)); err != nil {
			return err
		}
	}
	return nil
}

func formatProbability(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
