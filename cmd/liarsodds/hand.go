package main

import (
	"errors"
	"io"
	"os"

	"github.com/lox/liarsodds/internal/deck"
	"github.com/lox/liarsodds/internal/hands"
	"github.com/lox/liarsodds/internal/probability"
)

// HandCmd evaluates a hand kind, either generically or as a concrete call
type HandCmd struct {
	Kind    string   `kong:"arg,help='Hand kind, e.g. pair, twoPair, full-house, straight-flush'"`
	Rank    []string `kong:"help='Rank named by the call; two pair and full house take two'"`
	Suit    string   `kong:"help='Suit of a flush or straight flush call'"`
	Held    string   `kong:"help='Cards already held, e.g. JsJh'"`
	Matched []int    `kong:"help='Cards already held towards each requirement of a generic hand'"`
	Cards   *int     `kong:"help='Cards on the table; prints every draw size when omitted'"`
}

func (c *HandCmd) Run(g *Globals) error {
	return c.run(g, os.Stdout, os.Stderr)
}

func (c *HandCmd) run(g *Globals, out, errOut io.Writer) error {
	_, logger, engine, err := g.setup(errOut)
	if err != nil {
		return err
	}

	kind, err := hands.ParseKind(c.Kind)
	if err != nil {
		return err
	}

	f, err := c.build(engine, kind)
	if err != nil {
		return err
	}

	logger.Debug("Evaluating hand", "kind", kind, "ranks", c.Rank, "suit", c.Suit, "held", c.Held, "matched", c.Matched)
	return printFunc(out, f, c.Cards, engine.Deck().Size)
}

func (c *HandCmd) isCall() bool {
	return len(c.Rank) > 0 || c.Suit != "" || c.Held != ""
}

func (c *HandCmd) build(engine *probability.Engine, kind hands.Kind) (probability.Func, error) {
	if !c.isCall() {
		if len(c.Matched) > 0 {
			return hands.Func(engine, kind, c.Matched...)
		}
		return hands.Canonical(engine, kind)
	}
	if len(c.Matched) > 0 {
		return nil, errors.New("--matched cannot be combined with --rank, --suit or --held")
	}

	call, err := hands.ParseCall(engine.Deck(), kind, c.Rank, c.Suit)
	if err != nil {
		return nil, err
	}
	var held []deck.Card
	if c.Held != "" {
		held, err = deck.ParseCards(c.Held)
		if err != nil {
			return nil, err
		}
	}
	return call.Func(engine, held)
}
