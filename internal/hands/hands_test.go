package hands

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/liarsodds/internal/deck"
	"github.com/lox/liarsodds/internal/probability"
)

func newEngine(t *testing.T) *probability.Engine {
	t.Helper()
	e, err := probability.NewEngine(deck.LiarsPoker(), probability.Exact())
	require.NoError(t, err)
	return e
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"pair":            Pair,
		"two pair":        TwoPair,
		"two-pair":        TwoPair,
		"twoPair":         TwoPair,
		"THREE_OF_A_KIND": ThreeOfAKind,
		"Full House":      FullHouse,
		"straightflush":   StraightFlush,
		"highCard":        HighCard,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("royal")
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestKindsOrderAndKeys(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 9)
	assert.Equal(t, HighCard, kinds[0])
	assert.Equal(t, StraightFlush, kinds[8])
	assert.Equal(t, "fourOfAKind", FourOfAKind.Key())
	assert.Equal(t, "Three of a Kind", ThreeOfAKind.String())
	assert.Equal(t, "", Kind(42).Key())
}

func TestCanonicalMatchesRequirements(t *testing.T) {
	e := newEngine(t)
	for _, kind := range Kinds() {
		canonical, err := Canonical(e, kind)
		require.NoError(t, err, kind)
		general, err := Func(e, kind)
		require.NoError(t, err, kind)

		for m := 0; m <= 24; m++ {
			want, err := canonical(m)
			require.NoError(t, err)
			got, err := general(m)
			require.NoError(t, err)
			assert.Equal(t, want, got, "%s at m=%d", kind, m)
		}
	}
}

func TestRequirementsWithMatches(t *testing.T) {
	e := newEngine(t)

	t.Run("pair with one held", func(t *testing.T) {
		reqs, err := Requirements(e, Pair, 1)
		require.NoError(t, err)
		require.Len(t, reqs, 1)
		assert.Equal(t, 1, reqs[0].Required())
		assert.Equal(t, 3, reqs[0].Total())
	})

	t.Run("full house with triple held", func(t *testing.T) {
		reqs, err := Requirements(e, FullHouse, 3, 1)
		require.NoError(t, err)
		require.Len(t, reqs, 2)
		assert.Equal(t, 0, reqs[0].Required())
		assert.Equal(t, 1, reqs[0].Total())
		assert.Equal(t, 1, reqs[1].Required())
		assert.Equal(t, 3, reqs[1].Total())
	})

	t.Run("flush", func(t *testing.T) {
		reqs, err := Requirements(e, Flush, 2)
		require.NoError(t, err)
		require.Len(t, reqs, 1)
		assert.Equal(t, 3, reqs[0].Required())
		assert.Equal(t, 4, reqs[0].Total())
	})

	t.Run("straight drops matched ranks", func(t *testing.T) {
		reqs, err := Requirements(e, Straight, 2)
		require.NoError(t, err)
		assert.Len(t, reqs, 3)
		for _, r := range reqs {
			assert.Equal(t, 1, r.Required())
			assert.Equal(t, 4, r.Total())
		}
	})

	t.Run("straight flush fully held is certain", func(t *testing.T) {
		f, err := Func(e, StraightFlush, 5)
		require.NoError(t, err)
		p, err := f(0)
		require.NoError(t, err)
		assert.Equal(t, 1.0, p)
	})

	t.Run("invalid matches", func(t *testing.T) {
		_, err := Requirements(e, Pair, 3)
		assert.True(t, errors.Is(err, ErrInvalidMatch))
		_, err = Requirements(e, Pair, -1)
		assert.True(t, errors.Is(err, ErrInvalidMatch))
		_, err = Requirements(e, Pair, 1, 1)
		assert.True(t, errors.Is(err, ErrInvalidMatch))
		_, err = Requirements(e, Straight, 6)
		assert.True(t, errors.Is(err, ErrInvalidMatch))
		_, err = Requirements(e, Kind(-1))
		assert.True(t, errors.Is(err, ErrUnknownKind))
	})
}

func TestHoldingCardsHelps(t *testing.T) {
	e := newEngine(t)
	for _, kind := range Kinds() {
		limits := kind.Shape().MaxMatched()
		base, err := Func(e, kind)
		require.NoError(t, err)
		helped, err := Func(e, kind, 1)
		require.NoError(t, err)
		require.GreaterOrEqual(t, limits[0], 1)

		for m := 1; m <= 20; m++ {
			p0, err := base(m)
			require.NoError(t, err)
			p1, err := helped(m)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, p1, p0, "%s at m=%d", kind, m)
		}
	}
}

func TestFlushNeedsLargeSuits(t *testing.T) {
	e, err := probability.NewEngine(deck.Info{Size: 16, CardsPerRank: 4, CardsPerSuit: 4}, probability.Exact())
	require.NoError(t, err)
	_, err = Canonical(e, Flush)
	assert.True(t, errors.Is(err, probability.ErrInvalidRequirement))
	_, err = Func(e, Flush)
	assert.True(t, errors.Is(err, probability.ErrInvalidRequirement))
}

func TestFits(t *testing.T) {
	tests := []struct {
		name    string
		info    deck.Info
		misfits []Kind
	}{
		{name: "liar's poker", info: deck.LiarsPoker()},
		{name: "three per rank", info: deck.Info{Size: 18, CardsPerRank: 3, CardsPerSuit: 6}, misfits: []Kind{FourOfAKind}},
		{name: "four per suit", info: deck.Info{Size: 16, CardsPerRank: 4, CardsPerSuit: 4}, misfits: []Kind{Straight, Flush, StraightFlush}},
		{name: "two ranks", info: deck.Info{Size: 8, CardsPerRank: 4, CardsPerSuit: 2}, misfits: []Kind{Straight, Flush, StraightFlush}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := probability.NewEngine(tt.info, probability.Exact())
			require.NoError(t, err)
			for _, kind := range Kinds() {
				want := !slices.Contains(tt.misfits, kind)
				assert.Equal(t, want, Fits(tt.info, kind), kind.String())
				if want {
					_, err := Canonical(e, kind)
					assert.NoError(t, err, kind.String())
				}
			}
		})
	}
	assert.False(t, Fits(deck.LiarsPoker(), Kind(42)))
}
