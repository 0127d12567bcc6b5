package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lox/liarsodds/internal/deck"
	"github.com/lox/liarsodds/internal/probability"
)

func newExporter(t *testing.T, precision probability.Precision) *Exporter {
	t.Helper()
	return newDeckExporter(t, deck.LiarsPoker(), precision)
}

func newDeckExporter(t *testing.T, info deck.Info, precision probability.Precision) *Exporter {
	t.Helper()
	engine, err := probability.NewEngine(info, precision)
	require.NoError(t, err)
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	return NewExporter(engine, logger, quartz.NewMock(t))
}

func buildTable(t *testing.T) *Table {
	t.Helper()
	x := newExporter(t, probability.Digits(4))
	x.Workers = 4
	table, err := x.Build(context.Background(), DefaultRange(deck.LiarsPoker()))
	require.NoError(t, err)
	return table
}

func TestBuildLayout(t *testing.T) {
	table := buildTable(t)

	assert.Len(t, table.HighCard, 23)
	assert.Len(t, table.Pair, 2)
	assert.Len(t, table.ThreeOfAKind, 3)
	assert.Len(t, table.FourOfAKind, 4)
	assert.Len(t, table.Straight, 5)
	assert.Len(t, table.Flush, 5)
	assert.Len(t, table.StraightFlush, 5)

	require.Len(t, table.TwoPair, 3)
	assert.Len(t, table.TwoPair[0], 1)
	assert.Len(t, table.TwoPair[1], 2)
	assert.Len(t, table.TwoPair[2], 2)

	require.Len(t, table.FullHouse, 4)
	assert.Len(t, table.FullHouse[0], 3)
	assert.Len(t, table.FullHouse[3], 2)

	for _, rows := range [][][]float64{table.Pair, table.Straight, table.Flush, table.StraightFlush} {
		for _, row := range rows {
			assert.Len(t, row, 23)
		}
	}
	for _, grid := range [][][][]float64{table.TwoPair, table.FullHouse} {
		for _, rows := range grid {
			for _, row := range rows {
				assert.Len(t, row, 23)
			}
		}
	}
}

func TestBuildValues(t *testing.T) {
	table := buildTable(t)

	assert.Equal(t, 0.1667, table.HighCard[0])
	assert.Equal(t, 0.0217, table.Pair[0][1])
	assert.Equal(t, 0.0417, table.FourOfAKind[3][0])
	assert.Equal(t, 0.0417, table.StraightFlush[4][0])
	assert.Equal(t, 0.0, table.Flush[0][3], "no flush with four cards")
	assert.Equal(t, 1.0, table.HighCard[22], "23 of 24 cards always hold the rank")

	for _, row := range table.Pair {
		for i := 1; i < len(row); i++ {
			assert.GreaterOrEqual(t, row[i], row[i-1])
		}
	}
}

func TestBuildSmallDecks(t *testing.T) {
	zeros := func(t *testing.T, rows [][]float64, n int) {
		t.Helper()
		for _, row := range rows {
			assert.Equal(t, make([]float64, n), row)
		}
	}

	t.Run("three per rank", func(t *testing.T) {
		info := deck.Info{Size: 18, CardsPerRank: 3, CardsPerSuit: 6}
		table, err := newDeckExporter(t, info, probability.Exact()).Build(context.Background(), DefaultRange(info))
		require.NoError(t, err)

		require.Len(t, table.FourOfAKind, 4)
		zeros(t, table.FourOfAKind, 17)

		assert.InDelta(t, 3.0/153.0, table.Pair[0][1], 1e-12)
		assert.Greater(t, table.Flush[0][16], 0.0)
		assert.Greater(t, table.FullHouse[0][0][16], 0.0)
	})

	t.Run("four per suit", func(t *testing.T) {
		info := deck.Info{Size: 16, CardsPerRank: 4, CardsPerSuit: 4}
		table, err := newDeckExporter(t, info, probability.Exact()).Build(context.Background(), DefaultRange(info))
		require.NoError(t, err)

		zeros(t, table.Flush, 15)
		zeros(t, table.Straight, 15)
		zeros(t, table.StraightFlush, 15)

		assert.InDelta(t, 1.0/1820.0, table.FourOfAKind[0][3], 1e-12)
		assert.Len(t, table.HighCard, 15)
	})
}

func TestBuildRejectsBadRange(t *testing.T) {
	x := newExporter(t, probability.Exact())
	_, err := x.Build(context.Background(), Range{Min: 5, Max: 25})
	assert.True(t, errors.Is(err, ErrInvalidRange))
	_, err = x.Build(context.Background(), Range{Min: 5, Max: 4})
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestBuildCancelled(t *testing.T) {
	x := newExporter(t, probability.Exact())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := x.Build(ctx, DefaultRange(deck.LiarsPoker()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEncodeJSON(t *testing.T) {
	table := buildTable(t)

	var compact bytes.Buffer
	require.NoError(t, Encode(&compact, table, FormatJSON, false))
	out := compact.String()
	assert.True(t, strings.HasPrefix(out, `{"highCard":[0.1667,`))
	assert.Equal(t, 1, strings.Count(out, "\n"))

	keys := []string{"highCard", "pair", "threeOfAKind", "fourOfAKind", "twoPair", "fullHouse", "straight", "flush", "straightFlush"}
	last := -1
	for _, key := range keys {
		idx := strings.Index(out, `"`+key+`":`)
		require.Greater(t, idx, last, key)
		last = idx
	}

	var pretty bytes.Buffer
	require.NoError(t, Encode(&pretty, table, FormatJSON, true))
	assert.Contains(t, pretty.String(), "\n    \"pair\": [")

	var decoded Table
	require.NoError(t, json.Unmarshal(compact.Bytes(), &decoded))
	assert.Equal(t, table.FullHouse, decoded.FullHouse)
}

func TestEncodeYAML(t *testing.T) {
	table := buildTable(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, table, FormatYAML, false))
	assert.Contains(t, buf.String(), "highCard:")

	var decoded Table
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, table.TwoPair, decoded.TwoPair)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("csv")
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	table := buildTable(t)
	path := filepath.Join(t.TempDir(), "probability_data.json")

	require.NoError(t, WriteFile(path, table, FormatJSON, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Table
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, table.HighCard, decoded.HighCard)
}
