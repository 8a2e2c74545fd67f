package model

import (
	"encoding/json"
	"testing"

	"github.com/siherrmann/ranker/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankEntriesMarshalJSON(t *testing.T) {
	t.Run("Keeps entry order", func(t *testing.T) {
		entries := RankEntries{
			{Vertex: "d", Score: 0.5},
			{Vertex: "a", Score: 0.25},
			{Vertex: "c", Score: 0.125},
		}

		b, err := json.Marshal(entries)

		require.NoError(t, err, "Expected MarshalJSON to not return an error")
		assert.Equal(t, `{"d":0.5,"a":0.25,"c":0.125}`, string(b), "Expected flat object in entry order")
	})

	t.Run("Empty entries", func(t *testing.T) {
		b, err := json.Marshal(RankEntries{})

		require.NoError(t, err, "Expected MarshalJSON to not return an error")
		assert.Equal(t, `{}`, string(b), "Expected empty object")
	})

	t.Run("Escapes vertex ids", func(t *testing.T) {
		b, err := json.Marshal(RankEntries{{Vertex: `1:"x"`, Score: 1}})

		require.NoError(t, err, "Expected MarshalJSON to not return an error")
		assert.Equal(t, `{"1:\"x\"":1}`, string(b), "Expected escaped key")
	})
}

func TestRankEntriesToMap(t *testing.T) {
	m := RankEntries{{Vertex: "a", Score: 1}, {Vertex: "b", Score: 2}}.ToMap()

	assert.Equal(t, RankMap{"a": 1, "b": 2}, m, "Expected map with all entries")
	assert.ElementsMatch(t, []VertexID{"a", "b"}, m.Keys(), "Expected keys of the map")
}

func TestParseWithLabel(t *testing.T) {
	cases := map[string]WithLabel{
		"":            WithLabelBoth,
		"BOTH_LABEL":  WithLabelBoth,
		"same_label":  WithLabelSame,
		"OTHER_LABEL": WithLabelOther,
	}
	for input, expected := range cases {
		got, err := ParseWithLabel(input)
		require.NoError(t, err, "Expected %q to parse", input)
		assert.Equal(t, expected, got, "Expected mode for %q", input)
		assert.True(t, got.Valid(), "Expected parsed mode to be valid")
	}

	_, err := ParseWithLabel("NONE")
	assert.ErrorIs(t, err, helper.ErrInvalidArgument, "Expected ErrInvalidArgument for unknown mode")
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("in")
	require.NoError(t, err)
	assert.Equal(t, DirectionIn, d, "Expected IN")
	assert.Equal(t, DirectionOut, d.Opposite(), "Expected OUT as opposite of IN")
	assert.Equal(t, DirectionIn, DirectionOut.Opposite(), "Expected IN as opposite of OUT")

	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, DirectionOut, d, "Expected OUT for empty direction")

	_, err = ParseDirection("BOTH")
	assert.ErrorIs(t, err, helper.ErrInvalidArgument, "Expected ErrInvalidArgument for BOTH")
	assert.False(t, Direction("BOTH").Valid(), "Expected BOTH to be invalid")
}

func TestParseVertexIDs(t *testing.T) {
	t.Run("Single id", func(t *testing.T) {
		ids, err := ParseVertexIDs("A")
		require.NoError(t, err)
		assert.Equal(t, []VertexID{"A"}, ids, "Expected one id")
	})

	t.Run("Trims and deduplicates", func(t *testing.T) {
		ids, err := ParseVertexIDs(" A, B ,A,C")
		require.NoError(t, err)
		assert.Equal(t, []VertexID{"A", "B", "C"}, ids, "Expected ids in first occurrence order")
	})

	t.Run("Empty element", func(t *testing.T) {
		_, err := ParseVertexIDs("A,,B")
		assert.ErrorIs(t, err, helper.ErrInvalidArgument, "Expected ErrInvalidArgument")
	})

	t.Run("Empty string", func(t *testing.T) {
		_, err := ParseVertexIDs("")
		assert.ErrorIs(t, err, helper.ErrInvalidArgument, "Expected ErrInvalidArgument")
	})
}
