package ranker

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/siherrmann/ranker/core/graph"
	"github.com/siherrmann/ranker/core/rank"
	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGraph = `edges:
  - {source: A, target: a, label: like}
  - {source: A, target: b, label: like}
  - {source: a, target: c, label: like}
  - {source: b, target: c, label: like}
  - {source: c, target: A, label: like}
  - {source: c, target: d, label: like}
  - {source: d, target: e, label: like}
  - {source: A, target: z, label: follow}
`

func writeTestGraph(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testGraph), 0600))
	return path
}

func initMemoryRanker(t *testing.T) *Ranker {
	g, err := graph.NewMemoryGraphFromFile(writeTestGraph(t))
	require.NoError(t, err, "failed to load test graph")

	r := NewMemoryRanker(g, &rank.Options{MaxDepth: 20})
	r.SetLogger(slog.New(slog.DiscardHandler))
	return r
}

func rankRequest(sources string) *model.RankRequest {
	request := model.DefaultRankRequest()
	request.Sources = sources
	request.Label = "like"
	request.Alpha = 0.5
	request.MaxDepth = 2
	return &request
}

func TestRankerPersonalRank(t *testing.T) {
	ctx := context.Background()
	r := initMemoryRanker(t)

	t.Run("Two rounds from A", func(t *testing.T) {
		entries, err := r.PersonalRank(ctx, rankRequest("A"))

		require.NoError(t, err, "Expected PersonalRank to not return an error")
		assert.Equal(t, model.RankEntries{{Vertex: "c", Score: 0.25}}, entries, "Expected c as the only result")
	})

	t.Run("Sources are trimmed and deduplicated", func(t *testing.T) {
		expected, err := r.PersonalRank(ctx, rankRequest("A"))
		require.NoError(t, err)

		entries, err := r.PersonalRank(ctx, rankRequest(" A , A"))

		require.NoError(t, err, "Expected PersonalRank to not return an error")
		assert.Equal(t, expected, entries, "Expected the same result as a single source")
	})

	t.Run("Sorted with limit", func(t *testing.T) {
		request := rankRequest("A")
		request.MaxDepth = 10
		request.Limit = 1

		entries, err := r.PersonalRank(ctx, request)

		require.NoError(t, err, "Expected PersonalRank to not return an error")
		require.Len(t, entries, 1, "Expected exactly one entry")

		request.Limit = model.NoLimit
		all, err := r.PersonalRank(ctx, request)
		require.NoError(t, err)
		for _, entry := range all {
			assert.GreaterOrEqual(t, entries[0].Score, entry.Score, "Expected the highest score first")
		}
	})

	t.Run("Unsorted returns vertex order", func(t *testing.T) {
		request := rankRequest("A")
		request.MaxDepth = 10
		request.Sorted = false

		entries, err := r.PersonalRank(ctx, request)

		require.NoError(t, err, "Expected PersonalRank to not return an error")
		for i := 1; i < len(entries); i++ {
			assert.Less(t, entries[i-1].Vertex, entries[i].Vertex, "Expected ascending vertex ids")
		}
	})

	t.Run("Lower case direction and label mode", func(t *testing.T) {
		request := rankRequest("c")
		request.Direction = "in"
		request.WithLabel = "same_label"

		_, err := r.PersonalRank(ctx, request)

		assert.NoError(t, err, "Expected lower case values to be accepted")
	})

	t.Run("Alpha zero", func(t *testing.T) {
		request := rankRequest("A")
		request.Alpha = 0

		_, err := r.PersonalRank(ctx, request)

		assert.ErrorIs(t, err, helper.ErrInvalidArgument, "Expected ErrInvalidArgument")
	})

	t.Run("Max depth zero", func(t *testing.T) {
		request := rankRequest("A")
		request.MaxDepth = 0

		_, err := r.PersonalRank(ctx, request)

		assert.ErrorIs(t, err, helper.ErrInvalidArgument, "Expected ErrInvalidArgument")
	})

	t.Run("Max depth above configured maximum", func(t *testing.T) {
		request := rankRequest("A")
		request.MaxDepth = 21

		_, err := r.PersonalRank(ctx, request)

		assert.ErrorIs(t, err, helper.ErrInvalidArgument, "Expected ErrInvalidArgument")
	})

	t.Run("Empty source in list", func(t *testing.T) {
		_, err := r.PersonalRank(ctx, rankRequest("A,,B"))

		assert.ErrorIs(t, err, helper.ErrInvalidArgument, "Expected ErrInvalidArgument")
	})

	t.Run("Unknown label", func(t *testing.T) {
		request := rankRequest("A")
		request.Label = "nonexistent"

		_, err := r.PersonalRank(ctx, request)

		assert.ErrorIs(t, err, helper.ErrNotFound, "Expected ErrNotFound")
	})
}

func TestRankerKNeighbor(t *testing.T) {
	ctx := context.Background()
	r := initMemoryRanker(t)

	t.Run("Two hops", func(t *testing.T) {
		request := model.DefaultNeighborRequest()
		request.Source = "A"
		request.Label = "like"
		request.MaxDepth = 2

		results, err := r.KNeighbor(ctx, &request)

		require.NoError(t, err, "Expected KNeighbor to not return an error")
		var vertices []model.VertexID
		for _, result := range results {
			vertices = append(vertices, result.Vertex)
		}
		assert.Equal(t, []model.VertexID{"A", "a", "b", "c"}, vertices, "Expected A and its two-hop neighborhood")
	})

	t.Run("Unknown label", func(t *testing.T) {
		request := model.DefaultNeighborRequest()
		request.Source = "A"
		request.Label = "nonexistent"

		_, err := r.KNeighbor(ctx, &request)

		assert.ErrorIs(t, err, helper.ErrNotFound, "Expected ErrNotFound")
	})

	t.Run("Missing source", func(t *testing.T) {
		request := model.DefaultNeighborRequest()
		request.Label = "like"

		_, err := r.KNeighbor(ctx, &request)

		assert.ErrorIs(t, err, helper.ErrInvalidArgument, "Expected ErrInvalidArgument")
	})
}

func TestMemoryRankerInsert(t *testing.T) {
	r := NewMemoryRanker(nil, nil)
	r.SetLogger(slog.New(slog.DiscardHandler))

	require.NoError(t, r.InsertVertex(&model.Vertex{ID: "isolated"}), "Expected InsertVertex to not return an error")
	require.NoError(t, r.InsertEdge(model.EdgeSpec{Source: "A", Target: "B", Label: "like"}), "Expected InsertEdge to not return an error")

	n, err := r.LoadGraphFile(writeTestGraph(t))
	require.NoError(t, err, "Expected LoadGraphFile to not return an error")
	assert.Equal(t, 8, n, "Expected eight edges to be loaded")

	assert.Equal(t, 9, r.Memory.EdgeCount(), "Expected loaded edges plus A -> B")
	assert.Contains(t, r.Memory.Vertices(), model.VertexID("isolated"), "Expected isolated vertex")
	assert.Equal(t, model.DefaultMaxDepth, r.Engine.MaxDepth(), "Expected default engine options")
	assert.NoError(t, r.Close(), "Expected Close without database to succeed")
}
