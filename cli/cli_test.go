package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/siherrmann/ranker/api/dto"
	"github.com/siherrmann/ranker/config"
	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/metrics"
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
`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	cmd := NewRootCommand("v1.2.3")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err, "Expected version to not return an error")
	assert.Equal(t, "v1.2.3\n", out, "Expected the version")
}

func TestRankCommand(t *testing.T) {
	file := writeFile(t, "graph.yaml", testGraph)

	t.Run("Memory file", func(t *testing.T) {
		out, err := execute(t, "rank", "--file", file, "--sources", "A", "--label", "like", "--alpha", "0.5", "--max-depth", "2", "--log-level", "error")

		require.NoError(t, err, "Expected rank to not return an error")
		assert.JSONEq(t, `{"c":0.25}`, out, "Expected c as the only result")
	})

	t.Run("Configured graph", func(t *testing.T) {
		configFile := writeFile(t, "config.yaml", "log_level: error\ngraphs:\n  - name: likes\n    file: "+file+"\n")

		out, err := execute(t, "rank", "--config", configFile, "--graph", "likes", "--sources", "A", "--label", "like", "--alpha", "0.5", "--max-depth", "2")

		require.NoError(t, err, "Expected rank to not return an error")
		assert.JSONEq(t, `{"c":0.25}`, out, "Expected c as the only result")
	})

	t.Run("Invalid alpha", func(t *testing.T) {
		_, err := execute(t, "rank", "--file", file, "--sources", "A", "--label", "like", "--alpha", "2", "--max-depth", "2", "--log-level", "error")

		assert.ErrorIs(t, err, helper.ErrInvalidArgument, "Expected ErrInvalidArgument")
	})

	t.Run("Unknown graph", func(t *testing.T) {
		_, err := execute(t, "rank", "--graph", "missing", "--sources", "A", "--label", "like", "--alpha", "0.5", "--max-depth", "2", "--log-level", "error")

		assert.ErrorIs(t, err, helper.ErrNotFound, "Expected ErrNotFound")
	})

	t.Run("No graph", func(t *testing.T) {
		_, err := execute(t, "rank", "--sources", "A", "--label", "like", "--alpha", "0.5", "--max-depth", "2", "--log-level", "error")

		assert.ErrorIs(t, err, helper.ErrInvalidArgument, "Expected ErrInvalidArgument")
	})

	t.Run("Invalid log level", func(t *testing.T) {
		_, err := execute(t, "rank", "--file", file, "--sources", "A", "--label", "like", "--log-level", "loud")

		assert.ErrorIs(t, err, helper.ErrInvalidArgument, "Expected ErrInvalidArgument")
	})
}

func TestNeighborsCommand(t *testing.T) {
	file := writeFile(t, "graph.yaml", testGraph)

	out, err := execute(t, "neighbors", "--file", file, "--source", "c", "--label", "like", "--direction", "IN", "--log-level", "error")

	require.NoError(t, err, "Expected neighbors to not return an error")
	var response dto.NeighborResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response), "Expected a neighbor body")

	var vertices []model.VertexID
	for _, result := range response.Vertices {
		vertices = append(vertices, result.Vertex)
	}
	assert.Equal(t, []model.VertexID{"c", "a", "b"}, vertices, "Expected c and its incoming neighbors")
}

func TestOpenGraph(t *testing.T) {
	file := writeFile(t, "graph.yaml", testGraph)
	a := &app{config: config.Default(), log: helper.NewLogger(&bytes.Buffer{}, 0)}

	t.Run("Memory graph sets edge gauge", func(t *testing.T) {
		r, err := a.openGraph(config.GraphSpec{Name: "gauge-test", Storage: config.StorageMemory, File: file})

		require.NoError(t, err, "Expected openGraph to not return an error")
		assert.NotNil(t, r.Memory, "Expected a memory graph")
		assert.Equal(t, 5.0, testutil.ToFloat64(metrics.GraphEdges.WithLabelValues("gauge-test")), "Expected five edges")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := a.openGraph(config.GraphSpec{Name: "missing", Storage: config.StorageMemory, File: filepath.Join(t.TempDir(), "missing.yaml")})

		assert.Error(t, err, "Expected error for missing file")
	})

	t.Run("Serve without graphs", func(t *testing.T) {
		err := a.serve(context.Background())

		assert.ErrorIs(t, err, helper.ErrInvalidArgument, "Expected ErrInvalidArgument")
	})
}
