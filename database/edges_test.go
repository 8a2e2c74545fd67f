package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgesNewEdgesDBHandler(t *testing.T) {
	t.Run("Valid call NewEdgesDBHandler", func(t *testing.T) {
		_, _, edgesDbHandler := initHandlers(t)
		require.NotNil(t, edgesDbHandler, "Expected NewEdgesDBHandler to return a non-nil instance")
		require.NotNil(t, edgesDbHandler.db.Instance, "Expected NewEdgesDBHandler to have a non-nil database connection instance")
	})

	t.Run("Invalid call NewEdgesDBHandler with nil database", func(t *testing.T) {
		_, err := NewEdgesDBHandler(nil, false)
		assert.Error(t, err, "Expected error when creating EdgesDBHandler with nil database")
		assert.Contains(t, err.Error(), "database connection is nil", "Expected specific error message for nil database connection")
	})
}

func TestEdgesInsert(t *testing.T) {
	verticesDbHandler, edgeLabelsDbHandler, edgesDbHandler := initHandlers(t)
	prefix := "edge-" + uuid.NewString() + "-"

	label, err := edgeLabelsDbHandler.InsertEdgeLabel("like")
	require.NoError(t, err)

	t.Run("Insert edge creates missing vertices", func(t *testing.T) {
		edge := &model.Edge{
			SourceID:   model.VertexID(prefix + "A"),
			TargetID:   model.VertexID(prefix + "a"),
			LabelID:    label.ID,
			Properties: model.Metadata{"weight": 0.5},
		}

		err := edgesDbHandler.InsertEdge(edge)
		require.NoError(t, err, "Expected InsertEdge to not return an error")
		assert.NotEqual(t, uuid.Nil, edge.ID, "Expected a generated edge id")

		_, err = verticesDbHandler.SelectVertex(edge.SourceID)
		assert.NoError(t, err, "Expected source vertex to be created")
		_, err = verticesDbHandler.SelectVertex(edge.TargetID)
		assert.NoError(t, err, "Expected target vertex to be created")

		selected, err := edgesDbHandler.SelectEdge(edge.ID)
		require.NoError(t, err, "Expected SelectEdge to not return an error")
		assert.Equal(t, "like", selected.Label, "Expected label name to be joined")
		assert.Equal(t, 0.5, selected.Properties["weight"], "Expected properties to be stored")
	})

	t.Run("Insert duplicate edge keeps the id", func(t *testing.T) {
		first := &model.Edge{SourceID: model.VertexID(prefix + "B"), TargetID: model.VertexID(prefix + "b"), LabelID: label.ID}
		second := &model.Edge{SourceID: model.VertexID(prefix + "B"), TargetID: model.VertexID(prefix + "b"), LabelID: label.ID}

		require.NoError(t, edgesDbHandler.InsertEdge(first))
		require.NoError(t, edgesDbHandler.InsertEdge(second))

		assert.Equal(t, first.ID, second.ID, "Expected duplicate edge to update the existing row")
	})

	t.Run("Insert self loop", func(t *testing.T) {
		edge := &model.Edge{SourceID: model.VertexID(prefix + "S"), TargetID: model.VertexID(prefix + "S"), LabelID: label.ID}
		assert.NoError(t, edgesDbHandler.InsertEdge(edge), "Expected self loop to be accepted")
	})

	t.Run("Insert edge without endpoints", func(t *testing.T) {
		err := edgesDbHandler.InsertEdge(&model.Edge{LabelID: label.ID})
		assert.ErrorIs(t, err, helper.ErrInvalidArgument, "Expected ErrInvalidArgument for empty endpoints")
	})

	t.Run("Delete edge", func(t *testing.T) {
		edge := &model.Edge{SourceID: model.VertexID(prefix + "D"), TargetID: model.VertexID(prefix + "d"), LabelID: label.ID}
		require.NoError(t, edgesDbHandler.InsertEdge(edge))

		err := edgesDbHandler.DeleteEdge(edge.ID)
		require.NoError(t, err, "Expected DeleteEdge to not return an error")

		_, err = edgesDbHandler.SelectEdge(edge.ID)
		assert.ErrorIs(t, err, helper.ErrNotFound, "Expected deleted edge to be gone")
	})
}

func TestEdgesSelectNeighbors(t *testing.T) {
	_, edgeLabelsDbHandler, edgesDbHandler := initHandlers(t)
	ctx := context.Background()
	prefix := "neighbors-" + uuid.NewString() + "-"
	v := func(s string) model.VertexID { return model.VertexID(prefix + s) }

	like, err := edgeLabelsDbHandler.InsertEdgeLabel("like")
	require.NoError(t, err)
	follow, err := edgeLabelsDbHandler.InsertEdgeLabel("follow")
	require.NoError(t, err)

	// Insert out of order to check the sorting; "B" sorts before "a" byte-wise
	for _, target := range []string{"c", "a", "B"} {
		require.NoError(t, edgesDbHandler.InsertEdge(&model.Edge{SourceID: v("A"), TargetID: v(target), LabelID: like.ID}))
	}
	require.NoError(t, edgesDbHandler.InsertEdge(&model.Edge{SourceID: v("A"), TargetID: v("z"), LabelID: follow.ID}))
	require.NoError(t, edgesDbHandler.InsertEdge(&model.Edge{SourceID: v("x"), TargetID: v("a"), LabelID: like.ID}))

	t.Run("Outgoing neighbors", func(t *testing.T) {
		neighbors, err := edgesDbHandler.SelectNeighbors(ctx, v("A"), like.ID, model.DirectionOut, model.NoLimit)
		require.NoError(t, err, "Expected SelectNeighbors to not return an error")
		assert.Equal(t, []model.VertexID{v("B"), v("a"), v("c")}, neighbors, "Expected like neighbors in byte-wise order")
	})

	t.Run("Outgoing neighbors with limit", func(t *testing.T) {
		neighbors, err := edgesDbHandler.SelectNeighbors(ctx, v("A"), like.ID, model.DirectionOut, 2)
		require.NoError(t, err, "Expected SelectNeighbors to not return an error")
		assert.Equal(t, []model.VertexID{v("B"), v("a")}, neighbors, "Expected the first two neighbors")
	})

	t.Run("Incoming neighbors", func(t *testing.T) {
		neighbors, err := edgesDbHandler.SelectNeighbors(ctx, v("a"), like.ID, model.DirectionIn, model.NoLimit)
		require.NoError(t, err, "Expected SelectNeighbors to not return an error")
		assert.Equal(t, []model.VertexID{v("A"), v("x")}, neighbors, "Expected both incoming like neighbors")
	})

	t.Run("Other label", func(t *testing.T) {
		neighbors, err := edgesDbHandler.SelectNeighbors(ctx, v("A"), follow.ID, model.DirectionOut, model.NoLimit)
		require.NoError(t, err, "Expected SelectNeighbors to not return an error")
		assert.Equal(t, []model.VertexID{v("z")}, neighbors, "Expected only the follow neighbor")
	})

	t.Run("Vertex without neighbors", func(t *testing.T) {
		neighbors, err := edgesDbHandler.SelectNeighbors(ctx, v("c"), like.ID, model.DirectionOut, model.NoLimit)
		require.NoError(t, err, "Expected SelectNeighbors to not return an error")
		assert.Empty(t, neighbors, "Expected no neighbors")
	})
}
