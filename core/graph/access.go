package graph

import (
	"context"

	"github.com/siherrmann/ranker/model"
)

// GraphAccess is the read side of a graph store used by traversals.
//
// ResolveEdgeLabel fails with helper.ErrNotFound for unknown labels.
// Neighbors returns at most limit distinct vertices (model.NoLimit for all)
// reached from vertex over edges with the given label in the given direction.
// Implementations return neighbors in ascending id order so that degree
// limiting keeps the same vertices on every call.
type GraphAccess interface {
	ResolveEdgeLabel(ctx context.Context, name string) (model.EdgeLabelID, error)
	Neighbors(ctx context.Context, vertex model.VertexID, label model.EdgeLabelID, direction model.Direction, limit int64) ([]model.VertexID, error)
}
