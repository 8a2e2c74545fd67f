package database

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/model"
)

const defaultLabelCacheSize = 1024

// GraphHandler implements graph.GraphAccess on top of the edge label and edge handlers.
// Resolved label ids are cached; labels are never renamed or deleted so entries don't go stale.
type GraphHandler struct {
	labels     EdgeLabelsDBHandlerFunctions
	edges      EdgesDBHandlerFunctions
	labelCache *lru.Cache[string, model.EdgeLabelID]
}

// NewGraphHandler creates a graph handler caching up to cacheSize label ids.
// A cacheSize <= 0 uses the default size.
func NewGraphHandler(labels EdgeLabelsDBHandlerFunctions, edges EdgesDBHandlerFunctions, cacheSize int) (*GraphHandler, error) {
	if labels == nil || edges == nil {
		return nil, helper.NewError("graph handler validation", fmt.Errorf("edge label and edge handlers are required"))
	}
	if cacheSize <= 0 {
		cacheSize = defaultLabelCacheSize
	}

	cache, err := lru.New[string, model.EdgeLabelID](cacheSize)
	if err != nil {
		return nil, helper.NewError("create label cache", err)
	}

	return &GraphHandler{
		labels:     labels,
		edges:      edges,
		labelCache: cache,
	}, nil
}

// ResolveEdgeLabel returns the id of a label, failing with helper.ErrNotFound for unknown labels
func (h *GraphHandler) ResolveEdgeLabel(ctx context.Context, name string) (model.EdgeLabelID, error) {
	if id, ok := h.labelCache.Get(name); ok {
		return id, nil
	}

	label, err := h.labels.SelectEdgeLabelByName(ctx, name)
	if err != nil {
		return 0, err
	}

	h.labelCache.Add(name, label.ID)
	return label.ID, nil
}

// Neighbors lists up to limit neighbors in ascending id order
func (h *GraphHandler) Neighbors(ctx context.Context, vertex model.VertexID, label model.EdgeLabelID, direction model.Direction, limit int64) ([]model.VertexID, error) {
	return h.edges.SelectNeighbors(ctx, vertex, label, direction, limit)
}

// CachedLabels returns the number of cached label ids
func (h *GraphHandler) CachedLabels() int {
	return h.labelCache.Len()
}
