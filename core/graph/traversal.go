package graph

import (
	"context"

	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/model"
)

// TraversalResult contains a vertex and its distance from the source
type TraversalResult struct {
	Vertex   model.VertexID   `json:"vertex"`
	Distance int              `json:"distance"`
	Path     []model.VertexID `json:"path"` // Path from source to this vertex
}

// BFS performs breadth-first search from a source vertex over edges with the
// given label and direction. At most degree neighbors are followed per vertex
// and at most limit results (source included) are returned.
func BFS(ctx context.Context, g GraphAccess, sourceID model.VertexID, label model.EdgeLabelID, direction model.Direction, maxHops int, degree int64, limit int64) ([]*TraversalResult, error) {
	visited := map[model.VertexID]bool{sourceID: true}
	queue := []TraversalResult{{
		Vertex:   sourceID,
		Distance: 0,
		Path:     []model.VertexID{sourceID},
	}}

	var results []*TraversalResult

	for len(queue) > 0 {
		if limit != model.NoLimit && int64(len(results)) >= limit {
			break
		}

		current := queue[0]
		queue = queue[1:]

		results = append(results, &current)

		// Stop if we've reached max hops
		if current.Distance >= maxHops {
			continue
		}

		neighbors, err := g.Neighbors(ctx, current.Vertex, label, direction, degree)
		if err != nil {
			return nil, helper.NewError("bfs neighbors", err)
		}

		for _, targetID := range neighbors {
			if visited[targetID] {
				continue
			}
			visited[targetID] = true

			newPath := make([]model.VertexID, len(current.Path), len(current.Path)+1)
			copy(newPath, current.Path)
			newPath = append(newPath, targetID)

			queue = append(queue, TraversalResult{
				Vertex:   targetID,
				Distance: current.Distance + 1,
				Path:     newPath,
			})
		}
	}

	return results, nil
}
