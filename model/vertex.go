package model

import (
	"strings"
	"time"

	"github.com/siherrmann/ranker/helper"
)

// VertexID identifies a vertex. IDs are compared byte-wise.
type VertexID string

func (id VertexID) String() string {
	return string(id)
}

// Vertex represents a node in the graph
type Vertex struct {
	ID         VertexID  `json:"id" yaml:"id"`
	Label      string    `json:"label,omitempty" yaml:"label,omitempty"`
	Properties Metadata  `json:"properties,omitempty" yaml:"properties,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty" yaml:"-"`
}

// ParseVertexIDs parses a comma separated list of vertex ids.
// Surrounding whitespace is trimmed and duplicates are dropped, keeping the first occurrence.
func ParseVertexIDs(sources string) ([]VertexID, error) {
	parts := strings.Split(sources, ",")
	ids := make([]VertexID, 0, len(parts))
	seen := make(map[VertexID]bool, len(parts))

	for _, part := range parts {
		id := VertexID(strings.TrimSpace(part))
		if id == "" {
			return nil, helper.InvalidArgument("the source vertex ids can't contain empty values, but got '%s'", sources)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids, nil
}
