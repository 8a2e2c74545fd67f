package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/ranker/helper"
)

// EdgeLabelID identifies an edge label once it is resolved from its name
type EdgeLabelID int64

// EdgeLabel represents a named relationship type
type EdgeLabel struct {
	ID        EdgeLabelID `json:"id"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"created_at"`
}

// Edge represents a directed, labelled relationship between two vertices
type Edge struct {
	ID         uuid.UUID   `json:"id"`
	SourceID   VertexID    `json:"source_id"`
	TargetID   VertexID    `json:"target_id"`
	LabelID    EdgeLabelID `json:"label_id"`
	Label      string      `json:"label,omitempty"`
	Properties Metadata    `json:"properties,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Direction selects which endpoint of an edge is the source during a traversal
type Direction string

const (
	DirectionOut Direction = "OUT"
	DirectionIn  Direction = "IN"
)

// ParseDirection parses OUT or IN (case insensitive). An empty value means OUT.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case "", DirectionOut:
		return DirectionOut, nil
	case DirectionIn:
		return DirectionIn, nil
	default:
		return "", helper.InvalidArgument("the direction must be OUT or IN, but got '%s'", s)
	}
}

// Valid reports whether d is OUT or IN
func (d Direction) Valid() bool {
	return d == DirectionOut || d == DirectionIn
}

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	if d == DirectionIn {
		return DirectionOut
	}
	return DirectionIn
}
