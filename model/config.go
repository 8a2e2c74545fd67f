package model

import (
	"github.com/siherrmann/ranker/helper"
)

const (
	// NoLimit disables a degree or result limit
	NoLimit int64 = -1

	DefaultDegree   int64 = 10000
	DefaultLimit    int64 = 100
	DefaultMaxDepth       = 50
)

// RankRequest represents the parameters of a personal rank query
type RankRequest struct {
	// Comma separated source vertex ids
	Sources string `json:"sources" binding:"required"`
	Label   string `json:"label" binding:"required"`

	// Probability of following an edge instead of restarting at a source
	Alpha float64 `json:"alpha"`
	// Maximum number of edges followed per vertex and round, or NoLimit
	Degree int64 `json:"degree"`
	// Maximum number of returned vertices, or NoLimit
	Limit    int64 `json:"limit"`
	MaxDepth int   `json:"max_depth"`

	WithLabel WithLabel `json:"with_label"`
	Direction Direction `json:"direction"`
	Sorted    bool      `json:"sorted"`
}

// DefaultRankRequest returns a request carrying the default degree, limit,
// label mode, direction and ordering. Sources, label, alpha and max depth have no default.
func DefaultRankRequest() RankRequest {
	return RankRequest{
		Degree:    DefaultDegree,
		Limit:     DefaultLimit,
		WithLabel: WithLabelBoth,
		Direction: DirectionOut,
		Sorted:    true,
	}
}

// Validate checks the request against the allowed ranges.
// maxDepth is the configured upper bound for MaxDepth.
// Empty direction and label mode are normalized to their defaults.
func (r *RankRequest) Validate(maxDepth int) error {
	if r.Sources == "" {
		return helper.InvalidArgument("the source vertex id of rank request can't be empty")
	}
	if r.Label == "" {
		return helper.InvalidArgument("the edge label of rank request can't be empty")
	}
	if r.Alpha <= 0 || r.Alpha > 1.0 {
		return helper.InvalidArgument("the alpha of rank request must be in range (0, 1], but got '%v'", r.Alpha)
	}
	if r.Degree <= 0 && r.Degree != NoLimit {
		return helper.InvalidArgument("the degree of rank request must be > 0, but got: %d", r.Degree)
	}
	if r.Limit <= 0 && r.Limit != NoLimit {
		return helper.InvalidArgument("the limit of rank request must be > 0, but got: %d", r.Limit)
	}
	if r.MaxDepth <= 0 || r.MaxDepth > maxDepth {
		return helper.InvalidArgument("the max depth of rank request must be in range (0, %d], but got '%d'", maxDepth, r.MaxDepth)
	}

	direction, err := ParseDirection(string(r.Direction))
	if err != nil {
		return err
	}
	r.Direction = direction

	withLabel, err := ParseWithLabel(string(r.WithLabel))
	if err != nil {
		return err
	}
	r.WithLabel = withLabel

	return nil
}

// NeighborRequest represents the parameters of a k-hop neighborhood query
type NeighborRequest struct {
	Source    string    `form:"source" json:"source" binding:"required"`
	Label     string    `form:"label" json:"label" binding:"required"`
	Direction Direction `form:"direction" json:"direction"`
	MaxDepth  int       `form:"max_depth" json:"max_depth"`
	Degree    int64     `form:"degree" json:"degree"`
	Limit     int64     `form:"limit" json:"limit"`
}

// DefaultNeighborRequest returns a request with default degree and limit
func DefaultNeighborRequest() NeighborRequest {
	return NeighborRequest{
		Direction: DirectionOut,
		MaxDepth:  1,
		Degree:    DefaultDegree,
		Limit:     DefaultLimit,
	}
}

// Validate checks the request against the allowed ranges
func (r *NeighborRequest) Validate(maxDepth int) error {
	if r.Source == "" {
		return helper.InvalidArgument("the source vertex id of neighbor request can't be empty")
	}
	if r.Label == "" {
		return helper.InvalidArgument("the edge label of neighbor request can't be empty")
	}
	if r.MaxDepth <= 0 || r.MaxDepth > maxDepth {
		return helper.InvalidArgument("the max depth of neighbor request must be in range (0, %d], but got '%d'", maxDepth, r.MaxDepth)
	}
	if r.Degree <= 0 && r.Degree != NoLimit {
		return helper.InvalidArgument("the degree of neighbor request must be > 0, but got: %d", r.Degree)
	}
	if r.Limit <= 0 && r.Limit != NoLimit {
		return helper.InvalidArgument("the limit of neighbor request must be > 0, but got: %d", r.Limit)
	}

	direction, err := ParseDirection(string(r.Direction))
	if err != nil {
		return err
	}
	r.Direction = direction

	return nil
}
