package dto

import (
	"github.com/siherrmann/ranker/core/graph"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code int, message string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message}
}

// HealthResponse reports liveness and the served graphs
type HealthResponse struct {
	Status  string   `json:"status"`
	Version string   `json:"version"`
	Uptime  string   `json:"uptime"`
	Graphs  []string `json:"graphs"`
}

// NeighborResponse wraps the vertices of a k-neighbor query
type NeighborResponse struct {
	Vertices []*graph.TraversalResult `json:"vertices"`
}
