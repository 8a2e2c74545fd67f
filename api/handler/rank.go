package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siherrmann/ranker/api/dto"
	"github.com/siherrmann/ranker/core/graph"
	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/metrics"
	"github.com/siherrmann/ranker/model"
)

// Traverser is a graph that answers rank and neighborhood queries
type Traverser interface {
	PersonalRank(ctx context.Context, request *model.RankRequest) (model.RankEntries, error)
	KNeighbor(ctx context.Context, request *model.NeighborRequest) ([]*graph.TraversalResult, error)
}

// RankHandler serves the traverser endpoints of all registered graphs
type RankHandler struct {
	graphs map[string]Traverser
}

// NewRankHandler creates a RankHandler for the given graphs keyed by name
func NewRankHandler(graphs map[string]Traverser) *RankHandler {
	return &RankHandler{graphs: graphs}
}

// PersonalRank computes the personal rank of the request's sources.
// POST /graphs/:graph/traversers/personalrank
func (h *RankHandler) PersonalRank(c *gin.Context) {
	name := c.Param("graph")
	traverser, ok := h.graphs[name]
	if !ok {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, fmt.Sprintf("graph '%s' does not exist", name)))
		return
	}

	request := model.DefaultRankRequest()
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err)))
		return
	}

	done := metrics.ObserveRank(name)
	entries, err := traverser.PersonalRank(c.Request.Context(), &request)
	if err != nil {
		done(metrics.StatusError)
		writeError(c, err)
		return
	}
	done(metrics.StatusOK)
	metrics.ObserveResults(name, len(entries))

	c.JSON(http.StatusOK, entries)
}

// KNeighbor returns the vertices within max_depth hops of the source.
// GET /graphs/:graph/traversers/kneighbor
func (h *RankHandler) KNeighbor(c *gin.Context) {
	name := c.Param("graph")
	traverser, ok := h.graphs[name]
	if !ok {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, fmt.Sprintf("graph '%s' does not exist", name)))
		return
	}

	request := model.DefaultNeighborRequest()
	if err := c.ShouldBindQuery(&request); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("invalid query parameters: %v", err)))
		return
	}

	results, err := traverser.KNeighbor(c.Request.Context(), &request)
	if err != nil {
		writeError(c, err)
		return
	}
	if results == nil {
		results = []*graph.TraversalResult{}
	}

	c.JSON(http.StatusOK, dto.NeighborResponse{Vertices: results})
}

// writeError maps domain errors to status codes
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, helper.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, helper.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}

	_ = c.Error(err)
	c.JSON(status, dto.NewErrorResponse(status, err.Error()))
}
