package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/model"
	loadSql "github.com/siherrmann/ranker/sql"
)

// EdgesDBHandlerFunctions defines the interface for Edges database operations.
type EdgesDBHandlerFunctions interface {
	InsertEdge(edge *model.Edge) error
	SelectEdge(id uuid.UUID) (*model.Edge, error)
	DeleteEdge(id uuid.UUID) error
	SelectNeighbors(ctx context.Context, vertex model.VertexID, label model.EdgeLabelID, direction model.Direction, limit int64) ([]model.VertexID, error)
}

// EdgesDBHandler handles edge-related database operations
type EdgesDBHandler struct {
	db *helper.Database
}

// NewEdgesDBHandler creates a new edges database handler.
// The vertices and edge_labels tables must exist since edges reference both.
// If force is true, it will reload the SQL functions even if they already exist.
func NewEdgesDBHandler(db *helper.Database, force bool) (*EdgesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	edgesDbHandler := &EdgesDBHandler{
		db: db,
	}

	err := loadSql.LoadEdgesSql(edgesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load edges sql", err)
	}

	err = edgesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized EdgesDBHandler")

	return edgesDbHandler, nil
}

// CreateTable creates the 'edges' table and its adjacency indexes.
// If the table already exists, it does not create it again.
func (h *EdgesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_edges();`)
	if err != nil {
		return helper.NewError("init edges", err)
	}

	h.db.Logger.Info("Checked/created table edges")

	return nil
}

// InsertEdge inserts a new edge, creating missing endpoint vertices.
// Inserting an existing edge (same endpoints and label) replaces its properties.
func (h *EdgesDBHandler) InsertEdge(edge *model.Edge) error {
	if edge.SourceID == "" || edge.TargetID == "" {
		return helper.InvalidArgument("edge endpoints can't be empty")
	}

	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_edge($1, $2, $3, $4)`,
		edge.SourceID,
		edge.TargetID,
		edge.LabelID,
		edge.Properties,
	)

	err := row.Scan(
		&edge.ID,
		&edge.SourceID,
		&edge.TargetID,
		&edge.LabelID,
		&edge.Properties,
		&edge.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectEdge retrieves an edge by ID
func (h *EdgesDBHandler) SelectEdge(id uuid.UUID) (*model.Edge, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_edge($1)`,
		id,
	)

	edge := &model.Edge{}

	err := row.Scan(
		&edge.ID,
		&edge.SourceID,
		&edge.TargetID,
		&edge.LabelID,
		&edge.Label,
		&edge.Properties,
		&edge.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, helper.NotFound("edge '%s'", id)
	} else if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return edge, nil
}

// DeleteEdge deletes an edge by ID
func (h *EdgesDBHandler) DeleteEdge(id uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_edge($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// SelectNeighbors lists up to limit neighbors of a vertex in ascending id order.
// model.NoLimit returns all neighbors.
func (h *EdgesDBHandler) SelectNeighbors(ctx context.Context, vertex model.VertexID, label model.EdgeLabelID, direction model.Direction, limit int64) ([]model.VertexID, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_neighbors($1, $2, $3, $4)`,
		vertex,
		label,
		direction,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	neighbors := []model.VertexID{}
	for rows.Next() {
		var id model.VertexID
		err := rows.Scan(&id)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		neighbors = append(neighbors, id)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return neighbors, nil
}
