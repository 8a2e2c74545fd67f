package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/model"
	loadSql "github.com/siherrmann/ranker/sql"
)

// VerticesDBHandlerFunctions defines the interface for Vertices database operations.
type VerticesDBHandlerFunctions interface {
	InsertVertex(vertex *model.Vertex) error
	SelectVertex(id model.VertexID) (*model.Vertex, error)
	SelectAllVertices(limit int64, offset int64) ([]*model.Vertex, error)
	DeleteVertex(id model.VertexID) error
}

// VerticesDBHandler handles vertex-related database operations
type VerticesDBHandler struct {
	db *helper.Database
}

// NewVerticesDBHandler creates a new vertices database handler.
// It loads the vertex-related SQL functions and creates the table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewVerticesDBHandler(db *helper.Database, force bool) (*VerticesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	verticesDbHandler := &VerticesDBHandler{
		db: db,
	}

	err := loadSql.LoadVerticesSql(verticesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load vertices sql", err)
	}

	err = verticesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized VerticesDBHandler")

	return verticesDbHandler, nil
}

// CreateTable creates the 'vertices' table in the database.
// If the table already exists, it does not create it again.
func (h *VerticesDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_vertices();`)
	if err != nil {
		return helper.NewError("init vertices", err)
	}

	h.db.Logger.Info("Checked/created table vertices")

	return nil
}

// InsertVertex inserts a vertex or replaces label and properties of an existing one
func (h *VerticesDBHandler) InsertVertex(vertex *model.Vertex) error {
	if vertex.ID == "" {
		return helper.InvalidArgument("vertex id can't be empty")
	}

	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_vertex($1, $2, $3)`,
		vertex.ID,
		vertex.Label,
		vertex.Properties,
	)

	err := row.Scan(
		&vertex.ID,
		&vertex.Label,
		&vertex.Properties,
		&vertex.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectVertex retrieves a vertex by id.
// It fails with helper.ErrNotFound if the vertex does not exist.
func (h *VerticesDBHandler) SelectVertex(id model.VertexID) (*model.Vertex, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_vertex($1)`,
		id,
	)

	vertex := &model.Vertex{}

	err := row.Scan(
		&vertex.ID,
		&vertex.Label,
		&vertex.Properties,
		&vertex.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, helper.NotFound("vertex '%s'", id)
	} else if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return vertex, nil
}

// SelectAllVertices lists vertices in ascending id order.
// A negative limit returns all vertices.
func (h *VerticesDBHandler) SelectAllVertices(limit int64, offset int64) ([]*model.Vertex, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_all_vertices($1, $2)`,
		limit,
		offset,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var vertices []*model.Vertex
	for rows.Next() {
		vertex := &model.Vertex{}
		err := rows.Scan(
			&vertex.ID,
			&vertex.Label,
			&vertex.Properties,
			&vertex.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		vertices = append(vertices, vertex)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return vertices, nil
}

// DeleteVertex deletes a vertex and all of its edges
func (h *VerticesDBHandler) DeleteVertex(id model.VertexID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_vertex($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
