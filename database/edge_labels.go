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

// EdgeLabelsDBHandlerFunctions defines the interface for EdgeLabels database operations.
type EdgeLabelsDBHandlerFunctions interface {
	InsertEdgeLabel(name string) (*model.EdgeLabel, error)
	SelectEdgeLabelByName(ctx context.Context, name string) (*model.EdgeLabel, error)
	SelectAllEdgeLabels() ([]*model.EdgeLabel, error)
}

// EdgeLabelsDBHandler handles edge label-related database operations
type EdgeLabelsDBHandler struct {
	db *helper.Database
}

// NewEdgeLabelsDBHandler creates a new edge labels database handler.
// It loads the edge label-related SQL functions and creates the table.
// If force is true, it will reload the SQL functions even if they already exist.
func NewEdgeLabelsDBHandler(db *helper.Database, force bool) (*EdgeLabelsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	edgeLabelsDbHandler := &EdgeLabelsDBHandler{
		db: db,
	}

	err := loadSql.LoadEdgeLabelsSql(edgeLabelsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load edge labels sql", err)
	}

	err = edgeLabelsDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized EdgeLabelsDBHandler")

	return edgeLabelsDbHandler, nil
}

// CreateTable creates the 'edge_labels' table in the database.
// If the table already exists, it does not create it again.
func (h *EdgeLabelsDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_edge_labels();`)
	if err != nil {
		return helper.NewError("init edge labels", err)
	}

	h.db.Logger.Info("Checked/created table edge_labels")

	return nil
}

// InsertEdgeLabel registers a label name. Registering an existing name returns the existing label.
func (h *EdgeLabelsDBHandler) InsertEdgeLabel(name string) (*model.EdgeLabel, error) {
	if name == "" {
		return nil, helper.InvalidArgument("edge label can't be empty")
	}

	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_edge_label($1)`,
		name,
	)

	label := &model.EdgeLabel{}

	err := row.Scan(
		&label.ID,
		&label.Name,
		&label.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return label, nil
}

// SelectEdgeLabelByName retrieves a label by its name.
// It fails with helper.ErrNotFound if the label is not registered.
func (h *EdgeLabelsDBHandler) SelectEdgeLabelByName(ctx context.Context, name string) (*model.EdgeLabel, error) {
	row := h.db.Instance.QueryRowContext(
		ctx,
		`SELECT * FROM select_edge_label_by_name($1)`,
		name,
	)

	label := &model.EdgeLabel{}

	err := row.Scan(
		&label.ID,
		&label.Name,
		&label.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, helper.NotFound("undefined edge label: '%s'", name)
	} else if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return label, nil
}

// SelectAllEdgeLabels lists all labels in registration order
func (h *EdgeLabelsDBHandler) SelectAllEdgeLabels() ([]*model.EdgeLabel, error) {
	rows, err := h.db.Instance.Query(`SELECT * FROM select_all_edge_labels()`)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var labels []*model.EdgeLabel
	for rows.Next() {
		label := &model.EdgeLabel{}
		err := rows.Scan(
			&label.ID,
			&label.Name,
			&label.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		labels = append(labels, label)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return labels, nil
}
