package sql

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed init.sql
var initSQL string

//go:embed vertices.sql
var verticesSQL string

//go:embed edge_labels.sql
var edgeLabelsSQL string

//go:embed edges.sql
var edgesSQL string

// Function lists for verification
var VerticesFunctions = []string{
	"init_vertices",
	"insert_vertex",
	"select_vertex",
	"select_all_vertices",
	"delete_vertex",
}

var EdgeLabelsFunctions = []string{
	"init_edge_labels",
	"insert_edge_label",
	"select_edge_label_by_name",
	"select_all_edge_labels",
}

var EdgesFunctions = []string{
	"init_edges",
	"insert_edge",
	"select_edge",
	"delete_edge",
	"select_neighbors",
}

// Init intializes db extensions
func Init(db *sql.DB) error {
	_, err := db.Exec(initSQL)
	if err != nil {
		return fmt.Errorf("error executing schema SQL: %w", err)
	}

	log.Println("Database extensions initialized successfully")
	return nil
}

// LoadVerticesSql loads vertex-related SQL functions
func LoadVerticesSql(db *sql.DB, force bool) error {
	return loadSql(db, "vertices", verticesSQL, VerticesFunctions, force)
}

// LoadEdgeLabelsSql loads edge label-related SQL functions
func LoadEdgeLabelsSql(db *sql.DB, force bool) error {
	return loadSql(db, "edge labels", edgeLabelsSQL, EdgeLabelsFunctions, force)
}

// LoadEdgesSql loads edge-related SQL functions
func LoadEdgesSql(db *sql.DB, force bool) error {
	return loadSql(db, "edges", edgesSQL, EdgesFunctions, force)
}

// LoadAllSql loads all SQL functions.
// Edges reference vertices and edge labels, so those are loaded first.
func LoadAllSql(db *sql.DB, force bool) error {
	if err := LoadVerticesSql(db, force); err != nil {
		return err
	}

	if err := LoadEdgeLabelsSql(db, force); err != nil {
		return err
	}

	if err := LoadEdgesSql(db, force); err != nil {
		return err
	}

	return nil
}

// loadSql executes script unless all functions already exist (or force is set)
// and verifies afterwards that every function was created.
func loadSql(db *sql.DB, name string, script string, functions []string, force bool) error {
	if !force {
		exist, err := checkFunctions(db, functions)
		if err != nil {
			return fmt.Errorf("error checking existing %s functions: %w", name, err)
		}
		if exist {
			return nil
		}
	}

	_, err := db.Exec(script)
	if err != nil {
		return fmt.Errorf("error executing %s SQL: %w", name, err)
	}

	exist, err := checkFunctions(db, functions)
	if err != nil {
		return fmt.Errorf("error checking existing functions: %w", err)
	}
	if !exist {
		return fmt.Errorf("not all required SQL functions were created")
	}

	log.Printf("SQL %s functions loaded successfully", name)
	return nil
}

// checkFunctions verifies that all required functions exist in the current schema.
// Functions of the same name in other schemas are not visible to the search path.
func checkFunctions(db *sql.DB, sqlFunctions []string) (bool, error) {
	var allExist bool
	for _, f := range sqlFunctions {
		err := db.QueryRow(
			`SELECT EXISTS(
				SELECT 1 FROM pg_proc p
				JOIN pg_namespace n ON n.oid = p.pronamespace
				WHERE p.proname = $1 AND n.nspname = current_schema()
			);`,
			f,
		).Scan(&allExist)
		if err != nil {
			return false, fmt.Errorf("error checking existence of function %s: %w", f, err)
		}
		if !allExist {
			log.Printf("Function %s does not exist", f)
			break
		}
	}
	return allExist, nil
}
