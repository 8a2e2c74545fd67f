package ranker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/siherrmann/ranker/core/graph"
	"github.com/siherrmann/ranker/core/rank"
	"github.com/siherrmann/ranker/database"
	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/model"
	loadSql "github.com/siherrmann/ranker/sql"
)

// Ranker provides a unified interface to graph storage and the rank engine.
// It is backed either by Postgres (DB and the handlers are set) or by a MemoryGraph.
type Ranker struct {
	DB       *helper.Database
	Vertices *database.VerticesDBHandler
	Labels   *database.EdgeLabelsDBHandler
	Edges    *database.EdgesDBHandler
	Memory   *graph.MemoryGraph
	Graph    graph.GraphAccess
	Engine   *rank.Engine
	// Logging
	log *slog.Logger
}

// NewRanker creates a new Postgres backed Ranker with all handlers initialized
func NewRanker(config *helper.DatabaseConfiguration, options *rank.Options) (*Ranker, error) {
	logger := helper.NewLogger(os.Stdout, slog.LevelInfo)

	// Initialize database
	db := helper.NewDatabase("ranker", config, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// Edges reference vertices and labels, so they are created last.
	// force=false to not reload if functions already exist
	vertices, err := database.NewVerticesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create vertices handler", err)
	}

	labels, err := database.NewEdgeLabelsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create edge labels handler", err)
	}

	edges, err := database.NewEdgesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create edges handler", err)
	}

	graphHandler, err := database.NewGraphHandler(labels, edges, 0)
	if err != nil {
		return nil, helper.NewError("create graph handler", err)
	}

	return &Ranker{
		DB:       db,
		Vertices: vertices,
		Labels:   labels,
		Edges:    edges,
		Graph:    graphHandler,
		Engine:   rank.NewEngine(graphHandler, options),
		log:      logger,
	}, nil
}

// NewMemoryRanker creates a Ranker over an in-memory graph.
// A nil graph starts empty.
func NewMemoryRanker(g *graph.MemoryGraph, options *rank.Options) *Ranker {
	if g == nil {
		g = graph.NewMemoryGraph()
	}

	return &Ranker{
		Memory: g,
		Graph:  g,
		Engine: rank.NewEngine(g, options),
		log:    helper.NewLogger(os.Stdout, slog.LevelInfo),
	}
}

// Close closes the database connection
func (r *Ranker) Close() error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// SetLogger replaces the logger of the ranker
func (r *Ranker) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	r.log = logger
	if r.DB != nil {
		r.DB.Logger = logger
	}
}

// PersonalRank validates the request, runs the rank engine from the request's
// sources and returns the top entries of the result.
func (r *Ranker) PersonalRank(ctx context.Context, request *model.RankRequest) (model.RankEntries, error) {
	if err := request.Validate(r.Engine.MaxDepth()); err != nil {
		return nil, err
	}

	seeds, err := model.ParseVertexIDs(request.Sources)
	if err != nil {
		return nil, err
	}

	r.log.Debug(
		"Personal rank",
		slog.Any("sources", seeds),
		slog.String("label", request.Label),
		slog.Float64("alpha", request.Alpha),
		slog.Int64("degree", request.Degree),
		slog.Int64("limit", request.Limit),
		slog.Int("max_depth", request.MaxDepth),
		slog.String("with_label", string(request.WithLabel)),
		slog.String("direction", string(request.Direction)),
		slog.Bool("sorted", request.Sorted),
	)

	label, err := r.Engine.ResolveLabel(ctx, request.Label)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ranks, stats, err := r.Engine.PersonalRankWithStats(ctx, &rank.Params{
		Seeds:     seeds,
		Label:     label,
		Direction: request.Direction,
		WithLabel: request.WithLabel,
		Alpha:     request.Alpha,
		Degree:    request.Degree,
		MaxDepth:  request.MaxDepth,
	})
	if err != nil {
		return nil, err
	}

	entries := rank.TopN(ranks, request.Sorted, request.Limit)

	r.log.Info(
		"Computed personal rank",
		slog.Int("results", len(entries)),
		slog.Int("rounds", stats.Rounds),
		slog.Int("visited", stats.Visited),
		slog.Int("removed", stats.Removed),
		slog.Duration("duration", time.Since(start)),
	)

	return entries, nil
}

// KNeighbor returns the vertices within MaxDepth hops of the request's source
func (r *Ranker) KNeighbor(ctx context.Context, request *model.NeighborRequest) ([]*graph.TraversalResult, error) {
	if err := request.Validate(r.Engine.MaxDepth()); err != nil {
		return nil, err
	}

	label, err := r.Engine.ResolveLabel(ctx, request.Label)
	if err != nil {
		return nil, err
	}

	results, err := graph.BFS(ctx, r.Graph, model.VertexID(request.Source), label, request.Direction, request.MaxDepth, request.Degree, request.Limit)
	if err != nil {
		return nil, err
	}

	r.log.Debug("Computed k-neighbor", slog.String("source", request.Source), slog.Int("results", len(results)))

	return results, nil
}

// InsertVertex stores a vertex
func (r *Ranker) InsertVertex(vertex *model.Vertex) error {
	if r.Memory != nil {
		return r.Memory.AddVertex(vertex.ID)
	}

	if err := r.Vertices.InsertVertex(vertex); err != nil {
		return helper.NewError("insert vertex", err)
	}
	return nil
}

// InsertEdge stores an edge, registering its label and endpoints if needed
func (r *Ranker) InsertEdge(edge model.EdgeSpec) error {
	if r.Memory != nil {
		return r.Memory.AddEdge(edge.Source, edge.Target, edge.Label)
	}

	label, err := r.Labels.InsertEdgeLabel(edge.Label)
	if err != nil {
		return helper.NewError("insert edge label", err)
	}

	err = r.Edges.InsertEdge(&model.Edge{
		SourceID:   edge.Source,
		TargetID:   edge.Target,
		LabelID:    label.ID,
		Properties: edge.Properties,
	})
	if err != nil {
		return helper.NewError("insert edge", err)
	}
	return nil
}

// LoadGraphFile inserts all vertices and edges of a YAML or JSON graph file.
// It returns the number of inserted edges.
func (r *Ranker) LoadGraphFile(path string) (int, error) {
	file, err := graph.ReadGraphFile(path)
	if err != nil {
		return 0, err
	}

	for i := range file.Vertices {
		if err := r.InsertVertex(&file.Vertices[i]); err != nil {
			return 0, helper.NewError(fmt.Sprintf("vertex %d", i), err)
		}
	}

	for i, edge := range file.Edges {
		if err := r.InsertEdge(edge); err != nil {
			return i, helper.NewError(fmt.Sprintf("edge %d", i), err)
		}
	}

	r.log.Info("Loaded graph file", slog.String("path", path), slog.Int("vertices", len(file.Vertices)), slog.Int("edges", len(file.Edges)))

	return len(file.Edges), nil
}
