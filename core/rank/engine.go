package rank

import (
	"context"
	"fmt"
	"slices"

	"github.com/siherrmann/ranker/core/graph"
	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("ranker.rank")

// Options configures an Engine
type Options struct {
	// Upper bound for Params.MaxDepth
	MaxDepth int
	// Number of concurrent neighbor lookups per round, 1 disables concurrency
	Workers int
}

// DefaultOptions returns the options used when NewEngine gets nil
func DefaultOptions() *Options {
	return &Options{
		MaxDepth: model.DefaultMaxDepth,
		Workers:  1,
	}
}

// Params are the inputs of a single personal rank run
type Params struct {
	Seeds     []model.VertexID
	Label     model.EdgeLabelID
	Direction model.Direction
	WithLabel model.WithLabel
	Alpha     float64
	Degree    int64
	MaxDepth  int
}

// Validate checks p against the allowed ranges.
// maxDepth is the configured upper bound for MaxDepth.
func (p *Params) Validate(maxDepth int) error {
	if len(p.Seeds) == 0 {
		return helper.InvalidArgument("the seeds of personal rank can't be empty")
	}
	if p.Alpha <= 0 || p.Alpha > 1.0 {
		return helper.InvalidArgument("the alpha of personal rank must be in range (0, 1], but got '%v'", p.Alpha)
	}
	if p.Degree <= 0 && p.Degree != model.NoLimit {
		return helper.InvalidArgument("the degree of personal rank must be > 0, but got: %d", p.Degree)
	}
	if p.MaxDepth <= 0 || p.MaxDepth > maxDepth {
		return helper.InvalidArgument("the max depth of personal rank must be in range (0, %d], but got '%d'", maxDepth, p.MaxDepth)
	}
	if !p.Direction.Valid() {
		return helper.InvalidArgument("the direction of personal rank must be OUT or IN, but got '%s'", p.Direction)
	}
	if !p.WithLabel.Valid() {
		return helper.InvalidArgument("the with_label of personal rank must be one of BOTH_LABEL, SAME_LABEL or OTHER_LABEL, but got '%s'", p.WithLabel)
	}
	return nil
}

// Stats describes a finished personal rank run
type Stats struct {
	Rounds int `json:"rounds"`
	// Vertices holding rank mass after the last round, before any removal
	Visited         int `json:"visited"`
	RootAdjacencies int `json:"root_adjacencies"`
	// Total restart mass added to the seeds
	Injected float64 `json:"injected"`
	// Vertices removed by root adjacency exclusion and the label filter
	Removed int `json:"removed"`
}

// Engine computes personalized rank (random walk with restart) scores over a GraphAccess
type Engine struct {
	graph   graph.GraphAccess
	options *Options
}

// NewEngine creates a new rank engine. A nil options uses DefaultOptions.
func NewEngine(g graph.GraphAccess, options *Options) *Engine {
	if options == nil {
		options = DefaultOptions()
	}
	if options.MaxDepth <= 0 {
		options.MaxDepth = model.DefaultMaxDepth
	}
	if options.Workers <= 0 {
		options.Workers = 1
	}

	return &Engine{
		graph:   g,
		options: options,
	}
}

// MaxDepth returns the configured upper bound for the number of rounds
func (e *Engine) MaxDepth() int {
	return e.options.MaxDepth
}

// ResolveLabel resolves an edge label name, failing with helper.ErrNotFound for unknown labels
func (e *Engine) ResolveLabel(ctx context.Context, name string) (model.EdgeLabelID, error) {
	id, err := e.graph.ResolveEdgeLabel(ctx, name)
	if err != nil {
		return 0, helper.NewError("resolve edge label", err)
	}
	return id, nil
}

// PersonalRank computes the rank of every vertex reached from the seeds,
// excluding the seeds' direct neighbors and the seeds removed by the label filter.
func (e *Engine) PersonalRank(ctx context.Context, p *Params) (model.RankMap, error) {
	ranks, _, err := e.PersonalRankWithStats(ctx, p)
	return ranks, err
}

// PersonalRankWithStats is PersonalRank also returning the run's Stats
func (e *Engine) PersonalRankWithStats(ctx context.Context, p *Params) (model.RankMap, *Stats, error) {
	ctx, span := tracer.Start(ctx, "Engine.PersonalRank",
		trace.WithAttributes(
			attribute.Int("seed_count", len(p.Seeds)),
			attribute.Float64("alpha", p.Alpha),
			attribute.Int64("degree", p.Degree),
			attribute.Int("max_depth", p.MaxDepth),
			attribute.String("direction", string(p.Direction)),
			attribute.String("with_label", string(p.WithLabel)),
		),
	)
	defer span.End()

	ranks, stats, err := e.personalRank(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	span.SetAttributes(
		attribute.Int("visited", stats.Visited),
		attribute.Int("root_adjacencies", stats.RootAdjacencies),
		attribute.Int("returned", len(ranks)),
	)
	return ranks, stats, nil
}

func (e *Engine) personalRank(ctx context.Context, p *Params) (model.RankMap, *Stats, error) {
	if err := p.Validate(e.options.MaxDepth); err != nil {
		return nil, nil, err
	}

	seeds := uniqueSeeds(p.Seeds)

	ranks := make(model.RankMap, len(seeds))
	for _, seed := range seeds {
		ranks[seed] = 1.0
	}

	// Only the set matching the query direction is populated
	var outSeeds, inSeeds []model.VertexID
	if p.Direction == model.DirectionOut {
		outSeeds = seeds
	} else {
		inSeeds = seeds
	}

	stats := &Stats{}
	var rootAdjacencies []model.VertexID

	for round := 1; round <= p.MaxDepth; round++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, helper.NewError(fmt.Sprintf("personal rank round %d", round), err)
		}

		newRanks, err := e.propagate(ctx, ranks, p)
		if err != nil {
			return nil, nil, helper.NewError(fmt.Sprintf("personal rank round %d", round), err)
		}

		for _, seed := range seeds {
			newRanks[seed] += 1 - p.Alpha
			stats.Injected += 1 - p.Alpha
		}
		ranks = newRanks
		stats.Rounds = round

		if round == 1 {
			rootAdjacencies = ranks.Keys()
		}
	}

	stats.Visited = len(ranks)
	stats.RootAdjacencies = len(rootAdjacencies)

	for _, v := range rootAdjacencies {
		delete(ranks, v)
	}

	switch p.WithLabel {
	case model.WithLabelSame:
		removeAll(ranks, opposite(p.Direction, outSeeds, inSeeds))
	case model.WithLabelOther:
		removeAll(ranks, same(p.Direction, outSeeds, inSeeds))
	}

	stats.Removed = stats.Visited - len(ranks)
	return ranks, stats, nil
}

// propagate runs one round: every vertex with rank spreads alpha of it evenly
// over its neighbors. Vertices without neighbors lose their share.
func (e *Engine) propagate(ctx context.Context, ranks model.RankMap, p *Params) (model.RankMap, error) {
	frontier := make([]model.VertexID, 0, len(ranks))
	for v, rank := range ranks {
		if rank > 0 {
			frontier = append(frontier, v)
		}
	}
	slices.Sort(frontier)

	adjacency, err := e.neighbors(ctx, frontier, p)
	if err != nil {
		return nil, err
	}

	newRanks := make(model.RankMap, len(ranks))
	for i, v := range frontier {
		neighbors := adjacency[i]
		if len(neighbors) == 0 {
			continue
		}
		share := p.Alpha * ranks[v] / float64(len(neighbors))
		for _, n := range neighbors {
			newRanks[n] += share
		}
	}

	return newRanks, nil
}

// neighbors looks up the neighbors of every frontier vertex.
// The result is indexed like frontier regardless of lookup order.
func (e *Engine) neighbors(ctx context.Context, frontier []model.VertexID, p *Params) ([][]model.VertexID, error) {
	adjacency := make([][]model.VertexID, len(frontier))

	if e.options.Workers <= 1 || len(frontier) <= 1 {
		for i, v := range frontier {
			neighbors, err := e.graph.Neighbors(ctx, v, p.Label, p.Direction, p.Degree)
			if err != nil {
				return nil, helper.NewError(fmt.Sprintf("neighbors of %s", v), err)
			}
			adjacency[i] = neighbors
		}
		return adjacency, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.Workers)
	for i, v := range frontier {
		g.Go(func() error {
			neighbors, err := e.graph.Neighbors(gCtx, v, p.Label, p.Direction, p.Degree)
			if err != nil {
				return helper.NewError(fmt.Sprintf("neighbors of %s", v), err)
			}
			adjacency[i] = neighbors
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return adjacency, nil
}

func uniqueSeeds(seeds []model.VertexID) []model.VertexID {
	seen := make(map[model.VertexID]struct{}, len(seeds))
	unique := make([]model.VertexID, 0, len(seeds))
	for _, seed := range seeds {
		if _, ok := seen[seed]; ok {
			continue
		}
		seen[seed] = struct{}{}
		unique = append(unique, seed)
	}
	return unique
}

func same(direction model.Direction, outSeeds, inSeeds []model.VertexID) []model.VertexID {
	if direction == model.DirectionOut {
		return outSeeds
	}
	return inSeeds
}

func opposite(direction model.Direction, outSeeds, inSeeds []model.VertexID) []model.VertexID {
	return same(direction.Opposite(), outSeeds, inSeeds)
}

func removeAll(ranks model.RankMap, vertices []model.VertexID) {
	for _, v := range vertices {
		delete(ranks, v)
	}
}
