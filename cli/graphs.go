package cli

import (
	"log/slog"

	"github.com/siherrmann/ranker"
	"github.com/siherrmann/ranker/config"
	"github.com/siherrmann/ranker/core/graph"
	"github.com/siherrmann/ranker/core/rank"
	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/metrics"
)

// rankOptions returns the engine options of the configuration
func (a *app) rankOptions() *rank.Options {
	return &rank.Options{
		MaxDepth: a.config.Rank.MaxDepth,
		Workers:  a.config.Rank.Workers,
	}
}

// openGraph creates a Ranker for a configured graph
func (a *app) openGraph(graphSpec config.GraphSpec) (*ranker.Ranker, error) {
	logger := a.log.With(slog.String("graph", graphSpec.Name))

	switch graphSpec.Storage {
	case config.StoragePostgres:
		dbConfig, err := helper.NewDatabaseConfiguration()
		if err != nil {
			return nil, err
		}
		if graphSpec.Schema != "" {
			dbConfig.Schema = graphSpec.Schema
		}

		r, err := ranker.NewRanker(dbConfig, a.rankOptions())
		if err != nil {
			return nil, helper.NewError("open graph "+graphSpec.Name, err)
		}
		r.SetLogger(logger)
		return r, nil
	default:
		g, err := graph.NewMemoryGraphFromFile(graphSpec.File)
		if err != nil {
			return nil, helper.NewError("open graph "+graphSpec.Name, err)
		}
		metrics.GraphEdges.WithLabelValues(graphSpec.Name).Set(float64(g.EdgeCount()))

		r := ranker.NewMemoryRanker(g, a.rankOptions())
		r.SetLogger(logger)
		logger.Info("Loaded memory graph", slog.String("file", graphSpec.File), slog.Int("edges", g.EdgeCount()))
		return r, nil
	}
}

// openSingleGraph opens the graph named by --graph from the configuration
// or a memory graph read from --file.
func (a *app) openSingleGraph(name, file string) (*ranker.Ranker, error) {
	if file != "" {
		return a.openGraph(config.GraphSpec{Name: "file", Storage: config.StorageMemory, File: file})
	}
	if name == "" {
		return nil, helper.InvalidArgument("either --graph or --file must be set")
	}

	graphSpec, err := a.config.Graph(name)
	if err != nil {
		return nil, err
	}
	return a.openGraph(graphSpec)
}
