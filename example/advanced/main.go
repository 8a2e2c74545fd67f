package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/siherrmann/ranker"
	"github.com/siherrmann/ranker/core/graph"
	"github.com/siherrmann/ranker/core/rank"
	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/model"
)

// A small citation graph: papers cite papers, authors write papers.
const citations = `vertices:
  - id: orphan
edges:
  - {source: p1, target: p2, label: cites}
  - {source: p1, target: p3, label: cites}
  - {source: p2, target: p4, label: cites}
  - {source: p3, target: p4, label: cites}
  - {source: p3, target: p5, label: cites}
  - {source: p4, target: p6, label: cites}
  - {source: p5, target: p6, label: cites}
  - {source: p6, target: p1, label: cites}
  - {source: ada, target: p1, label: wrote}
  - {source: ada, target: p4, label: wrote}
  - {source: alan, target: p5, label: wrote}
`

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	path := filepath.Join(os.TempDir(), "ranker-citations.yaml")
	if err := os.WriteFile(path, []byte(citations), 0600); err != nil {
		log.Fatalf("Failed to write graph file: %v", err)
	}
	defer os.Remove(path)

	g, err := graph.NewMemoryGraphFromFile(path)
	if err != nil {
		log.Fatalf("Failed to load graph: %v", err)
	}
	fmt.Printf("Loaded %d vertices, %d edges and labels %v\n", len(g.Vertices()), g.EdgeCount(), g.Labels())

	// Fetch neighbors of each round with four workers
	r := ranker.NewMemoryRanker(g, &rank.Options{MaxDepth: 20, Workers: 4})
	r.SetLogger(helper.NewLogger(os.Stdout, slog.LevelDebug))

	// Example 1: Papers related to p1 by following citations
	request := model.DefaultRankRequest()
	request.Sources = "p1"
	request.Label = "cites"
	request.Alpha = 0.85
	request.MaxDepth = 10
	request.Limit = 3

	fmt.Println("\n=== Top 3 papers related to p1 ===")
	entries, err := r.PersonalRank(ctx, &request)
	if err != nil {
		log.Fatalf("Failed to rank: %v", err)
	}
	for _, entry := range entries {
		fmt.Printf("%s: %.6f\n", entry.Vertex, entry.Score)
	}

	// Example 2: Papers citing p6, from several sources in reverse direction
	request.Sources = "p6,p4"
	request.Direction = model.DirectionIn
	request.Limit = model.NoLimit
	request.Sorted = false

	fmt.Println("\n=== Papers citing p6 and p4, by id ===")
	entries, err = r.PersonalRank(ctx, &request)
	if err != nil {
		log.Fatalf("Failed to rank: %v", err)
	}
	for _, entry := range entries {
		fmt.Printf("%s: %.6f\n", entry.Vertex, entry.Score)
	}

	// Example 3: Two hop neighborhood of ada over authorship
	neighbors := model.DefaultNeighborRequest()
	neighbors.Source = "ada"
	neighbors.Label = "wrote"
	neighbors.MaxDepth = 2

	fmt.Println("\n=== Papers written by ada ===")
	results, err := r.KNeighbor(ctx, &neighbors)
	if err != nil {
		log.Fatalf("Failed to query neighbors: %v", err)
	}
	for _, result := range results {
		fmt.Printf("%s (distance %d, path %v)\n", result.Vertex, result.Distance, result.Path)
	}

	// Example 4: Unknown labels are reported as not found
	request.Label = "reviews"
	if _, err := r.PersonalRank(ctx, &request); err != nil {
		fmt.Printf("\nExpected error: %v\n", err)
	}

	fmt.Println("\nAdvanced example completed successfully!")
}
