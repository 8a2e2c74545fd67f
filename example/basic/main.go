package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/ranker"
	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/model"
)

// Users like items, items are liked back by other users.
var likes = []model.EdgeSpec{
	{Source: "alice", Target: "item-1", Label: "like"},
	{Source: "alice", Target: "item-2", Label: "like"},
	{Source: "bob", Target: "item-2", Label: "like"},
	{Source: "bob", Target: "item-3", Label: "like"},
	{Source: "carol", Target: "item-3", Label: "like"},
	{Source: "carol", Target: "item-4", Label: "like"},
	{Source: "item-1", Target: "alice", Label: "like"},
	{Source: "item-2", Target: "alice", Label: "like"},
	{Source: "item-2", Target: "bob", Label: "like"},
	{Source: "item-3", Target: "bob", Label: "like"},
	{Source: "item-3", Target: "carol", Label: "like"},
	{Source: "item-4", Target: "carol", Label: "like"},
}

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	r, err := ranker.NewRanker(dbConfig, nil)
	if err != nil {
		log.Fatalf("Failed to create ranker: %v", err)
	}
	defer r.Close()

	fmt.Println("Inserting edges...")
	for _, edge := range likes {
		if err := r.InsertEdge(edge); err != nil {
			log.Fatalf("Failed to insert edge: %v", err)
		}
	}
	fmt.Printf("Inserted %d edges\n", len(likes))

	// Recommend items for alice: rank from alice, keep only the item side
	request := model.DefaultRankRequest()
	request.Sources = "alice"
	request.Label = "like"
	request.Alpha = 0.8
	request.MaxDepth = 5
	request.WithLabel = model.WithLabelOther

	entries, err := r.PersonalRank(context.Background(), &request)
	if err != nil {
		log.Fatalf("Failed to rank: %v", err)
	}

	fmt.Printf("\nFound %d results for alice:\n", len(entries))
	for i, entry := range entries {
		fmt.Printf("%d. %s (%.6f)\n", i+1, entry.Vertex, entry.Score)
	}

	fmt.Println("\nBasic example completed successfully!")
}
