package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/model"
	"github.com/tidwall/btree"
	"gopkg.in/yaml.v3"
)

type adjacencyKey struct {
	vertex    model.VertexID
	label     model.EdgeLabelID
	direction model.Direction
}

func lessVertexID(a, b model.VertexID) bool {
	return a < b
}

// MemoryGraph is an in-memory GraphAccess.
// Adjacency sets are B-Trees so neighbors are always listed in ascending id order.
type MemoryGraph struct {
	mu        sync.RWMutex
	vertices  *btree.BTreeG[model.VertexID]
	labels    map[string]model.EdgeLabelID
	names     []string
	adjacency map[adjacencyKey]*btree.BTreeG[model.VertexID]
	edgeCount int
}

// NewMemoryGraph creates an empty graph
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		vertices:  btree.NewBTreeG[model.VertexID](lessVertexID),
		labels:    make(map[string]model.EdgeLabelID),
		adjacency: make(map[adjacencyKey]*btree.BTreeG[model.VertexID]),
	}
}

// NewMemoryGraphFromFile creates a graph from a YAML or JSON graph file
func NewMemoryGraphFromFile(path string) (*MemoryGraph, error) {
	file, err := ReadGraphFile(path)
	if err != nil {
		return nil, err
	}

	g := NewMemoryGraph()
	if err := g.Load(file); err != nil {
		return nil, err
	}
	return g, nil
}

// ReadGraphFile parses a graph file; .json files are read as JSON, everything else as YAML
func ReadGraphFile(path string) (*model.GraphFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, helper.NewError("read graph file", err)
	}

	file := &model.GraphFile{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, file)
	} else {
		err = yaml.Unmarshal(data, file)
	}
	if err != nil {
		return nil, helper.NewError("parse graph file", err)
	}

	return file, nil
}

// Load adds all vertices and edges of the file
func (g *MemoryGraph) Load(file *model.GraphFile) error {
	for _, v := range file.Vertices {
		if err := g.AddVertex(v.ID); err != nil {
			return err
		}
	}
	for i, e := range file.Edges {
		if err := g.AddEdge(e.Source, e.Target, e.Label); err != nil {
			return helper.NewError(fmt.Sprintf("add edge %d", i), err)
		}
	}
	return nil
}

// AddVertex adds a vertex. Adding an existing vertex is a no-op.
func (g *MemoryGraph) AddVertex(id model.VertexID) error {
	if id == "" {
		return helper.InvalidArgument("vertex id can't be empty")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.vertices.Set(id)
	return nil
}

// AddEdgeLabel registers a label and returns its id.
// Registering an existing label returns the existing id.
func (g *MemoryGraph) AddEdgeLabel(name string) (model.EdgeLabelID, error) {
	if name == "" {
		return 0, helper.InvalidArgument("edge label can't be empty")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return g.addEdgeLabel(name), nil
}

func (g *MemoryGraph) addEdgeLabel(name string) model.EdgeLabelID {
	if id, ok := g.labels[name]; ok {
		return id
	}
	g.names = append(g.names, name)
	id := model.EdgeLabelID(len(g.names))
	g.labels[name] = id
	return id
}

// AddEdge adds a directed edge source -label-> target.
// Missing vertices and labels are created, duplicate edges are ignored.
func (g *MemoryGraph) AddEdge(source, target model.VertexID, label string) error {
	if source == "" || target == "" {
		return helper.InvalidArgument("edge endpoints can't be empty")
	}
	if label == "" {
		return helper.InvalidArgument("edge label can't be empty")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	labelID := g.addEdgeLabel(label)
	g.vertices.Set(source)
	g.vertices.Set(target)

	_, replaced := g.adjacent(adjacencyKey{source, labelID, model.DirectionOut}).Set(target)
	g.adjacent(adjacencyKey{target, labelID, model.DirectionIn}).Set(source)
	if !replaced {
		g.edgeCount++
	}

	return nil
}

func (g *MemoryGraph) adjacent(key adjacencyKey) *btree.BTreeG[model.VertexID] {
	set, ok := g.adjacency[key]
	if !ok {
		set = btree.NewBTreeG[model.VertexID](lessVertexID)
		g.adjacency[key] = set
	}
	return set
}

// ResolveEdgeLabel returns the id of a registered label
func (g *MemoryGraph) ResolveEdgeLabel(ctx context.Context, name string) (model.EdgeLabelID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	id, ok := g.labels[name]
	if !ok {
		return 0, helper.NotFound("undefined edge label: '%s'", name)
	}
	return id, nil
}

// Neighbors lists up to limit neighbors in ascending id order
func (g *MemoryGraph) Neighbors(ctx context.Context, vertex model.VertexID, label model.EdgeLabelID, direction model.Direction, limit int64) ([]model.VertexID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	set, ok := g.adjacency[adjacencyKey{vertex, label, direction}]
	if !ok || limit == 0 {
		return []model.VertexID{}, nil
	}

	size := int64(set.Len())
	if limit != model.NoLimit && limit < size {
		size = limit
	}

	neighbors := make([]model.VertexID, 0, size)
	set.Scan(func(id model.VertexID) bool {
		neighbors = append(neighbors, id)
		return int64(len(neighbors)) < size
	})

	return neighbors, nil
}

// Vertices returns all vertex ids in ascending order
func (g *MemoryGraph) Vertices() []model.VertexID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]model.VertexID, 0, g.vertices.Len())
	g.vertices.Scan(func(id model.VertexID) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

// Labels returns all label names in registration order
func (g *MemoryGraph) Labels() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]string(nil), g.names...)
}

// EdgeCount returns the number of distinct edges
func (g *MemoryGraph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeCount
}
