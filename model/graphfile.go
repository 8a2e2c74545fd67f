package model

// GraphFile is the on-disk format for loading a graph (YAML or JSON)
type GraphFile struct {
	Vertices []Vertex   `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	Edges    []EdgeSpec `json:"edges" yaml:"edges"`
}

// EdgeSpec is an edge referenced by vertex ids and label name
type EdgeSpec struct {
	Source     VertexID `json:"source" yaml:"source"`
	Target     VertexID `json:"target" yaml:"target"`
	Label      string   `json:"label" yaml:"label"`
	Properties Metadata `json:"properties,omitempty" yaml:"properties,omitempty"`
}
