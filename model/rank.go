package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/siherrmann/ranker/helper"
)

// RankMap maps a vertex to its non-negative rank score
type RankMap map[VertexID]float64

// Keys returns the vertices of the map in no particular order
func (m RankMap) Keys() []VertexID {
	keys := make([]VertexID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// WithLabel decides which directional seed set is removed from a rank result
type WithLabel string

const (
	WithLabelBoth  WithLabel = "BOTH_LABEL"
	WithLabelSame  WithLabel = "SAME_LABEL"
	WithLabelOther WithLabel = "OTHER_LABEL"
)

// ParseWithLabel parses BOTH_LABEL, SAME_LABEL or OTHER_LABEL (case insensitive).
// An empty value means BOTH_LABEL.
func ParseWithLabel(s string) (WithLabel, error) {
	switch WithLabel(strings.ToUpper(strings.TrimSpace(s))) {
	case "", WithLabelBoth:
		return WithLabelBoth, nil
	case WithLabelSame:
		return WithLabelSame, nil
	case WithLabelOther:
		return WithLabelOther, nil
	default:
		return "", helper.InvalidArgument("the with_label must be one of BOTH_LABEL, SAME_LABEL or OTHER_LABEL, but got '%s'", s)
	}
}

// Valid reports whether w is a known mode
func (w WithLabel) Valid() bool {
	return w == WithLabelBoth || w == WithLabelSame || w == WithLabelOther
}

// RankEntry is a single scored vertex
type RankEntry struct {
	Vertex VertexID `json:"vertex"`
	Score  float64  `json:"score"`
}

// RankEntries is an ordered rank result.
// It marshals to a flat JSON object keeping the entry order.
type RankEntries []RankEntry

// MarshalJSON writes {"vertex": score, ...} in slice order.
func (e RankEntries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(entry.Vertex))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Score)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ToMap returns the entries as an unordered RankMap
func (e RankEntries) ToMap() RankMap {
	m := make(RankMap, len(e))
	for _, entry := range e {
		m[entry.Vertex] = entry.Score
	}
	return m
}
