package rank

import (
	"cmp"
	"slices"

	"github.com/siherrmann/ranker/model"
)

// TopN orders ranks and keeps at most limit entries. A negative limit keeps all.
// Sorted results are ordered by score descending with ties broken by vertex id;
// unsorted results are ordered by vertex id.
func TopN(ranks model.RankMap, sorted bool, limit int64) model.RankEntries {
	entries := make(model.RankEntries, 0, len(ranks))
	for v, score := range ranks {
		entries = append(entries, model.RankEntry{Vertex: v, Score: score})
	}

	if sorted {
		slices.SortFunc(entries, func(a, b model.RankEntry) int {
			if c := cmp.Compare(b.Score, a.Score); c != 0 {
				return c
			}
			return cmp.Compare(a.Vertex, b.Vertex)
		})
	} else {
		slices.SortFunc(entries, func(a, b model.RankEntry) int {
			return cmp.Compare(a.Vertex, b.Vertex)
		})
	}

	if limit >= 0 && int64(len(entries)) > limit {
		entries = entries[:limit]
	}

	return entries
}
