// Package search ranks question titles against a typed query and question
// embeddings against a query vector.
package search

import (
	"cmp"
	"context"
	"slices"
)

// Range is a half-open range of rune indexes into a title.
type Range struct {
	Start int
	End   int
}

// ScoredResult is one ranked subject. Results are ordered by descending
// score, then ascending subject id.
type ScoredResult struct {
	SubjectID  int64
	Score      float64
	Highlights []Range
}

// Title is a fuzzy search corpus entry.
type Title struct {
	ID   int64
	Text string
}

// Vector is a semantic search corpus entry.
type Vector struct {
	ID     int64
	Values []float64
}

// Embedder turns query text into a vector. Implementations may be slow and
// are called once per query.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

func sortResults(results []ScoredResult) {
	slices.SortStableFunc(results, func(a, b ScoredResult) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.SubjectID, b.SubjectID)
	})
}

// Top returns at most n leading results.
func Top(results []ScoredResult, n int) []ScoredResult {
	if n < 0 {
		n = 0
	}
	if len(results) > n {
		return results[:n]
	}
	return results
}
