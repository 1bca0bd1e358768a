package search

import (
	"context"

	"gonum.org/v1/gonum/floats"

	"github.com/zhubert/erwindb/internal/errors"
)

// Semantic ranks embedding vectors by cosine similarity.
type Semantic struct{}

// Search scores every corpus vector against query and returns the whole
// corpus ranked. A vector whose length differs from the query's is an
// error of kind KindDimension: it means the corpus was embedded with a
// different model.
func (Semantic) Search(corpus []Vector, query []float64) ([]ScoredResult, error) {
	results := make([]ScoredResult, 0, len(corpus))
	qn := floats.Norm(query, 2)
	for _, v := range corpus {
		if len(v.Values) != len(query) {
			return nil, errors.DimensionMismatch(len(query), len(v.Values), v.ID)
		}
		results = append(results, ScoredResult{
			SubjectID: v.ID,
			Score:     cosine(v.Values, query, qn),
		})
	}
	sortResults(results)
	return results, nil
}

// Cosine returns the cosine similarity of a and b, or 0 when either has zero
// magnitude or their lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	return cosine(a, b, floats.Norm(b, 2))
}

func cosine(a, b []float64, bn float64) float64 {
	an := floats.Norm(a, 2)
	if an == 0 || bn == 0 {
		return 0
	}
	return floats.Dot(a, b) / (an * bn)
}

// SemanticQuery embeds query once and returns the best limit matches.
func SemanticQuery(ctx context.Context, emb Embedder, corpus []Vector, query string, limit int) ([]ScoredResult, error) {
	vec, err := emb.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	results, err := Semantic{}.Search(corpus, vec)
	if err != nil {
		return nil, err
	}
	return Top(results, limit), nil
}
