package services

import (
	"sort"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/vectorspace"
)

// BlendCourses reorders ranked courses by an equal mix of normalised
// similarity and a Bayesian weighted rating, then keeps the results whose
// final score reaches the 95th percentile. The order depends only on the
// set of inputs, not their order.
func BlendCourses(results []domain.RankedResult) []domain.RankedResult {
	if len(results) == 0 {
		return nil
	}

	viewers := make([]float64, len(results))
	sims := make([]float64, len(results))
	for i, r := range results {
		viewers[i] = float64(r.Record.Viewers)
		sims[i] = r.Similarity
	}

	m := vectorspace.Percentile(viewers, domain.DefaultPercentile)
	c := weightedMeanRating(results)

	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = WeightedRating(r.Record.Rating, viewers[i], c, m)
	}

	normSims := vectorspace.MinMax(sims)
	normScores := vectorspace.MinMax(scores)

	blended := make([]domain.RankedResult, len(results))
	finals := make([]float64, len(results))
	for i, r := range results {
		r.Blended = true
		r.Score = scores[i]
		r.NormSimilarity = normSims[i]
		r.NormScore = normScores[i]
		r.Final = domain.BlendWeight*normSims[i] + (1-domain.BlendWeight)*normScores[i]
		blended[i] = r
		finals[i] = r.Final
	}

	cutoff := vectorspace.Percentile(finals, domain.DefaultPercentile)
	var out []domain.RankedResult
	for _, r := range blended {
		if r.Final >= cutoff {
			out = append(out, r)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Final != out[j].Final {
			return out[i].Final > out[j].Final
		}
		return out[i].Record.Index < out[j].Record.Index
	})
	return out
}

// WeightedRating is the Bayesian average (R*v + C*m) / (v + m).
// When v + m is zero it returns the prior mean C.
func WeightedRating(rating, viewers, c, m float64) float64 {
	if viewers+m == 0 {
		return c
	}
	return (rating*viewers + c*m) / (viewers + m)
}

// weightedMeanRating is the viewer-weighted mean rating, 0 without viewers.
func weightedMeanRating(results []domain.RankedResult) float64 {
	var sum, weight float64
	for _, r := range results {
		v := float64(r.Record.Viewers)
		sum += r.Record.Rating * v
		weight += v
	}
	if weight == 0 {
		return 0
	}
	return sum / weight
}
