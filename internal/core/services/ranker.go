package services

import (
	"sort"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/normalisers/text"
	"github.com/custodia-labs/tristep/internal/vectorspace"
)

// RankJobs returns every job with positive similarity to profile, most
// similar first, narrowed by filters. It returns nil when nothing matches.
func RankJobs(idx *CorpusIndex, profile string, filters domain.JobFilters) []domain.RankedResult {
	sims := similarities(idx, profile)

	var results []domain.RankedResult
	for i, sim := range sims {
		if sim > 0 {
			results = append(results, domain.RankedResult{Record: idx.Corpus.Records[i], Similarity: sim})
		}
	}
	sortBySimilarity(results)

	return filterResults(results, func(r domain.Record) bool { return filters.Matches(r) })
}

// RankCourses keeps courses whose similarity reaches the 95th percentile
// of the positive similarities, most similar first, narrowed by filters.
// It returns nil when nothing matches.
func RankCourses(idx *CorpusIndex, profile string, filters domain.CourseFilters) []domain.RankedResult {
	sims := similarities(idx, profile)

	var positive []float64
	for _, sim := range sims {
		if sim > 0 {
			positive = append(positive, sim)
		}
	}
	if len(positive) == 0 {
		return nil
	}
	threshold := vectorspace.Percentile(positive, domain.DefaultPercentile)

	var results []domain.RankedResult
	for i, sim := range sims {
		if sim > 0 && sim >= threshold {
			results = append(results, domain.RankedResult{Record: idx.Corpus.Records[i], Similarity: sim})
		}
	}
	sortBySimilarity(results)

	return filterResults(results, func(r domain.Record) bool { return filters.Matches(r) })
}

func similarities(idx *CorpusIndex, profile string) []float64 {
	query := idx.Space.Transform(text.Clean(profile))
	return idx.Matrix.Similarities(query)
}

// sortBySimilarity orders descending; equal similarities keep corpus order.
func sortBySimilarity(results []domain.RankedResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
}

func filterResults(results []domain.RankedResult, keep func(domain.Record) bool) []domain.RankedResult {
	var out []domain.RankedResult
	for _, r := range results {
		if keep(r.Record) {
			out = append(out, r)
		}
	}
	return out
}
