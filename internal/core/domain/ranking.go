package domain

// DefaultPercentile is the cutoff used by the course ranker and score blender.
const DefaultPercentile = 95.0

// BlendWeight is the share of the final score given to similarity.
const BlendWeight = 0.5

// RankedResult is a corpus record annotated with its ranking scores.
type RankedResult struct {
	// Record is the matched corpus row.
	Record Record

	// Similarity is the cosine similarity to the profile, in [0,1].
	Similarity float64

	// Blended is true when the Score Blender produced the ordering.
	Blended bool

	// Score is the Bayesian weighted rating (blended results only).
	Score float64

	// NormSimilarity is the min-max normalised similarity (blended results only).
	NormSimilarity float64

	// NormScore is the min-max normalised weighted rating (blended results only).
	NormScore float64

	// Final is BlendWeight*NormSimilarity + (1-BlendWeight)*NormScore (blended results only).
	Final float64
}

// RankScore returns the value the result is ordered by.
func (r RankedResult) RankScore() float64 {
	if r.Blended {
		return r.Final
	}
	return r.Similarity
}

// RecommendRequest carries everything a single recommendation call needs.
// It replaces per-session mutable state: callers hold the request and the
// returned results, and page through them with Paginate.
type RecommendRequest struct {
	// Profile is the free-text user profile.
	Profile string

	// Jobs filters apply to job requests.
	Jobs JobFilters

	// Courses filters apply to course requests.
	Courses CourseFilters

	// Blend selects the Score Blender pipeline for courses.
	Blend bool
}

// Recommendation is the ordered outcome of a request.
type Recommendation struct {
	// Kind is the corpus the results came from.
	Kind CorpusKind

	// Results are ordered descending by RankScore.
	Results []RankedResult

	// CorpusHash identifies the corpus version that was searched.
	CorpusHash string
}

// IsEmpty reports a normal "no matches" outcome.
func (r *Recommendation) IsEmpty() bool {
	return r == nil || len(r.Results) == 0
}
