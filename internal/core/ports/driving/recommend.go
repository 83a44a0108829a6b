package driving

import (
	"context"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

// RecommendService ranks corpus records against a free-text profile.
// An empty result is returned as a Recommendation with no results and a nil error.
type RecommendService interface {
	// RecommendJobs ranks job postings using req.Profile and req.Jobs.
	RecommendJobs(ctx context.Context, req domain.RecommendRequest) (*domain.Recommendation, error)

	// RecommendCourses ranks courses using req.Profile and req.Courses.
	// req.Blend selects the popularity-blended ordering.
	RecommendCourses(ctx context.Context, req domain.RecommendRequest) (*domain.Recommendation, error)
}
