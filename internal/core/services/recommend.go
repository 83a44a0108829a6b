package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driving"
	"github.com/custodia-labs/tristep/internal/logger"
)

// Ensure RecommendService implements the interface.
var _ driving.RecommendService = (*RecommendService)(nil)

// RecommendService ranks job and course records against a user profile.
type RecommendService struct {
	indexes IndexProvider
}

// NewRecommendService creates a recommendation service.
func NewRecommendService(indexes IndexProvider) *RecommendService {
	return &RecommendService{indexes: indexes}
}

// RecommendJobs ranks job postings.
func (s *RecommendService) RecommendJobs(ctx context.Context, req domain.RecommendRequest) (*domain.Recommendation, error) {
	idx, err := s.index(ctx, domain.CorpusJobs, req.Profile)
	if err != nil {
		return nil, err
	}

	results := RankJobs(idx, req.Profile, req.Jobs)
	logger.Debug("jobs: %d results (filters set: %t)", len(results), !req.Jobs.IsEmpty())

	return &domain.Recommendation{
		Kind:       domain.CorpusJobs,
		Results:    results,
		CorpusHash: idx.Corpus.Hash,
	}, nil
}

// RecommendCourses ranks courses, optionally blending in popularity.
func (s *RecommendService) RecommendCourses(ctx context.Context, req domain.RecommendRequest) (*domain.Recommendation, error) {
	idx, err := s.index(ctx, domain.CorpusCourses, req.Profile)
	if err != nil {
		return nil, err
	}

	results := RankCourses(idx, req.Profile, req.Courses)
	if req.Blend {
		results = BlendCourses(results)
	}
	logger.Debug("courses: %d results (blend: %t)", len(results), req.Blend)

	return &domain.Recommendation{
		Kind:       domain.CorpusCourses,
		Results:    results,
		CorpusHash: idx.Corpus.Hash,
	}, nil
}

func (s *RecommendService) index(ctx context.Context, kind domain.CorpusKind, profile string) (*CorpusIndex, error) {
	if strings.TrimSpace(profile) == "" {
		return nil, fmt.Errorf("%w: profile is empty", domain.ErrInvalidInput)
	}
	logger.Section("Recommend " + kind.String())

	idx, err := s.indexes.Index(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}
	return idx, nil
}
