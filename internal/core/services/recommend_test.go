package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

func TestRecommendService_RecommendJobs(t *testing.T) {
	service := NewRecommendService(stubIndexes{idx: newJobIndex(t)})

	rec, err := service.RecommendJobs(context.Background(), domain.RecommendRequest{
		Profile: "Python data",
		Jobs:    domain.JobFilters{Country: "Indonesia"},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.CorpusJobs, rec.Kind)
	assert.Equal(t, "test-hash", rec.CorpusHash)
	require.Len(t, rec.Results, 2)
	assert.Equal(t, 0, rec.Results[0].Record.Index)
}

func TestRecommendService_EmptyProfile(t *testing.T) {
	service := NewRecommendService(stubIndexes{idx: newJobIndex(t)})

	_, err := service.RecommendJobs(context.Background(), domain.RecommendRequest{Profile: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.RecommendCourses(context.Background(), domain.RecommendRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecommendService_NoMatchesIsNotAnError(t *testing.T) {
	service := NewRecommendService(stubIndexes{idx: newJobIndex(t)})

	rec, err := service.RecommendJobs(context.Background(), domain.RecommendRequest{Profile: "astronomy"})

	require.NoError(t, err)
	assert.True(t, rec.IsEmpty())
}

func TestRecommendService_IndexError(t *testing.T) {
	service := NewRecommendService(stubIndexes{err: domain.ErrSourceNotConfigured})

	_, err := service.RecommendCourses(context.Background(), domain.RecommendRequest{Profile: "go"})

	assert.ErrorIs(t, err, domain.ErrSourceNotConfigured)
}

func TestRecommendService_RecommendCourses_Blend(t *testing.T) {
	records := []domain.Record{
		courseRecord("python data", "Coursera", "Data Science", "English"),
		courseRecord("python data", "Udemy", "Data Science", "English"),
		courseRecord("golang", "Udemy", "Development", "English"),
	}
	records[0].Rating, records[0].Viewers = 4.5, 1000
	records[1].Rating, records[1].Viewers = 3.0, 20
	service := NewRecommendService(stubIndexes{idx: newTestIndex(t, domain.CorpusCourses, records)})

	plain, err := service.RecommendCourses(context.Background(), domain.RecommendRequest{Profile: "python"})
	require.NoError(t, err)
	require.Len(t, plain.Results, 2)
	assert.False(t, plain.Results[0].Blended)

	blended, err := service.RecommendCourses(context.Background(), domain.RecommendRequest{Profile: "python", Blend: true})
	require.NoError(t, err)
	require.NotEmpty(t, blended.Results)
	assert.True(t, blended.Results[0].Blended)
	assert.Equal(t, 0, blended.Results[0].Record.Index, "higher rated course wins on equal similarity")
}

func TestRecommendService_PropagatesWrappedErrors(t *testing.T) {
	boom := errors.New("boom")
	service := NewRecommendService(stubIndexes{err: boom})

	_, err := service.RecommendJobs(context.Background(), domain.RecommendRequest{Profile: "go"})

	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "load jobs")
}
