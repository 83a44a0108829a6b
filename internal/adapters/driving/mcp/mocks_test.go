package mcp

import (
	"context"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driving"
)

// mockRecommendService is a mock implementation of driving.RecommendService.
type mockRecommendService struct {
	rec     *domain.Recommendation
	err     error
	lastReq domain.RecommendRequest
}

func (m *mockRecommendService) RecommendJobs(_ context.Context, req domain.RecommendRequest) (*domain.Recommendation, error) {
	m.lastReq = req
	return m.rec, m.err
}

func (m *mockRecommendService) RecommendCourses(_ context.Context, req domain.RecommendRequest) (*domain.Recommendation, error) {
	m.lastReq = req
	return m.rec, m.err
}

// mockCorpusService is a mock implementation of driving.CorpusService.
type mockCorpusService struct {
	facets   *domain.FacetOptions
	statuses []domain.CorpusStatus
	err      error
	lastKind domain.CorpusKind
}

func (m *mockCorpusService) Load(_ context.Context, _ domain.CorpusKind) (*domain.Corpus, error) {
	return nil, m.err
}

func (m *mockCorpusService) Refresh(_ context.Context, _ domain.CorpusKind) (*domain.Corpus, error) {
	return nil, m.err
}

func (m *mockCorpusService) Status(_ context.Context) ([]domain.CorpusStatus, error) {
	return m.statuses, m.err
}

func (m *mockCorpusService) Facets(_ context.Context, kind domain.CorpusKind) (*domain.FacetOptions, error) {
	m.lastKind = kind
	return m.facets, m.err
}

// mockSettingsService overrides Get; other methods are not called.
type mockSettingsService struct {
	driving.SettingsService
	settings domain.AppSettings
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func newTestServer(rec *mockRecommendService, corpus *mockCorpusService) *Server {
	s, err := NewServer(&Ports{Recommend: rec, Corpus: corpus})
	if err != nil {
		panic(err)
	}
	return s
}

func results(n int) []domain.RankedResult {
	out := make([]domain.RankedResult, n)
	for i := range out {
		out[i] = domain.RankedResult{
			Record: domain.Record{
				Index:  i,
				Title:  "Result " + string(rune('A'+i)),
				Fields: map[string]string{domain.ColJobCompany: "Acme", domain.ColCourseSite: "Coursera"},
			},
			Similarity: 1 - float64(i)/100,
		}
	}
	return out
}
