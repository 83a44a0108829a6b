package cli

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driving"
)

// mockRecommendService records the last request of each kind.
type mockRecommendService struct {
	jobs    []domain.RankedResult
	courses []domain.RankedResult
	err     error

	lastJobs    *domain.RecommendRequest
	lastCourses *domain.RecommendRequest
}

func (m *mockRecommendService) RecommendJobs(_ context.Context, req domain.RecommendRequest) (*domain.Recommendation, error) {
	m.lastJobs = &req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Recommendation{Kind: domain.CorpusJobs, Results: m.jobs}, nil
}

func (m *mockRecommendService) RecommendCourses(_ context.Context, req domain.RecommendRequest) (*domain.Recommendation, error) {
	m.lastCourses = &req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Recommendation{Kind: domain.CorpusCourses, Results: m.courses}, nil
}

type mockCorpusService struct {
	statuses  []domain.CorpusStatus
	facets    *domain.FacetOptions
	err       error
	refreshed []domain.CorpusKind
}

func (m *mockCorpusService) Load(_ context.Context, kind domain.CorpusKind) (*domain.Corpus, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Corpus{Kind: kind}, nil
}

func (m *mockCorpusService) Refresh(_ context.Context, kind domain.CorpusKind) (*domain.Corpus, error) {
	m.refreshed = append(m.refreshed, kind)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Corpus{
		Kind:       kind,
		Records:    make([]domain.Record, 3),
		Skipped:    1,
		Duplicates: 2,
	}, nil
}

func (m *mockCorpusService) Status(_ context.Context) ([]domain.CorpusStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.statuses, nil
}

func (m *mockCorpusService) Facets(_ context.Context, kind domain.CorpusKind) (*domain.FacetOptions, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.facets != nil {
		return m.facets, nil
	}
	return &domain.FacetOptions{Kind: kind}, nil
}

type mockReviewService struct {
	sheet    *domain.ReviewSheet
	outcomes map[int]domain.ReviewOutcome
	history  []domain.ReviewOutcome
	err      error

	listed    *domain.ReviewPeriod
	decided   []domain.Decision
	applied   [][]domain.Decision
	logKind   domain.CorpusKind
	logLimit  int
	decideHit int
}

func (m *mockReviewService) outcome(kind domain.CorpusKind, d domain.Decision) domain.ReviewOutcome {
	if o, ok := m.outcomes[d.Row]; ok {
		return o
	}
	return domain.ReviewOutcome{Kind: kind, Row: d.Row, Status: d.Status, StatusUpdated: true}
}

func (m *mockReviewService) List(_ context.Context, kind domain.CorpusKind, period domain.ReviewPeriod) (*domain.ReviewSheet, error) {
	m.listed = &period
	if m.err != nil {
		return nil, m.err
	}
	if m.sheet != nil {
		return m.sheet, nil
	}
	return &domain.ReviewSheet{Kind: kind, Period: period}, nil
}

func (m *mockReviewService) Decide(_ context.Context, kind domain.CorpusKind, row int, status domain.ReviewStatus) (*domain.ReviewOutcome, error) {
	m.decideHit++
	d := domain.Decision{Row: row, Status: status}
	m.decided = append(m.decided, d)
	if m.err != nil {
		return nil, m.err
	}
	o := m.outcome(kind, d)
	return &o, nil
}

func (m *mockReviewService) Apply(_ context.Context, kind domain.CorpusKind, decisions []domain.Decision) ([]domain.ReviewOutcome, error) {
	m.applied = append(m.applied, decisions)
	if m.err != nil {
		return nil, m.err
	}
	outcomes := make([]domain.ReviewOutcome, 0, len(decisions))
	for _, d := range decisions {
		outcomes = append(outcomes, m.outcome(kind, d))
	}
	return outcomes, nil
}

func (m *mockReviewService) Log(_ context.Context, kind domain.CorpusKind, limit int) ([]domain.ReviewOutcome, error) {
	m.logKind = kind
	m.logLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.history, nil
}

type mockSettingsService struct {
	settings    domain.AppSettings
	validateErr error
	err         error

	saved   *domain.AppSettings
	source  *domain.SourceRef
	sheet   *domain.SheetSettings
	mail    *domain.MailSettings
	blendOn *bool
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.saved = settings
	return m.err
}

func (m *mockSettingsService) SetCorpusSource(_ domain.CorpusKind, ref domain.SourceRef) error {
	m.source = &ref
	return m.err
}

func (m *mockSettingsService) SetReviewSheet(_ domain.CorpusKind, sheet domain.SheetSettings) error {
	m.sheet = &sheet
	return m.err
}

func (m *mockSettingsService) SetMail(mail domain.MailSettings) error {
	m.mail = &mail
	return m.err
}

func (m *mockSettingsService) SetCourseBlend(enabled bool) error {
	m.blendOn = &enabled
	return m.err
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

var (
	_ driving.RecommendService = (*mockRecommendService)(nil)
	_ driving.CorpusService    = (*mockCorpusService)(nil)
	_ driving.ReviewService    = (*mockReviewService)(nil)
	_ driving.SettingsService  = (*mockSettingsService)(nil)
)

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	recommend *mockRecommendService
	corpus    *mockCorpusService
	review    *mockReviewService
	settings  *mockSettingsService
}

// setupTestServices installs fresh mocks and returns a cleanup func that
// restores the previous services and resets every flag.
func setupTestServices() (*testServices, func()) {
	color.NoColor = true

	prev := Services{
		Recommend: recommendService,
		Corpus:    corpusService,
		Review:    reviewService,
		Settings:  settingsService,
	}

	ts := &testServices{
		recommend: &mockRecommendService{},
		corpus:    &mockCorpusService{},
		review:    &mockReviewService{},
		settings:  &mockSettingsService{settings: domain.DefaultAppSettings()},
	}
	SetServices(Services{
		Recommend: ts.recommend,
		Corpus:    ts.corpus,
		Review:    ts.review,
		Settings:  ts.settings,
	})

	return ts, func() {
		SetServices(prev)
		resetFlags(rootCmd)
	}
}

// runCommand executes rootCmd with args and returns its combined output.
func runCommand(stdin io.Reader, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag of cmd and its children to its default.
// Cobra keeps parsed values between executions of the same tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func jobResult(title string, similarity float64) domain.RankedResult {
	return domain.RankedResult{
		Record: domain.Record{
			Title: title,
			Fields: map[string]string{
				domain.ColJobTitle:      title,
				domain.ColJobCompany:    "Acme",
				domain.ColJobCity:       "Austin",
				domain.ColJobCountry:    "US",
				domain.ColJobExperience: "Entry level",
				domain.ColJobWorkType:   "Full-time",
			},
		},
		Similarity: similarity,
	}
}

func courseResult(title string, similarity float64) domain.RankedResult {
	return domain.RankedResult{
		Record: domain.Record{
			Title: title,
			Fields: map[string]string{
				domain.ColCourseTitle:       title,
				domain.ColCourseSite:        "Coursera",
				domain.ColCourseCategory:    "Data Science",
				domain.ColCourseSubCategory: "Machine Learning",
				domain.ColCourseURL:         "https://example.com/" + title,
			},
			Rating:  4.7,
			Viewers: 1200,
		},
		Similarity: similarity,
	}
}

var fixedTime = time.Date(2024, time.March, 14, 9, 5, 0, 0, time.UTC)
