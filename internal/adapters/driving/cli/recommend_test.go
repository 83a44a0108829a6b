package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tristep/internal/core/domain"
)

func TestJobsCmd_Use(t *testing.T) {
	assert.Equal(t, "jobs <profile>", jobsCmd.Use)
	assert.Equal(t, "courses <profile>", coursesCmd.Use)
}

func TestJobsCmd_Flags(t *testing.T) {
	for _, name := range []string{"experience", "work-type", "company", "country", "page", "json"} {
		assert.NotNil(t, jobsCmd.Flags().Lookup(name), "jobs should have --%s", name)
	}
	for _, name := range []string{"site", "category", "subtitle", "blend", "page", "json"} {
		assert.NotNil(t, coursesCmd.Flags().Lookup(name), "courses should have --%s", name)
	}

	page := jobsCmd.Flags().Lookup("page")
	assert.Equal(t, "p", page.Shorthand)
	assert.Equal(t, "1", page.DefValue)
}

func TestJobsCmd_RequiresProfile(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := runCommand(nil, "jobs")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestJobsCmd_NoService(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	recommendService = nil

	_, err := runCommand(nil, "jobs", "python")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "recommend service not configured")
}

func TestJobsCmd_PassesProfileAndFilters(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := runCommand(nil, "jobs", "python", "sql",
		"--experience", "Entry level,Associate",
		"--work-type", "Full-time",
		"--company", "Acme",
		"--country", "US")

	require.NoError(t, err)
	req := ts.recommend.lastJobs
	require.NotNil(t, req)
	assert.Equal(t, "python sql", req.Profile)
	assert.Equal(t, []string{"Entry level", "Associate"}, req.Jobs.ExperienceLevels)
	assert.Equal(t, []string{"Full-time"}, req.Jobs.WorkTypes)
	assert.Equal(t, "Acme", req.Jobs.Company)
	assert.Equal(t, "US", req.Jobs.Country)
}

func TestJobsCmd_FlagsDoNotLeakBetweenRuns(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := runCommand(nil, "jobs", "go", "--work-type", "Contract")
	require.NoError(t, err)

	_, err = runCommand(nil, "jobs", "go")
	require.NoError(t, err)

	assert.Empty(t, ts.recommend.lastJobs.Jobs.WorkTypes)
}

func TestJobsCmd_PrintsFirstPage(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	for i := 0; i < 7; i++ {
		ts.recommend.jobs = append(ts.recommend.jobs, jobResult(fmt.Sprintf("Job %d", i+1), 0.9-float64(i)*0.1))
	}

	out, err := runCommand(nil, "jobs", "data analyst")

	require.NoError(t, err)
	assert.Contains(t, out, `Top job matches for "data analyst" (7 results, page 1 of 2)`)
	assert.Contains(t, out, "[1] Job 1 (0.900)")
	assert.Contains(t, out, "[5] Job 5")
	assert.NotContains(t, out, "Job 6")
	assert.Contains(t, out, "Acme · Austin, US")
	assert.Contains(t, out, "Entry level · Full-time")
	assert.Contains(t, out, "More results: --page 2")
}

func TestJobsCmd_SecondPage(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	for i := 0; i < 7; i++ {
		ts.recommend.jobs = append(ts.recommend.jobs, jobResult(fmt.Sprintf("Job %d", i+1), 0.5))
	}

	out, err := runCommand(nil, "jobs", "data", "-p", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "page 2 of 2")
	assert.Contains(t, out, "[6] Job 6")
	assert.Contains(t, out, "[7] Job 7")
	assert.NotContains(t, out, "Job 1 ")
	assert.NotContains(t, out, "More results")
}

func TestJobsCmd_PageBeyondEndIsClamped(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.recommend.jobs = []domain.RankedResult{jobResult("Only", 0.4)}

	out, err := runCommand(nil, "jobs", "data", "--page", "9")

	require.NoError(t, err)
	assert.Contains(t, out, "page 1 of 1")
	assert.Contains(t, out, "[1] Only")
}

func TestJobsCmd_NoMatches(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(nil, "jobs", "xyzzy")

	require.NoError(t, err)
	assert.Contains(t, out, `No matching jobs found for "xyzzy".`)
}

func TestJobsCmd_ServiceError(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.recommend.err = domain.ErrSourceNotConfigured

	_, err := runCommand(nil, "jobs", "python")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSourceNotConfigured))
	assert.Contains(t, err.Error(), "recommend jobs")
}

func TestJobsCmd_JSONOutput(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.recommend.jobs = []domain.RankedResult{jobResult("Analyst", 0.42)}

	out, err := runCommand(nil, "jobs", "analyst", "--json")
	require.NoError(t, err)

	var got recommendationJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, domain.CorpusJobs, got.Kind)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 1, got.Total)
	require.Len(t, got.Results, 1)
	assert.Equal(t, 1, got.Results[0].Rank)
	assert.Equal(t, "Analyst", got.Results[0].Title)
	assert.InDelta(t, 0.42, got.Results[0].Similarity, 1e-9)
	assert.Equal(t, "Acme", got.Results[0].Fields[domain.ColJobCompany])
}

func TestJobsCmd_JSONOutputEmpty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(nil, "jobs", "nothing", "--json")
	require.NoError(t, err)

	var got recommendationJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 0, got.Total)
	assert.Empty(t, got.Results)
}

func TestCoursesCmd_PassesFilters(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := runCommand(nil, "courses", "machine learning",
		"--site", "Coursera", "--site", "edX",
		"--category", "Data Science",
		"--subtitle", "Spanish")

	require.NoError(t, err)
	req := ts.recommend.lastCourses
	require.NotNil(t, req)
	assert.Equal(t, "machine learning", req.Profile)
	assert.Equal(t, []string{"Coursera", "edX"}, req.Courses.Sites)
	assert.Equal(t, []string{"Data Science"}, req.Courses.Categories)
	assert.Equal(t, "Spanish", req.Courses.Subtitle)
}

func TestCoursesCmd_BlendDefault(t *testing.T) {
	tests := []struct {
		name     string
		setting  bool
		args     []string
		expected bool
	}{
		{"setting off, no flag", false, nil, false},
		{"setting on, no flag", true, nil, true},
		{"setting off, flag on", false, []string{"--blend"}, true},
		{"setting on, flag off", true, []string{"--blend=false"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, cleanup := setupTestServices()
			defer cleanup()
			ts.settings.settings.Ranking.CourseBlend = tt.setting

			args := append([]string{"courses", "excel"}, tt.args...)
			_, err := runCommand(nil, args...)

			require.NoError(t, err)
			require.NotNil(t, ts.recommend.lastCourses)
			assert.Equal(t, tt.expected, ts.recommend.lastCourses.Blend)
		})
	}
}

func TestCoursesCmd_BlendWithoutSettingsService(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	settingsService = nil

	_, err := runCommand(nil, "courses", "excel")

	require.NoError(t, err)
	assert.False(t, ts.recommend.lastCourses.Blend)
}

func TestCoursesCmd_PrintsBlendedDetails(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	r := courseResult("ML", 0.61)
	r.Blended = true
	r.Score = 4.512
	r.Final = 0.875
	ts.recommend.courses = []domain.RankedResult{r}

	out, err := runCommand(nil, "courses", "ml", "--blend")

	require.NoError(t, err)
	assert.Contains(t, out, "Top course matches")
	assert.Contains(t, out, "[1] ML (0.875)")
	assert.Contains(t, out, "Coursera · Data Science / Machine Learning")
	assert.Contains(t, out, "Rating 4.7 from 1200 viewers")
	assert.Contains(t, out, "Similarity 0.610 · weighted rating 4.512")
	assert.Contains(t, out, "https://example.com/ML")
}

func TestDescribe_Job(t *testing.T) {
	r := jobResult("Dev", 0.3)
	r.Record.Fields[domain.ColJobMinSalary] = "50000"
	r.Record.Fields[domain.ColJobPostingURL] = "https://jobs.example.com/1"
	delete(r.Record.Fields, domain.ColJobCity)

	lines := describe(domain.CorpusJobs, &r)

	require.Len(t, lines, 4)
	assert.Equal(t, "Acme · Unknown, US", lines[0])
	assert.Equal(t, "Salary 50000 - Unknown", lines[2])
	assert.Equal(t, "https://jobs.example.com/1", lines[3])
}

func TestDescribe_CourseWithoutURL(t *testing.T) {
	r := courseResult("Stats", 0.3)
	delete(r.Record.Fields, domain.ColCourseURL)

	lines := describe(domain.CorpusCourses, &r)

	require.Len(t, lines, 2)
	assert.False(t, strings.HasPrefix(lines[1], "http"))
}
