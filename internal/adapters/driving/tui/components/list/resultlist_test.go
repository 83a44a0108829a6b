package list

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tristep/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tristep/internal/core/domain"
)

func sampleResults(n int) []domain.RankedResult {
	results := make([]domain.RankedResult, n)
	for i := range results {
		results[i] = domain.RankedResult{
			Record: domain.Record{
				Index: i,
				Title: fmt.Sprintf("Job %d", i+1),
				Fields: map[string]string{
					domain.ColJobCompany: "Acme",
					domain.ColJobCountry: "US",
				},
			},
			Similarity: 1 - float64(i)/100,
		}
	}
	return results
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewResultList(t *testing.T) {
	list := NewResultList(styles.DefaultStyles())

	require.NotNil(t, list)
	assert.Equal(t, 0, list.Selected())
	assert.True(t, list.IsEmpty())
	assert.Nil(t, list.Init())
}

func TestNewResultList_NilStyles(t *testing.T) {
	list := NewResultList(nil)

	require.NotNil(t, list)
	assert.NotNil(t, list.styles)
}

func TestResultList_SetResults(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(domain.CorpusJobs, sampleResults(12))
	list.NextPage()
	list.MoveDown()

	list.SetResults(domain.CorpusCourses, sampleResults(3))

	assert.Equal(t, 3, list.Count())
	assert.Equal(t, domain.CorpusCourses, list.Kind())
	assert.Equal(t, 0, list.Page().Index)
	assert.Equal(t, 0, list.Selected())
}

func TestResultList_Paging(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(domain.CorpusJobs, sampleResults(12))

	page := list.Page()
	assert.Equal(t, 3, page.Count)
	assert.Len(t, page.Items, domain.PageSize)
	assert.False(t, page.HasPrev)

	assert.False(t, list.PrevPage(), "prev is ignored on the first page")
	assert.Equal(t, 0, list.Page().Index)

	assert.True(t, list.NextPage())
	assert.True(t, list.NextPage())
	assert.False(t, list.NextPage(), "next is ignored on the last page")

	last := list.Page()
	assert.Equal(t, 2, last.Index)
	assert.Equal(t, 10, last.Offset)
	assert.Len(t, last.Items, 2)

	assert.True(t, list.PrevPage())
	assert.Equal(t, 1, list.Page().Index)
}

func TestResultList_UpdateKeys(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(domain.CorpusJobs, sampleResults(7))

	list, _ = list.Update(keyMsg("l"))
	assert.Equal(t, 1, list.Page().Index)

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, list.Page().Index, "already on last page")

	list, _ = list.Update(keyMsg("j"))
	assert.Equal(t, 1, list.Selected())

	list, _ = list.Update(keyMsg("j"))
	assert.Equal(t, 1, list.Selected(), "second page has two items")

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, list.Page().Index)
	assert.Equal(t, 0, list.Selected(), "selection resets on page change")

	list, _ = list.Update(keyMsg("h"))
	assert.Equal(t, 0, list.Page().Index)
}

func TestResultList_MoveWithinPage(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(domain.CorpusJobs, sampleResults(12))

	list.MoveUp()
	assert.Equal(t, 0, list.Selected())

	for i := 0; i < 10; i++ {
		list.MoveDown()
	}
	assert.Equal(t, domain.PageSize-1, list.Selected())

	selected := list.SelectedResult()
	require.NotNil(t, selected)
	assert.Equal(t, "Job 5", selected.Record.Title)
}

func TestResultList_SelectedResult_Empty(t *testing.T) {
	list := NewResultList(nil)

	assert.Nil(t, list.SelectedResult())
}

func TestResultList_View(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		list := NewResultList(nil)
		assert.Contains(t, list.View(), "No matches")
	})

	t.Run("first page", func(t *testing.T) {
		list := NewResultList(nil)
		list.SetResults(domain.CorpusJobs, sampleResults(7))

		view := list.View()

		assert.Contains(t, view, "Results (7)")
		assert.Contains(t, view, "Page 1 of 2")
		assert.Contains(t, view, "1. Job 1")
		assert.Contains(t, view, "5. Job 5")
		assert.NotContains(t, view, "Job 6")
		assert.Contains(t, view, "Acme")
		assert.Contains(t, view, "Prev")
		assert.Contains(t, view, "Next")
	})

	t.Run("second page keeps global rank", func(t *testing.T) {
		list := NewResultList(nil)
		list.SetResults(domain.CorpusJobs, sampleResults(7))
		list.NextPage()

		view := list.View()

		assert.Contains(t, view, "6. Job 6")
		assert.Contains(t, view, "Page 2 of 2")
	})
}

func TestDetails(t *testing.T) {
	t.Run("job", func(t *testing.T) {
		result := &domain.RankedResult{Record: domain.Record{Fields: map[string]string{
			domain.ColJobCompany:    "Acme",
			domain.ColJobCity:       "Austin",
			domain.ColJobCountry:    "US",
			domain.ColJobExperience: "Entry level",
			domain.ColJobWorkType:   "Full-time",
			domain.ColJobMinSalary:  "50000",
			domain.ColJobPostingURL: "https://example.com/job/1",
		}}}

		details := Details(domain.CorpusJobs, result)

		require.Len(t, details, 4)
		assert.Equal(t, "Acme · Austin, US", details[0])
		assert.Equal(t, "Entry level · Full-time", details[1])
		assert.Equal(t, "Salary 50000 - Unknown", details[2])
		assert.Equal(t, "https://example.com/job/1", details[3])
	})

	t.Run("course", func(t *testing.T) {
		result := &domain.RankedResult{Record: domain.Record{
			Fields: map[string]string{
				domain.ColCourseSite:     "Coursera",
				domain.ColCourseCategory: "Data Science",
			},
			Rating:  4.6,
			Viewers: 1200,
		}}

		details := Details(domain.CorpusCourses, result)

		require.Len(t, details, 2)
		assert.Equal(t, "Coursera · Data Science / Unknown", details[0])
		assert.Equal(t, "Rating 4.6 · 1200 viewers", details[1])
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "żółw...", truncate("żółwżółwżółw", 7))
}

func TestResultList_Dimensions(t *testing.T) {
	list := NewResultList(nil)
	list.SetDimensions(120, 40)

	assert.Equal(t, 120, list.Width())
	assert.Equal(t, 40, list.Height())
}
