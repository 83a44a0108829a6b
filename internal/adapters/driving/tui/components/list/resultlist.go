// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tristep/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tristep/internal/core/domain"
)

// ResultList displays ranked results one page at a time.
type ResultList struct {
	kind     domain.CorpusKind
	results  []domain.RankedResult
	page     int
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		kind:   domain.CorpusJobs,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
// Paging past either end is ignored.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "left", "h":
			r.PrevPage()
		case "right", "l":
			r.NextPage()
		}
	}
	return r, nil
}

// View renders the current page.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No matches")
	}

	page := r.Page()
	lines := make([]string, 0, len(page.Items)*4+4)

	header := r.styles.Subtitle.Render(
		fmt.Sprintf("Results (%d) · Page %d of %d", page.Total, page.Number(), page.Count))
	lines = append(lines, header, "")

	for i := range page.Items {
		lines = append(lines, r.renderResult(page.Offset+i, i == r.selected, &page.Items[i]))
	}

	lines = append(lines, "", r.renderNav(page))
	return strings.Join(lines, "\n")
}

// renderNav draws the Prev/Next controls, muted when unavailable.
func (r *ResultList) renderNav(page domain.Page) string {
	nav := func(label string, enabled bool) string {
		if enabled {
			return r.styles.NavActive.Render(label)
		}
		return r.styles.NavDisabled.Render(label)
	}
	return nav("← Prev", page.HasPrev) + "   " + nav("Next →", page.HasNext)
}

func (r *ResultList) renderResult(rank int, selected bool, result *domain.RankedResult) string {
	indicator := "  "
	if selected {
		indicator = "> "
	}

	maxTitleLen := r.width - 20
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title := fmt.Sprintf("%d. %s", rank+1, truncate(result.Record.Title, maxTitleLen-4))
	score := fmt.Sprintf("%.3f", result.RankScore())

	var titleLine string
	if selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxTitleLen, title, score))
	} else {
		titleLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxTitleLen, title)) +
			r.styles.Score.Render(score)
	}

	maxDetailLen := r.width - 6
	if maxDetailLen < 20 {
		maxDetailLen = 20
	}

	details := Details(r.kind, result)
	lines := []string{titleLine}
	for _, d := range details {
		lines = append(lines, r.styles.Muted.Render("    "+truncate(d, maxDetailLen)))
	}
	return strings.Join(lines, "\n")
}

// Details returns the secondary lines shown under a result title.
func Details(kind domain.CorpusKind, result *domain.RankedResult) []string {
	rec := result.Record
	var details []string

	switch kind {
	case domain.CorpusCourses:
		details = append(details,
			fmt.Sprintf("%s · %s / %s", rec.Field(domain.ColCourseSite),
				rec.Field(domain.ColCourseCategory), rec.Field(domain.ColCourseSubCategory)),
			fmt.Sprintf("Rating %.1f · %d viewers", rec.Rating, rec.Viewers))
		if url := rec.RawField(domain.ColCourseURL); url != "" {
			details = append(details, url)
		}
	default:
		details = append(details,
			fmt.Sprintf("%s · %s, %s", rec.Field(domain.ColJobCompany),
				rec.Field(domain.ColJobCity), rec.Field(domain.ColJobCountry)),
			fmt.Sprintf("%s · %s", rec.Field(domain.ColJobExperience), rec.Field(domain.ColJobWorkType)))
		if lo, hi := rec.RawField(domain.ColJobMinSalary), rec.RawField(domain.ColJobMaxSalary); lo != "" || hi != "" {
			details = append(details, fmt.Sprintf("Salary %s - %s", rec.Field(domain.ColJobMinSalary),
				rec.Field(domain.ColJobMaxSalary)))
		}
		if url := rec.RawField(domain.ColJobPostingURL); url != "" {
			details = append(details, url)
		}
	}

	return details
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// SetResults replaces the results and returns to the first page.
func (r *ResultList) SetResults(kind domain.CorpusKind, results []domain.RankedResult) {
	r.kind = kind
	r.results = results
	r.page = 0
	r.selected = 0
}

// Results returns every result across all pages.
func (r *ResultList) Results() []domain.RankedResult {
	return r.results
}

// Kind returns the corpus kind of the current results.
func (r *ResultList) Kind() domain.CorpusKind {
	return r.kind
}

// Page returns the visible page.
func (r *ResultList) Page() domain.Page {
	return domain.Paginate(r.results, r.page)
}

// PrevPage moves to the previous page. It reports false on the first page.
func (r *ResultList) PrevPage() bool {
	if !r.Page().HasPrev {
		return false
	}
	r.page--
	r.selected = 0
	return true
}

// NextPage moves to the next page. It reports false on the last page.
func (r *ResultList) NextPage() bool {
	if !r.Page().HasNext {
		return false
	}
	r.page++
	r.selected = 0
	return true
}

// Selected returns the index of the selected result within the page.
func (r *ResultList) Selected() int {
	return r.selected
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.RankedResult {
	page := r.Page()
	if r.selected < 0 || r.selected >= len(page.Items) {
		return nil
	}
	return &page.Items[r.selected]
}

// MoveUp moves selection up within the page.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down within the page.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.Page().Items)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results across all pages.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
