// Package recommend provides the profile input and paged results view for
// job and course recommendations.
package recommend

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tristep/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/tristep/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/tristep/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/tristep/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tristep/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tristep/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tristep/internal/core/domain"
	"github.com/custodia-labs/tristep/internal/core/ports/driving"
)

// View represents the recommendation view with profile input, paged
// results and status bar. One View serves a single corpus kind.
type View struct {
	kind      domain.CorpusKind
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.ProfileInput
	list      *list.ResultList
	statusbar *status.Bar

	service driving.RecommendService
	ctx     context.Context

	jobFilters    domain.JobFilters
	courseFilters domain.CourseFilters
	blend         bool

	width      int
	height     int
	ready      bool
	ranked     bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (paging)
}

// NewView creates a recommendation view for kind.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	kind domain.CorpusKind,
	service driving.RecommendService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		kind:       kind,
		styles:     s,
		keymap:     km,
		input:      input.NewProfileInput(s),
		list:       list.NewResultList(s),
		statusbar:  status.NewBar(s, km),
		service:    service,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
	v.list.SetResults(kind, nil)
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the recommend view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RecommendCompleted:
		if msg.Kind == v.kind {
			v.handleCompleted(msg)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.kind == domain.CorpusCourses && keymap.Matches(msg.String(), v.keymap.Blend) {
		v.blend = !v.blend
		return v, nil
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			return v.submit()
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Prev):
		if v.list.PrevPage() {
			return v, v.pageChanged()
		}
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Next):
		if v.list.NextPage() {
			return v, v.pageChanged()
		}
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.NewSearch):
		v.focusInput = true
		return v, v.input.Focus()
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// submit ranks the current profile. An empty profile is ignored.
func (v *View) submit() (*View, tea.Cmd) {
	profile := strings.TrimSpace(v.input.Value())
	if profile == "" {
		return v, nil
	}

	v.err = nil
	v.statusbar.SetState(status.StateRanking)
	v.statusbar.SetMessage("")
	v.focusInput = false
	v.input.Blur()

	return v, v.performRecommend(v.Request())
}

func (v *View) pageChanged() tea.Cmd {
	page := v.list.Page()
	v.statusbar.SetPage(page.Number(), page.Count)
	return func() tea.Msg {
		return messages.PageChanged{Page: page}
	}
}

// Request builds the request for the current profile, filters and ordering.
func (v *View) Request() domain.RecommendRequest {
	return domain.RecommendRequest{
		Profile: strings.TrimSpace(v.input.Value()),
		Jobs:    v.jobFilters,
		Courses: v.courseFilters,
		Blend:   v.blend,
	}
}

// performRecommend calls the service for the view's corpus kind.
func (v *View) performRecommend(req domain.RecommendRequest) tea.Cmd {
	kind := v.kind
	return func() tea.Msg {
		if v.service == nil {
			return messages.ErrorOccurred{Err: ErrNoRecommendService}
		}

		var (
			rec *domain.Recommendation
			err error
		)
		if kind == domain.CorpusCourses {
			rec, err = v.service.RecommendCourses(v.ctx, req)
		} else {
			rec, err = v.service.RecommendJobs(v.ctx, req)
		}
		return messages.RecommendCompleted{Kind: kind, Recommendation: rec, Err: err}
	}
}

// handleCompleted processes a ranking outcome.
func (v *View) handleCompleted(msg messages.RecommendCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.ranked = true
	var results []domain.RankedResult
	if msg.Recommendation != nil {
		results = msg.Recommendation.Results
	}
	v.list.SetResults(v.kind, results)

	page := v.list.Page()
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(results))
	v.statusbar.SetPage(page.Number(), page.Count)
	if len(results) == 0 {
		v.statusbar.SetMessage(fmt.Sprintf("No matching %s found", v.kind))
	}

	v.focusInput = false
	v.input.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
	v.focusInput = true
	v.input.Focus()
}

// View renders the recommend view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render(v.title()), "")
	sections = append(sections, v.input.View())

	if v.kind == domain.CorpusCourses {
		ordering := "similarity"
		if v.blend {
			ordering = "similarity + popularity"
		}
		hint := v.keymap.Blend.Help().Key
		sections = append(sections, v.styles.Muted.Render(fmt.Sprintf("Ordering: %s (%s to toggle)", ordering, hint)))
	}
	sections = append(sections, "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.ranked {
		sections = append(sections, v.list.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) title() string {
	if v.kind == domain.CorpusCourses {
		return "Course Recommendations"
	}
	return "Job Recommendations"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // Reserve space for header, input, status
	v.statusbar.SetWidth(width)
}

// SetJobFilters sets the filters applied to job requests.
func (v *View) SetJobFilters(f domain.JobFilters) {
	v.jobFilters = f
}

// SetCourseFilters sets the filters applied to course requests.
func (v *View) SetCourseFilters(f domain.CourseFilters) {
	v.courseFilters = f
}

// SetBlend selects the popularity-blended course ordering.
func (v *View) SetBlend(blend bool) {
	v.blend = blend
}

// Blend returns whether blended ordering is selected.
func (v *View) Blend() bool {
	return v.blend
}

// Kind returns the corpus kind this view ranks.
func (v *View) Kind() domain.CorpusKind {
	return v.kind
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Profile returns the current profile text.
func (v *View) Profile() string {
	return v.input.Value()
}

// SetProfile sets the profile text.
func (v *View) SetProfile(profile string) {
	v.input.SetValue(profile)
}

// Results returns every ranked result across pages.
func (v *View) Results() []domain.RankedResult {
	return v.list.Results()
}

// Page returns the visible results page.
func (v *View) Page() domain.Page {
	return v.list.Page()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.RankedResult {
	return v.list.SelectedResult()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset returns the view to input mode with no results.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(v.kind, nil)
	v.ranked = false
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
