package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tristep/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tristep/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tristep/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/tristep/internal/adapters/driving/tui/views/recommend"
	"github.com/custodia-labs/tristep/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// jobsView ranks job postings.
	jobsView *recommend.View

	// coursesView ranks online courses.
	coursesView *recommend.View

	// statuses is the last corpus status report.
	statuses []domain.CorpusStatus

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		jobsView:    recommend.NewView(s, nil, domain.CorpusJobs, ports.Recommend),
		coursesView: recommend.NewView(s, nil, domain.CorpusCourses, ports.Recommend),
		currentView: messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.jobsView.WithContext(ctx)
	a.coursesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("tristep - Job & Course Recommendations"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewJobs:
			a.jobsView, cmd = a.jobsView.Update(msg)
			return a, cmd

		case messages.ViewCourses:
			a.coursesView, cmd = a.coursesView.Update(msg)
			return a, cmd

		case messages.ViewStatus:
			switch msg.String() {
			case "esc":
				a.currentView = messages.ViewMenu
			case "r":
				return a, a.loadStatus()
			}
			return a, nil

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
			return a, nil
		}
		return a, nil

	case messages.RecommendCompleted:
		if msg.Kind == domain.CorpusCourses {
			a.coursesView, cmd = a.coursesView.Update(msg)
		} else {
			a.jobsView, cmd = a.jobsView.Update(msg)
		}
		a.err = msg.Err
		return a, cmd

	case messages.StatusLoaded:
		a.statuses = msg.Statuses
		a.err = msg.Err
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewJobs:
			a.jobsView.Reset()
			return a, a.jobsView.Init()
		case messages.ViewCourses:
			a.coursesView.Reset()
			a.coursesView.SetBlend(a.defaultBlend())
			return a, a.coursesView.Init()
		case messages.ViewStatus:
			return a, a.loadStatus()
		case messages.ViewMenu, messages.ViewHelp:
			// No initialisation needed
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewJobs:
			a.jobsView, cmd = a.jobsView.Update(msg)
		case messages.ViewCourses:
			a.coursesView, cmd = a.coursesView.Update(msg)
		case messages.ViewMenu, messages.ViewStatus, messages.ViewHelp:
			// Rendered from a.err
		}
		return a, cmd

	case messages.PageChanged:
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewJobs:
		a.jobsView, cmd = a.jobsView.Update(msg)
	case messages.ViewCourses:
		a.coursesView, cmd = a.coursesView.Update(msg)
	case messages.ViewStatus, messages.ViewHelp:
		// Static views
	}
	return a, cmd
}

// defaultBlend reads the configured course ordering, false when unavailable.
func (a *App) defaultBlend() bool {
	if a.ports.Settings == nil {
		return false
	}
	settings, err := a.ports.Settings.Get()
	if err != nil || settings == nil {
		return false
	}
	return settings.Ranking.CourseBlend
}

// loadStatus queries corpus status in the background.
func (a *App) loadStatus() tea.Cmd {
	ctx := a.ctx
	corpus := a.ports.Corpus
	return func() tea.Msg {
		statuses, err := corpus.Status(ctx)
		return messages.StatusLoaded{Statuses: statuses, Err: err}
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewJobs:
		return a.jobsView.View()
	case messages.ViewCourses:
		return a.coursesView.View()
	case messages.ViewStatus:
		return a.viewStatus()
	case messages.ViewHelp:
		return a.viewHelp()
	}
	return ""
}

// viewStatus renders the corpus status report.
func (a *App) viewStatus() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Corpus Status"))
	b.WriteString("\n\n")

	if a.err != nil {
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
		b.WriteString("\n\n")
	}

	if len(a.statuses) == 0 && a.err == nil {
		b.WriteString(a.styles.Muted.Render("Loading..."))
		b.WriteString("\n")
	}

	for _, st := range a.statuses {
		b.WriteString(a.styles.Subtitle.Render(st.Kind.Description()))
		b.WriteString("\n")

		source := "not configured"
		if st.Source.IsConfigured() {
			source = st.Source.Identity()
		}
		fmt.Fprintf(&b, "  Source:  %s\n", source)
		fmt.Fprintf(&b, "  Cached:  %s\n", yesNo(st.Cached))
		fmt.Fprintf(&b, "  Watched: %s\n", yesNo(st.Watched))

		if snap := st.Snapshot; snap != nil {
			fmt.Fprintf(&b, "  Rows:    %d (%d skipped, %d duplicates)\n", snap.Rows, snap.Skipped, snap.Duplicates)
			fmt.Fprintf(&b, "  Terms:   %d\n", snap.Vocabulary)
			fmt.Fprintf(&b, "  Loaded:  %s\n", snap.LoadedAt.Format("2006-01-02 15:04:05"))
		} else {
			b.WriteString(a.styles.Muted.Render("  Never loaded"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render("[r] reload  [esc] back to menu"))
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Recommend:
  (type)      Describe your skills and interests
  enter       Rank the corpus
  ctrl+b      Toggle popularity blend (courses)
  esc         Back to Menu

Results:
  ←/h, →/l    Previous / next page
  j/k, ↑/↓    Navigate results
  n           Edit profile
  esc         Back to Menu

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Statuses returns the last corpus status report.
func (a *App) Statuses() []domain.CorpusStatus {
	return a.statuses
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.jobsView.SetDimensions(width, height)
	a.coursesView.SetDimensions(width, height)
}
