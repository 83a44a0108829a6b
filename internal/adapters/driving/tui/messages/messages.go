// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/tristep/internal/core/domain"
)

// ProfileChanged is sent when the profile input changes.
type ProfileChanged struct {
	Profile string
}

// RecommendRequested is a command to rank a corpus against a profile.
type RecommendRequested struct {
	Kind    domain.CorpusKind
	Request domain.RecommendRequest
}

// RecommendCompleted carries ranked results back to the model.
type RecommendCompleted struct {
	Kind           domain.CorpusKind
	Recommendation *domain.Recommendation
	Err            error
}

// PageChanged is sent when the visible results page moves.
type PageChanged struct {
	Page domain.Page
}

// StatusLoaded carries corpus status from the service.
type StatusLoaded struct {
	Statuses []domain.CorpusStatus
	Err      error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewJobs is the job recommendation view.
	ViewJobs
	// ViewCourses is the course recommendation view.
	ViewCourses
	// ViewStatus shows corpus cache state.
	ViewStatus
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewJobs:
		return "jobs"
	case ViewCourses:
		return "courses"
	case ViewStatus:
		return "status"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
