// Package tui provides an interactive terminal user interface for tristep.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/tristep/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Recommend ranks jobs and courses against a profile.
	Recommend driving.RecommendService

	// Corpus reports dataset status and reloads sources.
	Corpus driving.CorpusService

	// Settings supplies the default course ordering. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	recommend driving.RecommendService,
	corpus driving.CorpusService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Recommend: recommend,
		Corpus:    corpus,
		Settings:  settings,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Recommend == nil {
		return ErrMissingRecommendService
	}
	if p.Corpus == nil {
		return ErrMissingCorpusService
	}
	return nil
}
