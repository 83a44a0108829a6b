package mcp

import (
	"github.com/custodia-labs/tristep/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Recommend ranks jobs and courses.
	Recommend driving.RecommendService

	// Corpus provides facets and load status.
	Corpus driving.CorpusService

	// Settings supplies the default course ordering. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Recommend == nil {
		return ErrMissingRecommendService
	}
	if p.Corpus == nil {
		return ErrMissingCorpusService
	}
	return nil
}
