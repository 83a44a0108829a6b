package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingRecommendService,
		ErrMissingCorpusService,
		ErrInvalidPorts,
	}

	// Ensure all errors are unique
	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingRecommendService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingRecommendService.Error(), "recommend service")
}

func TestErrMissingCorpusService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingCorpusService.Error(), "corpus service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
