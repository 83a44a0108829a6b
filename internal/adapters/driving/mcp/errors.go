// Package mcp provides an MCP (Model Context Protocol) server adapter for TriStep.
// It lets AI assistants request job and course recommendations.
package mcp

import "errors"

// ErrMissingRecommendService is returned when the recommend service is not provided.
var ErrMissingRecommendService = errors.New("mcp: recommend service is required")

// ErrMissingCorpusService is returned when the corpus service is not provided.
var ErrMissingCorpusService = errors.New("mcp: corpus service is required")
