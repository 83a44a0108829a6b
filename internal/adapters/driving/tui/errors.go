package tui

import "errors"

// ErrMissingRecommendService is returned when the recommend service is not provided.
var ErrMissingRecommendService = errors.New("tui: recommend service is required")

// ErrMissingCorpusService is returned when the corpus service is not provided.
var ErrMissingCorpusService = errors.New("tui: corpus service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
