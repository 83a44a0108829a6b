package recommend

import "errors"

// Error definitions for the recommend view.
var (
	// ErrNoRecommendService indicates that no recommend service was provided.
	ErrNoRecommendService = errors.New("recommend service is required")
)
