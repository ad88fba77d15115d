package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingSynchronizer is returned when the synchronizer is not provided.
var ErrMissingSynchronizer = errors.New("tui: synchronizer is required")
