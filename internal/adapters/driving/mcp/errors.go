// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants query the content index and trigger population.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingSyncService is returned when the synchronizer is not provided.
var ErrMissingSyncService = errors.New("mcp: sync service is required")
