package mcp

import (
	"github.com/custodia-labs/contentsearch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search answers queries and counts.
	Search driving.SearchContentsService

	// Sync rebuilds the index.
	Sync driving.FtsSynchronizer

	// Content lists primary store contents. Optional.
	Content driving.ContentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Sync == nil {
		return ErrMissingSyncService
	}
	return nil
}
