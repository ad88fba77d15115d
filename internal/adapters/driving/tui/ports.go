// Package tui provides an interactive live search screen.
// Results refresh on their own whenever the index changes.
package tui

import (
	"github.com/custodia-labs/contentsearch/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI depends on.
type Ports struct {
	// Search answers and streams queries.
	Search driving.SearchContentsService

	// Sync rebuilds the index on demand.
	Sync driving.FtsSynchronizer
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Sync == nil {
		return ErrMissingSynchronizer
	}
	return nil
}
