// Package messages defines the tea.Msg types exchanged by the TUI.
package messages

import "github.com/custodia-labs/contentsearch/internal/core/domain"

// ResultsUpdated carries a new emission of the live search stream.
// Generation identifies the query the stream was opened for, so
// emissions from a superseded query can be dropped.
type ResultsUpdated struct {
	Generation uint64
	Result     domain.SearchResult
}

// SearchFailed reports that the live search stream ended with an error.
type SearchFailed struct {
	Generation uint64
	Err        error
}

// StreamClosed reports that a stream ended without an error.
type StreamClosed struct {
	Generation uint64
}

// CountUpdated carries a new emission of the record count stream.
type CountUpdated struct {
	Count int
}

// CountFailed reports that the record count stream ended with an error.
type CountFailed struct {
	Err error
}

// PopulateCompleted reports the end of a manual index population.
type PopulateCompleted struct {
	Run *domain.SyncRun
	Err error
}
