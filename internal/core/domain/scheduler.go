package domain

import "time"

// RefreshResult represents the outcome of a background refresh.
type RefreshResult struct {
	// Trigger is what caused the refresh.
	Trigger SyncTrigger

	// StartedAt is when the refresh started.
	StartedAt time.Time

	// EndedAt is when the refresh completed.
	EndedAt time.Time

	// Success indicates whether the refresh completed without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string

	// ItemsIndexed is the number of shadow records written.
	ItemsIndexed int
}
