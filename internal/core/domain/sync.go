package domain

import "time"

// SyncTrigger records what started an index population.
type SyncTrigger string

// Known sync triggers.
const (
	SyncTriggerManual    SyncTrigger = "manual"
	SyncTriggerScheduled SyncTrigger = "scheduled"
	SyncTriggerWatch     SyncTrigger = "watch"
	SyncTriggerImport    SyncTrigger = "import"

	// SyncTriggerStartup rebuilds a process-local index when it is opened.
	// Such runs are not added to the persisted history.
	SyncTriggerStartup SyncTrigger = "startup"
)

// Persisted reports whether runs with this trigger belong in the history.
func (t SyncTrigger) Persisted() bool {
	return t != SyncTriggerStartup
}

// String returns the string representation.
func (t SyncTrigger) String() string {
	return string(t)
}

// SyncRun is the recorded outcome of one PopulateFtsData call.
type SyncRun struct {
	// ID is a unique identifier for the run.
	ID string

	// Trigger is what started the run.
	Trigger SyncTrigger

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the last content type completed.
	FinishedAt time.Time

	// Counts holds the number of shadow records written per content type.
	Counts map[ContentType]int

	// Failures holds the error message per failed content type.
	Failures map[ContentType]string
}

// Succeeded returns true if every content type was indexed.
func (r SyncRun) Succeeded() bool {
	return len(r.Failures) == 0
}

// Duration returns how long the run took.
func (r SyncRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Total returns the number of shadow records written across all types.
func (r SyncRun) Total() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// SyncStatus is a snapshot of the synchronizer state.
type SyncStatus struct {
	// Running is true while a population is in flight.
	Running bool

	// LastRun is the most recently completed run, if any.
	LastRun *SyncRun
}
