package domain

import (
	"fmt"
	"time"
)

// IndexBackend selects the FTS store implementation.
type IndexBackend string

// Available index backends.
const (
	// IndexBackendSQLite stores shadow records in SQLite FTS5 tables.
	IndexBackendSQLite IndexBackend = "sqlite"

	// IndexBackendMemory keeps everything in process memory.
	IndexBackendMemory IndexBackend = "memory"

	// IndexBackendBleve indexes shadow records in in-memory bleve indexes
	// while primary records stay in SQLite.
	IndexBackendBleve IndexBackend = "bleve"
)

// IsValid returns true if the backend is recognised.
func (b IndexBackend) IsValid() bool {
	switch b {
	case IndexBackendSQLite, IndexBackendMemory, IndexBackendBleve:
		return true
	default:
		return false
	}
}

// IsPersistent returns true if primary records survive a restart.
func (b IndexBackend) IsPersistent() bool {
	return b == IndexBackendSQLite || b == IndexBackendBleve
}

// String returns the string representation.
func (b IndexBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b IndexBackend) Description() string {
	switch b {
	case IndexBackendSQLite:
		return "SQLite (FTS5 tables)"
	case IndexBackendMemory:
		return "Memory (nothing persisted)"
	case IndexBackendBleve:
		return "Bleve (in-memory index over SQLite)"
	default:
		return unknownDescription
	}
}

// IndexSettings holds index storage configuration.
type IndexSettings struct {
	// Backend is the FTS store implementation.
	Backend IndexBackend
}

// SearchSettings holds query behaviour configuration.
type SearchSettings struct {
	// MaxResults caps the entities returned per content type. Zero means no cap.
	MaxResults int

	// CacheSize is the number of one-shot query results kept in memory.
	CacheSize int
}

// SyncSettings holds synchronizer configuration.
type SyncSettings struct {
	// HistoryLimit is the number of sync runs retained.
	HistoryLimit int
}

// RefreshSettings holds background refresh configuration.
type RefreshSettings struct {
	// Interval between scheduled refreshes. Zero disables the ticker.
	Interval time.Duration

	// RatePerMinute caps how many refreshes may start per minute.
	RatePerMinute int
}

// WatchSettings holds seed file watching configuration.
type WatchSettings struct {
	// SeedFile is the JSON bundle re-imported when it changes.
	SeedFile string
}

// Settings is the complete application configuration.
type Settings struct {
	Index   IndexSettings
	Search  SearchSettings
	Sync    SyncSettings
	Refresh RefreshSettings
	Watch   WatchSettings
}

// DefaultSettings returns sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Index:   IndexSettings{Backend: IndexBackendSQLite},
		Search:  SearchSettings{MaxResults: 0, CacheSize: 128},
		Sync:    SyncSettings{HistoryLimit: 50},
		Refresh: RefreshSettings{Interval: 0, RatePerMinute: 6},
	}
}

// Validate checks the settings for consistency.
func (s Settings) Validate() error {
	if !s.Index.Backend.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedBackend, s.Index.Backend)
	}
	if s.Search.MaxResults < 0 {
		return fmt.Errorf("%w: search.max_results must not be negative", ErrInvalidInput)
	}
	if s.Search.CacheSize < 0 {
		return fmt.Errorf("%w: search.cache_size must not be negative", ErrInvalidInput)
	}
	if s.Sync.HistoryLimit < 1 {
		return fmt.Errorf("%w: sync.history_limit must be at least 1", ErrInvalidInput)
	}
	if s.Refresh.Interval < 0 {
		return fmt.Errorf("%w: refresh.interval must not be negative", ErrInvalidInput)
	}
	if s.Refresh.RatePerMinute < 1 {
		return fmt.Errorf("%w: refresh.rate_per_minute must be at least 1", ErrInvalidInput)
	}
	return nil
}
