package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPartialSync indicates at least one content type failed to index.
	ErrPartialSync = errors.New("partial sync")

	// ErrSyncInProgress indicates a sync is already running.
	ErrSyncInProgress = errors.New("sync in progress")

	// ErrUnsupportedBackend indicates an unknown index backend was configured.
	ErrUnsupportedBackend = errors.New("unsupported backend")

	// ErrLocked indicates the data directory is held by another process.
	ErrLocked = errors.New("data directory locked")
)

// PartialSyncError reports the content types that failed during one
// population. Types not listed were indexed successfully.
type PartialSyncError struct {
	Failed map[ContentType]error
}

// Error implements error.
func (e *PartialSyncError) Error() string {
	types := e.Types()
	parts := make([]string, 0, len(types))
	for _, ct := range types {
		parts = append(parts, fmt.Sprintf("%s: %v", ct, e.Failed[ct]))
	}
	return fmt.Sprintf("%s: %s", ErrPartialSync, strings.Join(parts, "; "))
}

// Unwrap exposes ErrPartialSync and every per-type cause.
func (e *PartialSyncError) Unwrap() []error {
	errs := []error{ErrPartialSync}
	for _, ct := range e.Types() {
		errs = append(errs, e.Failed[ct])
	}
	return errs
}

// Types returns the failed content types sorted by name.
func (e *PartialSyncError) Types() []ContentType {
	types := make([]ContentType, 0, len(e.Failed))
	for ct := range e.Failed {
		types = append(types, ct)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
