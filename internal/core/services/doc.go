// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The Synchronizer rebuilds FTS shadow stores from primary stores and the
// SearchService answers queries over them. Both work through the
// ContentIndexes registry, which owns the per-type write locks.
package services
