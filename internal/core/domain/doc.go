// Package domain defines the core business entities for contentsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - NewsResource, Topic: canonical entity records held by primary stores
//   - NewsResourceFts, TopicFts: denormalised shadow records held by FTS stores
//   - SearchResult: the aggregated per-type answer to a query
//   - SyncRun: the outcome of one index population
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
