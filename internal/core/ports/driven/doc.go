// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EntityStore: primary store for one content type (sqlite, memory)
//   - FtsStore: FTS shadow store for one content type (sqlite, memory, bleve)
//   - ChangeFeed: committed-write notifications driving live queries
//   - SyncRunStore: history of index populations
//   - ConfigStore: application configuration (TOML)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
