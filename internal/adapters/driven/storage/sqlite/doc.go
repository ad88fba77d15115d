// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database file:
//
//   - EntityStore: news_resources and topics primary tables
//   - FtsStore: news_resources_fts and topics_fts FTS5 shadow tables
//   - SyncRunStore: index population history
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.contentsearch/content.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. Every write runs in a transaction, so readers only ever
// see committed states. Committed writes are announced on the change feed.
package sqlite
