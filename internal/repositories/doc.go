// Package repositories implements SQLite persistence for the fetch history.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [SessionRepository] : Fetch session persistence with channel-based lookups
//   - [PlaylistRepository] : Stored playlist rows with session-scoped queries
//   - [SessionRecorder] : Persists a completed run as one session plus its playlist rows
//
// Sequence numbers provide stable, human-readable ordering (e.g., session #42) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
