// Package models defines domain entities and persistence interfaces for the chanlist CLI.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs passed between the collector, the
// report writer, and the CLI
//   - [PlaylistRecord] : One public playlist enumerated from a channel
//   - [FetchSession] : One collector run against a channel
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [PersistedSession] : A recorded fetch session in the history database
//   - [PersistedPlaylist] : A playlist row belonging to one recorded session
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
