package repositories

import (
	"database/sql"
	"fmt"

	"chanlist/internal/models"
)

// SessionRecorder persists completed fetch runs to the history database.
//
// A run becomes one fetch_sessions row plus one playlists row per collected
// record, all linked by the session id the collector assigned.
type SessionRecorder struct {
	sessions  *SessionRepository
	playlists *PlaylistRepository
}

// NewSessionRecorder creates a SessionRecorder backed by the given database connection
func NewSessionRecorder(db *sql.DB) *SessionRecorder {
	return &SessionRecorder{
		sessions:  NewSessionRepository(db),
		playlists: NewPlaylistRepository(db),
	}
}

// Record stores a session and its playlist records, returning the persisted session
func (r *SessionRecorder) Record(session models.FetchSession, records []models.PlaylistRecord) (*models.PersistedSession, error) {
	persisted := models.NewPersistedSession(0, session)
	if err := r.sessions.Create(persisted); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	for _, record := range records {
		row := models.NewPersistedPlaylist(0, persisted.ID(), record)
		if err := r.playlists.Create(row); err != nil {
			return nil, fmt.Errorf("failed to record playlist %s: %w", record.ID, err)
		}
	}

	return persisted, nil
}

// Clear soft-deletes all stored sessions and their playlist rows,
// returning the number of sessions cleared
func (r *SessionRecorder) Clear() (int, error) {
	if _, err := r.playlists.DeleteAll(); err != nil {
		return 0, err
	}
	return r.sessions.DeleteAll()
}
