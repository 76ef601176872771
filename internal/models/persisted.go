package models

import (
	"fmt"
	"strings"
	"time"
)

// PersistedSession is a database-backed fetch session with lifecycle metadata.
//
// The row id doubles as the session id: when the wrapped [FetchSession] already carries
// an id the repository keeps it, so history lookups use the same identifier the
// collector reported.
type PersistedSession struct {
	id        string
	sequence  int
	session   FetchSession
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPersistedSession wraps a fetch session for persistence.
// Sequence 0 means "assign on create".
func NewPersistedSession(sequence int, session FetchSession) *PersistedSession {
	now := time.Now()
	return &PersistedSession{
		id:        session.ID,
		sequence:  sequence,
		session:   session,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *PersistedSession) ID() string            { return s.id }
func (s *PersistedSession) Sequence() int         { return s.sequence }
func (s *PersistedSession) Session() FetchSession { return s.session }
func (s *PersistedSession) ChannelURL() string    { return s.session.ChannelURL }
func (s *PersistedSession) Strategy() string      { return s.session.Strategy }
func (s *PersistedSession) Detailed() bool        { return s.session.Detailed }
func (s *PersistedSession) PlaylistCount() int    { return s.session.PlaylistCount }
func (s *PersistedSession) OutputPath() string    { return s.session.OutputPath }
func (s *PersistedSession) StartedAt() time.Time  { return s.session.StartedAt }
func (s *PersistedSession) CreatedAt() time.Time  { return s.createdAt }
func (s *PersistedSession) UpdatedAt() time.Time  { return s.updatedAt }
func (s *PersistedSession) DeletedAt() *time.Time { return s.deletedAt }

func (s *PersistedSession) SetID(id string) {
	s.id = id
	s.session.ID = id
}
func (s *PersistedSession) SetSequence(sequence int)       { s.sequence = sequence }
func (s *PersistedSession) SetUpdatedAt(t time.Time)       { s.updatedAt = t }
func (s *PersistedSession) SetDeletedAt(t *time.Time)      { s.deletedAt = t }
func (s *PersistedSession) SetPlaylistCount(count int)     { s.session.PlaylistCount = count }
func (s *PersistedSession) SetOutputPath(path string)      { s.session.OutputPath = path }
func (s *PersistedSession) SetStartedAt(started time.Time) { s.session.StartedAt = started }

// Validate checks the wrapped session data.
func (s *PersistedSession) Validate() error {
	return s.session.Validate()
}

// PersistedPlaylist is a database-backed playlist row belonging to one session.
type PersistedPlaylist struct {
	id        string
	sequence  int
	sessionID string
	record    PlaylistRecord
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPersistedPlaylist wraps a playlist record for persistence under a session.
// Sequence 0 means "assign on create".
func NewPersistedPlaylist(sequence int, sessionID string, record PlaylistRecord) *PersistedPlaylist {
	now := time.Now()
	return &PersistedPlaylist{
		sequence:  sequence,
		sessionID: sessionID,
		record:    record,
		createdAt: now,
		updatedAt: now,
	}
}

func (p *PersistedPlaylist) ID() string             { return p.id }
func (p *PersistedPlaylist) Sequence() int          { return p.sequence }
func (p *PersistedPlaylist) SessionID() string      { return p.sessionID }
func (p *PersistedPlaylist) Record() PlaylistRecord { return p.record }
func (p *PersistedPlaylist) PlaylistID() string     { return p.record.ID }
func (p *PersistedPlaylist) Title() string          { return p.record.Title }
func (p *PersistedPlaylist) URL() string            { return p.record.URL }
func (p *PersistedPlaylist) VideoCount() int        { return p.record.VideoCount }
func (p *PersistedPlaylist) Uploader() string       { return p.record.Uploader }
func (p *PersistedPlaylist) CreatedAt() time.Time   { return p.createdAt }
func (p *PersistedPlaylist) UpdatedAt() time.Time   { return p.updatedAt }
func (p *PersistedPlaylist) DeletedAt() *time.Time  { return p.deletedAt }

func (p *PersistedPlaylist) SetID(id string)           { p.id = id }
func (p *PersistedPlaylist) SetSequence(sequence int)  { p.sequence = sequence }
func (p *PersistedPlaylist) SetUpdatedAt(t time.Time)  { p.updatedAt = t }
func (p *PersistedPlaylist) SetDeletedAt(t *time.Time) { p.deletedAt = t }

// Validate checks that the row belongs to a session and names a playlist.
func (p *PersistedPlaylist) Validate() error {
	if strings.TrimSpace(p.sessionID) == "" {
		return fmt.Errorf("persisted playlist requires a session id")
	}
	if strings.TrimSpace(p.record.ID) == "" {
		return fmt.Errorf("persisted playlist requires a playlist id")
	}
	if p.record.VideoCount < 0 {
		return fmt.Errorf("persisted playlist video count cannot be negative")
	}
	return nil
}
