package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"chanlist/internal/models"
	"chanlist/internal/shared"
)

// SessionRepository implements models.Repository[*models.PersistedSession] for fetch history.
//
// Handles session CRUD operations with soft delete support and channel-based lookups.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new fetch session into the database with a generated sequence.
//
// When the wrapped session already carries an id (the collector assigns one per run)
// that id becomes the row id, so history lookups match the id the run reported.
func (r *SessionRepository) Create(session *models.PersistedSession) error {
	sequence, err := NextSequence(r.db, "fetch_sessions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	session.SetSequence(sequence)

	id := session.ID()
	if id == "" {
		id = shared.GenerateID()
		session.SetID(id)
	}

	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO fetch_sessions (id, sequence, channel_url, strategy, detailed, playlist_count, output_path, started_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		session.ChannelURL(),
		session.Strategy(),
		session.Detailed(),
		session.PlaylistCount(),
		session.OutputPath(),
		session.StartedAt(),
		session.CreatedAt(),
		session.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// Get retrieves a session by ID, excluding soft-deleted sessions
func (r *SessionRepository) Get(id string) (*models.PersistedSession, error) {
	query := `
		SELECT id, sequence, channel_url, strategy, detailed, playlist_count, output_path, started_at, created_at, updated_at, deleted_at
		FROM fetch_sessions
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing session in the database
func (r *SessionRepository) Update(session *models.PersistedSession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	session.SetUpdatedAt(now)

	query := `
		UPDATE fetch_sessions
		SET strategy = ?, playlist_count = ?, output_path = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		session.Strategy(),
		session.PlaylistCount(),
		session.OutputPath(),
		now,
		session.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSessionNotFound, session.ID())
	}

	return nil
}

// Delete soft-deletes a session by ID
func (r *SessionRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE fetch_sessions
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSessionNotFound, id)
	}

	return nil
}

// DeleteAll soft-deletes every stored session and returns the number affected
func (r *SessionRepository) DeleteAll() (int, error) {
	query := `
		UPDATE fetch_sessions
		SET deleted_at = ?
		WHERE deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to clear sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return int(rows), nil
}

// List retrieves sessions matching the given criteria, newest first, excluding soft-deleted sessions.
//
// Supported criteria: "channel_url" (string) and "limit" (int).
func (r *SessionRepository) List(criteria map[string]any) ([]*models.PersistedSession, error) {
	query := `
		SELECT id, sequence, channel_url, strategy, detailed, playlist_count, output_path, started_at, created_at, updated_at, deleted_at
		FROM fetch_sessions
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if channelURL, ok := criteria["channel_url"].(string); ok && channelURL != "" {
		query += " AND channel_url = ?"
		args = append(args, channelURL)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.PersistedSession
	for rows.Next() {
		session, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sessions, nil
}

// scanOne scans a single row into a [models.PersistedSession]
func (r *SessionRepository) scanOne(row *sql.Row) (*models.PersistedSession, error) {
	var (
		id            string
		sequence      int
		channelURL    string
		strategy      string
		detailed      bool
		playlistCount int
		outputPath    string
		startedAt     time.Time
		createdAt     time.Time
		updatedAt     time.Time
		deletedAt     sql.NullTime
	)

	err := row.Scan(&id, &sequence, &channelURL, &strategy, &detailed, &playlistCount, &outputPath, &startedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	dto := models.FetchSession{
		ID:            id,
		ChannelURL:    channelURL,
		Strategy:      strategy,
		Detailed:      detailed,
		PlaylistCount: playlistCount,
		OutputPath:    outputPath,
		StartedAt:     startedAt,
	}

	session := models.NewPersistedSession(sequence, dto)
	session.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		session.SetDeletedAt(&deletedAt.Time)
	}

	return session, nil
}

// scanRow scans a row from [sql.Rows] into a [models.PersistedSession]
func (r *SessionRepository) scanRow(rows *sql.Rows) (*models.PersistedSession, error) {
	var (
		id            string
		sequence      int
		channelURL    string
		strategy      string
		detailed      bool
		playlistCount int
		outputPath    string
		startedAt     time.Time
		createdAt     time.Time
		updatedAt     time.Time
		deletedAt     sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &channelURL, &strategy, &detailed, &playlistCount, &outputPath, &startedAt, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}

	dto := models.FetchSession{
		ID:            id,
		ChannelURL:    channelURL,
		Strategy:      strategy,
		Detailed:      detailed,
		PlaylistCount: playlistCount,
		OutputPath:    outputPath,
		StartedAt:     startedAt,
	}

	session := models.NewPersistedSession(sequence, dto)
	session.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		session.SetDeletedAt(&deletedAt.Time)
	}

	return session, nil
}
