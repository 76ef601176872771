package models

import (
	"fmt"
	"strings"
	"time"
)

// Model defines the base interface for all persistent models in the history database.
// Implementations include PersistedSession and PersistedPlaylist.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

const (
	// PlaylistURLPrefix is the canonical base for playlist URLs; every record's
	// URL is this prefix followed by its id.
	PlaylistURLPrefix = "https://www.youtube.com/playlist?list="

	// DefaultUploader is the placeholder used when the extractor reports no uploader.
	DefaultUploader = "Unknown"
)

// PlaylistRecord is one public playlist enumerated from a channel.
//
// The record is constructed during collection and never mutated afterwards. ID is the
// opaque platform identifier (unique within a channel); URL is always derived from ID
// via [PlaylistURL]. VideoCount and Uploader stay at their defaults unless a detailed
// lookup populates them.
type PlaylistRecord struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	VideoCount int    `json:"video_count"`
	Uploader   string `json:"uploader"`
}

// PlaylistURL derives the canonical playlist URL for an id.
func PlaylistURL(id string) string {
	return PlaylistURLPrefix + id
}

// NewPlaylistRecord constructs a record for a playlist id with its derived URL.
// Title and Uploader are left empty for the collector to default later.
func NewPlaylistRecord(id string) PlaylistRecord {
	return PlaylistRecord{ID: id, URL: PlaylistURL(id)}
}

// FetchSession describes one collector run against a channel.
type FetchSession struct {
	ID            string    `json:"id"`
	ChannelURL    string    `json:"channel_url"`
	Strategy      string    `json:"strategy"`
	Detailed      bool      `json:"detailed"`
	PlaylistCount int       `json:"playlist_count"`
	OutputPath    string    `json:"output_path"`
	StartedAt     time.Time `json:"started_at"`
}

// Validate checks that the session identifies a channel and carries a sane count.
func (s FetchSession) Validate() error {
	if strings.TrimSpace(s.ChannelURL) == "" {
		return fmt.Errorf("fetch session requires a channel URL")
	}
	if s.PlaylistCount < 0 {
		return fmt.Errorf("fetch session playlist count cannot be negative")
	}
	return nil
}
