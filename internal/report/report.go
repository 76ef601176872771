// package report renders collected playlist records into the plain text channel report
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chanlist/internal/models"
)

// DefaultPath is the report location used when the caller does not pick one.
const DefaultPath = "channel_playlists.txt"

// timestampLayout matches the header timestamp format. Rendering the same
// records with the same fetchedAt always yields identical bytes.
const timestampLayout = "2006-01-02 15:04:05"

// Render produces the full report: a timestamped header, one block per
// playlist, then a bare list of playlist URLs for piping into other tools.
// Zero records still render the header and an empty direct-links section.
func Render(records []models.PlaylistRecord, fetchedAt time.Time) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("YouTube Channel Playlists - Fetched on %s\n", fetchedAt.Format(timestampLayout)))
	buf.WriteString(strings.Repeat("=", 60) + "\n\n")

	for i, record := range records {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, record.Title))
		buf.WriteString(fmt.Sprintf("   URL: %s\n", record.URL))
		buf.WriteString(fmt.Sprintf("   ID: %s\n", record.ID))
		buf.WriteString(fmt.Sprintf("   Videos: %d\n", record.VideoCount))
		buf.WriteString(fmt.Sprintf("   Uploader: %s\n", record.Uploader))
		buf.WriteString(strings.Repeat("-", 40) + "\n")
	}

	buf.WriteString("\nDirect Links Only:\n")
	buf.WriteString(strings.Repeat("=", 20) + "\n")
	for _, record := range records {
		buf.WriteString(record.URL + "\n")
	}

	return buf.Bytes()
}

// Write saves rendered report data to path, creating parent directories as
// needed. An empty path falls back to DefaultPath. Returns the path written.
func Write(path string, data []byte) (string, error) {
	if path == "" {
		path = DefaultPath
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}

// Summary builds the short console listing printed after a fetch: the total,
// the first limit titles with their video counts, and a trailing
// "... and N more playlists" line when the set is longer.
func Summary(records []models.PlaylistRecord, limit int) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Found %d playlists:\n", len(records)))

	shown := records
	if limit > 0 && len(records) > limit {
		shown = records[:limit]
	}
	for i, record := range shown {
		buf.WriteString(fmt.Sprintf("  %d. %s (%d videos)\n", i+1, record.Title, record.VideoCount))
	}

	if remaining := len(records) - len(shown); remaining > 0 {
		buf.WriteString(fmt.Sprintf("  ... and %d more playlists\n", remaining))
	}

	return buf.String()
}
