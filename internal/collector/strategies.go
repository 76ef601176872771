package collector

import (
	"context"
	"strings"
	"time"

	"chanlist/internal/models"
	"chanlist/internal/ytdlp"
)

// strategy is one fixed way of asking the extractor for a channel's playlists.
// Strategies run in declaration order; the first one that parses to at least
// one record wins.
type strategy struct {
	name    string
	timeout time.Duration
	run     func(ctx context.Context, client ytdlp.Client) ([]models.PlaylistRecord, error)
}

// strategies builds the fixed-priority strategy list for a channel URL.
//
// The first four print one field per entry over different channel tabs; the
// final one falls back to a full flat JSON dump of the playlists tab, which is
// slower but carries titles.
func (c *PlaylistCollector) strategies(channelURL string) []strategy {
	base := strings.TrimSuffix(channelURL, "/")

	printStrategy := func(url, template string) func(context.Context, ytdlp.Client) ([]models.PlaylistRecord, error) {
		return func(ctx context.Context, client ytdlp.Client) ([]models.PlaylistRecord, error) {
			lines, err := client.Print(ctx, url, template)
			if err != nil {
				return nil, err
			}
			return recordsFromLines(lines), nil
		}
	}

	dumpStrategy := func(url string) func(context.Context, ytdlp.Client) ([]models.PlaylistRecord, error) {
		return func(ctx context.Context, client ytdlp.Client) ([]models.PlaylistRecord, error) {
			entries, err := client.DumpFlat(ctx, url)
			if err != nil {
				return nil, err
			}
			return recordsFromEntries(entries), nil
		}
	}

	return []strategy{
		{name: "playlists-tab", timeout: c.strategyTimeout, run: printStrategy(base+"/playlists", "%(playlist_url)s")},
		{name: "playlists-tab-ids", timeout: c.strategyTimeout, run: printStrategy(base+"/playlists", "%(id)s")},
		{name: "videos-tab", timeout: c.strategyTimeout, run: printStrategy(base+"/videos", "%(webpage_url)s")},
		{name: "channel-root", timeout: c.strategyTimeout, run: printStrategy(base, "%(playlist_url)s")},
		{name: "flat-dump", timeout: c.fallbackTimeout, run: dumpStrategy(base + "/playlists")},
	}
}

// listParam extracts the value of the list query parameter from a URL-ish string.
func listParam(s string) string {
	_, rest, ok := strings.Cut(s, "list=")
	if !ok {
		return ""
	}
	id, _, _ := strings.Cut(rest, "&")
	return id
}

// parsePlaylistID extracts a playlist id from one printed extractor line.
//
// Accepted shapes: a playlist URL, a watch URL carrying a list parameter, or a
// bare PL-prefixed id. The extractor prints "NA" for absent fields; those and
// ids ending in NA are rejected.
func parsePlaylistID(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || line == "NA" {
		return "", false
	}

	var id string
	switch {
	case strings.Contains(line, "playlist?list="):
		id = listParam(line)
	case strings.Contains(line, "watch?v=") && strings.Contains(line, "&list="):
		id = listParam(line)
	case strings.HasPrefix(line, "PL") && len(line) > 10 && !strings.Contains(line, "/"):
		id = line
	default:
		return "", false
	}

	if id == "" || strings.HasSuffix(id, "NA") {
		return "", false
	}

	return id, true
}

// recordsFromLines parses printed lines into records, deduplicating by id while
// preserving first-seen order.
func recordsFromLines(lines []string) []models.PlaylistRecord {
	var records []models.PlaylistRecord
	seen := make(map[string]struct{})

	for _, line := range lines {
		id, ok := parsePlaylistID(line)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		records = append(records, models.NewPlaylistRecord(id))
	}

	return records
}

// recordsFromEntries converts flat-dump entries into records, keeping titles and
// uploaders when the dump carries them. Deduplicates by id in first-seen order.
func recordsFromEntries(entries []ytdlp.Entry) []models.PlaylistRecord {
	var records []models.PlaylistRecord
	seen := make(map[string]struct{})

	for _, entry := range entries {
		id := entryPlaylistID(entry)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		record := models.NewPlaylistRecord(id)
		record.Title = entry.Title
		record.Uploader = entry.Uploader
		records = append(records, record)
	}

	return records
}

// entryPlaylistID pulls a playlist id out of a dump entry: first from any
// URL-bearing field, then from a PL-prefixed entry id.
func entryPlaylistID(entry ytdlp.Entry) string {
	for _, field := range entry.URLFields() {
		if field == "" || !strings.Contains(field, "playlist?list=") {
			continue
		}
		if id := listParam(field); id != "" && !strings.HasSuffix(id, "NA") {
			return id
		}
	}

	if strings.HasPrefix(entry.ID, "PL") && len(entry.ID) > 10 {
		return entry.ID
	}

	return ""
}
