package ytdlp

// Entry is one JSON line of flat-playlist extractor output.
//
// Only the fields the collector consumes are declared; the extractor emits far
// more. Playlist-level fields (playlist_*) appear on entries that belong to a
// playlist dump.
type Entry struct {
	Type             string `json:"_type"`
	ID               string `json:"id"`
	Title            string `json:"title"`
	URL              string `json:"url"`
	WebpageURL       string `json:"webpage_url"`
	OriginalURL      string `json:"original_url"`
	Uploader         string `json:"uploader"`
	PlaylistID       string `json:"playlist_id"`
	PlaylistTitle    string `json:"playlist_title"`
	PlaylistCount    int    `json:"playlist_count"`
	PlaylistUploader string `json:"playlist_uploader"`
}

// URLFields returns the entry's URL-bearing fields in the order the collector
// inspects them.
func (e Entry) URLFields() []string {
	return []string{e.URL, e.WebpageURL, e.OriginalURL}
}

// PlaylistInfo is the playlist-level metadata returned by a detail lookup.
type PlaylistInfo struct {
	ID         string
	Title      string
	VideoCount int
	Uploader   string
}
