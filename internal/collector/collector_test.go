package collector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"chanlist/internal/models"
	"chanlist/internal/shared"
	"chanlist/internal/ytdlp"
)

const testChannel = "https://www.youtube.com/@chan"

// mockClient is a test double for [ytdlp.Client], keyed by url and template.
type mockClient struct {
	version    string
	versionErr error

	printLines  map[string][]string
	printErrs   map[string]error
	dumpEntries map[string][]ytdlp.Entry
	dumpErr     error
	infos       map[string]*ytdlp.PlaylistInfo
	infoErrs    map[string]error

	printCalls []string
	infoCalls  int
}

func (m *mockClient) Version(ctx context.Context) (string, error) {
	if m.versionErr != nil {
		return "", m.versionErr
	}
	if m.version == "" {
		return "2025.08.11", nil
	}
	return m.version, nil
}

func (m *mockClient) Print(ctx context.Context, url, template string) ([]string, error) {
	key := url + "|" + template
	m.printCalls = append(m.printCalls, key)
	if err, ok := m.printErrs[key]; ok {
		return nil, err
	}
	return m.printLines[key], nil
}

func (m *mockClient) DumpFlat(ctx context.Context, url string) ([]ytdlp.Entry, error) {
	if m.dumpErr != nil {
		return nil, m.dumpErr
	}
	return m.dumpEntries[url], nil
}

func (m *mockClient) PlaylistInfo(ctx context.Context, playlistURL string) (*ytdlp.PlaylistInfo, error) {
	m.infoCalls++
	if err, ok := m.infoErrs[playlistURL]; ok {
		return nil, err
	}
	if info, ok := m.infos[playlistURL]; ok {
		return info, nil
	}
	return nil, fmt.Errorf("%w: no metadata in extractor output", shared.ErrExtractionFailed)
}

func discardLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}

func newTestCollector(client ytdlp.Client) *PlaylistCollector {
	return NewCollector(client, CollectorOpts{DetailRate: 1000, Logger: discardLogger()})
}

func TestPlaylistCollector_Run(t *testing.T) {
	t.Run("first strategy wins", func(t *testing.T) {
		client := &mockClient{
			printLines: map[string][]string{
				testChannel + "/playlists|%(playlist_url)s": {
					"https://www.youtube.com/playlist?list=PLfirst1234567",
					"https://www.youtube.com/playlist?list=PLsecond123456",
					"https://www.youtube.com/playlist?list=PLfirst1234567",
					"NA",
				},
			},
		}
		c := newTestCollector(client)

		result, err := c.Run(context.Background(), testChannel, Options{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Records) != 2 {
			t.Fatalf("expected 2 records after dedupe, got %d", len(result.Records))
		}
		if result.Records[0].ID != "PLfirst1234567" || result.Records[1].ID != "PLsecond123456" {
			t.Errorf("unexpected record order: %+v", result.Records)
		}
		if result.Session.Strategy != "playlists-tab" {
			t.Errorf("expected winning strategy playlists-tab, got %s", result.Session.Strategy)
		}
		if result.Session.PlaylistCount != 2 {
			t.Errorf("expected session count 2, got %d", result.Session.PlaylistCount)
		}
		if result.Session.ID == "" {
			t.Error("expected a session id")
		}

		// Later strategies should never have been consulted.
		if len(client.printCalls) != 1 {
			t.Errorf("expected 1 print call, got %d: %v", len(client.printCalls), client.printCalls)
		}

		for i, record := range result.Records {
			if record.Title != fmt.Sprintf("Playlist %d", i+1) {
				t.Errorf("expected positional title, got %q", record.Title)
			}
			if record.Uploader != models.DefaultUploader {
				t.Errorf("expected default uploader, got %q", record.Uploader)
			}
			if record.VideoCount != 0 {
				t.Errorf("expected zero video count, got %d", record.VideoCount)
			}
		}
	})

	t.Run("failed strategy falls through", func(t *testing.T) {
		client := &mockClient{
			printErrs: map[string]error{
				testChannel + "/playlists|%(playlist_url)s": fmt.Errorf("%w: exit status 1", shared.ErrExtractionFailed),
			},
			printLines: map[string][]string{
				testChannel + "/playlists|%(id)s": {"PLids123456789"},
			},
		}
		c := newTestCollector(client)

		result, err := c.Run(context.Background(), testChannel, Options{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Session.Strategy != "playlists-tab-ids" {
			t.Errorf("expected playlists-tab-ids to win, got %s", result.Session.Strategy)
		}
		if len(result.Records) != 1 || result.Records[0].ID != "PLids123456789" {
			t.Errorf("unexpected records: %+v", result.Records)
		}
	})

	t.Run("flat-dump fallback carries titles", func(t *testing.T) {
		client := &mockClient{
			dumpEntries: map[string][]ytdlp.Entry{
				testChannel + "/playlists": {
					{ID: "PLdump12345678", Title: "Named Playlist", URL: "https://www.youtube.com/playlist?list=PLdump12345678", Uploader: "Chan"},
					{ID: "PLdump22345678", URL: "https://www.youtube.com/playlist?list=PLdump22345678"},
				},
			},
		}
		c := newTestCollector(client)

		result, err := c.Run(context.Background(), testChannel, Options{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Session.Strategy != "flat-dump" {
			t.Errorf("expected flat-dump to win, got %s", result.Session.Strategy)
		}
		if result.Records[0].Title != "Named Playlist" {
			t.Errorf("expected dump title to survive, got %q", result.Records[0].Title)
		}
		if result.Records[0].Uploader != "Chan" {
			t.Errorf("expected dump uploader to survive, got %q", result.Records[0].Uploader)
		}
		// The unnamed entry still gets positional defaults.
		if result.Records[1].Title != "Playlist 2" {
			t.Errorf("expected positional title for unnamed entry, got %q", result.Records[1].Title)
		}
	})

	t.Run("no playlists anywhere is not an error", func(t *testing.T) {
		c := newTestCollector(&mockClient{})

		result, err := c.Run(context.Background(), testChannel, Options{}, nil)
		if err != nil {
			t.Fatalf("expected empty result without error, got %v", err)
		}

		if !result.Empty() {
			t.Errorf("expected empty result, got %d records", len(result.Records))
		}
		if result.Session.Strategy != "" {
			t.Errorf("expected no winning strategy, got %s", result.Session.Strategy)
		}
	})

	t.Run("invalid channel url", func(t *testing.T) {
		tests := []struct {
			name string
			url  string
		}{
			{"empty", ""},
			{"no scheme", "www.youtube.com/@chan"},
			{"wrong scheme", "ftp://www.youtube.com/@chan"},
			{"missing host", "https://"},
		}

		c := newTestCollector(&mockClient{})
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				_, err := c.Run(context.Background(), tc.url, Options{}, nil)
				if !errors.Is(err, shared.ErrInvalidChannelURL) {
					t.Errorf("expected ErrInvalidChannelURL, got %v", err)
				}
			})
		}
	})

	t.Run("extractor unavailable aborts", func(t *testing.T) {
		client := &mockClient{versionErr: fmt.Errorf("%w: yt-dlp", shared.ErrExtractorNotFound)}
		c := newTestCollector(client)

		_, err := c.Run(context.Background(), testChannel, Options{}, nil)
		if !errors.Is(err, shared.ErrExtractorNotFound) {
			t.Errorf("expected ErrExtractorNotFound, got %v", err)
		}
	})

	t.Run("canceled context aborts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := newTestCollector(&mockClient{})
		if _, err := c.Run(ctx, testChannel, Options{}, nil); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestPlaylistCollector_Detailed(t *testing.T) {
	newDetailClient := func() *mockClient {
		return &mockClient{
			printLines: map[string][]string{
				testChannel + "/playlists|%(playlist_url)s": {
					"https://www.youtube.com/playlist?list=PLone1234567890",
					"https://www.youtube.com/playlist?list=PLtwo1234567890",
				},
			},
			infos: map[string]*ytdlp.PlaylistInfo{
				models.PlaylistURL("PLone1234567890"): {ID: "PLone1234567890", Title: "Cooking", VideoCount: 12, Uploader: "Chef"},
				models.PlaylistURL("PLtwo1234567890"): {ID: "PLtwo1234567890", Title: "Travel", VideoCount: 7, Uploader: "Chef"},
			},
		}
	}

	t.Run("populates metadata fields", func(t *testing.T) {
		client := newDetailClient()
		c := newTestCollector(client)

		result, err := c.Run(context.Background(), testChannel, Options{Detailed: true}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if client.infoCalls != 2 {
			t.Errorf("expected one lookup per record, got %d", client.infoCalls)
		}
		if result.Records[0].Title != "Cooking" || result.Records[0].VideoCount != 12 || result.Records[0].Uploader != "Chef" {
			t.Errorf("expected enriched first record, got %+v", result.Records[0])
		}
		if result.Records[1].Title != "Travel" {
			t.Errorf("expected enriched second record, got %+v", result.Records[1])
		}
	})

	t.Run("lookup failure keeps defaults", func(t *testing.T) {
		client := newDetailClient()
		client.infoErrs = map[string]error{
			models.PlaylistURL("PLtwo1234567890"): fmt.Errorf("%w", shared.ErrTimeout),
		}
		c := newTestCollector(client)

		result, err := c.Run(context.Background(), testChannel, Options{Detailed: true}, nil)
		if err != nil {
			t.Fatalf("detail failures must not abort the run: %v", err)
		}

		if result.Records[0].Title != "Cooking" {
			t.Errorf("expected first record enriched, got %+v", result.Records[0])
		}
		if result.Records[1].Title != "Playlist 2" || result.Records[1].VideoCount != 0 || result.Records[1].Uploader != models.DefaultUploader {
			t.Errorf("expected second record to keep defaults, got %+v", result.Records[1])
		}
	})

	t.Run("never changes the id set", func(t *testing.T) {
		basic, err := newTestCollector(newDetailClient()).Run(context.Background(), testChannel, Options{}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		detailed, err := newTestCollector(newDetailClient()).Run(context.Background(), testChannel, Options{Detailed: true}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(basic.Records) != len(detailed.Records) {
			t.Fatalf("detailed mode changed record count: %d vs %d", len(basic.Records), len(detailed.Records))
		}
		for i := range basic.Records {
			if basic.Records[i].ID != detailed.Records[i].ID {
				t.Errorf("record %d id changed: %s vs %s", i, basic.Records[i].ID, detailed.Records[i].ID)
			}
			if basic.Records[i].URL != detailed.Records[i].URL {
				t.Errorf("record %d URL changed: %s vs %s", i, basic.Records[i].URL, detailed.Records[i].URL)
			}
		}
	})
}

func TestPlaylistCollector_Progress(t *testing.T) {
	client := &mockClient{
		printLines: map[string][]string{
			testChannel + "/playlists|%(playlist_url)s": {
				"https://www.youtube.com/playlist?list=PLprog123456789",
			},
		},
	}
	c := newTestCollector(client)

	progress := make(chan ProgressUpdate, 64)
	if _, err := c.Run(context.Background(), testChannel, Options{}, progress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(progress)

	phases := make(map[Phase]int)
	for update := range progress {
		phases[update.Phase]++
		if update.Message == "" {
			t.Error("expected every update to carry a message")
		}
	}

	if phases[ProbeExtractor] == 0 {
		t.Error("expected probe updates")
	}
	if phases[TryStrategy] == 0 {
		t.Error("expected strategy updates")
	}
	if phases[CollectRecords] == 0 {
		t.Error("expected a records-found update")
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{ProbeExtractor, "probe_extractor"},
		{TryStrategy, "try_strategy"},
		{CollectRecords, "collect_records"},
		{DetailLookup, "detail_lookup"},
		{Phase(99), ""},
	}

	for _, tc := range tests {
		if got := tc.phase.String(); got != tc.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tc.phase, got, tc.want)
		}
	}
}
