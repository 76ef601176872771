package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"chanlist/internal/models"
	"chanlist/internal/repositories"
	"chanlist/internal/shared"
	tu "chanlist/internal/testing"
)

// seedSession initializes the history database at dbPath and records one
// session with two playlists.
func seedSession(t *testing.T, dbPath string) *models.PersistedSession {
	t.Helper()
	seedHistoryDB(t, dbPath)

	db, err := shared.NewDatabase(dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	records := []models.PlaylistRecord{
		fetchedRecord("PLaaa", "Mix One"),
		fetchedRecord("PLbbb", "Mix Two"),
	}
	result := stubResult(records)

	persisted, err := repositories.NewSessionRecorder(db).Record(result.Session, records)
	if err != nil {
		t.Fatalf("failed to record session: %v", err)
	}

	return persisted
}

func TestHistory(t *testing.T) {
	t.Run("list prints recorded sessions", func(t *testing.T) {
		output := &bytes.Buffer{}
		app, config := newTestApp(t, &stubEngine{}, output)
		persisted := seedSession(t, config.Database.Path)

		if err := app.Run(context.Background(), []string{"chanlist", "history", "list"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		console := output.String()
		if !strings.Contains(console, "Found 1 fetch sessions:") {
			t.Errorf("expected session count, got:\n%s", console)
		}
		if !strings.Contains(console, "#1 "+testChannelURL) {
			t.Errorf("expected sequence and channel, got:\n%s", console)
		}
		if !strings.Contains(console, "Session: "+persisted.ID()) {
			t.Errorf("expected session id, got:\n%s", console)
		}
		if !strings.Contains(console, "Strategy: playlists-tab") {
			t.Errorf("expected strategy, got:\n%s", console)
		}
		if !strings.Contains(console, "Playlists: 2") {
			t.Errorf("expected playlist count, got:\n%s", console)
		}
	})

	t.Run("list supports JSON output", func(t *testing.T) {
		output := &bytes.Buffer{}
		app, config := newTestApp(t, &stubEngine{}, output)
		seedSession(t, config.Database.Path)

		if err := app.Run(context.Background(), []string{"chanlist", "history", "list", "--json"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var sessions []models.FetchSession
		if err := json.Unmarshal(output.Bytes(), &sessions); err != nil {
			t.Fatalf("expected valid JSON, got %v:\n%s", err, output.String())
		}
		if len(sessions) != 1 {
			t.Fatalf("expected 1 session, got %d", len(sessions))
		}
		if sessions[0].ChannelURL != testChannelURL {
			t.Errorf("expected channel %s, got %s", testChannelURL, sessions[0].ChannelURL)
		}
	})

	t.Run("list reports an empty history", func(t *testing.T) {
		output := &bytes.Buffer{}
		app, config := newTestApp(t, &stubEngine{}, output)
		seedHistoryDB(t, config.Database.Path)

		if err := app.Run(context.Background(), []string{"chanlist", "history", "list"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), "No fetch sessions recorded") {
			t.Errorf("expected empty-history notice, got:\n%s", output.String())
		}
	})

	t.Run("list errors without a database", func(t *testing.T) {
		app, _ := newTestApp(t, &stubEngine{}, &bytes.Buffer{})

		err := app.Run(context.Background(), []string{"chanlist", "history", "list"})
		if !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("show prints one session with its playlists", func(t *testing.T) {
		output := &bytes.Buffer{}
		app, config := newTestApp(t, &stubEngine{}, output)
		persisted := seedSession(t, config.Database.Path)

		if err := app.Run(context.Background(), []string{"chanlist", "history", "show", persisted.ID()}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		console := output.String()
		if !strings.Contains(console, "Session #1") {
			t.Errorf("expected session header, got:\n%s", console)
		}
		if !strings.Contains(console, "Channel: "+testChannelURL) {
			t.Errorf("expected channel line, got:\n%s", console)
		}
		if !strings.Contains(console, "1. Mix One") || !strings.Contains(console, "2. Mix Two") {
			t.Errorf("expected playlist blocks, got:\n%s", console)
		}
		if !strings.Contains(console, "URL: "+models.PlaylistURL("PLaaa")) {
			t.Errorf("expected derived playlist URL, got:\n%s", console)
		}
	})

	t.Run("show requires a session id", func(t *testing.T) {
		app, config := newTestApp(t, &stubEngine{}, &bytes.Buffer{})
		seedHistoryDB(t, config.Database.Path)

		err := app.Run(context.Background(), []string{"chanlist", "history", "show"})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("show errors for an unknown session", func(t *testing.T) {
		app, config := newTestApp(t, &stubEngine{}, &bytes.Buffer{})
		seedHistoryDB(t, config.Database.Path)

		err := app.Run(context.Background(), []string{"chanlist", "history", "show", "nonexistent-id"})
		if !errors.Is(err, shared.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("show re-renders the report from stored records", func(t *testing.T) {
		output := &bytes.Buffer{}
		app, config := newTestApp(t, &stubEngine{}, output)
		persisted := seedSession(t, config.Database.Path)

		reportPath := filepath.Join(t.TempDir(), "restored.txt")
		if err := app.Run(context.Background(), []string{"chanlist", "history", "show", "--output", reportPath, persisted.ID()}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content := tu.MustReadFile(t, reportPath)
		if !strings.Contains(content, "Mix One") || !strings.Contains(content, "Direct Links Only:") {
			t.Errorf("expected full report content, got:\n%s", content)
		}
		if !strings.Contains(output.String(), "Report saved to: "+reportPath) {
			t.Errorf("expected report path in console output, got:\n%s", output.String())
		}
	})

	t.Run("clear removes all sessions", func(t *testing.T) {
		output := &bytes.Buffer{}
		app, config := newTestApp(t, &stubEngine{}, output)
		seedSession(t, config.Database.Path)

		if err := app.Run(context.Background(), []string{"chanlist", "history", "clear"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), "✓ Cleared 1 sessions from history") {
			t.Errorf("expected clear confirmation, got:\n%s", output.String())
		}

		db, err := shared.NewDatabase(config.Database.Path)
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()

		sessions, err := repositories.NewSessionRepository(db).List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list sessions: %v", err)
		}
		if len(sessions) != 0 {
			t.Errorf("expected no sessions after clear, got %d", len(sessions))
		}
	})
}
