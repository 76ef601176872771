package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"chanlist/internal/models"
	"chanlist/internal/report"
	"chanlist/internal/repositories"
	"chanlist/internal/shared"
)

// sessionTimeLayout formats session timestamps for console output.
const sessionTimeLayout = "2006-01-02 15:04:05"

// sessionExport is the JSON shape for 'history show --json'.
type sessionExport struct {
	Session models.FetchSession     `json:"session"`
	Records []models.PlaylistRecord `json:"records"`
}

// HistoryList prints recorded fetch sessions, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.applyConfigFlag(cmd)

	db, err := r.openHistoryDB()
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{}
	if limit > 0 {
		criteria["limit"] = limit
	}

	sessions, err := repositories.NewSessionRepository(db).List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list fetch sessions: %w", err)
	}

	if useJSON {
		exported := make([]models.FetchSession, 0, len(sessions))
		for _, s := range sessions {
			exported = append(exported, s.Session())
		}
		return r.writeJSON(exported, pretty)
	}

	if len(sessions) == 0 {
		r.writePlain("No fetch sessions recorded. Run 'chanlist <channel_url>' first.\n")
		return nil
	}

	r.writePlain("Found %d fetch sessions:\n\n", len(sessions))
	for _, s := range sessions {
		r.writePlain("#%d %s\n", s.Sequence(), s.ChannelURL())
		r.writePlain("   Session: %s\n", s.ID())
		r.writePlain("   Fetched: %s\n", s.StartedAt().Format(sessionTimeLayout))
		if s.Strategy() != "" {
			r.writePlain("   Strategy: %s\n", s.Strategy())
		}
		r.writePlain("   Playlists: %d\n", s.PlaylistCount())
		if s.OutputPath() != "" {
			r.writePlain("   Report: %s\n", s.OutputPath())
		}
		r.writePlain("\n")
	}

	return nil
}

// HistoryShow prints one recorded session with its playlists, and can re-render
// the text report from the stored records.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	sessionID := cmd.StringArg("session_id")
	if sessionID == "" {
		return fmt.Errorf("%w: session_id (usage: chanlist history show <session_id>)", shared.ErrMissingArgument)
	}

	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	outputPath := cmd.String("output")

	r.applyConfigFlag(cmd)

	db, err := r.openHistoryDB()
	if err != nil {
		return err
	}
	defer db.Close()

	session, err := repositories.NewSessionRepository(db).Get(sessionID)
	if err != nil {
		return err
	}

	rows, err := repositories.NewPlaylistRepository(db).ListBySession(session.ID())
	if err != nil {
		return fmt.Errorf("failed to list session playlists: %w", err)
	}

	records := make([]models.PlaylistRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record())
	}

	if outputPath != "" {
		written, err := report.Write(outputPath, report.Render(records, session.StartedAt()))
		if err != nil {
			return err
		}
		r.writePlain("Report saved to: %s\n", written)
		return nil
	}

	if useJSON {
		return r.writeJSON(sessionExport{Session: session.Session(), Records: records}, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Session #%d", session.Sequence()))
	r.writePlain("Channel: %s\n", session.ChannelURL())
	r.writePlain("Fetched: %s\n", session.StartedAt().Format(sessionTimeLayout))
	if session.Strategy() != "" {
		r.writePlain("Strategy: %s\n", session.Strategy())
	}
	r.writePlain("Playlists: %d\n\n", len(records))

	for i, record := range records {
		r.writePlain("%d. %s\n", i+1, record.Title)
		r.writePlain("   URL: %s\n", record.URL)
		r.writePlain("   ID: %s\n", record.ID)
		r.writePlain("   Videos: %d\n", record.VideoCount)
		r.writePlain("   Uploader: %s\n", record.Uploader)
		r.writePlain("\n")
	}

	return nil
}

// HistoryClear deletes all recorded sessions and their playlists.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	r.applyConfigFlag(cmd)

	db, err := r.openHistoryDB()
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := repositories.NewSessionRecorder(db).Clear()
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	r.writePlain("✓ Cleared %d sessions from history\n", count)
	return nil
}
