package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"chanlist/internal/collector"
	"chanlist/internal/report"
	"chanlist/internal/repositories"
	"chanlist/internal/shared"
)

// summaryLimit caps how many playlist titles the console summary lists.
const summaryLimit = 5

// fetchFlags returns the flag set shared by the root fetch action and the TUI.
func fetchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "cookies",
			Aliases: []string{"c"},
			Usage:   "Path to a Netscape-format cookies.txt for authenticated extraction",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Report output path",
		},
		&cli.BoolFlag{
			Name:    "detailed",
			Aliases: []string{"d"},
			Usage:   "Fetch per-playlist metadata (slower, one extra lookup per playlist)",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to configuration file",
		},
	}
}

// Fetch enumerates a channel's playlists and writes the text report.
//
// This is the root command action: 'chanlist <channel_url> [flags]'.
func (r *Runner) Fetch(ctx context.Context, cmd *cli.Command) error {
	channelURL := cmd.StringArg("channel_url")
	if channelURL == "" {
		return fmt.Errorf("%w: channel_url (usage: chanlist <channel_url>)", shared.ErrMissingArgument)
	}

	r.applyConfigFlag(cmd)

	cookiesPath := cmd.String("cookies")
	if cookiesPath != "" {
		if _, err := os.Stat(cookiesPath); err != nil {
			return fmt.Errorf("%w: %s", shared.ErrCookieFileNotFound, cookiesPath)
		}
	}

	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = r.config.Output.Path
	}
	detailed := cmd.Bool("detailed")

	r.logger.Info("fetching channel playlists", "channel", channelURL, "detailed", detailed)
	r.writePlain("Fetching playlists for %s\n\n", channelURL)

	progressCh := make(chan collector.ProgressUpdate, 50)
	printerDone := make(chan struct{})
	go func() {
		defer close(printerDone)
		for update := range progressCh {
			switch update.Phase {
			case collector.ProbeExtractor:
				r.writePlain("🔎 %s\n", update.Message)
			case collector.TryStrategy:
				r.writePlain("   %s\n", update.Message)
			case collector.CollectRecords:
				r.writePlain("\n%s\n", update.Message)
			case collector.DetailLookup:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	engine := r.engineFor(cookiesPath)
	result, err := engine.Run(ctx, channelURL, collector.Options{Detailed: detailed}, progressCh)
	close(progressCh)
	<-printerDone

	if err != nil {
		return err
	}

	result.Session.OutputPath = outputPath

	written, err := report.Write(outputPath, report.Render(result.Records, result.Session.StartedAt))
	if err != nil {
		return err
	}

	if result.Empty() {
		r.writePlainln("No playlists found for %s", channelURL)
	} else {
		r.writePlain("\n%s", report.Summary(result.Records, summaryLimit))
	}
	r.writePlain("\nReport saved to: %s\n", written)

	r.recordHistory(result)

	return nil
}

// recordHistory stores the run in the fetch history when the database exists.
//
// The history layer is opt-in: nothing is recorded until 'chanlist setup database'
// has been run, and recording failures never fail the fetch.
func (r *Runner) recordHistory(result *collector.Result) {
	dbPath := r.config.Database.Path
	if !shared.DatabaseExists(dbPath) {
		r.logger.Debug("history database not initialized, skipping session record", "path", dbPath)
		return
	}

	db, err := shared.NewDatabase(dbPath)
	if err != nil {
		r.logger.Warn("failed to open history database", "error", err)
		return
	}
	defer db.Close()

	if _, err := repositories.NewSessionRecorder(db).Record(result.Session, result.Records); err != nil {
		r.logger.Warn("failed to record fetch session", "error", err)
		return
	}

	r.logger.Debug("fetch session recorded", "session", result.Session.ID)
}
