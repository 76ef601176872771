package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"chanlist/internal/collector"
	"chanlist/internal/shared"
	"chanlist/internal/ui"
)

// TUI launches the interactive playlist browser for a channel.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	channelURL := cmd.StringArg("channel_url")
	if channelURL == "" {
		return fmt.Errorf("%w: channel_url (usage: chanlist tui <channel_url>)", shared.ErrMissingArgument)
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

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, closer, err := shared.NewFileLogger(r.config.Output.LogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer closer.Close()
	r.SetLogger(fileLogger)

	engine := r.engineFor(cookiesPath)
	options := collector.Options{Detailed: cmd.Bool("detailed")}

	model := ui.NewModel(ctx, engine, channelURL, options, outputPath)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
