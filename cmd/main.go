package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"chanlist/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the CLI command tree. Fetching is the root action; setup,
// history, and the TUI are subcommands.
func newApp(runner *Runner) *cli.Command {
	return &cli.Command{
		Name:    "chanlist",
		Usage:   "Fetch all public playlists from a YouTube channel",
		Version: "0.3.0",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "channel_url"},
		},
		Flags:    fetchFlags(),
		Action:   runner.Fetch,
		Commands: runner.register(),
	}
}
