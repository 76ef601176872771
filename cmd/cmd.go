// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for the database and cookie files.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the fetch-history database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "cookies",
				Usage: "Generate a yt-dlp cookie file from a browser cURL command",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path for the cookie file (default: cookies.txt)",
					},
				},
				Action: r.SetupCookies,
			},
		},
	}
}

// historyCommand handles fetch-history operations.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "history",
		Aliases: []string{"hist"},
		Usage:   "Inspect recorded fetch sessions",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded fetch sessions, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of sessions to show",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to configuration file",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "show",
				Usage: "Show one session with its playlists",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "session_id",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Re-render the text report from stored records to this path",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to configuration file",
					},
				},
				Action: r.HistoryShow,
			},
			{
				Name:  "clear",
				Usage: "Delete all recorded sessions",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to configuration file",
					},
				},
				Action: r.HistoryClear,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive playlist browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Browse a channel's playlists interactively",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "channel_url",
			},
		},
		Flags:  fetchFlags(),
		Action: r.TUI,
	}
}
