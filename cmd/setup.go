package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"chanlist/internal/shared"
)

// SetupDatabase initializes the history database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	if err := shared.EnsureDatabaseDir(config.Database.Path); err != nil {
		return err
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// SetupCookies converts a browser cURL command into a yt-dlp cookie file.
//
// Accepts a cURL command copied from DevTools and writes Netscape-format
// cookies.txt usable with the --cookies flag.
func (r *Runner) SetupCookies(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")
	outputPath := cmd.String("output")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}

	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	r.logger.Info("parsing cURL command for YouTube cookies")

	var curlHeaders *shared.CurlHeaders
	var err error

	if curlFile != "" {
		curlHeaders, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		curlHeaders, err = shared.ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	pairs := curlHeaders.CookiePairs()
	if len(pairs) == 0 {
		return fmt.Errorf("%w: no Cookie header found in cURL command", shared.ErrInvalidInput)
	}

	if outputPath == "" {
		outputPath = "cookies.txt"
	}

	if err := shared.WriteNetscapeCookies(outputPath, pairs); err != nil {
		return err
	}

	r.logger.Info("cookie file saved", "path", outputPath, "cookies", len(pairs))

	r.writePlain("✓ Cookie file written successfully\n")
	r.writePlain("Saved %d cookies to: %s\n", len(pairs), outputPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Run 'chanlist <channel_url> --cookies %s' to fetch with authentication\n", outputPath)
	r.writePlain("2. Re-run this command when the cookies expire\n")

	return nil
}
