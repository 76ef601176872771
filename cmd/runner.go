package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"chanlist/internal/collector"
	"chanlist/internal/shared"
	"chanlist/internal/ytdlp"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	engine collector.Engine
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Engine collector.Engine // replaces the yt-dlp backed collector when set
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		engine: opts.Engine,
		logger: opts.Logger,
		output: opts.Output,
	}
}

// SetLogger swaps the runner's logger, used by the TUI to redirect logs to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// engineFor returns the configured engine, or builds a yt-dlp backed collector
// using the given cookies file for authenticated extraction.
func (r *Runner) engineFor(cookiesPath string) collector.Engine {
	if r.engine != nil {
		return r.engine
	}

	client := ytdlp.NewClient(r.config.Extractor.Binary, cookiesPath)
	return collector.NewCollector(client, collector.CollectorOpts{
		StrategyTimeout: r.config.Extractor.StrategyTimeout(),
		FallbackTimeout: r.config.Extractor.FallbackTimeout(),
		DetailTimeout:   r.config.Extractor.DetailTimeout(),
		DetailRate:      r.config.Extractor.DetailRateLimit,
		Logger:          r.logger,
	})
}

// applyConfigFlag reloads the runner configuration when --config names a file.
func (r *Runner) applyConfigFlag(cmd *cli.Command) {
	configPath := cmd.String("config")
	if configPath == "" {
		return
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		r.logger.Warn("failed to load config, using current settings", "path", configPath, "error", err)
		return
	}
	r.config = config
}

// openHistoryDB opens the history database created by 'chanlist setup database'.
func (r *Runner) openHistoryDB() (*sql.DB, error) {
	dbPath := r.config.Database.Path
	if !shared.DatabaseExists(dbPath) {
		return nil, fmt.Errorf("%w: no history database at %s (run 'chanlist setup database')", shared.ErrMissingConfig, dbPath)
	}

	db, err := shared.NewDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	return db, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, historyCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
