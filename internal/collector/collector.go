// Package collector implements channel playlist enumeration through the extractor.
//
// The core abstraction is Engine, which runs the fixed-priority extraction
// strategies for a channel, deduplicates what they return, and optionally
// enriches each record with a per-playlist metadata lookup. Runs emit progress
// updates via channels for non-blocking status reporting to CLI/UI layers.
package collector

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"chanlist/internal/models"
	"chanlist/internal/shared"
	"chanlist/internal/ytdlp"
)

// Options controls a single collector run.
type Options struct {
	// Detailed enables one metadata lookup per record to populate title,
	// video count, and uploader.
	Detailed bool
}

// Result contains everything a collector run produced.
type Result struct {
	Session models.FetchSession     // Run metadata, including the winning strategy
	Records []models.PlaylistRecord // Ordered, deduplicated playlist records
}

// Empty reports whether the run found no playlists.
func (r *Result) Empty() bool {
	return len(r.Records) == 0
}

// Engine defines the collector operation consumed by the CLI and TUI layers.
type Engine interface {
	// Run enumerates the public playlists of a channel. A nil progress channel
	// disables progress reporting. The returned error is non-nil only for
	// invalid input, a missing extractor, or context cancellation; an exhausted
	// strategy list yields an empty result instead.
	Run(ctx context.Context, channelURL string, opts Options, progress chan<- ProgressUpdate) (*Result, error)
}

// CollectorOpts configures a PlaylistCollector.
type CollectorOpts struct {
	StrategyTimeout time.Duration // Timeout per strategy call (default: 60s)
	FallbackTimeout time.Duration // Timeout for the flat-dump call (default: 90s)
	DetailTimeout   time.Duration // Timeout per lookup in detailed mode (default: 30s)
	DetailRate      float64       // Detail lookups per second (default: 5)
	Logger          *log.Logger   // Defaults to a stderr logger
}

// PlaylistCollector implements Engine on top of a ytdlp client.
type PlaylistCollector struct {
	client          ytdlp.Client
	logger          *log.Logger
	strategyTimeout time.Duration
	fallbackTimeout time.Duration
	detailTimeout   time.Duration
	detailRate      float64
}

// NewCollector creates a PlaylistCollector, applying defaults for unset options.
func NewCollector(client ytdlp.Client, opts CollectorOpts) *PlaylistCollector {
	if opts.StrategyTimeout <= 0 {
		opts.StrategyTimeout = 60 * time.Second
	}
	if opts.FallbackTimeout <= 0 {
		opts.FallbackTimeout = 90 * time.Second
	}
	if opts.DetailTimeout <= 0 {
		opts.DetailTimeout = 30 * time.Second
	}
	if opts.DetailRate <= 0 {
		opts.DetailRate = 5.0
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &PlaylistCollector{
		client:          client,
		logger:          opts.Logger,
		strategyTimeout: opts.StrategyTimeout,
		fallbackTimeout: opts.FallbackTimeout,
		detailTimeout:   opts.DetailTimeout,
		detailRate:      opts.DetailRate,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (c *PlaylistCollector) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// validateChannelURL rejects anything that is not an absolute http(s) URL with a host.
func validateChannelURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", shared.ErrInvalidChannelURL, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q: scheme must be http or https", shared.ErrInvalidChannelURL, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q: missing host", shared.ErrInvalidChannelURL, raw)
	}
	return nil
}

// Run enumerates the public playlists of a channel.
//
// Execution is strictly sequential: one strategy at a time, one detail lookup
// at a time, each bounded by its own timeout. Strategy failures are logged and
// the next strategy attempted; only invalid input, a missing extractor, or a
// canceled context abort the run.
func (c *PlaylistCollector) Run(ctx context.Context, channelURL string, opts Options, progress chan<- ProgressUpdate) (*Result, error) {
	if err := validateChannelURL(channelURL); err != nil {
		return nil, err
	}

	startedAt := time.Now()
	session := models.FetchSession{
		ID:         shared.GenerateID(),
		ChannelURL: channelURL,
		Detailed:   opts.Detailed,
		StartedAt:  startedAt,
	}
	logger := shared.WithLogger(c.logger, "session", session.ID)

	c.sendProgress(progress, probeUpdate())
	version, err := c.client.Version(ctx)
	if err != nil {
		return nil, err
	}
	c.sendProgress(progress, probedUpdate(version))
	logger.Debug("extractor ready", "version", version)

	records, winner := c.enumerate(ctx, logger, channelURL, progress)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	finalizeDefaults(records)

	if len(records) == 0 {
		c.sendProgress(progress, noRecordsUpdate())
		logger.Info("no playlists found", "channel", channelURL)
		return &Result{Session: session}, nil
	}

	c.sendProgress(progress, recordsFoundUpdate(winner, len(records)))
	logger.Info("playlists found", "channel", channelURL, "strategy", winner, "count", len(records))

	if opts.Detailed {
		if err := c.enrich(ctx, logger, records, progress); err != nil {
			return nil, err
		}
	}

	session.Strategy = winner
	session.PlaylistCount = len(records)

	return &Result{Session: session, Records: records}, nil
}

// enumerate walks the strategy list in priority order and returns the first
// non-empty record set along with the winning strategy's name.
func (c *PlaylistCollector) enumerate(ctx context.Context, logger *log.Logger, channelURL string, progress chan<- ProgressUpdate) ([]models.PlaylistRecord, string) {
	strategies := c.strategies(channelURL)
	total := len(strategies)

	for i, st := range strategies {
		if ctx.Err() != nil {
			return nil, ""
		}

		c.sendProgress(progress, tryStrategyUpdate(i+1, total, st.name))

		sctx, cancel := context.WithTimeout(ctx, st.timeout)
		records, err := st.run(sctx, c.client)
		cancel()

		if err != nil {
			logger.Warn("strategy failed", "strategy", st.name, "err", err)
			c.sendProgress(progress, strategyFailedUpdate(i+1, total, st.name, err))
			continue
		}

		if len(records) == 0 {
			logger.Debug("strategy returned nothing", "strategy", st.name)
			c.sendProgress(progress, strategyEmptyUpdate(i+1, total, st.name))
			continue
		}

		return records, st.name
	}

	return nil, ""
}

// enrich performs the detailed-mode metadata lookups, one per record.
//
// Lookups only ever touch Title, VideoCount, and Uploader; the id set and the
// derived URLs are fixed once enumeration ends. A failed lookup leaves the
// record's defaults in place.
func (c *PlaylistCollector) enrich(ctx context.Context, logger *log.Logger, records []models.PlaylistRecord, progress chan<- ProgressUpdate) error {
	limiter := rate.NewLimiter(rate.Limit(c.detailRate), 1)
	total := len(records)

	for i := range records {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		c.sendProgress(progress, detailLookupUpdate(i+1, total, records[i]))

		dctx, cancel := context.WithTimeout(ctx, c.detailTimeout)
		info, err := c.client.PlaylistInfo(dctx, records[i].URL)
		cancel()

		if err != nil {
			logger.Warn("detail lookup failed", "playlist", records[i].ID, "err", err)
			c.sendProgress(progress, detailFailedUpdate(i+1, total, records[i], err))
			continue
		}

		if info.Title != "" {
			records[i].Title = info.Title
		}
		if info.VideoCount > 0 {
			records[i].VideoCount = info.VideoCount
		}
		if info.Uploader != "" {
			records[i].Uploader = info.Uploader
		}
	}

	return nil
}

// finalizeDefaults fills the positional title and uploader placeholders on
// records the strategies could not name.
func finalizeDefaults(records []models.PlaylistRecord) {
	for i := range records {
		if records[i].Title == "" {
			records[i].Title = fmt.Sprintf("Playlist %d", i+1)
		}
		if records[i].Uploader == "" {
			records[i].Uploader = models.DefaultUploader
		}
	}
}
