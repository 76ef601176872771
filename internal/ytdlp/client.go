// Package ytdlp wraps the yt-dlp binary behind a small client interface.
//
// Everything the rest of the tool knows about YouTube comes through here: the
// collector composes these calls into extraction strategies, and nothing else
// in the repository spawns the binary.
package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"chanlist/internal/shared"
)

// DefaultBinary is the executable name used when no path is configured.
const DefaultBinary = "yt-dlp"

// Client defines the interface for querying the extraction binary.
type Client interface {
	// Version probes the binary and returns its version string.
	Version(ctx context.Context) (string, error)
	// Print runs a flat-playlist extraction printing one template per entry and
	// returns the non-empty output lines.
	Print(ctx context.Context, url, template string) ([]string, error)
	// DumpFlat runs a flat-playlist JSON dump and returns the decoded entries.
	// Lines that fail to decode are skipped.
	DumpFlat(ctx context.Context, url string) ([]Entry, error)
	// PlaylistInfo fetches playlist-level metadata for a single playlist URL.
	PlaylistInfo(ctx context.Context, playlistURL string) (*PlaylistInfo, error)
}

// CommandClient implements Client by calling the yt-dlp binary.
type CommandClient struct {
	// BinaryPath is the path to the yt-dlp executable. Defaults to "yt-dlp".
	BinaryPath string
	// CookiesPath, when set, is appended to every invocation as --cookies.
	CookiesPath string
}

// NewClient creates a CommandClient for the given binary and optional cookie file.
func NewClient(binary, cookiesPath string) *CommandClient {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CommandClient{BinaryPath: binary, CookiesPath: cookiesPath}
}

// run executes the binary with the given arguments and returns captured stdout.
func (c *CommandClient) run(ctx context.Context, args []string) (*bytes.Buffer, error) {
	bin := c.BinaryPath
	if bin == "" {
		bin = DefaultBinary
	}

	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return nil, fmt.Errorf("%w: %v", shared.ErrExtractionFailed, err)
		}
		return nil, fmt.Errorf("%w: %v: %s", shared.ErrExtractionFailed, err, detail)
	}

	return &stdout, nil
}

// args assembles flags, the optional cookie flag, and the target URL, keeping
// the URL as the final argument.
func (c *CommandClient) args(url string, flags ...string) []string {
	out := append([]string{}, flags...)
	if c.CookiesPath != "" {
		out = append(out, "--cookies", c.CookiesPath)
	}
	return append(out, url)
}

// Version probes the binary with --version.
func (c *CommandClient) Version(ctx context.Context) (string, error) {
	bin := c.BinaryPath
	if bin == "" {
		bin = DefaultBinary
	}

	cmd := exec.CommandContext(ctx, bin, "--version")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s: %v", shared.ErrExtractorNotFound, bin, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Print runs `--flat-playlist --print <template>` against the URL.
func (c *CommandClient) Print(ctx context.Context, url, template string) ([]string, error) {
	stdout, err := c.run(ctx, c.args(url, "--flat-playlist", "--print", template))
	if err != nil {
		return nil, err
	}

	var lines []string
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read extractor output: %w", err)
	}

	return lines, nil
}

// DumpFlat runs `--dump-json --flat-playlist` against the URL and decodes each
// output line as one entry. Undecodable lines are skipped, matching the
// tolerance the extractor's mixed output requires.
func (c *CommandClient) DumpFlat(ctx context.Context, url string) ([]Entry, error) {
	stdout, err := c.run(ctx, c.args(url, "--dump-json", "--flat-playlist", "--no-warnings"))
	if err != nil {
		return nil, err
	}

	var entries []Entry
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read extractor output: %w", err)
	}

	return entries, nil
}

// PlaylistInfo fetches playlist-level metadata by dumping the playlist flat and
// reading the playlist_* fields off the first decodable entry.
func (c *CommandClient) PlaylistInfo(ctx context.Context, playlistURL string) (*PlaylistInfo, error) {
	stdout, err := c.run(ctx, c.args(playlistURL, "--flat-playlist", "--dump-json"))
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}

		return &PlaylistInfo{
			ID:         entry.PlaylistID,
			Title:      entry.PlaylistTitle,
			VideoCount: entry.PlaylistCount,
			Uploader:   entry.PlaylistUploader,
		}, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read extractor output: %w", err)
	}

	return nil, fmt.Errorf("%w: no metadata in extractor output", shared.ErrExtractionFailed)
}
