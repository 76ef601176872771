package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Extractor.Binary != "yt-dlp" {
			t.Errorf("expected extractor binary yt-dlp, got %s", config.Extractor.Binary)
		}

		if config.Extractor.StrategyTimeout() != 60*time.Second {
			t.Errorf("expected 60s strategy timeout, got %s", config.Extractor.StrategyTimeout())
		}

		if config.Extractor.FallbackTimeout() != 90*time.Second {
			t.Errorf("expected 90s fallback timeout, got %s", config.Extractor.FallbackTimeout())
		}

		if config.Extractor.DetailTimeout() != 30*time.Second {
			t.Errorf("expected 30s detail timeout, got %s", config.Extractor.DetailTimeout())
		}

		if config.Output.Path != "channel_playlists.txt" {
			t.Errorf("expected output path channel_playlists.txt, got %s", config.Output.Path)
		}

		if config.Database.Path != "./chanlist.db" {
			t.Errorf("expected database path ./chanlist.db, got %s", config.Database.Path)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[extractor]
binary = "/usr/local/bin/yt-dlp"
strategy_timeout_seconds = 10
fallback_timeout_seconds = 20
detail_timeout_seconds = 5
detail_rate_limit = 2.0

[output]
path = "/tmp/playlists.txt"
log_path = "/tmp/chanlist.log"

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Extractor.Binary != "/usr/local/bin/yt-dlp" {
			t.Errorf("expected custom binary path, got %s", config.Extractor.Binary)
		}

		if config.Extractor.StrategyTimeout() != 10*time.Second {
			t.Errorf("expected 10s strategy timeout, got %s", config.Extractor.StrategyTimeout())
		}

		if config.Output.Path != "/tmp/playlists.txt" {
			t.Errorf("expected output path /tmp/playlists.txt, got %s", config.Output.Path)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
