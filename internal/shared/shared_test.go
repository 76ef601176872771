package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	tu "chanlist/internal/testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("writes to provided writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello from test")

		if !strings.Contains(buf.String(), "hello from test") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
	})

	t.Run("nil writer defaults to stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected logger, got nil")
		}
	})

	t.Run("WithLogger attaches context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "collector")
		logger.Info("tagged")

		if !strings.Contains(buf.String(), "collector") {
			t.Errorf("expected log output to contain component tag, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel filters output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)
		logger.Info("should be filtered")

		if strings.Contains(buf.String(), "should be filtered") {
			t.Errorf("expected info output to be filtered at error level, got %q", buf.String())
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chanlist.log")

	logger, closer, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}

	logger.Info("file logger message")
	if err := closer.Close(); err != nil {
		t.Fatalf("failed to close log file: %v", err)
	}

	content := tu.MustReadFile(t, path)
	if !strings.Contains(content, "file logger message") {
		t.Errorf("expected log file to contain message, got %q", content)
	}
}

func TestGenerateID(t *testing.T) {
	id1 := GenerateID()
	id2 := GenerateID()

	if id1 == "" || id2 == "" {
		t.Fatal("expected non-empty ids")
	}
	if id1 == id2 {
		t.Errorf("expected unique ids, got %s twice", id1)
	}
	if len(strings.Split(id1, "-")) != 5 {
		t.Errorf("expected UUID shape, got %s", id1)
	}
}
