package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"critical", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Writer: &buf, Level: slog.LevelDebug})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer log.Close()

	log.Debug("ingest started", "vendor", "audible.com")
	if !strings.Contains(buf.String(), "ingest started") {
		t.Errorf("log output missing message: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "vendor=audible.com") {
		t.Errorf("log output missing attribute: %q", buf.String())
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Writer: &buf, Level: slog.LevelWarn})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer log.Close()

	log.Info("below threshold")
	if buf.Len() != 0 {
		t.Errorf("info record emitted at warn level: %q", buf.String())
	}
	log.Warn("at threshold")
	if buf.Len() == 0 {
		t.Error("warn record suppressed at warn level")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "audiolog.log")
	log, err := New(Config{FilePath: path, Level: slog.LevelInfo})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.Info("saved acquisition", "book_id", 7)
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "saved acquisition") {
		t.Errorf("log file missing record: %q", data)
	}
}
