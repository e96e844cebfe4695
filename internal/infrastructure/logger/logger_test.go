package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/LavaJover/shvark-settlement-service/internal/config"
)

func TestNewJSONLoggerTagsService(t *testing.T) {
	var buf bytes.Buffer
	l := New(config.LogConfig{LogLevel: "info", LogFormat: "json"}, &buf)
	l.Info("wallet debited", "seller_id", "seller-1")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if line["service"] != "settlement-service" || line["seller_id"] != "seller-1" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(config.LogConfig{LogLevel: "warn", LogFormat: "text"}, &buf)
	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
