package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	l := SetupWriter(&buf, "info", "json")
	l.Debug("hidden")
	l.Info("day_advanced", "day", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["msg"] != "day_advanced" || rec["day"] != float64(3) {
		t.Errorf("record = %v", rec)
	}
	if L() != l {
		t.Errorf("L() does not return the configured logger")
	}
}

func TestSetupWriterText(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf, "debug", "text").Debug("city_loaded", "name", "springfield")
	if !strings.Contains(buf.String(), "name=springfield") {
		t.Errorf("text output = %q", buf.String())
	}
}
