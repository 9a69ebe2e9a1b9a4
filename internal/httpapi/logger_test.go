package httpapi

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "json")
	log.Info().Str("k", "v").Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if line["service"] != "cobecium" {
		t.Fatalf("expected service field, got %v", line)
	}
	if line["message"] != "hello" || line["k"] != "v" {
		t.Fatalf("unexpected log line %v", line)
	}
}

func TestNewLogger_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, " Console ")
	log.Info().Msg("hello")

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected console output, got JSON: %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected message in console output, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
