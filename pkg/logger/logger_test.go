package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerWritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "pricing-test", Output: &buf})

	logg.Info(context.Background(), "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["service"] != "pricing-test" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
	if entry["message"] != "hello" {
		t.Fatalf("expected message field, got %v", entry["message"])
	}
}

func TestWithFieldsCarriesThroughContext(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "pricing-test", Output: &buf})

	ctx := logg.WithFields(context.Background(), map[string]any{"job": "promotion-lifecycle"})
	ctx = logg.WithField(ctx, "tick", 3)
	logg.Info(ctx, "tick complete")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["job"] != "promotion-lifecycle" {
		t.Fatalf("expected job field, got %v", entry["job"])
	}
	if entry["tick"] != float64(3) {
		t.Fatalf("expected tick field, got %v", entry["tick"])
	}
}

func TestErrorIncludesErrAndStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "pricing-test", Output: &buf})

	logg.Error(context.Background(), "boom", errors.New("db down"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["error"] != "db down" {
		t.Fatalf("expected error field, got %v", entry["error"])
	}
	if entry["stack"] == nil {
		t.Fatal("expected stack field on error logs")
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatal("expected debug level")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("expected info fallback for empty value")
	}
	if ParseLevel("nonsense") != zerolog.InfoLevel {
		t.Fatal("expected info fallback for unknown value")
	}
}
