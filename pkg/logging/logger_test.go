// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// LEVEL TESTS
// =============================================================================

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"  info  ", LevelInfo},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// =============================================================================
// LOGGER TESTS
// =============================================================================

func TestNew_QuietWithoutFileDiscards(t *testing.T) {
	logger, err := New(Config{Quiet: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer logger.Close()

	// Must not panic and must not write anywhere observable.
	logger.Info("swallowed", "key", "value")
	logger.Error("also swallowed")
}

func TestNew_FileLogging(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Config{
		Level:   LevelDebug,
		LogDir:  dir,
		Service: "editgate-test",
		Quiet:   true,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("gate evaluation finished", "file", "/proj/a.py", "clean", true)
	logger.Debug("detail")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := filepath.Join(dir, "editgate-test_"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("log lines = %d, want 2", len(lines))
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "gate evaluation finished" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["service"] != "editgate-test" {
		t.Errorf("service attribute = %v, want editgate-test", entry["service"])
	}
	if entry["file"] != "/proj/a.py" {
		t.Errorf("file attribute = %v", entry["file"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Config{
		Level:   LevelWarn,
		LogDir:  dir,
		Service: "filter-test",
		Quiet:   true,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("filtered")
	logger.Info("filtered")
	logger.Warn("kept")
	logger.Close()

	want := filepath.Join(dir, "filter-test_"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "filtered") {
		t.Errorf("below-level messages reached the file: %s", content)
	}
	if !strings.Contains(content, "kept") {
		t.Errorf("warn message missing from file: %s", content)
	}
}

func TestNew_UnwritableLogDir(t *testing.T) {
	// A file where the directory should be makes MkdirAll fail.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	logger, err := New(Config{LogDir: blocker, Quiet: true})
	if err == nil {
		t.Error("New() with unwritable LogDir: error = nil, want non-nil")
	}
	if logger == nil {
		t.Fatal("New() must return a usable logger even on file errors")
	}
	logger.Info("still safe to call")
	logger.Close()
}

func TestLogger_With(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Config{LogDir: dir, Service: "with-test", Quiet: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	child := logger.With("run_id", "abc-123")
	child.Info("evaluation started")
	logger.Close()

	want := filepath.Join(dir, "with-test_"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "abc-123") {
		t.Errorf("derived attributes missing: %s", data)
	}
}

func TestDefault_Singleton(t *testing.T) {
	a := Default()
	b := Default()
	if a != b {
		t.Error("Default() returned different instances")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Info("nothing happens")
	if logger.Slog() == nil {
		t.Error("Slog() = nil")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/.editgate/logs", filepath.Join(home, ".editgate", "logs")},
		{"/var/log/editgate", "/var/log/editgate"},
		{"relative/logs", "relative/logs"},
	}
	for _, tt := range tests {
		if got := expandHome(tt.in); got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
