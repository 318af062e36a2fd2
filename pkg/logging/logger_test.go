// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestLevel_String(t *testing.T) {
	if LevelDebug.String() != "DEBUG" || LevelError.String() != "ERROR" {
		t.Error("unexpected level names")
	}
	if Level(99).String() != "UNKNOWN" {
		t.Error("out-of-range level must stringify as UNKNOWN")
	}
}

func TestWriterLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, Config{Level: LevelWarn})

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("sub-threshold entries leaked: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn entry missing: %s", out)
	}
}

func TestWriterLogger_JSONWithServiceAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, Config{JSON: true, Service: "registry"})

	logger.Info("record created", "id", 7)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["service"] != "registry" {
		t.Errorf("missing service attribute: %v", entry)
	}
	if entry["msg"] != "record created" {
		t.Errorf("unexpected message: %v", entry)
	}
}

func TestNew_FileDestination(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{
		Level:   LevelInfo,
		LogDir:  dir,
		Service: "registry",
		JSON:    true,
		Quiet:   true,
	})

	logger.Info("startup complete")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Second close is a no-op.
	if err := logger.Close(); err != nil {
		t.Errorf("repeat Close failed: %v", err)
	}

	name := "registry_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "startup complete") {
		t.Errorf("entry missing from file: %s", data)
	}
}

func TestNew_CreatesMissingLogDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	logger := New(Config{LogDir: dir, Quiet: true})
	defer logger.Close()

	logger.Info("hello")

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("log directory not created: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in test environment")
	}

	got, err := expandHome("~/.civicdesk/logs")
	if err != nil {
		t.Fatalf("expandHome failed: %v", err)
	}
	if got != filepath.Join(home, ".civicdesk", "logs") {
		t.Errorf("unexpected expansion: %s", got)
	}

	// Absolute paths pass through untouched.
	if got, _ := expandHome("/var/log/civicdesk"); got != "/var/log/civicdesk" {
		t.Errorf("absolute path modified: %s", got)
	}
}
