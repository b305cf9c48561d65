package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("expected defaults for missing file, got error: %v", err)
	}
	if cfg.WorkStart != "09:00" || cfg.WorkEnd != "19:00" {
		t.Errorf("expected default working window, got %s-%s", cfg.WorkStart, cfg.WorkEnd)
	}
	if !cfg.Reminders.Min15 || cfg.Reminders.Day1 {
		t.Errorf("unexpected default reminders: %+v", cfg.Reminders)
	}
	if cfg.StorePath == "" {
		t.Error("expected a default store path")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Config{
		StorePath: "/tmp/agendai-test.json",
		WorkStart: "08:30",
		WorkEnd:   "17:00",
		Reminders: RemindersConfig{Hour1: true},
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if got.StorePath != want.StorePath {
		t.Errorf("store path: got %s, want %s", got.StorePath, want.StorePath)
	}
	if got.WorkStart != "08:30" || got.WorkEnd != "17:00" {
		t.Errorf("working window: got %s-%s", got.WorkStart, got.WorkEnd)
	}
	if !got.Reminders.Hour1 || got.Reminders.Min15 {
		t.Errorf("reminders: got %+v", got.Reminders)
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("work_start: \"10:00\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.WorkStart != "10:00" {
		t.Errorf("expected overridden work start, got %s", cfg.WorkStart)
	}
	if cfg.WorkEnd != "19:00" {
		t.Errorf("expected default work end, got %s", cfg.WorkEnd)
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("work_start: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
