package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPattern_Build(t *testing.T) {
	tm := time.Date(2026, 2, 3, 4, 5, 0, 0, time.UTC)

	tests := []struct {
		pattern string
		want    string
	}{
		{"netdog.log", "netdog.log"},
		{"netdog_%Y%m%d.log", "netdog_20260203.log"},
		{"netdog_%y-%m-%d_%H%M.log", "netdog_26-02-03_0405.log"},
		{"netdog_100%%_%d.log", "netdog_100%_03.log"},
		{"netdog_%x.log", "netdog_%x.log"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p := ParsePattern(tt.pattern)
			if got := p.Build(tm); got != tt.want {
				t.Errorf("expected %q but got %q", tt.want, got)
			}
			if p.String() != tt.pattern {
				t.Errorf("String should return the raw pattern: %q", p.String())
			}
		})
	}
}

func TestPattern_Match(t *testing.T) {
	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	p := ParsePattern("netdog_%Y%m%d.log")

	tests := []struct {
		name string
		want bool
	}{
		{"netdog_20260203.log", true},
		{"netdog_20261231.log", true},
		{"netdog_20250203.log", false},
		{"netdog_20269903.log", false},
		{"other_20260203.log", false},
		{"netdog_20260203.log.gz", false},
		{"netdog_.log", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Match(tt.name, since, until); got != tt.want {
				t.Errorf("expected %v but got %v", tt.want, got)
			}
		})
	}
}

func TestPattern_ListBetween(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{
		"netdog_20260201.log",
		"netdog_20260202.log",
		"netdog_20250130.log",
		"unrelated.txt",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("failed to prepare file: %s", err)
		}
	}

	p := ParsePattern(filepath.Join(dir, "netdog_%Y%m%d.log"))

	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	paths := p.ListBetween(since, until)
	if len(paths) != 2 {
		t.Fatalf("expected 2 files but got %d: %v", len(paths), paths)
	}
	if filepath.Base(paths[0]) != "netdog_20260201.log" || filepath.Base(paths[1]) != "netdog_20260202.log" {
		t.Errorf("unexpected files: %v", paths)
	}

	fixed := ParsePattern(filepath.Join(dir, "netdog.log"))
	paths = fixed.ListBetween(since, until)
	if len(paths) != 1 || filepath.Base(paths[0]) != "netdog.log" {
		t.Errorf("a pattern without date specifiers should list itself: %v", paths)
	}
}
