package archive

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	id, err := s.Save(Run{Seed: "abc", Options: `{"easy":true}`, Attempts: 3, Spheres: 5, Spoiler: "[Sphere 1]\n"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}
	r, err := s.Get("abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if r.ID != id || r.Attempts != 3 || r.Spheres != 5 || r.Spoiler != "[Sphere 1]\n" || r.Options != `{"easy":true}` {
		t.Fatalf("unexpected run %+v", r)
	}
	if r.CreatedAt == "" {
		t.Fatalf("expected created_at to be set")
	}
}

func TestGetReturnsLatestForSeed(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Save(Run{Seed: "abc", Attempts: 1, Spoiler: "old"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.Save(Run{Seed: "abc", Attempts: 2, Spoiler: "new"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	r, err := s.Get("abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if r.Spoiler != "new" || r.Options != "{}" {
		t.Fatalf("expected newest run with default options, got %+v", r)
	}
}

func TestGetMissingSeed(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecentOrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	for _, seed := range []string{"a", "b", "c"} {
		if _, err := s.Save(Run{Seed: seed, Spoiler: "x"}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	runs, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 || runs[0].Seed != "c" || runs[1].Seed != "b" {
		t.Fatalf("unexpected runs %+v", runs)
	}
	if runs[0].Spoiler != "" {
		t.Fatalf("recent runs should not carry spoiler text")
	}
}

func TestNewReportsOpenFailure(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string) (*sql.DB, error) { return nil, errors.New("boom") }
	if _, err := New(Config{DataDir: t.TempDir()}); err == nil {
		t.Fatalf("expected open failure")
	}
}

func TestDefaultConfig(t *testing.T) {
	orig := userHomeDir
	t.Cleanup(func() { userHomeDir = orig })

	userHomeDir = func() (string, error) { return "/home/player", nil }
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig: %v", err)
	}
	if want := filepath.Join("/home/player", ".lm-randomizer"); cfg.DataDir != want {
		t.Fatalf("got %q want %q", cfg.DataDir, want)
	}

	userHomeDir = func() (string, error) { return "", errors.New("$HOME is not defined") }
	if cfg, err := DefaultConfig(); err == nil {
		t.Fatalf("expected error, got config %+v", cfg)
	}
}
