// Package archive keeps a history of randomizer runs in SQLite so a
// spoiler log can be looked up again by seed.
package archive

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

var ErrNotFound = errors.New("archive: run not found")

// Run is one archived randomizer result.
type Run struct {
	ID        int64  `json:"id"`
	Seed      string `json:"seed"`
	Options   string `json:"options"`
	Attempts  int    `json:"attempts"`
	Spheres   int    `json:"spheres"`
	Spoiler   string `json:"spoiler,omitempty"`
	CreatedAt string `json:"created_at"`
}

type Config struct {
	DataDir string
}

// userHomeDir is a package-level var to allow test injection.
var userHomeDir = os.UserHomeDir

// DefaultConfig stores the archive under ~/.lm-randomizer.
func DefaultConfig() (Config, error) {
	home, err := userHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("archive: locate home directory: %w", err)
	}
	return Config{DataDir: filepath.Join(home, ".lm-randomizer")}, nil
}

type Store struct {
	db *sql.DB
}

// New creates the data directory if needed, opens SQLite in WAL mode and
// runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("archive: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "runs.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("archive: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("archive: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("archive: migration: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			seed       TEXT    NOT NULL,
			options    TEXT    NOT NULL DEFAULT '{}',
			attempts   INTEGER NOT NULL,
			spheres    INTEGER NOT NULL,
			spoiler    TEXT    NOT NULL,
			created_at TEXT    NOT NULL DEFAULT (datetime('now'))
		);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save archives a run and returns its id.
func (s *Store) Save(r Run) (int64, error) {
	if r.Options == "" {
		r.Options = "{}"
	}
	res, err := s.db.Exec(
		`INSERT INTO runs (seed, options, attempts, spheres, spoiler) VALUES (?, ?, ?, ?, ?)`,
		r.Seed, r.Options, r.Attempts, r.Spheres, r.Spoiler,
	)
	if err != nil {
		return 0, fmt.Errorf("archive: save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("archive: save run: %w", err)
	}
	return id, nil
}

// Get returns the latest run archived for seed.
func (s *Store) Get(seed string) (*Run, error) {
	var r Run
	err := s.db.QueryRow(
		`SELECT id, seed, options, attempts, spheres, spoiler, created_at
		 FROM runs WHERE seed = ? ORDER BY id DESC LIMIT 1`, seed,
	).Scan(&r.ID, &r.Seed, &r.Options, &r.Attempts, &r.Spheres, &r.Spoiler, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("archive: get run: %w", err)
	}
	return &r, nil
}

// Recent lists the newest runs first, without their spoiler text.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, seed, options, attempts, spheres, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("archive: recent runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Seed, &r.Options, &r.Attempts, &r.Spheres, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("archive: scan run: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("archive: recent runs: %w", err)
	}
	return out, nil
}
