// Package engine ties a loaded game structure, the randomizer and the run
// archive together for the CLI and the MCP tools.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/appengine-ltd/lm-randomizer/internal/archive"
	"github.com/appengine-ltd/lm-randomizer/internal/dataset"
	"github.com/appengine-ltd/lm-randomizer/internal/randomizer"
)

var ErrNoArchive = errors.New("engine: run archive disabled")

type Config struct {
	Threads     int
	MaxAttempts int
	Logger      *slog.Logger
}

// Request is one randomization as asked for by a user.
type Request struct {
	Seed              string `json:"seed"`
	EasyMode          bool   `json:"easy_mode"`
	ShuffleSecretRoms bool   `json:"shuffle_secret_roms"`
	NeedGlitches      bool   `json:"need_glitches"`
}

type Outcome struct {
	Request Request
	Source  *dataset.Storage
	Result  *randomizer.Result
	// RunID is zero when the archive is disabled.
	RunID int64
}

type Engine struct {
	structure *dataset.Structure
	store     *archive.Store
	cfg       Config
}

// New builds an Engine. store may be nil to skip archiving.
func New(structure *dataset.Structure, store *archive.Store, cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{structure: structure, store: store, cfg: cfg}
}

func (e *Engine) Source(shuffleSecretRoms bool) (*dataset.Storage, error) {
	return dataset.Build(e.structure, dataset.BuildOptions{ShuffleSecretRoms: shuffleSecretRoms})
}

// Randomize runs the randomizer for req and archives the result. An empty
// seed is replaced with a fresh one.
func (e *Engine) Randomize(ctx context.Context, req Request) (*Outcome, error) {
	if req.Seed == "" {
		seed, err := randomizer.NewSeed()
		if err != nil {
			return nil, err
		}
		req.Seed = seed
	}
	source, err := e.Source(req.ShuffleSecretRoms)
	if err != nil {
		return nil, fmt.Errorf("build game structure: %w", err)
	}
	res, err := randomizer.Randomize(ctx, source, randomizer.Options{
		Seed:         req.Seed,
		EasyMode:     req.EasyMode,
		NeedGlitches: req.NeedGlitches,
		Threads:      e.cfg.Threads,
		MaxAttempts:  e.cfg.MaxAttempts,
		Logger:       e.cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	out := &Outcome{Request: req, Source: source, Result: res}
	if e.store == nil {
		return out, nil
	}
	settings, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode run settings: %w", err)
	}
	id, err := e.store.Save(archive.Run{
		Seed:     req.Seed,
		Options:  string(settings),
		Attempts: res.Attempts,
		Spheres:  len(res.SpoilerLog.Progression),
		Spoiler:  res.SpoilerLog.String(),
	})
	if err != nil {
		return nil, err
	}
	out.RunID = id
	return out, nil
}

// Validate checks that the unmodified game can be completed.
func (e *Engine) Validate(shuffleSecretRoms bool, needGlitches bool) error {
	source, err := e.Source(shuffleSecretRoms)
	if err != nil {
		return err
	}
	opts := randomizer.Options{NeedGlitches: needGlitches}
	return randomizer.Validate(source, opts.InitialFlags()...)
}

func (e *Engine) Spoiler(seed string) (*archive.Run, error) {
	if e.store == nil {
		return nil, ErrNoArchive
	}
	return e.store.Get(seed)
}

func (e *Engine) Recent(limit int) ([]archive.Run, error) {
	if e.store == nil {
		return nil, ErrNoArchive
	}
	return e.store.Recent(limit)
}
