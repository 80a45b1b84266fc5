package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/appengine-ltd/lm-randomizer/internal/archive"
	"github.com/appengine-ltd/lm-randomizer/internal/config"
	"github.com/appengine-ltd/lm-randomizer/internal/dataset"
	"github.com/appengine-ltd/lm-randomizer/internal/engine"
	"github.com/appengine-ltd/lm-randomizer/internal/randomizer"
	"github.com/appengine-ltd/lm-randomizer/internal/server"
	"github.com/appengine-ltd/lm-randomizer/internal/snapshot"
	"github.com/appengine-ltd/lm-randomizer/internal/telemetry"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `usage: lm-randomizer <command> [flags]

commands:
  randomize   shuffle items and write the spoiler log
  validate    check that the vanilla or a saved layout can be completed
  serve       run the MCP server on stdio
  version     print version and exit
`

// setupTelemetry is a package-level var to allow test injection.
var setupTelemetry = telemetry.Setup

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one command and returns the process exit code. Deferred
// cleanup runs before main exits.
func run(args []string) int {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}
	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := setupTelemetry(ctx, cfg.OTelEndpoint, "lm-randomizer")
	if err != nil {
		return fail(fmt.Errorf("telemetry: %w", err))
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown", slog.Any("err", err))
		}
	}()

	rest := args[1:]
	switch args[0] {
	case "randomize":
		err = runRandomize(ctx, cfg, logger, rest)
	case "validate":
		err = runValidate(cfg, rest)
	case "serve":
		err = runServe(cfg, logger, rest)
	case "version", "-version", "--version":
		fmt.Printf("lm-randomizer %s (%s) %s\n", version, commit, date)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}
	if err != nil {
		return fail(err)
	}
	return 0
}

func runRandomize(ctx context.Context, cfg config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("randomize", flag.ExitOnError)
	structureDir := fs.String("structure", cfg.StructureDir, "directory of game structure YAML files")
	seed := fs.String("seed", cfg.Seed, "seed (default: a fresh random seed)")
	easy := fs.Bool("easy", cfg.EasyMode, "start with the Game Master ROM")
	shuffleRoms := fs.Bool("shuffle-secret-roms", cfg.ShuffleSecretRoms, "put secret ROM spots in the item pool")
	glitches := fs.Bool("need-glitches", cfg.NeedGlitches, "allow logic that depends on glitches")
	threads := fs.Int("threads", cfg.Threads, "parallel attempts per generation (default: number of CPUs)")
	maxAttempts := fs.Int("max-attempts", cfg.MaxAttempts, "attempts before giving up")
	outPath := fs.String("out", "", "write the shuffled layout as JSON to this path")
	spoilerPath := fs.String("spoiler", "", "write the spoiler log to this path instead of stdout")
	noArchive := fs.Bool("no-archive", cfg.NoArchive, "do not record the run in the archive")
	_ = fs.Parse(args)

	e, closeStore, err := newEngine(cfg, *structureDir, *noArchive, engine.Config{
		Threads:     *threads,
		MaxAttempts: *maxAttempts,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer closeStore()

	out, err := e.Randomize(ctx, engine.Request{
		Seed:              strings.TrimSpace(*seed),
		EasyMode:          *easy,
		ShuffleSecretRoms: *shuffleRoms,
		NeedGlitches:      *glitches,
	})
	if err != nil {
		var exhausted *randomizer.SearchExhaustedError
		if errors.As(err, &exhausted) {
			return fmt.Errorf("%w (try another seed or raise -max-attempts)", err)
		}
		return err
	}
	logger.Info("randomized",
		slog.String("seed", out.Request.Seed),
		slog.Int("attempts", out.Result.Attempts),
		slog.Int("spheres", len(out.Result.SpoilerLog.Progression)),
		slog.Int64("run", out.RunID),
	)

	if *outPath != "" {
		if err := writeFile(*outPath, func(w io.Writer) error {
			return snapshot.NewWriter(w).ReplaceItems(out.Source, out.Result.Storage)
		}); err != nil {
			return fmt.Errorf("write layout: %w", err)
		}
	}

	spoiler := out.Result.SpoilerLog.String()
	if *spoilerPath == "" {
		fmt.Printf("Seed: %s\n\n%s", out.Request.Seed, spoiler)
		return nil
	}
	if err := os.WriteFile(*spoilerPath, []byte(spoiler), 0o644); err != nil {
		return fmt.Errorf("write spoiler: %w", err)
	}
	fmt.Printf("seed %s written to %s\n", out.Request.Seed, *spoilerPath)
	return nil
}

func runValidate(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	structureDir := fs.String("structure", cfg.StructureDir, "directory of game structure YAML files")
	shuffleRoms := fs.Bool("shuffle-secret-roms", cfg.ShuffleSecretRoms, "put secret ROM spots in the item pool")
	glitches := fs.Bool("need-glitches", cfg.NeedGlitches, "allow logic that depends on glitches")
	snapshotPath := fs.String("snapshot", "", "validate a layout written by randomize -out")
	_ = fs.Parse(args)

	opts := randomizer.Options{NeedGlitches: *glitches}
	if *snapshotPath != "" {
		f, err := os.Open(*snapshotPath)
		if err != nil {
			return err
		}
		defer f.Close()
		s, err := snapshot.Decode(f)
		if err != nil {
			return fmt.Errorf("read layout: %w", err)
		}
		if err := randomizer.Validate(s, opts.InitialFlags()...); err != nil {
			return err
		}
		fmt.Println("layout is completable")
		return nil
	}

	e, closeStore, err := newEngine(cfg, *structureDir, true, engine.Config{})
	if err != nil {
		return err
	}
	defer closeStore()
	if err := e.Validate(*shuffleRoms, *glitches); err != nil {
		return err
	}
	fmt.Println("layout is completable")
	return nil
}

func runServe(cfg config.Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	structureDir := fs.String("structure", cfg.StructureDir, "directory of game structure YAML files")
	noArchive := fs.Bool("no-archive", cfg.NoArchive, "do not record runs in the archive")
	_ = fs.Parse(args)

	e, closeStore, err := newEngine(cfg, *structureDir, *noArchive, engine.Config{
		Threads:     cfg.Threads,
		MaxAttempts: cfg.MaxAttempts,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer closeStore()

	server.Version = version
	logger.Info("serving MCP on stdio", slog.String("structure", *structureDir))
	return server.ServeStdio(server.New(e))
}

func newEngine(cfg config.Config, structureDir string, noArchive bool, ecfg engine.Config) (*engine.Engine, func(), error) {
	st, err := dataset.Load(structureDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load game structure: %w", err)
	}
	if noArchive {
		return engine.New(st, nil, ecfg), func() {}, nil
	}
	acfg := archive.Config{DataDir: cfg.DataDir}
	if acfg.DataDir == "" {
		if acfg, err = archive.DefaultConfig(); err != nil {
			return nil, nil, fmt.Errorf("%w (set LMR_DATA_DIR or -no-archive)", err)
		}
	}
	store, err := archive.New(acfg)
	if err != nil {
		return nil, nil, err
	}
	return engine.New(st, store, ecfg), func() { _ = store.Close() }, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, err)
	return 1
}
