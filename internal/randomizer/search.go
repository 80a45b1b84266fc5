package randomizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/appengine-ltd/lm-randomizer/internal/dataset"
	"github.com/appengine-ltd/lm-randomizer/internal/logic"
)

var tracer = otel.Tracer("github.com/appengine-ltd/lm-randomizer/internal/randomizer")

type Result struct {
	Storage    *dataset.Storage
	SpoilerLog *SpoilerLog
	Attempts   int
	// StartingItems are handed to the player at the start of a new game.
	StartingItems []logic.Flag
}

type outcome struct {
	attempt *attempt
	err     error
}

// Randomize searches for a completable shuffle of source. Attempts run in
// generations of opts.Threads and the lowest-numbered successful attempt
// wins, so the thread count never changes the result for a seed.
func Randomize(ctx context.Context, source *dataset.Storage, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	logger := opts.Logger.With(slog.String("seed", opts.Seed))

	ctx, span := tracer.Start(ctx, "randomizer.Randomize", trace.WithAttributes(
		attribute.String("seed", opts.Seed),
		attribute.Int("threads", opts.Threads),
		attribute.Int("max_attempts", opts.MaxAttempts),
	))
	defer span.End()

	res, err := search(ctx, source, opts, logger)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("attempts", res.Attempts), attribute.Int("spheres", len(res.SpoilerLog.Progression)))
	return res, nil
}

func search(ctx context.Context, source *dataset.Storage, opts Options, logger *slog.Logger) (*Result, error) {
	if err := dataset.AssertUnique(source); err != nil {
		return nil, err
	}
	w, err := newWorld(source)
	if err != nil {
		return nil, err
	}
	initial := opts.InitialFlags()

	attempts := 0
	for gen := 0; attempts < opts.MaxAttempts; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		width := min(opts.Threads, opts.MaxAttempts-attempts)
		outcomes, err := runGeneration(ctx, w, opts.Seed, initial, gen, attempts, width)
		if err != nil {
			return nil, err
		}
		for i, out := range outcomes {
			if out.err != nil {
				logger.Debug("attempt failed", slog.Int("attempt", attempts+i), slog.Any("err", out.err))
				continue
			}
			res, err := finish(out.attempt, opts, attempts+i+1)
			if err != nil {
				return nil, err
			}
			logger.Info("randomized",
				slog.Int("attempts", res.Attempts),
				slog.Int("spheres", len(res.SpoilerLog.Progression)),
			)
			return res, nil
		}
		attempts += width
	}
	return nil, &SearchExhaustedError{Seed: opts.Seed, Attempts: attempts}
}

// runGeneration runs width attempts concurrently and waits for all of them.
// Stuck attempts come back as outcomes; any other failure is fatal.
func runGeneration(ctx context.Context, w *world, seed string, initial []logic.Flag, gen, first, width int) ([]outcome, error) {
	_, span := tracer.Start(ctx, "randomizer.generation", trace.WithAttributes(
		attribute.Int("generation", gen),
		attribute.Int("first_attempt", first),
		attribute.Int("width", width),
	))
	defer span.End()

	outcomes := make([]outcome, width)
	var g errgroup.Group
	for i := range width {
		g.Go(func() error {
			a := newAttempt(w, attemptRNG(seed, first+i), initial)
			err := a.run()
			switch {
			case err == nil:
				outcomes[i] = outcome{attempt: a}
			case errors.Is(err, ErrSearchStuck):
				outcomes[i] = outcome{err: err}
			default:
				return fmt.Errorf("attempt %d: %w", first+i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return outcomes, nil
}

// finish turns a completed attempt into a Result and checks it the same
// way an outside caller would.
func finish(a *attempt, opts Options, attempts int) (*Result, error) {
	shuffled := a.apply()
	if err := dataset.AssertUnique(shuffled); err != nil {
		return nil, err
	}
	if err := Validate(shuffled, opts.InitialFlags()...); err != nil {
		return nil, fmt.Errorf("accepted assignment failed replay: %w", err)
	}
	return &Result{
		Storage:       shuffled,
		SpoilerLog:    &SpoilerLog{Progression: a.spheres, Maps: a.maps},
		Attempts:      attempts,
		StartingItems: opts.startingItems(),
	}, nil
}
