package randomizer

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/appengine-ltd/lm-randomizer/internal/logic"
)

const (
	DefaultMaxAttempts = 10000

	easyModeItem logic.Flag = "gameMaster"
)

type Options struct {
	Seed         string
	EasyMode     bool
	NeedGlitches bool
	// Threads is the number of attempts per generation. Zero means one per CPU.
	Threads     int
	MaxAttempts int
	Logger      *slog.Logger
}

func (o Options) Validate() error {
	if strings.TrimSpace(o.Seed) == "" {
		return fmt.Errorf("seed is required")
	}
	if o.Threads < 0 {
		return fmt.Errorf("threads must not be negative, got %d", o.Threads)
	}
	if o.MaxAttempts < 0 {
		return fmt.Errorf("max attempts must not be negative, got %d", o.MaxAttempts)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.Threads == 0 {
		o.Threads = runtime.NumCPU()
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// InitialFlags are the flags held before anything is picked up.
func (o Options) InitialFlags() []logic.Flag {
	if o.NeedGlitches {
		return []logic.Flag{logic.GlitchOption}
	}
	return nil
}

func (o Options) startingItems() []logic.Flag {
	if o.EasyMode {
		return []logic.Flag{easyModeItem}
	}
	return nil
}
