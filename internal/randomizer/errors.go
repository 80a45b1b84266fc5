package randomizer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSearchStuck ends one attempt. The orchestrator retries with the next
	// attempt index.
	ErrSearchStuck     = errors.New("search stuck")
	ErrSearchExhausted = errors.New("search exhausted")
	// ErrNotCompletable is returned by Validate for an assignment that cannot
	// be finished from an empty inventory.
	ErrNotCompletable = errors.New("assignment not completable")
	errSphereLimit    = errors.New("sphere limit exceeded")
	errPoolMismatch   = errors.New("item pool does not match slots")
)

type SearchExhaustedError struct {
	Seed     string
	Attempts int
}

func (e *SearchExhaustedError) Error() string {
	return fmt.Sprintf("no completable assignment for seed %q after %d attempts", e.Seed, e.Attempts)
}

func (e *SearchExhaustedError) Unwrap() error { return ErrSearchExhausted }

type UnreachableError struct {
	Spots []string
}

func (e *UnreachableError) Error() string {
	const shown = 5
	list := e.Spots
	more := ""
	if len(list) > shown {
		more = fmt.Sprintf(" and %d more", len(list)-shown)
		list = list[:shown]
	}
	return fmt.Sprintf("%d spots unreachable: %s%s", len(e.Spots), strings.Join(list, ", "), more)
}

func (e *UnreachableError) Unwrap() error { return ErrNotCompletable }

func stuck(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSearchStuck, fmt.Sprintf(format, args...))
}
