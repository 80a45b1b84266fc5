package randomizer

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/appengine-ltd/lm-randomizer/internal/dataset"
	"github.com/appengine-ltd/lm-randomizer/internal/logic"
)

func TestRandomizeProducesCompletableShuffle(t *testing.T) {
	for _, shuffleRoms := range []bool{false, true} {
		source := loadStorage(t, dataset.BuildOptions{ShuffleSecretRoms: shuffleRoms})
		res, err := Randomize(context.Background(), source, Options{Seed: "completable", Threads: 2})
		if err != nil {
			t.Fatalf("roms=%v: Randomize: %v", shuffleRoms, err)
		}
		if err := Validate(res.Storage); err != nil {
			t.Fatalf("roms=%v: result does not replay: %v", shuffleRoms, err)
		}
		if err := dataset.AssertUnique(res.Storage); err != nil {
			t.Fatalf("roms=%v: duplicate flags: %v", shuffleRoms, err)
		}
		if res.Attempts < 1 {
			t.Fatalf("expected at least one attempt, got %d", res.Attempts)
		}
		if got, want := len(res.Storage.Items()), len(source.Items()); got != want {
			t.Fatalf("item count changed: %d != %d", got, want)
		}
	}
}

func TestRandomizeIsDeterministic(t *testing.T) {
	source := loadStorage(t, dataset.BuildOptions{})
	opts := Options{Seed: "same-seed", Threads: 3}
	first, err := Randomize(context.Background(), source, opts)
	if err != nil {
		t.Fatalf("Randomize: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := Randomize(context.Background(), source, opts)
		if err != nil {
			t.Fatalf("Randomize: %v", err)
		}
		if again.SpoilerLog.String() != first.SpoilerLog.String() {
			t.Fatalf("spoiler differs between runs:\n%s\nvs\n%s", first.SpoilerLog, again.SpoilerLog)
		}
		if again.Attempts != first.Attempts {
			t.Fatalf("attempt count differs: %d != %d", again.Attempts, first.Attempts)
		}
	}
}

func TestRandomizeIgnoresThreadCount(t *testing.T) {
	source := loadStorage(t, dataset.BuildOptions{})
	one, err := Randomize(context.Background(), source, Options{Seed: "threads", Threads: 1})
	if err != nil {
		t.Fatalf("Randomize: %v", err)
	}
	for _, threads := range []int{2, 5} {
		res, err := Randomize(context.Background(), source, Options{Seed: "threads", Threads: threads})
		if err != nil {
			t.Fatalf("Randomize with %d threads: %v", threads, err)
		}
		if res.SpoilerLog.String() != one.SpoilerLog.String() || res.Attempts != one.Attempts {
			t.Fatalf("%d threads gave a different result", threads)
		}
	}
}

func TestRandomizeDoesNotTouchSource(t *testing.T) {
	source := loadStorage(t, dataset.BuildOptions{})
	before := source.Clone()
	if _, err := Randomize(context.Background(), source, Options{Seed: "untouched", Threads: 2}); err != nil {
		t.Fatalf("Randomize: %v", err)
	}
	if !reflect.DeepEqual(before, source) {
		t.Fatalf("source storage was modified")
	}
}

func TestRequirementFreeSpotsLandInFirstSphere(t *testing.T) {
	source := loadStorage(t, dataset.BuildOptions{})
	res, err := Randomize(context.Background(), source, Options{Seed: "first-sphere", Threads: 2})
	if err != nil {
		t.Fatalf("Randomize: %v", err)
	}
	first := map[dataset.SpotID]bool{}
	for _, cp := range res.SpoilerLog.Progression[0] {
		if !cp.IsEvent() {
			first[cp.Spot.ID()] = true
		}
	}
	for _, cp := range res.SpoilerLog.Maps {
		if cp.Spot.Requirement == nil {
			first[cp.Spot.ID()] = true
		}
	}
	for _, is := range source.ItemSpots {
		if is.Spot.Requirement == nil && !first[is.Spot.ID()] {
			t.Fatalf("%s has no requirement but is not in sphere 1", is.Spot)
		}
	}
	for _, shop := range source.Shops {
		if shop.Spot.Requirement == nil && !first[shop.Spot.ID()] {
			t.Fatalf("%s has no requirement but is not in sphere 1", shop.Spot)
		}
	}
}

func TestCategoryFairness(t *testing.T) {
	source := loadStorage(t, dataset.BuildOptions{ShuffleSecretRoms: true})
	for _, seed := range []string{"fair-1", "fair-2", "fair-3"} {
		res, err := Randomize(context.Background(), source, Options{Seed: seed, Threads: 2})
		if err != nil {
			t.Fatalf("Randomize(%s): %v", seed, err)
		}
		for i, is := range res.Storage.ItemSpots {
			src := source.ItemSpots[i]
			it := is.Item
			switch {
			case src.Spot.Kind == dataset.Chest && src.Item.IsMap():
				if it != src.Item {
					t.Fatalf("%s: map moved, got %s", is.Spot, it.Flag)
				}
			case is.Spot.Kind == dataset.Talk:
				if !it.CanTalk() {
					t.Fatalf("%s: %s cannot be given by talking", is.Spot, it.Flag)
				}
			}
			if it.IsConsumable() {
				t.Fatalf("%s: consumable %s outside a shop", is.Spot, it.Flag)
			}
		}
		for i, shop := range res.Storage.Shops {
			sold := map[logic.Flag]bool{}
			for j, it := range shop.Items {
				src := source.Shops[i].Items[j]
				if src == nil {
					if it != nil {
						t.Fatalf("%s[%d]: empty slot was filled", shop.Spot, j)
					}
					continue
				}
				if src.IsConsumable() != it.IsConsumable() {
					t.Fatalf("%s[%d]: consumable slot mismatch, got %s", shop.Spot, j, it.Flag)
				}
				if !it.CanDisplayInShop() {
					t.Fatalf("%s[%d]: %s cannot be sold", shop.Spot, j, it.Flag)
				}
				if it.IsConsumable() && sold[it.Flag] {
					t.Fatalf("%s sells %s twice", shop.Spot, it.Flag)
				}
				sold[it.Flag] = true
			}
		}
	}
}

func TestSphereScenarioOrdersProgression(t *testing.T) {
	source := newStorage(t,
		chest(0, "spotA", "x", nil),
		chest(1, "spotB", "y", all("x")),
		chest(2, "spotC", "z", all("x", "y")),
	)
	res, err := Randomize(context.Background(), source, Options{Seed: "abc", Threads: 2})
	if err != nil {
		t.Fatalf("Randomize: %v", err)
	}
	want := "[Sphere 1]\n" +
		"Surface_Chest(spotA) = x\n" +
		"\n" +
		"[Sphere 2]\n" +
		"Surface_Chest(spotB) = y\n" +
		"\n" +
		"[Sphere 3]\n" +
		"Surface_Chest(spotC) = z\n"
	if got := res.SpoilerLog.String(); got != want {
		t.Fatalf("unexpected spoiler:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnsolvableStorageExhausts(t *testing.T) {
	source := newStorage(t, chest(0, "locked", "key", all("key")))
	_, err := Randomize(context.Background(), source, Options{Seed: "locked", Threads: 2, MaxAttempts: 5})
	var exhausted *SearchExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected SearchExhaustedError, got %v", err)
	}
	if exhausted.Attempts != 5 || exhausted.Seed != "locked" {
		t.Fatalf("unexpected error fields %+v", exhausted)
	}
	if !errors.Is(err, ErrSearchExhausted) {
		t.Fatalf("expected ErrSearchExhausted in chain")
	}
}

func TestNeedGlitchesOpensOptionSpots(t *testing.T) {
	source := newStorage(t,
		chest(0, "open", "x", nil),
		chest(1, "glitched", "y", all("option:glitch")),
	)
	if _, err := Randomize(context.Background(), source, Options{Seed: "g", Threads: 1, MaxAttempts: 3}); !errors.Is(err, ErrSearchExhausted) {
		t.Fatalf("expected exhaustion without glitches, got %v", err)
	}
	res, err := Randomize(context.Background(), source, Options{Seed: "g", Threads: 1, NeedGlitches: true})
	if err != nil {
		t.Fatalf("Randomize with glitches: %v", err)
	}
	if len(res.SpoilerLog.Progression) != 1 {
		t.Fatalf("expected one sphere, got %d", len(res.SpoilerLog.Progression))
	}
}

func TestEasyModeStartsWithGameMaster(t *testing.T) {
	source := newStorage(t, chest(0, "open", "x", nil))
	res, err := Randomize(context.Background(), source, Options{Seed: "easy", EasyMode: true, Threads: 1})
	if err != nil {
		t.Fatalf("Randomize: %v", err)
	}
	if !reflect.DeepEqual(res.StartingItems, []logic.Flag{"gameMaster"}) {
		t.Fatalf("unexpected starting items %v", res.StartingItems)
	}
}

func TestRandomizeHonoursCancelledContext(t *testing.T) {
	source := newStorage(t, chest(0, "open", "x", nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Randomize(ctx, source, Options{Seed: "cancel"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRandomizeRejectsDuplicateSource(t *testing.T) {
	source := newStorage(t, chest(0, "a", "x", nil), chest(1, "b", "x", nil))
	_, err := Randomize(context.Background(), source, Options{Seed: "dup"})
	if !errors.Is(err, dataset.ErrDuplicateAssignment) {
		t.Fatalf("expected duplicate assignment, got %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		opts    Options
		wantErr bool
	}{
		{opts: Options{Seed: "ok"}},
		{opts: Options{}, wantErr: true},
		{opts: Options{Seed: "x", Threads: -1}, wantErr: true},
		{opts: Options{Seed: "x", MaxAttempts: -2}, wantErr: true},
	}
	for _, tc := range tests {
		err := tc.opts.Validate()
		if (err != nil) != tc.wantErr {
			t.Fatalf("Validate(%+v)=%v wantErr=%v", tc.opts, err, tc.wantErr)
		}
	}
}
