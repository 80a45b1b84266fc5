package randomizer

import "testing"

func TestAttemptRNGDeterministic(t *testing.T) {
	rngA := attemptRNG("seed", 3)
	rngB := attemptRNG("seed", 3)

	for i := 0; i < 20; i++ {
		gotA := rngA.IntN(100000)
		gotB := rngB.IntN(100000)
		if gotA != gotB {
			t.Fatalf("expected deterministic sequence, mismatch at %d: %d != %d", i, gotA, gotB)
		}
	}
}

func TestSeedWordChangesWithSaltAndAttempt(t *testing.T) {
	if seedWord("seed", 0, "a") == seedWord("seed", 0, "b") {
		t.Fatalf("expected different seed words for different salts")
	}
	if seedWord("seed", 0, "a") == seedWord("seed", 1, "a") {
		t.Fatalf("expected different seed words for different attempts")
	}
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	if len(a) != 12 || a == b {
		t.Fatalf("unexpected seeds %q %q", a, b)
	}
}
