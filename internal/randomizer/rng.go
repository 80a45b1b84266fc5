package randomizer

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	mrand "math/rand/v2"
)

// attemptRNG gives every attempt its own stream so attempts never share
// random state.
func attemptRNG(seed string, attempt int) *mrand.Rand {
	// Non-cryptographic PRNG is intentional for reproducible seeds.
	// #nosec G404
	return mrand.New(mrand.NewPCG(seedWord(seed, attempt, "a"), seedWord(seed, attempt, "b")))
}

func seedWord(seed string, attempt int, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d:%s", seed, attempt, salt)))
	return h.Sum64()
}

// NewSeed returns a fresh seed string for callers that did not choose one.
func NewSeed() (string, error) {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate seed: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
