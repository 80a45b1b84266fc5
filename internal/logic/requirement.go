package logic

import (
	"sort"
	"strconv"
	"strings"
)

const (
	sacredOrbPrefix = "sacredOrb:"
	mapPrefix       = "map:"
	eventPrefix     = "event:"
)

// Flag is a named piece of game state an item or event grants.
type Flag string

// GlitchOption holds when the player opts into glitch logic.
const GlitchOption Flag = "option:glitch"

// escapeHatch lists the flags that nothing in the game grants. They are
// switched on by options instead.
var escapeHatch = []Flag{GlitchOption}

// EscapeHatch returns the option flags that may appear in a requirement
// without a grant.
func EscapeHatch() []Flag {
	return append([]Flag(nil), escapeHatch...)
}

// NeedsNoGrant reports whether f holds without anything granting it: a
// known option, or a `sacredOrb:N` count test.
func (f Flag) NeedsNoGrant() bool {
	for _, o := range escapeHatch {
		if f == o {
			return true
		}
	}
	_, threshold := f.SacredOrbThreshold()
	return threshold
}

func (f Flag) IsSacredOrb() bool { return strings.HasPrefix(string(f), sacredOrbPrefix) }
func (f Flag) IsMap() bool       { return strings.HasPrefix(string(f), mapPrefix) }
func (f Flag) IsEvent() bool     { return strings.HasPrefix(string(f), eventPrefix) }

// SacredOrbThreshold reports N when f is a `sacredOrb:N` count test.
func (f Flag) SacredOrbThreshold() (int, bool) {
	if !f.IsSacredOrb() {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(string(f), sacredOrbPrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// AllRequirements holds when every flag holds.
type AllRequirements []Flag

// AnyOfAllRequirements holds when any group holds. A nil value is an absent
// requirement and is always satisfied.
type AnyOfAllRequirements []AllRequirements

func (g AllRequirements) contains(f Flag) bool {
	for _, x := range g {
		if x == f {
			return true
		}
	}
	return false
}

func (r AnyOfAllRequirements) Mentions(f Flag) bool {
	for _, g := range r {
		if g.contains(f) {
			return true
		}
	}
	return false
}

// Flags returns every distinct flag in r, sorted.
func (r AnyOfAllRequirements) Flags() []Flag {
	seen := map[Flag]struct{}{}
	for _, g := range r {
		for _, f := range g {
			seen[f] = struct{}{}
		}
	}
	out := make([]Flag, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r AnyOfAllRequirements) Clone() AnyOfAllRequirements {
	if r == nil {
		return nil
	}
	out := make(AnyOfAllRequirements, len(r))
	for i, g := range r {
		out[i] = append(AllRequirements(nil), g...)
	}
	return out
}

func (r AnyOfAllRequirements) String() string {
	if r == nil {
		return "always"
	}
	parts := make([]string, len(r))
	for i, g := range r {
		flags := make([]string, len(g))
		for j, f := range g {
			flags[j] = string(f)
		}
		parts[i] = "[" + strings.Join(flags, ", ") + "]"
	}
	return strings.Join(parts, " | ")
}

// FlagSet is an unordered set of acquired flags.
type FlagSet map[Flag]struct{}

func (s FlagSet) Has(f Flag) bool {
	_, ok := s[f]
	return ok
}

// IsReachable evaluates a requirement against the acquired flags. A
// `sacredOrb:N` term holds when sacredOrbs >= N, whatever the set holds.
func IsReachable(req AnyOfAllRequirements, acquired FlagSet, sacredOrbs int) bool {
	if req == nil {
		return true
	}
	for _, group := range req {
		if groupHolds(group, acquired, sacredOrbs) {
			return true
		}
	}
	return false
}

func groupHolds(group AllRequirements, acquired FlagSet, sacredOrbs int) bool {
	for _, f := range group {
		if n, ok := f.SacredOrbThreshold(); ok {
			if sacredOrbs < n {
				return false
			}
			continue
		}
		if !acquired.Has(f) {
			return false
		}
	}
	return true
}
