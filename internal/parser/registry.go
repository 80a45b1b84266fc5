package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type vocabEntry struct {
	flag       string
	normalised string
}

// Vocabulary is the set of flags a game structure can grant. It answers
// "did you mean" queries for flags that nothing grants.
type Vocabulary struct {
	entries []vocabEntry
	seen    map[string]bool
}

func NewVocabulary(flags ...string) *Vocabulary {
	v := &Vocabulary{seen: make(map[string]bool, len(flags))}
	for _, f := range flags {
		v.Register(f)
	}
	return v
}

func (v *Vocabulary) Register(flag string) {
	if flag == "" || v.seen[flag] {
		return
	}
	v.seen[flag] = true
	v.entries = append(v.entries, vocabEntry{flag: flag, normalised: normaliseFlag(flag)})
}

func (v *Vocabulary) Len() int { return len(v.entries) }

type flagCandidate struct {
	flag  string
	score float64
}

// Suggest returns up to limit known flags close to word, best first.
func (v *Vocabulary) Suggest(word string, limit int) []string {
	token := normaliseFlag(word)
	if token == "" || limit <= 0 {
		return nil
	}
	cands := make([]flagCandidate, 0, 4)
	for _, e := range v.entries {
		score := 0.0
		switch {
		case token == e.normalised:
			// Differs only in case or punctuation.
			score = 1.0
		case strings.HasPrefix(e.normalised, token) && len(token) >= 3:
			score = 0.9
		default:
			if len(token) < 3 {
				continue
			}
			dist := levenshtein.ComputeDistance(token, e.normalised)
			if dist > levenshteinLimit(len(e.normalised)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		cands = append(cands, flagCandidate{flag: e.flag, score: score})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score == cands[j].score {
			return cands[i].flag < cands[j].flag
		}
		return cands[i].score > cands[j].score
	})
	if len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.flag
	}
	return out
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
