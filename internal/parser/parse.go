package parser

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/lm-randomizer/internal/logic"
)

// EmptySlot marks an unused shop slot in a shop key.
const EmptySlot = "_"

// ShopSlots is the number of slots a shop key must list.
const ShopSlots = 3

// ParseRequirement turns requirement text into an expression. Each line is
// one AND group of comma-separated flags; the lines are alternatives. No
// lines means the spot is always reachable.
func ParseRequirement(lines []string) (logic.AnyOfAllRequirements, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	out := make(logic.AnyOfAllRequirements, 0, len(lines))
	for i, line := range lines {
		tokens := tokenise(line)
		if len(tokens) == 0 {
			return nil, fmt.Errorf("requirement %d: empty group", i+1)
		}
		group := make(logic.AllRequirements, 0, len(tokens))
		for _, tok := range tokens {
			if !validFlagName(tok) {
				return nil, fmt.Errorf("requirement %d: invalid flag %q", i+1, tok)
			}
			f := logic.Flag(tok)
			if f.IsSacredOrb() {
				if _, ok := f.SacredOrbThreshold(); !ok && !isFieldOrb(tok) {
					return nil, fmt.Errorf("requirement %d: invalid sacred orb term %q", i+1, tok)
				}
			}
			group = append(group, f)
		}
		out = append(out, group)
	}
	return out, nil
}

func isFieldOrb(tok string) bool {
	rest := strings.TrimPrefix(tok, "sacredOrb:")
	if rest == "" {
		return false
	}
	c := rest[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ParseShopNames splits a shop key such as "weights, handScanner, _" into
// its slot flags. Empty slots come back as "".
func ParseShopNames(key string) ([ShopSlots]logic.Flag, error) {
	var out [ShopSlots]logic.Flag
	tokens := tokenise(key)
	if len(tokens) != ShopSlots {
		return out, fmt.Errorf("shop %q: want %d slots, got %d", key, ShopSlots, len(tokens))
	}
	filled := 0
	for i, tok := range tokens {
		if tok == EmptySlot {
			continue
		}
		if !validFlagName(tok) {
			return out, fmt.Errorf("shop %q: invalid item %q", key, tok)
		}
		out[i] = logic.Flag(tok)
		filled++
	}
	if filled == 0 {
		return out, fmt.Errorf("shop %q: no items", key)
	}
	return out, nil
}
