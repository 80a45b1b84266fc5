package logic

import "sort"

// Inventory is the set of flags acquired so far plus the running sacred orb
// count used by `sacredOrb:N` tests.
type Inventory struct {
	flags FlagSet
	orbs  int
}

func NewInventory(flags ...Flag) *Inventory {
	inv := &Inventory{flags: make(FlagSet, len(flags))}
	for _, f := range flags {
		inv.Add(f)
	}
	return inv
}

// Add records f and reports whether it was new.
func (inv *Inventory) Add(f Flag) bool {
	if inv.flags.Has(f) {
		return false
	}
	inv.flags[f] = struct{}{}
	if _, threshold := f.SacredOrbThreshold(); f.IsSacredOrb() && !threshold {
		inv.orbs++
	}
	return true
}

func (inv *Inventory) Has(f Flag) bool { return inv.flags.Has(f) }

func (inv *Inventory) Len() int { return len(inv.flags) }

func (inv *Inventory) SacredOrbs() int { return inv.orbs }

func (inv *Inventory) Reaches(req AnyOfAllRequirements) bool {
	return IsReachable(req, inv.flags, inv.orbs)
}

func (inv *Inventory) Clone() *Inventory {
	out := &Inventory{flags: make(FlagSet, len(inv.flags)), orbs: inv.orbs}
	for f := range inv.flags {
		out.flags[f] = struct{}{}
	}
	return out
}

func (inv *Inventory) Flags() []Flag {
	out := make([]Flag, 0, len(inv.flags))
	for f := range inv.flags {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
