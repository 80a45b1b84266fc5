package dataset

import "github.com/appengine-ltd/lm-randomizer/internal/logic"

var consumables = map[logic.Flag]bool{
	"weights":      true,
	"shurikenAmmo": true,
	"toukenAmmo":   true,
	"spearAmmo":    true,
	"flareGunAmmo": true,
	"bombAmmo":     true,
	"ammunition":   true,
}

// Items the game hands out more than once; they may share a flag.
var repeatable = map[logic.Flag]bool{
	"shellHorn": true,
	"finder":    true,
}

// Item is a grantable object, identified by the slot it sits in on an
// unmodified game.
type Item struct {
	Origin SpotID     `json:"origin"`
	Slot   int        `json:"slot,omitempty"`
	Flag   logic.Flag `json:"flag"`
}

func (i Item) Source() SpotKind { return i.Origin.Kind }

func (i Item) Name() string { return string(i.Flag) }

func (i Item) IsConsumable() bool { return consumables[i.Flag] }

func (i Item) IsMap() bool { return i.Flag.IsMap() }

func (i Item) IsSacredOrb() bool { return i.Flag.IsSacredOrb() }

// MayRepeat reports whether the flag may appear on more than one item.
func (i Item) MayRepeat() bool { return i.IsConsumable() || repeatable[i.Flag] }

// CanDisplayInShop reports whether a shop can show this item. The shop
// screen has no graphic for weapons, seals, maps, orbs or the boots.
func (i Item) CanDisplayInShop() bool {
	switch i.Source() {
	case MainWeapon, Seal:
		return false
	case SubWeapon:
		return i.Flag == "pistol"
	case Chest:
		return !i.IsMap() && !i.IsSacredOrb() && i.Flag != "boots"
	default:
		return true
	}
}

func (i Item) CanTalk() bool {
	return i.Source() == Talk || (i.CanDisplayInShop() && !i.IsConsumable())
}
