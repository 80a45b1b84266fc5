package randomizer

import (
	"fmt"
	"sort"

	"github.com/appengine-ltd/lm-randomizer/internal/dataset"
	"github.com/appengine-ltd/lm-randomizer/internal/logic"
)

// priorityOrder lists the items placed before anything else, in placement
// order.
var priorityOrder = []logic.Flag{"handScanner", "shellHorn", "holyGrail", "gameMaster", "gameMaster2", "glyphReader"}

type category int

const (
	catField category = iota
	catTalk
	catShop
	catConsumable
	// catFixed slots keep their original item. Map chests are fixed.
	catFixed
)

type slot struct {
	cat   category
	spot  dataset.Spot
	shop  int // index into Storage.Shops, or -1
	index int // Storage.ItemSpots index, or the shop slot
	req   logic.AnyOfAllRequirements
	fixed int // item index for catFixed slots
}

func (s slot) accepts(it dataset.Item) bool {
	switch s.cat {
	case catShop:
		return it.CanDisplayInShop() && !it.IsConsumable()
	case catTalk:
		return it.CanTalk()
	case catConsumable:
		return it.IsConsumable()
	default:
		return !it.IsConsumable()
	}
}

// world is the read-only view of one Storage that every attempt shares.
// Items live once in an arena; attempts only move indices around.
type world struct {
	source      *dataset.Storage
	items       []dataset.Item
	slots       []slot
	priority    []int
	consumables []int
	general     []int
	counts      [catFixed + 1]int
}

func newWorld(source *dataset.Storage) (*world, error) {
	w := &world{source: source}
	addItem := func(it dataset.Item) int {
		w.items = append(w.items, it)
		return len(w.items) - 1
	}
	classify := func(idx int) {
		it := w.items[idx]
		switch {
		case priorityRank(it.Flag) >= 0:
			w.priority = append(w.priority, idx)
		case it.IsConsumable():
			w.consumables = append(w.consumables, idx)
		default:
			w.general = append(w.general, idx)
		}
	}

	for i, is := range source.ItemSpots {
		idx := addItem(is.Item)
		s := slot{cat: catField, spot: is.Spot, shop: -1, index: i, req: is.Spot.Requirement, fixed: -1}
		switch {
		case is.Spot.Kind == dataset.Chest && is.Item.IsMap():
			s.cat = catFixed
			s.fixed = idx
		case is.Spot.Kind == dataset.Talk:
			s.cat = catTalk
			classify(idx)
		default:
			classify(idx)
		}
		w.counts[s.cat]++
		w.slots = append(w.slots, s)
	}
	for i, shop := range source.Shops {
		for j, it := range shop.Items {
			if it == nil {
				continue
			}
			idx := addItem(*it)
			s := slot{cat: catShop, spot: shop.Spot, shop: i, index: j, req: shop.Spot.Requirement, fixed: -1}
			if it.IsConsumable() {
				s.cat = catConsumable
			}
			classify(idx)
			w.counts[s.cat]++
			w.slots = append(w.slots, s)
		}
	}
	sort.SliceStable(w.priority, func(a, b int) bool {
		return priorityRank(w.items[w.priority[a]].Flag) < priorityRank(w.items[w.priority[b]].Flag)
	})

	if err := w.checkCapacity(); err != nil {
		return nil, &dataset.ConfigDefectError{Cause: err}
	}
	return w, nil
}

func priorityRank(f logic.Flag) int {
	for i, p := range priorityOrder {
		if p == f {
			return i
		}
	}
	return -1
}

func (w *world) checkCapacity() error {
	if len(w.consumables) != w.counts[catConsumable] {
		return fmt.Errorf("%d consumables for %d consumable shop slots", len(w.consumables), w.counts[catConsumable])
	}
	sellable := 0
	for _, idx := range w.general {
		if w.items[idx].CanDisplayInShop() {
			sellable++
		}
	}
	need := w.counts[catShop] + w.counts[catTalk]
	if sellable < need {
		return fmt.Errorf("%d shop or talk slots but only %d items can fill them", need, sellable)
	}
	return nil
}
