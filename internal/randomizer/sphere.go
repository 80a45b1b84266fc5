package randomizer

import (
	"fmt"
	"math/rand/v2"

	"github.com/appengine-ltd/lm-randomizer/internal/dataset"
	"github.com/appengine-ltd/lm-randomizer/internal/logic"
)

// attempt is one randomization try. It owns its RNG, pool and inventory;
// the world it reads is shared.
type attempt struct {
	w       *world
	rng     *rand.Rand
	pool    *pool
	inv     *logic.Inventory
	open    []int
	placed  []int
	events  []logic.Event
	sold    map[int]map[logic.Flag]bool
	spheres []Sphere
	maps    []Checkpoint

	// maxSpheres caps run. Every sphere fills at least one slot, so a
	// completed attempt never needs more than one per slot.
	maxSpheres int
}

func newAttempt(w *world, rng *rand.Rand, initial []logic.Flag) *attempt {
	a := &attempt{
		w:      w,
		rng:    rng,
		pool:   newPool(w, rng),
		inv:    logic.NewInventory(initial...),
		open:   make([]int, len(w.slots)),
		placed: make([]int, len(w.slots)),
		events: append([]logic.Event(nil), w.source.Events...),
		sold:   map[int]map[logic.Flag]bool{},

		maxSpheres: len(w.slots) + 1,
	}
	for i := range w.slots {
		a.open[i] = i
		a.placed[i] = -1
	}
	return a
}

// run expands spheres until every slot is filled.
func (a *attempt) run() error {
	for n := 0; len(a.open) > 0; n++ {
		if n >= a.maxSpheres {
			return fmt.Errorf("%w: %d spheres for %d slots", errSphereLimit, n, len(a.w.slots))
		}
		var early func(slot) bool
		if len(a.pool.priority) > 0 {
			early = func(s slot) bool { return s.spot.Field.IsEarly() }
		}
		sp, err := a.sphere(early)
		if err != nil {
			return err
		}
		a.spheres = append(a.spheres, sp)
	}
	return nil
}

// sphere fills every open slot reachable with the current inventory. While
// priority items are left, they go first into reachable field or shop
// slots that pass filter.
func (a *attempt) sphere(filter func(slot) bool) (Sphere, error) {
	var sp Sphere
	gained := 0
	// Events that need nothing, or only starting flags, open before the
	// first sphere.
	for _, ev := range a.resolveEvents() {
		sp = append(sp, Checkpoint{Event: ev, Slot: -1})
		gained++
	}
	reach, rest := a.explore()
	if len(reach) == 0 {
		return nil, stuck("%d slots left, none reachable", len(rest))
	}
	required := a.requiredBy(rest)

	priorityRequired := false
	if len(a.pool.priority) > 0 {
		for _, si := range a.placePriority(reach, filter) {
			if required[a.w.items[a.placed[si]].Flag] {
				priorityRequired = true
			}
		}
	}

	byCat := map[category][]int{}
	for _, si := range reach {
		if a.placed[si] >= 0 {
			continue
		}
		c := a.w.slots[si].cat
		byCat[c] = append(byCat[c], si)
	}
	if !priorityRequired {
		a.guaranteeProgress(byCat, required)
	}
	for _, c := range []category{catField, catTalk, catShop} {
		slots := byCat[c]
		items := take(a.pool.bucket(c), len(slots))
		if len(items) < len(slots) {
			return nil, fmt.Errorf("%w: %d items for %d slots", errPoolMismatch, len(items), len(slots))
		}
		shuffle(a.rng, items)
		for i, si := range slots {
			a.assign(si, items[i])
		}
	}
	for _, si := range byCat[catConsumable] {
		if err := a.placeConsumable(si); err != nil {
			return nil, err
		}
	}
	for _, si := range byCat[catFixed] {
		a.assign(si, a.w.slots[si].fixed)
	}

	for _, si := range reach {
		s := a.w.slots[si]
		it := a.w.items[a.placed[si]]
		cp := Checkpoint{Spot: s.spot, Slot: shopSlot(s), Item: &it}
		if s.cat == catFixed {
			a.maps = append(a.maps, cp)
		} else {
			sp = append(sp, cp)
		}
		if a.inv.Add(it.Flag) {
			gained++
		}
	}
	for _, ev := range a.resolveEvents() {
		sp = append(sp, Checkpoint{Event: ev, Slot: -1})
		gained++
	}
	a.open = rest
	if gained == 0 && len(rest) > 0 {
		return nil, stuck("all flags already known with %d slots left", len(rest))
	}
	return sp, nil
}

func shopSlot(s slot) int {
	if s.shop < 0 {
		return -1
	}
	return s.index
}

func (a *attempt) explore() (reach, rest []int) {
	for _, si := range a.open {
		if a.inv.Reaches(a.w.slots[si].req) {
			reach = append(reach, si)
		} else {
			rest = append(rest, si)
		}
	}
	return reach, rest
}

// requiredBy collects the flags named by the requirements of unreached
// slots.
func (a *attempt) requiredBy(rest []int) map[logic.Flag]bool {
	out := map[logic.Flag]bool{}
	for _, si := range rest {
		for _, g := range a.w.slots[si].req {
			for _, f := range g {
				out[f] = true
			}
		}
	}
	return out
}

func (a *attempt) placePriority(reach []int, filter func(slot) bool) []int {
	var cands []int
	for _, si := range reach {
		s := a.w.slots[si]
		if s.cat != catField && s.cat != catShop {
			continue
		}
		if filter != nil && !filter(s) {
			continue
		}
		cands = append(cands, si)
	}

	var placed, leftover []int
	for _, idx := range a.pool.priority {
		it := a.w.items[idx]
		var eligible []int
		for k, si := range cands {
			if a.w.slots[si].accepts(it) {
				eligible = append(eligible, k)
			}
		}
		if len(eligible) == 0 {
			leftover = append(leftover, idx)
			continue
		}
		k := eligible[a.rng.IntN(len(eligible))]
		si := cands[k]
		cands = append(cands[:k], cands[k+1:]...)
		a.assign(si, idx)
		placed = append(placed, si)
		if a.w.slots[si].cat == catShop {
			a.pool.shopToField(a.rng)
		}
	}
	a.pool.priority = nil
	if len(leftover) > 0 {
		a.pool.field = append(a.pool.field, leftover...)
		shuffle(a.rng, a.pool.field)
	}
	return placed
}

// guaranteeProgress picks one open slot at random and makes sure its
// bucket hands out an item that some unreached slot asks for.
func (a *attempt) guaranteeProgress(byCat map[category][]int, required map[logic.Flag]bool) {
	cats := []category{catField, catTalk, catShop}
	total := 0
	for _, c := range cats {
		total += len(byCat[c])
	}
	if total == 0 || len(required) == 0 {
		return
	}
	pick := a.rng.IntN(total)
	var c category
	for _, c = range cats {
		if pick < len(byCat[c]) {
			break
		}
		pick -= len(byCat[c])
	}
	bucket := *a.pool.bucket(c)
	for i, idx := range bucket {
		if !required[a.w.items[idx].Flag] {
			continue
		}
		last := len(bucket) - 1
		bucket[i], bucket[last] = bucket[last], bucket[i]
		return
	}
}

func (a *attempt) placeConsumable(si int) error {
	s := a.w.slots[si]
	sold := a.sold[s.shop]
	shuffle(a.rng, a.pool.consumable)
	for i, idx := range a.pool.consumable {
		if sold[a.w.items[idx].Flag] {
			continue
		}
		a.pool.consumable = append(a.pool.consumable[:i], a.pool.consumable[i+1:]...)
		a.assign(si, idx)
		return nil
	}
	return stuck("no consumable left for %s that it does not already sell", s.spot)
}

func (a *attempt) assign(si, idx int) {
	a.placed[si] = idx
	s := a.w.slots[si]
	if s.shop < 0 {
		return
	}
	if a.sold[s.shop] == nil {
		a.sold[s.shop] = map[logic.Flag]bool{}
	}
	a.sold[s.shop][a.w.items[idx].Flag] = true
}

// resolveEvents achieves every pending event the inventory now satisfies,
// repeating until nothing changes.
func (a *attempt) resolveEvents() []logic.Flag {
	var achieved []logic.Flag
	a.events, achieved = achieveEvents(a.events, a.inv)
	return achieved
}

func achieveEvents(pending []logic.Event, inv *logic.Inventory) ([]logic.Event, []logic.Flag) {
	var achieved []logic.Flag
	for {
		progressed := false
		kept := pending[:0]
		for _, ev := range pending {
			if inv.Reaches(ev.Requirement) {
				if inv.Add(ev.Name) {
					achieved = append(achieved, ev.Name)
				}
				progressed = true
				continue
			}
			kept = append(kept, ev)
		}
		pending = kept
		if !progressed {
			return pending, achieved
		}
	}
}

// apply writes the attempt's placements into a copy of the source.
func (a *attempt) apply() *dataset.Storage {
	out := a.w.source.Clone()
	for si, s := range a.w.slots {
		it := a.w.items[a.placed[si]]
		if s.shop < 0 {
			out.ItemSpots[s.index].Item = it
			continue
		}
		out.Shops[s.shop].Items[s.index] = &it
	}
	return out
}
