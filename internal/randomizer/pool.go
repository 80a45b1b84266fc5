package randomizer

import "math/rand/v2"

// pool holds one attempt's unplaced items as arena indices, split by the
// kind of slot they are allowed to fill. Buckets are drawn from the end.
type pool struct {
	priority   []int
	field      []int
	talk       []int
	shop       []int
	consumable []int
}

// newPool shuffles the general items and deals them into buckets sized to
// the shop and talk slot counts; field takes the rest.
func newPool(w *world, rng *rand.Rand) *pool {
	p := &pool{
		priority:   append([]int(nil), w.priority...),
		consumable: append([]int(nil), w.consumables...),
	}
	general := append([]int(nil), w.general...)
	rng.Shuffle(len(general), func(i, j int) { general[i], general[j] = general[j], general[i] })

	for _, idx := range general {
		it := w.items[idx]
		switch {
		case len(p.shop) < w.counts[catShop] && it.CanDisplayInShop():
			p.shop = append(p.shop, idx)
		case len(p.talk) < w.counts[catTalk] && it.CanTalk():
			p.talk = append(p.talk, idx)
		default:
			p.field = append(p.field, idx)
		}
	}
	return p
}

func (p *pool) bucket(c category) *[]int {
	switch c {
	case catTalk:
		return &p.talk
	case catShop:
		return &p.shop
	case catConsumable:
		return &p.consumable
	default:
		return &p.field
	}
}

// take removes n items from the end of the bucket.
func take(bucket *[]int, n int) []int {
	b := *bucket
	if n > len(b) {
		n = len(b)
	}
	out := append([]int(nil), b[len(b)-n:]...)
	*bucket = b[:len(b)-n]
	return out
}

// shopToField moves one shop item into the field bucket. Used when a
// priority item claims a shop slot.
func (p *pool) shopToField(rng *rand.Rand) {
	if len(p.shop) == 0 {
		return
	}
	moved := take(&p.shop, 1)
	p.field = append(p.field, moved...)
	shuffle(rng, p.field)
}

func shuffle(rng *rand.Rand, xs []int) {
	rng.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
}
