package randomizer

import (
	"github.com/appengine-ltd/lm-randomizer/internal/dataset"
	"github.com/appengine-ltd/lm-randomizer/internal/logic"
)

type replaySpot struct {
	name string
	req  logic.AnyOfAllRequirements
	flag logic.Flag
}

// Validate replays a fixed assignment sphere by sphere from the given
// starting flags and fails with an UnreachableError when some spot can
// never be reached.
func Validate(s *dataset.Storage, initial ...logic.Flag) error {
	var open []replaySpot
	for _, is := range s.ItemSpots {
		open = append(open, replaySpot{name: is.Spot.String(), req: is.Spot.Requirement, flag: is.Item.Flag})
	}
	for _, shop := range s.Shops {
		for _, it := range shop.Items {
			if it != nil {
				open = append(open, replaySpot{name: shop.Spot.String(), req: shop.Spot.Requirement, flag: it.Flag})
			}
		}
	}

	inv := logic.NewInventory(initial...)
	events := append([]logic.Event(nil), s.Events...)
	events, _ = achieveEvents(events, inv)
	for len(open) > 0 {
		var reach, rest []replaySpot
		for _, sp := range open {
			if inv.Reaches(sp.req) {
				reach = append(reach, sp)
			} else {
				rest = append(rest, sp)
			}
		}
		if len(reach) == 0 {
			names := make([]string, 0, len(rest))
			seen := map[string]bool{}
			for _, sp := range rest {
				if !seen[sp.name] {
					seen[sp.name] = true
					names = append(names, sp.name)
				}
			}
			return &UnreachableError{Spots: names}
		}
		for _, sp := range reach {
			inv.Add(sp.flag)
		}
		events, _ = achieveEvents(events, inv)
		open = rest
	}
	return nil
}
