package dataset

import (
	"fmt"
	"sort"

	"github.com/appengine-ltd/lm-randomizer/internal/logic"
	"github.com/appengine-ltd/lm-randomizer/internal/parser"
)

const ShopSlots = parser.ShopSlots

type ItemSpot struct {
	Spot Spot `json:"spot"`
	Item Item `json:"item"`
}

// ShopSpot is a shop and its slots. A nil slot is empty.
type ShopSpot struct {
	Spot  Spot             `json:"spot"`
	Items [ShopSlots]*Item `json:"items"`
}

type Storage struct {
	ItemSpots []ItemSpot    `json:"itemSpots"`
	Shops     []ShopSpot    `json:"shops"`
	Events    []logic.Event `json:"events"`
}

// New assembles a Storage and checks that every required flag can be
// granted.
func New(itemSpots []ItemSpot, shops []ShopSpot, events []logic.Event) (*Storage, error) {
	s := &Storage{ItemSpots: itemSpots, Shops: shops, Events: events}
	if err := CheckRequirements(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) Clone() *Storage {
	out := &Storage{
		ItemSpots: make([]ItemSpot, len(s.ItemSpots)),
		Shops:     make([]ShopSpot, len(s.Shops)),
		Events:    make([]logic.Event, len(s.Events)),
	}
	for i, is := range s.ItemSpots {
		out.ItemSpots[i] = ItemSpot{Spot: is.Spot.clone(), Item: is.Item}
	}
	for i, shop := range s.Shops {
		c := ShopSpot{Spot: shop.Spot.clone()}
		for j, it := range shop.Items {
			if it != nil {
				item := *it
				c.Items[j] = &item
			}
		}
		out.Shops[i] = c
	}
	for i, ev := range s.Events {
		out.Events[i] = logic.Event{Name: ev.Name, Requirement: ev.Requirement.Clone()}
	}
	return out
}

// Items lists every item in slot order: item spots, then filled shop slots.
func (s *Storage) Items() []Item {
	out := make([]Item, 0, len(s.ItemSpots)+len(s.Shops)*ShopSlots)
	for _, is := range s.ItemSpots {
		out = append(out, is.Item)
	}
	for _, shop := range s.Shops {
		for _, it := range shop.Items {
			if it != nil {
				out = append(out, *it)
			}
		}
	}
	return out
}

// Grantable returns every flag an item or event can grant.
func (s *Storage) Grantable() logic.FlagSet {
	out := make(logic.FlagSet, len(s.ItemSpots)+len(s.Events))
	for _, it := range s.Items() {
		out[it.Flag] = struct{}{}
	}
	for _, ev := range s.Events {
		out[ev.Name] = struct{}{}
	}
	return out
}

// CheckRequirements fails with a ConfigDefectError when a requirement names
// a flag that nothing grants, or a requirement holds an empty group.
func CheckRequirements(s *Storage) error {
	grantable := s.Grantable()
	missing := map[logic.Flag]bool{}
	check := func(owner string, req logic.AnyOfAllRequirements) error {
		if req != nil && len(req) == 0 {
			return &ConfigDefectError{Cause: fmt.Errorf("%s: empty requirement", owner)}
		}
		for _, g := range req {
			if len(g) == 0 {
				return &ConfigDefectError{Cause: fmt.Errorf("%s: empty requirement group", owner)}
			}
			for _, f := range g {
				if !grantable.Has(f) && !f.NeedsNoGrant() {
					missing[f] = true
				}
			}
		}
		return nil
	}
	for _, is := range s.ItemSpots {
		if err := check(is.Spot.String(), is.Spot.Requirement); err != nil {
			return err
		}
	}
	for _, shop := range s.Shops {
		if err := check(shop.Spot.String(), shop.Spot.Requirement); err != nil {
			return err
		}
	}
	for _, ev := range s.Events {
		if err := check(string(ev.Name), ev.Requirement); err != nil {
			return err
		}
	}
	if len(missing) == 0 {
		return nil
	}

	flags := make([]logic.Flag, 0, len(missing))
	for f := range missing {
		flags = append(flags, f)
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })

	vocab := parser.NewVocabulary()
	for _, f := range sortedFlags(grantable) {
		vocab.Register(string(f))
	}
	for _, f := range logic.EscapeHatch() {
		vocab.Register(string(f))
	}
	suggestions := make(map[logic.Flag][]string)
	for _, f := range flags {
		if hints := vocab.Suggest(string(f), 2); len(hints) > 0 {
			suggestions[f] = hints
		}
	}
	return &ConfigDefectError{Missing: flags, Suggestions: suggestions}
}

func sortedFlags(set logic.FlagSet) []logic.Flag {
	out := make([]logic.Flag, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type assignment struct {
	flag logic.Flag
	at   string
}

func (s *Storage) assignments() []assignment {
	out := make([]assignment, 0, len(s.ItemSpots)+len(s.Shops)*ShopSlots)
	for _, is := range s.ItemSpots {
		if is.Item.MayRepeat() {
			continue
		}
		out = append(out, assignment{flag: is.Item.Flag, at: is.Spot.String()})
	}
	for _, shop := range s.Shops {
		for j, it := range shop.Items {
			if it == nil || it.MayRepeat() {
				continue
			}
			out = append(out, assignment{flag: it.Flag, at: fmt.Sprintf("%s[%d]", shop.Spot, j)})
		}
	}
	return out
}

// AssertUnique fails when two slots hand out the same non-repeatable flag.
func AssertUnique(s *Storage) error {
	seen := make(map[logic.Flag]string)
	for _, a := range s.assignments() {
		if first, ok := seen[a.flag]; ok {
			return &DuplicateAssignmentError{Flag: a.flag, First: first, Second: a.at}
		}
		seen[a.flag] = a.at
	}
	return nil
}
