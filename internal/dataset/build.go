package dataset

import (
	"fmt"
	"sort"

	"github.com/appengine-ltd/lm-randomizer/internal/logic"
	"github.com/appengine-ltd/lm-randomizer/internal/parser"
)

type BuildOptions struct {
	// ShuffleSecretRoms puts ROM spots in the pool. Otherwise each ROM spot
	// becomes an event named after its ROM.
	ShuffleSecretRoms bool
}

type fieldEntries struct {
	id   FieldID
	file FieldFile
}

// Build resolves events and turns the structure into a checked Storage.
// Spot indices run per kind across fields in field order.
func Build(st *Structure, opts BuildOptions) (*Storage, error) {
	rawEvents := make([]logic.Event, 0, len(st.Events))
	for _, e := range st.Events {
		req, err := parser.ParseRequirement(e.Requirements)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", e.Name, err)
		}
		rawEvents = append(rawEvents, logic.Event{Name: logic.Flag(e.Name), Requirement: req})
	}
	events, err := logic.InlineEvents(rawEvents)
	if err != nil {
		return nil, &ConfigDefectError{Cause: err}
	}

	fields := make([]fieldEntries, 0, len(st.Fields))
	seenField := map[FieldID]bool{}
	for _, ff := range st.Fields {
		id, err := ParseFieldID(ff.Field)
		if err != nil {
			return nil, err
		}
		if seenField[id] {
			return nil, fmt.Errorf("field %s listed twice", id)
		}
		seenField[id] = true
		fields = append(fields, fieldEntries{id: id, file: ff})
	}
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].id < fields[j].id })

	b := &builder{events: events, seen: map[string]bool{}}
	for _, kind := range []SpotKind{MainWeapon, SubWeapon, Chest, Seal, Rom, Talk, Shop} {
		for _, f := range fields {
			if err := b.addAll(kind, f.id, entriesOf(f.file, kind), opts); err != nil {
				return nil, err
			}
		}
	}
	return New(b.itemSpots, b.shops, append(events, b.romEvents...))
}

func entriesOf(ff FieldFile, kind SpotKind) []Entry {
	switch kind {
	case MainWeapon:
		return ff.MainWeapons
	case SubWeapon:
		return ff.SubWeapons
	case Chest:
		return ff.Chests
	case Seal:
		return ff.Seals
	case Rom:
		return ff.Roms
	case Talk:
		return ff.Talks
	default:
		return ff.Shops
	}
}

type builder struct {
	events    []logic.Event
	itemSpots []ItemSpot
	shops     []ShopSpot
	romEvents []logic.Event
	next      [Shop + 1]int
	seen      map[string]bool
}

func (b *builder) addAll(kind SpotKind, field FieldID, entries []Entry, opts BuildOptions) error {
	for _, e := range entries {
		key := kind.String() + "/" + e.Name
		if b.seen[key] {
			return fmt.Errorf("%s %s: duplicate %s", field, e.Name, kind)
		}
		b.seen[key] = true

		req, err := parser.ParseRequirement(e.Requirements)
		if err != nil {
			return fmt.Errorf("%s %s: %w", field, e.Name, err)
		}
		req = logic.MergeEvents(req, b.events)

		if kind == Rom && !opts.ShuffleSecretRoms {
			b.romEvents = append(b.romEvents, logic.Event{Name: logic.Flag(e.Name), Requirement: req})
			continue
		}

		spot := Spot{Kind: kind, Field: field, Index: b.next[kind], Name: e.Name, Requirement: req}
		b.next[kind]++

		if kind != Shop {
			b.itemSpots = append(b.itemSpots, ItemSpot{
				Spot: spot,
				Item: Item{Origin: spot.ID(), Flag: logic.Flag(e.Name)},
			})
			continue
		}
		names, err := parser.ParseShopNames(e.Name)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		shop := ShopSpot{Spot: spot}
		for i, n := range names {
			if n == "" {
				continue
			}
			shop.Items[i] = &Item{Origin: spot.ID(), Slot: i, Flag: n}
		}
		b.shops = append(b.shops, shop)
	}
	return nil
}
