package randomizer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/appengine-ltd/lm-randomizer/internal/dataset"
	"github.com/appengine-ltd/lm-randomizer/internal/logic"
)

// Checkpoint is one placement in a sphere, or an achieved event when Item
// is nil.
type Checkpoint struct {
	Spot  dataset.Spot  `json:"spot"`
	Slot  int           `json:"slot"`
	Item  *dataset.Item `json:"item,omitempty"`
	Event logic.Flag    `json:"event,omitempty"`
}

func (c Checkpoint) IsEvent() bool { return c.Item == nil }

// Sphere is everything that becomes available at the same time.
type Sphere []Checkpoint

type SpoilerLog struct {
	Progression []Sphere     `json:"progression"`
	Maps        []Checkpoint `json:"maps"`
}

type spoilerLine struct {
	order int
	text  string
}

// String renders the log one sphere per block, then the maps.
func (l *SpoilerLog) String() string {
	var b strings.Builder
	for i, sp := range l.Progression {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[Sphere %d]\n", i+1)
		for _, line := range sphereLines(sp) {
			b.WriteString(line.text)
			b.WriteString("\n")
		}
	}
	if len(l.Maps) > 0 {
		if len(l.Progression) > 0 {
			b.WriteString("\n")
		}
		b.WriteString("[Maps]\n")
		maps := append([]Checkpoint(nil), l.Maps...)
		sort.SliceStable(maps, func(i, j int) bool {
			return maps[i].Spot.Field.SpoilerOrder() < maps[j].Spot.Field.SpoilerOrder()
		})
		for _, cp := range maps {
			fmt.Fprintf(&b, "%s = %s\n", cp.Spot.Field, cp.Item.Name())
		}
	}
	return b.String()
}

// sphereLines renders one sphere sorted by field. Slots of the same shop
// share a line in slot order; events come last.
func sphereLines(sp Sphere) []spoilerLine {
	var lines []spoilerLine
	shopLine := map[dataset.SpotID]int{}
	shopItems := map[dataset.SpotID][]Checkpoint{}

	for _, cp := range sp {
		switch {
		case cp.IsEvent():
			lines = append(lines, spoilerLine{order: math.MaxInt, text: fmt.Sprintf("Event(%s)", cp.Event)})
		case cp.Spot.Kind == dataset.Shop:
			id := cp.Spot.ID()
			if _, ok := shopLine[id]; !ok {
				shopLine[id] = len(lines)
				lines = append(lines, spoilerLine{order: cp.Spot.Field.SpoilerOrder()})
			}
			shopItems[id] = append(shopItems[id], cp)
		default:
			lines = append(lines, spoilerLine{
				order: cp.Spot.Field.SpoilerOrder(),
				text:  fmt.Sprintf("%s = %s", cp.Spot, cp.Item.Name()),
			})
		}
	}
	for id, at := range shopLine {
		items := shopItems[id]
		sort.SliceStable(items, func(i, j int) bool { return items[i].Slot < items[j].Slot })
		names := make([]string, len(items))
		for i, cp := range items {
			names[i] = cp.Item.Name()
		}
		lines[at].text = fmt.Sprintf("%s = %s", items[0].Spot, strings.Join(names, ", "))
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].order < lines[j].order })
	return lines
}
