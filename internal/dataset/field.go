package dataset

import (
	"fmt"
	"strings"
)

// FieldID numbers follow the game's own field table; 10 is unused.
type FieldID int

const (
	Surface FieldID = iota
	GateOfGuidance
	MausoleumOfTheGiants
	TempleOfTheSun
	SpringInTheSky
	InfernoCavern
	ChamberOfExtinction
	TwinLabyrinthsLeft
	EndlessCorridor
	ShrineOfTheMother
	_
	GateOfIllusion
	GraveyardOfTheGiants
	TempleOfMoonlight
	TowerOfTheGoddess
	TowerOfRuin
	ChamberOfBirth
	TwinLabyrinthsRight
	DimensionalCorridor
	TrueShrineOfTheMother
)

var fieldNames = map[FieldID]string{
	Surface:               "Surface",
	GateOfGuidance:        "GateOfGuidance",
	MausoleumOfTheGiants:  "MausoleumOfTheGiants",
	TempleOfTheSun:        "TempleOfTheSun",
	SpringInTheSky:        "SpringInTheSky",
	InfernoCavern:         "InfernoCavern",
	ChamberOfExtinction:   "ChamberOfExtinction",
	TwinLabyrinthsLeft:    "TwinLabyrinthsLeft",
	EndlessCorridor:       "EndlessCorridor",
	ShrineOfTheMother:     "ShrineOfTheMother",
	GateOfIllusion:        "GateOfIllusion",
	GraveyardOfTheGiants:  "GraveyardOfTheGiants",
	TempleOfMoonlight:     "TempleOfMoonlight",
	TowerOfTheGoddess:     "TowerOfTheGoddess",
	TowerOfRuin:           "TowerOfRuin",
	ChamberOfBirth:        "ChamberOfBirth",
	TwinLabyrinthsRight:   "TwinLabyrinthsRight",
	DimensionalCorridor:   "DimensionalCorridor",
	TrueShrineOfTheMother: "TrueShrineOfTheMother",
}

func (f FieldID) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

func ParseFieldID(name string) (FieldID, error) {
	name = strings.TrimSpace(name)
	for id, n := range fieldNames {
		if strings.EqualFold(n, name) {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", name)
}

// SpoilerOrder sorts fields for the spoiler log. The right half of the twin
// labyrinths follows the left half directly.
func (f FieldID) SpoilerOrder() int {
	if f == TwinLabyrinthsRight {
		return int(TwinLabyrinthsLeft)*10 + 1
	}
	return int(f) * 10
}

// IsEarly reports whether the field is open at the start of a new game.
func (f FieldID) IsEarly() bool {
	return f == Surface || f == GateOfGuidance
}

func (f FieldID) MarshalText() ([]byte, error) {
	if _, ok := fieldNames[f]; !ok {
		return nil, fmt.Errorf("unknown field %d", int(f))
	}
	return []byte(f.String()), nil
}

func (f *FieldID) UnmarshalText(b []byte) error {
	id, err := ParseFieldID(string(b))
	if err != nil {
		return err
	}
	*f = id
	return nil
}
