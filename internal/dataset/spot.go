package dataset

import (
	"fmt"

	"github.com/appengine-ltd/lm-randomizer/internal/logic"
)

type SpotKind int

const (
	MainWeapon SpotKind = iota
	SubWeapon
	Chest
	Seal
	Rom
	Talk
	Shop
)

var spotKindNames = []string{"MainWeapon", "SubWeapon", "Chest", "Seal", "Rom", "Talk", "Shop"}

// spotLabels are the type names used when a spot is displayed.
var spotLabels = []string{"MainWeaponSpot", "SubWeaponSpot", "Chest", "SealSpot", "RomSpot", "TalkSpot", "Shop"}

func (k SpotKind) String() string {
	if k < 0 || int(k) >= len(spotKindNames) {
		return fmt.Sprintf("SpotKind(%d)", int(k))
	}
	return spotKindNames[k]
}

func (k SpotKind) label() string {
	if k < 0 || int(k) >= len(spotLabels) {
		return k.String()
	}
	return spotLabels[k]
}

func (k SpotKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(spotKindNames) {
		return nil, fmt.Errorf("unknown spot kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *SpotKind) UnmarshalText(b []byte) error {
	for i, n := range spotKindNames {
		if n == string(b) {
			*k = SpotKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown spot kind %q", string(b))
}

// SpotID identifies a spot by kind, field and its running index among spots
// of the same kind.
type SpotID struct {
	Kind  SpotKind `json:"kind"`
	Field FieldID  `json:"field"`
	Index int      `json:"index"`
}

type Spot struct {
	Kind        SpotKind                   `json:"kind"`
	Field       FieldID                    `json:"field"`
	Index       int                        `json:"index"`
	Name        string                     `json:"name"`
	Requirement logic.AnyOfAllRequirements `json:"requirement,omitempty"`
}

func (s Spot) ID() SpotID { return SpotID{Kind: s.Kind, Field: s.Field, Index: s.Index} }

func (s Spot) String() string {
	return fmt.Sprintf("%s_%s(%s)", s.Field, s.Kind.label(), s.Name)
}

func (s Spot) clone() Spot {
	s.Requirement = s.Requirement.Clone()
	return s
}
