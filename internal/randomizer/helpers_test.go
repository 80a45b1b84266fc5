package randomizer

import (
	"testing"

	"github.com/appengine-ltd/lm-randomizer/internal/dataset"
	"github.com/appengine-ltd/lm-randomizer/internal/logic"
)

func loadStorage(t *testing.T, opts dataset.BuildOptions) *dataset.Storage {
	t.Helper()
	st, err := dataset.Load("../dataset/testdata/structure")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, err := dataset.Build(st, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func chest(index int, name string, item logic.Flag, req logic.AnyOfAllRequirements) dataset.ItemSpot {
	spot := dataset.Spot{Kind: dataset.Chest, Field: dataset.Surface, Index: index, Name: name, Requirement: req}
	return dataset.ItemSpot{Spot: spot, Item: dataset.Item{Origin: spot.ID(), Flag: item}}
}

func all(flags ...logic.Flag) logic.AnyOfAllRequirements {
	return logic.AnyOfAllRequirements{logic.AllRequirements(flags)}
}

func newStorage(t *testing.T, spots ...dataset.ItemSpot) *dataset.Storage {
	t.Helper()
	s, err := dataset.New(spots, nil, nil)
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	return s
}
