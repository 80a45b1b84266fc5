package snapshot

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/appengine-ltd/lm-randomizer/internal/dataset"
)

func loadStorage(t *testing.T) *dataset.Storage {
	t.Helper()
	st, err := dataset.Load("../dataset/testdata/structure")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, err := dataset.Build(st, dataset.BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func TestWriterReplaceItems(t *testing.T) {
	source := loadStorage(t)
	shuffled := source.Clone()
	shuffled.ItemSpots[0].Item, shuffled.ItemSpots[1].Item = shuffled.ItemSpots[1].Item, shuffled.ItemSpots[0].Item

	var buf bytes.Buffer
	var editor Editor = NewWriter(&buf)
	if err := editor.ReplaceItems(source, shuffled); err != nil {
		t.Fatalf("ReplaceItems: %v", err)
	}
	if !strings.Contains(buf.String(), `"kind": "MainWeapon"`) {
		t.Fatalf("expected named spot kinds in output:\n%s", buf.String())
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(decoded.ItemSpots, shuffled.ItemSpots) {
		t.Fatalf("item spots changed through the codec")
	}
	if !reflect.DeepEqual(decoded.Shops, shuffled.Shops) {
		t.Fatalf("shops changed through the codec")
	}
}

func TestReplaceItemsRejectsOtherLayout(t *testing.T) {
	source := loadStorage(t)
	other := source.Clone()
	other.ItemSpots = other.ItemSpots[1:]
	err := NewWriter(&bytes.Buffer{}).ReplaceItems(source, other)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}

	emptied := source.Clone()
	emptied.Shops[0].Items[1] = nil
	if err := SameShape(source, emptied); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch for emptied slot, got %v", err)
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	if _, err := Decode(strings.NewReader("{")); err == nil {
		t.Fatalf("expected decode error")
	}
	bad := `{"itemSpots":[{"spot":{"kind":"Chest","field":"Surface","index":0,"name":"a","requirement":[["nothing"]]},"item":{"origin":{"kind":"Chest","field":"Surface","index":0},"flag":"a"}}],"shops":[],"events":[]}`
	if _, err := Decode(strings.NewReader(bad)); !errors.Is(err, dataset.ErrConfigDefect) {
		t.Fatalf("expected config defect, got %v", err)
	}
}
