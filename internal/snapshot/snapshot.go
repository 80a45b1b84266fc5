package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/appengine-ltd/lm-randomizer/internal/dataset"
)

var ErrShapeMismatch = errors.New("snapshot: storage shape mismatch")

// Editor writes a shuffled assignment back into a game. source is the
// unmodified layout, shuffled has the same spots with new items.
type Editor interface {
	ReplaceItems(source, shuffled *dataset.Storage) error
}

// Writer is an Editor that records the shuffled assignment as JSON.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) ReplaceItems(source, shuffled *dataset.Storage) error {
	if err := SameShape(source, shuffled); err != nil {
		return err
	}
	return Encode(w.w, shuffled)
}

// SameShape fails unless both storages list the same spots in the same
// order with the same empty shop slots.
func SameShape(a, b *dataset.Storage) error {
	if len(a.ItemSpots) != len(b.ItemSpots) || len(a.Shops) != len(b.Shops) {
		return fmt.Errorf("%w: %d/%d spots, %d/%d shops", ErrShapeMismatch,
			len(a.ItemSpots), len(b.ItemSpots), len(a.Shops), len(b.Shops))
	}
	for i := range a.ItemSpots {
		if a.ItemSpots[i].Spot.ID() != b.ItemSpots[i].Spot.ID() {
			return fmt.Errorf("%w: spot %d is %s, want %s", ErrShapeMismatch, i, b.ItemSpots[i].Spot, a.ItemSpots[i].Spot)
		}
	}
	for i := range a.Shops {
		if a.Shops[i].Spot.ID() != b.Shops[i].Spot.ID() {
			return fmt.Errorf("%w: shop %d is %s, want %s", ErrShapeMismatch, i, b.Shops[i].Spot, a.Shops[i].Spot)
		}
		for j := range a.Shops[i].Items {
			if (a.Shops[i].Items[j] == nil) != (b.Shops[i].Items[j] == nil) {
				return fmt.Errorf("%w: %s slot %d", ErrShapeMismatch, a.Shops[i].Spot, j)
			}
		}
	}
	return nil
}

func Encode(w io.Writer, s *dataset.Storage) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}

// Decode reads a snapshot and checks it like a freshly built Storage.
func Decode(r io.Reader) (*dataset.Storage, error) {
	var s dataset.Storage
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	out, err := dataset.New(s.ItemSpots, s.Shops, s.Events)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return out, nil
}
