package layers

import (
	"testing"

	"github.com/rs/zerolog"
	"pgregory.net/rapid"

	"github.com/strataview/strata/internal/events"
)

// TestOrderingInvariants drives the collection with random add/move/remove
// sequences against a plain slice oracle.
func TestOrderingInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewManager(events.NewBus(zerolog.Nop()))
		var oracle []string

		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0: // add at random position.
				name := rapid.StringMatching(`layer-[0-9]{1,3}`).Draw(t, "name")
				idx := rapid.IntRange(-1, len(oracle)+1).Draw(t, "idx")
				m.Add(NewLayer(name, Image), idx)

				at := idx
				if at < 0 || at > len(oracle) {
					at = len(oracle)
				}
				oracle = append(oracle, "")
				copy(oracle[at+1:], oracle[at:])
				oracle[at] = name
			case 1: // move.
				if len(oracle) == 0 {
					continue
				}
				from := rapid.IntRange(0, len(oracle)-1).Draw(t, "from")
				to := rapid.IntRange(0, len(oracle)-1).Draw(t, "to")
				moved := m.Move(from, to)
				if from != to {
					if !moved {
						t.Fatalf("move %d->%d rejected with %d layers", from, to, len(oracle))
					}
					name := oracle[from]
					oracle = append(oracle[:from], oracle[from+1:]...)
					oracle = append(oracle, "")
					copy(oracle[to+1:], oracle[to:])
					oracle[to] = name
				} else if moved {
					t.Fatalf("move to same index %d reported success", from)
				}
			case 2: // remove.
				if len(oracle) == 0 {
					continue
				}
				idx := rapid.IntRange(0, len(oracle)-1).Draw(t, "ridx")
				if !m.Remove(idx) {
					t.Fatalf("remove %d rejected with %d layers", idx, len(oracle))
				}
				oracle = append(oracle[:idx], oracle[idx+1:]...)
			}
		}

		if m.Count() != len(oracle) {
			t.Fatalf("count mismatch: got %d want %d", m.Count(), len(oracle))
		}
		for i, want := range oracle {
			if got := m.Layer(i).Name(); got != want {
				t.Fatalf("layer %d: got %q want %q", i, got, want)
			}
			if got := m.CellValue(i, ColumnName); got != want {
				t.Fatalf("cell %d: got %q want %q", i, got, want)
			}
		}
	})
}
