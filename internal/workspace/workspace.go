// Package workspace holds the mutable rule set behind the interactive
// surfaces (REPL, TUI, HTTP defaults). It owns block identity and color
// assignment; the engine itself never sees either concern beyond the opaque
// ID.
//
// A Workspace is not safe for concurrent use. The interactive surfaces own
// it from a single goroutine, matching the engine's single-threaded
// contract; batch runs receive a snapshot via Blocks.
package workspace

import (
	"github.com/google/uuid"

	apperrors "github.com/jmorneau/fizzlab/internal/errors"
	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/ui"
)

// Workspace is an editable, ordered collection of rule blocks plus their
// display colors.
type Workspace struct {
	blocks []fizzbuzz.Block
	colors map[string]string // block ID -> hex color
}

// New creates an empty workspace.
func New() *Workspace {
	return &Workspace{colors: make(map[string]string)}
}

// NewWithDefaults creates a workspace preloaded with the classic preset:
// Fizz on multiples of three, then Buzz on multiples of five.
func NewWithDefaults() *Workspace {
	w := New()
	// The preset blocks are valid by construction; Append cannot fail.
	w.Append(fizzbuzz.NewDivisorBlock("Fizz", "Fizz", 3, 0))
	w.Append(fizzbuzz.NewDivisorBlock("Buzz", "Buzz", 5, 0))
	return w
}

// Add validates b, assigns it a fresh ID and a display color, and inserts it
// with the Order it carries. The stored block is returned.
func (w *Workspace) Add(b fizzbuzz.Block) (fizzbuzz.Block, error) {
	if err := b.Validate(); err != nil {
		return fizzbuzz.Block{}, err
	}
	b.ID = uuid.NewString()
	w.blocks = append(w.blocks, b)
	w.colors[b.ID] = w.assignColor(b)
	return b, nil
}

// Append behaves like Add but places b at the end of the evaluation order,
// ignoring the Order it carries.
func (w *Workspace) Append(b fizzbuzz.Block) (fizzbuzz.Block, error) {
	b.Order = w.nextOrder()
	return w.Add(b)
}

// Replace swaps the whole block stored under id for b, keeping the identity
// and the already-assigned color. Partial updates do not exist: callers
// build the complete replacement and submit it.
func (w *Workspace) Replace(id string, b fizzbuzz.Block) (fizzbuzz.Block, error) {
	if err := b.Validate(); err != nil {
		return fizzbuzz.Block{}, err
	}
	for i := range w.blocks {
		if w.blocks[i].ID == id {
			b.ID = id
			w.blocks[i] = b
			return b, nil
		}
	}
	return fizzbuzz.Block{}, apperrors.NewValidationError("id", "no rule with id %q", id)
}

// Remove deletes the block stored under id and releases its color.
func (w *Workspace) Remove(id string) error {
	for i := range w.blocks {
		if w.blocks[i].ID == id {
			w.blocks = append(w.blocks[:i], w.blocks[i+1:]...)
			delete(w.colors, id)
			return nil
		}
	}
	return apperrors.NewValidationError("id", "no rule with id %q", id)
}

// MoveUp swaps the block with its predecessor in the evaluation order.
// Moving the first block is a no-op. When the neighbors share an Order
// value the orders are first normalized to listing indices, so a move is
// never silently absorbed by a tie.
func (w *Workspace) MoveUp(id string) error {
	return w.move(id, -1)
}

// MoveDown swaps the block with its successor in the evaluation order.
// Moving the last block is a no-op.
func (w *Workspace) MoveDown(id string) error {
	return w.move(id, +1)
}

func (w *Workspace) move(id string, dir int) error {
	sorted := w.Blocks()
	idx := indexByID(sorted, id)
	if idx < 0 {
		return apperrors.NewValidationError("id", "no rule with id %q", id)
	}
	other := idx + dir
	if other < 0 || other >= len(sorted) {
		return nil
	}
	if sorted[idx].Order == sorted[other].Order {
		w.Reorder()
		sorted = w.Blocks()
		idx = indexByID(sorted, id)
		other = idx + dir
	}
	w.swapOrders(sorted[idx].ID, sorted[other].ID)
	return nil
}

// Reorder rewrites every Order to its current listing index, compacting
// gaps left by removals.
func (w *Workspace) Reorder() {
	for i, b := range w.Blocks() {
		for j := range w.blocks {
			if w.blocks[j].ID == b.ID {
				w.blocks[j].Order = i
			}
		}
	}
}

// Clear removes every block and color assignment.
func (w *Workspace) Clear() {
	w.blocks = nil
	w.colors = make(map[string]string)
}

// Blocks returns a copy of the rule set in evaluation order.
func (w *Workspace) Blocks() []fizzbuzz.Block {
	return fizzbuzz.SortBlocks(w.blocks)
}

// Get returns the block stored under id.
func (w *Workspace) Get(id string) (fizzbuzz.Block, bool) {
	for _, b := range w.blocks {
		if b.ID == id {
			return b, true
		}
	}
	return fizzbuzz.Block{}, false
}

// Len reports the number of blocks.
func (w *Workspace) Len() int { return len(w.blocks) }

// ColorOf returns the hex color assigned to the block stored under id, or
// the empty string for an unknown id.
func (w *Workspace) ColorOf(id string) string { return w.colors[id] }

// Colors returns a copy of the full color registry keyed by block ID.
func (w *Workspace) Colors() map[string]string {
	out := make(map[string]string, len(w.colors))
	for id, c := range w.colors {
		out[id] = c
	}
	return out
}

// HasFizzAndBuzz reports whether the set contains at least one divisor rule
// worded exactly "Fizz" and one worded exactly "Buzz", the precondition for
// the FizzBuzz outcome to be possible at all.
func (w *Workspace) HasFizzAndBuzz() bool {
	hasFizz, hasBuzz := false, false
	for _, b := range w.blocks {
		if b.Kind() != fizzbuzz.KindDivisor {
			continue
		}
		switch b.Word {
		case "Fizz":
			hasFizz = true
		case "Buzz":
			hasBuzz = true
		}
	}
	return hasFizz && hasBuzz
}

// assignColor picks the display color for a new block: the fixed blue and
// red for Fizz and Buzz divisor rules, otherwise the first unused palette
// color.
func (w *Workspace) assignColor(b fizzbuzz.Block) string {
	if b.Kind() == fizzbuzz.KindDivisor {
		switch b.Word {
		case "Fizz":
			return ui.HexFizz
		case "Buzz":
			return ui.HexBuzz
		}
	}
	used := make(map[string]bool, len(w.colors))
	for _, c := range w.colors {
		used[c] = true
	}
	return ui.PickUnusedColor(used)
}

func (w *Workspace) nextOrder() int {
	if len(w.blocks) == 0 {
		return 0
	}
	max := w.blocks[0].Order
	for _, b := range w.blocks[1:] {
		if b.Order > max {
			max = b.Order
		}
	}
	return max + 1
}

func (w *Workspace) swapOrders(idA, idB string) {
	var a, b *fizzbuzz.Block
	for i := range w.blocks {
		switch w.blocks[i].ID {
		case idA:
			a = &w.blocks[i]
		case idB:
			b = &w.blocks[i]
		}
	}
	if a != nil && b != nil {
		a.Order, b.Order = b.Order, a.Order
	}
}

func indexByID(blocks []fizzbuzz.Block, id string) int {
	for i, b := range blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
