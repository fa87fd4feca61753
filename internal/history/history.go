// Package history keeps the bounded undo/redo sequence of tree snapshots.
//
// Snapshots are deep copies, so nothing in the history aliases the live
// tree. The cursor separates the undo side (entries before it) from the redo
// side (entries at and after it). The live state is not stored: Undo takes
// it as an argument and parks it on the redo side.
package history

import (
	"errors"
	"fmt"

	"github.com/treykane/cli-mindmap/internal/tree"
)

// DefaultMaxSteps is used when no positive limit is configured.
const DefaultMaxSteps = 24

var (
	ErrExhausted   = errors.New("history exhausted")
	ErrNothingUndo = fmt.Errorf("%w: nothing to undo", ErrExhausted)
	ErrNothingRedo = fmt.Errorf("%w: nothing to redo", ErrExhausted)
)

// Snapshot is a saved tree with the active node at that moment.
type Snapshot struct {
	Tree   *tree.Tree
	Active int
}

// Capture deep-copies t.
func Capture(t *tree.Tree) Snapshot {
	return Snapshot{Tree: t.Clone(), Active: t.Active}
}

// History is a bounded snapshot list with a cursor.
type History struct {
	entries  []Snapshot
	cursor   int
	maxSteps int
}

// New returns an empty history keeping at most maxSteps undo steps.
func New(maxSteps int) *History {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &History{maxSteps: maxSteps}
}

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the cursor position in [0, Len()].
func (h *History) Cursor() int { return h.cursor }

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return h.cursor+1 < len(h.entries) }

// Push records the state before a mutation. Any redo tail is discarded and
// the oldest entry is dropped once the limit is exceeded.
func (h *History) Push(t *tree.Tree) {
	h.entries = append(h.entries[:h.cursor], Capture(t))
	if len(h.entries) > h.maxSteps {
		h.entries = append([]Snapshot(nil), h.entries[len(h.entries)-h.maxSteps:]...)
	}
	h.cursor = len(h.entries)
}

// Drop forgets the most recent push. It is used when the mutation that
// followed the push was declined, so the history does not grow a no-op step.
func (h *History) Drop() {
	if h.cursor == 0 || h.cursor != len(h.entries) {
		return
	}
	h.entries = h.entries[:h.cursor-1]
	h.cursor--
}

// Undo returns the snapshot before the cursor. The current state is stored
// so a following Redo can return to it.
func (h *History) Undo(current *tree.Tree) (Snapshot, error) {
	if !h.CanUndo() {
		return Snapshot{}, ErrNothingUndo
	}
	if h.cursor == len(h.entries) {
		h.entries = append(h.entries, Capture(current))
	} else {
		h.entries[h.cursor] = Capture(current)
	}
	h.cursor--
	return restore(h.entries[h.cursor]), nil
}

// Redo returns the snapshot after the cursor.
func (h *History) Redo() (Snapshot, error) {
	if !h.CanRedo() {
		return Snapshot{}, ErrNothingRedo
	}
	h.cursor++
	return restore(h.entries[h.cursor]), nil
}

// restore hands out a copy so later edits of the live tree never reach the
// stored snapshot.
func restore(s Snapshot) Snapshot {
	t := s.Tree.Clone()
	t.Active = s.Active
	return Snapshot{Tree: t, Active: s.Active}
}
