package history

import (
	"errors"
	"testing"

	"github.com/treykane/cli-mindmap/internal/tree"
)

func mutate(t *testing.T, h *History, tr *tree.Tree, title string) int {
	t.Helper()
	h.Push(tr)
	id, err := tr.CreateNode(tr.Root(), title, -1)
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	tr.Active = id
	return id
}

func TestUndoRedoRestoresTreeAndActive(t *testing.T) {
	h := New(10)
	tr := tree.New("root")
	initial := tr.Clone()

	var states []*tree.Tree
	for _, title := range []string{"a", "b", "c"} {
		states = append(states, tr.Clone())
		mutate(t, h, tr, title)
	}
	final := tr.Clone()

	for i := len(states) - 1; i >= 0; i-- {
		snap, err := h.Undo(tr)
		if err != nil {
			t.Fatalf("undo %d: %v", i, err)
		}
		tr = snap.Tree
		if !tr.Equal(states[i]) {
			t.Fatalf("undo %d: tree mismatch", i)
		}
		if tr.Active != states[i].Active {
			t.Fatalf("undo %d: active got %d, want %d", i, tr.Active, states[i].Active)
		}
	}
	if !tr.Equal(initial) {
		t.Fatal("expected initial tree after undoing everything")
	}
	if _, err := h.Undo(tr); !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}

	for i := 0; i < 3; i++ {
		snap, err := h.Redo()
		if err != nil {
			t.Fatalf("redo %d: %v", i, err)
		}
		tr = snap.Tree
	}
	if !tr.Equal(final) {
		t.Fatal("expected final tree after redoing everything")
	}
	if _, err := h.Redo(); !errors.Is(err, ErrNothingRedo) {
		t.Fatalf("expected ErrNothingRedo, got %v", err)
	}
}

func TestPushAfterUndoDiscardsRedoTail(t *testing.T) {
	h := New(10)
	tr := tree.New("root")
	mutate(t, h, tr, "a")
	mutate(t, h, tr, "b")

	snap, _ := h.Undo(tr)
	tr = snap.Tree
	if !h.CanRedo() {
		t.Fatal("expected redo to be available after undo")
	}
	mutate(t, h, tr, "c")
	if h.CanRedo() {
		t.Fatal("expected redo tail to be discarded")
	}
	if h.Cursor() != h.Len() {
		t.Fatalf("cursor %d should sit at the end (%d)", h.Cursor(), h.Len())
	}

	snap, _ = h.Undo(tr)
	if got := len(snap.Tree.Children(snap.Tree.Root())); got != 1 {
		t.Fatalf("children after undo: got %d, want 1", got)
	}
}

func TestPushDropsOldestBeyondLimit(t *testing.T) {
	h := New(3)
	tr := tree.New("root")
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		mutate(t, h, tr, title)
	}
	if h.Len() != 3 {
		t.Fatalf("len: got %d, want 3", h.Len())
	}
	undos := 0
	for {
		snap, err := h.Undo(tr)
		if err != nil {
			break
		}
		tr = snap.Tree
		undos++
	}
	if undos != 3 {
		t.Fatalf("undo steps: got %d, want 3", undos)
	}
	if got := len(tr.Children(tr.Root())); got != 2 {
		t.Fatalf("oldest reachable state has %d children, want 2", got)
	}
}

func TestSnapshotsDoNotAliasLiveTree(t *testing.T) {
	h := New(5)
	tr := tree.New("root")
	h.Push(tr)
	_ = tr.SetTitle(tr.Root(), "changed")

	snap, err := h.Undo(tr)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got := snap.Tree.Title(snap.Tree.Root()); got != "root" {
		t.Fatalf("snapshot title: got %q, want %q", got, "root")
	}
	_ = snap.Tree.SetTitle(snap.Tree.Root(), "edited after undo")
	redo, _ := h.Redo()
	if got := redo.Tree.Title(redo.Tree.Root()); got != "changed" {
		t.Fatalf("redo title: got %q, want %q", got, "changed")
	}
}

func TestDropForgetsDeclinedPush(t *testing.T) {
	h := New(5)
	tr := tree.New("root")
	h.Push(tr)
	h.Drop()
	if h.Len() != 0 || h.CanUndo() {
		t.Fatalf("expected empty history, len=%d", h.Len())
	}
}

func TestNewUsesDefaultLimit(t *testing.T) {
	h := New(0)
	tr := tree.New("root")
	for i := 0; i < DefaultMaxSteps+5; i++ {
		h.Push(tr)
	}
	if h.Len() != DefaultMaxSteps {
		t.Fatalf("len: got %d, want %d", h.Len(), DefaultMaxSteps)
	}
}
