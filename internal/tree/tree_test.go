package tree

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// buildSample returns:
//
//	root
//	  a
//	    a1
//	    a2
//	  b
func buildSample(t *testing.T) (*Tree, map[string]int) {
	t.Helper()
	tr := New("root")
	ids := map[string]int{"root": tr.Root()}
	add := func(name, parent string) {
		id, err := tr.CreateNode(ids[parent], name, -1)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids[name] = id
	}
	add("a", "root")
	add("a1", "a")
	add("a2", "a")
	add("b", "root")
	tr.Modified = false
	return tr, ids
}

func TestCreateNodeInsertsAtIndex(t *testing.T) {
	tr, ids := buildSample(t)

	id, err := tr.CreateNode(ids["root"], "first", 0)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got, want := tr.Children(ids["root"]), []int{id, ids["a"], ids["b"]}; !reflect.DeepEqual(got, want) {
		t.Fatalf("children: got %v, want %v", got, want)
	}
	if !tr.Modified {
		t.Fatal("expected modified flag after create")
	}

	mid, _ := tr.CreateNode(ids["root"], "mid", 2)
	if got := tr.IndexOf(mid); got != 2 {
		t.Fatalf("index of mid: got %d, want 2", got)
	}
}

func TestCreateNodeInvalidParent(t *testing.T) {
	tr, _ := buildSample(t)
	before := tr.Clone()

	_, err := tr.CreateNode(999, "x", -1)
	if !errors.Is(err, ErrInvalidParent) || !errors.Is(err, ErrStructural) {
		t.Fatalf("expected ErrInvalidParent, got %v", err)
	}
	if !tr.Equal(before) {
		t.Fatal("tree changed after failed create")
	}
}

func TestCreatedIDsAreMonotonic(t *testing.T) {
	tr, ids := buildSample(t)
	if _, err := tr.DeleteSubtree(ids["b"]); err != nil {
		t.Fatalf("delete: %v", err)
	}
	id, _ := tr.CreateNode(tr.Root(), "c", -1)
	if id <= ids["b"] {
		t.Fatalf("expected fresh id above %d, got %d", ids["b"], id)
	}
}

func TestDeleteSubtree(t *testing.T) {
	tr, ids := buildSample(t)

	removed, err := tr.DeleteSubtree(ids["a"])
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if want := []int{ids["a"], ids["a1"], ids["a2"]}; !reflect.DeepEqual(removed, want) {
		t.Fatalf("removed: got %v, want %v", removed, want)
	}
	if tr.Len() != 2 {
		t.Fatalf("len: got %d, want 2", tr.Len())
	}
	for _, id := range removed {
		if tr.Has(id) {
			t.Fatalf("node %d still present", id)
		}
	}
}

func TestDeleteSubtreeDeclinesRoot(t *testing.T) {
	tr, _ := buildSample(t)
	before := tr.Clone()

	if _, err := tr.DeleteSubtree(tr.Root()); !errors.Is(err, ErrInvalidRoot) {
		t.Fatalf("expected ErrInvalidRoot, got %v", err)
	}
	if _, err := tr.DeleteSubtree(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !tr.Equal(before) {
		t.Fatal("tree changed after declined delete")
	}
}

func TestReparent(t *testing.T) {
	tr, ids := buildSample(t)

	if err := tr.Reparent(ids["a2"], ids["b"], 0); err != nil {
		t.Fatalf("reparent: %v", err)
	}
	if p, _ := tr.Parent(ids["a2"]); p != ids["b"] {
		t.Fatalf("parent: got %d, want %d", p, ids["b"])
	}
	if got := tr.Children(ids["a"]); !reflect.DeepEqual(got, []int{ids["a1"]}) {
		t.Fatalf("old parent children: got %v", got)
	}
}

func TestReparentRejectsCycles(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		target string
	}{
		{name: "self", id: "a", target: "a"},
		{name: "child", id: "a", target: "a1"},
		{name: "second child", id: "a", target: "a2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, ids := buildSample(t)
			before := tr.Clone()
			err := tr.Reparent(ids[tt.id], ids[tt.target], -1)
			if !errors.Is(err, ErrCycle) || !errors.Is(err, ErrStructural) {
				t.Fatalf("expected ErrCycle, got %v", err)
			}
			if !tr.Equal(before) {
				t.Fatal("tree changed after rejected reparent")
			}
		})
	}
}

func TestReparentErrors(t *testing.T) {
	tr, ids := buildSample(t)
	if err := tr.Reparent(ids["a"], 999, 0); !errors.Is(err, ErrInvalidParent) {
		t.Fatalf("expected ErrInvalidParent, got %v", err)
	}
	if err := tr.Reparent(tr.Root(), ids["a"], 0); !errors.Is(err, ErrInvalidRoot) {
		t.Fatalf("expected ErrInvalidRoot, got %v", err)
	}
	if err := tr.Reparent(999, ids["a"], 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMoveSibling(t *testing.T) {
	tr, ids := buildSample(t)

	moved, err := tr.MoveSibling(ids["b"], -1)
	if err != nil || !moved {
		t.Fatalf("move up: moved=%v err=%v", moved, err)
	}
	if got := tr.Children(tr.Root()); !reflect.DeepEqual(got, []int{ids["b"], ids["a"]}) {
		t.Fatalf("children after move: got %v", got)
	}
	moved, err = tr.MoveSibling(ids["b"], -1)
	if err != nil || moved {
		t.Fatalf("move past top: moved=%v err=%v", moved, err)
	}
}

func TestCountersSaturate(t *testing.T) {
	tr, ids := buildSample(t)
	id := ids["a"]

	if err := tr.AdjustRank(id, -1, -3); err != nil {
		t.Fatalf("adjust rank: %v", err)
	}
	n, _ := tr.Get(id)
	if n.RankPos != 0 || n.RankNeg != 0 {
		t.Fatalf("rank went below zero: %+v", n)
	}
	if tr.Modified {
		t.Fatal("no-op adjustment should not mark modified")
	}

	for i := 0; i < MaxStars+3; i++ {
		_ = tr.AdjustStars(id, 1)
	}
	n, _ = tr.Get(id)
	if n.Stars != MaxStars {
		t.Fatalf("stars: got %d, want %d", n.Stars, MaxStars)
	}
	_ = tr.AdjustStars(id, -100)
	n, _ = tr.Get(id)
	if n.Stars != 0 {
		t.Fatalf("stars: got %d, want 0", n.Stars)
	}

	_ = tr.AdjustRank(id, MaxRank+10, 2)
	n, _ = tr.Get(id)
	if n.RankPos != MaxRank || n.RankNeg != 2 || n.Rank() != MaxRank-2 {
		t.Fatalf("rank: got %+v", n)
	}
	if err := tr.ResetRank(id); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n, _ = tr.Get(id); n.Rank() != 0 {
		t.Fatalf("rank after reset: %d", n.Rank())
	}
}

func TestSettersRejectUnknownIDs(t *testing.T) {
	tr, _ := buildSample(t)
	calls := map[string]func() error{
		"title":     func() error { return tr.SetTitle(77, "x") },
		"collapsed": func() error { return tr.SetCollapsed(77, true) },
		"hidden":    func() error { return tr.SetHidden(77, true) },
		"symbol":    func() error { return tr.SetSymbol(77, SymbolFirst) },
		"rank":      func() error { return tr.AdjustRank(77, 1, 0) },
		"stars":     func() error { return tr.AdjustStars(77, 1) },
	}
	for name, call := range calls {
		if err := call(); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestSortChildrenIsStable(t *testing.T) {
	tr := New("root")
	titles := []string{"pear", "Apple", "fig", "apple"}
	for _, title := range titles {
		_, _ = tr.CreateNode(tr.Root(), title, -1)
	}
	err := tr.SortChildren(tr.Root(), func(a, b Node) bool {
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	})
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	var got []string
	for _, id := range tr.Children(tr.Root()) {
		got = append(got, tr.Title(id))
	}
	want := []string{"Apple", "apple", "fig", "pear"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sorted: got %v, want %v", got, want)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tr, ids := buildSample(t)
	cp := tr.Clone()
	if !cp.Equal(tr) {
		t.Fatal("clone should equal original")
	}
	_ = cp.SetTitle(ids["a"], "changed")
	_, _ = cp.CreateNode(ids["b"], "new", -1)
	if tr.Title(ids["a"]) != "a" || len(tr.Children(ids["b"])) != 0 {
		t.Fatal("mutating the clone changed the original")
	}
	if cp.Equal(tr) {
		t.Fatal("clone should differ after mutation")
	}
}

func TestVisibility(t *testing.T) {
	tr, ids := buildSample(t)
	_ = tr.SetCollapsed(ids["a"], true)
	_ = tr.SetHidden(ids["b"], true)

	if tr.IsVisible(ids["a1"], false) {
		t.Fatal("child of collapsed node should not be visible")
	}
	if tr.IsVisible(ids["b"], false) {
		t.Fatal("hidden node should not be visible")
	}
	if !tr.IsVisible(ids["b"], true) {
		t.Fatal("hidden node should be visible with show hidden")
	}
	if got := tr.VisibleChildren(tr.Root(), false); !reflect.DeepEqual(got, []int{ids["a"]}) {
		t.Fatalf("visible children: got %v", got)
	}

	if !tr.Expand(ids["a1"]) {
		t.Fatal("expected expand to change state")
	}
	if !tr.IsVisible(ids["a1"], false) {
		t.Fatal("a1 should be visible after expand")
	}
}

func TestGraftCopiesSubtreeWithFreshIDs(t *testing.T) {
	src, sids := buildSample(t)
	_ = src.AdjustStars(sids["a"], 2)
	dst := New("dst")

	id, err := dst.Graft(dst.Root(), -1, src, sids["a"])
	if err != nil {
		t.Fatalf("graft: %v", err)
	}
	if dst.Len() != 4 {
		t.Fatalf("len: got %d, want 4", dst.Len())
	}
	n, _ := dst.Get(id)
	if n.Title != "a" || n.Stars != 2 || len(n.Children) != 2 {
		t.Fatalf("grafted node: %+v", n)
	}
	if dst.Title(n.Children[1]) != "a2" {
		t.Fatalf("child order lost: %q", dst.Title(n.Children[1]))
	}
}

func TestAncestorsAndDepth(t *testing.T) {
	tr, ids := buildSample(t)
	if got, want := tr.Ancestors(ids["a2"]), []int{ids["a"], ids["root"]}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ancestors: got %v, want %v", got, want)
	}
	if d := tr.Depth(ids["a2"]); d != 2 {
		t.Fatalf("depth: got %d, want 2", d)
	}
	if !tr.IsAncestor(ids["root"], ids["a1"]) || tr.IsAncestor(ids["b"], ids["a1"]) {
		t.Fatal("IsAncestor mismatch")
	}
}
