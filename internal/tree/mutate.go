package tree

import (
	"fmt"
	"sort"
)

// CreateNode inserts a new node under parent at index and returns its id.
// A negative or too large index appends.
func (t *Tree) CreateNode(parent int, title string, index int) (int, error) {
	p, ok := t.nodes[parent]
	if !ok {
		return 0, fmt.Errorf("create under %d: %w", parent, ErrInvalidParent)
	}
	id := t.alloc(title, parent)
	p.Children = insertAt(p.Children, clampIndex(index, len(p.Children)), id)
	t.Modified = true
	return id, nil
}

// DeleteSubtree removes id and all of its descendants. It returns the removed
// ids in pre-order.
func (t *Tree) DeleteSubtree(id int) ([]int, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}
	if id == t.root {
		return nil, fmt.Errorf("delete %d: %w", id, ErrInvalidRoot)
	}
	removed := t.Descendants(id)
	p := t.nodes[n.Parent]
	p.Children = removeID(p.Children, id)
	for _, r := range removed {
		delete(t.nodes, r)
	}
	t.Modified = true
	return removed, nil
}

// Reparent moves id, with its subtree, under newParent at index.
func (t *Tree) Reparent(id, newParent, index int) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("reparent %d: %w", id, ErrNotFound)
	}
	if id == t.root {
		return fmt.Errorf("reparent %d: %w", id, ErrInvalidRoot)
	}
	np, ok := t.nodes[newParent]
	if !ok {
		return fmt.Errorf("reparent %d under %d: %w", id, newParent, ErrInvalidParent)
	}
	if newParent == id || t.IsAncestor(id, newParent) {
		return fmt.Errorf("reparent %d under %d: %w", id, newParent, ErrCycle)
	}
	old := t.nodes[n.Parent]
	old.Children = removeID(old.Children, id)
	np.Children = insertAt(np.Children, clampIndex(index, len(np.Children)), id)
	n.Parent = newParent
	t.Modified = true
	return nil
}

// MoveSibling shifts id by delta positions among its siblings, clamped to
// the ends. It reports whether the position changed.
func (t *Tree) MoveSibling(id, delta int) (bool, error) {
	n, ok := t.nodes[id]
	if !ok {
		return false, fmt.Errorf("move %d: %w", id, ErrNotFound)
	}
	if id == t.root {
		return false, fmt.Errorf("move %d: %w", id, ErrInvalidRoot)
	}
	p := t.nodes[n.Parent]
	from := t.IndexOf(id)
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(p.Children)-1 {
		to = len(p.Children) - 1
	}
	if to == from {
		return false, nil
	}
	p.Children = insertAt(removeID(p.Children, id), to, id)
	t.Modified = true
	return true, nil
}

// SetTitle replaces the node's title.
func (t *Tree) SetTitle(id int, title string) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("set title %d: %w", id, ErrNotFound)
	}
	if n.Title != title {
		n.Title = title
		t.Modified = true
	}
	return nil
}

// SetCollapsed sets the collapsed flag.
func (t *Tree) SetCollapsed(id int, collapsed bool) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("set collapsed %d: %w", id, ErrNotFound)
	}
	if n.Collapsed != collapsed {
		n.Collapsed = collapsed
		t.Modified = true
	}
	return nil
}

// SetHidden sets the hidden flag.
func (t *Tree) SetHidden(id int, hidden bool) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("set hidden %d: %w", id, ErrNotFound)
	}
	if n.Hidden != hidden {
		n.Hidden = hidden
		t.Modified = true
	}
	return nil
}

// SetSymbol sets the symbol marker.
func (t *Tree) SetSymbol(id int, s Symbol) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("set symbol %d: %w", id, ErrNotFound)
	}
	if n.Symbol != s {
		n.Symbol = s
		t.Modified = true
	}
	return nil
}

// AdjustRank adds the deltas to the positive and negative rank counters.
// Both counters saturate at 0 and MaxRank.
func (t *Tree) AdjustRank(id, posDelta, negDelta int) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("adjust rank %d: %w", id, ErrNotFound)
	}
	pos := saturate(n.RankPos+posDelta, MaxRank)
	neg := saturate(n.RankNeg+negDelta, MaxRank)
	if pos != n.RankPos || neg != n.RankNeg {
		n.RankPos, n.RankNeg = pos, neg
		t.Modified = true
	}
	return nil
}

// ResetRank zeroes both rank counters.
func (t *Tree) ResetRank(id int) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("reset rank %d: %w", id, ErrNotFound)
	}
	if n.RankPos != 0 || n.RankNeg != 0 {
		n.RankPos, n.RankNeg = 0, 0
		t.Modified = true
	}
	return nil
}

// AdjustStars adds delta to the star counter, saturating at 0 and MaxStars.
func (t *Tree) AdjustStars(id, delta int) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("adjust stars %d: %w", id, ErrNotFound)
	}
	stars := saturate(n.Stars+delta, MaxStars)
	if stars != n.Stars {
		n.Stars = stars
		t.Modified = true
	}
	return nil
}

// SortChildren stable-sorts the children of parent with less.
func (t *Tree) SortChildren(parent int, less func(a, b Node) bool) error {
	p, ok := t.nodes[parent]
	if !ok {
		return fmt.Errorf("sort %d: %w", parent, ErrNotFound)
	}
	sorted := append([]int(nil), p.Children...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(*t.nodes[sorted[i]], *t.nodes[sorted[j]])
	})
	for i := range sorted {
		if sorted[i] != p.Children[i] {
			p.Children = sorted
			t.Modified = true
			break
		}
	}
	return nil
}

// Graft copies the subtree rooted at srcID in src under parent at index,
// assigning fresh ids. It returns the id of the copied subtree root.
func (t *Tree) Graft(parent, index int, src *Tree, srcID int) (int, error) {
	if _, ok := t.nodes[parent]; !ok {
		return 0, fmt.Errorf("graft under %d: %w", parent, ErrInvalidParent)
	}
	if _, ok := src.nodes[srcID]; !ok {
		return 0, fmt.Errorf("graft source %d: %w", srcID, ErrNotFound)
	}
	id := t.graft(parent, index, src, srcID)
	t.Modified = true
	return id, nil
}

func (t *Tree) graft(parent, index int, src *Tree, srcID int) int {
	s := src.nodes[srcID]
	id := t.alloc(s.Title, parent)
	n := t.nodes[id]
	n.Collapsed, n.Hidden = s.Collapsed, s.Hidden
	n.RankPos, n.RankNeg, n.Stars, n.Symbol = s.RankPos, s.RankNeg, s.Stars, s.Symbol
	p := t.nodes[parent]
	p.Children = insertAt(p.Children, clampIndex(index, len(p.Children)), id)
	for _, c := range s.Children {
		t.graft(id, -1, src, c)
	}
	return id
}

func saturate(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

func clampIndex(index, n int) int {
	if index < 0 || index > n {
		return n
	}
	return index
}

func insertAt(ids []int, index, id int) []int {
	ids = append(ids, 0)
	copy(ids[index+1:], ids[index:])
	ids[index] = id
	return ids
}

func removeID(ids []int, id int) []int {
	out := ids[:0]
	for _, c := range ids {
		if c != id {
			out = append(out, c)
		}
	}
	return out
}
