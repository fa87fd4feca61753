package tree

// Ancestors returns the ancestors of id, nearest first.
func (t *Tree) Ancestors(id int) []int {
	var out []int
	n, ok := t.nodes[id]
	for ok && n.Parent != 0 {
		out = append(out, n.Parent)
		n, ok = t.nodes[n.Parent]
	}
	return out
}

// IsAncestor reports whether a is a proper ancestor of d.
func (t *Tree) IsAncestor(a, d int) bool {
	n, ok := t.nodes[d]
	for ok && n.Parent != 0 {
		if n.Parent == a {
			return true
		}
		n, ok = t.nodes[n.Parent]
	}
	return false
}

// Depth returns the number of ancestors of id (0 for the root).
func (t *Tree) Depth(id int) int {
	return len(t.Ancestors(id))
}

// Descendants returns id and everything below it in pre-order.
func (t *Tree) Descendants(id int) []int {
	if _, ok := t.nodes[id]; !ok {
		return nil
	}
	var out []int
	t.Walk(id, func(n *Node, _ int) bool {
		out = append(out, n.ID)
		return true
	})
	return out
}

// Walk visits the subtree of id in pre-order. Returning false from fn skips
// the children of the visited node.
func (t *Tree) Walk(id int, fn func(n *Node, depth int) bool) {
	var visit func(id, depth int)
	visit = func(id, depth int) {
		n, ok := t.nodes[id]
		if !ok {
			return
		}
		if !fn(n, depth) {
			return
		}
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	visit(id, 0)
}

// VisibleChildren returns the children of id that pass the hidden filter.
// Collapse state of id itself is not considered.
func (t *Tree) VisibleChildren(id int, showHidden bool) []int {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(n.Children))
	for _, c := range n.Children {
		if showHidden || !t.nodes[c].Hidden {
			out = append(out, c)
		}
	}
	return out
}

// IsVisible reports whether id would be laid out: no ancestor is collapsed
// and, unless showHidden, neither id nor an ancestor is hidden. The root is
// always visible.
func (t *Tree) IsVisible(id int, showHidden bool) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	if id == t.root {
		return true
	}
	if n.Hidden && !showHidden {
		return false
	}
	for _, a := range t.Ancestors(id) {
		p := t.nodes[a]
		if p.Collapsed {
			return false
		}
		if a != t.root && p.Hidden && !showHidden {
			return false
		}
	}
	return true
}

// Expand clears the collapsed flag on every ancestor of id so that id becomes
// reachable. It reports whether anything changed.
func (t *Tree) Expand(id int) bool {
	changed := false
	for _, a := range t.Ancestors(id) {
		if p := t.nodes[a]; p.Collapsed {
			p.Collapsed = false
			changed = true
		}
	}
	if changed {
		t.Modified = true
	}
	return changed
}
