package engine

import (
	"github.com/treykane/cli-mindmap/internal/layout"
	"github.com/treykane/cli-mindmap/internal/tree"
)

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
)

// candidate ranks a node for directional navigation. Lower is better in
// every field, compared in order.
type candidate struct {
	axis, perp, id int
}

func (c candidate) less(o candidate) bool {
	if c.axis != o.axis {
		return c.axis < o.axis
	}
	if c.perp != o.perp {
		return c.perp < o.perp
	}
	return c.id < o.id
}

func centerX(n layout.RenderNode) int {
	return n.X + n.W/2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// selectNode makes id active if it exists.
func (e *Engine) selectNode(id int) {
	if !e.tree.Has(id) {
		return
	}
	e.tree.Active = id
	e.ensureActive()
}

func (e *Engine) moveLeft() {
	if parent, ok := e.tree.Parent(e.tree.Active); ok {
		e.selectNode(parent)
		return
	}
	e.moveGeometric(dirLeft)
}

// moveRight enters the child closest to the active row, expanding a
// collapsed node first. Leaves fall back to geometric search.
func (e *Engine) moveRight() {
	active := e.tree.Active
	kids := e.tree.VisibleChildren(active, e.style.ShowHidden)
	if len(kids) == 0 {
		e.moveGeometric(dirRight)
		return
	}
	if n, err := e.tree.Get(active); err == nil && n.Collapsed {
		e.viewChange(func(t *tree.Tree) { _ = t.SetCollapsed(active, false) })
	}
	cur, ok := e.last.Node(active)
	if !ok {
		return
	}
	best := candidate{id: -1}
	for _, c := range kids {
		rn, ok := e.last.Node(c)
		if !ok {
			continue
		}
		cand := candidate{axis: abs(rn.Mid() - cur.Mid()), id: c}
		if best.id < 0 || cand.less(best) {
			best = cand
		}
	}
	if best.id >= 0 {
		e.selectNode(best.id)
	}
}

// moveVertical prefers the nearest sibling in the direction and falls back
// to the nearest node anywhere.
func (e *Engine) moveVertical(step int) {
	dir := dirDown
	if step < 0 {
		dir = dirUp
	}
	active := e.tree.Active
	cur, ok := e.last.Node(active)
	if !ok {
		return
	}
	if parent, ok := e.tree.Parent(active); ok {
		best := candidate{id: -1}
		for _, s := range e.tree.Children(parent) {
			rn, ok := e.last.Node(s)
			if s == active || !ok {
				continue
			}
			axis := (rn.Mid() - cur.Mid()) * step
			if axis <= 0 {
				continue
			}
			cand := candidate{axis: axis, id: s}
			if best.id < 0 || cand.less(best) {
				best = cand
			}
		}
		if best.id >= 0 {
			e.selectNode(best.id)
			return
		}
	}
	e.moveGeometric(dir)
}

// moveGeometric selects, among the laid out nodes strictly in dir, the one
// with the smallest distance along the axis, then the smallest offset
// across it, then the smallest id.
func (e *Engine) moveGeometric(dir direction) {
	if id, ok := nearestInDirection(e.last, e.tree.Active, dir); ok {
		e.selectNode(id)
	}
}

func nearestInDirection(res *layout.Result, from int, dir direction) (int, bool) {
	cur, ok := res.Node(from)
	if !ok {
		return 0, false
	}
	best := candidate{id: -1}
	for _, id := range res.Order {
		if id == from {
			continue
		}
		rn := res.Nodes[id]
		var cand candidate
		switch dir {
		case dirUp:
			cand = candidate{axis: cur.Mid() - rn.Mid(), perp: abs(centerX(rn) - centerX(cur))}
		case dirDown:
			cand = candidate{axis: rn.Mid() - cur.Mid(), perp: abs(centerX(rn) - centerX(cur))}
		case dirLeft:
			cand = candidate{axis: centerX(cur) - centerX(rn), perp: abs(rn.Mid() - cur.Mid())}
		case dirRight:
			cand = candidate{axis: centerX(rn) - centerX(cur), perp: abs(rn.Mid() - cur.Mid())}
		}
		if cand.axis <= 0 {
			continue
		}
		cand.id = id
		if best.id < 0 || cand.less(best) {
			best = cand
		}
	}
	return best.id, best.id >= 0
}

// moveExtreme selects the topmost (step < 0) or bottommost node of the
// layout.
func (e *Engine) moveExtreme(step int) {
	best := candidate{id: -1}
	for _, id := range e.last.Order {
		rn := e.last.Nodes[id]
		row := rn.Y
		if step > 0 {
			row = -(rn.Y + len(rn.Lines) - 1)
		}
		cand := candidate{axis: row, perp: rn.X, id: id}
		if best.id < 0 || cand.less(best) {
			best = cand
		}
	}
	if best.id >= 0 {
		e.selectNode(best.id)
	}
}
