package engine

import (
	"math"

	"github.com/treykane/cli-mindmap/internal/layout"
	"github.com/treykane/cli-mindmap/internal/tree"
)

// widthStep scales node widths for view.wider and view.narrower.
const widthStep = 1.2

func (e *Engine) collapseAll(collapse bool) {
	e.viewChange(func(t *tree.Tree) {
		t.Walk(t.Root(), func(n *tree.Node, _ int) bool {
			_ = t.SetCollapsed(n.ID, collapse && len(n.Children) > 0)
			return true
		})
	})
}

func (e *Engine) collapseChildren() {
	active := e.tree.Active
	e.viewChange(func(t *tree.Tree) {
		for _, c := range t.Children(active) {
			_ = t.SetCollapsed(c, len(t.Children(c)) > 0)
		}
	})
}

// collapseOthers collapses everything except the path from the root to the
// active node.
func (e *Engine) collapseOthers() {
	active := e.tree.Active
	e.viewChange(func(t *tree.Tree) {
		t.Walk(t.Root(), func(n *tree.Node, _ int) bool {
			_ = t.SetCollapsed(n.ID, len(n.Children) > 0)
			return true
		})
		_ = t.SetCollapsed(active, false)
		for _, a := range t.Ancestors(active) {
			_ = t.SetCollapsed(a, false)
		}
	})
}

// collapseToLevel shows level levels below the root.
func (e *Engine) collapseToLevel(level int) {
	e.viewChange(func(t *tree.Tree) { collapseBelow(t, level) })
	e.setStatus("Showing %d levels", level)
}

func (e *Engine) scaleWidth(wider bool) {
	scale := func(w int) int {
		if w <= 0 {
			return w
		}
		if wider {
			return int(math.Round(float64(w) * widthStep))
		}
		return max(layout.MinWrapWidth, int(math.Round(float64(w)/widthStep)))
	}
	e.style.MaxParentWidth = scale(e.style.MaxParentWidth)
	e.style.MaxLeafWidth = scale(e.style.MaxLeafWidth)
	e.refresh()
	if e.style.MaxLeafWidth > 0 {
		e.setStatus("Width: %d / %d", e.style.MaxParentWidth, e.style.MaxLeafWidth)
	} else {
		e.setStatus("Width: %d", e.style.MaxParentWidth)
	}
}

func (e *Engine) changeSpacing(delta int) {
	e.style.LineSpacing = max(0, e.style.LineSpacing+delta)
	e.refresh()
	e.setStatus("Line spacing: %d", e.style.LineSpacing)
}

func (e *Engine) toggleAlign() {
	if e.style.Alignment == layout.AlignCenter {
		e.style.Alignment = layout.AlignStack
	} else {
		e.style.Alignment = layout.AlignCenter
	}
	e.refresh()
	e.setStatus("Alignment: %s", e.style.Alignment)
}

func (e *Engine) toggleShowHidden() {
	e.style.ShowHidden = !e.style.ShowHidden
	e.refresh()
	if e.style.ShowHidden {
		e.setStatus("Show hidden: ON")
	} else {
		e.setStatus("Show hidden: OFF")
	}
}

// focus collapses the siblings of the active node and of each of its
// ancestors, then expands the whole subtree below the active node.
func (e *Engine) focus() {
	e.viewChange(func(t *tree.Tree) { focusOn(t, t.Active) })
	e.setStatus("Focus mode applied")
}

func focusOn(t *tree.Tree, id int) {
	path := append([]int{id}, t.Ancestors(id)...)
	for i := 0; i < len(path)-1; i++ {
		for _, s := range t.Children(path[i+1]) {
			if s != path[i] {
				_ = t.SetCollapsed(s, len(t.Children(s)) > 0)
			}
		}
	}
	t.Walk(id, func(n *tree.Node, _ int) bool {
		_ = t.SetCollapsed(n.ID, false)
		return true
	})
}

func (e *Engine) toggleFocusLock() {
	e.focusLock = !e.focusLock
	e.setStatus("Focus lock: %s", onOff(e.focusLock))
}

func (e *Engine) toggleCenterLock() {
	e.centerLock = !e.centerLock
	e.setStatus("Center lock: %s", onOff(e.centerLock))
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
