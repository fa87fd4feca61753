package engine

import (
	"fmt"
	"strings"

	"github.com/treykane/cli-mindmap/internal/tree"
)

func (e *Engine) insertSibling() {
	active := e.tree.Active
	parent, ok := e.tree.Parent(active)
	if !ok {
		// The root has no siblings; a new node goes below it instead.
		e.insertNode(ActionInsertSibling, active, -1)
		return
	}
	e.insertNode(ActionInsertSibling, parent, e.tree.IndexOf(active)+1)
}

func (e *Engine) insertChild() {
	e.insertNode(ActionInsertChild, e.tree.Active, -1)
}

// insertNode creates a blank node and starts editing it. Cancelling that
// edit removes the node again.
func (e *Engine) insertNode(action string, parent, index int) {
	before := e.tree
	var id int
	err := e.mutate(func(t *tree.Tree) error {
		var err error
		if err = t.SetCollapsed(parent, false); err != nil {
			return err
		}
		if id, err = t.CreateNode(parent, "", index); err != nil {
			return err
		}
		t.Active = id
		return nil
	})
	if err != nil {
		e.decline(action, err)
		return
	}
	e.beginEdit(id, "", before)
}

// deleteNode removes the active subtree and puts it on the clipboard. The
// previous visible sibling becomes active, else the next one, else the
// parent.
func (e *Engine) deleteNode() {
	active := e.tree.Active
	parent, ok := e.tree.Parent(active)
	if !ok {
		e.setStatusError("Cannot delete root node", nil)
		return
	}
	next := parent
	siblings := e.tree.VisibleChildren(parent, e.style.ShowHidden)
	for i, s := range siblings {
		if s != active {
			continue
		}
		switch {
		case i > 0:
			next = siblings[i-1]
		case len(siblings) > 1:
			next = siblings[1]
		}
		break
	}

	text := e.codec.SerializeSubtree(e.tree, active)
	err := e.mutate(func(t *tree.Tree) error {
		if _, err := t.DeleteSubtree(active); err != nil {
			return err
		}
		t.Active = next
		return nil
	})
	if err != nil {
		e.decline(ActionDelete, err)
		return
	}
	if err := e.clip.WriteText(text); err != nil {
		e.setStatusError("Node deleted; clipboard unavailable", err)
		return
	}
	e.setStatus("Node deleted")
}

func (e *Engine) deleteChildren() {
	active := e.tree.Active
	err := e.mutate(func(t *tree.Tree) error {
		for _, c := range t.Children(active) {
			if _, err := t.DeleteSubtree(c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		e.decline(ActionDeleteChildren, err)
		return
	}
	e.setStatus("Children deleted")
}

func (e *Engine) moveNode(action string, delta int) {
	active := e.tree.Active
	err := e.mutate(func(t *tree.Tree) error {
		moved, err := t.MoveSibling(active, delta)
		if err != nil {
			return err
		}
		if !moved {
			return errUnchanged
		}
		return nil
	})
	e.decline(action, err)
}

// toggleCollapse folds or unfolds the active node. Collapse state is a
// view setting: it is not recorded in the history and does not mark the
// document as modified.
func (e *Engine) toggleCollapse() {
	active := e.tree.Active
	n, err := e.tree.Get(active)
	if err != nil || len(n.Children) == 0 {
		return
	}
	e.viewChange(func(t *tree.Tree) { _ = t.SetCollapsed(active, !n.Collapsed) })
}

func (e *Engine) toggleHide() {
	active := e.tree.Active
	n, err := e.tree.Get(active)
	if err != nil {
		return
	}
	if active == e.tree.Root() {
		e.decline(ActionToggleHide, fmt.Errorf("hide %d: %w", active, tree.ErrInvalidRoot))
		return
	}
	err = e.mutate(func(t *tree.Tree) error { return t.SetHidden(active, !n.Hidden) })
	if err != nil {
		e.decline(ActionToggleHide, err)
		return
	}
	if n.Hidden {
		e.setStatus("Node unhidden")
	} else {
		e.setStatus("Node hidden")
	}
}

// toggleSymbol cycles none, first symbol, second symbol.
func (e *Engine) toggleSymbol() {
	active := e.tree.Active
	n, err := e.tree.Get(active)
	if err != nil {
		return
	}
	next := tree.SymbolNone
	switch n.Symbol {
	case tree.SymbolNone:
		next = tree.SymbolFirst
	case tree.SymbolFirst:
		next = tree.SymbolSecond
	}
	e.decline(ActionToggleSymbol, e.mutate(func(t *tree.Tree) error { return t.SetSymbol(active, next) }))
}

// adjust applies a counter change to the active node. Counters saturate, so
// a change at a bound is a silent no-op.
func (e *Engine) adjust(action string, fn func(t *tree.Tree, id int) error) {
	active := e.tree.Active
	e.decline(action, e.mutate(func(t *tree.Tree) error { return fn(t, active) }))
}

func byTitle(a, b tree.Node) bool {
	return strings.ToLower(a.Title) < strings.ToLower(b.Title)
}

func byRank(a, b tree.Node) bool {
	return a.Rank() > b.Rank()
}

// sortSiblings sorts the active node together with its siblings. On the
// root it sorts the root's children.
func (e *Engine) sortSiblings(action string, less func(a, b tree.Node) bool) {
	active := e.tree.Active
	parent, ok := e.tree.Parent(active)
	if !ok {
		parent = active
	}
	err := e.mutate(func(t *tree.Tree) error { return t.SortChildren(parent, less) })
	if err != nil {
		e.decline(action, err)
		return
	}
	if action == ActionSortRank {
		e.setStatus("Sorted by rank")
	} else {
		e.setStatus("Sorted by title")
	}
}

// viewChange applies a collapse change to the live tree without touching
// the history or the modified flag.
func (e *Engine) viewChange(fn func(t *tree.Tree)) {
	modified := e.tree.Modified
	fn(e.tree)
	e.tree.Modified = modified
	e.refresh()
}
