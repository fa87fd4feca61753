package engine

import (
	"strings"

	"github.com/treykane/cli-mindmap/internal/tree"
)

// yank copies the active subtree, or only its children, to the clipboard
// in document format.
func (e *Engine) yank(childrenOnly bool) {
	active := e.tree.Active
	var text string
	if childrenOnly {
		text = e.codec.SerializeChildren(e.tree, active)
	} else {
		text = e.codec.SerializeSubtree(e.tree, active)
	}
	if text == "" {
		e.setStatus("Nothing to yank")
		return
	}
	if err := e.clip.WriteText(text); err != nil {
		e.clipboardError(err)
		return
	}
	if childrenOnly {
		e.setStatus("Children yanked")
	} else {
		e.setStatus("Node yanked")
	}
}

// paste parses the clipboard and inserts its top-level nodes as children
// of the active node or as siblings following it. A synthetic root added
// by the parser is unwrapped.
func (e *Engine) paste(asSiblings bool) {
	text, err := e.clip.ReadText()
	if err != nil {
		e.clipboardError(err)
		return
	}
	if strings.TrimSpace(text) == "" {
		e.setStatus("Clipboard is empty")
		return
	}
	src, err := e.codec.Parse(text)
	if err != nil {
		e.setStatusError("Failed to parse clipboard content", err)
		return
	}
	tops := []int{src.Root()}
	if src.Synthetic {
		tops = src.Children(src.Root())
	}

	active := e.tree.Active
	parent, index := active, -1
	if asSiblings {
		p, ok := e.tree.Parent(active)
		if !ok {
			e.setStatusError("Cannot paste siblings at root level", nil)
			return
		}
		parent, index = p, e.tree.IndexOf(active)+1
	}

	action := ActionPasteChildren
	if asSiblings {
		action = ActionPasteSiblings
	}
	err = e.mutate(func(t *tree.Tree) error {
		if err := t.SetCollapsed(parent, false); err != nil {
			return err
		}
		for i, top := range tops {
			at := index
			if at >= 0 {
				at += i
			}
			if _, err := t.Graft(parent, at, src, top); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		e.decline(action, err)
		return
	}
	if asSiblings {
		e.setStatus("Pasted as siblings")
	} else {
		e.setStatus("Pasted as children")
	}
}
