package engine

import (
	"errors"
	"strings"

	"github.com/treykane/cli-mindmap/internal/clipboard"
	"github.com/treykane/cli-mindmap/internal/readline"
	"github.com/treykane/cli-mindmap/internal/tree"
)

// LineOp is a line-editing operation applied while editing a title or a
// search query.
type LineOp int

const (
	LineInsert LineOp = iota
	// LinePaste inserts normalized text; with no text it reads the
	// clipboard.
	LinePaste
	LineBackspace
	LineDelete
	LineLeft
	LineRight
	LineHome
	LineEnd
	LineWordLeft
	LineWordRight
	LineDeleteWordBefore
	LineDeleteWordAfter
	LineDeleteToStart
	LineDeleteToEnd
	// LineCommit finishes the edit: Enter.
	LineCommit
	// LineCancel abandons the edit: Escape.
	LineCancel
)

const (
	defaultEditorWidth = 40
	minEditorWidth     = 10
	// editorChrome is the space the status line reserves around the
	// editor: prompt and cursor.
	editorChrome = 12
)

func (e *Engine) editorWidth() int {
	if e.width <= 0 {
		return defaultEditorWidth
	}
	return max(minEditorWidth, e.width-editorChrome)
}

// startEditing edits the active node. With replace the buffer starts empty.
func (e *Engine) startEditing(replace bool) {
	active := e.tree.Active
	title := e.tree.Title(active)
	text := title
	if replace {
		text = ""
	}
	e.mode = &Editing{
		Editor:    readline.New(text, e.editorWidth()),
		Node:      active,
		prevTitle: title,
	}
}

// beginEdit starts editing a node that was just inserted. before is the
// tree without it.
func (e *Engine) beginEdit(id int, title string, before *tree.Tree) {
	e.mode = &Editing{
		Editor:    readline.New(title, e.editorWidth()),
		Node:      id,
		prevTitle: title,
		before:    before,
	}
}

// Line applies a line-editing operation in Editing or Searching mode. It
// is ignored in Normal mode.
func (e *Engine) Line(op LineOp, text string) {
	var ed *readline.Editor
	switch m := e.mode.(type) {
	case *Editing:
		ed = m.Editor
	case *Searching:
		ed = m.Editor
	default:
		return
	}

	switch op {
	case LineInsert:
		ed.InsertString(text)
	case LinePaste:
		if text == "" {
			var err error
			if text, err = e.clip.ReadText(); err != nil {
				e.clipboardError(err)
				return
			}
		}
		ed.Paste(text)
	case LineBackspace:
		ed.DeleteBefore()
	case LineDelete:
		ed.DeleteAfter()
	case LineLeft:
		ed.Left()
	case LineRight:
		ed.Right()
	case LineHome:
		ed.Home()
	case LineEnd:
		ed.End()
	case LineWordLeft:
		ed.WordLeft()
	case LineWordRight:
		ed.WordRight()
	case LineDeleteWordBefore:
		ed.DeleteWordBefore()
	case LineDeleteWordAfter:
		ed.DeleteWordAfter()
	case LineDeleteToStart:
		ed.DeleteToStart()
	case LineDeleteToEnd:
		ed.DeleteToEnd()
	case LineCommit:
		e.commitLine()
	case LineCancel:
		e.cancelLine()
	}
}

func (e *Engine) commitLine() {
	switch m := e.mode.(type) {
	case *Editing:
		e.mode = Normal{}
		e.commitEdit(m)
	case *Searching:
		e.mode = Normal{}
		e.runSearch(m.Editor.String())
	}
}

func (e *Engine) cancelLine() {
	m, ok := e.mode.(*Editing)
	e.mode = Normal{}
	if ok && m.IsNew() {
		e.discardNew(m)
	}
}

// discardNew undoes the insert that created the edited node as if it never
// happened. An auto-saved file is rewritten without the node.
func (e *Engine) discardNew(m *Editing) {
	e.tree = m.before
	e.hist.Drop()
	e.syncModified(e.tree)
	e.refresh()
	e.afterChange()
}

// commitEdit writes the trimmed buffer into the node title. Leading spaces
// would read back as indentation, so they never reach a title. A new node
// was already recorded in the history when it was inserted, so its title
// is set in place; an existing node gets its own history step. Committing
// an empty title discards a new node and is declined for an existing one.
func (e *Engine) commitEdit(m *Editing) {
	title := strings.TrimSpace(m.Editor.String())
	if title == "" {
		if m.IsNew() {
			e.discardNew(m)
			return
		}
		e.setStatusError("Title cannot be empty", nil)
		return
	}
	if m.IsNew() {
		if err := e.tree.SetTitle(m.Node, title); err != nil {
			e.decline(ActionEditReplace, err)
			return
		}
		e.refresh()
		e.afterChange()
		return
	}
	if title == m.prevTitle {
		return
	}
	e.decline(ActionEditReplace, e.mutate(func(t *tree.Tree) error { return t.SetTitle(m.Node, title) }))
}

func (e *Engine) clipboardError(err error) {
	if errors.Is(err, clipboard.ErrUnavailable) {
		e.setStatusError("Clipboard unavailable", err)
		return
	}
	e.setStatusError("Clipboard error", err)
}
