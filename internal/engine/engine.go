// Package engine is the command engine of the mind map.
//
// An Engine owns the document tree, its undo history and the current input
// mode. Callers feed it action ids (see actions.go) while in normal mode and
// line-editing operations while a title or a search query is being edited.
// Every mutating action works on a copy of the tree and swaps it in only
// when the action succeeds, so a declined action never leaves a partial
// change behind. The layout is recomputed after every change and reused for
// directional navigation and by the renderer.
package engine

import (
	"errors"
	"fmt"

	"github.com/treykane/cli-mindmap/internal/clipboard"
	"github.com/treykane/cli-mindmap/internal/document"
	"github.com/treykane/cli-mindmap/internal/history"
	"github.com/treykane/cli-mindmap/internal/layout"
	"github.com/treykane/cli-mindmap/internal/logging"
	"github.com/treykane/cli-mindmap/internal/tree"
)

var engineLog = logging.New("engine")

// errUnchanged marks a mutation that turned out to be a no-op. It is never
// shown to the user.
var errUnchanged = errors.New("nothing changed")

// Options configures a new Engine.
type Options struct {
	Style        layout.Style
	MaxUndoSteps int
	Clipboard    clipboard.Clipboard
	// Path is the document file. Saving is declined while it is empty.
	Path string
	// PostExportCommand runs after an HTML export with the exported path
	// as its only argument.
	PostExportCommand string
	AutoSave          bool
	// InitialDepth collapses everything deeper than this level on start.
	// Zero keeps the tree expanded.
	InitialDepth int
	// Width is the initial viewport width used for wrapping.
	Width int
	// FocusLock applies view.focus after every move.
	FocusLock bool
	// CenterLock asks the renderer to keep the active node centered.
	CenterLock bool
}

// Status is the transient message shown to the user after an action.
type Status struct {
	Text  string
	Error bool
}

// Engine is the state machine behind the UI. It is not safe for concurrent
// use; the UI loop is its only caller.
type Engine struct {
	tree  *tree.Tree
	hist  *history.History
	clip  clipboard.Clipboard
	codec document.Codec
	style layout.Style

	path       string
	postExport string
	autoSave   bool
	width      int

	mode   Mode
	status Status
	search searchState
	last   *layout.Result

	// saved is the document text last read from or written to path. The
	// modified flag compares against it after undo and redo.
	saved string

	focusLock  bool
	centerLock bool
	showHelp   bool
	quitting   bool
}

// New returns an engine editing t. A nil tree starts an empty map.
func New(t *tree.Tree, opts Options) *Engine {
	if t == nil {
		t = tree.New(document.EmptyDocumentTitle)
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = &clipboard.Memory{}
	}
	e := &Engine{
		tree:       t,
		hist:       history.New(opts.MaxUndoSteps),
		clip:       clip,
		codec:      document.Codec{Symbol1: opts.Style.Symbol1, Symbol2: opts.Style.Symbol2},
		style:      opts.Style,
		path:       opts.Path,
		postExport: opts.PostExportCommand,
		autoSave:   opts.AutoSave,
		width:      opts.Width,
		focusLock:  opts.FocusLock,
		centerLock: opts.CenterLock,
		mode:       Normal{},
	}
	if e.codec.Symbol1 == "" || e.codec.Symbol2 == "" {
		e.codec = document.DefaultCodec
	}
	if opts.InitialDepth > 0 {
		collapseBelow(e.tree, opts.InitialDepth)
		e.tree.Modified = false
	}
	if !e.tree.Modified {
		e.saved = e.codec.Serialize(e.tree)
	}
	if !e.tree.Has(e.tree.Active) {
		e.tree.Active = e.tree.Root()
	}
	e.refresh()
	return e
}

// Tree returns the live tree. Callers must treat it as read-only.
func (e *Engine) Tree() *tree.Tree { return e.tree }

// Active returns the active node id.
func (e *Engine) Active() int { return e.tree.Active }

// Mode returns the current input mode.
func (e *Engine) Mode() Mode { return e.mode }

// Status returns the last status message.
func (e *Engine) Status() Status { return e.status }

// ClearStatus removes the status message.
func (e *Engine) ClearStatus() { e.status = Status{} }

// Notify replaces the status message. The command layer uses it to report
// how the document was opened.
func (e *Engine) Notify(s Status) { e.status = s }

// Layout returns the layout of the current tree.
func (e *Engine) Layout() *layout.Result { return e.last }

// Style returns the current layout settings.
func (e *Engine) Style() layout.Style { return e.style }

// Path returns the document path.
func (e *Engine) Path() string { return e.path }

// Modified reports whether the tree has unsaved changes.
func (e *Engine) Modified() bool { return e.tree.Modified }

// History exposes the undo history for inspection.
func (e *Engine) History() *history.History { return e.hist }

// ShowHelp reports whether the help overlay is toggled on.
func (e *Engine) ShowHelp() bool { return e.showHelp }

// FocusLock reports whether every move refocuses the map.
func (e *Engine) FocusLock() bool { return e.focusLock }

// CenterLock reports whether the active node should stay centered.
func (e *Engine) CenterLock() bool { return e.centerLock }

// Quitting reports whether a quit action was accepted.
func (e *Engine) Quitting() bool { return e.quitting }

// SetWidth updates the viewport width used for wrapping leaves and the
// editor window.
func (e *Engine) SetWidth(width int) {
	if width == e.width {
		return
	}
	e.width = width
	if ed, ok := e.mode.(*Editing); ok {
		ed.Editor.SetWidth(e.editorWidth())
	}
	e.refresh()
}

func (e *Engine) setStatus(format string, args ...any) {
	e.status = Status{Text: fmt.Sprintf(format, args...)}
}

// setStatusError reports a failed action to the user and the log.
func (e *Engine) setStatusError(text string, err error, attrs ...any) {
	e.status = Status{Text: text, Error: true}
	if err != nil {
		engineLog.Warn(text, append(attrs, "error", err)...)
	}
}

// refresh restores the active-node invariant and recomputes the layout.
func (e *Engine) refresh() {
	e.ensureActive()
	e.last = layout.Compute(e.tree, e.width, e.style)
}

// ensureActive moves the active id to the closest visible ancestor when the
// active node is gone or filtered out.
func (e *Engine) ensureActive() {
	t := e.tree
	if !t.Has(t.Active) {
		t.Active = t.Root()
		return
	}
	if t.IsVisible(t.Active, e.style.ShowHidden) {
		return
	}
	for _, a := range t.Ancestors(t.Active) {
		if t.IsVisible(a, e.style.ShowHidden) {
			t.Active = a
			return
		}
	}
	t.Active = t.Root()
}

// mutate applies fn to a copy of the tree. On success the previous tree is
// pushed onto the history and the copy becomes live. A failing fn leaves
// everything as it was. errUnchanged is returned when fn succeeded but did
// not change anything, in which case no history entry is recorded.
func (e *Engine) mutate(fn func(t *tree.Tree) error) error {
	work := e.tree.Clone()
	if err := fn(work); err != nil {
		return err
	}
	if work.Equal(e.tree) {
		return errUnchanged
	}
	work.Modified = true
	e.hist.Push(e.tree)
	e.tree = work
	e.refresh()
	e.afterChange()
	return nil
}

// decline reports a failed mutation. Structural errors are expected user
// errors and only logged at debug level.
func (e *Engine) decline(action string, err error) {
	switch {
	case err == nil, errors.Is(err, errUnchanged):
		return
	case errors.Is(err, tree.ErrInvalidRoot):
		e.setStatusError("Not possible on the root node", nil)
	case errors.Is(err, tree.ErrStructural):
		e.setStatusError("Cannot "+actionVerb(action), nil)
	default:
		e.setStatusError("Failed to "+actionVerb(action), err, "action", action)
		return
	}
	engineLog.Debug("action declined", "action", action, "error", err)
}

// afterChange runs the side effects that follow every accepted mutation.
func (e *Engine) afterChange() {
	if !e.autoSave || e.path == "" {
		return
	}
	if err := e.writeDocument(); err != nil {
		e.setStatusError("Auto-save failed", err, "path", e.path)
	}
}

// writeDocument saves the tree to path and remembers what was written.
func (e *Engine) writeDocument() error {
	if err := e.codec.Save(e.path, e.tree); err != nil {
		return err
	}
	e.saved = e.codec.Serialize(e.tree)
	return nil
}

// syncModified sets the modified flag of t by comparing its document text
// with the last saved text.
func (e *Engine) syncModified(t *tree.Tree) {
	t.Modified = e.codec.Serialize(t) != e.saved
}

// restore replaces the live tree with a history snapshot.
func (e *Engine) restore(s history.Snapshot) {
	e.tree = s.Tree
	e.tree.Active = s.Active
	e.syncModified(e.tree)
	e.refresh()
	e.afterChange()
}

func collapseBelow(t *tree.Tree, level int) {
	t.Walk(t.Root(), func(n *tree.Node, depth int) bool {
		_ = t.SetCollapsed(n.ID, depth >= level && len(n.Children) > 0)
		return true
	})
}
