package engine

import (
	"github.com/treykane/cli-mindmap/internal/readline"
	"github.com/treykane/cli-mindmap/internal/tree"
)

// Mode is the input mode of the engine. It is one of Normal, *Editing or
// *Searching.
type Mode interface {
	Name() string
	isMode()
}

// Normal dispatches actions bound to single keys.
type Normal struct{}

func (Normal) Name() string { return "normal" }
func (Normal) isMode()      {}

// Editing edits the title of one node.
type Editing struct {
	Editor *readline.Editor
	Node   int
	// prevTitle is restored when the edit is cancelled.
	prevTitle string
	// before is the tree as it was before a new node was inserted for this
	// edit. Cancelling the edit of a new node reinstates it.
	before *tree.Tree
}

func (*Editing) Name() string { return "edit" }
func (*Editing) isMode()      {}

// IsNew reports whether the edited node was just inserted.
func (m *Editing) IsNew() bool { return m.before != nil }

// Searching edits a search query.
type Searching struct {
	Editor *readline.Editor
}

func (*Searching) Name() string { return "search" }
func (*Searching) isMode()      {}
