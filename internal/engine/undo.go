package engine

import (
	"errors"

	"github.com/treykane/cli-mindmap/internal/history"
)

func (e *Engine) undo() {
	s, err := e.hist.Undo(e.tree)
	if err != nil {
		e.historyError(err)
		return
	}
	e.restore(s)
	e.setStatus("Undone")
}

func (e *Engine) redo() {
	s, err := e.hist.Redo()
	if err != nil {
		e.historyError(err)
		return
	}
	e.restore(s)
	e.setStatus("Redone")
}

func (e *Engine) historyError(err error) {
	switch {
	case errors.Is(err, history.ErrNothingUndo):
		e.setStatusError("Nothing to undo", nil)
	case errors.Is(err, history.ErrNothingRedo):
		e.setStatusError("Nothing to redo", nil)
	default:
		e.setStatusError("History error", err)
	}
}
