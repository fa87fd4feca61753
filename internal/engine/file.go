package engine

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/treykane/cli-mindmap/internal/document"
)

func (e *Engine) save() {
	if e.path == "" {
		e.setStatusError("No filename set", nil)
		return
	}
	if err := e.writeDocument(); err != nil {
		e.ioError("Save failed", err)
		return
	}
	e.setStatus("File saved")
}

// exportText copies the visible outline to the clipboard.
func (e *Engine) exportText() {
	text := e.codec.SerializeVisible(e.tree, e.style.ShowHidden)
	if err := e.clip.WriteText(text); err != nil {
		e.clipboardError(err)
		return
	}
	e.setStatus("Exported the map to clipboard.")
}

// exportHTML writes an HTML page next to the document and runs the
// post-export command on it.
func (e *Engine) exportHTML() {
	path, err := e.codec.WriteHTML(e.path, e.tree, e.style.ShowHidden)
	if err != nil {
		e.ioError("Export failed", err)
		return
	}
	if err := runPostExport(e.postExport, path); err != nil {
		e.setStatusError("Post-export command failed", err, "command", e.postExport)
		return
	}
	e.setStatus("Exported to %s", path)
}

// runPostExport runs command with path appended as the last argument.
// The command is split on whitespace; no shell is involved.
func runPostExport(command, path string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	engineLog.Debug("post-export command finished", "command", command, "path", path)
	return nil
}

func (e *Engine) ioError(text string, err error) {
	var ioErr *document.IOError
	if errors.As(err, &ioErr) {
		e.setStatusError(fmt.Sprintf("%s: %v", text, ioErr.Err), err, "path", ioErr.Path)
		return
	}
	e.setStatusError(text, err)
}

// quit ends the session. Without force it is declined while there are
// unsaved changes.
func (e *Engine) quit(force bool) {
	if !force && e.tree.Modified {
		e.setStatusError("Unsaved changes: save first or force quit", nil)
		return
	}
	e.quitting = true
}
