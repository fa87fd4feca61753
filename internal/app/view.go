package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/treykane/cli-mindmap/internal/engine"
	"github.com/treykane/cli-mindmap/internal/readline"
)

// View draws the map (or the help overlay) above the two footer rows.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	height := m.mapHeight()
	var body string
	if m.engine.ShowHelp() {
		body = m.helpView.View()
	} else {
		body = m.renderMap(m.width, height)
	}
	body = padBlock(body, m.width, height)
	if height == 0 {
		return m.renderFooter(m.width)
	}
	return body + "\n" + m.renderFooter(m.width)
}

func (m *Model) renderMap(width, height int) string {
	c := newCanvas(width, height, m.offsetX, m.offsetY)
	paintMap(m.engine.Layout(), m.engine.Active(), c)
	return c.render(m.styles)
}

func (m *Model) renderFooter(width int) string {
	return m.renderStatus(width) + "\n" + m.renderHints(width)
}

// renderStatus draws the status line: the line editor while editing or
// searching, otherwise the last message on the left and the document
// summary on the right.
func (m *Model) renderStatus(width int) string {
	switch mode := m.engine.Mode().(type) {
	case *engine.Editing:
		return m.styles.prompt.Width(width).Render(truncate(editPrefix+editorLine(mode.Editor), width))
	case *engine.Searching:
		return m.styles.prompt.Width(width).Render(truncate(searchPrefix+editorLine(mode.Editor), width))
	}
	if m.engine.ShowHelp() {
		return m.styles.prompt.Width(width).Render(truncate("Press ? or Esc to close help", width))
	}

	summary := m.summary()
	status := m.engine.Status()
	if status.Text == "" {
		return m.styles.status.Width(width).Render(truncateWithEllipsis(" "+summary, width))
	}
	style := m.styles.message
	if status.Error {
		style = m.styles.errorMsg
	}
	message := " " + status.Text + " "
	room := width - lipgloss.Width(summary) - 2
	if lipgloss.Width(message) > room {
		return style.Width(width).Render(truncateWithEllipsis(message, width))
	}
	left := style.Render(message)
	gap := width - lipgloss.Width(message) - lipgloss.Width(summary) - 1
	return left + m.styles.status.Render(strings.Repeat(" ", max(0, gap))+summary+" ")
}

// summary names the document, its size and whether it has unsaved changes.
func (m *Model) summary() string {
	name := "[no file]"
	if path := m.engine.Path(); path != "" {
		name = filepath.Base(path)
	}
	if m.engine.Modified() {
		name += " *"
	}
	return fmt.Sprintf("%s | %d nodes", name, m.engine.Tree().Len())
}

// renderHints draws the key hint line with the bubbles help component.
func (m *Model) renderHints(width int) string {
	if m.engine.ShowHelp() {
		return m.styles.hint.Render(truncate(fmt.Sprintf(" %3.f%%  j/k scroll", m.helpView.ScrollPercent()*100), width))
	}
	_, normal := m.engine.Mode().(engine.Normal)
	m.keys.editing = !normal
	m.help.Width = width
	return truncate(m.help.ShortHelpView(m.keys.ShortHelp()), width)
}

// editorLine renders the visible window of a line editor with the cursor
// drawn at its column.
func editorLine(ed *readline.Editor) string {
	text, col := ed.Visible()
	var before strings.Builder
	rest := text
	w := 0
	for i, r := range text {
		if w >= col {
			rest = text[i:]
			break
		}
		before.WriteRune(r)
		w += runewidth.RuneWidth(r)
		rest = text[i+len(string(r)):]
	}
	return before.String() + cursorIndicator + rest
}
