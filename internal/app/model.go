package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-mindmap/internal/config"
	"github.com/treykane/cli-mindmap/internal/engine"
)

// Model holds the Bubble Tea state for the entire UI. The document and
// every command live in the engine; the model owns the terminal concerns:
// key translation, scrolling and drawing.
type Model struct {
	engine *engine.Engine

	// Key bindings
	keyForAction map[string][]string
	keyToAction  map[string]string
	keys         keyMap

	// UI widgets
	help     help.Model
	helpView viewport.Model
	// helpWidth is the width the help overlay content was rendered for.
	helpWidth int
	styles    styles

	// Layout sizing and scroll position of the map area
	width   int
	height  int
	offsetX int
	offsetY int
}

// New prepares the UI model around an engine.
func New(e *engine.Engine, cfg config.Config) *Model {
	applyColorEnv()
	m := &Model{
		engine:   e,
		help:     help.New(),
		helpView: viewport.New(0, 0),
		styles:   newStyles(cfg.ActiveNodeColor, cfg.MessageColor),
	}
	m.loadKeybindings(cfg)
	m.keys = m.buildKeyMap()
	return m
}

// Engine returns the engine driven by the model.
func (m *Model) Engine() *engine.Engine { return m.engine }

// Init implements tea.Model. The map needs no startup commands.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.engine.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.helpView.Width = msg.Width
		m.helpView.Height = m.mapHeight()
		if m.engine.ShowHelp() {
			m.renderHelp()
		}
		m.follow()
		return m, nil
	case tea.KeyMsg:
		if m.engine.ShowHelp() {
			return m.handleHelpKey(msg)
		}
		switch m.engine.Mode().(type) {
		case *engine.Editing, *engine.Searching:
			m.handleLineKey(msg)
			m.follow()
			return m, nil
		default:
			return m.handleKey(msg)
		}
	}
	return m, nil
}

// handleKey dispatches a normal-mode key through the keymap.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.actionForKey(msg.String())
	if action == "" {
		return m, nil
	}
	m.engine.ClearStatus()
	appLog.Debug("key", "key", msg.String(), "action", action)

	if action == engine.ActionCenter {
		m.center()
		return m, nil
	}
	m.engine.Do(action)
	if m.engine.Quitting() {
		return m, tea.Quit
	}
	if action == engine.ActionHelp && m.engine.ShowHelp() {
		m.renderHelp()
		m.helpView.GotoTop()
	}
	m.follow()
	return m, nil
}

// handleHelpKey scrolls the help overlay. The help key, Esc and q close it.
func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" || key == "q" || m.actionForKey(key) == engine.ActionHelp {
		m.engine.Do(engine.ActionHelp)
		return m, nil
	}
	switch key {
	case "j", "down":
		m.helpView.LineDown(1)
	case "k", "up":
		m.helpView.LineUp(1)
	case "g", "home":
		m.helpView.GotoTop()
	case "G", "end":
		m.helpView.GotoBottom()
	default:
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleLineKey translates keys into line-editing operations while a title
// or a search query is edited.
func (m *Model) handleLineKey(msg tea.KeyMsg) {
	if msg.Paste {
		m.engine.Line(engine.LinePaste, string(msg.Runes))
		return
	}
	if shouldIgnoreInput(msg) {
		appLog.Debug("ignored input", "input", fmt.Sprintf("%q", msg.String()))
		return
	}
	if op, ok := lineKeys[msg.String()]; ok {
		m.engine.Line(op, "")
		return
	}
	switch msg.Type {
	case tea.KeyRunes:
		m.engine.Line(engine.LineInsert, string(msg.Runes))
	case tea.KeySpace:
		m.engine.Line(engine.LineInsert, " ")
	}
}

// lineKeys maps editing keys to line operations. Emacs and readline
// chords are accepted next to the arrow keys.
var lineKeys = map[string]engine.LineOp{
	"enter":         engine.LineCommit,
	"esc":           engine.LineCancel,
	"ctrl+c":        engine.LineCancel,
	"backspace":     engine.LineBackspace,
	"ctrl+h":        engine.LineBackspace,
	"delete":        engine.LineDelete,
	"ctrl+d":        engine.LineDelete,
	"left":          engine.LineLeft,
	"ctrl+b":        engine.LineLeft,
	"right":         engine.LineRight,
	"ctrl+f":        engine.LineRight,
	"home":          engine.LineHome,
	"ctrl+a":        engine.LineHome,
	"end":           engine.LineEnd,
	"ctrl+e":        engine.LineEnd,
	"ctrl+left":     engine.LineWordLeft,
	"alt+b":         engine.LineWordLeft,
	"ctrl+right":    engine.LineWordRight,
	"alt+f":         engine.LineWordRight,
	"ctrl+w":        engine.LineDeleteWordBefore,
	"alt+backspace": engine.LineDeleteWordBefore,
	"alt+d":         engine.LineDeleteWordAfter,
	"ctrl+u":        engine.LineDeleteToStart,
	"ctrl+k":        engine.LineDeleteToEnd,
	"ctrl+v":        engine.LinePaste,
}

// mapHeight is the number of rows available to the map.
func (m *Model) mapHeight() int {
	return max(0, m.height-FooterRows)
}

// follow scrolls the smallest distance that brings the active node fully
// into view. With center lock on it centers the node instead.
func (m *Model) follow() {
	res := m.engine.Layout()
	if res == nil || m.width <= 0 {
		return
	}
	if m.engine.CenterLock() {
		m.center()
		return
	}
	n, ok := res.Node(m.engine.Active())
	if !ok {
		return
	}
	height := m.mapHeight()
	if n.X-ScrollMargin < m.offsetX {
		m.offsetX = n.X - ScrollMargin
	}
	if right := n.Right() + ScrollMargin; right > m.offsetX+m.width {
		m.offsetX = right - m.width
	}
	if n.Y < m.offsetY {
		m.offsetY = n.Y
	}
	if bottom := n.Y + len(n.Lines); bottom > m.offsetY+height {
		m.offsetY = bottom - height
	}
	m.clampOffsets()
}

// center scrolls so the active node sits in the middle of the map area.
func (m *Model) center() {
	res := m.engine.Layout()
	if res == nil {
		return
	}
	n, ok := res.Node(m.engine.Active())
	if !ok {
		return
	}
	m.offsetX = n.X + n.W/2 - m.width/2
	m.offsetY = n.Mid() - m.mapHeight()/2
	m.clampOffsets()
}

func (m *Model) clampOffsets() {
	res := m.engine.Layout()
	maxX, maxY := 0, 0
	if res != nil {
		maxX = max(0, res.Width+ScrollMargin-m.width)
		maxY = max(0, res.Height-m.mapHeight())
	}
	m.offsetX = clamp(m.offsetX, 0, maxX)
	m.offsetY = clamp(m.offsetY, 0, maxY)
}
