package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/treykane/cli-mindmap/internal/engine"
)

type helpSection struct {
	title   string
	actions []string
	// levels adds the collapse-to-level keys after the actions.
	levels bool
}

// helpSections groups the actions shown in the help overlay.
var helpSections = []helpSection{
	{title: "Navigation", actions: []string{
		engine.ActionMoveLeft, engine.ActionMoveRight, engine.ActionMoveUp, engine.ActionMoveDown,
		engine.ActionMoveRoot, engine.ActionMoveTop, engine.ActionMoveBottom, engine.ActionCenter,
	}},
	{title: "Editing", actions: []string{
		engine.ActionEditAppend, engine.ActionEditReplace,
		engine.ActionInsertSibling, engine.ActionInsertChild,
		engine.ActionDelete, engine.ActionDeleteChildren,
		engine.ActionMoveNodeUp, engine.ActionMoveNodeDown,
		engine.ActionYankNode, engine.ActionYankChildren,
		engine.ActionPasteChildren, engine.ActionPasteSiblings,
		engine.ActionUndo, engine.ActionRedo,
	}},
	{title: "Marks", actions: []string{
		engine.ActionToggleSymbol, engine.ActionToggleHide,
		engine.ActionRankUp, engine.ActionRankDown, engine.ActionRankReset,
		engine.ActionStarsUp, engine.ActionStarsDown,
		engine.ActionSortTitle, engine.ActionSortRank,
	}},
	{title: "View", actions: []string{
		engine.ActionToggleCollapse, engine.ActionCollapseAll, engine.ActionExpandAll,
		engine.ActionCollapseChildren, engine.ActionCollapseOthers,
		engine.ActionWider, engine.ActionNarrower,
		engine.ActionSpacingUp, engine.ActionSpacingDown,
		engine.ActionToggleAlign, engine.ActionToggleHidden,
		engine.ActionFocus, engine.ActionToggleFocusLock, engine.ActionToggleCenterLock,
	}, levels: true},
	{title: "Search", actions: []string{
		engine.ActionSearchStart, engine.ActionSearchNext, engine.ActionSearchPrev,
	}},
	{title: "File", actions: []string{
		engine.ActionSave, engine.ActionExportHTML, engine.ActionExportText,
		engine.ActionQuit, engine.ActionForceQuit, engine.ActionHelp,
	}},
}

// lineEditingHelp documents the fixed keys of the title and search editor.
var lineEditingHelp = [][2]string{
	{"Enter", "confirm"},
	{"Esc", "cancel (a new node is removed)"},
	{"←/→, Home/End", "move cursor"},
	{"Ctrl+←/→, Alt+B/F", "move by word"},
	{"Backspace, Del", "delete character"},
	{"Ctrl+W, Alt+D", "delete word before / after"},
	{"Ctrl+U, Ctrl+K", "delete to start / end"},
	{"Ctrl+V", "paste"},
}

// helpMarkdown renders the current bindings as a Markdown document.
func (m *Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Keyboard Shortcuts\n\n")
	for _, section := range helpSections {
		fmt.Fprintf(&b, "## %s\n\n| Keys | Action |\n| --- | --- |\n", section.title)
		for _, action := range section.actions {
			fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(m.allActionKeys(action, "unbound")), actionDescriptions[action])
		}
		if section.levels {
			fmt.Fprintf(&b, "| %s | collapse below level N |\n", escapeCell(m.collapseLevelKeys()))
		}
		b.WriteString("\n")
	}
	b.WriteString("## Line editing\n\n| Keys | Action |\n| --- | --- |\n")
	for _, row := range lineEditingHelp {
		fmt.Fprintf(&b, "| %s | %s |\n", escapeCell(row[0]), row[1])
	}
	b.WriteString("\nPress ? or Esc to return.\n")
	return b.String()
}

func (m *Model) collapseLevelKeys() string {
	first := m.allActionKeys(engine.CollapseLevelAction(1), "")
	last := m.allActionKeys(engine.CollapseLevelAction(9), "")
	if first == "" || last == "" {
		return "unbound"
	}
	return first + " … " + last
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// renderHelp renders the help overlay for the viewport width with glamour.
// On failure the raw Markdown is shown instead.
func (m *Model) renderHelp() {
	width := min(m.helpView.Width, HelpMaxWidth)
	if width <= 0 || width == m.helpWidth {
		return
	}
	m.helpWidth = width
	markdown := m.helpMarkdown()
	renderer, err := glamour.NewTermRenderer(
		glamourStyleOption(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		appLog.Warn("create help renderer", "error", err)
		m.helpView.SetContent(markdown)
		return
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		appLog.Warn("render help", "error", err)
		m.helpView.SetContent(markdown)
		return
	}
	m.helpView.SetContent(out)
}

// glamourStyleOption resolves the Glamour rendering style from environment
// variables. The lookup order is:
//
//  1. MINDMAP_GLAMOUR_STYLE (app-specific override)
//  2. GLAMOUR_STYLE (Glamour's own environment variable)
//  3. "dark"
//
// "auto" queries the terminal background, which can leak escape sequences
// into the input stream, so it is only used when asked for explicitly.
func glamourStyleOption() glamour.TermRendererOption {
	style := strings.ToLower(strings.TrimSpace(os.Getenv("MINDMAP_GLAMOUR_STYLE")))
	if style == "" {
		style = strings.ToLower(strings.TrimSpace(os.Getenv("GLAMOUR_STYLE")))
	}
	switch style {
	case "auto":
		return glamour.WithAutoStyle()
	case "dark", "light", "notty", "ascii":
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStandardStyle("dark")
	}
}
