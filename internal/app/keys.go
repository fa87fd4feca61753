package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/treykane/cli-mindmap/internal/engine"
)

// keyMap adapts the configured bindings to the bubbles help component.
type keyMap struct {
	normal []key.Binding
	line   []key.Binding
	all    [][]key.Binding
	// editing selects the bindings ShortHelp reports.
	editing bool
}

// shortHelpActions are listed on the footer hint line in normal mode.
var shortHelpActions = []string{
	engine.ActionHelp,
	engine.ActionInsertChild,
	engine.ActionInsertSibling,
	engine.ActionEditAppend,
	engine.ActionDelete,
	engine.ActionToggleCollapse,
	engine.ActionSearchStart,
	engine.ActionUndo,
	engine.ActionSave,
	engine.ActionQuit,
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.editing {
		return k.line
	}
	return k.normal
}

func (k keyMap) FullHelp() [][]key.Binding {
	return k.all
}

// binding builds the help binding of one action from its current keys.
func (m *Model) binding(action string) key.Binding {
	keys := m.keyForAction[action]
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(m.allActionKeys(action, ""), actionDescriptions[action]),
	)
}

func (m *Model) buildKeyMap() keyMap {
	k := keyMap{
		line: []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "confirm")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "cancel")),
			key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("Ctrl+V", "paste")),
			key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("Ctrl+W", "delete word")),
		},
	}
	for _, action := range shortHelpActions {
		if b := m.binding(action); b.Enabled() {
			k.normal = append(k.normal, b)
		}
	}
	for _, section := range helpSections {
		var column []key.Binding
		for _, action := range section.actions {
			if b := m.binding(action); b.Enabled() {
				column = append(column, b)
			}
		}
		k.all = append(k.all, column)
	}
	return k
}
