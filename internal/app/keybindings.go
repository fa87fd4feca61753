package app

import (
	"encoding/json"
	"os"
	"slices"
	"strings"

	"github.com/treykane/cli-mindmap/internal/config"
	"github.com/treykane/cli-mindmap/internal/engine"
)

// defaultActionKeys maps each engine action to its factory-default keys.
//
// The defaults follow the classic single-key mind map layout: h/j/k/l to
// move, o/O to insert, e/E to edit, y/p to yank and paste. Users can
// override any assignment via the "keybindings" map in config.json or via
// an external keymap file ("keymap_file" path).
//
// Key strings use the Bubble Tea notation:
//   - Modifier keys: "ctrl+", "alt+", "shift+"
//   - Special keys: "enter", "esc", "tab", "space", "up", "down", "left", "right"
//   - Single characters: "n", "/", "?", etc.
var defaultActionKeys = map[string][]string{
	engine.ActionMoveLeft:   {"h", "left"},
	engine.ActionMoveRight:  {"l", "right"},
	engine.ActionMoveUp:     {"k", "up"},
	engine.ActionMoveDown:   {"j", "down"},
	engine.ActionMoveRoot:   {"m", "~"},
	engine.ActionMoveTop:    {"g"},
	engine.ActionMoveBottom: {"shift+g"},

	engine.ActionInsertSibling:  {"o", "enter"},
	engine.ActionInsertChild:    {"shift+o", "tab"},
	engine.ActionDelete:         {"d", "delete"},
	engine.ActionDeleteChildren: {"shift+d"},
	engine.ActionMoveNodeUp:     {"shift+k"},
	engine.ActionMoveNodeDown:   {"shift+j"},
	engine.ActionToggleCollapse: {"space"},
	engine.ActionToggleHide:     {"shift+h"},
	engine.ActionToggleSymbol:   {"t"},

	engine.ActionRankUp:    {"="},
	engine.ActionRankDown:  {"-"},
	engine.ActionRankReset: {"_"},
	engine.ActionStarsUp:   {"alt+up"},
	engine.ActionStarsDown: {"alt+down"},

	engine.ActionSortTitle: {"shift+t"},
	engine.ActionSortRank:  {"ctrl+t"},

	engine.ActionSearchStart: {"/", "ctrl+f"},
	engine.ActionSearchNext:  {"n"},
	engine.ActionSearchPrev:  {"shift+n"},

	engine.ActionYankNode:      {"y"},
	engine.ActionYankChildren:  {"shift+y"},
	engine.ActionPasteChildren: {"p"},
	engine.ActionPasteSiblings: {"shift+p"},

	engine.ActionUndo: {"u", "ctrl+z"},
	engine.ActionRedo: {"ctrl+r", "ctrl+y"},

	engine.ActionEditAppend:  {"e", "i", "a"},
	engine.ActionEditReplace: {"shift+e", "shift+i", "shift+a"},

	engine.ActionCollapseAll:      {"v"},
	engine.ActionExpandAll:        {"b"},
	engine.ActionCollapseChildren: {"shift+v"},
	engine.ActionCollapseOthers:   {"r"},
	engine.CollapseLevelAction(1): {"1"},
	engine.CollapseLevelAction(2): {"2"},
	engine.CollapseLevelAction(3): {"3"},
	engine.CollapseLevelAction(4): {"4"},
	engine.CollapseLevelAction(5): {"5"},
	engine.CollapseLevelAction(6): {"6"},
	engine.CollapseLevelAction(7): {"7"},
	engine.CollapseLevelAction(8): {"8"},
	engine.CollapseLevelAction(9): {"9"},
	engine.ActionWider:            {"w"},
	engine.ActionNarrower:         {"shift+w"},
	engine.ActionSpacingUp:        {"shift+z"},
	engine.ActionSpacingDown:      {"z"},
	engine.ActionToggleAlign:      {"|"},
	engine.ActionToggleHidden:     {"ctrl+h"},
	engine.ActionCenter:           {"c"},
	engine.ActionFocus:            {"f"},
	engine.ActionToggleFocusLock:  {"shift+f"},
	engine.ActionToggleCenterLock: {"shift+c"},

	engine.ActionSave:       {"s", "ctrl+s"},
	engine.ActionExportText: {"shift+x"},
	engine.ActionExportHTML: {"x"},

	engine.ActionQuit:      {"q", "ctrl+c"},
	engine.ActionForceQuit: {"shift+q"},
	engine.ActionHelp:      {"?"},
}

// actionDescriptions is the help text of every action with a default key.
var actionDescriptions = map[string]string{
	engine.ActionMoveLeft:   "parent / move left",
	engine.ActionMoveRight:  "child / move right",
	engine.ActionMoveUp:     "move up",
	engine.ActionMoveDown:   "move down",
	engine.ActionMoveRoot:   "go to root",
	engine.ActionMoveTop:    "go to top",
	engine.ActionMoveBottom: "go to bottom",

	engine.ActionInsertSibling:  "insert sibling",
	engine.ActionInsertChild:    "insert child",
	engine.ActionDelete:         "delete node",
	engine.ActionDeleteChildren: "delete children",
	engine.ActionMoveNodeUp:     "move node up",
	engine.ActionMoveNodeDown:   "move node down",
	engine.ActionToggleCollapse: "collapse / expand",
	engine.ActionToggleHide:     "hide / unhide node",
	engine.ActionToggleSymbol:   "cycle symbol",

	engine.ActionRankUp:    "positive rank +1",
	engine.ActionRankDown:  "negative rank +1",
	engine.ActionRankReset: "reset rank",
	engine.ActionStarsUp:   "add star",
	engine.ActionStarsDown: "remove star",

	engine.ActionSortTitle: "sort siblings by title",
	engine.ActionSortRank:  "sort siblings by rank",

	engine.ActionSearchStart: "search",
	engine.ActionSearchNext:  "next result",
	engine.ActionSearchPrev:  "previous result",

	engine.ActionYankNode:      "yank node",
	engine.ActionYankChildren:  "yank children",
	engine.ActionPasteChildren: "paste as children",
	engine.ActionPasteSiblings: "paste as siblings",

	engine.ActionUndo: "undo",
	engine.ActionRedo: "redo",

	engine.ActionEditAppend:  "edit title",
	engine.ActionEditReplace: "replace title",

	engine.ActionCollapseAll:      "collapse all",
	engine.ActionExpandAll:        "expand all",
	engine.ActionCollapseChildren: "collapse children",
	engine.ActionCollapseOthers:   "collapse other branches",
	engine.ActionWider:            "wider nodes",
	engine.ActionNarrower:         "narrower nodes",
	engine.ActionSpacingUp:        "more line spacing",
	engine.ActionSpacingDown:      "less line spacing",
	engine.ActionToggleAlign:      "toggle alignment",
	engine.ActionToggleHidden:     "show / hide hidden nodes",
	engine.ActionCenter:           "center active node",
	engine.ActionFocus:            "focus on active node",
	engine.ActionToggleFocusLock:  "toggle focus lock",
	engine.ActionToggleCenterLock: "toggle center lock",

	engine.ActionSave:       "save",
	engine.ActionExportText: "export outline to clipboard",
	engine.ActionExportHTML: "export HTML",

	engine.ActionQuit:      "quit",
	engine.ActionForceQuit: "quit without saving",
	engine.ActionHelp:      "toggle help",
}

// ---------------------------------------------------------------------------
// Keybinding initialization
// ---------------------------------------------------------------------------

// loadKeybindings initializes the bidirectional key↔action maps from three
// sources, applied in order of increasing priority:
//
//  1. defaultActionKeys: built-in factory defaults (always applied first).
//  2. cfg.Keybindings: inline overrides from the "keybindings" object in
//     ~/.cli-mindmap/config.json.
//  3. External keymap file: overrides from the JSON file at cfg.KeymapFile
//     (default ~/.cli-mindmap/keymap.json), if it exists.
//
// Unknown action names in user overrides are logged and ignored. An
// override replaces the action's full default key set. When two actions
// claim the same key the first one in engine.Actions order keeps it.
func (m *Model) loadKeybindings(cfg config.Config) {
	m.keyForAction = map[string][]string{}
	for action, keys := range defaultActionKeys {
		m.keyForAction[action] = append([]string(nil), keys...)
	}

	for action, key := range cfg.Keybindings {
		m.applyKeybindingOverride(action, key)
	}

	for action, key := range loadKeymapFile(cfg.KeymapFile) {
		m.applyKeybindingOverride(action, key)
	}

	m.rebuildActionKeyIndex()
}

// loadKeymapFile reads a flat JSON object mapping action ids to keys:
//
//	{
//	    "node.insert_child": "ctrl+n",
//	    "sort.title": "S"
//	}
//
// A missing file is not an error. Unreadable or malformed files are logged
// and ignored.
func loadKeymapFile(path string) map[string]string {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			appLog.Warn("read keymap file", "path", path, "error", err)
		}
		return nil
	}
	overrides := map[string]string{}
	if err := json.Unmarshal(data, &overrides); err != nil {
		appLog.Warn("parse keymap file", "path", path, "error", err)
		return nil
	}
	return overrides
}

// applyKeybindingOverride replaces the keys of a single action.
func (m *Model) applyKeybindingOverride(action, key string) {
	action = strings.TrimSpace(action)
	key = normalizeKeyString(key)
	if action == "" || key == "" {
		return
	}
	if !engine.IsAction(action) {
		appLog.Warn("ignore unknown keybinding action", "action", action)
		return
	}
	m.keyForAction[action] = []string{key}
}

// rebuildActionKeyIndex constructs the reverse lookup map (keyToAction)
// from keyForAction. Actions are visited in engine.Actions order so
// conflicts resolve the same way on every run.
func (m *Model) rebuildActionKeyIndex() {
	m.keyToAction = map[string]string{}
	for _, action := range engine.Actions() {
		for _, key := range m.keyForAction[action] {
			key = normalizeKeyString(key)
			if key == "" {
				continue
			}
			if existing, ok := m.keyToAction[key]; ok && existing != action {
				appLog.Warn("keybinding conflict ignored", "key", key, "action", action, "existing_action", existing)
				continue
			}
			m.keyToAction[key] = action
		}
	}
}

// ---------------------------------------------------------------------------
// Key string normalization
// ---------------------------------------------------------------------------

// normalizeKeyString converts a key string into the canonical lowercase
// form used by the keybinding maps.
//
// Normalization rules:
//   - A lone space is the "space" key.
//   - Whitespace is trimmed and the string is lowercased.
//   - A single uppercase letter (e.g. "Y") becomes "shift+y" because Bubble
//     Tea reports shifted letters as uppercase runes.
//
// Examples:
//
//	normalizeKeyString("Ctrl+T")  → "ctrl+t"
//	normalizeKeyString("O")       → "shift+o"
//	normalizeKeyString(" ")       → "space"
//	normalizeKeyString("")        → ""
func normalizeKeyString(key string) string {
	if key == " " {
		return "space"
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len([]rune(key)) == 1 && strings.ToUpper(key) == key && strings.ToLower(key) != key {
		return "shift+" + strings.ToLower(key)
	}
	return strings.ToLower(key)
}

// actionForKey returns the action bound to key, or "" when none is.
func (m *Model) actionForKey(key string) string {
	if m.keyToAction == nil {
		return ""
	}
	return m.keyToAction[normalizeKeyString(key)]
}

func (m *Model) actionKeyLabels(action string) []string {
	keys, ok := m.keyForAction[action]
	if !ok || len(keys) == 0 {
		return nil
	}
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label := humanizeKeyLabel(key)
		if label == "" {
			continue
		}
		if slices.Contains(labels, label) {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

func (m *Model) allActionKeys(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return strings.Join(keys, ", ")
}

// humanizeKeyLabel renders a key for help text: "shift+o" becomes "O" and
// "ctrl+t" becomes "Ctrl+T".
func humanizeKeyLabel(key string) string {
	normalized := normalizeKeyString(key)
	if normalized == "" {
		return ""
	}
	special := map[string]string{
		"up":        "↑",
		"down":      "↓",
		"left":      "←",
		"right":     "→",
		"enter":     "Enter",
		"esc":       "Esc",
		"tab":       "Tab",
		"home":      "Home",
		"end":       "End",
		"pgup":      "PgUp",
		"pgdown":    "PgDn",
		"space":     "Space",
		"delete":    "Del",
		"backspace": "Backspace",
	}
	if len([]rune(normalized)) == 1 {
		return normalized
	}
	if rest, ok := strings.CutPrefix(normalized, "shift+"); ok && len([]rune(rest)) == 1 {
		return strings.ToUpper(rest)
	}
	parts := strings.Split(normalized, "+")
	for i, part := range parts {
		switch part {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		default:
			if label, ok := special[part]; ok {
				parts[i] = label
				continue
			}
			runes := []rune(part)
			if len(runes) == 1 {
				parts[i] = strings.ToUpper(part)
				continue
			}
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, "+")
}
