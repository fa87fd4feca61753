package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FlagConfigFile names the flag that overrides the config file location.
const FlagConfigFile = "config"

// flagKeys maps command-line flag names to setting keys.
var flagKeys = map[string]string{
	"max-parent-node-width": KeyMaxParentNodeWidth,
	"max-leaf-node-width":   KeyMaxLeafNodeWidth,
	"line-spacing":          KeyLineSpacing,
	"alignment-mode":        KeyAlignmentMode,
	"show-hidden":           KeyShowHidden,
	"max-undo-steps":        KeyMaxUndoSteps,
	"initial-depth":         KeyInitialDepth,
	"symbol1":               KeySymbol1,
	"symbol2":               KeySymbol2,
	"clipboard":             KeyClipboard,
	"post-export-command":   KeyPostExportCommand,
	"auto-save":             KeyAutoSave,
	"center-lock":           KeyCenterLock,
	"focus-lock":            KeyFocusLock,
	"active-node-color":     KeyActiveNodeColor,
	"message-color":         KeyMessageColor,
	"keymap-file":           KeyKeymapFile,
}

// RegisterFlags adds one override flag per setting to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfigFile, "", "config file (default ~/.cli-mindmap/config.json)")
	fs.Int("max-parent-node-width", d.MaxParentNodeWidth, "wrap width of nodes with children")
	fs.Int("max-leaf-node-width", d.MaxLeafNodeWidth, "wrap width of leaf nodes (0 = terminal width)")
	fs.Int("line-spacing", d.LineSpacing, "blank rows between sibling nodes")
	fs.StringP("alignment-mode", "a", d.AlignmentMode, "node alignment: stack or center")
	fs.Bool("show-hidden", d.ShowHidden, "show nodes marked hidden")
	fs.Int("max-undo-steps", d.MaxUndoSteps, "number of undo snapshots kept")
	fs.IntP("initial-depth", "d", d.InitialDepth, "collapse the map below this depth on load (0 = expand all)")
	fs.String("symbol1", d.Symbol1, "first node symbol")
	fs.String("symbol2", d.Symbol2, "second node symbol")
	fs.String("clipboard", d.Clipboard, "clipboard backend: os or internal")
	fs.String("post-export-command", d.PostExportCommand, "command run with the exported file as argument")
	fs.Bool("auto-save", d.AutoSave, "save after every change")
	fs.Bool("center-lock", d.CenterLock, "keep the active node centered")
	fs.Bool("focus-lock", d.FocusLock, "collapse other branches after every move")
	fs.String("active-node-color", d.ActiveNodeColor, "highlight color of the active node")
	fs.String("message-color", d.MessageColor, "color of status messages")
	fs.String("keymap-file", "", "JSON file with keybinding overrides (default ~/.cli-mindmap/keymap.json)")
}

// BindFlags binds every flag registered by RegisterFlags to its setting key
// in v. Flags only override when set explicitly.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
