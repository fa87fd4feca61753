// Package config loads cli-mindmap settings.
//
// Settings are layered with viper, lowest priority first: built-in defaults,
// the JSON config file (~/.cli-mindmap/config.json), MINDMAP_* environment
// variables and finally command-line flags. Keys use "::" as the viper key
// delimiter because keybinding action names contain dots.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/treykane/cli-mindmap/internal/clipboard"
	"github.com/treykane/cli-mindmap/internal/layout"
	"github.com/treykane/cli-mindmap/internal/logging"
)

const (
	configDirName  = ".cli-mindmap"
	configFileName = "config.json"
	keymapFileName = "keymap.json"
	envPrefix      = "MINDMAP"
	keyDelimiter   = "::"
)

// Setting keys shared by the config file, environment and flags.
const (
	KeyMaxParentNodeWidth = "max_parent_node_width"
	KeyMaxLeafNodeWidth   = "max_leaf_node_width"
	KeyLineSpacing        = "line_spacing"
	KeyAlignmentMode      = "alignment_mode"
	KeyShowHidden         = "show_hidden"
	KeyMaxUndoSteps       = "max_undo_steps"
	KeyInitialDepth       = "initial_depth"
	KeySymbol1            = "symbol1"
	KeySymbol2            = "symbol2"
	KeyClipboard          = "clipboard"
	KeyPostExportCommand  = "post_export_command"
	KeyAutoSave           = "auto_save"
	KeyCenterLock         = "center_lock"
	KeyFocusLock          = "focus_lock"
	KeyActiveNodeColor    = "active_node_color"
	KeyMessageColor       = "message_color"
	KeyKeybindings        = "keybindings"
	KeyKeymapFile         = "keymap_file"
	KeyDefaultFile        = "default_file"
)

var configLog = logging.New("config")

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config stores user-defined settings.
type Config struct {
	MaxParentNodeWidth int               `mapstructure:"max_parent_node_width" json:"max_parent_node_width"`
	MaxLeafNodeWidth   int               `mapstructure:"max_leaf_node_width" json:"max_leaf_node_width"`
	LineSpacing        int               `mapstructure:"line_spacing" json:"line_spacing"`
	AlignmentMode      string            `mapstructure:"alignment_mode" json:"alignment_mode"`
	ShowHidden         bool              `mapstructure:"show_hidden" json:"show_hidden"`
	MaxUndoSteps       int               `mapstructure:"max_undo_steps" json:"max_undo_steps"`
	InitialDepth       int               `mapstructure:"initial_depth" json:"initial_depth"`
	Symbol1            string            `mapstructure:"symbol1" json:"symbol1"`
	Symbol2            string            `mapstructure:"symbol2" json:"symbol2"`
	Clipboard          string            `mapstructure:"clipboard" json:"clipboard"`
	PostExportCommand  string            `mapstructure:"post_export_command" json:"post_export_command,omitempty"`
	AutoSave           bool              `mapstructure:"auto_save" json:"auto_save"`
	CenterLock         bool              `mapstructure:"center_lock" json:"center_lock"`
	FocusLock          bool              `mapstructure:"focus_lock" json:"focus_lock"`
	ActiveNodeColor    string            `mapstructure:"active_node_color" json:"active_node_color"`
	MessageColor       string            `mapstructure:"message_color" json:"message_color"`
	Keybindings        map[string]string `mapstructure:"keybindings" json:"keybindings,omitempty"`
	KeymapFile         string            `mapstructure:"keymap_file" json:"keymap_file,omitempty"`
	DefaultFile        string            `mapstructure:"default_file" json:"default_file,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxParentNodeWidth: 25,
		MaxLeafNodeWidth:   0,
		LineSpacing:        1,
		AlignmentMode:      layout.AlignStack.String(),
		MaxUndoSteps:       24,
		InitialDepth:       0,
		Symbol1:            "✓",
		Symbol2:            "✗",
		Clipboard:          clipboard.ModeOS,
		ActiveNodeColor:    "212",
		MessageColor:       "244",
		Keybindings:        map[string]string{},
	}
}

// NewViper returns a viper instance with defaults and environment binding
// in place. Flags are bound separately with BindFlags.
func NewViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	d := Default()
	v.SetDefault(KeyMaxParentNodeWidth, d.MaxParentNodeWidth)
	v.SetDefault(KeyMaxLeafNodeWidth, d.MaxLeafNodeWidth)
	v.SetDefault(KeyLineSpacing, d.LineSpacing)
	v.SetDefault(KeyAlignmentMode, d.AlignmentMode)
	v.SetDefault(KeyShowHidden, d.ShowHidden)
	v.SetDefault(KeyMaxUndoSteps, d.MaxUndoSteps)
	v.SetDefault(KeyInitialDepth, d.InitialDepth)
	v.SetDefault(KeySymbol1, d.Symbol1)
	v.SetDefault(KeySymbol2, d.Symbol2)
	v.SetDefault(KeyClipboard, d.Clipboard)
	v.SetDefault(KeyPostExportCommand, d.PostExportCommand)
	v.SetDefault(KeyAutoSave, d.AutoSave)
	v.SetDefault(KeyCenterLock, d.CenterLock)
	v.SetDefault(KeyFocusLock, d.FocusLock)
	v.SetDefault(KeyActiveNodeColor, d.ActiveNodeColor)
	v.SetDefault(KeyMessageColor, d.MessageColor)
	v.SetDefault(KeyKeybindings, d.Keybindings)
	v.SetDefault(KeyKeymapFile, "")
	v.SetDefault(KeyDefaultFile, "")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// DefaultKeymapPath returns the keymap file used when keymap_file is unset.
func DefaultKeymapPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName, keymapFileName), nil
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat config path: %w", err)
}

// Load merges the config file into v and returns the validated settings.
// A missing config file is not an error. A non-empty path overrides the
// default config location.
func Load(v *viper.Viper, path string) (Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		configLog.Debug("read config file", "path", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return Normalize(cfg)
}

// Normalize validates cfg and fills derived values. Widths below the
// minimum wrap width are raised to it; an unknown alignment mode is an
// error.
func Normalize(cfg Config) (Config, error) {
	if _, err := layout.ParseAlignment(cfg.AlignmentMode); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	cfg.AlignmentMode = strings.ToLower(strings.TrimSpace(cfg.AlignmentMode))
	if cfg.AlignmentMode == "" {
		cfg.AlignmentMode = layout.AlignStack.String()
	}
	if cfg.MaxParentNodeWidth < layout.MinWrapWidth {
		cfg.MaxParentNodeWidth = layout.MinWrapWidth
	}
	if cfg.MaxLeafNodeWidth != 0 && cfg.MaxLeafNodeWidth < layout.MinWrapWidth {
		cfg.MaxLeafNodeWidth = layout.MinWrapWidth
	}
	if cfg.LineSpacing < 0 {
		return Config{}, fmt.Errorf("%w: line_spacing must not be negative", ErrInvalid)
	}
	if cfg.MaxUndoSteps <= 0 {
		cfg.MaxUndoSteps = Default().MaxUndoSteps
	}
	if cfg.InitialDepth < 0 {
		cfg.InitialDepth = 0
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Clipboard)) {
	case "", clipboard.ModeOS:
		cfg.Clipboard = clipboard.ModeOS
	case clipboard.ModeInternal:
		cfg.Clipboard = clipboard.ModeInternal
	default:
		return Config{}, fmt.Errorf("%w: unknown clipboard mode %q", ErrInvalid, cfg.Clipboard)
	}
	if cfg.Keybindings == nil {
		cfg.Keybindings = map[string]string{}
	}
	var err error
	if cfg.KeymapFile == "" {
		if cfg.KeymapFile, err = DefaultKeymapPath(); err != nil {
			return Config{}, err
		}
	} else if cfg.KeymapFile, err = expandHome(cfg.KeymapFile); err != nil {
		return Config{}, err
	}
	if cfg.DefaultFile != "" {
		if cfg.DefaultFile, err = expandHome(cfg.DefaultFile); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// LayoutStyle converts the settings used by the layout engine.
func (c Config) LayoutStyle() layout.Style {
	align, _ := layout.ParseAlignment(c.AlignmentMode)
	return layout.Style{
		MaxParentWidth: c.MaxParentNodeWidth,
		MaxLeafWidth:   c.MaxLeafNodeWidth,
		LineSpacing:    c.LineSpacing,
		Alignment:      align,
		ShowHidden:     c.ShowHidden,
		Symbol1:        c.Symbol1,
		Symbol2:        c.Symbol2,
	}
}

// Save writes configuration to the default path.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes configuration to path.
func SaveTo(path string, cfg Config) error {
	cfg, err := Normalize(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	configLog.Info("saved config", "path", path)
	return nil
}

func expandHome(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
