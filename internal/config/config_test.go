package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/treykane/cli-mindmap/internal/layout"
)

func writeConfig(t *testing.T, home, body string) string {
	t.Helper()
	path := filepath.Join(home, configDirName, configFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(NewViper(), "")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MaxParentNodeWidth != 25 || cfg.LineSpacing != 1 || cfg.MaxUndoSteps != 24 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.AlignmentMode != "stack" {
		t.Fatalf("expected stack alignment, got %q", cfg.AlignmentMode)
	}
	if want := filepath.Join(home, configDirName, keymapFileName); cfg.KeymapFile != want {
		t.Fatalf("expected keymap file %q, got %q", want, cfg.KeymapFile)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, `{
  "max_parent_node_width": 40,
  "alignment_mode": "center",
  "show_hidden": true,
  "keybindings": {"move.left": "a", "node.delete": "ctrl+x"},
  "keymap_file": "~/keys.json"
}`)

	cfg, err := Load(NewViper(), "")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.MaxParentNodeWidth != 40 || cfg.AlignmentMode != "center" || !cfg.ShowHidden {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Keybindings["move.left"] != "a" || cfg.Keybindings["node.delete"] != "ctrl+x" {
		t.Fatalf("keybindings not decoded: %v", cfg.Keybindings)
	}
	if want := filepath.Join(home, "keys.json"); cfg.KeymapFile != want {
		t.Fatalf("expected keymap file %q, got %q", want, cfg.KeymapFile)
	}
	// Untouched keys keep their defaults.
	if cfg.Symbol1 != "✓" {
		t.Fatalf("expected default symbol1, got %q", cfg.Symbol1)
	}
}

func TestLayering(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, `{"line_spacing": 3, "max_undo_steps": 5, "symbol1": "+"}`)
	t.Setenv("MINDMAP_LINE_SPACING", "2")
	t.Setenv("MINDMAP_SYMBOL1", "*")

	v := NewViper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := BindFlags(v, fs); err != nil {
		t.Fatalf("bind flags: %v", err)
	}
	if err := fs.Parse([]string{"--line-spacing", "0"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(v, "")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LineSpacing != 0 {
		t.Fatalf("flag should win, got line spacing %d", cfg.LineSpacing)
	}
	if cfg.Symbol1 != "*" {
		t.Fatalf("env should beat file, got %q", cfg.Symbol1)
	}
	if cfg.MaxUndoSteps != 5 {
		t.Fatalf("file should beat default, got %d", cfg.MaxUndoSteps)
	}
}

func TestLockSettings(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, `{"center_lock": true}`)

	v := NewViper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := BindFlags(v, fs); err != nil {
		t.Fatalf("bind flags: %v", err)
	}
	if err := fs.Parse([]string{"--focus-lock"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := Load(v, "")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.CenterLock || !cfg.FocusLock {
		t.Fatalf("center lock %v, focus lock %v", cfg.CenterLock, cfg.FocusLock)
	}
	if d := Default(); d.CenterLock || d.FocusLock {
		t.Fatal("locks should default to off")
	}
}

func TestLoadExplicitPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.json")
	if err := os.WriteFile(path, []byte(`{"initial_depth": 2}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(NewViper(), path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.InitialDepth != 2 {
		t.Fatalf("expected initial depth 2, got %d", cfg.InitialDepth)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeConfig(t, home, `{invalid json`)

	_, err := Load(NewViper(), "")
	if err == nil {
		t.Fatal("expected error when config contains invalid JSON")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("error should mention parse config, got: %v", err)
	}
}

func TestNormalize(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name    string
		mutate  func(*Config)
		check   func(t *testing.T, cfg Config)
		wantErr bool
	}{
		{
			name:   "narrow widths are raised",
			mutate: func(c *Config) { c.MaxParentNodeWidth = 3; c.MaxLeafNodeWidth = 4 },
			check: func(t *testing.T, cfg Config) {
				if cfg.MaxParentNodeWidth != layout.MinWrapWidth || cfg.MaxLeafNodeWidth != layout.MinWrapWidth {
					t.Fatalf("widths: %d %d", cfg.MaxParentNodeWidth, cfg.MaxLeafNodeWidth)
				}
			},
		},
		{
			name:   "unbounded leaves stay zero",
			mutate: func(c *Config) { c.MaxLeafNodeWidth = 0 },
			check: func(t *testing.T, cfg Config) {
				if cfg.MaxLeafNodeWidth != 0 {
					t.Fatalf("leaf width: %d", cfg.MaxLeafNodeWidth)
				}
			},
		},
		{
			name:   "undo steps default",
			mutate: func(c *Config) { c.MaxUndoSteps = 0 },
			check: func(t *testing.T, cfg Config) {
				if cfg.MaxUndoSteps != 24 {
					t.Fatalf("undo steps: %d", cfg.MaxUndoSteps)
				}
			},
		},
		{
			name:   "alignment is case-insensitive",
			mutate: func(c *Config) { c.AlignmentMode = " Center " },
			check: func(t *testing.T, cfg Config) {
				if cfg.AlignmentMode != "center" {
					t.Fatalf("alignment: %q", cfg.AlignmentMode)
				}
			},
		},
		{name: "unknown alignment", mutate: func(c *Config) { c.AlignmentMode = "diagonal" }, wantErr: true},
		{name: "negative spacing", mutate: func(c *Config) { c.LineSpacing = -1 }, wantErr: true},
		{name: "unknown clipboard", mutate: func(c *Config) { c.Clipboard = "x11" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			got, err := Normalize(cfg)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Fatalf("expected ErrInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestLayoutStyle(t *testing.T) {
	cfg := Default()
	cfg.AlignmentMode = "center"
	cfg.LineSpacing = 2
	cfg.ShowHidden = true

	style := cfg.LayoutStyle()
	if style.Alignment != layout.AlignCenter || style.LineSpacing != 2 || !style.ShowHidden {
		t.Fatalf("unexpected style: %+v", style)
	}
	if style.MaxParentWidth != 25 || style.Symbol1 != "✓" || style.Symbol2 != "✗" {
		t.Fatalf("unexpected style: %+v", style)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Default()
	cfg.PostExportCommand = "xdg-open"
	cfg.Keybindings = map[string]string{"undo": "U"}
	if err := Save(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}

	exists, err := Exists()
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}

	path, _ := ConfigPath()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat config path: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}

	loaded, err := Load(NewViper(), "")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if loaded.PostExportCommand != "xdg-open" || loaded.Keybindings["undo"] != "U" {
		t.Fatalf("round trip lost values: %+v", loaded)
	}
}

func TestSaveConfigDirBlocked(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := os.WriteFile(filepath.Join(home, configDirName), []byte("blocking file"), 0o644); err != nil {
		t.Fatalf("write blocking file: %v", err)
	}

	err := Save(Default())
	if err == nil {
		t.Fatal("expected error when config dir path is blocked by a file")
	}
	if !strings.Contains(err.Error(), "create config dir") {
		t.Errorf("error should mention config dir creation, got: %v", err)
	}
}

func TestConfigPathUserHomeDirError(t *testing.T) {
	t.Setenv("HOME", "")

	_, err := ConfigPath()
	if err == nil {
		t.Fatal("expected error when HOME is not set")
	}
	if !strings.Contains(err.Error(), "resolve home dir") {
		t.Errorf("error should mention home dir resolution, got: %v", err)
	}
}
