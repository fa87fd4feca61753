package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/treykane/cli-mindmap/internal/clipboard"
	"github.com/treykane/cli-mindmap/internal/config"
	"github.com/treykane/cli-mindmap/internal/document"
	"github.com/treykane/cli-mindmap/internal/engine"
	"github.com/treykane/cli-mindmap/internal/layout"
	"github.com/treykane/cli-mindmap/internal/tree"
)

const sampleDoc = "root\n\ta\n\t\ta1\n\t\ta2\n\tb\n"

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.KeymapFile = filepath.Join(t.TempDir(), "keymap.json")
	return cfg
}

func newTestModel(t *testing.T, doc string, width, height int) *Model {
	t.Helper()
	tr, err := document.Parse(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	e := engine.New(tr, engine.Options{
		Style:        layout.DefaultStyle(),
		MaxUndoSteps: 24,
		Clipboard:    &clipboard.Memory{},
	})
	m := New(e, testConfig(t))
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

var specialKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"space":     tea.KeySpace,
	"backspace": tea.KeyBackspace,
	"delete":    tea.KeyDelete,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+u":    tea.KeyCtrlU,
	"ctrl+v":    tea.KeyCtrlV,
	"ctrl+w":    tea.KeyCtrlW,
}

func keyMsg(key string) tea.KeyMsg {
	if typ, ok := specialKeys[key]; ok {
		if typ == tea.KeySpace {
			return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
		}
		return tea.KeyMsg{Type: typ}
	}
	if rest, ok := strings.CutPrefix(key, "alt+"); ok {
		if typ, ok := specialKeys[rest]; ok {
			return tea.KeyMsg{Type: typ, Alt: true}
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(rest), Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press sends each key and returns the command of the last one.
func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

func typeRunes(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func activeTitle(m *Model) string {
	return m.engine.Tree().Title(m.engine.Active())
}

func childTitles(m *Model, title string) []string {
	tr := m.engine.Tree()
	var out []string
	tr.Walk(tr.Root(), func(n *tree.Node, _ int) bool {
		if n.Title == title {
			for _, c := range tr.Children(n.ID) {
				out = append(out, tr.Title(c))
			}
			return false
		}
		return true
	})
	return out
}

func viewLines(m *Model) []string {
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func TestKeysDriveNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"l enters closest child", []string{"l"}, "a"},
		{"arrow keys", []string{"right", "down"}, "b"},
		{"G jumps to bottom", []string{"G"}, "b"},
		{"g jumps to top", []string{"g"}, "a1"},
		{"tilde returns to root", []string{"l", "l", "~"}, "root"},
		{"unbound key is ignored", []string{";"}, "root"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, sampleDoc, 80, 20)
			press(m, tt.keys...)
			if got := activeTitle(m); got != tt.want {
				t.Fatalf("active = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInsertChildTypeAndCommit(t *testing.T) {
	m := newTestModel(t, sampleDoc, 80, 20)
	press(m, "l", "tab")
	if _, ok := m.engine.Mode().(*engine.Editing); !ok {
		t.Fatalf("expected editing mode, got %s", m.engine.Mode().Name())
	}
	typeRunes(m, "new idea")
	press(m, "backspace", "space")
	typeRunes(m, "x")
	press(m, "enter")

	if got := strings.Join(childTitles(m, "a"), ","); got != "a1,a2,new ide x" {
		t.Fatalf("children of a = %q", got)
	}
	if got := activeTitle(m); got != "new ide x" {
		t.Fatalf("active = %q", got)
	}
	if !m.engine.Modified() {
		t.Fatal("expected modified document")
	}
}

func TestEscRemovesNewNode(t *testing.T) {
	m := newTestModel(t, sampleDoc, 80, 20)
	press(m, "o")
	typeRunes(m, "draft")
	press(m, "esc")

	if got := strings.Join(childTitles(m, "root"), ","); got != "a,b" {
		t.Fatalf("children of root = %q", got)
	}
	if m.engine.History().Len() != 0 {
		t.Fatalf("history length = %d, want 0", m.engine.History().Len())
	}
}

func TestLineEditingKeys(t *testing.T) {
	m := newTestModel(t, sampleDoc, 80, 20)
	press(m, "e")
	typeRunes(m, " two three")
	press(m, "ctrl+w", "alt+b", "delete", "home")
	typeRunes(m, ">")
	press(m, "enter")

	if got := activeTitle(m); got != ">root wo" {
		t.Fatalf("title = %q", got)
	}
}

func TestBracketedPasteIsFlattened(t *testing.T) {
	m := newTestModel(t, sampleDoc, 80, 20)
	press(m, "E")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("one\ntwo\tthree"), Paste: true})
	press(m, "enter")

	if got := activeTitle(m); got != "one two  three" {
		t.Fatalf("title = %q", got)
	}
}

func TestControlInputIgnoredWhileEditing(t *testing.T) {
	m := newTestModel(t, sampleDoc, 80, 20)
	press(m, "E")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("\x1b]11;rgb:1e1e/1e1e/1e1e\x1b\\")})
	typeRunes(m, "ok")
	press(m, "enter")

	if got := activeTitle(m); got != "ok" {
		t.Fatalf("title = %q", got)
	}
}

func TestSearchFromKeys(t *testing.T) {
	m := newTestModel(t, sampleDoc, 80, 20)
	press(m, "/")
	typeRunes(m, "A")
	press(m, "enter")
	if got := activeTitle(m); got != "a" {
		t.Fatalf("first result = %q, want a", got)
	}
	press(m, "n")
	if got := activeTitle(m); got != "a1" {
		t.Fatalf("next result = %q, want a1", got)
	}
	press(m, "N", "N")
	if got := activeTitle(m); got != "a2" {
		t.Fatalf("wrapped result = %q, want a2", got)
	}
}

func TestQuit(t *testing.T) {
	t.Run("clean document quits", func(t *testing.T) {
		m := newTestModel(t, sampleDoc, 80, 20)
		cmd := press(m, "q")
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatal("expected tea.QuitMsg")
		}
	})

	t.Run("unsaved changes block quit", func(t *testing.T) {
		m := newTestModel(t, sampleDoc, 80, 20)
		press(m, "t")
		if cmd := press(m, "q"); cmd != nil {
			t.Fatal("expected quit to be declined")
		}
		if !strings.Contains(m.engine.Status().Text, "Unsaved changes") {
			t.Fatalf("status = %q", m.engine.Status().Text)
		}
		if cmd := press(m, "Q"); cmd == nil {
			t.Fatal("expected force quit")
		}
	})
}

func TestStatusClearedOnNextKey(t *testing.T) {
	m := newTestModel(t, sampleDoc, 80, 20)
	press(m, "s")
	if got := m.engine.Status().Text; got != "No filename set" {
		t.Fatalf("status = %q", got)
	}
	press(m, "l")
	if got := m.engine.Status().Text; got != "" {
		t.Fatalf("status after move = %q", got)
	}
}

func TestViewDrawsNodesAndConnectors(t *testing.T) {
	m := newTestModel(t, sampleDoc, 40, 12)
	lines := viewLines(m)
	if len(lines) != 12 {
		t.Fatalf("view has %d lines, want 12", len(lines))
	}
	want := []string{
		"",
		"               ╭─ a1",
		"        ╭─ a ──┤",
		" root ──┤      ╰─ a2",
		"        │",
		"        ╰─ b",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if !strings.Contains(lines[10], "[no file] | 5 nodes") {
		t.Errorf("status line = %q", lines[10])
	}
}

func TestViewCollapsedAndHiddenMarkers(t *testing.T) {
	m := newTestModel(t, sampleDoc, 40, 12)
	press(m, "l", "space")
	lines := viewLines(m)
	if !strings.Contains(strings.Join(lines, "\n"), "a [+]") {
		t.Fatalf("expected collapsed indicator:\n%s", strings.Join(lines, "\n"))
	}

	m = newTestModel(t, "root\n\ta\n\t\t[HIDDEN] a1\n\tb\n", 40, 12)
	if !strings.Contains(strings.Join(viewLines(m), "\n"), "a ─╫─") {
		t.Fatalf("expected hidden children marker:\n%s", strings.Join(viewLines(m), "\n"))
	}
}

func TestViewShowsEditorInStatusLine(t *testing.T) {
	m := newTestModel(t, sampleDoc, 40, 12)
	press(m, "e", "left", "left")
	lines := viewLines(m)
	if got := lines[10]; got != "Edit: ro▌ot" {
		t.Fatalf("status line = %q", got)
	}
	press(m, "esc", "/")
	if got := viewLines(m)[10]; got != "Search: ▌" {
		t.Fatalf("status line = %q", got)
	}
}

func TestViewShowsErrorStatus(t *testing.T) {
	m := newTestModel(t, sampleDoc, 60, 12)
	press(m, "d")
	line := viewLines(m)[10]
	if !strings.HasPrefix(line, " Cannot delete root node") {
		t.Fatalf("status line = %q", line)
	}
	if !strings.HasSuffix(line, "[no file] | 5 nodes") {
		t.Fatalf("summary missing from %q", line)
	}
}

func TestFollowScrollsToActiveNode(t *testing.T) {
	doc := "root\n"
	for i := 0; i < 20; i++ {
		doc += "\tchild " + string(rune('a'+i)) + "\n"
	}
	m := newTestModel(t, doc, 40, 8)
	press(m, "G")
	if got := activeTitle(m); got != "child t" {
		t.Fatalf("active = %q", got)
	}
	if m.offsetY == 0 {
		t.Fatal("expected the map to scroll down")
	}
	if !strings.Contains(strings.Join(viewLines(m), "\n"), "child t") {
		t.Fatal("active node is not visible")
	}

	press(m, "g")
	if !strings.Contains(strings.Join(viewLines(m), "\n"), "child a") {
		t.Fatal("first child is not visible after jumping to top")
	}
}

func TestCenterKeepsOffsetsInBounds(t *testing.T) {
	m := newTestModel(t, sampleDoc, 40, 12)
	press(m, "c")
	if m.offsetX != 0 || m.offsetY != 0 {
		t.Fatalf("offsets = %d,%d for a map that fits", m.offsetX, m.offsetY)
	}
}

func TestCenterLockCentersAfterEveryMove(t *testing.T) {
	doc := "root\n"
	for i := 0; i < 20; i++ {
		doc += "\tchild " + string(rune('a'+i)) + "\n"
	}
	m := newTestModel(t, doc, 40, 8)
	press(m, "C")
	if !m.engine.CenterLock() || m.engine.Status().Text != "Center lock: ON" {
		t.Fatalf("lock = %v, status %q", m.engine.CenterLock(), m.engine.Status().Text)
	}

	for _, keys := range [][]string{{"l"}, {"j", "j", "j", "j", "j", "j", "j", "j"}, {"k"}, {"G"}} {
		press(m, keys...)
		x, y := m.offsetX, m.offsetY
		m.center()
		if m.offsetX != x || m.offsetY != y {
			t.Fatalf("after %v on %q: offsets %d,%d, centered %d,%d", keys, activeTitle(m), x, y, m.offsetX, m.offsetY)
		}
	}
	if m.offsetY == 0 {
		t.Fatal("expected the map to scroll with the active node")
	}

	press(m, "C")
	if m.engine.CenterLock() || m.engine.Status().Text != "Center lock: OFF" {
		t.Fatalf("lock = %v, status %q", m.engine.CenterLock(), m.engine.Status().Text)
	}
}

func TestFocusKey(t *testing.T) {
	m := newTestModel(t, sampleDoc, 80, 20)
	press(m, "l", "space", "f")
	if got := m.engine.Status().Text; got != "Focus mode applied" {
		t.Fatalf("status = %q", got)
	}
	n, err := m.engine.Tree().Get(m.engine.Active())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if n.Title != "a" || n.Collapsed {
		t.Fatalf("focused node %q collapsed = %v", n.Title, n.Collapsed)
	}
}

func TestHelpOverlay(t *testing.T) {
	t.Setenv("MINDMAP_GLAMOUR_STYLE", "notty")
	m := newTestModel(t, sampleDoc, 80, 30)
	press(m, "?")
	if !m.engine.ShowHelp() {
		t.Fatal("expected help overlay")
	}
	view := strings.Join(viewLines(m), "\n")
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Fatalf("help overlay missing title:\n%s", view)
	}
	if !strings.Contains(view, "Press ? or Esc to close help") {
		t.Fatal("status line does not explain how to close help")
	}

	press(m, "l")
	if got := activeTitle(m); got != "root" {
		t.Fatalf("keys leaked to the map while help was open: active = %q", got)
	}
	press(m, "esc")
	if m.engine.ShowHelp() {
		t.Fatal("expected help to close on esc")
	}
}

func TestHelpMarkdownListsBindings(t *testing.T) {
	m := newTestModel(t, sampleDoc, 80, 30)
	md := m.helpMarkdown()
	for _, want := range []string{"## Navigation", "| h, ← | parent / move left |", `| \| | toggle alignment |`, "| 1 … 9 | collapse below level N |", "## Line editing"} {
		if !strings.Contains(md, want) {
			t.Errorf("help markdown missing %q", want)
		}
	}
}

func TestHintsFollowMode(t *testing.T) {
	m := newTestModel(t, sampleDoc, 200, 12)
	if hints := viewLines(m)[11]; !strings.Contains(hints, "toggle help") {
		t.Fatalf("normal hints = %q", hints)
	}
	press(m, "e")
	if hints := viewLines(m)[11]; !strings.Contains(hints, "confirm") {
		t.Fatalf("edit hints = %q", hints)
	}
}
