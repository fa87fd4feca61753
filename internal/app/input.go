package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// shouldIgnoreInput drops rune input that is really a terminal reply, such
// as an OSC background color report, or that carries control characters.
// Either would otherwise be typed into a title.
func shouldIgnoreInput(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return false
	}
	seq := string(msg.Runes)
	return isOSCColorReport(seq) || containsControlRunes(seq)
}

// isOSCColorReport matches replies like "\x1b]11;rgb:1e1e/1e1e/1e1e\x1b\\".
func isOSCColorReport(seq string) bool {
	i := strings.Index(seq, "rgb:")
	if i < 0 || !strings.Contains(seq[:i], ";") {
		return false
	}
	parts := strings.SplitN(seq[i+len("rgb:"):], "/", 3)
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		p = strings.TrimRight(p, "\x1b\\\a")
		if len(p) < 2 || !isHex(p) {
			return false
		}
	}
	return true
}

func containsControlRunes(seq string) bool {
	for _, r := range seq {
		if r < 32 || r == 127 {
			return true
		}
	}
	return false
}

func isHex(value string) bool {
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return value != ""
}
