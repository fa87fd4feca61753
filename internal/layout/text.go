package layout

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/treykane/cli-mindmap/internal/tree"
)

// Label is the text drawn for a node: symbol, rank and stars around the
// title.
func Label(n tree.Node, style Style) string {
	var b strings.Builder
	switch n.Symbol {
	case tree.SymbolFirst:
		b.WriteString(style.Symbol1 + " ")
	case tree.SymbolSecond:
		b.WriteString(style.Symbol2 + " ")
	}
	if n.RankPos != 0 || n.RankNeg != 0 {
		fmt.Fprintf(&b, "(+%d-%d) ", n.RankPos, n.RankNeg)
	}
	b.WriteString(n.Title)
	if n.Stars > 0 {
		b.WriteString(" " + strings.Repeat("★", n.Stars))
	}
	return b.String()
}

// Wrap breaks text into lines no wider than limit cells. Words are kept
// whole where possible and longer words are split. A limit of zero or less
// disables wrapping.
func Wrap(text string, limit int) []string {
	if limit <= 0 || runewidth.StringWidth(text) <= limit {
		return []string{text}
	}
	var lines []string
	for _, line := range strings.Split(wordwrap.String(text, limit), "\n") {
		if runewidth.StringWidth(line) > limit {
			lines = append(lines, strings.Split(wrap.String(line, limit), "\n")...)
			continue
		}
		lines = append(lines, line)
	}
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, " ")
		if line == "" && len(out) > 0 {
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// textWidth returns the widest line, never less than one cell so empty
// titles still occupy space.
func textWidth(lines []string) int {
	w := 1
	for _, line := range lines {
		w = max(w, runewidth.StringWidth(line))
	}
	return w
}
