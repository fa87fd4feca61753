package app

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// fit cuts s to width cells, appending tail when something was cut. The
// tail counts toward the width.
func fit(s string, width int, tail string) string {
	switch {
	case width <= 0:
		return ""
	case ansi.StringWidth(s) <= width:
		return s
	}
	tw := ansi.StringWidth(tail)
	if tw >= width {
		return ansi.Truncate(tail, width, "")
	}
	return ansi.Truncate(s, width-tw, "") + tail
}

func truncate(s string, width int) string { return fit(s, width, "") }

func truncateWithEllipsis(s string, width int) string { return fit(s, width, "…") }

// padBlock makes content exactly width x height so a shorter frame
// overwrites everything the previous one drew.
func padBlock(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	rows := strings.SplitN(content, "\n", height+1)
	out := make([]string, height)
	for y := range out {
		var row string
		if y < len(rows) {
			row = truncate(rows[y], width)
		}
		out[y] = row + strings.Repeat(" ", width-ansi.StringWidth(row))
	}
	return strings.Join(out, "\n")
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
