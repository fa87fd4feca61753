package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/treykane/cli-mindmap/internal/layout"
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellText
	cellActive
	cellConnector
	cellMarker
)

// Connector directions. A cell's mask is the set of directions its lines
// leave in; the glyph is chosen from the mask.
const (
	dirUp uint8 = 1 << iota
	dirDown
	dirLeft
	dirRight
)

var junctionGlyphs = map[uint8]rune{
	dirLeft | dirRight:                   '─',
	dirLeft:                              '─',
	dirRight:                             '─',
	dirUp | dirDown:                      '│',
	dirUp:                                '│',
	dirDown:                              '│',
	dirDown | dirRight:                   '╭',
	dirUp | dirRight:                     '╰',
	dirDown | dirLeft:                    '╮',
	dirUp | dirLeft:                      '╯',
	dirUp | dirDown | dirRight:           '├',
	dirUp | dirDown | dirLeft:            '┤',
	dirLeft | dirRight | dirDown:         '┬',
	dirLeft | dirRight | dirUp:           '┴',
	dirUp | dirDown | dirLeft | dirRight: '┼',
}

type cell struct {
	r    rune
	kind cellKind
	mask uint8
	// wide marks the trailing half of a double-width rune.
	wide bool
}

// canvas is a window of the map: cell (0,0) shows map position
// (offsetX, offsetY).
type canvas struct {
	width, height    int
	offsetX, offsetY int
	cells            [][]cell
}

func newCanvas(width, height, offsetX, offsetY int) *canvas {
	c := &canvas{width: width, height: height, offsetX: offsetX, offsetY: offsetY}
	c.cells = make([][]cell, height)
	for y := range c.cells {
		c.cells[y] = make([]cell, width)
	}
	return c
}

func (c *canvas) at(x, y int) *cell {
	x -= c.offsetX
	y -= c.offsetY
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return nil
	}
	return &c.cells[y][x]
}

// text writes s starting at map position (x, y). Double-width runes take
// two cells; zero-width runes are dropped.
func (c *canvas) text(x, y int, s string, kind cellKind) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if cl := c.at(x, y); cl != nil {
			*cl = cell{r: r, kind: kind}
		}
		if w == 2 {
			if cl := c.at(x+1, y); cl != nil {
				*cl = cell{kind: kind, wide: true}
			}
		}
		x += w
	}
}

// connect adds the directions of one segment to the cells it covers.
func (c *canvas) connect(s layout.Segment) {
	if s.Vertical() {
		for y := s.Y1; y <= s.Y2; y++ {
			var mask uint8
			if y > s.Y1 {
				mask |= dirUp
			}
			if y < s.Y2 {
				mask |= dirDown
			}
			c.addMask(s.X1, y, mask)
		}
		return
	}
	if s.X1 == s.X2 {
		c.addMask(s.X1, s.Y1, dirLeft|dirRight)
		return
	}
	for x := s.X1; x <= s.X2; x++ {
		var mask uint8
		if x > s.X1 {
			mask |= dirLeft
		}
		if x < s.X2 {
			mask |= dirRight
		}
		c.addMask(x, s.Y1, mask)
	}
}

func (c *canvas) addMask(x, y int, mask uint8) {
	cl := c.at(x, y)
	if cl == nil || (cl.kind != cellEmpty && cl.kind != cellConnector) {
		return
	}
	cl.kind = cellConnector
	cl.mask |= mask
	cl.r = junctionGlyphs[cl.mask]
}

// paintMap draws connectors first and node text on top, so a label always
// wins over a line crossing it.
func paintMap(res *layout.Result, active int, c *canvas) {
	if res == nil {
		return
	}
	for _, s := range res.Segments {
		c.connect(s)
	}
	for _, id := range res.Order {
		n := res.Nodes[id]
		kind := cellText
		if id == active {
			kind = cellActive
		}
		for i, line := range n.Lines {
			if kind == cellActive && runewidth.StringWidth(line) < n.W {
				line += strings.Repeat(" ", n.W-runewidth.StringWidth(line))
			}
			c.text(n.X, n.Y+i, line, kind)
		}
		switch {
		case n.Collapsed:
			c.text(n.Right(), n.Mid(), layout.CollapsedIndicator(), cellMarker)
		case n.HiddenChildren:
			c.text(n.Right()+1, n.Mid(), layout.HiddenChildrenMarker(), cellMarker)
		}
	}
}

// render turns the canvas into styled lines. Runs of cells of one kind are
// styled together.
func (c *canvas) render(st styles) string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		var b strings.Builder
		var run strings.Builder
		kind := cellEmpty
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(styleFor(st, kind).Render(run.String()))
			run.Reset()
		}
		for _, cl := range row {
			if cl.wide {
				continue
			}
			if cl.kind != kind {
				flush()
				kind = cl.kind
			}
			if cl.r == 0 {
				run.WriteByte(' ')
				continue
			}
			run.WriteRune(cl.r)
		}
		flush()
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func styleFor(st styles, kind cellKind) lipgloss.Style {
	switch kind {
	case cellActive:
		return st.active
	case cellConnector:
		return st.connector
	case cellMarker:
		return st.marker
	default:
		return lipgloss.NewStyle()
	}
}
