package layout

const (
	collapsedIndicator    = " [+]"
	hiddenChildrenMarker  = "─╫─"
	connectorTrunkOffset  = ConnectionSpacing / 2
	connectorLeadingSpace = 2
)

// CollapsedIndicator is drawn right of a collapsed node that has children.
func CollapsedIndicator() string { return collapsedIndicator }

// HiddenChildrenMarker is drawn right of a node whose children are all hidden.
func HiddenChildrenMarker() string { return hiddenChildrenMarker }

// Segment is an orthogonal connector line between two cells, inclusive.
// Either X1 == X2 (vertical) or Y1 == Y2 (horizontal), with X1 <= X2 and
// Y1 <= Y2.
type Segment struct {
	X1, Y1, X2, Y2 int
}

// Vertical reports whether the segment runs along a column.
func (s Segment) Vertical() bool {
	return s.X1 == s.X2 && s.Y1 != s.Y2
}

// Cells returns every cell the segment covers, top-left first.
func (s Segment) Cells() [][2]int {
	var out [][2]int
	for y := s.Y1; y <= s.Y2; y++ {
		for x := s.X1; x <= s.X2; x++ {
			out = append(out, [2]int{x, y})
		}
	}
	return out
}

func hseg(x1, x2, y int) Segment {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	return Segment{X1: x1, Y1: y, X2: x2, Y2: y}
}

func vseg(x, y1, y2 int) Segment {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Segment{X1: x, Y1: y1, X2: x, Y2: y2}
}

// routeConnectors links every parent to its visible children. Siblings share
// one vertical trunk: the parent's stub runs from its trailing edge to the
// trunk and each child gets a branch from the trunk to its leading edge.
// Where the stub, trunk and branches meet the renderer draws junctions.
func routeConnectors(res *Result, children map[int][]int, rightEdge func(RenderNode) int) []Segment {
	var segs []Segment
	for _, id := range res.Order {
		kids := children[id]
		if len(kids) == 0 {
			continue
		}
		parent := res.Nodes[id]
		pm := parent.Mid()
		trunkX := rightEdge(parent) + connectorTrunkOffset
		segs = append(segs, hseg(parent.Right()+1, trunkX, pm))

		top, bottom := pm, pm
		for _, c := range kids {
			child := res.Nodes[c]
			cm := child.Mid()
			top = min(top, cm)
			bottom = max(bottom, cm)
			segs = append(segs, hseg(trunkX, child.X-connectorLeadingSpace, cm))
		}
		if top != bottom {
			segs = append(segs, vseg(trunkX, top, bottom))
		}
	}
	return segs
}
