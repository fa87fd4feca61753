// Package layout computes where every visible node of a tree is drawn.
//
// Compute is a pure function of the tree, the viewport width and a Style.
// It runs two passes over the visible nodes. The first pass, bottom-up,
// wraps each label and measures the height of every subtree. The second,
// top-down, hands each subtree a vertical band, centers the node inside
// its band and assigns columns from the alignment mode. The same result
// feeds the renderer and the directional navigation of the engine.
//
// Placement never depends on the viewport height: content larger than the
// screen is still fully placed and scrolling is left to the renderer.
package layout

import (
	"github.com/treykane/cli-mindmap/internal/tree"
)

// RenderNode is the computed placement of one node. Y is the row of the
// first text line.
type RenderNode struct {
	ID    int
	X, Y  int
	W, H  int
	Lines []string
	Depth int
	// Span is the height of the band reserved for the node's subtree.
	Span int
	Leaf bool
	// Collapsed marks a collapsed node that has children.
	Collapsed bool
	// HiddenChildren marks an expanded node whose children are all hidden.
	HiddenChildren bool
}

// Mid returns the row connectors attach to.
func (n RenderNode) Mid() int {
	return n.Y + (len(n.Lines)-1)/2
}

// Right returns the first column after the node's text.
func (n RenderNode) Right() int {
	return n.X + n.W
}

// Result is one layout pass.
type Result struct {
	Nodes map[int]RenderNode
	// Order lists node ids in pre-order.
	Order    []int
	Segments []Segment
	// Width and Height bound everything that was placed, indicators
	// included.
	Width, Height int
}

// Node returns the placement of id.
func (r *Result) Node(id int) (RenderNode, bool) {
	n, ok := r.Nodes[id]
	return n, ok
}

type pass struct {
	t        *tree.Tree
	style    Style
	leafCap  int
	nodes    map[int]*RenderNode
	children map[int][]int
	order    []int
	colWidth []int
}

// Compute lays out the visible part of t.
func Compute(t *tree.Tree, viewportWidth int, style Style) *Result {
	p := &pass{
		t:        t,
		style:    style,
		leafCap:  style.MaxLeafWidth,
		nodes:    map[int]*RenderNode{},
		children: map[int][]int{},
	}
	if p.leafCap <= 0 && viewportWidth > 0 {
		p.leafCap = max(MinWrapWidth, viewportWidth-2*LeftPadding)
	}
	root := t.Root()
	p.measure(root, 0)
	p.place(root, 0)
	p.assignColumns(root)

	res := &Result{
		Nodes: make(map[int]RenderNode, len(p.nodes)),
		Order: p.order,
	}
	for _, id := range p.order {
		n := p.nodes[id]
		res.Nodes[id] = *n
		right := n.Right()
		switch {
		case n.Collapsed:
			right += len(collapsedIndicator)
		case n.HiddenChildren:
			right += 4
		}
		res.Width = max(res.Width, right)
		res.Height = max(res.Height, n.Y+len(n.Lines)+style.LineSpacing)
	}
	res.Segments = routeConnectors(res, p.children, p.rightEdge)
	return res
}

// measure is the bottom-up pass: it wraps labels and returns the subtree
// span of id.
func (p *pass) measure(id, depth int) int {
	node, err := p.t.Get(id)
	if err != nil {
		return 0
	}
	visible := p.t.VisibleChildren(id, p.style.ShowHidden)
	var kids []int
	if !node.Collapsed {
		kids = visible
	}
	rn := &RenderNode{
		ID:             id,
		Depth:          depth,
		Leaf:           len(kids) == 0,
		Collapsed:      node.Collapsed && len(node.Children) > 0,
		HiddenChildren: !node.Collapsed && len(node.Children) > 0 && len(visible) == 0,
	}
	limit := p.style.MaxParentWidth
	if rn.Leaf {
		limit = p.leafCap
	}
	if limit > 0 {
		limit = max(limit, MinWrapWidth)
	}
	rn.Lines = Wrap(Label(node, p.style), limit)
	rn.W = textWidth(rn.Lines)
	rn.H = len(rn.Lines) + p.style.LineSpacing
	p.nodes[id] = rn
	p.children[id] = kids
	p.order = append(p.order, id)

	for len(p.colWidth) <= depth {
		p.colWidth = append(p.colWidth, 0)
	}
	p.colWidth[depth] = max(p.colWidth[depth], rn.W)

	sum := 0
	for _, c := range kids {
		sum += p.measure(c, depth+1)
	}
	rn.Span = max(rn.H, sum)
	return rn.Span
}

// place is the top-down pass for rows: the node is centered in its band and
// its children stack downwards from the top of the band.
func (p *pass) place(id, top int) {
	rn := p.nodes[id]
	rn.Y = top + (rn.Span-len(rn.Lines)+1)/2
	for _, c := range p.children[id] {
		p.place(c, top)
		top += p.nodes[c].Span
	}
}

// assignColumns is the top-down pass for columns.
func (p *pass) assignColumns(root int) {
	if p.style.Alignment == AlignCenter {
		colX := make([]int, len(p.colWidth))
		x := LeftPadding
		for d, w := range p.colWidth {
			colX[d] = x
			x += w + ConnectionSpacing
		}
		for _, rn := range p.nodes {
			rn.X = colX[rn.Depth] + (p.colWidth[rn.Depth]-rn.W)/2
		}
		return
	}
	var visit func(id, x int)
	visit = func(id, x int) {
		rn := p.nodes[id]
		rn.X = x
		for _, c := range p.children[id] {
			visit(c, rn.Right()+ConnectionSpacing)
		}
	}
	visit(root, LeftPadding)
}

// rightEdge is where the connectors of a parent start: its own text end in
// stack mode, the end of its depth column in center mode.
func (p *pass) rightEdge(n RenderNode) int {
	if p.style.Alignment == AlignCenter {
		return n.X - (p.colWidth[n.Depth]-n.W)/2 + p.colWidth[n.Depth]
	}
	return n.Right()
}
