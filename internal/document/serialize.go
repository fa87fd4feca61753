package document

import (
	"strings"

	"github.com/treykane/cli-mindmap/internal/tree"
)

// Serialize writes the whole tree. A synthetic root that still carries its
// generated title is left out and its children are written at depth 0.
func (c Codec) Serialize(t *tree.Tree) string {
	var b strings.Builder
	root := t.Root()
	if t.Synthetic && t.Title(root) == SyntheticRootTitle {
		for _, id := range t.Children(root) {
			c.writeSubtree(&b, t, id, 0, nil)
		}
		return b.String()
	}
	c.writeSubtree(&b, t, root, 0, nil)
	return b.String()
}

// SerializeSubtree writes id and its descendants with id at depth 0.
func (c Codec) SerializeSubtree(t *tree.Tree, id int) string {
	var b strings.Builder
	c.writeSubtree(&b, t, id, 0, nil)
	return b.String()
}

// SerializeChildren writes the subtrees of every child of id, each at
// depth 0.
func (c Codec) SerializeChildren(t *tree.Tree, id int) string {
	var b strings.Builder
	for _, child := range t.Children(id) {
		c.writeSubtree(&b, t, child, 0, nil)
	}
	return b.String()
}

// SerializeVisible writes only what is currently laid out: children of
// collapsed nodes are skipped, and so are hidden nodes unless showHidden.
// The hidden marker is not written since the result is meant for export.
func (c Codec) SerializeVisible(t *tree.Tree, showHidden bool) string {
	var b strings.Builder
	keep := func(n tree.Node) bool {
		return showHidden || !n.Hidden || n.ID == t.Root()
	}
	c.writeSubtree(&b, t, t.Root(), 0, keep)
	return b.String()
}

// writeSubtree appends id and its descendants. With a non-nil keep the
// output is the visible export: titles are written without the hidden marker
// and collapsed nodes are not descended into.
func (c Codec) writeSubtree(b *strings.Builder, t *tree.Tree, id, depth int, keep func(tree.Node) bool) {
	n, err := t.Get(id)
	if err != nil {
		return
	}
	if keep != nil && !keep(n) {
		return
	}
	title := c.encodeTitle(n)
	if keep != nil {
		title = strings.TrimPrefix(title, hiddenMarker)
	}
	b.WriteString(strings.Repeat("\t", depth))
	b.WriteString(title)
	b.WriteByte('\n')
	if keep != nil && n.Collapsed {
		return
	}
	for _, child := range n.Children {
		c.writeSubtree(b, t, child, depth+1, keep)
	}
}
