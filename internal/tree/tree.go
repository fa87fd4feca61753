// Package tree is the node store behind a mind map document.
//
// Nodes live in an arena keyed by stable integer ids. Every node except the
// root has exactly one parent, referenced by id, and children are an ordered
// id list whose order is the sibling order shown to the user. Structural
// operations validate their arguments before touching anything, so a failed
// call never leaves the tree partially mutated.
package tree

import (
	"errors"
	"fmt"
)

// ErrStructural is the parent of every error returned for an illegal
// structural operation. Callers that only need to know an operation was
// declined can test errors.Is(err, ErrStructural).
var ErrStructural = errors.New("structural error")

var (
	ErrNotFound      = fmt.Errorf("%w: node not found", ErrStructural)
	ErrInvalidParent = fmt.Errorf("%w: invalid parent", ErrStructural)
	ErrInvalidRoot   = fmt.Errorf("%w: operation not allowed on root", ErrStructural)
	ErrCycle         = fmt.Errorf("%w: node cannot become its own descendant", ErrStructural)
)

const (
	// MaxStars is the upper bound of a node's star counter.
	MaxStars = 5
	// MaxRank bounds the rank counters so they never overflow.
	MaxRank = 9999
)

// Symbol is the optional marker shown in front of a title.
type Symbol int

const (
	SymbolNone Symbol = iota
	SymbolFirst
	SymbolSecond
)

// Node is a single titled unit of the hierarchy.
type Node struct {
	ID        int
	Title     string
	Parent    int // 0 for the root
	Children  []int
	Collapsed bool
	Hidden    bool
	RankPos   int
	RankNeg   int
	Stars     int
	Symbol    Symbol
}

// Rank is the net rank used when sorting by rank.
func (n Node) Rank() int {
	return n.RankPos - n.RankNeg
}

// Tree owns all nodes of one document.
type Tree struct {
	nodes  map[int]*Node
	root   int
	nextID int

	// Active is the node commands operate on.
	Active int
	// Modified is set by every successful mutation and cleared on save.
	Modified bool
	// Synthetic marks a root that only exists to hold several top-level
	// nodes of a document. Serializers write its children at depth 0.
	Synthetic bool
}

// New returns a tree holding a single root node.
func New(rootTitle string) *Tree {
	t := &Tree{nodes: map[int]*Node{}, nextID: 1}
	t.root = t.alloc(rootTitle, 0)
	t.Active = t.root
	return t
}

func (t *Tree) alloc(title string, parent int) int {
	id := t.nextID
	t.nextID++
	t.nodes[id] = &Node{ID: id, Title: title, Parent: parent}
	return id
}

// Root returns the root id.
func (t *Tree) Root() int {
	return t.root
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Has reports whether id names a node of this tree.
func (t *Tree) Has(id int) bool {
	_, ok := t.nodes[id]
	return ok
}

// Get returns a copy of the node. The children slice is copied too, so the
// result can be kept or modified freely.
func (t *Tree) Get(id int) (Node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return Node{}, fmt.Errorf("get %d: %w", id, ErrNotFound)
	}
	out := *n
	out.Children = append([]int(nil), n.Children...)
	return out, nil
}

// Title returns the node's title, or "" for unknown ids.
func (t *Tree) Title(id int) string {
	if n, ok := t.nodes[id]; ok {
		return n.Title
	}
	return ""
}

// Parent returns the parent id. The second result is false for the root and
// for unknown ids.
func (t *Tree) Parent(id int) (int, bool) {
	n, ok := t.nodes[id]
	if !ok || n.Parent == 0 {
		return 0, false
	}
	return n.Parent, true
}

// Children returns a copy of the ordered child ids.
func (t *Tree) Children(id int) []int {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	return append([]int(nil), n.Children...)
}

// IndexOf returns the position of id among its siblings, or -1.
func (t *Tree) IndexOf(id int) int {
	n, ok := t.nodes[id]
	if !ok || n.Parent == 0 {
		return -1
	}
	for i, c := range t.nodes[n.Parent].Children {
		if c == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy that shares no state with t.
func (t *Tree) Clone() *Tree {
	out := &Tree{
		nodes:     make(map[int]*Node, len(t.nodes)),
		root:      t.root,
		nextID:    t.nextID,
		Active:    t.Active,
		Modified:  t.Modified,
		Synthetic: t.Synthetic,
	}
	for id, n := range t.nodes {
		cp := *n
		cp.Children = append([]int(nil), n.Children...)
		out.nodes[id] = &cp
	}
	return out
}

// Equal reports whether both trees hold the same nodes, structure and active
// id. The modified flag is ignored.
func (t *Tree) Equal(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.root != o.root || t.Active != o.Active || t.Synthetic != o.Synthetic || len(t.nodes) != len(o.nodes) {
		return false
	}
	for id, a := range t.nodes {
		b, ok := o.nodes[id]
		if !ok || !sameNode(a, b) {
			return false
		}
	}
	return true
}

func sameNode(a, b *Node) bool {
	if a.Title != b.Title || a.Parent != b.Parent || a.Collapsed != b.Collapsed ||
		a.Hidden != b.Hidden || a.RankPos != b.RankPos || a.RankNeg != b.RankNeg ||
		a.Stars != b.Stars || a.Symbol != b.Symbol || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if a.Children[i] != b.Children[i] {
			return false
		}
	}
	return true
}
