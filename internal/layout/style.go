package layout

import (
	"fmt"
	"strings"
)

const (
	// LeftPadding is the column of the root node.
	LeftPadding = 1
	// ConnectionSpacing is the horizontal gap between a parent's trailing
	// edge and its children, which holds the connector lines.
	ConnectionSpacing = 6
	// MinWrapWidth is the smallest width a title is ever wrapped to.
	MinWrapWidth = 15
)

// Alignment selects how nodes are placed horizontally.
type Alignment int

const (
	// AlignStack places each child a fixed step right of its own parent.
	AlignStack Alignment = iota
	// AlignCenter gives every depth a shared column and centers each node
	// inside the column of its depth.
	AlignCenter
)

func (a Alignment) String() string {
	if a == AlignCenter {
		return "center"
	}
	return "stack"
}

// ParseAlignment accepts "stack" or "center" in any case.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stack":
		return AlignStack, nil
	case "center":
		return AlignCenter, nil
	default:
		return AlignStack, fmt.Errorf("unknown alignment mode %q", s)
	}
}

// Style holds every setting that influences placement.
type Style struct {
	// MaxParentWidth caps the wrapped width of nodes with visible children.
	MaxParentWidth int
	// MaxLeafWidth caps leaves. Zero leaves them unrestricted apart from
	// the viewport width.
	MaxLeafWidth int
	LineSpacing  int
	Alignment    Alignment
	ShowHidden   bool
	// Symbol1 and Symbol2 are drawn in front of titles carrying a symbol.
	Symbol1 string
	Symbol2 string
}

// DefaultStyle returns the settings used when nothing is configured.
func DefaultStyle() Style {
	return Style{
		MaxParentWidth: 25,
		LineSpacing:    1,
		Alignment:      AlignStack,
		Symbol1:        "✓",
		Symbol2:        "✗",
	}
}
