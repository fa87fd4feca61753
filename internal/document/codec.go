package document

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/treykane/cli-mindmap/internal/tree"
)

const (
	// SyntheticRootTitle names the root added around several top-level lines.
	SyntheticRootTitle = "root"
	// EmptyDocumentTitle names the root of a document without any nodes.
	EmptyDocumentTitle = "New Mind Map"

	hiddenMarker = "[HIDDEN] "
	starRune     = "★"
	tabWidth     = 2
)

// Codec converts between text and trees. The symbols must match the ones
// shown in the UI so that symbol markers survive a save and reload.
type Codec struct {
	Symbol1 string
	Symbol2 string
}

// DefaultCodec uses the default symbols.
var DefaultCodec = Codec{Symbol1: "✓", Symbol2: "✗"}

// Parse reads a document with the default codec.
func Parse(text string) (*tree.Tree, error) {
	return DefaultCodec.Parse(text)
}

// Serialize writes a document with the default codec.
func Serialize(t *tree.Tree) string {
	return DefaultCodec.Serialize(t)
}

// encodeTitle renders the node flags as title markers.
func (c Codec) encodeTitle(n tree.Node) string {
	var b strings.Builder
	if n.Hidden {
		b.WriteString(hiddenMarker)
	}
	switch n.Symbol {
	case tree.SymbolFirst:
		b.WriteString(c.Symbol1 + " ")
	case tree.SymbolSecond:
		b.WriteString(c.Symbol2 + " ")
	}
	if n.RankPos != 0 || n.RankNeg != 0 {
		fmt.Fprintf(&b, "(+%d-%d) ", n.RankPos, n.RankNeg)
	}
	b.WriteString(n.Title)
	if n.Stars > 0 {
		b.WriteString(" " + strings.Repeat(starRune, n.Stars))
	}
	return b.String()
}

// fields are the node attributes recovered from an encoded title.
type fields struct {
	title   string
	hidden  bool
	symbol  tree.Symbol
	rankPos int
	rankNeg int
	stars   int
}

// decodeTitle strips the markers written by encodeTitle.
func (c Codec) decodeTitle(s string) fields {
	var f fields
	if rest, ok := strings.CutPrefix(s, hiddenMarker); ok {
		f.hidden = true
		s = rest
	}
	if c.Symbol1 != "" {
		if rest, ok := strings.CutPrefix(s, c.Symbol1+" "); ok {
			f.symbol = tree.SymbolFirst
			s = rest
		}
	}
	if f.symbol == tree.SymbolNone && c.Symbol2 != "" {
		if rest, ok := strings.CutPrefix(s, c.Symbol2+" "); ok {
			f.symbol = tree.SymbolSecond
			s = rest
		}
	}
	if strings.HasPrefix(s, "(+") {
		var pos, neg int
		if end := strings.Index(s, ") "); end > 0 {
			if n, err := fmt.Sscanf(s[:end+1], "(+%d-%d)", &pos, &neg); err == nil && n == 2 && pos >= 0 && neg >= 0 {
				f.rankPos, f.rankNeg = min(pos, tree.MaxRank), min(neg, tree.MaxRank)
				s = s[end+2:]
			}
		}
	}
	if i := strings.LastIndex(s, " "); i >= 0 {
		tail := s[i+1:]
		count := utf8.RuneCountInString(tail)
		if count > 0 && count <= tree.MaxStars && tail == strings.Repeat(starRune, count) {
			f.stars = count
			s = s[:i]
		}
	}
	f.title = s
	return f
}
