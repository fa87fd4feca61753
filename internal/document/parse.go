// Package document reads and writes mind map documents.
//
// The text format is one node per line with leading tabs giving the depth:
//
//	Project
//		Design
//			Layout
//		Release
//
// Indentation is relative, so spaces work as well as tabs, and "* " or "- "
// bullets are accepted and dropped. A document with several top-level lines
// is wrapped in a synthetic root, which is omitted again when writing. Node
// flags are kept in the title text: a "[HIDDEN] " prefix, a symbol prefix, a
// "(+P-N) " rank prefix and a trailing run of stars.
package document

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/treykane/cli-mindmap/internal/tree"
)

// ParseError reports a document that cannot be read as text.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse document: line %d: %s", e.Line, e.Reason)
	}
	return "parse document: " + e.Reason
}

type parsedLine struct {
	indent int
	title  string
}

// Parse builds a tree from text. Blank input gives a single root titled
// EmptyDocumentTitle.
func (c Codec) Parse(text string) (*tree.Tree, error) {
	lines, err := splitLines(text)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return tree.New(EmptyDocumentTitle), nil
	}

	t := tree.New(SyntheticRootTitle)
	t.Synthetic = true
	type level struct {
		id     int
		indent int
	}
	stack := []level{{id: t.Root(), indent: -1}}
	for _, l := range lines {
		for len(stack) > 1 && stack[len(stack)-1].indent >= l.indent {
			stack = stack[:len(stack)-1]
		}
		f := c.decodeTitle(l.title)
		id, err := t.CreateNode(stack[len(stack)-1].id, f.title, -1)
		if err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
		c.applyFields(t, id, f)
		stack = append(stack, level{id: id, indent: l.indent})
	}

	if len(t.Children(t.Root())) == 1 {
		t = promoteFirstChild(t)
	}
	t.Active = t.Root()
	t.Modified = false
	return t, nil
}

// promoteFirstChild returns a tree whose root is the first child of t's root.
func promoteFirstChild(t *tree.Tree) *tree.Tree {
	first := t.Children(t.Root())[0]
	n, _ := t.Get(first)
	out := tree.New(n.Title)
	_ = out.SetHidden(out.Root(), n.Hidden)
	_ = out.SetSymbol(out.Root(), n.Symbol)
	_ = out.AdjustRank(out.Root(), n.RankPos, n.RankNeg)
	_ = out.AdjustStars(out.Root(), n.Stars)
	for _, c := range n.Children {
		_, _ = out.Graft(out.Root(), -1, t, c)
	}
	return out
}

func (c Codec) applyFields(t *tree.Tree, id int, f fields) {
	_ = t.SetHidden(id, f.hidden)
	_ = t.SetSymbol(id, f.symbol)
	_ = t.AdjustRank(id, f.rankPos, f.rankNeg)
	_ = t.AdjustStars(id, f.stars)
}

// splitLines drops blank lines, strips bullets and measures indentation in
// columns, counting a tab as tabWidth columns.
func splitLines(text string) ([]parsedLine, error) {
	if !utf8.ValidString(text) {
		return nil, &ParseError{Reason: "document is not valid UTF-8"}
	}
	var out []parsedLine
	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, "\r")
		if strings.ContainsRune(raw, 0) {
			return nil, &ParseError{Line: i + 1, Reason: "unexpected NUL byte"}
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}
		indent := 0
		rest := raw
	scan:
		for len(rest) > 0 {
			switch rest[0] {
			case '\t':
				indent += tabWidth
			case ' ':
				indent++
			default:
				break scan
			}
			rest = rest[1:]
		}
		if strings.HasPrefix(rest, "* ") || strings.HasPrefix(rest, "- ") {
			indent += 2
			rest = rest[2:]
		}
		title := strings.TrimSpace(rest)
		if title == "" {
			continue
		}
		out = append(out, parsedLine{indent: indent, title: title})
	}
	return out, nil
}
