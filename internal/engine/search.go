package engine

import (
	"strings"

	"github.com/treykane/cli-mindmap/internal/readline"
	"github.com/treykane/cli-mindmap/internal/tree"
)

type searchState struct {
	query   string
	results []int
	index   int
}

// SearchQuery returns the last submitted query.
func (e *Engine) SearchQuery() string { return e.search.query }

// SearchResults returns the matches of the last search in document order.
func (e *Engine) SearchResults() []int {
	return append([]int(nil), e.search.results...)
}

func (e *Engine) startSearch() {
	e.mode = &Searching{Editor: readline.New("", e.editorWidth())}
}

// runSearch collects every node whose title contains query, ignoring case,
// and selects the first one. Nodes filtered out as hidden never match.
func (e *Engine) runSearch(query string) {
	e.search = searchState{query: query}
	if strings.TrimSpace(query) == "" {
		return
	}
	needle := strings.ToLower(query)
	showHidden := e.style.ShowHidden
	e.tree.Walk(e.tree.Root(), func(n *tree.Node, _ int) bool {
		if n.Hidden && !showHidden && n.ID != e.tree.Root() {
			return false
		}
		if strings.Contains(strings.ToLower(n.Title), needle) {
			e.search.results = append(e.search.results, n.ID)
		}
		return true
	})
	if len(e.search.results) == 0 {
		e.setStatus("No results found")
		return
	}
	e.revealResult()
	e.setStatus("Found %d results", len(e.search.results))
}

// stepSearch moves to the next (step 1) or previous (step -1) match with
// wraparound.
func (e *Engine) stepSearch(step int) {
	live := e.search.results[:0]
	for _, id := range e.search.results {
		if e.tree.Has(id) {
			live = append(live, id)
		}
	}
	e.search.results = live
	n := len(live)
	if n == 0 {
		e.setStatus("No results")
		return
	}
	e.search.index = ((e.search.index+step)%n + n) % n
	e.revealResult()
	e.setStatus("Result %d/%d", e.search.index+1, n)
}

// revealResult expands the ancestors of the current match and selects it.
func (e *Engine) revealResult() {
	if e.search.index >= len(e.search.results) {
		e.search.index = 0
	}
	id := e.search.results[e.search.index]
	e.viewChange(func(t *tree.Tree) { t.Expand(id) })
	e.selectNode(id)
}
