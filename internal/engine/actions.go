package engine

import (
	"fmt"
	"strings"

	"github.com/treykane/cli-mindmap/internal/tree"
)

// Action ids accepted by Do. The UI binds keys to these strings.
const (
	ActionMoveLeft   = "move.left"
	ActionMoveRight  = "move.right"
	ActionMoveUp     = "move.up"
	ActionMoveDown   = "move.down"
	ActionMoveRoot   = "move.root"
	ActionMoveTop    = "move.top"
	ActionMoveBottom = "move.bottom"

	ActionInsertSibling  = "node.insert_sibling"
	ActionInsertChild    = "node.insert_child"
	ActionDelete         = "node.delete"
	ActionDeleteChildren = "node.delete_children"
	ActionMoveNodeUp     = "node.move_up"
	ActionMoveNodeDown   = "node.move_down"
	ActionToggleCollapse = "node.toggle_collapse"
	ActionToggleHide     = "node.toggle_hide"
	ActionToggleSymbol   = "node.toggle_symbol"

	ActionRankUp    = "rank.up"
	ActionRankDown  = "rank.down"
	ActionRankReset = "rank.reset"
	ActionStarsUp   = "stars.up"
	ActionStarsDown = "stars.down"

	ActionSortTitle = "sort.title"
	ActionSortRank  = "sort.rank"

	ActionSearchStart = "search.start"
	ActionSearchNext  = "search.next"
	ActionSearchPrev  = "search.prev"

	ActionYankNode      = "yank.node"
	ActionYankChildren  = "yank.children"
	ActionPasteChildren = "paste.children"
	ActionPasteSiblings = "paste.siblings"

	ActionUndo = "undo"
	ActionRedo = "redo"

	ActionEditAppend  = "edit.append"
	ActionEditReplace = "edit.replace"

	ActionCollapseAll      = "view.collapse_all"
	ActionExpandAll        = "view.expand_all"
	ActionCollapseChildren = "view.collapse_children"
	ActionCollapseOthers   = "view.collapse_others"
	// ActionCollapseLevel is the prefix of view.collapse_level_1 through
	// view.collapse_level_9.
	ActionCollapseLevel = "view.collapse_level_"
	ActionWider         = "view.wider"
	ActionNarrower      = "view.narrower"
	ActionSpacingUp     = "view.spacing_up"
	ActionSpacingDown   = "view.spacing_down"
	ActionToggleAlign   = "view.toggle_align"
	ActionToggleHidden  = "view.toggle_hidden"
	ActionCenter        = "view.center"
	// ActionFocus collapses everything off the path to the active node and
	// expands the subtree below it.
	ActionFocus            = "view.focus"
	ActionToggleFocusLock  = "view.toggle_focus_lock"
	ActionToggleCenterLock = "view.toggle_center_lock"

	ActionSave       = "file.save"
	ActionExportText = "file.export_text"
	ActionExportHTML = "file.export_html"

	ActionQuit      = "app.quit"
	ActionForceQuit = "app.force_quit"
	ActionHelp      = "help.toggle"
)

// CollapseLevelAction returns the action collapsing everything below level.
func CollapseLevelAction(level int) string {
	return fmt.Sprintf("%s%d", ActionCollapseLevel, level)
}

// Actions lists every action id in a stable order.
func Actions() []string {
	out := []string{
		ActionMoveLeft, ActionMoveRight, ActionMoveUp, ActionMoveDown,
		ActionMoveRoot, ActionMoveTop, ActionMoveBottom,
		ActionInsertSibling, ActionInsertChild, ActionDelete, ActionDeleteChildren,
		ActionMoveNodeUp, ActionMoveNodeDown,
		ActionToggleCollapse, ActionToggleHide, ActionToggleSymbol,
		ActionRankUp, ActionRankDown, ActionRankReset, ActionStarsUp, ActionStarsDown,
		ActionSortTitle, ActionSortRank,
		ActionSearchStart, ActionSearchNext, ActionSearchPrev,
		ActionYankNode, ActionYankChildren, ActionPasteChildren, ActionPasteSiblings,
		ActionUndo, ActionRedo,
		ActionEditAppend, ActionEditReplace,
		ActionCollapseAll, ActionExpandAll, ActionCollapseChildren, ActionCollapseOthers,
	}
	for level := 1; level <= 9; level++ {
		out = append(out, CollapseLevelAction(level))
	}
	return append(out,
		ActionWider, ActionNarrower, ActionSpacingUp, ActionSpacingDown,
		ActionToggleAlign, ActionToggleHidden, ActionCenter,
		ActionFocus, ActionToggleFocusLock, ActionToggleCenterLock,
		ActionSave, ActionExportText, ActionExportHTML,
		ActionQuit, ActionForceQuit, ActionHelp,
	)
}

// IsAction reports whether name is a known action id.
func IsAction(name string) bool {
	for _, a := range Actions() {
		if a == name {
			return true
		}
	}
	return false
}

// actionVerb turns an action id into words for status messages:
// "node.move_up" becomes "move node up".
func actionVerb(action string) string {
	noun, verb, ok := strings.Cut(action, ".")
	if !ok {
		return action
	}
	words := strings.Split(verb, "_")
	if len(words) > 1 {
		return words[0] + " " + noun + " " + strings.Join(words[1:], " ")
	}
	return verb + " " + noun
}

// Do runs a normal-mode action. Unknown actions and actions sent in another
// mode are ignored.
func (e *Engine) Do(action string) {
	if _, ok := e.mode.(Normal); !ok {
		return
	}
	engineLog.Debug("dispatch", "action", action, "active", e.tree.Active)

	if strings.HasPrefix(action, ActionCollapseLevel) {
		var level int
		if _, err := fmt.Sscanf(strings.TrimPrefix(action, ActionCollapseLevel), "%d", &level); err == nil && level >= 1 && level <= 9 {
			e.collapseToLevel(level)
		}
		return
	}

	switch action {
	case ActionMoveLeft:
		e.moveLeft()
	case ActionMoveRight:
		e.moveRight()
	case ActionMoveUp:
		e.moveVertical(-1)
	case ActionMoveDown:
		e.moveVertical(1)
	case ActionMoveRoot:
		e.selectNode(e.tree.Root())
	case ActionMoveTop:
		e.moveExtreme(-1)
	case ActionMoveBottom:
		e.moveExtreme(1)

	case ActionInsertSibling:
		e.insertSibling()
	case ActionInsertChild:
		e.insertChild()
	case ActionDelete:
		e.deleteNode()
	case ActionDeleteChildren:
		e.deleteChildren()
	case ActionMoveNodeUp:
		e.moveNode(action, -1)
	case ActionMoveNodeDown:
		e.moveNode(action, 1)
	case ActionToggleCollapse:
		e.toggleCollapse()
	case ActionToggleHide:
		e.toggleHide()
	case ActionToggleSymbol:
		e.toggleSymbol()

	case ActionRankUp:
		e.adjust(action, func(t *tree.Tree, id int) error { return t.AdjustRank(id, 1, 0) })
	case ActionRankDown:
		e.adjust(action, func(t *tree.Tree, id int) error { return t.AdjustRank(id, 0, 1) })
	case ActionRankReset:
		e.adjust(action, func(t *tree.Tree, id int) error { return t.ResetRank(id) })
	case ActionStarsUp:
		e.adjust(action, func(t *tree.Tree, id int) error { return t.AdjustStars(id, 1) })
	case ActionStarsDown:
		e.adjust(action, func(t *tree.Tree, id int) error { return t.AdjustStars(id, -1) })

	case ActionSortTitle:
		e.sortSiblings(action, byTitle)
	case ActionSortRank:
		e.sortSiblings(action, byRank)

	case ActionSearchStart:
		e.startSearch()
	case ActionSearchNext:
		e.stepSearch(1)
	case ActionSearchPrev:
		e.stepSearch(-1)

	case ActionYankNode:
		e.yank(false)
	case ActionYankChildren:
		e.yank(true)
	case ActionPasteChildren:
		e.paste(false)
	case ActionPasteSiblings:
		e.paste(true)

	case ActionUndo:
		e.undo()
	case ActionRedo:
		e.redo()

	case ActionEditAppend:
		e.startEditing(false)
	case ActionEditReplace:
		e.startEditing(true)

	case ActionCollapseAll:
		e.collapseAll(true)
	case ActionExpandAll:
		e.collapseAll(false)
	case ActionCollapseChildren:
		e.collapseChildren()
	case ActionCollapseOthers:
		e.collapseOthers()
	case ActionWider:
		e.scaleWidth(true)
	case ActionNarrower:
		e.scaleWidth(false)
	case ActionSpacingUp:
		e.changeSpacing(1)
	case ActionSpacingDown:
		e.changeSpacing(-1)
	case ActionToggleAlign:
		e.toggleAlign()
	case ActionToggleHidden:
		e.toggleShowHidden()
	case ActionCenter:
		// Scrolling belongs to the renderer.
	case ActionFocus:
		e.focus()
	case ActionToggleFocusLock:
		e.toggleFocusLock()
	case ActionToggleCenterLock:
		e.toggleCenterLock()

	case ActionSave:
		e.save()
	case ActionExportText:
		e.exportText()
	case ActionExportHTML:
		e.exportHTML()

	case ActionQuit:
		e.quit(false)
	case ActionForceQuit:
		e.quit(true)
	case ActionHelp:
		e.showHelp = !e.showHelp

	default:
		engineLog.Debug("unknown action", "action", action)
	}

	if e.focusLock && isMove(action) {
		e.viewChange(func(t *tree.Tree) { focusOn(t, t.Active) })
	}
}

// isMove reports whether action only changes the active node.
func isMove(action string) bool {
	return strings.HasPrefix(action, "move.") || action == ActionSearchNext || action == ActionSearchPrev
}
