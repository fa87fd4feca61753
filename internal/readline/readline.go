// Package readline is the single-line editor used to edit node titles and
// search queries.
//
// Offsets are counted in code points. A word is a maximal run of non-space
// characters; only the space character separates words, so punctuation is
// part of a word. The editor keeps a horizontal window of Width code points
// that scrolls by the minimal amount needed to keep the cursor visible.
package readline

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Editor holds one line of text, a cursor and the visible window.
type Editor struct {
	buf    []rune
	cursor int
	start  int
	width  int
}

// New returns an editor holding text with the cursor at the end.
func New(text string, width int) *Editor {
	e := &Editor{width: width}
	e.SetText(text)
	return e
}

// SetText replaces the buffer and moves the cursor to the end.
func (e *Editor) SetText(text string) {
	e.buf = []rune(text)
	e.cursor = len(e.buf)
	e.scroll()
}

// SetWidth changes the window width. Zero or less disables scrolling.
func (e *Editor) SetWidth(width int) {
	e.width = width
	e.scroll()
}

func (e *Editor) String() string {
	return string(e.buf)
}

// Len returns the buffer length in code points.
func (e *Editor) Len() int { return len(e.buf) }

// Cursor returns the cursor offset.
func (e *Editor) Cursor() int { return e.cursor }

// WindowStart returns the first visible offset.
func (e *Editor) WindowStart() int { return e.start }

// Width returns the window width.
func (e *Editor) Width() int { return e.width }

// Insert adds r at the cursor.
func (e *Editor) Insert(r rune) {
	e.insert([]rune{r})
}

// InsertString adds s at the cursor without normalization.
func (e *Editor) InsertString(s string) {
	e.insert([]rune(s))
}

// Paste inserts text at the cursor after flattening it to one line: each
// newline becomes a space, carriage returns are dropped and each tab becomes
// two spaces.
func (e *Editor) Paste(text string) {
	e.insert([]rune(NormalizePaste(text)))
}

// NormalizePaste applies the paste rules without inserting.
func NormalizePaste(text string) string {
	return strings.NewReplacer("\r", "", "\n", " ", "\t", "  ").Replace(text)
}

func (e *Editor) insert(rs []rune) {
	if len(rs) == 0 {
		return
	}
	out := make([]rune, 0, len(e.buf)+len(rs))
	out = append(out, e.buf[:e.cursor]...)
	out = append(out, rs...)
	out = append(out, e.buf[e.cursor:]...)
	e.buf = out
	e.cursor += len(rs)
	e.scroll()
}

// DeleteBefore removes the code point before the cursor (backspace).
func (e *Editor) DeleteBefore() {
	if e.cursor == 0 {
		return
	}
	e.remove(e.cursor-1, e.cursor)
}

// DeleteAfter removes the code point under the cursor (delete).
func (e *Editor) DeleteAfter() {
	if e.cursor >= len(e.buf) {
		return
	}
	e.remove(e.cursor, e.cursor+1)
}

// Left moves the cursor one code point left.
func (e *Editor) Left() {
	if e.cursor > 0 {
		e.cursor--
	}
	e.scroll()
}

// Right moves the cursor one code point right.
func (e *Editor) Right() {
	if e.cursor < len(e.buf) {
		e.cursor++
	}
	e.scroll()
}

// Home moves the cursor to the start of the line.
func (e *Editor) Home() {
	e.cursor = 0
	e.scroll()
}

// End moves the cursor past the last code point.
func (e *Editor) End() {
	e.cursor = len(e.buf)
	e.scroll()
}

// WordLeft moves to the start of the word before the cursor, skipping any
// spaces in between.
func (e *Editor) WordLeft() {
	e.cursor = e.wordStartBefore(e.cursor)
	e.scroll()
}

// WordRight moves past the rest of the current word and the spaces after
// it, to the start of the next word.
func (e *Editor) WordRight() {
	e.cursor = e.nextWordStart(e.cursor)
	e.scroll()
}

// DeleteWordBefore removes the spaces before the cursor and then the word
// preceding them.
func (e *Editor) DeleteWordBefore() {
	e.remove(e.wordStartBefore(e.cursor), e.cursor)
}

// DeleteWordAfter removes the rest of the current word and the spaces
// following it.
func (e *Editor) DeleteWordAfter() {
	e.remove(e.cursor, e.nextWordStart(e.cursor))
}

// DeleteToStart removes everything before the cursor.
func (e *Editor) DeleteToStart() {
	e.remove(0, e.cursor)
}

// DeleteToEnd removes everything from the cursor on.
func (e *Editor) DeleteToEnd() {
	e.remove(e.cursor, len(e.buf))
}

func (e *Editor) wordStartBefore(pos int) int {
	for pos > 0 && e.buf[pos-1] == ' ' {
		pos--
	}
	for pos > 0 && e.buf[pos-1] != ' ' {
		pos--
	}
	return pos
}

func (e *Editor) nextWordStart(pos int) int {
	for pos < len(e.buf) && e.buf[pos] != ' ' {
		pos++
	}
	for pos < len(e.buf) && e.buf[pos] == ' ' {
		pos++
	}
	return pos
}

func (e *Editor) remove(from, to int) {
	if from >= to {
		e.scroll()
		return
	}
	e.buf = append(e.buf[:from:from], e.buf[to:]...)
	if e.cursor > to {
		e.cursor -= to - from
	} else if e.cursor > from {
		e.cursor = from
	}
	e.scroll()
}

// scroll keeps the cursor inside [start, start+width) and pulls the window
// back when the buffer got shorter than what it shows. The cursor may sit one
// past the last code point, which counts as a visible cell.
func (e *Editor) scroll() {
	if e.width <= 0 {
		e.start = 0
		return
	}
	if e.cursor < e.start {
		e.start = e.cursor
	}
	if e.cursor >= e.start+e.width {
		e.start = e.cursor - e.width + 1
	}
	if maxStart := len(e.buf) + 1 - e.width; e.start > maxStart {
		e.start = max(0, maxStart)
	}
}

// Visible returns the windowed part of the buffer and the cursor column
// inside it, measured in terminal cells.
func (e *Editor) Visible() (string, int) {
	if e.width <= 0 {
		return string(e.buf), runewidth.StringWidth(string(e.buf[:e.cursor]))
	}
	end := min(len(e.buf), e.start+e.width)
	text := string(e.buf[e.start:end])
	col := runewidth.StringWidth(string(e.buf[e.start:e.cursor]))
	return text, col
}
