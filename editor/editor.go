//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package editor

import (
	tpad "github.com/mgrier/tpad/types"
)

// The Editor manages cursor-driven editing of a Document's buffer. Every
// mutation it makes is reported to the document through NotifyEdited, so
// the dirty flag always tracks user changes.
type Editor struct {
	Cursor   tpad.Point // cursor position
	Offset   tpad.Size  // display offset
	document *Document
	size     tpad.Size // size of editing area
}

func NewEditor(d *Document) *Editor {
	return &Editor{document: d}
}

func (e *Editor) GetDocument() tpad.Document {
	return e.document
}

func (e *Editor) Document() *Document {
	return e.document
}

func (e *Editor) GetCursor() tpad.Point {
	return e.Cursor
}

func (e *Editor) SetCursor(cursor tpad.Point) {
	e.Cursor = cursor
	e.KeepCursorInRow()
}

func (e *Editor) SetSize(s tpad.Size) {
	e.size = s
}

func (e *Editor) GetOffset() tpad.Size {
	return e.Offset
}

func (e *Editor) Scroll() {
	if e.Cursor.Row < e.Offset.Rows {
		e.Offset.Rows = e.Cursor.Row
	}
	if e.Cursor.Row-e.Offset.Rows >= e.size.Rows {
		e.Offset.Rows = e.Cursor.Row - e.size.Rows + 1
	}
	if e.Cursor.Col < e.Offset.Cols {
		e.Offset.Cols = e.Cursor.Col
	}
	if e.Cursor.Col-e.Offset.Cols >= e.size.Cols {
		e.Offset.Cols = e.Cursor.Col - e.size.Cols + 1
	}
}

func (e *Editor) buffer() *Buffer {
	return e.document.Buffer()
}

// KeepCursorInRow clamps the cursor to the buffer. The cursor may rest one
// past the last rune of a row, where typing appends.
func (e *Editor) KeepCursorInRow() {
	b := e.buffer()
	if e.Cursor.Row < 0 {
		e.Cursor.Row = 0
	}
	if e.Cursor.Row > b.RowCount()-1 {
		e.Cursor.Row = b.RowCount() - 1
	}
	if e.Cursor.Col < 0 {
		e.Cursor.Col = 0
	}
	if max := b.RowLength(e.Cursor.Row); e.Cursor.Col > max {
		e.Cursor.Col = max
	}
}

func (e *Editor) MoveCursor(direction int) {
	b := e.buffer()
	switch direction {
	case tpad.MoveLeft:
		if e.Cursor.Col > 0 {
			e.Cursor.Col--
		} else if e.Cursor.Row > 0 {
			e.Cursor.Row--
			e.Cursor.Col = b.RowLength(e.Cursor.Row)
		}
	case tpad.MoveRight:
		if e.Cursor.Col < b.RowLength(e.Cursor.Row) {
			e.Cursor.Col++
		} else if e.Cursor.Row < b.RowCount()-1 {
			e.Cursor.Row++
			e.Cursor.Col = 0
		}
	case tpad.MoveUp:
		if e.Cursor.Row > 0 {
			e.Cursor.Row--
		}
	case tpad.MoveDown:
		if e.Cursor.Row < b.RowCount()-1 {
			e.Cursor.Row++
		}
	}
	e.KeepCursorInRow()
}

func (e *Editor) MoveToBeginningOfLine() {
	e.Cursor.Col = 0
}

func (e *Editor) MoveToEndOfLine() {
	e.Cursor.Col = e.buffer().RowLength(e.Cursor.Row)
}

func (e *Editor) PageUp() {
	e.Cursor.Row = e.Offset.Rows
	for i := 0; i < e.size.Rows; i++ {
		e.MoveCursor(tpad.MoveUp)
	}
	e.KeepCursorInRow()
}

func (e *Editor) PageDown() {
	e.Cursor.Row = e.Offset.Rows + e.size.Rows - 1
	for i := 0; i < e.size.Rows; i++ {
		e.MoveCursor(tpad.MoveDown)
	}
	e.KeepCursorInRow()
}

// GotoLine moves the cursor to the start of a 1-based line, clamped to the
// buffer.
func (e *Editor) GotoLine(line int) {
	if line < 1 {
		line = 1
	}
	if max := e.buffer().RowCount(); line > max {
		line = max
	}
	e.Cursor = tpad.Point{Row: line - 1, Col: 0}
}

func (e *Editor) InsertChar(c rune) {
	b := e.buffer()
	if c == '\n' {
		b.SplitRow(e.Cursor.Row, e.Cursor.Col)
		e.Cursor.Row++
		e.Cursor.Col = 0
	} else {
		b.InsertRune(e.Cursor.Row, e.Cursor.Col, c)
		e.Cursor.Col++
	}
	e.document.NotifyEdited()
}

func (e *Editor) InsertText(text string) {
	for _, c := range text {
		e.InsertChar(c)
	}
}

func (e *Editor) BackspaceChar() {
	b := e.buffer()
	if e.Cursor.Col > 0 {
		b.DeleteRune(e.Cursor.Row, e.Cursor.Col-1)
		e.Cursor.Col--
		e.document.NotifyEdited()
	} else if e.Cursor.Row > 0 {
		e.Cursor.Col = b.RowLength(e.Cursor.Row - 1)
		b.JoinRow(e.Cursor.Row - 1)
		e.Cursor.Row--
		e.document.NotifyEdited()
	}
}

// DeleteChar removes the rune under the cursor, joining lines at a row end.
func (e *Editor) DeleteChar() {
	b := e.buffer()
	if e.Cursor.Col < b.RowLength(e.Cursor.Row) {
		b.DeleteRune(e.Cursor.Row, e.Cursor.Col)
		e.document.NotifyEdited()
	} else if e.Cursor.Row < b.RowCount()-1 {
		b.JoinRow(e.Cursor.Row)
		e.document.NotifyEdited()
	}
}

func (e *Editor) CurrentLine() string {
	return e.buffer().RowText(e.Cursor.Row)
}

// DeleteCurrentLine removes the cursor's row and returns its text.
func (e *Editor) DeleteCurrentLine() string {
	b := e.buffer()
	wasOnly := b.RowCount() == 1
	text := b.DeleteRow(e.Cursor.Row)
	if !wasOnly || text != "" {
		e.document.NotifyEdited()
	}
	e.KeepCursorInRow()
	return text
}

// FindNext moves the cursor to the first match after it, wrapping to the
// top of the buffer. It reports whether a match was found.
func (e *Editor) FindNext(term string, caseSensitive bool) bool {
	b := e.buffer()
	here := b.PointToOffset(e.Cursor)
	var first, next *Match
	for m := range b.Matches(term, caseSensitive) {
		if first == nil {
			first = &m
		}
		if m.Start > here {
			next = &m
			break
		}
	}
	if next == nil {
		next = first
	}
	if next == nil {
		return false
	}
	e.Cursor = b.OffsetToPoint(next.Start)
	return true
}

// FindPrevious moves the cursor to the last match before it, wrapping to
// the end of the buffer.
func (e *Editor) FindPrevious(term string, caseSensitive bool) bool {
	b := e.buffer()
	here := b.PointToOffset(e.Cursor)
	var prev, last *Match
	for m := range b.Matches(term, caseSensitive) {
		if m.Start < here {
			prev = &m
		}
		last = &m
	}
	if prev == nil {
		prev = last
	}
	if prev == nil {
		return false
	}
	e.Cursor = b.OffsetToPoint(prev.Start)
	return true
}
