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
	"strings"

	tpad "github.com/mgrier/tpad/types"
)

// A Buffer holds the text being edited as rows of runes. Rows exist only as
// a convenience for the display; the content is the rows joined by newlines,
// and offsets in search results count runes of that joined text.
type Buffer struct {
	rows [][]rune
}

func NewBuffer() *Buffer {
	return &Buffer{rows: [][]rune{{}}}
}

// SetContent replaces the buffer text wholesale.
func (b *Buffer) SetContent(text string) {
	lines := strings.Split(text, "\n")
	b.rows = make([][]rune, len(lines))
	for i, line := range lines {
		b.rows[i] = []rune(line)
	}
}

func (b *Buffer) Content() string {
	var sb strings.Builder
	for i, row := range b.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(row))
	}
	return sb.String()
}

func (b *Buffer) IsEmpty() bool {
	return len(b.rows) == 1 && len(b.rows[0]) == 0
}

func (b *Buffer) RowCount() int {
	return len(b.rows)
}

func (b *Buffer) RowLength(i int) int {
	if i < 0 || i >= len(b.rows) {
		return 0
	}
	return len(b.rows[i])
}

func (b *Buffer) RowText(i int) string {
	if i < 0 || i >= len(b.rows) {
		return ""
	}
	return string(b.rows[i])
}

func (b *Buffer) InsertRune(row, col int, c rune) {
	if row < 0 || row >= len(b.rows) {
		return
	}
	line := b.rows[row]
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	line = append(line, 0)
	copy(line[col+1:], line[col:])
	line[col] = c
	b.rows[row] = line
}

// DeleteRune removes and returns the rune at (row, col).
func (b *Buffer) DeleteRune(row, col int) rune {
	if row < 0 || row >= len(b.rows) {
		return 0
	}
	line := b.rows[row]
	if col < 0 || col >= len(line) {
		return 0
	}
	c := line[col]
	b.rows[row] = append(line[:col], line[col+1:]...)
	return c
}

// SplitRow breaks a row in two at col.
func (b *Buffer) SplitRow(row, col int) {
	if row < 0 || row >= len(b.rows) {
		return
	}
	line := b.rows[row]
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	rest := append([]rune{}, line[col:]...)
	b.rows[row] = line[:col]
	b.rows = append(b.rows, nil)
	copy(b.rows[row+2:], b.rows[row+1:])
	b.rows[row+1] = rest
}

// JoinRow appends row+1 onto row, removing the newline between them.
func (b *Buffer) JoinRow(row int) {
	if row < 0 || row+1 >= len(b.rows) {
		return
	}
	b.rows[row] = append(b.rows[row], b.rows[row+1]...)
	b.rows = append(b.rows[:row+1], b.rows[row+2:]...)
}

// DeleteRow removes a row entirely and returns its text. The buffer always
// keeps at least one row.
func (b *Buffer) DeleteRow(row int) string {
	if row < 0 || row >= len(b.rows) {
		return ""
	}
	text := string(b.rows[row])
	if len(b.rows) == 1 {
		b.rows[0] = []rune{}
		return text
	}
	b.rows = append(b.rows[:row], b.rows[row+1:]...)
	return text
}

// PointToOffset converts a (row, col) position into a rune offset in the
// joined content, counting each row separator as one rune.
func (b *Buffer) PointToOffset(p tpad.Point) int {
	offset := 0
	for i := 0; i < p.Row && i < len(b.rows); i++ {
		offset += len(b.rows[i]) + 1
	}
	col := p.Col
	if max := b.RowLength(p.Row); col > max {
		col = max
	}
	return offset + col
}

// OffsetToPoint is the inverse of PointToOffset.
func (b *Buffer) OffsetToPoint(offset int) tpad.Point {
	for i, row := range b.rows {
		if offset <= len(row) {
			return tpad.Point{Row: i, Col: offset}
		}
		offset -= len(row) + 1
	}
	last := len(b.rows) - 1
	return tpad.Point{Row: last, Col: len(b.rows[last])}
}
