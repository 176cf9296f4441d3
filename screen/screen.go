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
package screen

import (
	"fmt"
	"log"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	tpad "github.com/mgrier/tpad/types"
)

// The Screen draws the state of an Editor and produces input events.
type Screen struct {
	size tpad.Size // screen size
}

func NewScreen() *Screen {
	err := termbox.Init()
	if err != nil {
		log.Output(1, err.Error())
		return nil
	}
	termbox.SetOutputMode(termbox.Output256)
	return &Screen{}
}

func (s *Screen) Close() {
	termbox.Close()
}

func (s *Screen) Render(e tpad.Editor, c tpad.Commander) {
	termbox.Clear(termbox.ColorWhite, termbox.ColorBlack)
	var screenSize tpad.Size
	screenSize.Cols, screenSize.Rows = termbox.Size()
	s.size = screenSize

	editSize := screenSize
	editSize.Rows -= 2
	e.SetSize(editSize)
	e.Scroll()

	s.renderBuffer(e, editSize)
	s.renderInfoBar(e)
	s.renderMessageBar(c)
	s.placeCursor(e, c)
	termbox.Flush()
}

func (s *Screen) renderBuffer(e tpad.Editor, size tpad.Size) {
	buffer := e.GetDocument().GetBuffer()
	offset := e.GetOffset()
	for i := 0; i < size.Rows; i++ {
		row := i + offset.Rows
		if row >= buffer.RowCount() {
			break
		}
		x := 0
		for j, ch := range []rune(buffer.RowText(row)) {
			if j < offset.Cols {
				continue
			}
			if ch == '\t' {
				ch = ' '
			}
			w := runewidth.RuneWidth(ch)
			if w == 0 {
				w = 1
			}
			if x+w > size.Cols {
				break
			}
			termbox.SetCell(x, i, ch, termbox.ColorWhite, termbox.ColorBlack)
			x += w
		}
	}
}

func (s *Screen) renderInfoBar(e tpad.Editor) {
	doc := e.GetDocument()
	words, chars := doc.Stats()
	cursor := e.GetCursor()
	finalText := fmt.Sprintf(" Ln %d, Col %d | %d words, %d chars ",
		cursor.Row+1, cursor.Col+1, words, chars)
	text := " " + doc.Title() + " "
	for runewidth.StringWidth(text) < s.size.Cols-runewidth.StringWidth(finalText) {
		text += " "
	}
	text = runewidth.Truncate(text+finalText, s.size.Cols, "")
	x := 0
	for _, ch := range text {
		termbox.SetCell(x, s.size.Rows-2, ch, termbox.ColorBlack, termbox.ColorWhite)
		x += runewidth.RuneWidth(ch)
	}
}

func (s *Screen) renderMessageBar(c tpad.Commander) {
	line := c.GetPrompt()
	if line == "" {
		line = c.GetMessage()
	}
	line = runewidth.Truncate(line, s.size.Cols, "")
	x := 0
	for _, ch := range line {
		termbox.SetCell(x, s.size.Rows-1, ch, termbox.ColorWhite, termbox.ColorBlack)
		x += runewidth.RuneWidth(ch)
	}
}

func (s *Screen) placeCursor(e tpad.Editor, c tpad.Commander) {
	if prompt := c.GetPrompt(); prompt != "" {
		termbox.SetCursor(runewidth.StringWidth(prompt), s.size.Rows-1)
		return
	}
	cursor := e.GetCursor()
	offset := e.GetOffset()
	row := e.GetDocument().GetBuffer().RowText(cursor.Row)
	x := 0
	for j, ch := range []rune(row) {
		if j < offset.Cols {
			continue
		}
		if j >= cursor.Col {
			break
		}
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			w = 1
		}
		x += w
	}
	termbox.SetCursor(x, cursor.Row-offset.Rows)
}

func (s *Screen) GetNextEvent() *tpad.Event {
	event := termbox.PollEvent()
	if event.Type == termbox.EventResize {
		termbox.Flush()
		return &tpad.Event{Type: tpad.EventResize}
	}
	return &tpad.Event{
		Type: tpad.EventKey,
		Key:  key(event.Key),
		Ch:   event.Ch,
	}
}

func key(k termbox.Key) tpad.Key {
	switch k {
	case termbox.KeyArrowUp:
		return tpad.KeyArrowUp
	case termbox.KeyArrowDown:
		return tpad.KeyArrowDown
	case termbox.KeyArrowLeft:
		return tpad.KeyArrowLeft
	case termbox.KeyArrowRight:
		return tpad.KeyArrowRight
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		return tpad.KeyBackspace2
	case termbox.KeyDelete:
		return tpad.KeyDelete
	case termbox.KeyEnd:
		return tpad.KeyEnd
	case termbox.KeyEnter:
		return tpad.KeyEnter
	case termbox.KeyEsc:
		return tpad.KeyEsc
	case termbox.KeyF5:
		return tpad.KeyF5
	case termbox.KeyHome:
		return tpad.KeyHome
	case termbox.KeyPgdn:
		return tpad.KeyPgdn
	case termbox.KeyPgup:
		return tpad.KeyPgup
	case termbox.KeySpace:
		return tpad.KeySpace
	case termbox.KeyTab:
		return tpad.KeyTab
	case termbox.KeyCtrlA:
		return tpad.KeyCtrlA
	case termbox.KeyCtrlC:
		return tpad.KeyCtrlC
	case termbox.KeyCtrlE:
		return tpad.KeyCtrlE
	case termbox.KeyCtrlF:
		return tpad.KeyCtrlF
	case termbox.KeyCtrlG:
		return tpad.KeyCtrlG
	case termbox.KeyCtrlN:
		return tpad.KeyCtrlN
	case termbox.KeyCtrlO:
		return tpad.KeyCtrlO
	case termbox.KeyCtrlQ:
		return tpad.KeyCtrlQ
	case termbox.KeyCtrlR:
		return tpad.KeyCtrlR
	case termbox.KeyCtrlS:
		return tpad.KeyCtrlS
	case termbox.KeyCtrlT:
		return tpad.KeyCtrlT
	case termbox.KeyCtrlV:
		return tpad.KeyCtrlV
	case termbox.KeyCtrlX:
		return tpad.KeyCtrlX
	default:
		return tpad.KeyUnsupported
	}
}
