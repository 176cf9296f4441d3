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
package commander

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tpad "github.com/mgrier/tpad/types"
)

// The Commander converts user input into document and editor operations.
// Prompts (save-as, open, find, replace, goto, close confirmation) run as
// nested loops over the terminal's event stream, so the commander also
// serves as the document's save chooser.
type Commander struct {
	editor     tpad.Editor
	term       tpad.Terminal
	running    bool
	message    string // status message
	promptLine string // minibuffer contents while a prompt is active
	searchText string // last find/replace term
	matchCase  bool
	now        func() time.Time
}

func NewCommander(e tpad.Editor) *Commander {
	return &Commander{editor: e, running: true, now: time.Now}
}

// SetTerminal wires the event source and display used by prompts.
func (c *Commander) SetTerminal(t tpad.Terminal) {
	c.term = t
}

func (c *Commander) IsRunning() bool {
	return c.running
}

func (c *Commander) GetMessage() string {
	return c.message
}

func (c *Commander) SetMessage(m string) {
	c.message = m
}

func (c *Commander) GetPrompt() string {
	return c.promptLine
}

func (c *Commander) ProcessEvent(event *tpad.Event) error {
	if event == nil {
		return nil
	}
	switch event.Type {
	case tpad.EventKey:
		return c.ProcessKey(event)
	default:
		return nil
	}
}

func (c *Commander) ProcessKey(event *tpad.Event) error {
	e := c.editor

	if event.Key != 0 {
		switch event.Key {
		case tpad.KeyCtrlQ:
			c.RequestClose()
		case tpad.KeyCtrlN:
			c.performNew()
		case tpad.KeyCtrlO:
			c.performOpen()
		case tpad.KeyCtrlS:
			c.performSave()
		case tpad.KeyCtrlF:
			c.performFind()
		case tpad.KeyCtrlR:
			c.performReplace()
		case tpad.KeyCtrlG:
			c.performGoto()
		case tpad.KeyCtrlT:
			c.performModeChange()
		case tpad.KeyCtrlX:
			c.performCut()
		case tpad.KeyCtrlC:
			c.performCopy()
		case tpad.KeyCtrlV:
			c.performPaste()
		case tpad.KeyF5:
			c.performTimeDate()
		case tpad.KeyArrowUp:
			e.MoveCursor(tpad.MoveUp)
		case tpad.KeyArrowDown:
			e.MoveCursor(tpad.MoveDown)
		case tpad.KeyArrowLeft:
			e.MoveCursor(tpad.MoveLeft)
		case tpad.KeyArrowRight:
			e.MoveCursor(tpad.MoveRight)
		case tpad.KeyCtrlA, tpad.KeyHome:
			e.MoveToBeginningOfLine()
		case tpad.KeyCtrlE, tpad.KeyEnd:
			e.MoveToEndOfLine()
		case tpad.KeyPgup:
			e.PageUp()
		case tpad.KeyPgdn:
			e.PageDown()
		case tpad.KeyEnter:
			e.InsertChar('\n')
		case tpad.KeySpace:
			e.InsertChar(' ')
		case tpad.KeyTab:
			e.InsertChar(' ')
			for e.GetCursor().Col%8 != 0 {
				e.InsertChar(' ')
			}
		case tpad.KeyBackspace2:
			e.BackspaceChar()
		case tpad.KeyDelete:
			e.DeleteChar()
		}
	}
	if event.Ch != 0 {
		e.InsertChar(event.Ch)
	}
	return nil
}

// RequestClose runs the close-confirmation protocol and stops the event
// loop when the close may proceed. Re-entrant: a cancelled request leaves
// everything as it was, and the next request starts over.
func (c *Commander) RequestClose() {
	if c.confirmUnsaved() {
		c.running = false
	}
}

func (c *Commander) performNew() {
	if !c.confirmUnsaved() {
		return
	}
	c.editor.GetDocument().Reset()
	c.editor.SetCursor(tpad.Point{})
	c.message = ""
}

func (c *Commander) performOpen() {
	if !c.confirmUnsaved() {
		return
	}
	path, ok := c.prompt("Open: ", "")
	if !ok || path == "" {
		return
	}
	doc := c.editor.GetDocument()
	if err := doc.Open(path); err != nil {
		c.message = err.Error()
		return
	}
	c.editor.SetCursor(tpad.Point{})
	c.message = fmt.Sprintf("Opened %s", path)
}

func (c *Commander) performSave() {
	doc := c.editor.GetDocument()
	err := doc.Save()
	switch {
	case err == nil:
		c.message = fmt.Sprintf("Saved %s", doc.Path())
	case errors.Is(err, tpad.ErrCancelled):
		// an expected outcome, not an error
	default:
		c.message = err.Error()
	}
}

func (c *Commander) performFind() {
	term, ok := c.promptSearch("Find: ", c.searchText)
	if !ok || term == "" {
		return
	}
	c.searchText = term
	if c.editor.FindNext(term, c.matchCase) {
		c.message = ""
	} else {
		c.message = fmt.Sprintf("Cannot find %q", term)
	}
}

func (c *Commander) performReplace() {
	needle, ok := c.promptSearch("Replace: ", c.searchText)
	if !ok || needle == "" {
		return
	}
	c.searchText = needle
	replacement, ok := c.prompt("With: ", "")
	if !ok {
		return
	}
	count := c.editor.GetDocument().ReplaceAll(needle, replacement, c.matchCase)
	if count > 0 {
		// rows may have shrunk under the cursor
		c.editor.SetCursor(c.editor.GetCursor())
	}
	c.message = fmt.Sprintf("Replaced %d occurrence(s)", count)
}

func (c *Commander) performGoto() {
	text, ok := c.prompt("Go to line: ", "")
	if !ok || text == "" {
		return
	}
	line, err := strconv.Atoi(text)
	if err != nil {
		c.message = fmt.Sprintf("Not a line number: %s", text)
		return
	}
	c.editor.GotoLine(line)
	c.message = ""
}

func (c *Commander) performModeChange() {
	doc := c.editor.GetDocument()
	next := (doc.Mode() + 1) % 3
	if err := doc.SetMode(next); err != nil {
		c.message = err.Error()
		return
	}
	c.message = fmt.Sprintf("Mode: %s", next)
}

func (c *Commander) performCut() {
	text := c.editor.CurrentLine()
	if err := clipboard.WriteAll(text); err != nil {
		c.message = err.Error()
		return
	}
	c.editor.DeleteCurrentLine()
	c.message = ""
}

func (c *Commander) performCopy() {
	if err := clipboard.WriteAll(c.editor.CurrentLine()); err != nil {
		c.message = err.Error()
		return
	}
	c.message = ""
}

func (c *Commander) performPaste() {
	text, err := clipboard.ReadAll()
	if err != nil {
		c.message = err.Error()
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	c.editor.InsertText(text)
}

func (c *Commander) performTimeDate() {
	c.editor.InsertText(c.now().Format("2006-01-02 15:04"))
}

// ChooseSave implements the document's save chooser with a minibuffer
// prompt. Backing out reports ErrCancelled.
func (c *Commander) ChooseSave(suggested string) (string, error) {
	path, ok := c.prompt("Save as: ", suggested)
	if !ok || path == "" {
		return "", tpad.ErrCancelled
	}
	return path, nil
}

// confirmUnsaved gates any action that discards the current document. It
// reports true when the action may proceed: immediately for a clean
// document, otherwise only after the user picks Save (and it succeeds) or
// Don't Save.
func (c *Commander) confirmUnsaved() bool {
	doc := c.editor.GetDocument()
	if doc.CanClose() {
		return true
	}
	defer func() { c.promptLine = "" }()
	for {
		c.promptLine = "Save changes? (s)ave / (d)on't save / (c)ancel"
		c.term.Render(c.editor, c)
		event := c.term.GetNextEvent()
		if event == nil {
			return false
		}
		if event.Type != tpad.EventKey {
			continue
		}
		if event.Key == tpad.KeyEsc {
			return false
		}
		switch event.Ch {
		case 's', 'S', 'y', 'Y':
			c.promptLine = ""
			err := doc.Save()
			if err == nil {
				return true
			}
			if !errors.Is(err, tpad.ErrCancelled) {
				c.message = err.Error()
			}
			// a failed or cancelled save is treated as Cancel
			return false
		case 'd', 'D', 'n', 'N':
			return true
		case 'c', 'C':
			return false
		}
	}
}

// prompt reads a line of input in the message bar. It reports false when
// the user backs out with Esc.
func (c *Commander) prompt(label, initial string) (string, bool) {
	return c.promptLoop(label, initial, false)
}

// promptSearch is prompt with search extras: Tab toggles case sensitivity,
// and the arrow keys step through matches without closing the prompt.
func (c *Commander) promptSearch(label, initial string) (string, bool) {
	return c.promptLoop(label, initial, true)
}

func (c *Commander) promptLoop(label, initial string, search bool) (string, bool) {
	defer func() { c.promptLine = "" }()
	input := []rune(initial)
	for {
		caseTag := ""
		if search && c.matchCase {
			caseTag = "[case] "
		}
		c.promptLine = caseTag + label + string(input)
		c.term.Render(c.editor, c)
		event := c.term.GetNextEvent()
		if event == nil {
			return "", false
		}
		if event.Type != tpad.EventKey {
			continue
		}
		if event.Key != 0 {
			switch event.Key {
			case tpad.KeyEsc:
				return "", false
			case tpad.KeyEnter:
				return string(input), true
			case tpad.KeyBackspace2:
				if len(input) > 0 {
					input = input[:len(input)-1]
				}
			case tpad.KeySpace:
				input = append(input, ' ')
			case tpad.KeyTab:
				if search {
					c.matchCase = !c.matchCase
				}
			case tpad.KeyArrowDown:
				if search && len(input) > 0 {
					c.editor.FindNext(string(input), c.matchCase)
				}
			case tpad.KeyArrowUp:
				if search && len(input) > 0 {
					c.editor.FindPrevious(string(input), c.matchCase)
				}
			}
		}
		if event.Ch != 0 {
			input = append(input, event.Ch)
		}
	}
}
