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
	"testing"
	"time"

	"github.com/mgrier/tpad/editor"
	tpad "github.com/mgrier/tpad/types"
)

type fakeFS struct {
	files    map[string]string
	writeErr error
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: make(map[string]string)}
}

func (f *fakeFS) Read(path string) (string, error) {
	text, ok := f.files[path]
	if !ok {
		return "", &tpad.FileError{Kind: tpad.FileNotFound, Path: path}
	}
	return text, nil
}

func (f *fakeFS) Write(path string, text string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.files[path] = text
	return nil
}

// scriptTerminal feeds a fixed sequence of events and renders nowhere.
type scriptTerminal struct {
	events []tpad.Event
}

func (s *scriptTerminal) Render(e tpad.Editor, c tpad.Commander) {}

func (s *scriptTerminal) GetNextEvent() *tpad.Event {
	if len(s.events) == 0 {
		return nil
	}
	event := s.events[0]
	s.events = s.events[1:]
	return &event
}

func keyEvent(k tpad.Key) tpad.Event {
	return tpad.Event{Type: tpad.EventKey, Key: k}
}

func chEvent(ch rune) tpad.Event {
	return tpad.Event{Type: tpad.EventKey, Ch: ch}
}

func setup(fs *fakeFS, events ...tpad.Event) (*Commander, *editor.Document) {
	d := editor.NewDocument(fs)
	e := editor.NewEditor(d)
	c := NewCommander(e)
	d.SetPicker(c)
	c.SetTerminal(&scriptTerminal{events: events})
	return c, d
}

func TestTypingMarksDirty(t *testing.T) {
	c, d := setup(newFakeFS())
	c.ProcessEvent(&tpad.Event{Type: tpad.EventKey, Ch: 'h'})
	c.ProcessEvent(&tpad.Event{Type: tpad.EventKey, Ch: 'i'})
	if got := d.Buffer().Content(); got != "hi" {
		t.Fatalf("content=%q", got)
	}
	if !d.Dirty() {
		t.Fatalf("typing should mark the document dirty")
	}
}

func TestCloseCleanDocumentProceeds(t *testing.T) {
	c, _ := setup(newFakeFS())
	c.RequestClose()
	if c.IsRunning() {
		t.Fatalf("clean document should close immediately")
	}
}

func TestCloseCancelKeepsEverything(t *testing.T) {
	fs := newFakeFS()
	c, d := setup(fs, chEvent('c'))
	d.Buffer().SetContent("unsaved")
	d.NotifyEdited()

	c.RequestClose()
	if !c.IsRunning() {
		t.Fatalf("cancel must not close")
	}
	if !d.Dirty() {
		t.Fatalf("cancel must not touch the dirty flag")
	}
	if len(fs.files) != 0 {
		t.Fatalf("cancel must not write files")
	}
}

func TestCloseDontSaveProceedsWithoutWriting(t *testing.T) {
	fs := newFakeFS()
	c, d := setup(fs, chEvent('d'))
	d.Buffer().SetContent("unsaved")
	d.NotifyEdited()

	c.RequestClose()
	if c.IsRunning() {
		t.Fatalf("don't save should close")
	}
	if len(fs.files) != 0 {
		t.Fatalf("don't save must not write files")
	}
}

func TestCloseSaveWithPathProceeds(t *testing.T) {
	fs := newFakeFS()
	c, d := setup(fs, chEvent('s'))
	if err := d.SaveAs("a.txt"); err != nil {
		t.Fatalf("save as failed: %v", err)
	}
	d.Buffer().SetContent("edited")
	d.NotifyEdited()

	c.RequestClose()
	if c.IsRunning() {
		t.Fatalf("successful save should close")
	}
	if fs.files["a.txt"] != "edited" {
		t.Fatalf("saved content=%q", fs.files["a.txt"])
	}
}

func TestCloseSaveWithoutPathPromptsAndProceeds(t *testing.T) {
	fs := newFakeFS()
	// pick Save, then accept the suggested Untitled.txt in the prompt
	c, d := setup(fs, chEvent('s'), keyEvent(tpad.KeyEnter))
	d.Buffer().SetContent("fresh")
	d.NotifyEdited()

	c.RequestClose()
	if c.IsRunning() {
		t.Fatalf("save-as during close should close on success")
	}
	if fs.files[editor.SuggestedName] != "fresh" {
		t.Fatalf("saved content=%q", fs.files[editor.SuggestedName])
	}
}

func TestCloseSaveCancelledInChooserStaysOpen(t *testing.T) {
	fs := newFakeFS()
	// pick Save, then Esc out of the filename prompt
	c, d := setup(fs, chEvent('s'), keyEvent(tpad.KeyEsc))
	d.Buffer().SetContent("fresh")
	d.NotifyEdited()

	c.RequestClose()
	if !c.IsRunning() {
		t.Fatalf("cancelled chooser must cancel the close")
	}
	if !d.Dirty() || len(fs.files) != 0 {
		t.Fatalf("cancelled chooser changed state")
	}
	if c.GetMessage() != "" {
		t.Fatalf("cancellation is not an error, got message %q", c.GetMessage())
	}
}

func TestCloseSaveFailureStaysOpenAndSurfaces(t *testing.T) {
	fs := newFakeFS()
	c, d := setup(fs, chEvent('s'))
	if err := d.SaveAs("a.txt"); err != nil {
		t.Fatalf("save as failed: %v", err)
	}
	d.NotifyEdited()
	fs.writeErr = &tpad.FileError{Kind: tpad.FileIoFailure, Path: "a.txt"}

	c.RequestClose()
	if !c.IsRunning() {
		t.Fatalf("failed save must cancel the close")
	}
	if c.GetMessage() == "" {
		t.Fatalf("failed save must surface a message")
	}
	if !d.Dirty() {
		t.Fatalf("failed save must leave dirty set")
	}
}

func TestCloseIsReentrant(t *testing.T) {
	fs := newFakeFS()
	c, d := setup(fs, chEvent('c'), chEvent('d'))
	d.NotifyEdited()

	c.RequestClose()
	if !c.IsRunning() {
		t.Fatalf("first attempt was cancelled, should stay open")
	}
	c.RequestClose()
	if c.IsRunning() {
		t.Fatalf("second attempt chose don't save, should close")
	}
}

func TestOpenCommandLoadsFile(t *testing.T) {
	fs := newFakeFS()
	fs.files["a.txt"] = "from disk"
	c, d := setup(fs,
		chEvent('a'), chEvent('.'), chEvent('t'), chEvent('x'), chEvent('t'),
		keyEvent(tpad.KeyEnter))

	c.ProcessEvent(&tpad.Event{Type: tpad.EventKey, Key: tpad.KeyCtrlO})
	if got := d.Buffer().Content(); got != "from disk" {
		t.Fatalf("content=%q", got)
	}
	if d.Path() != "a.txt" || d.Dirty() {
		t.Fatalf("open state: path=%q dirty=%v", d.Path(), d.Dirty())
	}
}

func TestOpenFailureSurfacesAndKeepsDocument(t *testing.T) {
	fs := newFakeFS()
	c, d := setup(fs,
		chEvent('g'), chEvent('o'), chEvent('n'), chEvent('e'),
		keyEvent(tpad.KeyEnter))

	c.ProcessEvent(&tpad.Event{Type: tpad.EventKey, Key: tpad.KeyCtrlO})
	if c.GetMessage() == "" {
		t.Fatalf("failed open must surface a message")
	}
	if d.Path() != "" || d.Dirty() || d.Buffer().Content() != "" {
		t.Fatalf("failed open disturbed the document")
	}
}

func TestReplaceCommand(t *testing.T) {
	fs := newFakeFS()
	c, d := setup(fs,
		// Replace: old<Enter>  With: new<Enter>
		chEvent('o'), chEvent('l'), chEvent('d'), keyEvent(tpad.KeyEnter),
		chEvent('n'), chEvent('e'), chEvent('w'), keyEvent(tpad.KeyEnter))
	d.Buffer().SetContent("old old")

	c.ProcessEvent(&tpad.Event{Type: tpad.EventKey, Key: tpad.KeyCtrlR})
	if got := d.Buffer().Content(); got != "new new" {
		t.Fatalf("content=%q", got)
	}
	if !d.Dirty() {
		t.Fatalf("replace must mark dirty")
	}
	if c.GetMessage() != "Replaced 2 occurrence(s)" {
		t.Fatalf("message=%q", c.GetMessage())
	}
}

func TestReplaceKeepsCursorInsideShrunkenRow(t *testing.T) {
	fs := newFakeFS()
	c, d := setup(fs,
		chEvent('h'), chEvent('e'), chEvent('l'), chEvent('l'), chEvent('o'),
		keyEvent(tpad.KeyEnter),
		chEvent('h'), chEvent('i'), keyEvent(tpad.KeyEnter))
	d.Buffer().SetContent("hello hello")
	c.editor.SetCursor(tpad.Point{Row: 0, Col: 11})

	c.ProcessEvent(&tpad.Event{Type: tpad.EventKey, Key: tpad.KeyCtrlR})
	if got := d.Buffer().Content(); got != "hi hi" {
		t.Fatalf("content=%q", got)
	}
	if col := c.editor.GetCursor().Col; col > 5 {
		t.Fatalf("cursor col=%d, want at most 5", col)
	}
}

func TestTimeDateInsertsStampAtCursor(t *testing.T) {
	c, d := setup(newFakeFS())
	c.now = func() time.Time {
		return time.Date(2026, time.August, 31, 9, 5, 0, 0, time.UTC)
	}

	c.ProcessEvent(&tpad.Event{Type: tpad.EventKey, Key: tpad.KeyF5})
	if got := d.Buffer().Content(); got != "2026-08-31 09:05" {
		t.Fatalf("content=%q", got)
	}
	if !d.Dirty() {
		t.Fatalf("inserting the stamp must mark dirty")
	}
}

func TestNewCommandGoesThroughConfirmation(t *testing.T) {
	fs := newFakeFS()
	c, d := setup(fs, chEvent('d'))
	d.Buffer().SetContent("unsaved")
	d.NotifyEdited()

	c.ProcessEvent(&tpad.Event{Type: tpad.EventKey, Key: tpad.KeyCtrlN})
	if d.Dirty() || d.Buffer().Content() != "" {
		t.Fatalf("new document not reset: dirty=%v content=%q",
			d.Dirty(), d.Buffer().Content())
	}
	if !c.IsRunning() {
		t.Fatalf("new must not stop the editor")
	}
}
