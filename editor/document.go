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
	"errors"
	"strings"
	"unicode/utf8"

	tpad "github.com/mgrier/tpad/types"
)

// SuggestedName is the default filename offered by the save chooser for a
// document that has never been saved.
const SuggestedName = "Untitled.txt"

// ErrModeLocked reports a mode change attempted on a non-empty document.
var ErrModeLocked = errors.New("cannot change mode while the document has content")

// A Document pairs a Buffer with its file association, mode, and dirty
// state, and mediates every lifecycle transition. It is the only writer of
// the buffer apart from user edits, which its owner reports through
// NotifyEdited.
type Document struct {
	buffer    *Buffer
	path      string // empty until the document has been saved or opened
	suggested string // seeds the first save prompt after a failed open
	mode      tpad.Mode
	dirty     bool
	fs        tpad.FileSystem
	picker    tpad.Picker
}

func NewDocument(fs tpad.FileSystem) *Document {
	return &Document{
		buffer: NewBuffer(),
		mode:   tpad.ModePlain,
		fs:     fs,
	}
}

// SetPicker wires the chooser used by Save when the document has no path.
func (d *Document) SetPicker(p tpad.Picker) {
	d.picker = p
}

func (d *Document) Buffer() *Buffer {
	return d.buffer
}

func (d *Document) GetBuffer() tpad.Buffer {
	return d.buffer
}

func (d *Document) Path() string {
	return d.path
}

func (d *Document) Mode() tpad.Mode {
	return d.mode
}

// SetMode changes the document mode. Like the rest of mode handling this is
// label-only; it is refused once the document has content so that the tag
// always describes the whole text.
func (d *Document) SetMode(m tpad.Mode) error {
	if m == d.mode {
		return nil
	}
	if !d.buffer.IsEmpty() {
		return ErrModeLocked
	}
	d.mode = m
	return nil
}

func (d *Document) Dirty() bool {
	return d.dirty
}

// Reset discards the document and starts a new empty one. Callers must have
// satisfied the close-confirmation protocol first.
func (d *Document) Reset() {
	d.buffer = NewBuffer()
	d.path = ""
	d.suggested = ""
	d.mode = tpad.ModePlain
	d.dirty = false
}

// NotifyEdited records that the user changed the buffer content. Idempotent.
func (d *Document) NotifyEdited() {
	d.dirty = true
}

// Open reads path and replaces the document content. On any failure the
// document is left completely unmodified and the error is returned for the
// message bar. A path that does not exist yet is remembered as the
// suggestion for the first save prompt.
func (d *Document) Open(path string) error {
	text, err := d.fs.Read(path)
	if err != nil {
		var fe *tpad.FileError
		if errors.As(err, &fe) && fe.Kind == tpad.FileNotFound {
			d.suggested = path
		}
		return err
	}
	d.buffer.SetContent(text)
	d.path = path
	d.suggested = ""
	d.dirty = false
	return nil
}

// Save writes the buffer to the document's path. With no path it asks the
// picker for a destination and behaves as SaveAs; picker cancellation is
// returned as ErrCancelled with no state change.
func (d *Document) Save() error {
	if d.path == "" {
		if d.picker == nil {
			return tpad.ErrCancelled
		}
		suggested := d.suggested
		if suggested == "" {
			suggested = SuggestedName
		}
		path, err := d.picker.ChooseSave(suggested)
		if err != nil {
			return err
		}
		return d.SaveAs(path)
	}
	if err := d.fs.Write(d.path, d.buffer.Content()); err != nil {
		return err
	}
	d.dirty = false
	return nil
}

// SaveAs writes the buffer to path and adopts it on success. A failed write
// leaves path and dirty unchanged.
func (d *Document) SaveAs(path string) error {
	if err := d.fs.Write(path, d.buffer.Content()); err != nil {
		return err
	}
	d.path = path
	d.suggested = ""
	d.dirty = false
	return nil
}

// CanClose is the sole gate consulted before destroying the document.
func (d *Document) CanClose() bool {
	return !d.dirty
}

// ReplaceAll substitutes replacement for needle across the whole buffer and
// marks the document dirty only when something actually changed.
func (d *Document) ReplaceAll(needle, replacement string, caseSensitive bool) int {
	count := d.buffer.ReplaceAll(needle, replacement, caseSensitive)
	if count > 0 {
		d.dirty = true
	}
	return count
}

// Title is the window title line: name, dirty marker, and mode label.
func (d *Document) Title() string {
	name := d.path
	if name == "" {
		name = "Untitled"
	}
	title := "tpad - " + name
	if d.dirty {
		title += " *"
	}
	return title + " [" + d.mode.String() + "]"
}

// Stats reports the word and character counts shown in the status bar.
func (d *Document) Stats() (words int, chars int) {
	content := d.buffer.Content()
	return len(strings.Fields(content)), utf8.RuneCountInString(content)
}
