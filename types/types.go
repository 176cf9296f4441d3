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
package types

import (
	"errors"
	"fmt"
)

// Document modes. Only Plain has behavior of its own; Markup and Rich are
// carried as labels for a future rendering layer.
type Mode int

const (
	ModePlain Mode = iota
	ModeMarkup
	ModeRich
)

func (m Mode) String() string {
	switch m {
	case ModeMarkup:
		return "Markdown"
	case ModeRich:
		return "Rich Text"
	default:
		return "Plain Text"
	}
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "plain":
		return ModePlain, nil
	case "markup":
		return ModeMarkup, nil
	case "rich":
		return ModeRich, nil
	}
	return ModePlain, fmt.Errorf("unknown mode %q", s)
}

// Move directions
const (
	MoveUp = iota
	MoveDown
	MoveRight
	MoveLeft
)

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}

// Event types
const (
	EventKey = iota
	EventResize
)

type Key int

const (
	KeyUnsupported Key = iota
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyBackspace2
	KeyDelete
	KeyEnd
	KeyEnter
	KeyEsc
	KeyF5
	KeyHome
	KeyPgdn
	KeyPgup
	KeySpace
	KeyTab
	KeyCtrlA
	KeyCtrlC
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlN
	KeyCtrlO
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlV
	KeyCtrlX
)

type Event struct {
	Type int
	Key  Key
	Ch   rune
}

// FileError kinds
type FileErrorKind int

const (
	FileNotFound FileErrorKind = iota
	FilePermissionDenied
	FileInvalidEncoding
	FileIoFailure
)

func (k FileErrorKind) String() string {
	switch k {
	case FileNotFound:
		return "not found"
	case FilePermissionDenied:
		return "permission denied"
	case FileInvalidEncoding:
		return "invalid encoding"
	default:
		return "i/o failure"
	}
}

// A FileError reports a failed read or write with enough detail for the
// message bar. The underlying error is preserved for errors.Is/As.
type FileError struct {
	Kind FileErrorKind
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Kind)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ErrCancelled reports that the user backed out of a chooser or prompt.
// It is an expected outcome, not a fault, and is never shown as an error.
var ErrCancelled = errors.New("cancelled")

// The FileSystem is the document controller's only route to storage.
type FileSystem interface {
	Read(path string) (string, error)
	Write(path string, text string) error
}

// A Picker obtains a destination path for a document that has never been
// saved. It returns ErrCancelled when the user backs out.
type Picker interface {
	ChooseSave(suggested string) (string, error)
}

type Buffer interface {
	RowCount() int
	RowText(i int) string
}

type Document interface {
	GetBuffer() Buffer
	Reset()
	NotifyEdited()
	Open(path string) error
	Save() error
	SaveAs(path string) error
	CanClose() bool
	ReplaceAll(needle string, replacement string, caseSensitive bool) int
	Path() string
	Mode() Mode
	SetMode(m Mode) error
	Dirty() bool
	Title() string
	Stats() (words int, chars int)
}

type Editor interface {
	GetDocument() Document
	GetCursor() Point
	SetCursor(cursor Point)
	SetSize(size Size)
	GetOffset() Size
	Scroll()

	MoveCursor(direction int)
	MoveToBeginningOfLine()
	MoveToEndOfLine()
	PageUp()
	PageDown()
	GotoLine(line int)

	InsertChar(c rune)
	InsertText(text string)
	BackspaceChar()
	DeleteChar()
	CurrentLine() string
	DeleteCurrentLine() string

	FindNext(term string, caseSensitive bool) bool
	FindPrevious(term string, caseSensitive bool) bool
}

type Commander interface {
	GetMessage() string
	GetPrompt() string
}

// A Terminal produces input events and repaints the display. The commander
// drives it directly while a prompt is active.
type Terminal interface {
	Render(e Editor, c Commander)
	GetNextEvent() *Event
}
