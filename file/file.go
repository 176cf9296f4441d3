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
// Package file backs the document controller's FileSystem interface with
// the operating system, classifying failures into the FileError taxonomy.
package file

import (
	"bytes"
	"os"
	"unicode/utf8"

	tpad "github.com/mgrier/tpad/types"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

type FS struct{}

func New() *FS {
	return &FS{}
}

// Read returns the file's text. Content must be valid UTF-8; a leading
// byte-order mark is tolerated and stripped.
func (*FS) Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", classify(path, err)
	}
	b = bytes.TrimPrefix(b, utf8BOM)
	if !utf8.Valid(b) {
		return "", &tpad.FileError{Kind: tpad.FileInvalidEncoding, Path: path}
	}
	return string(b), nil
}

func (*FS) Write(path string, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return classify(path, err)
	}
	return nil
}

func classify(path string, err error) error {
	kind := tpad.FileIoFailure
	switch {
	case os.IsNotExist(err):
		kind = tpad.FileNotFound
	case os.IsPermission(err):
		kind = tpad.FilePermissionDenied
	}
	return &tpad.FileError{Kind: kind, Path: path, Err: err}
}
