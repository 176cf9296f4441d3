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
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mgrier/tpad/commander"
	"github.com/mgrier/tpad/editor"
	"github.com/mgrier/tpad/file"
	"github.com/mgrier/tpad/screen"
	tpad "github.com/mgrier/tpad/types"
)

func main() {
	modeFlag := flag.String("mode", "plain", "editing mode: plain, markup, or rich")
	flag.Parse()

	mode, err := tpad.ParseMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// The document owns the text; the editor edits it.
	d := editor.NewDocument(file.New())
	d.SetMode(mode)
	e := editor.NewEditor(d)

	// The commander converts user inputs into commands for the editor.
	c := commander.NewCommander(e)
	d.SetPicker(c)

	// If a file was specified on the command line, read it. A failed open
	// still starts with an editable empty document.
	var startupMessage string
	if path := flag.Arg(0); path != "" {
		if err := d.Open(path); err != nil {
			startupMessage = err.Error()
		}
	}

	// Create a screen to manage display.
	s := screen.NewScreen()
	if s == nil {
		fmt.Fprintln(os.Stderr, "could not open the terminal")
		os.Exit(1)
	}
	defer s.Close()
	c.SetTerminal(s)
	c.SetMessage(startupMessage)

	// Open a log file; termbox owns the terminal from here on.
	f, err := os.OpenFile(os.Getenv("HOME")+"/.tpadlog", os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
	if err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	// Run the main event loop.
	for c.IsRunning() {
		s.Render(e, c)
		err = c.ProcessEvent(s.GetNextEvent())
		if err != nil {
			log.Output(1, err.Error())
		}
	}
}
