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
	"iter"
	"unicode"
)

// A Match locates one occurrence of a search term. Start and Length count
// runes in the buffer content at scan time; any later mutation invalidates
// the match.
type Match struct {
	Start  int
	Length int
}

// runesEqual compares a rune of content against a rune of the needle,
// folding both through Unicode case folding when insensitive. Folding is
// per-rune, so match offsets and lengths stay stable.
func runesEqual(a, b rune, caseSensitive bool) bool {
	if a == b {
		return true
	}
	if caseSensitive {
		return false
	}
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// Matches scans the content left to right and yields every non-overlapping
// occurrence of needle. The sequence is lazy and finite; ranging over it
// again restarts the scan. An empty needle never matches.
func (b *Buffer) Matches(needle string, caseSensitive bool) iter.Seq[Match] {
	pattern := []rune(needle)
	return func(yield func(Match) bool) {
		if len(pattern) == 0 {
			return
		}
		content := []rune(b.Content())
		for i := 0; i+len(pattern) <= len(content); {
			matched := true
			for j, p := range pattern {
				if !runesEqual(content[i+j], p, caseSensitive) {
					matched = false
					break
				}
			}
			if !matched {
				i++
				continue
			}
			if !yield(Match{Start: i, Length: len(pattern)}) {
				return
			}
			i += len(pattern)
		}
	}
}

// FindAll collects every match of needle in order.
func (b *Buffer) FindAll(needle string, caseSensitive bool) []Match {
	var matches []Match
	for m := range b.Matches(needle, caseSensitive) {
		matches = append(matches, m)
	}
	return matches
}

// ReplaceAll substitutes replacement for every occurrence of needle and
// returns the number of substitutions. Matches are computed once against
// the pre-replacement content, so a replacement containing the needle is
// never rescanned. With no matches the buffer is left untouched.
func (b *Buffer) ReplaceAll(needle, replacement string, caseSensitive bool) int {
	matches := b.FindAll(needle, caseSensitive)
	if len(matches) == 0 {
		return 0
	}
	content := []rune(b.Content())
	repl := []rune(replacement)
	rebuilt := make([]rune, 0, len(content))
	prev := 0
	for _, m := range matches {
		rebuilt = append(rebuilt, content[prev:m.Start]...)
		rebuilt = append(rebuilt, repl...)
		prev = m.Start + m.Length
	}
	rebuilt = append(rebuilt, content[prev:]...)
	b.SetContent(string(rebuilt))
	return len(matches)
}
