// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package benchmarks

import (
	"bytes"
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Baseline is another line diff implementation. Changed returns the number of deleted and
// inserted lines it reports.
type Baseline struct {
	Name    string
	Changed func(x, y []byte) int
}

var Baselines = []Baseline{
	{"go-internal", func(x, y []byte) int {
		return ChangedLines(gointernal.Diff("x", x, "y", y))
	}},
	{"udiff", func(x, y []byte) int {
		return ChangedLines([]byte(udiff.Unified("x", "y", string(x), string(y))))
	}},
	{"godebug", func(x, y []byte) int {
		return ChangedLines([]byte(godebug.Diff(string(x), string(y))))
	}},
	{"diffmatchpatch", func(x, y []byte) int {
		dmp := diffmatchpatch.New()
		rx, ry, lines := dmp.DiffLinesToRunes(string(x), string(y))
		n := 0
		for _, d := range dmp.DiffCharsToLines(dmp.DiffMainRunes(rx, ry, false), lines) {
			if d.Type != diffmatchpatch.DiffEqual {
				n += strings.Count(d.Text, "\n")
			}
		}
		return n
	}},
	{"mb0", func(x, y []byte) int {
		d := lineData{bytes.SplitAfter(x, []byte("\n")), bytes.SplitAfter(y, []byte("\n"))}
		n := 0
		for _, c := range mb0.Diff(len(d.x), len(d.y), d) {
			n += c.Del + c.Ins
		}
		return n
	}},
}

type lineData struct{ x, y [][]byte }

func (d lineData) Equal(i, j int) bool { return bytes.Equal(d.x[i], d.y[j]) }

// ChangedLines counts the lines of a diff that start with "-" or "+", not counting file headers.
func ChangedLines(diff []byte) int {
	n := 0
	for line := range bytes.Lines(diff) {
		if bytes.HasPrefix(line, []byte("--- ")) || bytes.HasPrefix(line, []byte("+++ ")) {
			continue
		}
		if len(line) > 0 && (line[0] == '-' || line[0] == '+') {
			n++
		}
	}
	return n
}
