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

// Package patch parses unified diffs and applies them to text, forward or in reverse.
//
// Every hunk is located independently in the original input: first at the position declared in
// its header, then in a bounded window around it. Hunks that can't be located are rejected, their
// text is written to a reject sink and the remaining hunks are still applied.
package patch

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"xdiff.dev/diff"
	"xdiff.dev/diff/internal/lines"
)

var (
	// ErrMalformed is returned if a patch can't be parsed. The error is always a [*ParseError].
	ErrMalformed = errors.New("malformed patch")

	// ErrRejected is returned in strict mode if at least one hunk was rejected.
	ErrRejected = errors.New("hunk rejected")
)

// ParseError describes a syntax error in a patch.
type ParseError struct {
	Line int // Line number in the patch (1-based).
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed patch: line %d: %s", e.Line, e.Msg)
}

// Is makes errors.Is(err, ErrMalformed) work for all parse errors.
func (e *ParseError) Is(target error) bool { return target == ErrMalformed }

// Mode describes the direction in which a patch is applied.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Mode
type Mode int

const (
	Forward Mode = iota // Transform the original into the revised version.
	Reverse             // Transform the revised version back into the original.
)

// Line is a single line of a hunk body.
type Line struct {
	Op   diff.Op // Match for context lines.
	Text []byte  // The line without prefix, including the line terminator if there is one.
}

// Hunk is a single hunk of a unified diff.
type Hunk struct {
	OrigStart, OrigCount int // Range in the original as declared in the header.
	NewStart, NewCount   int // Range in the revised version as declared in the header.
	Lines                []Line
	Raw                  []byte // The hunk as it appears in the patch, including the header.
	LineNo               int    // Line number of the header in the patch (1-based).
}

// Patch is a parsed unified diff.
type Patch struct {
	Hunks []Hunk
}

// Parse parses a unified diff.
//
// Anything before the first hunk header (e.g., "diff", "index", "---", and "+++" lines) is
// ignored, as is anything after a complete hunk that doesn't start a new hunk. Omitted counts in a
// hunk header mean 1. A "\ No newline at end of file" line removes the terminator of the line
// before it.
//
// The returned patch aliases p.
func Parse(p []byte) (*Patch, error) {
	seq := lines.Split(p, lines.Options{})
	out := &Patch{}
	for i := 0; i < seq.Len(); {
		if !bytes.HasPrefix(seq.Line(i), []byte("@@ ")) {
			i++
			continue
		}
		h, next, err := parseHunk(seq, i)
		if err != nil {
			return nil, err
		}
		out.Hunks = append(out.Hunks, h)
		i = next
	}
	return out, nil
}

// parseHunk parses the hunk starting at line i and returns it together with the index of the
// first line after the hunk.
func parseHunk(seq *lines.Sequence, i int) (Hunk, int, error) {
	h := Hunk{LineNo: i + 1}
	var err error
	h.OrigStart, h.OrigCount, h.NewStart, h.NewCount, err = parseHeader(seq.Line(i))
	if err != nil {
		return Hunk{}, 0, &ParseError{Line: i + 1, Msg: err.Error()}
	}
	start := i
	i++

	orig, nw := h.OrigCount, h.NewCount
	for orig > 0 || nw > 0 || i < seq.Len() && isMissingNewline(seq.Line(i)) {
		if i >= seq.Len() {
			return Hunk{}, 0, &ParseError{Line: i + 1, Msg: "unexpected end of hunk"}
		}
		line := seq.Line(i)
		text := line[1:]
		var op diff.Op
		switch line[0] {
		case ' ':
			op = diff.Match
		case '\n', '\r':
			// Empty context line whose leading space was stripped by an editor or mail client.
			op = diff.Match
			text = line
		case '-':
			op = diff.Delete
		case '+':
			op = diff.Insert
		case '\\':
			if len(h.Lines) == 0 {
				return Hunk{}, 0, &ParseError{Line: i + 1, Msg: "no line before end of file marker"}
			}
			last := &h.Lines[len(h.Lines)-1]
			last.Text = lines.TrimTerminator(last.Text)
			i++
			continue
		default:
			return Hunk{}, 0, &ParseError{Line: i + 1, Msg: fmt.Sprintf("unexpected line prefix %q", line[0])}
		}
		if (op == diff.Match || op == diff.Delete) && orig == 0 || (op == diff.Match || op == diff.Insert) && nw == 0 {
			return Hunk{}, 0, &ParseError{Line: i + 1, Msg: "hunk is longer than declared in its header"}
		}
		if op != diff.Insert {
			orig--
		}
		if op != diff.Delete {
			nw--
		}
		h.Lines = append(h.Lines, Line{Op: op, Text: text})
		i++
	}
	h.Raw = seq.Lines(start, i)
	return h, i, nil
}

func isMissingNewline(line []byte) bool {
	return len(line) > 0 && line[0] == '\\'
}

// parseHeader parses a hunk header "@@ -l[,s] +l[,s] @@[ section]".
func parseHeader(line []byte) (origStart, origCount, newStart, newCount int, err error) {
	rest, ok := bytes.CutPrefix(lines.TrimTerminator(line), []byte("@@ -"))
	if !ok {
		return 0, 0, 0, 0, errors.New("invalid hunk header")
	}
	orig, rest, ok := bytes.Cut(rest, []byte(" +"))
	if !ok {
		return 0, 0, 0, 0, errors.New("invalid hunk header: missing new range")
	}
	nw, _, ok := bytes.Cut(rest, []byte(" @@"))
	if !ok {
		return 0, 0, 0, 0, errors.New("invalid hunk header: missing closing @@")
	}
	if origStart, origCount, err = parseRange(orig); err != nil {
		return 0, 0, 0, 0, err
	}
	if newStart, newCount, err = parseRange(nw); err != nil {
		return 0, 0, 0, 0, err
	}
	return origStart, origCount, newStart, newCount, nil
}

func parseRange(r []byte) (start, count int, err error) {
	s, c, hasCount := bytes.Cut(r, []byte{','})
	start, err = strconv.Atoi(string(s))
	if err != nil || start < 0 {
		return 0, 0, fmt.Errorf("invalid range %q", r)
	}
	count = 1
	if hasCount {
		count, err = strconv.Atoi(string(c))
		if err != nil || count < 0 {
			return 0, 0, fmt.Errorf("invalid range %q", r)
		}
	}
	if count > 0 && start == 0 {
		return 0, 0, fmt.Errorf("invalid range %q: non-empty range starts at line 0", r)
	}
	return start, count, nil
}

// image returns the lines a hunk expects in its input for the given mode, together with their
// declared position (0-based) and the op that marks lines only present in the output.
func (h *Hunk) image(mode Mode) (pre [][]byte, pos int, ins diff.Op) {
	del, ins := diff.Delete, diff.Insert
	start, count := h.OrigStart, h.OrigCount
	if mode == Reverse {
		del, ins = ins, del
		start, count = h.NewStart, h.NewCount
	}
	for _, l := range h.Lines {
		if l.Op == diff.Match || l.Op == del {
			pre = append(pre, l.Text)
		}
	}
	pos = start
	if count > 0 {
		pos--
	}
	return pre, pos, ins
}

// context returns the number of leading and trailing context lines of h.
func (h *Hunk) context() (leading, trailing int) {
	for leading < len(h.Lines) && h.Lines[leading].Op == diff.Match {
		leading++
	}
	if leading == len(h.Lines) {
		return leading, 0
	}
	for trailing < len(h.Lines) && h.Lines[len(h.Lines)-1-trailing].Op == diff.Match {
		trailing++
	}
	return leading, trailing
}
