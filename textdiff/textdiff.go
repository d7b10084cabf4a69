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

// Package textdiff provides functions to efficiently compare text line by line.
//
// Lines are terminated by LF, CRLF, or CR. The terminator is part of the line, so two lines that
// only differ in their terminator are different unless [IgnoreWhitespace] is used.
package textdiff

import (
	"slices"
	"strconv"

	"xdiff.dev/diff"
	"xdiff.dev/diff/internal/byteview"
	"xdiff.dev/diff/internal/config"
	"xdiff.dev/diff/internal/linediff"
	"xdiff.dev/diff/internal/lines"
	"xdiff.dev/diff/internal/rvecs"
)

const (
	prefixMatch  = " "
	prefixDelete = "-"
	prefixInsert = "+"
)

// MissingNewline is the marker that follows a line without terminator in a unified diff.
const MissingNewline = "\\ No newline at end of file"

const colorReset = "\033[0m"

const (
	compareFlags = config.Minimal | config.Fast | config.IndentHeuristic | config.IgnoreWhitespace | config.NormalizeUnicode
	hunksFlags   = config.Context | compareFlags
	unifiedFlags = hunksFlags | config.Colors
)

// Edit describes a single edit of a line-by-line diff.
type Edit[T string | []byte] struct {
	Op      diff.Op
	LineNoX int // Line number in x (0-based), -1 for insertions.
	LineNoY int // Line number in y (0-based), -1 for deletions.
	Line    T   // The line, including the line terminator. For matches, the line from x.
}

// Hunk describes a sequence of consecutive edits.
type Hunk[T string | []byte] struct {
	LineNoX, EndLineNoX int       // Start and end line in x (0-based, exclusive end).
	LineNoY, EndLineNoY int       // Start and end line in y (0-based, exclusive end).
	Edits               []Edit[T] // Edits to transform x lines LineNoX..EndLineNoX to y lines LineNoY..EndLineNoY.
}

// Unified compares the lines in x and y and returns the changes necessary to convert from one to
// the other in unified format.
//
// Every hunk starts with a header "@@ -l,s +l,s @@" where l is the 1-based line number of the
// first line and s is the number of lines in the hunk. For an empty range, l is the line before
// the range (0 if the range is at the beginning). A line without terminator is followed by
// "\ No newline at end of file". If x and y are identical, the output is empty.
//
// The following options are supported: [diff.Context], [diff.Minimal], [diff.Fast],
// [textdiff.IndentHeuristic], [textdiff.IgnoreWhitespace], [textdiff.NormalizeUnicode],
// [textdiff.TerminalColors]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Unified[T string | []byte](x, y T, opts ...diff.Option) T {
	cfg := config.FromOptions(opts, unifiedFlags)
	xs := linediff.Split(byteview.Bytes(x), cfg)
	ys := linediff.Split(byteview.Bytes(y), cfg)
	rx, ry := linediff.Diff(xs, ys, cfg)

	var b byteview.Builder[T]
	for h := range rvecs.Hunks(rx, ry, cfg) {
		writeHunk(&b, xs, ys, rx, ry, h, cfg.Colors)
	}
	return b.Build()
}

func writeHunk[T string | []byte](b *byteview.Builder[T], xs, ys *lines.Sequence, rx, ry []bool, h rvecs.Hunk, colors *config.ColorConfig) {
	var cc config.ColorConfig
	if colors != nil {
		cc = *colors
	}

	if cc.HunkHeader != "" {
		b.WriteString(cc.HunkHeader)
	}
	b.WriteString("@@ -")
	writeRange(b, h.S0, h.S1)
	b.WriteString(" +")
	writeRange(b, h.T0, h.T1)
	b.WriteString(" @@")
	if cc.HunkHeader != "" {
		b.WriteString(colorReset)
	}
	b.WriteString("\n")

	for s, t := h.S0, h.T0; s < h.S1 || t < h.T1; {
		for s < h.S1 && rx[s] {
			writeLine(b, cc.Delete, prefixDelete, xs.Line(s))
			s++
		}
		for t < h.T1 && ry[t] {
			writeLine(b, cc.Insert, prefixInsert, ys.Line(t))
			t++
		}
		for s < h.S1 && t < h.T1 && !rx[s] && !ry[t] {
			writeLine(b, cc.Match, prefixMatch, xs.Line(s))
			s++
			t++
		}
	}
}

// writeRange writes a hunk range in the format "l,s". Following GNU diff, an empty range names the
// line before it.
func writeRange[T string | []byte](b *byteview.Builder[T], start, end int) {
	n := end - start
	if n > 0 {
		start++
	}
	b.WriteString(strconv.Itoa(start))
	b.WriteString(",")
	b.WriteString(strconv.Itoa(n))
}

func writeLine[T string | []byte](b *byteview.Builder[T], color, prefix string, line []byte) {
	content := lines.TrimTerminator(line)
	eol := line[len(content):]
	if color != "" {
		b.WriteString(color)
	}
	b.WriteString(prefix)
	b.Write(content)
	if color != "" {
		b.WriteString(colorReset)
	}
	if len(eol) == 0 {
		b.WriteString("\n" + MissingNewline + "\n")
	} else {
		b.Write(eol)
	}
}

// Hunks compares the lines in x and y and returns the changes necessary to convert from one to the
// other.
//
// The output is a sequence of hunks. A hunk represents a contiguous block of changes (insertions
// and deletions) along with some surrounding context. The amount of context can be configured using
// [diff.Context].
//
// If x and y are identical, the output has length zero.
//
// The following options are supported: [diff.Context], [diff.Minimal], [diff.Fast],
// [textdiff.IndentHeuristic], [textdiff.IgnoreWhitespace], [textdiff.NormalizeUnicode]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Hunks[T string | []byte](x, y T, opts ...diff.Option) []Hunk[T] {
	cfg := config.FromOptions(opts, hunksFlags)
	xs := linediff.Split(byteview.Bytes(x), cfg)
	ys := linediff.Split(byteview.Bytes(y), cfg)
	rx, ry := linediff.Diff(xs, ys, cfg)

	var nhunks, nedits int
	for hunk := range rvecs.Hunks(rx, ry, cfg) {
		nhunks++
		nedits += hunk.Edits
	}
	if nhunks == 0 {
		return nil
	}

	eout := make([]Edit[T], 0, nedits)
	hout := make([]Hunk[T], 0, nhunks)
	for hunk := range rvecs.Hunks(rx, ry, cfg) {
		eout = appendEdits(eout, xs, ys, rx, ry, hunk.S0, hunk.S1, hunk.T0, hunk.T1)
		hout = append(hout, Hunk[T]{
			LineNoX:    hunk.S0,
			EndLineNoX: hunk.S1,
			LineNoY:    hunk.T0,
			EndLineNoY: hunk.T1,
			Edits:      slices.Clip(eout),
		})
		eout = eout[len(eout):]
	}
	return hout
}

// Edits compares the lines in x and y and returns the changes necessary to convert from one to the
// other.
//
// Edits returns one edit for every line in the input. If x and y are identical, the output will
// consist of a match edit for every line.
//
// The following options are supported: [diff.Minimal], [diff.Fast], [textdiff.IndentHeuristic],
// [textdiff.IgnoreWhitespace], [textdiff.NormalizeUnicode]
//
// Important: The output is not guaranteed to be stable and may change with minor version upgrades.
// DO NOT rely on the output being stable.
func Edits[T string | []byte](x, y T, opts ...diff.Option) []Edit[T] {
	cfg := config.FromOptions(opts, compareFlags)
	xs := linediff.Split(byteview.Bytes(x), cfg)
	ys := linediff.Split(byteview.Bytes(y), cfg)
	rx, ry := linediff.Diff(xs, ys, cfg)
	if xs.Len() == 0 && ys.Len() == 0 {
		return nil
	}
	return appendEdits(make([]Edit[T], 0, xs.Len()+ys.Len()), xs, ys, rx, ry, 0, xs.Len(), 0, ys.Len())
}

func appendEdits[T string | []byte](eout []Edit[T], xs, ys *lines.Sequence, rx, ry []bool, s0, s1, t0, t1 int) []Edit[T] {
	for s, t := s0, t0; s < s1 || t < t1; {
		for s < s1 && rx[s] {
			eout = append(eout, Edit[T]{diff.Delete, s, -1, byteview.To[T](xs.Line(s))})
			s++
		}
		for t < t1 && ry[t] {
			eout = append(eout, Edit[T]{diff.Insert, -1, t, byteview.To[T](ys.Line(t))})
			t++
		}
		for s < s1 && t < t1 && !rx[s] && !ry[t] {
			eout = append(eout, Edit[T]{diff.Match, s, t, byteview.To[T](xs.Line(s))})
			s++
			t++
		}
	}
	return eout
}
