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

// Package merge performs line based three-way merges.
//
// Both derived versions, mine and theirs, are compared to their common base. Regions of the base
// that only one side changed take that side's version. Regions that both sides changed in the same
// way are taken once. All other regions that both sides changed are conflicts.
package merge

import (
	"bytes"
	"cmp"
	"io"
	"slices"

	"xdiff.dev/diff"
	"xdiff.dev/diff/internal/config"
	"xdiff.dev/diff/internal/linediff"
	"xdiff.dev/diff/internal/lines"
	"xdiff.dev/diff/internal/rvecs"
)

const mergeFlags = config.Minimal | config.Fast | config.IndentHeuristic | config.IgnoreWhitespace | config.NormalizeUnicode | config.Labels | config.ShowBase

// Conflict markers.
const (
	MarkerMine   = "<<<<<<<"
	MarkerBase   = "|||||||"
	MarkerSep    = "======="
	MarkerTheirs = ">>>>>>>"
)

// Kind describes where the content of a merged block comes from.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind
type Kind int

const (
	Unchanged  Kind = iota // Neither side changed the region, the content is taken from base.
	FromMine               // Only mine changed the region.
	FromTheirs             // Only theirs changed the region.
	Both                   // Both sides changed the region in the same way.
	Conflict               // Both sides changed the region in different ways.
)

// Range is a range of lines (0-based, exclusive end).
type Range struct {
	Start, End int
}

// Len returns the number of lines in r.
func (r Range) Len() int { return r.End - r.Start }

// Block is a region of the merge result.
//
// The ranges describe the lines the block covers in each input, the texts are the corresponding
// bytes. The texts alias the inputs passed to [Merge].
type Block struct {
	Kind                           Kind
	Base, Mine, Theirs             Range
	BaseText, MineText, TheirsText []byte
}

// Text returns the merged content of a block that isn't a conflict. For conflicts, it returns
// nil.
func (b *Block) Text() []byte {
	switch b.Kind {
	case Unchanged:
		return b.BaseText
	case FromMine, Both:
		return b.MineText
	case FromTheirs:
		return b.TheirsText
	default:
		return nil
	}
}

// Result is the result of a three-way merge.
type Result struct {
	Blocks    []Block // Blocks in order, covering all inputs without gaps.
	Conflicts int     // Number of conflict blocks.

	mineLabel, baseLabel, theirsLabel string
	showBase                          bool
}

// Merge merges the changes that lead from base to mine and from base to theirs.
//
// Overlapping or touching changes from both sides are combined into a single region spanning all
// of them. Such a region is a conflict unless both sides produced identical lines for it. In
// particular, insertions by both sides at the same position conflict unless they are identical.
//
// The following options are supported: [diff.Minimal], [diff.Fast], [textdiff.IndentHeuristic],
// [textdiff.IgnoreWhitespace], [textdiff.NormalizeUnicode], [merge.Labels], [merge.ShowBase]
func Merge(base, mine, theirs []byte, opts ...diff.Option) *Result {
	cfg := config.FromOptions(opts, mergeFlags)
	o := linediff.Split(base, cfg)
	a := linediff.Split(mine, cfg)
	b := linediff.Split(theirs, cfg)

	var changes []change
	changes = appendChanges(changes, o, a, sideMine, cfg)
	changes = appendChanges(changes, o, b, sideTheirs, cfg)
	slices.SortStableFunc(changes, func(x, y change) int { return cmp.Compare(x.S0, y.S0) })

	res := &Result{
		mineLabel:   cfg.MineLabel,
		baseLabel:   cfg.BaseLabel,
		theirsLabel: cfg.TheirsLabel,
		showBase:    cfg.ShowBase,
	}
	m := merger{o: o, a: a, b: b, res: res}
	for i := 0; i < len(changes); {
		// Collect all changes that overlap or touch the current region of base.
		lo, hi := changes[i].S0, changes[i].S1
		j := i + 1
		for j < len(changes) && changes[j].S0 <= hi {
			hi = max(hi, changes[j].S1)
			j++
		}
		m.unchanged(lo)
		m.region(changes[i:j], lo, hi)
		i = j
	}
	m.unchanged(o.Len())
	return res
}

type side int

const (
	sideMine side = iota
	sideTheirs
)

// change is a replacement of base lines S0..S1 by lines T0..T1 of one side.
type change struct {
	rvecs.Hunk
	side side
}

func appendChanges(changes []change, o, x *lines.Sequence, s side, cfg config.Config) []change {
	rx, ry := linediff.Diff(o, x, cfg)
	for h := range rvecs.Changes(rx, ry) {
		changes = append(changes, change{h, s})
	}
	return changes
}

type merger struct {
	o, a, b *lines.Sequence
	res     *Result
	pos     int // Number of base lines processed.
	da, db  int // Difference between line numbers in mine and theirs and line numbers in base.
}

// unchanged emits an unchanged block for base lines pos..end.
func (m *merger) unchanged(end int) {
	if end == m.pos {
		return
	}
	m.emit(Unchanged, Range{m.pos, end}, Range{m.pos + m.da, end + m.da}, Range{m.pos + m.db, end + m.db})
	m.pos = end
}

// region emits a block for base lines lo..hi, which are changed by the given changes.
func (m *merger) region(changes []change, lo, hi int) {
	ra := Range{lo + m.da, hi + m.da}
	rb := Range{lo + m.db, hi + m.db}
	var mineChanged, theirsChanged bool
	for _, c := range changes {
		// Changes of one side never overlap, the last one determines the end of the region.
		switch c.side {
		case sideMine:
			ra.End = c.T1 + hi - c.S1
			mineChanged = true
		case sideTheirs:
			rb.End = c.T1 + hi - c.S1
			theirsChanged = true
		}
	}

	var kind Kind
	switch {
	case !theirsChanged:
		kind = FromMine
	case !mineChanged:
		kind = FromTheirs
	case m.equal(ra, rb):
		kind = Both
	default:
		kind = Conflict
		m.res.Conflicts++
	}
	m.emit(kind, Range{lo, hi}, ra, rb)
	m.pos = hi
	m.da = ra.End - hi
	m.db = rb.End - hi
}

func (m *merger) equal(ra, rb Range) bool {
	if ra.Len() != rb.Len() {
		return false
	}
	for i := range ra.Len() {
		if !lines.Equal(m.a, ra.Start+i, m.b, rb.Start+i) {
			return false
		}
	}
	return true
}

func (m *merger) emit(kind Kind, ro, ra, rb Range) {
	m.res.Blocks = append(m.res.Blocks, Block{
		Kind:       kind,
		Base:       ro,
		Mine:       ra,
		Theirs:     rb,
		BaseText:   m.o.Lines(ro.Start, ro.End),
		MineText:   m.a.Lines(ra.Start, ra.End),
		TheirsText: m.b.Lines(rb.Start, rb.End),
	})
}

// Bytes renders the merge result. Conflicts are enclosed in conflict markers:
//
//	<<<<<<< mine
//	lines from mine
//	||||||| base
//	lines from base (only with [ShowBase])
//	=======
//	lines from theirs
//	>>>>>>> theirs
//
// A conflict section that doesn't end in a line terminator gets one, so that markers are always on
// their own line.
func (r *Result) Bytes() []byte {
	var buf bytes.Buffer
	r.WriteTo(&buf) // Writing to a bytes.Buffer never fails.
	return buf.Bytes()
}

// WriteTo writes the rendered merge result to w. See [Result.Bytes] for the format.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	ew := &errWriter{w: w}
	for i := range r.Blocks {
		blk := &r.Blocks[i]
		if blk.Kind != Conflict {
			ew.write(blk.Text())
			continue
		}
		ew.marker(MarkerMine, r.mineLabel)
		ew.section(blk.MineText)
		if r.showBase {
			ew.marker(MarkerBase, r.baseLabel)
			ew.section(blk.BaseText)
		}
		ew.marker(MarkerSep, "")
		ew.section(blk.TheirsText)
		ew.marker(MarkerTheirs, r.theirsLabel)
	}
	return ew.n, ew.err
}

// errWriter keeps track of the first write error and the number of bytes written.
type errWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (ew *errWriter) write(b []byte) {
	if ew.err != nil || len(b) == 0 {
		return
	}
	n, err := ew.w.Write(b)
	ew.n += int64(n)
	ew.err = err
}

func (ew *errWriter) marker(marker, label string) {
	line := marker
	if label != "" {
		line += " " + label
	}
	ew.write([]byte(line + "\n"))
}

func (ew *errWriter) section(text []byte) {
	ew.write(text)
	if len(text) > 0 && !lines.HasTerminator(text) {
		ew.write([]byte("\n"))
	}
}
