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

// Package indentheuristic moves groups of changed lines to the position that is easiest to read.
//
// A group of deletions (or insertions) can often slide up or down without changing the diff's
// meaning: if the line before the group equals its last line, the group can move up by one, and
// vice versa. Apply uses that freedom in this order of preference:
//
//  1. Slide the group as far as it goes in both directions, merging it with the groups it meets.
//  2. If a position lines the group up with a change on the other side, use it.
//  3. Otherwise pick the position with the best split score. The score prefers splits at blank
//     lines and at lines with little indentation, with weights taken from Michael Haggerty's
//     study of human rated diffs (https://github.com/mhagger/diff-slider-tools).
package indentheuristic

import (
	"cmp"

	"xdiff.dev/diff/internal/lines"
)

const (
	maxSlide  = 100 // maximum distance a group is moved for a better score
	maxIndent = 200 // indentation is capped at this width
	maxBlanks = 20  // blank lines beyond this count are ignored
)

// Split score weights. Negative values reward a property, positive values penalize it.
const (
	startOfFilePenalty      = 1
	endOfFilePenalty        = 21
	totalBlankWeight        = -30
	postBlankWeight         = 6
	indentPenalty           = -4 // more indented than the line before
	indentWithBlankPenalty  = 10
	outdentPenalty          = 24 // less indented than the line before, more than the line after
	outdentWithBlankPenalty = 17
	dentPenalty             = 23 // less indented than the line before, not more than the line after
	dentWithBlankPenalty    = 17

	// Only the sign of the difference in indentation of two splits is used, multiplied by this.
	indentWeight = 60
)

// Apply moves the groups of changes in rx and ry. Lines with the same class in cx and cy are
// interchangeable. The content of x and y is only used to measure indentation.
func Apply(x, y *lines.Sequence, cx, cy []int, rx, ry []bool) {
	slide(x, cx, cy, rx, ry)
	slide(y, cy, cx, ry, rx)
}

// slide moves the groups in r. The group o on the other side is kept at the same position in the
// edit script as g.
func slide(seq *lines.Sequence, ids, oids []int, r, or []bool) {
	g := &group{lo: -1, hi: -1, ids: ids, r: r}
	o := &group{lo: -1, hi: -1, ids: oids, r: or}
	for g.next() {
		must(o.next())
		if g.len() == 0 {
			continue
		}

		// Every move can merge g with a neighbor, so repeat until the size is stable. Afterwards,
		// g is at its lowest position and top is its highest end.
		top, aligned := g.hi, -1
		for n := -1; n != g.len(); {
			n = g.len()
			aligned = -1
			for g.up() {
				must(o.prev())
			}
			top = g.hi
			if o.len() > 0 {
				aligned = g.hi
			}
			for g.down() {
				must(o.next())
				if o.len() > 0 {
					aligned = g.hi
				}
			}
		}

		switch {
		case top == g.hi:
		case aligned >= 0:
			for o.len() == 0 {
				must(g.up())
				must(o.prev())
			}
		default:
			best, bestScore := -1, score{}
			for end := max(top, g.hi-g.len()-1, g.hi-maxSlide); end <= g.hi; end++ {
				var sc score
				sc.add(measure(seq, end))
				sc.add(measure(seq, end-g.len()))
				if best < 0 || sc.compare(bestScore) <= 0 {
					best, bestScore = end, sc
				}
			}
			for g.hi > best {
				must(g.up())
				must(o.prev())
			}
		}
	}
	must(!o.next())
}

func must(ok bool) {
	if !ok {
		panic("indentheuristic: groups out of sync")
	}
}

// group is a run of changed lines r[lo:hi], possibly empty. Neighboring groups are separated by
// exactly one unchanged line.
type group struct {
	lo, hi int
	ids    []int
	r      []bool
}

func (g *group) len() int { return g.hi - g.lo }

// last is the index of the trailing sentinel of r.
func (g *group) last() int { return len(g.r) - 1 }

func (g *group) extendDown() {
	for g.hi < g.last() && g.r[g.hi] {
		g.hi++
	}
}

func (g *group) extendUp() {
	for g.lo > 0 && g.r[g.lo-1] {
		g.lo--
	}
}

// next moves to the following group. It reports false at the end.
func (g *group) next() bool {
	if g.hi == g.last() {
		return false
	}
	g.lo, g.hi = g.hi+1, g.hi+1
	g.extendDown()
	return true
}

// prev moves to the preceding group. It reports false at the start.
func (g *group) prev() bool {
	if g.lo == 0 {
		return false
	}
	g.lo, g.hi = g.lo-1, g.lo-1
	g.extendUp()
	return true
}

// down moves the group one line down if its first line equals the line after it, merging it with
// the group below if they touch.
func (g *group) down() bool {
	if g.hi == g.last() || g.ids[g.lo] != g.ids[g.hi] {
		return false
	}
	g.r[g.lo], g.r[g.hi] = false, true
	g.lo++
	g.hi++
	g.extendDown()
	return true
}

// up moves the group one line up if its last line equals the line before it, merging it with the
// group above if they touch.
func (g *group) up() bool {
	if g.lo == 0 || g.ids[g.lo-1] != g.ids[g.hi-1] {
		return false
	}
	g.r[g.lo-1], g.r[g.hi-1] = true, false
	g.lo--
	g.hi--
	g.extendUp()
	return true
}

// split describes the lines around a split right before line i.
type split struct {
	eof        bool
	indent     int // indentation of line i, -1 if it's blank
	preBlank   int // blank lines right before i
	preIndent  int // indentation of the first non-blank line before i, -1 if there is none
	postBlank  int // blank lines right after i
	postIndent int // indentation of the first non-blank line after i, -1 if there is none
}

func measure(seq *lines.Sequence, i int) split {
	sp := split{indent: -1}
	if i >= seq.Len() {
		sp.eof = true
	} else {
		sp.indent = indentOf(seq.Line(i))
	}
	sp.preBlank, sp.preIndent = scan(seq, i-1, -1)
	sp.postBlank, sp.postIndent = scan(seq, i+1, 1)
	return sp
}

// scan counts the blank lines from i in direction dir and returns the indentation of the first
// non-blank line. Runs of maxBlanks blank lines count as a line without indentation.
func scan(seq *lines.Sequence, i, dir int) (blanks, indent int) {
	for ; i >= 0 && i < seq.Len(); i += dir {
		if indent := indentOf(seq.Line(i)); indent >= 0 {
			return blanks, indent
		}
		blanks++
		if blanks == maxBlanks {
			return blanks, 0
		}
	}
	return blanks, -1
}

// indentOf returns the width of the leading whitespace of line with tabs expanded to multiples of
// 8. It returns -1 if the line is blank.
func indentOf(line []byte) int {
	w := 0
	for _, c := range line {
		switch c {
		case ' ':
			w++
		case '\t':
			w += 8 - w%8
		case '\n', '\v', '\f', '\r':
		default:
			return w
		}
		if w >= maxIndent {
			return maxIndent
		}
	}
	return -1
}

// score rates a group position. Smaller is better.
type score struct {
	indent  int
	penalty int
}

func (sc *score) add(sp split) {
	if sp.preIndent < 0 && sp.preBlank == 0 {
		sc.penalty += startOfFilePenalty
	}
	if sp.eof {
		sc.penalty += endOfFilePenalty
	}

	indent, post := sp.indent, 0
	if indent < 0 {
		indent, post = sp.postIndent, 1+sp.postBlank
	}
	blank := sp.preBlank + post
	sc.penalty += totalBlankWeight*blank + postBlankWeight*post
	sc.indent += indent

	if indent < 0 || sp.preIndent < 0 || indent == sp.preIndent {
		return
	}
	plain, withBlank := dentPenalty, dentWithBlankPenalty
	switch {
	case indent > sp.preIndent:
		plain, withBlank = indentPenalty, indentWithBlankPenalty
	case sp.postIndent > indent:
		// Probably the start of a new block rather than the end of the previous one.
		plain, withBlank = outdentPenalty, outdentWithBlankPenalty
	}
	if blank > 0 {
		sc.penalty += withBlank
	} else {
		sc.penalty += plain
	}
}

func (sc score) compare(o score) int {
	return indentWeight*cmp.Compare(sc.indent, o.indent) + sc.penalty - o.penalty
}
