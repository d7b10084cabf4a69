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

// Package core computes edit scripts between two sequences of equivalence classes.
//
// The inputs are dense class IDs: two records are equal if and only if they have the same ID and
// all IDs are in [0, n) for a small n. The result is a pair of result vectors, rx[s] is set if
// x[s] is deleted and ry[t] is set if y[t] is inserted. Everything else is a match.
//
// Before the search runs, the inputs are reduced: the common prefix and suffix are stripped and
// records whose class doesn't appear on the other side are marked right away. What remains is
// handed to one of three strategies, selected by [config.Mode]:
//
//   - ModeMinimal: Myers' linear space algorithm without any cut-offs.
//   - ModeDefault: Myers' algorithm that settles for a good enough split once the edit cost D of a
//     sub-problem crosses a threshold. Large inputs are first segmented by their unique records.
//   - ModeFast: Segmentation by unique records only, the gaps between them are treated as
//     replaced entirely.
package core

import (
	"fmt"

	"xdiff.dev/diff/internal/config"
	"xdiff.dev/diff/internal/rvecs"
)

// Inputs with more than this many records left after pruning are segmented by their unique
// records before the search runs in ModeDefault.
const segmentMinLen = 5000

// Diff compares x and y and returns the result vectors. Both vectors have one trailing element
// that's always false.
func Diff(x, y []int, cfg config.Config) (rx, ry []bool) {
	rx, ry = rvecs.Make(x, y)

	s0, s1, t0, t1 := trim(x, y, 0, len(x), 0, len(y))
	if s0 == s1 || t0 == t1 {
		mark(rx, s0, s1)
		mark(ry, t0, t1)
		return rx, ry
	}

	p := prune(x[s0:s1], y[t0:t1], s0, t0, rx, ry)
	switch cfg.Mode {
	case config.ModeMinimal:
		p.search(true)
	case config.ModeDefault:
		if p.anchors > 0 && (len(p.x)+len(p.y) > segmentMinLen || cfg.ForceAnchoring) {
			p.segment(true)
		} else {
			p.search(false)
		}
	case config.ModeFast:
		p.segment(false)
	default:
		panic(fmt.Sprintf("unknown mode: %v", cfg.Mode))
	}
	return rx, ry
}

// trim shrinks the ranges x[s0:s1] and y[t0:t1] by their common prefix and suffix.
func trim(x, y []int, s0, s1, t0, t1 int) (int, int, int, int) {
	for s0 < s1 && t0 < t1 && x[s0] == y[t0] {
		s0++
		t0++
	}
	for s0 < s1 && t0 < t1 && x[s1-1] == y[t1-1] {
		s1--
		t1--
	}
	return s0, s1, t0, t1
}

func mark(r []bool, lo, hi int) {
	for i := lo; i < hi; i++ {
		r[i] = true
	}
}

// tally counts the occurrences of a class in x and y, saturating at 2.
type tally struct{ x, y uint8 }

func (c tally) unique() bool { return c.x == 1 && c.y == 1 }

// problem is the reduced input. Only records whose class appears on both sides are kept, xi and yi
// map their positions back into the original input.
type problem struct {
	x, y   []int
	xi, yi []int
	counts []tally // indexed by class

	// Number of classes that appear exactly once in x and in y.
	anchors int

	rx, ry []bool
}

func prune(x, y []int, s0, t0 int, rx, ry []bool) *problem {
	n := 0
	for _, c := range x {
		n = max(n, c+1)
	}
	for _, c := range y {
		n = max(n, c+1)
	}
	counts := make([]tally, n)
	for _, c := range x {
		counts[c].x = min(counts[c].x+1, 2)
	}
	for _, c := range y {
		counts[c].y = min(counts[c].y+1, 2)
	}

	p := &problem{counts: counts, rx: rx, ry: ry}
	buf := make([]int, 2*(len(x)+len(y)))
	p.x, buf = buf[:0:len(x)], buf[len(x):]
	p.xi, buf = buf[:0:len(x)], buf[len(x):]
	p.y, buf = buf[:0:len(y)], buf[len(y):]
	p.yi = buf[:0:len(y)]
	for s, c := range x {
		if counts[c].y == 0 {
			rx[s0+s] = true
			continue
		}
		if counts[c].unique() {
			p.anchors++
		}
		p.x = append(p.x, c)
		p.xi = append(p.xi, s0+s)
	}
	for t, c := range y {
		if counts[c].x == 0 {
			ry[t0+t] = true
			continue
		}
		p.y = append(p.y, c)
		p.yi = append(p.yi, t0+t)
	}
	return p
}

// replace marks p.x[s0:s1] as deleted and p.y[t0:t1] as inserted.
func (p *problem) replace(s0, s1, t0, t1 int) {
	for _, s := range p.xi[s0:s1] {
		p.rx[s] = true
	}
	for _, t := range p.yi[t0:t1] {
		p.ry[t] = true
	}
}

// search runs Myers' algorithm over the whole reduced input.
func (p *problem) search(minimal bool) {
	m := newMyers(p)
	m.compare(0, len(p.x), 0, len(p.y), minimal)
}

// segment splits the reduced input at the longest common subsequence of unique records and
// extends every anchor to the run of matches around it. The gaps between runs are compared with
// Myers' algorithm if refine is set and replaced entirely otherwise.
func (p *problem) segment(refine bool) {
	var m *myers
	if refine {
		m = newMyers(p)
	}
	gap := func(s0, s1, t0, t1 int) {
		s0, s1, t0, t1 = trim(p.x, p.y, s0, s1, t0, t1)
		if refine {
			m.compare(s0, s1, t0, t1, false)
		} else {
			p.replace(s0, s1, t0, t1)
		}
	}

	n, k := len(p.x), len(p.y)
	s, t := 0, 0 // everything before (s, t) is done
	for _, a := range p.uniqueLCS() {
		if a.s < s || a.t < t {
			continue // inside the previous run
		}
		lo, hi := a, a
		for lo.s > s && lo.t > t && p.x[lo.s-1] == p.y[lo.t-1] {
			lo.s--
			lo.t--
		}
		for hi.s < n && hi.t < k && p.x[hi.s] == p.y[hi.t] {
			hi.s++
			hi.t++
		}
		gap(s, lo.s, t, lo.t)
		s, t = hi.s, hi.t
	}
	gap(s, n, t, k)
}
