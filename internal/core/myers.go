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

package core

import "math"

const (
	// Lower bound for the cost threshold. Once the edit cost D of a sub-problem reaches the
	// threshold, the search stops looking for the optimal middle snake and splits at the path
	// endpoint that got furthest instead. Above the bound, the threshold grows with the square
	// root of the input size.
	minCostThreshold = 4096

	// A run of at least snakeLen matches that a path reaches at cost D >= snakeCost is accepted as
	// split point if the path is far enough along: its length minus its drift from the starting
	// diagonal must exceed snakeWeight*D.
	snakeLen    = 20
	snakeCost   = 256
	snakeWeight = 4
)

// box is the part x[s0:s1], y[t0:t1] of the edit graph.
type box struct{ s0, s1, t0, t1 int }

// snake is a, possibly empty, run of matches from (s0, t0) to (s1, t1) on an edit path through a
// box. min0 and min1 report if the boxes before and after the snake still need an optimal search.
type snake struct {
	s0, t0, s1, t1 int
	min0, min1     bool
}

// span is the range of diagonals a search visits in the current round. mid is the diagonal it
// started on.
type span struct{ lo, hi, mid int }

// myers implements Myers' linear space algorithm on a reduced problem.
//
// Diagonals are numbered k = s - t in both search directions. The furthest reaching s of a path
// on diagonal k is stored in fwd[off+k] for the forward search and in bwd[off+k] for the backward
// search.
type myers struct {
	*problem
	fwd, bwd  []int
	off       int
	threshold int
}

func newMyers(p *problem) *myers {
	n := len(p.x) + len(p.y)
	size := 2*n + 3 // all diagonals plus a sentinel on either side
	buf := make([]int, 2*size)

	// Approximate square root of n.
	threshold := 1
	for i := n; i > 0; i >>= 2 {
		threshold <<= 1
	}

	return &myers{
		problem:   p,
		fwd:       buf[:size],
		bwd:       buf[size:],
		off:       n + 1,
		threshold: max(minCostThreshold, threshold),
	}
}

// compare marks the edits of a shortest (or good enough, unless minimal is set) edit path through
// the box x[s0:s1], y[t0:t1].
func (m *myers) compare(s0, s1, t0, t1 int, minimal bool) {
	s0, s1, t0, t1 = trim(m.x, m.y, s0, s1, t0, t1)
	if s0 == s1 || t0 == t1 {
		m.replace(s0, s1, t0, t1)
		return
	}
	sn := m.split(box{s0, s1, t0, t1}, minimal)
	m.compare(s0, sn.s0, t0, sn.t0, sn.min0)
	m.compare(sn.s1, s1, sn.t1, t1, sn.min1)
}

// split finds the middle snake of a shortest edit path through b. The box must not be empty and
// must not start or end with a match.
//
// Forward and backward searches alternate, each extending their furthest reaching paths by one
// edit per round. The first time the two overlap on a diagonal, the snake the overlapping path
// just followed is in the middle of a shortest path. Ties prefer deletions over insertions.
func (m *myers) split(b box, minimal bool) snake {
	x, y := m.x, m.y
	fwd, bwd, off := m.fwd, m.bwd, m.off

	kmin, kmax := b.s0-b.t1, b.s1-b.t0
	f := span{b.s0 - b.t0, b.s0 - b.t0, b.s0 - b.t0}
	r := span{b.s1 - b.t1, b.s1 - b.t1, b.s1 - b.t1}

	// The length of a shortest path has the parity of the distance between the start and end
	// diagonal. That tells which search can be the first to overlap.
	odd := (f.mid-r.mid)%2 != 0

	fwd[off+f.mid] = b.s0
	bwd[off+r.mid] = b.s1
	for d := 1; ; d++ {
		long := false // a path followed at least snakeLen matches in this round

		// Grow the range of diagonals by one in each direction while inside the box and step
		// back inside otherwise to keep the parity. New diagonals get a sentinel neighbor.
		if f.lo > kmin {
			f.lo--
			fwd[off+f.lo-1] = math.MinInt
		} else {
			f.lo++
		}
		if f.hi < kmax {
			f.hi++
			fwd[off+f.hi+1] = math.MinInt
		} else {
			f.hi--
		}
		for k := f.lo; k <= f.hi; k += 2 {
			var s int
			if fwd[off+k-1] < fwd[off+k+1] {
				s = fwd[off+k+1] // insertion
			} else {
				s = fwd[off+k-1] + 1 // deletion
			}
			t := s - k
			u := s
			for s < b.s1 && t < b.t1 && x[s] == y[t] {
				s++
				t++
			}
			long = long || s-u >= snakeLen
			fwd[off+k] = s
			if odd && r.lo <= k && k <= r.hi && s >= bwd[off+k] {
				return snake{u, u - k, s, t, true, true}
			}
		}

		if r.lo > kmin {
			r.lo--
			bwd[off+r.lo-1] = math.MaxInt
		} else {
			r.lo++
		}
		if r.hi < kmax {
			r.hi++
			bwd[off+r.hi+1] = math.MaxInt
		} else {
			r.hi--
		}
		for k := r.lo; k <= r.hi; k += 2 {
			var s int
			if bwd[off+k-1] < bwd[off+k+1] {
				s = bwd[off+k-1] // insertion
			} else {
				s = bwd[off+k+1] - 1 // deletion
			}
			t := s - k
			u := s
			for s > b.s0 && t > b.t0 && x[s-1] == y[t-1] {
				s--
				t--
			}
			long = long || u-s >= snakeLen
			bwd[off+k] = s
			if !odd && f.lo <= k && k <= f.hi && s <= fwd[off+k] {
				return snake{s, t, u, u - k, true, true}
			}
		}

		if minimal {
			continue
		}
		if long && d >= snakeCost {
			if sn, ok := m.longSnake(b, d, f, r); ok {
				return sn
			}
		}
		if d >= m.threshold {
			return m.furthest(b, f, r)
		}
	}
}

// longSnake looks for a path endpoint that is far along and next to a run of at least snakeLen
// matches. The endpoint becomes an empty split point and the side of the box that the path has
// already crossed is searched optimally.
func (m *myers) longSnake(b box, d int, f, r span) (snake, bool) {
	best := 0
	var sn snake
	for k := f.lo; k <= f.hi; k += 2 {
		s := m.fwd[m.off+k]
		t := s - k
		v := (s - b.s0) + (t - b.t0) - abs(k-f.mid)
		if v <= snakeWeight*d || v <= best {
			continue
		}
		if s < b.s0+snakeLen || s >= b.s1 || t < b.t0+snakeLen || t >= b.t1 {
			continue
		}
		if m.run(s-snakeLen, t-snakeLen) {
			best = v
			sn = snake{s, t, s, t, true, false}
		}
	}
	if best > 0 {
		return sn, true
	}

	for k := r.lo; k <= r.hi; k += 2 {
		s := m.bwd[m.off+k]
		t := s - k
		v := (b.s1 - s) + (b.t1 - t) - abs(k-r.mid)
		if v <= snakeWeight*d || v <= best {
			continue
		}
		if s <= b.s0 || s > b.s1-snakeLen || t <= b.t0 || t > b.t1-snakeLen {
			continue
		}
		if m.run(s, t) {
			best = v
			sn = snake{s, t, s, t, false, true}
		}
	}
	return sn, best > 0
}

// run reports if x[s:s+snakeLen] and y[t:t+snakeLen] match.
func (m *myers) run(s, t int) bool {
	for i := range snakeLen {
		if m.x[s+i] != m.y[t+i] {
			return false
		}
	}
	return true
}

// furthest splits b at the endpoint of the forward or backward path that covers most of the box.
func (m *myers) furthest(b box, f, r span) snake {
	fbest, fs, ft := math.MinInt, 0, 0
	for k := f.lo; k <= f.hi; k += 2 {
		s := m.fwd[m.off+k]
		t := min(s-k, b.t1)
		s = min(s, b.s1)
		if s+t > fbest {
			fbest, fs, ft = s+t, s, t
		}
	}
	bbest, bs, bt := math.MaxInt, 0, 0
	for k := r.lo; k <= r.hi; k += 2 {
		s := m.bwd[m.off+k]
		t := max(s-k, b.t0)
		s = max(s, b.s0)
		if s+t < bbest {
			bbest, bs, bt = s+t, s, t
		}
	}
	if (b.s1+b.t1)-bbest < fbest-(b.s0+b.t0) {
		return snake{fs, ft, fs, ft, true, false}
	}
	return snake{bs, bt, bs, bt, false, true}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
