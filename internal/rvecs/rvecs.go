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

// Package rvecs works with result vectors, the representation of an edit script used inside the
// module: rx[s] is set if x[s] is deleted and ry[t] is set if y[t] is inserted, all other elements
// match in order. Both vectors carry one trailing false element so that scans can stop there.
package rvecs

import "iter"

// Make allocates the result vectors for x and y.
func Make[T any](x, y []T) (rx, ry []bool) {
	r := make([]bool, len(x)+len(y)+2)
	return r[: len(x)+1 : len(x)+1], r[len(x)+1:]
}

// Hunk is a range x[S0:S1], y[T0:T1] of an edit script.
type Hunk struct {
	S0, S1 int
	T0, T1 int
	Edits  int // number of edit operations in the range, matches included
}

// Changes returns the maximal runs of deletions and insertions without any context, in order. For
// a change, Edits is the number of deleted and inserted elements.
func Changes(rx, ry []bool) iter.Seq[Hunk] {
	return func(yield func(Hunk) bool) {
		n, m := len(rx)-1, len(ry)-1
		for s, t := 0, 0; s < n || t < m; {
			if !rx[s] && !ry[t] {
				s++
				t++
				continue
			}
			s0, t0 := s, t
			for s < n && rx[s] {
				s++
			}
			for t < m && ry[t] {
				t++
			}
			if !yield(Hunk{s0, s, t0, t, (s - s0) + (t - t0)}) {
				return
			}
		}
	}
}
