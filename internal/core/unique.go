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

import "sort"

type point struct{ s, t int }

// uniqueLCS returns the longest common subsequence of the records that are unique in both x and y,
// ordered by position.
//
// With every record unique, the LCS is the longest increasing subsequence of the y positions
// listed in x order. It's found by patience sorting: piles[i] holds the index of the smallest
// possible tail of an increasing subsequence of length i+1 and prev links every element to the
// tail of the pile to its left at the time it was placed.
func (p *problem) uniqueLCS() []point {
	pos := make([]int, len(p.counts)) // class -> position in y
	for t, c := range p.y {
		if p.counts[c].unique() {
			pos[c] = t
		}
	}
	seq := make([]point, 0, p.anchors)
	for s, c := range p.x {
		if p.counts[c].unique() {
			seq = append(seq, point{s, pos[c]})
		}
	}

	piles := make([]int, 0, len(seq))
	prev := make([]int, len(seq))
	for i, a := range seq {
		k := sort.Search(len(piles), func(k int) bool { return seq[piles[k]].t >= a.t })
		prev[i] = -1
		if k > 0 {
			prev[i] = piles[k-1]
		}
		if k == len(piles) {
			piles = append(piles, i)
		} else {
			piles[k] = i
		}
	}

	lcs := make([]point, len(piles))
	if len(piles) > 0 {
		i := piles[len(piles)-1]
		for k := len(lcs) - 1; k >= 0; k-- {
			lcs[k] = seq[i]
			i = prev[i]
		}
	}
	return lcs
}
