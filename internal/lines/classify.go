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

package lines

// Classify assigns an equivalence class to every record of the given sequences. Two records have
// the same class if and only if they compare equal. Classes are dense, starting at 0, in order of
// first appearance.
//
// All sequences must have been split with the same options.
func Classify(seqs ...*Sequence) [][]int {
	type rep struct {
		seq *Sequence
		i   int
	}

	n := 0
	for _, s := range seqs {
		n += s.Len()
	}

	// Most hash buckets hold a single class, only collisions and whitespace/normalization
	// variations need to be chained.
	first := make(map[uint64]int, n) // hash -> first class with that hash
	var next []int                   // class -> next class with the same hash or -1
	var reps []rep                   // class -> representative record

	buf := make([]int, n)
	out := make([][]int, len(seqs))
	for k, s := range seqs {
		ids := buf[:s.Len():s.Len()]
		buf = buf[s.Len():]
		for i, r := range s.recs {
			c, ok := first[r.Hash]
			prev := -1
			for ok && c >= 0 && !Equal(reps[c].seq, reps[c].i, s, i) {
				prev, c = c, next[c]
			}
			if !ok || c < 0 {
				c = len(reps)
				reps = append(reps, rep{s, i})
				next = append(next, -1)
				if prev >= 0 {
					next[prev] = c
				} else {
					first[r.Hash] = c
				}
			}
			ids[i] = c
		}
		out[k] = ids
	}
	return out
}
