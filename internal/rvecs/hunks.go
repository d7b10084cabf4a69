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

package rvecs

import (
	"iter"

	"xdiff.dev/diff/internal/config"
)

// Hunks groups the changes of rx and ry into hunks with up to cfg.Context matches on either side.
// Changes that are at most 2*cfg.Context matches apart end up in the same hunk.
func Hunks(rx, ry []bool, cfg config.Config) iter.Seq[Hunk] {
	return func(yield func(Hunk) bool) {
		n, m, ctx := len(rx)-1, len(ry)-1, cfg.Context

		var h Hunk // S1 and T1 are the end of the last change until the hunk is closed
		var ins int
		open := false
		closeHunk := func() bool {
			h.S1, h.T1 = min(n, h.S1+ctx), min(m, h.T1+ctx)
			h.Edits = (h.S1 - h.S0) + ins
			return yield(h)
		}

		for c := range Changes(rx, ry) {
			if open && c.S0-h.S1 <= 2*ctx {
				h.S1, h.T1 = c.S1, c.T1
				ins += c.T1 - c.T0
				continue
			}
			if open && !closeHunk() {
				return
			}
			h = Hunk{S0: max(0, c.S0-ctx), S1: c.S1, T0: max(0, c.T0-ctx), T1: c.T1}
			ins, open = c.T1-c.T0, true
		}
		if open {
			closeHunk()
		}
	}
}
