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

package diff

import (
	"xdiff.dev/diff/internal/config"
	"xdiff.dev/diff/internal/core"
	"xdiff.dev/diff/internal/rvecs"
)

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Match  Op = iota // Elements of x and y are equal
	Delete           // An element of x is removed
	Insert           // An element of y is added
)

// Edit is a single step of an edit script. Delete leaves Y unset and Insert leaves X unset.
type Edit[T any] struct {
	Op   Op
	X, Y T
}

// Hunk is a run of edits that turns x[PosX:EndX] into y[PosY:EndY], including up to [Context]
// matches around the changes.
type Hunk[T any] struct {
	PosX, EndX int
	PosY, EndY int
	Edits      []Edit[T]
}

// Change replaces x[PosX:EndX] by y[PosY:EndY]. One of the ranges may be empty.
type Change struct {
	PosX, EndX int
	PosY, EndY int
}

// Hunks compares x and y and groups the differences into hunks. It returns nil if x and y are
// equal.
//
// The following options are supported: [diff.Context], [diff.Minimal], [diff.Fast]
//
// The exact edits are not stable across versions.
func Hunks[T comparable](x, y []T, opts ...Option) []Hunk[T] {
	cfg := config.FromOptions(opts, config.Context|config.Minimal|config.Fast)
	rx, ry := compare(x, y, cfg)

	var out []Hunk[T]
	for h := range rvecs.Hunks(rx, ry, cfg) {
		out = append(out, Hunk[T]{
			PosX:  h.S0,
			EndX:  h.S1,
			PosY:  h.T0,
			EndY:  h.T1,
			Edits: script(make([]Edit[T], 0, h.Edits), x, y, rx, ry, h),
		})
	}
	return out
}

// Edits compares x and y and returns the complete edit script: one edit for every deleted,
// inserted or matching element. It returns nil only if both inputs are empty.
//
// The following options are supported: [diff.Minimal], [diff.Fast]
//
// The exact edits are not stable across versions.
func Edits[T comparable](x, y []T, opts ...Option) []Edit[T] {
	if len(x) == 0 && len(y) == 0 {
		return nil
	}
	cfg := config.FromOptions(opts, config.Minimal|config.Fast)
	rx, ry := compare(x, y, cfg)
	all := rvecs.Hunk{S1: len(x), T1: len(y)}
	return script(make([]Edit[T], 0, len(x)+len(y)), x, y, rx, ry, all)
}

// Changes compares x and y and returns only the changed ranges. Everything between them matches.
// It returns nil if x and y are equal.
//
// The following options are supported: [diff.Minimal], [diff.Fast]
func Changes[T comparable](x, y []T, opts ...Option) []Change {
	cfg := config.FromOptions(opts, config.Minimal|config.Fast)
	rx, ry := compare(x, y, cfg)

	var out []Change
	for c := range rvecs.Changes(rx, ry) {
		out = append(out, Change{PosX: c.S0, EndX: c.S1, PosY: c.T0, EndY: c.T1})
	}
	return out
}

// compare assigns every distinct value a dense class ID and diffs the ID sequences.
func compare[T comparable](x, y []T, cfg config.Config) (rx, ry []bool) {
	ids := make(map[T]int, len(x))
	class := func(v T) int {
		id, ok := ids[v]
		if !ok {
			id = len(ids)
			ids[v] = id
		}
		return id
	}
	cx, cy := make([]int, len(x)), make([]int, len(y))
	for i, v := range x {
		cx[i] = class(v)
	}
	for i, v := range y {
		cy[i] = class(v)
	}
	return core.Diff(cx, cy, cfg)
}

// script appends the edits within h to out. Deletions come before insertions.
func script[T any](out []Edit[T], x, y []T, rx, ry []bool, h rvecs.Hunk) []Edit[T] {
	s, t := h.S0, h.T0
	for s < h.S1 || t < h.T1 {
		switch {
		case s < h.S1 && rx[s]:
			out = append(out, Edit[T]{Op: Delete, X: x[s]})
			s++
		case t < h.T1 && ry[t]:
			out = append(out, Edit[T]{Op: Insert, Y: y[t]})
			t++
		default:
			out = append(out, Edit[T]{Op: Match, X: x[s], Y: y[t]})
			s++
			t++
		}
	}
	return out
}
