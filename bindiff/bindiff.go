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

// Package bindiff computes and applies byte oriented diffs for content that isn't line structured.
//
// A binary diff is a sequence of operations that build the target from the source: [Copy]
// operations copy a range of the source, [Insert] operations add literal bytes. The source is
// indexed with a rolling hash over fixed size blocks, the target is scanned one byte at a time for
// blocks that occur in the source.
package bindiff

import (
	"bytes"
	"errors"

	"xdiff.dev/diff/internal/rollhash"
)

var (
	// ErrChecksumMismatch is returned if a binary diff is applied to the wrong source or if the
	// result doesn't match the expected target.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrMalformed is returned if a binary diff can't be decoded or references bytes outside of
	// the source.
	ErrMalformed = errors.New("malformed binary diff")
)

const (
	// Size of the blocks the source is indexed with.
	window = 16

	// Matches shorter than this are inserted instead of copied.
	minMatch = window

	// Maximum number of source positions remembered per hash.
	maxCandidates = 8
)

// OpKind is the kind of an [Op].
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=OpKind
type OpKind uint8

const (
	Copy   OpKind = iota + 1 // Copy Len bytes of the source, starting at Off.
	Insert                   // Insert Data.
)

// Op is a single operation of a binary diff.
type Op struct {
	Kind OpKind
	Off  int    // Copy: offset in the source.
	Len  int    // Copy: number of bytes.
	Data []byte // Insert: the inserted bytes.
}

// Size returns the number of bytes op contributes to the target.
func (op Op) Size() int {
	if op.Kind == Insert {
		return len(op.Data)
	}
	return op.Len
}

// Diff computes the operations that build target from source. Adjacent insertions as well as
// copies of adjacent source ranges are combined into a single operation. Inserted data aliases
// target.
func Diff(source, target []byte) []Op {
	idx := index(source)
	d := differ{source: source, target: target}

	if len(target) < window || len(idx) == 0 {
		d.insert(len(target))
		return d.ops
	}

	r := rollhash.New(window)
	h := r.Reset(target[:window])
	for i := 0; ; {
		off, n, back := d.longestMatch(idx[h], i)
		if n >= minMatch {
			d.insert(i - back)
			d.copy(off-back, n)
			i += n - back
		} else {
			i++
		}

		if i+window > len(target) {
			break
		}
		if n >= minMatch {
			h = r.Reset(target[i : i+window])
		} else {
			h = r.Roll(target[i-1], target[i+window-1])
		}
	}
	d.insert(len(target))
	return d.ops
}

// index maps the hash of every window aligned block of source to the offsets it occurs at.
func index(source []byte) map[uint64][]int {
	idx := make(map[uint64][]int, len(source)/window)
	for off := 0; off+window <= len(source); off += window {
		h := rollhash.Sum(source[off : off+window])
		if len(idx[h]) < maxCandidates {
			idx[h] = append(idx[h], off)
		}
	}
	return idx
}

type differ struct {
	source, target []byte
	ops            []Op
	pos            int // Number of target bytes covered by ops.
}

// longestMatch verifies the candidates for target position i and returns the longest match as
// source offset, length, and the number of bytes it extends backwards into bytes that haven't been
// emitted yet. The length includes the backwards extension.
func (d *differ) longestMatch(candidates []int, i int) (off, n, back int) {
	for _, c := range candidates {
		if !bytes.Equal(d.source[c:c+window], d.target[i:i+window]) {
			continue // Hash collision.
		}
		f := window + commonPrefix(d.source[c+window:], d.target[i+window:])
		b := 0
		for b < i-d.pos && b < c && d.source[c-b-1] == d.target[i-b-1] {
			b++
		}
		if f+b > n {
			off, n, back = c, f+b, b
		}
	}
	return off, n, back
}

// insert emits the target bytes from the current position up to end as an insertion.
func (d *differ) insert(end int) {
	if end <= d.pos {
		return
	}
	data := d.target[d.pos:end]
	if k := len(d.ops) - 1; k >= 0 && d.ops[k].Kind == Insert {
		d.ops[k].Data = d.target[d.pos-len(d.ops[k].Data) : end]
	} else {
		d.ops = append(d.ops, Op{Kind: Insert, Data: data})
	}
	d.pos = end
}

// copy emits a copy of n source bytes starting at off.
func (d *differ) copy(off, n int) {
	if k := len(d.ops) - 1; k >= 0 && d.ops[k].Kind == Copy && d.ops[k].Off+d.ops[k].Len == off {
		d.ops[k].Len += n
	} else {
		d.ops = append(d.ops, Op{Kind: Copy, Off: off, Len: n})
	}
	d.pos += n
}

func commonPrefix(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Generate computes the binary diff from source to target and encodes it. See [Encode] for the
// format.
func Generate(source, target []byte) []byte {
	return Encode(NewPatch(source, target, Diff(source, target)))
}
