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

// Package rollhash provides the polynomial hash shared by the line tokenizer and the binary
// differ.
//
// The hash of the bytes c[0], ..., c[n-1] is
//
//	h = (c[0]+1)·B^(n-1) + (c[1]+1)·B^(n-2) + ... + (c[n-1]+1)   (mod 2^64)
//
// The +1 makes sure that runs of zero bytes of different lengths hash differently. Because the
// hash is a polynomial, a fixed size window can be moved one byte at a time in O(1) ([Roller]) and
// the hash of a window is identical to [Sum] over the same bytes.
//
// The hash is only ever used as a bucket key, equality must always be confirmed by comparing
// bytes.
package rollhash

// base is the 64-bit FNV prime, it mixes well under multiplication mod 2^64.
const base = 0x100000001b3

// Update extends h by a single byte.
func Update(h uint64, c byte) uint64 {
	return h*base + uint64(c) + 1
}

// Sum returns the hash of b.
func Sum(b []byte) uint64 {
	var h uint64
	for _, c := range b {
		h = Update(h, c)
	}
	return h
}

// Roller maintains the hash of a window of fixed size that slides over a buffer.
type Roller struct {
	window int
	pow    uint64 // base^(window-1)
	h      uint64
}

// New returns a roller for windows of the given size. Panics if window < 1.
func New(window int) *Roller {
	if window < 1 {
		panic("window must be >= 1")
	}
	pow := uint64(1)
	for range window - 1 {
		pow *= base
	}
	return &Roller{window: window, pow: pow}
}

// Window returns the window size.
func (r *Roller) Window() int { return r.window }

// Reset sets the window to b, which must be exactly Window() bytes long, and returns its hash.
func (r *Roller) Reset(b []byte) uint64 {
	if len(b) != r.window {
		panic("window size mismatch")
	}
	r.h = Sum(b)
	return r.h
}

// Roll removes out from the front of the window, appends in at the end, and returns the new hash.
func (r *Roller) Roll(out, in byte) uint64 {
	r.h = (r.h-(uint64(out)+1)*r.pow)*base + uint64(in) + 1
	return r.h
}

// Hash returns the hash of the current window.
func (r *Roller) Hash() uint64 { return r.h }
