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

// Package benchmarks measures the engine operations on synthetic inputs and compares the line
// diffs with other Go diff libraries.
//
// It's a separate module to keep the other libraries out of the main module's dependencies.
package benchmarks

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Input is a base text X and two independently edited versions Y and Z of it.
type Input struct {
	Name    string
	X, Y, Z []byte
}

// Inputs returns source-like texts of different sizes and edit rates. The same call always returns
// the same inputs.
func Inputs() []Input {
	var in []Input
	for _, n := range []int{100, 1000, 10000} {
		for _, rate := range []int{1, 10} {
			name := fmt.Sprintf("lines=%d,edits=%d%%", n, rate)
			rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(name))))
			x := source(rng, n)
			in = append(in, Input{
				Name: name,
				X:    x,
				Y:    edit(rng, x, rate),
				Z:    edit(rng, x, rate),
			})
		}
	}
	return in
}

// source generates n lines of brace-structured text. Closing braces and blank lines repeat a lot,
// like they do in real code.
func source(rng *rand.Rand, n int) []byte {
	var b bytes.Buffer
	depth := 0
	for range n {
		indent := strings.Repeat("\t", depth)
		switch r := rng.IntN(10); {
		case r == 0 && depth < 4:
			fmt.Fprintf(&b, "%sif v%d != nil {\n", indent, rng.IntN(100))
			depth++
		case r == 1 && depth > 0:
			depth--
			fmt.Fprintf(&b, "%s}\n", indent[1:])
		case r == 2:
			b.WriteString("\n")
		default:
			fmt.Fprintf(&b, "%sx%d = f(x%d)\n", indent, rng.IntN(1000), rng.IntN(1000))
		}
	}
	return b.Bytes()
}

// edit deletes, replaces or appends to rate percent of the lines of x.
func edit(rng *rand.Rand, x []byte, rate int) []byte {
	var b bytes.Buffer
	for line := range bytes.Lines(x) {
		if rng.IntN(100) >= rate {
			b.Write(line)
			continue
		}
		switch rng.IntN(3) {
		case 0:
		case 1:
			fmt.Fprintf(&b, "y%d = g()\n", rng.IntN(1000))
		case 2:
			b.Write(line)
			fmt.Fprintf(&b, "y%d = g()\n", rng.IntN(1000))
		}
	}
	return b.Bytes()
}
