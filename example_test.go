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

package diff_test

import (
	"fmt"
	"strings"

	"xdiff.dev/diff"
)

// Print the differences between two config files in a unified-like format with one line of
// context.
func ExampleHunks() {
	x := strings.Split(`[server]
host = localhost
port = 8080
timeout = 30s
workers = 4

[client]
retries = 3
backoff = 1s`, "\n")
	y := strings.Split(`[server]
host = localhost
port = 9090
timeout = 30s
workers = 4

[client]
retries = 3
backoff = 2s
jitter = true`, "\n")

	for _, h := range diff.Hunks(x, y, diff.Context(1)) {
		fmt.Printf("@@ -%d,%d +%d,%d @@\n", h.PosX+1, h.EndX-h.PosX, h.PosY+1, h.EndY-h.PosY)
		for _, e := range h.Edits {
			switch e.Op {
			case diff.Delete:
				fmt.Println("-" + e.X)
			case diff.Insert:
				fmt.Println("+" + e.Y)
			default:
				fmt.Println(" " + e.X)
			}
		}
	}
	// Output:
	// @@ -2,3 +2,3 @@
	//  host = localhost
	// -port = 8080
	// +port = 9090
	//  timeout = 30s
	// @@ -8,2 +8,3 @@
	//  retries = 3
	// -backoff = 1s
	// +backoff = 2s
	// +jitter = true
}

// Compare two words character by character.
func ExampleEdits() {
	var sb strings.Builder
	for _, e := range diff.Edits([]rune("kitten sitting"), []rune("mitten knitting")) {
		switch e.Op {
		case diff.Delete:
			fmt.Fprintf(&sb, "-%c", e.X)
		case diff.Insert:
			fmt.Fprintf(&sb, "+%c", e.Y)
		default:
			sb.WriteRune(e.X)
		}
	}
	fmt.Println(sb.String())
	// Output:
	// -k+mitten -s+k+nitting
}

// Compute the bare edit script between two word lists.
func ExampleChanges() {
	x := strings.Fields("the quick brown fox jumps over the lazy dog")
	y := strings.Fields("the quick red fox jumps over the dog")
	for _, c := range diff.Changes(x, y) {
		fmt.Printf("%q -> %q\n", x[c.PosX:c.EndX], y[c.PosY:c.EndY])
	}
	// Output:
	// ["brown"] -> ["red"]
	// ["lazy"] -> []
}
