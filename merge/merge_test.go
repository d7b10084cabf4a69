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

package merge

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"xdiff.dev/diff"
	"xdiff.dev/diff/internal/unixpatch"
	"xdiff.dev/diff/textdiff"
)

var validate = flag.Bool("validate", false, "perform validation using the unix diff3 cli tool")

func TestMerge(t *testing.T) {
	tests := []struct {
		name               string
		base, mine, theirs string
		opts               []diff.Option
		want               string
		wantKinds          []Kind
		wantConflicts      int
	}{
		{
			name:      "identical",
			base:      "a\nb\nc\n",
			mine:      "a\nb\nc\n",
			theirs:    "a\nb\nc\n",
			want:      "a\nb\nc\n",
			wantKinds: []Kind{Unchanged},
		},
		{
			name:      "empty",
			want:      "",
			wantKinds: nil,
		},
		{
			name:      "mine-only",
			base:      "a\nb\nc\n",
			mine:      "a\nX\nc\n",
			theirs:    "a\nb\nc\n",
			want:      "a\nX\nc\n",
			wantKinds: []Kind{Unchanged, FromMine, Unchanged},
		},
		{
			name:      "theirs-only",
			base:      "a\nb\nc\n",
			mine:      "a\nb\nc\n",
			theirs:    "a\nb\n",
			want:      "a\nb\n",
			wantKinds: []Kind{Unchanged, FromTheirs},
		},
		{
			name:      "non-overlapping",
			base:      "a\nb\nc\nd\ne\n",
			mine:      "A\nb\nc\nd\ne\n",
			theirs:    "a\nb\nc\nd\nE\n",
			want:      "A\nb\nc\nd\nE\n",
			wantKinds: []Kind{FromMine, Unchanged, FromTheirs},
		},
		{
			name:      "identical-changes",
			base:      "a\nb\nc\n",
			mine:      "a\nX\nc\n",
			theirs:    "a\nX\nc\n",
			want:      "a\nX\nc\n",
			wantKinds: []Kind{Unchanged, Both, Unchanged},
		},
		{
			name:          "conflict",
			base:          "a\nb\nc\n",
			mine:          "a\nX\nc\n",
			theirs:        "a\nY\nc\n",
			want:          "a\n<<<<<<<\nX\n=======\nY\n>>>>>>>\nc\n",
			wantKinds:     []Kind{Unchanged, Conflict, Unchanged},
			wantConflicts: 1,
		},
		{
			name:          "delete-edit-conflict",
			base:          "a\nb\nc\n",
			mine:          "a\nc\n",
			theirs:        "a\nY\nc\n",
			want:          "a\n<<<<<<<\n=======\nY\n>>>>>>>\nc\n",
			wantKinds:     []Kind{Unchanged, Conflict, Unchanged},
			wantConflicts: 1,
		},
		{
			name:          "insertions-at-same-position",
			base:          "a\nb\n",
			mine:          "a\nX\nb\n",
			theirs:        "a\nY\nb\n",
			want:          "a\n<<<<<<<\nX\n=======\nY\n>>>>>>>\nb\n",
			wantKinds:     []Kind{Unchanged, Conflict, Unchanged},
			wantConflicts: 1,
		},
		{
			name:          "adjacent-changes",
			base:          "a\nb\nc\n",
			mine:          "a\nX\nc\n",
			theirs:        "a\nb\nY\n",
			want:          "a\n<<<<<<<\nX\nc\n=======\nb\nY\n>>>>>>>\n",
			wantKinds:     []Kind{Unchanged, Conflict},
			wantConflicts: 1,
		},
		{
			name:          "overlapping-changes-form-one-conflict",
			base:          "1\n2\n3\n4\n5\n6\n",
			mine:          "1\nA\nB\n4\n5\n6\n",
			theirs:        "1\n2\nC\nD\n5\n6\n",
			want:          "1\n<<<<<<<\nA\nB\n4\n=======\n2\nC\nD\n>>>>>>>\n5\n6\n",
			wantKinds:     []Kind{Unchanged, Conflict, Unchanged},
			wantConflicts: 1,
		},
		{
			name:          "two-conflicts",
			base:          "a\nb\nc\nd\ne\n",
			mine:          "A\nb\nc\nd\nE\n",
			theirs:        "1\nb\nc\nd\n5\n",
			want:          "<<<<<<<\nA\n=======\n1\n>>>>>>>\nb\nc\nd\n<<<<<<<\nE\n=======\n5\n>>>>>>>\n",
			wantKinds:     []Kind{Conflict, Unchanged, Conflict},
			wantConflicts: 2,
		},
		{
			name:      "missing-newline",
			base:      "a\nb\nc\n",
			mine:      "A\nb\nc\n",
			theirs:    "a\nb\nc\nd",
			want:      "A\nb\nc\nd",
			wantKinds: []Kind{FromMine, Unchanged, FromTheirs},
		},
		{
			name:          "missing-newline-in-conflict",
			base:          "a\n",
			mine:          "b",
			theirs:        "c",
			want:          "<<<<<<<\nb\n=======\nc\n>>>>>>>\n",
			wantKinds:     []Kind{Conflict},
			wantConflicts: 1,
		},
		{
			name:          "labels-and-base",
			base:          "a\nb\nc\n",
			mine:          "a\nX\nc\n",
			theirs:        "a\nY\nc\n",
			opts:          []diff.Option{Labels("mine", "base", "theirs"), ShowBase()},
			want:          "a\n<<<<<<< mine\nX\n||||||| base\nb\n=======\nY\n>>>>>>> theirs\nc\n",
			wantKinds:     []Kind{Unchanged, Conflict, Unchanged},
			wantConflicts: 1,
		},
		{
			name:          "partial-labels",
			base:          "a\n",
			mine:          "X\n",
			theirs:        "Y\n",
			opts:          []diff.Option{Labels("HEAD", "", ""), ShowBase()},
			want:          "<<<<<<< HEAD\nX\n|||||||\na\n=======\nY\n>>>>>>>\n",
			wantKinds:     []Kind{Conflict},
			wantConflicts: 1,
		},
		{
			name:      "ignore-whitespace",
			base:      "a\nb\nc\n",
			mine:      "a\nX\nc\n",
			theirs:    "a\n X \nc\n",
			opts:      []diff.Option{textdiff.IgnoreWhitespace()},
			want:      "a\nX\nc\n",
			wantKinds: []Kind{Unchanged, Both, Unchanged},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Merge([]byte(tt.base), []byte(tt.mine), []byte(tt.theirs), tt.opts...)
			if diff := cmp.Diff(tt.want, string(res.Bytes())); diff != "" {
				t.Errorf("Merge(...) output is different [-want,+got]:\n%s", diff)
			}
			var kinds []Kind
			for _, b := range res.Blocks {
				kinds = append(kinds, b.Kind)
			}
			if diff := cmp.Diff(tt.wantKinds, kinds); diff != "" {
				t.Errorf("Merge(...) block kinds are different [-want,+got]:\n%s", diff)
			}
			if res.Conflicts != tt.wantConflicts {
				t.Errorf("Merge(...) has %d conflicts, want %d", res.Conflicts, tt.wantConflicts)
			}
			if err := checkBlocks(res, tt.base, tt.mine, tt.theirs); err != nil {
				t.Error(err)
			}

			if *validate && tt.opts == nil {
				want, conflicts, err := unixpatch.Merge(tt.mine, tt.base, tt.theirs)
				if err != nil {
					t.Fatalf("failed to run diff3: %v", err)
				}
				if conflicts != (res.Conflicts > 0) {
					t.Errorf("diff3 reports conflicts=%v, Merge(...) found %d", conflicts, res.Conflicts)
				}
				if !conflicts {
					if diff := cmp.Diff(want, string(res.Bytes())); diff != "" {
						t.Errorf("Merge(...) differs from diff3 [-want,+got]:\n%s", diff)
					}
				}
			}
		})
	}
}

func TestMergeConflictBlock(t *testing.T) {
	res := Merge([]byte("a\nb\nc\n"), []byte("a\nX\nc\n"), []byte("a\nY\nc\n"))
	if len(res.Blocks) != 3 {
		t.Fatalf("Merge(...) returned %d blocks, want 3", len(res.Blocks))
	}
	got := res.Blocks[1]
	want := Block{
		Kind:       Conflict,
		Base:       Range{1, 2},
		Mine:       Range{1, 2},
		Theirs:     Range{1, 2},
		BaseText:   []byte("b\n"),
		MineText:   []byte("X\n"),
		TheirsText: []byte("Y\n"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge(...) conflict block is different [-want,+got]:\n%s", diff)
	}
	if got.Text() != nil {
		t.Errorf("Text() of a conflict = %q, want nil", got.Text())
	}
}

// TestMergeProperties checks properties that hold for any input.
func TestMergeProperties(t *testing.T) {
	for _, size := range []int{0, 1, 10, 100, 1000} {
		t.Run(fmt.Sprintf("size=%d", size), func(t *testing.T) {
			rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(t.Name()))))
			for range 20 {
				base := randomText(rng, size)
				mine := mutate(rng, base)
				theirs := mutate(rng, base)

				for _, tc := range []struct {
					name               string
					base, mine, theirs string
					want               string
				}{
					{"all-same", base, base, base, base},
					{"mine-only", base, mine, base, mine},
					{"theirs-only", base, base, theirs, theirs},
					{"same-changes", base, mine, mine, mine},
				} {
					res := Merge([]byte(tc.base), []byte(tc.mine), []byte(tc.theirs))
					if res.Conflicts != 0 {
						t.Fatalf("%s: Merge(...) has %d conflicts, want 0", tc.name, res.Conflicts)
					}
					if diff := cmp.Diff(tc.want, string(res.Bytes())); diff != "" {
						t.Fatalf("%s: Merge(...) output is different [-want,+got]:\n%s", tc.name, diff)
					}
				}

				res := Merge([]byte(base), []byte(mine), []byte(theirs))
				if err := checkBlocks(res, base, mine, theirs); err != nil {
					t.Fatal(err)
				}
			}
		})
	}
}

func TestWriteToError(t *testing.T) {
	res := Merge([]byte("a\n"), []byte("b\n"), []byte("c\n"))
	want := errors.New("broken pipe")
	_, err := res.WriteTo(failingWriter{want})
	if !errors.Is(err, want) {
		t.Errorf("WriteTo(...) = %v, want %v", err, want)
	}
}

func TestKindString(t *testing.T) {
	for kind, want := range map[Kind]string{
		Unchanged:  "Unchanged",
		FromMine:   "FromMine",
		FromTheirs: "FromTheirs",
		Both:       "Both",
		Conflict:   "Conflict",
		Kind(9):    "Kind(9)",
	} {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), got, want)
		}
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

// checkBlocks checks that the blocks of res partition all three inputs in order.
func checkBlocks(res *Result, base, mine, theirs string) error {
	var o, a, b []byte
	var conflicts int
	var pos [3]int
	for i, blk := range res.Blocks {
		for j, r := range []Range{blk.Base, blk.Mine, blk.Theirs} {
			if r.Start != pos[j] || r.End < r.Start {
				return fmt.Errorf("block %d: range %d is %v, expected start %d", i, j, r, pos[j])
			}
			pos[j] = r.End
		}
		o = append(o, blk.BaseText...)
		a = append(a, blk.MineText...)
		b = append(b, blk.TheirsText...)
		if blk.Kind == Conflict {
			conflicts++
		}
	}
	switch {
	case !bytes.Equal(o, []byte(base)):
		return fmt.Errorf("blocks don't cover base: %q", o)
	case !bytes.Equal(a, []byte(mine)):
		return fmt.Errorf("blocks don't cover mine: %q", a)
	case !bytes.Equal(b, []byte(theirs)):
		return fmt.Errorf("blocks don't cover theirs: %q", b)
	case conflicts != res.Conflicts:
		return fmt.Errorf("found %d conflict blocks, but result reports %d", conflicts, res.Conflicts)
	}
	return nil
}

func randomText(rng *rand.Rand, size int) string {
	var sb strings.Builder
	for range size {
		fmt.Fprintf(&sb, "%d\n", rng.IntN(20))
	}
	return sb.String()
}

func mutate(rng *rand.Rand, text string) string {
	var sb strings.Builder
	for line := range strings.Lines(text) {
		switch rng.IntN(10) {
		case 0: // delete
		case 1: // insert
			fmt.Fprintf(&sb, "%d\n%s", rng.IntN(20), line)
		case 2: // replace
			fmt.Fprintf(&sb, "%d\n", rng.IntN(20))
		default:
			sb.WriteString(line)
		}
	}
	return sb.String()
}
