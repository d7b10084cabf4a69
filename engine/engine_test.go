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

package engine

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"xdiff.dev/diff/bindiff"
	"xdiff.dev/diff/patch"
)

func TestDiffRoundTrip(t *testing.T) {
	for _, size := range []int{0, 1, 10, 100, 1000} {
		t.Run(fmt.Sprintf("size=%d", size), func(t *testing.T) {
			rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(t.Name()))))
			for range 20 {
				a := randomText(rng, size)
				b := mutate(rng, a)
				for context := range 4 {
					p, err := GenerateDiff(a, b, context)
					if err != nil {
						t.Fatalf("GenerateDiff(...) failed: %v", err)
					}

					got, rejects, err := ApplyDiff(a, p, patch.Forward, nil)
					if err != nil || rejects != 0 {
						t.Fatalf("ApplyDiff(a, Forward) = %d rejects, %v", rejects, err)
					}
					if diff := cmp.Diff(string(b), string(got)); diff != "" {
						t.Fatalf("ApplyDiff(a, Forward) is different [-want,+got]:\n%s\npatch:\n%s", diff, p)
					}

					got, rejects, err = ApplyDiff(b, p, patch.Reverse, nil)
					if err != nil || rejects != 0 {
						t.Fatalf("ApplyDiff(b, Reverse) = %d rejects, %v", rejects, err)
					}
					if diff := cmp.Diff(string(a), string(got)); diff != "" {
						t.Fatalf("ApplyDiff(b, Reverse) is different [-want,+got]:\n%s\npatch:\n%s", diff, p)
					}
				}

				p, err := GenerateDiff(a, a, 3)
				if err != nil {
					t.Fatalf("GenerateDiff(...) failed: %v", err)
				}
				if len(p) != 0 {
					t.Fatalf("GenerateDiff(a, a) = %q, want empty", p)
				}
				got, rejects, err := ApplyDiff(a, nil, patch.Forward, nil)
				if err != nil || rejects != 0 || !bytes.Equal(got, a) {
					t.Fatalf("ApplyDiff(a, empty) = %q, %d, %v, want input unchanged", got, rejects, err)
				}
			}
		})
	}
}

func TestGenerateDiffNegativeContext(t *testing.T) {
	if _, err := GenerateDiff([]byte("a\n"), []byte("b\n"), -1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("GenerateDiff(..., -1) = %v, want ErrInvalidArgument", err)
	}
}

func TestApplyDiffRejected(t *testing.T) {
	original := []byte("a\nb\nc\n")
	p, err := GenerateDiff(original, []byte("a\nB\nc\n"), 1)
	if err != nil {
		t.Fatalf("GenerateDiff(...) failed: %v", err)
	}

	// The context no longer matches.
	edited := []byte("A\nb\nC\n")
	var rejects bytes.Buffer
	got, n, err := ApplyDiff(edited, p, patch.Forward, &rejects)
	if err != nil {
		t.Fatalf("ApplyDiff(...) failed: %v", err)
	}
	if n != 1 {
		t.Errorf("ApplyDiff(...) rejected %d hunks, want 1", n)
	}
	if !bytes.Equal(got, edited) {
		t.Errorf("ApplyDiff(...) = %q, want %q", got, edited)
	}
	if !bytes.Equal(rejects.Bytes(), p) {
		t.Errorf("rejects = %q, want %q", rejects.Bytes(), p)
	}

	got, n, err = ApplyDiff(edited, p, patch.Forward, nil, patch.Strict())
	if !errors.Is(err, patch.ErrRejected) || got != nil || n != 1 {
		t.Errorf("ApplyDiff(..., Strict) = %q, %d, %v, want nil, 1, ErrRejected", got, n, err)
	}

	if _, _, err := ApplyDiff(edited, []byte("@@ -1 +1 @@\n#\n"), patch.Forward, nil); !errors.Is(err, patch.ErrMalformed) {
		t.Errorf("ApplyDiff(malformed) = %v, want ErrMalformed", err)
	}
}

func TestMerge3Way(t *testing.T) {
	tests := []struct {
		name               string
		base, mine, theirs string
		want               string
		wantConflicts      int
	}{
		{"one-side", "a\nb\nc\n", "a\nX\nc\n", "a\nb\nc\n", "a\nX\nc\n", 0},
		{"conflict", "a\nb\nc\n", "a\nX\nc\n", "a\nY\nc\n", "a\n<<<<<<<\nX\n=======\nY\n>>>>>>>\nc\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n := Merge3Way([]byte(tt.base), []byte(tt.mine), []byte(tt.theirs))
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("Merge3Way(...) is different [-want,+got]:\n%s", diff)
			}
			if n != tt.wantConflicts {
				t.Errorf("Merge3Way(...) has %d conflicts, want %d", n, tt.wantConflicts)
			}
		})
	}
}

func TestMerge3WayProperties(t *testing.T) {
	rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(t.Name()))))
	for range 50 {
		base := randomText(rng, rng.IntN(200))
		mine := mutate(rng, base)

		got, n := Merge3Way(base, base, base)
		if n != 0 || !bytes.Equal(got, base) {
			t.Fatalf("Merge3Way(x, x, x) = %q, %d, want %q, 0", got, n, base)
		}
		got, n = Merge3Way(base, mine, base)
		if n != 0 || !bytes.Equal(got, mine) {
			t.Fatalf("Merge3Way(base, mine, base) = %q, %d, want %q, 0", got, n, mine)
		}
	}
}

func TestBinaryDiffRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(t.Name()))))
	for range 50 {
		a := randomBytes(rng, rng.IntN(5000))
		b := append(bytes.Clone(a[:len(a)/2]), randomBytes(rng, rng.IntN(100))...)
		b = append(b, a[len(a)/3:]...)

		got, err := ApplyBinaryDiff(a, GenerateBinaryDiff(a, b))
		if err != nil {
			t.Fatalf("ApplyBinaryDiff(...) failed: %v", err)
		}
		if !bytes.Equal(got, b) {
			t.Fatalf("ApplyBinaryDiff(...) doesn't reproduce the revised input")
		}
	}

	p := GenerateBinaryDiff([]byte("0123456789abcdef0123456789"), []byte("0123456789abcdef"))
	if _, err := ApplyBinaryDiff([]byte("0123456789ABCDEF0123456789"), p); !errors.Is(err, bindiff.ErrChecksumMismatch) {
		t.Errorf("ApplyBinaryDiff(wrong original) = %v, want ErrChecksumMismatch", err)
	}
}

func TestIsBinary(t *testing.T) {
	tests := []struct {
		data string
		want bool
	}{
		{"", false},
		{"hello\r\nworld\n", false},
		{"\tindented\f\n", false},
		{"caf\u00e9\n", false},
		{"\x1b[31mred\x1b[0m\n", false},
		{"PNG\x00\x01\x02", true},
		{"text\x07bell", true},
		{"del\x7f", true},
		{strings.Repeat("a", sampleSize) + "\x00", false},
	}
	for _, tt := range tests {
		if got := IsBinary([]byte(tt.data)); got != tt.want {
			t.Errorf("IsBinary(%.20q) = %v, want %v", tt.data, got, tt.want)
		}
	}
}

func randomText(rng *rand.Rand, size int) []byte {
	var b []byte
	for range size {
		b = fmt.Appendf(b, "%d\n", rng.IntN(20))
	}
	if size > 0 && rng.IntN(4) == 0 {
		b = b[:len(b)-1]
	}
	return b
}

func mutate(rng *rand.Rand, text []byte) []byte {
	var out []byte
	for line := range bytes.Lines(text) {
		switch rng.IntN(10) {
		case 0: // delete
		case 1: // insert
			out = fmt.Appendf(out, "%d\n%s", rng.IntN(20), line)
		case 2: // replace
			out = fmt.Appendf(out, "%d\n", rng.IntN(20))
		default:
			out = append(out, line...)
		}
	}
	return out
}

func randomBytes(rng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(rng.Uint32())
	}
	return b
}
