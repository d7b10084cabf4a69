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

// Package engine is the surface a version control system uses to compare, patch, and merge the
// contents of files.
//
// All operations work on byte buffers that are fully materialized in memory. Operations are
// synchronous and share no state, it's safe to call them concurrently. Reading inputs, walking
// directory trees, and compressing results are left to collaborators, see [Source], [Tree], and
// [Codec].
package engine

import (
	"errors"
	"fmt"
	"io"

	"xdiff.dev/diff"
	"xdiff.dev/diff/bindiff"
	"xdiff.dev/diff/merge"
	"xdiff.dev/diff/patch"
	"xdiff.dev/diff/textdiff"
)

// ErrInvalidArgument is returned if an argument is out of range.
var ErrInvalidArgument = errors.New("invalid argument")

// GenerateDiff compares original and revised line by line and returns the differences as a
// unified diff with contextLines lines of context around every change. If both are identical, the
// result is empty.
//
// The options supported by [textdiff.Unified] except [diff.Context] can be passed in opts.
func GenerateDiff(original, revised []byte, contextLines int, opts ...diff.Option) ([]byte, error) {
	if contextLines < 0 {
		return nil, fmt.Errorf("%w: negative number of context lines: %d", ErrInvalidArgument, contextLines)
	}
	opts = append(opts[:len(opts):len(opts)], diff.Context(contextLines))
	return textdiff.Unified(original, revised, opts...), nil
}

// ApplyDiff applies the unified diff patchBytes to original and returns the result together with
// the number of rejected hunks. Rejected hunks are written to rejectSink if it's not nil and leave
// their region of original untouched.
//
// The call fails with [patch.ErrMalformed] if the patch can't be parsed and, if [patch.Strict] is
// used, with [patch.ErrRejected] if any hunk was rejected. No output is returned on failure.
//
// The options supported by [patch.Patch.Apply] can be passed in opts.
func ApplyDiff(original, patchBytes []byte, mode patch.Mode, rejectSink io.Writer, opts ...diff.Option) ([]byte, int, error) {
	res, err := patch.Apply(original, patchBytes, mode, rejectSink, opts...)
	if err != nil {
		return nil, res.Rejects, err
	}
	return res.Output, res.Rejects, nil
}

// Merge3Way merges the changes from base to mine and from base to theirs. It returns the merged
// content and the number of conflicts. Conflicts are enclosed in conflict markers in the merged
// content, a merge without conflicts can be used as is.
//
// The options supported by [merge.Merge] can be passed in opts.
func Merge3Way(base, mine, theirs []byte, opts ...diff.Option) ([]byte, int) {
	res := merge.Merge(base, mine, theirs, opts...)
	return res.Bytes(), res.Conflicts
}

// GenerateBinaryDiff computes a byte oriented diff from original to revised. See [bindiff.Encode]
// for the format.
func GenerateBinaryDiff(original, revised []byte) []byte {
	return bindiff.Generate(original, revised)
}

// ApplyBinaryDiff applies a binary diff produced by [GenerateBinaryDiff] to original. It fails
// with [bindiff.ErrChecksumMismatch] if original or the result don't match the checksums recorded
// in opStream and with [bindiff.ErrMalformed] if opStream is corrupt.
func ApplyBinaryDiff(original, opStream []byte) ([]byte, error) {
	return bindiff.Apply(original, opStream)
}

// sampleSize is the number of bytes [IsBinary] looks at.
const sampleSize = 8192

// IsBinary reports whether data looks like binary content that should be compared with
// [GenerateBinaryDiff] instead of [GenerateDiff]. Only the beginning of data is inspected, data is
// considered binary if it contains control characters that don't usually appear in text.
func IsBinary(data []byte) bool {
	for _, c := range data[:min(len(data), sampleSize)] {
		switch {
		case c == '\t', c == '\n', c == '\v', c == '\f', c == '\r', c == 0x1b: // 0x1b: ANSI escape sequences
		case c < 0x20, c == 0x7f:
			return true
		}
	}
	return false
}
