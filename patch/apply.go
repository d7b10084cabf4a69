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

package patch

import (
	"bytes"
	"fmt"
	"io"

	"xdiff.dev/diff"
	"xdiff.dev/diff/internal/config"
	"xdiff.dev/diff/internal/linediff"
	"xdiff.dev/diff/internal/lines"
)

const applyFlags = config.Strict | config.Window | config.Fuzz | config.TrackOffsets | config.IgnoreWhitespace | config.NormalizeUnicode

// HunkResult describes how a single hunk was applied.
type HunkResult struct {
	Applied bool
	Offset  int // Number of lines between the declared and the actual position.
	Fuzz    int // Number of leading and trailing context lines that were ignored.
}

// Result is the result of applying a patch.
type Result struct {
	Output  []byte       // The patched input. Nil in strict mode if a hunk was rejected.
	Rejects int          // Number of rejected hunks.
	Hunks   []HunkResult // One entry per hunk in the patch.
}

// Apply parses patch and applies it to base. See [Patch.Apply].
func Apply(base, patch []byte, mode Mode, rejects io.Writer, opts ...diff.Option) (Result, error) {
	p, err := Parse(patch)
	if err != nil {
		return Result{}, err
	}
	return p.Apply(base, mode, rejects, opts...)
}

// Apply applies the patch to base and returns the patched output. The base is never modified.
//
// In [Forward] mode, every hunk expects its context and deleted lines in base and replaces them
// with its context and inserted lines. In [Reverse] mode, the roles of deleted and inserted lines
// are swapped.
//
// A hunk is first matched at the position declared in its header. If it doesn't match there, the
// lines around that position are searched, closest first. Hunks must match in order and can't
// overlap lines consumed by an earlier hunk. A hunk that can't be matched is rejected: its text is
// written to rejects (if not nil) and the corresponding region of base is left untouched. Rejects
// are counted in the result and are not an error, unless [Strict] is used.
//
// The following options are supported: [patch.Strict], [patch.Window], [patch.Fuzz],
// [patch.TrackOffsets], [textdiff.IgnoreWhitespace], [textdiff.NormalizeUnicode]
func (p *Patch) Apply(base []byte, mode Mode, rejects io.Writer, opts ...diff.Option) (Result, error) {
	cfg := config.FromOptions(opts, applyFlags)
	if mode != Forward && mode != Reverse {
		panic(fmt.Sprintf("unknown mode: %v", mode))
	}

	a := applier{
		base: linediff.Split(base, cfg),
		opts: linediff.Options(cfg),
		cfg:  cfg,
	}
	a.out.Grow(len(base))

	res := Result{Hunks: make([]HunkResult, len(p.Hunks))}
	for i := range p.Hunks {
		h := &p.Hunks[i]
		hr, ok := a.apply(h, mode)
		if !ok {
			res.Rejects++
			if rejects != nil {
				if _, err := rejects.Write(h.Raw); err != nil {
					return Result{}, fmt.Errorf("writing rejected hunk at line %d: %w", h.LineNo, err)
				}
			}
		}
		res.Hunks[i] = hr
	}
	a.out.Write(a.base.Lines(a.cursor, a.base.Len()))

	if cfg.Strict && res.Rejects > 0 {
		return res, fmt.Errorf("%w: %d of %d hunks", ErrRejected, res.Rejects, len(p.Hunks))
	}
	res.Output = a.out.Bytes()
	return res, nil
}

type applier struct {
	base   *lines.Sequence
	opts   lines.Options
	cfg    config.Config
	out    bytes.Buffer
	cursor int // Base lines before the cursor have been written to out.
	delta  int // Offset of the last applied hunk.
}

func (a *applier) apply(h *Hunk, mode Mode) (HunkResult, bool) {
	pre, pos, ins := h.image(mode)
	expected := pos
	if a.cfg.TrackOffsets {
		expected += a.delta
	}

	leading, trailing := h.context()
	for fuzz := 0; fuzz <= a.cfg.Fuzz; fuzz++ {
		front, back := min(fuzz, leading), min(fuzz, trailing)
		if fuzz > 0 && front+back == 0 || front+back > len(pre) {
			break
		}
		if fuzz > 0 && front < fuzz && back < fuzz {
			// Nothing new to drop compared to the previous iteration.
			break
		}
		pre0 := pre[front : len(pre)-back]
		at, ok := a.search(pre0, expected+front)
		if !ok {
			continue
		}
		a.out.Write(a.base.Lines(a.cursor, at))
		// Context lines are copied from base, they may differ from the patch in whitespace.
		k := at
		for _, l := range h.Lines[front : len(h.Lines)-back] {
			switch l.Op {
			case diff.Match:
				a.out.Write(a.base.Line(k))
				k++
			case ins:
				a.out.Write(l.Text)
			default:
				k++
			}
		}
		a.cursor = k
		a.delta = at - front - pos
		return HunkResult{Applied: true, Offset: at - front - pos, Fuzz: fuzz}, true
	}
	return HunkResult{}, false
}

// search finds the position closest to expected at which pre matches base and that doesn't
// overlap consumed lines.
func (a *applier) search(pre [][]byte, expected int) (int, bool) {
	n := a.base.Len()
	for off := 0; off <= a.cfg.Window; off++ {
		if at := expected - off; at >= a.cursor && at+len(pre) <= n && a.matches(pre, at) {
			return at, true
		}
		if at := expected + off; off > 0 && at >= a.cursor && at+len(pre) <= n && a.matches(pre, at) {
			return at, true
		}
		if expected-off < a.cursor && expected+off+len(pre) > n {
			break // No candidates left.
		}
	}
	return 0, false
}

func (a *applier) matches(pre [][]byte, at int) bool {
	for i, line := range pre {
		if !lines.EqualLines(a.base.Line(at+i), line, a.opts) {
			return false
		}
	}
	return true
}
