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

package textdiff

import (
	"xdiff.dev/diff"
	"xdiff.dev/diff/internal/config"
	"xdiff.dev/diff/textdiff/color"
)

// IndentHeuristic applies a heuristic to make diffs easier to read by improving the placement of
// edit boundaries.
//
// This implements a heuristic that shifts edit boundaries to align with indentation patterns,
// making the resulting diff more readable for humans. The heuristic is particularly effective with
// code and structured text.
func IndentHeuristic() diff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.IndentHeuristic = true
		return config.IndentHeuristic
	}
}

// IgnoreWhitespace compares lines without regard to whitespace, including line terminators. The
// output always contains the original lines.
//
// The option is also understood by the patch and merge packages, where it relaxes how context lines
// are matched and how base regions are aligned respectively.
func IgnoreWhitespace() diff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.IgnoreWhitespace = true
		return config.IgnoreWhitespace
	}
}

// NormalizeUnicode compares lines after converting them to Unicode normalization form C, so that
// precomposed and decomposed spellings of the same text compare equal. The output always contains
// the original lines.
func NormalizeUnicode() diff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.NormalizeUnicode = true
		return config.NormalizeUnicode
	}
}

// TerminalColors colors the output of [Unified] using ANSI escape sequences. Without further
// options, hunk headers are cyan, deletions red, and insertions green.
//
// Colored output is meant for display, it can't be applied as a patch.
func TerminalColors(opts ...color.Option) diff.Option {
	cc := config.ColorConfig{
		HunkHeader: color.Code(color.FgCyan),
		Delete:     color.Code(color.FgRed),
		Insert:     color.Code(color.FgGreen),
	}
	for _, opt := range opts {
		opt(&cc)
	}
	return func(cfg *config.Config) config.Flag {
		cfg.Colors = &cc
		return config.Colors
	}
}
