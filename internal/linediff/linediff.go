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

// Package linediff compares byte buffers line by line. It's the shared pipeline behind the
// textdiff, patch, and merge packages: split into records, classify, run the diff, and optionally
// apply the indent heuristic.
package linediff

import (
	"xdiff.dev/diff/internal/config"
	"xdiff.dev/diff/internal/core"
	"xdiff.dev/diff/internal/indentheuristic"
	"xdiff.dev/diff/internal/lines"
)

// Options returns the tokenizer options for cfg.
func Options(cfg config.Config) lines.Options {
	return lines.Options{
		IgnoreWhitespace: cfg.IgnoreWhitespace,
		NFC:              cfg.NormalizeUnicode,
	}
}

// Split splits data into records using the comparison options in cfg.
func Split(data []byte, cfg config.Config) *lines.Sequence {
	return lines.Split(data, Options(cfg))
}

// Diff compares x and y and returns the result vectors.
func Diff(x, y *lines.Sequence, cfg config.Config) (rx, ry []bool) {
	cls := lines.Classify(x, y)
	rx, ry = core.Diff(cls[0], cls[1], cfg)
	if cfg.IndentHeuristic {
		indentheuristic.Apply(x, y, cls[0], cls[1], rx, ry)
	}
	return rx, ry
}
