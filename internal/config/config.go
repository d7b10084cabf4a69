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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// the Option functions in the diff, textdiff, patch, and merge packages.
package config

import "fmt"

// Mode describes the mode of the diff algorithm.
type Mode int

const (
	// Limit the cost for large inputs with many differences by applying heuristics that reduce the
	// time complexity at the cost of non-minimal diffs.
	ModeDefault Mode = iota

	// Find a minimal diff irrespective of the cost.
	ModeMinimal

	// Find a diff as fast as possible.
	ModeFast
)

// ColorConfig holds the ANSI escape sequences used to color unified diffs. An empty string means
// no color.
type ColorConfig struct {
	HunkHeader string
	Match      string
	Delete     string
	Insert     string
}

// Config collects all configurable parameters for comparison functions in this module.
type Config struct {
	// Context is the number of matches to include as a prefix and postfix for hunks returned.
	Context int

	// Diff algorithm mode.
	Mode Mode

	// If set, textdiff will apply ident heuristics.
	IndentHeuristic bool

	// If set, lines are compared without regard to whitespace.
	IgnoreWhitespace bool

	// If set, lines are compared after Unicode NFC normalization.
	NormalizeUnicode bool

	// If set, unified diffs are colored using these sequences.
	Colors *ColorConfig

	// Patch application: fail if any hunk is rejected.
	Strict bool

	// Patch application: number of lines around the expected position that are searched for a
	// hunk that doesn't apply at its declared offset.
	Window int

	// Patch application: number of leading and trailing context lines that may be ignored.
	Fuzz int

	// Patch application: shift the expected position of a hunk by the offset at which the
	// previous hunk was applied instead of using pristine base offsets.
	TrackOffsets bool

	// Merge: labels appended to the conflict markers.
	MineLabel, BaseLabel, TheirsLabel string

	// Merge: include the base section in conflicts.
	ShowBase bool

	// If set, the default mode segments inputs by their unique records regardless of their size.
	// Only used in tests.
	ForceAnchoring bool
}

// Default is the default configuration.
var Default = Config{
	Context: 3,
	Mode:    ModeDefault,
	Window:  200,
}

// Flag identifies the option that set a config entry. Functions reject options whose flag they
// don't support.
type Flag int

const (
	Context Flag = 1 << iota
	Minimal
	Fast
	IndentHeuristic
	IgnoreWhitespace
	NormalizeUnicode
	Colors
	Strict
	Window
	Fuzz
	TrackOffsets
	Labels
	ShowBase
)

// The public name of the option behind every flag, in flag order.
var flagNames = [...]string{
	"diff.Context",
	"diff.Minimal",
	"diff.Fast",
	"textdiff.IndentHeuristic",
	"textdiff.IgnoreWhitespace",
	"textdiff.NormalizeUnicode",
	"textdiff.TerminalColors",
	"patch.Strict",
	"patch.Window",
	"patch.Fuzz",
	"patch.TrackOffsets",
	"merge.Labels",
	"merge.ShowBase",
}

func (f Flag) String() string {
	for i, name := range flagNames {
		if f == 1<<i {
			return name
		}
	}
	return fmt.Sprintf("Flag(%#x)", int(f))
}

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions applies opts to [Default]. It panics if an option isn't in allowed.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		if f := opt(&cfg); f&^allowed != 0 {
			panic(fmt.Sprintf("option %v not allowed here", f))
		}
	}
	return cfg
}
