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

// Package color provides options to configure the colors used by textdiff.TerminalColors.
//
// Colors are given as SGR parameters, e.g. HunkHeaders(Bold, FgMagenta).
package color

import (
	"strconv"
	"strings"

	"xdiff.dev/diff/internal/config"
)

// SGR parameters for common attributes and colors.
const (
	Reset     = 0
	Bold      = 1
	Faint     = 2
	Underline = 4

	FgBlack   = 30
	FgRed     = 31
	FgGreen   = 32
	FgYellow  = 33
	FgBlue    = 34
	FgMagenta = 35
	FgCyan    = 36
	FgWhite   = 37
)

// Option sets the color of one part of a unified diff for textdiff.TerminalColors.
type Option func(*config.ColorConfig)

func set(field func(*config.ColorConfig) *string, params []int) Option {
	code := Code(params...)
	return func(cc *config.ColorConfig) { *field(cc) = code }
}

// HunkHeaders colors the "@@ -l,s +l,s @@" hunk headers.
func HunkHeaders(params ...int) Option {
	return set(func(cc *config.ColorConfig) *string { return &cc.HunkHeader }, params)
}

// Matches colors context lines, which are uncolored by default.
func Matches(params ...int) Option {
	return set(func(cc *config.ColorConfig) *string { return &cc.Match }, params)
}

// Deletes colors deleted lines.
func Deletes(params ...int) Option {
	return set(func(cc *config.ColorConfig) *string { return &cc.Delete }, params)
}

// Inserts colors inserted lines.
func Inserts(params ...int) Option {
	return set(func(cc *config.ColorConfig) *string { return &cc.Insert }, params)
}

// Code returns the escape sequence that selects the SGR parameters. Without parameters, it returns
// the empty string, which disables coloring.
func Code(params ...int) string {
	if len(params) == 0 {
		return ""
	}
	codes := make([]string, len(params))
	for i, p := range params {
		codes[i] = strconv.Itoa(p)
	}
	return "\033[" + strings.Join(codes, ";") + "m"
}
