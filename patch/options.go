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
	"xdiff.dev/diff"
	"xdiff.dev/diff/internal/config"
)

// Strict makes [Apply] fail with [ErrRejected] if any hunk is rejected. No output is produced in
// that case, but rejected hunks are still written to the reject sink.
func Strict() diff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Strict = true
		return config.Strict
	}
}

// Window sets the number of lines before and after the declared position of a hunk that are
// searched if the hunk doesn't match at its declared position. The default is 200.
func Window(n int) diff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Window = max(0, n)
		return config.Window
	}
}

// Fuzz allows up to n leading and trailing context lines of a hunk to be ignored if the hunk can't
// be located with all of its context. The default is 0.
func Fuzz(n int) diff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Fuzz = max(0, n)
		return config.Fuzz
	}
}

// TrackOffsets shifts the expected position of every hunk by the offset at which the previous hunk
// was applied. By default, every hunk is searched at the position declared in its header. Tracking
// offsets helps when a file was edited above the patched region, because the search window moves
// along with the edits.
func TrackOffsets() diff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.TrackOffsets = true
		return config.TrackOffsets
	}
}
