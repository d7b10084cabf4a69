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
	"xdiff.dev/diff"
	"xdiff.dev/diff/internal/config"
)

// Labels sets the labels that are appended to the conflict markers, e.g. file names or revisions.
// Empty labels are omitted.
func Labels(mine, base, theirs string) diff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MineLabel = mine
		cfg.BaseLabel = base
		cfg.TheirsLabel = theirs
		return config.Labels
	}
}

// ShowBase includes the base version of conflicting regions between the mine and theirs sections,
// like diff3 -m does.
func ShowBase() diff.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.ShowBase = true
		return config.ShowBase
	}
}
