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

package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"xdiff.dev/diff/engine"
)

type walked struct {
	Path string
	Kind engine.EntryKind
	Size int64
}

func TestWalk(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	for name, data := range map[string]string{"a.txt": "a\n", "sub/b.bin": "\x00\x01\x02"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var got []walked
	for e, err := range walk(root) {
		if err != nil {
			t.Fatalf("walk(%q) yielded error: %v", root, err)
		}
		w := walked{Path: e.Path, Kind: e.Kind}
		if e.Kind == engine.RegularFile {
			w.Size = e.Size
		}
		got = append(got, w)
	}
	want := []walked{
		{".", engine.Directory, 0},
		{"a.txt", engine.RegularFile, 2},
		{"sub", engine.Directory, 0},
		{"sub/b.bin", engine.RegularFile, 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("walk(%q) differs [-want,+got]:\n%s", root, diff)
	}
}

func TestWalkYieldsErrors(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")
	n := 0
	for e, err := range walk(root) {
		n++
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("walk(%q) yielded %v, want fs.ErrNotExist", root, err)
		}
		if e.Path != root {
			t.Errorf("walk(%q) yielded path %q for the error, want %q", root, e.Path, root)
		}
	}
	if n != 1 {
		t.Errorf("walk(%q) yielded %d entries, want 1", root, n)
	}
}

func TestWalkStops(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	n := 0
	for range walk(root) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("walk(%q) yielded %d entries before the break, want 2", root, n)
	}
}
