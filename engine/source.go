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
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"time"
)

// ErrInputUnreadable is returned if a [Source] fails to supply its content.
var ErrInputUnreadable = errors.New("input unreadable")

// Source supplies the content of an input.
type Source interface {
	Open() (io.ReadCloser, error)
}

// Bytes is a [Source] for content that is already in memory.
type Bytes []byte

func (b Bytes) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (b Bytes) String() string { return fmt.Sprintf("bytes(%d)", len(b)) }

// File is a [Source] for the content of a file.
type File string

func (f File) Open() (io.ReadCloser, error) { return os.Open(string(f)) }

func (f File) String() string { return string(f) }

// Load reads the complete content of src. The reader returned by src is always closed. Any
// failure to open, read, or close it results in an error wrapping [ErrInputUnreadable].
func Load(src Source) (data []byte, err error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %w", ErrInputUnreadable, src, err)
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			data, err = nil, fmt.Errorf("%w: %v: %w", ErrInputUnreadable, src, cerr)
		}
	}()

	data, err = io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v: %w", ErrInputUnreadable, src, err)
	}
	return data, nil
}

// EntryKind is the kind of a tree [Entry].
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=EntryKind
type EntryKind int

const (
	RegularFile EntryKind = iota
	Directory
	Symlink
)

// Entry describes a single entry of a [Tree].
type Entry struct {
	Path    string // Slash separated path relative to the root of the tree.
	Kind    EntryKind
	Size    int64
	ModTime time.Time
}

// Tree enumerates the entries of a directory tree. A tree is lazy, finite, and can only be
// iterated once. An error ends the iteration of the subtree it occurred in.
type Tree = iter.Seq2[Entry, error]
