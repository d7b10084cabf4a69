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
	"fmt"
	"io"
)

// Codec is a compression layer for stored patches.
type Codec interface {
	// NewWriter returns a writer that compresses everything written to it into w. The returned
	// writer must be closed to flush all data.
	NewWriter(w io.Writer) (io.WriteCloser, error)

	// NewReader returns a reader that decompresses r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Identity is a [Codec] that stores data as is.
var Identity Codec = identity{}

type identity struct{}

func (identity) NewWriter(w io.Writer) (io.WriteCloser, error) { return nopWriteCloser{w}, nil }

func (identity) NewReader(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(r), nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Store writes patches to and reads patches from storage through a [Codec]. The zero value uses
// [Identity].
type Store struct {
	Codec Codec
}

func (s Store) codec() Codec {
	if s.Codec == nil {
		return Identity
	}
	return s.Codec
}

// Put encodes data and writes it to w.
func (s Store) Put(w io.Writer, data []byte) error {
	cw, err := s.codec().NewWriter(w)
	if err != nil {
		return fmt.Errorf("creating encoder: %w", err)
	}
	if _, err := cw.Write(data); err != nil {
		cw.Close()
		return fmt.Errorf("encoding: %w", err)
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	return nil
}

// Get reads and decodes data from src. Failures are reported like in [Load].
func (s Store) Get(src Source) ([]byte, error) {
	return Load(decoded{src, s.codec()})
}

// decoded is a [Source] that decodes the content of another source.
type decoded struct {
	src   Source
	codec Codec
}

func (d decoded) Open() (io.ReadCloser, error) {
	rc, err := d.src.Open()
	if err != nil {
		return nil, err
	}
	cr, err := d.codec.NewReader(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("creating decoder: %w", err)
	}
	return readCloser{cr, rc}, nil
}

func (d decoded) String() string { return fmt.Sprint(d.src) }

// readCloser reads from a decoder and closes both the decoder and the underlying reader.
type readCloser struct {
	io.ReadCloser
	under io.Closer
}

func (rc readCloser) Close() error {
	err := rc.ReadCloser.Close()
	if uerr := rc.under.Close(); err == nil {
		err = uerr
	}
	return err
}
