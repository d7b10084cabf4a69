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

// Package lines splits byte buffers into line records and assigns equivalence classes to them.
//
// A record borrows from the buffer it was split from, it never owns or modifies any bytes. CR, LF,
// and CRLF terminate a line and the terminator belongs to the record it ends. The last record may
// lack a terminator.
package lines

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
	"xdiff.dev/diff/internal/rollhash"
)

// Options control how records are compared. They never change the stored content.
type Options struct {
	// Compare records without regard to whitespace (including line terminators).
	IgnoreWhitespace bool

	// Compare records in Unicode normalization form C.
	NFC bool
}

// Record is a single line in a buffer.
type Record struct {
	Off, Len int    // Position of the line in the buffer, including the terminator.
	Hash     uint64 // Hash of the comparison key of the line. Only a bucket key.
}

// Sequence is the ordered list of records partitioning a buffer.
type Sequence struct {
	data []byte
	recs []Record
	opts Options
}

// Split splits data into records. The returned sequence retains data.
func Split(data []byte, opts Options) *Sequence {
	s := &Sequence{
		data: data,
		recs: make([]Record, 0, bytes.Count(data, []byte{'\n'})+1),
		opts: opts,
	}
	var scratch []byte
	for off := 0; off < len(data); {
		end := off
		for end < len(data) && data[end] != '\n' && data[end] != '\r' {
			end++
		}
		switch {
		case end == len(data):
			// Missing terminator.
		case data[end] == '\r' && end+1 < len(data) && data[end+1] == '\n':
			end += 2
		default:
			end++
		}
		var h uint64
		if opts == (Options{}) {
			h = rollhash.Sum(data[off:end])
		} else {
			scratch = appendKey(scratch[:0], data[off:end], opts)
			h = rollhash.Sum(scratch)
		}
		s.recs = append(s.recs, Record{Off: off, Len: end - off, Hash: h})
		off = end
	}
	return s
}

// Len returns the number of records.
func (s *Sequence) Len() int { return len(s.recs) }

// Record returns the i-th record.
func (s *Sequence) Record(i int) Record { return s.recs[i] }

// Bytes returns the buffer the sequence was split from.
func (s *Sequence) Bytes() []byte { return s.data }

// Line returns the content of the i-th record, including its terminator.
func (s *Sequence) Line(i int) []byte {
	r := s.recs[i]
	return s.data[r.Off : r.Off+r.Len : r.Off+r.Len]
}

// Offset returns the buffer offset of the i-th record. Offset(Len()) is the length of the buffer.
func (s *Sequence) Offset(i int) int {
	if i == len(s.recs) {
		return len(s.data)
	}
	return s.recs[i].Off
}

// Lines returns the content of the records i to j (exclusive) as a single slice of the buffer.
func (s *Sequence) Lines(i, j int) []byte {
	start, end := s.Offset(i), s.Offset(j)
	return s.data[start:end:end]
}

// MissingNewline reports whether the last record lacks a line terminator.
func (s *Sequence) MissingNewline() bool {
	if len(s.recs) == 0 {
		return false
	}
	return !HasTerminator(s.Line(len(s.recs) - 1))
}

// Equal reports whether the i-th record of s and the j-th record of t compare equal under the
// options of s.
func Equal(s *Sequence, i int, t *Sequence, j int) bool {
	a, b := s.recs[i], t.recs[j]
	if a.Hash != b.Hash {
		return false
	}
	return EqualLines(s.Line(i), t.Line(j), s.opts)
}

// EqualLines reports whether a and b compare equal under opts.
func EqualLines(a, b []byte, opts Options) bool {
	switch {
	case opts == (Options{}):
		return bytes.Equal(a, b)
	case !opts.NFC:
		return equalIgnoreWhitespace(a, b)
	default:
		return bytes.Equal(appendKey(nil, a, opts), appendKey(nil, b, opts))
	}
}

// HasTerminator reports whether line ends in a line terminator.
func HasTerminator(line []byte) bool {
	if len(line) == 0 {
		return false
	}
	c := line[len(line)-1]
	return c == '\n' || c == '\r'
}

// TrimTerminator removes the line terminator from line, if there is one.
func TrimTerminator(line []byte) []byte {
	switch {
	case bytes.HasSuffix(line, []byte("\r\n")):
		return line[:len(line)-2]
	case HasTerminator(line):
		return line[:len(line)-1]
	default:
		return line
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func equalIgnoreWhitespace(a, b []byte) bool {
	i, j := 0, 0
	for {
		for i < len(a) && isSpace(a[i]) {
			i++
		}
		for j < len(b) && isSpace(b[j]) {
			j++
		}
		if i == len(a) || j == len(b) {
			return i == len(a) && j == len(b)
		}
		if a[i] != b[j] {
			return false
		}
		i++
		j++
	}
}

// appendKey appends the comparison key for line to dst.
func appendKey(dst, line []byte, opts Options) []byte {
	if opts.NFC && !norm.NFC.IsNormal(line) {
		line = norm.NFC.Bytes(line)
	}
	if !opts.IgnoreWhitespace {
		return append(dst, line...)
	}
	for _, c := range line {
		if !isSpace(c) {
			dst = append(dst, c)
		}
	}
	return dst
}
