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

// Package byteview converts between string and []byte without copying.
//
// Slices returned by [Bytes] may alias a string and must never be modified.
package byteview

import "unsafe"

// Bytes returns the bytes of in. For a string, the result shares its memory.
func Bytes[T string | []byte](in T) []byte {
	switch in := any(in).(type) {
	case string:
		return unsafe.Slice(unsafe.StringData(in), len(in))
	case []byte:
		return in
	}
	panic("never reached")
}

// To returns b as T. For a string, the result shares the memory of b, so b must not be modified
// afterwards.
func To[T string | []byte](b []byte) T {
	var zero T
	if _, ok := any(zero).(string); ok {
		return T(unsafe.String(unsafe.SliceData(b), len(b)))
	}
	return T(b)
}

// Builder accumulates output and hands it out as T without a final copy.
type Builder[T string | []byte] struct {
	buf []byte
}

func (b *Builder[T]) Write(p []byte) {
	b.buf = append(b.buf, p...)
}

func (b *Builder[T]) WriteString(s string) {
	b.buf = append(b.buf, s...)
}

// Build returns the content and resets b.
func (b *Builder[T]) Build() T {
	out := To[T](b.buf)
	b.buf = nil
	return out
}
