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

package bindiff

import (
	"fmt"
	"hash/crc32"
)

// Replay builds the target from source and ops. The result has exactly size bytes, if the
// operations produce a different number of bytes, Replay fails with [ErrChecksumMismatch]. A copy
// outside of source results in [ErrMalformed]. No partial output is returned on failure.
func Replay(source []byte, ops []Op, size int) ([]byte, error) {
	n := 0
	for i, op := range ops {
		switch op.Kind {
		case Copy:
			if op.Off < 0 || op.Len < 0 || op.Off > len(source) || op.Len > len(source)-op.Off {
				return nil, fmt.Errorf("%w: op %d copies [%d, %d) from a source of length %d", ErrMalformed, i, op.Off, op.Off+op.Len, len(source))
			}
		case Insert:
		default:
			return nil, fmt.Errorf("%w: op %d has unknown kind %v", ErrMalformed, i, op.Kind)
		}
		n += op.Size()
	}
	if n != size {
		return nil, fmt.Errorf("%w: operations produce %d bytes, expected %d", ErrChecksumMismatch, n, size)
	}

	out := make([]byte, 0, size)
	for _, op := range ops {
		if op.Kind == Copy {
			out = append(out, source[op.Off:op.Off+op.Len]...)
		} else {
			out = append(out, op.Data...)
		}
	}
	return out, nil
}

// Apply decodes the binary diff p and applies it to source. It fails with [ErrChecksumMismatch]
// if source isn't the source the diff was computed for or if the result doesn't match the target
// and with [ErrMalformed] if p can't be decoded.
func Apply(source, p []byte) ([]byte, error) {
	patch, err := Decode(p)
	if err != nil {
		return nil, err
	}
	if patch.SourceLen != len(source) {
		return nil, fmt.Errorf("%w: source has length %d, expected %d", ErrChecksumMismatch, len(source), patch.SourceLen)
	}
	out, err := Replay(source, patch.Ops, patch.TargetLen)
	if err != nil {
		return nil, err
	}
	if sum := crc32.ChecksumIEEE(out); sum != patch.Checksum {
		return nil, fmt.Errorf("%w: target checksum is %08x, expected %08x", ErrChecksumMismatch, sum, patch.Checksum)
	}
	return out, nil
}
