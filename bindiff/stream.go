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
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
)

const magic = "XBD1"

// headerSize is the size of magic, source length, target length, and checksum.
const headerSize = len(magic) + 8 + 8 + 4

// Patch is a binary diff together with the information needed to verify it is applied correctly.
type Patch struct {
	SourceLen int    // Length of the source the diff was computed for.
	TargetLen int    // Length of the target.
	Checksum  uint32 // CRC-32 (IEEE) of the target.
	Ops       []Op
}

// NewPatch returns the patch for ops, which build target from source.
func NewPatch(source, target []byte, ops []Op) Patch {
	return Patch{
		SourceLen: len(source),
		TargetLen: len(target),
		Checksum:  crc32.ChecksumIEEE(target),
		Ops:       ops,
	}
}

// Encode encodes p. All integers are little endian:
//
//	"XBD1" | source length u64 | target length u64 | target CRC-32 u32 | ops
//
// where every op is either
//
//	1 u8 | source offset u64 | length u32      (copy)
//	2 u8 | length u32 | bytes                  (insert)
//
// Operations longer than fit into a u32 are split.
func Encode(p Patch) []byte {
	size := headerSize
	for _, op := range p.Ops {
		size += 1 + 8 + 4
		if op.Kind == Insert {
			size += len(op.Data)
		}
	}
	b := make([]byte, 0, size)
	b = append(b, magic...)
	b = binary.LittleEndian.AppendUint64(b, uint64(p.SourceLen))
	b = binary.LittleEndian.AppendUint64(b, uint64(p.TargetLen))
	b = binary.LittleEndian.AppendUint32(b, p.Checksum)
	for _, op := range p.Ops {
		switch op.Kind {
		case Copy:
			for off, n := op.Off, op.Len; n > 0; {
				k := int(min(uint64(n), math.MaxUint32))
				b = append(b, byte(Copy))
				b = binary.LittleEndian.AppendUint64(b, uint64(off))
				b = binary.LittleEndian.AppendUint32(b, uint32(k))
				off += k
				n -= k
			}
		case Insert:
			for data := op.Data; len(data) > 0; {
				k := int(min(uint64(len(data)), math.MaxUint32))
				b = append(b, byte(Insert))
				b = binary.LittleEndian.AppendUint32(b, uint32(k))
				b = append(b, data[:k]...)
				data = data[k:]
			}
		default:
			panic(fmt.Sprintf("unknown op kind: %v", op.Kind))
		}
	}
	return b
}

// Decode decodes a patch produced by [Encode]. Inserted data aliases b.
func Decode(b []byte) (Patch, error) {
	if len(b) < headerSize || string(b[:len(magic)]) != magic {
		return Patch{}, fmt.Errorf("%w: missing header", ErrMalformed)
	}
	d := decoder{b: b[len(magic):], pos: len(magic)}
	srcLen, tgtLen := d.readUint64(), d.readUint64()
	p := Patch{Checksum: d.readUint32()}
	if srcLen > math.MaxInt || tgtLen > math.MaxInt {
		return Patch{}, fmt.Errorf("%w: length out of range", ErrMalformed)
	}
	p.SourceLen, p.TargetLen = int(srcLen), int(tgtLen)

	for len(d.b) > 0 {
		start := d.pos
		switch kind := OpKind(d.readByte()); kind {
		case Copy:
			if len(d.b) < 8+4 {
				return Patch{}, fmt.Errorf("%w: truncated copy at offset %d", ErrMalformed, start)
			}
			off, n := d.readUint64(), d.readUint32()
			if off > math.MaxInt {
				return Patch{}, fmt.Errorf("%w: copy offset out of range at offset %d", ErrMalformed, start)
			}
			p.Ops = append(p.Ops, Op{Kind: Copy, Off: int(off), Len: int(n)})
		case Insert:
			if len(d.b) < 4 {
				return Patch{}, fmt.Errorf("%w: truncated insert at offset %d", ErrMalformed, start)
			}
			n := d.readUint32()
			if uint64(len(d.b)) < uint64(n) {
				return Patch{}, fmt.Errorf("%w: truncated insert at offset %d", ErrMalformed, start)
			}
			p.Ops = append(p.Ops, Op{Kind: Insert, Data: d.readBytes(int(n))})
		default:
			return Patch{}, fmt.Errorf("%w: unknown op %d at offset %d", ErrMalformed, kind, start)
		}
	}
	return p, nil
}

// decoder reads from b. Callers check the remaining length before reading.
type decoder struct {
	b   []byte
	pos int // Offset of b in the encoded patch.
}

func (d *decoder) readByte() byte {
	c := d.b[0]
	d.skip(1)
	return c
}

func (d *decoder) readUint32() uint32 {
	v := binary.LittleEndian.Uint32(d.b)
	d.skip(4)
	return v
}

func (d *decoder) readUint64() uint64 {
	v := binary.LittleEndian.Uint64(d.b)
	d.skip(8)
	return v
}

func (d *decoder) readBytes(n int) []byte {
	v := d.b[:n:n]
	d.skip(n)
	return v
}

func (d *decoder) skip(n int) {
	d.b = d.b[n:]
	d.pos += n
}
