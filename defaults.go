// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package rdst

import "math"

// Unsigned integer keyers: little-endian byte decomposition, level 0 least
// significant.

type Uint8Key struct{}

func (Uint8Key) Levels() int                   { return 1 }
func (Uint8Key) ByteAt(v uint8, level int) byte { return v }

type Uint16Key struct{}

func (Uint16Key) Levels() int { return 2 }
func (Uint16Key) ByteAt(v uint16, level int) byte {
	return byte(v >> (8 * level))
}

type Uint32Key struct{}

func (Uint32Key) Levels() int { return 4 }
func (Uint32Key) ByteAt(v uint32, level int) byte {
	return byte(v >> (8 * level))
}

type Uint64Key struct{}

func (Uint64Key) Levels() int { return 8 }
func (Uint64Key) ByteAt(v uint64, level int) byte {
	return byte(v >> (8 * level))
}

type UintptrKey struct{}

func (UintptrKey) Levels() int { return 8 }
func (UintptrKey) ByteAt(v uintptr, level int) byte {
	return byte(v >> (8 * level))
}

// Signed integer keyers: two's-complement byte order already matches
// unsigned byte order everywhere except at the sign bit, so the byte
// carrying the sign bit (the most significant one) has that bit flipped;
// negative numbers then sort before non-negative ones under plain
// unsigned-byte lexicographic order.

type Int8Key struct{}

func (Int8Key) Levels() int { return 1 }
func (Int8Key) ByteAt(v int8, level int) byte {
	return byte(v) ^ 0x80
}

type Int16Key struct{}

func (Int16Key) Levels() int { return 2 }
func (Int16Key) ByteAt(v int16, level int) byte {
	b := byte(uint16(v) >> (8 * level))
	if level == 1 {
		b ^= 0x80
	}
	return b
}

type Int32Key struct{}

func (Int32Key) Levels() int { return 4 }
func (Int32Key) ByteAt(v int32, level int) byte {
	b := byte(uint32(v) >> (8 * level))
	if level == 3 {
		b ^= 0x80
	}
	return b
}

type Int64Key struct{}

func (Int64Key) Levels() int { return 8 }
func (Int64Key) ByteAt(v int64, level int) byte {
	b := byte(uint64(v) >> (8 * level))
	if level == 7 {
		b ^= 0x80
	}
	return b
}

type IntptrKey struct{}

func (IntptrKey) Levels() int { return 8 }
func (IntptrKey) ByteAt(v int, level int) byte {
	b := byte(uint64(v) >> (8 * level))
	if level == 7 {
		b ^= 0x80
	}
	return b
}

// Float keyers apply the standard IEEE-754 total-ordering transform before
// decomposing into bytes: flip the sign bit of a non-negative number (so it
// sorts after every negative number once the sign bit is the top bit of an
// otherwise-unsigned comparison), or flip every bit of a negative number (so
// more-negative values, which have a larger magnitude bit pattern, sort
// before less-negative ones). NaN payloads sort wherever their bit pattern
// happens to land under this transform; no NaN-specific ordering is
// imposed.

type Float32Key struct{}

func (Float32Key) Levels() int { return 4 }
func (Float32Key) ByteAt(v float32, level int) byte {
	bits := math.Float32bits(v)
	if bits&0x8000_0000 != 0 {
		bits = ^bits
	} else {
		bits |= 0x8000_0000
	}
	return byte(bits >> (8 * level))
}

type Float64Key struct{}

func (Float64Key) Levels() int { return 8 }
func (Float64Key) ByteAt(v float64, level int) byte {
	bits := math.Float64bits(v)
	if bits&0x8000_0000_0000_0000 != 0 {
		bits = ^bits
	} else {
		bits |= 0x8000_0000_0000_0000
	}
	return byte(bits >> (8 * level))
}

// Fixed-size byte-array keyers. Go has no const-generic array length, so
// one keyer type is provided per common width instead of a single
// Keyer[[N]byte]. Level 0 is the last byte of the array, matching the
// fixed-size byte array contract's "index from the end" convention.

type Bytes4Key struct{}

func (Bytes4Key) Levels() int { return 4 }
func (Bytes4Key) ByteAt(v [4]byte, level int) byte {
	return v[len(v)-1-level]
}

type Bytes8Key struct{}

func (Bytes8Key) Levels() int { return 8 }
func (Bytes8Key) ByteAt(v [8]byte, level int) byte {
	return v[len(v)-1-level]
}

type Bytes16Key struct{}

func (Bytes16Key) Levels() int { return 16 }
func (Bytes16Key) ByteAt(v [16]byte, level int) byte {
	return v[len(v)-1-level]
}

type Bytes32Key struct{}

func (Bytes32Key) Levels() int { return 32 }
func (Bytes32Key) ByteAt(v [32]byte, level int) byte {
	return v[len(v)-1-level]
}
