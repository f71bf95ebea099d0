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

package engine

import (
	"encoding/binary"
	"sort"

	"github.com/dchest/siphash"
)

// seededUint64s deterministically generates n uint64s from seed using
// siphash as a keyed PRNG, so a failing test prints a seed that reproduces
// the exact same input offline instead of a giant literal slice.
func seededUint64s(seed uint64, n int) []uint64 {
	out := make([]uint64, n)
	var ctr [8]byte
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint64(ctr[:], uint64(i))
		out[i] = siphash.Hash(seed, 0, ctr[:])
	}
	return out
}

func uint64ByteAt(v uint64, level int) byte { return byte(v >> (8 * level)) }

func isSortedUint64(xs []uint64) bool {
	return sort.SliceIsSorted(xs, func(i, j int) bool { return xs[i] < xs[j] })
}

func sameMultisetUint64(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	ca, cb := append([]uint64{}, a...), append([]uint64{}, b...)
	sort.Slice(ca, func(i, j int) bool { return ca[i] < ca[j] })
	sort.Slice(cb, func(i, j int) bool { return cb[i] < cb[j] })
	for i := range ca {
		if ca[i] != cb[i] {
			return false
		}
	}
	return true
}
