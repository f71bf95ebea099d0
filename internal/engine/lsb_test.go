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

import "testing"

func TestLSBSortsRandom(t *testing.T) {
	xs := seededUint64s(11, 10_000)
	original := append([]uint64{}, xs...)

	ctx := newContext()
	LSB(ctx, xs, 0, 7, uint64ByteAt)

	if !isSortedUint64(xs) {
		t.Fatalf("LSB output is not sorted")
	}
	if !sameMultisetUint64(xs, original) {
		t.Fatalf("LSB output is not a permutation of the input")
	}
}

func TestLSBAllEqual(t *testing.T) {
	xs := make([]uint64, 500)
	for i := range xs {
		xs[i] = 0xABCD
	}
	ctx := newContext()
	LSB(ctx, xs, 0, 7, uint64ByteAt)
	if !isSortedUint64(xs) {
		t.Fatalf("LSB output of an all-equal input must still be sorted")
	}
}

func TestLSBAlreadySorted(t *testing.T) {
	xs := make([]uint64, 2000)
	for i := range xs {
		xs[i] = uint64(i)
	}
	original := append([]uint64{}, xs...)
	ctx := newContext()
	LSB(ctx, xs, 0, 7, uint64ByteAt)
	for i := range xs {
		if xs[i] != original[i] {
			t.Fatalf("already-sorted input must come back unchanged at index %d: got %d want %d", i, xs[i], original[i])
		}
	}
}

func TestLSBReverseSorted(t *testing.T) {
	xs := make([]uint64, 3000)
	for i := range xs {
		xs[i] = uint64(len(xs) - i)
	}
	original := append([]uint64{}, xs...)
	ctx := newContext()
	LSB(ctx, xs, 0, 7, uint64ByteAt)
	if !isSortedUint64(xs) {
		t.Fatalf("LSB output is not sorted")
	}
	if !sameMultisetUint64(xs, original) {
		t.Fatalf("LSB output is not a permutation of the input")
	}
}

func TestLSBSingleLevelRange(t *testing.T) {
	xs := seededUint64s(23, 4096)
	for i := range xs {
		xs[i] &= 0xff // only level 0 varies
	}
	original := append([]uint64{}, xs...)
	ctx := newContext()
	LSB(ctx, xs, 0, 0, uint64ByteAt)
	if !isSortedUint64(xs) {
		t.Fatalf("single-level LSB output is not sorted")
	}
	if !sameMultisetUint64(xs, original) {
		t.Fatalf("single-level LSB output is not a permutation of the input")
	}
}
