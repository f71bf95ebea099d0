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

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"golang.org/x/exp/slices"
)

func TestSortUint32Basic(t *testing.T) {
	xs := []uint32{3, 1, 2}
	Sort(xs, Uint32Key{})
	if got := xs; !slices.Equal(got, []uint32{1, 2, 3}) {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

func TestSortUint64EmptyAndSingleton(t *testing.T) {
	var empty []uint64
	Sort(empty, Uint64Key{})
	if len(empty) != 0 {
		t.Fatalf("empty input must stay empty")
	}

	single := []uint64{42}
	Sort(single, Uint64Key{})
	if single[0] != 42 {
		t.Fatalf("singleton input must be unchanged")
	}
}

func TestSortUint32EdgeValues(t *testing.T) {
	xs := []uint32{0xFFFFFFFF, 0, 0x80000000, 1}
	Sort(xs, Uint32Key{})
	want := []uint32{0, 1, 0x80000000, 0xFFFFFFFF}
	if !slices.Equal(xs, want) {
		t.Fatalf("got %v, want %v", xs, want)
	}
}

func TestSortInt32SignedOrder(t *testing.T) {
	xs := []int32{-1, 2, -3, 0}
	Sort(xs, Int32Key{})
	want := []int32{-3, -1, 0, 2}
	if !slices.Equal(xs, want) {
		t.Fatalf("got %v, want %v", xs, want)
	}
}

func TestSortFloat32TotalOrder(t *testing.T) {
	xs := []float32{float32(math.NaN()), 1.0, -1.0, 0.0, float32(math.Copysign(0, -1)), float32(math.Inf(-1)), float32(math.Inf(1))}
	Sort(xs, Float32Key{})

	// Finite values, in the subsequence excluding NaN, must come out in
	// numeric order; -0.0 sorts immediately before +0.0 under the
	// total-ordering transform.
	var finite []float32
	for _, x := range xs {
		if !math.IsNaN(float64(x)) {
			finite = append(finite, x)
		}
	}
	if !sort.SliceIsSorted(finite, func(i, j int) bool { return finite[i] < finite[j] || (finite[i] == finite[j] && math.Signbit(float64(finite[i])) && !math.Signbit(float64(finite[j]))) }) {
		t.Fatalf("finite subsequence not in numeric order: %v", finite)
	}
	if len(finite) != len(xs)-1 {
		t.Fatalf("expected exactly one NaN to be excluded, got %d finite of %d total", len(finite), len(xs))
	}
}

func TestSortOneMillionMixedShiftUint64(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large randomized sort in -short mode")
	}
	rng := rand.New(rand.NewSource(1))
	n := 1_000_000
	xs := make([]uint64, n)
	for i := range xs {
		v := rng.Uint64()
		if i%2 == 0 {
			v >>= 32
		} else {
			v <<= 32
		}
		xs[i] = v
	}

	reference := append([]uint64{}, xs...)
	sort.SliceStable(reference, func(i, j int) bool { return reference[i] < reference[j] })

	Sort(xs, Uint64Key{})

	if !slices.Equal(xs, reference) {
		t.Fatalf("rdst.Sort disagrees with a reference stable comparison sort")
	}
}

func TestSortInPlaceMatchesSort(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	n := 20_000
	xs := make([]uint64, n)
	for i := range xs {
		xs[i] = rng.Uint64()
	}
	a := append([]uint64{}, xs...)
	b := append([]uint64{}, xs...)

	Sort(a, Uint64Key{})
	SortInPlace(b, Uint64Key{})

	if !slices.Equal(a, b) {
		t.Fatalf("Sort and SortInPlace disagree on the same input")
	}
}

func TestSortWithTunerForcesComparative(t *testing.T) {
	xs := []uint64{9, 4, 7, 1, 3, 8, 2, 6, 5}
	SortWithTuner(xs, Uint64Key{}, forceAlways(Comparative))
	if !sort.SliceIsSorted(xs, func(i, j int) bool { return xs[i] < xs[j] }) {
		t.Fatalf("SortWithTuner(Comparative) did not sort: %v", xs)
	}
}

type forceAlways Algorithm

func (f forceAlways) Pick(TuningParams) Algorithm { return Algorithm(f) }

func TestBytesKeyOrdersLastByteFirst(t *testing.T) {
	xs := [][4]byte{{1, 0, 0, 3}, {1, 0, 0, 1}, {1, 0, 0, 2}}
	Sort(xs, Bytes4Key{})
	want := [][4]byte{{1, 0, 0, 1}, {1, 0, 0, 2}, {1, 0, 0, 3}}
	for i := range want {
		if xs[i] != want[i] {
			t.Fatalf("got %v, want %v", xs, want)
		}
	}
}
