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

// forceTuner always returns the same Algorithm, used to exercise one
// algorithm at a time regardless of what StandardTuner's size thresholds
// would otherwise pick for a given test's input size.
type forceTuner struct{ algo Algorithm }

func (f forceTuner) Pick(TuningParams) Algorithm { return f.algo }

func runDirector(t *testing.T, xs []uint64, algo Algorithm, parallel, inPlace bool) {
	t.Helper()
	original := append([]uint64{}, xs...)

	d := &Director[uint64]{
		At:          uint64ByteAt,
		Tuner:       forceTuner{algo: algo},
		Pool:        NewPool(4),
		TotalLevels: 8,
		Parallel:    parallel,
		InPlace:     inPlace,
		TileSize:    512,
	}
	defer d.Pool.Close()

	d.Sort(xs)

	if !isSortedUint64(xs) {
		t.Fatalf("algorithm %v produced unsorted output", algo)
	}
	if !sameMultisetUint64(xs, original) {
		t.Fatalf("algorithm %v did not produce a permutation of the input", algo)
	}
}

func TestDirectorAlgorithmCoverage(t *testing.T) {
	sizes := []int{0, 1, 50, 3000, 20_000}
	algorithms := []Algorithm{Ska, Scanning, Recombinating, Regions}

	for _, algo := range algorithms {
		for _, n := range sizes {
			xs := seededUint64s(uint64(n+1), n)
			runDirector(t, xs, algo, true, true)
		}
	}
}

func TestDirectorAdversarialInputs(t *testing.T) {
	n := 4096
	cases := map[string][]uint64{
		"all_equal": func() []uint64 {
			xs := make([]uint64, n)
			for i := range xs {
				xs[i] = 7
			}
			return xs
		}(),
		"sorted": func() []uint64 {
			xs := make([]uint64, n)
			for i := range xs {
				xs[i] = uint64(i)
			}
			return xs
		}(),
		"reverse_sorted": func() []uint64 {
			xs := make([]uint64, n)
			for i := range xs {
				xs[i] = uint64(n - i)
			}
			return xs
		}(),
		"two_value": func() []uint64 {
			xs := make([]uint64, n)
			for i := range xs {
				if i%2 == 0 {
					xs[i] = 1
				} else {
					xs[i] = 0
				}
			}
			return xs
		}(),
	}

	for name, xs := range cases {
		for _, algo := range []Algorithm{Ska, Scanning, Recombinating, Regions} {
			cp := append([]uint64{}, xs...)
			t.Run(name, func(t *testing.T) {
				runDirector(t, cp, algo, true, true)
			})
		}
	}
}

func TestDirectorEmptyAndSingleton(t *testing.T) {
	d := &Director[uint64]{At: uint64ByteAt, TotalLevels: 8, TileSize: 64}
	var empty []uint64
	d.Sort(empty)

	single := []uint64{99}
	d.Sort(single)
	if single[0] != 99 {
		t.Fatalf("singleton must be unchanged")
	}
}
