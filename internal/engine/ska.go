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

import "sort"

// SkaPermute partitions bucket in place into its 256 byte-buckets at level,
// given prefixSums and endOffsets already computed from bucket's own
// histogram. prefixSums is mutated in place: on return prefixSums[b] ==
// endOffsets[b] for every b except the largest bucket, whose range is never
// walked and whose cursor may stop short of its end; for every b,
// bucket[prefixSums_old[b]:endOffsets[b]] holds exactly the elements whose
// byte at level equals b.
//
// Based on: https://probablydance.com/2016/12/27/i-wrote-a-faster-sorting-algorithm/
//
// The cyclic permutation never needs a second buffer: each swap either
// drops an element into its home bucket's current write cursor (advancing
// that cursor) or exchanges two misplaced elements, each one step closer to
// home. Buckets partition the index space and every cursor only moves
// forward within its own bucket's range, so cursors for distinct buckets
// never alias the same index at the same time.
func SkaPermute[T any](bucket []T, level int, at ByteAt[T], prefixSums *PrefixSums, endOffsets *EndOffsets) {
	if len(bucket) < 2 {
		return
	}

	order := make([]int, NumBuckets)
	for i := range order {
		order[i] = i
	}
	// Sort buckets ascending by size so the largest is last; it is marked
	// finished up front since the other 255 buckets settling into place
	// necessarily leaves it correctly filled too.
	sort.Slice(order, func(i, j int) bool {
		return bucketSize(prefixSums, endOffsets, order[i]) < bucketSize(prefixSums, endOffsets, order[j])
	})

	largest := order[NumBuckets-1]
	order = order[:NumBuckets-1]

	var finishedMap [NumBuckets]bool
	finishedMap[largest] = true
	finished := 1

	for finished != NumBuckets {
		for _, b := range order {
			if finishedMap[b] {
				continue
			}
			if prefixSums[b] >= endOffsets[b] {
				finishedMap[b] = true
				finished++
				continue
			}
			for i := prefixSums[b]; i < endOffsets[b]; i++ {
				newB := at(bucket[i], level)
				bucket[prefixSums[newB]], bucket[i] = bucket[i], bucket[prefixSums[newB]]
				prefixSums[newB]++
			}
		}
	}
}

func bucketSize(prefixSums *PrefixSums, endOffsets *EndOffsets, b int) uint64 {
	return endOffsets[b] - prefixSums[b]
}
