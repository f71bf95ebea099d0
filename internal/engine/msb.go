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

import "sync"

// driveMSB is the top-down in-place driver: count the highest unsorted
// level, permute the bucket in place with the ska kernel, then recurse the
// director into each of the (up to 256) sub-buckets at level-1.
func driveMSB[T any](d *Director[T], wg *sync.WaitGroup, bucket []T, counts *Counts, level int) {
	if len(bucket) < 2 {
		return
	}

	var c Counts
	var meta CountMeta
	haveMeta := false
	if counts != nil {
		c = *counts
	} else {
		WithContext(func(ctx *Context) {
			meta = CountInto(ctx, bucket, level, d.At, &c)
		})
		haveMeta = true
	}

	if haveMeta && meta.AlreadySorted {
		splitAndRecurse(d, wg, bucket, &c, level)
		return
	}

	var prefixSums PrefixSums
	var endOffsets EndOffsets
	PrefixSumsFrom(&c, &prefixSums)
	EndOffsetsFrom(&c, &prefixSums, &endOffsets)

	SkaPermute(bucket, level, d.At, &prefixSums, &endOffsets)

	splitAndRecurse(d, wg, bucket, &c, level)
}

// splitAndRecurse partitions bucket into its 256 byte-buckets according to
// counts (bucket must already be partitioned in that order, as SkaPermute
// leaves it) and hands each non-empty, non-singleton sub-bucket back to the
// director at level-1.
func splitAndRecurse[T any](d *Director[T], wg *sync.WaitGroup, bucket []T, counts *Counts, level int) {
	if level == 0 {
		return
	}
	cursor := 0
	for b := 0; b < NumBuckets; b++ {
		n := int(counts[b])
		if n == 0 {
			continue
		}
		sub := bucket[cursor : cursor+n]
		cursor += n
		d.Recurse(wg, sub, nil, level-1)
	}
}
