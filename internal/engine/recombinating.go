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

// driveRecombinating tiles bucket, sorts each tile locally and in parallel,
// then gathers every tile's contribution to each of the 256 global
// destination buckets into a fresh output slice at the right global offset.
// The gather is itself parallelised by destination bucket, since each
// bucket's worth of output is written to a disjoint range of dst.
func driveRecombinating[T any](d *Director[T], wg *sync.WaitGroup, bucket []T, level int) {
	n := len(bucket)
	if n < 2 {
		return
	}

	tileSize := d.TileSize
	if tileSize <= 0 {
		tileSize = cdiv(n, 8)
	}
	numTiles := cdiv(n, tileSize)

	tileCounts := make([]Counts, numTiles)
	tilePrefixSums := make([]PrefixSums, numTiles)
	tileEndOffsets := make([]EndOffsets, numTiles)

	parallelFor(numTiles, func(i int) {
		start := i * tileSize
		end := start + tileSize
		if end > n {
			end = n
		}
		tile := bucket[start:end]
		WithContext(func(ctx *Context) {
			CountInto(ctx, tile, level, d.At, &tileCounts[i])
			PrefixSumsFrom(&tileCounts[i], &tilePrefixSums[i])
			EndOffsetsFrom(&tileCounts[i], &tilePrefixSums[i], &tileEndOffsets[i])
			SkaPermute(tile, level, d.At, &tilePrefixSums[i], &tileEndOffsets[i])
		})
	})

	global := AggregateTileCounts(tileCounts)
	var globalPrefixSums PrefixSums
	PrefixSumsFrom(&global, &globalPrefixSums)

	dst := make([]T, n)

	// Per-tile prefix sums were advanced by the permutation above and no
	// longer mark where each bucket starts; recompute the per-tile starting
	// cursor for each destination bucket so the gather below knows where,
	// inside each tile, bucket b's contribution begins.
	tileBucketStart := make([]PrefixSums, numTiles)
	for i := range tileCounts {
		PrefixSumsFrom(&tileCounts[i], &tileBucketStart[i])
	}

	parallelFor(NumBuckets, func(b int) {
		out := int(globalPrefixSums[b])
		for i := 0; i < numTiles; i++ {
			start := int(tileBucketStart[i][b])
			count := int(tileCounts[i][b])
			if count == 0 {
				continue
			}
			tileStart := i * tileSize
			copy(dst[out:out+count], bucket[tileStart+start:tileStart+start+count])
			out += count
		}
	})

	copy(bucket, dst)

	if level == 0 {
		return
	}
	cursor := 0
	for b := 0; b < NumBuckets; b++ {
		cnt := int(global[b])
		if cnt == 0 {
			continue
		}
		sub := bucket[cursor : cursor+cnt]
		cursor += cnt
		d.Recurse(wg, sub, nil, level-1)
	}
}
