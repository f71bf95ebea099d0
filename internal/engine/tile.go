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

// cdiv is ceiling integer division, used throughout the tiled algorithms to
// turn "n elements across w workers" into a tile width.
func cdiv(n, d int) int {
	if d <= 0 {
		return n
	}
	return (n + d - 1) / d
}

// TileCounts computes the per-tile histogram of bucket at level, splitting
// bucket into tiles of tileSize elements (the last tile may be short) and
// counting each tile in parallel. It returns one Counts per tile in tile
// order.
func TileCounts[T any](bucket []T, level int, at ByteAt[T], tileSize int) []Counts {
	n := len(bucket)
	if tileSize <= 0 {
		tileSize = n
	}
	numTiles := cdiv(n, tileSize)
	if numTiles == 0 {
		return nil
	}
	tiles := make([]Counts, numTiles)

	parallelFor(numTiles, func(i int) {
		start := i * tileSize
		end := start + tileSize
		if end > n {
			end = n
		}
		WithContext(func(ctx *Context) {
			CountInto(ctx, bucket[start:end], level, at, &tiles[i])
		})
	})

	return tiles
}

// AggregateTileCounts elementwise-sums a set of per-tile histograms into a
// single global histogram.
func AggregateTileCounts(tiles []Counts) Counts {
	var total Counts
	for t := range tiles {
		for b := 0; b < NumBuckets; b++ {
			total[b] += tiles[t][b]
		}
	}
	return total
}
