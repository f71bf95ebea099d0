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

// LSB drives one or more least-significant-byte-first passes over bucket
// across levels [endLevel, startLevel], walking the levels in pairs where
// possible. After a completed pair the sequence is sorted with respect to
// bytes [endLevel, level+1]; the final result always ends up back in
// bucket regardless of how many ping-pong swaps it took to get there.
func LSB[T any](ctx *Context, bucket []T, endLevel, startLevel int, at ByteAt[T]) {
	lsbRun(ctx, bucket, endLevel, startLevel, at, nil)
}

// lsbRun is the shared driver behind LSB and MtLSB. When initialCounts is
// non-nil it is used as the histogram for endLevel instead of running
// CountInto on it, letting a caller that already computed that histogram
// some other way (MtLSB's per-tile parallel count) feed it straight in. A
// supplied initialCounts is assumed not already-sorted; the sortedness
// short-circuit only applies to levels LSB counts itself.
func lsbRun[T any](ctx *Context, bucket []T, endLevel, startLevel int, at ByteAt[T], initialCounts *Counts) {
	n := len(bucket)
	if n < 2 {
		return
	}

	tmp := Scratch[T](ctx, n)
	src, dst := bucket, tmp
	srcIsBucket := true

	for level := endLevel; level <= startLevel; {
		var counts Counts
		var meta CountMeta
		if level == endLevel && initialCounts != nil {
			counts = *initialCounts
		} else {
			meta = CountInto(ctx, src, level, at, &counts)
		}

		if meta.AlreadySorted {
			// src is untouched; the next level (if any) gets its own fresh
			// count when it becomes the first level of a later pair.
			level++
			continue
		}

		var prefixSums PrefixSums
		PrefixSumsFrom(&counts, &prefixSums)

		next := level + 1
		if next <= startLevel {
			var nextCounts Counts
			OutOfPlaceWithCounts(src, dst, level, next, at, &prefixSums, &nextCounts)
			src, dst = dst, src
			srcIsBucket = !srcIsBucket

			var nextPrefixSums PrefixSums
			PrefixSumsFrom(&nextCounts, &nextPrefixSums)
			OutOfPlace(src, dst, next, at, &nextPrefixSums)
			src, dst = dst, src
			srcIsBucket = !srcIsBucket

			level += 2
			continue
		}

		OutOfPlace(src, dst, level, at, &prefixSums)
		src, dst = dst, src
		srcIsBucket = !srcIsBucket
		level++
	}

	if !srcIsBucket {
		copy(bucket, src)
	}
}

// MtLSB is the parallel-count variant of LSB: the initial histogram for
// endLevel is gathered via per-tile parallel counting instead of a single
// sequential pass, then behaves identically to LSB.
func MtLSB[T any](ctx *Context, bucket []T, endLevel, startLevel int, at ByteAt[T], tileSize int) {
	n := len(bucket)
	if n < 2 {
		return
	}
	if tileSize <= 0 || tileSize >= n {
		LSB(ctx, bucket, endLevel, startLevel, at)
		return
	}

	tiles := TileCounts(bucket, endLevel, at, tileSize)
	agg := AggregateTileCounts(tiles)
	lsbRun(ctx, bucket, endLevel, startLevel, at, &agg)
}
