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

// CountInto builds a 256-bucket histogram of bucket's radix byte at level
// into dst, using ctx's 4-lane Counter to break the write-after-write
// dependency a single running histogram would create.
//
// It also opportunistically detects whether bucket is already sorted on
// this level: it walks from the front comparing each byte to its
// predecessor, and the moment it sees a byte smaller than the one before
// it, sortedness is disproved and the walk stops early.
//
// That early-exit applies only to the sortedness check, not to counting:
// whether or not sortedness was disproved partway through, the remainder of
// bucket is always counted in chunks of 4 so the returned histogram is
// always complete. A fully sorted bucket is the one case where the
// sortedness walk and the counting walk cover the same range and nothing
// extra needs to be counted afterward.
func CountInto[T any](ctx *Context, bucket []T, level int, at ByteAt[T], dst *Counts) CountMeta {
	n := len(bucket)
	var meta CountMeta
	if n == 0 {
		return meta
	}

	ctx.counter.clear()
	counter := &ctx.counter

	meta.AlreadySorted = true

	prev := at(bucket[0], level)
	continueFrom := 0
	for i := 0; i < n; i++ {
		b := at(bucket[i], level)
		counter[int(b)*4] += 1
		if b < prev {
			meta.AlreadySorted = false
			continueFrom = i + 1
			break
		}
		prev = b
		continueFrom = i + 1
	}

	// Finish counting whatever the sortedness walk did not already cover,
	// four elements at a time across the four counter lanes.
	i := continueFrom
	for ; i+4 <= n; i += 4 {
		b0 := at(bucket[i], level)
		b1 := at(bucket[i+1], level)
		b2 := at(bucket[i+2], level)
		b3 := at(bucket[i+3], level)
		counter[int(b0)*4+1]++
		counter[int(b1)*4+2]++
		counter[int(b2)*4+3]++
		counter[int(b3)*4]++
	}
	for ; i < n; i++ {
		b := at(bucket[i], level)
		counter[int(b)*4]++
	}

	counter.Fold(dst)
	return meta
}

// PrefixSumsFrom computes the exclusive prefix sum of counts into dst.
func PrefixSumsFrom(counts *Counts, dst *PrefixSums) {
	var running uint64
	for i := 0; i < NumBuckets; i++ {
		dst[i] = running
		running += counts[i]
	}
}

// EndOffsetsFrom computes, for each bucket, the index one past its last
// element: the prefix sums shifted left by one bucket, with the final slot
// filled in from the total.
func EndOffsetsFrom(counts *Counts, prefixSums *PrefixSums, dst *EndOffsets) {
	for i := 1; i < NumBuckets; i++ {
		dst[i-1] = prefixSums[i]
	}
	dst[NumBuckets-1] = prefixSums[NumBuckets-1] + counts[NumBuckets-1]
}
