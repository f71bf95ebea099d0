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
	"sync"
)

// scannerReadSize bounds how many elements a worker pulls out of a region
// before trying to publish them: enough to amortize the lock acquisition,
// small enough that one worker can't starve the rest.
const scannerReadSize = 128

// scannerBucket is one of the 256 logical sub-regions of a bucket being
// scanning-sorted: the final resting place of every element whose byte at
// the current level equals index, expressed as a slice of the shared
// backing array plus two cursors into it.
type scannerBucket[T any] struct {
	mu                 sync.Mutex
	index              int
	slice              []T
	writeHead          int
	readHead           int
	locallyPartitioned bool
}

// getScannerBuckets slices bucket into its 256 regions according to counts
// and returns them ordered by descending region length, so workers tend to
// pick up the largest remaining region first.
func getScannerBuckets[T any](bucket []T, counts *Counts) []*scannerBucket[T] {
	buckets := make([]*scannerBucket[T], NumBuckets)
	cursor := 0
	for i := 0; i < NumBuckets; i++ {
		n := int(counts[i])
		buckets[i] = &scannerBucket[T]{index: i, slice: bucket[cursor : cursor+n]}
		cursor += n
	}
	order := make([]int, NumBuckets)
	for i := range order {
		order[i] = i
	}
	for i := 1; i < NumBuckets; i++ {
		for j := i; j > 0 && len(buckets[order[j-1]].slice) < len(buckets[order[j]].slice); j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}
	ordered := make([]*scannerBucket[T], NumBuckets)
	for i, idx := range order {
		ordered[i] = buckets[idx]
	}
	return ordered
}

// localPartition divides rb's slice in place into [elements whose byte at
// level equals rb.index | everything else], returning the boundary.
func localPartition[T any](rb *scannerBucket[T], level int, at ByteAt[T]) int {
	s := rb.slice
	i, j := 0, len(s)
	for i < j {
		if int(at(s[i], level)) == rb.index {
			i++
			continue
		}
		j--
		s[i], s[j] = s[j], s[i]
	}
	return i
}

// scannerThread is one worker's pass over every region: local-partition any
// region it reaches first, then scan-and-publish until the whole bucket is
// settled. A worker's stash is a set of 256 small buffers, one per
// destination region, collecting scanned elements that belong somewhere
// other than the region they were just read from; entries are published
// (copied into the destination region's write cursor) the next time this
// worker locks that destination region.
func scannerThread[T any](buckets []*scannerBucket[T], level int, at ByteAt[T]) {
	stash := make([][]T, NumBuckets)

	allDone := func() bool {
		for _, rb := range buckets {
			rb.mu.Lock()
			done := rb.writeHead >= len(rb.slice)
			rb.mu.Unlock()
			if !done {
				return false
			}
		}
		return true
	}

	for !allDone() {
		for _, rb := range buckets {
			if !rb.mu.TryLock() {
				continue
			}

			if !rb.locallyPartitioned {
				boundary := localPartition(rb, level, at)
				rb.writeHead = boundary
				rb.readHead = boundary
				rb.locallyPartitioned = true
			}

			// Publish anything this worker has stashed for this region.
			if pending := stash[rb.index]; len(pending) > 0 {
				room := rb.readHead - rb.writeHead
				n := len(pending)
				if n > room {
					n = room
				}
				copy(rb.slice[rb.writeHead:rb.writeHead+n], pending[:n])
				rb.writeHead += n
				stash[rb.index] = append(pending[:0], pending[n:]...)
			}

			// Scan a chunk of unsettled elements out of this region,
			// routing each into the stash for its true destination.
			if rb.readHead < len(rb.slice) {
				end := rb.readHead + scannerReadSize
				if end > len(rb.slice) {
					end = len(rb.slice)
				}
				for k := rb.readHead; k < end; k++ {
					x := rb.slice[k]
					dst := int(at(x, level))
					stash[dst] = append(stash[dst], x)
				}
				rb.readHead = end
			}

			rb.mu.Unlock()
		}
	}
}

// driveScanning runs scanning sort: MSB-partition bucket without a full
// auxiliary buffer by cooperating, try-lock-guarded workers, then hands the
// resulting sub-buckets back to the director. Large sub-buckets recurse
// into scanning sort directly; the rest go back through the director so the
// tuner can pick whatever fits their size.
func driveScanning[T any](d *Director[T], wg *sync.WaitGroup, bucket []T, level int) {
	if len(bucket) < 2 {
		return
	}

	var counts Counts
	WithContext(func(ctx *Context) {
		CountInto(ctx, bucket, level, d.At, &counts)
	})

	buckets := getScannerBuckets(bucket, &counts)

	workers := 1
	if d.Pool != nil {
		workers = len(buckets)
		if workers > 32 {
			workers = 32
		}
	}
	parallelFor(workers, func(int) {
		scannerThread(buckets, level, d.At)
	})

	if level == 0 {
		return
	}

	uniformThreshold := int(float64(len(bucket)) / float64(maxInt(workers, 1)) * 1.4)
	for _, rb := range buckets {
		sub := rb.slice
		if len(sub) == 0 {
			continue
		}
		if len(sub) > uniformThreshold && len(sub) >= scanningThreshold {
			if d.Pool == nil {
				driveScanning(d, wg, sub, level-1)
			} else {
				d.Pool.Go(wg, func(p *Pool) {
					driveScanning(d, wg, sub, level-1)
				})
			}
			continue
		}
		d.Recurse(wg, sub, nil, level-1)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
