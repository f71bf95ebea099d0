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

// regionEdge is a contiguous run of bucket currently resident in country
// init that must end up in country dst, expressed as start/length over the
// shared backing slice rather than a raw sub-slice: this is what lets a
// pair of edges be split (shrinking one, shifting the other's start) without
// any aliasing gymnastics.
type regionEdge struct {
	init, dst     int
	start, length int
}

type regionOp struct {
	inbound, outbound regionEdge
}

// generateOutbounds walks bucket and the per-tile/global histograms in
// lockstep, emitting one edge each time a run of same-origin bytes crosses
// either a tile boundary or a country boundary, and dropping runs that are
// already home (init == dst).
func generateOutbounds(n int, tileCounts []Counts, global *Counts) []regionEdge {
	outbounds := make([]regionEdge, 0, NumBuckets)

	cursor := 0
	tile := 0
	localCountry := 0
	globalCountry := 0
	targetGlobal := int(global[0])
	targetLocal := int(tileCounts[0][0])

	for !(globalCountry == NumBuckets-1 && localCountry == NumBuckets-1 && tile == len(tileCounts)-1) {
		step := targetGlobal
		if targetLocal < step {
			step = targetLocal
		}

		if step != 0 {
			if localCountry != globalCountry {
				outbounds = append(outbounds, regionEdge{
					init:   globalCountry,
					dst:    localCountry,
					start:  cursor,
					length: step,
				})
			}
			cursor += step
		}

		if step == targetGlobal && globalCountry < NumBuckets-1 {
			globalCountry++
			targetGlobal = int(global[globalCountry])
		} else {
			targetGlobal -= step
		}

		if step == targetLocal && !(tile == len(tileCounts)-1 && localCountry == NumBuckets-1) {
			if localCountry < NumBuckets-1 {
				localCountry++
			} else {
				tile++
				localCountry = 0
			}
			targetLocal = int(tileCounts[tile][localCountry])
		} else {
			targetLocal -= step
		}
	}

	return outbounds
}

// listOperations extracts country's inbound and outbound edges from the
// shared outbounds list, pairs them off (splitting the longer edge of a
// mismatched pair and returning its remainder to the working list), and
// appends the resulting operations.
func listOperations(country int, outbounds *[]regionEdge, operations *[]regionOp) {
	var inbounds, obound []regionEdge
	var rest []regionEdge
	for _, e := range *outbounds {
		if e.dst == country {
			inbounds = append(inbounds, e)
		} else {
			rest = append(rest, e)
		}
	}
	*outbounds = rest

	rest = rest[:0]
	for _, e := range *outbounds {
		if e.init == country {
			obound = append(obound, e)
		} else {
			rest = append(rest, e)
		}
	}
	*outbounds = rest

	for {
		if len(inbounds) == 0 {
			*outbounds = append(*outbounds, obound...)
			return
		}
		if len(obound) == 0 {
			*outbounds = append(*outbounds, inbounds...)
			return
		}

		i := inbounds[len(inbounds)-1]
		inbounds = inbounds[:len(inbounds)-1]
		o := obound[len(obound)-1]
		obound = obound[:len(obound)-1]

		switch {
		case i.length == o.length:
			*operations = append(*operations, regionOp{inbound: i, outbound: o})
		case i.length < o.length:
			rem := regionEdge{init: o.init, dst: o.dst, start: o.start + i.length, length: o.length - i.length}
			o.length = i.length
			obound = append(obound, rem)
			*operations = append(*operations, regionOp{inbound: i, outbound: o})
		default:
			rem := regionEdge{init: i.init, dst: i.dst, start: i.start + o.length, length: i.length - o.length}
			i.length = o.length
			inbounds = append(inbounds, rem)
			*operations = append(*operations, regionOp{inbound: i, outbound: o})
		}
	}
}

// regionsSort runs the in-place parallel MSB partition described by
// Obeya, Kahssay, Fan and Shun's theoretically-efficient parallel in-place
// radix sort: tile-local ska sorts followed by repeated rounds of pairing up
// and swapping misplaced edges until every element sits in its country.
func regionsSort[T any](d *Director[T], bucket []T, global *Counts, tileCounts []Counts, tileSize, level int) {
	n := len(bucket)
	numTiles := len(tileCounts)

	parallelFor(numTiles, func(i int) {
		start := i * tileSize
		end := start + tileSize
		if end > n {
			end = n
		}
		tile := bucket[start:end]
		var prefixSums PrefixSums
		var endOffsets EndOffsets
		PrefixSumsFrom(&tileCounts[i], &prefixSums)
		EndOffsetsFrom(&tileCounts[i], &prefixSums, &endOffsets)
		SkaPermute(tile, level, d.At, &prefixSums, &endOffsets)
	})

	outbounds := generateOutbounds(n, tileCounts, global)

	for len(outbounds) > 0 {
		var operations []regionOp
		for country := 0; country < NumBuckets; country++ {
			listOperations(country, &outbounds, &operations)
		}
		if len(operations) == 0 {
			break
		}

		parallelFor(len(operations), func(i int) {
			op := operations[i]
			a := bucket[op.inbound.start : op.inbound.start+op.inbound.length]
			b := bucket[op.outbound.start : op.outbound.start+op.outbound.length]
			for k := range a {
				a[k], b[k] = b[k], a[k]
			}
		})

		outbounds = outbounds[:0]
		for _, op := range operations {
			if op.outbound.dst != op.inbound.init {
				outbounds = append(outbounds, regionEdge{
					init:   op.inbound.init,
					dst:    op.outbound.dst,
					start:  op.inbound.start,
					length: op.inbound.length,
				})
			}
		}
	}
}

// driveRegions tiles bucket, runs regionsSort against it, then hands each
// resulting country's slice back to the director at level-1.
func driveRegions[T any](d *Director[T], wg *sync.WaitGroup, bucket []T, level int) {
	n := len(bucket)
	if n < 2 {
		return
	}

	tileSize := d.TileSize
	if tileSize <= 0 {
		tileSize = cdiv(n, 8)
	}
	tileCounts := TileCounts(bucket, level, d.At, tileSize)
	global := AggregateTileCounts(tileCounts)

	regionsSort(d, bucket, &global, tileCounts, tileSize, level)

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
