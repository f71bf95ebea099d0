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

// Director dispatches a sub-bucket to whichever Algorithm its Tuner picks,
// and is the recursive re-entry point every algorithm driver calls once it
// has produced smaller sub-buckets at level-1. It carries no per-sort
// mutable state of its own (all of that lives in Context and Pool); a
// single Director value is safe to share across every recursive call of
// one Sort invocation.
type Director[T any] struct {
	At          ByteAt[T]
	Tuner       Tuner
	Pool        *Pool
	TotalLevels int
	Parallel    bool
	InPlace     bool
	TileSize    int
}

// Sort runs bucket through the director starting at its most significant
// level and blocks until every recursive sub-bucket has been sorted.
func (d *Director[T]) Sort(bucket []T) {
	if len(bucket) < 2 || d.TotalLevels == 0 {
		return
	}
	var wg sync.WaitGroup
	d.dispatch(&wg, bucket, nil, d.TotalLevels-1)
	wg.Wait()
}

// Recurse hands bucket back to the director at level, tied to wg. Algorithm
// drivers call this once per non-trivial sub-bucket they produce; empty and
// singleton sub-buckets are skipped here so no driver needs to special-case
// them at every call site.
func (d *Director[T]) Recurse(wg *sync.WaitGroup, bucket []T, counts *Counts, level int) {
	if len(bucket) < 2 || level < 0 {
		return
	}
	if d.Pool == nil {
		d.dispatch(wg, bucket, counts, level)
		return
	}
	d.Pool.Go(wg, func(p *Pool) {
		d.dispatch(wg, bucket, counts, level)
	})
}

func (d *Director[T]) dispatch(wg *sync.WaitGroup, bucket []T, counts *Counts, level int) {
	if len(bucket) < 2 {
		return
	}

	params := TuningParams{
		InputLen:    len(bucket),
		Level:       level,
		TotalLevels: d.TotalLevels,
		Parallel:    d.Parallel,
		InPlace:     d.InPlace,
	}
	tuner := d.Tuner
	if tuner == nil {
		tuner = StandardTuner{}
	}
	algo := tuner.Pick(params)

	switch algo {
	case Comparative:
		ComparativeSort(bucket, level, d.At)
	case LSBAlgo:
		WithContext(func(ctx *Context) { LSB(ctx, bucket, 0, level, d.At) })
	case MtLSBAlgo:
		WithContext(func(ctx *Context) { MtLSB(ctx, bucket, 0, level, d.At, d.TileSize) })
	case Ska:
		driveMSB(d, wg, bucket, counts, level)
	case Scanning:
		driveScanning(d, wg, bucket, level)
	case Recombinating:
		driveRecombinating(d, wg, bucket, level)
	case Regions:
		driveRegions(d, wg, bucket, level)
	default:
		driveMSB(d, wg, bucket, counts, level)
	}
}
