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

package rdst

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/sneller-labs/rdst/internal/engine"
)

// logger is the package's ambient logging sink. It is nil by default (no
// log output); WithLogger installs one, the same injectable-*log.Logger
// pattern the rest of the retrieved stack uses for its own daemons.
var logger *log.Logger

// WithLogger installs l as the destination for this package's debug
// logging (one line per top-level Sort/SortInPlace/SortWithTuner call,
// tagged with a correlation ID). Pass nil to silence logging again.
func WithLogger(l *log.Logger) {
	logger = l
}

var (
	sharedPoolOnce sync.Once
	sharedPool     *engine.Pool
)

func getSharedPool() *engine.Pool {
	sharedPoolOnce.Do(func() {
		sharedPool = engine.NewPool(engine.Workers())
	})
	return sharedPool
}

// Sort sorts data in place, using out-of-place algorithms where they are
// advantageous: auxiliary memory use may reach the size of data itself.
func Sort[T any](data []T, k Keyer[T]) {
	run(data, k, StandardTuner{}, false)
}

// SortInPlace sorts data with strictly bounded auxiliary memory: no full
// shadow buffer is ever allocated.
func SortInPlace[T any](data []T, k Keyer[T]) {
	run(data, k, StandardTuner{}, true)
}

// SortWithTuner sorts data like Sort, but lets tuner override the
// algorithm-selection policy StandardTuner would otherwise apply.
func SortWithTuner[T any](data []T, k Keyer[T], tuner Tuner) {
	run(data, k, tuner, false)
}

func run[T any](data []T, k Keyer[T], tuner Tuner, inPlace bool) {
	if logger != nil {
		id := uuid.New()
		logger.Printf("rdst: sort id=%s len=%d levels=%d in_place=%t", id, len(data), k.Levels(), inPlace)
	}

	if len(data) < 2 {
		return
	}

	at := func(v T, level int) byte { return k.ByteAt(v, level) }

	d := &engine.Director[T]{
		At:          at,
		Tuner:       tuner,
		Pool:        getSharedPool(),
		TotalLevels: k.Levels(),
		Parallel:    engine.Workers() > 1,
		InPlace:     inPlace,
		TileSize:    tileSizeFor(len(data)),
	}

	d.Sort(data)
}

func tileSizeFor(n int) int {
	workers := engine.Workers()
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers
	if size < 1 {
		size = 1
	}
	return size
}
