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

// Task is a unit of recursive work submitted to a Pool. A Task that wants to
// split its own work further calls p.Go again from inside itself; the Pool
// places no bound on recursion depth.
type Task func(p *Pool)

type request struct {
	task Task
	wg   *sync.WaitGroup
}

// Pool is a fixed-size LIFO work-stealing queue used for the director's
// unbounded recursive fan-out (one bucket splits into up to 256 smaller
// buckets, each of which may split again). Workers pop the most recently
// queued task first, which keeps the queue shallow: a goroutine that just
// split a bucket into sub-buckets tends to pick up one of its own children
// next rather than a sibling queued long ago.
//
// A Task must never block waiting on work it submitted to the same Pool.
// Go enqueues and returns immediately; completion is observed by waiting on
// the *sync.WaitGroup passed to Go, never by blocking inside a worker.
// Algorithms that need a synchronous internal barrier (recombinating sort's
// tile-sort/histogram/gather stages, regions sort's swap passes) use
// parallelFor instead, which does not route through the Pool at all.
type Pool struct {
	mu       sync.Mutex
	cond     *sync.Cond
	requests []request
	closed   bool
	done     sync.WaitGroup
}

// NewPool starts a Pool with the given number of worker goroutines.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{}
	p.cond = sync.NewCond(&p.mu)

	var started sync.WaitGroup
	started.Add(workers)
	p.done.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(&started)
	}
	started.Wait()
	return p
}

func (p *Pool) worker(started *sync.WaitGroup) {
	defer p.done.Done()
	started.Done()

	for {
		p.mu.Lock()
		for !p.closed && len(p.requests) == 0 {
			p.cond.Wait()
		}
		if p.closed && len(p.requests) == 0 {
			p.mu.Unlock()
			return
		}
		n := len(p.requests) - 1
		req := p.requests[n]
		p.requests = p.requests[:n]
		p.mu.Unlock()

		req.task(p)
		req.wg.Done()
	}
}

// Go enqueues task, adding one to wg before queuing it and releasing it
// when the task returns. The caller observes completion of a whole tree of
// recursive Go calls sharing the same wg by calling wg.Wait().
func (p *Pool) Go(wg *sync.WaitGroup, task Task) {
	wg.Add(1)
	p.mu.Lock()
	p.requests = append(p.requests, request{task: task, wg: wg})
	p.cond.Signal()
	p.mu.Unlock()
}

// Close stops all worker goroutines. Workers keep popping and running
// queued tasks until the queue is empty and only then exit; Close returns
// once every worker has exited, so every task queued before Close has run.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.done.Wait()
}

// parallelFor runs fn(i) for i in [0,n) on barrier-synchronized goroutines,
// one goroutine per index (n == 1 runs inline), and returns only once every
// call has completed. Unlike Pool,
// this never recurses and never outlives the call: it is the tool for
// within-algorithm fan-out (per-tile counting, per-tile local sort, the
// gather pass, a single regions-sort swap round) that needs all of its
// pieces to finish before the caller can proceed to the next stage.
func parallelFor(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if n == 1 {
		fn(0)
		return
	}
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			fn(i)
		}()
	}
	wg.Wait()
}
