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
	"unsafe"
)

// Context bundles the per-goroutine scratch state a driver needs across a
// run: a Counter for fan-out counting, a small free list of Counts so
// prefix-sum/end-offset pairs don't round-trip through the allocator, and a
// byte buffer that backs out-of-place scatter passes and grows to the
// largest bucket it has ever served.
//
// Goroutines are not pinned to OS threads the way a thread-local would
// assume, so Context instances are recycled through a sync.Pool instead
// (see checkoutContext). A driver that issues several Count-Manager calls
// back to back (the LSB driver walking its levels, for instance) checks out
// one Context for the whole walk; code about to fan out into independent
// goroutines checks out a fresh Context per goroutine.
type Context struct {
	counter Counter
	free    []*Counts
	scratch []byte
}

// newContext returns an empty Context whose Counts free list has room for
// eight entries; the list starts empty and fills as Counts are returned.
func newContext() *Context {
	return &Context{free: make([]*Counts, 0, 8)}
}

func (c *Context) reset() {
	c.counter.clear()
	for i := range c.free {
		c.free[i] = nil
	}
	c.free = c.free[:0]
}

// Checkout returns a zeroed Counts, reusing one from the free list when
// possible.
func (c *Context) Checkout() *Counts {
	if n := len(c.free); n > 0 {
		cnt := c.free[n-1]
		c.free[n-1] = nil
		c.free = c.free[:n-1]
		cnt.Clear()
		return cnt
	}
	return &Counts{}
}

// Return releases a Counts back to the free list for reuse.
func (c *Context) Return(cnt *Counts) {
	c.free = append(c.free, cnt)
}

// Scratch returns a []T of length n backed by the Context's byte buffer,
// growing the buffer first if necessary. The buffer is never shrunk, so a
// Context that has sorted a large bucket keeps that capacity for the rest
// of its life.
//
// The returned slice aliases c.scratch until the next call to Scratch (or
// until the Context is reset); callers must finish using it before asking
// for another scratch slice of a different element type.
func Scratch[T any](c *Context, n int) []T {
	if n == 0 {
		return nil
	}
	if !HasFastUnaligned() {
		// Reinterpreting the pooled byte buffer below risks handing back a
		// *T that isn't aligned for T on architectures that don't tolerate
		// unaligned loads/stores; fall back to a directly allocated, always
		// correctly aligned []T instead of reusing c.scratch.
		return make([]T, n)
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	need := n * elemSize
	if need > cap(c.scratch) {
		c.scratch = make([]byte, need)
	}
	buf := c.scratch[:need]
	return unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), n)
}

var contextPool = sync.Pool{
	New: func() any { return newContext() },
}

// checkoutContext obtains a Context from the shared pool. Callers must call
// releaseContext when done so the Context (and the buffers it has grown)
// can be reused by the next caller instead of being garbage collected.
func checkoutContext() *Context {
	return contextPool.Get().(*Context)
}

// releaseContext returns ctx to the shared pool.
func releaseContext(ctx *Context) {
	ctx.reset()
	contextPool.Put(ctx)
}

// WithContext checks out a Context, runs fn, and returns it to the pool.
// Most call sites should prefer this over manual checkout/release pairs.
func WithContext(fn func(*Context)) {
	ctx := checkoutContext()
	defer releaseContext(ctx)
	fn(ctx)
}
