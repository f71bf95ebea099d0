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
	"runtime"

	"golang.org/x/sys/cpu"
)

// Workers picks a worker count for the Pool and for Parallel-eligible
// tuning decisions. On a box that looks like a single efficient core (or
// where GOMAXPROCS has been pinned to 1, the common case inside a
// constrained container) it returns 1 so the director never recommends a
// parallel algorithm purely on input size and pays goroutine/lock overhead
// for nothing.
func Workers() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return n
}

// HasFastUnaligned reports whether the host architecture is one where the
// engine's scratch-buffer reinterpretation (Scratch, via unsafe.Slice) can
// assume cheap unaligned access.
func HasFastUnaligned() bool {
	switch {
	case cpu.X86.HasAVX2, cpu.X86.HasAVX:
		return true
	case cpu.ARM64.HasASIMD:
		return true
	default:
		return runtime.GOARCH == "amd64" || runtime.GOARCH == "arm64"
	}
}
