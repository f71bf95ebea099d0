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

import "sort"

// ComparativeSort sorts bucket by walking its radix bytes from startLevel
// down to 0, the same lexicographic order the rest of the engine produces,
// using an ordinary comparison sort. It is the fallback for buckets small
// enough that histogram/partition overhead would dominate.
func ComparativeSort[T any](bucket []T, startLevel int, at ByteAt[T]) {
	if len(bucket) < 2 {
		return
	}
	sort.Sort(&byteOrder[T]{bucket: bucket, level: startLevel, at: at})
}

// byteOrder adapts a radix-byte accessor to sort.Interface, comparing two
// elements level by level from startLevel down to 0 and only moving to the
// next level when the current one reports equal.
type byteOrder[T any] struct {
	bucket []T
	level  int
	at     ByteAt[T]
}

func (o *byteOrder[T]) Len() int { return len(o.bucket) }

func (o *byteOrder[T]) Swap(i, j int) { o.bucket[i], o.bucket[j] = o.bucket[j], o.bucket[i] }

func (o *byteOrder[T]) Less(i, j int) bool {
	a, b := o.bucket[i], o.bucket[j]
	for level := o.level; ; level-- {
		ab, bb := o.at(a, level), o.at(b, level)
		if ab != bb {
			return ab < bb
		}
		if level == 0 {
			return false
		}
	}
}
