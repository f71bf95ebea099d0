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

// ByteAt extracts the radix byte of v at the given level (0 is least
// significant). It is a plain function type rather than an interface so
// this package never has to import the public decomposition trait that
// lives above it; the public package adapts its Keyer[T] to a closure of
// this shape at the call boundary.
type ByteAt[T any] func(v T, level int) byte
