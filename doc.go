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

// Package rdst sorts slices of fixed-size, byte-decomposable elements using
// a family of cooperating parallel radix-sort algorithms, dispatched by an
// adaptive director that picks an algorithm per sub-bucket from its size
// and recursion depth. The sort is unstable.
//
// Callers describe how to pull radix bytes out of their element type by
// implementing Keyer; a handful of default Keyers are provided in
// defaults.go for the common primitive types.
package rdst
