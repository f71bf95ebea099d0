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

import "github.com/sneller-labs/rdst/internal/engine"

// Algorithm names one of the cooperating sort strategies the director can
// pick for a sub-bucket.
type Algorithm = engine.Algorithm

const (
	Comparative   = engine.Comparative
	LSB           = engine.LSBAlgo
	MtLSB         = engine.MtLSBAlgo
	Ska           = engine.Ska
	Scanning      = engine.Scanning
	Recombinating = engine.Recombinating
	Regions       = engine.Regions
)

// TuningParams describes a sub-bucket the director is about to dispatch.
type TuningParams = engine.TuningParams

// Tuner picks an Algorithm for a sub-bucket. Supply a custom Tuner to
// SortWithTuner to override the size/depth thresholds StandardTuner applies.
type Tuner = engine.Tuner

// StandardTuner is the default algorithm-selection policy.
type StandardTuner = engine.StandardTuner
