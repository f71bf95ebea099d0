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

import "sigs.k8s.io/yaml"

// TuningProfile is a YAML-configurable Tuner: the same size/depth decision
// tree StandardTuner applies, but with every size threshold overridable
// from a config file instead of baked in as constants. It lets an operator
// retune the director for a machine with unusual cache or memory-bandwidth
// characteristics without a recompile.
type TuningProfile struct {
	ComparativeThreshold   int `json:"comparativeThreshold"`
	SkaThreshold           int `json:"skaThreshold"`
	RecombinatingThreshold int `json:"recombinatingThreshold"`
	ScanningThreshold      int `json:"scanningThreshold"`
	RegionsThreshold       int `json:"regionsThreshold"`
	ParallelCountThreshold int `json:"parallelCountThreshold"`
}

// DefaultTuningProfile mirrors the thresholds StandardTuner applies.
func DefaultTuningProfile() TuningProfile {
	return TuningProfile{
		ComparativeThreshold:   256,
		SkaThreshold:           10_000,
		RecombinatingThreshold: 50_000,
		ScanningThreshold:      100_000,
		RegionsThreshold:       100_000,
		ParallelCountThreshold: 10_000,
	}
}

// LoadTuningProfile parses a YAML document into a TuningProfile, filling
// any field the document omits with DefaultTuningProfile's value.
func LoadTuningProfile(doc []byte) (*TuningProfile, error) {
	p := DefaultTuningProfile()
	if err := yaml.Unmarshal(doc, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Pick implements Tuner.
func (p *TuningProfile) Pick(params TuningParams) Algorithm {
	if params.InputLen < p.ComparativeThreshold {
		return Comparative
	}

	deepest := params.TotalLevels-params.Level-1 == 0

	if params.Level == 0 && !params.InPlace {
		return LSB
	}
	if deepest && params.InputLen >= p.ParallelCountThreshold && params.Parallel && !params.InPlace {
		return MtLSB
	}

	if params.InPlace {
		switch {
		case params.InputLen >= p.RegionsThreshold && params.Parallel:
			return Regions
		default:
			return Ska
		}
	}

	switch {
	case params.InputLen >= p.ScanningThreshold && params.Parallel:
		return Scanning
	case params.InputLen >= p.RecombinatingThreshold && params.Parallel:
		return Recombinating
	case params.InputLen >= p.SkaThreshold:
		return Ska
	default:
		return LSB
	}
}
