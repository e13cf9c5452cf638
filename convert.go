/*
Copyright © 2026 the OWIConv authors.
This file is part of OWIConv.

OWIConv is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

OWIConv is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with OWIConv.  If not, see <http://www.gnu.org/licenses/>.
*/

package owiconv

import "fmt"

// Reference alignment between the HBL wind timeline and the OWI pressure
// records: pressure index 0 sits 384 samples into the wind series, which
// is sampled 15 times per pressure interval.
const (
	DefaultTimeOffset = 384
	DefaultWindStride = 15
)

// ConvertConfig describes one conversion run.
type ConvertConfig struct {
	// UFile, VFile are the wind-velocity NetCDF inputs; PressureFile is
	// the OWI-NWS12 ASCII input.
	UFile, VFile, PressureFile string
	// Output is the path of the NetCDF file to create.
	Output string
	// Format selects the output format; "netcdf" is the only supported
	// value.
	Format string
	// Bounds, if non-nil, requests regridding onto the described
	// equidistant grid.
	Bounds *Bounds
	// TimeOffset and WindStride encode the epoch and resolution mismatch
	// between the pressure and wind series; see Reader.
	TimeOffset, WindStride int
	// NumTimes is the number of time slices to convert. Zero derives the
	// count from the inputs.
	NumTimes int
}

func (c *ConvertConfig) check() error {
	if c.UFile == "" || c.VFile == "" || c.PressureFile == "" {
		return configErrorf("u-wind, v-wind and pressure input files are all required")
	}
	if c.Output == "" {
		return configErrorf("no output file specified")
	}
	if c.Format != "netcdf" {
		return configErrorf("unsupported output format %q; only \"netcdf\" is available", c.Format)
	}
	if c.Bounds != nil {
		if err := c.Bounds.Check(); err != nil {
			return err
		}
	}
	if c.NumTimes < 0 {
		return configErrorf("number of time slices %d must not be negative", c.NumTimes)
	}
	return nil
}

// Convert runs a whole conversion: it opens the three inputs, iterates
// the time-index range in increasing order, and for each index reads a
// Snapshot and appends it to the output container, which is created from
// the first snapshot's grid. If msgChan is not nil, progress messages are
// sent to it. Any failure aborts the run; a partially-written output
// file from an aborted run must be discarded.
func Convert(cfg ConvertConfig, msgChan chan string) error {
	if err := cfg.check(); err != nil {
		return err
	}

	pre, err := OpenPressureFile(cfg.PressureFile)
	if err != nil {
		return err
	}
	uf, err := OpenWindFile(cfg.UFile, "u10")
	if err != nil {
		return err
	}
	defer uf.Close()
	vf, err := OpenWindFile(cfg.VFile, "v10")
	if err != nil {
		return err
	}
	defer vf.Close()

	reader, err := NewReader(pre, uf, vf, cfg.TimeOffset, cfg.WindStride)
	if err != nil {
		return err
	}

	numTimes := cfg.NumTimes
	if numTimes == 0 {
		numTimes = availableTimes(pre, uf, vf, cfg.TimeOffset, cfg.WindStride)
	}
	if numTimes <= 0 {
		return configErrorf("inputs share no time slices: %d pressure records from offset %d, %d and %d wind samples",
			pre.NumRecords(), cfg.TimeOffset, uf.NumTimes(), vf.NumTimes())
	}

	var out *NWS13File
	for i := 0; i < numTimes; i++ {
		t := cfg.TimeOffset + i
		if msgChan != nil {
			msgChan <- fmt.Sprintf("Processing time slice %d of %d\n", i+1, numTimes)
		}
		snapshot, err := reader.Snapshot(t)
		if err != nil {
			return err
		}
		if out == nil {
			out, err = CreateNWS13File(cfg.Output, snapshot.Grid(), cfg.Bounds)
			if err != nil {
				return err
			}
		}
		if err := out.Append(i, snapshot); err != nil {
			out.Close()
			return err
		}
	}
	return out.Close()
}

// availableTimes derives the iteration range from the inputs: the
// pressure records remaining past the offset, capped by the wind samples
// reachable through the affine index map.
func availableTimes(pre *PressureFile, u, v *WindFile, offset, stride int) int {
	n := pre.NumRecords() - offset
	wind := u.NumTimes()
	if v.NumTimes() < wind {
		wind = v.NumTimes()
	}
	// Wind index (n-1)*stride must exist.
	if byWind := (wind + stride - 1) / stride; byWind < n {
		n = byWind
	}
	return n
}
