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

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// The OWI-NWS13 schema: an unlimited time dimension, fixed latitude and
// longitude dimensions sized to the canonical grid, time as integer
// minutes since 1990-01-01, static 2-D coordinate meshes, and three
// time-varying fields. PSFC is written even when physically meaningless
// (this converter's pressure may be the only real field, or the wind may
// be); it is kept to satisfy the NWS13 schema.
//
// The reference output nests these in a NetCDF-4 group named "Main";
// NetCDF classic format has no groups, so the schema lives in the root
// group and the group bookkeeping attributes are kept globally.

const timeUnits = "minutes since 1990-01-01 00:00:00 Z"

var nws13Epoch = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

// Default fill values of the netCDF library, declared explicitly on each
// variable.
const (
	fillFloat32 = float32(9.9692099683868690e+36)
	fillFloat64 = float64(9.9692099683868690e+36)
	fillInt32   = int32(-2147483647)
)

// Bounds is a user-requested equidistant output extent: regrid all output
// fields onto a grid spaced at (Dx, Dy) from (X1, Y1) up to, but not
// including, (X2, Y2).
type Bounds struct {
	X1, Y1, X2, Y2, Dx, Dy float64
}

// Check returns a ConfigurationError if the box is degenerate.
func (b *Bounds) Check() error {
	if b.X2 <= b.X1 || b.Y2 <= b.Y1 {
		return configErrorf("bounding box (%g,%g)-(%g,%g) has no area",
			b.X1, b.Y1, b.X2, b.Y2)
	}
	if b.Dx <= 0 || b.Dy <= 0 {
		return configErrorf("bounding box steps (%g,%g) must be positive", b.Dx, b.Dy)
	}
	return nil
}

// Grid constructs the equidistant grid the box describes.
func (b *Bounds) Grid() (*Grid, error) {
	if err := b.Check(); err != nil {
		return nil, err
	}
	return NewEquidistantGridFromCorners(b.X1, b.Y1, b.X2, b.Y2, b.Dx, b.Dy)
}

// NWS13File is an incrementally-written OWI-NWS13 output container.
// Snapshots are appended in strictly increasing time-index order by a
// single caller; Close finalizes the record count and forbids further
// appends.
type NWS13File struct {
	f      *os.File
	nc     *cdf.File
	grid   *Grid // canonical output grid
	regrid bool  // interpolate appended fields onto grid first
	nTimes int   // appends so far; the only acceptable next index
	lastT  int32 // minutes value of the previous append
	closed bool
}

// CreateNWS13File creates the output container at path with the fixed
// NWS13 schema. The canonical grid is the given native grid, or the
// equidistant grid derived from bounds if bounds is non-nil. The
// coordinate meshes are written immediately.
func CreateNWS13File(path string, grid *Grid, bounds *Bounds) (*NWS13File, error) {
	w := &NWS13File{grid: grid}
	if bounds != nil {
		var err error
		w.grid, err = bounds.Grid()
		if err != nil {
			return nil, err
		}
		w.regrid = true
	}

	h := cdf.NewHeader(
		[]string{"time", "latitude", "longitude"},
		[]int{0, w.grid.NLat(), w.grid.NLon()})
	h.AddAttribute("", "group_order", "Main")
	h.AddAttribute("", "rank", []int32{1})
	h.AddAttribute("", "conventions", "OWI-NWS13")
	h.AddAttribute("", "source", "OWIConv HBL wind & OWI pressure converter v"+Version)

	h.AddVariable("time", []string{"time"}, []int32{0})
	h.AddAttribute("time", "units", timeUnits)
	h.AddAttribute("time", "axis", "T")
	h.AddAttribute("time", "coordinates", "time")
	h.AddAttribute("time", "_FillValue", []int32{fillInt32})

	for _, v := range []struct{ name, units, standard, axis string }{
		{"lon", "degrees_east", "longitude", "x"},
		{"lat", "degrees_north", "latitude", "y"},
	} {
		h.AddVariable(v.name, []string{"latitude", "longitude"}, []float64{0})
		h.AddAttribute(v.name, "units", v.units)
		h.AddAttribute(v.name, "standard_name", v.standard)
		h.AddAttribute(v.name, "axis", v.axis)
		h.AddAttribute(v.name, "coordinates", "lat lon")
		h.AddAttribute(v.name, "_FillValue", []float64{fillFloat64})
	}

	for _, v := range []struct{ name, units string }{
		{"PSFC", "mb"},
		{"U10", "m s-1"},
		{"V10", "m s-1"},
	} {
		h.AddVariable(v.name, []string{"time", "latitude", "longitude"}, []float32{0})
		h.AddAttribute(v.name, "units", v.units)
		h.AddAttribute(v.name, "coordinates", "time lat lon")
		h.AddAttribute(v.name, "_FillValue", []float32{fillFloat32})
	}
	h.Define()

	var err error
	w.f, err = os.Create(path)
	if err != nil {
		return nil, err
	}
	w.nc, err = cdf.Create(w.f, h)
	if err != nil {
		w.f.Close()
		return nil, err
	}
	if err := w.writeStatic("lon", w.grid.Lon()); err != nil {
		w.f.Close()
		return nil, err
	}
	if err := w.writeStatic("lat", w.grid.Lat()); err != nil {
		w.f.Close()
		return nil, err
	}
	return w, nil
}

// Grid returns the canonical output grid.
func (w *NWS13File) Grid() *Grid { return w.grid }

// NumTimes returns the number of snapshots appended so far.
func (w *NWS13File) NumTimes() int { return w.nTimes }

// Append writes one Snapshot at time index idx. idx must equal the number
// of prior appends; anything else is a SequencingError. If the file was
// created with bounds, the three fields are first interpolated onto the
// canonical grid.
func (w *NWS13File) Append(idx int, s *Snapshot) error {
	if w.closed {
		return &SequencingError{Index: idx, Want: -1}
	}
	if idx != w.nTimes {
		return &SequencingError{Index: idx, Want: w.nTimes}
	}

	pressure, u, v := s.Pressure(), s.U(), s.V()
	if w.regrid {
		var err error
		if pressure, err = Interpolate(s.Grid(), pressure, w.grid); err != nil {
			return err
		}
		if u, err = Interpolate(s.Grid(), u, w.grid); err != nil {
			return err
		}
		if v, err = Interpolate(s.Grid(), v, w.grid); err != nil {
			return err
		}
	} else if err := w.grid.checkShape(pressure); err != nil {
		return err
	}

	minutes := int32(math.Round(s.Date().Sub(nws13Epoch).Minutes()))
	if w.nTimes > 0 && minutes <= w.lastT {
		return fmt.Errorf("owiconv: time %v at index %d does not advance the time variable (%d after %d minutes)",
			s.Date(), idx, minutes, w.lastT)
	}
	tw := w.nc.Writer("time", []int{idx}, nil)
	if _, err := tw.Write([]int32{minutes}); err != nil {
		return fmt.Errorf("owiconv: writing time at index %d: %v", idx, err)
	}

	for _, rec := range []struct {
		name string
		data *sparse.DenseArray
	}{
		{"PSFC", pressure},
		{"U10", u},
		{"V10", v},
	} {
		if err := w.writeRecord(rec.name, idx, rec.data); err != nil {
			return err
		}
	}
	w.lastT = minutes
	w.nTimes++
	return nil
}

// Close finalizes the record count and closes the file. No appends are
// permitted afterwards.
func (w *NWS13File) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := cdf.UpdateNumRecs(w.f); err != nil {
		w.f.Close()
		return fmt.Errorf("owiconv: finalizing output: %v", err)
	}
	return w.f.Close()
}

// writeStatic writes a non-record variable in full.
func (w *NWS13File) writeStatic(name string, data *sparse.DenseArray) error {
	buf := make([]float64, len(data.Elements))
	copy(buf, data.Elements)
	end := w.nc.Header.Lengths(name)
	start := make([]int, len(end))
	wr := w.nc.Writer(name, start, end)
	if _, err := wr.Write(buf); err != nil {
		return fmt.Errorf("owiconv: writing variable %s: %v", name, err)
	}
	return nil
}

// writeRecord writes one time slab of a record variable, extending the
// file by one record.
func (w *NWS13File) writeRecord(name string, idx int, data *sparse.DenseArray) error {
	buf := make([]float32, len(data.Elements))
	for i, e := range data.Elements {
		buf[i] = float32(e)
	}
	wr := w.nc.Writer(name, []int{idx, 0, 0}, nil)
	if _, err := wr.Write(buf); err != nil {
		return fmt.Errorf("owiconv: writing variable %s at index %d: %v", name, idx, err)
	}
	return nil
}
