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

// Reader assembles Snapshots from a pressure file and a pair of wind
// files whose time series have different epochs and sampling intervals.
// Pressure records are self-indexed 1:1 with the requested index space;
// the wind sample for index t sits at (t-offset)*stride in the wind
// files' native timeline.
type Reader struct {
	pre    *PressureFile
	u, v   *WindFile
	offset int // wind series sample at which pressure index `offset` begins
	stride int // wind samples per pressure record interval
}

// NewReader creates a Reader with the given temporal alignment. offset
// must be non-negative and stride positive.
func NewReader(pre *PressureFile, u, v *WindFile, offset, stride int) (*Reader, error) {
	if offset < 0 {
		return nil, configErrorf("time offset %d must not be negative", offset)
	}
	if stride < 1 {
		return nil, configErrorf("wind stride %d must be at least 1", stride)
	}
	return &Reader{pre: pre, u: u, v: v, offset: offset, stride: stride}, nil
}

// WindIndex maps a global time index onto the wind files' native sample
// index.
func (r *Reader) WindIndex(t int) int { return (t - r.offset) * r.stride }

// Snapshot reads the pressure record at global time index t, reads the
// matching wind snapshot, and interpolates the wind fields onto the
// pressure record's grid. The grid is rebuilt from the record's own
// header every call; geometry may vary between records.
func (r *Reader) Snapshot(t int) (*Snapshot, error) {
	hdr, err := r.pre.RecordHeader(t)
	if err != nil {
		return nil, err
	}
	grid, err := hdr.Grid()
	if err != nil {
		return nil, err
	}
	pressure, err := r.pre.Field(t)
	if err != nil {
		return nil, err
	}

	wi := r.WindIndex(t)
	uRaw, err := r.u.Slice(wi)
	if err != nil {
		return nil, err
	}
	uInterp, err := Interpolate(r.u.Grid(), uRaw, grid)
	if err != nil {
		return nil, err
	}
	uRaw = nil // release before reading the next large slab

	vRaw, err := r.v.Slice(wi)
	if err != nil {
		return nil, err
	}
	vInterp, err := Interpolate(r.v.Grid(), vRaw, grid)
	if err != nil {
		return nil, err
	}

	return NewSnapshot(hdr.Date, grid, pressure, uInterp, vInterp), nil
}
