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

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/ctessum/sparse"
)

// Axis variable names tried in order. Some HBL runs write "loni"/"lati"
// instead of "lon"/"lat".
var (
	lonAxisNames = []string{"lon", "loni"}
	latAxisNames = []string{"lat", "lati"}
)

// WindFile reads one wind-velocity component from a gridded NetCDF time
// series. The file must expose 1-D longitude and latitude axes and one
// variable shaped (time, latitude, longitude).
type WindFile struct {
	path    string
	varName string
	nc      api.Group
	vg      api.VarGetter
	grid    *Grid
	nTimes  int
}

// OpenWindFile opens the NetCDF file at path (classic or NetCDF-4/HDF5)
// and prepares the named variable for per-index reading.
func OpenWindFile(path, varName string) (*WindFile, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("owiconv: opening wind file %s: %v", path, err)
	}
	w := &WindFile{path: path, varName: varName, nc: nc}
	lon, err := w.axis(lonAxisNames)
	if err != nil {
		nc.Close()
		return nil, err
	}
	lat, err := w.axis(latAxisNames)
	if err != nil {
		nc.Close()
		return nil, err
	}
	w.grid, err = NewGrid(lon, lat)
	if err != nil {
		nc.Close()
		return nil, err
	}
	w.vg, err = nc.GetVarGetter(varName)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("owiconv: %s: variable %s: %v", path, varName, err)
	}
	w.nTimes = int(w.vg.Len())
	return w, nil
}

// Grid returns the native wind grid.
func (w *WindFile) Grid() *Grid { return w.grid }

// NumTimes returns the number of native time samples.
func (w *WindFile) NumTimes() int { return w.nTimes }

// Close closes the underlying file.
func (w *WindFile) Close() { w.nc.Close() }

// Slice reads the 2-D snapshot at native sample index idx. The returned
// array is transient; callers must not accumulate slices across time
// indices.
func (w *WindFile) Slice(idx int) (*sparse.DenseArray, error) {
	if idx < 0 || idx >= w.nTimes {
		return nil, fmt.Errorf("owiconv: %s: %s sample index %d outside [0,%d)",
			w.path, w.varName, idx, w.nTimes)
	}
	v, err := w.vg.GetSlice(int64(idx), int64(idx+1))
	if err != nil {
		return nil, fmt.Errorf("owiconv: %s: reading %s at index %d: %v",
			w.path, w.varName, idx, err)
	}
	out := sparse.ZerosDense(w.grid.NLat(), w.grid.NLon())
	switch data := v.(type) {
	case [][][]float32:
		if err := w.checkSlabShape(len(data[0]), rowLen32(data[0])); err != nil {
			return nil, err
		}
		k := 0
		for _, row := range data[0] {
			for _, val := range row {
				out.Elements[k] = float64(val)
				k++
			}
		}
	case [][][]float64:
		if err := w.checkSlabShape(len(data[0]), rowLen64(data[0])); err != nil {
			return nil, err
		}
		k := 0
		for _, row := range data[0] {
			for _, val := range row {
				out.Elements[k] = val
				k++
			}
		}
	default:
		return nil, fmt.Errorf("owiconv: %s: variable %s has unsupported element type %T",
			w.path, w.varName, v)
	}
	return out, nil
}

func (w *WindFile) checkSlabShape(nLat, nLon int) error {
	if nLat != w.grid.NLat() || nLon != w.grid.NLon() {
		return fmt.Errorf("owiconv: %s: %s slab is %d x %d but axes declare %d x %d",
			w.path, w.varName, nLat, nLon, w.grid.NLat(), w.grid.NLon())
	}
	return nil
}

func rowLen32(rows [][]float32) int {
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}

func rowLen64(rows [][]float64) int {
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}

// axis reads a 1-D coordinate variable, trying each name in order.
// float32 and float64 storage are both accepted.
func (w *WindFile) axis(names []string) ([]float64, error) {
	var lastErr error
	for _, name := range names {
		vg, err := w.nc.GetVarGetter(name)
		if err != nil {
			lastErr = err
			continue
		}
		vals, err := vg.Values()
		if err != nil {
			return nil, fmt.Errorf("owiconv: %s: reading axis %s: %v", w.path, name, err)
		}
		switch ax := vals.(type) {
		case []float64:
			return ax, nil
		case []float32:
			out := make([]float64, len(ax))
			for i, v := range ax {
				out[i] = float64(v)
			}
			return out, nil
		default:
			return nil, fmt.Errorf("owiconv: %s: axis %s has unsupported type %T",
				w.path, name, vals)
		}
	}
	return nil, fmt.Errorf("owiconv: %s: no axis variable named %v: %v",
		w.path, names, lastErr)
}
