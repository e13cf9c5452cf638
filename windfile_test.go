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
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
	"gonum.org/v1/gonum/floats"
)

// windFixture describes a synthetic wind NetCDF file: 1-D coordinate
// axes and one (time, lat, lon) variable.
type windFixture struct {
	varName          string
	lonName, latName string
	axes32           bool // store the axes as float32
	data64           bool // store the data variable as float64
	lon, lat         []float64
	slabs            [][]float32 // per time index, nLat*nLon values
}

// write creates the file with the classic NetCDF layout the converter
// reads back through a format-agnostic opener.
func (fx *windFixture) write(t *testing.T, path string) {
	t.Helper()
	h := cdf.NewHeader(
		[]string{"time", fx.latName, fx.lonName},
		[]int{len(fx.slabs), len(fx.lat), len(fx.lon)})
	if fx.axes32 {
		h.AddVariable(fx.lonName, []string{fx.lonName}, []float32{0})
		h.AddVariable(fx.latName, []string{fx.latName}, []float32{0})
	} else {
		h.AddVariable(fx.lonName, []string{fx.lonName}, []float64{0})
		h.AddVariable(fx.latName, []string{fx.latName}, []float64{0})
	}
	if fx.data64 {
		h.AddVariable(fx.varName, []string{"time", fx.latName, fx.lonName}, []float64{0})
	} else {
		h.AddVariable(fx.varName, []string{"time", fx.latName, fx.lonName}, []float32{0})
	}
	h.Define()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	nc, err := cdf.Create(f, h)
	if err != nil {
		t.Fatal(err)
	}
	writeAxis := func(name string, vals []float64) {
		w := nc.Writer(name, []int{0}, []int{len(vals)})
		if fx.axes32 {
			buf := make([]float32, len(vals))
			for i, v := range vals {
				buf[i] = float32(v)
			}
			if _, err := w.Write(buf); err != nil {
				t.Fatal(err)
			}
			return
		}
		if _, err := w.Write(append([]float64(nil), vals...)); err != nil {
			t.Fatal(err)
		}
	}
	writeAxis(fx.lonName, fx.lon)
	writeAxis(fx.latName, fx.lat)

	var buf []float32
	for _, slab := range fx.slabs {
		buf = append(buf, slab...)
	}
	w := nc.Writer(fx.varName, []int{0, 0, 0}, []int{len(fx.slabs), len(fx.lat), len(fx.lon)})
	if fx.data64 {
		buf64 := make([]float64, len(buf))
		for i, v := range buf {
			buf64[i] = float64(v)
		}
		if _, err := w.Write(buf64); err != nil {
			t.Fatal(err)
		}
	} else if _, err := w.Write(buf); err != nil {
		t.Fatal(err)
	}
	// Replace the streaming numrecs marker with a definite count.
	if err := cdf.UpdateNumRecs(f); err != nil {
		t.Fatal(err)
	}
}

// testSlab fills a nLat x nLon slab with base + row-major offsets.
func testSlab(nLat, nLon int, base float32) []float32 {
	out := make([]float32, nLat*nLon)
	for i := range out {
		out[i] = base + float32(i)
	}
	return out
}

func TestOpenWindFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "u10.nc")
	fx := &windFixture{
		varName: "u10",
		lonName: "lon", latName: "lat",
		lon: []float64{280, 280.5, 281}, // stored east of 180
		lat: []float64{10, 10.5},
		slabs: [][]float32{
			testSlab(2, 3, 0),
			testSlab(2, 3, 100),
		},
	}
	fx.write(t, path)

	w, err := OpenWindFile(path, "u10")
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if w.NumTimes() != 2 {
		t.Errorf("NumTimes = %d; want 2", w.NumTimes())
	}
	g := w.Grid()
	if g.NLat() != 2 || g.NLon() != 3 {
		t.Fatalf("grid %d x %d; want 2 x 3", g.NLat(), g.NLon())
	}
	wantLon := []float64{-80, -79.5, -79}
	if !floats.EqualApprox(g.Lon1D(), wantLon, testTolerance) {
		t.Errorf("longitude axis %v; want %v", g.Lon1D(), wantLon)
	}

	for idx, base := range []float64{0, 100} {
		slab, err := w.Slice(idx)
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range slab.Elements {
			if want := base + float64(i); different(v, want, testTolerance) {
				t.Errorf("slab %d element %d = %g; want %g", idx, i, v, want)
			}
		}
	}
}

// Some HBL runs name the coordinate variables loni/lati and store them
// as float32.
func TestOpenWindFileAxisFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v10.nc")
	fx := &windFixture{
		varName: "v10",
		lonName: "loni", latName: "lati",
		axes32: true,
		lon:    []float64{-80, -79.5},
		lat:    []float64{10, 10.5, 11},
		slabs:  [][]float32{testSlab(3, 2, 7)},
	}
	fx.write(t, path)

	w, err := OpenWindFile(path, "v10")
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	g := w.Grid()
	if g.NLat() != 3 || g.NLon() != 2 {
		t.Errorf("grid %d x %d; want 3 x 2", g.NLat(), g.NLon())
	}
	slab, err := w.Slice(0)
	if err != nil {
		t.Fatal(err)
	}
	if different(slab.Get(2, 1), 12, testTolerance) {
		t.Errorf("slab at (2,1) = %g; want 12", slab.Get(2, 1))
	}
}

func TestOpenWindFileFloat64Data(t *testing.T) {
	path := filepath.Join(t.TempDir(), "u10.nc")
	fx := &windFixture{
		varName: "u10",
		lonName: "lon", latName: "lat",
		data64: true,
		lon:    []float64{-80, -79.5, -79},
		lat:    []float64{10, 10.5},
		slabs:  [][]float32{testSlab(2, 3, 50)},
	}
	fx.write(t, path)

	w, err := OpenWindFile(path, "u10")
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	slab, err := w.Slice(0)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range slab.Elements {
		if want := 50 + float64(i); different(v, want, testTolerance) {
			t.Errorf("element %d = %g; want %g", i, v, want)
		}
	}
}

func TestWindFileSliceOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "u10.nc")
	fx := &windFixture{
		varName: "u10",
		lonName: "lon", latName: "lat",
		lon:   []float64{-80, -79.5},
		lat:   []float64{10, 10.5},
		slabs: [][]float32{testSlab(2, 2, 0)},
	}
	fx.write(t, path)

	w, err := OpenWindFile(path, "u10")
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if _, err := w.Slice(1); err == nil {
		t.Error("index past the time series did not fail")
	}
	if _, err := w.Slice(-1); err == nil {
		t.Error("negative index did not fail")
	}
}

func TestWindFileMissingVariable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "u10.nc")
	fx := &windFixture{
		varName: "u10",
		lonName: "lon", latName: "lat",
		lon:   []float64{-80, -79.5},
		lat:   []float64{10, 10.5},
		slabs: [][]float32{testSlab(2, 2, 0)},
	}
	fx.write(t, path)
	if _, err := OpenWindFile(path, "w10"); err == nil {
		t.Error("missing variable did not fail")
	}
}
