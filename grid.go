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

	"github.com/ctessum/sparse"
)

// stepPrecision is the number of decimal places the derived grid spacing
// is rounded to, avoiding floating drift between successive axis points.
const stepPrecision = 2

// Grid is an immutable rectilinear latitude/longitude grid. Longitudes are
// normalized to [-180,180); both axes must be strictly monotonic with at
// least two points. Any 2-D field defined on the grid has
// NLat()*NLon() elements in latitude-major order.
type Grid struct {
	lon1d, lat1d []float64
	lon, lat     *sparse.DenseArray // [nLat][nLon] meshes
	nLon, nLat   int
	dLon, dLat   float64
	xll, yll     float64 // lower-left corner
	xur, yur     float64 // upper-right corner
}

// NewGrid creates a grid from 1-D longitude and latitude axes.
func NewGrid(lon, lat []float64) (*Grid, error) {
	lon = normalizeLons(lon)
	if err := checkAxis("longitude", lon); err != nil {
		return nil, err
	}
	if err := checkAxis("latitude", lat); err != nil {
		return nil, err
	}
	g := &Grid{
		lon1d: lon,
		lat1d: append([]float64(nil), lat...),
		nLon:  len(lon),
		nLat:  len(lat),
		dLon:  roundTo(lon[1]-lon[0], stepPrecision),
		dLat:  roundTo(lat[1]-lat[0], stepPrecision),
	}
	g.xll, g.xur = axisBounds(g.lon1d)
	g.yll, g.yur = axisBounds(g.lat1d)
	g.lon = sparse.ZerosDense(g.nLat, g.nLon)
	g.lat = sparse.ZerosDense(g.nLat, g.nLon)
	for j, y := range g.lat1d {
		for i, x := range g.lon1d {
			g.lon.Set(x, j, i)
			g.lat.Set(y, j, i)
		}
	}
	return g, nil
}

// NewEquidistantGrid creates an axis-aligned grid covering the bounding
// box of g at g's spacing. The generated ranges are half-open
// [lower, upper), matching the source grid convention, so the upper
// bound may fall short of g's upper-right corner.
func NewEquidistantGrid(g *Grid) (*Grid, error) {
	return NewGrid(arange(g.xll, g.xur, g.dLon), arange(g.yll, g.yur, g.dLat))
}

// NewEquidistantGridFromCorners creates an axis-aligned grid spaced at
// (dx, dy) from the lower-left corner (x1, y1) up to, but not including,
// the upper-right corner (x2, y2).
func NewEquidistantGridFromCorners(x1, y1, x2, y2, dx, dy float64) (*Grid, error) {
	return NewGrid(arange(x1, x2, dx), arange(y1, y2, dy))
}

// Lon returns the 2-D longitude mesh with shape [NLat()][NLon()].
func (g *Grid) Lon() *sparse.DenseArray { return g.lon }

// Lat returns the 2-D latitude mesh with shape [NLat()][NLon()].
func (g *Grid) Lat() *sparse.DenseArray { return g.lat }

// Lon1D returns the 1-D longitude axis.
func (g *Grid) Lon1D() []float64 { return g.lon1d }

// Lat1D returns the 1-D latitude axis.
func (g *Grid) Lat1D() []float64 { return g.lat1d }

// NLon returns the number of longitude points.
func (g *Grid) NLon() int { return g.nLon }

// NLat returns the number of latitude points.
func (g *Grid) NLat() int { return g.nLat }

// DLon returns the longitude step, rounded to stepPrecision decimals.
func (g *Grid) DLon() float64 { return g.dLon }

// DLat returns the latitude step, rounded to stepPrecision decimals.
func (g *Grid) DLat() float64 { return g.dLat }

// XLL returns the lower-left corner longitude.
func (g *Grid) XLL() float64 { return g.xll }

// YLL returns the lower-left corner latitude.
func (g *Grid) YLL() float64 { return g.yll }

// XUR returns the upper-right corner longitude.
func (g *Grid) XUR() float64 { return g.xur }

// YUR returns the upper-right corner latitude.
func (g *Grid) YUR() float64 { return g.yur }

// checkShape returns an error if field does not have shape
// [g.NLat()][g.NLon()].
func (g *Grid) checkShape(field *sparse.DenseArray) error {
	if len(field.Shape) != 2 || field.Shape[0] != g.nLat || field.Shape[1] != g.nLon {
		return fmt.Errorf("owiconv: field shape %v does not match %d x %d grid",
			field.Shape, g.nLat, g.nLon)
	}
	return nil
}

// normalizeLons shifts longitudes greater than 180 degrees into
// [-180,180). Values of exactly 180 are left alone.
func normalizeLons(lon []float64) []float64 {
	out := make([]float64, len(lon))
	for i, x := range lon {
		if x > 180 {
			x -= 360
		}
		out[i] = x
	}
	return out
}

func checkAxis(name string, ax []float64) error {
	if len(ax) < 2 {
		return &InvalidGridError{Axis: name,
			Reason: fmt.Sprintf("%d points; at least 2 required", len(ax))}
	}
	increasing := ax[1] > ax[0]
	for i := 1; i < len(ax); i++ {
		d := ax[i] - ax[i-1]
		if d == 0 || (d > 0) != increasing {
			return &InvalidGridError{Axis: name,
				Reason: fmt.Sprintf("not strictly monotonic at index %d (%g then %g)",
					i, ax[i-1], ax[i])}
		}
	}
	return nil
}

// axisBounds returns the minimum and maximum of a monotonic axis.
func axisBounds(ax []float64) (min, max float64) {
	lo, hi := ax[0], ax[len(ax)-1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

func roundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

// arange returns the half-open range [start, stop) spaced at step.
func arange(start, stop, step float64) []float64 {
	if step <= 0 || stop <= start {
		return nil
	}
	n := int(math.Ceil((stop - start) / step))
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// linspace returns n points starting at start and spaced at step.
func linspace(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
