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
	"sort"

	"github.com/ctessum/sparse"
)

// Interpolate resamples the 2-D field, defined pointwise over the source
// grid's 1-D axes, onto the destination grid using bilinear interpolation.
// Destination points outside the source grid extrapolate linearly from the
// outermost source cell: the bracketing interval is clamped to the grid
// edge and the linear weights run outside [0,1]. Interpolating a field
// from a grid onto itself returns the field unchanged up to floating
// round-off.
func Interpolate(src *Grid, field *sparse.DenseArray, dst *Grid) (*sparse.DenseArray, error) {
	if err := src.checkShape(field); err != nil {
		return nil, err
	}
	lonIdx, lonW := bracketAxis(src.Lon1D(), dst.Lon1D())
	latIdx, latW := bracketAxis(src.Lat1D(), dst.Lat1D())

	out := sparse.ZerosDense(dst.NLat(), dst.NLon())
	for j := 0; j < dst.NLat(); j++ {
		kj, wj := latIdx[j], latW[j]
		for i := 0; i < dst.NLon(); i++ {
			ki, wi := lonIdx[i], lonW[i]
			f00 := field.Get(kj, ki)
			f01 := field.Get(kj, ki+1)
			f10 := field.Get(kj+1, ki)
			f11 := field.Get(kj+1, ki+1)
			v := f00*(1-wj)*(1-wi) + f01*(1-wj)*wi + f10*wj*(1-wi) + f11*wj*wi
			out.Set(v, j, i)
		}
	}
	return out, nil
}

// bracketAxis finds, for every target coordinate, the source interval
// [k, k+1] bracketing it and the linear weight of the k+1 endpoint.
// The interval index is clamped to the axis so off-grid targets
// extrapolate from the nearest edge cell.
func bracketAxis(src, targets []float64) (idx []int, w []float64) {
	idx = make([]int, len(targets))
	w = make([]float64, len(targets))
	for i, x := range targets {
		idx[i], w[i] = bracket(src, x)
	}
	return idx, w
}

func bracket(ax []float64, x float64) (int, float64) {
	n := len(ax)
	var k int
	if ax[n-1] > ax[0] { // ascending
		k = sort.SearchFloat64s(ax, x) - 1
	} else { // descending
		k = sort.Search(n, func(i int) bool { return ax[i] <= x }) - 1
	}
	if k < 0 {
		k = 0
	}
	if k > n-2 {
		k = n - 2
	}
	return k, (x - ax[k]) / (ax[k+1] - ax[k])
}
