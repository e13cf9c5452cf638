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
	"testing"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"
)

// planeField evaluates f(x,y) = 2x + 3y + 7 on the grid. Bilinear
// interpolation reproduces a plane exactly, on and off the grid.
func planeField(g *Grid) *sparse.DenseArray {
	out := sparse.ZerosDense(g.NLat(), g.NLon())
	for j, y := range g.Lat1D() {
		for i, x := range g.Lon1D() {
			out.Set(2*x+3*y+7, j, i)
		}
	}
	return out
}

func TestInterpolateIdentity(t *testing.T) {
	g, err := NewGrid([]float64{-80, -79.75, -79.5, -79.25}, []float64{10, 10.25, 10.5})
	if err != nil {
		t.Fatal(err)
	}
	field := sparse.ZerosDense(g.NLat(), g.NLon())
	for i := range field.Elements {
		field.Elements[i] = float64(i*i%17) + 0.5
	}
	got, err := Interpolate(g, field, g)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualApprox(got.Elements, field.Elements, testTolerance) {
		t.Errorf("self-interpolation changed the field: got %v want %v",
			got.Elements, field.Elements)
	}
}

func TestInterpolatePlane(t *testing.T) {
	src, err := NewGrid([]float64{0, 1, 2, 3}, []float64{10, 11, 12})
	if err != nil {
		t.Fatal(err)
	}
	// Interior half-points plus targets beyond every edge.
	dst, err := NewGrid([]float64{-0.5, 0.5, 1.5, 3.5}, []float64{9.5, 10.5, 12.5})
	if err != nil {
		t.Fatal(err)
	}
	got, err := Interpolate(src, planeField(src), dst)
	if err != nil {
		t.Fatal(err)
	}
	want := planeField(dst)
	if !floats.EqualApprox(got.Elements, want.Elements, testTolerance) {
		t.Errorf("plane not reproduced: got %v want %v", got.Elements, want.Elements)
	}
}

// Off-grid targets extrapolate linearly from the outermost cell, so a
// kink inside the grid does not leak past the edge.
func TestInterpolateEdgeExtrapolation(t *testing.T) {
	src, err := NewGrid([]float64{0, 1, 2}, []float64{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	field := sparse.ZerosDense(2, 3)
	for j := 0; j < 2; j++ {
		field.Set(0, j, 0)
		field.Set(1, j, 1)
		field.Set(3, j, 2) // slope 2 in the last cell
	}
	dst, err := NewGrid([]float64{-1, 3}, []float64{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	got, err := Interpolate(src, field, dst)
	if err != nil {
		t.Fatal(err)
	}
	// Left of the grid the first cell's slope 1 extends; right of it the
	// last cell's slope 2 does.
	if different(got.Get(0, 0), -1, testTolerance) {
		t.Errorf("left extrapolation = %g; want -1", got.Get(0, 0))
	}
	if different(got.Get(0, 1), 5, testTolerance) {
		t.Errorf("right extrapolation = %g; want 5", got.Get(0, 1))
	}
}

func TestInterpolateDescendingAxis(t *testing.T) {
	src, err := NewGrid([]float64{0, 1, 2}, []float64{12, 11, 10})
	if err != nil {
		t.Fatal(err)
	}
	dst, err := NewGrid([]float64{0.5, 1.5}, []float64{10.5, 11.5})
	if err != nil {
		t.Fatal(err)
	}
	got, err := Interpolate(src, planeField(src), dst)
	if err != nil {
		t.Fatal(err)
	}
	want := planeField(dst)
	if !floats.EqualApprox(got.Elements, want.Elements, testTolerance) {
		t.Errorf("descending-axis interpolation: got %v want %v",
			got.Elements, want.Elements)
	}
}

func TestInterpolateShapeMismatch(t *testing.T) {
	src, err := NewGrid([]float64{0, 1, 2}, []float64{10, 11})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Interpolate(src, sparse.ZerosDense(3, 3), src); err == nil {
		t.Error("mismatched field shape did not fail")
	}
}
