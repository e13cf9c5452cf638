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
	"time"

	"github.com/ctessum/sparse"
)

// Snapshot bundles the complete set of fields for one time index: the
// record timestamp, the grid, and the pressure and wind-velocity fields,
// all sharing the grid's shape. A Snapshot is produced per index by a
// Reader, consumed once by an output file, and then discarded; snapshots
// are not retained across iterations.
type Snapshot struct {
	date     time.Time
	grid     *Grid
	pressure *sparse.DenseArray
	u, v     *sparse.DenseArray
}

// NewSnapshot bundles one time index worth of data.
func NewSnapshot(date time.Time, grid *Grid, pressure, u, v *sparse.DenseArray) *Snapshot {
	return &Snapshot{date: date, grid: grid, pressure: pressure, u: u, v: v}
}

// Date returns the record timestamp (UTC, minute resolution).
func (s *Snapshot) Date() time.Time { return s.date }

// Grid returns the grid the fields are defined on.
func (s *Snapshot) Grid() *Grid { return s.grid }

// Pressure returns the surface pressure field [mb].
func (s *Snapshot) Pressure() *sparse.DenseArray { return s.pressure }

// U returns the west-east wind velocity field [m/s].
func (s *Snapshot) U() *sparse.DenseArray { return s.u }

// V returns the south-north wind velocity field [m/s].
func (s *Snapshot) V() *sparse.DenseArray { return s.v }
