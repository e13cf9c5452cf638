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

// Package owiconv converts meteorological forecast output for
// storm-surge and wave model forcing. It reads surface pressure from
// OWI-NWS12 fixed-width ASCII files and 10 m wind velocity from gridded
// NetCDF time series (HBL output), aligns the two time series, resamples
// the wind fields onto the per-record pressure grid, and writes a single
// OWI-NWS13-equivalent NetCDF archive.
package owiconv

// Version gives the version number.
const Version = "0.1.0"
