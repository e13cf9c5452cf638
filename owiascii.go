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
	"strconv"
	"strings"
	"time"

	"github.com/ctessum/sparse"
)

// The OWI-NWS12 ASCII format carries no delimiters or explicit record
// boundaries; every field position is derived arithmetically from the grid
// dimensions declared on the second line of the file. The file holds one
// metadata line, then per time index a header line followed by
// ceil(nLat*nLon/8) data lines of packed 10-character fields.
//
// The byte-offset schema is declared here once rather than at call sites.

// column is the position of one fixed-width field on a line.
type column struct {
	start, width int
}

// owiSchema is the byte-offset schema of the NWS12 pressure format.
var owiSchema = struct {
	nLat, nLon                column // line 2: grid dimensions
	lonStep, latStep          column // record header: grid spacing [deg]
	swLat, swLon              column // record header: SW corner [deg]
	date                      column // record header: YYYYMMDDHHmm
	fieldWidth, fieldsPerLine int    // packed data lines
}{
	nLat:          column{5, 4},
	nLon:          column{15, 4},
	lonStep:       column{22, 6},
	latStep:       column{31, 6},
	swLat:         column{43, 8},
	swLon:         column{57, 8},
	date:          column{68, 12},
	fieldWidth:    10,
	fieldsPerLine: 8,
}

const owiDateLayout = "200601021504"

// slice extracts the field from a line, trimmed of padding. Offsets past
// the end of the line yield an empty string, which fails decoding.
func (c column) slice(line string) string {
	if c.start >= len(line) {
		return ""
	}
	end := c.start + c.width
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[c.start:end])
}

// RecordHeader is the decoded header line of one pressure record.
type RecordHeader struct {
	LonStep, LatStep float64   // grid spacing [deg]
	SWLon, SWLat     float64   // southwest corner [deg]
	Date             time.Time // record timestamp (UTC, minute resolution)

	nLon, nLat int
}

// Grid constructs the rectilinear grid declared by the header. Geometry
// may legitimately differ between records of one file, so callers must
// derive the grid from each record's own header.
func (h RecordHeader) Grid() (*Grid, error) {
	return NewGrid(
		linspace(h.SWLon, h.LonStep, h.nLon),
		linspace(h.SWLat, h.LatStep, h.nLat))
}

// PressureFile provides random access to the records of an NWS12 pressure
// file. The whole file is held in memory as lines; any record is reachable
// in O(record size) by line arithmetic without parsing prior records.
type PressureFile struct {
	path       string
	lines      []string
	nLat, nLon int
	dataLines  int // packed data lines per record
}

// OpenPressureFile reads the file and decodes the grid dimensions from
// its second line.
func OpenPressureFile(path string) (*PressureFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	f := &PressureFile{path: path, lines: lines}
	if len(lines) < 2 {
		return nil, &MalformedHeaderError{File: path, Line: 2, Field: "grid dimensions"}
	}
	f.nLat, err = f.dimField("nLat", owiSchema.nLat)
	if err != nil {
		return nil, err
	}
	f.nLon, err = f.dimField("nLon", owiSchema.nLon)
	if err != nil {
		return nil, err
	}
	f.dataLines = (f.nLat*f.nLon + owiSchema.fieldsPerLine - 1) / owiSchema.fieldsPerLine
	return f, nil
}

func (f *PressureFile) dimField(name string, c column) (int, error) {
	raw := c.slice(f.lines[1])
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, &MalformedHeaderError{File: f.path, Line: 2, Field: name, Value: raw}
	}
	return n, nil
}

// Dims returns the declared grid dimensions (nLat, nLon).
func (f *PressureFile) Dims() (nLat, nLon int) { return f.nLat, f.nLon }

// NumRecords returns the number of complete records in the file.
func (f *PressureFile) NumRecords() int {
	return (len(f.lines) - 1) / (f.dataLines + 1)
}

// headerLine returns the 0-based line number of the header for record idx:
// one metadata line, then for each prior record a header line plus its
// data block.
func (f *PressureFile) headerLine(idx int) int {
	return 1 + idx*(f.dataLines+1)
}

// RecordHeader decodes the header line of record idx.
func (f *PressureFile) RecordHeader(idx int) (RecordHeader, error) {
	hl := f.headerLine(idx)
	if idx < 0 || hl >= len(f.lines) {
		return RecordHeader{}, &MalformedHeaderError{File: f.path, Line: hl + 1,
			Field: "record index", Value: strconv.Itoa(idx)}
	}
	line := f.lines[hl]
	h := RecordHeader{nLon: f.nLon, nLat: f.nLat}
	for _, fld := range []struct {
		name string
		c    column
		dst  *float64
	}{
		{"lonStep", owiSchema.lonStep, &h.LonStep},
		{"latStep", owiSchema.latStep, &h.LatStep},
		{"swLat", owiSchema.swLat, &h.SWLat},
		{"swLon", owiSchema.swLon, &h.SWLon},
	} {
		raw := fld.c.slice(line)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return RecordHeader{}, &MalformedHeaderError{File: f.path, Line: hl + 1,
				Field: fld.name, Value: raw}
		}
		*fld.dst = v
	}
	raw := owiSchema.date.slice(line)
	date, err := time.Parse(owiDateLayout, raw)
	if err != nil {
		return RecordHeader{}, &MalformedHeaderError{File: f.path, Line: hl + 1,
			Field: "date", Value: raw}
	}
	h.Date = date
	return h, nil
}

// Field decodes the packed pressure field of record idx: nLat*nLon values
// in 10-character fields, 8 per line, starting immediately after the
// header line, row-major with longitude advancing fastest.
func (f *PressureFile) Field(idx int) (*sparse.DenseArray, error) {
	hl := f.headerLine(idx)
	if idx < 0 || hl >= len(f.lines) {
		return nil, &MalformedHeaderError{File: f.path, Line: hl + 1,
			Field: "record index", Value: strconv.Itoa(idx)}
	}
	if have := len(f.lines) - hl - 1; have < f.dataLines {
		return nil, &TruncatedRecordError{File: f.path, Record: idx,
			NeedLines: f.dataLines, HaveLines: have}
	}
	out := sparse.ZerosDense(f.nLat, f.nLon)
	w := owiSchema.fieldWidth
	for i := 0; i < f.nLat*f.nLon; i++ {
		lineIdx := hl + 1 + i/owiSchema.fieldsPerLine
		c := column{start: w * (i % owiSchema.fieldsPerLine), width: w}
		raw := c.slice(f.lines[lineIdx])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &MalformedHeaderError{File: f.path, Line: lineIdx + 1,
				Field: "pressure value", Value: raw}
		}
		out.Elements[i] = v
	}
	return out, nil
}
