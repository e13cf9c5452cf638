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

import "fmt"

// All errors in this package are fatal to a conversion run: the inputs are
// static files, so nothing is retried and no partial output is produced.

// InvalidGridError indicates a degenerate or non-monotonic grid axis.
type InvalidGridError struct {
	Axis   string // "longitude" or "latitude"
	Reason string
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("owiconv: invalid %s axis: %s", e.Axis, e.Reason)
}

// MalformedHeaderError indicates a fixed-width field that could not be
// decoded, or a record index outside the file. Line is 1-based.
type MalformedHeaderError struct {
	File  string
	Line  int
	Field string
	Value string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("owiconv: %s: line %d: malformed %s field %q",
		e.File, e.Line, e.Field, e.Value)
}

// TruncatedRecordError indicates that a record's packed data block ends
// before the declared grid size is satisfied.
type TruncatedRecordError struct {
	File      string
	Record    int
	NeedLines int
	HaveLines int
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("owiconv: %s: record %d is truncated: need %d data lines, have %d",
		e.File, e.Record, e.NeedLines, e.HaveLines)
}

// SequencingError indicates an output append that is not the next
// sequential time index, or an append to a closed file.
type SequencingError struct {
	Index int // index passed to Append
	Want  int // the only acceptable index
}

func (e *SequencingError) Error() string {
	return fmt.Sprintf("owiconv: out-of-order append at time index %d; want %d",
		e.Index, e.Want)
}

// ConfigurationError indicates an unusable conversion configuration:
// wrong input file count, an invalid bounding box, an unsupported output
// format, or invalid time-alignment parameters.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "owiconv: configuration: " + e.Reason
}

func configErrorf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}
