// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package frame provides the in-memory tabular representation shared by the
// reader, validator, and stats stages. A Dataset is a named-column row set;
// cell values are nil (missing), string, or int64 once coerced.
package frame

import (
	"maps"
	"slices"
)

// Row holds one record keyed by column name.
type Row = map[string]any

// Dataset is an ordered-column collection of rows. Stages never mutate a
// Dataset they received; transformations return a new one.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// New creates an empty dataset with the given column order.
func New(columns ...string) *Dataset {
	return &Dataset{Columns: slices.Clone(columns)}
}

// Append adds a row. The row is stored as-is; callers must not reuse the map.
func (d *Dataset) Append(row Row) {
	d.Rows = append(d.Rows, row)
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// HasColumn reports whether the named column is part of the dataset.
func (d *Dataset) HasColumn(name string) bool {
	return slices.Contains(d.Columns, name)
}

// Clone returns a deep copy of the dataset. Row maps are copied so the
// clone can be mutated without touching the original.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Columns: slices.Clone(d.Columns),
		Rows:    make([]Row, 0, len(d.Rows)),
	}
	for _, row := range d.Rows {
		out.Rows = append(out.Rows, maps.Clone(row))
	}
	return out
}

// Column returns the cell values of one column, row order preserved.
// Missing cells are returned as nil.
func (d *Dataset) Column(name string) []any {
	out := make([]any, 0, len(d.Rows))
	for _, row := range d.Rows {
		out = append(out, row[name])
	}
	return out
}
