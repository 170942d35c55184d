// Copyright I, Voyager project contributors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package compiler

import (
	"github.com/ivoyager/ivoyager-tables/pkg/table"
	"github.com/ivoyager/ivoyager-tables/pkg/util/collection/pool"
	"github.com/ivoyager/ivoyager-tables/pkg/util/source"
)

// Format identifies the shape of a compiled table unit.
type Format uint8

const (
	// FORMAT_ENTITIES is a column-oriented table with named rows.  This is
	// the default shape when no directive is given and the last row has a
	// non-empty first cell.
	FORMAT_ENTITIES Format = iota
	// FORMAT_ANONYMOUS is a column-oriented table with unnamed rows.  It has
	// no name column, contributes no enumeration, and cannot be modified.
	FORMAT_ANONYMOUS
	// FORMAT_ENUMERATION is a row-name-only table: no columns, just an
	// ordered entity name space usable by other tables.
	FORMAT_ENUMERATION
	// FORMAT_MODIFIER patches a previously built entities table, adding rows
	// and columns and overwriting cells.
	FORMAT_MODIFIER
	// FORMAT_LOOKUP is a named-row table whose columns serve display/title
	// purposes only; it does not contribute to the entity symbol space.
	FORMAT_LOOKUP
	// FORMAT_MATRIX is a dense 2-D table indexed by two independent
	// enumerations, with a single declared element kind.
	FORMAT_MATRIX
)

// String returns the directive name of this format.
func (f Format) String() string {
	switch f {
	case FORMAT_ENTITIES:
		return "ENTITIES"
	case FORMAT_ANONYMOUS:
		return "ANONYMOUS_ROWS"
	case FORMAT_ENUMERATION:
		return "ENUMERATION"
	case FORMAT_MODIFIER:
		return "MODIFIES"
	case FORMAT_LOOKUP:
		return "WIKI_LOOKUP"
	case FORMAT_MATRIX:
		return "MATRIX"
	default:
		return "UNKNOWN"
	}
}

// ColumnSpec carries the declared schema of one column: its kind (with
// element kind for arrays and group name for external enumerations), and the
// optional unit, prefix and raw default applied during coercion.
type ColumnSpec struct {
	// Column name, as declared in the header.
	Name string
	// Declared kind; KIND_STRING when no Type metadata row names this column.
	Kind table.Kind
	// Element kind (array columns only).
	Elem table.Kind
	// External enumeration group (enum columns only).
	EnumGroup string
	// Unit symbol handed to the conversion collaborator (numeric kinds only).
	Unit string
	// Prefix prepended to raw cell text before interpretation.
	Prefix string
	// Raw default text, coerced on demand for empty and back-filled cells.
	Default    string
	HasDefault bool
	// Span of the header cell declaring this column, for error reporting.
	Span source.Span
}

// Unit is a compiled table unit: the schema-tagged intermediate form of one
// source file, produced by the tokenizer and consumed exactly once by the
// table builder or the modifier merge.  Its string pool and body are not
// retained after coercion.
type Unit struct {
	// Originating source file, for error reporting.
	File *source.File
	// Shape of this unit.
	Format Format
	// Table name (filename stem).
	Name string
	// Target table name (modifier units only).
	Modifies string
	// Element kind, raw default and unit (matrix units only).
	MatrixKind    table.Kind
	MatrixDefault string
	MatrixUnit    string
	// Whether the matrix axes are swapped before building.
	Transpose bool
	// Prefix applied to the implicit row-name column.
	EntityPrefix string
	// Ordered column names; empty for row-name-only units.
	ColumnNames []string
	// Per-column declared schema, parallel to ColumnNames.
	Specs []ColumnSpec
	// Ordered row names; empty for anonymous-row units.
	RowNames []string
	// Span of each row-name cell, parallel to RowNames.
	RowSpans []source.Span
	// Deduplicated raw cell strings; index 0 always denotes "".
	Pool *pool.StringPool
	// Raw cells as pool indices, one row per data row, one cell per column.
	Body [][]uint
	// Span of each body cell, parallel to Body.
	CellSpans [][]source.Span
}

// Height returns the number of data rows in this unit.
func (u *Unit) Height() int {
	if len(u.RowNames) > 0 {
		return len(u.RowNames)
	}
	//
	return len(u.Body)
}

// Spec returns the declared schema of a given column.
func (u *Unit) Spec(col int) *ColumnSpec {
	return &u.Specs[col]
}

// Cell returns the raw string of a given body cell.
func (u *Unit) Cell(row, col int) string {
	return u.Pool.Get(u.Body[row][col])
}
