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
package table

import (
	"fmt"

	"github.com/ivoyager/ivoyager-tables/pkg/util/collection/bit"
)

// Column holds one homogeneous value sequence of a column-oriented table,
// together with the metadata needed after building: the declared default
// (retained so a later modifier table can back-fill new rows correctly), a
// presence bitset distinguishing authored cells from imputed ones, and
// (optionally) per-cell significant-digit counts for float columns.
type Column struct {
	name string
	kind Kind
	// Element kind (array columns only).
	elem Kind
	// Values, one per row of the owning table.
	values []Value
	// Identifies which cells were authored (non-empty in some source file), as
	// opposed to imputed from the column default or missing sentinel.
	present bit.Set
	// Imputation value for cells this column has no authored data for: the
	// declared default if one exists, else the missing value configured for
	// the column's kind.  Applied to empty cells and to rows this column
	// never saw (modifier back-fill).
	fill       Value
	hasDefault bool
	// Significant digits per cell; nil unless precision tracking was enabled
	// and this is a float column.
	precisions []int
	// Significant digits recorded for imputed cells (the fill's own digit
	// count, or zero for a missing fill).
	fillPrecision int
}

// NewColumn constructs an empty column of the given kind.  The fill value
// governs imputation of empty and back-filled cells; hasDefault reports
// whether it is a declared default rather than a missing value.
func NewColumn(name string, kind Kind, elem Kind, fill Value, hasDefault bool) *Column {
	return &Column{name: name, kind: kind, elem: elem, fill: fill, hasDefault: hasDefault}
}

// Name returns the column name.
func (c *Column) Name() string {
	return c.name
}

// Kind returns the declared kind of this column.
func (c *Column) Kind() Kind {
	return c.kind
}

// ElementKind returns the element kind for array columns.
func (c *Column) ElementKind() Kind {
	return c.elem
}

// Len returns the number of rows in this column.
func (c *Column) Len() int {
	return len(c.values)
}

// Get returns the value at a given row.
func (c *Column) Get(row int) Value {
	return c.values[row]
}

// Values returns the full value sequence of this column.  The returned slice
// must not be mutated.
func (c *Column) Values() []Value {
	return c.values
}

// Default returns the declared default of this column, and whether one was
// declared.  Absent a default, gaps hold the configured missing value.
func (c *Column) Default() (Value, bool) {
	return c.fill, c.hasDefault
}

// Fill returns the value used to impute a cell this column has no authored
// data for.
func (c *Column) Fill() Value {
	return c.fill
}

// HasValue reports whether the cell at a given row was authored, as opposed to
// imputed from the default or missing sentinel.  Note that an imputed cell may
// hold a value equal to an authored one; presence is about provenance, not
// content.
func (c *Column) HasValue(row int) bool {
	return c.present.Contains(uint(row))
}

// Precision returns the recorded significant-digit count of the cell at a
// given row, or -1 if precision was not tracked for this column.
func (c *Column) Precision(row int) int {
	if c.precisions == nil {
		return -1
	}
	//
	return c.precisions[row]
}

// Resize extends this column to the given row count, imputing the new cells.
// Used when a modifier table grows the owning table's enumeration.
func (c *Column) Resize(rows int) {
	for len(c.values) < rows {
		c.values = append(c.values, c.fill)
		//
		if c.precisions != nil {
			c.precisions = append(c.precisions, c.fillPrecision)
		}
	}
}

// Set writes an authored value (and optionally its precision) into a given
// row, unconditionally overwriting whatever was there.
func (c *Column) Set(row int, value Value, precision int) {
	c.values[row] = value
	c.present.Insert(uint(row))
	//
	if c.precisions != nil {
		c.precisions[row] = precision
	}
}

// SetImputed writes an imputed (non-authored) value into a given row.
func (c *Column) SetImputed(row int, value Value) {
	c.values[row] = value
	c.present.Remove(uint(row))
	//
	if c.precisions != nil {
		c.precisions[row] = c.fillPrecision
	}
}

// TrackPrecision enables significant-digit recording for this column, with
// every already-imputed cell recording the fill's own precision.
func (c *Column) TrackPrecision(fillPrecision int) {
	c.fillPrecision = fillPrecision
	c.precisions = make([]int, len(c.values))
	//
	for i := range c.precisions {
		c.precisions[i] = fillPrecision
	}
}

// Table is a built column-oriented table: a mapping from column name to one
// homogeneous value sequence, all sequences sharing the single row-index space
// given by the table's enumeration.  A table moves through the states
// Compiling -> Built -> Frozen; after freeze all access is read-only.
type Table struct {
	name string
	// Row enumeration; nil for anonymous-row tables, which have no entity
	// names and cannot be modified.
	rows *Enumeration
	// Number of rows (tracked explicitly for anonymous-row tables).
	height int
	// Column order, as declared in the source file.
	order   []string
	columns map[string]*Column
	// Prefix applied to the implicit name column, matched against modifiers.
	entityPrefix string
	frozen       bool
}

// NewTable constructs an empty table over a given row enumeration (nil for
// anonymous-row tables).
func NewTable(name string, rows *Enumeration, entityPrefix string) *Table {
	return &Table{
		name:         name,
		rows:         rows,
		columns:      make(map[string]*Column),
		entityPrefix: entityPrefix,
	}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Rows returns the row enumeration of this table, or nil for anonymous-row
// tables.
func (t *Table) Rows() *Enumeration {
	return t.rows
}

// Height returns the number of rows in this table.
func (t *Table) Height() int {
	if t.rows != nil {
		return t.rows.Len()
	}
	//
	return t.height
}

// SetHeight fixes the row count of an anonymous-row table.
func (t *Table) SetHeight(height int) {
	t.checkMutable()
	t.height = height
}

// EntityPrefix returns the prefix applied to this table's name column.
func (t *Table) EntityPrefix() string {
	return t.entityPrefix
}

// HasColumn checks whether this table has a given column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Column returns a given column of this table, or nil if no such column
// exists.
func (t *Table) Column(name string) *Column {
	return t.columns[name]
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	return t.order
}

// AddColumn adds a column to this table.  The column must be sized to the
// table height, and its name must be fresh.
func (t *Table) AddColumn(column *Column) {
	t.checkMutable()
	//
	if _, ok := t.columns[column.Name()]; ok {
		panic(fmt.Sprintf("column %s already exists in table %s", column.Name(), t.name))
	}
	//
	t.order = append(t.order, column.Name())
	t.columns[column.Name()] = column
}

// Resize extends every column of this table to the current enumeration
// length, imputing new cells from each column's own fill.  Called after a
// modifier table grows the enumeration.
func (t *Table) Resize() {
	t.checkMutable()
	//
	for _, name := range t.order {
		t.columns[name].Resize(t.Height())
	}
}

// Freeze makes this table (and its enumeration) immutable.
func (t *Table) Freeze() {
	if t.rows != nil {
		t.rows.Freeze()
	}
	//
	t.frozen = true
}

func (t *Table) checkMutable() {
	if t.frozen {
		panic(fmt.Sprintf("table %s is frozen", t.name))
	}
}
