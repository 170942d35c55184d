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
	"slices"

	"github.com/ivoyager/ivoyager-tables/pkg/table"
	"github.com/ivoyager/ivoyager-tables/pkg/util/source"
)

// Build consumes one non-modifier unit, producing its table, matrix or title
// lookups into the database.  The registry must already be fully populated, so
// row-reference columns can forward-reference tables compiled later in the
// file list.
func Build(unit *Unit, registry *Registry, coercer *Coercer, db *table.Database,
	precision bool, titleFields []string) []source.SyntaxError {
	b := builder{unit, registry, coercer, db, precision, titleFields, nil}
	//
	switch unit.Format {
	case FORMAT_ENUMERATION:
		// Registered during the first pass; nothing to build.
	case FORMAT_MATRIX:
		b.buildMatrix()
	case FORMAT_LOOKUP:
		b.buildLookup()
	default:
		b.buildTable()
	}
	//
	return b.errors
}

type builder struct {
	unit        *Unit
	registry    *Registry
	coercer     *Coercer
	db          *table.Database
	precision   bool
	titleFields []string
	errors      []source.SyntaxError
}

// Build a column-oriented table: one homogeneous value sequence per declared
// column, sized to the table's registered row count.
func (b *builder) buildTable() {
	unit := b.unit
	//
	var enum *table.Enumeration
	//
	if unit.Format != FORMAT_ANONYMOUS {
		enum, _ = b.registry.Enumeration(unit.Name)
	}
	//
	t := table.NewTable(unit.Name, enum, unit.EntityPrefix)
	//
	if enum == nil {
		t.SetHeight(len(unit.Body))
	}
	//
	for j := range unit.ColumnNames {
		if column := b.buildColumn(unit.Spec(j), t.Height(), j); column != nil {
			t.AddColumn(column)
			b.collectTitles(column, enum)
		}
	}
	//
	if len(b.errors) == 0 {
		b.db.AddTable(t)
	}
}

// Build one column by coercing each row's pooled raw string.  Since the pool
// deduplicates raw cells, coercion results are cached per pool index, so the
// work done is bounded by the number of distinct raw values in the column.
func (b *builder) buildColumn(spec *ColumnSpec, height, col int) *table.Column {
	fill, err := b.fillOf(spec)
	//
	if err != nil {
		b.errors = append(b.errors, *err)
		return nil
	}
	//
	column := table.NewColumn(spec.Name, spec.Kind, spec.Elem, fill, spec.HasDefault)
	column.Resize(height)
	//
	if b.precision && spec.Kind == table.KIND_FLOAT {
		column.TrackPrecision(b.coercer.Precision(spec.Default))
	}
	//
	type cached struct {
		value     table.Value
		precision int
	}
	//
	cache := make(map[uint]cached)
	//
	for row := 0; row < len(b.unit.Body); row++ {
		ref := b.unit.Body[row][col]
		raw := b.unit.Pool.Get(ref)
		//
		if raw == "" {
			// Imputed by Resize.
			continue
		}
		//
		hit, ok := cache[ref]
		//
		if !ok {
			value, err := b.coercer.Coerce(raw, spec)
			//
			if err != nil {
				b.errors = append(b.errors, *b.unit.File.SyntaxError(b.unit.CellSpans[row][col], err.Error()))
				continue
			}
			//
			hit = cached{value, b.coercer.Precision(raw)}
			cache[ref] = hit
		}
		//
		column.Set(row, hit.value, hit.precision)
	}
	//
	return column
}

// Coerce a column's fill once, so it can be retained on the built column for
// imputation and modifier back-fill.  Going through the coercion engine keeps
// the fill of a default-less column consistent with what an empty cell
// coerces to, including any configured missing-value overrides.
func (b *builder) fillOf(spec *ColumnSpec) (table.Value, *source.SyntaxError) {
	fill, err := b.coercer.Coerce("", spec)
	//
	if err != nil {
		return table.Value{}, b.unit.File.SyntaxError(spec.Span, err.Error())
	}
	//
	return fill, nil
}

// Collect entity -> display-title side outputs for any built column named by
// the title-field list.
func (b *builder) collectTitles(column *table.Column, enum *table.Enumeration) {
	if enum == nil || !slices.Contains(b.titleFields, column.Name()) {
		return
	}
	//
	for row := 0; row < column.Len(); row++ {
		if column.HasValue(row) {
			b.db.AddTitle(column.Name(), enum.NameOf(row), column.Get(row).Text())
		}
	}
}

// A lookup-only table contributes display titles without joining the entity
// symbol space: its row names may belong to any registered table, or to none.
func (b *builder) buildLookup() {
	unit := b.unit
	//
	for j, name := range unit.ColumnNames {
		spec := unit.Spec(j)
		//
		for row := range unit.Body {
			raw := unit.Cell(row, j)
			//
			if raw == "" {
				continue
			}
			//
			value, err := b.coercer.Coerce(raw, spec)
			//
			if err != nil {
				b.errors = append(b.errors, *unit.File.SyntaxError(unit.CellSpans[row][j], err.Error()))
				continue
			}
			//
			b.db.AddTitle(name, unit.RowNames[row], value.Text())
		}
	}
}

// Build a matrix table: both axis enumerations must already exist, the dense
// array is sized to the full registered enumerations and default-filled, and
// only cells named by the source file are overwritten.  Rows or columns
// absent from the file simply keep the default, so the output is always
// consistent with the target schema even if the source file is incomplete or
// lists entities out of order.
func (b *builder) buildMatrix() {
	unit := b.unit
	//
	rows := b.resolveAxis(unit.RowNames, unit.RowSpans)
	cols := b.resolveAxis(unit.ColumnNames, nil)
	//
	if rows == nil || cols == nil {
		return
	}
	//
	spec := &ColumnSpec{
		Name: unit.Name, Kind: unit.MatrixKind, Unit: unit.MatrixUnit,
		Default: unit.MatrixDefault, HasDefault: unit.MatrixDefault != "",
	}
	//
	def, err := b.coercer.Coerce("", spec)
	//
	if err != nil {
		b.errors = append(b.errors, *unit.File.SyntaxError(source.NewSpan(0, 0), err.Error()))
		return
	}
	//
	m := table.NewMatrix(unit.Name, rows, cols, unit.MatrixKind, def)
	//
	for i, name := range unit.RowNames {
		row, _ := rows.IndexOf(name)
		//
		for j, colName := range unit.ColumnNames {
			col, _ := cols.IndexOf(colName)
			raw := unit.Cell(i, j)
			//
			if raw == "" {
				continue
			}
			//
			value, err := b.coercer.Coerce(raw, spec)
			//
			if err != nil {
				b.errors = append(b.errors, *unit.File.SyntaxError(unit.CellSpans[i][j], err.Error()))
				continue
			}
			//
			m.Set(row, col, value)
		}
	}
	//
	if len(b.errors) == 0 {
		b.db.AddMatrix(m)
	}
}

// Resolve the enumeration an axis' entity names belong to: every name must be
// registered, and all must belong to the same enumeration.
func (b *builder) resolveAxis(names []string, spans []source.Span) *table.Enumeration {
	var enum *table.Enumeration
	//
	for i, name := range names {
		span := source.NewSpan(0, 0)
		//
		if spans != nil {
			span = spans[i]
		}
		//
		entity, ok := b.registry.Entity(name)
		//
		if !ok {
			b.errors = append(b.errors, *b.unit.File.SyntaxErrorf(span, "reference to unregistered entity name %s", name))
			return nil
		}
		//
		axis, _ := b.registry.Enumeration(entity.Table)
		//
		if enum == nil {
			enum = axis
		} else if axis != enum {
			b.errors = append(b.errors,
				*b.unit.File.SyntaxErrorf(span, "entity %s belongs to %s, expected %s", name, axis.Name(), enum.Name()))
			return nil
		}
	}
	//
	if enum == nil {
		b.errors = append(b.errors, *b.unit.File.SyntaxError(source.NewSpan(0, 0), "matrix axis has no entities"))
	}
	//
	return enum
}
