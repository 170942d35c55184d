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
	"github.com/ivoyager/ivoyager-tables/pkg/util/source"
)

// Merge applies a modifier unit against an already-built column-oriented
// table, in place: it extends the row-name enumeration, adds new columns
// (back-filling existing rows with the column's own fill), and overwrites
// specified cells.  It never removes rows or columns.  Modifier units are
// processed only after every non-modifier table's enumeration has been
// registered, so a modifier may reference entities from tables compiled later
// in the file list.
func Merge(unit *Unit, target *table.Table, registry *Registry, coercer *Coercer,
	precision bool) []source.SyntaxError {
	m := merger{unit, target, registry, coercer, precision, nil}
	//
	// The target's entity-prefix metadata must match the modifier's.
	if target.EntityPrefix() != unit.EntityPrefix {
		m.errorAt(source.NewSpan(0, 0), "modifier prefix %q does not match table %s prefix %q",
			unit.EntityPrefix, target.Name(), target.EntityPrefix())
		return m.errors
	}
	//
	if target.Rows() == nil {
		m.errorAt(source.NewSpan(0, 0), "anonymous-row table %s cannot be modified", target.Name())
		return m.errors
	}
	// New columns are added and back-filled before any modifier-row values
	// are applied.
	m.addColumns()
	// Enumeration extension precedes value application.
	rows := m.extendRows()
	// Finally, every modifier cell overwrites its target cell.
	if len(m.errors) == 0 {
		m.applyCells(rows)
	}
	//
	return m.errors
}

type merger struct {
	unit      *Unit
	target    *table.Table
	registry  *Registry
	coercer   *Coercer
	precision bool
	errors    []source.SyntaxError
}

// Add modifier columns not already present, sized to the existing row count
// and back-filled from each column's own fill.
func (m *merger) addColumns() {
	for j := range m.unit.ColumnNames {
		spec := m.unit.Spec(j)
		//
		if m.target.HasColumn(spec.Name) {
			continue
		}
		//
		fill, err := m.coercer.Coerce("", spec)
		//
		if err != nil {
			m.errorAt(spec.Span, "%s", err.Error())
			continue
		}
		//
		column := table.NewColumn(spec.Name, spec.Kind, spec.Elem, fill, spec.HasDefault)
		column.Resize(m.target.Height())
		//
		if m.precision && spec.Kind == table.KIND_FLOAT {
			column.TrackPrecision(m.coercer.Precision(spec.Default))
		}
		//
		m.target.AddColumn(column)
	}
}

// Resolve every modifier row to a target row index, allocating fresh indices
// at the end of the enumeration for unseen entity names.  If the enumeration
// grew, every column is resized, with the new slots imputed from each
// column's previously recorded fill.
func (m *merger) extendRows() []int {
	enum := m.target.Rows()
	rows := make([]int, len(m.unit.RowNames))
	grew := false
	//
	for i, name := range m.unit.RowNames {
		if row, ok := enum.IndexOf(name); ok {
			rows[i] = row
			continue
		}
		//
		if err := m.registry.RegisterRow(enum, name, m.unit.File, m.unit.RowSpans[i]); err != nil {
			m.errors = append(m.errors, *err)
			continue
		}
		//
		rows[i], _ = enum.IndexOf(name)
		grew = true
	}
	//
	if grew {
		m.target.Resize()
	}
	//
	return rows
}

// Coerce and write every (modifier row, modifier column) cell into the target,
// unconditionally overwriting whatever was there, including a previously
// applied default.
func (m *merger) applyCells(rows []int) {
	for j := range m.unit.ColumnNames {
		spec := m.unit.Spec(j)
		column := m.target.Column(spec.Name)
		//
		for i, row := range rows {
			raw := m.unit.Cell(i, j)
			// An empty modifier cell re-imputes the column's own fill,
			// reverting even an authored base value.
			if raw == "" {
				column.SetImputed(row, column.Fill())
				continue
			}
			//
			value, err := m.coercer.Coerce(raw, spec)
			//
			if err != nil {
				m.errors = append(m.errors, *m.unit.File.SyntaxError(m.unit.CellSpans[i][j], err.Error()))
				continue
			}
			//
			column.Set(row, value, m.coercer.Precision(raw))
		}
	}
}

func (m *merger) errorAt(span source.Span, format string, args ...any) {
	m.errors = append(m.errors, *m.unit.File.SyntaxErrorf(span, format, args...))
}
