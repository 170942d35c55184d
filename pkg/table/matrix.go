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

import "fmt"

// Matrix is a built matrix table: a dense 2-D array of one value kind,
// indexed by two independent enumerations.  The array is always sized to the
// full registered enumerations (not merely the rows/columns present in the
// source file) and default-filled, so the output is consistent with the
// target schema even when the source file is incomplete or lists entities out
// of order.
type Matrix struct {
	name string
	rows *Enumeration
	cols *Enumeration
	kind Kind
	// Default used to fill cells absent from the source file.
	def Value
	// Dense row-major cell array, len = rows.Len() * cols.Len().
	cells  []Value
	frozen bool
}

// NewMatrix constructs a matrix over two enumerations, with every cell filled
// with the given default.
func NewMatrix(name string, rows, cols *Enumeration, kind Kind, def Value) *Matrix {
	cells := make([]Value, rows.Len()*cols.Len())
	//
	for i := range cells {
		cells[i] = def
	}
	//
	return &Matrix{name: name, rows: rows, cols: cols, kind: kind, def: def, cells: cells}
}

// Name returns the matrix table name.
func (m *Matrix) Name() string {
	return m.name
}

// Rows returns the row enumeration.
func (m *Matrix) Rows() *Enumeration {
	return m.rows
}

// Cols returns the column enumeration.
func (m *Matrix) Cols() *Enumeration {
	return m.cols
}

// Kind returns the element kind of this matrix.
func (m *Matrix) Kind() Kind {
	return m.kind
}

// Default returns the cell default of this matrix.
func (m *Matrix) Default() Value {
	return m.def
}

// Get returns the cell at a given row and column index.
func (m *Matrix) Get(row, col int) Value {
	return m.cells[m.offset(row, col)]
}

// Set overwrites the cell at a given row and column index.
func (m *Matrix) Set(row, col int, value Value) {
	if m.frozen {
		panic(fmt.Sprintf("matrix %s is frozen", m.name))
	}
	//
	m.cells[m.offset(row, col)] = value
}

// Freeze makes this matrix immutable.  The axis enumerations are frozen by
// their owning tables.
func (m *Matrix) Freeze() {
	m.frozen = true
}

func (m *Matrix) offset(row, col int) int {
	if row < 0 || row >= m.rows.Len() || col < 0 || col >= m.cols.Len() {
		panic(fmt.Sprintf("matrix %s access (%d,%d) out of bounds", m.name, row, col))
	}
	//
	return row*m.cols.Len() + col
}
