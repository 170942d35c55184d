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

// Entity identifies the owning table and row index of a registered entity
// name.  Entity names are globally unique across all tables.
type Entity struct {
	// Name of the owning table.
	Table string
	// Row index within the owning table.
	Row int
}

// Database is the compiled output of one compile pass: every built table,
// matrix and enumeration, plus the global entity name space.  A database is
// mutable only while the pass that owns it is running; Freeze is the terminal
// transition after which the database is safely shared by any number of
// concurrent readers.
//
// Reading a table or row which does not exist is a usage (programmer) error
// and panics; reading a column which does not exist yields the column kind's
// missing sentinel, so optional columns can be read unconditionally.
type Database struct {
	tables   map[string]*Table
	matrices map[string]*Matrix
	enums    map[string]*Enumeration
	entities map[string]Entity
	// Entity name -> title, per collected title field.
	titles map[string]map[string]string
	frozen bool
}

// NewDatabase constructs an empty, unfrozen database.
func NewDatabase() *Database {
	return &Database{
		tables:   make(map[string]*Table),
		matrices: make(map[string]*Matrix),
		enums:    make(map[string]*Enumeration),
		entities: make(map[string]Entity),
		titles:   make(map[string]map[string]string),
	}
}

// AddTable adds a built table to this database.
func (db *Database) AddTable(t *Table) {
	db.checkMutable()
	db.tables[t.Name()] = t
}

// AddMatrix adds a built matrix to this database.
func (db *Database) AddMatrix(m *Matrix) {
	db.checkMutable()
	db.matrices[m.Name()] = m
}

// AddEnumeration adds an enumeration, keyed by its owning table name.
func (db *Database) AddEnumeration(e *Enumeration) {
	db.checkMutable()
	db.enums[e.Name()] = e
}

// AddEntity records the registry entry of a given entity name.
func (db *Database) AddEntity(name string, entity Entity) {
	db.checkMutable()
	db.entities[name] = entity
}

// AddTitle records a collected entity title under a given title field.
func (db *Database) AddTitle(field, entity, title string) {
	db.checkMutable()
	//
	if _, ok := db.titles[field]; !ok {
		db.titles[field] = make(map[string]string)
	}
	//
	db.titles[field][entity] = title
}

// Freeze recursively makes this database and everything it exposes immutable.
// This is a terminal state transition; there is no thaw.
func (db *Database) Freeze() {
	for _, t := range db.tables {
		t.Freeze()
	}
	//
	for _, m := range db.matrices {
		m.Freeze()
	}
	//
	for _, e := range db.enums {
		e.Freeze()
	}
	//
	db.frozen = true
}

// Frozen reports whether this database has been frozen.
func (db *Database) Frozen() bool {
	return db.frozen
}

// HasTable checks whether a given column-oriented table exists.
func (db *Database) HasTable(name string) bool {
	_, ok := db.tables[name]
	return ok
}

// Table returns a given column-oriented table, or panics if none exists.
func (db *Database) Table(name string) *Table {
	t, ok := db.tables[name]
	//
	if !ok {
		panic(fmt.Sprintf("unknown table %s", name))
	}
	//
	return t
}

// Matrix returns a given matrix table, or panics if none exists.
func (db *Database) Matrix(name string) *Matrix {
	m, ok := db.matrices[name]
	//
	if !ok {
		panic(fmt.Sprintf("unknown matrix table %s", name))
	}
	//
	return m
}

// TableNames returns the names of all column-oriented tables.
func (db *Database) TableNames() []string {
	names := make([]string, 0, len(db.tables))
	//
	for name := range db.tables {
		names = append(names, name)
	}
	//
	return names
}

// RowIndex resolves an entity name to its row index within its owning table.
func (db *Database) RowIndex(entity string) (int, bool) {
	e, ok := db.entities[entity]
	return e.Row, ok
}

// EntityOf resolves an entity name to its full registry entry.
func (db *Database) EntityOf(entity string) (Entity, bool) {
	e, ok := db.entities[entity]
	return e, ok
}

// Enumeration resolves an enumeration by its owning table name, or panics if
// none exists.
func (db *Database) Enumeration(tableName string) *Enumeration {
	e, ok := db.enums[tableName]
	//
	if !ok {
		panic(fmt.Sprintf("no enumeration for table %s", tableName))
	}
	//
	return e
}

// EnumerationOf resolves the enumeration containing a given entity name, or
// panics if the name is not registered.
func (db *Database) EnumerationOf(entity string) *Enumeration {
	e, ok := db.entities[entity]
	//
	if !ok {
		panic(fmt.Sprintf("unknown entity name %s", entity))
	}
	//
	return db.Enumeration(e.Table)
}

// Column returns the full value sequence of a given column, or nil if the
// column does not exist.  The table must exist.
func (db *Database) Column(tableName, column string) []Value {
	c := db.Table(tableName).Column(column)
	//
	if c == nil {
		return nil
	}
	//
	return c.Values()
}

// HasValue reports whether a given cell holds an authored (non-imputed)
// value.  A missing column reports false for every row.
func (db *Database) HasValue(tableName, column string, row int) bool {
	t := db.Table(tableName)
	db.checkRow(t, row)
	//
	c := t.Column(column)
	//
	return c != nil && c.HasValue(row)
}

// Precision returns the recorded significant-digit count of a float cell, or
// -1 when precision was not tracked.
func (db *Database) Precision(tableName, column string, row int) int {
	t := db.Table(tableName)
	db.checkRow(t, row)
	//
	if c := t.Column(column); c != nil {
		return c.Precision(row)
	}
	//
	return -1
}

// GetBool fetches a boolean cell, or false if the column is absent.
func (db *Database) GetBool(tableName, column string, row int) bool {
	return db.get(tableName, column, row, KIND_BOOL).Bool()
}

// GetInt fetches an integer-family cell, or -1 if the column is absent.
func (db *Database) GetInt(tableName, column string, row int) int64 {
	t := db.Table(tableName)
	db.checkRow(t, row)
	//
	c := t.Column(column)
	//
	if c == nil {
		return -1
	}
	//
	return c.Get(row).Int()
}

// GetFloat fetches a float cell, or NaN if the column is absent.
func (db *Database) GetFloat(tableName, column string, row int) float64 {
	return db.get(tableName, column, row, KIND_FLOAT).Float()
}

// GetString fetches a text cell, or "" if the column is absent.
func (db *Database) GetString(tableName, column string, row int) string {
	return db.get(tableName, column, row, KIND_STRING).Text()
}

// GetStringName fetches an interned-text cell, or "" if the column is absent.
func (db *Database) GetStringName(tableName, column string, row int) string {
	return db.get(tableName, column, row, KIND_STRING_NAME).Text()
}

// GetVector fetches the components of a tuple-family cell, or all-NaN
// components of the given kind if the column is absent.
func (db *Database) GetVector(tableName, column string, row int, kind Kind) []float64 {
	return db.get(tableName, column, row, kind).Components()
}

// GetArray fetches an array cell, or nil if the column is absent.
func (db *Database) GetArray(tableName, column string, row int) []Value {
	return db.get(tableName, column, row, KIND_ARRAY).Elements()
}

// Get fetches any cell as a tagged value; a missing column yields the unknown
// kind's zero value with ok=false.
func (db *Database) Get(tableName, column string, row int) (Value, bool) {
	t := db.Table(tableName)
	db.checkRow(t, row)
	//
	c := t.Column(column)
	//
	if c == nil {
		return Value{}, false
	}
	//
	return c.Get(row), true
}

// Titles returns the collected entity -> title map for a given title field
// (e.g. "en.wiki"), or nil if that field was not collected.
func (db *Database) Titles(field string) map[string]string {
	return db.titles[field]
}

func (db *Database) get(tableName, column string, row int, kind Kind) Value {
	t := db.Table(tableName)
	db.checkRow(t, row)
	//
	c := t.Column(column)
	//
	if c == nil {
		return MissingValue(kind)
	}
	//
	return c.Get(row)
}

func (db *Database) checkRow(t *Table, row int) {
	if row < 0 || row >= t.Height() {
		panic(fmt.Sprintf("row %d out of bounds for table %s", row, t.Name()))
	}
}

func (db *Database) checkMutable() {
	if db.frozen {
		panic("database is frozen")
	}
}
