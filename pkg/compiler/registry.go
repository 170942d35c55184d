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

// Registry is the pass-wide symbol table mapping every declared entity name,
// across every table compiled so far, to a stable row index within its owning
// table.  Entity names are globally unique; a violated insert is a fatal
// schema error.  The registry also exposes, per table name, the ordered
// name<->index enumeration usable by any other table's row-reference columns.
//
// A registry is constructed fresh per compile pass and threaded explicitly
// through the tokenize/build/merge call chain, which keeps the pass reentrant
// and testable.
type Registry struct {
	entities map[string]table.Entity
	enums    map[string]*table.Enumeration
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[string]table.Entity),
		enums:    make(map[string]*table.Enumeration),
	}
}

// RegisterTable allocates the enumeration for a given table, registering every
// row name of the given unit.  Errors identify the declaring cells.
func (r *Registry) RegisterTable(unit *Unit) []source.SyntaxError {
	var errors []source.SyntaxError
	//
	enum := table.NewEnumeration(unit.Name)
	r.enums[unit.Name] = enum
	//
	for i, name := range unit.RowNames {
		if err := r.RegisterRow(enum, name, unit.File, unit.RowSpans[i]); err != nil {
			errors = append(errors, *err)
		}
	}
	//
	return errors
}

// RegisterRow registers one entity name into a given enumeration, allocating
// its row index.  Registering a name already present anywhere in the registry
// is a fatal schema error (global uniqueness).
func (r *Registry) RegisterRow(enum *table.Enumeration, name string, file *source.File,
	span source.Span) *source.SyntaxError {
	if existing, ok := r.entities[name]; ok {
		return file.SyntaxErrorf(span, "entity name %s already declared by table %s", name, existing.Table)
	}
	//
	row := enum.Add(name)
	r.entities[name] = table.Entity{Table: enum.Name(), Row: row}
	//
	return nil
}

// Entity resolves an entity name to its registry entry.
func (r *Registry) Entity(name string) (table.Entity, bool) {
	e, ok := r.entities[name]
	return e, ok
}

// Enumeration resolves the enumeration of a given table name.
func (r *Registry) Enumeration(tableName string) (*table.Enumeration, bool) {
	e, ok := r.enums[tableName]
	return e, ok
}

// Transfer copies the full registry into a database, as the final step of a
// successful pass.
func (r *Registry) Transfer(db *table.Database) {
	for name, entity := range r.entities {
		db.AddEntity(name, entity)
	}
	//
	for _, enum := range r.enums {
		db.AddEnumeration(enum)
	}
}
