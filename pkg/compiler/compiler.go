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

// Package compiler turns human-edited, tab-delimited table files into a
// strongly-typed, read-only, cross-referenced database.  One compile pass
// tokenizes every file into a schema-tagged unit, registers the global entity
// name space, coerces every cell into its declared kind, merges modifier
// tables, and freezes the result.  Any schema error aborts the whole pass;
// no partial results are ever published.
package compiler

import (
	"github.com/ivoyager/ivoyager-tables/pkg/table"
	"github.com/ivoyager/ivoyager-tables/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Option configures one compile pass.
type Option func(*config)

type config struct {
	convert     UnitConverter
	lookup      EnumLookup
	precision   bool
	titleFields []string
	constants   map[string]table.Value
	missing     map[table.Kind]table.Value
}

// WithUnitConverter injects the unit-conversion collaborator applied to float
// cells carrying a unit.
func WithUnitConverter(convert UnitConverter) Option {
	return func(c *config) { c.convert = convert }
}

// WithEnumLookup injects the enumeration-lookup collaborator resolving
// externally-defined named constants.
func WithEnumLookup(lookup EnumLookup) Option {
	return func(c *config) { c.lookup = lookup }
}

// WithPrecision enables significant-digit tracking on float columns.
func WithPrecision(enable bool) Option {
	return func(c *config) { c.precision = enable }
}

// WithTitleFields enables entity -> display-title collection for the named
// columns (e.g. "en.wiki").
func WithTitleFields(fields ...string) Option {
	return func(c *config) { c.titleFields = fields }
}

// WithConstants merges extra named constants over the default set.
func WithConstants(constants map[string]table.Value) Option {
	return func(c *config) { c.constants = constants }
}

// WithMissingValues overrides the default per-kind missing values.
func WithMissingValues(missing map[table.Kind]table.Value) Option {
	return func(c *config) { c.missing = missing }
}

// Compile reads and compiles a given set of table files into a frozen
// database.  On any schema error the full error set is returned and no
// database is published.
func Compile(filenames []string, opts ...Option) (*table.Database, []source.SyntaxError) {
	files, err := source.ReadFiles(filenames...)
	//
	if err != nil {
		fake := source.NewSourceFile("", nil)
		return nil, []source.SyntaxError{*fake.SyntaxError(source.NewSpan(0, 0), err.Error())}
	}
	//
	return CompileFiles(files, opts...)
}

// CompileFiles compiles a given set of in-memory table files into a frozen
// database.  The pass is single-threaded and owns all of its intermediate
// state, so concurrent passes over different file sets are independent.
func CompileFiles(files []source.File, opts ...Option) (*table.Database, []source.SyntaxError) {
	var cfg config
	//
	for _, opt := range opts {
		opt(&cfg)
	}
	// Tokenize every file up front.
	units, errors := tokenizeAll(files)
	//
	if len(errors) > 0 {
		return nil, errors
	}
	// First pass: register every non-modifier enumeration, so row-reference
	// columns and modifiers can forward-reference tables in any file order.
	registry := NewRegistry()
	//
	for _, unit := range units {
		switch unit.Format {
		case FORMAT_ENTITIES, FORMAT_ENUMERATION:
			if _, ok := registry.Enumeration(unit.Name); ok {
				errors = append(errors, *unit.File.SyntaxErrorf(source.NewSpan(0, 0),
					"table %s declared more than once", unit.Name))
				continue
			}
			//
			errors = append(errors, registry.RegisterTable(unit)...)
		}
	}
	//
	if len(errors) > 0 {
		return nil, errors
	}
	//
	coercer := NewCoercer(registry, cfg.convert, cfg.lookup, cfg.constants, cfg.missing)
	db := table.NewDatabase()
	// Second pass: build every non-modifier unit.
	for _, unit := range units {
		if unit.Format == FORMAT_MODIFIER {
			continue
		}
		//
		log.Debugf("building %s table %s (%d rows, %d columns)",
			unit.Format, unit.Name, unit.Height(), len(unit.ColumnNames))
		//
		errors = append(errors, Build(unit, registry, coercer, db, cfg.precision, cfg.titleFields)...)
	}
	//
	if len(errors) > 0 {
		return nil, errors
	}
	// Third pass: apply modifier units in file-list order.
	for _, unit := range units {
		if unit.Format != FORMAT_MODIFIER {
			continue
		}
		//
		if !db.HasTable(unit.Modifies) {
			errors = append(errors, *unit.File.SyntaxErrorf(source.NewSpan(0, 0),
				"modifier target table %s does not exist", unit.Modifies))
			continue
		}
		//
		log.Debugf("merging modifier %s into table %s", unit.Name, unit.Modifies)
		//
		errors = append(errors, Merge(unit, db.Table(unit.Modifies), registry, coercer, cfg.precision)...)
	}
	//
	if len(errors) > 0 {
		return nil, errors
	}
	// Publish and freeze.
	registry.Transfer(db)
	db.Freeze()
	//
	log.Debugf("compiled %d files into %d tables", len(files), len(db.TableNames()))
	//
	return db, nil
}

func tokenizeAll(files []source.File) ([]*Unit, []source.SyntaxError) {
	var (
		units  []*Unit
		errors []source.SyntaxError
	)
	//
	for i := range files {
		unit, errs := Tokenize(&files[i])
		errors = append(errors, errs...)
		// A nil unit with no errors was suppressed by DONT_PARSE.
		if unit != nil {
			units = append(units, unit)
		} else if len(errs) == 0 {
			log.Debugf("skipping %s (DONT_PARSE)", files[i].Filename())
		}
	}
	//
	return units, errors
}
