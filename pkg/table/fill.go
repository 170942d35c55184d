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
	"reflect"
	"strings"
)

// RowMap bulk-copies all authored (present) fields of a given row into a
// key-value map.  Imputed cells are omitted, so the result distinguishes
// "absent" from "present but default-like".  The implicit name column appears
// under "name" for named-row tables.
func (db *Database) RowMap(tableName string, row int) map[string]Value {
	t := db.Table(tableName)
	db.checkRow(t, row)
	//
	result := make(map[string]Value)
	//
	if rows := t.Rows(); rows != nil {
		result["name"] = StringValue(KIND_STRING_NAME, rows.NameOf(row))
	}
	//
	for _, name := range t.ColumnNames() {
		c := t.Column(name)
		//
		if c.HasValue(row) {
			result[name] = c.Get(row)
		}
	}
	//
	return result
}

// FillStruct bulk-copies all authored fields of a given row onto the matching
// exported fields of *target, which must be a pointer to struct.  A field
// matches a column by its `table:"..."` tag if present, else by
// case-insensitive name.  Fields with no matching column, and columns whose
// cells were imputed, are left untouched.
func (db *Database) FillStruct(tableName string, row int, target any) error {
	ptr := reflect.ValueOf(target)
	//
	if ptr.Kind() != reflect.Pointer || ptr.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to struct, got %T", target)
	}
	//
	t := db.Table(tableName)
	db.checkRow(t, row)
	//
	val := ptr.Elem()
	typ := val.Type()
	//
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		//
		if !field.IsExported() {
			continue
		}
		//
		column := columnForField(t, field)
		//
		if column == nil || !column.HasValue(row) {
			continue
		}
		//
		if err := assignValue(val.Field(i), column.Get(row)); err != nil {
			return fmt.Errorf("field %s of %s: %w", field.Name, typ.Name(), err)
		}
	}
	//
	return nil
}

func columnForField(t *Table, field reflect.StructField) *Column {
	if tag, ok := field.Tag.Lookup("table"); ok {
		return t.Column(tag)
	}
	// Fall back on case-insensitive match, ignoring underscores.
	want := normaliseFieldName(field.Name)
	//
	for _, name := range t.ColumnNames() {
		if normaliseFieldName(name) == want {
			return t.Column(name)
		}
	}
	//
	return nil
}

func normaliseFieldName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

func assignValue(field reflect.Value, value Value) error {
	switch value.Kind() {
	case KIND_BOOL:
		if field.Kind() == reflect.Bool {
			field.SetBool(value.Bool())
			return nil
		}
	case KIND_INT, KIND_TABLE_ROW, KIND_ENUM:
		switch field.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			field.SetInt(value.Int())
			return nil
		}
	case KIND_FLOAT:
		switch field.Kind() {
		case reflect.Float32, reflect.Float64:
			field.SetFloat(value.Float())
			return nil
		}
	case KIND_STRING, KIND_STRING_NAME:
		if field.Kind() == reflect.String {
			field.SetString(value.Text())
			return nil
		}
	case KIND_VECTOR2, KIND_VECTOR3, KIND_VECTOR4, KIND_COLOR:
		if field.Type() == reflect.TypeOf([]float64(nil)) {
			field.Set(reflect.ValueOf(value.Components()))
			return nil
		}
	case KIND_ARRAY:
		if field.Type() == reflect.TypeOf([]Value(nil)) {
			field.Set(reflect.ValueOf(value.Elements()))
			return nil
		}
	}
	//
	return fmt.Errorf("cannot assign %s value to %s", value.Kind(), field.Type())
}
