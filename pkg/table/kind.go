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
	"strings"
)

// Kind identifies one of the fixed set of value kinds a column can declare.
// The kind of every cell is statically known at coercion time from the column
// schema, hence values are stored in a closed tagged union (see Value) rather
// than behind an open interface.
type Kind uint8

const (
	// KIND_UNKNOWN indicates an undeclared (or not yet resolved) kind.
	KIND_UNKNOWN Kind = iota
	// KIND_BOOL is a boolean cell, populated from constants only.
	KIND_BOOL
	// KIND_INT is a signed integer cell, supporting hex/binary literals and
	// |-delimited flag lists.
	KIND_INT
	// KIND_FLOAT is a double-precision cell, supporting unit conversion and
	// significant-digit tracking.
	KIND_FLOAT
	// KIND_STRING is an escape-decoded text cell.
	KIND_STRING
	// KIND_STRING_NAME is a verbatim (non-decoded) interned text cell.
	KIND_STRING_NAME
	// KIND_VECTOR2 is a 2-component float tuple.
	KIND_VECTOR2
	// KIND_VECTOR3 is a 3-component float tuple.
	KIND_VECTOR3
	// KIND_VECTOR4 is a 4-component float tuple.
	KIND_VECTOR4
	// KIND_COLOR is an rgba quadruple, also populated from named colours.
	KIND_COLOR
	// KIND_TABLE_ROW is an integer cell holding a row index of another table,
	// resolved through the entity registry.
	KIND_TABLE_ROW
	// KIND_ENUM is an integer cell resolved through an externally supplied
	// enumeration lookup, keyed by a group name declared with the column.
	KIND_ENUM
	// KIND_ARRAY is a homogeneous array over one of the scalar kinds above.
	KIND_ARRAY
)

// ParseKind parses a declared type string (e.g. "FLOAT", "ARRAY[INT]",
// "ENUM[CelestialFlags]") into a kind, its element kind (arrays only) and its
// enumeration group (enum kinds only).
func ParseKind(decl string) (kind Kind, elem Kind, group string, err error) {
	switch {
	case strings.HasPrefix(decl, "ARRAY[") && strings.HasSuffix(decl, "]"):
		inner := decl[6 : len(decl)-1]
		//
		elem, _, group, err = ParseKind(inner)
		// Nested arrays are not supported.
		if err == nil && elem == KIND_ARRAY {
			err = fmt.Errorf("nested array type %q", decl)
		}
		//
		return KIND_ARRAY, elem, group, err
	case strings.HasPrefix(decl, "ENUM[") && strings.HasSuffix(decl, "]"):
		return KIND_ENUM, KIND_UNKNOWN, decl[5 : len(decl)-1], nil
	}
	//
	kind, ok := scalarKinds[decl]
	if !ok {
		return KIND_UNKNOWN, KIND_UNKNOWN, "", fmt.Errorf("unknown type %q", decl)
	}
	//
	return kind, KIND_UNKNOWN, "", nil
}

// String returns the declared type string for this kind.
func (k Kind) String() string {
	for decl, kind := range scalarKinds {
		if kind == k {
			return decl
		}
	}
	//
	switch k {
	case KIND_ENUM:
		return "ENUM"
	case KIND_ARRAY:
		return "ARRAY"
	default:
		return "UNKNOWN"
	}
}

// IsNumeric reports whether values of this kind carry a numeric payload to
// which a unit can meaningfully apply.
func (k Kind) IsNumeric() bool {
	switch k {
	case KIND_INT, KIND_FLOAT, KIND_VECTOR2, KIND_VECTOR3, KIND_VECTOR4, KIND_COLOR:
		return true
	default:
		return false
	}
}

var scalarKinds = map[string]Kind{
	"BOOL":        KIND_BOOL,
	"INT":         KIND_INT,
	"FLOAT":       KIND_FLOAT,
	"STRING":      KIND_STRING,
	"STRING_NAME": KIND_STRING_NAME,
	"VECTOR2":     KIND_VECTOR2,
	"VECTOR3":     KIND_VECTOR3,
	"VECTOR4":     KIND_VECTOR4,
	"COLOR":       KIND_COLOR,
	"TABLE_ROW":   KIND_TABLE_ROW,
}
