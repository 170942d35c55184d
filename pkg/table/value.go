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
	"math"
	"strconv"
	"strings"
)

// Value is the closed tagged union over all cell kinds.  Every cell of every
// compiled table is one of these.  Each kind has a fixed missing sentinel
// (e.g. -1 for integers, NaN for floats) distinct from any value a well-formed
// cell could legitimately produce, so an absent field is always
// distinguishable from a present but default-like one.
type Value struct {
	kind Kind
	// Element kind (arrays only).
	elem Kind
	b    bool
	i    int64
	f    float64
	s    string
	// Components (vectors and colours).
	vec []float64
	// Elements (arrays); nil means missing, empty means empty.
	arr []Value
}

// BoolValue constructs a boolean value.
func BoolValue(b bool) Value {
	return Value{kind: KIND_BOOL, b: b}
}

// IntValue constructs an integer value of the given integer-family kind
// (KIND_INT, KIND_TABLE_ROW or KIND_ENUM).
func IntValue(kind Kind, i int64) Value {
	return Value{kind: kind, i: i}
}

// FloatValue constructs a float value.
func FloatValue(f float64) Value {
	return Value{kind: KIND_FLOAT, f: f}
}

// StringValue constructs a text value of the given text-family kind
// (KIND_STRING or KIND_STRING_NAME).
func StringValue(kind Kind, s string) Value {
	return Value{kind: kind, s: s}
}

// VectorValue constructs a tuple value of the given tuple-family kind from its
// components.  The component count must match the kind.
func VectorValue(kind Kind, components ...float64) Value {
	if len(components) != componentCount(kind) {
		panic(fmt.Sprintf("%s requires %d components, got %d", kind, componentCount(kind), len(components)))
	}
	//
	return Value{kind: kind, vec: components}
}

// ArrayValue constructs a homogeneous array value over the given element kind.
// Passing a nil slice produces the array missing sentinel; an empty slice
// produces a present, empty array.
func ArrayValue(elem Kind, elements []Value) Value {
	return Value{kind: KIND_ARRAY, elem: elem, arr: elements}
}

// MissingValue returns the fixed missing sentinel for the given kind.
func MissingValue(kind Kind) Value {
	switch kind {
	case KIND_BOOL:
		return BoolValue(false)
	case KIND_INT, KIND_TABLE_ROW, KIND_ENUM:
		return IntValue(kind, -1)
	case KIND_FLOAT:
		return FloatValue(math.NaN())
	case KIND_STRING, KIND_STRING_NAME:
		return StringValue(kind, "")
	case KIND_VECTOR2, KIND_VECTOR3, KIND_VECTOR4, KIND_COLOR:
		nan := math.NaN()
		components := make([]float64, componentCount(kind))
		//
		for i := range components {
			components[i] = nan
		}
		//
		return Value{kind: kind, vec: components}
	case KIND_ARRAY:
		return Value{kind: KIND_ARRAY, arr: nil}
	default:
		panic(fmt.Sprintf("no missing sentinel for kind %s", kind))
	}
}

// Kind returns the kind tag of this value.
func (v Value) Kind() Kind {
	return v.kind
}

// ElementKind returns the element kind of an array value.
func (v Value) ElementKind() Kind {
	return v.elem
}

// Bool returns the boolean payload, or panics if this is not a boolean.
func (v Value) Bool() bool {
	v.checkKind(KIND_BOOL)
	return v.b
}

// Int returns the integer payload of an integer-family value.
func (v Value) Int() int64 {
	if v.kind != KIND_INT && v.kind != KIND_TABLE_ROW && v.kind != KIND_ENUM {
		panic(fmt.Sprintf("expected integer-family value, got %s", v.kind))
	}
	//
	return v.i
}

// Float returns the float payload, or panics if this is not a float.
func (v Value) Float() float64 {
	v.checkKind(KIND_FLOAT)
	return v.f
}

// Text returns the string payload of a text-family value.
func (v Value) Text() string {
	if v.kind != KIND_STRING && v.kind != KIND_STRING_NAME {
		panic(fmt.Sprintf("expected text-family value, got %s", v.kind))
	}
	//
	return v.s
}

// Components returns the float components of a tuple-family value.
func (v Value) Components() []float64 {
	switch v.kind {
	case KIND_VECTOR2, KIND_VECTOR3, KIND_VECTOR4, KIND_COLOR:
		return v.vec
	}
	//
	panic(fmt.Sprintf("expected tuple-family value, got %s", v.kind))
}

// Elements returns the elements of an array value (nil for the missing
// sentinel).
func (v Value) Elements() []Value {
	v.checkKind(KIND_ARRAY)
	return v.arr
}

// IsMissing reports whether this value is its kind's missing sentinel.
func (v Value) IsMissing() bool {
	switch v.kind {
	case KIND_BOOL:
		return !v.b
	case KIND_INT, KIND_TABLE_ROW, KIND_ENUM:
		return v.i == -1
	case KIND_FLOAT:
		return math.IsNaN(v.f)
	case KIND_STRING, KIND_STRING_NAME:
		return v.s == ""
	case KIND_VECTOR2, KIND_VECTOR3, KIND_VECTOR4, KIND_COLOR:
		for _, c := range v.vec {
			if !math.IsNaN(c) {
				return false
			}
		}
		//
		return true
	case KIND_ARRAY:
		return v.arr == nil
	default:
		return true
	}
}

// Equals performs a structural comparison of two values, treating NaN
// components as equal to each other (so missing sentinels compare equal).
func (v Value) Equals(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	//
	switch v.kind {
	case KIND_BOOL:
		return v.b == o.b
	case KIND_INT, KIND_TABLE_ROW, KIND_ENUM:
		return v.i == o.i
	case KIND_FLOAT:
		return floatEquals(v.f, o.f)
	case KIND_STRING, KIND_STRING_NAME:
		return v.s == o.s
	case KIND_VECTOR2, KIND_VECTOR3, KIND_VECTOR4, KIND_COLOR:
		for i := range v.vec {
			if !floatEquals(v.vec[i], o.vec[i]) {
				return false
			}
		}
		//
		return true
	case KIND_ARRAY:
		if (v.arr == nil) != (o.arr == nil) || len(v.arr) != len(o.arr) {
			return false
		}
		//
		for i := range v.arr {
			if !v.arr[i].Equals(o.arr[i]) {
				return false
			}
		}
		//
		return true
	}
	//
	return false
}

// String returns a human-readable rendering of this value, as used by the
// table inspector.
func (v Value) String() string {
	switch v.kind {
	case KIND_BOOL:
		return strconv.FormatBool(v.b)
	case KIND_INT, KIND_TABLE_ROW, KIND_ENUM:
		return strconv.FormatInt(v.i, 10)
	case KIND_FLOAT:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KIND_STRING, KIND_STRING_NAME:
		return v.s
	case KIND_VECTOR2, KIND_VECTOR3, KIND_VECTOR4, KIND_COLOR:
		var parts []string
		//
		for _, c := range v.vec {
			parts = append(parts, strconv.FormatFloat(c, 'g', -1, 64))
		}
		//
		return "(" + strings.Join(parts, ", ") + ")"
	case KIND_ARRAY:
		var parts []string
		//
		for _, e := range v.arr {
			parts = append(parts, e.String())
		}
		//
		return "[" + strings.Join(parts, "; ") + "]"
	}
	//
	return "?"
}

func (v Value) checkKind(expected Kind) {
	if v.kind != expected {
		panic(fmt.Sprintf("expected %s value, got %s", expected, v.kind))
	}
}

func componentCount(kind Kind) int {
	switch kind {
	case KIND_VECTOR2:
		return 2
	case KIND_VECTOR3:
		return 3
	case KIND_VECTOR4, KIND_COLOR:
		return 4
	default:
		return 0
	}
}

func floatEquals(l, r float64) bool {
	return l == r || (math.IsNaN(l) && math.IsNaN(r))
}
