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
	"math"
	"testing"
)

func Test_Value_MissingSentinels(t *testing.T) {
	for kind := KIND_BOOL; kind <= KIND_ARRAY; kind++ {
		if !MissingValue(kind).IsMissing() {
			t.Errorf("missing sentinel of %s not missing", kind)
		}
	}
	// Legitimate values are never missing.
	cases := []Value{
		BoolValue(true),
		IntValue(KIND_INT, 0),
		FloatValue(0),
		StringValue(KIND_STRING, "x"),
		VectorValue(KIND_VECTOR2, 0, math.NaN()),
		ArrayValue(KIND_INT, []Value{}),
	}
	//
	for _, v := range cases {
		if v.IsMissing() {
			t.Errorf("%s value %s reported missing", v.Kind(), v)
		}
	}
}

func Test_Value_EmptyVsMissingArray(t *testing.T) {
	empty := ArrayValue(KIND_INT, []Value{})
	absent := MissingValue(KIND_ARRAY)
	//
	if empty.IsMissing() || !absent.IsMissing() {
		t.Errorf("empty and missing arrays conflated")
	}
	//
	if empty.Equals(absent) {
		t.Errorf("empty array equals missing array")
	}
}

func Test_Value_Equals(t *testing.T) {
	if !FloatValue(math.NaN()).Equals(FloatValue(math.NaN())) {
		t.Errorf("NaN floats should compare equal")
	}
	//
	if !MissingValue(KIND_VECTOR3).Equals(MissingValue(KIND_VECTOR3)) {
		t.Errorf("missing vectors should compare equal")
	}
	// Same payload, different kind tag.
	if IntValue(KIND_INT, 5).Equals(IntValue(KIND_ENUM, 5)) {
		t.Errorf("kinds should distinguish values")
	}
	//
	a := ArrayValue(KIND_FLOAT, []Value{FloatValue(1), FloatValue(2)})
	b := ArrayValue(KIND_FLOAT, []Value{FloatValue(1), FloatValue(2)})
	c := ArrayValue(KIND_FLOAT, []Value{FloatValue(1)})
	//
	if !a.Equals(b) || a.Equals(c) {
		t.Errorf("bad array comparison")
	}
}

func Test_Value_KindMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic")
		}
	}()
	//
	FloatValue(1).Bool()
}

func Test_Value_String(t *testing.T) {
	cases := map[string]Value{
		"true":         BoolValue(true),
		"-7":           IntValue(KIND_INT, -7),
		"1000.5":       FloatValue(1000.5),
		"hello":        StringValue(KIND_STRING, "hello"),
		"(1, 2, 3)":    VectorValue(KIND_VECTOR3, 1, 2, 3),
		"[1; 2]":       ArrayValue(KIND_INT, []Value{IntValue(KIND_INT, 1), IntValue(KIND_INT, 2)}),
	}
	//
	for want, v := range cases {
		if got := v.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func Test_ParseKind(t *testing.T) {
	kind, elem, group, err := ParseKind("ARRAY[FLOAT]")
	//
	if err != nil || kind != KIND_ARRAY || elem != KIND_FLOAT || group != "" {
		t.Errorf("bad ARRAY[FLOAT]: %s %s %q %v", kind, elem, group, err)
	}
	//
	kind, _, group, err = ParseKind("ENUM[CelestialFlags]")
	//
	if err != nil || kind != KIND_ENUM || group != "CelestialFlags" {
		t.Errorf("bad ENUM: %s %q %v", kind, group, err)
	}
	//
	if _, _, _, err = ParseKind("ARRAY[ARRAY[INT]]"); err == nil {
		t.Errorf("nested array accepted")
	}
	//
	if _, _, _, err = ParseKind("WIBBLE"); err == nil {
		t.Errorf("unknown type accepted")
	}
	// Round trip over the scalar kinds.
	for _, decl := range []string{"BOOL", "INT", "FLOAT", "STRING", "STRING_NAME", "VECTOR3", "COLOR", "TABLE_ROW"} {
		kind, _, _, err := ParseKind(decl)
		//
		if err != nil || kind.String() != decl {
			t.Errorf("bad round trip for %s: %s %v", decl, kind, err)
		}
	}
}
