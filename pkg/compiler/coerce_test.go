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
	"fmt"
	"math"
	"testing"

	"github.com/ivoyager/ivoyager-tables/pkg/table"
)

func Test_Coerce_Bool(t *testing.T) {
	c := testCoercer(t)
	spec := &ColumnSpec{Kind: table.KIND_BOOL}
	//
	checkCoerce(t, c, "true", spec, table.BoolValue(true))
	checkCoerce(t, c, "x", spec, table.BoolValue(true))
	checkCoerce(t, c, "FALSE", spec, table.BoolValue(false))
	checkCoerce(t, c, "", spec, table.BoolValue(false))
	checkCoerceFails(t, c, "yes", spec)
}

func Test_Coerce_Int(t *testing.T) {
	c := testCoercer(t)
	spec := &ColumnSpec{Kind: table.KIND_INT}
	//
	checkCoerce(t, c, "42", spec, table.IntValue(table.KIND_INT, 42))
	checkCoerce(t, c, "-7", spec, table.IntValue(table.KIND_INT, -7))
	checkCoerce(t, c, "0x2A", spec, table.IntValue(table.KIND_INT, 42))
	checkCoerce(t, c, "0b101010", spec, table.IntValue(table.KIND_INT, 42))
	checkCoerce(t, c, "1_000_000", spec, table.IntValue(table.KIND_INT, 1000000))
	checkCoerce(t, c, "", spec, table.IntValue(table.KIND_INT, -1))
	checkCoerceFails(t, c, "abc", spec)
}

func Test_Coerce_IntFlags(t *testing.T) {
	c := testCoercer(t)
	spec := &ColumnSpec{Kind: table.KIND_INT}
	//
	checkCoerce(t, c, "0x01|0x04", spec, table.IntValue(table.KIND_INT, 5))
	checkCoerce(t, c, "1 | 2 | 8", spec, table.IntValue(table.KIND_INT, 11))
	checkCoerceFails(t, c, "1|wibble", spec)
}

func Test_Coerce_Float(t *testing.T) {
	c := testCoercer(t)
	spec := &ColumnSpec{Kind: table.KIND_FLOAT}
	//
	checkCoerce(t, c, "1e3", spec, table.FloatValue(1000))
	checkCoerce(t, c, "1,000.5", spec, table.FloatValue(1000.5))
	checkCoerce(t, c, "1_000.5", spec, table.FloatValue(1000.5))
	checkCoerce(t, c, "~5", spec, table.FloatValue(5))
	checkCoerce(t, c, "inf", spec, table.FloatValue(math.Inf(1)))
	checkCoerce(t, c, "-INF", spec, table.FloatValue(math.Inf(-1)))
	checkCoerceFails(t, c, "wibble", spec)
	// An empty float cell is NaN, and NaN compares equal to itself here.
	checkCoerce(t, c, "", spec, table.FloatValue(math.NaN()))
	checkCoerce(t, c, "nan", spec, table.FloatValue(math.NaN()))
}

func Test_Coerce_FloatUnits(t *testing.T) {
	c := testCoercer(t)
	// Column unit applies to plain literals.
	checkCoerce(t, c, "2", &ColumnSpec{Kind: table.KIND_FLOAT, Unit: "km"}, table.FloatValue(2000))
	// Inline unit overrides the column unit.
	checkCoerce(t, c, "3 km", &ColumnSpec{Kind: table.KIND_FLOAT, Unit: "d"}, table.FloatValue(3000))
	// "v/unit" hands "1/unit" to the converter.
	checkCoerce(t, c, "5/d", &ColumnSpec{Kind: table.KIND_FLOAT}, table.FloatValue(5.0/86400))
	// Constants bypass conversion entirely.
	checkCoerce(t, c, "inf", &ColumnSpec{Kind: table.KIND_FLOAT, Unit: "km"}, table.FloatValue(math.Inf(1)))
	// Unknown units are the converter's error, not ours.
	checkCoerceFails(t, c, "2", &ColumnSpec{Kind: table.KIND_FLOAT, Unit: "furlongs"})
}

func Test_Coerce_String(t *testing.T) {
	c := testCoercer(t)
	//
	checkCoerce(t, c, "plain text", &ColumnSpec{Kind: table.KIND_STRING},
		table.StringValue(table.KIND_STRING, "plain text"))
	checkCoerce(t, c, `line one\nline two`, &ColumnSpec{Kind: table.KIND_STRING},
		table.StringValue(table.KIND_STRING, "line one\nline two"))
	checkCoerce(t, c, `Aé`, &ColumnSpec{Kind: table.KIND_STRING},
		table.StringValue(table.KIND_STRING, "Aé"))
	checkCoerce(t, c, "Earth", &ColumnSpec{Kind: table.KIND_STRING, Prefix: "Planet "},
		table.StringValue(table.KIND_STRING, "Planet Earth"))
	checkCoerceFails(t, c, `bad \q escape`, &ColumnSpec{Kind: table.KIND_STRING})
}

func Test_Coerce_StringName(t *testing.T) {
	c := testCoercer(t)
	// STRING_NAME is verbatim: no escape decoding.
	checkCoerce(t, c, `a\nb`, &ColumnSpec{Kind: table.KIND_STRING_NAME},
		table.StringValue(table.KIND_STRING_NAME, `a\nb`))
	checkCoerce(t, c, "EARTH", &ColumnSpec{Kind: table.KIND_STRING_NAME, Prefix: "PLANET_"},
		table.StringValue(table.KIND_STRING_NAME, "PLANET_EARTH"))
}

func Test_Coerce_TableRow(t *testing.T) {
	c := testCoercer(t)
	//
	checkCoerce(t, c, "PLANET_EARTH", &ColumnSpec{Kind: table.KIND_TABLE_ROW},
		table.IntValue(table.KIND_TABLE_ROW, 2))
	checkCoerce(t, c, "VENUS", &ColumnSpec{Kind: table.KIND_TABLE_ROW, Prefix: "PLANET_"},
		table.IntValue(table.KIND_TABLE_ROW, 1))
	checkCoerce(t, c, "", &ColumnSpec{Kind: table.KIND_TABLE_ROW},
		table.IntValue(table.KIND_TABLE_ROW, -1))
	// Raw indices never resolve; only registered names do.
	checkCoerceFails(t, c, "2", &ColumnSpec{Kind: table.KIND_TABLE_ROW})
	checkCoerceFails(t, c, "PLANET_VULCAN", &ColumnSpec{Kind: table.KIND_TABLE_ROW})
}

func Test_Coerce_Enum(t *testing.T) {
	c := testCoercer(t)
	spec := &ColumnSpec{Kind: table.KIND_ENUM, EnumGroup: "Confidence"}
	//
	checkCoerce(t, c, "2", spec, table.IntValue(table.KIND_ENUM, 2))
	checkCoerce(t, c, "CONFIDENCE_HIGH", spec, table.IntValue(table.KIND_ENUM, 2))
	checkCoerce(t, c, "CONFIDENCE_HIGH|1", spec, table.IntValue(table.KIND_ENUM, 3))
	checkCoerce(t, c, "HIGH", &ColumnSpec{Kind: table.KIND_ENUM, EnumGroup: "Confidence", Prefix: "CONFIDENCE_"},
		table.IntValue(table.KIND_ENUM, 2))
	checkCoerceFails(t, c, "CONFIDENCE_BOGUS", spec)
}

func Test_Coerce_Vector(t *testing.T) {
	c := testCoercer(t)
	//
	checkCoerce(t, c, "1, 2", &ColumnSpec{Kind: table.KIND_VECTOR2},
		table.VectorValue(table.KIND_VECTOR2, 1, 2))
	checkCoerce(t, c, "1, 2, 3", &ColumnSpec{Kind: table.KIND_VECTOR3},
		table.VectorValue(table.KIND_VECTOR3, 1, 2, 3))
	// Column unit applies per component.
	checkCoerce(t, c, "1, 2", &ColumnSpec{Kind: table.KIND_VECTOR2, Unit: "km"},
		table.VectorValue(table.KIND_VECTOR2, 1000, 2000))
	checkCoerceFails(t, c, "1, 2", &ColumnSpec{Kind: table.KIND_VECTOR3})
	checkCoerceFails(t, c, "1, wibble", &ColumnSpec{Kind: table.KIND_VECTOR2})
}

func Test_Coerce_Color(t *testing.T) {
	c := testCoercer(t)
	spec := &ColumnSpec{Kind: table.KIND_COLOR}
	//
	checkCoerce(t, c, "red", spec, table.VectorValue(table.KIND_COLOR, 1, 0, 0, 1))
	checkCoerce(t, c, "red, 0.5", spec, table.VectorValue(table.KIND_COLOR, 1, 0, 0, 0.5))
	checkCoerce(t, c, "0.1, 0.2, 0.3", spec, table.VectorValue(table.KIND_COLOR, 0.1, 0.2, 0.3, 1))
	checkCoerce(t, c, "0.1, 0.2, 0.3, 0.4", spec, table.VectorValue(table.KIND_COLOR, 0.1, 0.2, 0.3, 0.4))
	checkCoerceFails(t, c, "0.1, 0.2", spec)
	checkCoerceFails(t, c, "red, 0.5, 0.5", spec)
}

func Test_Coerce_Array(t *testing.T) {
	c := testCoercer(t)
	//
	checkCoerce(t, c, "1; 2; 3", &ColumnSpec{Kind: table.KIND_ARRAY, Elem: table.KIND_INT},
		table.ArrayValue(table.KIND_INT, []table.Value{
			table.IntValue(table.KIND_INT, 1),
			table.IntValue(table.KIND_INT, 2),
			table.IntValue(table.KIND_INT, 3),
		}))
	//
	checkCoerce(t, c, "PLANET_EARTH; PLANET_VENUS",
		&ColumnSpec{Kind: table.KIND_ARRAY, Elem: table.KIND_TABLE_ROW},
		table.ArrayValue(table.KIND_TABLE_ROW, []table.Value{
			table.IntValue(table.KIND_TABLE_ROW, 2),
			table.IntValue(table.KIND_TABLE_ROW, 1),
		}))
	//
	checkCoerceFails(t, c, "1; wibble", &ColumnSpec{Kind: table.KIND_ARRAY, Elem: table.KIND_INT})
}

func Test_Coerce_ArrayEmpty(t *testing.T) {
	c := testCoercer(t)
	// An empty array cell is a present, empty array, not the missing sentinel.
	value, err := c.Coerce("", &ColumnSpec{Kind: table.KIND_ARRAY, Elem: table.KIND_INT})
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if value.IsMissing() || len(value.Elements()) != 0 {
		t.Errorf("empty cell should yield an empty array, got %s", value)
	}
	//
	if !table.MissingValue(table.KIND_ARRAY).IsMissing() {
		t.Errorf("array missing sentinel not missing")
	}
}

func Test_Coerce_Defaults(t *testing.T) {
	c := testCoercer(t)
	// Empty cells take the declared default through the full coercion path.
	checkCoerce(t, c, "", &ColumnSpec{Kind: table.KIND_INT, Default: "42", HasDefault: true},
		table.IntValue(table.KIND_INT, 42))
	checkCoerce(t, c, "", &ColumnSpec{Kind: table.KIND_FLOAT, Unit: "km", Default: "2", HasDefault: true},
		table.FloatValue(2000))
	checkCoerce(t, c, "", &ColumnSpec{Kind: table.KIND_TABLE_ROW, Prefix: "PLANET_", Default: "EARTH", HasDefault: true},
		table.IntValue(table.KIND_TABLE_ROW, 2))
}

func Test_Coerce_ConstantMismatch(t *testing.T) {
	c := testCoercer(t)
	// A float constant in an INT column falls through to literal parsing,
	// which then fails.
	checkCoerceFails(t, c, "inf", &ColumnSpec{Kind: table.KIND_INT})
	// A boolean constant in a STRING column likewise falls through, and
	// parses fine as plain text.
	checkCoerce(t, c, "true", &ColumnSpec{Kind: table.KIND_STRING},
		table.StringValue(table.KIND_STRING, "true"))
}

func Test_Coerce_CustomConstants(t *testing.T) {
	reg := testRegistry(t)
	constants := map[string]table.Value{
		// Integer constants also serve row-reference and enum columns.
		"UNKNOWN": table.IntValue(table.KIND_INT, -1),
	}
	c := NewCoercer(reg, nil, nil, constants, nil)
	//
	checkCoerce(t, c, "UNKNOWN", &ColumnSpec{Kind: table.KIND_INT}, table.IntValue(table.KIND_INT, -1))
	checkCoerce(t, c, "UNKNOWN", &ColumnSpec{Kind: table.KIND_TABLE_ROW}, table.IntValue(table.KIND_TABLE_ROW, -1))
	checkCoerce(t, c, "UNKNOWN", &ColumnSpec{Kind: table.KIND_ENUM}, table.IntValue(table.KIND_ENUM, -1))
}

func Test_Coerce_MissingOverrides(t *testing.T) {
	reg := testRegistry(t)
	missing := map[table.Kind]table.Value{
		table.KIND_INT: table.IntValue(table.KIND_INT, 0),
	}
	c := NewCoercer(reg, nil, nil, nil, missing)
	// Overridden kind imputes the override; other kinds keep their defaults.
	checkCoerce(t, c, "", &ColumnSpec{Kind: table.KIND_INT}, table.IntValue(table.KIND_INT, 0))
	checkCoerce(t, c, "", &ColumnSpec{Kind: table.KIND_STRING}, table.StringValue(table.KIND_STRING, ""))
}

func Test_Coerce_Idempotent(t *testing.T) {
	c := testCoercer(t)
	//
	cases := []struct {
		raw  string
		spec ColumnSpec
	}{
		{"0x01|0x04", ColumnSpec{Kind: table.KIND_INT}},
		{"1,234.5 km", ColumnSpec{Kind: table.KIND_FLOAT}},
		{"PLANET_EARTH", ColumnSpec{Kind: table.KIND_TABLE_ROW}},
		{"red, 0.5", ColumnSpec{Kind: table.KIND_COLOR}},
		{"1; 2; 3", ColumnSpec{Kind: table.KIND_ARRAY, Elem: table.KIND_INT}},
		{"", ColumnSpec{Kind: table.KIND_FLOAT}},
	}
	//
	for _, tc := range cases {
		first, err1 := c.Coerce(tc.raw, &tc.spec)
		second, err2 := c.Coerce(tc.raw, &tc.spec)
		//
		if err1 != nil || err2 != nil {
			t.Fatalf("%q: unexpected error: %v %v", tc.raw, err1, err2)
		}
		//
		if !first.Equals(second) {
			t.Errorf("%q: coercion not idempotent: %s vs %s", tc.raw, first, second)
		}
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	//
	reg := NewRegistry()
	unit := tokenizeValid(t, "planets", "PLANET_MERCURY", "PLANET_VENUS", "PLANET_EARTH")
	//
	if errs := reg.RegisterTable(unit); len(errs) > 0 {
		t.Fatalf("unexpected error: %s", errs[0].Error())
	}
	//
	return reg
}

func testCoercer(t *testing.T) *Coercer {
	t.Helper()
	//
	convert := func(value float64, unit string) (float64, error) {
		switch unit {
		case "km":
			return value * 1000, nil
		case "d":
			return value * 86400, nil
		case "1/d":
			return value / 86400, nil
		default:
			return 0, fmt.Errorf("unknown unit %q", unit)
		}
	}
	//
	lookup := func(group, member string) (int64, error) {
		if group == "Confidence" && member == "CONFIDENCE_HIGH" {
			return 2, nil
		}
		//
		return 0, fmt.Errorf("unknown member %s of enumeration %s", member, group)
	}
	//
	return NewCoercer(testRegistry(t), convert, lookup, nil, nil)
}

func checkCoerce(t *testing.T, c *Coercer, raw string, spec *ColumnSpec, want table.Value) {
	t.Helper()
	//
	got, err := c.Coerce(raw, spec)
	//
	if err != nil {
		t.Errorf("coercing %q: unexpected error: %s", raw, err)
	} else if !got.Equals(want) {
		t.Errorf("coercing %q: expected %s, got %s", raw, want, got)
	}
}

func checkCoerceFails(t *testing.T, c *Coercer, raw string, spec *ColumnSpec) {
	t.Helper()
	//
	if value, err := c.Coerce(raw, spec); err == nil {
		t.Errorf("coercing %q: expected an error, got %s", raw, value)
	}
}
