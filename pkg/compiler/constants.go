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
	"math"

	"github.com/ivoyager/ivoyager-tables/pkg/table"
)

// Named constants are substituted verbatim for raw cell text, bypassing
// prefixing and unit conversion, but only when the constant's own kind matches
// the column's declared kind.  Hence the same literal can mean different
// things in different columns.  Callers may merge their own constants over
// this default set.
func defaultConstants() map[string]table.Value {
	return map[string]table.Value{
		"true":  table.BoolValue(true),
		"TRUE":  table.BoolValue(true),
		"x":     table.BoolValue(true),
		"false": table.BoolValue(false),
		"FALSE": table.BoolValue(false),
		"inf":   table.FloatValue(math.Inf(1)),
		"INF":   table.FloatValue(math.Inf(1)),
		"-inf":  table.FloatValue(math.Inf(-1)),
		"-INF":  table.FloatValue(math.Inf(-1)),
		"nan":   table.FloatValue(math.NaN()),
		"NAN":   table.FloatValue(math.NaN()),
	}
}

// Per-kind missing values, imputed for empty cells of columns with no
// declared default.  Callers may override per kind.
func defaultMissingValues() map[table.Kind]table.Value {
	missing := make(map[table.Kind]table.Value)
	//
	for kind := table.KIND_BOOL; kind <= table.KIND_ARRAY; kind++ {
		missing[kind] = table.MissingValue(kind)
	}
	//
	return missing
}

// Significant digits reported for cells populated from a named constant,
// since no digit text exists to count.
const constantPrecision = 15

// Named colours accepted by COLOR cells, as rgba in [0,1].
var namedColors = map[string][4]float64{
	"white":       {1, 1, 1, 1},
	"black":       {0, 0, 0, 1},
	"red":         {1, 0, 0, 1},
	"green":       {0, 1, 0, 1},
	"blue":        {0, 0, 1, 1},
	"yellow":      {1, 1, 0, 1},
	"cyan":        {0, 1, 1, 1},
	"magenta":     {1, 0, 1, 1},
	"orange":      {1, 0.65, 0, 1},
	"purple":      {0.63, 0.13, 0.94, 1},
	"pink":        {1, 0.75, 0.8, 1},
	"brown":       {0.65, 0.16, 0.16, 1},
	"gray":        {0.75, 0.75, 0.75, 1},
	"dimgray":     {0.41, 0.41, 0.41, 1},
	"transparent": {1, 1, 1, 0},
}
