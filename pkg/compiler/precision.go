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
	"strings"

	"github.com/ivoyager/ivoyager-tables/pkg/table"
)

// Precision counts the significant digits of one raw float cell, operating on
// the pre-conversion numeric text: digits are counted from the first non-zero
// digit, trailing zeros count only if a decimal point is present, and a
// ~-prefixed literal is defined as zero significant digits.  Cells populated
// from a named constant report a fixed nominal precision since no digit text
// exists.
func (c *Coercer) Precision(raw string) int {
	if raw == "" {
		return 0
	}
	//
	if strings.HasPrefix(raw, "~") {
		return 0
	}
	//
	if constant, ok := c.constants[raw]; ok && constant.Kind() == table.KIND_FLOAT {
		return constantPrecision
	}
	// Strip any inline unit suffix, then commas/underscores.
	text, _ := splitInlineUnit(raw, "")
	text = cleanNumber(text)
	// Drop any exponent; only the mantissa carries precision.
	if index := strings.IndexAny(text, "eE"); index >= 0 {
		text = text[:index]
	}
	//
	return countSignificantDigits(text)
}

func countSignificantDigits(mantissa string) int {
	var (
		// Digits counted so far, from the first non-zero digit.
		count int
		// Trailing zeros not yet known to be significant.
		zeros int
		// Whether a non-zero digit has been seen.
		begun bool
		// Whether a decimal point is present.
		point bool
	)
	//
	for _, r := range mantissa {
		switch {
		case r == '.':
			point = true
		case r == '0' && begun:
			zeros++
		case r >= '1' && r <= '9':
			begun = true
			count += zeros + 1
			zeros = 0
		}
	}
	// Trailing zeros count only with a decimal point.
	if point {
		count += zeros
	}
	//
	return count
}
