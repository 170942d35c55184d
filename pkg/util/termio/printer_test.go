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
package termio

import (
	"strings"
	"testing"
)

func Test_TablePrinter_01(t *testing.T) {
	p := NewTablePrinter(2, 3)
	p.SetRow(0, "name", "radius")
	p.RuleAfter(0)
	p.SetRow(1, "PLANET_EARTH", "6371")
	p.SetRow(2, "PLANET_MARS", "3389.5")
	//
	var builder strings.Builder
	//
	p.Print(&builder)
	lines := strings.Split(strings.TrimRight(builder.String(), "\n"), "\n")
	// Header, rule, two data rows.
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	//
	if !strings.Contains(lines[1], "---") {
		t.Errorf("missing rule: %q", lines[1])
	}
	// Columns are padded to a uniform width.
	if lines[0] != " name         | radius |" {
		t.Errorf("bad header: %q", lines[0])
	}
}

func Test_TablePrinter_Truncation(t *testing.T) {
	p := NewTablePrinter(1, 1)
	p.Set(0, 0, "a very long cell indeed")
	p.SetMaxWidths(8)
	//
	var builder strings.Builder
	//
	p.Print(&builder)
	//
	if !strings.Contains(builder.String(), "a very..") {
		t.Errorf("cell not truncated: %q", builder.String())
	}
}
