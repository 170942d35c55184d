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
package cmd

import (
	"math"
	"testing"

	"github.com/ivoyager/ivoyager-tables/pkg/compiler"
)

func Test_Project_Load(t *testing.T) {
	project, err := LoadProject("testdata/project.yaml")
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if project.Units["km"] != 1000 {
		t.Errorf("bad km unit: %g", project.Units["km"])
	}
	//
	if project.Enums["Confidence"]["CONFIDENCE_HIGH"] != 2 {
		t.Errorf("bad enum member")
	}
	// The "1/unit" form divides by the multiplier.
	if value, err := project.convertUnit(5, "1/km"); err != nil || value != 0.005 {
		t.Errorf("bad inverted unit: %g %v", value, err)
	}
	//
	if _, err := project.convertUnit(1, "furlongs"); err == nil {
		t.Errorf("unknown unit accepted")
	}
}

func Test_Project_Compile(t *testing.T) {
	project, err := LoadProject("testdata/project.yaml")
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	opts, err := project.Options()
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	opts = append(opts, compiler.WithTitleFields("en.wiki"))
	//
	db, errs := compiler.Compile([]string{
		"testdata/planets.tsv",
		"testdata/moons.tsv",
		"testdata/wiki.tsv",
		"testdata/planets_patch.tsv",
	}, opts...)
	//
	for i := range errs {
		t.Fatalf("unexpected error: %s", errs[i].Error())
	}
	// Unit scaling: radii are declared in km, stored in base units.
	earth, _ := db.RowIndex("PLANET_EARTH")
	//
	if got := db.GetFloat("planets", "radius", earth); got != 6.371e6 {
		t.Errorf("expected 6.371e6, got %g", got)
	}
	// External enumeration: authored, imputed-from-default and constant cells.
	if got := db.GetInt("planets", "confidence", earth); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	//
	mercury, _ := db.RowIndex("PLANET_MERCURY")
	//
	if got := db.GetInt("planets", "confidence", mercury); got != 2 {
		t.Errorf("expected imputed 2, got %d", got)
	}
	//
	if db.HasValue("planets", "confidence", mercury) {
		t.Errorf("imputed cell reports a value")
	}
	//
	venus, _ := db.RowIndex("PLANET_VENUS")
	//
	if got := db.GetInt("planets", "confidence", venus); got != -1 {
		t.Errorf("expected -1 from UNKNOWN constant, got %d", got)
	}
	// Row references resolve across files.
	luna, _ := db.RowIndex("MOON_LUNA")
	//
	if got := db.GetInt("moons", "parent", luna); got != int64(earth) {
		t.Errorf("expected %d, got %d", earth, got)
	}
	//
	if got := db.GetFloat("moons", "gm", luna); got != 4902.8e9 {
		t.Errorf("expected 4902.8e9, got %g", got)
	}
	// The patch extends planets with a fresh row; unpatched columns are
	// imputed.
	mars, ok := db.RowIndex("PLANET_MARS")
	//
	if !ok {
		t.Fatalf("patch row not registered")
	}
	//
	if got := db.GetFloat("planets", "radius", mars); got != 3.3895e6 {
		t.Errorf("expected 3.3895e6, got %g", got)
	}
	//
	if got := db.GetFloat("planets", "m", mars); !math.IsNaN(got) {
		t.Errorf("expected NaN, got %g", got)
	}
	// Lookup titles.
	if got := db.Titles("en.wiki")["PLANET_EARTH"]; got != "Earth (planet)" {
		t.Errorf("bad title %q", got)
	}
}

func Test_Project_BadMissingKind(t *testing.T) {
	project := &Project{Missing: map[string]any{"WIBBLE": 0}}
	//
	if _, err := project.Options(); err == nil {
		t.Errorf("unknown kind accepted")
	}
	//
	project = &Project{Missing: map[string]any{"FLOAT": "zero"}}
	//
	if _, err := project.Options(); err == nil {
		t.Errorf("mismatched scalar accepted")
	}
}

func Test_Project_MissingOverride(t *testing.T) {
	// An integer YAML scalar retags onto a FLOAT override.
	project := &Project{Missing: map[string]any{"FLOAT": 0}}
	//
	opts, err := project.Options()
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if len(opts) != 1 {
		t.Fatalf("expected 1 option, got %d", len(opts))
	}
}
