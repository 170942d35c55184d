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
	"fmt"
	"os"
	"strings"

	"github.com/ivoyager/ivoyager-tables/pkg/compiler"
	"github.com/ivoyager/ivoyager-tables/pkg/table"
	"gopkg.in/yaml.v3"
)

// Project is the optional YAML file supplying the external collaborators of a
// compile pass: unit scalings, external enumeration groups, extra named
// constants and missing-value overrides.
type Project struct {
	// Unit symbol -> multiplier to the internal base unit.
	Units map[string]float64 `yaml:"units"`
	// Enumeration group -> member -> value.
	Enums map[string]map[string]int64 `yaml:"enums"`
	// Extra named constants; YAML booleans, integers, floats and strings map
	// onto the corresponding value kinds.
	Constants map[string]any `yaml:"constants"`
	// Missing-value overrides, keyed by declared type name.
	Missing map[string]any `yaml:"missing"`
}

// LoadProject reads and parses a project file.
func LoadProject(filename string) (*Project, error) {
	bytes, err := os.ReadFile(filename)
	//
	if err != nil {
		return nil, err
	}
	//
	var project Project
	//
	if err := yaml.Unmarshal(bytes, &project); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	//
	return &project, nil
}

// Options translates this project into compiler options.
func (p *Project) Options() ([]compiler.Option, error) {
	var opts []compiler.Option
	//
	if len(p.Units) > 0 {
		opts = append(opts, compiler.WithUnitConverter(p.convertUnit))
	}
	//
	if len(p.Enums) > 0 {
		opts = append(opts, compiler.WithEnumLookup(p.lookupEnum))
	}
	//
	if len(p.Constants) > 0 {
		constants := make(map[string]table.Value)
		//
		for name, raw := range p.Constants {
			value, err := yamlValue(raw)
			//
			if err != nil {
				return nil, fmt.Errorf("constant %s: %w", name, err)
			}
			//
			constants[name] = value
		}
		//
		opts = append(opts, compiler.WithConstants(constants))
	}
	//
	if len(p.Missing) > 0 {
		missing := make(map[table.Kind]table.Value)
		//
		for decl, raw := range p.Missing {
			kind, _, _, err := table.ParseKind(decl)
			//
			if err != nil {
				return nil, err
			}
			//
			value, err := yamlValue(raw)
			//
			if err != nil {
				return nil, fmt.Errorf("missing value for %s: %w", decl, err)
			}
			//
			if value, err = retagYamlValue(value, kind); err != nil {
				return nil, fmt.Errorf("missing value for %s: %w", decl, err)
			}
			//
			missing[kind] = value
		}
		//
		opts = append(opts, compiler.WithMissingValues(missing))
	}
	//
	return opts, nil
}

// Scale a value by its unit's declared multiplier.  The "1/unit" form
// produced by inline "/unit" suffixes divides instead.
func (p *Project) convertUnit(value float64, unit string) (float64, error) {
	invert := false
	//
	if rest, ok := strings.CutPrefix(unit, "1/"); ok {
		invert, unit = true, rest
	}
	//
	multiplier, ok := p.Units[unit]
	//
	if !ok {
		return 0, fmt.Errorf("reference to unregistered unit %s", unit)
	}
	//
	if invert {
		return value / multiplier, nil
	}
	//
	return value * multiplier, nil
}

func (p *Project) lookupEnum(group, member string) (int64, error) {
	members, ok := p.Enums[group]
	//
	if !ok {
		return 0, fmt.Errorf("unknown enumeration group %s", group)
	}
	//
	value, ok := members[member]
	//
	if !ok {
		return 0, fmt.Errorf("unknown member %s of enumeration %s", member, group)
	}
	//
	return value, nil
}

// Map a decoded YAML scalar onto a tagged value.
func yamlValue(raw any) (table.Value, error) {
	switch v := raw.(type) {
	case bool:
		return table.BoolValue(v), nil
	case int:
		return table.IntValue(table.KIND_INT, int64(v)), nil
	case int64:
		return table.IntValue(table.KIND_INT, v), nil
	case float64:
		return table.FloatValue(v), nil
	case string:
		return table.StringValue(table.KIND_STRING, v), nil
	default:
		return table.Value{}, fmt.Errorf("unsupported scalar type %T", raw)
	}
}

// Retag a YAML scalar for the declared kind of a missing-value override.
func retagYamlValue(value table.Value, kind table.Kind) (table.Value, error) {
	switch {
	case value.Kind() == kind:
		return value, nil
	case value.Kind() == table.KIND_INT && (kind == table.KIND_TABLE_ROW || kind == table.KIND_ENUM):
		return table.IntValue(kind, value.Int()), nil
	case value.Kind() == table.KIND_INT && kind == table.KIND_FLOAT:
		return table.FloatValue(float64(value.Int())), nil
	case value.Kind() == table.KIND_STRING && kind == table.KIND_STRING_NAME:
		return table.StringValue(kind, value.Text()), nil
	}
	//
	return table.Value{}, fmt.Errorf("%s value cannot serve a %s column", value.Kind(), kind)
}
