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
	"strconv"
	"strings"

	"github.com/ivoyager/ivoyager-tables/pkg/table"
	log "github.com/sirupsen/logrus"
)

// UnitConverter is the externally supplied unit-conversion capability.  The
// coercion engine hands it a raw numeric value and a unit symbol and trusts it
// to fail loudly on unknown units; the engine itself knows no unit semantics.
type UnitConverter func(value float64, unit string) (float64, error)

// EnumLookup is the externally supplied enumeration-lookup capability, keyed
// by a class/grouping name plus a (possibly prefixed) member symbol.
type EnumLookup func(group, member string) (int64, error)

// Coercer turns raw cell text into typed values.  Coercion is total over all
// declared kinds and idempotent: the same raw text with the same
// kind/prefix/unit always yields the identical value, the only state being
// the constant and missing-value configuration fixed at construction.
type Coercer struct {
	registry *Registry
	convert  UnitConverter
	lookup   EnumLookup
	// Named constant set; see defaultConstants.
	constants map[string]table.Value
	// Per-kind missing values; see defaultMissingValues.
	missing map[table.Kind]table.Value
}

// NewCoercer constructs a coercion engine over a given registry and injected
// collaborators.  Constant and missing-value overrides are merged over the
// defaults.
func NewCoercer(registry *Registry, convert UnitConverter, lookup EnumLookup,
	constants map[string]table.Value, missing map[table.Kind]table.Value) *Coercer {
	allConstants := defaultConstants()
	//
	for name, value := range constants {
		allConstants[name] = value
	}
	//
	allMissing := defaultMissingValues()
	//
	for kind, value := range missing {
		allMissing[kind] = value
	}
	//
	return &Coercer{registry, convert, lookup, allConstants, allMissing}
}

// Coerce produces the typed value of one raw cell under a given column
// schema.  Text which cannot be interpreted as the declared kind is a fatal
// schema error (returned for the caller to attach source context).
func (c *Coercer) Coerce(raw string, spec *ColumnSpec) (table.Value, error) {
	return c.coerce(raw, spec.Kind, spec.Elem, spec.EnumGroup, spec.Prefix, spec.Unit, spec.Default, spec.HasDefault)
}

func (c *Coercer) coerce(raw string, kind, elem table.Kind, group, prefix, unit,
	def string, hasDefault bool) (table.Value, error) {
	// Empty text takes the configured default if any, else the missing
	// sentinel (an empty, not missing, array for array columns).
	if raw == "" {
		if hasDefault {
			return c.coerce(def, kind, elem, group, prefix, unit, "", false)
		} else if kind == table.KIND_ARRAY {
			return table.ArrayValue(elem, []table.Value{}), nil
		}
		//
		return c.missing[kind], nil
	}
	// A registered constant is substituted verbatim, bypassing prefixing and
	// unit conversion, provided its kind matches the column's.  A mismatched
	// constant falls through to normal parsing.
	if constant, ok := c.constants[raw]; ok {
		if value, ok := retagConstant(constant, kind); ok {
			return value, nil
		}
		//
		log.Debugf("constant %q has kind %s, not column kind %s; parsing as literal",
			raw, constant.Kind(), kind)
	}
	//
	switch kind {
	case table.KIND_BOOL:
		return table.Value{}, fmt.Errorf("boolean cell %q is not a registered constant", raw)
	case table.KIND_INT:
		return c.coerceInt(raw, prefix)
	case table.KIND_FLOAT:
		return c.coerceFloat(raw, unit)
	case table.KIND_STRING:
		decoded, err := decodeEscapes(prefix + raw)
		//
		if err != nil {
			return table.Value{}, err
		}
		//
		return table.StringValue(table.KIND_STRING, decoded), nil
	case table.KIND_STRING_NAME:
		return table.StringValue(table.KIND_STRING_NAME, prefix+raw), nil
	case table.KIND_TABLE_ROW:
		return c.coerceTableRow(prefix + raw)
	case table.KIND_ENUM:
		return c.coerceEnum(raw, group, prefix)
	case table.KIND_VECTOR2, table.KIND_VECTOR3, table.KIND_VECTOR4:
		return c.coerceVector(raw, kind, unit)
	case table.KIND_COLOR:
		return c.coerceColor(raw, unit)
	case table.KIND_ARRAY:
		return c.coerceArray(raw, elem, group, prefix, unit)
	}
	//
	return table.Value{}, fmt.Errorf("cell %q has undeclared kind", raw)
}

// Integer cells support 0x/0b literal forms, stripped underscores, and
// |-delimited lists which OR their recursively coerced elements (flag
// columns).
func (c *Coercer) coerceInt(raw, prefix string) (table.Value, error) {
	if strings.Contains(raw, "|") {
		var flags int64
		//
		for _, element := range strings.Split(raw, "|") {
			value, err := c.coerce(strings.TrimSpace(element), table.KIND_INT, 0, "", prefix, "", "", false)
			//
			if err != nil {
				return table.Value{}, err
			}
			//
			flags |= value.Int()
		}
		//
		return table.IntValue(table.KIND_INT, flags), nil
	}
	//
	value, err := parseIntLiteral(raw)
	//
	if err != nil {
		return table.Value{}, fmt.Errorf("cell %q cannot be coerced to INT", raw)
	}
	//
	return table.IntValue(table.KIND_INT, value), nil
}

// Float cells strip commas and underscores, accept E/e exponents, record (but
// strip) a leading ~, and support an inline unit suffix which overrides the
// column unit for that one cell.
func (c *Coercer) coerceFloat(raw, unit string) (table.Value, error) {
	text, unit := splitInlineUnit(strings.TrimPrefix(raw, "~"), unit)
	text = cleanNumber(text)
	//
	value, err := strconv.ParseFloat(text, 64)
	//
	if err != nil {
		return table.Value{}, fmt.Errorf("cell %q cannot be coerced to FLOAT", raw)
	}
	//
	if unit != "" {
		if c.convert == nil {
			return table.Value{}, fmt.Errorf("cell %q carries unit %s but no unit converter was supplied", raw, unit)
		}
		//
		if value, err = c.convert(value, unit); err != nil {
			return table.Value{}, err
		}
	}
	//
	return table.FloatValue(value), nil
}

// Row-reference cells never accept a raw decimal literal; only a registered
// entity name resolves.
func (c *Coercer) coerceTableRow(name string) (table.Value, error) {
	entity, ok := c.registry.Entity(name)
	//
	if !ok {
		return table.Value{}, fmt.Errorf("reference to unregistered entity name %s", name)
	}
	//
	return table.IntValue(table.KIND_TABLE_ROW, int64(entity.Row)), nil
}

// External-enumeration cells resolve literal integer forms first, then
// delegate to the injected lookup.  |-delimited lists OR their elements.
func (c *Coercer) coerceEnum(raw, group, prefix string) (table.Value, error) {
	if strings.Contains(raw, "|") {
		var flags int64
		//
		for _, element := range strings.Split(raw, "|") {
			value, err := c.coerceEnum(strings.TrimSpace(element), group, prefix)
			//
			if err != nil {
				return table.Value{}, err
			}
			//
			flags |= value.Int()
		}
		//
		return table.IntValue(table.KIND_ENUM, flags), nil
	}
	//
	if value, err := parseIntLiteral(raw); err == nil {
		return table.IntValue(table.KIND_ENUM, value), nil
	}
	//
	if c.lookup == nil {
		return table.Value{}, fmt.Errorf("cell %q requires an enumeration lookup, but none was supplied", raw)
	}
	//
	value, err := c.lookup(group, prefix+raw)
	//
	if err != nil {
		return table.Value{}, err
	}
	//
	return table.IntValue(table.KIND_ENUM, value), nil
}

// Tuple cells are comma-delimited, each element recursively coerced as float
// with the column's unit.
func (c *Coercer) coerceVector(raw string, kind table.Kind, unit string) (table.Value, error) {
	components, err := c.coerceComponents(raw, unit)
	//
	if err != nil {
		return table.Value{}, err
	}
	//
	if len(components) != componentCountOf(kind) {
		return table.Value{}, fmt.Errorf("cell %q has %d components, %s requires %d",
			raw, len(components), kind, componentCountOf(kind))
	}
	//
	return table.VectorValue(kind, components...), nil
}

// Colour cells accept a single named-colour token, optionally followed by one
// alpha element, or 3..4 comma-delimited float components.
func (c *Coercer) coerceColor(raw, unit string) (table.Value, error) {
	elements := strings.Split(raw, ",")
	name := strings.TrimSpace(elements[0])
	//
	if rgba, ok := namedColors[name]; ok {
		if len(elements) > 2 {
			return table.Value{}, fmt.Errorf("named colour %q takes at most one alpha element", raw)
		}
		//
		alpha := rgba[3]
		//
		if len(elements) == 2 {
			value, err := c.coerce(strings.TrimSpace(elements[1]), table.KIND_FLOAT, 0, "", "", "", "", false)
			//
			if err != nil {
				return table.Value{}, err
			}
			//
			alpha = value.Float()
		}
		//
		return table.VectorValue(table.KIND_COLOR, rgba[0], rgba[1], rgba[2], alpha), nil
	}
	//
	components, err := c.coerceComponents(raw, unit)
	//
	if err != nil {
		return table.Value{}, err
	}
	//
	switch len(components) {
	case 3:
		return table.VectorValue(table.KIND_COLOR, components[0], components[1], components[2], 1), nil
	case 4:
		return table.VectorValue(table.KIND_COLOR, components...), nil
	}
	//
	return table.Value{}, fmt.Errorf("cell %q has %d components, COLOR requires 3 or 4", raw, len(components))
}

// Array cells are semicolon-delimited, each element recursively coerced as
// the element kind with the column's prefix/unit applied per element.
func (c *Coercer) coerceArray(raw string, elem table.Kind, group, prefix, unit string) (table.Value, error) {
	split := strings.Split(raw, ";")
	elements := make([]table.Value, len(split))
	//
	for i, element := range split {
		value, err := c.coerce(strings.TrimSpace(element), elem, 0, group, prefix, unit, "", false)
		//
		if err != nil {
			return table.Value{}, err
		}
		//
		elements[i] = value
	}
	//
	return table.ArrayValue(elem, elements), nil
}

func (c *Coercer) coerceComponents(raw, unit string) ([]float64, error) {
	split := strings.Split(raw, ",")
	components := make([]float64, len(split))
	//
	for i, element := range split {
		value, err := c.coerce(strings.TrimSpace(element), table.KIND_FLOAT, 0, "", "", unit, "", false)
		//
		if err != nil {
			return nil, err
		}
		//
		components[i] = value.Float()
	}
	//
	return components, nil
}

// Retag a matching constant for a given column kind.  Integer constants also
// serve row-reference and enumeration columns (e.g. a -1 sentinel constant).
func retagConstant(constant table.Value, kind table.Kind) (table.Value, bool) {
	switch {
	case constant.Kind() == kind:
		return constant, true
	case constant.Kind() == table.KIND_INT && (kind == table.KIND_TABLE_ROW || kind == table.KIND_ENUM):
		return table.IntValue(kind, constant.Int()), true
	}
	//
	return table.Value{}, false
}

func parseIntLiteral(raw string) (int64, error) {
	text := strings.ReplaceAll(raw, "_", "")
	//
	switch {
	case strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X"):
		return strconv.ParseInt(text[2:], 16, 64)
	case strings.HasPrefix(text, "0b") || strings.HasPrefix(text, "0B"):
		return strconv.ParseInt(text[2:], 2, 64)
	default:
		return strconv.ParseInt(text, 10, 64)
	}
}

// Split an inline unit suffix off a float literal.  "value unit" overrides
// the column unit; "value/unit" is rewritten to "1/unit" before being handed
// to the conversion collaborator.
func splitInlineUnit(text, unit string) (string, string) {
	if index := strings.IndexAny(text, " /"); index >= 0 {
		if text[index] == ' ' {
			unit = strings.TrimSpace(text[index+1:])
		} else {
			unit = "1/" + strings.TrimSpace(text[index+1:])
		}
		//
		text = text[:index]
	}
	//
	return text, unit
}

func cleanNumber(text string) string {
	return strings.NewReplacer(",", "", "_", "").Replace(text)
}

func componentCountOf(kind table.Kind) int {
	switch kind {
	case table.KIND_VECTOR2:
		return 2
	case table.KIND_VECTOR3:
		return 3
	default:
		return 4
	}
}

// Decode standard backslash escapes plus 4-hex-digit unicode escapes.
func decodeEscapes(text string) (string, error) {
	if !strings.Contains(text, "\\") {
		return text, nil
	}
	//
	var builder strings.Builder
	//
	runes := []rune(text)
	//
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i+1 == len(runes) {
			builder.WriteRune(runes[i])
			continue
		}
		//
		i++
		//
		switch runes[i] {
		case 'n':
			builder.WriteRune('\n')
		case 't':
			builder.WriteRune('\t')
		case 'r':
			builder.WriteRune('\r')
		case '\\':
			builder.WriteRune('\\')
		case '\'':
			builder.WriteRune('\'')
		case '"':
			builder.WriteRune('"')
		case 'u':
			if i+4 >= len(runes) {
				return "", fmt.Errorf("truncated unicode escape in %q", text)
			}
			//
			code, err := strconv.ParseUint(string(runes[i+1:i+5]), 16, 32)
			//
			if err != nil {
				return "", fmt.Errorf("malformed unicode escape in %q", text)
			}
			//
			builder.WriteRune(rune(code))
			i += 4
		default:
			return "", fmt.Errorf("unknown escape \\%c in %q", runes[i], text)
		}
	}
	//
	return builder.String(), nil
}
