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
	"github.com/ivoyager/ivoyager-tables/pkg/util/collection/pool"
	"github.com/ivoyager/ivoyager-tables/pkg/util/source"
)

// CommentMarker prefixes dropped lines and suppressed columns.
const CommentMarker = '#'

// DirectiveMarker prefixes per-file directive lines.
const DirectiveMarker = '@'

// Metadata row tags, recognised in column 0 of header metadata rows.
const (
	tagType    = "Type"
	tagDefault = "Default"
	tagUnit    = "Unit"
	tagPrefix  = "Prefix"
)

// Tokenize compiles one source file into a Unit, or fails with schema errors
// identifying the offending file and line.  A file carrying the DONT_PARSE
// directive yields a nil unit and no errors.
func Tokenize(file *source.File) (*Unit, []source.SyntaxError) {
	t := tokenizer{file: file, unit: &Unit{File: file, Name: file.Stem(), Pool: pool.NewStringPool()}}
	//
	t.scan()
	//
	if t.suppressed {
		return nil, nil
	}
	//
	if len(t.errors) == 0 {
		t.assemble()
	}
	//
	if len(t.errors) > 0 {
		return nil, t.errors
	}
	//
	return t.unit, nil
}

type tokenizer struct {
	file *source.File
	unit *Unit
	// Raw data rows, with a span per cell.
	rows  [][]string
	spans [][]source.Span
	// Set once a shape directive has been seen.
	formatSet bool
	// Set by the DONT_PARSE directive.
	suppressed bool
	errors     []source.SyntaxError
}

// Scan the source text into raw rows, stripping comments and consuming
// directive lines.
func (t *tokenizer) scan() {
	contents := t.file.Contents()
	start := 0
	//
	for index := 0; index <= len(contents); index++ {
		if index < len(contents) && contents[index] != '\n' {
			continue
		}
		//
		end := index
		// Swallow any carriage return.
		if end > start && contents[end-1] == '\r' {
			end--
		}
		//
		t.scanLine(contents[start:end], start)
		start = index + 1
	}
}

func (t *tokenizer) scanLine(line []rune, offset int) {
	// Tab is the cell delimiter, so only spaces are stripped before
	// classifying: a data row whose first cell is empty still begins with a
	// tab, not with whatever its first non-empty cell begins with.
	trimmed := strings.Trim(string(line), " ")
	//
	switch {
	case trimmed == "" || trimmed[0] == CommentMarker:
		// Dropped.
	case trimmed[0] == DirectiveMarker:
		t.scanDirective(strings.TrimSpace(trimmed), source.NewSpan(offset, offset+len(line)))
	default:
		t.scanCells(line, offset)
	}
}

func (t *tokenizer) scanDirective(line string, span source.Span) {
	name, value, hasValue := strings.Cut(line[1:], "=")
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	//
	switch name {
	case "ENTITIES":
		t.setFormat(FORMAT_ENTITIES, span)
	case "ANONYMOUS_ROWS":
		t.setFormat(FORMAT_ANONYMOUS, span)
	case "ENUMERATION":
		t.setFormat(FORMAT_ENUMERATION, span)
	case "WIKI_LOOKUP":
		t.setFormat(FORMAT_LOOKUP, span)
	case "MODIFIES":
		if !hasValue || value == "" {
			t.syntaxError(span, "MODIFIES directive requires a target table")
			return
		}
		//
		t.setFormat(FORMAT_MODIFIER, span)
		t.unit.Modifies = value
	case "MATRIX":
		if !hasValue || value == "" {
			t.syntaxError(span, "MATRIX directive requires an element type")
			return
		}
		//
		kind, _, _, err := table.ParseKind(value)
		//
		if err != nil {
			t.syntaxError(span, err.Error())
			return
		} else if kind == table.KIND_ARRAY || kind == table.KIND_ENUM {
			t.syntaxErrorf(span, "matrix element type %s not supported", value)
			return
		}
		//
		t.setFormat(FORMAT_MATRIX, span)
		t.unit.MatrixKind = kind
	case "DEFAULT":
		t.unit.MatrixDefault = value
	case "UNIT":
		t.unit.MatrixUnit = value
	case "TRANSPOSE":
		t.unit.Transpose = true
	case "DONT_PARSE":
		t.suppressed = true
	default:
		t.syntaxErrorf(span, "unknown directive @%s", name)
	}
}

func (t *tokenizer) setFormat(format Format, span source.Span) {
	if t.formatSet {
		t.syntaxErrorf(span, "multiple format directives (already %s)", t.unit.Format)
		return
	}
	//
	t.unit.Format = format
	t.formatSet = true
}

// Split a data line into edge-trimmed, unquoted cells.
func (t *tokenizer) scanCells(line []rune, offset int) {
	var (
		cells []string
		spans []source.Span
	)
	//
	start := 0
	//
	for index := 0; index <= len(line); index++ {
		if index < len(line) && line[index] != '\t' {
			continue
		}
		//
		cells = append(cells, trimCell(string(line[start:index])))
		spans = append(spans, source.NewSpan(offset+start, offset+index))
		start = index + 1
	}
	//
	t.rows = append(t.rows, cells)
	t.spans = append(t.spans, spans)
}

// Edge-trim a cell, strip a full double-quote wrapping, and strip a leading
// single quote (the spreadsheet "treat as text" marker).
func trimCell(cell string) string {
	cell = strings.TrimSpace(cell)
	//
	if len(cell) >= 2 && cell[0] == '"' && cell[len(cell)-1] == '"' {
		cell = cell[1 : len(cell)-1]
	} else if len(cell) >= 1 && cell[0] == '\'' {
		cell = cell[1:]
	}
	//
	return cell
}

// Assemble the scanned rows into the unit, applying column suppression,
// format inference and header metadata.
func (t *tokenizer) assemble() {
	if len(t.rows) == 0 {
		t.syntaxError(source.NewSpan(0, 0), "table has no content")
		return
	}
	// Enforce uniform row width.
	width := len(t.rows[0])
	//
	for i, row := range t.rows {
		if len(row) != width {
			t.syntaxErrorf(t.spans[i][0], "row has %d columns, expected %d", len(row), width)
			return
		}
	}
	// Remove suppressed columns.
	width = t.suppressColumns(width)
	// Infer format when no directive given.
	if !t.formatSet {
		t.inferFormat(width)
	}
	//
	switch t.unit.Format {
	case FORMAT_ENUMERATION:
		t.assembleEnumeration(width)
	case FORMAT_MATRIX:
		t.assembleMatrix(width)
	default:
		t.assembleColumns(width)
	}
	// Matrix-only directives are malformed elsewhere.
	if t.unit.Format != FORMAT_MATRIX && (t.unit.MatrixDefault != "" || t.unit.MatrixUnit != "" || t.unit.Transpose) {
		t.syntaxError(t.spans[0][0], "DEFAULT, UNIT and TRANSPOSE directives require a MATRIX table")
	}
}

// Remove every column whose header cell starts with the comment marker,
// returning the reduced width.
func (t *tokenizer) suppressColumns(width int) int {
	header := t.rows[0]
	keep := make([]int, 0, width)
	//
	for j := 0; j < width; j++ {
		if !strings.HasPrefix(header[j], string(CommentMarker)) {
			keep = append(keep, j)
		}
	}
	//
	if len(keep) == width {
		return width
	}
	//
	for i := range t.rows {
		row := make([]string, len(keep))
		spans := make([]source.Span, len(keep))
		//
		for k, j := range keep {
			row[k] = t.rows[i][j]
			spans[k] = t.spans[i][j]
		}
		//
		t.rows[i] = row
		t.spans[i] = spans
	}
	//
	return len(keep)
}

func (t *tokenizer) inferFormat(width int) {
	last := t.rows[len(t.rows)-1]
	//
	switch {
	case width == 1:
		t.unit.Format = FORMAT_ENUMERATION
	case last[0] != "":
		t.unit.Format = FORMAT_ENTITIES
	default:
		t.unit.Format = FORMAT_ANONYMOUS
	}
}

func (t *tokenizer) assembleEnumeration(width int) {
	if width != 1 {
		t.syntaxErrorf(t.spans[0][0], "enumeration table must have a single column, got %d", width)
		return
	}
	//
	for i, row := range t.rows {
		if row[0] == "" {
			t.syntaxError(t.spans[i][0], "empty entity name")
			continue
		}
		//
		t.unit.RowNames = append(t.unit.RowNames, row[0])
		t.unit.RowSpans = append(t.unit.RowSpans, t.spans[i][0])
	}
}

func (t *tokenizer) assembleMatrix(width int) {
	if width < 2 || len(t.rows) < 2 {
		t.syntaxError(t.spans[0][0], "matrix table requires a header row and at least one data row")
		return
	}
	// Header names the column axis.
	header, headerSpans := t.rows[0], t.spans[0]
	//
	for j := 1; j < width; j++ {
		t.declareColumn(header[j], headerSpans[j])
	}
	// Column 0 names the row axis.
	for i := 1; i < len(t.rows); i++ {
		t.declareRow(t.rows[i][0], t.spans[i][0])
		t.internCells(t.rows[i][1:], t.spans[i][1:])
	}
	//
	if t.unit.Transpose {
		t.transpose()
	}
}

func (t *tokenizer) assembleColumns(width int) {
	if width < 2 {
		t.syntaxError(t.spans[0][0], "table requires a name column and at least one data column")
		return
	}
	// Header names the columns; column 0 is the name/tag column.
	header, headerSpans := t.rows[0], t.spans[0]
	//
	for j := 1; j < width; j++ {
		t.declareColumn(header[j], headerSpans[j])
	}
	//
	t.unit.Specs = make([]ColumnSpec, len(t.unit.ColumnNames))
	//
	for j, name := range t.unit.ColumnNames {
		t.unit.Specs[j] = ColumnSpec{Name: name, Kind: table.KIND_STRING, Span: headerSpans[j+1]}
	}
	// Apply metadata rows, then body rows.
	var seenTags []string
	//
	for i := 1; i < len(t.rows); i++ {
		tag := t.rows[i][0]
		//
		if !isMetadataTag(tag) {
			t.assembleBodyRow(t.rows[i], t.spans[i])
			continue
		}
		//
		if len(t.unit.Body) > 0 {
			t.syntaxErrorf(t.spans[i][0], "%s row must precede all data rows", tag)
			continue
		}
		//
		for _, seen := range seenTags {
			if seen == tag {
				t.syntaxErrorf(t.spans[i][0], "duplicate %s row", tag)
			}
		}
		//
		seenTags = append(seenTags, tag)
		t.applyMetadataRow(tag, t.rows[i], t.spans[i])
	}
	//
	t.finaliseSpecs()
}

func (t *tokenizer) assembleBodyRow(row []string, spans []source.Span) {
	switch t.unit.Format {
	case FORMAT_ANONYMOUS:
		if row[0] != "" {
			t.syntaxError(spans[0], "anonymous-row table cannot name its rows")
			return
		}
	default:
		if row[0] == "" {
			t.syntaxError(spans[0], "empty entity name")
			return
		}
		//
		t.declareRow(t.unit.EntityPrefix+row[0], spans[0])
	}
	//
	t.internCells(row[1:], spans[1:])
}

func (t *tokenizer) applyMetadataRow(tag string, row []string, spans []source.Span) {
	if strings.HasPrefix(tag, tagPrefix+"/") {
		t.unit.EntityPrefix = tag[len(tagPrefix)+1:]
		tag = tagPrefix
	}
	//
	for j := 1; j < len(row); j++ {
		cell := row[j]
		//
		if cell == "" {
			continue
		}
		//
		spec := &t.unit.Specs[j-1]
		//
		switch tag {
		case tagType:
			kind, elem, group, err := table.ParseKind(cell)
			//
			if err != nil {
				t.syntaxError(spans[j], err.Error())
				continue
			}
			//
			spec.Kind, spec.Elem, spec.EnumGroup = kind, elem, group
		case tagDefault:
			spec.Default, spec.HasDefault = cell, true
		case tagUnit:
			spec.Unit = cell
		case tagPrefix:
			spec.Prefix = cell
		}
	}
}

// Check unit declarations against the (now known) column kinds.
func (t *tokenizer) finaliseSpecs() {
	for j := range t.unit.Specs {
		spec := &t.unit.Specs[j]
		//
		if spec.Unit == "" {
			continue
		}
		//
		kind := spec.Kind
		//
		if kind == table.KIND_ARRAY {
			kind = spec.Elem
		}
		//
		if !kind.IsNumeric() {
			t.syntaxErrorf(spec.Span, "unit %s declared on non-numeric column %s", spec.Unit, spec.Name)
		}
	}
}

func (t *tokenizer) declareColumn(name string, span source.Span) {
	if name == "" {
		t.syntaxError(span, "empty column name")
		return
	}
	//
	for _, existing := range t.unit.ColumnNames {
		if existing == name {
			t.syntaxErrorf(span, "duplicate column name %s", name)
			return
		}
	}
	//
	t.unit.ColumnNames = append(t.unit.ColumnNames, name)
}

func (t *tokenizer) declareRow(name string, span source.Span) {
	if name == "" {
		t.syntaxError(span, "empty entity name")
		return
	}
	//
	for _, existing := range t.unit.RowNames {
		if existing == name {
			t.syntaxErrorf(span, "duplicate entity name %s", name)
			return
		}
	}
	//
	t.unit.RowNames = append(t.unit.RowNames, name)
	t.unit.RowSpans = append(t.unit.RowSpans, span)
}

func (t *tokenizer) internCells(cells []string, spans []source.Span) {
	refs := make([]uint, len(cells))
	//
	for j, cell := range cells {
		refs[j] = t.unit.Pool.Put(cell)
	}
	//
	t.unit.Body = append(t.unit.Body, refs)
	t.unit.CellSpans = append(t.unit.CellSpans, spans)
}

// Swap the axes of a matrix unit, so the file's columns become the built
// matrix's rows and vice versa.
func (t *tokenizer) transpose() {
	u := t.unit
	rows, cols := len(u.Body), len(u.ColumnNames)
	//
	body := make([][]uint, cols)
	spans := make([][]source.Span, cols)
	//
	for j := 0; j < cols; j++ {
		body[j] = make([]uint, rows)
		spans[j] = make([]source.Span, rows)
		//
		for i := 0; i < rows; i++ {
			body[j][i] = u.Body[i][j]
			spans[j][i] = u.CellSpans[i][j]
		}
	}
	//
	u.Body, u.CellSpans = body, spans
	u.RowNames, u.ColumnNames = u.ColumnNames, u.RowNames
	// Column axis spans are lost on transpose; row spans remain usable.
	u.RowSpans = make([]source.Span, len(u.RowNames))
	//
	for i := range u.RowSpans {
		u.RowSpans[i] = source.NewSpan(0, 0)
	}
}

func isMetadataTag(tag string) bool {
	switch tag {
	case tagType, tagDefault, tagUnit, tagPrefix:
		return true
	}
	//
	return strings.HasPrefix(tag, tagPrefix+"/")
}

func (t *tokenizer) syntaxError(span source.Span, msg string) {
	t.errors = append(t.errors, *t.file.SyntaxError(span, msg))
}

func (t *tokenizer) syntaxErrorf(span source.Span, format string, args ...any) {
	t.errors = append(t.errors, *t.file.SyntaxErrorf(span, format, args...))
}
