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
package source

import (
	"fmt"
	"strings"
)

// SyntaxError is a structured error which retains the span of the original
// text where an error occurred, along with an error message.
type SyntaxError struct {
	srcfile *File
	// Index into string being parsed where error arose.
	span Span
	// Error message being reported
	msg string
}

// SourceFile returns the underlying source file that this syntax error covers.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the span of the original text on which this error is reported.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	line := p.FirstEnclosingLine()
	return fmt.Sprintf("%s:%d: %s", p.srcfile.Filename(), line.Number(), p.msg)
}

// FirstEnclosingLine determines the first line in this source file to which
// this error is associated. Observe that, if the position is beyond the bounds
// of the source file then the last physical line is returned.  Also, the
// returned line is not guaranteed to enclose the entire span, as these can
// cross multiple lines.
func (p *SyntaxError) FirstEnclosingLine() Line {
	return p.srcfile.FindFirstEnclosingLine(p.span)
}

// Format renders this syntax error over several lines, highlighting the span
// of the offending line, e.g.:
//
//	planets.tsv:12:3-7 value "abc" cannot be coerced to FLOAT
//
//	PLANET_EARTH	abc	1.0
//	            	^^^
func (p *SyntaxError) Format() string {
	var builder strings.Builder
	//
	span := p.Span()
	line := p.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := min(line.Length()-lineOffset, span.Length())
	// Print error + line number
	fmt.Fprintf(&builder, "%s:%d:%d-%d %s\n\n", p.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, p.Message())
	// Print line
	fmt.Fprintln(&builder, line.String())
	// Print indent
	builder.WriteString(strings.Repeat(" ", lineOffset))
	// Print highlight
	builder.WriteString(strings.Repeat("^", max(1, length)))
	//
	return builder.String()
}

// JoinErrors combines a set of syntax errors into a single error, suitable for
// callers which do not report each error individually.
func JoinErrors(errors []SyntaxError) error {
	if len(errors) == 0 {
		return nil
	}
	//
	msgs := make([]string, len(errors))
	//
	for i := range errors {
		msgs[i] = errors[i].Error()
	}
	//
	return fmt.Errorf("%s", strings.Join(msgs, "\n"))
}
