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

import "fmt"

// Enumeration is the ordered name<->index bijection over the rows of one
// table.  An enumeration is shared: any other table's row-reference columns
// may resolve against it, and a matrix table is indexed by two of them.
// Enumerations grow append-only during compilation (modifier tables may extend
// them) and become immutable on freeze.
type Enumeration struct {
	name    string
	names   []string
	indices map[string]int
	frozen  bool
}

// NewEnumeration constructs an empty enumeration with the given (table) name.
func NewEnumeration(name string) *Enumeration {
	return &Enumeration{name: name, indices: make(map[string]int)}
}

// Name returns the name of the owning table.
func (e *Enumeration) Name() string {
	return e.name
}

// Len returns the number of entries in this enumeration.
func (e *Enumeration) Len() int {
	return len(e.names)
}

// Add appends a name, returning its allocated index.  Adding a name already
// present is a programming error, as is adding after freeze; callers are
// expected to have checked via IndexOf.
func (e *Enumeration) Add(name string) int {
	if e.frozen {
		panic(fmt.Sprintf("enumeration %s is frozen", e.name))
	} else if _, ok := e.indices[name]; ok {
		panic(fmt.Sprintf("duplicate name %s in enumeration %s", name, e.name))
	}
	//
	index := len(e.names)
	e.names = append(e.names, name)
	e.indices[name] = index
	//
	return index
}

// IndexOf returns the index of a given name, or false if it is not present.
func (e *Enumeration) IndexOf(name string) (int, bool) {
	index, ok := e.indices[name]
	return index, ok
}

// NameOf returns the name at a given index.
func (e *Enumeration) NameOf(index int) string {
	return e.names[index]
}

// Names returns the names of this enumeration in index order.  The returned
// slice must not be mutated.
func (e *Enumeration) Names() []string {
	return e.names
}

// Freeze makes this enumeration immutable.
func (e *Enumeration) Freeze() {
	e.frozen = true
}
