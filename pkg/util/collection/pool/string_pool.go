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
package pool

// StringPool is a deduplicating arena of strings.  Index 0 always denotes the
// empty string, so a zeroed back-reference is a well-formed reference to an
// empty cell.  Repeated identical strings (very common for empty cells and
// shared constants) map to the same index, which bounds downstream parsing
// work to the number of distinct raw values rather than the cell count.
type StringPool struct {
	strings []string
	indices map[string]uint
}

// NewStringPool constructs a pool containing just the empty string at index 0.
func NewStringPool() *StringPool {
	p := &StringPool{indices: make(map[string]uint)}
	p.Put("")
	//
	return p
}

// Get returns the string at a given index.
func (p *StringPool) Get(index uint) string {
	return p.strings[index]
}

// Put interns a string, returning its (possibly pre-existing) index.
func (p *StringPool) Put(s string) uint {
	if index, ok := p.indices[s]; ok {
		return index
	}
	//
	index := uint(len(p.strings))
	p.strings = append(p.strings, s)
	p.indices[s] = index
	//
	return index
}

// Len returns the number of distinct strings in this pool.
func (p *StringPool) Len() int {
	return len(p.strings)
}
