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
package bit

import "testing"

func Test_BitSet_01(t *testing.T) {
	var set Set
	//
	set.Insert(1)
	set.Insert(64)
	set.Insert(300)
	//
	if !set.Contains(1) || !set.Contains(64) || !set.Contains(300) {
		t.Errorf("inserted values missing")
	}
	//
	if set.Contains(0) || set.Contains(65) || set.Contains(10000) {
		t.Errorf("absent values present")
	}
	//
	if set.Count() != 3 {
		t.Errorf("expected 3 elements, got %d", set.Count())
	}
}

func Test_BitSet_02(t *testing.T) {
	var set Set
	//
	set.Insert(5)
	set.Remove(5)
	// Removing beyond the allocated words is a no-op.
	set.Remove(1000)
	//
	if set.Contains(5) || set.Count() != 0 {
		t.Errorf("removal failed")
	}
}

func Test_BitSet_03(t *testing.T) {
	var set Set
	//
	set.Insert(7)
	clone := set.Clone()
	clone.Insert(8)
	// No aliasing between a set and its clone.
	if set.Contains(8) || !clone.Contains(7) {
		t.Errorf("clone aliases the original")
	}
}
