// Copyright 2020 CUE Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package adt

// Metadata is carried by every Expr node. Clean marks a subtree the rewrite
// engine has already driven to a fixed point under the active rule sets,
// letting the engine skip it on the next traversal pass. CachedType memoizes
// C1's type inference result; it is invalidated whenever the node (or a
// descendant) changes.
type Metadata struct {
	Clean      bool
	CachedType *Kind
}

// Dirty clears Clean and the cached type, as a rule application must when
// it replaces a node: traversals do not enter metadata directly, so this is
// the one place metadata is mutated outside of a clone.
func (m *Metadata) Dirty() {
	m.Clean = false
	m.CachedType = nil
}

// Clone returns a copy of m; Metadata is a value type everywhere else in
// this package, but Clone documents the intent at call sites that copy a
// node wholesale.
func (m Metadata) Clone() Metadata {
	if m.CachedType == nil {
		return Metadata{Clean: m.Clean}
	}
	k := *m.CachedType
	return Metadata{Clean: m.Clean, CachedType: &k}
}
