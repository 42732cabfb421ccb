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

// Visit is called once per node during a Walk, pre-order. Returning false
// stops Walk from descending into that node's children (but sibling
// traversal continues).
type Visit func(Expr) bool

// Walk performs a uniform, generic pre-order traversal of x using the
// Children/Rebuild contract. It never descends into a Scope or
// Comprehension's nested SubModel; those are separate lexical scopes,
// walked explicitly by whoever owns them.
func Walk(x Expr, visit Visit) {
	if x == nil || !visit(x) {
		return
	}
	for _, c := range x.Children() {
		Walk(c, visit)
	}
}

// Transform rebuilds x bottom-up, applying f to every node after its
// children have already been transformed. It is pure: Rebuild never
// mutates x, only returns a new node with replaced children.
func Transform(x Expr, f func(Expr) Expr) Expr {
	if x == nil {
		return nil
	}
	kids := x.Children()
	if len(kids) > 0 {
		newKids := make([]Expr, len(kids))
		changed := false
		for i, k := range kids {
			nk := Transform(k, f)
			newKids[i] = nk
			if nk != k {
				changed = true
			}
		}
		if changed {
			x = x.Rebuild(newKids)
		}
	}
	return f(x)
}

// Count returns the number of nodes (including x itself) in the subtree
// rooted at x.
func Count(x Expr) int {
	n := 0
	Walk(x, func(Expr) bool { n++; return true })
	return n
}
