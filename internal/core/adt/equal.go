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

// StructurallyEqual reports whether a and b are the same expression tree
// ignoring Metadata and declaration identity: two References are equal
// iff their Names match, not their resolved Decl pointers. This is also what
// the rewrite engine's progress check uses: a reduction whose new_expression
// is structurally equal to the input is an error.
func StructurallyEqual(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Lit:
		b, ok := b.(*Lit)
		return ok && LiteralsEqual(a.Value, b.Value)
	case *Ref:
		b, ok := b.(*Ref)
		return ok && NamesEqual(a.Name, b.Name) && reprEqual(a.Repr, b.Repr)
	case *Nary:
		b, ok := b.(*Nary)
		return ok && a.Op == b.Op && childrenEqual(a.Args, b.Args)
	case *Binary:
		b, ok := b.(*Binary)
		return ok && a.Op == b.Op && StructurallyEqual(a.X, b.X) && StructurallyEqual(a.Y, b.Y)
	case *Unary:
		b, ok := b.(*Unary)
		return ok && a.Op == b.Op && StructurallyEqual(a.X, b.X)
	case *Index:
		b, ok := b.(*Index)
		return ok && a.Mode == b.Mode && StructurallyEqual(a.Coll, b.Coll) && StructurallyEqual(a.Index, b.Index)
	case *Slice:
		b, ok := b.(*Slice)
		return ok && a.Mode == b.Mode && StructurallyEqual(a.Coll, b.Coll) &&
			StructurallyEqual(a.Lo, b.Lo) && StructurallyEqual(a.Hi, b.Hi)
	case *MatrixLit:
		b, ok := b.(*MatrixLit)
		return ok && childrenEqual(a.Elems, b.Elems)
	case *Root:
		b, ok := b.(*Root)
		return ok && childrenEqual(a.Constraints, b.Constraints)
	case *Bubble:
		b, ok := b.(*Bubble)
		return ok && StructurallyEqual(a.Body, b.Body) && StructurallyEqual(a.Condition, b.Condition)
	case *Scope:
		b, ok := b.(*Scope)
		return ok && a.Sub == b.Sub
	case *Comprehension:
		b, ok := b.(*Comprehension)
		return ok && a == b
	case *Flatten:
		b, ok := b.(*Flatten)
		return ok && StructurallyEqual(a.X, b.X)
	case *InDomain:
		b, ok := b.(*InDomain)
		return ok && StructurallyEqual(a.X, b.X)
	case *DominanceRelation:
		b, ok := b.(*DominanceRelation)
		return ok && a.RelationName == b.RelationName &&
			StructurallyEqual(a.Left, b.Left) && StructurallyEqual(a.Right, b.Right)
	default:
		return false
	}
}

func childrenEqual(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !StructurallyEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func reprEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
