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

package rules

import "github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"

func init() {
	Register(&Rule{Name: "index_to_bubble", Apply: indexToBubble, Sets: map[string]uint8{"bubble": 6000}})
	Register(&Rule{Name: "slice_to_bubble", Apply: sliceToBubble, Sets: map[string]uint8{"bubble": 6000}})
	Register(&Rule{Name: "safe_div_to_bubble", Apply: safeDivToBubble, Sets: map[string]uint8{"bubble": 6000}})
}

// indexToBubble converts an UnsafeIndex into a SafeIndex guarded by a
// bubble asserting each index lies within the subject's corresponding
// index domain, grounded on original_source's matrix/bubble.rs::
// index_to_bubble.
func indexToBubble(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	idx, ok := expr.(*adt.Index)
	if !ok || idx.Mode != adt.UnsafeIndexMode {
		return Reduction{}, RuleNotApplicable
	}
	mat, ok := subjectMatrixDomain(idx.Coll, symbols)
	if !ok {
		return Reduction{}, RuleNotApplicable
	}
	if len(mat.Indices) != 1 {
		// Single-index expressions only cover one dimension; a matrix of
		// more dimensions is indexed one axis at a time elsewhere.
		return Reduction{}, RuleNotApplicable
	}
	guard := adt.NewInDomain(idx.Index, mat.Indices[0])
	safe := adt.NewIndex(adt.SafeIndexMode, idx.Coll, idx.Index)
	return Pure(adt.NewBubble(safe, guard)), nil
}

// sliceToBubble converts an UnsafeSlice into a SafeSlice guarded by bubbles
// asserting each bound lies within the subject's index domain; an open
// (nil) bound needs no guard, grounded on matrix/bubble.rs::slice_to_bubble.
func sliceToBubble(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	sl, ok := expr.(*adt.Slice)
	if !ok || sl.Mode != adt.UnsafeIndexMode {
		return Reduction{}, RuleNotApplicable
	}
	mat, ok := subjectMatrixDomain(sl.Coll, symbols)
	if !ok || len(mat.Indices) == 0 {
		return Reduction{}, RuleNotApplicable
	}
	dom := mat.Indices[0]

	var guards []adt.Expr
	if sl.Lo != nil {
		guards = append(guards, adt.NewInDomain(sl.Lo, dom))
	}
	if sl.Hi != nil {
		guards = append(guards, adt.NewInDomain(sl.Hi, dom))
	}
	if len(guards) == 0 {
		return Reduction{}, RuleNotApplicable
	}

	safe := adt.NewSlice(adt.SafeIndexMode, sl.Coll, sl.Lo, sl.Hi)
	return Pure(adt.NewBubble(safe, adt.NewNary(adt.AndOp, guards...))), nil
}

// safeDivToBubble converts an unsafe Div into a SafeDiv guarded by a bubble
// asserting the divisor is nonzero, mirroring
// index_to_bubble/slice_to_bubble's guard-and-wrap shape for the arithmetic
// unsafe operator original_source handles analogously in conjure_core's safe-
// division normaliser.
func safeDivToBubble(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	b, ok := expr.(*adt.Binary)
	if !ok || b.Op != adt.DivOp {
		return Reduction{}, RuleNotApplicable
	}
	nonzero := adt.NewUnary(adt.NotOp, adt.NewBinary(adt.EqOp, b.Y, adt.NewLit(adt.IntLit(0))))
	safe := adt.NewBinary(adt.SafeDivOp, b.X, b.Y)
	return Pure(adt.NewBubble(safe, nonzero)), nil
}

// subjectMatrixDomain resolves x's domain against symbols and reports it
// as a MatrixDomain, the shape index/slice subjects are required to have.
func subjectMatrixDomain(x adt.Expr, symbols *adt.SymbolTable) (adt.MatrixDomain, bool) {
	dom, ok := exprDomain(x, symbols)
	if !ok {
		return adt.MatrixDomain{}, false
	}
	resolved, err := adt.Resolve(dom, symbols)
	if err != nil {
		return adt.MatrixDomain{}, false
	}
	mat, ok := resolved.(adt.MatrixDomain)
	return mat, ok
}

// exprDomain finds x's declared domain where it is syntactically available
// (a reference to a declared Var, or an index into such a reference's
// matrix domain). Anything else is out of scope for the bubble rules.
func exprDomain(x adt.Expr, symbols *adt.SymbolTable) (adt.Domain, bool) {
	switch x := x.(type) {
	case *adt.Ref:
		decl, ok := symbols.Lookup(x.Name)
		if !ok {
			return nil, false
		}
		v, ok := decl.(*adt.Var)
		if !ok {
			return nil, false
		}
		return v.Domain, true
	case *adt.Index:
		mat, ok := subjectMatrixDomain(x.Coll, symbols)
		if !ok {
			return nil, false
		}
		return mat.Elem, true
	default:
		return nil, false
	}
}
