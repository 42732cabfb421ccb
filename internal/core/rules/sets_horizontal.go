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
	Register(&Rule{Name: "subset_to_subseteq_neq", Apply: subsetToSubsetEqNeq, Sets: map[string]uint8{"base": 8700}})
	Register(&Rule{Name: "supseteq_to_subseteq", Apply: supsetEqToSubsetEq, Sets: map[string]uint8{"base": 8700}})
	Register(&Rule{Name: "neq_not_eq_sets", Apply: neqNotEqSets, Sets: map[string]uint8{"base": 8700}})
	Register(&Rule{Name: "eq_to_subseteq", Apply: eqToSubsetEq, Sets: map[string]uint8{"base": 8800}})
	Register(&Rule{Name: "subseteq_intersect", Apply: subsetEqIntersect, Sets: map[string]uint8{"base": 8700}})
	Register(&Rule{Name: "union_subseteq", Apply: unionSubsetEq, Sets: map[string]uint8{"base": 8700}})
}

func bothSets(a, b adt.Expr, symbols *adt.SymbolTable) bool {
	return isSetKinded(a, symbols) && isSetKinded(b, symbols)
}

// subsetToSubsetEqNeq rewrites `a subset b` (strict) into `a subsetEq b /\
// a != b`, grounded on sets/horizontal/subset.rs::subset_to_subset_eq_neq.
func subsetToSubsetEqNeq(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	b, ok := expr.(*adt.Binary)
	if !ok || b.Op != adt.SubsetOp || !bothSets(b.X, b.Y, symbols) {
		return Reduction{}, RuleNotApplicable
	}
	subEq := adt.NewBinary(adt.SubsetEqOp, b.X, b.Y)
	neq := adt.NewBinary(adt.NeqOp, b.X, b.Y)
	return Pure(adt.NewNary(adt.AndOp, subEq, neq)), nil
}

// supsetEqToSubsetEq rewrites `a supsetEq b` into `b subsetEq a`, grounded
// on sets/horizontal/supseteq.rs::supset_eq_to_subset_eq.
func supsetEqToSubsetEq(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	b, ok := expr.(*adt.Binary)
	if !ok || b.Op != adt.SupsetEqOp || !bothSets(b.X, b.Y, symbols) {
		return Reduction{}, RuleNotApplicable
	}
	return Pure(adt.NewBinary(adt.SubsetEqOp, b.Y, b.X)), nil
}

// neqNotEqSets rewrites `a != b` into `not(b = a)` when both sides are
// set-kinded, grounded on sets/horizontal/neq.rs::neq_not_eq_sets.
func neqNotEqSets(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	b, ok := expr.(*adt.Binary)
	if !ok || b.Op != adt.NeqOp || !bothSets(b.X, b.Y, symbols) {
		return Reduction{}, RuleNotApplicable
	}
	return Pure(adt.NewUnary(adt.NotOp, adt.NewBinary(adt.EqOp, b.Y, b.X))), nil
}

// eqToSubsetEq rewrites `a = b` into `a subsetEq b /\ b subsetEq a` for
// set-kinded operands, grounded on sets/horizontal/equals.rs::eq_to_subset_eq.
func eqToSubsetEq(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	b, ok := expr.(*adt.Binary)
	if !ok || b.Op != adt.EqOp || !bothSets(b.X, b.Y, symbols) {
		return Reduction{}, RuleNotApplicable
	}
	ab := adt.NewBinary(adt.SubsetEqOp, b.X, b.Y)
	ba := adt.NewBinary(adt.SubsetEqOp, b.Y, b.X)
	return Pure(adt.NewNary(adt.AndOp, ab, ba)), nil
}

// subsetEqIntersect rewrites `a subsetEq (b intersect c)` into
// `a subsetEq b /\ a subsetEq c`, grounded on
// sets/horizontal/concat.rs::subseteq_intersect.
func subsetEqIntersect(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	outer, ok := expr.(*adt.Binary)
	if !ok || outer.Op != adt.SubsetEqOp || !isSetKinded(outer.X, symbols) {
		return Reduction{}, RuleNotApplicable
	}
	inner, ok := outer.Y.(*adt.Nary)
	if !ok || inner.Op != adt.IntersectOp || len(inner.Args) != 2 ||
		!bothSets(inner.Args[0], inner.Args[1], symbols) {
		return Reduction{}, RuleNotApplicable
	}
	left := adt.NewBinary(adt.SubsetEqOp, outer.X, inner.Args[0])
	right := adt.NewBinary(adt.SubsetEqOp, outer.X, inner.Args[1])
	return Pure(adt.NewNary(adt.AndOp, left, right)), nil
}

// unionSubsetEq rewrites `(a union b) subsetEq c` into
// `a subsetEq c /\ b subsetEq c`, grounded on
// sets/horizontal/concat.rs::union_subseteq. Strict subset and supsetEq
// need no analogous rule here: subsetToSubsetEqNeq and supsetEqToSubsetEq
// above convert them to subsetEq first. Strict supset has no rule in this
// file.
func unionSubsetEq(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	outer, ok := expr.(*adt.Binary)
	if !ok || outer.Op != adt.SubsetEqOp || !isSetKinded(outer.Y, symbols) {
		return Reduction{}, RuleNotApplicable
	}
	inner, ok := outer.X.(*adt.Nary)
	if !ok || inner.Op != adt.UnionOp || len(inner.Args) != 2 ||
		!bothSets(inner.Args[0], inner.Args[1], symbols) {
		return Reduction{}, RuleNotApplicable
	}
	left := adt.NewBinary(adt.SubsetEqOp, inner.Args[0], outer.Y)
	right := adt.NewBinary(adt.SubsetEqOp, inner.Args[1], outer.Y)
	return Pure(adt.NewNary(adt.AndOp, left, right)), nil
}
