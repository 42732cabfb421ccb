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
	Register(&Rule{Name: "flatten_sum_geq", Apply: flattenSumGeq, Sets: map[string]uint8{"minion": 4000}})
	Register(&Rule{Name: "flatten_sum_leq", Apply: flattenSumLeq, Sets: map[string]uint8{"minion": 4000}})
	Register(&Rule{Name: "flatten_sum_eq", Apply: flattenSumEq, Sets: map[string]uint8{"minion": 4000}})
	Register(&Rule{Name: "sumeq_to_minion", Apply: sumEqToMinion, Sets: map[string]uint8{"minion": 3900}})
}

// sumOperands returns lhs's Sum elements, grounded on conjure_oxide's
// minion.rs::sum_to_vector (its flatten_nested_sum fallback is redundant
// here since the AC-flattening rule, flattenAC in normalise.go, already
// runs at higher priority and leaves Sum pre-flattened).
func sumOperands(lhs adt.Expr) ([]adt.Expr, bool) {
	n, ok := lhs.(*adt.Nary)
	if !ok || n.Op != adt.SumOp {
		return nil, false
	}
	return n.Args, true
}

// flattenSumGeq rewrites `sum([a,b,...]) >= d` into the Minion-native flat
// form `sumGeq([a,b,...], d)`, grounded on minion.rs::flatten_sum_geq.
func flattenSumGeq(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	b, ok := expr.(*adt.Binary)
	if !ok || b.Op != adt.GeqOp {
		return Reduction{}, RuleNotApplicable
	}
	elems, ok := sumOperands(b.X)
	if !ok {
		return Reduction{}, RuleNotApplicable
	}
	return Pure(adt.NewBinary(adt.SumGeqOp, adt.NewNary(adt.SumOp, elems...), b.Y)), nil
}

// flattenSumLeq is flattenSumGeq's Leq dual, grounded on
// minion.rs::sum_leq_to_sumleq.
func flattenSumLeq(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	b, ok := expr.(*adt.Binary)
	if !ok || b.Op != adt.LeqOp {
		return Reduction{}, RuleNotApplicable
	}
	elems, ok := sumOperands(b.X)
	if !ok {
		return Reduction{}, RuleNotApplicable
	}
	return Pure(adt.NewBinary(adt.SumLeqOp, adt.NewNary(adt.SumOp, elems...), b.Y)), nil
}

// flattenSumEq is flattenSumGeq's Eq dual, grounded on
// minion.rs::sum_eq_to_sumeq.
func flattenSumEq(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	b, ok := expr.(*adt.Binary)
	if !ok || b.Op != adt.EqOp {
		return Reduction{}, RuleNotApplicable
	}
	elems, ok := sumOperands(b.X)
	if !ok {
		return Reduction{}, RuleNotApplicable
	}
	return Pure(adt.NewBinary(adt.SumEqOp, adt.NewNary(adt.SumOp, elems...), b.Y)), nil
}

// sumEqToMinion rewrites `sumEq([...], c)` into `sumGeq([...],c) /\
// sumLeq([...],c)`: a workaround for Minion having no flat "sum equals"
// primitive, grounded on minion.rs::sumeq_to_minion. Its priority (3900)
// runs after the flatten_sum_* rules install SumEq (4000) so it only ever
// sees an already-flattened sum.
func sumEqToMinion(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	b, ok := expr.(*adt.Binary)
	if !ok || b.Op != adt.SumEqOp {
		return Reduction{}, RuleNotApplicable
	}
	geq := adt.NewBinary(adt.SumGeqOp, b.X, b.Y)
	leq := adt.NewBinary(adt.SumLeqOp, b.X, b.Y)
	return Pure(adt.NewNary(adt.AndOp, geq, leq)), nil
}
