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
	Register(&Rule{Name: "remove_implication", Apply: removeImplication, Sets: map[string]uint8{"cnf": 4100}})
	Register(&Rule{Name: "remove_equivalence", Apply: removeEquivalence, Sets: map[string]uint8{"cnf": 4100}})
}

// removeImplication rewrites `x -> y` into `!x \/ y`, grounded on
// original_source's cnf.rs::remove_implication.
func removeImplication(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	b, ok := expr.(*adt.Binary)
	if !ok || b.Op != adt.ImplyOp {
		return Reduction{}, RuleNotApplicable
	}
	return Pure(adt.NewNary(adt.OrOp, adt.NewUnary(adt.NotOp, b.X), b.Y)), nil
}

// removeEquivalence rewrites `x = y` (boolean equivalence) into
// `(!x \/ y) /\ (!y \/ x)`, grounded on cnf.rs::remove_equivalence. It is
// gated to Bool-kinded operands so it doesn't fire on the set-equality
// rewrite eq_to_subseteq handles instead (sets_horizontal.go).
func removeEquivalence(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	b, ok := expr.(*adt.Binary)
	if !ok || b.Op != adt.EqOp {
		return Reduction{}, RuleNotApplicable
	}
	xk, err := adt.Type(b.X, symbols)
	if err != nil || xk != adt.BoolKind {
		return Reduction{}, RuleNotApplicable
	}
	yk, err := adt.Type(b.Y, symbols)
	if err != nil || yk != adt.BoolKind {
		return Reduction{}, RuleNotApplicable
	}
	left := adt.NewNary(adt.OrOp, adt.NewUnary(adt.NotOp, b.X), b.Y)
	right := adt.NewNary(adt.OrOp, b.X, adt.NewUnary(adt.NotOp, b.Y))
	return Pure(adt.NewNary(adt.AndOp, left, right)), nil
}
