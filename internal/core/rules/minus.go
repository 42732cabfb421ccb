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
	Register(&Rule{Name: "minus_to_sum_neg", Apply: minusToSumNeg, Sets: map[string]uint8{"minion": 8400, "sat": 8400}})
}

// minusToSumNeg rewrites `x - y` into `x + (-y)`, grounded on
// original_source's normalisers/neg_minus.rs: flattening Minus into a Sum
// of a Neg lets the AC sum-flattening rules merge it with adjacent sums
// instead of needing a dedicated Minus case in every downstream rule.
func minusToSumNeg(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	b, ok := expr.(*adt.Binary)
	if !ok || b.Op != adt.MinusOp {
		return Reduction{}, RuleNotApplicable
	}
	return Pure(adt.NewNary(adt.SumOp, b.X, adt.NewUnary(adt.NegOp, b.Y))), nil
}
