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
	Register(&Rule{Name: "lt_to_leq", Apply: ltToLeq, Sets: map[string]uint8{"minion": 8400, "sat": 8400}})
	Register(&Rule{Name: "gt_to_geq", Apply: gtToGeq, Sets: map[string]uint8{"minion": 8400, "sat": 8400}})
}

// ltToLeq converts `x < y` into `x <= y + (-1)` so that Minion-family flat
// forms (which only natively support Leq) don't need a separate Lt case,
// grounded on original_source's normalisers/lt_gt.rs::lt_to_leq.
func ltToLeq(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	b, ok := expr.(*adt.Binary)
	if !ok || b.Op != adt.LtOp {
		return Reduction{}, RuleNotApplicable
	}
	shifted := adt.NewNary(adt.SumOp, b.Y, adt.NewLit(adt.IntLit(-1)))
	return Pure(adt.NewBinary(adt.LeqOp, b.X, shifted)), nil
}

// gtToGeq converts `x > y` into `x + (-1) >= y` (equivalently x-1>=y, the
// same proposition for integers), the Geq dual of ltToLeq.
func gtToGeq(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	b, ok := expr.(*adt.Binary)
	if !ok || b.Op != adt.GtOp {
		return Reduction{}, RuleNotApplicable
	}
	shifted := adt.NewNary(adt.SumOp, b.X, adt.NewLit(adt.IntLit(-1)))
	return Pure(adt.NewBinary(adt.GeqOp, shifted, b.Y)), nil
}
