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

package smt

import "github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"

// unwrapAllDiff rewrites every AllDiff node in expr into a conjunction of
// pairwise not-equal comparisons, the way unwrap_alldiff.rs's rule does for
// solver families whose TheoryConfig requests it (there expressed as a
// sum(toInt(...)) <= 1 occurrence count per value; here as the equivalent
// and simpler pairwise form, since this adaptor has no abstract-literal
// matrix machinery to index into).
func unwrapAllDiff(expr adt.Expr) adt.Expr {
	switch x := expr.(type) {
	case *adt.Unary:
		return adt.NewUnary(x.Op, unwrapAllDiff(x.X))
	case *adt.Binary:
		return adt.NewBinary(x.Op, unwrapAllDiff(x.X), unwrapAllDiff(x.Y))
	case *adt.Nary:
		args := make([]adt.Expr, len(x.Args))
		for i, a := range x.Args {
			args[i] = unwrapAllDiff(a)
		}
		if x.Op != adt.AllDiffOp {
			return adt.NewNary(x.Op, args...)
		}
		var pairs []adt.Expr
		for i := 0; i < len(args); i++ {
			for j := i + 1; j < len(args); j++ {
				pairs = append(pairs, adt.NewBinary(adt.NeqOp, args[i], args[j]))
			}
		}
		if len(pairs) == 0 {
			return adt.NewLit(adt.BoolLit(true))
		}
		return adt.NewNary(adt.AndOp, pairs...)
	default:
		return expr
	}
}
