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
	Register(&Rule{Name: "unwrap_alldiff", Apply: unwrapAllDiff, Sets: map[string]uint8{"smt_unwrap_alldiff": 1000}})
	Register(&Rule{Name: "fold_list_pairwise", Apply: foldListPairwise, Sets: map[string]uint8{"smt_bv_ints": 9002}})
}

// unwrapAllDiff expands an AllDiff over its elements into pairwise
// inequalities, grounded on original_source's smt/unwrap_alldiff.rs
// (registered for SMT adaptor configurations that don't support
// AllDifferent natively). The original counts per-value occurrences via a
// toInt(x=v)<=1 sum; this AST has no boolean-to-integer cast operator, so
// it uses the equivalent, cheaper pairwise decomposition instead (for n
// elements, AllDifferent(xs) is exactly AND over i<j of xs[i] != xs[j]).
func unwrapAllDiff(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	n, ok := expr.(*adt.Nary)
	if !ok || n.Op != adt.AllDiffOp || len(n.Args) < 2 {
		return Reduction{}, RuleNotApplicable
	}
	var pairs []adt.Expr
	for i := 0; i < len(n.Args); i++ {
		for j := i + 1; j < len(n.Args); j++ {
			pairs = append(pairs, adt.NewBinary(adt.NeqOp, n.Args[i], n.Args[j]))
		}
	}
	return Pure(adt.NewNary(adt.AndOp, pairs...)), nil
}

// foldListPairwise folds a flat Sum/Product into a left-deep binary chain
// of the same operator, grounded on original_source's smt/
// bitvector_encoding.rs::fold_list_exprs_pairwise: SMT bitvector theories
// encode n-ary add/multiply as nested binary bv-add/bv-mul, so flattening
// needs to run in reverse before a bitvector-backed solver sees the term.
func foldListPairwise(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	n, ok := expr.(*adt.Nary)
	if !ok || (n.Op != adt.SumOp && n.Op != adt.ProductOp) || len(n.Args) <= 2 {
		return Reduction{}, RuleNotApplicable
	}
	acc := adt.NewNary(n.Op, n.Args[0], n.Args[1])
	var chain adt.Expr = acc
	for _, a := range n.Args[2:] {
		chain = adt.NewNary(n.Op, chain, a)
	}
	return Pure(chain), nil
}
