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

import (
	"sort"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
)

func init() {
	Register(&Rule{Name: "collect_like_terms", Apply: collectLikeTerms, Sets: map[string]uint8{"base": 8400}})
}

// collectLikeTerms merges repeated weighted-sum terms for the same
// variable: `c1*v + c2*v + ...` becomes `(c1+c2)*v`, grounded on
// original_source's normalisers/weighted_sums.rs::collect_like_terms.
// Terms are assumed to already be in coefficient*variable form, as the
// reorder_product and constant-folding rules run before this one in
// priority order.
func collectLikeTerms(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	n, ok := expr.(*adt.Nary)
	if !ok || n.Op != adt.SumOp {
		return Reduction{}, RuleNotApplicable
	}

	coeffs := map[adt.Name]int64{}
	var order []adt.Name
	var other []adt.Expr

	for _, term := range n.Args {
		name, coeff, ok := weightedTerm(term)
		if !ok || name == nil {
			other = append(other, term)
			continue
		}
		if _, seen := coeffs[name]; !seen {
			order = append(order, name)
		}
		coeffs[name] += coeff
	}

	if len(order) == 0 {
		return Reduction{}, RuleNotApplicable
	}
	// Only a genuine merge (two or more terms sharing a variable) counts
	// as applicable; a sum with no repeated variable is already collected.
	merged := 0
	seen := map[adt.Name]bool{}
	for _, term := range n.Args {
		if name, _, ok := weightedTerm(term); ok {
			if seen[name] {
				merged++
			}
			seen[name] = true
		}
	}
	if merged == 0 {
		return Reduction{}, RuleNotApplicable
	}

	sort.Slice(order, func(i, j int) bool { return order[i].String() < order[j].String() })

	newTerms := make([]adt.Expr, 0, len(order)+len(other))
	for _, name := range order {
		decl, ok := symbols.Lookup(name)
		if !ok {
			return Reduction{}, RuleNotApplicable
		}
		ref := adt.NewRef(name)
		ref.Decl = decl
		newTerms = append(newTerms, adt.NewNary(adt.ProductOp, ref, adt.NewLit(adt.IntLit(coeffs[name]))))
	}
	newTerms = append(newTerms, other...)

	return Pure(adt.NewNary(adt.SumOp, newTerms...)), nil
}

// weightedTerm matches term against `v*c` or `v*(-c)` for a Ref v and an
// IntLit c, returning v's name and the (possibly negated) coefficient.
func weightedTerm(term adt.Expr) (adt.Name, int64, bool) {
	prod, ok := term.(*adt.Nary)
	if !ok || prod.Op != adt.ProductOp || len(prod.Args) != 2 {
		return nil, 0, false
	}
	ref, ok := prod.Args[0].(*adt.Ref)
	if !ok {
		ref, ok = prod.Args[1].(*adt.Ref)
		if !ok {
			return nil, 0, false
		}
		other := prod.Args[0]
		if coeff, ok := coefficientOf(other); ok {
			return ref.Name, coeff, true
		}
		return nil, 0, false
	}
	other := prod.Args[1]
	if coeff, ok := coefficientOf(other); ok {
		return ref.Name, coeff, true
	}
	return nil, 0, false
}

func coefficientOf(e adt.Expr) (int64, bool) {
	switch v := e.(type) {
	case *adt.Lit:
		if il, ok := v.Value.(adt.IntLit); ok {
			return int64(il), true
		}
	case *adt.Unary:
		if v.Op == adt.NegOp {
			if inner, ok := coefficientOf(v.X); ok {
				return -inner, true
			}
		}
	}
	return 0, false
}
