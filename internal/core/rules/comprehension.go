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
	Register(&Rule{Name: "expand_comprehension", Apply: expandComprehension, Sets: map[string]uint8{"base": 8900}})
}

// expandComprehension instantiates a Comprehension over the cartesian
// product of its generators' (ground, Int-domained) bindings, dropping
// instances whose guards evaluate to false and flattening the surviving
// instances' return expressions into ReturnOp, grounded on
// original_source's expand_comprehension.rs (registered there as
// "Better_AC_Comprehension_Expansion"). Only Int-domained generators are
// supported directly here; a generator ranging over a Set/Matrix
// expression (union.rs's `i <- A union B`, in.rs's `i <- b`) is left to
// the set-decomposition rules in sets_horizontal.go to first reduce the
// generator domain to one this rule can enumerate.
func expandComprehension(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	comp, ok := expr.(*adt.Comprehension)
	if !ok || len(comp.Generators) == 0 {
		return Reduction{}, RuleNotApplicable
	}

	bindingSets := make([][]adt.Literal, len(comp.Generators))
	for i, gen := range comp.Generators {
		resolved, err := adt.Resolve(gen.Domain, comp.Generator.Symbols)
		if err != nil {
			return Reduction{}, RuleNotApplicable
		}
		intDom, ok := resolved.(adt.IntDomain)
		if !ok {
			return Reduction{}, RuleNotApplicable
		}
		values, err := intDom.Enumerate()
		if err != nil {
			return Reduction{}, RuleNotApplicable
		}
		lits := make([]adt.Literal, len(values))
		for j, v := range values {
			lits[j] = adt.IntLit(v)
		}
		bindingSets[i] = lits
	}

	var instances []adt.Expr
	var walk func(i int, assign map[adt.Name]adt.Literal)
	walk = func(i int, assign map[adt.Name]adt.Literal) {
		if i == len(comp.Generators) {
			if !guardsHold(comp.Guards, assign) {
				return
			}
			instances = append(instances, substituteLiterals(comp.Return.Root, assign))
			return
		}
		for _, lit := range bindingSets[i] {
			next := make(map[adt.Name]adt.Literal, len(assign)+1)
			for k, v := range assign {
				next[k] = v
			}
			next[comp.Generators[i].Name] = lit
			walk(i+1, next)
		}
	}
	walk(0, map[adt.Name]adt.Literal{})

	return Pure(adt.NewNary(comp.ReturnOp, instances...)), nil
}

// guardsHold reports whether every guard, after substituting assign,
// constant-folds to BoolLit(true).
func guardsHold(guards []adt.Expr, assign map[adt.Name]adt.Literal) bool {
	for _, g := range guards {
		substituted := substituteLiterals(g, assign)
		b, ok := boolLit(foldFully(substituted))
		if !ok || !b {
			return false
		}
	}
	return true
}

// foldFully repeatedly folds substituted to a single Lit, bottom-up, for
// guard evaluation; unlike constantEvaluator it operates on a standalone
// guard expression rather than a whole Root.
func foldFully(expr adt.Expr) adt.Expr {
	return adt.Transform(expr, func(x adt.Expr) adt.Expr {
		if _, ok := x.(*adt.Lit); ok {
			return x
		}
		if lit, ok := evalConstant(x); ok {
			return adt.NewLit(lit)
		}
		return x
	})
}

// substituteLiterals replaces every Ref bound in assign with its literal
// value, bottom-up.
func substituteLiterals(expr adt.Expr, assign map[adt.Name]adt.Literal) adt.Expr {
	return adt.Transform(expr, func(x adt.Expr) adt.Expr {
		ref, ok := x.(*adt.Ref)
		if !ok {
			return x
		}
		lit, ok := assign[ref.Name]
		if !ok {
			return x
		}
		return adt.NewLit(lit)
	})
}
