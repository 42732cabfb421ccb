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
	Register(&Rule{Name: "substitute_value_lettings", Apply: substituteValueLettings, Sets: map[string]uint8{"base": 5000}})
	Register(&Rule{Name: "substitute_domain_lettings", Apply: substituteDomainLettings, Sets: map[string]uint8{"base": 5000}})
}

// substituteValueLettings replaces a reference to a ValueLetting with the
// letting's own expression, grounded on original_source's
// subsitute_lettings.rs::substitute_value_lettings. It must outrank the
// solver flattening rules (priority 4000): once a reference is flattened
// into a solver atom it is no longer an Expr this rule can match against.
func substituteValueLettings(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	ref, ok := expr.(*adt.Ref)
	if !ok {
		return Reduction{}, RuleNotApplicable
	}
	letting, ok := ref.Decl.(*adt.ValueLetting)
	if !ok {
		return Reduction{}, RuleNotApplicable
	}
	return Pure(letting.Expr), nil
}

// substituteDomainLettings resolves every Var's domain against the symbol
// table in place, eliminating ReferenceDomain indirection, grounded on
// subsitute_lettings.rs::substitute_domain_lettings.
func substituteDomainLettings(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	if _, ok := expr.(*adt.Root); !ok {
		return Reduction{}, RuleNotApplicable
	}

	var updated []adt.Declaration
	for _, name := range symbols.Order() {
		decl, ok := symbols.LookupLocal(name)
		if !ok {
			continue
		}
		v, ok := decl.(*adt.Var)
		if !ok {
			continue
		}
		resolved, err := adt.Resolve(v.Domain, symbols)
		if err != nil || adt.DomainsEqual(resolved, v.Domain) {
			continue
		}
		next := *v
		next.Domain = resolved
		updated = append(updated, &next)
	}
	if len(updated) == 0 {
		return Reduction{}, RuleNotApplicable
	}
	return WithSymbols(expr, updated...), nil
}
