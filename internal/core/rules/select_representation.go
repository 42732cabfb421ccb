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
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/represent"
)

func init() {
	Register(&Rule{Name: "select_representation", Apply: selectRepresentation, Sets: map[string]uint8{"minion": 4800, "sat": 4800}})
}

// selectRepresentation picks (and caches, via SymbolTable.
// GetOrAddRepresentation) a refinement scheme for a reference to an
// abstract Var (matrix/tuple/record-shaped, or an Int domain a target
// solver family can't consume directly), then installs the concrete
// declarations that scheme introduces, grounded on
// original_source's conjure_core::representation::Representation selection
// step. The priority (4800) matches sat/encoding_rules.rs's documented table
// entry "Integer Decision Variable -> SATInt". It does not itself rewrite
// occurrences of the abstract reference into expressions over the concrete
// variables: that drilling (e.g. turning `t[1]` into a reference to
// tuple_to_atom's first element) is scheme- and site-specific (index position
// for tuple_to_atom, field name for record_to_atom, cell coordinates for
// matrix_to_atom) and is left to the flatten stage (C4/C6), which holds the
// chosen Representation and the access site together; this rule's job ends at
// selection plus declaration.
func selectRepresentation(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	ref, ok := expr.(*adt.Ref)
	if !ok || ref.Repr != nil {
		return Reduction{}, RuleNotApplicable
	}
	if _, ok := ref.Decl.(*adt.Var); !ok {
		return Reduction{}, RuleNotApplicable
	}

	candidates := represent.Candidates(ref.Name, symbols)
	if len(candidates) == 0 {
		return Reduction{}, RuleNotApplicable
	}

	chosen, ok := symbols.GetOrAddRepresentation(ref.Name, candidates, func(string) bool { return true })
	if !ok || len(chosen) == 0 {
		return Reduction{}, RuleNotApplicable
	}

	init, ok := represent.Get(chosen[0])
	if !ok {
		return Reduction{}, RuleNotApplicable
	}
	scheme, ok := init(ref.Name, symbols)
	if !ok {
		return Reduction{}, RuleNotApplicable
	}
	decls, err := scheme.DeclarationDown()
	if err != nil {
		return Reduction{}, RuleNotApplicable
	}

	newRef := *ref
	newRef.Repr = chosen
	return WithSymbols(&newRef, decls...), nil
}
