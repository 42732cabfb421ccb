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

// Package rules holds the rule library: named rewrite rules, grouped into
// priority-ordered rule sets gated by target solver family. It is grounded on
// original_source's conjure_core::rule_engine::rule (the
// Rule/Reduction/ApplicationError triad) and conjure_rule_sets::RuleSet
// (dependency-aware rule-set composition), ported from a distributed-slice
// (linkme) registration scheme to plain Go init registration, with every
// rule file registering itself via a blank-import-friendly init().
package rules

import (
	"fmt"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
)

// RuleNotApplicable is returned by a Rule's Apply when the rule's
// precondition does not hold for the given expression. It carries no
// diagnostic weight and is handled entirely inside the rewrite engine; it
// must never be wrapped into an errors.Error and surfaced to a caller.
var RuleNotApplicable = fmt.Errorf("rule not applicable")

// Reduction is what a successful rule application produces: the expression
// to substitute in place of the matched node, an optional top-level
// constraint to conjoin at the model root, and any new symbol-table
// declarations the rule introduced.
type Reduction struct {
	NewExpr    adt.Expr
	NewTop     adt.Expr // nil if no top-level constraint is added
	NewSymbols []adt.Declaration
}

// Pure wraps a Reduction with no side effects on the model.
func Pure(newExpr adt.Expr) Reduction { return Reduction{NewExpr: newExpr} }

// WithSymbols wraps a Reduction that also introduces new declarations.
func WithSymbols(newExpr adt.Expr, symbols ...adt.Declaration) Reduction {
	return Reduction{NewExpr: newExpr, NewSymbols: symbols}
}

// WithTop wraps a Reduction that also adds a top-level constraint.
func WithTop(newExpr, newTop adt.Expr) Reduction {
	return Reduction{NewExpr: newExpr, NewTop: newTop}
}

// Apply applies r to model: installs (or replaces, for a rule like
// substitute_domain_lettings that resolves an existing Var's domain in
// place) NewSymbols into symbols, and conjoins NewTop at the root if
// present.
func (r Reduction) Apply(symbols *adt.SymbolTable, root *adt.Root) *adt.Root {
	for _, d := range r.NewSymbols {
		symbols.UpdateInsert(d)
	}
	if r.NewTop == nil {
		return root
	}
	cp := *root
	cp.Constraints = append(append([]adt.Expr(nil), root.Constraints...), r.NewTop)
	return &cp
}

// ApplyFunc is a rule's matching/rewriting logic: given the candidate
// expression and the model's symbol table, it returns a Reduction, or
// RuleNotApplicable if the rule's precondition does not hold. It must
// never mutate expr or symbols in place.
type ApplyFunc func(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error)

// Rule pairs a name with its application function and the (name, priority)
// rule sets it belongs to.
type Rule struct {
	Name  string
	Apply ApplyFunc
	// Sets maps rule-set name to this rule's priority within that set;
	// lower priorities run first.
	Sets map[string]uint8
}

func (r *Rule) String() string { return r.Name }
