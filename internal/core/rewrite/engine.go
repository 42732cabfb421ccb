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

// Package rewrite applies the package rules rule library to a model until
// no rule applies anywhere in it, grounded on original_source's
// conjure_oxide/src/rewrite.rs naive rewriter. It walks the expression tree
// with a Zipper rather than rewrite.rs's recursive-on-&Expression approach,
// since Go has no persistent-slice sub-expression borrowing to lean on; the
// traversal order (node itself, then leftmost child first) and stop-at-first-
// match semantics match rewrite_iteration exactly.
package rewrite

import (
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/errors"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rules"
)

// Engine rewrites a Model to a fixed point using a fixed, priority-ordered
// rule list, grounded on rewrite.rs::rewrite_model plus rewrite_morph.rs's
// flattening of rule sets into priority-ordered groups (get_rules_grouped).
type Engine struct {
	rules    []*rules.Rule
	selector Selector
}

// NewEngine resolves ruleSetNames (and their transitive dependencies, via
// rules.Resolve) into one priority-ordered, deduplicated rule list. select
// chooses which rule wins when more than one applies at the same node; pass
// First for production.
func NewEngine(ruleSetNames []string, select_ Selector) (*Engine, error) {
	order, err := rules.Resolve(ruleSetNames)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var flat []*rules.Rule
	for _, name := range order {
		rs, ok := rules.LookupSet(name)
		if !ok {
			errors.Bug("rewrite: resolved rule set %q not registered", name)
		}
		for _, r := range rules.RulesIn(rs) {
			if seen[r.Name] {
				continue
			}
			seen[r.Name] = true
			flat = append(flat, r)
		}
	}
	if select_ == nil {
		select_ = First
	}
	return &Engine{rules: flat, selector: select_}, nil
}

// Rewrite applies rules to model until none applies anywhere in it,
// returning the rewritten model and a trace of every rule application.
// model.Sub.Root must be a *adt.Root; Rewrite does not mutate model, it
// returns a new one.
func (e *Engine) Rewrite(model *adt.Model) (*adt.Model, Trace, error) {
	root, ok := model.Sub.Root.(*adt.Root)
	if !ok {
		return nil, nil, errors.ModelInvalid("rewrite: model root is not a Root node")
	}
	symbols := model.Sub.Symbols

	var trace Trace
	for {
		z := NewZipper(root)
		cands, found := e.firstApplicable(z, symbols)
		if !found {
			break
		}
		chosen := cands[0]
		if len(cands) > 1 {
			chosen = e.selector(cands)
		}

		before := z.Focus()
		z.Replace(chosen.Reduction.NewExpr)
		rebuilt := z.RebuildRoot()
		newRoot, ok := rebuilt.(*adt.Root)
		if !ok {
			errors.Bug("rewrite: rebuilt root is not a Root node (got %T)", rebuilt)
		}
		root = chosen.Reduction.Apply(symbols, newRoot)

		trace = append(trace, Record{
			Rule:     chosen.Rule.Name,
			RuleSets: chosen.Rule.Sets,
			Before:   before,
			After:    chosen.Reduction.NewExpr,
		})
	}

	return adt.NewModel(adt.NewSubModel(symbols, root), model.Context), trace, nil
}

// firstApplicable walks z in pre-order (focus first, then leftmost child)
// until it finds a node at least one rule applies to, returning every
// matching Candidate at that node (for the Selector to choose among) or
// found=false if no node in the tree has an applicable rule.
func (e *Engine) firstApplicable(z *Zipper, symbols *adt.SymbolTable) ([]Candidate, bool) {
	for {
		if cands := e.applyAll(z.Focus(), symbols); len(cands) > 0 {
			return cands, true
		}
		if z.Down() {
			continue
		}
		for !z.Right() {
			if !z.Up() {
				return nil, false
			}
		}
	}
}

// applyAll runs every rule in e.rules against expr, in priority order,
// collecting every one that applies (RuleNotApplicable is swallowed;
// any other error is treated the same way, since a malformed expression
// shouldn't abort the whole rewrite (a future diagnostics pass can
// surface it separately).
func (e *Engine) applyAll(expr adt.Expr, symbols *adt.SymbolTable) []Candidate {
	var out []Candidate
	for _, r := range e.rules {
		red, err := r.Apply(expr, symbols)
		if err != nil {
			continue
		}
		out = append(out, Candidate{Rule: r, Reduction: red})
	}
	return out
}
