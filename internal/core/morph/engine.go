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

// Package morph is an alternate rewrite engine over the same package rules
// library, grounded on original_source's rule_engine::rewrite_morph and
// crates/tree-morph's priority-grouped engine (EngineBuilder.
// append_rule_groups, exercised by tree-morph/tests/rule_groups.rs).
//
// Package rewrite interleaves every resolved rule into one priority-sorted
// list and fires whichever rule is first to match in pre-order tree
// position (conjure_oxide's rewrite.rs::rewrite_iteration has no priority
// grouping at all; this module's sibling package rewrite keeps that same
// shallow-first behavior). morph instead buckets rules by priority and
// runs one bucket to a full fixed point across the *entire* tree before
// moving to the next: tree-morph/tests/rule_groups.rs::a_to_b_first shows
// a higher-priority rule reaching into a node nested below a matching
// lower-priority one and firing first. Two engines exist because the
// pack itself ships two (rewrite.rs's naive version alongside
// rewrite_morph.rs's). rcontext.EngineKind records which one a Context
// names, but the CLI always runs package rewrite's engine; morph is not
// called from it.
//
// tree-morph's own Commands type (arbitrary queued whole-tree transforms
// plus a mutable side channel) has no counterpart here: every rule in
// this codebase only ever produces a Reduction's two effects (a top-level
// constraint, new symbol-table entries), which rules.Reduction.Apply
// already models directly, so there is nothing left for a general command
// queue to carry.
package morph

import (
	"sort"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/errors"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rewrite"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rules"
)

// Engine rewrites a Model one priority group at a time.
type Engine struct {
	// groups is ordered ascending by priority (lowest first, matching
	// rules.Rule.Sets's "lower priorities run first"); each inner slice
	// is sorted by name for determinism.
	groups   [][]*rules.Rule
	selector rewrite.Selector
}

// NewEngine resolves ruleSetNames (and transitive dependencies) exactly as
// rewrite.NewEngine does, but groups the resulting rules by priority
// instead of flattening them into one list. A rule belonging to more than
// one resolved rule set is grouped under the lowest priority it holds
// across them, since that is the earliest point at which some resolved
// set wants it to run.
func NewEngine(ruleSetNames []string, selector rewrite.Selector) (*Engine, error) {
	order, err := rules.Resolve(ruleSetNames)
	if err != nil {
		return nil, err
	}

	byName := map[string]*rules.Rule{}
	priority := map[string]int{}
	for _, setName := range order {
		rs, ok := rules.LookupSet(setName)
		if !ok {
			errors.Bug("morph: resolved rule set %q not registered", setName)
		}
		for _, r := range rules.RulesIn(rs) {
			byName[r.Name] = r
			p := int(r.Sets[setName])
			if cur, seen := priority[r.Name]; !seen || p < cur {
				priority[r.Name] = p
			}
		}
	}

	bucket := map[int][]*rules.Rule{}
	for name, p := range priority {
		bucket[p] = append(bucket[p], byName[name])
	}
	levels := make([]int, 0, len(bucket))
	for p := range bucket {
		levels = append(levels, p)
	}
	sort.Ints(levels)

	groups := make([][]*rules.Rule, len(levels))
	for i, p := range levels {
		rs := bucket[p]
		sort.Slice(rs, func(a, b int) bool { return rs[a].Name < rs[b].Name })
		groups[i] = rs
	}

	if selector == nil {
		selector = rewrite.First
	}
	return &Engine{groups: groups, selector: selector}, nil
}

// Rewrite runs each priority group to a fixed point over the whole tree,
// in ascending priority order, before moving to the next group.
func (e *Engine) Rewrite(model *adt.Model) (*adt.Model, rewrite.Trace, error) {
	root, ok := model.Sub.Root.(*adt.Root)
	if !ok {
		return nil, nil, errors.ModelInvalid("morph: model root is not a Root node")
	}
	symbols := model.Sub.Symbols

	var trace rewrite.Trace
	for _, group := range e.groups {
		for {
			z := rewrite.NewZipper(root)
			cands, found := firstApplicable(z, symbols, group)
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
				errors.Bug("morph: rebuilt root is not a Root node (got %T)", rebuilt)
			}
			root = chosen.Reduction.Apply(symbols, newRoot)

			trace = append(trace, rewrite.Record{
				Rule:     chosen.Rule.Name,
				RuleSets: chosen.Rule.Sets,
				Before:   before,
				After:    chosen.Reduction.NewExpr,
			})
		}
	}

	return adt.NewModel(adt.NewSubModel(symbols, root), model.Context), trace, nil
}

// firstApplicable walks z in pre-order looking for a node any rule in
// group applies to, returning every matching Candidate there.
func firstApplicable(z *rewrite.Zipper, symbols *adt.SymbolTable, group []*rules.Rule) ([]rewrite.Candidate, bool) {
	for {
		if cands := applyAll(z.Focus(), symbols, group); len(cands) > 0 {
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

func applyAll(expr adt.Expr, symbols *adt.SymbolTable, group []*rules.Rule) []rewrite.Candidate {
	var out []rewrite.Candidate
	for _, r := range group {
		red, err := r.Apply(expr, symbols)
		if err != nil {
			continue
		}
		out = append(out, rewrite.Candidate{Rule: r, Reduction: red})
	}
	return out
}
