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

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/errors"
)

// RuleSet names a named, prioritized collection of rules with declared
// dependencies on other rule sets, grounded on original_source's
// conjure_rule_sets::RuleSet (name/priority/dependencies triad).
type RuleSet struct {
	Name         string
	Priority     uint8
	Dependencies []string
}

var ruleSets = map[string]*RuleSet{}

// RegisterSet adds a rule set definition to the registry.
func RegisterSet(rs *RuleSet) {
	if _, exists := ruleSets[rs.Name]; exists {
		panic("rules: duplicate rule-set registration for " + rs.Name)
	}
	ruleSets[rs.Name] = rs
}

// LookupSet returns the rule set registered under name.
func LookupSet(name string) (*RuleSet, bool) {
	rs, ok := ruleSets[name]
	return rs, ok
}

// RulesIn returns every rule belonging to rs, ordered by the rule's
// priority within that set, then by name for determinism.
func RulesIn(rs *RuleSet) []*Rule {
	var out []*Rule
	for _, r := range All() {
		if _, ok := r.Sets[rs.Name]; ok {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Sets[rs.Name], out[j].Sets[rs.Name]
		if pi != pj {
			return pi < pj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Resolve computes the dependency-closed, topologically ordered list of
// rule-set names needed to satisfy requested. A genuine cycle among rule
// sets is not something to break heuristically, it is a hard
// RuleSetResolutionError, so plain Kahn's algorithm with a cycle check is
// the right-sized approach here.
func Resolve(requested []string) ([]string, error) {
	closure := map[string]*RuleSet{}
	var collect func(name string) error
	collect = func(name string) error {
		if _, ok := closure[name]; ok {
			return nil
		}
		rs, ok := LookupSet(name)
		if !ok {
			return errors.RuleSetResolutionErrorf("unknown rule set %q", name)
		}
		closure[name] = rs
		for _, dep := range rs.Dependencies {
			if err := collect(dep); err != nil {
				return err
			}
		}
		return nil
	}
	for _, name := range requested {
		if err := collect(name); err != nil {
			return nil, err
		}
	}

	indegree := map[string]int{}
	dependents := map[string][]string{}
	for name, rs := range closure {
		if _, ok := indegree[name]; !ok {
			indegree[name] = 0
		}
		for _, dep := range rs.Dependencies {
			indegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var ready []string
	for name := range closure {
		if indegree[name] == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	var order []string
	for len(ready) > 0 {
		sort.Strings(ready)
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		next := append([]string(nil), dependents[name]...)
		sort.Strings(next)
		for _, dep := range next {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) != len(closure) {
		return nil, errors.RuleSetResolutionErrorf("cyclic rule-set dependency among %v", requested)
	}
	return order, nil
}
