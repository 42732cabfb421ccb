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

import "sort"

var registry = map[string]*Rule{}

// Register adds rule to the global registry. Every rule file in this
// package calls Register from its own init() (the #[distributed_slice]
// linkme mechanism original_source uses has no Go equivalent; init()
// ordering within a package is unspecified but registration itself is
// commutative).
func Register(r *Rule) {
	if _, exists := registry[r.Name]; exists {
		panic("rules: duplicate registration for " + r.Name)
	}
	registry[r.Name] = r
}

// All returns every registered rule, sorted by name for determinism.
func All() []*Rule {
	out := make([]*Rule, 0, len(registry))
	for _, r := range registry {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the rule registered under name.
func Lookup(name string) (*Rule, bool) {
	r, ok := registry[name]
	return r, ok
}
