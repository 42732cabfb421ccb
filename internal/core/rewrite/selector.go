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

package rewrite

import (
	"fmt"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rules"
)

// Candidate pairs a rule with the Reduction it produced at the engine's
// current focus.
type Candidate struct {
	Rule      *rules.Rule
	Reduction rules.Reduction
}

// Selector picks one Candidate out of several that all applied to the
// same node, grounded on original_source's tree_morph::helpers::SelectorFn
// (the engine calls it only when candidates has more than one entry,
// mirroring rewrite_morph.rs's "prop_multiple_equally_applicable" switch
// between select_first and select_panic). candidates is never empty.
type Selector func(candidates []Candidate) Candidate

// First returns the first candidate, i.e. the one belonging to the
// highest-priority (then alphabetically-first) rule, grounded on
// tree_morph::helpers::select_first and conjure_oxide's rewrite.rs::
// choose_rewrite ("Return the first result for now").
func First(candidates []Candidate) Candidate {
	return candidates[0]
}

// Panic requires exactly one candidate, panicking otherwise, grounded on
// tree_morph::helpers::select_panic: used to surface an unintentionally
// ambiguous rule set during development rather than silently picking a
// winner.
//
// TODO: tree_morph/src/helpers.rs leaves a "add more selection strategies
// (e.g. random, smallest subtree, ask the user for input)" TODO of its
// own; no such strategy has a concrete need yet here either.
func Panic(candidates []Candidate) Candidate {
	if len(candidates) > 1 {
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.Rule.Name
		}
		panic(fmt.Sprintf("rewrite: %d rules equally applicable at one node: %v", len(candidates), names))
	}
	return candidates[0]
}
