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

import "github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"

// Record captures one rule application during a Rewrite call, grounded on
// original_source's rule_engine::rewriter_common.rs::RuleResult and its
// log_rule_application (which logs the rule's name and rule sets, the
// matched expression, and the rewritten one). Rendering Before/After as
// text is left to package pretty (pretty.Trace); Record keeps the Expr
// values themselves so any renderer can use them.
type Record struct {
	Rule     string
	RuleSets map[string]uint8
	Before   adt.Expr
	After    adt.Expr
}

// Trace is the ordered list of rule applications a Rewrite performed.
type Trace []Record

// RuleNames returns the name of every applied rule, in application order.
func (t Trace) RuleNames() []string {
	names := make([]string, len(t))
	for i, r := range t {
		names[i] = r.Rule
	}
	return names
}
