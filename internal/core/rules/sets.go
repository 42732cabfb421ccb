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

// The rule-set tree below mirrors original_source's conjure_rule_sets
// registrations scattered across rules/bubble.rs, rules/cnf.rs,
// sat/encoding_rules.rs, smt/unwrap_alldiff.rs, smt/bitvector_encoding.rs,
// constant_eval.rs and int_to_bool.rs: every named register_rule_set!
// call there becomes one RegisterSet here, with the same name and the
// same declared dependency edges.
func init() {
	RegisterSet(&RuleSet{Name: "base", Priority: 0})
	RegisterSet(&RuleSet{Name: "bubble", Priority: 254, Dependencies: []string{"base"}})
	RegisterSet(&RuleSet{Name: "constant", Priority: 0})
	RegisterSet(&RuleSet{Name: "minion", Priority: 100, Dependencies: []string{"base"}})
	RegisterSet(&RuleSet{Name: "cnf", Priority: 100, Dependencies: []string{"base"}})
	RegisterSet(&RuleSet{Name: "sat", Priority: 100, Dependencies: []string{"base"}})
	RegisterSet(&RuleSet{Name: "sat_direct", Priority: 0, Dependencies: []string{"sat"}})
	RegisterSet(&RuleSet{Name: "sat_order", Priority: 0, Dependencies: []string{"sat"}})
	RegisterSet(&RuleSet{Name: "sat_log", Priority: 0, Dependencies: []string{"sat"}})
	RegisterSet(&RuleSet{Name: "int_bool", Priority: 0, Dependencies: []string{"base", "cnf"}})
	RegisterSet(&RuleSet{Name: "smt_unwrap_alldiff", Priority: 0, Dependencies: []string{"base"}})
	RegisterSet(&RuleSet{Name: "smt_bv_ints", Priority: 0, Dependencies: []string{"base"}})
}
