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
	"testing"

	"github.com/go-quicktest/qt"
)

func TestResolveIncludesTransitiveDependencies(t *testing.T) {
	order, err := Resolve([]string{"minion"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(len(order) >= 2))

	pos := map[string]int{}
	for i, name := range order {
		pos[name] = i
	}
	_, hasBase := pos["base"]
	_, hasMinion := pos["minion"]
	qt.Assert(t, qt.IsTrue(hasBase))
	qt.Assert(t, qt.IsTrue(hasMinion))
	qt.Assert(t, qt.IsTrue(pos["base"] < pos["minion"]))
}

func TestResolveSatFamily(t *testing.T) {
	order, err := Resolve([]string{"sat_direct"})
	qt.Assert(t, qt.IsNil(err))
	pos := map[string]int{}
	for i, name := range order {
		pos[name] = i
	}
	qt.Assert(t, qt.IsTrue(pos["base"] < pos["sat"]))
	qt.Assert(t, qt.IsTrue(pos["sat"] < pos["sat_direct"]))
}

func TestResolveUnknownRuleSet(t *testing.T) {
	_, err := Resolve([]string{"does_not_exist"})
	qt.Assert(t, qt.IsNotNil(err))
}

func TestRulesInOrdersByPriorityThenName(t *testing.T) {
	rs, ok := LookupSet("base")
	qt.Assert(t, qt.IsTrue(ok))
	rules := RulesIn(rs)
	qt.Assert(t, qt.IsTrue(len(rules) > 1))
	for i := 1; i < len(rules); i++ {
		pi, pj := rules[i-1].Sets["base"], rules[i].Sets["base"]
		qt.Assert(t, qt.IsTrue(pi < pj || (pi == pj && rules[i-1].Name < rules[i].Name)))
	}
}

func TestAllRulesRegisteredAndLookupWorks(t *testing.T) {
	all := All()
	qt.Assert(t, qt.IsTrue(len(all) > 10))
	r, ok := Lookup("double_negation")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(r.Name, "double_negation"))
}
