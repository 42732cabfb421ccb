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

package morph

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rcontext"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rewrite"
)

// buildModel wires up: And(not(not(x)), y) where y is a letting for 5. The
// not-not sits shallower in the tree than the letting reference, so
// package rewrite's flat, tree-position-first engine fires double_negation
// first; substitute_value_lettings (priority 5000) outranks double_negation
// (priority 8900) in the "base" rule set, so morph's group-at-a-time
// engine must fire it first instead, however deep it sits.
func buildModel() *adt.Model {
	symbols := adt.NewSymbolTable()
	symbols.Insert(adt.NewVar(adt.UserName("x"), adt.BoolDomain{}, adt.CategoryDecision))
	letting := adt.NewValueLetting(adt.UserName("y"), adt.NewLit(adt.IntLit(5)))
	symbols.Insert(letting)

	notNot := adt.NewUnary(adt.NotOp, adt.NewUnary(adt.NotOp, adt.NewRef(adt.UserName("x"))))
	y := adt.NewRef(adt.UserName("y"))
	y.Decl = letting

	root := adt.NewRoot(adt.NewNary(adt.AndOp, notNot, y))
	return adt.NewModel(adt.NewSubModel(symbols, root), rcontext.New("minion", "base"))
}

func TestMorphRunsHigherPriorityGroupFirst(t *testing.T) {
	e, err := NewEngine([]string{"base"}, rewrite.First)
	qt.Assert(t, qt.IsNil(err))

	_, trace, err := e.Rewrite(buildModel())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(len(trace) >= 2))
	qt.Assert(t, qt.Equals(trace[0].Rule, "substitute_value_lettings"))

	sawDoubleNegation := false
	for _, rec := range trace {
		if rec.Rule == "double_negation" {
			sawDoubleNegation = true
		}
	}
	qt.Assert(t, qt.IsTrue(sawDoubleNegation))
}

func TestMorphGroupsByPriorityAscending(t *testing.T) {
	e, err := NewEngine([]string{"base"}, rewrite.First)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(len(e.groups) > 1))
	for i := 1; i < len(e.groups); i++ {
		pi := e.groups[i-1][0].Sets["base"]
		pj := e.groups[i][0].Sets["base"]
		qt.Assert(t, qt.IsTrue(pi < pj))
	}
}

func TestMorphRewriteReachesFixedPoint(t *testing.T) {
	e, err := NewEngine([]string{"base"}, rewrite.First)
	qt.Assert(t, qt.IsNil(err))

	out, _, err := e.Rewrite(buildModel())
	qt.Assert(t, qt.IsNil(err))

	root, ok := out.RootExpr()
	qt.Assert(t, qt.IsTrue(ok))
	n, ok := root.Constraints[0].(*adt.Nary)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(n.Op, adt.AndOp))

	first, ok := n.Args[0].(*adt.Ref)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(first.Name, adt.Name(adt.UserName("x"))))

	second, ok := n.Args[1].(*adt.Lit)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(second.Value, adt.Literal(adt.IntLit(5))))
}

func TestNewEngineUnknownRuleSet(t *testing.T) {
	_, err := NewEngine([]string{"does_not_exist"}, rewrite.First)
	qt.Assert(t, qt.IsNotNil(err))
}
