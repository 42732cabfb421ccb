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
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rcontext"
)

func newBoolModel(constraint adt.Expr) *adt.Model {
	symbols := adt.NewSymbolTable()
	symbols.Insert(adt.NewVar("x", adt.BoolDomain{}, adt.CategoryDecision))
	return adt.NewModel(adt.NewSubModel(symbols, adt.NewRoot(constraint)), rcontext.New("minion", "base"))
}

func TestRewriteAppliesDoubleNegationOnce(t *testing.T) {
	x := adt.NewRef(adt.UserName("x"))
	model := newBoolModel(adt.NewUnary(adt.NotOp, adt.NewUnary(adt.NotOp, x)))

	e, err := NewEngine([]string{"base"}, First)
	qt.Assert(t, qt.IsNil(err))

	out, trace, err := e.Rewrite(model)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(trace.RuleNames(), []string{"double_negation"}))

	root, ok := out.RootExpr()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(len(root.Constraints), 1))
	ref, ok := root.Constraints[0].(*adt.Ref)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(ref.Name, adt.Name(adt.UserName("x"))))
}

func TestRewriteRunsToFixedPoint(t *testing.T) {
	x := adt.NewRef(adt.UserName("x"))
	quad := adt.NewUnary(adt.NotOp, adt.NewUnary(adt.NotOp, adt.NewUnary(adt.NotOp, adt.NewUnary(adt.NotOp, x))))
	model := newBoolModel(quad)

	e, err := NewEngine([]string{"base"}, First)
	qt.Assert(t, qt.IsNil(err))

	out, trace, err := e.Rewrite(model)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(trace.RuleNames(), []string{"double_negation", "double_negation"}))

	root, ok := out.RootExpr()
	qt.Assert(t, qt.IsTrue(ok))
	ref, ok := root.Constraints[0].(*adt.Ref)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(ref.Name, adt.Name(adt.UserName("x"))))
}

func TestRewriteNoApplicableRuleLeavesModelUnchanged(t *testing.T) {
	x := adt.NewRef(adt.UserName("x"))
	model := newBoolModel(x)

	e, err := NewEngine([]string{"base"}, First)
	qt.Assert(t, qt.IsNil(err))

	out, trace, err := e.Rewrite(model)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(trace), 0))

	root, ok := out.RootExpr()
	qt.Assert(t, qt.IsTrue(ok))
	ref, ok := root.Constraints[0].(*adt.Ref)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(ref.Name, adt.Name(adt.UserName("x"))))
}

func TestRewriteDescendsIntoNestedConstraint(t *testing.T) {
	x := adt.NewRef(adt.UserName("x"))
	notNot := adt.NewUnary(adt.NotOp, adt.NewUnary(adt.NotOp, x))
	wrapped := adt.NewNary(adt.AndOp, notNot, x)
	model := newBoolModel(wrapped)

	e, err := NewEngine([]string{"base"}, First)
	qt.Assert(t, qt.IsNil(err))

	out, trace, err := e.Rewrite(model)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(len(trace) >= 1))
	qt.Assert(t, qt.Equals(trace[0].Rule, "double_negation"))

	root, ok := out.RootExpr()
	qt.Assert(t, qt.IsTrue(ok))
	n, ok := root.Constraints[0].(*adt.Nary)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(n.Op, adt.AndOp)) // flattening may still have more to do, but double negation already resolved
	first, ok := n.Args[0].(*adt.Ref)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(first.Name, adt.Name(adt.UserName("x"))))
}

func TestNewEngineUnknownRuleSet(t *testing.T) {
	_, err := NewEngine([]string{"does_not_exist"}, First)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestNewEngineDefaultsToFirstSelector(t *testing.T) {
	e, err := NewEngine([]string{"base"}, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNotNil(e.selector))
}
