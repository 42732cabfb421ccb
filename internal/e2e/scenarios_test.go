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

// Package e2e runs the six end-to-end scenarios/sat adaptors together rather
// than any one package in isolation.
package e2e

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rewrite"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rules"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver/adaptors/minion"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver/adaptors/sat"
)

func ref(name string) *adt.Ref { return adt.NewRef(adt.UserName(name)) }

func rewriteWith(t *testing.T, model *adt.Model, ruleSetNames []string) (*adt.Model, rewrite.Trace) {
	t.Helper()
	resolved, err := rules.Resolve(ruleSetNames)
	qt.Assert(t, qt.IsNil(err))
	engine, err := rewrite.NewEngine(resolved, rewrite.First)
	qt.Assert(t, qt.IsNil(err))
	rewritten, trace, err := engine.Rewrite(model)
	qt.Assert(t, qt.IsNil(err))
	return rewritten, trace
}

func solveAll(t *testing.T, adaptor solver.SolverAdaptor, model *adt.Model) []map[string]adt.Literal {
	t.Helper()
	s := solver.New(adaptor)
	loaded, err := solver.LoadModel(s, model)
	qt.Assert(t, qt.IsNil(err))
	var solutions []map[string]adt.Literal
	_, failure := solver.Solve(loaded, func(assignment map[string]adt.Literal) bool {
		cp := make(map[string]adt.Literal, len(assignment))
		for k, v := range assignment {
			cp[k] = v
		}
		solutions = append(solutions, cp)
		return true
	})
	qt.Assert(t, qt.IsNil(failure))
	return solutions
}

// TestScenarioABC: a,b,c : int(1..3), a+b+c=4 ∧ a≥b. Expected 5 solutions
// with Minion.
func TestScenarioABC(t *testing.T) {
	symbols := adt.NewSymbolTable()
	dom := adt.IntDomain{Ranges: []adt.Range{adt.Bounded(1, 3)}}
	for _, name := range []string{"a", "b", "c"} {
		symbols.Insert(adt.NewVar(adt.UserName(name), dom, adt.CategoryDecision))
	}
	sum := adt.NewNary(adt.SumOp, ref("a"), ref("b"), ref("c"))
	sumEq4 := adt.NewBinary(adt.EqOp, sum, adt.NewLit(adt.IntLit(4)))
	aGeqB := adt.NewBinary(adt.GeqOp, ref("a"), ref("b"))
	root := adt.NewRoot(sumEq4, aGeqB)
	model := adt.NewModel(adt.NewSubModel(symbols, root), nil)

	rewritten, _ := rewriteWith(t, model, []string{"minion"})
	solutions := solveAll(t, minion.New(), rewritten)
	qt.Assert(t, qt.HasLen(solutions, 5))
}

// TestScenarioDivisionByZero: a,b,c : int(0..3), a/b=c. After rewriting
// with the "bubble" rule set, a Bubble guarding b≠0 must appear in the
// tree.
func TestScenarioDivisionByZero(t *testing.T) {
	symbols := adt.NewSymbolTable()
	dom := adt.IntDomain{Ranges: []adt.Range{adt.Bounded(0, 3)}}
	for _, name := range []string{"a", "b", "c"} {
		symbols.Insert(adt.NewVar(adt.UserName(name), dom, adt.CategoryDecision))
	}
	div := adt.NewBinary(adt.DivOp, ref("a"), ref("b"))
	eq := adt.NewBinary(adt.EqOp, div, ref("c"))
	root := adt.NewRoot(eq)
	model := adt.NewModel(adt.NewSubModel(symbols, root), nil)

	rewritten, _ := rewriteWith(t, model, []string{"base", "bubble"})
	root2, ok := rewritten.RootExpr()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(containsNonzeroGuard(root2, "b")))
}

func containsNonzeroGuard(e adt.Expr, varName string) bool {
	if b, ok := e.(*adt.Bubble); ok {
		if isNonzeroGuard(b.Condition, varName) {
			return true
		}
	}
	for _, child := range e.Children() {
		if containsNonzeroGuard(child, varName) {
			return true
		}
	}
	return false
}

func isNonzeroGuard(e adt.Expr, varName string) bool {
	bin, ok := e.(*adt.Binary)
	if !ok || bin.Op != adt.NeqOp {
		return false
	}
	r, ok := bin.X.(*adt.Ref)
	if !ok {
		r, ok = bin.Y.(*adt.Ref)
	}
	return ok && r.Name.String() == varName
}

// TestScenarioAllDifferentOnMatrix: four int(1..4) decision variables
// standing in for a 4-cell matrix, constrained by allDiff. Expected 24
// solutions (4!).
func TestScenarioAllDifferentOnMatrix(t *testing.T) {
	symbols := adt.NewSymbolTable()
	dom := adt.IntDomain{Ranges: []adt.Range{adt.Bounded(1, 4)}}
	names := []string{"x1", "x2", "x3", "x4"}
	args := make([]adt.Expr, len(names))
	for i, name := range names {
		symbols.Insert(adt.NewVar(adt.UserName(name), dom, adt.CategoryDecision))
		args[i] = ref(name)
	}
	allDiff := adt.NewNary(adt.AllDiffOp, args...)
	root := adt.NewRoot(allDiff)
	model := adt.NewModel(adt.NewSubModel(symbols, root), nil)

	rewritten, _ := rewriteWith(t, model, []string{"minion"})
	solutions := solveAll(t, minion.New(), rewritten)
	qt.Assert(t, qt.HasLen(solutions, 24))
}

// TestScenarioNegativeTable: 3 boolean variables excluding all-zeros and
// all-ones. Expected 6 solutions.
func TestScenarioNegativeTable(t *testing.T) {
	symbols := adt.NewSymbolTable()
	for _, name := range []string{"p", "q", "r"} {
		symbols.Insert(adt.NewVar(adt.UserName(name), adt.BoolDomain{}, adt.CategoryDecision))
	}
	allFalse := adt.NewNary(adt.AndOp,
		adt.NewUnary(adt.NotOp, ref("p")), adt.NewUnary(adt.NotOp, ref("q")), adt.NewUnary(adt.NotOp, ref("r")))
	allTrue := adt.NewNary(adt.AndOp, ref("p"), ref("q"), ref("r"))
	excludeBoth := adt.NewNary(adt.AndOp,
		adt.NewUnary(adt.NotOp, allFalse), adt.NewUnary(adt.NotOp, allTrue))
	root := adt.NewRoot(excludeBoth)
	model := adt.NewModel(adt.NewSubModel(symbols, root), nil)

	rewritten, _ := rewriteWith(t, model, []string{"minion"})
	solutions := solveAll(t, minion.New(), rewritten)
	qt.Assert(t, qt.HasLen(solutions, 6))
}

// TestScenarioWeightedSum: 2·x + 3·x + y reduces to 5·x + y by
// collect_like_terms; the rewrite trace must name the rule.
func TestScenarioWeightedSum(t *testing.T) {
	symbols := adt.NewSymbolTable()
	dom := adt.IntDomain{Ranges: []adt.Range{adt.Bounded(0, 10)}}
	symbols.Insert(adt.NewVar(adt.UserName("x"), dom, adt.CategoryDecision))
	symbols.Insert(adt.NewVar(adt.UserName("y"), dom, adt.CategoryDecision))

	term1 := adt.NewNary(adt.ProductOp, adt.NewLit(adt.IntLit(2)), ref("x"))
	term2 := adt.NewNary(adt.ProductOp, adt.NewLit(adt.IntLit(3)), ref("x"))
	sum := adt.NewNary(adt.SumOp, term1, term2, ref("y"))
	eq := adt.NewBinary(adt.EqOp, sum, adt.NewLit(adt.IntLit(7)))
	root := adt.NewRoot(eq)
	model := adt.NewModel(adt.NewSubModel(symbols, root), nil)

	_, trace := rewriteWith(t, model, []string{"base"})
	names := trace.RuleNames()
	found := false
	for _, n := range names {
		if n == "collect_like_terms" {
			found = true
		}
	}
	qt.Assert(t, qt.IsTrue(found))
}

// TestScenarioSATEncodingParity: a boolean formula solved via Minion and
// via SAT must yield the same solution set.
func TestScenarioSATEncodingParity(t *testing.T) {
	buildModel := func() *adt.Model {
		symbols := adt.NewSymbolTable()
		for _, name := range []string{"p", "q"} {
			symbols.Insert(adt.NewVar(adt.UserName(name), adt.BoolDomain{}, adt.CategoryDecision))
		}
		formula := adt.NewBinary(adt.ImplyOp, ref("p"), ref("q"))
		root := adt.NewRoot(formula)
		return adt.NewModel(adt.NewSubModel(symbols, root), nil)
	}

	minionModel, _ := rewriteWith(t, buildModel(), []string{"minion"})
	minionSolutions := solveAll(t, minion.New(), minionModel)

	satModel, _ := rewriteWith(t, buildModel(), []string{"sat", "sat_direct"})
	satSolutions := solveAll(t, sat.New(), satModel)

	qt.Assert(t, qt.Equals(assignmentSet(minionSolutions), assignmentSet(satSolutions)))
}

func assignmentSet(solutions []map[string]adt.Literal) string {
	keys := make([]string, len(solutions))
	for i, sol := range solutions {
		names := make([]string, 0, len(sol))
		for name := range sol {
			names = append(names, name)
		}
		sortStrings(names)
		s := ""
		for _, name := range names {
			s += name + "=" + sol[name].String() + ";"
		}
		keys[i] = s
	}
	sortStrings(keys)
	out := ""
	for _, k := range keys {
		out += k + "|"
	}
	return out
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
