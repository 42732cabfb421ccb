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

package minion

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
)

// abcModel builds three decision variables x, y, z in 1..3, constrained by
// allDiff(x, y, z).
func abcModel() *adt.Model {
	symbols := adt.NewSymbolTable()
	dom := adt.IntDomain{Ranges: []adt.Range{adt.Bounded(1, 3)}}
	symbols.Insert(adt.NewVar(adt.UserName("x"), dom, adt.CategoryDecision))
	symbols.Insert(adt.NewVar(adt.UserName("y"), dom, adt.CategoryDecision))
	symbols.Insert(adt.NewVar(adt.UserName("z"), dom, adt.CategoryDecision))

	allDiff := adt.NewNary(adt.AllDiffOp,
		adt.NewRef(adt.UserName("x")), adt.NewRef(adt.UserName("y")), adt.NewRef(adt.UserName("z")))
	root := adt.NewRoot(allDiff)
	return adt.NewModel(adt.NewSubModel(symbols, root), nil)
}

func TestMinionFindsAllDiffSolution(t *testing.T) {
	m := New()
	err := m.LoadModel(abcModel())
	qt.Assert(t, qt.IsNil(err))

	var solutions []map[string]adt.Literal
	stats, status, serr := m.Solve(func(assignment map[string]adt.Literal) bool {
		cp := make(map[string]adt.Literal, len(assignment))
		for k, v := range assignment {
			cp[k] = v
		}
		solutions = append(solutions, cp)
		return false
	})
	qt.Assert(t, qt.IsNil(serr))
	qt.Assert(t, qt.IsTrue(status.Complete()))
	qt.Assert(t, qt.Equals(status.Outcome(), solver.HasSolutions))
	qt.Assert(t, qt.IsTrue(stats.SatisfiableOK))
	qt.Assert(t, qt.IsTrue(stats.Satisfiable))
	qt.Assert(t, qt.Equals(len(solutions), 1))

	x := solutions[0]["x"].(adt.IntLit)
	y := solutions[0]["y"].(adt.IntLit)
	z := solutions[0]["z"].(adt.IntLit)
	qt.Assert(t, qt.IsTrue(x != y && y != z && x != z))
}

func TestMinionDivisionByZeroReturnsRuntimeError(t *testing.T) {
	symbols := adt.NewSymbolTable()
	dom := adt.IntDomain{Ranges: []adt.Range{adt.Bounded(0, 1)}}
	symbols.Insert(adt.NewVar(adt.UserName("x"), dom, adt.CategoryDecision))
	div := adt.NewBinary(adt.DivOp, adt.NewLit(adt.IntLit(10)), adt.NewRef(adt.UserName("x")))
	nonZero := adt.NewBinary(adt.GtOp, div, adt.NewLit(adt.IntLit(0)))
	root := adt.NewRoot(nonZero)
	model := adt.NewModel(adt.NewSubModel(symbols, root), nil)

	m := New()
	qt.Assert(t, qt.IsNil(m.LoadModel(model)))
	_, _, err := m.Solve(func(map[string]adt.Literal) bool { return true })
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Kind, solver.Runtime))
}

func TestMinionUnsatisfiableReportsNoSolutions(t *testing.T) {
	symbols := adt.NewSymbolTable()
	dom := adt.IntDomain{Ranges: []adt.Range{adt.Single(1)}}
	symbols.Insert(adt.NewVar(adt.UserName("x"), dom, adt.CategoryDecision))
	contradiction := adt.NewBinary(adt.EqOp, adt.NewRef(adt.UserName("x")), adt.NewLit(adt.IntLit(2)))
	root := adt.NewRoot(contradiction)
	model := adt.NewModel(adt.NewSubModel(symbols, root), nil)

	m := New()
	qt.Assert(t, qt.IsNil(m.LoadModel(model)))
	stats, status, err := m.Solve(func(map[string]adt.Literal) bool { return true })
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(status.Outcome(), solver.NoSolutions))
	qt.Assert(t, qt.IsFalse(stats.Satisfiable))
}

func TestMinionWriteSolverInputFile(t *testing.T) {
	m := New()
	qt.Assert(t, qt.IsNil(m.LoadModel(abcModel())))
	var b strings.Builder
	qt.Assert(t, qt.IsNil(m.WriteSolverInputFile(&b)))
	out := b.String()
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "**VARIABLES**")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "DISCRETE x {1..3}")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "allDiff")))
}

func TestMinionUnboundedDomainReportsFeatureNotImplemented(t *testing.T) {
	symbols := adt.NewSymbolTable()
	symbols.Insert(adt.NewVar(adt.UserName("x"), adt.IntDomain{Ranges: []adt.Range{adt.UnboundedR(0)}}, adt.CategoryDecision))
	model := adt.NewModel(adt.NewSubModel(symbols, adt.NewRoot()), nil)

	m := New()
	err := m.LoadModel(model)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Kind, solver.ModelFeatureNotImplemented))
}
