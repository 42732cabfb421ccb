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

package smt

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
)

func abcModel() *adt.Model {
	symbols := adt.NewSymbolTable()
	dom := adt.IntDomain{Ranges: []adt.Range{adt.Bounded(1, 3)}}
	symbols.Insert(adt.NewVar(adt.UserName("x"), dom, adt.CategoryDecision))
	symbols.Insert(adt.NewVar(adt.UserName("y"), dom, adt.CategoryDecision))
	symbols.Insert(adt.NewVar(adt.UserName("z"), dom, adt.CategoryDecision))
	allDiff := adt.NewNary(adt.AllDiffOp,
		adt.NewRef(adt.UserName("x")), adt.NewRef(adt.UserName("y")), adt.NewRef(adt.UserName("z")))
	return adt.NewModel(adt.NewSubModel(symbols, adt.NewRoot(allDiff)), nil)
}

func TestSMTFindsAllDiffSolution(t *testing.T) {
	s := New()
	qt.Assert(t, qt.IsNil(s.LoadModel(abcModel())))

	var got map[string]adt.Literal
	stats, status, err := s.Solve(func(assignment map[string]adt.Literal) bool {
		got = assignment
		return false
	})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(status.Outcome(), solver.HasSolutions))
	qt.Assert(t, qt.IsTrue(stats.Satisfiable))
	x := got["x"].(adt.IntLit)
	y := got["y"].(adt.IntLit)
	z := got["z"].(adt.IntLit)
	qt.Assert(t, qt.IsTrue(x != y && y != z && x != z))
}

func TestSMTUnwrapAllDiffStillSatisfiable(t *testing.T) {
	s := NewWithTheory(TheoryConfig{Ints: Lia, UnwrapAllDiff: true})
	qt.Assert(t, qt.IsNil(s.LoadModel(abcModel())))

	found := false
	_, status, err := s.Solve(func(map[string]adt.Literal) bool {
		found = true
		return false
	})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(found))
	qt.Assert(t, qt.Equals(status.Outcome(), solver.HasSolutions))
}

func TestSMTUnsatReportsNoSolutions(t *testing.T) {
	symbols := adt.NewSymbolTable()
	dom := adt.IntDomain{Ranges: []adt.Range{adt.Single(1)}}
	symbols.Insert(adt.NewVar(adt.UserName("x"), dom, adt.CategoryDecision))
	contradiction := adt.NewBinary(adt.EqOp, adt.NewRef(adt.UserName("x")), adt.NewLit(adt.IntLit(2)))
	model := adt.NewModel(adt.NewSubModel(symbols, adt.NewRoot(contradiction)), nil)

	s := New()
	qt.Assert(t, qt.IsNil(s.LoadModel(model)))
	stats, status, err := s.Solve(func(map[string]adt.Literal) bool { return true })
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(status.Outcome(), solver.NoSolutions))
	qt.Assert(t, qt.IsFalse(stats.Satisfiable))
}

func TestSMTWriteSolverInputFileEmitsSMTLIB2(t *testing.T) {
	s := New()
	qt.Assert(t, qt.IsNil(s.LoadModel(abcModel())))
	var b strings.Builder
	qt.Assert(t, qt.IsNil(s.WriteSolverInputFile(&b)))
	out := b.String()
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "(set-logic QF_LIA)")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "(declare-const x Int)")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "distinct")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "(check-sat)")))
}

func TestSMTBitvectorTheoryDeclaresBitVecSort(t *testing.T) {
	s := NewWithTheory(TheoryConfig{Ints: Bv})
	qt.Assert(t, qt.IsNil(s.LoadModel(abcModel())))
	var b strings.Builder
	qt.Assert(t, qt.IsNil(s.WriteSolverInputFile(&b)))
	out := b.String()
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "QF_BV")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "BitVec")))
}

func TestSMTSolveMutReportsNotImplemented(t *testing.T) {
	s := New()
	qt.Assert(t, qt.IsNil(s.LoadModel(abcModel())))
	_, _, err := s.SolveMut(func(map[string]adt.Literal, solver.ModelModifier) bool { return true })
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Kind, solver.OpNotImplemented))
}

func TestSMTUnboundedDomainReportsFeatureNotImplemented(t *testing.T) {
	symbols := adt.NewSymbolTable()
	symbols.Insert(adt.NewVar(adt.UserName("x"), adt.IntDomain{Ranges: []adt.Range{adt.UnboundedR(0)}}, adt.CategoryDecision))
	model := adt.NewModel(adt.NewSubModel(symbols, adt.NewRoot()), nil)

	s := New()
	err := s.LoadModel(model)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Kind, solver.ModelFeatureNotImplemented))
}
