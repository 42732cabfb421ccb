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

package sat

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
)

func boolModel(constraints ...adt.Expr) *adt.Model {
	symbols := adt.NewSymbolTable()
	symbols.Insert(adt.NewVar(adt.UserName("x"), adt.BoolDomain{}, adt.CategoryDecision))
	symbols.Insert(adt.NewVar(adt.UserName("y"), adt.BoolDomain{}, adt.CategoryDecision))
	return adt.NewModel(adt.NewSubModel(symbols, adt.NewRoot(constraints...)), nil)
}

func TestSATFindsSatisfyingAssignment(t *testing.T) {
	x := adt.NewRef(adt.UserName("x"))
	y := adt.NewRef(adt.UserName("y"))
	model := boolModel(adt.NewNary(adt.OrOp, x, y), adt.NewUnary(adt.NotOp, y))

	s := New()
	qt.Assert(t, qt.IsNil(s.LoadModel(model)))

	var got map[string]adt.Literal
	stats, status, err := s.Solve(func(assignment map[string]adt.Literal) bool {
		got = assignment
		return false
	})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(status.Outcome(), solver.HasSolutions))
	qt.Assert(t, qt.IsTrue(stats.Satisfiable))
	qt.Assert(t, qt.Equals(got["x"], adt.Literal(adt.BoolLit(true))))
	qt.Assert(t, qt.Equals(got["y"], adt.Literal(adt.BoolLit(false))))
}

func TestSATUnsatReportsNoSolutions(t *testing.T) {
	x := adt.NewRef(adt.UserName("x"))
	model := boolModel(x, adt.NewUnary(adt.NotOp, x))

	s := New()
	qt.Assert(t, qt.IsNil(s.LoadModel(model)))
	stats, status, err := s.Solve(func(map[string]adt.Literal) bool { return true })
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(status.Outcome(), solver.NoSolutions))
	qt.Assert(t, qt.IsFalse(stats.Satisfiable))
}

func TestSATEnumeratesDistinctSolutions(t *testing.T) {
	x := adt.NewRef(adt.UserName("x"))
	y := adt.NewRef(adt.UserName("y"))
	model := boolModel(adt.NewNary(adt.OrOp, x, y))

	s := New()
	qt.Assert(t, qt.IsNil(s.LoadModel(model)))

	var seen []map[string]adt.Literal
	_, _, err := s.Solve(func(assignment map[string]adt.Literal) bool {
		cp := make(map[string]adt.Literal, len(assignment))
		for k, v := range assignment {
			cp[k] = v
		}
		seen = append(seen, cp)
		return len(seen) < 3
	})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(len(seen), 3))
	for i := 0; i < len(seen); i++ {
		for j := i + 1; j < len(seen); j++ {
			qt.Assert(t, qt.IsFalse(seen[i]["x"] == seen[j]["x"] && seen[i]["y"] == seen[j]["y"]))
		}
	}
}

func TestSATWriteSolverInputFileEmitsDIMACS(t *testing.T) {
	x := adt.NewRef(adt.UserName("x"))
	model := boolModel(x)
	s := New()
	qt.Assert(t, qt.IsNil(s.LoadModel(model)))

	var b strings.Builder
	qt.Assert(t, qt.IsNil(s.WriteSolverInputFile(&b)))
	out := b.String()
	qt.Assert(t, qt.IsTrue(strings.HasPrefix(out, "p cnf ")))
	qt.Assert(t, qt.IsTrue(strings.Contains(out, "c 1 x")))
}

func TestSATSolveMutNotSupported(t *testing.T) {
	s := New()
	qt.Assert(t, qt.IsNil(s.LoadModel(boolModel())))
	_, _, err := s.SolveMut(func(map[string]adt.Literal, solver.ModelModifier) bool { return true })
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Kind, solver.OpNotSupported))
}
