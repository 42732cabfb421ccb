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

package solver

import (
	"io"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
)

// fakeAdaptor is a minimal in-memory SolverAdaptor used to exercise the
// typestate transitions without any real backend.
type fakeAdaptor struct {
	loaded     bool
	failSolve  bool
	assignment map[string]adt.Literal
}

func (a *fakeAdaptor) LoadModel(model *adt.Model) *Error {
	if model == nil {
		return InvalidModel("no model given")
	}
	a.loaded = true
	return nil
}

func (a *fakeAdaptor) Solve(callback Callback) (SolveStats, SearchStatus, *Error) {
	if !a.loaded {
		return SolveStats{}, SearchStatus{}, InvalidModel("no model loaded")
	}
	if a.failSolve {
		return SolveStats{}, SearchStatus{}, RuntimeError("fake backend exploded")
	}
	callback(a.assignment)
	return SolveStats{SearchNodes: 1, Satisfiable: true, SatisfiableOK: true}, Done(HasSolutions), nil
}

func (a *fakeAdaptor) SolveMut(callback MutCallback) (SolveStats, SearchStatus, *Error) {
	return SolveStats{}, SearchStatus{}, NotSupported("solve_mut")
}

func (a *fakeAdaptor) Family() string { return "fake" }

func (a *fakeAdaptor) WriteSolverInputFile(w io.Writer) *Error {
	_, err := io.WriteString(w, "fake instance\n")
	if err != nil {
		return RuntimeError("%s", err)
	}
	return nil
}

func TestLoadModelTransitionsToModelLoaded(t *testing.T) {
	s := New(&fakeAdaptor{})
	loaded, err := LoadModel(s, adt.NewModel(adt.NewSubModel(adt.NewSymbolTable(), adt.NewRoot()), nil))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(loaded.Family(), "fake"))
}

func TestLoadModelPropagatesAdaptorError(t *testing.T) {
	s := New(&fakeAdaptor{})
	_, err := LoadModel(s, nil)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(err.Kind, ModelInvalid))
}

func TestSolveReturnsExecutionSuccessWithAssignment(t *testing.T) {
	x := adt.UserName("x")
	adaptor := &fakeAdaptor{assignment: map[string]adt.Literal{x.String(): adt.IntLit(4)}}
	s := New(adaptor)
	loaded, err := LoadModel(s, adt.NewModel(adt.NewSubModel(adt.NewSymbolTable(), adt.NewRoot()), nil))
	qt.Assert(t, qt.IsNil(err))

	var seen map[string]adt.Literal
	success, failure := Solve(loaded, func(assignment map[string]adt.Literal) bool {
		seen = assignment
		return false
	})
	qt.Assert(t, qt.IsNil(failure))
	qt.Assert(t, qt.IsNotNil(success))
	qt.Assert(t, qt.Equals(success.State().Status.Outcome(), HasSolutions))
	qt.Assert(t, qt.Equals(success.State().Stats.SearchNodes, int64(1)))
	lit, ok := seen["x"]
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(lit, adt.Literal(adt.IntLit(4))))
}

func TestSolveReturnsExecutionFailureOnAdaptorError(t *testing.T) {
	adaptor := &fakeAdaptor{failSolve: true}
	s := New(adaptor)
	loaded, err := LoadModel(s, adt.NewModel(adt.NewSubModel(adt.NewSymbolTable(), adt.NewRoot()), nil))
	qt.Assert(t, qt.IsNil(err))

	success, failure := Solve(loaded, func(map[string]adt.Literal) bool { return true })
	qt.Assert(t, qt.IsNil(success))
	qt.Assert(t, qt.IsNotNil(failure))
	qt.Assert(t, qt.Equals(failure.State().Why.Kind, Runtime))
}

func TestSolveMutNotSupportedByFakeAdaptor(t *testing.T) {
	adaptor := &fakeAdaptor{}
	s := New(adaptor)
	loaded, err := LoadModel(s, adt.NewModel(adt.NewSubModel(adt.NewSymbolTable(), adt.NewRoot()), nil))
	qt.Assert(t, qt.IsNil(err))

	success, failure := SolveMut(loaded, func(map[string]adt.Literal, ModelModifier) bool { return true })
	qt.Assert(t, qt.IsNil(success))
	qt.Assert(t, qt.IsNotNil(failure))
	qt.Assert(t, qt.Equals(failure.State().Why.Kind, OpNotSupported))
}

func TestRetryReturnsToModelLoaded(t *testing.T) {
	adaptor := &fakeAdaptor{failSolve: true}
	s := New(adaptor)
	loaded, _ := LoadModel(s, adt.NewModel(adt.NewSubModel(adt.NewSymbolTable(), adt.NewRoot()), nil))
	_, failure := Solve(loaded, func(map[string]adt.Literal) bool { return true })
	qt.Assert(t, qt.IsNotNil(failure))

	adaptor.failSolve = false
	adaptor.assignment = map[string]adt.Literal{}
	retried := Retry(failure)
	success, failure2 := Solve(retried, func(map[string]adt.Literal) bool { return true })
	qt.Assert(t, qt.IsNil(failure2))
	qt.Assert(t, qt.IsNotNil(success))
}

func TestNotModifiableRejectsEveryOperation(t *testing.T) {
	var m ModelModifier = NotModifiable{}
	qt.Assert(t, qt.Equals(m.AddConstraint(nil).Kind, OpNotSupported))
	qt.Assert(t, qt.Equals(m.AddVariable(adt.UserName("x"), adt.BoolDomain{}).Kind, OpNotSupported))
}
