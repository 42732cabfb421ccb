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
	"time"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
)

// Solver wraps a SolverAdaptor with a phantom state tag S, so the compiler
// rejects calling Solve before LoadModel or reading ExecutionSuccess's
// stats from a Solver still in Init. The adaptor itself is stateful and
// identical across every state value; only the wrapper's type parameter
// changes on a transition.
type Solver[S State] struct {
	adaptor SolverAdaptor
	state   S
}

// New wraps adaptor in a fresh Solver, in the Init state.
func New(adaptor SolverAdaptor) *Solver[Init] {
	return &Solver[Init]{adaptor: adaptor}
}

// State returns the current state value: the zero-field Init/ModelLoaded
// marker, or the payload-bearing ExecutionSuccess/ExecutionFailure.
func (s *Solver[S]) State() S { return s.state }

// Family reports the solver family this Solver's adaptor belongs to, legal
// in any state.
func (s *Solver[S]) Family() string { return s.adaptor.Family() }

// WriteSolverInputFile dumps the adaptor's native input format, legal in
// any state (an adaptor with nothing loaded yet writes whatever its empty
// instance serializes to, matching write_solver_input_file's unconditional
// signature in the original protocol).
func (s *Solver[S]) WriteSolverInputFile(w io.Writer) *Error {
	return s.adaptor.WriteSolverInputFile(w)
}

// LoadModel transitions an Init Solver to ModelLoaded. It is a free
// function, not a method, because Go forbids a generic type's method from
// introducing a type parameter distinct from its receiver's; the one place
// this package departs from Rust's phantom-type idiom is purely mechanical.
func LoadModel(s *Solver[Init], model *adt.Model) (*Solver[ModelLoaded], *Error) {
	if err := s.adaptor.LoadModel(model); err != nil {
		return nil, err
	}
	return &Solver[ModelLoaded]{adaptor: s.adaptor}, nil
}

// Solve runs the search. On success it returns a Solver[ExecutionSuccess];
// on failure, a Solver[ExecutionFailure] recording why. Exactly one of the
// two returned pointers is non-nil, mirroring the Result<SolveSuccess,
// SolverError> the adaptor trait itself returns.
func Solve(s *Solver[ModelLoaded], callback Callback) (*Solver[ExecutionSuccess], *Solver[ExecutionFailure]) {
	start := time.Now()
	stats, status, err := s.adaptor.Solve(callback)
	stats.WallTime += time.Since(start)
	if err != nil {
		return nil, &Solver[ExecutionFailure]{adaptor: s.adaptor, state: ExecutionFailure{Why: err}}
	}
	stats.SolverFamily = s.adaptor.Family()
	return &Solver[ExecutionSuccess]{adaptor: s.adaptor, state: ExecutionSuccess{Stats: stats, Status: status}}, nil
}

// SolveMut is Solve's incremental-solving counterpart.
func SolveMut(s *Solver[ModelLoaded], callback MutCallback) (*Solver[ExecutionSuccess], *Solver[ExecutionFailure]) {
	start := time.Now()
	stats, status, err := s.adaptor.SolveMut(callback)
	stats.WallTime += time.Since(start)
	if err != nil {
		return nil, &Solver[ExecutionFailure]{adaptor: s.adaptor, state: ExecutionFailure{Why: err}}
	}
	stats.SolverFamily = s.adaptor.Family()
	return &Solver[ExecutionSuccess]{adaptor: s.adaptor, state: ExecutionSuccess{Stats: stats, Status: status}}, nil
}

// Retry discards a failed run's state and returns to ModelLoaded so the
// same instance can be re-solved (e.g. after the caller adjusts a timeout),
// without re-translating the model from scratch.
func Retry(s *Solver[ExecutionFailure]) *Solver[ModelLoaded] {
	return &Solver[ModelLoaded]{adaptor: s.adaptor}
}
