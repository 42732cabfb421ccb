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

// Package solver is the typestate-governed Solver facade, grounded on
// original_source's crates/conjure-cp-core/src/solver (states.rs's
// Init/ModelLoaded/ExecutionSuccess/ExecutionFailure, the SolverAdaptor trait
// reconstructed from the sat/smt/savilerow adaptor impls since solver/mod.rs
// itself was not retrieved) and on a value-state discipline where a call
// only ever hands back a value already in whatever state its call just
// produced, never a mutable handle the caller could use out of order. Rust
// enforces "you cannot call solve before load_model" with
// a sealed marker-type trait bound on generic methods. Go methods cannot add
// type parameters beyond their receiver's, so the state transitions below are
// free functions taking a *Solver[fromState] and returning a
// *Solver[toState]; the zero value of every state marker type is its only
// value, so there is nothing to seal.
package solver

// State is the type-set constraint satisfied by every solver state marker.
type State interface {
	Init | ModelLoaded | ExecutionSuccess | ExecutionFailure
}

// Init is the state of a Solver before a model has been loaded.
type Init struct{}

// ModelLoaded is the state of a Solver with a model loaded, ready to solve.
type ModelLoaded struct{}

// ExecutionSuccess is the state of a Solver whose last solve finished
// without error, carrying its search outcome and accumulated statistics.
type ExecutionSuccess struct {
	Stats  SolveStats
	Status SearchStatus
}

// ExecutionFailure is the state of a Solver whose last solve returned an
// Error.
type ExecutionFailure struct {
	Why *Error
}
