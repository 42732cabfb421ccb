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

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
)

// Callback receives one satisfying assignment per call (keyed by a
// variable's printed name, contract) and reports whether the search should
// continue looking for more solutions. Grounded on the Smt adaptor's
// take_while(|store| (callback)(store.as_literals_map.unwrap)).
type Callback func(assignment map[string]adt.Literal) bool

// MutCallback is Callback's incremental-solving counterpart: alongside the
// assignment it receives a ModelModifier handle for posting new
// constraints mid-search, grounded on model_modifier.rs's doc comment
// ("gives access to a ModelModifier in the solution retrieval callback").
type MutCallback func(assignment map[string]adt.Literal, modifier ModelModifier) bool

// SolverAdaptor is the per-backend translation layer a Solver drives
// through its typestate transitions. Every method's error return is always
// a *Error, never a bare error, so callers can switch on ErrorKind without
// an errors.As assertion; grounded on the SolverAdaptor trait reconstructed
// from crates/conjure_core/src/solver/adaptors/{sat_adaptor,savilerow}.rs
// and crates/conjure-cp-core/src/solver/adaptors/smt/adaptor.rs (the trait
// declaration itself, solver/mod.rs, was not in the retrieval pack).
type SolverAdaptor interface {
	// LoadModel translates model into this adaptor's internal instance
	// representation.
	LoadModel(model *adt.Model) *Error
	// Solve runs the search to completion or until callback returns false.
	Solve(callback Callback) (SolveStats, SearchStatus, *Error)
	// SolveMut is Solve with mid-search constraint posting; adaptors that
	// do not support incremental solving return an error instead:
	// NotSupported("solve_mut") (minion, sat, the sat_adaptor.rs pattern)
	// or NotImplemented("solve_mut") (smt, savilerow).
	SolveMut(callback MutCallback) (SolveStats, SearchStatus, *Error)
	// Family names the solver family this adaptor belongs to: "minion",
	// "sat", "smt", or "savilerow".
	Family() string
	// WriteSolverInputFile dumps the loaded instance in this adaptor's
	// native input format (CNF, SMT-LIB2, Minion input, Essence').
	WriteSolverInputFile(w io.Writer) *Error
}

// ModelModifier lets a solve_mut callback extend the live model, grounded
// on model_modifier.rs's ModelModifier trait. Modifications are expressed
// in terms of core AST nodes; it is adaptor-defined whether they are
// rewritten through the rule engine first or passed straight to the
// backend.
type ModelModifier interface {
	AddConstraint(constraint adt.Expr) *Error
	AddVariable(name adt.Name, domain adt.Domain) *Error
}

// NotModifiable is the ModelModifier for adaptors that do not support
// incremental solving: every operation reports NotSupported, grounded on
// model_modifier.rs's NotModifiable.
type NotModifiable struct{}

func (NotModifiable) AddConstraint(adt.Expr) *Error { return NotSupported("add_constraint") }
func (NotModifiable) AddVariable(adt.Name, adt.Domain) *Error {
	return NotSupported("add_variable")
}
