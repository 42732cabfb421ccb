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

// Package sat is the SAT family's solver.SolverAdaptor: a DIMACS CNF writer
// plus a small built-in DPLL solver standing in for the pack's RustSAT/
// kissat bindings (solvers/sat_rs/src/sat_solvers.rs's Solver trait,
// crates/conjure_core/src/solver/adaptors/sat_adaptor.rs's SAT adaptor
// skeleton and kissat.rs's external-process pattern). A model reaches this
// adaptor only after an earlier representation-selection pass
// (internal/core/represent's sat_direct_int/sat_order_int/
// sat_bitvector_int schemes) has already turned every Int decision
// variable into Bool proxies: this adaptor itself only ever sees Booleans,
// matching a real SAT backend's own interface.
package sat

import (
	"fmt"
	"io"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
)

// SAT is a SolverAdaptor around the package's CNF builder and DPLL search.
type SAT struct {
	cnf *cnf
}

// New constructs an empty, unloaded SAT adaptor.
func New() *SAT { return &SAT{} }

func (s *SAT) Family() string { return "sat" }

func (s *SAT) LoadModel(model *adt.Model) *solver.Error {
	if model == nil || model.Sub == nil {
		return solver.InvalidModel("no model given")
	}
	root, ok := model.RootExpr()
	if !ok {
		return solver.InvalidModel("model root is not a Root node")
	}
	b := newBuilder(model.Sub.Symbols)
	for _, c := range root.Constraints {
		if err := b.assertTrue(c); err != nil {
			return err
		}
	}
	s.cnf = b.cnf
	return nil
}

func (s *SAT) Solve(callback solver.Callback) (solver.SolveStats, solver.SearchStatus, *solver.Error) {
	if s.cnf == nil {
		return solver.SolveStats{}, solver.SearchStatus{}, solver.InvalidModel("no model loaded")
	}
	search := &dpll{clauses: s.cnf.clauses, nvars: s.cnf.nvars}

	assign := make([]int, s.cnf.nvars+1)
	var nodes int64
	found := false
	for {
		nodes++
		result := search.solveFrom(assign)
		if result == nil {
			break
		}
		found = true
		assignment := s.literalAssignment(result)
		if !callback(assignment) {
			break
		}
		// Block this exact assignment over the originally-named variables
		// only (auxiliary Tseitin variables are implied, not chosen) so
		// enumeration moves to a genuinely different named solution.
		blocking := make([]int, 0, len(s.cnf.byName))
		for _, v := range s.cnf.byName {
			if result[v] == 1 {
				blocking = append(blocking, -v)
			} else {
				blocking = append(blocking, v)
			}
		}
		search.clauses = append(search.clauses, blocking)
	}

	stats := solver.SolveStats{SearchNodes: nodes, Satisfiable: found, SatisfiableOK: true}
	outcome := solver.NoSolutions
	if found {
		outcome = solver.HasSolutions
	}
	return stats, solver.Done(outcome), nil
}

func (s *SAT) SolveMut(callback solver.MutCallback) (solver.SolveStats, solver.SearchStatus, *solver.Error) {
	return solver.SolveStats{}, solver.SearchStatus{}, solver.NotSupported("solve_mut")
}

func (s *SAT) literalAssignment(result []int) map[string]adt.Literal {
	out := make(map[string]adt.Literal, len(s.cnf.byName))
	for name, v := range s.cnf.byName {
		out[name] = adt.BoolLit(result[v] == 1)
	}
	return out
}

// WriteSolverInputFile emits the loaded instance as DIMACS CNF.
func (s *SAT) WriteSolverInputFile(w io.Writer) *solver.Error {
	if s.cnf == nil {
		return solver.InvalidModel("no model loaded")
	}
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", s.cnf.nvars, len(s.cnf.clauses)); err != nil {
		return solver.RuntimeError("%s", err)
	}
	for _, name := range s.cnf.namesInOrder() {
		if _, err := fmt.Fprintf(w, "c %d %s\n", s.cnf.byName[name], name); err != nil {
			return solver.RuntimeError("%s", err)
		}
	}
	for _, clause := range s.cnf.clauses {
		for _, lit := range clause {
			if _, err := fmt.Fprintf(w, "%d ", lit); err != nil {
				return solver.RuntimeError("%s", err)
			}
		}
		if _, err := fmt.Fprintln(w, "0"); err != nil {
			return solver.RuntimeError("%s", err)
		}
	}
	return nil
}
