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

// Package smt is the SMT family's solver.SolverAdaptor, grounded on
// crates/conjure-cp-core/src/solver/adaptors/smt/adaptor.go's Smt struct
// (store/solver_inst/theory_config) and its convert_model.rs translation.
// The real adaptor drives Z3 through the z3 crate; no Z3 binding is
// available to a standalone Go module, so this package instead emits
// genuine SMT-LIB2 text (WriteSolverInputFile, mirroring
// solver_inst.to_smt2()) and answers Solve itself with a bounded
// backtracking search over each declared variable's domain, standing in
// for z3::Solver's own decision procedure.
package smt

import (
	"fmt"
	"io"
	"strings"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
)

// SMT is a SolverAdaptor translating a Model to SMT-LIB2 and searching it
// with a bounded DFS, configurable by TheoryConfig the way the original
// lets Smt::new pick IntTheory/MatrixTheory per instantiation.
type SMT struct {
	theory      TheoryConfig
	symbols     *adt.SymbolTable
	asserts     []adt.Expr
	vars        []smtVar
	declareText []string
	assertText  []string
}

// New constructs an unloaded SMT adaptor using the default theory
// configuration (LIA integers, native AllDiff), matching Smt::default.
func New() *SMT { return &SMT{theory: DefaultTheoryConfig()} }

// NewWithTheory constructs an unloaded SMT adaptor using the given theory
// configuration, matching Smt::new(int_theory, matrix_theory).
func NewWithTheory(cfg TheoryConfig) *SMT { return &SMT{theory: cfg} }

func (s *SMT) Family() string { return "smt" }

// LoadModel declares every decision variable and asserts every root
// constraint, grounded on load_store/load_assertions: the store's
// variable pass runs first, then assertions are built against it.
func (s *SMT) LoadModel(model *adt.Model) *solver.Error {
	if model == nil || model.Sub == nil {
		return solver.InvalidModel("no model given")
	}
	root, ok := model.RootExpr()
	if !ok {
		return solver.InvalidModel("model root is not a Root node")
	}
	symbols := model.Sub.Symbols

	var vars []smtVar
	var declareText []string
	for _, name := range symbols.Order() {
		decl, ok := symbols.Lookup(name)
		if !ok {
			continue
		}
		v, ok := decl.(*adt.Var)
		if !ok || v.Category != adt.CategoryDecision {
			continue
		}
		sortName, err := sortFor(v.Domain, s.theory.Ints)
		if err != nil {
			return err
		}
		symbolName := sanitizeSymbol(name.String())
		declareText = append(declareText, fmt.Sprintf("(declare-const %s %s)", symbolName, sortName))

		switch dom := v.Domain.(type) {
		case adt.BoolDomain:
			vars = append(vars, smtVar{name: name.String(), values: []int64{0, 1}})
		case adt.IntDomain:
			values, verr := dom.Enumerate()
			if verr != nil {
				return solver.FeatureNotImplemented(fmt.Sprintf("%s: %v", name, verr))
			}
			vars = append(vars, smtVar{name: name.String(), values: values})
			if s.theory.Ints == Lia {
				declareText = append(declareText, boundsAssertions(symbolName, dom)...)
			}
		default:
			return solver.FeatureNotImplemented(fmt.Sprintf("%s: domain %s has no smt representation", name, v.Domain))
		}
	}

	asserts := make([]adt.Expr, len(root.Constraints))
	for i, c := range root.Constraints {
		if s.theory.UnwrapAllDiff {
			c = unwrapAllDiff(c)
		}
		asserts[i] = c
	}

	var assertText []string
	for _, c := range asserts {
		text, err := exprToSMT2(c)
		if err != nil {
			return err
		}
		assertText = append(assertText, fmt.Sprintf("(assert %s)", text))
	}

	s.symbols = symbols
	s.asserts = asserts
	s.vars = vars
	s.declareText = declareText
	s.assertText = assertText
	return nil
}

func (s *SMT) Solve(callback solver.Callback) (solver.SolveStats, solver.SearchStatus, *solver.Error) {
	if s.symbols == nil {
		return solver.SolveStats{}, solver.SearchStatus{}, solver.InvalidModel("no model loaded")
	}
	search := &dfs{s: s, assignment: map[string]int64{}}
	_, err := search.run(0, callback)
	if err != nil {
		return solver.SolveStats{}, solver.SearchStatus{}, err
	}
	stats := solver.SolveStats{
		SearchNodes:   search.nodes,
		Satisfiable:   search.found,
		SatisfiableOK: true,
	}
	outcome := solver.NoSolutions
	if search.found {
		outcome = solver.HasSolutions
	}
	return stats, solver.Done(outcome), nil
}

// SolveMut matches the original's Err(SolverError::OpNotImplemented
// ("solve_mut".into())) exactly: Z3 incremental assertion stacks make
// solve_mut possible in principle, the adaptor simply never implemented it.
func (s *SMT) SolveMut(callback solver.MutCallback) (solver.SolveStats, solver.SearchStatus, *solver.Error) {
	return solver.SolveStats{}, solver.SearchStatus{}, solver.NotImplemented("solve_mut")
}

// WriteSolverInputFile emits the loaded instance as SMT-LIB2 text,
// matching solver_inst.to_smt2()'s declare-const/assert/check-sat shape.
func (s *SMT) WriteSolverInputFile(w io.Writer) *solver.Error {
	if s.symbols == nil {
		return solver.InvalidModel("no model loaded")
	}
	lines := make([]string, 0, len(s.declareText)+len(s.assertText)+2)
	lines = append(lines, fmt.Sprintf("(set-logic %s)", logicName(s.theory.Ints)))
	lines = append(lines, s.declareText...)
	lines = append(lines, s.assertText...)
	lines = append(lines, "(check-sat)")
	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return solver.RuntimeError("%s", err)
	}
	return nil
}

func logicName(theory IntTheory) string {
	if theory == Bv {
		return "QF_BV"
	}
	return "QF_LIA"
}
