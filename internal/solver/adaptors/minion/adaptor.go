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

// Package minion is the Minion family's solver.SolverAdaptor. The real
// Minion is a C++ search library the pack binds through cgo-free FFI
// (solvers/minion/src/ffi.rs's newVar_ffi/constraint_new/runMinion calls),
// which is out of reach for a standalone Go module; this adaptor is a
// pure-Go in-process depth-first search standing in for that FFI layer,
// grounded on ffi.rs's own constraint vocabulary (CT_LEQSUM/CT_GEQSUM/
// CT_INEQ map onto this package's sum/inequality evaluation, and
// newVar_ffi's VAR_BOUND onto bounded IntDomain variables).
package minion

import (
	"fmt"
	"io"
	"sort"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/pretty"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
)

// Minion is a SolverAdaptor performing exhaustive depth-first search over
// every bounded-domain decision variable in the loaded model.
type Minion struct {
	symbols     *adt.SymbolTable
	constraints []adt.Expr
	vars        []searchVar
}

type searchVar struct {
	name   string
	values []int64
}

// New constructs an empty, unloaded Minion adaptor.
func New() *Minion { return &Minion{} }

func (m *Minion) Family() string { return "minion" }

// LoadModel collects every Decision Var with a Bool or bounded Int domain
// as a search variable, in symbol declaration order, grounded on
// ffi.rs's VARORDER/searchOrder_new (static variable order, no dynamic
// reordering heuristic).
func (m *Minion) LoadModel(model *adt.Model) *solver.Error {
	if model == nil || model.Sub == nil {
		return solver.InvalidModel("no model given")
	}
	root, ok := model.RootExpr()
	if !ok {
		return solver.InvalidModel("model root is not a Root node")
	}
	symbols := model.Sub.Symbols

	var vars []searchVar
	for _, name := range symbols.Order() {
		decl, ok := symbols.Lookup(name)
		if !ok {
			continue
		}
		v, ok := decl.(*adt.Var)
		if !ok || v.Category != adt.CategoryDecision {
			continue
		}
		switch dom := v.Domain.(type) {
		case adt.BoolDomain:
			vars = append(vars, searchVar{name: name.String(), values: []int64{0, 1}})
		case adt.IntDomain:
			if !dom.Bounded() {
				return solver.FeatureNotImplemented(fmt.Sprintf("unbounded int domain for %s", name))
			}
			values, err := dom.Enumerate()
			if err != nil {
				return solver.FeatureNotImplemented(fmt.Sprintf("%s: %v", name, err))
			}
			vars = append(vars, searchVar{name: name.String(), values: values})
		default:
			return solver.FeatureNotImplemented(fmt.Sprintf("%s: domain %s has no minion representation", name, v.Domain))
		}
	}

	m.symbols = symbols
	m.constraints = root.Constraints
	m.vars = vars
	return nil
}

func (m *Minion) Solve(callback solver.Callback) (solver.SolveStats, solver.SearchStatus, *solver.Error) {
	if m.symbols == nil {
		return solver.SolveStats{}, solver.SearchStatus{}, solver.InvalidModel("no model loaded")
	}

	search := &dfs{m: m, assignment: map[string]int64{}}
	stop, nodes, err := search.run(0, callback)
	if err != nil {
		return solver.SolveStats{}, solver.SearchStatus{}, err
	}
	stats := solver.SolveStats{
		SearchNodes:   nodes,
		Satisfiable:   search.found,
		SatisfiableOK: true,
	}
	outcome := solver.NoSolutions
	if search.found {
		outcome = solver.HasSolutions
	}
	if stop {
		return stats, solver.Done(outcome), nil
	}
	return stats, solver.Done(outcome), nil
}

func (m *Minion) SolveMut(callback solver.MutCallback) (solver.SolveStats, solver.SearchStatus, *solver.Error) {
	return solver.SolveStats{}, solver.SearchStatus{}, solver.NotSupported("solve_mut")
}

// WriteSolverInputFile dumps every search variable's domain and every
// constraint in a Minion-input-flavoured text form, grounded on ffi.rs's
// newVar_ffi/constraint_addList call shapes.
func (m *Minion) WriteSolverInputFile(w io.Writer) *solver.Error {
	names := make([]string, len(m.vars))
	for i, v := range m.vars {
		names[i] = v.name
	}
	sort.Strings(names)
	byName := map[string]searchVar{}
	for _, v := range m.vars {
		byName[v.name] = v
	}

	if _, err := fmt.Fprintln(w, "MINION 3"); err != nil {
		return solver.RuntimeError("%s", err)
	}
	if _, err := fmt.Fprintln(w, "**VARIABLES**"); err != nil {
		return solver.RuntimeError("%s", err)
	}
	for _, name := range names {
		v := byName[name]
		lo, hi := v.values[0], v.values[len(v.values)-1]
		if _, err := fmt.Fprintf(w, "DISCRETE %s {%d..%d}\n", name, lo, hi); err != nil {
			return solver.RuntimeError("%s", err)
		}
	}
	if _, err := fmt.Fprintln(w, "**CONSTRAINTS**"); err != nil {
		return solver.RuntimeError("%s", err)
	}
	for _, c := range m.constraints {
		if _, err := fmt.Fprintf(w, "%s\n", pretty.Expr(c)); err != nil {
			return solver.RuntimeError("%s", err)
		}
	}
	if _, err := fmt.Fprintln(w, "**EOF**"); err != nil {
		return solver.RuntimeError("%s", err)
	}
	return nil
}
