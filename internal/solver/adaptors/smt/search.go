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
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
)

// smtVar is one decision variable this adaptor searches over: its bounded
// set of candidate values, independent of whether TheoryConfig.Ints would
// have it declared as SMT-LIB2 Int or BitVec text (the theory choice only
// changes WriteSolverInputFile's output, not the values a bounded domain
// actually ranges over).
type smtVar struct {
	name   string
	values []int64
}

// dfs is a bounded backtracking search standing in for z3::Solver's own
// decision procedure: this adaptor has no Z3 binding available, so
// satisfiability is instead decided by exhaustive assignment over each
// variable's declared bounds, pruning a branch as soon as every free
// variable of some constraint is already bound and violated.
type dfs struct {
	s          *SMT
	assignment map[string]int64
	found      bool
	nodes      int64
}

func (d *dfs) run(i int, callback solver.Callback) (stop bool, err *solver.Error) {
	if i == len(d.s.vars) {
		d.nodes++
		ok, verr := d.check(len(d.s.vars))
		if verr != nil {
			return false, verr
		}
		if !ok {
			return false, nil
		}
		d.found = true
		return !callback(d.literalAssignment()), nil
	}

	v := d.s.vars[i]
	for _, val := range v.values {
		d.assignment[v.name] = val
		d.nodes++
		ok, verr := d.check(i + 1)
		if verr != nil {
			return false, verr
		}
		if ok {
			stop, err := d.run(i+1, callback)
			if err != nil {
				return false, err
			}
			if stop {
				return true, nil
			}
		}
		delete(d.assignment, v.name)
	}
	return false, nil
}

func (d *dfs) check(nBound int) (bool, *solver.Error) {
	bound := map[string]bool{}
	for i := 0; i < nBound; i++ {
		bound[d.s.vars[i].name] = true
	}
	for _, c := range d.s.asserts {
		names := freeNames(c, d.s.symbols)
		ready := true
		for n := range names {
			if !bound[n] {
				ready = false
				break
			}
		}
		if !ready {
			continue
		}
		v, err := evalBool(c, d.s.symbols, d.assignment)
		if err != nil {
			return false, err
		}
		if !v {
			return false, nil
		}
	}
	return true, nil
}

func (d *dfs) literalAssignment() map[string]adt.Literal {
	out := make(map[string]adt.Literal, len(d.assignment))
	for name, v := range d.assignment {
		out[name] = literalFor(d.s.symbols, name, v)
	}
	return out
}

func literalFor(symbols *adt.SymbolTable, name string, v int64) adt.Literal {
	if vr, ok := decisionVar(symbols, adt.UserName(name)); ok {
		if _, isBool := vr.Domain.(adt.BoolDomain); isBool {
			return adt.BoolLit(v != 0)
		}
	}
	return adt.IntLit(v)
}
