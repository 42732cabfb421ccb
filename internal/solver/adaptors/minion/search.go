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

package minion

import (
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
)

// dfs is a plain backtracking search: every search variable is assigned in
// turn, in the static order LoadModel built; once every variable a
// constraint mentions is bound, the constraint is checked immediately so a
// violated prefix prunes the remaining subtree rather than waiting for a
// full assignment.
type dfs struct {
	m          *Minion
	assignment map[string]int64
	found      bool
	nodes      int64
}

// run explores variable index i onward. It returns stop=true once callback
// asks the search to end.
func (s *dfs) run(i int, callback solver.Callback) (stop bool, nodes int64, err *solver.Error) {
	if i == len(s.m.vars) {
		s.nodes++
		ok, verr := s.satisfiesAll()
		if verr != nil {
			return false, s.nodes, verr
		}
		if !ok {
			return false, s.nodes, nil
		}
		s.found = true
		return !callback(s.literalAssignment()), s.nodes, nil
	}

	v := s.m.vars[i]
	for _, val := range v.values {
		s.assignment[v.name] = val
		s.nodes++
		ok, verr := s.satisfiesBound(i + 1)
		if verr != nil {
			return false, s.nodes, verr
		}
		if ok {
			stop, _, err := s.run(i+1, callback)
			if err != nil {
				return false, s.nodes, err
			}
			if stop {
				return true, s.nodes, nil
			}
		}
		delete(s.assignment, v.name)
	}
	return false, s.nodes, nil
}

// satisfiesBound checks every constraint whose free variables are entirely
// among the first nBound search variables, pruning as soon as a prefix is
// known to violate one.
func (s *dfs) satisfiesBound(nBound int) (bool, *solver.Error) {
	bound := map[string]bool{}
	for i := 0; i < nBound; i++ {
		bound[s.m.vars[i].name] = true
	}
	for _, c := range s.m.constraints {
		names := freeNames(c, s.m.symbols)
		allBound := true
		for n := range names {
			if !bound[n] {
				allBound = false
				break
			}
		}
		if !allBound {
			continue
		}
		v, err := evalBool(c, s.m.symbols, s.assignment)
		if err != nil {
			return false, err
		}
		if !v {
			return false, nil
		}
	}
	return true, nil
}

func (s *dfs) satisfiesAll() (bool, *solver.Error) {
	return s.satisfiesBound(len(s.m.vars))
}

func (s *dfs) literalAssignment() map[string]adt.Literal {
	out := make(map[string]adt.Literal, len(s.assignment))
	for name, v := range s.assignment {
		out[name] = literalFor(s.m.symbols, name, v)
	}
	return out
}

func literalFor(symbols *adt.SymbolTable, name string, v int64) adt.Literal {
	for _, n := range symbols.Order() {
		if n.String() != name {
			continue
		}
		if vr, ok := decl(symbols, n); ok {
			if _, isBool := vr.Domain.(adt.BoolDomain); isBool {
				return adt.BoolLit(v != 0)
			}
		}
	}
	return adt.IntLit(v)
}

func decl(symbols *adt.SymbolTable, name adt.Name) (*adt.Var, bool) {
	d, ok := symbols.Lookup(name)
	if !ok {
		return nil, false
	}
	v, ok := d.(*adt.Var)
	return v, ok
}
