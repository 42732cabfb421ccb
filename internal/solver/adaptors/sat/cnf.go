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
	"sort"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
)

// cnf is a plain conjunctive normal form instance: DIMACS-numbered
// variables 1..n, clauses as slices of nonzero signed literals.
type cnf struct {
	nvars    int
	clauses  [][]int
	varNames map[int]string
	byName   map[string]int
}

func newCNF() *cnf {
	return &cnf{varNames: map[int]string{}, byName: map[string]int{}}
}

func (c *cnf) varFor(name string) int {
	if v, ok := c.byName[name]; ok {
		return v
	}
	c.nvars++
	c.byName[name] = c.nvars
	c.varNames[c.nvars] = name
	return c.nvars
}

func (c *cnf) freshAux() int {
	c.nvars++
	return c.nvars
}

func (c *cnf) addClause(lits ...int) {
	c.clauses = append(c.clauses, lits)
}

// builder converts the all-Boolean constraint tree of a rewritten Model
// into cnf, grounded on sat_rs's mk_lit/conv_to_formula shape (one
// DIMACS-numbered variable per source Boolean, a clause list), but driven
// by a direct assertTrue/assertFalse recursion over the positive/negative
// contexts a constraint is used in rather than sat_rs's externally-built
// SatInstance, since no conjure_core -> CNF Tseitin transform is present
// in original_source to ground a closer port against.
type builder struct {
	cnf     *cnf
	symbols *adt.SymbolTable
}

func newBuilder(symbols *adt.SymbolTable) *builder {
	return &builder{cnf: newCNF(), symbols: symbols}
}

// assertTrue emits clauses forcing expr to evaluate true, recursing
// through And/Or/Not without introducing an auxiliary variable so a
// top-level conjunction of constraints stays small.
func (b *builder) assertTrue(expr adt.Expr) *solver.Error {
	switch x := expr.(type) {
	case *adt.Nary:
		if x.Op == adt.AndOp {
			for _, a := range x.Args {
				if err := b.assertTrue(a); err != nil {
					return err
				}
			}
			return nil
		}
		if x.Op == adt.OrOp {
			lits := make([]int, 0, len(x.Args))
			for _, a := range x.Args {
				l, err := b.lit(a)
				if err != nil {
					return err
				}
				lits = append(lits, l)
			}
			b.cnf.addClause(lits...)
			return nil
		}
	case *adt.Unary:
		if x.Op == adt.NotOp {
			return b.assertFalse(x.X)
		}
	}
	l, err := b.lit(expr)
	if err != nil {
		return err
	}
	b.cnf.addClause(l)
	return nil
}

// assertFalse is assertTrue's dual.
func (b *builder) assertFalse(expr adt.Expr) *solver.Error {
	switch x := expr.(type) {
	case *adt.Nary:
		if x.Op == adt.OrOp {
			for _, a := range x.Args {
				if err := b.assertFalse(a); err != nil {
					return err
				}
			}
			return nil
		}
		if x.Op == adt.AndOp {
			lits := make([]int, 0, len(x.Args))
			for _, a := range x.Args {
				l, err := b.lit(a)
				if err != nil {
					return err
				}
				lits = append(lits, -l)
			}
			b.cnf.addClause(lits...)
			return nil
		}
	case *adt.Unary:
		if x.Op == adt.NotOp {
			return b.assertTrue(x.X)
		}
	}
	l, err := b.lit(expr)
	if err != nil {
		return err
	}
	b.cnf.addClause(-l)
	return nil
}

// lit returns a literal whose truth matches expr's, using Tseitin
// equivalence clauses for the compound shapes assertTrue/assertFalse don't
// already handle structurally.
func (b *builder) lit(expr adt.Expr) (int, *solver.Error) {
	switch x := expr.(type) {
	case *adt.Lit:
		v, ok := x.Value.(adt.BoolLit)
		if !ok {
			return 0, solver.FeatureNotImplemented("sat adaptor only supports Boolean literals")
		}
		tv := b.cnf.freshAux()
		if bool(v) {
			b.cnf.addClause(tv)
		} else {
			b.cnf.addClause(-tv)
		}
		return tv, nil
	case *adt.Ref:
		v, ok := b.symbols.Lookup(x.Name)
		if ok {
			if vr, ok := v.(*adt.Var); ok {
				if _, isBool := vr.Domain.(adt.BoolDomain); !isBool {
					return 0, solver.FeatureNotImplemented("sat adaptor requires Bool-domain decision variables; " + x.Name.String() + " is not represented as one")
				}
			}
		}
		return b.cnf.varFor(x.Name.String()), nil
	case *adt.Unary:
		if x.Op == adt.NotOp {
			l, err := b.lit(x.X)
			if err != nil {
				return 0, err
			}
			return -l, nil
		}
		return 0, solver.FeatureNotImplemented("unary operator " + x.Op.String() + " has no Boolean CNF encoding")
	case *adt.Binary:
		switch x.Op {
		case adt.EqOp, adt.NeqOp:
			a, err := b.lit(x.X)
			if err != nil {
				return 0, err
			}
			c, err := b.lit(x.Y)
			if err != nil {
				return 0, err
			}
			g := b.cnf.freshAux()
			// g <-> (a == c); standard XNOR Tseitin clauses.
			if x.Op == adt.EqOp {
				b.cnf.addClause(-g, -a, c)
				b.cnf.addClause(-g, a, -c)
				b.cnf.addClause(g, a, c)
				b.cnf.addClause(g, -a, -c)
			} else {
				b.cnf.addClause(-g, a, c)
				b.cnf.addClause(-g, -a, -c)
				b.cnf.addClause(g, -a, c)
				b.cnf.addClause(g, a, -c)
			}
			return g, nil
		case adt.ImplyOp:
			a, err := b.lit(x.X)
			if err != nil {
				return 0, err
			}
			c, err := b.lit(x.Y)
			if err != nil {
				return 0, err
			}
			g := b.cnf.freshAux()
			b.cnf.addClause(-g, -a, c)
			b.cnf.addClause(g, a)
			b.cnf.addClause(g, -c)
			return g, nil
		default:
			return 0, solver.FeatureNotImplemented("binary operator " + x.Op.String() + " has no Boolean CNF encoding")
		}
	case *adt.Nary:
		lits := make([]int, len(x.Args))
		for i, a := range x.Args {
			l, err := b.lit(a)
			if err != nil {
				return 0, err
			}
			lits[i] = l
		}
		g := b.cnf.freshAux()
		switch x.Op {
		case adt.AndOp:
			for _, l := range lits {
				b.cnf.addClause(-g, l)
			}
			clause := append([]int{g}, negateAll(lits)...)
			b.cnf.addClause(clause...)
			return g, nil
		case adt.OrOp:
			for _, l := range lits {
				b.cnf.addClause(g, -l)
			}
			clause := append([]int{-g}, lits...)
			b.cnf.addClause(clause...)
			return g, nil
		default:
			return 0, solver.FeatureNotImplemented("nary operator " + x.Op.String() + " has no Boolean CNF encoding")
		}
	default:
		return 0, solver.FeatureNotImplemented("sat adaptor cannot translate this expression shape")
	}
}

func negateAll(lits []int) []int {
	out := make([]int, len(lits))
	for i, l := range lits {
		out[i] = -l
	}
	return out
}

// namesInOrder lists every decision-variable name the builder allocated a
// CNF variable for, sorted for deterministic DIMACS output.
func (c *cnf) namesInOrder() []string {
	var names []string
	for v := 1; v <= c.nvars; v++ {
		if n, ok := c.varNames[v]; ok {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
