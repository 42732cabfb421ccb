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

// freeNames collects the decision-variable names expr references directly,
// the search-readiness check this package's dfs needs in place of a real
// Z3 model (z3::Solver itself tracks free constants internally; a bounded
// Go search has to do it by hand).
func freeNames(expr adt.Expr, symbols *adt.SymbolTable) map[string]bool {
	out := map[string]bool{}
	var walk func(adt.Expr)
	walk = func(e adt.Expr) {
		if ref, ok := e.(*adt.Ref); ok {
			if v, isVar := decisionVar(symbols, ref.Name); isVar && v.Category == adt.CategoryDecision {
				out[ref.Name.String()] = true
			}
			return
		}
		for _, c := range e.Children() {
			walk(c)
		}
	}
	walk(expr)
	return out
}

func decisionVar(symbols *adt.SymbolTable, name adt.Name) (*adt.Var, bool) {
	d, ok := symbols.Lookup(name)
	if !ok {
		return nil, false
	}
	v, ok := d.(*adt.Var)
	return v, ok
}

func evalBool(expr adt.Expr, symbols *adt.SymbolTable, assignment map[string]int64) (bool, *solver.Error) {
	v, err := evalInt(expr, symbols, assignment)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func evalInt(expr adt.Expr, symbols *adt.SymbolTable, assignment map[string]int64) (int64, *solver.Error) {
	switch x := expr.(type) {
	case *adt.Lit:
		switch v := x.Value.(type) {
		case adt.IntLit:
			return int64(v), nil
		case adt.BoolLit:
			if v {
				return 1, nil
			}
			return 0, nil
		default:
			return 0, solver.FeatureNotImplemented("smt adaptor cannot evaluate this literal")
		}
	case *adt.Ref:
		if val, ok := assignment[x.Name.String()]; ok {
			return val, nil
		}
		if d, ok := symbols.Lookup(x.Name); ok {
			if letting, ok := d.(*adt.ValueLetting); ok {
				return evalInt(letting.Expr, symbols, assignment)
			}
		}
		return 0, solver.InvalidModel("unbound reference %s during search", x.Name)
	case *adt.Unary:
		v, err := evalInt(x.X, symbols, assignment)
		if err != nil {
			return 0, err
		}
		switch x.Op {
		case adt.NotOp:
			if v == 0 {
				return 1, nil
			}
			return 0, nil
		case adt.NegOp:
			return -v, nil
		case adt.AbsOp:
			if v < 0 {
				return -v, nil
			}
			return v, nil
		default:
			return 0, solver.FeatureNotImplemented("unary operator " + x.Op.String())
		}
	case *adt.Binary:
		return evalBinary(x, symbols, assignment)
	case *adt.Nary:
		return evalNary(x, symbols, assignment)
	default:
		return 0, solver.FeatureNotImplemented("smt adaptor cannot evaluate this expression shape")
	}
}

func evalBinary(x *adt.Binary, symbols *adt.SymbolTable, assignment map[string]int64) (int64, *solver.Error) {
	a, err := evalInt(x.X, symbols, assignment)
	if err != nil {
		return 0, err
	}
	b, err := evalInt(x.Y, symbols, assignment)
	if err != nil {
		return 0, err
	}
	boolAsInt := func(v bool) int64 {
		if v {
			return 1
		}
		return 0
	}
	switch x.Op {
	case adt.EqOp:
		return boolAsInt(a == b), nil
	case adt.NeqOp:
		return boolAsInt(a != b), nil
	case adt.LtOp:
		return boolAsInt(a < b), nil
	case adt.LeqOp:
		return boolAsInt(a <= b), nil
	case adt.GtOp:
		return boolAsInt(a > b), nil
	case adt.GeqOp:
		return boolAsInt(a >= b), nil
	case adt.MinusOp:
		return a - b, nil
	case adt.ModOp:
		if b == 0 {
			return 0, solver.RuntimeError("modulo by zero")
		}
		return a % b, nil
	case adt.DivOp:
		if b == 0 {
			return 0, solver.RuntimeError("division by zero")
		}
		return a / b, nil
	case adt.SafeDivOp:
		if b == 0 {
			return 0, nil
		}
		return a / b, nil
	case adt.PowOp:
		result := int64(1)
		for i := int64(0); i < b; i++ {
			result *= a
		}
		return result, nil
	default:
		return 0, solver.FeatureNotImplemented("binary operator " + x.Op.String())
	}
}

func evalNary(x *adt.Nary, symbols *adt.SymbolTable, assignment map[string]int64) (int64, *solver.Error) {
	switch x.Op {
	case adt.AndOp:
		for _, a := range x.Args {
			v, err := evalInt(a, symbols, assignment)
			if err != nil {
				return 0, err
			}
			if v == 0 {
				return 0, nil
			}
		}
		return 1, nil
	case adt.OrOp:
		for _, a := range x.Args {
			v, err := evalInt(a, symbols, assignment)
			if err != nil {
				return 0, err
			}
			if v != 0 {
				return 1, nil
			}
		}
		return 0, nil
	case adt.SumOp:
		var total int64
		for _, a := range x.Args {
			v, err := evalInt(a, symbols, assignment)
			if err != nil {
				return 0, err
			}
			total += v
		}
		return total, nil
	case adt.ProductOp:
		total := int64(1)
		for _, a := range x.Args {
			v, err := evalInt(a, symbols, assignment)
			if err != nil {
				return 0, err
			}
			total *= v
		}
		return total, nil
	case adt.AllDiffOp:
		seen := map[int64]bool{}
		for _, a := range x.Args {
			v, err := evalInt(a, symbols, assignment)
			if err != nil {
				return 0, err
			}
			if seen[v] {
				return 0, nil
			}
			seen[v] = true
		}
		return 1, nil
	default:
		return 0, solver.FeatureNotImplemented("nary operator " + x.Op.String())
	}
}
