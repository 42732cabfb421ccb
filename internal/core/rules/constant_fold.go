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

package rules

import "github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"

func init() {
	Register(&Rule{Name: "constant_evaluator", Apply: constantEvaluator, Sets: map[string]uint8{"constant": 9001}})
	Register(&Rule{Name: "eval_root", Apply: evalRoot, Sets: map[string]uint8{"constant": 9001}})
}

// constantEvaluator folds every all-literal subexpression of a Root down
// to a single Lit in one pass, grounded on original_source's
// constant_eval.rs::constant_evaluator. The original fires this globally
// on the whole tree in one rule application because the naive rewriter is
// otherwise slow to converge on deeply nested literal arithmetic
// (original_source's comment: "really really hot when expanding
// comprehensions"); Transform here plays the same role as its
// transform_bi bottom-up walk.
func constantEvaluator(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	root, ok := expr.(*adt.Root)
	if !ok {
		return Reduction{}, RuleNotApplicable
	}
	changed := false
	newRoot := adt.Transform(root, func(x adt.Expr) adt.Expr {
		if _, ok := x.(*adt.Lit); ok {
			return x
		}
		if lit, ok := evalConstant(x); ok {
			changed = true
			return adt.NewLit(lit)
		}
		return x
	})
	if !changed {
		return Reduction{}, RuleNotApplicable
	}
	return Pure(newRoot), nil
}

// evalRoot collapses a fully-literal Root's constraints down to a single
// Bool literal, grounded on constant_eval.rs::eval_root. An empty Root is
// vacuously true; a one-constraint Root is left alone (nothing to fold
// across).
func evalRoot(expr adt.Expr, symbols *adt.SymbolTable) (Reduction, error) {
	root, ok := expr.(*adt.Root)
	if !ok {
		return Reduction{}, RuleNotApplicable
	}
	switch len(root.Constraints) {
	case 0:
		return Pure(adt.NewRoot(adt.NewLit(adt.BoolLit(true)))), nil
	case 1:
		return Reduction{}, RuleNotApplicable
	default:
		all := true
		for _, c := range root.Constraints {
			lit, ok := c.(*adt.Lit)
			if !ok {
				return Reduction{}, RuleNotApplicable
			}
			b, ok := lit.Value.(adt.BoolLit)
			if !ok {
				return Reduction{}, RuleNotApplicable
			}
			if !bool(b) {
				all = false
			}
		}
		return Pure(adt.NewRoot(adt.NewLit(adt.BoolLit(all)))), nil
	}
}

// evalConstant evaluates expr when every one of its direct children is
// already a Lit, returning the resulting Literal. It reports false (not
// RuleNotApplicable directly, since it is reused both as a standalone
// helper and inlined into constantEvaluator's Transform) when expr isn't
// a foldable operator application, has a non-literal child, or the
// operation is undefined (e.g. division by zero: original_source's
// eval_constant intentionally returns None rather than panicking, tested
// by constant_eval.rs::div_by_zero/safediv_by_zero).
func evalConstant(expr adt.Expr) (adt.Literal, bool) {
	switch x := expr.(type) {
	case *adt.Nary:
		ints, ok := intLits(x.Args)
		if ok {
			switch x.Op {
			case adt.SumOp:
				var sum int64
				for _, v := range ints {
					sum += v
				}
				return adt.IntLit(sum), true
			case adt.ProductOp:
				prod := int64(1)
				for _, v := range ints {
					prod *= v
				}
				return adt.IntLit(prod), true
			}
		}
		bools, ok := boolLits(x.Args)
		if ok {
			switch x.Op {
			case adt.AndOp:
				for _, b := range bools {
					if !b {
						return adt.BoolLit(false), true
					}
				}
				return adt.BoolLit(true), true
			case adt.OrOp:
				for _, b := range bools {
					if b {
						return adt.BoolLit(true), true
					}
				}
				return adt.BoolLit(false), true
			}
		}
		return nil, false

	case *adt.Binary:
		a, aok := intLit(x.X)
		b, bok := intLit(x.Y)
		if aok && bok {
			switch x.Op {
			case adt.EqOp:
				return adt.BoolLit(a == b), true
			case adt.NeqOp:
				return adt.BoolLit(a != b), true
			case adt.LtOp:
				return adt.BoolLit(a < b), true
			case adt.LeqOp:
				return adt.BoolLit(a <= b), true
			case adt.GtOp:
				return adt.BoolLit(a > b), true
			case adt.GeqOp:
				return adt.BoolLit(a >= b), true
			case adt.MinusOp:
				return adt.IntLit(a - b), true
			case adt.DivOp, adt.SafeDivOp:
				if b == 0 {
					return nil, false
				}
				return adt.IntLit(a / b), true
			case adt.ModOp:
				if b == 0 {
					return nil, false
				}
				return adt.IntLit(a % b), true
			case adt.PowOp:
				if b < 0 {
					return nil, false
				}
				p := int64(1)
				for i := int64(0); i < b; i++ {
					p *= a
				}
				return adt.IntLit(p), true
			}
		}
		pa, paok := boolLit(x.X)
		pb, pbok := boolLit(x.Y)
		if paok && pbok {
			switch x.Op {
			case adt.ImplyOp:
				return adt.BoolLit(!pa || pb), true
			case adt.EqOp:
				return adt.BoolLit(pa == pb), true
			case adt.NeqOp:
				return adt.BoolLit(pa != pb), true
			}
		}
		return nil, false

	case *adt.Unary:
		switch x.Op {
		case adt.NotOp:
			if b, ok := boolLit(x.X); ok {
				return adt.BoolLit(!b), true
			}
		case adt.NegOp:
			if a, ok := intLit(x.X); ok {
				return adt.IntLit(-a), true
			}
		case adt.AbsOp:
			if a, ok := intLit(x.X); ok {
				if a < 0 {
					a = -a
				}
				return adt.IntLit(a), true
			}
		}
		return nil, false

	default:
		return nil, false
	}
}

func intLit(e adt.Expr) (int64, bool) {
	lit, ok := e.(*adt.Lit)
	if !ok {
		return 0, false
	}
	il, ok := lit.Value.(adt.IntLit)
	return int64(il), ok
}

func boolLit(e adt.Expr) (bool, bool) {
	lit, ok := e.(*adt.Lit)
	if !ok {
		return false, false
	}
	bl, ok := lit.Value.(adt.BoolLit)
	return bool(bl), ok
}

func intLits(args []adt.Expr) ([]int64, bool) {
	out := make([]int64, len(args))
	for i, a := range args {
		v, ok := intLit(a)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func boolLits(args []adt.Expr) ([]bool, bool) {
	out := make([]bool, len(args))
	for i, a := range args {
		v, ok := boolLit(a)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
