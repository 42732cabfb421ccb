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
	"fmt"
	"strings"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
)

// bvWidth picks a bitvector width wide enough for dom's bounds, the Go
// equivalent of convert_model.rs's var_to_ast choosing a Z3 sort per
// domain: a real BV theory needs a fixed width up front, which this
// adaptor derives from the domain's own bound rather than a fixed
// constant.
func bvWidth(dom adt.IntDomain) int {
	lo, hi := dom.Ranges[0].Lo, dom.Ranges[len(dom.Ranges)-1].Hi
	width := 8
	for {
		max := int64(1) << uint(width-1)
		if hi < max && lo >= -max {
			return width
		}
		width *= 2
		if width > 64 {
			return 64
		}
	}
}

func sortFor(dom adt.Domain, theory IntTheory) (string, *solver.Error) {
	switch d := dom.(type) {
	case adt.BoolDomain:
		return "Bool", nil
	case adt.IntDomain:
		if !d.Bounded() {
			return "", solver.FeatureNotImplemented("smt adaptor requires a bounded Int domain")
		}
		if theory == Bv {
			return fmt.Sprintf("(_ BitVec %d)", bvWidth(d)), nil
		}
		return "Int", nil
	default:
		return "", solver.FeatureNotImplemented(fmt.Sprintf("domain %s has no smt-lib2 sort", dom))
	}
}

// boundsAssertions returns the `(assert (and (<= lo x) (<= x hi)))`-style
// LIA range constraints a bounded Int domain needs once declared as sort
// Int (BV domains instead get their range for free from the chosen width).
func boundsAssertions(name string, dom adt.IntDomain) []string {
	lo, hi := dom.Ranges[0].Lo, dom.Ranges[len(dom.Ranges)-1].Hi
	return []string{
		fmt.Sprintf("(assert (<= %d %s))", lo, name),
		fmt.Sprintf("(assert (<= %s %d))", name, hi),
	}
}

// exprToSMT2 renders expr in SMT-LIB2 prefix syntax, grounded on
// convert_model.rs's expr_to_ast match arms (Atomic/Eq/Neq), generalized
// here to the fuller operator set this package's eval.go already
// evaluates, since the original file only implements the two it needed
// for its own tests.
func exprToSMT2(expr adt.Expr) (string, *solver.Error) {
	switch x := expr.(type) {
	case *adt.Lit:
		switch v := x.Value.(type) {
		case adt.BoolLit:
			if v {
				return "true", nil
			}
			return "false", nil
		case adt.IntLit:
			if v < 0 {
				return fmt.Sprintf("(- %d)", -int64(v)), nil
			}
			return fmt.Sprintf("%d", int64(v)), nil
		default:
			return "", solver.FeatureNotImplemented("literal has no smt-lib2 rendering")
		}
	case *adt.Ref:
		return sanitizeSymbol(x.Name.String()), nil
	case *adt.Unary:
		inner, err := exprToSMT2(x.X)
		if err != nil {
			return "", err
		}
		switch x.Op {
		case adt.NotOp:
			return fmt.Sprintf("(not %s)", inner), nil
		case adt.NegOp:
			return fmt.Sprintf("(- %s)", inner), nil
		case adt.AbsOp:
			return fmt.Sprintf("(ite (>= %s 0) %s (- %s))", inner, inner, inner), nil
		default:
			return "", solver.FeatureNotImplemented("unary operator " + x.Op.String() + " has no smt-lib2 rendering")
		}
	case *adt.Binary:
		a, err := exprToSMT2(x.X)
		if err != nil {
			return "", err
		}
		b, err := exprToSMT2(x.Y)
		if err != nil {
			return "", err
		}
		sym, err2 := binarySymbol(x.Op)
		if err2 != nil {
			return "", err2
		}
		return fmt.Sprintf("(%s %s %s)", sym, a, b), nil
	case *adt.Nary:
		parts := make([]string, len(x.Args))
		for i, a := range x.Args {
			s, err := exprToSMT2(a)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		sym, err := narySymbol(x.Op)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s %s)", sym, strings.Join(parts, " ")), nil
	default:
		return "", solver.FeatureNotImplemented("smt adaptor cannot render this expression shape")
	}
}

func binarySymbol(op adt.Op) (string, *solver.Error) {
	switch op {
	case adt.EqOp:
		return "=", nil
	case adt.NeqOp:
		return "distinct", nil
	case adt.LtOp:
		return "<", nil
	case adt.LeqOp:
		return "<=", nil
	case adt.GtOp:
		return ">", nil
	case adt.GeqOp:
		return ">=", nil
	case adt.MinusOp:
		return "-", nil
	case adt.ModOp:
		return "mod", nil
	case adt.DivOp, adt.SafeDivOp:
		return "div", nil
	case adt.ImplyOp:
		return "=>", nil
	default:
		return "", solver.FeatureNotImplemented("binary operator " + op.String() + " has no smt-lib2 rendering")
	}
}

func narySymbol(op adt.Op) (string, *solver.Error) {
	switch op {
	case adt.AndOp:
		return "and", nil
	case adt.OrOp:
		return "or", nil
	case adt.SumOp:
		return "+", nil
	case adt.ProductOp:
		return "*", nil
	case adt.AllDiffOp:
		return "distinct", nil
	default:
		return "", solver.FeatureNotImplemented("nary operator " + op.String() + " has no smt-lib2 rendering")
	}
}

func sanitizeSymbol(name string) string {
	if strings.ContainsAny(name, " \t()|\\") {
		return "|" + name + "|"
	}
	return name
}
