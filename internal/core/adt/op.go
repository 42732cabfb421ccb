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

package adt

// Op tags the operator of a Nary/Binary/Unary with one shared
// int-based type, instead of a distinct Go type per constraint-language
// operator.
type Op int

const (
	NoOp Op = iota

	// Boolean,
	AndOp
	OrOp
	NotOp
	ImplyOp
	EqOp
	NeqOp
	LtOp
	LeqOp
	GtOp
	GeqOp
	InOp
	SubsetOp
	SubsetEqOp
	SupsetOp
	SupsetEqOp
	UnionOp
	IntersectOp
	AllDiffOp

	// Arithmetic.
	SumOp
	ProductOp
	MinusOp
	NegOp
	DivOp     // unsafe
	SafeDivOp
	ModOp
	AbsOp
	PowOp

	// Lexical ordering.
	LexLtOp
	LexLeqOp
	LexGtOp
	LexGeqOp

	// Solver-specific flat forms.
	SumGeqOp
	SumLeqOp
	SumEqOp
	IneqOp
	MinionWInSetOp
)

var opNames = map[Op]string{
	AndOp: "/\\", OrOp: "\\/", NotOp: "!", ImplyOp: "->",
	EqOp: "=", NeqOp: "!=", LtOp: "<", LeqOp: "<=", GtOp: ">", GeqOp: ">=",
	InOp: "in", SubsetOp: "subset", SubsetEqOp: "subsetEq",
	SupsetOp: "supset", SupsetEqOp: "supsetEq",
	UnionOp: "union", IntersectOp: "intersect", AllDiffOp: "allDiff",
	SumOp: "sum", ProductOp: "product", MinusOp: "-", NegOp: "neg",
	DivOp: "/", SafeDivOp: "safeDiv", ModOp: "%", AbsOp: "abs", PowOp: "**",
	LexLtOp: "<lex", LexLeqOp: "<=lex", LexGtOp: ">lex", LexGeqOp: ">=lex",
	SumGeqOp: "sumGeq", SumLeqOp: "sumLeq", SumEqOp: "sumEq", IneqOp: "ineq",
	MinionWInSetOp: "w-inset",
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "badop"
}

// IsAssociativeCommutative reports whether op's NaryExpr children may be
// freely flattened/reordered by the AC normalization rules.
func (op Op) IsAssociativeCommutative() bool {
	switch op {
	case AndOp, OrOp, SumOp, ProductOp, UnionOp, IntersectOp, AllDiffOp:
		return true
	default:
		return false
	}
}

// IsBoolean reports whether op always produces a Bool-kinded value.
func (op Op) IsBoolean() bool {
	switch op {
	case AndOp, OrOp, NotOp, ImplyOp, EqOp, NeqOp, LtOp, LeqOp, GtOp, GeqOp,
		InOp, SubsetOp, SubsetEqOp, SupsetOp, SupsetEqOp, AllDiffOp,
		LexLtOp, LexLeqOp, LexGtOp, LexGeqOp,
		SumGeqOp, SumLeqOp, SumEqOp, IneqOp, MinionWInSetOp:
		return true
	default:
		return false
	}
}
