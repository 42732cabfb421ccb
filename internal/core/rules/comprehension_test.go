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

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
)

func TestExpandComprehensionOverIntGenerator(t *testing.T) {
	genSymbols := adt.NewSymbolTable()
	dom := adt.IntDomain{Ranges: []adt.Range{adt.Bounded(1, 3)}}
	genSymbols.Insert(adt.NewVar(adt.UserName("i"), dom, adt.CategoryDecision))

	iRef := adt.NewRef(adt.UserName("i"))
	retSymbols := adt.NewSymbolTable()
	comp := &adt.Comprehension{
		Generators: []adt.GeneratorBinding{{Name: adt.UserName("i"), Domain: dom}},
		Generator:  adt.NewSubModel(genSymbols, adt.NewLit(adt.BoolLit(true))),
		Return:     adt.NewSubModel(retSymbols, iRef),
		ReturnOp:   adt.SumOp,
	}

	red, err := expandComprehension(comp, genSymbols)
	qt.Assert(t, qt.IsNil(err))
	got := red.NewExpr.(*adt.Nary)
	qt.Assert(t, qt.Equals(got.Op, adt.SumOp))
	qt.Assert(t, qt.Equals(len(got.Args), 3))
	for idx, want := range []int64{1, 2, 3} {
		lit := got.Args[idx].(*adt.Lit).Value.(adt.IntLit)
		qt.Assert(t, qt.Equals(int64(lit), want))
	}
}

func TestExpandComprehensionFiltersByGuard(t *testing.T) {
	genSymbols := adt.NewSymbolTable()
	dom := adt.IntDomain{Ranges: []adt.Range{adt.Bounded(1, 3)}}
	genSymbols.Insert(adt.NewVar(adt.UserName("i"), dom, adt.CategoryDecision))

	iRef := adt.NewRef(adt.UserName("i"))
	guard := adt.NewBinary(adt.NeqOp, iRef, adt.NewLit(adt.IntLit(2)))
	comp := &adt.Comprehension{
		Generators: []adt.GeneratorBinding{{Name: adt.UserName("i"), Domain: dom}},
		Guards:     []adt.Expr{guard},
		Generator:  adt.NewSubModel(genSymbols, adt.NewLit(adt.BoolLit(true))),
		Return:     adt.NewSubModel(adt.NewSymbolTable(), iRef),
		ReturnOp:   adt.SumOp,
	}

	red, err := expandComprehension(comp, genSymbols)
	qt.Assert(t, qt.IsNil(err))
	got := red.NewExpr.(*adt.Nary)
	qt.Assert(t, qt.Equals(len(got.Args), 2))
}

func TestExpandComprehensionNotApplicableNoGenerators(t *testing.T) {
	comp := &adt.Comprehension{ReturnOp: adt.SumOp}
	_, err := expandComprehension(comp, adt.NewSymbolTable())
	qt.Assert(t, qt.Equals(err, RuleNotApplicable))
}
