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

func TestLtToLeq(t *testing.T) {
	a := adt.NewRef(adt.UserName("a"))
	b := adt.NewRef(adt.UserName("b"))
	red, err := ltToLeq(adt.NewBinary(adt.LtOp, a, b), nil)
	qt.Assert(t, qt.IsNil(err))
	got := red.NewExpr.(*adt.Binary)
	qt.Assert(t, qt.Equals(got.Op, adt.LeqOp))
	shifted := got.Y.(*adt.Nary)
	qt.Assert(t, qt.Equals(shifted.Op, adt.SumOp))
	qt.Assert(t, qt.Equals(len(shifted.Args), 2))
}

func TestGtToGeq(t *testing.T) {
	a := adt.NewRef(adt.UserName("a"))
	b := adt.NewRef(adt.UserName("b"))
	red, err := gtToGeq(adt.NewBinary(adt.GtOp, a, b), nil)
	qt.Assert(t, qt.IsNil(err))
	got := red.NewExpr.(*adt.Binary)
	qt.Assert(t, qt.Equals(got.Op, adt.GeqOp))
	shifted := got.X.(*adt.Nary)
	qt.Assert(t, qt.Equals(shifted.Op, adt.SumOp))
}

func TestComparisonRulesNotApplicable(t *testing.T) {
	a := adt.NewRef(adt.UserName("a"))
	b := adt.NewRef(adt.UserName("b"))
	_, err := ltToLeq(adt.NewBinary(adt.LeqOp, a, b), nil)
	qt.Assert(t, qt.Equals(err, RuleNotApplicable))
	_, err = gtToGeq(adt.NewBinary(adt.GeqOp, a, b), nil)
	qt.Assert(t, qt.Equals(err, RuleNotApplicable))
}

func TestMinusToSumNeg(t *testing.T) {
	a := adt.NewRef(adt.UserName("a"))
	b := adt.NewRef(adt.UserName("b"))
	red, err := minusToSumNeg(adt.NewBinary(adt.MinusOp, a, b), nil)
	qt.Assert(t, qt.IsNil(err))
	sum := red.NewExpr.(*adt.Nary)
	qt.Assert(t, qt.Equals(sum.Op, adt.SumOp))
	qt.Assert(t, qt.Equals(len(sum.Args), 2))
	neg := sum.Args[1].(*adt.Unary)
	qt.Assert(t, qt.Equals(neg.Op, adt.NegOp))
	qt.Assert(t, qt.Equals(neg.X, adt.Expr(b)))
}
