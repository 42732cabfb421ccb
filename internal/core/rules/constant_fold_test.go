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

func lit(v int64) *adt.Lit { return adt.NewLit(adt.IntLit(v)) }

func TestEvalConstantSum(t *testing.T) {
	got, ok := evalConstant(adt.NewNary(adt.SumOp, lit(2), lit(3), lit(4)))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got, adt.Literal(adt.IntLit(9))))
}

func TestEvalConstantDivByZero(t *testing.T) {
	_, ok := evalConstant(adt.NewBinary(adt.DivOp, lit(4), lit(0)))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestEvalConstantSafeDivByZero(t *testing.T) {
	_, ok := evalConstant(adt.NewBinary(adt.SafeDivOp, lit(4), lit(0)))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestEvalConstantModByZero(t *testing.T) {
	_, ok := evalConstant(adt.NewBinary(adt.ModOp, lit(4), lit(0)))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestEvalConstantComparisons(t *testing.T) {
	got, ok := evalConstant(adt.NewBinary(adt.LeqOp, lit(3), lit(5)))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got, adt.Literal(adt.BoolLit(true))))
}

func TestEvalConstantNotAndAbs(t *testing.T) {
	got, ok := evalConstant(adt.NewUnary(adt.NotOp, adt.NewLit(adt.BoolLit(false))))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got, adt.Literal(adt.BoolLit(true))))

	got, ok = evalConstant(adt.NewUnary(adt.AbsOp, lit(-7)))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got, adt.Literal(adt.IntLit(7))))
}

func TestEvalConstantNonLiteralChild(t *testing.T) {
	x := adt.NewRef(adt.UserName("x"))
	_, ok := evalConstant(adt.NewNary(adt.SumOp, x, lit(1)))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestConstantEvaluatorFoldsNestedArithmetic(t *testing.T) {
	root := adt.NewRoot(adt.NewBinary(adt.EqOp, adt.NewNary(adt.SumOp, lit(1), lit(2)), lit(3)))
	red, err := constantEvaluator(root, nil)
	qt.Assert(t, qt.IsNil(err))
	newRoot := red.NewExpr.(*adt.Root)
	qt.Assert(t, qt.Equals(len(newRoot.Constraints), 1))
	got := newRoot.Constraints[0].(*adt.Lit)
	qt.Assert(t, qt.Equals(got.Value, adt.Literal(adt.BoolLit(true))))
}

func TestConstantEvaluatorNotApplicableWhenNothingFolds(t *testing.T) {
	x := adt.NewRef(adt.UserName("x"))
	root := adt.NewRoot(x)
	_, err := constantEvaluator(root, nil)
	qt.Assert(t, qt.Equals(err, RuleNotApplicable))
}

func TestEvalRootEmpty(t *testing.T) {
	red, err := evalRoot(adt.NewRoot(), nil)
	qt.Assert(t, qt.IsNil(err))
	got := red.NewExpr.(*adt.Root)
	qt.Assert(t, qt.Equals(len(got.Constraints), 1))
	lv := got.Constraints[0].(*adt.Lit)
	qt.Assert(t, qt.Equals(lv.Value, adt.Literal(adt.BoolLit(true))))
}

func TestEvalRootAllTrue(t *testing.T) {
	root := adt.NewRoot(adt.NewLit(adt.BoolLit(true)), adt.NewLit(adt.BoolLit(true)))
	red, err := evalRoot(root, nil)
	qt.Assert(t, qt.IsNil(err))
	got := red.NewExpr.(*adt.Root).Constraints[0].(*adt.Lit)
	qt.Assert(t, qt.Equals(got.Value, adt.Literal(adt.BoolLit(true))))
}

func TestEvalRootOneFalse(t *testing.T) {
	root := adt.NewRoot(adt.NewLit(adt.BoolLit(true)), adt.NewLit(adt.BoolLit(false)))
	red, err := evalRoot(root, nil)
	qt.Assert(t, qt.IsNil(err))
	got := red.NewExpr.(*adt.Root).Constraints[0].(*adt.Lit)
	qt.Assert(t, qt.Equals(got.Value, adt.Literal(adt.BoolLit(false))))
}

func TestEvalRootSingleConstraintNotApplicable(t *testing.T) {
	root := adt.NewRoot(adt.NewLit(adt.BoolLit(true)))
	_, err := evalRoot(root, nil)
	qt.Assert(t, qt.Equals(err, RuleNotApplicable))
}
