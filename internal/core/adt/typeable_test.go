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

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestTypeOfLiteral(t *testing.T) {
	symbols := NewSymbolTable()
	k, err := Type(NewLit(IntLit(3)), symbols)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(k, IntKind))
}

func TestTypeOfReferenceToVar(t *testing.T) {
	symbols := NewSymbolTable()
	symbols.Insert(NewVar(UserName("x"), IntDomain{Ranges: []Range{Bounded(1, 9)}}, CategoryDecision))
	k, err := Type(NewRef(UserName("x")), symbols)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(k, IntKind))
}

func TestTypeOfReferenceToValueLetting(t *testing.T) {
	symbols := NewSymbolTable()
	symbols.Insert(NewValueLetting(UserName("n"), NewLit(BoolLit(true))))
	k, err := Type(NewRef(UserName("n")), symbols)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(k, BoolKind))
}

func TestTypeOfDanglingReferenceFails(t *testing.T) {
	symbols := NewSymbolTable()
	_, err := Type(NewRef(UserName("missing")), symbols)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestTypeOfNaryBooleanOp(t *testing.T) {
	symbols := NewSymbolTable()
	k, err := Type(NewNary(AndOp, NewLit(BoolLit(true)), NewLit(BoolLit(false))), symbols)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(k, BoolKind))
}

func TestTypeOfNarySum(t *testing.T) {
	symbols := NewSymbolTable()
	k, err := Type(NewNary(SumOp, NewLit(IntLit(1)), NewLit(IntLit(2))), symbols)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(k, IntKind))
}

func TestTypeOfBinaryComparison(t *testing.T) {
	symbols := NewSymbolTable()
	k, err := Type(NewBinary(LtOp, NewLit(IntLit(1)), NewLit(IntLit(2))), symbols)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(k, BoolKind))
}

func TestTypeOfUnaryNot(t *testing.T) {
	symbols := NewSymbolTable()
	k, err := Type(NewUnary(NotOp, NewLit(BoolLit(true))), symbols)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(k, BoolKind))
}

func TestTypeOfUnaryNeg(t *testing.T) {
	symbols := NewSymbolTable()
	k, err := Type(NewUnary(NegOp, NewLit(IntLit(3))), symbols)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(k, IntKind))
}

func TestTypeIsMemoized(t *testing.T) {
	symbols := NewSymbolTable()
	x := NewLit(IntLit(3))
	_, err := Type(x, symbols)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNotNil(x.Meta().CachedType))
	qt.Assert(t, qt.Equals(*x.Meta().CachedType, IntKind))
}

func TestTypeOfRootIsBool(t *testing.T) {
	symbols := NewSymbolTable()
	k, err := Type(NewRoot(NewLit(BoolLit(true))), symbols)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(k, BoolKind))
}

func TestTypeOfBubbleIsBodyType(t *testing.T) {
	symbols := NewSymbolTable()
	k, err := Type(NewBubble(NewLit(IntLit(1)), NewLit(BoolLit(true))), symbols)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(k, IntKind))
}
