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

func TestStructurallyEqualIgnoresMetadata(t *testing.T) {
	a := NewLit(IntLit(3))
	b := NewLit(IntLit(3))
	a.Meta().Clean = true
	qt.Assert(t, qt.IsTrue(StructurallyEqual(a, b)))
}

func TestStructurallyEqualReferencesCompareByName(t *testing.T) {
	a := NewRef(UserName("x"))
	b := NewRef(UserName("x"))
	a.Decl = NewVar(UserName("x"), IntDomain{}, CategoryDecision)
	// b.Decl left nil: same name, different resolution state.
	qt.Assert(t, qt.IsTrue(StructurallyEqual(a, b)))
}

func TestStructurallyEqualDetectsDifferentOp(t *testing.T) {
	a := NewBinary(LtOp, NewLit(IntLit(1)), NewLit(IntLit(2)))
	b := NewBinary(LeqOp, NewLit(IntLit(1)), NewLit(IntLit(2)))
	qt.Assert(t, qt.IsFalse(StructurallyEqual(a, b)))
}

func TestStructurallyEqualNary(t *testing.T) {
	a := NewNary(SumOp, NewLit(IntLit(1)), NewLit(IntLit(2)))
	b := NewNary(SumOp, NewLit(IntLit(1)), NewLit(IntLit(2)))
	c := NewNary(SumOp, NewLit(IntLit(2)), NewLit(IntLit(1)))
	qt.Assert(t, qt.IsTrue(StructurallyEqual(a, b)))
	qt.Assert(t, qt.IsFalse(StructurallyEqual(a, c)))
}

func TestStructurallyEqualNilHandling(t *testing.T) {
	qt.Assert(t, qt.IsTrue(StructurallyEqual(nil, nil)))
	qt.Assert(t, qt.IsFalse(StructurallyEqual(nil, NewLit(BoolLit(true)))))
}

func TestStructurallyEqualFlattenAndInDomain(t *testing.T) {
	x := NewLit(IntLit(1))
	a := NewFlatten(x)
	b := NewFlatten(NewLit(IntLit(1)))
	qt.Assert(t, qt.IsTrue(StructurallyEqual(a, b)))

	d1 := NewInDomain(x, IntDomain{Ranges: []Range{Bounded(1, 5)}})
	d2 := NewInDomain(NewLit(IntLit(1)), IntDomain{Ranges: []Range{Bounded(1, 5)}})
	qt.Assert(t, qt.IsTrue(StructurallyEqual(d1, d2)))
}
