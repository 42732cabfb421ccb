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

func sumExample() *Nary {
	return NewNary(SumOp, NewLit(IntLit(1)), NewLit(IntLit(2)), NewLit(IntLit(3)))
}

func TestWalkVisitsEveryNode(t *testing.T) {
	n := 0
	Walk(sumExample(), func(Expr) bool { n++; return true })
	qt.Assert(t, qt.Equals(n, 4)) // the Nary plus its three Lit children
}

func TestWalkStopsDescendingWhenVisitReturnsFalse(t *testing.T) {
	n := 0
	Walk(sumExample(), func(x Expr) bool {
		n++
		_, isNary := x.(*Nary)
		return !isNary
	})
	qt.Assert(t, qt.Equals(n, 1))
}

func TestWalkDoesNotEnterScope(t *testing.T) {
	sub := NewSubModel(NewSymbolTable(), NewLit(BoolLit(true)))
	scope := NewScope(sub)
	n := 0
	Walk(scope, func(Expr) bool { n++; return true })
	qt.Assert(t, qt.Equals(n, 1))
}

func TestTransformRebuildsOnlyChangedSubtrees(t *testing.T) {
	orig := sumExample()
	got := Transform(orig, func(x Expr) Expr {
		if lit, ok := x.(*Lit); ok {
			if v, ok := lit.Value.(IntLit); ok && v == 2 {
				return NewLit(IntLit(20))
			}
		}
		return x
	})
	nary := got.(*Nary)
	qt.Assert(t, qt.Equals(nary.Args[0].(*Lit).Value.(IntLit), IntLit(1)))
	qt.Assert(t, qt.Equals(nary.Args[1].(*Lit).Value.(IntLit), IntLit(20)))
	qt.Assert(t, qt.Equals(nary.Args[2].(*Lit).Value.(IntLit), IntLit(3)))
}

func TestTransformIsNoopWhenFIsIdentity(t *testing.T) {
	orig := sumExample()
	got := Transform(orig, func(x Expr) Expr { return x })
	qt.Assert(t, qt.IsTrue(StructurallyEqual(orig, got)))
}

func TestCount(t *testing.T) {
	qt.Assert(t, qt.Equals(Count(sumExample()), 4))
	qt.Assert(t, qt.Equals(Count(NewLit(BoolLit(true))), 1))
}
