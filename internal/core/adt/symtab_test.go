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

func TestSymbolTableInsertIsFreshOnce(t *testing.T) {
	s := NewSymbolTable()
	_, fresh := s.Insert(NewValueLetting(UserName("n"), NewLit(IntLit(1))))
	qt.Assert(t, qt.IsTrue(fresh))

	_, fresh = s.Insert(NewValueLetting(UserName("n"), NewLit(IntLit(2))))
	qt.Assert(t, qt.IsFalse(fresh))

	got, _ := s.LookupLocal(UserName("n"))
	qt.Assert(t, qt.Equals(got.(*ValueLetting).Expr.(*Lit).Value.(IntLit), IntLit(1)))
}

func TestSymbolTableUpdateInsertReplaces(t *testing.T) {
	s := NewSymbolTable()
	s.Insert(NewValueLetting(UserName("n"), NewLit(IntLit(1))))
	prior := s.UpdateInsert(NewValueLetting(UserName("n"), NewLit(IntLit(2))))
	qt.Assert(t, qt.IsNotNil(prior))

	got, _ := s.LookupLocal(UserName("n"))
	qt.Assert(t, qt.Equals(got.(*ValueLetting).Expr.(*Lit).Value.(IntLit), IntLit(2)))
}

func TestSymbolTableLookupWalksParentChain(t *testing.T) {
	parent := NewSymbolTable()
	parent.Insert(NewValueLetting(UserName("outer"), NewLit(IntLit(7))))
	child := NewChildScope(parent)

	_, ok := child.LookupLocal(UserName("outer"))
	qt.Assert(t, qt.IsFalse(ok))

	decl, ok := child.Lookup(UserName("outer"))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(decl.DeclName().String(), "outer"))
}

func TestSymbolTableOrderIsDeterministic(t *testing.T) {
	s := NewSymbolTable()
	s.Insert(NewValueLetting(UserName("b"), NewLit(IntLit(1))))
	s.Insert(NewValueLetting(UserName("a"), NewLit(IntLit(2))))
	order := s.Order()
	qt.Assert(t, qt.DeepEquals(order, []Name{UserName("b"), UserName("a")}))
}

func TestSymbolTableAllSkipsShadowed(t *testing.T) {
	parent := NewSymbolTable()
	parent.Insert(NewValueLetting(UserName("x"), NewLit(IntLit(1))))
	child := NewChildScope(parent)
	child.Insert(NewValueLetting(UserName("x"), NewLit(IntLit(2))))

	all := child.All()
	qt.Assert(t, qt.HasLen(all, 1))
	qt.Assert(t, qt.Equals(all[0].(*ValueLetting).Expr.(*Lit).Value.(IntLit), IntLit(2)))
}

func TestSymbolTableCloneIsIndependent(t *testing.T) {
	s := NewSymbolTable()
	s.Insert(NewValueLetting(UserName("x"), NewLit(IntLit(1))))
	cp := s.Clone()
	cp.Insert(NewValueLetting(UserName("y"), NewLit(IntLit(2))))

	_, ok := s.LookupLocal(UserName("y"))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestGetOrAddRepresentationIsIdempotent(t *testing.T) {
	s := NewSymbolTable()
	applicable := func(string) bool { return true }
	first, ok := s.GetOrAddRepresentation(UserName("v"), []string{"matrix_to_atom"}, applicable)
	qt.Assert(t, qt.IsTrue(ok))

	second, ok := s.GetOrAddRepresentation(UserName("v"), []string{"tuple_to_atom"}, applicable)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(second, first))
}

func TestGetOrAddRepresentationNoneApplicable(t *testing.T) {
	s := NewSymbolTable()
	_, ok := s.GetOrAddRepresentation(UserName("v"), []string{"matrix_to_atom"}, func(string) bool { return false })
	qt.Assert(t, qt.IsFalse(ok))
}

func TestResolveDomainFollowsLetting(t *testing.T) {
	s := NewSymbolTable()
	s.Insert(NewDomainLetting(UserName("D"), IntDomain{Ranges: []Range{Bounded(1, 5)}}))
	s.Insert(NewVar(UserName("x"), ReferenceDomain{Name: UserName("D")}, CategoryDecision))

	dom, err := s.ResolveDomain(UserName("x"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(dom.String(), "int(1..5)"))
}
