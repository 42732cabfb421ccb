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

func TestSelectRepresentationPicksFirstCandidate(t *testing.T) {
	symbols := adt.NewSymbolTable()
	name := adt.UserName("x")
	symbols.Insert(adt.NewVar(name, adt.IntDomain{Ranges: []adt.Range{adt.Bounded(0, 3)}}, adt.CategoryDecision))
	ref := adt.NewRef(name)
	ref.Decl, _ = symbols.Lookup(name)

	red, err := selectRepresentation(ref, symbols)
	qt.Assert(t, qt.IsNil(err))

	newRef := red.NewExpr.(*adt.Ref)
	qt.Assert(t, qt.Equals(len(newRef.Repr), 1))
	qt.Assert(t, qt.Equals(newRef.Repr[0], "sat_bitvector_int"))
	qt.Assert(t, qt.IsTrue(len(red.NewSymbols) > 0))
}

func TestSelectRepresentationNotApplicableWhenAlreadyChosen(t *testing.T) {
	symbols := adt.NewSymbolTable()
	name := adt.UserName("x")
	symbols.Insert(adt.NewVar(name, adt.IntDomain{Ranges: []adt.Range{adt.Bounded(0, 3)}}, adt.CategoryDecision))
	ref := adt.NewRef(name)
	ref.Decl, _ = symbols.Lookup(name)
	ref.Repr = []string{"sat_direct_int"}

	_, err := selectRepresentation(ref, symbols)
	qt.Assert(t, qt.Equals(err, RuleNotApplicable))
}

func TestSelectRepresentationNotApplicableForNonVarDecl(t *testing.T) {
	letting := adt.NewValueLetting(adt.UserName("n"), adt.NewLit(adt.IntLit(5)))
	ref := adt.NewRef(adt.UserName("n"))
	ref.Decl = letting
	_, err := selectRepresentation(ref, adt.NewSymbolTable())
	qt.Assert(t, qt.Equals(err, RuleNotApplicable))
}
