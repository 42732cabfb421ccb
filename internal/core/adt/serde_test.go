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
	"encoding/json"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestEncodeSymbolsDeduplicatesSharedDeclaration(t *testing.T) {
	symbols := NewSymbolTable()
	v := NewVar(UserName("x"), IntDomain{Ranges: []Range{Bounded(1, 9)}}, CategoryDecision)
	symbols.Insert(v)
	symbols.Insert(NewValueLetting(UserName("n"), NewLit(IntLit(4))))

	snap, err := EncodeSymbols(symbols)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(snap.Decls, 2))
	qt.Assert(t, qt.Equals(snap.Decls[0].Kind, "var"))
	qt.Assert(t, qt.Equals(snap.Decls[0].ID, v.ID()))
}

func TestEncodeSymbolsRoundTripsThroughJSON(t *testing.T) {
	symbols := NewSymbolTable()
	symbols.Insert(NewDomainLetting(UserName("D"), IntDomain{Ranges: []Range{Bounded(1, 5)}}))

	snap, err := EncodeSymbols(symbols)
	qt.Assert(t, qt.IsNil(err))

	data, err := json.Marshal(snap)
	qt.Assert(t, qt.IsNil(err))

	var got SymbolTableSnapshot
	qt.Assert(t, qt.IsNil(json.Unmarshal(data, &got)))
	qt.Assert(t, qt.DeepEquals(got, snap))
}

func TestDeclRegistryRebuildsSharing(t *testing.T) {
	reg := NewDeclRegistry()
	v := NewVar(UserName("x"), IntDomain{Ranges: []Range{Bounded(1, 9)}}, CategoryDecision)
	reg.Put(v)

	got, ok := reg.Get(v.ID())
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(got, Declaration(v)))

	_, ok = reg.Get(v.ID() + 1000)
	qt.Assert(t, qt.IsFalse(ok))
}
