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

func TestIntDomainNormalizeMergesAdjacent(t *testing.T) {
	d := IntDomain{Ranges: []Range{Single(3), Bounded(1, 2), Single(10)}}
	got := d.Normalize()
	qt.Assert(t, qt.Equals(got.String(), "int(1..3,10)"))
}

func TestIntDomainUnion(t *testing.T) {
	a := IntDomain{Ranges: []Range{Bounded(1, 3)}}
	b := IntDomain{Ranges: []Range{Bounded(3, 5)}}
	got := a.Union(b)
	qt.Assert(t, qt.Equals(got.String(), "int(1..5)"))
}

func TestIntDomainIntersect(t *testing.T) {
	a := IntDomain{Ranges: []Range{Bounded(1, 5)}}
	b := IntDomain{Ranges: []Range{Bounded(3, 8)}}
	got, err := a.Intersect(b)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.String(), "int(3..5)"))
}

func TestIntDomainIntersectEmpty(t *testing.T) {
	a := IntDomain{Ranges: []Range{Bounded(1, 2)}}
	b := IntDomain{Ranges: []Range{Bounded(5, 6)}}
	got, err := a.Intersect(b)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(got.Ranges, 0))
}

func TestIntDomainEnumerate(t *testing.T) {
	d := IntDomain{Ranges: []Range{Bounded(1, 3), Single(7)}}
	got, err := d.Enumerate()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(got, []int64{1, 2, 3, 7}))
}

func TestIntDomainEnumerateUnboundedFails(t *testing.T) {
	d := IntDomain{Ranges: []Range{UnboundedR(0)}}
	_, err := d.Enumerate()
	qt.Assert(t, qt.ErrorMatches(err, "Unbounded:.*"))
}

func TestIntDomainSize(t *testing.T) {
	d := IntDomain{Ranges: []Range{Bounded(1, 10), Single(20)}}
	got, err := d.Size()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, int64(11)))
}

func TestIntDomainSizeUnboundedFails(t *testing.T) {
	d := IntDomain{Ranges: []Range{Unbounded()}}
	_, err := d.Size()
	qt.Assert(t, qt.IsNotNil(err))
}

func TestIsGroundDetectsReference(t *testing.T) {
	qt.Assert(t, qt.IsFalse(IsGround(ReferenceDomain{Name: UserName("n")})))
	qt.Assert(t, qt.IsTrue(IsGround(IntDomain{Ranges: []Range{Single(1)}})))
	qt.Assert(t, qt.IsFalse(IsGround(SetDomain{Elem: ReferenceDomain{Name: UserName("n")}})))
}

func TestResolveIdempotentOnGroundDomain(t *testing.T) {
	symbols := NewSymbolTable()
	dom := IntDomain{Ranges: []Range{Bounded(1, 9)}}
	got, err := Resolve(dom, symbols)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.String(), dom.String()))
}

func TestResolveFollowsDomainLetting(t *testing.T) {
	symbols := NewSymbolTable()
	symbols.Insert(NewDomainLetting(UserName("D"), IntDomain{Ranges: []Range{Bounded(1, 9)}}))
	got, err := Resolve(ReferenceDomain{Name: UserName("D")}, symbols)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got.String(), "int(1..9)"))
}

func TestResolveDetectsCycle(t *testing.T) {
	symbols := NewSymbolTable()
	symbols.Insert(NewDomainLetting(UserName("A"), ReferenceDomain{Name: UserName("B")}))
	symbols.Insert(NewDomainLetting(UserName("B"), ReferenceDomain{Name: UserName("A")}))
	_, err := Resolve(ReferenceDomain{Name: UserName("A")}, symbols)
	qt.Assert(t, qt.IsNotNil(err))
}

func TestResolveDanglingReferenceFails(t *testing.T) {
	symbols := NewSymbolTable()
	_, err := Resolve(ReferenceDomain{Name: UserName("missing")}, symbols)
	qt.Assert(t, qt.IsNotNil(err))
}
