// Copyright 2018 The CUE Authors
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

package errors

import (
	"testing"
)

func TestModelInvalid_Error(t *testing.T) {
	err := ModelInvalid("dangling reference to %q", "x")
	if got, want := err.Error(), `dangling reference to "x"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if err.Kind() != ModelInvalidKind {
		t.Errorf("Kind() = %v, want ModelInvalid", err.Kind())
	}
}

func TestWrapfPreservesKindAndChain(t *testing.T) {
	inner := Newf(DomainOp, Pos{Line: 3, Column: 1}, "unbounded domain")
	err := Wrapf(RuleSetResolution, inner, Pos{}, "while resolving rule set %q", "normalisation")
	if err.Kind() != RuleSetResolution {
		t.Errorf("Kind() = %v, want RuleSetResolution", err.Kind())
	}
	if got, want := err.Error(), `while resolving rule set "normalisation": unbounded domain`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestPositionsIncludesWrappedInputPositions(t *testing.T) {
	a := Pos{Filename: "m.essence", Line: 2, Column: 1}
	b := Pos{Filename: "m.essence", Line: 1, Column: 1}
	err := Wrapf(ModelInvalidKind, Newf(ModelInvalidKind, b, "prior declaration"), a, "conflict")
	got := Positions(err)
	if len(got) != 2 || got[0] != b || got[1] != a {
		t.Errorf("Positions() = %v, want [%v %v]", got, b, a)
	}
}

func TestListAggregatesMessages(t *testing.T) {
	var l List
	l = l.Add(ModelInvalid("first"))
	l = l.Add(ModelInvalid("second"))
	if len(l) != 2 {
		t.Fatalf("len(l) = %d, want 2", len(l))
	}
	if got, want := l.Error(), "first\nsecond"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestBugPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Bug did not panic")
		}
	}()
	Bug("unreachable: %s", "ground resolution cycle")
}
