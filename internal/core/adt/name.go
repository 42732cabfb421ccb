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

// Package adt holds the expression AST, the domain/type model and the
// symbol table: the data model a rule rewrites over.
package adt

import (
	"fmt"
	"strings"
)

// A Name identifies a declaration. Equality is structural, so Names are
// comparable with == only when all of their fields are themselves
// comparable; UserName and MachineName are plain comparable values,
// RepresentedName embeds a Name and is comparable iff its Original is.
type Name interface {
	isName()
	String() string
}

// UserName is an opaque user-supplied identifier, e.g. a variable declared
// with `find x : int(1..3)`.
type UserName string

func (UserName) isName()          {}
func (n UserName) String() string { return string(n) }

// MachineName is a name minted by the compiler itself (fresh auxiliary
// variables introduced by a rule's Reduction), never written by a user.
type MachineName int64

func (MachineName) isName()          {}
func (n MachineName) String() string { return fmt.Sprintf("__%d", int64(n)) }

// RepresentedName is the name of one of the k concrete declarations a
// Representation refines an abstract variable into. Tags record the scheme
// chain applied (innermost last), Index distinguishes sibling concrete
// variables produced by the same scheme (e.g. tuple_to_atom's N_1, N_2,...).
type RepresentedName struct {
	Original Name
	Tags     []string
	Index    int
}

func (RepresentedName) isName() {}

func (n RepresentedName) String() string {
	var b strings.Builder
	b.WriteString(n.Original.String())
	for _, t := range n.Tags {
		b.WriteByte('_')
		b.WriteString(t)
	}
	if n.Index > 0 {
		fmt.Fprintf(&b, "_%d", n.Index)
	}
	return b.String()
}

// NamesEqual reports structural equality between two Names, recursing
// through RepresentedName wrapping.
func NamesEqual(a, b Name) bool {
	switch a := a.(type) {
	case UserName:
		b, ok := b.(UserName)
		return ok && a == b
	case MachineName:
		b, ok := b.(MachineName)
		return ok && a == b
	case RepresentedName:
		b, ok := b.(RepresentedName)
		if !ok || a.Index != b.Index || len(a.Tags) != len(b.Tags) {
			return false
		}
		for i := range a.Tags {
			if a.Tags[i] != b.Tags[i] {
				return false
			}
		}
		return NamesEqual(a.Original, b.Original)
	default:
		return false
	}
}
