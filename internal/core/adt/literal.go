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

import "fmt"

// Literal is the closed tagged variant from: Int(i64) | Bool |
// AbstractLiteral(Matrix/Set/Tuple/Record of Literal).
type Literal interface {
	isLiteral()
	Kind() Kind
	String() string
}

// IntLit is a concrete integer literal.
type IntLit int64

func (IntLit) isLiteral()     {}
func (IntLit) Kind() Kind     { return IntKind }
func (l IntLit) String() string { return fmt.Sprintf("%d", int64(l)) }

// BoolLit is a concrete boolean literal.
type BoolLit bool

func (BoolLit) isLiteral()     {}
func (BoolLit) Kind() Kind     { return BoolKind }
func (l BoolLit) String() string {
	if l {
		return "true"
	}
	return "false"
}

// AbstractKind distinguishes the four abstract literal shapes.
type AbstractKind int

const (
	AbstractMatrix AbstractKind = iota
	AbstractSet
	AbstractTuple
	AbstractRecord
)

// AbstractLiteral is a literal matrix, set, tuple, or record: a composite
// of nested Literals.
type AbstractLiteral struct {
	Shape  AbstractKind
	Elems  []Literal            // Matrix, Set, Tuple
	Fields map[Name]Literal     // Record only
	Order  []Name               // Record field order, for deterministic printing
}

func (AbstractLiteral) isLiteral() {}

func (l AbstractLiteral) Kind() Kind {
	switch l.Shape {
	case AbstractMatrix:
		return MatrixKind
	case AbstractSet:
		return SetKind
	case AbstractTuple:
		return TupleKind
	case AbstractRecord:
		return RecordKind
	default:
		return UnknownKind
	}
}

func (l AbstractLiteral) String() string {
	open, close := "[", "]"
	switch l.Shape {
	case AbstractSet:
		open, close = "{", "}"
	case AbstractTuple:
		open, close = "(", ")"
	case AbstractRecord:
		s := "record {"
		for i, n := range l.Order {
			if i > 0 {
				s += ", "
			}
			s += n.String() + ": " + l.Fields[n].String()
		}
		return s + "}"
	}
	s := open
	for i, e := range l.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + close
}

// LiteralsEqual reports structural equality of two literals.
func LiteralsEqual(a, b Literal) bool {
	switch a := a.(type) {
	case IntLit:
		b, ok := b.(IntLit)
		return ok && a == b
	case BoolLit:
		b, ok := b.(BoolLit)
		return ok && a == b
	case AbstractLiteral:
		b, ok := b.(AbstractLiteral)
		if !ok || a.Shape != b.Shape || len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !LiteralsEqual(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		if a.Shape == AbstractRecord {
			if len(a.Order) != len(b.Order) {
				return false
			}
			for i, n := range a.Order {
				if !NamesEqual(n, b.Order[i]) {
					return false
				}
				if !LiteralsEqual(a.Fields[n], b.Fields[b.Order[i]]) {
					return false
				}
			}
		}
		return true
	default:
		return false
	}
}
