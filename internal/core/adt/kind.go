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

// Kind is a bitmask classifying the return type of an expression or
// declaration, closed over the constraint-model's domain variants.
type Kind uint16

const (
	BottomKind Kind = 0

	BoolKind Kind = 1 << iota
	IntKind
	SetKind
	MSetKind
	TupleKind
	RecordKind
	MatrixKind
	FunctionKind

	// UnknownKind is used only while type-checking empty abstract literals
	// , e.g. an empty set literal `{}` whose element type is not yet determined
	// from context.
	UnknownKind

	TopKind = BoolKind | IntKind | SetKind | MSetKind | TupleKind |
		RecordKind | MatrixKind | FunctionKind
)

func (k Kind) String() string {
	if k == BottomKind {
		return "_|_"
	}
	if k == UnknownKind {
		return "unknown"
	}
	names := []struct {
		k Kind
		s string
	}{
		{BoolKind, "bool"}, {IntKind, "int"}, {SetKind, "set"},
		{MSetKind, "mset"}, {TupleKind, "tuple"}, {RecordKind, "record"},
		{MatrixKind, "matrix"}, {FunctionKind, "function"},
	}
	out := ""
	for _, n := range names {
		if k&n.k != 0 {
			if out != "" {
				out += "|"
			}
			out += n.s
		}
	}
	if out == "" {
		return "bottom"
	}
	return out
}

// Typeable is implemented by expressions and declarations whose return
// type can be derived from their constructor and children.
type Typeable interface {
	Type(*SymbolTable) (Kind, error)
}
