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

import "sync/atomic"

// Category describes the kind of symbols a term contains, in the strict
// order constant < parameter < quantified < decision, grounded on the
// original implementation's ast::categories::Category.
type Category int

const (
	CategoryBottom Category = iota
	CategoryConstant
	CategoryParameter
	CategoryQuantified
	CategoryDecision
)

func (c Category) String() string {
	switch c {
	case CategoryConstant:
		return "constant"
	case CategoryParameter:
		return "parameter"
	case CategoryQuantified:
		return "quantified"
	case CategoryDecision:
		return "decision"
	default:
		return "_|_"
	}
}

var declIDCounter uint64

// nextDeclID mints a process-unique id, used for pointer-equality through
// JSON serialization.
func nextDeclID() uint64 {
	return atomic.AddUint64(&declIDCounter, 1)
}

// Declaration is the closed variant from: Var, ValueLetting, DomainLetting,
// RecordField.
type Declaration interface {
	isDeclaration()
	ID() uint64
	DeclName() Name
}

type declBase struct {
	id   uint64
	Name Name
}

func (d declBase) ID() uint64      { return d.id }
func (d declBase) DeclName() Name  { return d.Name }

// Var is a decision variable or other declared variable, carrying its
// domain and category.
type Var struct {
	declBase
	Domain   Domain
	Category Category
}

func (*Var) isDeclaration() {}

// NewVar creates a fresh Var declaration with a unique id.
func NewVar(name Name, dom Domain, cat Category) *Var {
	return &Var{declBase: declBase{id: nextDeclID(), Name: name}, Domain: dom, Category: cat}
}

// ValueLetting is a named constant value, e.g. `letting n be 4`.
type ValueLetting struct {
	declBase
	Expr Expr
}

func (*ValueLetting) isDeclaration() {}

func NewValueLetting(name Name, expr Expr) *ValueLetting {
	return &ValueLetting{declBase: declBase{id: nextDeclID(), Name: name}, Expr: expr}
}

// DomainLetting is a named domain, e.g. `letting D be domain int(1..9)`.
type DomainLetting struct {
	declBase
	Domain Domain
}

func (*DomainLetting) isDeclaration() {}

func NewDomainLetting(name Name, dom Domain) *DomainLetting {
	return &DomainLetting{declBase: declBase{id: nextDeclID(), Name: name}, Domain: dom}
}

// RecordField is a single field entry of a record declaration; it has no
// Category in isolation.
type RecordField struct {
	declBase
	Domain Domain
}

func (*RecordField) isDeclaration() {}

func NewRecordField(name Name, dom Domain) *RecordField {
	return &RecordField{declBase: declBase{id: nextDeclID(), Name: name}, Domain: dom}
}
