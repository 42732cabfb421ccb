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

// Package represent refines an abstract variable (matrix, tuple, record, or
// a solver-unsupported int domain) into one or more concrete declarations a
// target solver family can consume. It is grounded on original_source's
// conjure_core::representation::Representation trait, with representation
// schemes registering themselves into a package-level registry rather than
// living in separate subpackages.
package represent

import (
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
)

// Representation refines one abstract Var into concrete representation
// variables: value_down/value_up translate assignments across the
// refinement, expression_down/declaration_down produce the constraints and
// declarations that tie the concrete variables back to the abstract one.
type Representation interface {
	// VariableName is the abstract variable this Representation refines.
	VariableName() adt.Name
	// ValueDown maps an assignment of the abstract variable to assignments
	// of its representation variables.
	ValueDown(value adt.Literal) (map[adt.Name]adt.Literal, error)
	// ValueUp is ValueDown's inverse.
	ValueUp(values map[adt.Name]adt.Literal) (adt.Literal, error)
	// ExpressionDown returns, per representation variable, the expression
	// that reconstructs it from the abstract variable (or vice versa,
	// scheme-dependent); used to splice channelling constraints into the
	// model.
	ExpressionDown(symbols *adt.SymbolTable) (map[adt.Name]adt.Expr, error)
	// DeclarationDown creates the concrete declarations this scheme
	// introduces.
	DeclarationDown() ([]adt.Declaration, error)
	// ReprName is the scheme's registered name, e.g. "matrix_to_atom".
	ReprName() string
}

// Init constructs a Representation for name if the scheme applies to its
// current declaration in symbols, or reports ok=false if it doesn't (e.g.
// matrix_to_atom only applies to MatrixDomain variables).
type Init func(name adt.Name, symbols *adt.SymbolTable) (Representation, bool)

var registry = map[string]Init{}

// Register adds a representation scheme under name. Every scheme lives in
// this package and self-registers from an init() in its own file rather
// than living in a separate subpackage.
func Register(name string, init Init) {
	if _, exists := registry[name]; exists {
		panic("represent: duplicate registration for " + name)
	}
	registry[name] = init
}

// Get returns the Init function for a registered scheme name.
func Get(name string) (Init, bool) {
	init, ok := registry[name]
	return init, ok
}

// Names returns every registered scheme name, in registration order is not
// guaranteed (map iteration); callers that need determinism should sort.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

// Candidates returns the scheme names applicable, in registration-agnostic
// but deterministic (sorted) order, to the declaration currently bound to
// name in symbols. It is what select_representation (package rules) calls
// to build its GetOrAddRepresentation candidate list.
func Candidates(name adt.Name, symbols *adt.SymbolTable) []string {
	var out []string
	for schemeName, init := range registry {
		if _, ok := init(name, symbols); ok {
			out = append(out, schemeName)
		}
	}
	sortStrings(out)
	return out
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
