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

package represent

import (
	"fmt"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
)

func init() {
	Register("tuple_to_atom", initTupleToAtom)
}

// TupleToAtom refines `tuple(d1, ..., dn)` into n fresh atomic variables
// `x_1 .. x_n`, one per element domain, grounded on
// conjure-cp-rules/src/representation/tuple_to_atom.rs.
type TupleToAtom struct {
	srcVar  adt.Name
	elems   []adt.Domain
}

func initTupleToAtom(name adt.Name, symbols *adt.SymbolTable) (Representation, bool) {
	dom, err := symbols.ResolveDomain(name)
	if err != nil {
		return nil, false
	}
	tup, ok := dom.(adt.TupleDomain)
	if !ok {
		return nil, false
	}
	return &TupleToAtom{srcVar: name, elems: tup.Elems}, true
}

func (r *TupleToAtom) ReprName() string      { return "tuple_to_atom" }
func (r *TupleToAtom) VariableName() adt.Name { return r.srcVar }

func (r *TupleToAtom) elemName(i int) adt.Name {
	return adt.RepresentedName{Original: r.srcVar, Tags: []string{r.ReprName()}, Index: i + 1}
}

func (r *TupleToAtom) ValueDown(value adt.Literal) (map[adt.Name]adt.Literal, error) {
	lit, ok := value.(adt.AbstractLiteral)
	if !ok || lit.Shape != adt.AbstractTuple {
		return nil, fmt.Errorf("represent: tuple_to_atom.ValueDown: not a tuple literal")
	}
	out := make(map[adt.Name]adt.Literal, len(lit.Elems))
	for i, e := range lit.Elems {
		out[r.elemName(i)] = e
	}
	return out, nil
}

func (r *TupleToAtom) ValueUp(values map[adt.Name]adt.Literal) (adt.Literal, error) {
	elems := make([]adt.Literal, len(r.elems))
	for i := range r.elems {
		v, ok := values[r.elemName(i)]
		if !ok {
			return nil, fmt.Errorf("represent: tuple_to_atom.ValueUp: missing %s", r.elemName(i))
		}
		elems[i] = v
	}
	return adt.AbstractLiteral{Shape: adt.AbstractTuple, Elems: elems}, nil
}

func (r *TupleToAtom) ExpressionDown(symbols *adt.SymbolTable) (map[adt.Name]adt.Expr, error) {
	out := make(map[adt.Name]adt.Expr, len(r.elems))
	for i := range r.elems {
		name := r.elemName(i)
		if _, ok := symbols.Lookup(name); !ok {
			return nil, fmt.Errorf("represent: tuple_to_atom.ExpressionDown: %s not declared", name)
		}
		out[name] = adt.NewRef(name)
	}
	return out, nil
}

func (r *TupleToAtom) DeclarationDown() ([]adt.Declaration, error) {
	decls := make([]adt.Declaration, len(r.elems))
	for i, dom := range r.elems {
		decls[i] = adt.NewVar(r.elemName(i), dom, adt.CategoryDecision)
	}
	return decls, nil
}
