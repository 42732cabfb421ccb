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
	Register("record_to_atom", initRecordToAtom)
}

// RecordToAtom refines `record(f1: d1, ..., fn: dn)` into one fresh atomic
// variable per field, named after the field rather than a numeric index
// (the one respect in which it differs from TupleToAtom, mirroring
// original_source's separate record representation module).
type RecordToAtom struct {
	srcVar adt.Name
	fields []adt.RecordEntry
}

func initRecordToAtom(name adt.Name, symbols *adt.SymbolTable) (Representation, bool) {
	dom, err := symbols.ResolveDomain(name)
	if err != nil {
		return nil, false
	}
	rec, ok := dom.(adt.RecordDomain)
	if !ok {
		return nil, false
	}
	return &RecordToAtom{srcVar: name, fields: rec.Fields}, true
}

func (r *RecordToAtom) ReprName() string       { return "record_to_atom" }
func (r *RecordToAtom) VariableName() adt.Name { return r.srcVar }

func (r *RecordToAtom) fieldName(f adt.RecordEntry) adt.Name {
	return adt.RepresentedName{Original: r.srcVar, Tags: []string{r.ReprName(), f.Name.String()}}
}

func (r *RecordToAtom) ValueDown(value adt.Literal) (map[adt.Name]adt.Literal, error) {
	lit, ok := value.(adt.AbstractLiteral)
	if !ok || lit.Shape != adt.AbstractRecord {
		return nil, fmt.Errorf("represent: record_to_atom.ValueDown: not a record literal")
	}
	out := make(map[adt.Name]adt.Literal, len(r.fields))
	for _, f := range r.fields {
		v, ok := lit.Fields[f.Name]
		if !ok {
			return nil, fmt.Errorf("represent: record_to_atom.ValueDown: missing field %s", f.Name)
		}
		out[r.fieldName(f)] = v
	}
	return out, nil
}

func (r *RecordToAtom) ValueUp(values map[adt.Name]adt.Literal) (adt.Literal, error) {
	order := make([]adt.Name, len(r.fields))
	fields := make(map[adt.Name]adt.Literal, len(r.fields))
	for i, f := range r.fields {
		v, ok := values[r.fieldName(f)]
		if !ok {
			return nil, fmt.Errorf("represent: record_to_atom.ValueUp: missing %s", r.fieldName(f))
		}
		order[i] = f.Name
		fields[f.Name] = v
	}
	return adt.AbstractLiteral{Shape: adt.AbstractRecord, Order: order, Fields: fields}, nil
}

func (r *RecordToAtom) ExpressionDown(symbols *adt.SymbolTable) (map[adt.Name]adt.Expr, error) {
	out := make(map[adt.Name]adt.Expr, len(r.fields))
	for _, f := range r.fields {
		name := r.fieldName(f)
		if _, ok := symbols.Lookup(name); !ok {
			return nil, fmt.Errorf("represent: record_to_atom.ExpressionDown: %s not declared", name)
		}
		out[name] = adt.NewRef(name)
	}
	return out, nil
}

func (r *RecordToAtom) DeclarationDown() ([]adt.Declaration, error) {
	decls := make([]adt.Declaration, len(r.fields))
	for i, f := range r.fields {
		decls[i] = adt.NewVar(r.fieldName(f), f.Domain, adt.CategoryDecision)
	}
	return decls, nil
}
