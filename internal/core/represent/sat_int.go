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
	"math/bits"
	"strconv"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
)

// Three schemes encode a bounded IntDomain as booleans, for solver families
// with no native integer support (sat, and smt's optional bitvector
// theory). There is no direct original_source analogue for the boolean
// encodings themselves (sat_rs only wraps an existing SAT instance, see
// solvers/sat_rs/src/sat_tree.rs's mk_lit), so these follow the standard
// CP-to-SAT literature encodings while keeping sat_rs's var/lit-per-integer
// naming idiom.

func init() {
	Register("sat_direct_int", initDirectIntEncoding)
	Register("sat_order_int", initOrderIntEncoding)
	Register("sat_bitvector_int", initBitvectorIntEncoding)
}

func boundedIntDomain(name adt.Name, symbols *adt.SymbolTable) (adt.IntDomain, []int64, bool) {
	dom, err := symbols.ResolveDomain(name)
	if err != nil {
		return adt.IntDomain{}, nil, false
	}
	intDom, ok := dom.(adt.IntDomain)
	if !ok || !intDom.Bounded() {
		return adt.IntDomain{}, nil, false
	}
	vals, err := intDom.Enumerate()
	if err != nil {
		return adt.IntDomain{}, nil, false
	}
	return intDom, vals, true
}

// DirectIntEncoding assigns one boolean per domain value: exactly one is
// true.
type DirectIntEncoding struct {
	srcVar adt.Name
	values []int64
}

func initDirectIntEncoding(name adt.Name, symbols *adt.SymbolTable) (Representation, bool) {
	_, vals, ok := boundedIntDomain(name, symbols)
	if !ok {
		return nil, false
	}
	return &DirectIntEncoding{srcVar: name, values: vals}, true
}

func (r *DirectIntEncoding) ReprName() string       { return "sat_direct_int" }
func (r *DirectIntEncoding) VariableName() adt.Name { return r.srcVar }

func (r *DirectIntEncoding) boolName(v int64) adt.Name {
	return adt.RepresentedName{Original: r.srcVar, Tags: []string{r.ReprName(), strconv.FormatInt(v, 10)}}
}

func (r *DirectIntEncoding) ValueDown(value adt.Literal) (map[adt.Name]adt.Literal, error) {
	iv, ok := value.(adt.IntLit)
	if !ok {
		return nil, fmt.Errorf("represent: sat_direct_int.ValueDown: not an int literal")
	}
	out := make(map[adt.Name]adt.Literal, len(r.values))
	for _, v := range r.values {
		out[r.boolName(v)] = adt.BoolLit(int64(iv) == v)
	}
	return out, nil
}

func (r *DirectIntEncoding) ValueUp(values map[adt.Name]adt.Literal) (adt.Literal, error) {
	for _, v := range r.values {
		b, ok := values[r.boolName(v)]
		if ok && bool(b.(adt.BoolLit)) {
			return adt.IntLit(v), nil
		}
	}
	return nil, fmt.Errorf("represent: sat_direct_int.ValueUp: no value selected")
}

func (r *DirectIntEncoding) ExpressionDown(symbols *adt.SymbolTable) (map[adt.Name]adt.Expr, error) {
	out := make(map[adt.Name]adt.Expr, len(r.values))
	for _, v := range r.values {
		out[r.boolName(v)] = adt.NewRef(r.boolName(v))
	}
	return out, nil
}

func (r *DirectIntEncoding) DeclarationDown() ([]adt.Declaration, error) {
	decls := make([]adt.Declaration, len(r.values))
	for i, v := range r.values {
		decls[i] = adt.NewVar(r.boolName(v), adt.BoolDomain{}, adt.CategoryDecision)
	}
	return decls, nil
}

// OrderIntEncoding assigns one boolean per threshold `x <= v` for every v
// but the last, monotone by construction.
type OrderIntEncoding struct {
	srcVar adt.Name
	values []int64
}

func initOrderIntEncoding(name adt.Name, symbols *adt.SymbolTable) (Representation, bool) {
	_, vals, ok := boundedIntDomain(name, symbols)
	if !ok {
		return nil, false
	}
	return &OrderIntEncoding{srcVar: name, values: vals}, true
}

func (r *OrderIntEncoding) ReprName() string       { return "sat_order_int" }
func (r *OrderIntEncoding) VariableName() adt.Name { return r.srcVar }

func (r *OrderIntEncoding) thresholds() []int64 {
	if len(r.values) == 0 {
		return nil
	}
	return r.values[:len(r.values)-1]
}

func (r *OrderIntEncoding) boolName(v int64) adt.Name {
	return adt.RepresentedName{Original: r.srcVar, Tags: []string{r.ReprName(), "le", strconv.FormatInt(v, 10)}}
}

func (r *OrderIntEncoding) ValueDown(value adt.Literal) (map[adt.Name]adt.Literal, error) {
	iv, ok := value.(adt.IntLit)
	if !ok {
		return nil, fmt.Errorf("represent: sat_order_int.ValueDown: not an int literal")
	}
	out := make(map[adt.Name]adt.Literal, len(r.thresholds()))
	for _, v := range r.thresholds() {
		out[r.boolName(v)] = adt.BoolLit(int64(iv) <= v)
	}
	return out, nil
}

func (r *OrderIntEncoding) ValueUp(values map[adt.Name]adt.Literal) (adt.Literal, error) {
	for _, v := range r.thresholds() {
		b, ok := values[r.boolName(v)]
		if ok && bool(b.(adt.BoolLit)) {
			return adt.IntLit(v), nil
		}
	}
	if len(r.values) == 0 {
		return nil, fmt.Errorf("represent: sat_order_int.ValueUp: empty domain")
	}
	return adt.IntLit(r.values[len(r.values)-1]), nil
}

func (r *OrderIntEncoding) ExpressionDown(symbols *adt.SymbolTable) (map[adt.Name]adt.Expr, error) {
	out := make(map[adt.Name]adt.Expr, len(r.thresholds()))
	for _, v := range r.thresholds() {
		out[r.boolName(v)] = adt.NewRef(r.boolName(v))
	}
	return out, nil
}

func (r *OrderIntEncoding) DeclarationDown() ([]adt.Declaration, error) {
	ths := r.thresholds()
	decls := make([]adt.Declaration, len(ths))
	for i, v := range ths {
		decls[i] = adt.NewVar(r.boolName(v), adt.BoolDomain{}, adt.CategoryDecision)
	}
	return decls, nil
}

// BitvectorIntEncoding assigns ceil(log2(n)) booleans, one per bit of the
// value's offset from the domain's minimum.
type BitvectorIntEncoding struct {
	srcVar adt.Name
	min    int64
	nbits  int
}

func initBitvectorIntEncoding(name adt.Name, symbols *adt.SymbolTable) (Representation, bool) {
	_, vals, ok := boundedIntDomain(name, symbols)
	if !ok || len(vals) == 0 {
		return nil, false
	}
	span := vals[len(vals)-1] - vals[0]
	nbits := bits.Len64(uint64(span))
	if nbits == 0 {
		nbits = 1
	}
	return &BitvectorIntEncoding{srcVar: name, min: vals[0], nbits: nbits}, true
}

func (r *BitvectorIntEncoding) ReprName() string       { return "sat_bitvector_int" }
func (r *BitvectorIntEncoding) VariableName() adt.Name { return r.srcVar }

func (r *BitvectorIntEncoding) bitName(i int) adt.Name {
	return adt.RepresentedName{Original: r.srcVar, Tags: []string{r.ReprName(), "bit"}, Index: i + 1}
}

func (r *BitvectorIntEncoding) ValueDown(value adt.Literal) (map[adt.Name]adt.Literal, error) {
	iv, ok := value.(adt.IntLit)
	if !ok {
		return nil, fmt.Errorf("represent: sat_bitvector_int.ValueDown: not an int literal")
	}
	offset := uint64(int64(iv) - r.min)
	out := make(map[adt.Name]adt.Literal, r.nbits)
	for i := 0; i < r.nbits; i++ {
		out[r.bitName(i)] = adt.BoolLit(offset&(1<<uint(i)) != 0)
	}
	return out, nil
}

func (r *BitvectorIntEncoding) ValueUp(values map[adt.Name]adt.Literal) (adt.Literal, error) {
	var offset int64
	for i := 0; i < r.nbits; i++ {
		b, ok := values[r.bitName(i)]
		if !ok {
			return nil, fmt.Errorf("represent: sat_bitvector_int.ValueUp: missing bit %d", i)
		}
		if bool(b.(adt.BoolLit)) {
			offset |= 1 << uint(i)
		}
	}
	return adt.IntLit(r.min + offset), nil
}

func (r *BitvectorIntEncoding) ExpressionDown(symbols *adt.SymbolTable) (map[adt.Name]adt.Expr, error) {
	out := make(map[adt.Name]adt.Expr, r.nbits)
	for i := 0; i < r.nbits; i++ {
		out[r.bitName(i)] = adt.NewRef(r.bitName(i))
	}
	return out, nil
}

func (r *BitvectorIntEncoding) DeclarationDown() ([]adt.Declaration, error) {
	decls := make([]adt.Declaration, r.nbits)
	for i := 0; i < r.nbits; i++ {
		decls[i] = adt.NewVar(r.bitName(i), adt.BoolDomain{}, adt.CategoryDecision)
	}
	return decls, nil
}
