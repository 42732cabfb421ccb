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
	"strconv"
	"strings"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
)

func init() {
	Register("matrix_to_atom", initMatrixToAtom)
}

// MatrixToAtom refines `matrix indexed by [i1,...,ik] of elem` into one
// fresh atomic variable per cell, indexed by the Cartesian product of the
// index domains (original_source's tuple_to_atom.rs generalized to the
// k-dimensional matrix case;).
type MatrixToAtom struct {
	srcVar  adt.Name
	elem    adt.Domain
	indices [][]int64 // each index domain's enumerated values, in order
}

func initMatrixToAtom(name adt.Name, symbols *adt.SymbolTable) (Representation, bool) {
	dom, err := symbols.ResolveDomain(name)
	if err != nil {
		return nil, false
	}
	mat, ok := dom.(adt.MatrixDomain)
	if !ok {
		return nil, false
	}
	indices := make([][]int64, len(mat.Indices))
	for i, idxDom := range mat.Indices {
		intDom, ok := idxDom.(adt.IntDomain)
		if !ok {
			return nil, false
		}
		vals, err := intDom.Enumerate()
		if err != nil {
			return nil, false
		}
		indices[i] = vals
	}
	return &MatrixToAtom{srcVar: name, elem: mat.Elem, indices: indices}, true
}

func (r *MatrixToAtom) ReprName() string       { return "matrix_to_atom" }
func (r *MatrixToAtom) VariableName() adt.Name { return r.srcVar }

// cells enumerates every index tuple in row-major order.
func (r *MatrixToAtom) cells() [][]int64 {
	if len(r.indices) == 0 {
		return nil
	}
	cells := [][]int64{{}}
	for _, dim := range r.indices {
		var next [][]int64
		for _, prefix := range cells {
			for _, v := range dim {
				cell := append(append([]int64(nil), prefix...), v)
				next = append(next, cell)
			}
		}
		cells = next
	}
	return cells
}

func (r *MatrixToAtom) cellName(cell []int64) adt.Name {
	parts := make([]string, len(cell))
	for i, v := range cell {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return adt.RepresentedName{Original: r.srcVar, Tags: []string{r.ReprName(), strings.Join(parts, "_")}}
}

func (r *MatrixToAtom) ValueDown(value adt.Literal) (map[adt.Name]adt.Literal, error) {
	lit, ok := value.(adt.AbstractLiteral)
	if !ok || lit.Shape != adt.AbstractMatrix {
		return nil, fmt.Errorf("represent: matrix_to_atom.ValueDown: not a matrix literal")
	}
	cells := r.cells()
	if len(lit.Elems) != len(cells) {
		return nil, fmt.Errorf("represent: matrix_to_atom.ValueDown: element count mismatch")
	}
	out := make(map[adt.Name]adt.Literal, len(cells))
	for i, cell := range cells {
		out[r.cellName(cell)] = lit.Elems[i]
	}
	return out, nil
}

func (r *MatrixToAtom) ValueUp(values map[adt.Name]adt.Literal) (adt.Literal, error) {
	cells := r.cells()
	elems := make([]adt.Literal, len(cells))
	for i, cell := range cells {
		v, ok := values[r.cellName(cell)]
		if !ok {
			return nil, fmt.Errorf("represent: matrix_to_atom.ValueUp: missing %s", r.cellName(cell))
		}
		elems[i] = v
	}
	return adt.AbstractLiteral{Shape: adt.AbstractMatrix, Elems: elems}, nil
}

func (r *MatrixToAtom) ExpressionDown(symbols *adt.SymbolTable) (map[adt.Name]adt.Expr, error) {
	out := map[adt.Name]adt.Expr{}
	for _, cell := range r.cells() {
		name := r.cellName(cell)
		if _, ok := symbols.Lookup(name); !ok {
			return nil, fmt.Errorf("represent: matrix_to_atom.ExpressionDown: %s not declared", name)
		}
		out[name] = adt.NewRef(name)
	}
	return out, nil
}

func (r *MatrixToAtom) DeclarationDown() ([]adt.Declaration, error) {
	cells := r.cells()
	decls := make([]adt.Declaration, len(cells))
	for i, cell := range cells {
		decls[i] = adt.NewVar(r.cellName(cell), r.elem, adt.CategoryDecision)
	}
	return decls, nil
}
