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

// Type derives x's return Kind from its constructor and children,
// memoizing the result in x's Metadata.
func Type(x Expr, symbols *SymbolTable) (Kind, error) {
	if m := x.Meta(); m.CachedType != nil {
		return *m.CachedType, nil
	}
	k, err := inferType(x, symbols)
	if err == nil {
		x.Meta().CachedType = &k
	}
	return k, err
}

func inferType(x Expr, symbols *SymbolTable) (Kind, error) {
	switch x := x.(type) {
	case *Lit:
		return x.Value.Kind(), nil
	case *Ref:
		decl, ok := symbols.Lookup(x.Name)
		if !ok {
			return BottomKind, newDomainErr(NotGround, "dangling reference %s", x.Name)
		}
		switch d := decl.(type) {
		case *Var:
			return d.Domain.Kind(), nil
		case *ValueLetting:
			return Type(d.Expr, symbols)
		case *DomainLetting:
			return d.Domain.Kind(), nil
		case *RecordField:
			return d.Domain.Kind(), nil
		}
		return BottomKind, newDomainErr(WrongType, "%s has no value type", x.Name)
	case *Nary:
		if x.Op.IsBoolean() {
			return BoolKind, nil
		}
		switch x.Op {
		case SumOp, ProductOp:
			return IntKind, nil
		case UnionOp, IntersectOp:
			if len(x.Args) == 0 {
				return UnknownKind, nil
			}
			return Type(x.Args[0], symbols)
		}
		return BottomKind, newDomainErr(WrongType, "cannot type nary op %s", x.Op)
	case *Binary:
		if x.Op.IsBoolean() {
			return BoolKind, nil
		}
		switch x.Op {
		case MinusOp, DivOp, SafeDivOp, ModOp, PowOp:
			return IntKind, nil
		}
		return BottomKind, newDomainErr(WrongType, "cannot type binary op %s", x.Op)
	case *Unary:
		if x.Op == NotOp {
			return BoolKind, nil
		}
		return IntKind, nil
	case *Index:
		return BottomKind, newDomainErr(WrongType, "Index requires element-domain context")
	case *Slice, *MatrixLit, *Flatten:
		return MatrixKind, nil
	case *Root:
		return BoolKind, nil
	case *Bubble:
		return Type(x.Body, symbols)
	case *Scope:
		return Type(x.Sub.Root, x.Sub.Symbols)
	case *Comprehension:
		return MatrixKind, nil
	case *InDomain:
		return BoolKind, nil
	case *DominanceRelation:
		return BoolKind, nil
	default:
		return BottomKind, newDomainErr(WrongType, "unhandled expr type %T", x)
	}
}
