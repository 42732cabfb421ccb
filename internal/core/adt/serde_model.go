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

import (
	"encoding/json"
	"fmt"
)

// This file completes serde.go's declaration-only encoder into a full
// Model JSON codec. out of scope for the rewrite core itself, but §6 still
// names Model JSON as an external interface the CLI's solve and test-solve
// subcommands depend on, and EncodeSymbols/DeclRegistry already staked out
// this file's approach: ids for sharing, structural JSON for everything else.
// Two construction-phase-only node kinds are not supported by DecodeExpr:
// Scope and Comprehension. Both carry a nested SubModel (and Comprehension a
// generator scope besides); by the time a model is solver-ready, the rewrite
// engine has either expanded every Comprehension into flat AC operator
// children or the model never had one, and Scope exists only to stop the
// rewrite zipper's descent, not to be handed to an adaptor. A Model JSON file
// holding either is, by construction, not a solve input.

type wireDomain struct {
	Kind string `json:"kind"`

	// Int
	Ranges []wireRange `json:"ranges,omitempty"`

	// Set/MSet
	Size    *int64      `json:"size,omitempty"`
	MinSize *int64      `json:"minSize,omitempty"`
	MaxSize *int64      `json:"maxSize,omitempty"`
	Elem    *wireDomain `json:"elem,omitempty"`

	// Tuple
	Elems []wireDomain `json:"elems,omitempty"`

	// Record
	Fields []wireRecordEntry `json:"fields,omitempty"`

	// Matrix
	Indices []wireDomain `json:"indices,omitempty"`

	// Function
	Domain   *wireDomain `json:"domain,omitempty"`
	Codomain *wireDomain `json:"codomain,omitempty"`

	// Reference
	Name *wireName `json:"name,omitempty"`
}

type wireRange struct {
	Kind string `json:"kind"`
	Lo   int64  `json:"lo,omitempty"`
	Hi   int64  `json:"hi,omitempty"`
}

type wireRecordEntry struct {
	Name   wireName   `json:"name"`
	Domain wireDomain `json:"domain"`
}

func rangeKindName(k RangeKind) string {
	switch k {
	case RangeSingle:
		return "single"
	case RangeBounded:
		return "bounded"
	case RangeUnboundedL:
		return "unboundedL"
	case RangeUnboundedR:
		return "unboundedR"
	default:
		return "unbounded"
	}
}

func rangeKindFromName(s string) RangeKind {
	switch s {
	case "single":
		return RangeSingle
	case "bounded":
		return RangeBounded
	case "unboundedL":
		return RangeUnboundedL
	case "unboundedR":
		return RangeUnboundedR
	default:
		return RangeUnbounded
	}
}

func encodeDomain(d Domain) wireDomain {
	switch d := d.(type) {
	case BoolDomain:
		return wireDomain{Kind: "bool"}
	case IntDomain:
		ranges := make([]wireRange, len(d.Ranges))
		for i, r := range d.Ranges {
			ranges[i] = wireRange{Kind: rangeKindName(r.Kind), Lo: r.Lo, Hi: r.Hi}
		}
		return wireDomain{Kind: "int", Ranges: ranges}
	case SetDomain:
		elem := encodeDomain(d.Elem)
		return wireDomain{Kind: "set", Size: d.Attrs.Size, MinSize: d.Attrs.MinSize, MaxSize: d.Attrs.MaxSize, Elem: &elem}
	case MSetDomain:
		elem := encodeDomain(d.Elem)
		return wireDomain{Kind: "mset", Size: d.Attrs.Size, MinSize: d.Attrs.MinSize, MaxSize: d.Attrs.MaxSize, Elem: &elem}
	case TupleDomain:
		elems := make([]wireDomain, len(d.Elems))
		for i, e := range d.Elems {
			elems[i] = encodeDomain(e)
		}
		return wireDomain{Kind: "tuple", Elems: elems}
	case RecordDomain:
		fields := make([]wireRecordEntry, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = wireRecordEntry{Name: encodeName(f.Name), Domain: encodeDomain(f.Domain)}
		}
		return wireDomain{Kind: "record", Fields: fields}
	case MatrixDomain:
		elem := encodeDomain(d.Elem)
		indices := make([]wireDomain, len(d.Indices))
		for i, idx := range d.Indices {
			indices[i] = encodeDomain(idx)
		}
		return wireDomain{Kind: "matrix", Elem: &elem, Indices: indices}
	case FunctionDomain:
		dom, codom := encodeDomain(d.Domain), encodeDomain(d.Codomain)
		return wireDomain{Kind: "function", Domain: &dom, Codomain: &codom}
	case ReferenceDomain:
		n := encodeName(d.Name)
		return wireDomain{Kind: "reference", Name: &n}
	default:
		return wireDomain{Kind: "bool"}
	}
}

func decodeDomain(w wireDomain) (Domain, error) {
	switch w.Kind {
	case "bool":
		return BoolDomain{}, nil
	case "int":
		ranges := make([]Range, len(w.Ranges))
		for i, r := range w.Ranges {
			ranges[i] = Range{Kind: rangeKindFromName(r.Kind), Lo: r.Lo, Hi: r.Hi}
		}
		return IntDomain{Ranges: ranges}, nil
	case "set", "mset":
		if w.Elem == nil {
			return nil, fmt.Errorf("adt: %s domain missing elem", w.Kind)
		}
		elem, err := decodeDomain(*w.Elem)
		if err != nil {
			return nil, err
		}
		attrs := SetAttrs{Size: w.Size, MinSize: w.MinSize, MaxSize: w.MaxSize}
		if w.Kind == "set" {
			return SetDomain{Attrs: attrs, Elem: elem}, nil
		}
		return MSetDomain{Attrs: attrs, Elem: elem}, nil
	case "tuple":
		elems := make([]Domain, len(w.Elems))
		for i, e := range w.Elems {
			d, err := decodeDomain(e)
			if err != nil {
				return nil, err
			}
			elems[i] = d
		}
		return TupleDomain{Elems: elems}, nil
	case "record":
		fields := make([]RecordEntry, len(w.Fields))
		for i, f := range w.Fields {
			d, err := decodeDomain(f.Domain)
			if err != nil {
				return nil, err
			}
			fields[i] = RecordEntry{Name: decodeName(f.Name), Domain: d}
		}
		return RecordDomain{Fields: fields}, nil
	case "matrix":
		if w.Elem == nil {
			return nil, fmt.Errorf("adt: matrix domain missing elem")
		}
		elem, err := decodeDomain(*w.Elem)
		if err != nil {
			return nil, err
		}
		indices := make([]Domain, len(w.Indices))
		for i, idx := range w.Indices {
			d, err := decodeDomain(idx)
			if err != nil {
				return nil, err
			}
			indices[i] = d
		}
		return MatrixDomain{Elem: elem, Indices: indices}, nil
	case "function":
		if w.Domain == nil || w.Codomain == nil {
			return nil, fmt.Errorf("adt: function domain missing domain/codomain")
		}
		dom, err := decodeDomain(*w.Domain)
		if err != nil {
			return nil, err
		}
		codom, err := decodeDomain(*w.Codomain)
		if err != nil {
			return nil, err
		}
		return FunctionDomain{Domain: dom, Codomain: codom}, nil
	case "reference":
		if w.Name == nil {
			return nil, fmt.Errorf("adt: reference domain missing name")
		}
		return ReferenceDomain{Name: decodeName(*w.Name)}, nil
	default:
		return nil, fmt.Errorf("adt: unknown domain kind %q", w.Kind)
	}
}

type wireLiteral struct {
	Kind   string            `json:"kind"`
	Int    int64             `json:"int,omitempty"`
	Bool   bool              `json:"bool,omitempty"`
	Shape  string            `json:"shape,omitempty"`
	Elems  []wireLiteral     `json:"elems,omitempty"`
	Fields map[string]wireLiteral `json:"fields,omitempty"`
	Order  []string          `json:"order,omitempty"`
}

func abstractKindName(k AbstractKind) string {
	switch k {
	case AbstractSet:
		return "set"
	case AbstractTuple:
		return "tuple"
	case AbstractRecord:
		return "record"
	default:
		return "matrix"
	}
}

func abstractKindFromName(s string) AbstractKind {
	switch s {
	case "set":
		return AbstractSet
	case "tuple":
		return AbstractTuple
	case "record":
		return AbstractRecord
	default:
		return AbstractMatrix
	}
}

func encodeLiteral(l Literal) wireLiteral {
	switch l := l.(type) {
	case IntLit:
		return wireLiteral{Kind: "int", Int: int64(l)}
	case BoolLit:
		return wireLiteral{Kind: "bool", Bool: bool(l)}
	case AbstractLiteral:
		w := wireLiteral{Kind: "abstract", Shape: abstractKindName(l.Shape)}
		if l.Shape == AbstractRecord {
			w.Fields = map[string]wireLiteral{}
			for _, n := range l.Order {
				w.Order = append(w.Order, n.String())
				w.Fields[n.String()] = encodeLiteral(l.Fields[n])
			}
			return w
		}
		w.Elems = make([]wireLiteral, len(l.Elems))
		for i, e := range l.Elems {
			w.Elems[i] = encodeLiteral(e)
		}
		return w
	default:
		return wireLiteral{Kind: "bool"}
	}
}

func decodeLiteral(w wireLiteral) (Literal, error) {
	switch w.Kind {
	case "int":
		return IntLit(w.Int), nil
	case "bool":
		return BoolLit(w.Bool), nil
	case "abstract":
		shape := abstractKindFromName(w.Shape)
		if shape == AbstractRecord {
			fields := map[Name]Literal{}
			order := make([]Name, len(w.Order))
			for i, s := range w.Order {
				lit, err := decodeLiteral(w.Fields[s])
				if err != nil {
					return nil, err
				}
				order[i] = UserName(s)
				fields[UserName(s)] = lit
			}
			return AbstractLiteral{Shape: shape, Fields: fields, Order: order}, nil
		}
		elems := make([]Literal, len(w.Elems))
		for i, e := range w.Elems {
			lit, err := decodeLiteral(e)
			if err != nil {
				return nil, err
			}
			elems[i] = lit
		}
		return AbstractLiteral{Shape: shape, Elems: elems}, nil
	default:
		return nil, fmt.Errorf("adt: unknown literal kind %q", w.Kind)
	}
}

// wireExpr is the JSON shape of an Expr node; exactly one payload group is
// populated per Kind, the closed-tagged-union approach serde.go already
// uses for declarations.
type wireExpr struct {
	Kind string `json:"kind"`

	Lit *wireLiteral `json:"lit,omitempty"`

	// Ref
	RefName *wireName `json:"refName,omitempty"`
	RefID   uint64    `json:"refId,omitempty"`

	// Nary/Binary/Unary
	Op   string     `json:"op,omitempty"`
	Args []wireExpr `json:"args,omitempty"`
	X    *wireExpr  `json:"x,omitempty"`
	Y    *wireExpr  `json:"y,omitempty"`

	// Index/Slice
	Mode  string    `json:"mode,omitempty"`
	Coll  *wireExpr `json:"coll,omitempty"`
	Index *wireExpr `json:"index,omitempty"`
	Lo    *wireExpr `json:"lo,omitempty"`
	Hi    *wireExpr `json:"hi,omitempty"`

	// MatrixLit
	ElemDomain *wireDomain  `json:"elemDomain,omitempty"`
	Indices    []wireDomain `json:"indices,omitempty"`

	// Root
	Constraints []wireExpr `json:"constraints,omitempty"`

	// Bubble
	Body      *wireExpr `json:"body,omitempty"`
	Condition *wireExpr `json:"condition,omitempty"`

	// Flatten/InDomain share X above; InDomain also carries Dom
	Dom *wireDomain `json:"dom,omitempty"`

	// DominanceRelation
	RelationName string    `json:"relationName,omitempty"`
	Left         *wireExpr `json:"left,omitempty"`
	Right        *wireExpr `json:"right,omitempty"`
}

var opByName map[string]Op

func init() {
	opByName = make(map[string]Op, len(opNames))
	for op, name := range opNames {
		opByName[name] = op
	}
}

// EncodeExpr renders e to its JSON wire form.
func EncodeExpr(e Expr) (json.RawMessage, error) {
	w, err := encodeExpr(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// DecodeExpr parses raw into an Expr tree, resolving Ref nodes against
// registry (populate it by decoding the owning Model's declarations
// first).
func DecodeExpr(raw json.RawMessage, registry *DeclRegistry) (Expr, error) {
	var w wireExpr
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return decodeExpr(w, registry)
}

func encodeExprs(es []Expr) ([]wireExpr, error) {
	out := make([]wireExpr, len(es))
	for i, e := range es {
		w, err := encodeExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}

func decodeExprs(ws []wireExpr, registry *DeclRegistry) ([]Expr, error) {
	out := make([]Expr, len(ws))
	for i, w := range ws {
		e, err := decodeExpr(w, registry)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func encodeExpr(e Expr) (wireExpr, error) {
	switch x := e.(type) {
	case *Lit:
		lit := encodeLiteral(x.Value)
		return wireExpr{Kind: "lit", Lit: &lit}, nil
	case *Ref:
		wn := encodeName(x.Name)
		w := wireExpr{Kind: "ref", RefName: &wn}
		if x.Decl != nil {
			w.RefID = x.Decl.ID()
		}
		return w, nil
	case *Nary:
		args, err := encodeExprs(x.Args)
		if err != nil {
			return wireExpr{}, err
		}
		return wireExpr{Kind: "nary", Op: x.Op.String(), Args: args}, nil
	case *Binary:
		wx, err := encodeExpr(x.X)
		if err != nil {
			return wireExpr{}, err
		}
		wy, err := encodeExpr(x.Y)
		if err != nil {
			return wireExpr{}, err
		}
		return wireExpr{Kind: "binary", Op: x.Op.String(), X: &wx, Y: &wy}, nil
	case *Unary:
		wx, err := encodeExpr(x.X)
		if err != nil {
			return wireExpr{}, err
		}
		return wireExpr{Kind: "unary", Op: x.Op.String(), X: &wx}, nil
	case *Index:
		coll, err := encodeExpr(x.Coll)
		if err != nil {
			return wireExpr{}, err
		}
		idx, err := encodeExpr(x.Index)
		if err != nil {
			return wireExpr{}, err
		}
		mode := "unsafe"
		if x.Mode == SafeIndexMode {
			mode = "safe"
		}
		return wireExpr{Kind: "index", Mode: mode, Coll: &coll, Index: &idx}, nil
	case *Slice:
		coll, err := encodeExpr(x.Coll)
		if err != nil {
			return wireExpr{}, err
		}
		mode := "unsafe"
		if x.Mode == SafeIndexMode {
			mode = "safe"
		}
		w := wireExpr{Kind: "slice", Mode: mode, Coll: &coll}
		if x.Lo != nil {
			lo, err := encodeExpr(x.Lo)
			if err != nil {
				return wireExpr{}, err
			}
			w.Lo = &lo
		}
		if x.Hi != nil {
			hi, err := encodeExpr(x.Hi)
			if err != nil {
				return wireExpr{}, err
			}
			w.Hi = &hi
		}
		return w, nil
	case *MatrixLit:
		elems, err := encodeExprs(x.Elems)
		if err != nil {
			return wireExpr{}, err
		}
		elemDom := encodeDomain(x.ElemDomain)
		indices := make([]wireDomain, len(x.Indices))
		for i, idx := range x.Indices {
			indices[i] = encodeDomain(idx)
		}
		return wireExpr{Kind: "matrixLit", ElemDomain: &elemDom, Indices: indices, Args: elems}, nil
	case *Root:
		cs, err := encodeExprs(x.Constraints)
		if err != nil {
			return wireExpr{}, err
		}
		return wireExpr{Kind: "root", Constraints: cs}, nil
	case *Bubble:
		body, err := encodeExpr(x.Body)
		if err != nil {
			return wireExpr{}, err
		}
		cond, err := encodeExpr(x.Condition)
		if err != nil {
			return wireExpr{}, err
		}
		return wireExpr{Kind: "bubble", Body: &body, Condition: &cond}, nil
	case *Flatten:
		wx, err := encodeExpr(x.X)
		if err != nil {
			return wireExpr{}, err
		}
		return wireExpr{Kind: "flatten", X: &wx}, nil
	case *InDomain:
		wx, err := encodeExpr(x.X)
		if err != nil {
			return wireExpr{}, err
		}
		dom := encodeDomain(x.Dom)
		return wireExpr{Kind: "inDomain", X: &wx, Dom: &dom}, nil
	case *DominanceRelation:
		left, err := encodeExpr(x.Left)
		if err != nil {
			return wireExpr{}, err
		}
		right, err := encodeExpr(x.Right)
		if err != nil {
			return wireExpr{}, err
		}
		return wireExpr{Kind: "dominance", RelationName: x.RelationName, Left: &left, Right: &right}, nil
	case *Scope:
		return wireExpr{}, fmt.Errorf("adt: Scope is a construction-time node, not serializable")
	case *Comprehension:
		return wireExpr{}, fmt.Errorf("adt: Comprehension is a construction-time node, not serializable")
	default:
		return wireExpr{}, fmt.Errorf("adt: cannot encode expr of type %T", e)
	}
}

func decodeExpr(w wireExpr, registry *DeclRegistry) (Expr, error) {
	switch w.Kind {
	case "lit":
		if w.Lit == nil {
			return nil, fmt.Errorf("adt: lit expr missing literal")
		}
		lit, err := decodeLiteral(*w.Lit)
		if err != nil {
			return nil, err
		}
		return NewLit(lit), nil
	case "ref":
		if w.RefName == nil {
			return nil, fmt.Errorf("adt: ref expr missing name")
		}
		ref := NewRef(decodeName(*w.RefName))
		if w.RefID != 0 && registry != nil {
			if decl, ok := registry.Get(w.RefID); ok {
				ref.Decl = decl
			}
		}
		return ref, nil
	case "nary":
		op, ok := opByName[w.Op]
		if !ok {
			return nil, fmt.Errorf("adt: unknown op %q", w.Op)
		}
		args, err := decodeExprs(w.Args, registry)
		if err != nil {
			return nil, err
		}
		return NewNary(op, args...), nil
	case "binary":
		op, ok := opByName[w.Op]
		if !ok {
			return nil, fmt.Errorf("adt: unknown op %q", w.Op)
		}
		if w.X == nil || w.Y == nil {
			return nil, fmt.Errorf("adt: binary expr missing operand")
		}
		x, err := decodeExpr(*w.X, registry)
		if err != nil {
			return nil, err
		}
		y, err := decodeExpr(*w.Y, registry)
		if err != nil {
			return nil, err
		}
		return NewBinary(op, x, y), nil
	case "unary":
		op, ok := opByName[w.Op]
		if !ok {
			return nil, fmt.Errorf("adt: unknown op %q", w.Op)
		}
		if w.X == nil {
			return nil, fmt.Errorf("adt: unary expr missing operand")
		}
		x, err := decodeExpr(*w.X, registry)
		if err != nil {
			return nil, err
		}
		return NewUnary(op, x), nil
	case "index":
		if w.Coll == nil || w.Index == nil {
			return nil, fmt.Errorf("adt: index expr missing coll/index")
		}
		coll, err := decodeExpr(*w.Coll, registry)
		if err != nil {
			return nil, err
		}
		idx, err := decodeExpr(*w.Index, registry)
		if err != nil {
			return nil, err
		}
		mode := UnsafeIndexMode
		if w.Mode == "safe" {
			mode = SafeIndexMode
		}
		return NewIndex(mode, coll, idx), nil
	case "slice":
		if w.Coll == nil {
			return nil, fmt.Errorf("adt: slice expr missing coll")
		}
		coll, err := decodeExpr(*w.Coll, registry)
		if err != nil {
			return nil, err
		}
		var lo, hi Expr
		if w.Lo != nil {
			lo, err = decodeExpr(*w.Lo, registry)
			if err != nil {
				return nil, err
			}
		}
		if w.Hi != nil {
			hi, err = decodeExpr(*w.Hi, registry)
			if err != nil {
				return nil, err
			}
		}
		mode := UnsafeIndexMode
		if w.Mode == "safe" {
			mode = SafeIndexMode
		}
		return NewSlice(mode, coll, lo, hi), nil
	case "matrixLit":
		if w.ElemDomain == nil {
			return nil, fmt.Errorf("adt: matrixLit missing elemDomain")
		}
		elemDom, err := decodeDomain(*w.ElemDomain)
		if err != nil {
			return nil, err
		}
		indices := make([]Domain, len(w.Indices))
		for i, idx := range w.Indices {
			d, err := decodeDomain(idx)
			if err != nil {
				return nil, err
			}
			indices[i] = d
		}
		elems, err := decodeExprs(w.Args, registry)
		if err != nil {
			return nil, err
		}
		return NewMatrixLit(elemDom, indices, elems), nil
	case "root":
		cs, err := decodeExprs(w.Constraints, registry)
		if err != nil {
			return nil, err
		}
		return NewRoot(cs...), nil
	case "bubble":
		if w.Body == nil || w.Condition == nil {
			return nil, fmt.Errorf("adt: bubble missing body/condition")
		}
		body, err := decodeExpr(*w.Body, registry)
		if err != nil {
			return nil, err
		}
		cond, err := decodeExpr(*w.Condition, registry)
		if err != nil {
			return nil, err
		}
		return NewBubble(body, cond), nil
	case "flatten":
		if w.X == nil {
			return nil, fmt.Errorf("adt: flatten missing x")
		}
		x, err := decodeExpr(*w.X, registry)
		if err != nil {
			return nil, err
		}
		return NewFlatten(x), nil
	case "inDomain":
		if w.X == nil || w.Dom == nil {
			return nil, fmt.Errorf("adt: inDomain missing x/dom")
		}
		x, err := decodeExpr(*w.X, registry)
		if err != nil {
			return nil, err
		}
		dom, err := decodeDomain(*w.Dom)
		if err != nil {
			return nil, err
		}
		return NewInDomain(x, dom), nil
	case "dominance":
		if w.Left == nil || w.Right == nil {
			return nil, fmt.Errorf("adt: dominance missing left/right")
		}
		left, err := decodeExpr(*w.Left, registry)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(*w.Right, registry)
		if err != nil {
			return nil, err
		}
		return &DominanceRelation{RelationName: w.RelationName, Left: left, Right: right}, nil
	default:
		return nil, fmt.Errorf("adt: unknown or unsupported expr kind %q", w.Kind)
	}
}

// wireModel is the top-level Model JSON document: a flat, deduplicated
// declaration table (reusing EncodeSymbols's sharing-by-id scheme) plus
// the root expression.
type wireModel struct {
	Symbols []wireDeclFull `json:"symbols"`
	Root    wireExpr       `json:"root"`
}

// wireDeclFull extends wireDecl's textual Domain with the structural form
// this file adds, so decode can rebuild a real Domain rather than just a
// printed string. It reuses wireDecl's JSON field names so a document
// produced by EncodeModel still round-trips through EncodeSymbols-only
// tooling for the fields that tooling understands.
type wireDeclFull struct {
	ID       uint64     `json:"id"`
	Kind     string     `json:"kind"`
	Name     string     `json:"name"`
	NameKind string     `json:"nameKind"`
	Domain   wireDomain `json:"domainStructured,omitempty"`
	Category string     `json:"category,omitempty"`
	Expr     *wireExpr  `json:"expr,omitempty"`
}

// EncodeModel serializes m's symbol table and root expression, writing
// declaration sharing as ids.
func EncodeModel(m *Model) (json.RawMessage, error) {
	root, ok := m.RootExpr()
	if !ok {
		return nil, fmt.Errorf("adt: model root is not a Root node")
	}
	full, err := encodeSymbolsFull(m.Sub.Symbols)
	if err != nil {
		return nil, err
	}
	rootW, err := encodeExpr(root)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireModel{Symbols: full, Root: rootW})
}

func encodeSymbolsFull(symbols *SymbolTable) ([]wireDeclFull, error) {
	var out []wireDeclFull
	seen := map[uint64]bool{}
	for _, name := range symbols.Order() {
		decl, _ := symbols.LookupLocal(name)
		if decl == nil || seen[decl.ID()] {
			continue
		}
		seen[decl.ID()] = true
		wn := encodeName(decl.DeclName())
		wd := wireDeclFull{ID: decl.ID(), Name: wn.S, NameKind: wn.Kind}
		switch d := decl.(type) {
		case *Var:
			wd.Kind = "var"
			wd.Category = d.Category.String()
			wd.Domain = encodeDomain(d.Domain)
		case *DomainLetting:
			wd.Kind = "domainLetting"
			wd.Domain = encodeDomain(d.Domain)
		case *ValueLetting:
			wd.Kind = "valueLetting"
			if d.Expr != nil {
				ew, err := encodeExpr(d.Expr)
				if err != nil {
					return nil, err
				}
				wd.Expr = &ew
			}
		case *RecordField:
			wd.Kind = "recordField"
			wd.Domain = encodeDomain(d.Domain)
		default:
			return nil, fmt.Errorf("adt: cannot encode declaration of type %T", decl)
		}
		out = append(out, wd)
	}
	return out, nil
}

func categoryFromName(s string) Category {
	switch s {
	case "constant":
		return CategoryConstant
	case "parameter":
		return CategoryParameter
	case "quantified":
		return CategoryQuantified
	case "decision":
		return CategoryDecision
	default:
		return CategoryBottom
	}
}

// DecodeModel parses raw (as produced by EncodeModel) back into a Model
// with the given Context, rebuilding declaration sharing via a fresh
// DeclRegistry and resolving every Ref against it.
func DecodeModel(raw json.RawMessage, ctx ContextHolder) (*Model, error) {
	var doc wireModel
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	symbols := NewSymbolTable()
	registry := NewDeclRegistry()
	var valueLettings []struct {
		decl *ValueLetting
		wire *wireExpr
	}
	for _, wd := range doc.Symbols {
		name := decodeName(wireName{Kind: wd.NameKind, S: wd.Name})
		var decl Declaration
		switch wd.Kind {
		case "var":
			dom, err := decodeDomain(wd.Domain)
			if err != nil {
				return nil, err
			}
			v := NewVar(name, dom, categoryFromName(wd.Category))
			v.id = wd.ID
			decl = v
		case "domainLetting":
			dom, err := decodeDomain(wd.Domain)
			if err != nil {
				return nil, err
			}
			l := NewDomainLetting(name, dom)
			l.id = wd.ID
			decl = l
		case "valueLetting":
			// The expression body is re-attached in a second pass below,
			// once every declaration id is registered (a ValueLetting's
			// Expr may itself reference a sibling declared later in
			// symbols).
			l := NewValueLetting(name, nil)
			l.id = wd.ID
			decl = l
			if wd.Expr != nil {
				valueLettings = append(valueLettings, struct {
					decl *ValueLetting
					wire *wireExpr
				}{l, wd.Expr})
			}
		case "recordField":
			dom, err := decodeDomain(wd.Domain)
			if err != nil {
				return nil, err
			}
			f := NewRecordField(name, dom)
			f.id = wd.ID
			decl = f
		default:
			return nil, fmt.Errorf("adt: unknown declaration kind %q", wd.Kind)
		}
		symbols.Insert(decl)
		registry.Put(decl)
	}
	for _, vl := range valueLettings {
		expr, err := decodeExpr(*vl.wire, registry)
		if err != nil {
			return nil, err
		}
		vl.decl.Expr = expr
	}
	root, err := decodeExpr(doc.Root, registry)
	if err != nil {
		return nil, err
	}
	rootNode, ok := root.(*Root)
	if !ok {
		return nil, fmt.Errorf("adt: decoded root expr is not a Root node")
	}
	return NewModel(NewSubModel(symbols, rootNode), ctx), nil
}
