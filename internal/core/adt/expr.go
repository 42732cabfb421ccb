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

import "github.com/conjure-cp/conjure-oxide-sub003/internal/core/errors"

// Node is the base of every AST node: it carries source position and per-node
// Metadata.
type Node interface {
	Pos() errors.Pos
	Meta() *Metadata
}

// Expr is the tagged tree of constraints and terms. Every concrete node below
// implements Expr. Children/Rebuild give the uniform generic traversal
// required by: Rebuild is a pure function from a same-shaped child vector to
// a new node.
type Expr interface {
	Node
	// Children returns the node's direct Expr children in a fixed order.
	Children() []Expr
	// Rebuild returns a copy of the node with its children replaced by
	// kids, which must have the same length (and, for ordered subtrees,
	// the same shape) as the slice returned by Children.
	Rebuild(kids []Expr) Expr
	exprNode()
}

type base struct {
	pos  errors.Pos
	meta Metadata
}

func (b *base) Pos() errors.Pos { return b.pos }
func (b *base) Meta() *Metadata { return &b.meta }

// Lit wraps a concrete Literal as a leaf Expr.
type Lit struct {
	base
	Value Literal
}

func NewLit(v Literal) *Lit { return &Lit{Value: v} }

func (*Lit) exprNode()             {}
func (*Lit) Children() []Expr      { return nil }
func (x *Lit) Rebuild([]Expr) Expr { cp := *x; return &cp }

// Ref is a reference to a declaration, resolved against the lexically
// enclosing symbol table. Decl is filled in once the reference is resolved; a
// nil Decl with a non-empty Name marks a not-yet-resolved reference.
type Ref struct {
	base
	Name Name
	Decl Declaration
	// Repr names the representation tags applied to this reference by the
	// select_representation rule; nil before selection.
	Repr []string
}

func NewRef(name Name) *Ref { return &Ref{Name: name} }

func (*Ref) exprNode()             {}
func (*Ref) Children() []Expr      { return nil }
func (x *Ref) Rebuild([]Expr) Expr { cp := *x; return &cp }

// Nary is a variadic, associative-commutative operator application.
type Nary struct {
	base
	Op   Op
	Args []Expr
}

func NewNary(op Op, args ...Expr) *Nary { return &Nary{Op: op, Args: args} }

func (*Nary) exprNode()          {}
func (x *Nary) Children() []Expr { return x.Args }
func (x *Nary) Rebuild(kids []Expr) Expr {
	cp := *x
	cp.Args = kids
	return &cp
}

// Binary is a two-operand operator application (Imply, Eq, Neq, Lt, Leq,
// Gt, Geq, In, Subset(Eq), Supset(Eq), Minus, Div, SafeDiv, Mod, Pow,
// LexLt/Leq/Gt/Geq, SumGeq/Leq/Eq, Ineq).
type Binary struct {
	base
	Op   Op
	X, Y Expr
}

func NewBinary(op Op, x, y Expr) *Binary { return &Binary{Op: op, X: x, Y: y} }

func (*Binary) exprNode()          {}
func (x *Binary) Children() []Expr { return []Expr{x.X, x.Y} }
func (x *Binary) Rebuild(kids []Expr) Expr {
	if len(kids) != 2 {
		errors.Bug("Binary.Rebuild: want 2 children, got %d", len(kids))
	}
	cp := *x
	cp.X, cp.Y = kids[0], kids[1]
	return &cp
}

// Unary is a single-operand operator application (Not, Neg, Abs).
type Unary struct {
	base
	Op Op
	X  Expr
}

func NewUnary(op Op, x Expr) *Unary { return &Unary{Op: op, X: x} }

func (*Unary) exprNode()          {}
func (x *Unary) Children() []Expr { return []Expr{x.X} }
func (x *Unary) Rebuild(kids []Expr) Expr {
	if len(kids) != 1 {
		errors.Bug("Unary.Rebuild: want 1 child, got %d", len(kids))
	}
	cp := *x
	cp.X = kids[0]
	return &cp
}

// IndexMode distinguishes safe/unsafe indexing and slicing.
type IndexMode int

const (
	UnsafeIndexMode IndexMode = iota
	SafeIndexMode
)

// Index is SafeIndex/UnsafeIndex: `coll[idx]`.
type Index struct {
	base
	Mode  IndexMode
	Coll  Expr
	Index Expr
}

func NewIndex(mode IndexMode, coll, index Expr) *Index {
	return &Index{Mode: mode, Coll: coll, Index: index}
}

func (*Index) exprNode()          {}
func (x *Index) Children() []Expr { return []Expr{x.Coll, x.Index} }
func (x *Index) Rebuild(kids []Expr) Expr {
	if len(kids) != 2 {
		errors.Bug("Index.Rebuild: want 2 children, got %d", len(kids))
	}
	cp := *x
	cp.Coll, cp.Index = kids[0], kids[1]
	return &cp
}

// Slice is SafeSlice/UnsafeSlice: `coll[lo..hi]`.
type Slice struct {
	base
	Mode   IndexMode
	Coll   Expr
	Lo, Hi Expr // either may be nil, meaning "open" on that side
}

func NewSlice(mode IndexMode, coll, lo, hi Expr) *Slice {
	return &Slice{Mode: mode, Coll: coll, Lo: lo, Hi: hi}
}

func (*Slice) exprNode() {}
func (x *Slice) Children() []Expr {
	kids := []Expr{x.Coll}
	if x.Lo != nil {
		kids = append(kids, x.Lo)
	}
	if x.Hi != nil {
		kids = append(kids, x.Hi)
	}
	return kids
}
func (x *Slice) Rebuild(kids []Expr) Expr {
	cp := *x
	cp.Coll = kids[0]
	rest := kids[1:]
	if x.Lo != nil {
		cp.Lo, rest = rest[0], rest[1:]
	}
	if x.Hi != nil {
		cp.Hi = rest[0]
	}
	return &cp
}

// MatrixLit is a literal matrix of Exprs (not yet reduced to an
// AbstractLiteral of Literal), carrying its declared element domain.
type MatrixLit struct {
	base
	ElemDomain Domain
	Indices    []Domain
	Elems      []Expr
}

func NewMatrixLit(elemDom Domain, indices []Domain, elems []Expr) *MatrixLit {
	return &MatrixLit{ElemDomain: elemDom, Indices: indices, Elems: elems}
}

func (*MatrixLit) exprNode()          {}
func (x *MatrixLit) Children() []Expr { return x.Elems }
func (x *MatrixLit) Rebuild(kids []Expr) Expr {
	cp := *x
	cp.Elems = kids
	return &cp
}

// Root holds the top-level boolean constraints of a model; a Root node
// appears only at a model's apex.
type Root struct {
	base
	Constraints []Expr
}

func NewRoot(constraints ...Expr) *Root { return &Root{Constraints: constraints} }

func (*Root) exprNode()          {}
func (x *Root) Children() []Expr { return x.Constraints }
func (x *Root) Rebuild(kids []Expr) Expr {
	cp := *x
	cp.Constraints = kids
	return &cp
}

// Bubble is "compute body only where condition holds" (§9 open question (a):
// non-boolean bubbles are conservatively forbidden at the apex and wrapped).
type Bubble struct {
	base
	Body      Expr
	Condition Expr
}

func NewBubble(body, cond Expr) *Bubble { return &Bubble{Body: body, Condition: cond} }

func (*Bubble) exprNode()          {}
func (x *Bubble) Children() []Expr { return []Expr{x.Body, x.Condition} }
func (x *Bubble) Rebuild(kids []Expr) Expr {
	if len(kids) != 2 {
		errors.Bug("Bubble.Rebuild: want 2 children, got %d", len(kids))
	}
	cp := *x
	cp.Body, cp.Condition = kids[0], kids[1]
	return &cp
}

// Scope is a SubModel nested inside an Expression with its own symbol
// table.
type Scope struct {
	base
	Sub *SubModel
}

func NewScope(sub *SubModel) *Scope { return &Scope{Sub: sub} }

func (*Scope) exprNode()             {}
func (*Scope) Children() []Expr      { return nil }
func (x *Scope) Rebuild([]Expr) Expr { cp := *x; return &cp }

// GeneratorBinding is one `name <- domain` clause of a Comprehension.
type GeneratorBinding struct {
	Name   Name
	Domain Domain
}

// Comprehension carries a generator SubModel (the bound variables and
// their domains, plus guard conditions) and a return-expression SubModel.
type Comprehension struct {
	base
	Generators []GeneratorBinding
	Guards     []Expr
	Generator  *SubModel // symbol table scope the generators/guards live in
	Return     *SubModel // the templated body to instantiate per binding
	// ReturnOp names the AC operator the expanded instances flatten into.
	ReturnOp Op
}

func (*Comprehension) exprNode()             {}
func (*Comprehension) Children() []Expr      { return nil }
func (x *Comprehension) Rebuild([]Expr) Expr { cp := *x; return &cp }

// Flatten flattens a matrix-of-matrices (or matrix-of-sets) Expr into a
// single matrix.
type Flatten struct {
	base
	X Expr
}

func NewFlatten(x Expr) *Flatten { return &Flatten{X: x} }

func (*Flatten) exprNode()          {}
func (x *Flatten) Children() []Expr { return []Expr{x.X} }
func (x *Flatten) Rebuild(kids []Expr) Expr {
	cp := *x
	cp.X = kids[0]
	return &cp
}

// InDomain asserts X lies within Dom, used by safe-guard bubbles for
// index/slice bounds checks.
type InDomain struct {
	base
	X   Expr
	Dom Domain
}

func NewInDomain(x Expr, dom Domain) *InDomain { return &InDomain{X: x, Dom: dom} }

func (*InDomain) exprNode()          {}
func (x *InDomain) Children() []Expr { return []Expr{x.X} }
func (x *InDomain) Rebuild(kids []Expr) Expr {
	cp := *x
	cp.X = kids[0]
	return &cp
}

// DominanceRelation names a partial order over solutions used for
// dominance-breaking search; carried through the rewrite core as an opaque
// relation name plus the two solution vectors it compares.
type DominanceRelation struct {
	base
	RelationName string
	Left, Right  Expr
}

func (*DominanceRelation) exprNode()          {}
func (x *DominanceRelation) Children() []Expr { return []Expr{x.Left, x.Right} }
func (x *DominanceRelation) Rebuild(kids []Expr) Expr {
	cp := *x
	cp.Left, cp.Right = kids[0], kids[1]
	return &cp
}
