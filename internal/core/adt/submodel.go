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

// SubModel is a symbol table paired with a root expression. Scopes inside an
// Expression (the Scope node) reference a SubModel; a Comprehension carries a
// generator SubModel plus a return-expression SubModel.
type SubModel struct {
	Symbols *SymbolTable
	Root    Expr
}

// NewSubModel pairs symbols with root.
func NewSubModel(symbols *SymbolTable, root Expr) *SubModel {
	return &SubModel{Symbols: symbols, Root: root}
}

// Clone clones the symbol table and keeps the root Expr shared, since Expr
// values are treated as immutable outside of Rebuild.
func (m *SubModel) Clone() *SubModel {
	return &SubModel{Symbols: m.Symbols.Clone(), Root: m.Root}
}

// Model is a root SubModel plus a shared pointer to the process-wide
// Context. The Context type itself lives in package rcontext to avoid an
// import cycle (adt is imported by rcontext's consumers); Model stores it as
// an opaque value via the ContextHolder interface.
type ContextHolder interface {
	// SolverFamily returns the name of the currently targeted solver
	// family, used by rule-set gating.
	SolverFamily() string
}

type Model struct {
	Sub     *SubModel
	Context ContextHolder
}

// NewModel builds a Model from a root SubModel and a Context.
func NewModel(sub *SubModel, ctx ContextHolder) *Model {
	return &Model{Sub: sub, Context: ctx}
}

// RootExpr returns the model's root Root node, or nil if the apex isn't a
// Root.
func (m *Model) RootExpr() (*Root, bool) {
	r, ok := m.Sub.Root.(*Root)
	return r, ok
}
