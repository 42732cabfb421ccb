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

// SymbolTable is a scoped mapping Name->Declaration. A table may have a
// parent; lookup walks the chain. It is shared by pointer: a SubModel or
// Comprehension captures a *SymbolTable, and cloning a SubModel clones the
// table.
type SymbolTable struct {
	parent *SymbolTable

	decls map[Name]Declaration
	order []Name // local insertion order, for deterministic iteration

	reprs map[Name][]string // chosen representation scheme names, per variable
}

// NewSymbolTable creates an empty root symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{decls: map[Name]Declaration{}}
}

// NewChildScope creates a symbol table whose lookups fall back to parent.
func NewChildScope(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{decls: map[Name]Declaration{}, parent: parent}
}

// Parent exposes the enclosing scope, or nil at the root.
func (s *SymbolTable) Parent() *SymbolTable { return s.parent }

// Insert adds decl under its own name iff the name is not already bound
// locally. It returns the previous local declaration (if any) and whether
// decl was freshly inserted.
func (s *SymbolTable) Insert(decl Declaration) (prior Declaration, fresh bool) {
	name := decl.DeclName()
	if prior, ok := s.decls[name]; ok {
		return prior, false
	}
	s.decls[name] = decl
	s.order = append(s.order, name)
	return nil, true
}

// UpdateInsert replaces decl by name (inserting if absent) and returns the
// prior value, if any.
func (s *SymbolTable) UpdateInsert(decl Declaration) (prior Declaration) {
	name := decl.DeclName()
	prior, existed := s.decls[name]
	s.decls[name] = decl
	if !existed {
		s.order = append(s.order, name)
	}
	return prior
}

// Lookup walks the parent chain looking for name, starting at s.
func (s *SymbolTable) Lookup(name Name) (Declaration, bool) {
	for t := s; t != nil; t = t.parent {
		if d, ok := t.decls[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// LookupLocal looks up name only in s, ignoring the parent chain.
func (s *SymbolTable) LookupLocal(name Name) (Declaration, bool) {
	d, ok := s.decls[name]
	return d, ok
}

// ResolveDomain performs full ground resolution of name's declared domain,
// failing if cyclic.
func (s *SymbolTable) ResolveDomain(name Name) (Domain, error) {
	decl, ok := s.Lookup(name)
	if !ok {
		return nil, newDomainErr(NotGround, "no such declaration: %s", name)
	}
	var dom Domain
	switch d := decl.(type) {
	case *Var:
		dom = d.Domain
	case *DomainLetting:
		dom = d.Domain
	case *RecordField:
		dom = d.Domain
	default:
		return nil, newDomainErr(WrongType, "%s has no domain", name)
	}
	return Resolve(dom, s)
}

// GetOrAddRepresentation returns the chosen representation scheme vector
// for name, selecting the first applicable scheme from candidates if none
// has been chosen yet. It is idempotent: once chosen, the same vector is
// returned on every subsequent call for the same name. It returns ok=false if
// none of candidates applies (left to the caller, normally a rule, to
// interpret as RuleNotApplicable).
func (s *SymbolTable) GetOrAddRepresentation(name Name, candidates []string, applicable func(string) bool) (chosen []string, ok bool) {
	if s.reprs == nil {
		s.reprs = map[Name][]string{}
	}
	for t := s; t != nil; t = t.parent {
		if t.reprs != nil {
			if r, found := t.reprs[name]; found {
				return r, true
			}
		}
	}
	for _, cand := range candidates {
		if applicable(cand) {
			s.reprs[name] = []string{cand}
			return s.reprs[name], true
		}
	}
	return nil, false
}

// Order returns the local declaration names in insertion order.
func (s *SymbolTable) Order() []Name {
	return append([]Name(nil), s.order...)
}

// All iterates local-then-parent declarations in order, as; a name shadowed
// in a nearer scope is only reported once, at its nearest binding.
func (s *SymbolTable) All() []Declaration {
	seen := map[Name]bool{}
	var out []Declaration
	for t := s; t != nil; t = t.parent {
		for _, n := range t.order {
			if seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, t.decls[n])
		}
	}
	return out
}

// Clone makes a deep copy of the local bindings (but not of the
// declarations themselves, nor of the parent, which is shared), the
// semantics a SubModel clone needs.
func (s *SymbolTable) Clone() *SymbolTable {
	cp := &SymbolTable{
		parent: s.parent,
		decls:  make(map[Name]Declaration, len(s.decls)),
		order:  append([]Name(nil), s.order...),
	}
	for k, v := range s.decls {
		cp.decls[k] = v
	}
	if s.reprs != nil {
		cp.reprs = make(map[Name][]string, len(s.reprs))
		for k, v := range s.reprs {
			cp.reprs[k] = append([]string(nil), v...)
		}
	}
	return cp
}
