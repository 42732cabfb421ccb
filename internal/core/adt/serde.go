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

// wireDecl is the JSON shape of a Declaration: sharing is encoded by
// object-id. Declarations are written once, at their first occurrence in a
// deterministic (symbol-table order) walk; every other reference is just the
// bare ID.
type wireDecl struct {
	ID       uint64          `json:"id"`
	Kind     string          `json:"kind"`
	Name     string          `json:"name"`
	NameKind string          `json:"nameKind"`
	Domain   json.RawMessage `json:"domain,omitempty"`
	Category string          `json:"category,omitempty"`
}

// wireName mirrors Name through JSON, since Name is an interface.
type wireName struct {
	Kind string `json:"kind"`
	S    string `json:"s,omitempty"`
	I    int64  `json:"i,omitempty"`
}

func encodeName(n Name) wireName {
	switch n := n.(type) {
	case UserName:
		return wireName{Kind: "user", S: string(n)}
	case MachineName:
		return wireName{Kind: "machine", I: int64(n)}
	case RepresentedName:
		// Represented names are flattened to their printable form; this is
		// lossy for round-tripping Tags/Index individually, acceptable
		// because represented names only ever arise mid-rewrite and are
		// never themselves re-parsed as a user name.
		return wireName{Kind: "represented", S: n.String()}
	default:
		return wireName{Kind: "user", S: n.String()}
	}
}

func decodeName(w wireName) Name {
	switch w.Kind {
	case "machine":
		return MachineName(w.I)
	default:
		return UserName(w.S)
	}
}

// SymbolTableSnapshot is the serializable projection of a SymbolTable used
// by Model JSON encoding: a flat, deduplicated declaration table plus the
// local order, so that shared declarations (the same *Var reachable from
// two References) are written once.
type SymbolTableSnapshot struct {
	Decls []wireDecl `json:"decls"`
}

// EncodeSymbols flattens symbols' local bindings (not the parent chain,
// which the caller is responsible for encoding separately if needed) into
// a deterministic, deduplicated snapshot.
func EncodeSymbols(symbols *SymbolTable) (SymbolTableSnapshot, error) {
	var out SymbolTableSnapshot
	seen := map[uint64]bool{}
	for _, name := range symbols.Order() {
		decl, _ := symbols.LookupLocal(name)
		if decl == nil || seen[decl.ID()] {
			continue
		}
		seen[decl.ID()] = true
		wd, err := encodeDecl(decl)
		if err != nil {
			return out, err
		}
		out.Decls = append(out.Decls, wd)
	}
	return out, nil
}

func encodeDecl(decl Declaration) (wireDecl, error) {
	wn := encodeName(decl.DeclName())
	wd := wireDecl{ID: decl.ID(), Name: wn.S, NameKind: wn.Kind}
	switch d := decl.(type) {
	case *Var:
		wd.Kind = "var"
		wd.Category = d.Category.String()
		dom, err := json.Marshal(domainString(d.Domain))
		if err != nil {
			return wd, err
		}
		wd.Domain = dom
	case *DomainLetting:
		wd.Kind = "domainLetting"
		dom, err := json.Marshal(domainString(d.Domain))
		if err != nil {
			return wd, err
		}
		wd.Domain = dom
	case *ValueLetting:
		wd.Kind = "valueLetting"
	case *RecordField:
		wd.Kind = "recordField"
		dom, err := json.Marshal(domainString(d.Domain))
		if err != nil {
			return wd, err
		}
		wd.Domain = dom
	default:
		return wd, fmt.Errorf("adt: cannot encode declaration of type %T", decl)
	}
	return wd, nil
}

// domainString renders a Domain to its canonical textual form; full
// structural round-tripping of Domain through JSON is handled by
// encodeDomain/decodeDomain in serde_model.go, since a Domain's JSON shape
// depends on which node variant it is (a closed tagged union).
func domainString(d Domain) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// DeclRegistry rebuilds pointer equality from ids on decode: callers decoding
// a Model JSON accumulate declarations into a shared registry as they are
// first seen, and every subsequent bare-ID reference resolves through
// this registry instead of allocating a new Declaration.
type DeclRegistry struct {
	byID map[uint64]Declaration
}

func NewDeclRegistry() *DeclRegistry { return &DeclRegistry{byID: map[uint64]Declaration{}} }

func (r *DeclRegistry) Put(d Declaration)              { r.byID[d.ID()] = d }
func (r *DeclRegistry) Get(id uint64) (Declaration, bool) { d, ok := r.byID[id]; return d, ok }
