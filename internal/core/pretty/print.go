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

// Package pretty renders models, expressions, and rewrite traces as
// human-readable Essence-like surface syntax, grounded on
// original_source's ast::pretty (pretty_expressions_as_top_level,
// pretty_variable_declaration, pretty_value_letting_declaration,
// pretty_domain_letting_declaration).
package pretty

import (
	"fmt"
	"strings"

	"github.com/kr/pretty"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rewrite"
)

// Expr renders x in Essence surface syntax, grounded on
// original_source's per-node Display impls (the single source of truth
// for the concrete syntax, since ast::pretty itself only composes
// Display output rather than rendering expressions directly).
func Expr(x adt.Expr) string {
	var b strings.Builder
	writeExpr(&b, x)
	return b.String()
}

func writeExpr(b *strings.Builder, x adt.Expr) {
	switch x := x.(type) {
	case nil:
		b.WriteString("<nil>")
	case *adt.Lit:
		b.WriteString(x.Value.String())
	case *adt.Ref:
		b.WriteString(x.Name.String())
	case *adt.Nary:
		writeNary(b, x)
	case *adt.Binary:
		writeExpr(b, x.X)
		fmt.Fprintf(b, " %s ", x.Op)
		writeExpr(b, x.Y)
	case *adt.Unary:
		writeUnary(b, x)
	case *adt.Index:
		writeExpr(b, x.Coll)
		b.WriteByte('[')
		writeExpr(b, x.Index)
		b.WriteByte(']')
	case *adt.Slice:
		writeExpr(b, x.Coll)
		b.WriteByte('[')
		if x.Lo != nil {
			writeExpr(b, x.Lo)
		}
		b.WriteString("..")
		if x.Hi != nil {
			writeExpr(b, x.Hi)
		}
		b.WriteByte(']')
	case *adt.MatrixLit:
		b.WriteByte('[')
		for i, e := range x.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, e)
		}
		b.WriteByte(']')
	case *adt.Root:
		b.WriteString(TopLevel(x.Constraints))
	case *adt.Bubble:
		b.WriteString("bubble(")
		writeExpr(b, x.Body)
		b.WriteString(" | ")
		writeExpr(b, x.Condition)
		b.WriteByte(')')
	case *adt.Scope:
		b.WriteString("scope(...)")
	case *adt.Comprehension:
		writeComprehension(b, x)
	case *adt.Flatten:
		b.WriteString("flatten(")
		writeExpr(b, x.X)
		b.WriteByte(')')
	case *adt.InDomain:
		writeExpr(b, x.X)
		fmt.Fprintf(b, " in %s", x.Dom)
	case *adt.DominanceRelation:
		writeExpr(b, x.Left)
		fmt.Fprintf(b, " %s ", x.RelationName)
		writeExpr(b, x.Right)
	default:
		fmt.Fprintf(b, "<%T>", x)
	}
}

// writeNary renders an AC operator application, grounded on
// pretty_expressions_as_conjunction's "(A /\ B /\ C)" shape for the
// infix-printable operators and a function-call shape (sum(...),
// allDiff(...), union(...)) for the rest.
func writeNary(b *strings.Builder, x *adt.Nary) {
	if x.Op == adt.AndOp || x.Op == adt.OrOp {
		b.WriteByte('(')
		for i, a := range x.Args {
			if i > 0 {
				fmt.Fprintf(b, " %s ", x.Op)
			}
			writeExpr(b, a)
		}
		b.WriteByte(')')
		return
	}
	fmt.Fprintf(b, "%s(", x.Op)
	for i, a := range x.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, a)
	}
	b.WriteByte(')')
}

func writeUnary(b *strings.Builder, x *adt.Unary) {
	switch x.Op {
	case adt.NotOp, adt.NegOp:
		fmt.Fprintf(b, "%s", x.Op)
		writeExpr(b, x.X)
	default:
		fmt.Fprintf(b, "%s(", x.Op)
		writeExpr(b, x.X)
		b.WriteByte(')')
	}
}

func writeComprehension(b *strings.Builder, x *adt.Comprehension) {
	b.WriteByte('[')
	if x.Return != nil {
		writeExpr(b, x.Return.Root)
	}
	b.WriteString(" | ")
	for i, g := range x.Generators {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s <- %s", g.Name, g.Domain)
	}
	for _, guard := range x.Guards {
		b.WriteString(", ")
		writeExpr(b, guard)
	}
	b.WriteByte(']')
}

// TopLevel renders constraints one per line, comma-terminated, as if they
// were a model's `such that` block, grounded on
// pretty_expressions_as_top_level.
func TopLevel(constraints []adt.Expr) string {
	parts := make([]string, len(constraints))
	for i, c := range constraints {
		parts[i] = Expr(c)
	}
	return strings.Join(parts, ",\n")
}

// Conjunction renders constraints as a single parenthesized conjunction,
// grounded on pretty_expressions_as_conjunction.
func Conjunction(constraints []adt.Expr) string {
	if len(constraints) == 0 {
		return "()"
	}
	parts := make([]string, len(constraints))
	for i, c := range constraints {
		parts[i] = Expr(c)
	}
	return "(" + strings.Join(parts, " /\\ ") + ")"
}

// VariableDeclaration renders `find name: domain`, or "" if name is not a
// Var in symbols, grounded on pretty_variable_declaration.
func VariableDeclaration(symbols *adt.SymbolTable, name adt.Name) string {
	decl, ok := symbols.Lookup(name)
	if !ok {
		return ""
	}
	v, ok := decl.(*adt.Var)
	if !ok {
		return ""
	}
	return fmt.Sprintf("find %s: %s", name, v.Domain)
}

// ValueLettingDeclaration renders `letting name be expr`, grounded on
// pretty_value_letting_declaration.
func ValueLettingDeclaration(symbols *adt.SymbolTable, name adt.Name) string {
	decl, ok := symbols.Lookup(name)
	if !ok {
		return ""
	}
	l, ok := decl.(*adt.ValueLetting)
	if !ok {
		return ""
	}
	return fmt.Sprintf("letting %s be %s", name, Expr(l.Expr))
}

// DomainLettingDeclaration renders `letting name be domain dom`, grounded
// on pretty_domain_letting_declaration.
func DomainLettingDeclaration(symbols *adt.SymbolTable, name adt.Name) string {
	decl, ok := symbols.Lookup(name)
	if !ok {
		return ""
	}
	l, ok := decl.(*adt.DomainLetting)
	if !ok {
		return ""
	}
	return fmt.Sprintf("letting %s be domain %s", name, l.Domain)
}

// Declaration renders whichever of the three declaration forms above
// applies to name, or "" for a RecordField (which has no top-level
// Essence declaration form of its own).
func Declaration(symbols *adt.SymbolTable, name adt.Name) string {
	if s := VariableDeclaration(symbols, name); s != "" {
		return s
	}
	if s := ValueLettingDeclaration(symbols, name); s != "" {
		return s
	}
	if s := DomainLettingDeclaration(symbols, name); s != "" {
		return s
	}
	return ""
}

// Model renders symbols' local declarations followed by the root's
// constraints under "such that", the whole-file shape glossary calls "Essence
// surface syntax".
func Model(m *adt.Model) string {
	var b strings.Builder
	for _, name := range m.Sub.Symbols.Order() {
		if s := Declaration(m.Sub.Symbols, name); s != "" {
			b.WriteString(s)
			b.WriteByte('\n')
		}
	}
	root, ok := m.Sub.Root.(*adt.Root)
	if ok && len(root.Constraints) > 0 {
		b.WriteString("such that\n")
		b.WriteString(TopLevel(root.Constraints))
		b.WriteByte('\n')
	}
	return b.String()
}

// Trace renders a rewrite.Trace as one "rule: before ~> after" line per
// application, grounded on original_source's rule_engine::rewriter_common
// log_rule_application text, which logs each rule by name alongside the
// expression before and after.
func Trace(t rewrite.Trace) string {
	var b strings.Builder
	for _, rec := range t {
		fmt.Fprintf(&b, "%s: %s ~> %s\n", rec.Rule, Expr(rec.Before), Expr(rec.After))
	}
	return b.String()
}

// Dump renders an arbitrary Go value with kr/pretty; the CLI's pretty
// subcommand uses it to print a decoded model's raw Go structure rather
// than its Essence surface form.
func Dump(v any) string {
	return pretty.Sprint(v)
}
