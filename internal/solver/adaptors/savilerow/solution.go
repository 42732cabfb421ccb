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
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
)

// parseSolution reads one SavileRow .solution file's "letting x be 3"
// lines into a decision-variable assignment, using each name's declared
// domain to tell an Int result from a Bool one.
func parseSolution(r io.Reader, symbols *adt.SymbolTable) (map[string]adt.Literal, *solver.Error) {
	out := map[string]adt.Literal{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "$") {
			continue
		}
		rest, ok := cutPrefix(line, "letting ")
		if !ok {
			continue
		}
		name, value, ok := splitBe(rest)
		if !ok {
			continue
		}
		lit, err := parseLiteral(name, value, symbols)
		if err != nil {
			return nil, err
		}
		out[name] = lit
	}
	if err := scanner.Err(); err != nil {
		return nil, solver.RuntimeError("reading savilerow solution: %s", err)
	}
	return out, nil
}

func cutPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}
	return s[len(prefix):], true
}

func splitBe(s string) (name, value string, ok bool) {
	i := strings.Index(s, " be ")
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+len(" be "):]), true
}

func parseLiteral(name, value string, symbols *adt.SymbolTable) (adt.Literal, *solver.Error) {
	if decl, ok := symbols.Lookup(adt.UserName(name)); ok {
		if v, ok := decl.(*adt.Var); ok {
			if _, isBool := v.Domain.(adt.BoolDomain); isBool {
				return adt.BoolLit(value == "true"), nil
			}
		}
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, solver.RuntimeError("unparseable savilerow solution value for %s: %q", name, value)
	}
	return adt.IntLit(n), nil
}
