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

package smt

// IntTheory selects how Int-domain decision variables are declared in the
// emitted SMT-LIB2 text, mirroring smt/theories.rs's IntTheory enum.
type IntTheory int

const (
	// Lia declares Int variables as SMT-LIB2 Int sort with explicit
	// lower/upper bound assertions (Z3's Linear Integer Arithmetic theory).
	Lia IntTheory = iota
	// Bv declares Int variables as a fixed-width (_ BitVec n) sort, the
	// width taken from the domain's bound, matching Z3's QF_BV theory.
	Bv
)

func (t IntTheory) String() string {
	switch t {
	case Lia:
		return "LIA"
	case Bv:
		return "BV"
	default:
		return "UnknownIntTheory"
	}
}

// TheoryConfig names the encoding choices this adaptor makes when
// translating a Model to SMT-LIB2, grounded on smt/theories.rs's
// TheoryConfig plus the UnwrapAllDiff switch that
// crates/conjure-cp-rules/src/smt/unwrap_alldiff.rs gates its pairwise
// AllDiff decomposition rule on.
type TheoryConfig struct {
	Ints IntTheory
	// UnwrapAllDiff, when true, decomposes every AllDiff constraint into
	// its pairwise not-equal form before translation, the way
	// unwrap_alldiff.rs's rewrite rule does for solver families that gate
	// on it; when false, AllDiff is emitted using SMT-LIB2's native
	// `distinct`.
	UnwrapAllDiff bool
}

// DefaultTheoryConfig matches the original's Default impl: LIA integers,
// AllDiff left as a native constraint.
func DefaultTheoryConfig() TheoryConfig {
	return TheoryConfig{Ints: Lia, UnwrapAllDiff: false}
}
