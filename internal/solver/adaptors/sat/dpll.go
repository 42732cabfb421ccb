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

package sat

// dpll is a plain Davis-Putnam-Logemann-Loveland solver: unit propagation
// plus chronological backtracking, standing in for the real RustSAT/kissat
// backend (solvers/sat_rs's SatSolver trait wraps exactly this same
// solve(instance)->bool shape; kissat.rs shells out to an external binary
// this module has no equivalent of, so a self-contained search is used
// instead).
type dpll struct {
	clauses [][]int
	nvars   int
}

// solveFrom searches for an assignment extending assign (0 = unset, 1 =
// true, -1 = false, index by variable 1..nvars) that satisfies every
// clause, returning nil if none exists.
func (d *dpll) solveFrom(assign []int) []int {
	assign, ok := unitPropagate(d.clauses, assign)
	if !ok {
		return nil
	}
	v := firstUnassigned(assign)
	if v == 0 {
		return assign
	}
	for _, try := range [2]int{1, -1} {
		next := append([]int(nil), assign...)
		next[v] = try
		if result := d.solveFrom(next); result != nil {
			return result
		}
	}
	return nil
}

func firstUnassigned(assign []int) int {
	for v := 1; v < len(assign); v++ {
		if assign[v] == 0 {
			return v
		}
	}
	return 0
}

func clauseStatus(clause []int, assign []int) (satisfied, conflict bool, unit int) {
	unassignedCount := 0
	var lastUnassigned int
	for _, lit := range clause {
		v := lit
		if v < 0 {
			v = -v
		}
		val := assign[v]
		if val == 0 {
			unassignedCount++
			lastUnassigned = lit
			continue
		}
		if (lit > 0 && val == 1) || (lit < 0 && val == -1) {
			return true, false, 0
		}
	}
	if unassignedCount == 0 {
		return false, true, 0
	}
	if unassignedCount == 1 {
		return false, false, lastUnassigned
	}
	return false, false, 0
}

// unitPropagate repeatedly forces every unit clause's literal until no more
// apply, reporting ok=false on conflict.
func unitPropagate(clauses [][]int, assign []int) ([]int, bool) {
	assign = append([]int(nil), assign...)
	changed := true
	for changed {
		changed = false
		for _, clause := range clauses {
			sat, conflict, unit := clauseStatus(clause, assign)
			if conflict {
				return nil, false
			}
			if sat || unit == 0 {
				continue
			}
			v := unit
			if v < 0 {
				v = -v
			}
			want := 1
			if unit < 0 {
				want = -1
			}
			if assign[v] != 0 && assign[v] != want {
				return nil, false
			}
			if assign[v] == 0 {
				assign[v] = want
				changed = true
			}
		}
	}
	return assign, true
}
