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

package rcontext

import (
	"fmt"
	"time"
)

// Stats accumulates counters a caller can check a solve or rewrite run
// against: wall time spent rewriting, how many rule applications fired,
// and (once a SAT-family solver ran) clause/variable counts, rendered the
// same "name: value" way throughout.
type Stats struct {
	WallTime time.Duration

	NodesVisited     int64
	RuleApplications int64
	RuleFailures     int64 // RuleNotApplicable outcomes, not hard errors

	SATVariables int64
	SATClauses   int64

	// The remaining fields are filled in by a package solver adaptor after
	// a solve completes, mirroring SolverStats's solver_family/
	// solver_adaptor/nodes/satisfiable fields: a search's node count and
	// satisfiability verdict are solver-run facts, not rewrite-engine
	// facts, but they are accumulated here rather than in a second struct
	// so the CLI's one stats formatter covers both.
	SolverFamily  string
	SolverAdaptor string
	SearchNodes   int64
	Satisfiable   bool
	SatisfiableOK bool // Satisfiable is only meaningful once a search has run
}

// Add accumulates o's counters into s; non-empty solver names and a
// known satisfiability result in o replace those in s.
func (s *Stats) Add(o Stats) {
	s.WallTime += o.WallTime
	s.NodesVisited += o.NodesVisited
	s.RuleApplications += o.RuleApplications
	s.RuleFailures += o.RuleFailures
	s.SATVariables += o.SATVariables
	s.SATClauses += o.SATClauses
	s.SearchNodes += o.SearchNodes
	if o.SolverFamily != "" {
		s.SolverFamily = o.SolverFamily
	}
	if o.SolverAdaptor != "" {
		s.SolverAdaptor = o.SolverAdaptor
	}
	if o.SatisfiableOK {
		s.Satisfiable = o.Satisfiable
		s.SatisfiableOK = true
	}
}

func (s Stats) String() string {
	sat := "unknown"
	if s.SatisfiableOK {
		sat = fmt.Sprintf("%v", s.Satisfiable)
	}
	return fmt.Sprintf(
		"wall=%s nodes=%d applied=%d failed=%d sat_vars=%d sat_clauses=%d solver=%s/%s search_nodes=%d satisfiable=%s",
		s.WallTime, s.NodesVisited, s.RuleApplications, s.RuleFailures,
		s.SATVariables, s.SATClauses, s.SolverFamily, s.SolverAdaptor, s.SearchNodes, sat,
	)
}
