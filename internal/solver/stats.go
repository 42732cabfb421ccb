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

package solver

import "github.com/conjure-cp/conjure-oxide-sub003/internal/core/rcontext"

// SolveStats is rcontext.Stats reused for a solve's results: an adaptor
// fills in SearchNodes/Satisfiable/SatisfiableOK on a fresh Stats value,
// and Solve/SolveMut add WallTime and SolverFamily before returning it in
// ExecutionSuccess. This package does not merge it into a Context.
type SolveStats = rcontext.Stats
