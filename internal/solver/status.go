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

// SearchComplete distinguishes a search that ran to exhaustion with
// solutions from one that proved unsatisfiability, grounded on
// original_source's SearchStatus::Complete(SearchComplete) used by the
// savilerow and smt adaptors.
type SearchComplete int

const (
	HasSolutions SearchComplete = iota
	NoSolutions
)

func (c SearchComplete) String() string {
	if c == HasSolutions {
		return "HasSolutions"
	}
	return "NoSolutions"
}

// SearchIncomplete distinguishes the reasons a search stopped early,
// grounded on SearchIncomplete as imported (via glob) by sat_adaptor.rs
// and savilerow.rs.
type SearchIncomplete int

const (
	UserTerminated SearchIncomplete = iota
	Timeout
)

func (i SearchIncomplete) String() string {
	if i == UserTerminated {
		return "UserTerminated"
	}
	return "Timeout"
}

// SearchStatus reports how a solve finished: it is either Complete (with a
// HasSolutions/NoSolutions verdict) or Incomplete (with a reason), mirroring
// the two-level SearchStatus/SearchComplete/SearchIncomplete enum nest.
// Go has no sum type, so the two branches are modelled as a discriminated
// struct rather than an interface: both fields are plain values, and
// complete says which one is meaningful.
type SearchStatus struct {
	complete   bool
	whenDone   SearchComplete
	whyStopped SearchIncomplete
}

// Done reports a search that ran to completion, either finding solutions
// or proving there are none.
func Done(c SearchComplete) SearchStatus { return SearchStatus{complete: true, whenDone: c} }

// Stopped reports a search that was cut short.
func Stopped(i SearchIncomplete) SearchStatus { return SearchStatus{whyStopped: i} }

// Complete reports whether the search ran to completion.
func (s SearchStatus) Complete() bool { return s.complete }

// Outcome is valid only when Complete reports true.
func (s SearchStatus) Outcome() SearchComplete { return s.whenDone }

// StoppedReason is valid only when Complete reports false.
func (s SearchStatus) StoppedReason() SearchIncomplete { return s.whyStopped }

func (s SearchStatus) String() string {
	if s.complete {
		return "Complete(" + s.whenDone.String() + ")"
	}
	return "Incomplete(" + s.whyStopped.String() + ")"
}
