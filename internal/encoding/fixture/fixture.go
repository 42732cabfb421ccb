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

// Package fixture loads and rewrites the YAML golden files the conjure
// CLI's test-solve subcommand drives: a scenario fixture names a model and
// an expected outcome.
package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one test-solve golden file: a model to load, the solver
// family and rule sets to drive it with, and the expected outcome a
// comparison run must reproduce exactly.
type Scenario struct {
	Name string `yaml:"name"`

	// ModelFile is a path (relative to the fixture file's own directory)
	// to a Model JSON document; InlineModel, if set, is used instead.
	ModelFile   string `yaml:"modelFile,omitempty"`
	InlineModel string `yaml:"inlineModel,omitempty"`

	Solver        string   `yaml:"solver"`
	ExtraRuleSets []string `yaml:"extraRuleSets,omitempty"`

	// ExpectedSolutionCount is the exact number of satisfying assignments
	// the scenario's native pipeline must produce.
	ExpectedSolutionCount int `yaml:"expectedSolutionCount"`

	// ExpectedRuleNames, if non-empty, must all appear somewhere in the
	// rewrite trace.
	ExpectedRuleNames []string `yaml:"expectedRuleNames,omitempty"`

	// CompareAgainst, if set, names a second solver family whose solution
	// set (as a set of assignments) must equal the primary solver's.
	CompareAgainst string `yaml:"compareAgainst,omitempty"`
}

// Load reads and parses a single scenario fixture.
func Load(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("fixture: parsing %s: %w", path, err)
	}
	return &s, nil
}

// Save overwrites path with s, used by the ACCEPT=true fixture-update path.
func Save(path string, s *Scenario) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
