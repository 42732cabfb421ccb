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

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rcontext"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rewrite"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/encoding/fixture"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
)

func newTestSolveCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test-solve FIXTURE.yaml...",
		Short: "run end-to-end scenario fixtures and compare against their expected outcome",
		Long: `test-solve loads one or more scenario fixtures, rewrites and solves each
fixture's model, and fails with exit code 1 on the first scenario whose
outcome disagrees with the fixture.
With ACCEPT=true set, a disagreeing fixture is overwritten with the
observed outcome instead of failing.`,
		Args: cobra.MinimumNArgs(1),
		RunE: mkRunE(c, runTestSolve),
	}
	return cmd
}

func runTestSolve(cmd *Command, args []string) error {
	accept := os.Getenv("ACCEPT") == "true"
	for _, path := range args {
		if err := runScenario(cmd, path, accept); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d scenario(s)\n", len(args))
	return nil
}

// solveScenarioModel loads, rewrites, and fully solves a model with the
// named solver family, returning its solution set and rewrite trace.
func solveScenarioModel(family string, extraRuleSets []string, modelPath string) ([]map[string]adt.Literal, rewrite.Trace, error) {
	ruleSets, err := defaultRuleSets(family)
	if err != nil {
		return nil, nil, err
	}
	rctx := rcontext.New(family, append(ruleSets, extraRuleSets...)...)

	raw, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, nil, err
	}
	model, err := adt.DecodeModel(json.RawMessage(raw), rctx)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", modelPath, err)
	}

	rewritten, trace, err := resolveAndRewrite(model, rctx, nil, rewrite.First)
	if err != nil {
		return nil, nil, err
	}

	adaptor, err := newAdaptor(family)
	if err != nil {
		return nil, nil, err
	}
	s := solver.New(adaptor)
	loaded, loadErr := solver.LoadModel(s, rewritten)
	if loadErr != nil {
		return nil, nil, fmt.Errorf("%s rejected model: %s", family, loadErr)
	}

	var solutions []map[string]adt.Literal
	success, failure := solver.Solve(loaded, func(assignment map[string]adt.Literal) bool {
		solutions = append(solutions, assignment)
		return true
	})
	if failure != nil {
		return nil, nil, fmt.Errorf("%s solve failed: %s", family, failure.State().Why)
	}
	_ = success
	return solutions, trace, nil
}

func runScenario(cmd *Command, fixturePath string, accept bool) error {
	scen, err := fixture.Load(fixturePath)
	if err != nil {
		return crashf("%s", err)
	}

	modelPath := scen.ModelFile
	if modelPath == "" && scen.InlineModel == "" {
		return crashf("scenario %q: neither modelFile nor inlineModel set", scen.Name)
	}
	if modelPath != "" && !filepath.IsAbs(modelPath) {
		modelPath = filepath.Join(filepath.Dir(fixturePath), modelPath)
	}
	if scen.InlineModel != "" {
		tmp, err := os.CreateTemp("", "conjure-scenario-*.json")
		if err != nil {
			return crashf("%s", err)
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.WriteString(scen.InlineModel); err != nil {
			return crashf("%s", err)
		}
		tmp.Close()
		modelPath = tmp.Name()
	}

	solutions, trace, err := solveScenarioModel(scen.Solver, scen.ExtraRuleSets, modelPath)
	if err != nil {
		return crashf("scenario %q: %s", scen.Name, err)
	}

	mismatches := diffScenario(scen, solutions, trace)

	if scen.CompareAgainst != "" {
		other, _, err := solveScenarioModel(scen.CompareAgainst, nil, modelPath)
		if err != nil {
			return crashf("scenario %q: comparison solver %s: %s", scen.Name, scen.CompareAgainst, err)
		}
		if !sameSolutionSet(solutions, other) {
			mismatches = append(mismatches, fmt.Sprintf(
				"solution set with --solver=%s disagrees with --solver=%s (%d vs %d solutions)",
				scen.Solver, scen.CompareAgainst, len(solutions), len(other)))
		}
	}

	if len(mismatches) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "PASS %s\n", scen.Name)
		return nil
	}

	if accept {
		scen.ExpectedSolutionCount = len(solutions)
		scen.ExpectedRuleNames = trace.RuleNames()
		if err := fixture.Save(fixturePath, scen); err != nil {
			return crashf("%s", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ACCEPT %s: %s\n", scen.Name, strings.Join(mismatches, "; "))
		return nil
	}

	return semanticMismatch("FAIL %s: %s", scen.Name, strings.Join(mismatches, "; "))
}

func diffScenario(scen *fixture.Scenario, solutions []map[string]adt.Literal, trace rewrite.Trace) []string {
	var mismatches []string
	if len(solutions) != scen.ExpectedSolutionCount {
		mismatches = append(mismatches, fmt.Sprintf(
			"expected %d solutions, got %d", scen.ExpectedSolutionCount, len(solutions)))
	}
	if len(scen.ExpectedRuleNames) > 0 {
		seen := map[string]bool{}
		for _, name := range trace.RuleNames() {
			seen[name] = true
		}
		for _, want := range scen.ExpectedRuleNames {
			if !seen[want] {
				mismatches = append(mismatches, fmt.Sprintf("rule %q never appeared in the trace", want))
			}
		}
	}
	return mismatches
}

// sameSolutionSet compares two solution lists as sets, ignoring order and
// duplicate callbacks.
func sameSolutionSet(a, b []map[string]adt.Literal) bool {
	as, bs := map[string]bool{}, map[string]bool{}
	for _, sol := range a {
		as[assignmentKey(sol)] = true
	}
	for _, sol := range b {
		bs[assignmentKey(sol)] = true
	}
	if len(as) != len(bs) {
		return false
	}
	for k := range as {
		if !bs[k] {
			return false
		}
	}
	return true
}

func assignmentKey(assignment map[string]adt.Literal) string {
	names := make([]string, 0, len(assignment))
	for name := range assignment {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s=%s;", name, assignment[name].String())
	}
	return b.String()
}
