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

	"github.com/spf13/cobra"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/errors"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/pretty"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rcontext"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rewrite"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rules"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver/adaptors/minion"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver/adaptors/sat"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver/adaptors/savilerow"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver/adaptors/smt"
)

func newSolveCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve MODEL.json",
		Short: "rewrite and solve a Model JSON file",
		Long: `solve loads a Model JSON file, rewrites it to a fixed point with the
rule sets its --solver family selects, drives the chosen solver adaptor,
and prints every satisfying assignment.`,
		Args: cobra.ExactArgs(1),
		RunE: mkRunE(c, runSolve),
	}
	cmd.Flags().Int(string(flagNumSolutions), 0, "stop after this many solutions (0 means unbounded)")
	cmd.Flags().String(string(flagSolverArgs), "", "extra arguments passed to an external solver backend (savilerow)")
	return cmd
}

// defaultRuleSets names the rule sets a solver family enables by default,
// grounded on original_source's per-adaptor get_rule_set calls
// (sat_adaptor.rs requests "base"+"sat"+"sat_direct", savilerow.rs and the
// smt adaptor request only "base" since both accept a fairly expressive
// input language directly).
func defaultRuleSets(family string) ([]string, error) {
	switch family {
	case "minion":
		return []string{"minion"}, nil
	case "sat":
		return []string{"sat", "sat_direct"}, nil
	case "smt":
		return []string{"base"}, nil
	case "savilerow":
		return []string{"base"}, nil
	default:
		return nil, fmt.Errorf("unknown solver family %q", family)
	}
}

func newAdaptor(family string) (solver.SolverAdaptor, error) {
	switch family {
	case "minion":
		return minion.New(), nil
	case "sat":
		return sat.New(), nil
	case "smt":
		return smt.New(), nil
	case "savilerow":
		return savilerow.New(), nil
	default:
		return nil, fmt.Errorf("unknown solver family %q", family)
	}
}

func loadModelFile(path string, ctx adt.ContextHolder) (*adt.Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return adt.DecodeModel(json.RawMessage(raw), ctx)
}

// rewriteModel resolves family's default rule sets plus any --extra-rule-sets
// and runs the naive rewrite engine to a fixed point.
func rewriteModel(cmd *Command, model *adt.Model, rctx *rcontext.Context) (*adt.Model, rewrite.Trace, error) {
	selector := rewrite.First
	if flagCheckEquallyApplicable.Bool(cmd) {
		selector = rewrite.Panic
	}
	return resolveAndRewrite(model, rctx, flagExtraRuleSets.StringArray(cmd), selector)
}

// resolveAndRewrite is rewriteModel's cobra-independent core, reused by
// test-solve (which has no *Command flags to read per scenario).
func resolveAndRewrite(model *adt.Model, rctx *rcontext.Context, extraRuleSets []string, selector rewrite.Selector) (*adt.Model, rewrite.Trace, error) {
	requested := append(append([]string(nil), rctx.RuleSets()...), extraRuleSets...)
	resolved, err := rules.Resolve(requested)
	if err != nil {
		return nil, nil, err
	}
	rctx.SetResolved(resolved)

	engine, err := rewrite.NewEngine(resolved, selector)
	if err != nil {
		return nil, nil, err
	}
	return engine.Rewrite(model)
}

func runSolve(cmd *Command, args []string) error {
	family := flagSolver.String(cmd)
	ruleSets, err := defaultRuleSets(family)
	if err != nil {
		return errors.ModelInvalid("%s", err)
	}
	rctx := rcontext.New(family, ruleSets...)

	model, err := loadModelFile(args[0], rctx)
	if err != nil {
		return errors.ModelInvalid("loading %s: %s", args[0], err)
	}

	rewritten, trace, err := rewriteModel(cmd, model, rctx)
	if err != nil {
		return err
	}
	if path := flagHumanRuleTrace.String(cmd); path != "" {
		if err := os.WriteFile(path, []byte(pretty.Trace(trace)), 0o644); err != nil {
			return fmt.Errorf("writing rule trace: %w", err)
		}
	}

	adaptor, err := newAdaptor(family)
	if err != nil {
		return errors.ModelInvalid("%s", err)
	}
	if sr, ok := adaptor.(*savilerow.SavileRow); ok {
		if extra := flagSolverArgs.String(cmd); extra != "" {
			sr.WithExtraArgs(extra)
		}
	}

	s := solver.New(adaptor)
	loaded, loadErr := solver.LoadModel(s, rewritten)
	if loadErr != nil {
		return crashf("solver rejected model: %s", loadErr)
	}

	limit := flagNumSolutions.Int(cmd)
	count := 0
	formatter := flagFormatter.String(cmd)
	var solutions []map[string]adt.Literal

	success, failure := solver.Solve(loaded, func(assignment map[string]adt.Literal) bool {
		count++
		solutions = append(solutions, assignment)
		return limit <= 0 || count < limit
	})
	if failure != nil {
		return crashf("solve failed: %s", failure.State().Why)
	}

	stats := success.State().Stats
	status := success.State().Status
	if formatter == "json" {
		return printSolutionsJSON(cmd, solutions, status)
	}
	printSolutionsHuman(cmd, solutions, status, stats)
	return nil
}

func printSolutionsHuman(cmd *Command, solutions []map[string]adt.Literal, status solver.SearchStatus, stats solver.SolveStats) {
	out := cmd.OutOrStdout()
	for i, sol := range solutions {
		fmt.Fprintf(out, "--- solution %d ---\n", i+1)
		for name, lit := range sol {
			fmt.Fprintf(out, "%s = %s\n", name, lit)
		}
	}
	fmt.Fprintf(out, "status: %s, solutions: %d, nodes: %d\n", status, len(solutions), stats.SearchNodes)
}

func printSolutionsJSON(cmd *Command, solutions []map[string]adt.Literal, status solver.SearchStatus) error {
	type wireSolution map[string]string
	out := make([]wireSolution, len(solutions))
	for i, sol := range solutions {
		w := wireSolution{}
		for name, lit := range sol {
			w[name] = lit.String()
		}
		out[i] = w
	}
	doc := struct {
		Status    string         `json:"status"`
		Solutions []wireSolution `json:"solutions"`
	}{Status: status.String(), Solutions: out}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
