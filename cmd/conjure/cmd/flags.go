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
	"fmt"

	"github.com/spf13/pflag"
)

// flagName is a string-typed flag constant plus a typed accessor that
// panics (ensureAdded) if the flag was never registered on the command
// being read, catching a flag-name typo or a flag read by the wrong
// subcommand at test time rather than silently returning a zero value.
type flagName string

const (
	// Global flags.
	flagSolver                     flagName = "solver"
	flagExtraRuleSets              flagName = "extra-rule-sets"
	flagCheckEquallyApplicable     flagName = "check-equally-applicable-rules"
	flagEnableNativeParser         flagName = "enable-native-parser"
	flagTracing                    flagName = "tracing"
	flagTraceOutput                flagName = "trace-output"
	flagVerbosity                  flagName = "verbosity"
	flagFormatter                  flagName = "formatter"
	flagHumanRuleTrace             flagName = "human-rule-trace"
	flagFilterMessageByKind        flagName = "filter-message-by-kind"

	// solve-only.
	flagNumSolutions flagName = "num-solutions"
	flagTimeout      flagName = "timeout"
	flagSolverArgs   flagName = "solver-args"

	// test-solve-only.
	flagAccept flagName = "accept"

	// pretty-only.
	flagDumpRaw flagName = "dump-raw"
)

func (f flagName) ensureAdded(cmd *Command) {
	if cmd.Flags().Lookup(string(f)) == nil {
		panic(fmt.Sprintf("cmd %q uses flag %q without adding it", cmd.Name(), f))
	}
}

func (f flagName) Bool(cmd *Command) bool {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetBool(string(f))
	return v
}

func (f flagName) String(cmd *Command) string {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetString(string(f))
	return v
}

func (f flagName) StringArray(cmd *Command) []string {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetStringArray(string(f))
	return v
}

func (f flagName) Int(cmd *Command) int {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetInt(string(f))
	return v
}

// addGlobalFlags installs the persistent flags shared by every subcommand;
// subcommand-specific flags are added by each subcommand itself.
func addGlobalFlags(f *pflag.FlagSet) {
	f.String(string(flagSolver), "minion", "solver backend: minion|sat|smt|savilerow")
	f.StringArray(string(flagExtraRuleSets), nil, "enable additional rule sets beyond the solver's default")
	f.Bool(string(flagCheckEquallyApplicable), false, "panic if the rule selector sees a tie at one node")
	f.Bool(string(flagEnableNativeParser), false, "use the built-in parser rather than shelling out to conjure")
	f.Bool(string(flagTracing), false, "emit a rule-application trace")
	f.String(string(flagTraceOutput), "stdout", "trace destination: stdout|FILE")
	f.String(string(flagVerbosity), "low", "trace verbosity: low|med|high")
	f.String(string(flagFormatter), "human", "output formatter: human|json")
	f.String(string(flagHumanRuleTrace), "", "write a human-readable rule trace to this path")
	f.String(string(flagFilterMessageByKind), "", "only trace messages of this kind")
}
