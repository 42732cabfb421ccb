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
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/pretty"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/rcontext"
)

func newPrettyCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pretty MODEL.json",
		Short: "print a Model JSON file in Essence-like surface syntax",
		Args:  cobra.ExactArgs(1),
		RunE:  mkRunE(c, runPretty),
	}
	cmd.Flags().Bool(string(flagDumpRaw), false, "dump the decoded model's Go representation instead")
	return cmd
}

func runPretty(cmd *Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return crashf("%s", err)
	}
	rctx := rcontext.New(flagSolver.String(cmd))
	model, err := adt.DecodeModel(json.RawMessage(raw), rctx)
	if err != nil {
		return errWrapModelInvalid(args[0], err)
	}

	out := cmd.OutOrStdout()
	if flagDumpRaw.Bool(cmd) {
		fmt.Fprintln(out, pretty.Dump(model))
		return nil
	}
	fmt.Fprintln(out, pretty.Model(model))
	return nil
}

func errWrapModelInvalid(path string, err error) error {
	return crashf("decoding %s: %s", path, err)
}
