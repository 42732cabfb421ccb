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

// Package cmd is the conjure CLI: a thin *cobra.Command wrapper (Command),
// a typed flagName accessor family (flags.go), and a mkRunE-style adapter
// so subcommand bodies take a *Command and return a plain error instead of
// touching *cobra.Command directly.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type runFunction func(cmd *Command, args []string) error

// Command wraps the active *cobra.Command; this CLI has no shared
// evaluation state to carry, so Command stays a thin embedding plus an
// error flag for ErrPrintedError.
type Command struct {
	*cobra.Command

	root   *cobra.Command
	hasErr bool
}

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return f(c, args)
	}
}

type errWriter Command

func (w *errWriter) Write(b []byte) (int, error) {
	c := (*Command)(w)
	c.hasErr = len(b) > 0
	return c.Command.OutOrStderr().Write(b)
}

// Stderr returns a writer that marks the command as having printed an
// error, so Main's caller exits non-zero even when the RunE itself
// returns nil.
func (c *Command) Stderr() io.Writer { return (*errWriter)(c) }

// ErrPrintedError indicates error messages were already printed directly
// to stderr, so Main should not print err a second time.
var ErrPrintedError = errors.New("terminating because of errors")

// exitCodeErr lets a subcommand pick an exit code other than the
// default 1, for
type exitCodeErr struct {
	code int
	err  error
}

func (e *exitCodeErr) Error() string { return e.err.Error() }
func (e *exitCodeErr) Unwrap() error { return e.err }

// crashf wraps err (or a formatted message) as a ≥2 exit code, used for
// every failure other than a test-solve solution mismatch (unreadable
// input, a solver rejecting or failing on a model, a malformed scenario).
func crashf(format string, args ...any) error {
	return &exitCodeErr{code: 2, err: fmt.Errorf(format, args...)}
}

// semanticMismatch reports a test-solve scenario whose native-pipeline
// solution set disagreed with the oracle's .
func semanticMismatch(format string, args ...any) error {
	return &exitCodeErr{code: 1, err: fmt.Errorf(format, args...)}
}

func New(args []string) (*Command, error) {
	root := &cobra.Command{
		Use:   "conjure",
		Short: "conjure normalizes and solves constraint models",

		SilenceErrors: true,
		SilenceUsage:  true,
	}

	c := &Command{Command: root, root: root}

	addGlobalFlags(root.PersistentFlags())

	root.InitDefaultHelpFlag()
	root.Flag("help").Hidden = true

	for _, sub := range []*cobra.Command{
		newSolveCmd(c),
		newTestSolveCmd(c),
		newPrettyCmd(c),
	} {
		root.AddCommand(sub)
	}

	root.SetArgs(args)
	return c, nil
}

// Main runs the conjure tool and returns the process exit code.
func Main() int {
	c, _ := New(os.Args[1:])
	if err := c.root.Execute(); err != nil {
		if err == ErrPrintedError {
			return 1
		}
		var ec *exitCodeErr
		if errors.As(err, &ec) {
			fmt.Fprintln(os.Stderr, ec.Error())
			return ec.code
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if c.hasErr {
		return 1
	}
	return 0
}
