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

// Package savilerow is the SavileRow family's solver.SolverAdaptor: it
// shells out to the external savilerow/conjure executables the way
// crates/conjure_core/src/solver/adaptors/savilerow.rs's solve does
// (Command::new("savilerow").arg(essence_prime_file).arg("--solutions-dir")
// .arg(&tmp_dir).output()), reading solutions back from the directory
// SavileRow writes them to rather than parsing stdout directly.
package savilerow

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/google/shlex"

	"github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"
	"github.com/conjure-cp/conjure-oxide-sub003/internal/solver"
)

// SavileRow is a SolverAdaptor driving an external savilerow process.
type SavileRow struct {
	// exe names the executable to run; overridable (WithExecutable) so
	// tests can point it at a stub script instead of a real install.
	exe string
	// extraArgs is a single shell-style argument string (e.g.
	// "--timeout 10 --randomseed 42") split with google/shlex before
	// being appended to the invocation.
	extraArgs string

	symbols        *adt.SymbolTable
	eprimeText     string
	eprimeFilePath string
}

// New constructs an unloaded SavileRow adaptor invoking the "savilerow"
// executable from $PATH with no extra arguments.
func New() *SavileRow {
	return &SavileRow{exe: "savilerow"}
}

// WithExecutable overrides the executable path/name to invoke.
func (s *SavileRow) WithExecutable(path string) *SavileRow {
	s.exe = path
	return s
}

// WithExtraArgs sets a shlex-parsed extra-arguments string appended after
// the standard model/solutions-dir flags.
func (s *SavileRow) WithExtraArgs(args string) *SavileRow {
	s.extraArgs = args
	return s
}

func (s *SavileRow) Family() string { return "savilerow" }

// LoadModel translates the model to Essence Prime text and writes it to a
// temporary .eprime file, mirroring load_model's
// tmp_dir.join("model.eprime") plus transform_to_essence_prime call.
func (s *SavileRow) LoadModel(model *adt.Model) *solver.Error {
	if model == nil || model.Sub == nil {
		return solver.InvalidModel("no model given")
	}
	root, ok := model.RootExpr()
	if !ok {
		return solver.InvalidModel("model root is not a Root node")
	}
	text, err := toEssencePrime(model.Sub.Symbols, root.Constraints)
	if err != nil {
		return err
	}

	f, ferr := os.CreateTemp("", "conjure-*.eprime")
	if ferr != nil {
		return solver.RuntimeError("creating essence prime file: %s", ferr)
	}
	defer f.Close()
	if _, werr := f.WriteString(text); werr != nil {
		return solver.RuntimeError("writing essence prime file: %s", werr)
	}

	s.symbols = model.Sub.Symbols
	s.eprimeText = text
	s.eprimeFilePath = f.Name()
	return nil
}

// Solve shells out to savilerow, passing the essence prime file and a
// fresh --solutions-dir, then reads every *.solution file it wrote back,
// mirroring the original's Command::new("savilerow")... output() call.
func (s *SavileRow) Solve(callback solver.Callback) (solver.SolveStats, solver.SearchStatus, *solver.Error) {
	if s.eprimeFilePath == "" {
		return solver.SolveStats{}, solver.SearchStatus{}, solver.InvalidModel("no model loaded")
	}

	solutionsDir, derr := os.MkdirTemp("", "savilerow_solutions")
	if derr != nil {
		return solver.SolveStats{}, solver.SearchStatus{}, solver.RuntimeError("creating solutions dir: %s", derr)
	}

	args := []string{s.eprimeFilePath, "--solutions-dir", solutionsDir}
	if s.extraArgs != "" {
		extra, serr := shlex.Split(s.extraArgs)
		if serr != nil {
			return solver.SolveStats{}, solver.SearchStatus{}, solver.InvalidModel("invalid extra arguments: %s", serr)
		}
		args = append(args, extra...)
	}

	cmd := exec.Command(s.exe, args...)
	output, runErr := cmd.CombinedOutput()
	if runErr != nil {
		return solver.SolveStats{}, solver.SearchStatus{}, solver.RuntimeError("savilerow: %s: %s", runErr, output)
	}

	matches, gerr := filepath.Glob(filepath.Join(solutionsDir, "*.solution"))
	if gerr != nil {
		return solver.SolveStats{}, solver.SearchStatus{}, solver.RuntimeError("listing solutions: %s", gerr)
	}
	sort.Strings(matches)

	found := false
	var nodes int64
	for _, path := range matches {
		nodes++
		f, ferr := os.Open(path)
		if ferr != nil {
			return solver.SolveStats{}, solver.SearchStatus{}, solver.RuntimeError("opening %s: %s", path, ferr)
		}
		assignment, perr := parseSolution(f, s.symbols)
		f.Close()
		if perr != nil {
			return solver.SolveStats{}, solver.SearchStatus{}, perr
		}
		found = true
		if !callback(assignment) {
			break
		}
	}

	stats := solver.SolveStats{SearchNodes: nodes, Satisfiable: found, SatisfiableOK: true}
	outcome := solver.NoSolutions
	if found {
		outcome = solver.HasSolutions
	}
	return stats, solver.Done(outcome), nil
}

// SolveMut matches the original's unconditional Err(OpNotImplemented
// ("solve_mut".into())): SavileRow re-invokes the whole external tool per
// solve, so there is no incremental handle to extend.
func (s *SavileRow) SolveMut(callback solver.MutCallback) (solver.SolveStats, solver.SearchStatus, *solver.Error) {
	return solver.SolveStats{}, solver.SearchStatus{}, solver.NotImplemented("solve_mut")
}

// WriteSolverInputFile emits the Essence Prime text built during LoadModel.
func (s *SavileRow) WriteSolverInputFile(w io.Writer) *solver.Error {
	if s.eprimeFilePath == "" {
		return solver.InvalidModel("no model loaded")
	}
	if _, err := io.WriteString(w, s.eprimeText); err != nil {
		return solver.RuntimeError("%s", err)
	}
	return nil
}
