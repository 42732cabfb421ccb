// Copyright 2018 The CUE Authors
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

// Package errors defines the error taxonomy used throughout the rewrite
// core: ParseError, ModelInvalid, DomainOpError, RuleSetResolutionError,
// SolverError, AssignmentError and Bug. RuleNotApplicable is deliberately
// not part of this taxonomy: it carries no diagnostic weight and never
// crosses the rule-engine boundary.
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Kind classifies a surfaced error, used by the CLI to choose an exit code
// and render the right banner.
type Kind int

const (
	Parse Kind = iota
	ModelInvalidKind
	DomainOp
	RuleSetResolution
	Solver
	Assignment
	BugKind
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "ParseError"
	case ModelInvalidKind:
		return "ModelInvalid"
	case DomainOp:
		return "DomainOpError"
	case RuleSetResolution:
		return "RuleSetResolutionError"
	case Solver:
		return "SolverError"
	case Assignment:
		return "AssignmentError"
	case BugKind:
		return "Bug"
	default:
		return "UnknownError"
	}
}

// Pos is a minimal source position: a byte span name plus a line/column,
// used when the model was produced by the external grammar parser.
// It is intentionally decoupled from any concrete parser package, since
// grammar parsing is out of scope for the core.
type Pos struct {
	Filename string
	Line     int
	Column   int
}

// IsValid reports whether p carries real position information.
func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Error is the common error interface for all surfaced errors in this
// module. It mirrors cue/errors.Error: a position, a path into the model,
// and an unformatted message for later localization/CLI formatting.
type Error interface {
	error
	Kind() Kind
	Position() Pos
	InputPositions() []Pos
	Path() []string
}

// Positions returns the sorted, de-duplicated positions that contributed to
// err, if err is one of our Error values.
func Positions(err error) []Pos {
	var e Error
	if !errors.As(err, &e) {
		return nil
	}
	out := make([]Pos, 0, 4)
	if p := e.Position(); p.IsValid() {
		out = append(out, p)
	}
	for _, p := range e.InputPositions() {
		if p.IsValid() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Filename != out[j].Filename {
			return out[i].Filename < out[j].Filename
		}
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].Column < out[j].Column
	})
	dedup := out[:0]
	for _, p := range out {
		if len(dedup) > 0 && dedup[len(dedup)-1] == p {
			continue
		}
		dedup = append(dedup, p)
	}
	return dedup
}

// baseError is the concrete implementation shared by all constructors below.
type baseError struct {
	kind   Kind
	pos    Pos
	path   []string
	format string
	args   []any
	wrap   error
}

func (e *baseError) Error() string {
	msg := fmt.Sprintf(e.format, e.args...)
	if e.wrap == nil {
		return msg
	}
	if msg == "" {
		return e.wrap.Error()
	}
	return fmt.Sprintf("%s: %s", msg, e.wrap)
}

func (e *baseError) Kind() Kind             { return e.kind }
func (e *baseError) Position() Pos          { return e.pos }
func (e *baseError) Path() []string         { return e.path }
func (e *baseError) Unwrap() error          { return e.wrap }
func (e *baseError) InputPositions() []Pos {
	var w Error
	if errors.As(e.wrap, &w) {
		return append([]Pos{w.Position()}, w.InputPositions()...)
	}
	return nil
}

func newf(k Kind, pos Pos, format string, args ...any) Error {
	return &baseError{kind: k, pos: pos, format: format, args: args}
}

// Newf creates an Error of the given kind at the given position.
func Newf(k Kind, pos Pos, format string, args ...any) Error {
	return newf(k, pos, format, args...)
}

// Wrapf creates an Error of the given kind, wrapping a lower-level error for
// additional context (e.g. a DomainOpError wrapping the RuleNotApplicable
// reason it was converted from).
func Wrapf(k Kind, wrapped error, pos Pos, format string, args ...any) Error {
	e := newf(k, pos, format, args...).(*baseError)
	e.wrap = wrapped
	return e
}

// WithPath attaches a model path (names joined root-to-leaf) to err.
func WithPath(err Error, path ...string) Error {
	b, ok := err.(*baseError)
	if !ok {
		return err
	}
	cp := *b
	cp.path = path
	return &cp
}

// ParseError reports a syntactically invalid source-language input.
func ParseError(pos Pos, format string, args ...any) Error {
	return newf(Parse, pos, format, args...)
}

// ModelInvalid reports a semantically inconsistent model: dangling
// reference, domain conflict, type mismatch.
func ModelInvalid(format string, args ...any) Error {
	return newf(ModelInvalidKind, Pos{}, format, args...)
}

// RuleSetResolutionErrorf reports a missing or cyclic rule-set dependency.
func RuleSetResolutionErrorf(format string, args ...any) Error {
	return newf(RuleSetResolution, Pos{}, format, args...)
}

// AssignmentErrorf reports a candidate assignment rejected by a variable's
// domain.
func AssignmentErrorf(format string, args ...any) Error {
	return newf(Assignment, Pos{}, format, args...)
}

// List aggregates zero or more Errors, itself implementing Error by
// reporting the first entry's position, and printing all messages on
// Error().
type List []Error

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b []byte
	for i, e := range l {
		if i > 0 {
			b = append(b, '\n')
		}
		b = append(b, e.Error()...)
	}
	return string(b)
}

func (l List) Kind() Kind {
	if len(l) == 0 {
		return BugKind
	}
	return l[0].Kind()
}

func (l List) Position() Pos {
	if len(l) == 0 {
		return Pos{}
	}
	return l[0].Position()
}

func (l List) InputPositions() []Pos {
	var out []Pos
	for _, e := range l {
		out = append(out, e.InputPositions()...)
	}
	return out
}

func (l List) Path() []string {
	if len(l) == 0 {
		return nil
	}
	return l[0].Path()
}

// Add appends err to the list, flattening nested Lists.
func (l List) Add(err Error) List {
	if err == nil {
		return l
	}
	if nested, ok := err.(List); ok {
		return append(l, nested...)
	}
	return append(l, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain assignable to target.
func As(err error, target any) bool { return errors.As(err, target) }
