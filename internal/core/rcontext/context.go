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

// Package rcontext holds the process-wide Context (active solver family,
// resolved rule sets) and Stats.
package rcontext

import "sync"

// EngineKind names a rewrite engine recorded on a Context. The CLI always
// runs package rewrite's engine, whatever a Context records.
type EngineKind int

const (
	NaiveEngine EngineKind = iota
	MorphEngine
)

func (k EngineKind) String() string {
	if k == MorphEngine {
		return "morph"
	}
	return "naive"
}

// Context is the mutable, shared state threaded through a rewrite run: the
// target solver family, the rule sets resolved from it, and the engine
// selection. It is a plain struct guarded by a mutex rather than a
// reference-counted pointer; Go's garbage collector already gives every
// *Context reference-counted-pointer semantics for free, so a second,
// explicit refcount would just be bookkeeping the runtime performs anyway.
type Context struct {
	mu sync.RWMutex

	solverFamily string
	ruleSets     []string
	resolved     []string
	engine       EngineKind

	stats Stats
}

// New creates a Context targeting the given solver family with the given
// requested rule sets (not yet resolved; the resolved order is stored
// separately with SetResolved).
func New(solverFamily string, ruleSets ...string) *Context {
	return &Context{solverFamily: solverFamily, ruleSets: ruleSets}
}

// SolverFamily implements adt.ContextHolder.
func (c *Context) SolverFamily() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.solverFamily
}

// SetSolverFamily retargets the context, e.g. when the CLI's --solver flag
// is applied after construction.
func (c *Context) SetSolverFamily(family string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.solverFamily = family
}

// RuleSets returns the requested (unresolved) rule-set names.
func (c *Context) RuleSets() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.ruleSets...)
}

// SetResolved stores the dependency-resolved, topologically ordered rule
// set list.
func (c *Context) SetResolved(names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolved = append([]string(nil), names...)
}

// Resolved returns the last resolved rule-set order, or nil if SetResolved
// has not been called yet.
func (c *Context) Resolved() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.resolved...)
}

// Engine reports which rewrite engine this context records.
func (c *Context) Engine() EngineKind {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.engine
}

// SetEngine switches the engine selection.
func (c *Context) SetEngine(k EngineKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine = k
}

// Stats returns a snapshot copy of the running statistics counters.
func (c *Context) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// MutateStats applies f to the context's live Stats under the write lock,
// the single entry point every rewrite/solve step uses to record progress.
func (c *Context) MutateStats(f func(*Stats)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f(&c.stats)
}
