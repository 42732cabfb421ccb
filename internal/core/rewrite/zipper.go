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

package rewrite

import "github.com/conjure-cp/conjure-oxide-sub003/internal/core/adt"

// crumb records a step taken down into one child of parent, keeping every
// sibling (so edits to the focus can be folded back in on the way up).
type crumb struct {
	parent   adt.Expr
	siblings []adt.Expr
	index    int
}

// Zipper is a cursor over an Expr tree that supports descending,
// advancing to a sibling, replacing the focused node, and climbing back
// to a rebuilt root, grounded on original_source's rule_engine::
// submodel_zipper.rs (SubmodelZipper wrapping uniplate's Zipper). Unlike
// that type this Zipper has no go_left: the engine's traversal only ever
// moves forward (down, right, up), so the symmetric backward step isn't
// needed.
//
// submodel_zipper.rs's go_down refuses to enter a Scope or Comprehension
// node explicitly, matching its "do not enter things that create new
// submodels" guard; here that guard falls out for free from the
// Children/Rebuild contract itself: *Scope and *Comprehension both report
// zero Children (adt/walk.go's Walk doc comment), so Down simply finds
// nothing to descend into at those nodes.
type Zipper struct {
	focus  adt.Expr
	crumbs []crumb
}

// NewZipper starts a Zipper focused on root.
func NewZipper(root adt.Expr) *Zipper {
	return &Zipper{focus: root}
}

// Focus returns the currently focused node.
func (z *Zipper) Focus() adt.Expr { return z.focus }

// Replace substitutes the focused node with x.
func (z *Zipper) Replace(x adt.Expr) { z.focus = x }

// Down descends into the focus's first child, reporting false (leaving
// the focus unchanged) if it has none.
func (z *Zipper) Down() bool {
	kids := z.focus.Children()
	if len(kids) == 0 {
		return false
	}
	z.crumbs = append(z.crumbs, crumb{parent: z.focus, siblings: append([]adt.Expr(nil), kids...), index: 0})
	z.focus = kids[0]
	return true
}

// Right advances to the focus's next sibling, reporting false (leaving
// the focus unchanged) if it was the last one.
func (z *Zipper) Right() bool {
	if len(z.crumbs) == 0 {
		return false
	}
	top := &z.crumbs[len(z.crumbs)-1]
	top.siblings[top.index] = z.focus
	if top.index+1 >= len(top.siblings) {
		return false
	}
	top.index++
	z.focus = top.siblings[top.index]
	return true
}

// Up climbs back to the parent, rebuilding it from the (possibly edited)
// sibling list, reporting false if focus is already the root.
func (z *Zipper) Up() bool {
	if len(z.crumbs) == 0 {
		return false
	}
	top := z.crumbs[len(z.crumbs)-1]
	top.siblings[top.index] = z.focus
	z.crumbs = z.crumbs[:len(z.crumbs)-1]
	z.focus = top.parent.Rebuild(top.siblings)
	return true
}

// RebuildRoot climbs all the way back to the root, folding in every edit
// made along the way, and returns it.
func (z *Zipper) RebuildRoot() adt.Expr {
	for z.Up() {
	}
	return z.focus
}
