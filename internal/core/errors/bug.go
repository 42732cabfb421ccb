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

package errors

import "fmt"

// Version is stamped at build time (-ldflags) with the module's release
// version; it defaults to "dev".
var Version = "dev"

// Bug panics with a formatted internal-invariant-violation report. Bug is
// reserved for states that should be unreachable by construction (a
// dangling reference, a non-idempotent ground resolution): it always
// aborts.
func Bug(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	panic(fmt.Sprintf(`
This should never happen, sorry!

However, it did happen, so it must be a bug. Please report it to us.

version: %s

%s
`, Version, msg))
}

// BugIf panics via Bug iff cond is true. Useful for guarding invariants
// inline without an extra if-block.
func BugIf(cond bool, format string, args ...any) {
	if cond {
		Bug(format, args...)
	}
}
