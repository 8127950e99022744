// Copyright 2025 Athina Evals Authors
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

package evaluation

// Verdict is the uniform outcome of a single operation. Every operation
// terminates in exactly one Verdict; anything that cannot be expressed as
// a Verdict (malformed input, missing credentials, unknown operation) is
// surfaced as a Go error instead.
type Verdict struct {
	// Result reports whether the check passed.
	Result bool `json:"result"`

	// Reason is a human-readable explanation of the result. Never empty.
	Reason string `json:"reason"`

	// Matches lists located fragments for operations that search the
	// subject text (e.g. embedded JSON fragments).
	Matches []any `json:"matches,omitempty"`

	// Errors lists per-fragment failures for operations that search the
	// subject text.
	Errors []any `json:"errors,omitempty"`

	// Details carries additional diagnostic keys. Additive-only: callers
	// must not rely on any particular key being present.
	Details map[string]any `json:"details,omitempty"`
}

// Pass returns a passing verdict with the given reason.
func Pass(reason string) *Verdict {
	return &Verdict{Result: true, Reason: reason}
}

// Fail returns a failing verdict with the given reason.
func Fail(reason string) *Verdict {
	return &Verdict{Result: false, Reason: reason}
}
