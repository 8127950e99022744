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

import (
	"context"
	"encoding/json"
	"strings"
)

// JSONFragment describes one brace-delimited candidate located in the
// subject text. For a valid fragment JSON holds the parsed value; for an
// invalid one it holds the raw candidate text alongside the parse error.
type JSONFragment struct {
	JSON  any    `json:"json"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// isJsonHandler requires the entire text to parse as JSON. This is
// deliberately stricter than ContainsJson, which tolerates JSON embedded
// in surrounding prose.
func isJsonHandler(_ context.Context, text string, _ map[string]any) (*Verdict, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return Fail("Output does not contain JSON"), nil
	}
	return Pass("Output contains JSON"), nil
}

// containsJsonHandler scans the text for balanced brace-delimited
// candidates and attempts to parse each. A candidate that fails to parse
// fails the check even when other candidates parse cleanly.
func containsJsonHandler(_ context.Context, text string, _ map[string]any) (*Verdict, error) {
	candidates := scanJSONCandidates(strings.TrimSpace(text))
	if len(candidates) == 0 {
		return Fail("Output does not contain JSON"), nil
	}

	var matches []any
	var errs []any
	for _, candidate := range candidates {
		var parsed any
		if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
			errs = append(errs, JSONFragment{JSON: candidate, Valid: false, Error: err.Error()})
			continue
		}
		matches = append(matches, JSONFragment{JSON: parsed, Valid: true})
	}

	if len(errs) > 0 {
		return &Verdict{
			Result:  false,
			Reason:  "Output contains a potential JSON but it is invalid",
			Matches: matches,
			Errors:  errs,
		}, nil
	}
	return &Verdict{
		Result:  true,
		Reason:  "Output contains JSON",
		Matches: matches,
	}, nil
}

// scanJSONCandidates returns the non-overlapping balanced {...} substrings
// of text, left to right. The scan is string-aware so braces inside JSON
// string literals do not affect nesting depth.
func scanJSONCandidates(text string) []string {
	var candidates []string
	for i := 0; i < len(text); {
		if text[i] != '{' {
			i++
			continue
		}
		end := scanBalanced(text, i)
		if end < 0 {
			// Unterminated candidate; nothing later can balance either.
			break
		}
		candidates = append(candidates, text[i:end+1])
		i = end + 1
	}
	return candidates
}

// scanBalanced returns the index of the brace closing the candidate that
// opens at start, or -1 if the text ends first.
func scanBalanced(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
