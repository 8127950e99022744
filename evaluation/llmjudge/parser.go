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

package llmjudge

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Judgment verdict values.
const (
	VerdictPass = "Pass"
	VerdictFail = "Fail"
)

// Judgment is the structured verdict the judge model must answer with.
type Judgment struct {
	Result      string  `json:"result"`
	Explanation string  `json:"explanation"`
	Score       float64 `json:"score"`
}

// Passed reports whether the judgment is a Pass.
func (j *Judgment) Passed() bool {
	return j != nil && j.Result == VerdictPass
}

// ResponseParser extracts structured judgments from raw judge responses.
type ResponseParser struct{}

// NewResponseParser creates a new response parser.
func NewResponseParser() *ResponseParser {
	return &ResponseParser{}
}

// ParseJudgment parses a judge response into a Judgment. Models asked
// for JSON still occasionally wrap it in a markdown fence or surrounding
// prose, so the parser extracts the outermost JSON object before
// decoding. A response without a well-formed judgment is an error.
func (p *ResponseParser) ParseJudgment(response string) (*Judgment, error) {
	raw := extractJSONObject(response)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object found in judge response: %s", response)
	}

	var judgment Judgment
	if err := json.Unmarshal([]byte(raw), &judgment); err != nil {
		return nil, fmt.Errorf("malformed judge response: %w", err)
	}

	switch judgment.Result {
	case VerdictPass, VerdictFail:
		return &judgment, nil
	default:
		return nil, fmt.Errorf("judge result must be %q or %q, got %q", VerdictPass, VerdictFail, judgment.Result)
	}
}

// extractJSONObject returns the outermost {...} span of the response,
// after stripping any markdown code fences. Empty when there is none.
func extractJSONObject(response string) string {
	cleaned := strings.TrimSpace(response)
	if after, ok := strings.CutPrefix(cleaned, "```json"); ok {
		cleaned = after
	} else if after, ok := strings.CutPrefix(cleaned, "```"); ok {
		cleaned = after
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return ""
	}
	return cleaned[start : end+1]
}
