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

import "fmt"

// judgeSystemInstruction is the fixed judge role. The wire contract with
// the model is the JSON object described here; ParseJudgment enforces it.
const judgeSystemInstruction = `You are an expert at evaluating whether two given strings are similar or not. Consider semantic similarity also while evaluating.
You MUST return a JSON object with the following fields:
- result: Result must be either 'Pass' or 'Fail'.
- explanation: An explanation of why the result is Pass or Fail.
- score: Any matching score you have used to come to the result.`

// BuildComparisonPrompt creates the user turn carrying both values.
func BuildComparisonPrompt(actual, expected string) string {
	return fmt.Sprintf(`Following are two strings:
1. String 1: %s.
2. String 2: %s.`, actual, expected)
}
