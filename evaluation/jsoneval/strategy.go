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

package jsoneval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/google/go-cmp/cmp"
)

var (
	// ErrUnknownStrategy indicates a validation entry named a comparison
	// strategy that does not exist. A caller bug, not a data-quality
	// issue.
	ErrUnknownStrategy = errors.New("jsoneval: unknown validating function")

	// ErrMissingAPIKey indicates the LLM Similarity strategy could not
	// resolve a credential from the validation entry, the evaluator
	// configuration, or the environment.
	ErrMissingAPIKey = errors.New("jsoneval: no OpenAI API key available")

	// ErrNoEmbedder indicates the Cosine Similarity strategy has no
	// embedding capability configured.
	ErrNoEmbedder = errors.New("jsoneval: no embedder configured")
)

// DefaultPassThreshold is the Cosine Similarity pass bar used when a
// validation entry does not set one. The comparison is inclusive:
// a score exactly at the threshold passes.
const DefaultPassThreshold = 0.8

// Strategy is the closed set of per-path comparison algorithms.
type Strategy int

const (
	StrategyUnknown Strategy = iota
	StrategyEquals
	StrategyCosineSimilarity
	StrategyLLMSimilarity
)

// ParseStrategy resolves a validating function's wire name. The original
// wire names carry a space; the compact spellings are accepted as
// aliases.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "Equals":
		return StrategyEquals, nil
	case "Cosine Similarity", "CosineSimilarity":
		return StrategyCosineSimilarity, nil
	case "LLM Similarity", "LlmSimilarity":
		return StrategyLLMSimilarity, nil
	default:
		return StrategyUnknown, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// String returns the canonical wire name.
func (s Strategy) String() string {
	switch s {
	case StrategyEquals:
		return "Equals"
	case StrategyCosineSimilarity:
		return "Cosine Similarity"
	case StrategyLLMSimilarity:
		return "LLM Similarity"
	default:
		return "Unknown"
	}
}

// Validation is one entry of a validation plan. Constructed per
// comparison request, consumed once.
type Validation struct {
	ValidatingFunction string   `json:"validating_function"`
	JSONPath           string   `json:"json_path"`
	PassThreshold      *float64 `json:"pass_threshold"`
	Model              string   `json:"model"`
	OpenAIAPIKey       string   `json:"open_ai_api_key"`
}

// outcome is the result of applying one strategy: either the values
// agree, or they do not and details explains why. Strategies are pure in
// their inputs; err is reserved for configuration failures.
type outcome struct {
	passed  bool
	details map[string]any
}

// applyEquals compares the two extracted values structurally. A path
// absent from both documents compares equal; absent on only one side is
// a mismatch.
func applyEquals(actual, expected Value, path string) outcome {
	if actual.Found != expected.Found {
		return outcome{details: map[string]any{
			"json_path":      path,
			"actual_found":   actual.Found,
			"expected_found": expected.Found,
		}}
	}
	if !actual.Found && !expected.Found {
		return outcome{passed: true}
	}
	if !cmp.Equal(actual.Data, expected.Data) {
		return outcome{details: map[string]any{
			"json_path": path,
			"diff":      cmp.Diff(expected.Data, actual.Data),
		}}
	}
	return outcome{passed: true}
}

// applyCosine embeds both text representations and passes iff the cosine
// score meets the threshold. An embedding failure counts against the
// validation rather than silently passing.
func (e *Evaluator) applyCosine(ctx context.Context, actual, expected Value, v Validation) (outcome, error) {
	if e.embedder == nil {
		return outcome{}, ErrNoEmbedder
	}
	threshold := DefaultPassThreshold
	if v.PassThreshold != nil {
		threshold = *v.PassThreshold
	}

	actualVec, err := e.embed(ctx, actual.Text())
	if err != nil {
		return outcome{details: map[string]any{"json_path": v.JSONPath, "embed_error": err.Error()}}, nil
	}
	expectedVec, err := e.embed(ctx, expected.Text())
	if err != nil {
		return outcome{details: map[string]any{"json_path": v.JSONPath, "embed_error": err.Error()}}, nil
	}

	score := cosineSimilarity(actualVec, expectedVec)
	if score < threshold {
		return outcome{details: map[string]any{
			"json_path": v.JSONPath,
			"score":     score,
			"threshold": threshold,
		}}, nil
	}
	return outcome{passed: true}, nil
}

// applyLLM asks the judge model for a structured similarity judgment.
// A missing credential is a fatal configuration error; a malformed or
// failing judgment is a failed validation.
func (e *Evaluator) applyLLM(ctx context.Context, actual, expected Value, v Validation) (outcome, error) {
	if err := e.resolveAPIKey(v); err != nil {
		return outcome{}, err
	}
	if e.judge == nil {
		return outcome{}, fmt.Errorf("jsoneval: no LLM configured for LLM Similarity")
	}

	judgment, err := e.judge.Compare(ctx, actual.Text(), expected.Text(), v.Model)
	if err != nil {
		return outcome{details: map[string]any{"json_path": v.JSONPath, "judge_error": err.Error()}}, nil
	}
	if !judgment.Passed() {
		return outcome{details: map[string]any{
			"json_path":   v.JSONPath,
			"explanation": judgment.Explanation,
			"score":       judgment.Score,
		}}, nil
	}
	return outcome{passed: true}, nil
}

// resolveAPIKey enforces the credential resolution order for the LLM
// strategy: the validation entry, then the configured key, then the
// environment.
func (e *Evaluator) resolveAPIKey(v Validation) error {
	if v.OpenAIAPIKey != "" || e.apiKey != "" || os.Getenv("OPENAI_API_KEY") != "" {
		return nil
	}
	return ErrMissingAPIKey
}

// embed returns the embedding for a text, consulting the cache first.
func (e *Evaluator) embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := e.embedCache.Get(text); ok {
		return vec, nil
	}
	vec, err := e.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	e.embedCache.Add(text, vec)
	return vec, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Zero-magnitude vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
