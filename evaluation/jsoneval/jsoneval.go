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

// Package jsoneval implements the structured comparison engine: schema
// validation of two JSON documents, extraction of values at JSON-path
// locations, and per-path comparison using swappable strategies.
package jsoneval

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tanayvaswani/athina-evals/evaluation"
	"github.com/tanayvaswani/athina-evals/evaluation/llmjudge"
	"github.com/tanayvaswani/athina-evals/model"
)

// defaultEmbedCacheSize bounds the embedding cache. Suite runs tend to
// compare the same expected values over and over.
const defaultEmbedCacheSize = 1024

// Config configures the structured evaluator. Both capabilities are
// optional: an Evaluator without an embedder rejects Cosine Similarity
// plans, one without an LLM rejects LLM Similarity plans.
type Config struct {
	// LLM is the chat-completion capability the LLM Similarity strategy
	// judges with.
	LLM model.LLM

	// Embedder is the embedding capability behind Cosine Similarity.
	Embedder model.Embedder

	// OpenAIAPIKey is the configured fallback credential for the LLM
	// Similarity strategy. A key in the validation entry wins; the
	// OPENAI_API_KEY environment variable is the last resort.
	OpenAIAPIKey string

	// JudgeModel overrides the default judge model.
	JudgeModel string

	// EmbedCacheSize bounds the embedding cache.
	// Defaults to 1024 entries.
	EmbedCacheSize int

	// Logger receives configuration-error logs.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// Evaluator runs schema-validated, per-path comparison of two JSON
// documents. It never mutates its input documents, and all strategies
// are pure functions of the extracted values and the validation entry.
type Evaluator struct {
	judge      *llmjudge.Judge
	embedder   model.Embedder
	apiKey     string
	embedCache *lru.Cache[string, []float32]
	logger     *slog.Logger
}

// Options is the wire shape of a JsonEval request, alongside the actual
// document passed separately.
type Options struct {
	// ExpectedJSON is the reference document, structured or raw text.
	ExpectedJSON any `json:"expected_json"`

	// Schema both documents must conform to, structured or raw text.
	Schema any `json:"schema"`

	// Validations is the ordered comparison plan. Order is as supplied;
	// the first failure wins.
	Validations []Validation `json:"validations"`
}

// New creates a structured evaluator.
func New(cfg Config) (*Evaluator, error) {
	size := cfg.EmbedCacheSize
	if size <= 0 {
		size = defaultEmbedCacheSize
	}
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, fmt.Errorf("jsoneval: failed to build embed cache: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Evaluator{
		embedder:   cfg.Embedder,
		apiKey:     cfg.OpenAIAPIKey,
		embedCache: cache,
		logger:     logger,
	}
	if cfg.LLM != nil {
		e.judge = llmjudge.NewJudge(llmjudge.Config{LLM: cfg.LLM, ModelName: cfg.JudgeModel})
	}
	return e, nil
}

// Evaluate parses, schema-validates and compares the two documents.
// The pipeline is linear with fail-fast semantics: parse, validate the
// schema on both documents, then apply each validation entry in order.
// Parse failures and unknown strategy names are errors; everything else
// resolves to a Verdict.
func (e *Evaluator) Evaluate(ctx context.Context, actual, expected any, opts Options) (*evaluation.Verdict, error) {
	actualDoc, err := parseDocument(actual)
	if err != nil {
		e.logger.Error("json eval failed on actual document", "error", err)
		return nil, fmt.Errorf("actual: %w", err)
	}
	expectedDoc, err := parseDocument(expected)
	if err != nil {
		e.logger.Error("json eval failed on expected document", "error", err)
		return nil, fmt.Errorf("expected: %w", err)
	}

	resolved, err := parseSchema(opts.Schema)
	if err != nil {
		e.logger.Error("json eval failed to resolve schema", "error", err)
		return nil, err
	}
	if resolved == nil {
		return evaluation.Fail("Schema not provided"), nil
	}

	if !validateDocument(resolved, actualDoc) || !validateDocument(resolved, expectedDoc) {
		return evaluation.Fail("Schema validation failed"), nil
	}

	for _, validation := range opts.Validations {
		strategy, err := ParseStrategy(validation.ValidatingFunction)
		if err != nil {
			e.logger.Error("validation function not supported",
				"function", validation.ValidatingFunction)
			return nil, err
		}

		actualValue := Extract(actualDoc, validation.JSONPath)
		expectedValue := Extract(expectedDoc, validation.JSONPath)

		result, err := e.apply(ctx, strategy, actualValue, expectedValue, validation)
		if err != nil {
			e.logger.Error("json eval validation errored",
				"function", validation.ValidatingFunction,
				"json_path", validation.JSONPath,
				"error", err)
			return nil, err
		}
		if !result.passed {
			details := result.details
			if details == nil {
				details = map[string]any{}
			}
			details["validating_function"] = strategy.String()
			return &evaluation.Verdict{
				Result:  false,
				Reason:  "Validation failed",
				Details: details,
			}, nil
		}
	}

	return evaluation.Pass("Json eval passed"), nil
}

// apply dispatches one validation entry to its strategy.
func (e *Evaluator) apply(ctx context.Context, strategy Strategy, actual, expected Value, v Validation) (outcome, error) {
	switch strategy {
	case StrategyEquals:
		return applyEquals(actual, expected, v.JSONPath), nil
	case StrategyCosineSimilarity:
		return e.applyCosine(ctx, actual, expected, v)
	case StrategyLLMSimilarity:
		return e.applyLLM(ctx, actual, expected, v)
	default:
		return outcome{}, fmt.Errorf("%w: %v", ErrUnknownStrategy, strategy)
	}
}

// Handler adapts the evaluator to the operation registry contract. The
// subject text is the actual document; the expected document, schema and
// validation plan arrive in the options map.
func (e *Evaluator) Handler() evaluation.Handler {
	return func(ctx context.Context, text string, opts map[string]any) (*evaluation.Verdict, error) {
		var o Options
		if err := decodeJSONEvalOptions(opts, &o); err != nil {
			return nil, err
		}
		return e.Evaluate(ctx, text, o.ExpectedJSON, o)
	}
}
