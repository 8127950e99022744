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

// Package evaluation provides a rule-evaluation engine for grading text
// and structured outputs, typically produced by a language model.
//
// # Core Concepts
//
// Operation: a named, stateless check over text or JSON
//
// Verdict: pass/fail outcome plus a human-readable reason
//
// Registry: the name-to-handler table operations are resolved through
//
// Suite: an ordered collection of checks evaluated against one output
//
// # Operations
//
// The catalog is closed and enumerated at compile time: text matchers
// (Regex, Contains family, Equals, StartsWith, EndsWith, length bounds,
// OneLine, email checks), JSON detection (IsJson requires the whole text
// to parse, ContainsJson tolerates fragments embedded in prose), link
// checks backed by a single bounded HEAD probe, ApiCall for delegating a
// verdict to an external endpoint, and JsonEval for schema-validated
// per-path comparison of two JSON documents.
//
// # Error Model
//
// Expected, recoverable outcomes of evaluating content (a missing
// keyword, a schema mismatch, a similarity threshold miss) are always
// Verdicts. Raised errors are reserved for caller and configuration
// bugs: input that is not valid JSON where JSON is required, unknown
// operation or strategy names, missing credentials.
//
// # Example Usage
//
//	eval, err := jsoneval.New(jsoneval.Config{LLM: llm, Embedder: embedder})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := evaluation.RegisterDefaultOperations(evaluation.DefaultRegistry, evaluation.Config{
//	    JSONEval: eval.Handler(),
//	}); err != nil {
//	    log.Fatal(err)
//	}
//
//	verdict, err := evaluation.Invoke(ctx, evaluation.OpContainsAll, output, map[string]any{
//	    "keywords": "price, shipping",
//	})
//
// # Suites and Storage
//
// A Runner evaluates a Suite of checks against one output concurrently
// and can persist SuiteResults through a Storage backend (in-memory,
// JSON files, or SQLite).
package evaluation
