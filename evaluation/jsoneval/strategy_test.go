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
	"math"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name string
		want Strategy
	}{
		{"Equals", StrategyEquals},
		{"Cosine Similarity", StrategyCosineSimilarity},
		{"CosineSimilarity", StrategyCosineSimilarity},
		{"LLM Similarity", StrategyLLMSimilarity},
		{"LlmSimilarity", StrategyLLMSimilarity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseStrategy(tc.name)
			if err != nil {
				t.Fatalf("ParseStrategy(%q) failed: %v", tc.name, err)
			}
			if got != tc.want {
				t.Errorf("ParseStrategy(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}

	if _, err := ParseStrategy("Fuzzy"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("err = %v, want ErrUnknownStrategy", err)
	}
}

func TestApplyEquals(t *testing.T) {
	tests := []struct {
		name     string
		actual   Value
		expected Value
		want     bool
	}{
		{"equal scalars", Value{Data: "a", Found: true}, Value{Data: "a", Found: true}, true},
		{"differing scalars", Value{Data: "a", Found: true}, Value{Data: "b", Found: true}, false},
		{
			"equal objects",
			Value{Data: map[string]any{"k": float64(1)}, Found: true},
			Value{Data: map[string]any{"k": float64(1)}, Found: true},
			true,
		},
		{"both absent", Value{}, Value{}, true},
		{"absent on one side", Value{Data: "a", Found: true}, Value{}, false},
		{"null vs absent", Value{Data: nil, Found: true}, Value{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := applyEquals(tc.actual, tc.expected, "field")
			if got.passed != tc.want {
				t.Errorf("passed = %v, want %v (details: %v)", got.passed, tc.want, got.details)
			}
			if !got.passed && got.details["json_path"] != "field" {
				t.Errorf("details missing json_path: %v", got.details)
			}
		})
	}
}

// stubEmbedder returns a fixed vector per text.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[text], nil
}

func TestApplyCosine(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"alpha": {1, 0},
		"close": {0.9, 0.1},
		"far":   {0, 1},
	}}
	e, err := New(Config{Embedder: embedder})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	verdictFor := func(expected string, threshold *float64) outcome {
		t.Helper()
		out, err := e.applyCosine(t.Context(),
			Value{Data: "alpha", Found: true},
			Value{Data: expected, Found: true},
			Validation{JSONPath: "f", PassThreshold: threshold})
		if err != nil {
			t.Fatalf("applyCosine failed: %v", err)
		}
		return out
	}

	if out := verdictFor("close", nil); !out.passed {
		t.Errorf("similar vectors failed the default threshold: %v", out.details)
	}
	if out := verdictFor("far", nil); out.passed {
		t.Error("orthogonal vectors passed the default threshold")
	}

	// The comparison is inclusive at the threshold.
	exact := cosineSimilarity(embedder.vectors["alpha"], embedder.vectors["close"])
	if out := verdictFor("close", &exact); !out.passed {
		t.Errorf("score exactly at the threshold failed: %v", out.details)
	}
}

func TestApplyCosineNoEmbedder(t *testing.T) {
	e, err := New(Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, err = e.applyCosine(t.Context(), Value{}, Value{}, Validation{})
	if !errors.Is(err, ErrNoEmbedder) {
		t.Errorf("err = %v, want ErrNoEmbedder", err)
	}
}

func TestApplyCosineEmbedFailure(t *testing.T) {
	e, err := New(Config{Embedder: &stubEmbedder{err: errors.New("quota")}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	out, err := e.applyCosine(t.Context(),
		Value{Data: "a", Found: true}, Value{Data: "b", Found: true}, Validation{JSONPath: "f"})
	if err != nil {
		t.Fatalf("embedding failure must fail the validation, not error: %v", err)
	}
	if out.passed {
		t.Error("validation passed despite an embedding failure")
	}
	if _, ok := out.details["embed_error"]; !ok {
		t.Errorf("details missing embed_error: %v", out.details)
	}
}

func TestEmbedCache(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{"x": {1}}}
	e, err := New(Config{Embedder: embedder})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for range 3 {
		if _, err := e.embed(t.Context(), "x"); err != nil {
			t.Fatalf("embed failed: %v", err)
		}
	}
	if embedder.calls != 1 {
		t.Errorf("embedder called %d times, want 1", embedder.calls)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cosineSimilarity(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("cosineSimilarity = %v, want %v", got, tc.want)
			}
		})
	}
}
