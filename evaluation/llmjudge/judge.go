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

// Package llmjudge implements the LLM-as-Judge half of the structured
// comparison engine: a judge model receives two strings and answers with
// a structured Pass/Fail judgment.
package llmjudge

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/tanayvaswani/athina-evals/model"
)

// DefaultModel is the judge model used when a comparison request does
// not name one.
const DefaultModel = "gpt-3.5-turbo"

// Judge compares two strings for semantic similarity by asking an LLM
// for a structured judgment. Requests run at temperature 0: judging is
// meant to be as deterministic as the upstream model allows.
type Judge struct {
	llm       model.LLM
	modelName string
	parser    *ResponseParser
}

// Config contains configuration for the LLM judge.
type Config struct {
	// LLM is the chat-completion capability to judge with. Required.
	LLM model.LLM

	// ModelName is the default judge model. Defaults to DefaultModel.
	ModelName string
}

// NewJudge creates a new LLM-as-Judge instance.
func NewJudge(cfg Config) *Judge {
	if cfg.ModelName == "" {
		cfg.ModelName = DefaultModel
	}
	return &Judge{
		llm:       cfg.LLM,
		modelName: cfg.ModelName,
		parser:    NewResponseParser(),
	}
}

// Compare asks the judge model whether two strings are similar.
// modelName overrides the configured default when non-empty. The raw
// model output is parsed into a Judgment; a malformed response is an
// error the caller must treat as a failed validation, never a pass.
func (j *Judge) Compare(ctx context.Context, actual, expected, modelName string) (*Judgment, error) {
	if j.llm == nil {
		return nil, fmt.Errorf("llmjudge: no LLM configured")
	}
	if modelName == "" {
		modelName = j.modelName
	}

	req := &model.LLMRequest{
		Model: modelName,
		Contents: []*genai.Content{
			{
				Role: "user",
				Parts: []*genai.Part{
					genai.NewPartFromText(BuildComparisonPrompt(actual, expected)),
				},
			},
		},
		Config: &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](0),
			ResponseMIMEType:  "application/json",
			SystemInstruction: genai.NewContentFromText(judgeSystemInstruction, genai.RoleUser),
		},
	}

	var response string
	for resp, err := range j.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			return nil, fmt.Errorf("judge generation failed: %w", err)
		}
		if text := resp.Text(); text != "" {
			response = text
		}
	}
	if response == "" {
		return nil, fmt.Errorf("judge returned empty response")
	}

	return j.parser.ParseJudgment(response)
}
