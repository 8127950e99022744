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

// Package model defines the LLM and embedding capabilities the
// evaluation engine consumes, plus a Gemini-backed default
// implementation. The engine treats both as black boxes.
package model

import (
	"context"
	"iter"

	"google.golang.org/genai"
)

// LLM is a chat-completion capability.
type LLM interface {
	Name() string
	GenerateContent(ctx context.Context, req *LLMRequest, stream bool) LLMResponseStream
}

// LLMRequest is the input to an LLM's generate functions.
type LLMRequest struct {
	// Model overrides the implementation's default model when non-empty.
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

// LLMResponseStream is the output of an LLM's generate functions.
type LLMResponseStream iter.Seq2[*LLMResponse, error]

// LLMResponse provides one candidate response from the model.
type LLMResponse struct {
	Content *genai.Content

	// Partial indicates the content is part of an unfinished stream.
	Partial bool
	// TurnComplete indicates the response is complete.
	TurnComplete bool
}

// Text returns the concatenated text parts of the response content.
func (r *LLMResponse) Text() string {
	if r == nil || r.Content == nil {
		return ""
	}
	var out string
	for _, part := range r.Content.Parts {
		out += part.Text
	}
	return out
}

// Embedder produces a vector embedding for a text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
