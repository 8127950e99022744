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

package model

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

var _ LLM = (*GeminiModel)(nil)

// GeminiModel is the genai-backed chat-completion capability.
type GeminiModel struct {
	client *genai.Client
	name   string
}

// NewGeminiModel creates a Gemini model around a new genai client.
func NewGeminiModel(ctx context.Context, model string, cfg *genai.ClientConfig) (*GeminiModel, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &GeminiModel{name: model, client: client}, nil
}

func (m *GeminiModel) Name() string {
	return m.name
}

func (m *GeminiModel) GenerateContent(ctx context.Context, req *LLMRequest, stream bool) LLMResponseStream {
	if m.client == nil {
		return func(yield func(*LLMResponse, error) bool) {
			yield(nil, fmt.Errorf("model uninitialized"))
		}
	}
	name := req.Model
	if name == "" {
		name = m.name
	}
	if stream {
		return func(yield func(*LLMResponse, error) bool) {
			for resp, err := range m.client.Models.GenerateContentStream(ctx, name, req.Contents, req.Config) {
				if err != nil {
					yield(nil, err)
					return
				}
				if len(resp.Candidates) == 0 {
					yield(nil, fmt.Errorf("empty response"))
					return
				}
				candidate := resp.Candidates[0]
				complete := candidate.FinishReason != ""
				if !yield(&LLMResponse{
					Content:      candidate.Content,
					Partial:      !complete,
					TurnComplete: complete,
				}, nil) {
					return
				}
			}
		}
	}
	return func(yield func(*LLMResponse, error) bool) {
		resp, err := m.client.Models.GenerateContent(ctx, name, req.Contents, req.Config)
		if err != nil {
			yield(nil, err)
			return
		}
		if len(resp.Candidates) == 0 {
			yield(nil, fmt.Errorf("empty response"))
			return
		}
		yield(&LLMResponse{Content: resp.Candidates[0].Content, TurnComplete: true}, nil)
	}
}

var _ Embedder = (*GeminiEmbedder)(nil)

// GeminiEmbedder is the genai-backed embedding capability.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates an embedder around a new genai client.
func NewGeminiEmbedder(ctx context.Context, model string, cfg *genai.ClientConfig) (*GeminiEmbedder, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &GeminiEmbedder{model: model, client: client}, nil
}

func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if e.client == nil {
		return nil, fmt.Errorf("embedder uninitialized")
	}
	contents := []*genai.Content{
		{Parts: []*genai.Part{genai.NewPartFromText(text)}},
	}
	resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	return resp.Embeddings[0].Values, nil
}
