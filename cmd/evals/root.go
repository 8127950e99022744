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

package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/tanayvaswani/athina-evals/evaluation"
	"github.com/tanayvaswani/athina-evals/evaluation/jsoneval"
	"github.com/tanayvaswani/athina-evals/model"
)

var rootCmd = &cobra.Command{
	Use:   "evals",
	Short: "Run text and JSON checks against LLM outputs.",
	Long: `evals grades LLM outputs with deterministic text checks and
structured JSON comparison. Single checks run from the command line;
suites of checks run from YAML files or over the REST API.`,
	SilenceUsage: true,
}

// defaultJudgeModel is used when the environment provides a Gemini key
// but no explicit model choice.
const defaultJudgeModel = "gemini-2.0-flash"

const defaultEmbedModel = "text-embedding-004"

// newRegistry builds a registry with every built-in operation. The
// structured comparison operation gets similarity capabilities only when
// a Gemini API key is present in the environment; without one, Equals
// still works and the similarity strategies report their missing
// capability at evaluation time.
func newRegistry(ctx context.Context) (*evaluation.Registry, error) {
	registry := evaluation.NewRegistry()

	cfg := jsoneval.Config{OpenAIAPIKey: os.Getenv("OPENAI_API_KEY")}
	if os.Getenv("GOOGLE_API_KEY") != "" || os.Getenv("GEMINI_API_KEY") != "" {
		llm, err := model.NewGeminiModel(ctx, defaultJudgeModel, &genai.ClientConfig{})
		if err != nil {
			return nil, err
		}
		embedder, err := model.NewGeminiEmbedder(ctx, defaultEmbedModel, &genai.ClientConfig{})
		if err != nil {
			return nil, err
		}
		cfg.LLM = llm
		cfg.Embedder = embedder
		cfg.JudgeModel = defaultJudgeModel
	}

	eval, err := jsoneval.New(cfg)
	if err != nil {
		return nil, err
	}

	if err := evaluation.RegisterDefaultOperations(registry, evaluation.Config{
		JSONEval: eval.Handler(),
	}); err != nil {
		return nil, err
	}
	return registry, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// readText resolves the subject text from a --text flag, a --file flag,
// or stdin, in that order.
func readText(text, file string) (string, error) {
	if text != "" {
		return text, nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
