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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tanayvaswani/athina-evals/evaluation"
)

type jsonEvalFlags struct {
	actual   string
	expected string
	plan     string
}

var jsonEvalFlagValues jsonEvalFlags

// jsonEvalPlan is the YAML shape of a comparison plan file: the schema
// and the ordered validations, as the JsonEval operation expects them.
type jsonEvalPlan struct {
	Schema      map[string]any   `yaml:"schema"`
	Validations []map[string]any `yaml:"validations"`
}

var jsonEvalCmd = &cobra.Command{
	Use:   "jsoneval",
	Short: "Compare two JSON documents under a schema and a validation plan.",
	Long: `jsoneval validates the actual and expected documents against a
JSON schema, then compares values at the planned JSON paths. The plan
file is YAML:

  schema:
    type: object
    required: [name]
  validations:
    - validating_function: Equals
      json_path: name
    - validating_function: Cosine Similarity
      json_path: bio
      pass_threshold: 0.85`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := newRegistry(cmd.Context())
		if err != nil {
			return err
		}

		actual, err := os.ReadFile(jsonEvalFlagValues.actual)
		if err != nil {
			return err
		}
		expected, err := os.ReadFile(jsonEvalFlagValues.expected)
		if err != nil {
			return err
		}

		planData, err := os.ReadFile(jsonEvalFlagValues.plan)
		if err != nil {
			return err
		}
		var plan jsonEvalPlan
		if err := yaml.Unmarshal(planData, &plan); err != nil {
			return fmt.Errorf("invalid plan file: %w", err)
		}

		options := map[string]any{
			"expected_json": string(expected),
			"schema":        plan.Schema,
			"validations":   plan.Validations,
		}

		verdict, err := registry.Invoke(cmd.Context(), evaluation.OpJsonEval, string(actual), options)
		if err != nil {
			return err
		}
		return printJSON(verdict)
	},
}

func init() {
	rootCmd.AddCommand(jsonEvalCmd)

	jsonEvalCmd.Flags().StringVarP(&jsonEvalFlagValues.actual, "actual", "a", "", "File holding the actual JSON document")
	jsonEvalCmd.Flags().StringVarP(&jsonEvalFlagValues.expected, "expected", "e", "", "File holding the expected JSON document")
	jsonEvalCmd.Flags().StringVarP(&jsonEvalFlagValues.plan, "plan", "p", "", "YAML file with the schema and validations")

	jsonEvalCmd.MarkFlagRequired("actual")
	jsonEvalCmd.MarkFlagRequired("expected")
	jsonEvalCmd.MarkFlagRequired("plan")
}
