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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tanayvaswani/athina-evals/evaluation"
)

type checkFlags struct {
	text    string
	file    string
	options string
}

var checkFlagValues checkFlags

var checkCmd = &cobra.Command{
	Use:   "check <operation>",
	Short: "Run a single operation against a text.",
	Long: `check runs one named operation against the subject text and
prints the verdict as JSON. The text comes from --text, --file, or
stdin. Operation options are passed as a JSON object via --options:

  evals check Contains --text "hello world" --options '{"keyword": "hello"}'
  evals check Regex --file out.txt --options '{"pattern": "^\\d+$"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := newRegistry(cmd.Context())
		if err != nil {
			return err
		}

		text, err := readText(checkFlagValues.text, checkFlagValues.file)
		if err != nil {
			return err
		}

		var options map[string]any
		if checkFlagValues.options != "" {
			if err := json.Unmarshal([]byte(checkFlagValues.options), &options); err != nil {
				return fmt.Errorf("invalid --options: %w", err)
			}
		}

		verdict, err := registry.Invoke(cmd.Context(), evaluation.Operation(args[0]), text, options)
		if err != nil {
			return err
		}
		return printJSON(verdict)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlagValues.text, "text", "t", "", "Subject text")
	checkCmd.Flags().StringVarP(&checkFlagValues.file, "file", "f", "", "File holding the subject text")
	checkCmd.Flags().StringVarP(&checkFlagValues.options, "options", "o", "", "Operation options as a JSON object")
}
