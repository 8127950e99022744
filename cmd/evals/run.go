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

type runFlags struct {
	suite string
	text  string
	file  string
}

var runFlagValues runFlags

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a suite of checks from a YAML file.",
	Long: `run evaluates every check in a suite file against the subject
text and prints the aggregated result. The suite file is YAML:

  id: greeting-checks
  name: greeting checks
  checks:
    - id: has-greeting
      operation: ContainsAny
      options:
        keywords: "hello,hi,hey"
    - id: single-line
      operation: OneLine`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := newRegistry(cmd.Context())
		if err != nil {
			return err
		}

		data, err := os.ReadFile(runFlagValues.suite)
		if err != nil {
			return err
		}
		var suite evaluation.Suite
		if err := yaml.Unmarshal(data, &suite); err != nil {
			return fmt.Errorf("invalid suite file: %w", err)
		}

		text, err := readText(runFlagValues.text, runFlagValues.file)
		if err != nil {
			return err
		}

		runner := evaluation.NewRunner(registry, nil)
		result, err := runner.RunSuite(cmd.Context(), "", &suite, text)
		if err != nil {
			return err
		}

		if err := printJSON(result); err != nil {
			return err
		}
		if !result.Passed {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlagValues.suite, "suite", "s", "", "YAML suite file")
	runCmd.Flags().StringVarP(&runFlagValues.text, "text", "t", "", "Subject text")
	runCmd.Flags().StringVarP(&runFlagValues.file, "file", "f", "", "File holding the subject text")

	runCmd.MarkFlagRequired("suite")
}
