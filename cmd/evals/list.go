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

	"github.com/spf13/cobra"

	"github.com/tanayvaswani/athina-evals/evaluation"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in operations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, op := range evaluation.AllOperations() {
			marker := " "
			if op.RequiresNetwork() {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, op)
		}
		fmt.Println("\noperations marked * issue outbound network requests")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
