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

// Package steps provides pipeline steps that fetch external data before
// an evaluation runs, such as calling an HTTP API or a web search
// backend. Steps never fail with a Go error; transport and remote
// problems are reported in the Result so a pipeline can record them and
// move on.
package steps

import (
	"context"
	"time"
)

// Step statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the outcome of executing a step. Data holds the decoded JSON
// response when the remote replied with JSON, the raw text otherwise, or
// a human-readable error description when Status is StatusError.
type Result struct {
	Status    string `json:"status"`
	Data      any    `json:"data"`
	ElapsedMs int64  `json:"elapsed_ms,omitempty"`
}

// Step is a unit of work in an evaluation pipeline.
type Step interface {
	Execute(ctx context.Context, input map[string]any) *Result
}

func successResult(data any, start time.Time) *Result {
	return &Result{
		Status:    StatusSuccess,
		Data:      data,
		ElapsedMs: time.Since(start).Milliseconds(),
	}
}

func errorResult(msg string, start time.Time) *Result {
	return &Result{
		Status:    StatusError,
		Data:      msg,
		ElapsedMs: time.Since(start).Milliseconds(),
	}
}
