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

package evaluation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Check is one named operation applied to an output.
type Check struct {
	ID        string         `json:"id" yaml:"id"`
	Operation Operation      `json:"operation" yaml:"operation"`
	Options   map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// Suite is an ordered collection of checks evaluated against a single
// output.
type Suite struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name,omitempty" yaml:"name,omitempty"`
	Checks    []Check   `json:"checks" yaml:"checks"`
	CreatedAt time.Time `json:"creation_timestamp,omitempty" yaml:"-"`
}

// CheckResult is the verdict of a single check within a suite run.
type CheckResult struct {
	CheckID          string    `json:"check_id"`
	Operation        Operation `json:"operation"`
	Verdict          Verdict   `json:"verdict"`
	ProcessingTimeMs int64     `json:"processing_time_ms,omitempty"`
}

// SuiteResult aggregates the outcome of one suite run.
type SuiteResult struct {
	ResultID string `json:"result_id"`
	SuiteID  string `json:"suite_id"`
	AppName  string `json:"app_name,omitempty"`

	// Passed is true only when every check in the suite passed.
	Passed bool `json:"passed"`

	CheckResults []CheckResult `json:"check_results"`

	CreatedAt   time.Time `json:"creation_timestamp"`
	CompletedAt time.Time `json:"completed_timestamp"`
}

// Runner evaluates suites of checks against an output. Checks are
// independent and stateless, so they run concurrently; a check whose
// handler reports a fatal error aborts the whole run, since it indicates
// a caller bug rather than a content disagreement.
type Runner struct {
	registry *Registry
	storage  Storage
}

// NewRunner creates a suite runner. storage may be nil, in which case
// results are returned but not persisted.
func NewRunner(registry *Registry, storage Storage) *Runner {
	if registry == nil {
		registry = DefaultRegistry
	}
	return &Runner{registry: registry, storage: storage}
}

// RunSuite evaluates every check in the suite against the given output.
func (r *Runner) RunSuite(ctx context.Context, appName string, suite *Suite, output string) (*SuiteResult, error) {
	if suite == nil || len(suite.Checks) == 0 {
		return nil, ErrInvalidInput
	}

	started := time.Now()
	results := make([]CheckResult, len(suite.Checks))

	g, gctx := errgroup.WithContext(ctx)
	for i, check := range suite.Checks {
		g.Go(func() error {
			checkStart := time.Now()
			verdict, err := r.registry.Invoke(gctx, check.Operation, output, check.Options)
			if err != nil {
				return err
			}
			results[i] = CheckResult{
				CheckID:          check.ID,
				Operation:        check.Operation,
				Verdict:          *verdict,
				ProcessingTimeMs: time.Since(checkStart).Milliseconds(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	passed := true
	for _, res := range results {
		if !res.Verdict.Result {
			passed = false
			break
		}
	}

	result := &SuiteResult{
		ResultID:     uuid.NewString(),
		SuiteID:      suite.ID,
		AppName:      appName,
		Passed:       passed,
		CheckResults: results,
		CreatedAt:    started,
		CompletedAt:  time.Now(),
	}

	if r.storage != nil {
		if err := r.storage.SaveSuiteResult(ctx, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}
