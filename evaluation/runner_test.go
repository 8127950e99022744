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
	"errors"
	"testing"
)

func newRunnerRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	if err := RegisterDefaultOperations(r, Config{}); err != nil {
		t.Fatalf("RegisterDefaultOperations failed: %v", err)
	}
	return r
}

func TestRunSuiteAllPass(t *testing.T) {
	suite := &Suite{
		ID: "suite-1",
		Checks: []Check{
			{ID: "c1", Operation: OpContains, Options: map[string]any{"keyword": "hello"}},
			{ID: "c2", Operation: OpOneLine},
		},
	}

	result, err := NewRunner(newRunnerRegistry(t), nil).RunSuite(t.Context(), "demo", suite, "hello world")
	if err != nil {
		t.Fatalf("RunSuite failed: %v", err)
	}
	if !result.Passed {
		t.Errorf("Passed = false, check results: %+v", result.CheckResults)
	}
	if result.ResultID == "" {
		t.Error("ResultID not assigned")
	}
	if result.SuiteID != "suite-1" || result.AppName != "demo" {
		t.Errorf("result identity = %q/%q", result.SuiteID, result.AppName)
	}
	if len(result.CheckResults) != 2 {
		t.Fatalf("got %d check results, want 2", len(result.CheckResults))
	}
	// Results keep the suite's check order despite concurrent execution.
	if result.CheckResults[0].CheckID != "c1" || result.CheckResults[1].CheckID != "c2" {
		t.Errorf("check order = %q, %q", result.CheckResults[0].CheckID, result.CheckResults[1].CheckID)
	}
}

func TestRunSuiteOneFailingCheck(t *testing.T) {
	suite := &Suite{
		ID: "suite-1",
		Checks: []Check{
			{ID: "c1", Operation: OpContains, Options: map[string]any{"keyword": "hello"}},
			{ID: "c2", Operation: OpContains, Options: map[string]any{"keyword": "absent"}},
		},
	}

	result, err := NewRunner(newRunnerRegistry(t), nil).RunSuite(t.Context(), "demo", suite, "hello world")
	if err != nil {
		t.Fatalf("RunSuite failed: %v", err)
	}
	if result.Passed {
		t.Error("Passed = true with a failing check")
	}
	if !result.CheckResults[0].Verdict.Result || result.CheckResults[1].Verdict.Result {
		t.Errorf("per-check verdicts = %v, %v", result.CheckResults[0].Verdict.Result, result.CheckResults[1].Verdict.Result)
	}
}

func TestRunSuiteFatalErrorAborts(t *testing.T) {
	fatal := errors.New("handler exploded")
	r := NewRegistry()
	if err := r.Register("Boom", func(context.Context, string, map[string]any) (*Verdict, error) {
		return nil, fatal
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	suite := &Suite{ID: "s", Checks: []Check{{ID: "c1", Operation: "Boom"}}}
	if _, err := NewRunner(r, nil).RunSuite(t.Context(), "", suite, "text"); !errors.Is(err, fatal) {
		t.Errorf("err = %v, want the handler's error", err)
	}
}

func TestRunSuiteInvalidInput(t *testing.T) {
	runner := NewRunner(newRunnerRegistry(t), nil)

	if _, err := runner.RunSuite(t.Context(), "", nil, "text"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil suite: err = %v, want ErrInvalidInput", err)
	}
	if _, err := runner.RunSuite(t.Context(), "", &Suite{ID: "empty"}, "text"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty suite: err = %v, want ErrInvalidInput", err)
	}
}

type recordingStorage struct {
	Storage
	saved *SuiteResult
}

func (s *recordingStorage) SaveSuiteResult(_ context.Context, result *SuiteResult) error {
	s.saved = result
	return nil
}

func TestRunSuitePersistsResult(t *testing.T) {
	store := &recordingStorage{}
	suite := &Suite{
		ID:     "suite-1",
		Checks: []Check{{ID: "c1", Operation: OpOneLine}},
	}

	result, err := NewRunner(newRunnerRegistry(t), store).RunSuite(t.Context(), "demo", suite, "one line")
	if err != nil {
		t.Fatalf("RunSuite failed: %v", err)
	}
	if store.saved != result {
		t.Error("result was not handed to storage")
	}
}
