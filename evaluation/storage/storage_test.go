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

package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tanayvaswani/athina-evals/evaluation"
)

func testSuite(id string) *evaluation.Suite {
	return &evaluation.Suite{
		ID:   id,
		Name: "smoke checks",
		Checks: []evaluation.Check{
			{ID: "c1", Operation: evaluation.OpContains, Options: map[string]any{"keyword": "hello"}},
			{ID: "c2", Operation: evaluation.OpIsJson},
		},
	}
}

func testResult(resultID, suiteID, appName string) *evaluation.SuiteResult {
	return &evaluation.SuiteResult{
		ResultID: resultID,
		SuiteID:  suiteID,
		AppName:  appName,
		Passed:   true,
		CheckResults: []evaluation.CheckResult{
			{CheckID: "c1", Operation: evaluation.OpContains, Verdict: *evaluation.Pass("found")},
		},
	}
}

// backends under test share one contract, so the tests run against each.
func backends(t *testing.T) map[string]evaluation.Storage {
	t.Helper()

	fileStore, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStorage failed: %v", err)
	}

	return map[string]evaluation.Storage{
		"memory": NewMemoryStorage(),
		"file":   fileStore,
	}
}

func TestStorageSuiteRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			suite := testSuite("suite-1")
			if err := store.SaveSuite(ctx, "app", suite); err != nil {
				t.Fatalf("SaveSuite failed: %v", err)
			}

			got, err := store.GetSuite(ctx, "app", "suite-1")
			if err != nil {
				t.Fatalf("GetSuite failed: %v", err)
			}
			if diff := cmp.Diff(suite, got); diff != "" {
				t.Errorf("suite mismatch (-want +got):\n%s", diff)
			}

			suites, err := store.ListSuites(ctx, "app")
			if err != nil {
				t.Fatalf("ListSuites failed: %v", err)
			}
			if len(suites) != 1 {
				t.Errorf("ListSuites returned %d suites, want 1", len(suites))
			}

			if err := store.DeleteSuite(ctx, "app", "suite-1"); err != nil {
				t.Fatalf("DeleteSuite failed: %v", err)
			}
			if _, err := store.GetSuite(ctx, "app", "suite-1"); !errors.Is(err, evaluation.ErrNotFound) {
				t.Errorf("GetSuite after delete: got %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStorageSuiteNotFound(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.GetSuite(ctx, "app", "missing"); !errors.Is(err, evaluation.ErrNotFound) {
				t.Errorf("GetSuite: got %v, want ErrNotFound", err)
			}
			if err := store.DeleteSuite(ctx, "app", "missing"); !errors.Is(err, evaluation.ErrNotFound) {
				t.Errorf("DeleteSuite: got %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStorageRejectsInvalidSuite(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.SaveSuite(ctx, "app", nil); !errors.Is(err, evaluation.ErrInvalidInput) {
				t.Errorf("SaveSuite(nil): got %v, want ErrInvalidInput", err)
			}
			if err := store.SaveSuite(ctx, "app", &evaluation.Suite{}); !errors.Is(err, evaluation.ErrInvalidInput) {
				t.Errorf("SaveSuite(empty ID): got %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestStorageResultRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.SaveSuite(ctx, "app", testSuite("suite-1")); err != nil {
				t.Fatalf("SaveSuite failed: %v", err)
			}

			want := testResult("result-1", "suite-1", "app")
			if err := store.SaveSuiteResult(ctx, want); err != nil {
				t.Fatalf("SaveSuiteResult failed: %v", err)
			}

			got, err := store.GetSuiteResult(ctx, "result-1")
			if err != nil {
				t.Fatalf("GetSuiteResult failed: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}

			byApp, err := store.ListSuiteResults(ctx, "app")
			if err != nil {
				t.Fatalf("ListSuiteResults failed: %v", err)
			}
			if len(byApp) != 1 {
				t.Errorf("ListSuiteResults returned %d results, want 1", len(byApp))
			}

			bySuite, err := store.ListSuiteResultsBySuiteID(ctx, "suite-1")
			if err != nil {
				t.Fatalf("ListSuiteResultsBySuiteID failed: %v", err)
			}
			if len(bySuite) != 1 {
				t.Errorf("ListSuiteResultsBySuiteID returned %d results, want 1", len(bySuite))
			}
		})
	}
}

func TestStorageResultIsolation(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.SaveSuiteResult(ctx, testResult("r1", "s1", "app-a")); err != nil {
				t.Fatalf("SaveSuiteResult failed: %v", err)
			}
			if err := store.SaveSuiteResult(ctx, testResult("r2", "s2", "app-b")); err != nil {
				t.Fatalf("SaveSuiteResult failed: %v", err)
			}

			results, err := store.ListSuiteResults(ctx, "app-a")
			if err != nil {
				t.Fatalf("ListSuiteResults failed: %v", err)
			}
			if len(results) != 1 || results[0].ResultID != "r1" {
				t.Errorf("ListSuiteResults(app-a) = %+v, want only r1", results)
			}

			results, err = store.ListSuiteResultsBySuiteID(ctx, "s2")
			if err != nil {
				t.Fatalf("ListSuiteResultsBySuiteID failed: %v", err)
			}
			if len(results) != 1 || results[0].ResultID != "r2" {
				t.Errorf("ListSuiteResultsBySuiteID(s2) = %+v, want only r2", results)
			}
		})
	}
}

func TestMemoryStorageCopiesOnSave(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	suite := testSuite("suite-1")
	if err := store.SaveSuite(ctx, "app", suite); err != nil {
		t.Fatalf("SaveSuite failed: %v", err)
	}

	// Mutating the caller's copy must not leak into storage.
	suite.Name = "mutated"
	suite.Checks[0].ID = "mutated"

	got, err := store.GetSuite(ctx, "app", "suite-1")
	if err != nil {
		t.Fatalf("GetSuite failed: %v", err)
	}
	if got.Name != "smoke checks" || got.Checks[0].ID != "c1" {
		t.Errorf("stored suite was mutated through the caller's pointer: %+v", got)
	}
}
