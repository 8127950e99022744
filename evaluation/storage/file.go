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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tanayvaswani/athina-evals/evaluation"
)

// FileStorage provides file-based storage for check suites and results.
// Files are stored as JSON in the specified directory structure:
//
//	<basePath>/
//	  suites/
//	    <appName>/
//	      <suiteID>.json
//	  results/
//	    <resultID>.json
type FileStorage struct {
	mu       sync.RWMutex
	basePath string
}

// NewFileStorage creates a new file-based storage instance.
func NewFileStorage(basePath string) (*FileStorage, error) {
	if err := os.MkdirAll(filepath.Join(basePath, "suites"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create suites directory: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(basePath, "results"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}

	return &FileStorage{
		basePath: basePath,
	}, nil
}

// SaveSuite stores a check suite.
func (f *FileStorage) SaveSuite(ctx context.Context, appName string, suite *evaluation.Suite) error {
	if suite == nil || suite.ID == "" {
		return evaluation.ErrInvalidInput
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	appDir := filepath.Join(f.basePath, "suites", appName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create app directory: %w", err)
	}

	filePath := filepath.Join(appDir, fmt.Sprintf("%s.json", suite.ID))
	data, err := json.MarshalIndent(suite, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal suite: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write suite file: %w", err)
	}

	return nil
}

// GetSuite retrieves a check suite by ID.
func (f *FileStorage) GetSuite(ctx context.Context, appName, suiteID string) (*evaluation.Suite, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	filePath := filepath.Join(f.basePath, "suites", appName, fmt.Sprintf("%s.json", suiteID))

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, evaluation.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	var suite evaluation.Suite
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suite: %w", err)
	}

	return &suite, nil
}

// ListSuites returns all check suites for an application.
func (f *FileStorage) ListSuites(ctx context.Context, appName string) ([]evaluation.Suite, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	appDir := filepath.Join(f.basePath, "suites", appName)

	if _, err := os.Stat(appDir); os.IsNotExist(err) {
		return []evaluation.Suite{}, nil
	}

	entries, err := os.ReadDir(appDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read app directory: %w", err)
	}

	var suites []evaluation.Suite
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(appDir, entry.Name()))
		if err != nil {
			continue
		}

		var suite evaluation.Suite
		if err := json.Unmarshal(data, &suite); err != nil {
			continue
		}

		suites = append(suites, suite)
	}

	return suites, nil
}

// DeleteSuite removes a check suite.
func (f *FileStorage) DeleteSuite(ctx context.Context, appName, suiteID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	filePath := filepath.Join(f.basePath, "suites", appName, fmt.Sprintf("%s.json", suiteID))

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return evaluation.ErrNotFound
		}
		return fmt.Errorf("failed to delete suite file: %w", err)
	}

	return nil
}

// SaveSuiteResult stores the outcome of a suite run.
func (f *FileStorage) SaveSuiteResult(ctx context.Context, result *evaluation.SuiteResult) error {
	if result == nil || result.ResultID == "" {
		return evaluation.ErrInvalidInput
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	filePath := filepath.Join(f.basePath, "results", fmt.Sprintf("%s.json", result.ResultID))

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}

	return nil
}

// GetSuiteResult retrieves a suite result by ID.
func (f *FileStorage) GetSuiteResult(ctx context.Context, resultID string) (*evaluation.SuiteResult, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	filePath := filepath.Join(f.basePath, "results", fmt.Sprintf("%s.json", resultID))

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, evaluation.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read result file: %w", err)
	}

	var result evaluation.SuiteResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// ListSuiteResults returns all suite results for an application.
func (f *FileStorage) ListSuiteResults(ctx context.Context, appName string) ([]evaluation.SuiteResult, error) {
	return f.listResults(func(r *evaluation.SuiteResult) bool {
		return r.AppName == appName
	})
}

// ListSuiteResultsBySuiteID returns all results for a specific suite.
func (f *FileStorage) ListSuiteResultsBySuiteID(ctx context.Context, suiteID string) ([]evaluation.SuiteResult, error) {
	return f.listResults(func(r *evaluation.SuiteResult) bool {
		return r.SuiteID == suiteID
	})
}

func (f *FileStorage) listResults(keep func(*evaluation.SuiteResult) bool) ([]evaluation.SuiteResult, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	resultsDir := filepath.Join(f.basePath, "results")

	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []evaluation.SuiteResult{}, nil
		}
		return nil, fmt.Errorf("failed to read results directory: %w", err)
	}

	results := []evaluation.SuiteResult{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(resultsDir, entry.Name()))
		if err != nil {
			continue
		}

		var result evaluation.SuiteResult
		if err := json.Unmarshal(data, &result); err != nil {
			continue
		}

		if keep(&result) {
			results = append(results, result)
		}
	}

	return results, nil
}
