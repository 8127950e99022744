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
	"sync"

	"github.com/tanayvaswani/athina-evals/evaluation"
)

// MemoryStorage provides in-memory storage for check suites and results.
// This implementation is suitable for testing and development.
type MemoryStorage struct {
	mu sync.RWMutex

	// suites maps appName -> suiteID -> Suite
	suites map[string]map[string]*evaluation.Suite

	// results maps resultID -> SuiteResult
	results map[string]*evaluation.SuiteResult

	// resultsByApp maps appName -> []resultID
	resultsByApp map[string][]string

	// resultsBySuite maps suiteID -> []resultID
	resultsBySuite map[string][]string
}

// NewMemoryStorage creates a new in-memory storage instance.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		suites:         make(map[string]map[string]*evaluation.Suite),
		results:        make(map[string]*evaluation.SuiteResult),
		resultsByApp:   make(map[string][]string),
		resultsBySuite: make(map[string][]string),
	}
}

// SaveSuite stores a check suite.
func (m *MemoryStorage) SaveSuite(ctx context.Context, appName string, suite *evaluation.Suite) error {
	if suite == nil {
		return evaluation.ErrInvalidInput
	}

	if suite.ID == "" {
		return evaluation.ErrInvalidInput
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.suites[appName]; !exists {
		m.suites[appName] = make(map[string]*evaluation.Suite)
	}

	// Deep copy to prevent external modifications
	copied := copySuite(suite)
	m.suites[appName][suite.ID] = copied

	return nil
}

// GetSuite retrieves a check suite by ID.
func (m *MemoryStorage) GetSuite(ctx context.Context, appName, suiteID string) (*evaluation.Suite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	appSuites, exists := m.suites[appName]
	if !exists {
		return nil, evaluation.ErrNotFound
	}

	suite, exists := appSuites[suiteID]
	if !exists {
		return nil, evaluation.ErrNotFound
	}

	return copySuite(suite), nil
}

// ListSuites returns all check suites for an application.
func (m *MemoryStorage) ListSuites(ctx context.Context, appName string) ([]evaluation.Suite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	appSuites, exists := m.suites[appName]
	if !exists {
		return []evaluation.Suite{}, nil
	}

	suites := make([]evaluation.Suite, 0, len(appSuites))
	for _, suite := range appSuites {
		suites = append(suites, *copySuite(suite))
	}

	return suites, nil
}

// DeleteSuite removes a check suite.
func (m *MemoryStorage) DeleteSuite(ctx context.Context, appName, suiteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	appSuites, exists := m.suites[appName]
	if !exists {
		return evaluation.ErrNotFound
	}

	if _, exists := appSuites[suiteID]; !exists {
		return evaluation.ErrNotFound
	}

	delete(appSuites, suiteID)

	return nil
}

// SaveSuiteResult stores the outcome of a suite run.
func (m *MemoryStorage) SaveSuiteResult(ctx context.Context, result *evaluation.SuiteResult) error {
	if result == nil {
		return evaluation.ErrInvalidInput
	}

	if result.ResultID == "" {
		return evaluation.ErrInvalidInput
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := copySuiteResult(result)
	m.results[result.ResultID] = copied

	if result.SuiteID != "" {
		m.resultsBySuite[result.SuiteID] = append(
			m.resultsBySuite[result.SuiteID],
			result.ResultID,
		)
	}

	if result.AppName != "" {
		m.resultsByApp[result.AppName] = append(
			m.resultsByApp[result.AppName],
			result.ResultID,
		)
	}

	return nil
}

// GetSuiteResult retrieves a suite result by ID.
func (m *MemoryStorage) GetSuiteResult(ctx context.Context, resultID string) (*evaluation.SuiteResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result, exists := m.results[resultID]
	if !exists {
		return nil, evaluation.ErrNotFound
	}

	return copySuiteResult(result), nil
}

// ListSuiteResults returns all suite results for an application.
func (m *MemoryStorage) ListSuiteResults(ctx context.Context, appName string) ([]evaluation.SuiteResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collect(m.resultsByApp[appName]), nil
}

// ListSuiteResultsBySuiteID returns all results for a specific suite.
func (m *MemoryStorage) ListSuiteResultsBySuiteID(ctx context.Context, suiteID string) ([]evaluation.SuiteResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collect(m.resultsBySuite[suiteID]), nil
}

func (m *MemoryStorage) collect(resultIDs []string) []evaluation.SuiteResult {
	results := make([]evaluation.SuiteResult, 0, len(resultIDs))
	for _, resultID := range resultIDs {
		if result, exists := m.results[resultID]; exists {
			results = append(results, *copySuiteResult(result))
		}
	}
	return results
}

func copySuite(suite *evaluation.Suite) *evaluation.Suite {
	copied := *suite
	copied.Checks = make([]evaluation.Check, len(suite.Checks))
	copy(copied.Checks, suite.Checks)
	return &copied
}

func copySuiteResult(result *evaluation.SuiteResult) *evaluation.SuiteResult {
	copied := *result
	copied.CheckResults = make([]evaluation.CheckResult, len(result.CheckResults))
	copy(copied.CheckResults, result.CheckResults)
	return &copied
}
