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
)

var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("evaluation: not found")

	// ErrAlreadyExists indicates the resource already exists.
	ErrAlreadyExists = errors.New("evaluation: already exists")

	// ErrInvalidInput indicates invalid input parameters.
	ErrInvalidInput = errors.New("evaluation: invalid input")

	// ErrUnknownOperation indicates a lookup for an operation name with no
	// registered handler.
	ErrUnknownOperation = errors.New("evaluation: unknown operation")
)

// Storage defines persistence for check suites and suite results.
type Storage interface {
	// Suite operations

	// SaveSuite stores a check suite.
	SaveSuite(ctx context.Context, appName string, suite *Suite) error

	// GetSuite retrieves a check suite by ID.
	GetSuite(ctx context.Context, appName, suiteID string) (*Suite, error)

	// ListSuites returns all check suites for an application.
	ListSuites(ctx context.Context, appName string) ([]Suite, error)

	// DeleteSuite removes a check suite.
	DeleteSuite(ctx context.Context, appName, suiteID string) error

	// SuiteResult operations

	// SaveSuiteResult stores the outcome of a suite run.
	SaveSuiteResult(ctx context.Context, result *SuiteResult) error

	// GetSuiteResult retrieves a suite result by ID.
	GetSuiteResult(ctx context.Context, resultID string) (*SuiteResult, error)

	// ListSuiteResults returns all suite results for an application.
	ListSuiteResults(ctx context.Context, appName string) ([]SuiteResult, error)

	// ListSuiteResultsBySuiteID returns all results for a specific suite.
	ListSuiteResultsBySuiteID(ctx context.Context, suiteID string) ([]SuiteResult, error)
}
