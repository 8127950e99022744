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
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tanayvaswani/athina-evals/evaluation"
)

// suiteRecord is the database row for a check suite. The suite itself is
// stored as a JSON document; app name and suite ID are lifted out as the
// composite key.
type suiteRecord struct {
	AppName   string `gorm:"primaryKey"`
	SuiteID   string `gorm:"primaryKey"`
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (suiteRecord) TableName() string { return "suites" }

// suiteResultRecord is the database row for a suite run outcome.
type suiteResultRecord struct {
	ResultID  string `gorm:"primaryKey"`
	SuiteID   string `gorm:"index"`
	AppName   string `gorm:"index"`
	Data      []byte
	CreatedAt time.Time
}

func (suiteResultRecord) TableName() string { return "suite_results" }

// SQLiteStorage persists check suites and results in a SQLite database.
// It uses a pure-Go driver, so no cgo is required.
type SQLiteStorage struct {
	db *gorm.DB
}

// NewSQLiteStorage opens (or creates) the database at path and migrates
// the schema. Use ":memory:" for an in-process throwaway database.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&suiteRecord{}, &suiteResultRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// SaveSuite stores a check suite, replacing any previous version.
func (s *SQLiteStorage) SaveSuite(ctx context.Context, appName string, suite *evaluation.Suite) error {
	if suite == nil || suite.ID == "" {
		return evaluation.ErrInvalidInput
	}

	data, err := json.Marshal(suite)
	if err != nil {
		return fmt.Errorf("failed to marshal suite: %w", err)
	}

	record := suiteRecord{
		AppName: appName,
		SuiteID: suite.ID,
		Data:    data,
	}

	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save suite: %w", err)
	}

	return nil
}

// GetSuite retrieves a check suite by ID.
func (s *SQLiteStorage) GetSuite(ctx context.Context, appName, suiteID string) (*evaluation.Suite, error) {
	var record suiteRecord
	err := s.db.WithContext(ctx).
		Where("app_name = ? AND suite_id = ?", appName, suiteID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, evaluation.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load suite: %w", err)
	}

	var suite evaluation.Suite
	if err := json.Unmarshal(record.Data, &suite); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suite: %w", err)
	}

	return &suite, nil
}

// ListSuites returns all check suites for an application.
func (s *SQLiteStorage) ListSuites(ctx context.Context, appName string) ([]evaluation.Suite, error) {
	var records []suiteRecord
	err := s.db.WithContext(ctx).
		Where("app_name = ?", appName).
		Order("suite_id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list suites: %w", err)
	}

	suites := make([]evaluation.Suite, 0, len(records))
	for _, record := range records {
		var suite evaluation.Suite
		if err := json.Unmarshal(record.Data, &suite); err != nil {
			continue
		}
		suites = append(suites, suite)
	}

	return suites, nil
}

// DeleteSuite removes a check suite.
func (s *SQLiteStorage) DeleteSuite(ctx context.Context, appName, suiteID string) error {
	result := s.db.WithContext(ctx).
		Where("app_name = ? AND suite_id = ?", appName, suiteID).
		Delete(&suiteRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete suite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return evaluation.ErrNotFound
	}

	return nil
}

// SaveSuiteResult stores the outcome of a suite run.
func (s *SQLiteStorage) SaveSuiteResult(ctx context.Context, result *evaluation.SuiteResult) error {
	if result == nil || result.ResultID == "" {
		return evaluation.ErrInvalidInput
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	record := suiteResultRecord{
		ResultID: result.ResultID,
		SuiteID:  result.SuiteID,
		AppName:  result.AppName,
		Data:     data,
	}

	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

// GetSuiteResult retrieves a suite result by ID.
func (s *SQLiteStorage) GetSuiteResult(ctx context.Context, resultID string) (*evaluation.SuiteResult, error) {
	var record suiteResultRecord
	err := s.db.WithContext(ctx).
		Where("result_id = ?", resultID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, evaluation.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load result: %w", err)
	}

	var result evaluation.SuiteResult
	if err := json.Unmarshal(record.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// ListSuiteResults returns all suite results for an application.
func (s *SQLiteStorage) ListSuiteResults(ctx context.Context, appName string) ([]evaluation.SuiteResult, error) {
	return s.queryResults(ctx, "app_name = ?", appName)
}

// ListSuiteResultsBySuiteID returns all results for a specific suite.
func (s *SQLiteStorage) ListSuiteResultsBySuiteID(ctx context.Context, suiteID string) ([]evaluation.SuiteResult, error) {
	return s.queryResults(ctx, "suite_id = ?", suiteID)
}

func (s *SQLiteStorage) queryResults(ctx context.Context, query string, arg any) ([]evaluation.SuiteResult, error) {
	var records []suiteResultRecord
	err := s.db.WithContext(ctx).
		Where(query, arg).
		Order("created_at").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	results := make([]evaluation.SuiteResult, 0, len(records))
	for _, record := range records {
		var result evaluation.SuiteResult
		if err := json.Unmarshal(record.Data, &result); err != nil {
			continue
		}
		results = append(results, result)
	}

	return results, nil
}
