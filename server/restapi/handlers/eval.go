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

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tanayvaswani/athina-evals/evaluation"
)

// SuiteHandler encapsulates check-suite HTTP handlers.
type SuiteHandler struct {
	storage evaluation.Storage
	runner  *evaluation.Runner
}

// NewSuiteHandler creates a new suite handler.
func NewSuiteHandler(storage evaluation.Storage, runner *evaluation.Runner) *SuiteHandler {
	return &SuiteHandler{
		storage: storage,
		runner:  runner,
	}
}

// runSuiteRequest is the body of a suite run: the output under test.
type runSuiteRequest struct {
	Output string `json:"output"`
}

// ListSuites retrieves all check suites for an app.
func (h *SuiteHandler) ListSuites(w http.ResponseWriter, r *http.Request) {
	appName := mux.Vars(r)["app_name"]

	suites, err := h.storage.ListSuites(r.Context(), appName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	EncodeJSONResponse(suites, http.StatusOK, w)
}

// CreateSuite creates a new check suite.
func (h *SuiteHandler) CreateSuite(w http.ResponseWriter, r *http.Request) {
	appName := mux.Vars(r)["app_name"]

	var suite evaluation.Suite
	if err := json.NewDecoder(r.Body).Decode(&suite); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Generate ID if not provided
	if suite.ID == "" {
		suite.ID = uuid.New().String()
	}

	suite.CreatedAt = time.Now()

	if err := h.storage.SaveSuite(r.Context(), appName, &suite); err != nil {
		if errors.Is(err, evaluation.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	EncodeJSONResponse(suite, http.StatusCreated, w)
}

// GetSuite retrieves a specific check suite.
func (h *SuiteHandler) GetSuite(w http.ResponseWriter, r *http.Request) {
	appName := mux.Vars(r)["app_name"]
	suiteID := mux.Vars(r)["suite_id"]

	suite, err := h.storage.GetSuite(r.Context(), appName, suiteID)
	if err != nil {
		if errors.Is(err, evaluation.ErrNotFound) {
			http.Error(w, "suite not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	EncodeJSONResponse(suite, http.StatusOK, w)
}

// DeleteSuite deletes a check suite.
func (h *SuiteHandler) DeleteSuite(w http.ResponseWriter, r *http.Request) {
	appName := mux.Vars(r)["app_name"]
	suiteID := mux.Vars(r)["suite_id"]

	if err := h.storage.DeleteSuite(r.Context(), appName, suiteID); err != nil {
		if errors.Is(err, evaluation.ErrNotFound) {
			http.Error(w, "suite not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RunSuite executes all checks in a suite against the submitted output.
func (h *SuiteHandler) RunSuite(w http.ResponseWriter, r *http.Request) {
	appName := mux.Vars(r)["app_name"]
	suiteID := mux.Vars(r)["suite_id"]

	var req runSuiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	suite, err := h.storage.GetSuite(r.Context(), appName, suiteID)
	if err != nil {
		if errors.Is(err, evaluation.ErrNotFound) {
			http.Error(w, "suite not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if h.runner == nil {
		http.Error(w, "suite runner not configured", http.StatusServiceUnavailable)
		return
	}

	result, err := h.runner.RunSuite(r.Context(), appName, suite, req.Output)
	if err != nil {
		if errors.Is(err, evaluation.ErrInvalidInput) || errors.Is(err, evaluation.ErrUnknownOperation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	EncodeJSONResponse(result, http.StatusOK, w)
}

// ListSuiteResults retrieves all suite results for an app.
func (h *SuiteHandler) ListSuiteResults(w http.ResponseWriter, r *http.Request) {
	appName := mux.Vars(r)["app_name"]

	results, err := h.storage.ListSuiteResults(r.Context(), appName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	EncodeJSONResponse(results, http.StatusOK, w)
}

// GetSuiteResult retrieves a specific suite result.
func (h *SuiteHandler) GetSuiteResult(w http.ResponseWriter, r *http.Request) {
	resultID := mux.Vars(r)["result_id"]

	result, err := h.storage.GetSuiteResult(r.Context(), resultID)
	if err != nil {
		if errors.Is(err, evaluation.ErrNotFound) {
			http.Error(w, "suite result not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	EncodeJSONResponse(result, http.StatusOK, w)
}
