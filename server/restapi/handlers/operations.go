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

// Package handlers implements the REST API controllers.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tanayvaswani/athina-evals/evaluation"
)

// OperationHandler exposes the operation registry over HTTP.
type OperationHandler struct {
	registry *evaluation.Registry
}

// NewOperationHandler creates a new operation handler. registry may be
// nil, in which case the default registry is used.
func NewOperationHandler(registry *evaluation.Registry) *OperationHandler {
	if registry == nil {
		registry = evaluation.DefaultRegistry
	}
	return &OperationHandler{registry: registry}
}

// runOperationRequest is the body of a single-operation invocation.
type runOperationRequest struct {
	Text    string         `json:"text"`
	Options map[string]any `json:"options,omitempty"`
}

// ListOperations returns the names of all registered operations.
func (h *OperationHandler) ListOperations(w http.ResponseWriter, r *http.Request) {
	EncodeJSONResponse(h.registry.ListOperations(), http.StatusOK, w)
}

// RunOperation invokes a single operation against the submitted text.
func (h *OperationHandler) RunOperation(w http.ResponseWriter, r *http.Request) {
	operation := evaluation.Operation(mux.Vars(r)["operation_name"])

	var req runOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.invoke(w, r, operation, req.Text, req.Options)
}

// RunJSONEval invokes the structured comparison operation. The endpoint
// exists alongside the generic operation route because structured
// comparison is the one operation whose options carry whole documents.
func (h *OperationHandler) RunJSONEval(w http.ResponseWriter, r *http.Request) {
	var req runOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.invoke(w, r, evaluation.OpJsonEval, req.Text, req.Options)
}

func (h *OperationHandler) invoke(w http.ResponseWriter, r *http.Request, operation evaluation.Operation, text string, options map[string]any) {
	verdict, err := h.registry.Invoke(r.Context(), operation, text, options)
	if err != nil {
		switch {
		case errors.Is(err, evaluation.ErrUnknownOperation):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, evaluation.ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	EncodeJSONResponse(verdict, http.StatusOK, w)
}
