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

// Package web prepares the router for the evals REST API.
package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tanayvaswani/athina-evals/evaluation"
	"github.com/tanayvaswani/athina-evals/server/restapi/handlers"
)

// Config carries the services the REST API exposes.
type Config struct {
	// Registry resolves operation names. Defaults to the default
	// registry.
	Registry *evaluation.Registry

	// Storage persists suites and results. Required for the suite
	// routes.
	Storage evaluation.Storage

	// Runner executes suites. Required for the run route.
	Runner *evaluation.Runner
}

// NewHandler creates an http.Handler for the evals REST API. The
// returned handler can be registered with any standard Go HTTP server.
func NewHandler(config Config) http.Handler {
	operations := handlers.NewOperationHandler(config.Registry)
	suites := handlers.NewSuiteHandler(config.Storage, config.Runner)

	router := mux.NewRouter().StrictSlash(true)

	router.HandleFunc("/v1/operations", operations.ListOperations).Methods(http.MethodGet)
	router.HandleFunc("/v1/operations/{operation_name}", operations.RunOperation).Methods(http.MethodPost)
	router.HandleFunc("/v1/jsoneval", operations.RunJSONEval).Methods(http.MethodPost)

	if config.Storage != nil {
		router.HandleFunc("/v1/apps/{app_name}/suites", suites.ListSuites).Methods(http.MethodGet)
		router.HandleFunc("/v1/apps/{app_name}/suites", suites.CreateSuite).Methods(http.MethodPost)
		router.HandleFunc("/v1/apps/{app_name}/suites/{suite_id}", suites.GetSuite).Methods(http.MethodGet)
		router.HandleFunc("/v1/apps/{app_name}/suites/{suite_id}", suites.DeleteSuite).Methods(http.MethodDelete)
		router.HandleFunc("/v1/apps/{app_name}/suites/{suite_id}/run", suites.RunSuite).Methods(http.MethodPost)
		router.HandleFunc("/v1/apps/{app_name}/results", suites.ListSuiteResults).Methods(http.MethodGet)
		router.HandleFunc("/v1/results/{result_id}", suites.GetSuiteResult).Methods(http.MethodGet)
	}

	return router
}
