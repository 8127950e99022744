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

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tanayvaswani/athina-evals/evaluation"
	"github.com/tanayvaswani/athina-evals/evaluation/storage"
	"github.com/tanayvaswani/athina-evals/server/restapi/web"
	"github.com/tanayvaswani/athina-evals/telemetry"
)

type serveFlags struct {
	addr    string
	dataDir string
	dbPath  string
}

var serveFlagValues serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evals REST API.",
	Long: `serve starts an HTTP server exposing the operation registry and
suite storage. Suites live in memory by default; --data-dir keeps them
as JSON files, --db keeps them in a SQLite database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		registry, err := newRegistry(ctx)
		if err != nil {
			return err
		}

		store, err := newStorage()
		if err != nil {
			return err
		}

		telemetryService, err := telemetry.New(ctx)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := telemetryService.Shutdown(shutdownCtx); err != nil {
				slog.Warn("telemetry shutdown failed", "error", err)
			}
		}()
		telemetryService.SetGlobalOtelProviders()

		handler := web.NewHandler(web.Config{
			Registry: registry,
			Storage:  store,
			Runner:   evaluation.NewRunner(registry, store),
		})

		slog.Info("serving evals REST API", "addr", serveFlagValues.addr)
		server := &http.Server{
			Addr:              serveFlagValues.addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		return server.ListenAndServe()
	},
}

// newStorage picks the storage backend from the serve flags.
func newStorage() (evaluation.Storage, error) {
	switch {
	case serveFlagValues.dataDir != "" && serveFlagValues.dbPath != "":
		return nil, fmt.Errorf("--data-dir and --db are mutually exclusive")
	case serveFlagValues.dataDir != "":
		return storage.NewFileStorage(serveFlagValues.dataDir)
	case serveFlagValues.dbPath != "":
		return storage.NewSQLiteStorage(serveFlagValues.dbPath)
	default:
		return storage.NewMemoryStorage(), nil
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlagValues.addr, "addr", "a", ":8080", "Listen address")
	serveCmd.Flags().StringVarP(&serveFlagValues.dataDir, "data-dir", "d", "", "Directory for file-backed suite storage")
	serveCmd.Flags().StringVarP(&serveFlagValues.dbPath, "db", "b", "", "Path to a SQLite database for suite storage")
}
