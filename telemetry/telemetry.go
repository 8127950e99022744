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

// Package telemetry contains OpenTelemetry setup for the evals service.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Service wraps the telemetry providers and implements functions for
// telemetry lifecycle management.
type Service interface {
	// SetGlobalOtelProviders registers the configured providers as the
	// global OTel providers.
	SetGlobalOtelProviders()

	// TracerProvider returns the configured TracerProvider or nil.
	TracerProvider() *sdktrace.TracerProvider

	// Shutdown shuts down underlying OTel providers.
	Shutdown(ctx context.Context) error
}

// New initializes a telemetry service. An OTLP trace exporter is wired
// up when the standard OTEL_EXPORTER_OTLP_ENDPOINT (or the traces
// variant) environment variable is set; otherwise the service is a
// no-op unless options add processors or a provider. The caller must
// call Shutdown to flush and release resources.
func New(ctx context.Context, opts ...Option) (Service, error) {
	cfg, err := configure(ctx, opts...)
	if err != nil {
		return nil, err
	}

	tp, err := initTracerProvider(cfg)
	if err != nil {
		return nil, err
	}
	return &service{tracerProvider: tp}, nil
}

type service struct {
	tracerProvider *sdktrace.TracerProvider
}

func (s *service) SetGlobalOtelProviders() {
	if s.tracerProvider != nil {
		otel.SetTracerProvider(s.tracerProvider)
	}
}

func (s *service) TracerProvider() *sdktrace.TracerProvider {
	return s.tracerProvider
}

func (s *service) Shutdown(ctx context.Context) error {
	if s.tracerProvider == nil {
		return nil
	}
	return s.tracerProvider.Shutdown(ctx)
}
