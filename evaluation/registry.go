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
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/tanayvaswani/athina-evals/evaluation")

// Handler executes one operation against the subject text. Operation
// specific parameters arrive in opts; keys a handler does not recognize
// are ignored. Handlers return a Verdict for domain outcomes and an error
// only for caller or configuration bugs.
type Handler func(ctx context.Context, text string, opts map[string]any) (*Verdict, error)

// Registry maps operation names to handlers. It is safe for concurrent
// lookup; registration is expected to happen once at startup.
type Registry struct {
	mu       sync.RWMutex
	handlers map[Operation]Handler
}

// NewRegistry creates an empty operation registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[Operation]Handler),
	}
}

// Register binds a handler to an operation name. Identical names must
// always resolve to the same behavior, so re-registering a name is an
// error rather than a silent shadow.
func (r *Registry) Register(op Operation, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("%w: nil handler for operation %s", ErrInvalidInput, op)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[op]; exists {
		return fmt.Errorf("%w: operation %s", ErrAlreadyExists, op)
	}

	r.handlers[op] = handler
	return nil
}

// Get retrieves the handler for an operation name.
func (r *Registry) Get(op Operation) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, exists := r.handlers[op]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}

	return handler, nil
}

// Invoke resolves an operation by name and executes it against the
// subject text.
func (r *Registry) Invoke(ctx context.Context, op Operation, text string, opts map[string]any) (*Verdict, error) {
	handler, err := r.Get(op)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "evaluation.Invoke",
		trace.WithAttributes(attribute.String("evaluation.operation", op.String())))
	defer span.End()

	verdict, err := handler(ctx, text, opts)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("evaluation.result", verdict.Result))
	return verdict, nil
}

// ListOperations returns all registered operation names.
func (r *Registry) ListOperations() []Operation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops := make([]Operation, 0, len(r.handlers))
	for op := range r.handlers {
		ops = append(ops, op)
	}

	return ops
}

// IsRegistered checks if a handler is registered for an operation name.
func (r *Registry) IsRegistered(op Operation) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.handlers[op]
	return exists
}

// DefaultRegistry is the global registry instance.
var DefaultRegistry = NewRegistry()

// Register binds a handler in the default registry.
func Register(op Operation, handler Handler) error {
	return DefaultRegistry.Register(op, handler)
}

// Invoke executes an operation using the default registry.
func Invoke(ctx context.Context, op Operation, text string, opts map[string]any) (*Verdict, error) {
	return DefaultRegistry.Invoke(ctx, op, text, opts)
}
