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
	"testing"
)

func passHandler(_ context.Context, _ string, _ map[string]any) (*Verdict, error) {
	return Pass("ok"), nil
}

func TestRegistryRegisterAndInvoke(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("Custom", passHandler); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !r.IsRegistered("Custom") {
		t.Error("IsRegistered = false after Register")
	}

	verdict, err := r.Invoke(context.Background(), "Custom", "text", nil)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if !verdict.Result || verdict.Reason != "ok" {
		t.Errorf("verdict = %+v", verdict)
	}
}

func TestRegistryDuplicateRegistration(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("Custom", passHandler); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("Custom", passHandler); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("got %v, want ErrAlreadyExists", err)
	}
}

func TestRegistryNilHandler(t *testing.T) {
	r := NewRegistry()

	if err := r.Register("Custom", nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestRegistryUnknownOperation(t *testing.T) {
	r := NewRegistry()

	if _, err := r.Get("Nope"); !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("Get: got %v, want ErrUnknownOperation", err)
	}
	if _, err := r.Invoke(context.Background(), "Nope", "text", nil); !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("Invoke: got %v, want ErrUnknownOperation", err)
	}
}

func TestRegisterDefaultOperations(t *testing.T) {
	r := NewRegistry()
	if err := RegisterDefaultOperations(r, Config{}); err != nil {
		t.Fatalf("RegisterDefaultOperations failed: %v", err)
	}

	// Without a structured comparison handler, JsonEval stays out.
	for _, op := range AllOperations() {
		if op == OpJsonEval {
			if r.IsRegistered(op) {
				t.Errorf("%s registered without a handler", op)
			}
			continue
		}
		if !r.IsRegistered(op) {
			t.Errorf("%s not registered", op)
		}
	}
}

func TestRegisterDefaultOperationsWithJSONEval(t *testing.T) {
	r := NewRegistry()
	if err := RegisterDefaultOperations(r, Config{JSONEval: passHandler}); err != nil {
		t.Fatalf("RegisterDefaultOperations failed: %v", err)
	}
	if !r.IsRegistered(OpJsonEval) {
		t.Error("JsonEval not registered despite a configured handler")
	}
	if got := len(r.ListOperations()); got != len(AllOperations()) {
		t.Errorf("registered %d operations, want %d", got, len(AllOperations()))
	}
}
