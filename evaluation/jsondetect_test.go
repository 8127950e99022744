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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsJsonHandler(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantResult bool
	}{
		{"object", `{"a": 1}`, true},
		{"array", `[1, 2, 3]`, true},
		{"bare string", `"hello"`, true},
		{"number", `42`, true},
		{"prose around json", `the result is {"a": 1}`, false},
		{"not json", `hello world`, false},
		{"truncated", `{"a": `, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := isJsonHandler(context.Background(), tt.text, nil)
			if err != nil {
				t.Fatalf("isJsonHandler failed: %v", err)
			}
			if got.Result != tt.wantResult {
				t.Errorf("Result = %v, want %v", got.Result, tt.wantResult)
			}
		})
	}
}

func TestContainsJsonHandler(t *testing.T) {
	t.Run("embedded object", func(t *testing.T) {
		got, err := containsJsonHandler(context.Background(), `Here you go: {"name": "Ada"} enjoy`, nil)
		if err != nil {
			t.Fatalf("containsJsonHandler failed: %v", err)
		}
		if !got.Result {
			t.Fatalf("got %+v, want pass", got)
		}
		if got.Reason != "Output contains JSON" {
			t.Errorf("Reason = %q", got.Reason)
		}
		if len(got.Matches) != 1 {
			t.Fatalf("got %d matches, want 1", len(got.Matches))
		}
		fragment := got.Matches[0].(JSONFragment)
		want := map[string]any{"name": "Ada"}
		if diff := cmp.Diff(want, fragment.JSON); diff != "" {
			t.Errorf("fragment mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no braces", func(t *testing.T) {
		got, err := containsJsonHandler(context.Background(), "plain prose", nil)
		if err != nil {
			t.Fatalf("containsJsonHandler failed: %v", err)
		}
		if got.Result || got.Reason != "Output does not contain JSON" {
			t.Errorf("got %+v, want fail", got)
		}
	})

	t.Run("invalid candidate", func(t *testing.T) {
		got, err := containsJsonHandler(context.Background(), `data: {not json at all}`, nil)
		if err != nil {
			t.Fatalf("containsJsonHandler failed: %v", err)
		}
		if got.Result {
			t.Fatalf("got %+v, want fail", got)
		}
		if got.Reason != "Output contains a potential JSON but it is invalid" {
			t.Errorf("Reason = %q", got.Reason)
		}
		if len(got.Errors) != 1 {
			t.Errorf("got %d errors, want 1", len(got.Errors))
		}
	})

	t.Run("valid and invalid candidates fail together", func(t *testing.T) {
		got, err := containsJsonHandler(context.Background(), `{"ok": true} and {broken}`, nil)
		if err != nil {
			t.Fatalf("containsJsonHandler failed: %v", err)
		}
		if got.Result {
			t.Fatalf("got %+v, want fail", got)
		}
		if len(got.Matches) != 1 || len(got.Errors) != 1 {
			t.Errorf("got %d matches and %d errors, want 1 and 1", len(got.Matches), len(got.Errors))
		}
	})

	t.Run("nested braces stay one candidate", func(t *testing.T) {
		got, err := containsJsonHandler(context.Background(), `{"outer": {"inner": 1}}`, nil)
		if err != nil {
			t.Fatalf("containsJsonHandler failed: %v", err)
		}
		if !got.Result || len(got.Matches) != 1 {
			t.Errorf("got %+v, want one passing match", got)
		}
	})

	t.Run("brace inside string literal", func(t *testing.T) {
		got, err := containsJsonHandler(context.Background(), `{"text": "left { brace"}`, nil)
		if err != nil {
			t.Fatalf("containsJsonHandler failed: %v", err)
		}
		if !got.Result || len(got.Matches) != 1 {
			t.Errorf("got %+v, want one passing match", got)
		}
	})
}

func TestScanJSONCandidates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single", `a {"x": 1} b`, []string{`{"x": 1}`}},
		{"two non-overlapping", `{"a": 1} then {"b": 2}`, []string{`{"a": 1}`, `{"b": 2}`}},
		{"unterminated dropped", `{"a": 1} {"b":`, []string{`{"a": 1}`}},
		{"none", `no braces`, nil},
		{"escaped quote in string", `{"k": "v \" {"}`, []string{`{"k": "v \" {"}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanJSONCandidates(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
