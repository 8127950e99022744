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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeOptionsKeywordString(t *testing.T) {
	var p KeywordsOptions
	if err := decodeOptions(map[string]any{"keywords": "a, b ,c"}, &p); err != nil {
		t.Fatalf("decodeOptions failed: %v", err)
	}
	want := KeywordList{"a", " b ", "c"}
	if diff := cmp.Diff(want, p.Keywords); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeOptionsKeywordSlice(t *testing.T) {
	var p KeywordsOptions
	if err := decodeOptions(map[string]any{"keywords": []any{"a", "b"}}, &p); err != nil {
		t.Fatalf("decodeOptions failed: %v", err)
	}
	want := KeywordList{"a", "b"}
	if diff := cmp.Diff(want, p.Keywords); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeOptionsSquashedCase(t *testing.T) {
	var p KeywordsOptions
	if err := decodeOptions(map[string]any{"keywords": "a", "case_sensitive": true}, &p); err != nil {
		t.Fatalf("decodeOptions failed: %v", err)
	}
	if !p.CaseSensitive {
		t.Error("case_sensitive did not decode into the embedded option")
	}
}

func TestDecodeOptionsWeakTyping(t *testing.T) {
	var p LengthOptions
	// JSON numbers arrive as float64.
	if err := decodeOptions(map[string]any{"min_length": float64(3), "max_length": "7"}, &p); err != nil {
		t.Fatalf("decodeOptions failed: %v", err)
	}
	if p.MinLength != 3 || p.MaxLength != 7 {
		t.Errorf("decoded %+v, want 3 and 7", p)
	}
}

func TestDecodeOptionsIgnoresUnknownKeys(t *testing.T) {
	var p ContainsOptions
	if err := decodeOptions(map[string]any{"keyword": "x", "stray": 1}, &p); err != nil {
		t.Fatalf("decodeOptions failed: %v", err)
	}
	if p.Keyword != "x" {
		t.Errorf("Keyword = %q", p.Keyword)
	}
}

func TestKeywordListNormalized(t *testing.T) {
	list := KeywordList{" Alpha ", "BETA"}

	if diff := cmp.Diff([]string{"alpha", "beta"}, list.Normalized(false)); diff != "" {
		t.Errorf("case-folded mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Alpha", "BETA"}, list.Normalized(true)); diff != "" {
		t.Errorf("case-sensitive mismatch (-want +got):\n%s", diff)
	}
}
