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

package jsoneval

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// parseSchema resolves the schema input into a validator. The schema may
// arrive pre-parsed (an object, or an already-built *jsonschema.Schema)
// or as raw text; raw text from templating pipelines tends to carry
// embedded newline and tab characters, which are stripped before
// parsing. A nil result with nil error means no schema was provided.
func parseSchema(raw any) (*jsonschema.Resolved, error) {
	var schema *jsonschema.Schema

	switch s := raw.(type) {
	case nil:
		return nil, nil
	case *jsonschema.Schema:
		schema = s
	case string:
		if s == "" {
			return nil, nil
		}
		cleaned := strings.NewReplacer("\n", "", "\t", "").Replace(s)
		schema = new(jsonschema.Schema)
		if err := json.Unmarshal([]byte(cleaned), schema); err != nil {
			return nil, fmt.Errorf("schema is not valid JSON: %w", err)
		}
	case map[string]any:
		data, err := json.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("schema is not serializable: %w", err)
		}
		schema = new(jsonschema.Schema)
		if err := json.Unmarshal(data, schema); err != nil {
			return nil, fmt.Errorf("schema is not a valid JSON schema: %w", err)
		}
	default:
		return nil, fmt.Errorf("schema must be an object or string, got %T", raw)
	}

	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema: %w", err)
	}
	return resolved, nil
}

// validateDocument reports whether a document conforms to the schema.
// Validation failure is a domain outcome, so the error detail is
// deliberately reduced to a boolean here.
func validateDocument(resolved *jsonschema.Resolved, doc any) bool {
	return resolved.Validate(doc) == nil
}

// parseDocument turns a raw input into a JSON value. Already-structured
// inputs pass through; strings must parse as JSON. A parse failure is a
// fatal error for the caller, not a Verdict.
func parseDocument(input any) (any, error) {
	s, ok := input.(string)
	if !ok {
		return input, nil
	}
	var doc any
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("document is not valid JSON: %w", err)
	}
	return doc, nil
}
