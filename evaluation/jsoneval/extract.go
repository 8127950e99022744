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
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Value is the result of resolving a JSON path against a document.
// Found distinguishes a path that resolved to null from one that did not
// resolve at all; the two must never be conflated downstream.
type Value struct {
	Data  any
	Found bool
}

// Text coerces the value to its text representation for the similarity
// strategies. Strings are used as-is; everything else is rendered as
// compact JSON. An absent value renders as the empty string.
func (v Value) Text() string {
	if !v.Found {
		return ""
	}
	if s, ok := v.Data.(string); ok {
		return s
	}
	data, err := json.Marshal(v.Data)
	if err != nil {
		return ""
	}
	return string(data)
}

var bracketIndex = regexp.MustCompile(`\[(\d+)\]`)

// normalizePath rewrites bracketed sequence indices ("items[0].name")
// into gjson's dotted form ("items.0.name").
func normalizePath(path string) string {
	return strings.TrimPrefix(bracketIndex.ReplaceAllString(path, ".$1"), ".")
}

// Extract resolves a dotted/bracketed path expression against a JSON
// value. Missing intermediate keys, out-of-range indices and type
// mismatches all resolve to an absent Value, never an error.
func Extract(doc any, path string) Value {
	raw, err := json.Marshal(doc)
	if err != nil {
		return Value{}
	}
	result := gjson.GetBytes(raw, normalizePath(path))
	if !result.Exists() {
		return Value{}
	}
	return Value{Data: result.Value(), Found: true}
}
