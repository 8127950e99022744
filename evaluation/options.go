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
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// KeywordList holds keyword tokens for the Contains* family. On the wire
// it may be a JSON array or a single comma-joined string; both decode to
// the same ordered token list.
type KeywordList []string

// Normalized returns the tokens trimmed of surrounding whitespace,
// lowercased unless caseSensitive is set.
func (k KeywordList) Normalized(caseSensitive bool) []string {
	tokens := make([]string, 0, len(k))
	for _, token := range k {
		token = strings.TrimSpace(token)
		if !caseSensitive {
			token = strings.ToLower(token)
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// CaseOption is the shared case-sensitivity flag. Matching is
// case-insensitive unless set.
type CaseOption struct {
	CaseSensitive bool `json:"case_sensitive"`
}

var keywordListType = reflect.TypeOf(KeywordList(nil))

// keywordSplitHook turns a comma-joined keyword string into a KeywordList.
func keywordSplitHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != keywordListType {
		return data, nil
	}
	return strings.Split(data.(string), ","), nil
}

// decodeOptions decodes a loosely typed options map into an operation's
// parameter struct. Decoding is weakly typed (numbers arriving as JSON
// floats decode into ints) and unrecognized keys are ignored.
func decodeOptions(opts map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           target,
		WeaklyTypedInput: true,
		DecodeHook:       keywordSplitHook,
	})
	if err != nil {
		return fmt.Errorf("failed to build options decoder: %w", err)
	}
	if err := decoder.Decode(opts); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
