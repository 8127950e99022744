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
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// decodeJSONEvalOptions decodes a loose options map into Options. The
// structured fields (expected document, schema) stay `any` so callers
// can send either raw JSON text or already-parsed structures.
func decodeJSONEvalOptions(src map[string]any, dst *Options) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return fmt.Errorf("jsoneval: failed to build options decoder: %w", err)
	}
	if err := decoder.Decode(src); err != nil {
		return fmt.Errorf("jsoneval: invalid options: %w", err)
	}
	return nil
}
