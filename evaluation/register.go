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

import "time"

// Config carries the injected capabilities the built-in operations need.
// The structured comparison handler is supplied by the jsoneval package
// to keep this package free of the comparison engine's dependencies.
//
// Example usage:
//
//	eval, err := jsoneval.New(jsoneval.Config{LLM: llm, Embedder: embedder})
//	if err != nil { ... }
//	err = evaluation.RegisterDefaultOperations(evaluation.DefaultRegistry, evaluation.Config{
//	    JSONEval: eval.Handler(),
//	})
type Config struct {
	// HTTPClient issues link probes and ApiCall requests.
	// Defaults to http.DefaultClient.
	HTTPClient Doer

	// ProbeTimeout bounds each outbound request.
	// Defaults to DefaultProbeTimeout.
	ProbeTimeout time.Duration

	// JSONEval handles the JsonEval operation. Optional; when nil the
	// operation is simply not registered.
	JSONEval Handler
}

// RegisterDefaultOperations registers all built-in operations with the
// given registry.
func RegisterDefaultOperations(r *Registry, cfg Config) error {
	links := NewLinkValidator(cfg.HTTPClient, cfg.ProbeTimeout)

	handlers := map[Operation]Handler{
		OpRegex:             regexHandler,
		OpContainsAny:       containsAnyHandler,
		OpContainsAll:       containsAllHandler,
		OpContains:          containsHandler,
		OpContainsNone:      containsNoneHandler,
		OpEquals:            equalsHandler,
		OpStartsWith:        startsWithHandler,
		OpEndsWith:          endsWithHandler,
		OpLengthLessThan:    lengthLessThanHandler,
		OpLengthGreaterThan: lengthGreaterThanHandler,
		OpLengthBetween:     lengthBetweenHandler,
		OpOneLine:           oneLineHandler,
		OpContainsEmail:     containsEmailHandler,
		OpIsEmail:           isEmailHandler,
		OpIsJson:            isJsonHandler,
		OpContainsJson:      containsJsonHandler,
		OpContainsLink:      links.ContainsLink,
		OpContainsValidLink: links.ContainsValidLink,
		OpNoInvalidLinks:    links.NoInvalidLinks,
		OpApiCall:           newAPICallHandler(cfg.HTTPClient, cfg.ProbeTimeout),
	}
	if cfg.JSONEval != nil {
		handlers[OpJsonEval] = cfg.JSONEval
	}

	for op, handler := range handlers {
		if err := r.Register(op, handler); err != nil {
			return err
		}
	}
	return nil
}
