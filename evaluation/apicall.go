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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// APICallOptions parameterizes the ApiCall operation, which delegates
// grading to an external HTTP endpoint.
type APICallOptions struct {
	URL              string            `json:"url"`
	Query            string            `json:"query"`
	Context          string            `json:"context"`
	ExpectedResponse string            `json:"expected_response"`
	Payload          map[string]any    `json:"payload"`
	Headers          map[string]string `json:"headers"`
}

// remoteVerdict is the wire shape the grading endpoint answers with.
type remoteVerdict struct {
	Result bool   `json:"result"`
	Reason string `json:"reason"`
}

// newAPICallHandler builds the ApiCall handler around an HTTP client.
// The endpoint receives the subject text in the payload under "response"
// and must answer a {result, reason} body; any transport failure resolves
// to a failing Verdict, never an error.
func newAPICallHandler(client Doer, timeout time.Duration) Handler {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	return func(ctx context.Context, text string, opts map[string]any) (*Verdict, error) {
		var p APICallOptions
		if err := decodeOptions(opts, &p); err != nil {
			return nil, err
		}
		if p.URL == "" {
			return nil, fmt.Errorf("%w: ApiCall requires a url", ErrInvalidInput)
		}

		payload := make(map[string]any, len(p.Payload)+4)
		for k, v := range p.Payload {
			payload[k] = v
		}
		payload["response"] = text
		if p.Query != "" {
			payload["query"] = p.Query
		}
		if p.Context != "" {
			payload["context"] = p.Context
		}
		if p.ExpectedResponse != "" {
			payload["expected_response"] = p.ExpectedResponse
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: ApiCall payload not serializable: %v", ErrInvalidInput, err)
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		req.Header.Set("Content-Type", "application/json")
		for k, v := range p.Headers {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			return Fail(fmt.Sprintf("API Request Exception: %v", err)), nil
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			var remote remoteVerdict
			if err := json.NewDecoder(resp.Body).Decode(&remote); err != nil {
				return Fail(fmt.Sprintf("API Request Exception: %v", err)), nil
			}
			return &Verdict{Result: remote.Result, Reason: remote.Reason}, nil
		case http.StatusBadRequest:
			return Fail("Bad Request: The server could not understand the request due to invalid syntax."), nil
		case http.StatusUnauthorized:
			return Fail("Unauthorized: Authentication is required and has failed or has not been provided."), nil
		case http.StatusInternalServerError:
			return Fail("Internal Server Error: The server encountered an unexpected condition."), nil
		default:
			return Fail(fmt.Sprintf("An error occurred: %d", resp.StatusCode)), nil
		}
	}
}
