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

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	apiCallAttempts = 3
	apiCallTimeout  = 5 * time.Second
	apiCallDelay    = 2 * time.Second
)

// APICall is a step that calls an external HTTP endpoint. Timeouts are
// retried with a fixed delay; any other failure is reported immediately.
type APICall struct {
	// URL of the endpoint to call. Required.
	URL string `json:"url" yaml:"url"`

	// Method is the HTTP method, such as "GET" or "POST".
	Method string `json:"method" yaml:"method"`

	// Headers to include in the request.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Params are query parameters appended to the URL.
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`

	// Body is the JSON request body. When Execute receives input data,
	// the input is merged into the body under its own keys.
	Body map[string]any `json:"body,omitempty" yaml:"body,omitempty"`

	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client `json:"-" yaml:"-"`
}

// Execute makes the API call and reports the response.
func (a *APICall) Execute(ctx context.Context, input map[string]any) *Result {
	start := time.Now()

	target, err := a.buildURL()
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to make the API call.\nError: invalid URL\nDetails:\n%v", err), start)
	}

	body, err := a.buildBody(input)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to make the API call.\nError: invalid body\nDetails:\n%v", err), start)
	}

	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}

	result, err := retry.DoWithData(
		func() (*Result, error) {
			return a.attempt(ctx, client, target, body, start)
		},
		retry.Context(ctx),
		retry.Attempts(apiCallAttempts),
		retry.Delay(apiCallDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTimeout),
	)
	if err != nil {
		if isTimeout(err) {
			return errorResult("Failed to make the API call.\nRequest timed out after multiple attempts.", start)
		}
		return errorResult(fmt.Sprintf("Failed to make the API call.\nError: request failed\nDetails:\n%v", err), start)
	}
	return result
}

// attempt performs one HTTP exchange. A timeout is returned as an error
// so the retry loop can run again; every other outcome terminates.
func (a *APICall) attempt(ctx context.Context, client *http.Client, target string, body []byte, start time.Time) (*Result, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, apiCallTimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	method := a.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, target, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range a.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return errorResult(fmt.Sprintf("Failed to make the API call.\nStatus code: %d\nError:\n%s", resp.StatusCode, text), start), nil
	}

	var decoded any
	if err := json.Unmarshal(text, &decoded); err != nil {
		return successResult(string(text), start), nil
	}
	return successResult(decoded, start), nil
}

func (a *APICall) buildURL() (string, error) {
	u, err := url.Parse(a.URL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("missing scheme or host in %q", a.URL)
	}

	if len(a.Params) > 0 {
		query := u.Query()
		for key, value := range a.Params {
			query.Set(key, value)
		}
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// buildBody merges the step input into the configured body and encodes
// the union as JSON. A nil result means no body at all.
func (a *APICall) buildBody(input map[string]any) ([]byte, error) {
	if a.Body == nil && len(input) == 0 {
		return nil, nil
	}

	merged := make(map[string]any, len(a.Body)+len(input))
	for key, value := range a.Body {
		merged[key] = value
	}
	for key, value := range input {
		merged[key] = value
	}
	return json.Marshal(merged)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	// url.Error wraps the context error as a string in some paths.
	return err != nil && strings.Contains(err.Error(), "context deadline exceeded")
}
