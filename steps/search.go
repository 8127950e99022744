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
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	// DefaultSearchURL is the exa.ai search endpoint.
	DefaultSearchURL = "https://api.exa.ai/search"

	searchAttempts = 2
	searchTimeout  = 30 * time.Second
	searchDelay    = 2 * time.Second

	defaultSearchType       = "neural"
	defaultSearchNumResults = 10
)

// Search is a step that queries the exa.ai web search API.
type Search struct {
	// Query is the search query. Required.
	Query string `json:"query" yaml:"query"`

	// Type of search: "keyword", "neural", or "auto". Defaults to
	// "neural".
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Category narrows results to one data category, such as "news
	// article" or "research paper".
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// NumResults caps the number of results. Defaults to 10.
	NumResults int `json:"num_results,omitempty" yaml:"num_results,omitempty"`

	ExcludeDomains []string `json:"exclude_domains,omitempty" yaml:"exclude_domains,omitempty"`
	IncludeDomains []string `json:"include_domains,omitempty" yaml:"include_domains,omitempty"`
	ExcludeText    []string `json:"exclude_text,omitempty" yaml:"exclude_text,omitempty"`
	IncludeText    []string `json:"include_text,omitempty" yaml:"include_text,omitempty"`

	// Published and crawl date windows, in YYYY-MM-DD form.
	StartPublishedDate string `json:"start_published_date,omitempty" yaml:"start_published_date,omitempty"`
	EndPublishedDate   string `json:"end_published_date,omitempty" yaml:"end_published_date,omitempty"`
	StartCrawlDate     string `json:"start_crawl_date,omitempty" yaml:"start_crawl_date,omitempty"`
	EndCrawlDate       string `json:"end_crawl_date,omitempty" yaml:"end_crawl_date,omitempty"`

	// Highlights tunes the highlight extraction; merged over the default
	// highlight query.
	Highlights map[string]any `json:"highlights,omitempty" yaml:"highlights,omitempty"`

	// APIKey authenticates the request. Required.
	APIKey string `json:"x_api_key" yaml:"x_api_key"`

	// BaseURL overrides the endpoint, mainly for tests. Defaults to
	// DefaultSearchURL.
	BaseURL string `json:"-" yaml:"-"`

	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client `json:"-" yaml:"-"`
}

// Execute performs the search and reports the response.
func (s *Search) Execute(ctx context.Context, input map[string]any) *Result {
	start := time.Now()

	body, err := json.Marshal(s.buildBody())
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to make the API call.\nError: invalid body\nDetails:\n%v", err), start)
	}

	target := s.BaseURL
	if target == "" {
		target = DefaultSearchURL
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	result, err := retry.DoWithData(
		func() (*Result, error) {
			return s.attempt(ctx, client, target, body, start)
		},
		retry.Context(ctx),
		retry.Attempts(searchAttempts),
		retry.Delay(searchDelay),
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

func (s *Search) attempt(ctx context.Context, client *http.Client, target string, body []byte, start time.Time) (*Result, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.APIKey)

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

// buildBody assembles the exa.ai request. Highlights and summaries are
// always requested for the search query itself.
func (s *Search) buildBody() map[string]any {
	highlights := map[string]any{"query": s.Query}
	for key, value := range s.Highlights {
		highlights[key] = value
	}

	searchType := s.Type
	if searchType == "" {
		searchType = defaultSearchType
	}
	numResults := s.NumResults
	if numResults <= 0 {
		numResults = defaultSearchNumResults
	}

	body := map[string]any{
		"query":      s.Query,
		"type":       searchType,
		"numResults": numResults,
		"contents": map[string]any{
			"highlights": highlights,
			"summary":    map[string]any{"query": s.Query},
		},
	}
	if s.Category != "" {
		body["category"] = s.Category
	}
	if len(s.ExcludeDomains) > 0 {
		body["excludeDomains"] = s.ExcludeDomains
	}
	if len(s.IncludeDomains) > 0 {
		body["includeDomains"] = s.IncludeDomains
	}
	if len(s.ExcludeText) > 0 {
		body["excludeText"] = s.ExcludeText
	}
	if len(s.IncludeText) > 0 {
		body["includeText"] = s.IncludeText
	}
	if s.StartPublishedDate != "" {
		body["startPublishedDate"] = s.StartPublishedDate
	}
	if s.EndPublishedDate != "" {
		body["endPublishedDate"] = s.EndPublishedDate
	}
	if s.StartCrawlDate != "" {
		body["startCrawlDate"] = s.StartCrawlDate
	}
	if s.EndCrawlDate != "" {
		body["endCrawlDate"] = s.EndCrawlDate
	}
	return body
}
