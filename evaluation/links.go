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
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// DefaultProbeTimeout bounds the single HEAD probe a link check issues.
const DefaultProbeTimeout = 10 * time.Second

// Doer issues a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// linkPattern is a permissive URL matcher: an optional scheme and
// www prefix followed by anything with a dot in it. Email-like tokens
// are excluded separately since RE2 has no lookahead.
var linkPattern = regexp.MustCompile(`(?:https?://)?(?:www\.)?\S+\.\S+`)

// LinkValidator locates URL-like tokens in text and optionally probes
// their reachability with a single bounded HEAD request. Probe failures
// are domain verdicts, never errors: transient connectivity trouble is an
// expected operating condition for a link check.
type LinkValidator struct {
	client  Doer
	timeout time.Duration
}

// NewLinkValidator creates a link validator around the given HTTP client.
// A nil client falls back to http.DefaultClient; a zero timeout falls
// back to DefaultProbeTimeout.
func NewLinkValidator(client Doer, timeout time.Duration) *LinkValidator {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &LinkValidator{client: client, timeout: timeout}
}

// findLink returns the first URL-like token in text, skipping tokens that
// look like email addresses. Empty means no link.
func findLink(text string) string {
	for _, token := range linkPattern.FindAllString(text, -1) {
		if strings.Contains(token, "@") {
			continue
		}
		return token
	}
	return ""
}

// standardizeURL prepends a scheme when the matched token has none.
func standardizeURL(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "http://" + url
}

// probe issues one HEAD request and reports the status code. Exactly one
// attempt is made; slow hosts fail on the configured timeout.
func (v *LinkValidator) probe(ctx context.Context, url string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// ContainsLink reports whether the text contains a URL-like token.
// No probe is made.
func (v *LinkValidator) ContainsLink(_ context.Context, text string, _ map[string]any) (*Verdict, error) {
	if findLink(text) == "" {
		return Fail("No link found in output"), nil
	}
	return Pass("Link found in output"), nil
}

// ContainsValidLink requires a link that answers the probe with 200.
// A text without any link fails.
func (v *LinkValidator) ContainsValidLink(ctx context.Context, text string, _ map[string]any) (*Verdict, error) {
	link := findLink(text)
	if link == "" {
		return Fail("no link found in output"), nil
	}
	return v.probeVerdict(ctx, link), nil
}

// NoInvalidLinks requires that any link present answers the probe with
// 200. A text without any link passes: no link is not an invalid link.
func (v *LinkValidator) NoInvalidLinks(ctx context.Context, text string, _ map[string]any) (*Verdict, error) {
	link := findLink(text)
	if link == "" {
		return Pass("no invalid link found in output"), nil
	}
	return v.probeVerdict(ctx, link), nil
}

func (v *LinkValidator) probeVerdict(ctx context.Context, link string) *Verdict {
	status, err := v.probe(ctx, standardizeURL(link))
	if err != nil {
		return &Verdict{
			Result:  false,
			Reason:  fmt.Sprintf("link %s found in output but is invalid", link),
			Details: map[string]any{"probe_error": err.Error()},
		}
	}
	if status != http.StatusOK {
		return &Verdict{
			Result:  false,
			Reason:  fmt.Sprintf("link %s found in output but is invalid (status %d)", link, status),
			Details: map[string]any{"status": status},
		}
	}
	return Pass(fmt.Sprintf("link %s found in output and is valid", link))
}
