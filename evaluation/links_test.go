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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFindLink(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"https url", "see https://example.com/docs now", "https://example.com/docs"},
		{"bare domain", "visit example.com for info", "example.com"},
		{"www prefix", "go to www.example.org today", "www.example.org"},
		{"email skipped", "write to user@example.com", ""},
		{"email skipped then link", "user@example.com or example.org", "example.org"},
		{"no link", "nothing here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findLink(tt.text); got != tt.want {
				t.Errorf("findLink(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestStandardizeURL(t *testing.T) {
	if got := standardizeURL("example.com"); got != "http://example.com" {
		t.Errorf("got %q", got)
	}
	if got := standardizeURL("https://example.com"); got != "https://example.com" {
		t.Errorf("got %q", got)
	}
}

func TestContainsLink(t *testing.T) {
	v := NewLinkValidator(nil, 0)

	got, err := v.ContainsLink(context.Background(), "docs at https://example.com", nil)
	if err != nil {
		t.Fatalf("ContainsLink failed: %v", err)
	}
	if !got.Result || got.Reason != "Link found in output" {
		t.Errorf("got %+v, want pass", got)
	}

	got, err = v.ContainsLink(context.Background(), "no links", nil)
	if err != nil {
		t.Fatalf("ContainsLink failed: %v", err)
	}
	if got.Result || got.Reason != "No link found in output" {
		t.Errorf("got %+v, want fail", got)
	}
}

func TestContainsValidLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
	}))
	defer server.Close()

	v := NewLinkValidator(server.Client(), 0)

	got, err := v.ContainsValidLink(context.Background(), "link: "+server.URL, nil)
	if err != nil {
		t.Fatalf("ContainsValidLink failed: %v", err)
	}
	if !got.Result {
		t.Errorf("got %+v, want pass", got)
	}

	got, err = v.ContainsValidLink(context.Background(), "no links here", nil)
	if err != nil {
		t.Fatalf("ContainsValidLink failed: %v", err)
	}
	if got.Result || got.Reason != "no link found in output" {
		t.Errorf("got %+v, want fail on absence", got)
	}
}

func TestContainsValidLinkBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	v := NewLinkValidator(server.Client(), 0)

	got, err := v.ContainsValidLink(context.Background(), server.URL, nil)
	if err != nil {
		t.Fatalf("ContainsValidLink failed: %v", err)
	}
	if got.Result {
		t.Fatalf("got %+v, want fail", got)
	}
	if !strings.Contains(got.Reason, "invalid (status 404)") {
		t.Errorf("Reason = %q, want status in reason", got.Reason)
	}
	if got.Details["status"] != http.StatusNotFound {
		t.Errorf("Details = %v, want status 404", got.Details)
	}
}

func TestNoInvalidLinks(t *testing.T) {
	v := NewLinkValidator(nil, 0)

	// Absence of links passes: no link is not an invalid link.
	got, err := v.NoInvalidLinks(context.Background(), "no links at all", nil)
	if err != nil {
		t.Fatalf("NoInvalidLinks failed: %v", err)
	}
	if !got.Result || got.Reason != "no invalid link found in output" {
		t.Errorf("got %+v, want pass on absence", got)
	}
}

func TestNoInvalidLinksUnreachable(t *testing.T) {
	// A closed server yields a transport error, which must become a
	// failing verdict rather than a Go error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	v := NewLinkValidator(nil, 0)

	got, err := v.NoInvalidLinks(context.Background(), url, nil)
	if err != nil {
		t.Fatalf("NoInvalidLinks returned error: %v", err)
	}
	if got.Result {
		t.Fatalf("got %+v, want fail", got)
	}
	if got.Details["probe_error"] == nil {
		t.Errorf("Details = %v, want probe_error", got.Details)
	}
}
