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
	"regexp"
	"strings"
)

// RegexOptions parameterizes the Regex operation.
type RegexOptions struct {
	Pattern string `json:"pattern"`
}

// KeywordsOptions parameterizes the ContainsAny, ContainsAll and
// ContainsNone operations.
type KeywordsOptions struct {
	Keywords   KeywordList `json:"keywords"`
	CaseOption `json:",squash"`
}

// ContainsOptions parameterizes the Contains operation.
type ContainsOptions struct {
	Keyword    string `json:"keyword"`
	CaseOption `json:",squash"`
}

// EqualsOptions parameterizes the Equals operation.
type EqualsOptions struct {
	ExpectedText string `json:"expected_text"`
	CaseOption   `json:",squash"`
}

// SubstringOptions parameterizes the StartsWith and EndsWith operations.
type SubstringOptions struct {
	Substring  string `json:"substring"`
	CaseOption `json:",squash"`
}

// LengthOptions parameterizes the length-bound operations.
type LengthOptions struct {
	MinLength int `json:"min_length"`
	MaxLength int `json:"max_length"`
}

var (
	containsEmailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	isEmailPattern       = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// prepareKeywords normalizes the keyword tokens and subject text for
// matching. Tokens are trimmed; unless case-sensitive, tokens and text
// are both lowercased.
func prepareKeywords(opts KeywordsOptions, text string) ([]string, string) {
	if !opts.CaseSensitive {
		text = strings.ToLower(text)
	}
	return opts.Keywords.Normalized(opts.CaseSensitive), text
}

func regexHandler(_ context.Context, text string, opts map[string]any) (*Verdict, error) {
	var p RegexOptions
	if err := decodeOptions(opts, &p); err != nil {
		return nil, err
	}
	re, err := regexp.Compile(p.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: bad regex pattern %q: %v", ErrInvalidInput, p.Pattern, err)
	}
	return matchRegex(re, p.Pattern, text), nil
}

func matchRegex(re *regexp.Regexp, pattern, text string) *Verdict {
	if re.MatchString(text) {
		return Pass(fmt.Sprintf("regex pattern %s found in output", pattern))
	}
	return Fail(fmt.Sprintf("regex pattern %s not found in output", pattern))
}

// containsAnyHandler passes when at least one keyword is present. Every
// token is evaluated so the reason can enumerate all matches.
func containsAnyHandler(_ context.Context, text string, opts map[string]any) (*Verdict, error) {
	var p KeywordsOptions
	if err := decodeOptions(opts, &p); err != nil {
		return nil, err
	}
	keywords, subject := prepareKeywords(p, text)

	var found []string
	for _, keyword := range keywords {
		if strings.Contains(subject, keyword) {
			found = append(found, keyword)
		}
	}

	if len(found) > 0 {
		return Pass("One or more keywords were found in output: " + strings.Join(found, ", ")), nil
	}
	return Fail("No keywords found in output"), nil
}

// containsAllHandler passes only when every keyword is present. Every
// token is evaluated so the reason can enumerate all misses.
func containsAllHandler(_ context.Context, text string, opts map[string]any) (*Verdict, error) {
	var p KeywordsOptions
	if err := decodeOptions(opts, &p); err != nil {
		return nil, err
	}
	keywords, subject := prepareKeywords(p, text)

	var missing []string
	for _, keyword := range keywords {
		if !strings.Contains(subject, keyword) {
			missing = append(missing, keyword)
		}
	}

	if len(missing) > 0 {
		return Fail("keywords not found in output: " + strings.Join(missing, ", ")), nil
	}
	return Pass(fmt.Sprintf("%d/%d keywords found in output", len(keywords), len(keywords))), nil
}

// containsNoneHandler passes only when no keyword is present.
func containsNoneHandler(_ context.Context, text string, opts map[string]any) (*Verdict, error) {
	var p KeywordsOptions
	if err := decodeOptions(opts, &p); err != nil {
		return nil, err
	}
	keywords, subject := prepareKeywords(p, text)

	var found []string
	for _, keyword := range keywords {
		if strings.Contains(subject, keyword) {
			found = append(found, keyword)
		}
	}

	if len(found) > 0 {
		return Fail("One or more keywords were found in output: " + strings.Join(found, ", ")), nil
	}
	return Pass("No keywords found in output"), nil
}

func containsHandler(_ context.Context, text string, opts map[string]any) (*Verdict, error) {
	var p ContainsOptions
	if err := decodeOptions(opts, &p); err != nil {
		return nil, err
	}
	keyword := p.Keyword
	if !p.CaseSensitive {
		keyword = strings.ToLower(keyword)
		text = strings.ToLower(text)
	}
	if !strings.Contains(text, keyword) {
		return Fail("keyword not found in output: " + keyword), nil
	}
	return Pass("keyword " + keyword + " found in output"), nil
}

func equalsHandler(_ context.Context, text string, opts map[string]any) (*Verdict, error) {
	var p EqualsOptions
	if err := decodeOptions(opts, &p); err != nil {
		return nil, err
	}
	expected := p.ExpectedText
	if !p.CaseSensitive {
		text = strings.ToLower(text)
		expected = strings.ToLower(expected)
	}
	if text == expected {
		return Pass("Text exactly matches expected text"), nil
	}
	return Fail("output does not exactly match expected text"), nil
}

func startsWithHandler(_ context.Context, text string, opts map[string]any) (*Verdict, error) {
	var p SubstringOptions
	if err := decodeOptions(opts, &p); err != nil {
		return nil, err
	}
	substring := p.Substring
	if !p.CaseSensitive {
		text = strings.ToLower(text)
		substring = strings.ToLower(substring)
	}
	if strings.HasPrefix(text, substring) {
		return Pass("output starts with " + substring), nil
	}
	return Fail("output does not start with " + substring), nil
}

func endsWithHandler(_ context.Context, text string, opts map[string]any) (*Verdict, error) {
	var p SubstringOptions
	if err := decodeOptions(opts, &p); err != nil {
		return nil, err
	}
	substring := p.Substring
	if !p.CaseSensitive {
		text = strings.ToLower(text)
		substring = strings.ToLower(substring)
	}
	if strings.HasSuffix(text, substring) {
		return Pass("output ends with " + substring), nil
	}
	return Fail("output does not end with " + substring), nil
}

func lengthLessThanHandler(_ context.Context, text string, opts map[string]any) (*Verdict, error) {
	var p LengthOptions
	if err := decodeOptions(opts, &p); err != nil {
		return nil, err
	}
	if len(text) < p.MaxLength {
		return Pass(fmt.Sprintf("output length is less than %d characters", p.MaxLength)), nil
	}
	return Fail(fmt.Sprintf("output length is greater than %d characters", p.MaxLength)), nil
}

func lengthGreaterThanHandler(_ context.Context, text string, opts map[string]any) (*Verdict, error) {
	var p LengthOptions
	if err := decodeOptions(opts, &p); err != nil {
		return nil, err
	}
	if len(text) > p.MinLength {
		return Pass(fmt.Sprintf("output length is greater than %d characters", p.MinLength)), nil
	}
	return Fail(fmt.Sprintf("output length is less than %d characters", p.MinLength)), nil
}

func lengthBetweenHandler(_ context.Context, text string, opts map[string]any) (*Verdict, error) {
	var p LengthOptions
	if err := decodeOptions(opts, &p); err != nil {
		return nil, err
	}
	if len(text) >= p.MinLength && len(text) <= p.MaxLength {
		return Pass(fmt.Sprintf("output length is between %d and %d characters", p.MinLength, p.MaxLength)), nil
	}
	return Fail(fmt.Sprintf("output length is not between %d and %d characters", p.MinLength, p.MaxLength)), nil
}

func oneLineHandler(_ context.Context, text string, _ map[string]any) (*Verdict, error) {
	if strings.Contains(text, "\n") || len(strings.Split(text, "\n")) > 1 {
		return Fail("output contains multiple lines"), nil
	}
	return Pass("output is a single line"), nil
}

func containsEmailHandler(_ context.Context, text string, _ map[string]any) (*Verdict, error) {
	return matchRegex(containsEmailPattern, containsEmailPattern.String(), text), nil
}

func isEmailHandler(_ context.Context, text string, _ map[string]any) (*Verdict, error) {
	return matchRegex(isEmailPattern, isEmailPattern.String(), text), nil
}
