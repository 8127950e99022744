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

// Operation identifies a named check over text or JSON.
type Operation string

const (
	// Text matchers

	// OpRegex passes when a regex pattern matches the subject text.
	OpRegex Operation = "Regex"

	// OpContainsAny passes when at least one keyword appears in the text.
	OpContainsAny Operation = "ContainsAny"

	// OpContainsAll passes when every keyword appears in the text.
	OpContainsAll Operation = "ContainsAll"

	// OpContains passes when a single keyword appears in the text.
	OpContains Operation = "Contains"

	// OpContainsNone passes when no keyword appears in the text.
	OpContainsNone Operation = "ContainsNone"

	// OpEquals passes when the text exactly matches an expected text.
	OpEquals Operation = "Equals"

	// OpStartsWith passes when the text starts with a substring.
	OpStartsWith Operation = "StartsWith"

	// OpEndsWith passes when the text ends with a substring.
	OpEndsWith Operation = "EndsWith"

	// OpLengthLessThan passes when the text is shorter than a maximum.
	OpLengthLessThan Operation = "LengthLessThan"

	// OpLengthGreaterThan passes when the text is longer than a minimum.
	OpLengthGreaterThan Operation = "LengthGreaterThan"

	// OpLengthBetween passes when the text length is within inclusive bounds.
	OpLengthBetween Operation = "LengthBetween"

	// OpOneLine passes when the text contains no line breaks.
	OpOneLine Operation = "OneLine"

	// OpContainsEmail passes when the text contains an email address.
	OpContainsEmail Operation = "ContainsEmail"

	// OpIsEmail passes when the entire text is a valid email address.
	OpIsEmail Operation = "IsEmail"

	// JSON detection

	// OpIsJson passes when the entire text parses as JSON.
	OpIsJson Operation = "IsJson"

	// OpContainsJson passes when the text contains a parseable JSON
	// fragment, possibly embedded in surrounding prose.
	OpContainsJson Operation = "ContainsJson"

	// Link checks

	// OpContainsLink passes when the text contains a URL-like token.
	// No network probe is made.
	OpContainsLink Operation = "ContainsLink"

	// OpContainsValidLink passes when the text contains a URL-like token
	// that answers a HEAD probe with status 200. Absence of a link fails.
	OpContainsValidLink Operation = "ContainsValidLink"

	// OpNoInvalidLinks passes when the text contains no unreachable link.
	// Absence of a link passes: no link is not an invalid link.
	OpNoInvalidLinks Operation = "NoInvalidLinks"

	// Remote and structured checks

	// OpApiCall delegates grading to an external HTTP endpoint that
	// returns a verdict of its own.
	OpApiCall Operation = "ApiCall"

	// OpJsonEval validates two JSON documents against a schema and
	// compares values at JSON paths using swappable strategies.
	OpJsonEval Operation = "JsonEval"
)

// AllOperations returns the closed catalog of built-in operations.
func AllOperations() []Operation {
	return []Operation{
		OpRegex,
		OpContainsAny,
		OpContainsAll,
		OpContains,
		OpContainsNone,
		OpEquals,
		OpStartsWith,
		OpEndsWith,
		OpLengthLessThan,
		OpLengthGreaterThan,
		OpLengthBetween,
		OpOneLine,
		OpContainsEmail,
		OpIsEmail,
		OpIsJson,
		OpContainsJson,
		OpContainsLink,
		OpContainsValidLink,
		OpNoInvalidLinks,
		OpApiCall,
		OpJsonEval,
	}
}

// String returns the wire name of the operation.
func (o Operation) String() string {
	return string(o)
}

// RequiresNetwork reports whether the operation issues outbound requests.
// JsonEval is excluded here: it only touches the network when its
// validation plan uses a similarity strategy.
func (o Operation) RequiresNetwork() bool {
	switch o {
	case OpContainsValidLink, OpNoInvalidLinks, OpApiCall:
		return true
	default:
		return false
	}
}

// IsStructured reports whether the operation consumes JSON documents
// rather than plain text.
func (o Operation) IsStructured() bool {
	return o == OpJsonEval
}
