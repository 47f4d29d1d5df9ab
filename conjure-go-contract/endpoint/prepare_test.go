// Copyright (c) 2026 Palantir Technologies. All rights reserved.
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

package endpoint_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/endpoint"
)

func TestPrepareEndpoint(t *testing.T) {
	for _, test := range []struct {
		name     string
		template string
		params   endpoint.Record
		query    endpoint.Record
		expected string
	}{
		{
			name:     "single placeholder",
			template: "some/end/:point",
			params:   endpoint.NewRecord(endpoint.Pair("point", 1)),
			expected: "some/end/1",
		},
		{
			name:     "params in a different order than the template with a query",
			template: "/some/:end/:point/:url",
			params: endpoint.NewRecord(
				endpoint.Pair("point", 2),
				endpoint.Pair("end", "yes"),
				endpoint.Pair("url", true),
			),
			query: endpoint.NewRecord(
				endpoint.Pair("one", "multi word input"),
				endpoint.Pair("two", 2),
				endpoint.Pair("three", false),
			),
			expected: "/some/yes/2/true?one=multi%20word%20input&two=2&three=false",
		},
		{
			name:     "query without params",
			template: "this/is/a",
			query: endpoint.NewRecord(
				endpoint.Pair("multi", 2),
				endpoint.Pair("param", "pr"),
				endpoint.Pair("endpoint", false),
			),
			expected: "this/is/a?multi=2&param=pr&endpoint=false",
		},
		{
			name:     "no placeholders and no arguments",
			template: "some/end/point",
			expected: "some/end/point",
		},
		{
			name:     "empty params and query",
			template: "/users/:id",
			params:   endpoint.Record{},
			query:    endpoint.Record{},
			expected: "/users/:id",
		},
		{
			name:     "placeholder that prefixes a longer placeholder",
			template: "/items/:id/:identifier",
			params: endpoint.NewRecord(
				endpoint.Pair("id", "7"),
				endpoint.Pair("identifier", "abc"),
			),
			expected: "/items/7/abc",
		},
		{
			name:     "repeated placeholder",
			template: "/:tenant/users/:tenant",
			params:   endpoint.NewRecord(endpoint.Pair("tenant", "acme")),
			expected: "/acme/users/acme",
		},
		{
			name:     "path values are inserted verbatim",
			template: "/files/:name",
			params:   endpoint.NewRecord(endpoint.Pair("name", "a b/c")),
			expected: "/files/a b/c",
		},
		{
			name:     "colons that do not start a name are literal",
			template: "http://host:8080/a::b/:id",
			params:   endpoint.NewRecord(endpoint.Pair("id", 3)),
			expected: "http://host:8080/a::b/3",
		},
		{
			name:     "placeholder ends at a non-name character",
			template: "/reports/:id.json",
			params:   endpoint.NewRecord(endpoint.Pair("id", 12)),
			expected: "/reports/12.json",
		},
		{
			name:     "unmatched placeholder is left in place",
			template: "/users/:id/posts/:postId",
			params:   endpoint.NewRecord(endpoint.Pair("id", 1)),
			expected: "/users/1/posts/:postId",
		},
		{
			name:     "query keys and values are escaped",
			template: "/search",
			query: endpoint.NewRecord(
				endpoint.Pair("q&a", "x=y+z"),
				endpoint.Pair("path", "a/b?c#d"),
				endpoint.Pair("keep", "-_.!~*'()"),
				endpoint.Pair("name", "Zoë"),
			),
			expected: "/search?q%26a=x%3Dy%2Bz&path=a%2Fb%3Fc%23d&keep=-_.!~*'()&name=Zo%C3%AB",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, endpoint.PrepareEndpoint(test.template, test.params, test.query))
		})
	}
}

func TestRenderPath(t *testing.T) {
	assert.Equal(t, "some/end/1", endpoint.RenderPath("some/end/:point", endpoint.NewRecord(endpoint.Pair("point", 1))))
	assert.Equal(t, "/a/:b", endpoint.RenderPath("/a/:b", nil))
	assert.Equal(t, "/users/7/posts", endpoint.RenderPath("/users/:user-id/posts", endpoint.NewRecord(
		endpoint.Pair("user", "wrong"),
		endpoint.Pair("user-id", 7),
	)))
}

func TestRenderPath_LiteralsPreservedInOrder(t *testing.T) {
	template := "/v1/:org/projects/:project/builds"
	out := endpoint.RenderPath(template, endpoint.NewRecord(
		endpoint.Pair("project", "p"),
		endpoint.Pair("org", "o"),
	))
	assert.Equal(t, "/v1/o/projects/p/builds", out)
	assert.NotContains(t, out, ":")
}

func TestRenderPathStrict(t *testing.T) {
	t.Run("all placeholders bound", func(t *testing.T) {
		out, err := endpoint.RenderPathStrict("/users/:id", endpoint.NewRecord(endpoint.Pair("id", 5)))
		require.NoError(t, err)
		assert.Equal(t, "/users/5", out)
	})
	t.Run("missing placeholders", func(t *testing.T) {
		_, err := endpoint.PrepareEndpointStrict("/users/:id/posts/:postId/:id", nil, nil)
		require.Error(t, err)
		assert.True(t, endpoint.IsMissingParameter(err))
		assert.False(t, endpoint.IsInvalidContract(err))
		assert.Equal(t, "missing-parameter", endpoint.ErrorTypeOf(err))
	})
}

func TestRenderQuery_Empty(t *testing.T) {
	assert.Equal(t, "", endpoint.RenderQuery(nil))
	assert.Equal(t, "", endpoint.RenderQuery(endpoint.Record{}))
}

func TestRenderQuery_RoundTrip(t *testing.T) {
	query := endpoint.NewRecord(
		endpoint.Pair("a&b", "c=d"),
		endpoint.Pair("space", "multi word input"),
		endpoint.Pair("plus", "1+1"),
		endpoint.Pair("percent", "100%"),
		endpoint.Pair("unicode", "日本"),
		endpoint.Pair("n", 2.5),
		endpoint.Pair("flag", true),
	)
	rendered := endpoint.RenderQuery(query)
	require.True(t, strings.HasPrefix(rendered, "?"))

	var decoded endpoint.Record
	for _, pair := range strings.Split(strings.TrimPrefix(rendered, "?"), "&") {
		k, v, ok := strings.Cut(pair, "=")
		require.True(t, ok, pair)
		key, err := url.PathUnescape(k)
		require.NoError(t, err)
		value, err := url.PathUnescape(v)
		require.NoError(t, err)
		decoded = append(decoded, endpoint.Entry{Key: key, Value: value})
	}
	assert.Equal(t, query, decoded)
}

func TestValidateEndpointIsIdentity(t *testing.T) {
	for _, literal := range []string{"", "/users/:id", "some/end/point", "::", "?a=b"} {
		assert.Equal(t, literal, endpoint.ValidateEndpoint(literal))
	}
}

func TestParseMissingPolicy(t *testing.T) {
	for _, test := range []struct {
		in       string
		expected endpoint.MissingPolicy
		wantErr  bool
	}{
		{"", endpoint.LeaveUnresolved, false},
		{"leave", endpoint.LeaveUnresolved, false},
		{"FAIL", endpoint.FailOnMissing, false},
		{"panic", "", true},
	} {
		t.Run(test.in, func(t *testing.T) {
			actual, err := endpoint.ParseMissingPolicy(test.in)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}
