// Copyright (c) 2019 Palantir Technologies. All rights reserved.
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

package httpclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinURIAndPath(t *testing.T) {
	for _, test := range []struct {
		name     string
		baseURI  string
		reqPath  string
		expected string
	}{
		{"root path", "https://localhost", "/api", "https://localhost/api"},
		{"port", "https://localhost:443", "/api", "https://localhost:443/api"},
		{"relative path", "https://localhost:443", "api", "https://localhost:443/api"},
		{"trailing slash on base", "https://localhost:443/", "api", "https://localhost:443/api"},
		{"base with path", "https://localhost:443/foo/", "/api", "https://localhost:443/foo/api"},
		{"repeated slashes", "https://localhost:443/foo//////", "////api/", "https://localhost:443/foo/api/"},
		{"prepared query", "https://localhost/v1", "/users?term=a%20b&limit=10", "https://localhost/v1/users?term=a%20b&limit=10"},
		{"unresolved placeholder", "https://localhost", "/users/:id", "https://localhost/users/:id"},
		{"empty path", "https://localhost/v1/", "", "https://localhost/v1/"},
	} {
		t.Run(test.name, func(t *testing.T) {
			actual, err := joinURIAndPath(test.baseURI, test.reqPath)
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestJoinURIAndPath_Errors(t *testing.T) {
	for _, test := range []struct {
		name    string
		baseURI string
		reqPath string
	}{
		{"empty base", "", "/api"},
		{"invalid escape", "https://localhost", "/users/%zz"},
		{"control character", "https://local\x7fhost", "/api"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := joinURIAndPath(test.baseURI, test.reqPath)
			assert.Error(t, err)
		})
	}
}
