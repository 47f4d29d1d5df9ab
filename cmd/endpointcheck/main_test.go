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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestYAML = `missing-placeholders: leave
routes:
  - name: getUser
    method: GET
    endpoint: /users/:id
    params:
      - name: id
        type: uuid
  - name: searchUsers
    method: GET
    endpoint: /users
    query:
      - name: term
        type: string
      - name: limit
        type: number
  - name: auditUser
    method: GET
    endpoint: /audit
    params:
      - name: id
        type: string
`

const openAPIYAML = `openapi: 3.0.3
info: {title: Users, version: 1.0.0}
paths:
  /users/{id}:
    get:
      operationId: getUser
      parameters:
        - name: id
          in: path
          required: true
          schema: {type: string}
      responses:
        "200":
          description: ok
`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), err
}

func TestLint(t *testing.T) {
	manifest := writeFile(t, "routes.yml", manifestYAML)
	out, err := runCLI(t, "lint", manifest)
	require.NoError(t, err)
	assert.Contains(t, out, "warning: auditUser: params never used by /audit: id\n")
	assert.Contains(t, out, "3 routes ok\n")
}

func TestLint_Invalid(t *testing.T) {
	manifest := writeFile(t, "routes.yml", `routes:
  - name: getUser
    method: GET
    endpoint: /users/:id
`)
	_, err := runCLI(t, "lint", manifest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placeholder :id has no params field")
}

func TestPrepare(t *testing.T) {
	manifest := writeFile(t, "routes.yml", manifestYAML)
	for _, test := range []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "path params",
			args:     []string{"getUser", "--param", "id=6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
			expected: "/users/6ba7b810-9dad-11d1-80b4-00c04fd430c8\n",
		},
		{
			name:     "query order is kept",
			args:     []string{"searchUsers", "-q", "limit=10", "-q", "term=a b"},
			expected: "/users?limit=10&term=a%20b\n",
		},
		{
			name:     "missing placeholder is left",
			args:     []string{"getUser"},
			expected: "/users/:id\n",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			out, err := runCLI(t, append([]string{"prepare", manifest}, test.args...)...)
			require.NoError(t, err)
			assert.Equal(t, test.expected, out)
		})
	}

	_, err := runCLI(t, "prepare", manifest, "getUser", "--strict")
	assert.Error(t, err)
	_, err = runCLI(t, "prepare", manifest, "getUser", "--param", "id")
	assert.Error(t, err)
	_, err = runCLI(t, "prepare", manifest, "deleteUser")
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	document := writeFile(t, "openapi.yml", openAPIYAML)
	out, err := runCLI(t, "import", document, "--missing-placeholders", "fail")
	require.NoError(t, err)
	assert.Equal(t, `missing-placeholders: fail
routes:
- name: getUser
  method: GET
  endpoint: /users/:id
  flavor: meek
  params:
  - name: id
    type: string
`, out)

	manifest := writeFile(t, "routes.yml", out)
	out, err = runCLI(t, "lint", manifest)
	require.NoError(t, err)
	assert.Contains(t, out, "1 routes ok")
}
