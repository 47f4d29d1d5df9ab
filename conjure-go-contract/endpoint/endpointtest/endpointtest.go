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

// Package endpointtest provides assertions that check route declarations against their endpoint
// contracts from ordinary go tests, so a mismatched route literal fails the build's test step.
package endpointtest

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/endpoint"
)

// EndpointValidator is implemented by every endpoint.Contract and endpoint.Descriptor.
type EndpointValidator interface {
	ValidateEndpoint(literal string) (string, error)
}

// RequireValid fails the test immediately if any contract fails its registration-time checks.
func RequireValid(t require.TestingT, contracts ...endpoint.Described) {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	for _, c := range contracts {
		d := c.Descriptor()
		err := d.Validate()
		require.NoError(t, err, "contract %s: %v", d.Name, endpoint.Problems(err))
	}
}

// AssertEndpoint asserts that literal is exactly the template declared by c.
func AssertEndpoint(t assert.TestingT, c EndpointValidator, literal string) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	_, err := c.ValidateEndpoint(literal)
	return assert.NoError(t, err, "route literal %q does not match its contract", literal)
}

// AssertPrepared asserts that the contract renders params and query to expected.
func AssertPrepared(t assert.TestingT, c endpoint.Described, params, query endpoint.Record, expected string) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	actual, err := c.Descriptor().Prepare(params, query)
	if !assert.NoError(t, err) {
		return false
	}
	return assert.Equal(t, expected, actual)
}

// AssertRegistered asserts that every descriptor of want is registered in r with the same declaration.
func AssertRegistered(t assert.TestingT, r *endpoint.Registry, want ...endpoint.Described) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	ok := true
	for _, w := range want {
		d := w.Descriptor()
		got, found := r.Lookup(d.Name)
		if !assert.True(t, found, "contract %s is not registered", d.Name) {
			ok = false
			continue
		}
		ok = assert.Equal(t, d.Method, got.Method, d.Name) && ok
		ok = assert.Equal(t, d.Endpoint, got.Endpoint, d.Name) && ok
	}
	return ok
}
