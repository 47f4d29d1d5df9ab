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

package endpoint

import (
	"strings"

	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/conjure-go-endpoint/internal/errors"
)

// MissingPolicy decides what rendering does with a placeholder that has no parameter value.
type MissingPolicy string

const (
	// LeaveUnresolved writes the ":name" token back into the path unchanged.
	LeaveUnresolved MissingPolicy = "leave"
	// FailOnMissing returns a missing-parameter error naming every unresolved placeholder.
	FailOnMissing MissingPolicy = "fail"
)

// ParseMissingPolicy parses a policy name. The empty string selects LeaveUnresolved.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch p := MissingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return LeaveUnresolved, nil
	case LeaveUnresolved, FailOnMissing:
		return p, nil
	}
	return "", newError(errors.InvalidContract, "unknown missing placeholder policy", werror.SafeParam("policy", s))
}

// RenderPath substitutes params into template. Placeholders without a value are left untouched.
func RenderPath(template string, params Record) string {
	path, _ := ParseTemplate(template).Render(params)
	return path
}

// RenderPathStrict is RenderPath that fails when any placeholder has no value.
func RenderPathStrict(template string, params Record) (string, error) {
	path, missing := ParseTemplate(template).Render(params)
	if len(missing) > 0 {
		return "", newError(errors.MissingParameter, "path template has placeholders without parameter values",
			werror.UnsafeParam("endpoint", template),
			werror.SafeParam("missing", missing))
	}
	return path, nil
}

// PrepareEndpoint renders template with params and appends the encoded query.
func PrepareEndpoint(template string, params, query Record) string {
	return RenderPath(template, params) + RenderQuery(query)
}

// PrepareEndpointStrict is PrepareEndpoint that fails when any placeholder has no value.
func PrepareEndpointStrict(template string, params, query Record) (string, error) {
	path, err := RenderPathStrict(template, params)
	if err != nil {
		return "", err
	}
	return path + RenderQuery(query), nil
}

// Prepare renders a URL under the given policy.
func (p MissingPolicy) Prepare(template string, params, query Record) (string, error) {
	if p == FailOnMissing {
		return PrepareEndpointStrict(template, params, query)
	}
	return PrepareEndpoint(template, params, query), nil
}

// ValidateEndpoint returns literal unchanged. Checking a literal against its declaration is done
// by Contract.ValidateEndpoint, Registry.ValidateEndpoint and the endpointtest helpers.
func ValidateEndpoint(literal string) string {
	return literal
}
