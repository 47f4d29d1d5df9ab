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
	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/conjure-go-endpoint/internal/errors"
)

func newError(errorType errors.ErrorType, msg string, params ...werror.Param) error {
	return werror.Error(msg, append(params, werror.SafeParam(errors.ErrorTypeParam, string(errorType)))...)
}

func hasErrorType(err error, errorType errors.ErrorType) bool {
	if err == nil {
		return false
	}
	v, ok := werror.ParamFromError(err, errors.ErrorTypeParam)
	if !ok {
		return false
	}
	s, ok := v.(string)
	return ok && s == string(errorType)
}

// IsInvalidContract returns true if err was produced by a failed contract or descriptor check.
func IsInvalidContract(err error) bool {
	return hasErrorType(err, errors.InvalidContract)
}

// IsMissingParameter returns true if err was produced by strict rendering of a template
// whose placeholders were not all supplied.
func IsMissingParameter(err error) bool {
	return hasErrorType(err, errors.MissingParameter)
}

// IsEndpointMismatch returns true if err reports a route literal that differs from its contract.
func IsEndpointMismatch(err error) bool {
	return hasErrorType(err, errors.EndpointMismatch)
}

// IsInvalidManifest returns true if err was produced while loading or validating a route manifest.
func IsInvalidManifest(err error) bool {
	return hasErrorType(err, errors.InvalidManifest)
}

// Problems returns the individual findings attached to a contract or manifest validation error.
func Problems(err error) []string {
	if err == nil {
		return nil
	}
	v, ok := werror.ParamFromError(err, problemsParam)
	if !ok {
		return nil
	}
	problems, _ := v.([]string)
	return problems
}

const problemsParam = "problems"

// ErrorTypeOf returns the classification attached to err by this package, or "" if none.
func ErrorTypeOf(err error) string {
	if err == nil {
		return ""
	}
	v, _ := werror.ParamFromError(err, errors.ErrorTypeParam)
	s, _ := v.(string)
	return s
}
