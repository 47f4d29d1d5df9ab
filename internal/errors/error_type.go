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

package errors

// ErrorType provides high-level categories for the errors returned while declaring and preparing endpoints.
type ErrorType string

const (
	// InvalidContract groups errors raised when a contract or descriptor fails registration-time checks,
	// such as a placeholder without a matching parameter or a body declared on a GET.
	InvalidContract ErrorType = "invalid-contract"

	// MissingParameter groups errors raised by strict rendering when a placeholder has no value.
	MissingParameter ErrorType = "missing-parameter"

	// EndpointMismatch groups errors raised when a declared route literal differs from its contract.
	EndpointMismatch ErrorType = "endpoint-mismatch"

	// InvalidManifest groups errors raised while loading route manifests or OpenAPI documents.
	InvalidManifest ErrorType = "invalid-manifest"

	// RESTError groups errors built from HTTP responses that did not carry a response envelope.
	RESTError ErrorType = "rest-error"

	ErrorTypeParam = "_errorType"
)
