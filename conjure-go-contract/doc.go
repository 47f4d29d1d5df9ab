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

// Package contract and its subpackages declare REST endpoint contracts: the method, path
// template and request shapes of each endpoint a client calls, together with the response
// envelopes it returns.
//
// A contract is declared once, next to the types it uses:
//
//	var GetUser = endpoint.Get[UserParams, endpoint.None, User]("/users/:id").Named("getUser")
//
// Call sites check their route literal against it once (endpoint.Contract.ValidateEndpoint or the
// endpointtest helpers), render request URLs with Prepare, hand the URL to their own HTTP
// transport, and branch on the decoded envelope with envelope.IsFail.
//
// These packages never perform requests and never check runtime values against the declared
// shapes; the flavor types offer opt-in validation for callers that want it.
package contract
