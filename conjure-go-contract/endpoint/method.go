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

// Method is the HTTP verb a contract is declared for.
type Method string

const (
	MethodGet    Method = "GET"
	MethodHead   Method = "HEAD"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Methods lists every supported verb in declaration order.
var Methods = []Method{MethodGet, MethodHead, MethodPost, MethodPut, MethodPatch, MethodDelete}

// ParseMethod returns the Method named by s, ignoring case and surrounding space.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", newError(errors.InvalidContract, "unsupported HTTP method", werror.SafeParam("method", s))
	}
	return m, nil
}

func (m Method) String() string {
	return string(m)
}

// IsValid reports whether m is one of the supported verbs.
func (m Method) IsValid() bool {
	switch m {
	case MethodGet, MethodHead, MethodPost, MethodPut, MethodPatch, MethodDelete:
		return true
	}
	return false
}

// AllowsBody reports whether requests with this method may carry a body.
// DELETE is excluded so contracts stay usable against servers that reject DELETE bodies.
func (m Method) AllowsBody() bool {
	switch m {
	case MethodPost, MethodPut, MethodPatch:
		return true
	}
	return false
}

// HasResponseBody is false only for HEAD, whose responses carry headers alone.
func (m Method) HasResponseBody() bool {
	return m != MethodHead
}
