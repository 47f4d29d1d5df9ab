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
	"fmt"

	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/conjure-go-endpoint/internal/errors"
)

// Flavor selects how much of a contract's response envelope the caller defines.
type Flavor string

const (
	// Opinionated contracts fix the envelope (request id, state tag, error map); the caller
	// defines only the success body.
	Opinionated Flavor = "opinionated"
	// Meek contracts let the caller define the complete success and fail shapes.
	Meek Flavor = "meek"
)

const (
	StateField = "state"
	SuccessTag = "success"
	FailTag    = "fail"
)

// Response describes the response side of a contract.
type Response struct {
	HasBody    bool   `json:"hasBody" yaml:"has-body"`
	TagField   string `json:"tagField,omitempty" yaml:"tag-field,omitempty"`
	SuccessTag string `json:"successTag,omitempty" yaml:"success-tag,omitempty"`
	FailTag    string `json:"failTag,omitempty" yaml:"fail-tag,omitempty"`
}

// TaggedResponse is the response of every contract whose method returns a body.
func TaggedResponse() Response {
	return Response{HasBody: true, TagField: StateField, SuccessTag: SuccessTag, FailTag: FailTag}
}

// Descriptor is the runtime declaration of one endpoint: everything a typed Contract captures,
// as plain data that can be validated, registered, listed and written to a manifest.
type Descriptor struct {
	Name     string        `json:"name"`
	Method   Method        `json:"method"`
	Endpoint string        `json:"endpoint"`
	Flavor   Flavor        `json:"flavor"`
	Params   Fields        `json:"params,omitempty"`
	Query    Fields        `json:"query,omitempty"`
	Body     Fields        `json:"body,omitempty"`
	HasBody  bool          `json:"hasBody"`
	Response Response      `json:"response"`
	Missing  MissingPolicy `json:"missing,omitempty"`

	err error
}

// Described is implemented by anything that can report its Descriptor, including every Contract.
type Described interface {
	Descriptor() Descriptor
}

// Descriptor returns d itself so hand-built descriptors can be registered directly.
func (d Descriptor) Descriptor() Descriptor {
	return d
}

func (d Descriptor) Template() Template {
	return ParseTemplate(d.Endpoint)
}

// DefaultName is the name given to contracts that are not explicitly named, e.g. "GET /users/:id".
func DefaultName(method Method, template string) string {
	return fmt.Sprintf("%s %s", method, template)
}

// UnusedParams returns the Params fields that no placeholder of the template refers to.
func (d Descriptor) UnusedParams() []string {
	used := make(map[string]struct{})
	for _, name := range d.Template().Placeholders() {
		used[name] = struct{}{}
	}
	var unused []string
	for _, f := range d.Params {
		if _, ok := used[f.Name]; !ok {
			unused = append(unused, f.Name)
		}
	}
	return unused
}

// Validate performs the registration-time checks that a static type system would otherwise
// perform at compile time.
func (d Descriptor) Validate() error {
	if d.err != nil {
		return werror.Wrap(d.err, "endpoint contract could not be built",
			werror.SafeParam("name", d.Name),
			werror.SafeParam(errors.ErrorTypeParam, string(errors.InvalidContract)))
	}
	var problems []string
	if !d.Method.IsValid() {
		problems = append(problems, fmt.Sprintf("unsupported method %q", d.Method))
	}
	if d.Endpoint == "" {
		problems = append(problems, "endpoint template is empty")
	}
	switch d.Flavor {
	case Opinionated, Meek:
	default:
		problems = append(problems, fmt.Sprintf("unknown envelope flavor %q", d.Flavor))
	}
	switch d.Missing {
	case "", LeaveUnresolved, FailOnMissing:
	default:
		problems = append(problems, fmt.Sprintf("unknown missing placeholder policy %q", d.Missing))
	}
	for _, name := range d.Template().Placeholders() {
		if _, ok := d.Params.Lookup(name); !ok {
			problems = append(problems, fmt.Sprintf("placeholder :%s has no params field", name))
		}
	}
	if d.HasBody && !d.Method.AllowsBody() {
		problems = append(problems, fmt.Sprintf("%s contracts cannot declare a body", d.Method))
	}
	if !d.HasBody && len(d.Body) > 0 {
		problems = append(problems, "body fields declared without a body")
	}
	if d.Method.IsValid() && d.Method.AllowsBody() && !d.HasBody {
		problems = append(problems, fmt.Sprintf("%s contracts require a body", d.Method))
	}
	if d.Response.HasBody && !d.Method.HasResponseBody() {
		problems = append(problems, fmt.Sprintf("%s contracts cannot declare a response body", d.Method))
	}
	if d.Response.HasBody && d.Response.TagField == "" {
		problems = append(problems, "response tag field is empty")
	}
	if d.Response.HasBody && (d.Response.SuccessTag == "" || d.Response.SuccessTag == d.Response.FailTag) {
		problems = append(problems, "response success and fail tags must be distinct and non-empty")
	}
	for _, section := range []struct {
		name   string
		fields Fields
	}{
		{"params", d.Params},
		{"query", d.Query},
		{"body", d.Body},
	} {
		problems = append(problems, fieldProblems(section.name, section.fields)...)
	}
	if len(problems) == 0 {
		return nil
	}
	return newError(errors.InvalidContract, "invalid endpoint contract",
		werror.SafeParam("name", d.Name),
		werror.SafeParam("method", string(d.Method)),
		werror.UnsafeParam("endpoint", d.Endpoint),
		werror.SafeParam(problemsParam, problems))
}

func fieldProblems(section string, fields Fields) []string {
	var problems []string
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			problems = append(problems, fmt.Sprintf("%s field has no name", section))
			continue
		}
		if _, ok := seen[f.Name]; ok {
			problems = append(problems, fmt.Sprintf("%s field %q is declared twice", section, f.Name))
		}
		seen[f.Name] = struct{}{}
		switch f.Kind {
		case KindString, KindNumber, KindBoolean:
		default:
			problems = append(problems, fmt.Sprintf("%s field %q has non-scalar kind %q", section, f.Name, f.Kind))
		}
	}
	return problems
}

// Prepare renders the descriptor's endpoint under its missing placeholder policy.
func (d Descriptor) Prepare(params, query Record) (string, error) {
	return d.Missing.Prepare(d.Endpoint, params, query)
}

// ValidateEndpoint returns literal, or an endpoint-mismatch error when literal is not the
// descriptor's template.
func (d Descriptor) ValidateEndpoint(literal string) (string, error) {
	if literal != d.Endpoint {
		return literal, newError(errors.EndpointMismatch, "route literal does not match its endpoint contract",
			werror.SafeParam("name", d.Name),
			werror.UnsafeParam("literal", literal),
			werror.UnsafeParam("endpoint", d.Endpoint))
	}
	return literal, nil
}
