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
	"io"
	"net/url"
	"reflect"

	"github.com/gorilla/schema"
	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/envelope"
)

// Contract is the typed declaration of one endpoint. P, Q and B are the Params, Query and Body
// shapes; S and F are the success and fail response shapes. None marks an absent position.
// A Contract is immutable; Named and WithMissingPolicy return modified copies.
type Contract[P, Q, B, S, F any] struct {
	desc Descriptor
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func newContract[P, Q, B, S, F any](method Method, flavor Flavor, template string) Contract[P, Q, B, S, F] {
	d := Descriptor{
		Name:     DefaultName(method, template),
		Method:   method,
		Endpoint: template,
		Flavor:   flavor,
		HasBody:  typeOf[B]() != noneType,
		Missing:  LeaveUnresolved,
	}
	if typeOf[S]() != noneType {
		d.Response = TaggedResponse()
	}
	var err error
	if d.Params, err = FieldsOf(typeOf[P]()); err != nil {
		d.err = werror.Wrap(err, "invalid params shape")
	} else if d.Query, err = FieldsOf(typeOf[Q]()); err != nil {
		d.err = werror.Wrap(err, "invalid query shape")
	} else if d.Body, err = FieldsOf(typeOf[B]()); err != nil {
		d.err = werror.Wrap(err, "invalid body shape")
	}
	return Contract[P, Q, B, S, F]{desc: d}
}

// Get declares an opinionated GET contract whose success envelope wraps T.
func Get[P, Q, T any](template string) Contract[P, Q, None, envelope.Success[T], envelope.Fail] {
	return newContract[P, Q, None, envelope.Success[T], envelope.Fail](MethodGet, Opinionated, template)
}

// Head declares a HEAD contract. HEAD responses carry no body in either flavor.
func Head[P, Q any](template string) Contract[P, Q, None, None, None] {
	return newContract[P, Q, None, None, None](MethodHead, Opinionated, template)
}

// Post declares an opinionated POST contract with body B whose success envelope wraps T.
func Post[P, Q, B, T any](template string) Contract[P, Q, B, envelope.Success[T], envelope.Fail] {
	return newContract[P, Q, B, envelope.Success[T], envelope.Fail](MethodPost, Opinionated, template)
}

// Put declares an opinionated PUT contract with body B whose success envelope wraps T.
func Put[P, Q, B, T any](template string) Contract[P, Q, B, envelope.Success[T], envelope.Fail] {
	return newContract[P, Q, B, envelope.Success[T], envelope.Fail](MethodPut, Opinionated, template)
}

// Patch declares an opinionated PATCH contract with body B whose success envelope wraps T.
func Patch[P, Q, B, T any](template string) Contract[P, Q, B, envelope.Success[T], envelope.Fail] {
	return newContract[P, Q, B, envelope.Success[T], envelope.Fail](MethodPatch, Opinionated, template)
}

// Delete declares an opinionated DELETE contract. DELETE contracts never carry a body.
func Delete[P, Q, T any](template string) Contract[P, Q, None, envelope.Success[T], envelope.Fail] {
	return newContract[P, Q, None, envelope.Success[T], envelope.Fail](MethodDelete, Opinionated, template)
}

// GetMeek declares a GET contract whose success and fail shapes are S and F.
func GetMeek[P, Q, S, F any](template string) Contract[P, Q, None, S, F] {
	return newContract[P, Q, None, S, F](MethodGet, Meek, template)
}

func HeadMeek[P, Q any](template string) Contract[P, Q, None, None, None] {
	return newContract[P, Q, None, None, None](MethodHead, Meek, template)
}

func PostMeek[P, Q, B, S, F any](template string) Contract[P, Q, B, S, F] {
	return newContract[P, Q, B, S, F](MethodPost, Meek, template)
}

func PutMeek[P, Q, B, S, F any](template string) Contract[P, Q, B, S, F] {
	return newContract[P, Q, B, S, F](MethodPut, Meek, template)
}

func PatchMeek[P, Q, B, S, F any](template string) Contract[P, Q, B, S, F] {
	return newContract[P, Q, B, S, F](MethodPatch, Meek, template)
}

func DeleteMeek[P, Q, S, F any](template string) Contract[P, Q, None, S, F] {
	return newContract[P, Q, None, S, F](MethodDelete, Meek, template)
}

// Named returns a copy of c registered under name.
func (c Contract[P, Q, B, S, F]) Named(name string) Contract[P, Q, B, S, F] {
	c.desc.Name = name
	return c
}

// WithMissingPolicy returns a copy of c that prepares URLs under policy.
func (c Contract[P, Q, B, S, F]) WithMissingPolicy(policy MissingPolicy) Contract[P, Q, B, S, F] {
	c.desc.Missing = policy
	return c
}

func (c Contract[P, Q, B, S, F]) Descriptor() Descriptor {
	d := c.desc
	d.Params = append(Fields(nil), d.Params...)
	d.Query = append(Fields(nil), d.Query...)
	d.Body = append(Fields(nil), d.Body...)
	return d
}

func (c Contract[P, Q, B, S, F]) Name() string {
	return c.desc.Name
}

func (c Contract[P, Q, B, S, F]) Endpoint() string {
	return c.desc.Endpoint
}

func (c Contract[P, Q, B, S, F]) Method() Method {
	return c.desc.Method
}

func (c Contract[P, Q, B, S, F]) Validate() error {
	return c.desc.Validate()
}

// ValidateEndpoint returns literal, with an error when it is not exactly the contract's template.
func (c Contract[P, Q, B, S, F]) ValidateEndpoint(literal string) (string, error) {
	return c.desc.ValidateEndpoint(literal)
}

// MustValidateEndpoint is ValidateEndpoint for package-level route declarations; it panics on mismatch.
func (c Contract[P, Q, B, S, F]) MustValidateEndpoint(literal string) string {
	out, err := c.ValidateEndpoint(literal)
	if err != nil {
		panic(err)
	}
	return out
}

// Prepare renders the request URL path and query for params and query.
func (c Contract[P, Q, B, S, F]) Prepare(params P, query Q) (string, error) {
	p, err := RecordOf(params)
	if err != nil {
		return "", werror.Wrap(err, "failed to read params", werror.SafeParam("name", c.desc.Name))
	}
	q, err := RecordOf(query)
	if err != nil {
		return "", werror.Wrap(err, "failed to read query", werror.SafeParam("name", c.desc.Name))
	}
	return c.desc.Prepare(p, q)
}

// DecodeResponse reads a response envelope and discriminates it on its state tag.
func (c Contract[P, Q, B, S, F]) DecodeResponse(r io.Reader) (envelope.Union[S, F], error) {
	return envelope.Decode[S, F](r)
}

// ParseQuery decodes request query values into the contract's query shape. It is the inverse of
// the query half of Prepare, for servers and test fakes serving the contract.
func (c Contract[P, Q, B, S, F]) ParseQuery(values url.Values) (Q, error) {
	var q Q
	if typeOf[Q]() == noneType {
		return q, nil
	}
	if err := queryDecoder.Decode(&q, values); err != nil {
		return q, werror.Wrap(err, "failed to decode query", werror.SafeParam("name", c.desc.Name))
	}
	return q, nil
}

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("json")
	d.IgnoreUnknownKeys(true)
	return d
}
