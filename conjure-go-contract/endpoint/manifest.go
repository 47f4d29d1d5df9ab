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
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/codecs"
	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/flavor"
	interrors "github.com/palantir/conjure-go-endpoint/internal/errors"
	"github.com/palantir/conjure-go-endpoint/internal/validation"
)

// Manifest is the YAML form of a set of endpoint contracts, for services that declare their
// routes as configuration and for checking routes in CI.
//
//	missing-placeholders: fail
//	routes:
//	  - name: getUser
//	    method: GET
//	    endpoint: /users/:id
//	    params:
//	      - name: id
//	        type: uuid
type Manifest struct {
	MissingPlaceholders string  `json:"missing-placeholders,omitempty" yaml:"missing-placeholders,omitempty" validate:"omitempty,oneof=leave fail"`
	Routes              []Route `json:"routes" yaml:"routes" validate:"required,min=1,dive"`
}

// Route is one contract in a Manifest. Field lists keep their order.
type Route struct {
	Name     string          `json:"name" yaml:"name" validate:"required"`
	Method   string          `json:"method" yaml:"method" validate:"required"`
	Endpoint string          `json:"endpoint" yaml:"endpoint" validate:"required"`
	Flavor   string          `json:"flavor,omitempty" yaml:"flavor,omitempty" validate:"omitempty,oneof=opinionated meek"`
	Params   []ManifestField `json:"params,omitempty" yaml:"params,omitempty" validate:"dive"`
	Query    []ManifestField `json:"query,omitempty" yaml:"query,omitempty" validate:"dive"`
	Body     []ManifestField `json:"body,omitempty" yaml:"body,omitempty" validate:"dive"`
}

// ManifestField names a field and its type: string, number, boolean, or one of the flavors
// uuid, isoDate, mimetype and uint.
type ManifestField struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	Type string `json:"type" yaml:"type" validate:"required,oneof=string number boolean uuid isoDate mimetype uint"`
}

var manifestValidate = newManifestValidator()

func newManifestValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name, _, _ := strings.Cut(sf.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoadManifest decodes and validates a YAML manifest.
func LoadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := codecs.YAML.Decode(r, &m); err != nil {
		return Manifest{}, werror.Wrap(err, "failed to decode route manifest",
			werror.SafeParam(interrors.ErrorTypeParam, string(interrors.InvalidManifest)))
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks the manifest's structure. Contract-level checks run in Descriptors.
func (m Manifest) Validate() error {
	err := manifestValidate.Struct(m)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return werror.Wrap(err, "failed to validate route manifest",
			werror.SafeParam(interrors.ErrorTypeParam, string(interrors.InvalidManifest)))
	}
	problems := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		field := strings.TrimPrefix(ve.Namespace(), "Manifest.")
		problems = append(problems, field+": "+validation.Message(ve))
	}
	return newError(interrors.InvalidManifest, "invalid route manifest", werror.SafeParam(problemsParam, problems))
}

// Descriptors converts the manifest's routes into validated descriptors, in route order.
func (m Manifest) Descriptors() ([]Descriptor, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	policy, err := ParseMissingPolicy(m.MissingPlaceholders)
	if err != nil {
		return nil, err
	}
	out := make([]Descriptor, 0, len(m.Routes))
	for i, route := range m.Routes {
		d, err := route.descriptor(policy)
		if err == nil {
			err = d.Validate()
		}
		if err != nil {
			return nil, werror.Wrap(err, "invalid route in manifest",
				werror.SafeParam("route", route.Name),
				werror.SafeParam("index", i))
		}
		out = append(out, d)
	}
	return out, nil
}

func (r Route) descriptor(policy MissingPolicy) (Descriptor, error) {
	method, err := ParseMethod(r.Method)
	if err != nil {
		return Descriptor{}, err
	}
	envelopeFlavor := Flavor(r.Flavor)
	if envelopeFlavor == "" {
		envelopeFlavor = Opinionated
	}
	d := Descriptor{
		Name:     r.Name,
		Method:   method,
		Endpoint: r.Endpoint,
		Flavor:   envelopeFlavor,
		HasBody:  method.AllowsBody(),
		Missing:  policy,
	}
	if method.HasResponseBody() {
		d.Response = TaggedResponse()
	}
	if d.Params, err = manifestFields(r.Params); err != nil {
		return Descriptor{}, err
	}
	if d.Query, err = manifestFields(r.Query); err != nil {
		return Descriptor{}, err
	}
	if d.Body, err = manifestFields(r.Body); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

var manifestTypes = map[string]Field{
	"string":            {Kind: KindString},
	"number":            {Kind: KindNumber},
	"boolean":           {Kind: KindBoolean},
	flavor.NameUUID:     {Kind: KindString, Flavor: flavor.NameUUID},
	flavor.NameISODate:  {Kind: KindString, Flavor: flavor.NameISODate},
	flavor.NameMimeType: {Kind: KindString, Flavor: flavor.NameMimeType},
	flavor.NameUint:     {Kind: KindNumber, Flavor: flavor.NameUint},
}

func manifestFields(in []ManifestField) (Fields, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(Fields, 0, len(in))
	for _, mf := range in {
		f, ok := manifestTypes[mf.Type]
		if !ok {
			return nil, newError(interrors.InvalidManifest, "unknown field type",
				werror.SafeParam("field", mf.Name),
				werror.SafeParam("type", mf.Type))
		}
		f.Name = mf.Name
		out = append(out, f)
	}
	return out, nil
}

func manifestType(f Field) string {
	if f.Flavor != "" {
		return f.Flavor
	}
	return string(f.Kind)
}

// ManifestFromDescriptors builds the manifest form of descriptors, for example to publish the
// routes of a registry.
func ManifestFromDescriptors(policy MissingPolicy, descriptors ...Descriptor) Manifest {
	m := Manifest{Routes: make([]Route, 0, len(descriptors))}
	if policy == FailOnMissing {
		m.MissingPlaceholders = string(policy)
	}
	for _, d := range descriptors {
		m.Routes = append(m.Routes, Route{
			Name:     d.Name,
			Method:   string(d.Method),
			Endpoint: d.Endpoint,
			Flavor:   string(d.Flavor),
			Params:   toManifestFields(d.Params),
			Query:    toManifestFields(d.Query),
			Body:     toManifestFields(d.Body),
		})
	}
	return m
}

func toManifestFields(fields Fields) []ManifestField {
	if len(fields) == 0 {
		return nil
	}
	out := make([]ManifestField, len(fields))
	for i, f := range fields {
		out[i] = ManifestField{Name: f.Name, Type: manifestType(f)}
	}
	return out
}

// Marshal returns the manifest as YAML.
func (m Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := codecs.YAML.Encode(&buf, m); err != nil {
		return nil, werror.Wrap(err, "failed to encode route manifest")
	}
	return buf.Bytes(), nil
}

// Registry validates every route and registers it in a new Registry.
func (m Manifest) Registry(ctx context.Context) (*Registry, error) {
	descriptors, err := m.Descriptors()
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, d := range descriptors {
		if err := r.Register(ctx, d); err != nil {
			return nil, err
		}
	}
	return r, nil
}
