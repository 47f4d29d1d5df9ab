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

// Package openapi imports endpoint descriptors from an OpenAPI 3 document so that existing API
// definitions can seed a route manifest.
package openapi

import (
	"context"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	werror "github.com/palantir/witchcraft-go-error"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/endpoint"
	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/flavor"
	"github.com/palantir/conjure-go-endpoint/internal/errors"
)

const contentTypeJSON = "application/json"

// Import loads an OpenAPI 3 document and returns one validated descriptor per GET, HEAD, POST,
// PUT, PATCH and DELETE operation, ordered by path and then by method in that order. Path
// templates are rewritten from "{name}" to ":name". Parameters and body properties that are not
// scalars are skipped, as are operations that do not form a valid contract.
func Import(ctx context.Context, data []byte) ([]endpoint.Descriptor, error) {
	if len(data) == 0 {
		return nil, invalidDocument(ctx, werror.Error("document is empty"))
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, invalidDocument(ctx, err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, invalidDocument(ctx, werror.Error("document does not contain any paths"))
	}

	items := doc.Paths.Map()
	paths := make([]string, 0, len(items))
	for path := range items {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var descriptors []endpoint.Descriptor
	for _, path := range paths {
		item := items[path]
		if item == nil {
			continue
		}
		for _, op := range []struct {
			method    endpoint.Method
			operation *openapi3.Operation
		}{
			{endpoint.MethodGet, item.Get},
			{endpoint.MethodHead, item.Head},
			{endpoint.MethodPost, item.Post},
			{endpoint.MethodPut, item.Put},
			{endpoint.MethodPatch, item.Patch},
			{endpoint.MethodDelete, item.Delete},
		} {
			if op.operation == nil {
				continue
			}
			d := descriptor(ctx, op.method, path, item.Parameters, op.operation)
			if err := d.Validate(); err != nil {
				svc1log.FromContext(ctx).Warn("Skipping operation that is not a valid contract.",
					svc1log.SafeParam("operation", d.Name),
					svc1log.SafeParam("problems", endpoint.Problems(err)),
					svc1log.Stacktrace(err))
				continue
			}
			descriptors = append(descriptors, d)
		}
	}
	if len(descriptors) == 0 {
		return nil, invalidDocument(ctx, werror.Error("document does not contain any valid operations"))
	}
	return descriptors, nil
}

func invalidDocument(ctx context.Context, err error) error {
	return werror.WrapWithContextParams(ctx, err, "failed to load OpenAPI document",
		werror.SafeParam(errors.ErrorTypeParam, string(errors.InvalidManifest)))
}

func descriptor(ctx context.Context, method endpoint.Method, path string, shared openapi3.Parameters, op *openapi3.Operation) endpoint.Descriptor {
	name := op.OperationID
	if name == "" {
		name = strings.ToLower(string(method)) + ":" + path
	}
	d := endpoint.Descriptor{
		Name:     name,
		Method:   method,
		Endpoint: Template(path),
		Flavor:   endpoint.Meek,
		HasBody:  method.AllowsBody(),
	}
	if method.HasResponseBody() {
		d.Response = endpoint.TaggedResponse()
		if isOpinionated(op.Responses) {
			d.Flavor = endpoint.Opinionated
		}
	}

	for _, ref := range mergeParameters(shared, op.Parameters) {
		field, ok := scalarField(ref.Name, ref.Schema)
		if !ok {
			svc1log.FromContext(ctx).Debug("Skipping non-scalar parameter.",
				svc1log.SafeParam("operation", name),
				svc1log.SafeParam("parameter", ref.Name))
			continue
		}
		switch ref.In {
		case openapi3.ParameterInPath:
			d.Params = append(d.Params, field)
		case openapi3.ParameterInQuery:
			d.Query = append(d.Query, field)
		}
	}

	if d.HasBody {
		d.Body = bodyFields(ctx, name, op.RequestBody)
	}
	return d
}

// Template rewrites an OpenAPI path template to the ":name" placeholder form.
func Template(path string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(path, '{')
		if start < 0 {
			break
		}
		end := strings.IndexByte(path[start:], '}')
		if end < 0 {
			break
		}
		b.WriteString(path[:start])
		b.WriteByte(':')
		b.WriteString(path[start+1 : start+end])
		path = path[start+end+1:]
	}
	b.WriteString(path)
	return b.String()
}

// mergeParameters returns the path item's parameters overridden by the operation's own, keyed
// by name and location. Order is first declaration.
func mergeParameters(shared, own openapi3.Parameters) []*openapi3.Parameter {
	type key struct{ name, in string }
	var out []*openapi3.Parameter
	index := make(map[key]int)
	for _, params := range []openapi3.Parameters{shared, own} {
		for _, ref := range params {
			if ref == nil || ref.Value == nil {
				continue
			}
			k := key{ref.Value.Name, ref.Value.In}
			if i, ok := index[k]; ok {
				out[i] = ref.Value
				continue
			}
			index[k] = len(out)
			out = append(out, ref.Value)
		}
	}
	return out
}

func bodyFields(ctx context.Context, operation string, body *openapi3.RequestBodyRef) endpoint.Fields {
	if body == nil || body.Value == nil {
		return nil
	}
	mt := body.Value.Content.Get(contentTypeJSON)
	if mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
		return nil
	}
	props := mt.Schema.Value.Properties
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields endpoint.Fields
	for _, name := range names {
		field, ok := scalarField(name, props[name])
		if !ok {
			svc1log.FromContext(ctx).Debug("Skipping non-scalar body property.",
				svc1log.SafeParam("operation", operation),
				svc1log.SafeParam("property", name))
			continue
		}
		fields = append(fields, field)
	}
	return fields
}

func scalarField(name string, ref *openapi3.SchemaRef) (endpoint.Field, bool) {
	if ref == nil || ref.Value == nil || ref.Value.Type == nil {
		return endpoint.Field{}, false
	}
	schema := ref.Value
	types := schema.Type.Slice()
	if len(types) != 1 {
		return endpoint.Field{}, false
	}
	switch types[0] {
	case openapi3.TypeString:
		field := endpoint.Field{Name: name, Kind: endpoint.KindString}
		switch schema.Format {
		case "uuid":
			field.Flavor = flavor.NameUUID
		case "date-time":
			field.Flavor = flavor.NameISODate
		}
		return field, true
	case openapi3.TypeInteger:
		field := endpoint.Field{Name: name, Kind: endpoint.KindNumber}
		if schema.Min != nil && *schema.Min >= 0 {
			field.Flavor = flavor.NameUint
		}
		return field, true
	case openapi3.TypeNumber:
		return endpoint.Field{Name: name, Kind: endpoint.KindNumber}, true
	case openapi3.TypeBoolean:
		return endpoint.Field{Name: name, Kind: endpoint.KindBoolean}, true
	}
	return endpoint.Field{}, false
}

// isOpinionated reports whether the 200 response is the fixed success envelope.
func isOpinionated(responses *openapi3.Responses) bool {
	if responses == nil {
		return false
	}
	ok := responses.Value("200")
	if ok == nil || ok.Value == nil {
		return false
	}
	mt := ok.Value.Content.Get(contentTypeJSON)
	if mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
		return false
	}
	for _, prop := range []string{"requestId", endpoint.StateField, "body"} {
		if _, found := mt.Schema.Value.Properties[prop]; !found {
			return false
		}
	}
	return true
}
