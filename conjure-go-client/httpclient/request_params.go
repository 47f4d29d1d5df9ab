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

package httpclient

import (
	"context"
	"fmt"
	"strings"

	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/endpoint"
)

// WithRPCMethodName configures the requests's context with the RPC method name, like "getUser".
// This is read by the metrics emitted when preparing requests and decoding responses.
// WithContract sets it to the contract's name.
func WithRPCMethodName(name string) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		b.configureCtx = append(b.configureCtx, func(ctx context.Context) context.Context {
			return ContextWithRPCMethodName(ctx, name)
		})
		return nil
	})
}

// WithRequestMethod sets the HTTP method of the request, e.g. GET or POST.
func WithRequestMethod(method string) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		if method == "" {
			return werror.Error("transport.RequestMethod: method can not be empty")
		}
		b.method = strings.ToUpper(method)
		return nil
	})
}

// WithPath sets a literal path for the request. This will be joined with
// one of the URIs of the service configuration.
func WithPath(path string) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		b.path = path
		b.endpoint = nil
		return nil
	})
}

// WithPathf sets a literal path for the request from a format string.
func WithPathf(format string, args ...interface{}) RequestParam {
	return WithPath(fmt.Sprintf(format, args...))
}

// WithHeader sets a header on a request.
func WithHeader(key, value string) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		b.headers.Set(key, value)
		return nil
	})
}

// WithEndpoint renders template with params and query to produce the request path and query string.
// Unresolved placeholders follow the service configuration, and are left in place by default.
func WithEndpoint(template string, params, query endpoint.Record) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		b.path = ""
		b.endpoint = &preparedEndpoint{
			descriptor: endpoint.Descriptor{Endpoint: template},
			params:     params,
			query:      query,
		}
		return nil
	})
}

// WithStrictEndpoint is WithEndpoint that fails the request when a placeholder has no value,
// regardless of configuration.
func WithStrictEndpoint(template string, params, query endpoint.Record) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		if err := WithEndpoint(template, params, query).apply(b); err != nil {
			return err
		}
		b.endpoint.policy = endpoint.FailOnMissing
		return nil
	})
}

// WithDescriptor sets the method and prepared endpoint of a declared contract from untyped records,
// for routes looked up in an endpoint.Registry or loaded from a manifest.
func WithDescriptor(d endpoint.Described, params, query endpoint.Record) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		desc := d.Descriptor()
		if !desc.Method.IsValid() {
			return werror.Error("contract has no valid method", werror.SafeParam("name", desc.Name))
		}
		b.method = string(desc.Method)
		b.path = ""
		b.endpoint = &preparedEndpoint{descriptor: desc, params: params, query: query}
		if desc.Name != "" {
			return WithRPCMethodName(desc.Name).apply(b)
		}
		return nil
	})
}

// WithContract sets the method and prepared endpoint of a typed contract.
//
//	req, err := factory.NewRequest(ctx, httpclient.WithContract(api.GetUser, api.UserParams{ID: id}, endpoint.None{}))
func WithContract[P, Q, B, S, F any](c endpoint.Contract[P, Q, B, S, F], params P, query Q) RequestParam {
	return requestParamFunc(func(b *requestBuilder) error {
		p, err := endpoint.RecordOf(params)
		if err != nil {
			return werror.Wrap(err, "failed to read contract params", werror.SafeParam("name", c.Name()))
		}
		q, err := endpoint.RecordOf(query)
		if err != nil {
			return werror.Wrap(err, "failed to read contract query", werror.SafeParam("name", c.Name()))
		}
		return WithDescriptor(c, p, q).apply(b)
	})
}
