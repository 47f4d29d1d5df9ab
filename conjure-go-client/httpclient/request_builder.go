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
	"net/http"
	"net/url"
	"strings"

	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/endpoint"
)

const traceIDHeaderKey = "X-B3-TraceId"

// RequestParam configures a request built by a RequestFactory.
type RequestParam interface {
	apply(*requestBuilder) error
}

type requestParamFunc func(*requestBuilder) error

func (f requestParamFunc) apply(b *requestBuilder) error {
	return f(b)
}

type requestBuilder struct {
	method   string
	path     string
	endpoint *preparedEndpoint
	headers  http.Header

	configureCtx []func(context.Context) context.Context
}

// preparedEndpoint is rendered only after every param is applied, so the service configuration
// and explicit params can both influence the missing placeholder policy.
type preparedEndpoint struct {
	descriptor endpoint.Descriptor
	params     endpoint.Record
	query      endpoint.Record
	// policy, when set, takes precedence over the service configuration and the descriptor.
	policy endpoint.MissingPolicy
}

func (p *preparedEndpoint) render(configured endpoint.MissingPolicy) (string, error) {
	policy := p.descriptor.Missing
	if configured != "" {
		policy = configured
	}
	if p.policy != "" {
		policy = p.policy
	}
	out, err := policy.Prepare(p.descriptor.Endpoint, p.params, p.query)
	if err != nil {
		return "", werror.Wrap(err, "failed to prepare endpoint", werror.SafeParam("name", p.descriptor.Name))
	}
	return out, nil
}

func (b *requestBuilder) build(ctx context.Context, conf ClientConfig, baseURI string) (*http.Request, error) {
	if b.method == "" {
		return nil, werror.ErrorWithContextParams(ctx, "httpclient: use WithRequestMethod() or WithContract() to specify HTTP method")
	}
	for _, c := range b.configureCtx {
		ctx = c(ctx)
	}

	path := b.path
	if b.endpoint != nil {
		var configured endpoint.MissingPolicy
		if conf.MissingPlaceholders != "" {
			var err error
			if configured, err = endpoint.ParseMissingPolicy(conf.MissingPlaceholders); err != nil {
				return nil, err
			}
		}
		rendered, err := b.endpoint.render(configured)
		if err != nil {
			return nil, err
		}
		path = rendered
	}

	uri, err := joinURIAndPath(baseURI, path)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, b.method, uri, nil)
	if err != nil {
		return nil, werror.WrapWithContextParams(ctx, err, "failed to build new HTTP request")
	}
	for k, v := range conf.Headers {
		req.Header.Set(k, v)
	}
	for k, values := range b.headers {
		req.Header[k] = append([]string(nil), values...)
	}
	return req, nil
}

func joinURIAndPath(baseURI, reqPath string) (string, error) {
	if baseURI == "" {
		return "", werror.Error("base URI is empty")
	}
	uri := strings.TrimRight(baseURI, "/") + "/" + strings.TrimLeft(reqPath, "/")
	if _, err := url.Parse(uri); err != nil {
		return "", werror.Wrap(err, "failed to join base URI and path", werror.UnsafeParam("baseURI", baseURI))
	}
	return uri, nil
}
