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
	"sync/atomic"

	"github.com/palantir/pkg/metrics"
	"github.com/palantir/pkg/refreshable"
	werror "github.com/palantir/witchcraft-go-error"
	"github.com/palantir/witchcraft-go-tracing/wtracing"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/codecs"
)

// RequestFactory builds *http.Request values for a caller-owned transport. It resolves the
// request URL from a declared endpoint contract and one of the service's base URIs; it never
// sends requests or serializes bodies.
type RequestFactory interface {
	NewRequest(ctx context.Context, params ...RequestParam) (*http.Request, error)
	// CurrentConfig returns the configuration requests are currently built from.
	CurrentConfig() ClientConfig
}

type requestFactory struct {
	config *refreshable.ValidatingRefreshable
	offset uint64
}

// NewRequestFactory returns a RequestFactory for a static configuration.
func NewRequestFactory(config ClientConfig) (RequestFactory, error) {
	return NewRequestFactoryFromRefreshable(refreshable.NewDefaultRefreshable(config))
}

// NewRequestFactoryFromRefreshable returns a RequestFactory whose configuration follows config,
// which must hold ClientConfig values. Updates that fail validation are ignored and the last
// valid configuration stays in effect.
func NewRequestFactoryFromRefreshable(config refreshable.Refreshable) (RequestFactory, error) {
	validated, err := refreshable.NewMapValidatingRefreshable(config, func(i interface{}) (interface{}, error) {
		conf, ok := i.(ClientConfig)
		if !ok {
			return nil, werror.Error("refreshable does not hold a ClientConfig")
		}
		if err := conf.Validate(); err != nil {
			return nil, err
		}
		return conf, nil
	})
	if err != nil {
		return nil, werror.Wrap(err, "invalid client configuration")
	}
	return &requestFactory{config: validated}, nil
}

func (f *requestFactory) CurrentConfig() ClientConfig {
	return f.config.Current().(ClientConfig)
}

// NewRequest applies params and builds a request against the next base URI in rotation. The
// request accepts JSON, carries the configured headers and, unless disabled, the trace id of ctx.
func (f *requestFactory) NewRequest(ctx context.Context, params ...RequestParam) (*http.Request, error) {
	conf := f.CurrentConfig()
	b := &requestBuilder{
		headers: make(http.Header),
	}
	b.configureCtx = append(b.configureCtx, func(ctx context.Context) context.Context {
		return contextWithServiceName(ctx, conf.ServiceName)
	})
	b.headers.Set("Accept", codecs.JSON.Accept())
	if conf.DisableTraceHeaderPropagation == nil || !*conf.DisableTraceHeaderPropagation {
		if traceID := wtracing.TraceIDFromContext(ctx); traceID != "" {
			b.headers.Set(traceIDHeaderKey, string(traceID))
		}
	}
	for _, p := range params {
		if p == nil {
			continue
		}
		if err := p.apply(b); err != nil {
			return nil, err
		}
	}

	next := atomic.AddUint64(&f.offset, 1) - 1
	baseURI := conf.URIs[next%uint64(len(conf.URIs))]
	req, err := b.build(ctx, conf, baseURI)
	if err != nil {
		return nil, werror.WrapWithContextParams(ctx, err, "failed to prepare request",
			werror.SafeParam("serviceName", conf.ServiceName))
	}
	metrics.FromContext(req.Context()).Counter(MetricRequestPrepared, requestTags(req.Context(), req)...).Inc(1)
	return req, nil
}
