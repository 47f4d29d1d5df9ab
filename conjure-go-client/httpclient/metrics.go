// Copyright (c) 2019 Palantir Technologies. All rights reserved.
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

	"github.com/palantir/pkg/metrics"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/envelope"
)

const (
	MetricTagServiceName  = "service-name"
	MetricRequestPrepared = "endpoint.request.prepared"
	MetricResponse        = "endpoint.response"

	metricTagFamily     = "family"
	metricTagMethod     = "method"
	metricRPCMethodName = "method-name"
	metricTagState      = "state"

	metricTagFamilyOther = "other"
	metricTagFamily1xx   = "1xx"
	metricTagFamily2xx   = "2xx"
	metricTagFamily3xx   = "3xx"
	metricTagFamily4xx   = "4xx"
	metricTagFamily5xx   = "5xx"

	metricTagStateNone = "none"
)

// requestTags tags a prepared request with its service, HTTP method and RPC method name.
// A service name that is not a valid tag value is left out.
func requestTags(ctx context.Context, req *http.Request) metrics.Tags {
	var tags metrics.Tags
	if serviceName := getServiceName(ctx); serviceName != "" {
		if tag, err := metrics.NewTag(MetricTagServiceName, serviceName); err == nil {
			tags = append(tags, tag)
		}
	}
	return append(tags, tagRequestMethod(req), tagRequestMethodName(ctx))
}

func responseTags(resp *http.Response, state envelope.State) metrics.Tags {
	var tags metrics.Tags
	if resp.Request != nil {
		tags = requestTags(resp.Request.Context(), resp.Request)
	}
	stateValue := string(state)
	if stateValue == "" {
		stateValue = metricTagStateNone
	}
	return append(tags, tagStatusFamily(resp), metrics.MustNewTag(metricTagState, stateValue))
}

func markResponse(resp *http.Response, state envelope.State) {
	ctx := context.Background()
	if resp.Request != nil {
		ctx = resp.Request.Context()
	}
	metrics.FromContext(ctx).Counter(MetricResponse, responseTags(resp, state)...).Inc(1)
}

func tagStatusFamily(resp *http.Response) metrics.Tag {
	switch {
	case resp == nil, resp.StatusCode < 100, resp.StatusCode > 599:
		return metrics.MustNewTag(metricTagFamily, metricTagFamilyOther)
	case resp.StatusCode < 200:
		return metrics.MustNewTag(metricTagFamily, metricTagFamily1xx)
	case resp.StatusCode < 300:
		return metrics.MustNewTag(metricTagFamily, metricTagFamily2xx)
	case resp.StatusCode < 400:
		return metrics.MustNewTag(metricTagFamily, metricTagFamily3xx)
	case resp.StatusCode < 500:
		return metrics.MustNewTag(metricTagFamily, metricTagFamily4xx)
	default:
		return metrics.MustNewTag(metricTagFamily, metricTagFamily5xx)
	}
}

func tagRequestMethod(req *http.Request) metrics.Tag {
	return metrics.MustNewTag(metricTagMethod, req.Method)
}

func tagRequestMethodName(ctx context.Context) metrics.Tag {
	rpcMethodName := getRPCMethodName(ctx)
	if rpcMethodName == "" {
		return metrics.MustNewTag(metricRPCMethodName, "RPCMethodNameMissing")
	}
	tag, err := metrics.NewTag(metricRPCMethodName, rpcMethodName)
	if err == nil {
		return tag
	}
	return metrics.MustNewTag(metricRPCMethodName, "RPCMethodNameInvalid")
}
