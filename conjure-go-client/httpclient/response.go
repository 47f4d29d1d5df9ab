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

	"github.com/palantir/pkg/bytesbuffers"
	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/endpoint"
	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/envelope"
	"github.com/palantir/conjure-go-endpoint/internal/errors"
)

const statusCodeParam = "statusCode"

var responseBufferPool = bytesbuffers.NewSizedPool(4096, 1<<20)

// DecodeResponse reads the envelope carried by resp and closes its body. A body that is not an
// envelope is an error; when the status is >= 400 that error carries the status code, which
// StatusCodeFromError retrieves. Fail envelopes are returned, not turned into errors.
func DecodeResponse[S, F any](resp *http.Response) (envelope.Union[S, F], error) {
	ctx := responseContext(resp)
	if resp == nil || resp.Body == nil {
		return envelope.Union[S, F]{}, werror.ErrorWithContextParams(ctx, "response has no body")
	}
	buf := responseBufferPool.Get()
	defer responseBufferPool.Put(buf)
	buf.Reset()
	_, err := buf.ReadFrom(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return envelope.Union[S, F]{}, werror.WrapWithContextParams(ctx, err, "failed to read response body")
	}
	union, err := envelope.Decode[S, F](buf)
	if err != nil {
		markResponse(resp, "")
		if resp.StatusCode >= http.StatusBadRequest {
			return envelope.Union[S, F]{}, werror.WrapWithContextParams(ctx, err, "server returned a status >= 400",
				werror.SafeParam(statusCodeParam, resp.StatusCode),
				werror.SafeParam(errors.ErrorTypeParam, string(errors.RESTError)))
		}
		return envelope.Union[S, F]{}, werror.WrapWithContextParams(ctx, err, "failed to decode response envelope",
			werror.SafeParam(statusCodeParam, resp.StatusCode))
	}
	markResponse(resp, union.EnvelopeState())
	return union, nil
}

// DecodeBody reads the opinionated envelope of contract c from resp and returns the success
// body. A fail envelope is returned as an *envelope.FailError and logged through registry,
// which defaults to DefaultErrorRegistry when nil.
func DecodeBody[P, Q, B, T any](c endpoint.Contract[P, Q, B, envelope.Success[T], envelope.Fail], resp *http.Response, registry ErrorRegistry) (T, error) {
	var zero T
	union, err := DecodeResponse[envelope.Success[T], envelope.Fail](resp)
	if err != nil {
		return zero, werror.Wrap(err, "failed to decode contract response", werror.SafeParam("name", c.Name()))
	}
	if fail, ok := union.Fail(); ok {
		if registry == nil {
			registry = DefaultErrorRegistry
		}
		failErr := fail.AsError()
		registry.LogError(responseContext(resp), failErr)
		return zero, failErr
	}
	success, _ := union.Success()
	return success.Body, nil
}

// StatusCodeFromError retrieves the 'statusCode' parameter from the provided werror.
// If the error is not a werror or does not have the statusCode param, ok is false.
func StatusCodeFromError(err error) (statusCode int, ok bool) {
	statusCodeI, ok := werror.ParamFromError(err, statusCodeParam)
	if !ok {
		return 0, false
	}
	statusCode, ok = statusCodeI.(int)
	return statusCode, ok
}

func responseContext(resp *http.Response) context.Context {
	if resp != nil && resp.Request != nil {
		return resp.Request.Context()
	}
	return context.Background()
}
