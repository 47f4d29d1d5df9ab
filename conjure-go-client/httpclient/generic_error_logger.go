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
	"errors"
	"reflect"
	"sort"

	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/envelope"
)

// ErrorRegistry logs the errors produced while decoding responses. Each registered logger
// handles one concrete error type found anywhere in the error's chain.
type ErrorRegistry interface {
	LogError(ctx context.Context, err error)
}

// DefaultErrorRegistry logs fail envelopes.
var DefaultErrorRegistry = NewErrorRegistry(GetGenericErrorLoggerWithType[*envelope.FailError](FailErrorLogger()))

func GetGenericErrorLoggerWithType[E error](genericErrorLogger GenericErrorLogger[E]) GenericErrorLoggerWithType {
	return GenericErrorLoggerWithType{
		Type:        reflect.TypeOf((*E)(nil)).Elem(),
		ErrorLogger: asAnyErrorLogger(genericErrorLogger),
	}
}

type GenericErrorLoggerWithType struct {
	Type        reflect.Type
	ErrorLogger AnyErrorLogger
}

func NewErrorRegistry(loggersWithTypes ...GenericErrorLoggerWithType) ErrorRegistry {
	registry := make(errorRegistry)
	for _, loggerWithType := range loggersWithTypes {
		registry[loggerWithType.Type] = loggerWithType.ErrorLogger
	}
	return registry
}

type errorRegistry map[reflect.Type]AnyErrorLogger

func (e errorRegistry) LogError(ctx context.Context, err error) {
	for cause := err; cause != nil; cause = errors.Unwrap(cause) {
		if handler, ok := e[reflect.TypeOf(cause)]; ok {
			handler.LogError(ctx, cause)
			return
		}
	}
}

func asAnyErrorLogger[E error](errorLogger GenericErrorLogger[E]) AnyErrorLogger {
	return genericErrorLoggerFn[error](func(ctx context.Context, err error) {
		errorLogger.LogError(ctx, err.(E))
	})
}

type AnyErrorLogger GenericErrorLogger[error]

type GenericErrorLogger[E error] interface {
	LogError(ctx context.Context, err E)
}

type genericErrorLoggerFn[E error] func(ctx context.Context, err E)

func (fn genericErrorLoggerFn[E]) LogError(ctx context.Context, err E) {
	fn(ctx, err)
}

var _ GenericErrorLogger[error] = (genericErrorLoggerFn[error])(nil)

// FailErrorLogger logs a received fail envelope at info level. Field names are safe; the
// messages may echo user input and are logged as unsafe params.
func FailErrorLogger() GenericErrorLogger[*envelope.FailError] {
	return genericErrorLoggerFn[*envelope.FailError](func(ctx context.Context, err *envelope.FailError) {
		fields := make([]string, 0, len(err.Envelope.Errors))
		for field := range err.Envelope.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		svc1log.FromContext(ctx).Info("Received fail envelope.",
			svc1log.SafeParam("requestId", err.Envelope.RequestID.String()),
			svc1log.SafeParam("fields", fields),
			svc1log.UnsafeParam("errors", err.Envelope.Errors))
	})
}
