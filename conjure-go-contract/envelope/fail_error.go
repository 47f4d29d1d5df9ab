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

package envelope

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/palantir/pkg/uuid"
	wparams "github.com/palantir/witchcraft-go-params"

	"github.com/palantir/conjure-go-endpoint/internal/validation"
)

// FailError carries a fail envelope through error returns. The request id is a safe param;
// the per-field messages may echo user input and are unsafe params.
type FailError struct {
	Envelope Fail
}

var (
	_ error               = (*FailError)(nil)
	_ wparams.ParamStorer = (*FailError)(nil)
)

// AsError wraps f as a *FailError.
func (f Fail) AsError() error {
	return &FailError{Envelope: f}
}

func (e *FailError) Error() string {
	fields := make([]string, 0, len(e.Envelope.Errors))
	for field := range e.Envelope.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("request %s failed validation of fields [%s]", e.Envelope.RequestID, strings.Join(fields, ", "))
}

func (e *FailError) SafeParams() map[string]interface{} {
	return map[string]interface{}{
		"requestId": e.Envelope.RequestID.String(),
	}
}

func (e *FailError) UnsafeParams() map[string]interface{} {
	params := make(map[string]interface{}, len(e.Envelope.Errors))
	for field, msg := range e.Envelope.Errors {
		params["errors."+field] = msg
	}
	return params
}

// FailFromError returns the fail envelope carried anywhere in err's chain.
func FailFromError(err error) (Fail, bool) {
	var failErr *FailError
	if errors.As(err, &failErr) {
		return failErr.Envelope, true
	}
	return Fail{}, false
}

// FailFromValidation builds a fail envelope from go-playground validation errors, one message per
// failed field. It returns false when err holds no validation errors.
func FailFromValidation(requestID uuid.UUID, err error) (Fail, bool) {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return Fail{}, false
	}
	messages := make(map[string]string, len(valErrs))
	for _, ve := range valErrs {
		if _, ok := messages[ve.Field()]; ok {
			continue
		}
		messages[ve.Field()] = validation.Message(ve)
	}
	return NewFail(requestID, messages), true
}
