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

// Package envelope defines the tagged response envelopes returned by endpoints and the
// discriminator that tells a failed response from a successful one.
package envelope

import (
	"reflect"

	"github.com/palantir/pkg/uuid"
)

// State is the value of an envelope's "state" tag.
type State string

const (
	StateSuccess State = "success"
	StateFail    State = "fail"
)

// Stated is implemented by every envelope.
type Stated interface {
	EnvelopeState() State
}

// IsFail reports whether e is tagged "fail". A nil envelope, including a nil pointer to an
// envelope type, and any other tag are not failures.
func IsFail(e Stated) bool {
	if e == nil {
		return false
	}
	if v := reflect.ValueOf(e); v.Kind() == reflect.Pointer && v.IsNil() {
		return false
	}
	return e.EnvelopeState() == StateFail
}

// Success is the opinionated success envelope. The caller defines only the body type.
type Success[T any] struct {
	RequestID uuid.UUID `json:"requestId"`
	State     State     `json:"state"`
	Body      T         `json:"body"`
}

func NewSuccess[T any](requestID uuid.UUID, body T) Success[T] {
	return Success[T]{RequestID: requestID, State: StateSuccess, Body: body}
}

func (s Success[T]) EnvelopeState() State {
	return s.State
}

// Fail is the opinionated fail envelope: a per-field map of messages meant for display.
type Fail struct {
	RequestID uuid.UUID         `json:"requestId"`
	State     State             `json:"state"`
	Errors    map[string]string `json:"errors"`
}

func NewFail(requestID uuid.UUID, errors map[string]string) Fail {
	if errors == nil {
		errors = map[string]string{}
	}
	return Fail{RequestID: requestID, State: StateFail, Errors: errors}
}

func (f Fail) EnvelopeState() State {
	return f.State
}
