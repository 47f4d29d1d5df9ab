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
	"bytes"
	"encoding/json"
	"io"

	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/codecs"
)

// Union holds exactly one of a success envelope S or a fail envelope F, selected by the
// "state" tag of the encoded value.
type Union[S, F any] struct {
	state   State
	success S
	fail    F
}

func SuccessOf[S, F any](s S) Union[S, F] {
	return Union[S, F]{state: StateSuccess, success: s}
}

func FailOf[S, F any](f F) Union[S, F] {
	return Union[S, F]{state: StateFail, fail: f}
}

func (u Union[S, F]) EnvelopeState() State {
	return u.state
}

// Success returns the success envelope and whether the union holds one.
func (u Union[S, F]) Success() (S, bool) {
	return u.success, u.state == StateSuccess
}

// Fail returns the fail envelope and whether the union holds one.
func (u Union[S, F]) Fail() (F, bool) {
	return u.fail, u.state == StateFail
}

type stateTag struct {
	State *State `json:"state"`
}

func (u *Union[S, F]) UnmarshalJSON(data []byte) error {
	var tag stateTag
	if err := codecs.JSON.Unmarshal(data, &tag); err != nil {
		return werror.Wrap(err, "failed to read envelope state")
	}
	if tag.State == nil {
		return werror.Error("envelope has no state tag")
	}
	switch *tag.State {
	case StateSuccess:
		var s S
		if err := codecs.JSON.Unmarshal(data, &s); err != nil {
			return werror.Wrap(err, "failed to decode success envelope")
		}
		*u = SuccessOf[S, F](s)
	case StateFail:
		var f F
		if err := codecs.JSON.Unmarshal(data, &f); err != nil {
			return werror.Wrap(err, "failed to decode fail envelope")
		}
		*u = FailOf[S, F](f)
	default:
		return werror.Error("envelope has an unknown state tag", werror.SafeParam("state", string(*tag.State)))
	}
	return nil
}

func (u Union[S, F]) MarshalJSON() ([]byte, error) {
	switch u.state {
	case StateSuccess:
		return codecs.JSON.Marshal(u.success)
	case StateFail:
		return codecs.JSON.Marshal(u.fail)
	}
	return nil, werror.Error("cannot encode an empty envelope union")
}

var (
	_ json.Marshaler   = Union[Success[struct{}], Fail]{}
	_ json.Unmarshaler = &Union[Success[struct{}], Fail]{}
)

// Decode reads one envelope from r.
func Decode[S, F any](r io.Reader) (Union[S, F], error) {
	var u Union[S, F]
	if err := codecs.JSON.Decode(r, &u); err != nil {
		return Union[S, F]{}, err
	}
	return u, nil
}

// Unmarshal decodes one envelope from data.
func Unmarshal[S, F any](data []byte) (Union[S, F], error) {
	return Decode[S, F](bytes.NewReader(data))
}
