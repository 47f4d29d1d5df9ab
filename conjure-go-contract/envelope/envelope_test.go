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

package envelope_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/palantir/pkg/uuid"
	werror "github.com/palantir/witchcraft-go-error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/codecs"
	"github.com/palantir/conjure-go-endpoint/conjure-go-contract/envelope"
)

var requestID = uuid.UUID{0x6b, 0xa7, 0xb8, 0x10, 0x9d, 0xad, 0x11, 0xd1, 0x80, 0xb4, 0x00, 0xc0, 0x4f, 0xd4, 0x30, 0xc8}

type profile struct {
	Name string `json:"name"`
}

type taggedOnly struct {
	ID    string         `json:"id"`
	State envelope.State `json:"state"`
}

func (e taggedOnly) EnvelopeState() envelope.State {
	return e.State
}

func TestIsFail(t *testing.T) {
	failEnvelope := envelope.NewFail(requestID, nil)
	for _, test := range []struct {
		name     string
		envelope envelope.Stated
		expected bool
	}{
		{"fail", envelope.NewFail(requestID, map[string]string{"name": "required"}), true},
		{"success", envelope.NewSuccess(requestID, struct{}{}), false},
		{"caller defined fail", taggedOnly{ID: "x", State: envelope.StateFail}, true},
		{"caller defined success", taggedOnly{ID: "x", State: envelope.StateSuccess}, false},
		{"unknown state", taggedOnly{ID: "x", State: "pending"}, false},
		{"empty state", taggedOnly{}, false},
		{"nil", nil, false},
		{"nil fail pointer", (*envelope.Fail)(nil), false},
		{"nil success pointer", (*envelope.Success[profile])(nil), false},
		{"fail pointer", &failEnvelope, true},
		{"fail union", envelope.FailOf[envelope.Success[profile], envelope.Fail](envelope.NewFail(requestID, nil)), true},
		{"success union", envelope.SuccessOf[envelope.Success[profile], envelope.Fail](envelope.NewSuccess(requestID, profile{})), false},
		{"empty union", envelope.Union[envelope.Success[profile], envelope.Fail]{}, false},
	} {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, envelope.IsFail(test.envelope))
		})
	}
}

func TestEnvelopeJSON(t *testing.T) {
	data, err := codecs.JSON.Marshal(envelope.NewSuccess(requestID, profile{Name: "ada"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"requestId":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","state":"success","body":{"name":"ada"}}`, string(data))

	data, err = codecs.JSON.Marshal(envelope.NewFail(requestID, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"requestId":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","state":"fail","errors":{}}`, string(data))
}

func TestDecode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		u, err := envelope.Decode[envelope.Success[profile], envelope.Fail](strings.NewReader(
			`{"requestId":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","state":"success","body":{"name":"ada"}}`))
		require.NoError(t, err)
		assert.Equal(t, envelope.StateSuccess, u.EnvelopeState())
		s, ok := u.Success()
		require.True(t, ok)
		assert.Equal(t, envelope.NewSuccess(requestID, profile{Name: "ada"}), s)
		_, ok = u.Fail()
		assert.False(t, ok)
	})
	t.Run("fail", func(t *testing.T) {
		u, err := envelope.Unmarshal[envelope.Success[profile], envelope.Fail]([]byte(
			`{"requestId":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","state":"fail","errors":{"name":"required"}}`))
		require.NoError(t, err)
		assert.True(t, envelope.IsFail(u))
		f, ok := u.Fail()
		require.True(t, ok)
		assert.Equal(t, envelope.NewFail(requestID, map[string]string{"name": "required"}), f)
	})
	for _, test := range []struct {
		name string
		body string
	}{
		{"unknown state", `{"state":"pending"}`},
		{"missing state", `{"body":{}}`},
		{"not json", `<html>`},
		{"bad request id", `{"requestId":"nope","state":"success","body":{}}`},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := envelope.Decode[envelope.Success[profile], envelope.Fail](strings.NewReader(test.body))
			assert.Error(t, err)
		})
	}
}

func TestUnion_MarshalJSON(t *testing.T) {
	u := envelope.FailOf[envelope.Success[profile], envelope.Fail](envelope.NewFail(requestID, map[string]string{"a": "b"}))
	data, err := codecs.JSON.Marshal(u)
	require.NoError(t, err)

	back, err := envelope.Unmarshal[envelope.Success[profile], envelope.Fail](data)
	require.NoError(t, err)
	assert.Equal(t, u, back)

	_, err = codecs.JSON.Marshal(envelope.Union[envelope.Success[profile], envelope.Fail]{})
	assert.Error(t, err)
}

func TestFailError(t *testing.T) {
	fail := envelope.NewFail(requestID, map[string]string{"name": "required", "age": "must be at least 0"})
	err := werror.Wrap(fail.AsError(), "create user failed")

	assert.Equal(t, "create user failed: request 6ba7b810-9dad-11d1-80b4-00c04fd430c8 failed validation of fields [age, name]", err.Error())

	got, ok := envelope.FailFromError(fmt.Errorf("create user failed: %w", fail.AsError()))
	require.True(t, ok)
	assert.Equal(t, fail, got)

	id, ok := werror.ParamFromError(err, "requestId")
	require.True(t, ok)
	assert.Equal(t, requestID.String(), id)

	_, ok = envelope.FailFromError(werror.Error("other"))
	assert.False(t, ok)
}

type signup struct {
	Email string `validate:"required,email"`
	Name  string `validate:"min=2"`
	Age   int    `validate:"gte=18"`
}

func TestFailFromValidation(t *testing.T) {
	err := validator.New().Struct(signup{Name: "a", Age: 3})
	require.Error(t, err)

	fail, ok := envelope.FailFromValidation(requestID, err)
	require.True(t, ok)
	assert.Equal(t, envelope.StateFail, fail.State)
	assert.Equal(t, map[string]string{
		"Email": "is required",
		"Name":  "must be at least 2 characters",
		"Age":   "must be at least 18",
	}, fail.Errors)

	_, ok = envelope.FailFromValidation(requestID, werror.Error("not a validation error"))
	assert.False(t, ok)
}

func TestWrite(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rec := httptest.NewRecorder()
		envelope.WriteSuccess(rec, envelope.NewSuccess(requestID, profile{Name: "ada"}))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"requestId":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","state":"success","body":{"name":"ada"}}`, rec.Body.String())
	})
	t.Run("fail", func(t *testing.T) {
		rec := httptest.NewRecorder()
		envelope.WriteFail(rec, envelope.NewFail(requestID, map[string]string{"name": "required"}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"requestId":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","state":"fail","errors":{"name":"required"}}`, rec.Body.String())
	})
	t.Run("custom status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		envelope.Write(rec, http.StatusUnprocessableEntity, taggedOnly{ID: "x", State: envelope.StateFail})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.JSONEq(t, `{"id":"x","state":"fail"}`, rec.Body.String())
	})
}
