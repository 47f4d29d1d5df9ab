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

package validation_test

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palantir/conjure-go-endpoint/internal/validation"
)

type sample struct {
	Name    string   `validate:"required"`
	Code    string   `validate:"len=3"`
	Initial string   `validate:"min=1"`
	Tags    []string `validate:"min=1"`
	Labels  []string `validate:"max=2"`
	Age     int      `validate:"gte=18"`
	Score   float64  `validate:"lt=10"`
	Mode    string   `validate:"oneof=leave fail"`
	ID      string   `validate:"uuid"`
	Email   string   `validate:"email"`
	Slug    string   `validate:"alphanum"`
	Prefix  string   `validate:"startswith=v"`
}

func TestMessage(t *testing.T) {
	err := validator.New().Struct(sample{
		Code:   "ab",
		Labels: []string{"a", "b", "c"},
		Age:    3,
		Score:  12,
		Mode:   "sometimes",
		ID:     "nope",
		Email:  "nope",
		Slug:   "a-b",
		Prefix: "x",
	})
	var valErrs validator.ValidationErrors
	require.True(t, errors.As(err, &valErrs))

	messages := make(map[string]string, len(valErrs))
	for _, fe := range valErrs {
		messages[fe.Field()] = validation.Message(fe)
	}
	assert.Equal(t, map[string]string{
		"Name":    "is required",
		"Code":    "must be exactly 3 characters",
		"Initial": "must be at least 1 character",
		"Tags":    "must be at least 1 entry",
		"Labels":  "must be at most 2 entries",
		"Age":     "must be at least 18",
		"Score":   "must be less than 10",
		"Mode":    "must be one of leave, fail",
		"ID":      "must be a canonical UUID",
		"Email":   "must be an email address",
		"Slug":    "does not satisfy alphanum",
		"Prefix":  "does not satisfy startswith=v",
	}, messages)
}
