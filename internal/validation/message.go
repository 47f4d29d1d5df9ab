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

// Package validation renders go-playground field errors as short messages that fit both route
// manifest problems and fail envelope entries.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Message describes why fe's field was rejected, without naming the field.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min", "gte":
		return "must be at least " + quantity(fe)
	case "max", "lte":
		return "must be at most " + quantity(fe)
	case "len":
		return "must be exactly " + quantity(fe)
	case "gt":
		return "must be more than " + quantity(fe)
	case "lt":
		return "must be less than " + quantity(fe)
	case "uuid", "uuid4", "uuid_rfc4122", "uuid4_rfc4122":
		return "must be a canonical UUID"
	case "email":
		return "must be an email address"
	}
	if fe.Param() != "" {
		return fmt.Sprintf("does not satisfy %s=%s", fe.Tag(), fe.Param())
	}
	return "does not satisfy " + fe.Tag()
}

// quantity qualifies a bound with the unit validator applies it to for the field's kind.
func quantity(fe validator.FieldError) string {
	var one, many string
	switch fe.Kind() {
	case reflect.String:
		one, many = "character", "characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		one, many = "entry", "entries"
	default:
		return fe.Param()
	}
	if fe.Param() == "1" {
		return fe.Param() + " " + one
	}
	return fe.Param() + " " + many
}
