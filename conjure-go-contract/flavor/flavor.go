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

// Package flavor provides nominal primitive types for request fields. Each is a named string or
// number with no runtime cost, distinct from other primitives at compile time, and reports its
// flavor name so contract descriptors can record it.
package flavor

const (
	NameUUID     = "uuid"
	NameISODate  = "isoDate"
	NameMimeType = "mimetype"
	NameUint     = "uint"
)

// Validator is implemented by every flavor for callers that want runtime guarantees.
type Validator interface {
	Validate() error
}

// Validate runs Validate on every value, returning the first failure.
func Validate(values ...Validator) error {
	for _, v := range values {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
