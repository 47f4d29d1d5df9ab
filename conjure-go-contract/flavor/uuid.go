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

package flavor

import (
	googleuuid "github.com/google/uuid"
	werror "github.com/palantir/witchcraft-go-error"
)

// UUID is a string holding an RFC 4122 identifier in its canonical textual form.
type UUID string

func NewUUID() UUID {
	return UUID(googleuuid.New().String())
}

func (UUID) Flavor() string {
	return NameUUID
}

func (u UUID) Validate() error {
	if _, err := googleuuid.Parse(string(u)); err != nil {
		return werror.Wrap(err, "invalid uuid", werror.UnsafeParam("value", string(u)))
	}
	return nil
}

// Canonical returns the lower-case hyphenated form of u, or u unchanged if it does not parse.
func (u UUID) Canonical() UUID {
	parsed, err := googleuuid.Parse(string(u))
	if err != nil {
		return u
	}
	return UUID(parsed.String())
}
