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
	"mime"
	"time"

	werror "github.com/palantir/witchcraft-go-error"
)

// ISODate is a string holding an RFC 3339 timestamp.
type ISODate string

// NewISODate formats t in UTC with nanosecond precision.
func NewISODate(t time.Time) ISODate {
	return ISODate(t.UTC().Format(time.RFC3339Nano))
}

func (ISODate) Flavor() string {
	return NameISODate
}

func (d ISODate) Time() (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, string(d))
	if err != nil {
		return time.Time{}, werror.Wrap(err, "invalid isoDate", werror.UnsafeParam("value", string(d)))
	}
	return t, nil
}

func (d ISODate) Validate() error {
	_, err := d.Time()
	return err
}

// MimeType is a string holding an RFC 2045 media type such as "application/json".
type MimeType string

func (MimeType) Flavor() string {
	return NameMimeType
}

func (m MimeType) Validate() error {
	if _, _, err := mime.ParseMediaType(string(m)); err != nil {
		return werror.Wrap(err, "invalid mimetype", werror.UnsafeParam("value", string(m)))
	}
	return nil
}

// Uint is a non-negative integer.
type Uint uint64

func (Uint) Flavor() string {
	return NameUint
}

// Validate always succeeds; the type itself rules out negative values.
func (Uint) Validate() error {
	return nil
}
